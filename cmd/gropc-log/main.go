// Command gropc-log views and analyzes gateway protocol captures.
//
// Capture files are written by gropc-server when started with
// -protocol-log (or logging.protocol_log in the config file).
//
// Usage:
//
//	gropc-log <command> [flags] <file.glog>
//
// Commands:
//
//	view     View events in human-readable format
//	export   Export events as JSON lines or CSV
//	filter   Write matching events to a new capture file
//	stats    Show statistics about the capture
//
// Examples:
//
//	# View all events
//	gropc-log view gateway.glog
//
//	# Follow one subscription
//	gropc-log view -subscription 0b6f... gateway.glog
//
//	# Export write traffic to CSV
//	gropc-log export -format csv -layer rpc -o writes.csv gateway.glog
//
//	# Show statistics
//	gropc-log stats gateway.glog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gropc-project/gropc-go/cmd/gropc-log/commands"
)

const usage = `gropc-log - gROPC Protocol Log Analyzer

Usage:
  gropc-log <command> [flags] <file.glog>

Commands:
  view     View events in human-readable format
  export   Export events as JSON lines or CSV
  filter   Write matching events to a new capture file
  stats    Show statistics about the capture

Use "gropc-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "export":
		err = runExport(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet returns a flag set for cmd with the shared filter flags bound
// to opts.
func newFlagSet(cmd, summary string, opts *commands.FilterOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "gropc-log %s - %s\n\nUsage:\n  gropc-log %s [flags] <file.glog>\n\nFlags:\n", cmd, summary, cmd)
		fs.PrintDefaults()
	}
	if opts != nil {
		fs.StringVar(&opts.ClientID, "client", "", "Filter by client ID or peer address")
		fs.StringVar(&opts.SubscriptionID, "subscription", "", "Filter by subscription ID")
		fs.StringVar(&opts.Node, "node", "", "Filter by node name")
		fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
		fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
		fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (rpc, subscription, adapter)")
		fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
		fs.StringVar(&opts.Category, "category", "", "Filter by category (message, state, error)")
	}
	return fs
}

// logPath parses args and returns the capture file argument.
func logPath(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return "", fmt.Errorf("log file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string) error {
	var opts commands.FilterOptions
	fs := newFlagSet("view", "View events in human-readable format", &opts)
	path, err := logPath(fs, args)
	if err != nil {
		return err
	}
	return commands.RunView(path, opts, os.Stdout)
}

func runExport(args []string) error {
	var opts commands.FilterOptions
	fs := newFlagSet("export", "Export events as JSON lines or CSV", &opts)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path, err := logPath(fs, args)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return commands.RunExport(path, *format, opts, w)
}

func runFilter(args []string) error {
	var opts commands.FilterOptions
	fs := newFlagSet("filter", "Write matching events to a new capture file", &opts)
	output := fs.String("o", "", "Output file (required)")
	path, err := logPath(fs, args)
	if err != nil {
		return err
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("output file (-o) required")
	}
	return commands.RunFilter(path, *output, opts, os.Stdout)
}

func runStats(args []string) error {
	fs := newFlagSet("stats", "Show statistics about the capture", nil)
	path, err := logPath(fs, args)
	if err != nil {
		return err
	}
	return commands.RunStats(path, os.Stdout)
}
