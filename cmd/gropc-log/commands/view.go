package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gropc-project/gropc-go/pkg/log"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// RunView prints the events matching opts in human-readable form.
func RunView(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	return forEach(reader, func(event log.Event) error {
		formatEvent(w, event)
		return nil
	})
}

// formatEvent writes one event:
//
//	timestamp [client] DIRECTION LAYER Type
//	  details...
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timestampLayout)

	fmt.Fprintf(w, "%s [%s] %-3s %s %s\n",
		ts, shorten(event.ClientID), event.Direction.String(), event.Layer.String(), eventType(event))

	if event.SubscriptionID != "" {
		fmt.Fprintf(w, "  Subscription: %s\n", event.SubscriptionID)
	}
	if event.Node != "" {
		fmt.Fprintf(w, "  Node: %s\n", event.Node)
	}

	switch {
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// eventType returns the label shown in the header line.
func eventType(event log.Event) string {
	switch {
	case event.Message != nil:
		return event.Message.Type.String()
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shorten returns the first 8 characters of a client id. Peer addresses
// are kept whole.
func shorten(id string) string {
	if id == "" {
		return "-"
	}
	if strings.Contains(id, ":") || len(id) <= 8 {
		return id
	}
	return id[:8]
}

func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	fmt.Fprintf(w, "  Operation: %s\n", msg.Operation.String())
	if msg.DeclaredType != "" {
		fmt.Fprintf(w, "  Type: %s\n", msg.DeclaredType)
	}
	if msg.Value != "" {
		fmt.Fprintf(w, "  Value: %s\n", printable(msg.Value))
	}
	if msg.Status != "" {
		fmt.Fprintf(w, "  Status: %s\n", msg.Status)
	}
	if msg.ProcessingTime != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*msg.ProcessingTime))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// printable renders payload separators as " | " so multi-value
// notifications stay on one readable line.
func printable(value string) string {
	return strings.ReplaceAll(value, wire.Separator, " | ")
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}
