// Command gropc-server runs the gRPC to OPC UA gateway.
//
// Usage:
//
//	gropc-server [flags]
//
// Flags:
//
//	-config string          Configuration file path (YAML)
//	-address string         gRPC listen address (default ":50051")
//	-endpoint string        OPC UA server endpoint
//	-whitelist string       Comma-separated node ids clients may write
//	-log-level string       Log level: debug, info, warn, error (default "info")
//	-log-file string        Also write all logs to this file
//	-error-log string       Write error logs to this file
//	-protocol-log string    Capture protocol events to this CBOR file
//	-metrics string         Serve Prometheus metrics on this address
//	-mdns                   Advertise the gateway via mDNS
//	-simulate               Serve simulated nodes instead of an OPC UA server
//	-sim-interval duration  Update interval of simulated nodes (default 2s)
//	-version                Print the version and exit
//
// Flags given on the command line override the configuration file.
//
// Examples:
//
//	# Gateway in front of a PLC, whitelisting two nodes
//	gropc-server -endpoint opc.tcp://plc:4840 -whitelist "ns=2;s=Speed,ns=2;s=Mode"
//
//	# Simulated nodes with metrics and protocol capture
//	gropc-server -simulate -metrics :9090 -protocol-log gropc.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	"github.com/gropc-project/gropc-go/pkg/config"
	"github.com/gropc-project/gropc-go/pkg/log"
	"github.com/gropc-project/gropc-go/pkg/opcua"
	"github.com/gropc-project/gropc-go/pkg/service"
	"github.com/gropc-project/gropc-go/pkg/version"
)

// Flags holds the command line.
type Flags struct {
	ConfigFile  string
	Address     string
	Endpoint    string
	Whitelist   string
	LogLevel    string
	LogFile     string
	ErrorLog    string
	ProtocolLog string
	Metrics     string
	MDNS        bool
	Simulate    bool
	SimInterval time.Duration
	Version     bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.Address, "address", ":50051", "gRPC listen address")
	flag.StringVar(&flags.Endpoint, "endpoint", "opc.tcp://localhost:4840", "OPC UA server endpoint")
	flag.StringVar(&flags.Whitelist, "whitelist", "", "Comma-separated node ids clients may write")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.LogFile, "log-file", "", "Also write all logs to this file")
	flag.StringVar(&flags.ErrorLog, "error-log", "", "Write error logs to this file")
	flag.StringVar(&flags.ProtocolLog, "protocol-log", "", "Capture protocol events to this CBOR file")
	flag.StringVar(&flags.Metrics, "metrics", "", "Serve Prometheus metrics on this address")
	flag.BoolVar(&flags.MDNS, "mdns", false, "Advertise the gateway via mDNS")
	flag.BoolVar(&flags.Simulate, "simulate", false, "Serve simulated nodes instead of an OPC UA server")
	flag.DurationVar(&flags.SimInterval, "sim-interval", 2*time.Second, "Update interval of simulated nodes")
	flag.BoolVar(&flags.Version, "version", false, "Print the version and exit")
}

func main() {
	flag.Parse()

	if flags.Version {
		fmt.Println("gropc-server", version.String())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set explicitly.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	applyFlags(cfg, flags, set, flags.ConfigFile == "")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies flag values into cfg. Without a configuration file
// every flag applies, including defaults.
func applyFlags(cfg *config.Config, f Flags, set map[string]bool, all bool) {
	use := func(name string) bool { return all || set[name] }

	if use("address") {
		cfg.Server.Address = f.Address
	}
	if use("endpoint") {
		cfg.OPCUA.Endpoint = f.Endpoint
	}
	if use("whitelist") && f.Whitelist != "" {
		cfg.Whitelist = splitList(f.Whitelist)
	}
	if use("log-level") {
		cfg.Logging.Level = f.LogLevel
	}
	if use("log-file") && f.LogFile != "" {
		cfg.Logging.File = f.LogFile
	}
	if use("error-log") && f.ErrorLog != "" {
		cfg.Logging.ErrorFile = f.ErrorLog
	}
	if use("protocol-log") && f.ProtocolLog != "" {
		cfg.Logging.ProtocolLog = f.ProtocolLog
	}
	if use("metrics") && f.Metrics != "" {
		cfg.Metrics.Address = f.Metrics
	}
	if set["mdns"] {
		cfg.Discovery.Enabled = f.MDNS
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run(cfg *config.Config) error {
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger, closeLogs, err := newLogger(logOutputs{
		Level:     level,
		Console:   os.Stdout,
		File:      cfg.Logging.File,
		ErrorFile: cfg.Logging.ErrorFile,
	})
	if err != nil {
		return fmt.Errorf("open log files: %w", err)
	}
	defer func() { _ = closeLogs() }()

	protocolLogger, closeProtocol, err := newProtocolLogger(cfg.Logging.ProtocolLog, logger)
	if err != nil {
		return fmt.Errorf("open protocol log: %w", err)
	}
	defer func() { _ = closeProtocol() }()

	logger.Info("gROPC gateway", "version", version.String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var a adapter.Adapter
	if flags.Simulate {
		sim := newSimulation()
		go runSimulation(ctx, sim, flags.SimInterval, logger.With("component", "simulation"))
		a = sim
		cfg.OPCUA.Endpoint = "simulation"
	} else {
		ocfg := opcua.DefaultConfig(cfg.OPCUA.Endpoint)
		if cfg.OPCUA.RequestTimeout > 0 {
			ocfg.RequestTimeout = cfg.OPCUA.RequestTimeout
		}
		if cfg.OPCUA.PublishInterval > 0 {
			ocfg.PublishInterval = cfg.OPCUA.PublishInterval
		}
		ocfg.Logger = logger.With("component", "opcua")
		a = opcua.New(ocfg)
	}

	svcConfig := service.FromConfig(cfg)
	svcConfig.Logger = logger
	svcConfig.ProtocolLogger = protocolLogger

	svc, err := service.NewGatewayService(a, svcConfig)
	if err != nil {
		return fmt.Errorf("create gateway service: %w", err)
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start gateway service: %w", err)
	}

	attrs := []any{"address", svc.Addr().String(), "endpoint", cfg.OPCUA.Endpoint, "whitelist", len(cfg.Whitelist)}
	if addr := svc.MetricsAddr(); addr != nil {
		attrs = append(attrs, "metrics", addr.String())
	}
	logger.Info("gateway ready", attrs...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("shutting down", "signal", sig.String())
	cancel()
	if err := svc.Stop(); err != nil {
		logger.Error("stop gateway service", "error", err)
		return err
	}
	logger.Info("gateway stopped")
	return nil
}

// newProtocolLogger returns the protocol event sink. Events go to the CBOR
// capture file when path is set and to the debug log in any case.
func newProtocolLogger(path string, logger *slog.Logger) (log.Logger, func() error, error) {
	debug := log.NewSlogAdapter(logger.With("component", "protocol"))
	if path == "" {
		return debug, func() error { return nil }, nil
	}
	file, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, err
	}
	return log.NewMultiLogger(file, debug), file.Close, nil
}
