// Command gropc-client is an interactive client for a gROPC gateway.
//
// Usage:
//
//	gropc-client [flags]
//
// Flags:
//
//	-server string     Gateway address (default "localhost:50051")
//	-discover string   Find the gateway instance via mDNS instead of -server
//	-id string         Client id sent with every call (random if empty)
//	-timeout duration  Request timeout (default 10s)
//	-log-level string  Log level: debug, info, warn, error (default "warn")
//
// Examples:
//
//	gropc-client -server plc-gateway:50051
//	gropc-client -discover gropc
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gropc-project/gropc-go/cmd/gropc-client/interactive"
	"github.com/gropc-project/gropc-go/pkg/config"
	"github.com/gropc-project/gropc-go/pkg/discovery"
	"github.com/gropc-project/gropc-go/pkg/interaction"
	"github.com/gropc-project/gropc-go/pkg/version"
)

// Config holds the command line.
type Config struct {
	Server   string
	Discover string
	ClientID string
	Timeout  time.Duration
	LogLevel string
}

var cfg Config

func init() {
	flag.StringVar(&cfg.Server, "server", "localhost:50051", "Gateway address")
	flag.StringVar(&cfg.Discover, "discover", "", "Find the gateway instance via mDNS instead of -server")
	flag.StringVar(&cfg.ClientID, "id", "", "Client id sent with every call (random if empty)")
	flag.DurationVar(&cfg.Timeout, "timeout", interaction.DefaultRequestTimeout, "Request timeout")
	flag.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	target := cfg.Server
	if cfg.Discover != "" {
		target, err = discover(ctx, cfg.Discover)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Discovery failed: %v\n", err)
			os.Exit(1)
		}
	}

	ccfg := interaction.DefaultClientConfig()
	ccfg.ClientID = cfg.ClientID
	ccfg.RequestTimeout = cfg.Timeout
	ccfg.Logger = logger

	client, err := interaction.Dial(target, ccfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Printf("gROPC client %s connected to %s as %s\n", version.String(), target, client.ID())

	session := interactive.NewSession(client, os.Stdout)
	defer session.Close()
	if err := session.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// discover resolves a gateway instance name to a dial target.
func discover(ctx context.Context, instance string) (string, error) {
	fmt.Printf("Looking for gateway %q...\n", instance)

	browser := discovery.NewMDNSBrowser(discovery.DefaultBrowserConfig())
	gw, err := browser.FindGateway(ctx, instance)
	if err != nil {
		return "", err
	}
	if !version.Compatible(gw.APIVersion) {
		return "", fmt.Errorf("gateway %s speaks API %s, this client %s", gw.InstanceName, gw.APIVersion, version.Current)
	}

	fmt.Printf("Found %s at %s (build %s, OPC UA %s)\n", gw.InstanceName, gw.Target(), gw.Build, gw.Endpoint)
	return gw.Target(), nil
}
