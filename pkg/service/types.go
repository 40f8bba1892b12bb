package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	"github.com/gropc-project/gropc-go/pkg/config"
	"github.com/gropc-project/gropc-go/pkg/discovery"
	"github.com/gropc-project/gropc-go/pkg/log"
)

// Service errors.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrAlreadyStarted = errors.New("service already started")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// ServiceState represents the service state.
type ServiceState uint8

const (
	// StateIdle - service created but not started.
	StateIdle ServiceState = iota

	// StateStarting - service is starting up.
	StateStarting

	// StateRunning - service is running normally.
	StateRunning

	// StateStopping - service is shutting down.
	StateStopping

	// StateStopped - service has stopped.
	StateStopped
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// DefaultShutdownTimeout bounds the graceful part of Stop.
const DefaultShutdownTimeout = 5 * time.Second

// Config configures a GatewayService.
type Config struct {
	// ListenAddress is the gRPC listen address (e.g., ":50051").
	ListenAddress string

	// Whitelist lists the nodes clients may write, compared case-insensitively.
	Whitelist []string

	// MaxSubscriptions bounds concurrently live subscriptions.
	MaxSubscriptions int

	// MetricsAddress enables the Prometheus /metrics endpoint when set.
	MetricsAddress string

	// Registerer receives the gateway collectors.
	// Default: a private registry served on MetricsAddress.
	Registerer prometheus.Registerer

	// Advertise enables mDNS advertisement of the gateway.
	Advertise bool

	// Instance is the mDNS instance name. Default: discovery.DefaultInstance.
	Instance string

	// Interface restricts mDNS to one network interface.
	Interface string

	// Endpoint is announced in the TXT records. Optional.
	Endpoint string

	// Advertiser overrides the mDNS advertiser. Set this in tests.
	Advertiser discovery.Advertiser

	// ShutdownTimeout bounds the graceful part of Stop.
	ShutdownTimeout time.Duration

	// ServerOptions are passed to grpc.NewServer.
	ServerOptions []grpc.ServerOption

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger captures gateway traffic. Nil disables capture.
	ProtocolLogger log.Logger
}

// DefaultConfig returns a configuration listening on the default port.
func DefaultConfig() Config {
	return Config{
		ListenAddress:   ":50051",
		Instance:        discovery.DefaultInstance,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// FromConfig maps a loaded configuration file onto a service Config.
func FromConfig(c *config.Config) Config {
	cfg := DefaultConfig()
	cfg.ListenAddress = c.Server.Address
	cfg.MaxSubscriptions = c.Server.MaxSubscriptions
	cfg.Whitelist = c.Whitelist
	cfg.MetricsAddress = c.Metrics.Address
	cfg.Advertise = c.Discovery.Enabled
	cfg.Interface = c.Discovery.Interface
	cfg.Endpoint = c.OPCUA.Endpoint
	if c.Discovery.Instance != "" {
		cfg.Instance = c.Discovery.Instance
	}
	return cfg
}
