// Package config loads the gateway configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete gateway configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	OPCUA     OPCUAConfig     `yaml:"opcua"`
	Whitelist []string        `yaml:"whitelist"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Discovery DiscoveryConfig `yaml:"discovery"`
}

// ServerConfig configures the gRPC listener.
type ServerConfig struct {
	// Address is the listen address, e.g. ":50051".
	Address string `yaml:"address"`

	// MaxSubscriptions bounds concurrently live subscriptions.
	MaxSubscriptions int `yaml:"max_subscriptions"`
}

// OPCUAConfig configures the OPC UA adapter.
type OPCUAConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	PublishInterval time.Duration `yaml:"publish_interval"`
}

// LoggingConfig configures operational and protocol logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// File receives all log records in addition to stdout.
	File string `yaml:"file"`

	// ErrorFile receives error records only.
	ErrorFile string `yaml:"error_file"`

	// ProtocolLog is the path of the CBOR protocol capture.
	ProtocolLog string `yaml:"protocol_log"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Address serves /metrics when set.
	Address string `yaml:"address"`
}

// DiscoveryConfig configures mDNS advertisement of the gateway.
type DiscoveryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Instance  string `yaml:"instance"`
	Interface string `yaml:"interface"`
}

// LoadError describes a configuration file that could not be loaded.
type LoadError struct {
	// File is the path of the configuration file.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:          ":50051",
			MaxSubscriptions: 1000,
		},
		OPCUA: OPCUAConfig{
			Endpoint:        "opc.tcp://localhost:4840",
			RequestTimeout:  5 * time.Second,
			PublishInterval: time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Discovery: DiscoveryConfig{
			Instance: "gropc",
		},
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Message: "validation failed", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Address == "" {
		problems = append(problems, "server.address is required")
	} else if _, _, err := net.SplitHostPort(c.Server.Address); err != nil {
		problems = append(problems, fmt.Sprintf("server.address %q: %v", c.Server.Address, err))
	}
	if c.Server.MaxSubscriptions < 0 {
		problems = append(problems, "server.max_subscriptions must not be negative")
	}
	if c.OPCUA.Endpoint == "" {
		problems = append(problems, "opcua.endpoint is required")
	}
	if c.OPCUA.RequestTimeout < 0 {
		problems = append(problems, "opcua.request_timeout must not be negative")
	}
	if c.OPCUA.PublishInterval < 0 {
		problems = append(problems, "opcua.publish_interval must not be negative")
	}
	for i, node := range c.Whitelist {
		if strings.TrimSpace(node) == "" {
			problems = append(problems, fmt.Sprintf("whitelist[%d] is empty", i))
		}
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Discovery.Enabled && c.Discovery.Instance == "" {
		problems = append(problems, "discovery.instance is required when discovery is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
