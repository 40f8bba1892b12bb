package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParse(t *testing.T) {
	data := []byte(`
server:
  address: "127.0.0.1:6000"
opcua:
  endpoint: "opc.tcp://plc:4840"
  request_timeout: 2s
  publish_interval: 250ms
whitelist:
  - ns=2;s=Setpoint
  - ns=2;s=Mode
logging:
  level: debug
  file: gateway.log
  error_file: errors.log
  protocol_log: capture.cbor
metrics:
  address: ":9100"
discovery:
  enabled: true
  instance: line-3
`)

	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6000", cfg.Server.Address)
	assert.Equal(t, 1000, cfg.Server.MaxSubscriptions, "defaults survive partial files")
	assert.Equal(t, "opc.tcp://plc:4840", cfg.OPCUA.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.OPCUA.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.OPCUA.PublishInterval)
	assert.Equal(t, []string{"ns=2;s=Setpoint", "ns=2;s=Mode"}, cfg.Whitelist)
	assert.Equal(t, "gateway.log", cfg.Logging.File)
	assert.Equal(t, "errors.log", cfg.Logging.ErrorFile)
	assert.Equal(t, "capture.cbor", cfg.Logging.ProtocolLog)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
	assert.True(t, cfg.Discovery.Enabled)
	assert.Equal(t, "line-3", cfg.Discovery.Instance)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "server: [unclosed"},
		{"bad address", "server:\n  address: nope"},
		{"empty endpoint", "opcua:\n  endpoint: \"\""},
		{"bad level", "logging:\n  level: loud"},
		{"empty whitelist entry", "whitelist:\n  - \"  \""},
		{"negative timeout", "opcua:\n  request_timeout: -1s"},
		{"discovery without instance", "discovery:\n  enabled: true\n  instance: \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			var le *LoadError
			assert.ErrorAs(t, err, &le)
		})
	}

	_, err := Parse([]byte("logging:\n  level: loud"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gropc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("opcua:\n  endpoint: opc.tcp://x:1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "opc.tcp://x:1", cfg.OPCUA.Endpoint)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, filepath.Join(dir, "missing.yaml"), le.File)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("logging:\n  level: loud\n"), 0o600))
	_, err = Load(bad)
	require.ErrorAs(t, err, &le)
	assert.Equal(t, bad, le.File)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
