package service

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	adaptermocks "github.com/gropc-project/gropc-go/pkg/adapter/mocks"
	"github.com/gropc-project/gropc-go/pkg/config"
	"github.com/gropc-project/gropc-go/pkg/connection"
	"github.com/gropc-project/gropc-go/pkg/discovery"
	discoverymocks "github.com/gropc-project/gropc-go/pkg/discovery/mocks"
	"github.com/gropc-project/gropc-go/pkg/interaction"
	"github.com/gropc-project/gropc-go/pkg/subscription"
	"github.com/gropc-project/gropc-go/pkg/version"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ListenAddress = "127.0.0.1:0"
	cfg.Whitelist = []string{"a"}
	cfg.Registerer = prometheus.NewRegistry()
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

func newMemory() *adapter.Memory {
	m := adapter.NewMemory()
	m.Define("A", adapter.DataTypeInt32, "1")
	m.Define("B", adapter.DataTypeString, "idle")
	return m
}

func startService(t *testing.T, a adapter.Adapter, cfg Config) *GatewayService {
	t.Helper()
	svc, err := NewGatewayService(a, cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() {
		if svc.State() == StateRunning {
			_ = svc.Stop()
		}
	})
	return svc
}

func dial(t *testing.T, svc *GatewayService) *interaction.Client {
	t.Helper()
	c, err := interaction.Dial(svc.Addr().String(), interaction.DefaultClientConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewGatewayServiceValidation(t *testing.T) {
	_, err := NewGatewayService(nil, testConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := testConfig()
	cfg.ListenAddress = ""
	_, err = NewGatewayService(newMemory(), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// Registering the collectors twice on one registry fails.
	cfg = testConfig()
	_, err = NewGatewayService(newMemory(), cfg)
	require.NoError(t, err)
	_, err = NewGatewayService(newMemory(), cfg)
	assert.Error(t, err)
}

func TestGatewayServiceServes(t *testing.T) {
	svc := startService(t, newMemory(), testConfig())
	assert.Equal(t, StateRunning, svc.State())
	require.NotNil(t, svc.Addr())

	c := dial(t, svc)
	ctx := context.Background()

	value, err := c.Read(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	require.NoError(t, c.WriteInt(ctx, "A", 42))
	err = c.WriteString(ctx, "B", "busy")
	assert.ErrorIs(t, err, interaction.ErrUnauthorized)

	value, err = c.Read(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "42", value)

	m := svc.Metrics()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.readsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writesTotal.WithLabelValues("OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writesTotal.WithLabelValues("UNAUTHORIZED")))
}

func TestGatewayServiceStartTwice(t *testing.T) {
	svc := startService(t, newMemory(), testConfig())
	assert.ErrorIs(t, svc.Start(context.Background()), ErrAlreadyStarted)
}

func TestGatewayServiceStop(t *testing.T) {
	mem := newMemory()
	svc, err := NewGatewayService(mem, testConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Stop(), ErrNotStarted)

	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Stop())
	assert.Equal(t, StateStopped, svc.State())
	assert.Nil(t, svc.Addr())
	assert.Nil(t, svc.Registry())
	assert.ErrorIs(t, svc.Stop(), ErrNotStarted)

	_, err = mem.Read(context.Background(), "A")
	assert.ErrorIs(t, err, adapter.ErrDisconnected, "adapter is closed on stop")

	// A stopped service can be started again.
	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, StateRunning, svc.State())
	require.NoError(t, svc.Stop())
}

func TestGatewayServiceAdapterConnectFails(t *testing.T) {
	a := adaptermocks.NewMockAdapter(t)
	a.EXPECT().Connect(mock.Anything).Return(errors.New("no route to host")).Once()
	a.EXPECT().Close(mock.Anything).Return(nil).Once()

	svc, err := NewGatewayService(a, testConfig())
	require.NoError(t, err)

	err = svc.Start(context.Background())
	assert.ErrorContains(t, err, "connect adapter")
	assert.Equal(t, StateIdle, svc.State())
	assert.Nil(t, svc.Addr())
}

func TestGatewayServiceListenFails(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	cfg := testConfig()
	cfg.ListenAddress = lis.Addr().String()
	svc, err := NewGatewayService(newMemory(), cfg)
	require.NoError(t, err)

	assert.Error(t, svc.Start(context.Background()))
	assert.Equal(t, StateIdle, svc.State())
}

func TestGatewayServiceStopEndsSubscriptions(t *testing.T) {
	svc := startService(t, newMemory(), testConfig())
	c := dial(t, svc)

	sub, err := interaction.NewSubscription[int](c, "A")
	require.NoError(t, err)
	require.NoError(t, sub.SetReconnectionPolicy(connection.ReconnectionPolicy{Timeout: time.Second, MaxAttempts: 0}))

	connected := make(chan struct{})
	sub.OnConnected(func() { close(connected) })
	require.NoError(t, sub.Subscribe(context.Background()))

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not connect")
	}
	assert.Equal(t, 1, svc.Registry().Count())

	require.NoError(t, svc.Stop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.ErrorIs(t, sub.Wait(ctx), connection.ErrDisconnected)

	m := svc.Metrics()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.subscriptionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscriptionsClosed.WithLabelValues(subscription.ReasonShutdown)))
}

func TestGatewayServiceMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Registerer = nil
	cfg.MetricsAddress = "127.0.0.1:0"
	svc := startService(t, newMemory(), cfg)
	require.NotNil(t, svc.MetricsAddr())

	_, err := dial(t, svc).Read(context.Background(), "A")
	require.NoError(t, err)

	resp, err := http.Get("http://" + svc.MetricsAddr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `gropc_reads_total{result="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestGatewayServiceAdvertises(t *testing.T) {
	adv := discoverymocks.NewMockAdvertiser(t)

	cfg := testConfig()
	cfg.Advertise = true
	cfg.Instance = "line-3"
	cfg.Endpoint = "opc.tcp://plc:4840"
	cfg.Advertiser = adv

	var announced *discovery.GatewayInfo
	adv.EXPECT().Advertise(mock.Anything, mock.Anything).
		Run(func(_ context.Context, info *discovery.GatewayInfo) { announced = info }).
		Return(nil).Once()
	adv.EXPECT().Stop().Return(nil).Once()

	svc := startService(t, newMemory(), cfg)

	require.NotNil(t, announced)
	assert.Equal(t, "line-3", announced.Instance)
	assert.Equal(t, uint16(svc.Addr().(*net.TCPAddr).Port), announced.Port)
	assert.Equal(t, version.Current, announced.APIVersion)
	assert.Equal(t, "opc.tcp://plc:4840", announced.Endpoint)
	assert.False(t, announced.ReadOnly)

	require.NoError(t, svc.Stop())
}

func TestGatewayServiceAdvertiseFailureIsNotFatal(t *testing.T) {
	adv := discoverymocks.NewMockAdvertiser(t)
	adv.EXPECT().Advertise(mock.Anything, mock.Anything).Return(errors.New("multicast unavailable")).Once()

	cfg := testConfig()
	cfg.Advertise = true
	cfg.Whitelist = nil
	cfg.Advertiser = adv

	svc := startService(t, newMemory(), cfg)
	assert.Equal(t, StateRunning, svc.State())
	require.NoError(t, svc.Stop())
}

func TestFromConfig(t *testing.T) {
	c := config.Default()
	c.Server.Address = ":6000"
	c.Server.MaxSubscriptions = 10
	c.Whitelist = []string{"a", "b"}
	c.Metrics.Address = ":9100"
	c.Discovery.Enabled = true
	c.Discovery.Instance = "plant"

	cfg := FromConfig(c)
	assert.Equal(t, ":6000", cfg.ListenAddress)
	assert.Equal(t, 10, cfg.MaxSubscriptions)
	assert.Equal(t, []string{"a", "b"}, cfg.Whitelist)
	assert.Equal(t, ":9100", cfg.MetricsAddress)
	assert.True(t, cfg.Advertise)
	assert.Equal(t, "plant", cfg.Instance)
	assert.Equal(t, c.OPCUA.Endpoint, cfg.Endpoint)

	c.Discovery.Instance = ""
	assert.Equal(t, discovery.DefaultInstance, FromConfig(c).Instance)
}

func TestServiceStateString(t *testing.T) {
	assert.Equal(t, "RUNNING", StateRunning.String())
	assert.Equal(t, "UNKNOWN", ServiceState(99).String())
}
