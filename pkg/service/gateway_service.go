package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	apiv1 "github.com/gropc-project/gropc-go/pkg/api/v1"
	"github.com/gropc-project/gropc-go/pkg/discovery"
	"github.com/gropc-project/gropc-go/pkg/interaction"
	"github.com/gropc-project/gropc-go/pkg/subscription"
	"github.com/gropc-project/gropc-go/pkg/version"
	"github.com/gropc-project/gropc-go/pkg/whitelist"
)

// GatewayService runs one gateway on top of an adapter.
type GatewayService struct {
	adapter adapter.Adapter
	config  Config
	logger  *slog.Logger

	metrics  *GatewayMetrics
	gatherer prometheus.Gatherer

	mu    sync.RWMutex
	state ServiceState

	registry        *subscription.Registry
	grpcServer      *grpc.Server
	listener        net.Listener
	metricsServer   *http.Server
	metricsListener net.Listener
	advertiser      discovery.Advertiser
}

// NewGatewayService creates a gateway service. The adapter is connected by
// Start and closed by Stop.
func NewGatewayService(a adapter.Adapter, config Config) (*GatewayService, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: adapter is nil", ErrInvalidConfig)
	}
	if config.ListenAddress == "" {
		return nil, fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if config.Instance == "" {
		config.Instance = discovery.DefaultInstance
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var gatherer prometheus.Gatherer
	reg := config.Registerer
	if reg == nil {
		private := prometheus.NewRegistry()
		private.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		reg, gatherer = private, private
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	} else {
		gatherer = prometheus.DefaultGatherer
	}

	metrics, err := NewGatewayMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	return &GatewayService{
		adapter:  a,
		config:   config,
		logger:   logger,
		metrics:  metrics,
		gatherer: gatherer,
	}, nil
}

// State returns the current service state.
func (s *GatewayService) State() ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Metrics returns the gateway collectors.
func (s *GatewayService) Metrics() *GatewayMetrics {
	return s.metrics
}

// Addr returns the gRPC listen address, or nil before Start.
func (s *GatewayService) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// MetricsAddr returns the metrics listen address, or nil when disabled.
func (s *GatewayService) MetricsAddr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.metricsListener == nil {
		return nil
	}
	return s.metricsListener.Addr()
}

// Registry returns the subscription registry, or nil before Start.
func (s *GatewayService) Registry() *subscription.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Start connects the adapter and starts serving. A failed advertisement is
// logged and does not fail Start.
func (s *GatewayService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle && s.state != StateStopped {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.state = StateStarting
	s.mu.Unlock()

	if err := s.start(ctx); err != nil {
		s.shutdown()
		s.setState(StateIdle)
		return err
	}

	s.setState(StateRunning)
	s.logger.Info("gateway started",
		"address", s.Addr().String(),
		"version", version.String(),
		"whitelist", len(s.config.Whitelist))
	return nil
}

func (s *GatewayService) start(ctx context.Context) error {
	if err := s.adapter.Connect(ctx); err != nil {
		return fmt.Errorf("connect adapter: %w", err)
	}

	lis, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.ListenAddress, err)
	}

	regConfig := subscription.DefaultConfig()
	if s.config.MaxSubscriptions > 0 {
		regConfig.MaxSubscriptions = s.config.MaxSubscriptions
	}
	regConfig.Logger = s.logger
	regConfig.ProtocolLogger = s.config.ProtocolLogger
	regConfig.Observer = s.metrics
	registry := subscription.NewRegistry(s.adapter, regConfig)

	server := interaction.NewServer(s.adapter, registry, interaction.ServerConfig{
		Whitelist:      whitelist.New(s.config.Whitelist),
		Logger:         s.logger,
		ProtocolLogger: s.config.ProtocolLogger,
		Metrics:        s.metrics,
	})

	grpcServer := grpc.NewServer(s.config.ServerOptions...)
	apiv1.RegisterGatewayServiceServer(grpcServer, server)

	s.mu.Lock()
	s.listener = lis
	s.registry = registry
	s.grpcServer = grpcServer
	s.mu.Unlock()

	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.logger.Error("gRPC server stopped", "error", err)
		}
	}()

	if s.config.MetricsAddress != "" {
		if err := s.startMetrics(); err != nil {
			return err
		}
	}

	if s.config.Advertise {
		s.advertise(ctx, lis.Addr())
	}
	return nil
}

func (s *GatewayService) startMetrics() error {
	lis, err := net.Listen("tcp", s.config.MetricsAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.MetricsAddress, err)
	}

	srv := &http.Server{
		Handler:           metricsHandler(s.gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	s.metricsListener = lis
	s.metricsServer = srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", "error", err)
		}
	}()
	s.logger.Info("metrics endpoint listening", "address", lis.Addr().String())
	return nil
}

func (s *GatewayService) advertise(ctx context.Context, addr net.Addr) {
	adv := s.config.Advertiser
	if adv == nil {
		cfg := discovery.DefaultAdvertiserConfig()
		cfg.Interface = s.config.Interface
		adv = discovery.NewMDNSAdvertiser(cfg)
	}

	var port uint16
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = uint16(tcp.Port)
	}

	info := &discovery.GatewayInfo{
		Instance:   s.config.Instance,
		Port:       port,
		APIVersion: version.Current,
		Build:      version.Build,
		Endpoint:   s.config.Endpoint,
		ReadOnly:   len(s.config.Whitelist) == 0,
	}
	if err := adv.Advertise(ctx, info); err != nil {
		s.logger.Warn("mDNS advertisement failed", "instance", info.Instance, "error", err)
		return
	}

	s.mu.Lock()
	s.advertiser = adv
	s.mu.Unlock()
	s.logger.Info("advertising gateway", "instance", info.Instance, "service", discovery.ServiceTypeGateway, "port", port)
}

// Stop withdraws the advertisement, tears down all subscriptions, stops
// serving and closes the adapter.
func (s *GatewayService) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.state = StateStopping
	s.mu.Unlock()

	s.shutdown()
	s.setState(StateStopped)
	s.logger.Info("gateway stopped")
	return nil
}

// shutdown releases whatever start created, in reverse order.
func (s *GatewayService) shutdown() {
	s.mu.Lock()
	adv := s.advertiser
	registry := s.registry
	grpcServer := s.grpcServer
	metricsServer := s.metricsServer
	s.advertiser = nil
	s.registry = nil
	s.grpcServer = nil
	s.listener = nil
	s.metricsServer = nil
	s.metricsListener = nil
	s.mu.Unlock()

	if adv != nil {
		if err := adv.Stop(); err != nil {
			s.logger.Warn("stop advertisement", "error", err)
		}
	}

	// Ends every SubscribeValue stream so GracefulStop does not wait on them.
	if registry != nil {
		registry.Close()
	}

	if grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(s.config.ShutdownTimeout):
			s.logger.Warn("graceful stop timed out, closing connections")
			grpcServer.Stop()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			s.logger.Warn("stop metrics server", "error", err)
		}
	}

	if err := s.adapter.Close(ctx); err != nil {
		s.logger.Warn("close adapter", "error", err)
	}
}

func (s *GatewayService) setState(state ServiceState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
