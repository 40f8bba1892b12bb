package interaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	apiv1 "github.com/gropc-project/gropc-go/pkg/api/v1"
	"github.com/gropc-project/gropc-go/pkg/log"
	"github.com/gropc-project/gropc-go/pkg/subscription"
	"github.com/gropc-project/gropc-go/pkg/whitelist"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

// Metrics receives per-operation outcomes.
type Metrics interface {
	// ObserveRead records a read. Err is nil on success.
	ObserveRead(err error, elapsed time.Duration)

	// ObserveWrite records a write with its status, or "error" when the
	// adapter failed.
	ObserveWrite(status string, elapsed time.Duration)
}

// ServerConfig configures a Server.
type ServerConfig struct {
	// Whitelist lists the writable nodes. Nil rejects every write.
	Whitelist *whitelist.Whitelist

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger

	// ProtocolLogger receives request and response events. Nil disables capture.
	ProtocolLogger log.Logger

	// Metrics receives operation outcomes. Nil disables metrics.
	Metrics Metrics
}

// Server implements the gateway service on top of an adapter.
type Server struct {
	apiv1.UnimplementedGatewayServiceServer

	adapter  adapter.Adapter
	registry *subscription.Registry
	types    *TypeCache
	config   ServerConfig
	logger   *slog.Logger
}

// Compile-time interface satisfaction check.
var _ apiv1.GatewayServiceServer = (*Server)(nil)

// NewServer creates a gateway service. Subscriptions are owned by registry,
// which must use the same adapter.
func NewServer(a adapter.Adapter, registry *subscription.Registry, config ServerConfig) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		adapter:  a,
		registry: registry,
		types:    NewTypeCache(a),
		config:   config,
		logger:   logger,
	}
}

// Types returns the server's type cache.
func (s *Server) Types() *TypeCache {
	return s.types
}

// ReadValue reads one node. Adapter failures are reported as Unavailable
// and not retried.
func (s *Server) ReadValue(ctx context.Context, req *apiv1.ReadValueRequest) (*apiv1.ReadValueResponse, error) {
	start := time.Now()
	endpoint := EndpointFromContext(ctx)
	node := req.GetNodeName()
	s.logRequest(endpoint, log.OpRead, node, "", "")

	if node == "" {
		s.logResponse(endpoint, log.OpRead, node, "", codes.InvalidArgument.String(), start)
		return nil, status.Error(codes.InvalidArgument, "node name is required")
	}

	dv, err := s.adapter.Read(ctx, node)
	if m := s.config.Metrics; m != nil {
		m.ObserveRead(err, time.Since(start))
	}
	if err != nil {
		s.logger.Warn("read failed", "node", node, "endpoint", endpoint, "error", err)
		s.logError(endpoint, node, err, "read")
		s.logResponse(endpoint, log.OpRead, node, "", codes.Unavailable.String(), start)
		return nil, status.Errorf(codes.Unavailable, "disconnected: %v", err)
	}

	s.types.Store(node, dv.Type)
	s.logResponse(endpoint, log.OpRead, node, dv.Value, codes.OK.String(), start)
	return &apiv1.ReadValueResponse{Value: dv.Value}, nil
}

// SubscribeValue streams changes of a node until the client unsubscribes or
// goes away. An unknown node is answered with a single message carrying the
// invalid subscription id and the offending node name.
func (s *Server) SubscribeValue(req *apiv1.SubscribeValueRequest, stream apiv1.GatewayService_SubscribeValueServer) error {
	ctx := stream.Context()
	endpoint := EndpointFromContext(ctx)
	node := req.GetNodeName()
	associated := wire.SplitNames(req.GetReturnedValues())
	s.logRequest(endpoint, log.OpSubscribe, node, req.GetReturnedValues(), "")

	send := func(id, response string) error {
		return stream.Send(&apiv1.SubscribeValueResponse{SubscriptionId: id, Response: response})
	}

	sub, err := s.registry.Subscribe(ctx, subscription.Request{
		Node:       node,
		Associated: associated,
		Endpoint:   endpoint,
	}, send)

	var nodeErr *subscription.NodeNameError
	switch {
	case err == nil:
	case errors.As(err, &nodeErr):
		s.logger.Info("subscribe rejected", "node", node, "unknown", nodeErr.Node, "endpoint", endpoint)
		s.logResponse(endpoint, log.OpSubscribe, node, nodeErr.Node, wire.InvalidSubscriptionID, time.Time{})
		return send(wire.InvalidSubscriptionID, nodeErr.Node)
	case errors.Is(err, subscription.ErrClientGone):
		return nil
	case errors.Is(err, subscription.ErrResourceExhausted):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		s.logger.Warn("subscribe failed", "node", node, "endpoint", endpoint, "error", err)
		s.logError(endpoint, node, err, "subscribe")
		return status.Errorf(codes.Unavailable, "disconnected: %v", err)
	}

	s.logger.Debug("subscription serving", "id", sub.ID, "node", node, "endpoint", endpoint)
	return sub.Serve(ctx)
}

// UnsubscribeValue ends a subscription owned by the caller. Unknown ids and
// subscriptions of other clients are ignored; the call always succeeds.
func (s *Server) UnsubscribeValue(ctx context.Context, req *apiv1.UnsubscribeValueRequest) (*emptypb.Empty, error) {
	endpoint := EndpointFromContext(ctx)
	id := req.GetSubscriptionId()
	s.logRequest(endpoint, log.OpUnsubscribe, "", id, "")

	if !s.registry.Unsubscribe(id, endpoint) {
		s.logger.Debug("unsubscribe ignored", "id", id, "endpoint", endpoint)
	}
	return &emptypb.Empty{}, nil
}

// WriteValue writes one node. Policy and type failures are reported in the
// response status; adapter failures as Unavailable.
func (s *Server) WriteValue(ctx context.Context, req *apiv1.WriteValueRequest) (*apiv1.WriteValueResponse, error) {
	start := time.Now()
	endpoint := EndpointFromContext(ctx)
	node, value, declared := req.GetNodeName(), req.GetValue(), req.GetType()
	s.logRequest(endpoint, log.OpWrite, node, value, declared)

	st, err := s.write(ctx, node, value, declared)
	if err != nil {
		if m := s.config.Metrics; m != nil {
			m.ObserveWrite("error", time.Since(start))
		}
		s.logger.Warn("write failed", "node", node, "endpoint", endpoint, "error", err)
		s.logError(endpoint, node, err, "write")
		s.logResponse(endpoint, log.OpWrite, node, "", codes.Unavailable.String(), start)
		return nil, status.Errorf(codes.Unavailable, "disconnected: %v", err)
	}

	if m := s.config.Metrics; m != nil {
		m.ObserveWrite(st.String(), time.Since(start))
	}
	if !st.IsSuccess() {
		s.logger.Info("write refused", "node", node, "type", declared, "status", st, "endpoint", endpoint)
	}
	s.logResponse(endpoint, log.OpWrite, node, "", st.String(), start)
	return &apiv1.WriteValueResponse{Response: st.String()}, nil
}

// write applies the write checks in order: whitelist, declared type,
// native type family, value syntax. A non-nil error means the adapter
// could not be reached.
func (s *Server) write(ctx context.Context, node, value, declared string) (wire.WriteStatus, error) {
	if !s.config.Whitelist.IsWriteAllowed(node) {
		return wire.StatusUnauthorized, nil
	}

	kind, err := wire.ParseKind(declared)
	if err != nil {
		return wire.StatusUnknownType, nil
	}

	native, err := s.types.Resolve(ctx, node)
	if err != nil {
		return "", err
	}
	if !compatible(kind, native) {
		return wire.StatusWrongType, nil
	}

	v, err := wire.DecodeAs(value, kind)
	if err != nil {
		return wire.StatusWrongType, nil
	}
	canonical, err := wire.Encode(v)
	if err != nil {
		return wire.StatusWrongType, nil
	}

	if err := s.adapter.Write(ctx, node, canonical, native); err != nil {
		if errors.Is(err, adapter.ErrWriteRejected) {
			return wire.StatusWrongType, nil
		}
		return "", err
	}
	return wire.StatusOK, nil
}

func (s *Server) logRequest(endpoint string, op log.Operation, node, value, declared string) {
	log.Emit(s.config.ProtocolLogger, log.Event{
		ClientID:  endpoint,
		Direction: log.DirectionIn,
		Layer:     log.LayerRPC,
		Category:  log.CategoryMessage,
		Node:      node,
		Message: &log.MessageEvent{
			Type:         log.MessageTypeRequest,
			Operation:    op,
			Value:        value,
			DeclaredType: declared,
		},
	})
}

func (s *Server) logResponse(endpoint string, op log.Operation, node, value, st string, start time.Time) {
	msg := &log.MessageEvent{
		Type:      log.MessageTypeResponse,
		Operation: op,
		Value:     value,
		Status:    st,
	}
	if !start.IsZero() {
		d := time.Since(start)
		msg.ProcessingTime = &d
	}
	log.Emit(s.config.ProtocolLogger, log.Event{
		ClientID:  endpoint,
		Direction: log.DirectionOut,
		Layer:     log.LayerRPC,
		Category:  log.CategoryMessage,
		Node:      node,
		Message:   msg,
	})
}

func (s *Server) logError(endpoint, node string, err error, during string) {
	log.Emit(s.config.ProtocolLogger, log.Event{
		ClientID: endpoint,
		Layer:    log.LayerAdapter,
		Category: log.CategoryError,
		Node:     node,
		Error: &log.ErrorEventData{
			Layer:   log.LayerAdapter,
			Message: err.Error(),
			Context: during,
		},
	})
}
