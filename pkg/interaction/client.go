package interaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	apiv1 "github.com/gropc-project/gropc-go/pkg/api/v1"
	"github.com/gropc-project/gropc-go/pkg/connection"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

// Client errors.
var (
	// ErrDisconnected is returned when the gateway cannot be reached or
	// cannot reach its data source.
	ErrDisconnected = connection.ErrDisconnected

	// ErrUnauthorized is returned for writes to nodes outside the gateway's
	// whitelist.
	ErrUnauthorized = errors.New("write not authorized")

	// ErrWrongType is returned when the written value does not match the
	// node's native type.
	ErrWrongType = errors.New("wrong type")

	// ErrUnknownType is returned when the gateway does not know the
	// declared type.
	ErrUnknownType = wire.ErrUnknownType
)

// UnknownNodeError is the terminal error of a subscription to an unknown node.
type UnknownNodeError = connection.UnknownNodeError

// WriteError reports a write the gateway refused.
type WriteError struct {
	Node   string
	Status wire.WriteStatus
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %s", e.Node, e.Status)
}

// Unwrap maps the status to its sentinel error.
func (e *WriteError) Unwrap() error {
	switch e.Status {
	case wire.StatusUnauthorized:
		return ErrUnauthorized
	case wire.StatusWrongType:
		return ErrWrongType
	case wire.StatusUnknownType:
		return ErrUnknownType
	}
	return nil
}

// Default client settings.
const (
	DefaultRequestTimeout     = 10 * time.Second
	DefaultUnsubscribeTimeout = 2 * time.Second
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// ClientID identifies this client to the gateway. Empty generates a
	// random id.
	ClientID string

	// RequestTimeout bounds one-shot calls whose context has no deadline.
	RequestTimeout time.Duration

	// UnsubscribeTimeout bounds the background unsubscribe notification.
	UnsubscribeTimeout time.Duration

	// Clock times reconnection delays. Nil uses the system clock.
	Clock connection.Clock

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RequestTimeout:     DefaultRequestTimeout,
		UnsubscribeTimeout: DefaultUnsubscribeTimeout,
	}
}

// Client calls a gateway.
type Client struct {
	rpc    apiv1.GatewayServiceClient
	conn   *grpc.ClientConn
	config ClientConfig
	logger *slog.Logger
}

// Dial creates a client for the gateway at target. Without options the
// connection is plaintext.
func Dial(target string, config ClientConfig, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	c := NewClientWithConfig(apiv1.NewGatewayServiceClient(conn), config)
	c.conn = conn
	return c, nil
}

// NewClient creates a client on top of a generated stub.
func NewClient(rpc apiv1.GatewayServiceClient) *Client {
	return NewClientWithConfig(rpc, DefaultClientConfig())
}

// NewClientWithConfig creates a client on top of a generated stub.
func NewClientWithConfig(rpc apiv1.GatewayServiceClient, config ClientConfig) *Client {
	if config.ClientID == "" {
		config.ClientID = uuid.NewString()
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}
	if config.UnsubscribeTimeout <= 0 {
		config.UnsubscribeTimeout = DefaultUnsubscribeTimeout
	}
	if config.Clock == nil {
		config.Clock = connection.SystemClock{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{rpc: rpc, config: config, logger: logger}
}

// ID returns the client id sent with every call.
func (c *Client) ID() string {
	return c.config.ClientID
}

// Close closes the connection opened by Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Read returns the current value of node as text.
func (c *Client) Read(ctx context.Context, node string) (string, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.rpc.ReadValue(ctx, &apiv1.ReadValueRequest{NodeName: node})
	if err != nil {
		return "", transportError(ctx, "read", node, err)
	}
	return resp.GetValue(), nil
}

// ReadAs reads node and decodes its value as T.
func ReadAs[T any](ctx context.Context, c *Client, node string) (T, error) {
	var zero T
	if err := wire.Supports[T](); err != nil {
		return zero, err
	}
	text, err := c.Read(ctx, node)
	if err != nil {
		return zero, err
	}
	return wire.Decode[T](text)
}

// Write writes value to node. The declared type is derived from the Go
// type of value.
func (c *Client) Write(ctx context.Context, node string, value any) error {
	kind, err := wire.KindOf(value)
	if err != nil {
		return err
	}
	text, err := wire.Encode(value)
	if err != nil {
		return err
	}
	return c.WriteText(ctx, node, text, kind)
}

// WriteInt writes an integer node.
func (c *Client) WriteInt(ctx context.Context, node string, v int64) error {
	return c.Write(ctx, node, v)
}

// WriteDouble writes a Float or Double node.
func (c *Client) WriteDouble(ctx context.Context, node string, v float64) error {
	return c.Write(ctx, node, v)
}

// WriteBool writes a Boolean node.
func (c *Client) WriteBool(ctx context.Context, node string, v bool) error {
	return c.Write(ctx, node, v)
}

// WriteString writes a String node.
func (c *Client) WriteString(ctx context.Context, node, v string) error {
	return c.Write(ctx, node, v)
}

// WriteText writes already encoded text with an explicit declared type.
func (c *Client) WriteText(ctx context.Context, node, text string, kind wire.Kind) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.rpc.WriteValue(ctx, &apiv1.WriteValueRequest{
		NodeName: node,
		Value:    text,
		Type:     kind.String(),
	})
	if err != nil {
		return transportError(ctx, "write", node, err)
	}
	st := wire.WriteStatus(resp.GetResponse())
	if !st.IsSuccess() {
		return &WriteError{Node: node, Status: st}
	}
	return nil
}

// Unsubscribe asks the gateway to end subscription id.
func (c *Client) Unsubscribe(ctx context.Context, id string) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.rpc.UnsubscribeValue(ctx, &apiv1.UnsubscribeValueRequest{SubscriptionId: id}); err != nil {
		return transportError(ctx, "unsubscribe", id, err)
	}
	return nil
}

// openStream starts a subscribe call. The stream lives as long as ctx.
func (c *Client) openStream(ctx context.Context, node, returnedValues string) (apiv1.GatewayService_SubscribeValueClient, error) {
	return c.rpc.SubscribeValue(WithClientID(ctx, c.config.ClientID), &apiv1.SubscribeValueRequest{
		NodeName:       node,
		ReturnedValues: returnedValues,
	})
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = WithClientID(ctx, c.config.ClientID)
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.config.RequestTimeout)
}

// transportError maps a failed call to ErrDisconnected unless the caller
// gave up first.
func transportError(ctx context.Context, op, node string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
		return fmt.Errorf("%s %s: %w", op, node, ctxErr)
	}
	return fmt.Errorf("%s %s: %w: %s", op, node, ErrDisconnected, status.Convert(err).Message())
}
