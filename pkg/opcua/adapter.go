package opcua

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopcua/opcua"
	"github.com/gopcua/opcua/monitor"
	"github.com/gopcua/opcua/ua"

	"github.com/gropc-project/gropc-go/pkg/adapter"
)

// Default adapter settings.
const (
	DefaultRequestTimeout  = 5 * time.Second
	DefaultPublishInterval = time.Second
	DefaultQueueSize       = 16
)

// Config configures an Adapter.
type Config struct {
	// Endpoint is the OPC UA server URL, e.g. "opc.tcp://plc:4840".
	Endpoint string

	// RequestTimeout bounds every OPC UA request.
	RequestTimeout time.Duration

	// PublishInterval is the publishing interval of subscriptions.
	PublishInterval time.Duration

	// QueueSize buffers data changes between the OPC UA client and the
	// change callback.
	QueueSize int

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration for endpoint.
func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint:        endpoint,
		RequestTimeout:  DefaultRequestTimeout,
		PublishInterval: DefaultPublishInterval,
		QueueSize:       DefaultQueueSize,
	}
}

// Adapter talks to one OPC UA server.
type Adapter struct {
	config Config
	logger *slog.Logger

	mu      sync.RWMutex
	client  *opcua.Client
	monitor *monitor.NodeMonitor

	// opMu serializes read and write requests on the session.
	opMu sync.Mutex

	subMu      sync.Mutex
	subs       map[adapter.Handle]*monitoredNode
	nextHandle adapter.Handle
}

type monitoredNode struct {
	node   string
	sub    *monitor.Subscription
	cancel context.CancelFunc
}

// Compile-time interface satisfaction check.
var _ adapter.Adapter = (*Adapter)(nil)

// New creates a disconnected adapter.
func New(config Config) *Adapter {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}
	if config.PublishInterval <= 0 {
		config.PublishInterval = DefaultPublishInterval
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		config: config,
		logger: logger,
		subs:   make(map[adapter.Handle]*monitoredNode),
	}
}

// Connect opens the OPC UA session.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return nil
	}

	client, err := opcua.NewClient(a.config.Endpoint,
		opcua.SecurityMode(ua.MessageSecurityModeNone),
		opcua.AuthAnonymous(),
		opcua.RequestTimeout(a.config.RequestTimeout),
		opcua.AutoReconnect(true),
	)
	if err != nil {
		return fmt.Errorf("create client for %s: %w", a.config.Endpoint, err)
	}
	if err := client.Connect(ctx); err != nil {
		_ = client.Close(context.Background())
		return fmt.Errorf("%w: connect %s: %v", adapter.ErrDisconnected, a.config.Endpoint, err)
	}

	nm, err := monitor.NewNodeMonitor(client)
	if err != nil {
		_ = client.Close(context.Background())
		return fmt.Errorf("create node monitor: %w", err)
	}
	nm.SetErrorHandler(func(_ *opcua.Client, _ *monitor.Subscription, err error) {
		a.logger.Warn("opcua subscription error", "error", err)
	})

	a.client = client
	a.monitor = nm
	a.logger.Info("opcua session open", "endpoint", a.config.Endpoint)
	return nil
}

// Close ends all subscriptions and the session.
func (a *Adapter) Close(ctx context.Context) error {
	a.subMu.Lock()
	subs := a.subs
	a.subs = make(map[adapter.Handle]*monitoredNode)
	a.subMu.Unlock()

	for _, m := range subs {
		m.stop(ctx)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil {
		return nil
	}
	err := a.client.Close(ctx)
	a.client = nil
	a.monitor = nil
	a.logger.Info("opcua session closed", "endpoint", a.config.Endpoint)
	return err
}

// Read implements adapter.Adapter.
func (a *Adapter) Read(ctx context.Context, node string) (adapter.DataValue, error) {
	dv, err := a.readValue(ctx, node)
	if err != nil {
		return adapter.DataValue{}, err
	}
	if dv.Status != ua.StatusOK {
		if errors.Is(dv.Status, ua.StatusBadNodeIDUnknown) {
			return adapter.DataValue{}, fmt.Errorf("%w: %s", adapter.ErrUnknownNode, node)
		}
		return adapter.DataValue{}, fmt.Errorf("read %s: %w", node, dv.Status)
	}

	out := adapter.DataValue{Value: variantText(dv.Value)}
	if dv.Value != nil {
		out.Type = dataTypeOf(dv.Value.Type())
	}
	return out, nil
}

// Write implements adapter.Adapter.
func (a *Adapter) Write(ctx context.Context, node, value string, typ adapter.DataType) error {
	client, err := a.session()
	if err != nil {
		return err
	}
	id, err := ua.ParseNodeID(node)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", adapter.ErrUnknownNode, node, err)
	}
	variant, err := toVariant(value, typ)
	if err != nil {
		return err
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()

	resp, err := client.Write(ctx, &ua.WriteRequest{
		NodesToWrite: []*ua.WriteValue{{
			NodeID:      id,
			AttributeID: ua.AttributeIDValue,
			Value: &ua.DataValue{
				EncodingMask: ua.DataValueValue,
				Value:        variant,
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", adapter.ErrDisconnected, node, err)
	}
	if len(resp.Results) == 0 {
		return fmt.Errorf("write %s: no results returned", node)
	}

	switch st := resp.Results[0]; st {
	case ua.StatusOK:
		return nil
	case ua.StatusBadTypeMismatch, ua.StatusBadOutOfRange:
		return fmt.Errorf("%w: %s: %v", adapter.ErrWriteRejected, node, st)
	default:
		return fmt.Errorf("write %s: %w", node, st)
	}
}

// Subscribe implements adapter.Adapter. The server reports the current
// value first, then every change.
func (a *Adapter) Subscribe(ctx context.Context, node string, onChange adapter.ChangeFunc) (adapter.Handle, error) {
	a.mu.RLock()
	nm := a.monitor
	a.mu.RUnlock()
	if nm == nil {
		return 0, adapter.ErrDisconnected
	}

	subCtx, cancel := context.WithCancel(context.Background())
	ch := make(chan *monitor.DataChangeMessage, a.config.QueueSize)
	sub, err := nm.ChanSubscribe(subCtx, &opcua.SubscriptionParameters{
		Interval: a.config.PublishInterval,
	}, ch, node)
	if err != nil {
		cancel()
		return 0, fmt.Errorf("monitor %s: %w", node, err)
	}

	m := &monitoredNode{node: node, sub: sub, cancel: cancel}
	a.subMu.Lock()
	a.nextHandle++
	h := a.nextHandle
	a.subs[h] = m
	a.subMu.Unlock()

	go a.forward(subCtx, m, ch, onChange)

	a.logger.Debug("opcua monitored item created", "node", node, "handle", h)
	return h, nil
}

// forward passes data changes of one monitored item to its callback.
func (a *Adapter) forward(ctx context.Context, m *monitoredNode, ch <-chan *monitor.DataChangeMessage, onChange adapter.ChangeFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			if msg == nil {
				continue
			}
			if msg.Error != nil {
				a.logger.Warn("opcua data change error", "node", m.node, "error", msg.Error)
				continue
			}
			if msg.DataValue == nil || msg.Status != ua.StatusOK {
				continue
			}
			onChange(variantText(msg.Value))
		}
	}
}

// Unsubscribe implements adapter.Adapter.
func (a *Adapter) Unsubscribe(ctx context.Context, h adapter.Handle) error {
	a.subMu.Lock()
	m, ok := a.subs[h]
	delete(a.subs, h)
	a.subMu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", adapter.ErrUnknownHandle, h)
	}
	return m.stop(ctx)
}

// IsValidNode implements adapter.Adapter. A node is valid when its id
// parses and the server knows it. Session and transport failures are
// returned as errors, not as an invalid node.
func (a *Adapter) IsValidNode(ctx context.Context, node string) (bool, error) {
	dv, err := a.readValue(ctx, node)
	if errors.Is(err, adapter.ErrUnknownNode) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !errors.Is(dv.Status, ua.StatusBadNodeIDUnknown) && !errors.Is(dv.Status, ua.StatusBadNodeIDInvalid), nil
}

func (a *Adapter) readValue(ctx context.Context, node string) (*ua.DataValue, error) {
	client, err := a.session()
	if err != nil {
		return nil, err
	}
	id, err := ua.ParseNodeID(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", adapter.ErrUnknownNode, node, err)
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()

	resp, err := client.Read(ctx, &ua.ReadRequest{
		MaxAge:             0,
		TimestampsToReturn: ua.TimestampsToReturnBoth,
		NodesToRead: []*ua.ReadValueID{{
			NodeID:       id,
			AttributeID:  ua.AttributeIDValue,
			DataEncoding: &ua.QualifiedName{},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", adapter.ErrDisconnected, node, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("read %s: no results returned", node)
	}
	return resp.Results[0], nil
}

func (a *Adapter) session() (*opcua.Client, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.client == nil {
		return nil, adapter.ErrDisconnected
	}
	return a.client, nil
}

func (m *monitoredNode) stop(ctx context.Context) error {
	defer m.cancel()
	if err := m.sub.Unsubscribe(ctx); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", m.node, err)
	}
	return nil
}
