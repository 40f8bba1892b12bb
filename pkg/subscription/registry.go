package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gropc-project/gropc-go/pkg/adapter"
	"github.com/gropc-project/gropc-go/pkg/log"
)

// Registry errors.
var (
	ErrRegistryClosed    = errors.New("subscription registry closed")
	ErrResourceExhausted = errors.New("maximum subscriptions reached")
	ErrClientGone        = errors.New("client disconnected")
)

// Teardown reasons.
const (
	ReasonUnsubscribed = "unsubscribed"
	ReasonClientGone   = "client disconnected"
	ReasonShutdown     = "shutdown"
)

// Default registry limits.
const (
	DefaultMaxSubscriptions   = 1000
	DefaultQueueSize          = 64
	DefaultUnsubscribeTimeout = 5 * time.Second
)

// NodeNameError reports a node name the adapter does not know.
type NodeNameError struct {
	Node string
}

func (e *NodeNameError) Error() string {
	return fmt.Sprintf("unknown node name (%s)", e.Node)
}

// Observer receives subscription lifecycle and delivery counts.
type Observer interface {
	SubscriptionOpened()
	SubscriptionClosed(reason string)
	NotificationSent()
	NotificationDropped(reason string)
}

// Config holds registry configuration.
type Config struct {
	// MaxSubscriptions bounds concurrently live subscriptions.
	MaxSubscriptions int

	// QueueSize is the per-subscription notification buffer.
	QueueSize int

	// UnsubscribeTimeout bounds the adapter unsubscribe on teardown.
	UnsubscribeTimeout time.Duration

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger

	// ProtocolLogger receives subscription traffic. Nil disables capture.
	ProtocolLogger log.Logger

	// Observer receives counts for metrics. Nil disables it.
	Observer Observer
}

// DefaultConfig returns the default registry configuration.
func DefaultConfig() Config {
	return Config{
		MaxSubscriptions:   DefaultMaxSubscriptions,
		QueueSize:          DefaultQueueSize,
		UnsubscribeTimeout: DefaultUnsubscribeTimeout,
	}
}

// Sender writes one message to a subscription's outbound stream.
type Sender func(subscriptionID, response string) error

// Request describes a subscribe call.
type Request struct {
	// Node is the primary node.
	Node string

	// Associated are the nodes read on every notification, in order.
	Associated []string

	// Endpoint identifies the client; only it may unsubscribe.
	Endpoint string
}

// Registry owns all live subscriptions of a gateway.
type Registry struct {
	mu sync.RWMutex

	adapter adapter.Adapter
	config  Config
	logger  *slog.Logger

	subscriptions map[string]*Subscription
	closed        bool
}

// NewRegistry creates a registry on top of a connected adapter.
func NewRegistry(a adapter.Adapter, config Config) *Registry {
	if config.MaxSubscriptions <= 0 {
		config.MaxSubscriptions = DefaultMaxSubscriptions
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.UnsubscribeTimeout <= 0 {
		config.UnsubscribeTimeout = DefaultUnsubscribeTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Registry{
		adapter:       a,
		config:        config,
		logger:        logger,
		subscriptions: make(map[string]*Subscription),
	}
}

// Subscribe validates the request, opens the adapter subscription and sends
// the handshake. The caller runs Serve on the returned subscription.
//
// An unknown primary or associated node fails with *NodeNameError before
// anything is created. An adapter that cannot check the names fails with
// its own error, never with *NodeNameError. A failed handshake send tears the subscription down
// again and returns ErrClientGone.
func (r *Registry) Subscribe(ctx context.Context, req Request, send Sender) (*Subscription, error) {
	for _, node := range append([]string{req.Node}, req.Associated...) {
		ok, err := r.adapter.IsValidNode(ctx, node)
		if err != nil {
			return nil, fmt.Errorf("validate %s: %w", node, err)
		}
		if !ok {
			return nil, &NodeNameError{Node: node}
		}
	}

	sub := &Subscription{
		Node:       req.Node,
		Associated: append([]string(nil), req.Associated...),
		Endpoint:   req.Endpoint,
		registry:   r,
		send:       send,
		queue:      make(chan string, r.config.QueueSize),
		done:       make(chan struct{}),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	if len(r.subscriptions) >= r.config.MaxSubscriptions {
		r.mu.Unlock()
		return nil, ErrResourceExhausted
	}
	sub.ID = r.newIDLocked()
	r.subscriptions[sub.ID] = sub
	r.mu.Unlock()

	handle, err := r.adapter.Subscribe(ctx, req.Node, sub.enqueue)
	if err != nil {
		r.remove(sub)
		sub.markClosed()
		return nil, fmt.Errorf("subscribe %s: %w", req.Node, err)
	}
	if !sub.attach(handle) {
		// Torn down while the adapter subscription was being opened.
		r.releaseHandle(sub, handle)
		return nil, ErrRegistryClosed
	}

	r.observe(func(o Observer) { o.SubscriptionOpened() })
	r.logState(sub, "", "ACTIVE", "")
	r.logger.Debug("subscription opened",
		"id", sub.ID, "node", sub.Node, "associated", len(sub.Associated), "endpoint", sub.Endpoint)

	if err := send(sub.ID, ""); err != nil {
		sub.teardown(ReasonClientGone)
		return nil, fmt.Errorf("%w: %v", ErrClientGone, err)
	}
	return sub, nil
}

// Unsubscribe ends subscription id if it belongs to endpoint. Unknown ids
// and foreign endpoints are ignored. It reports whether a subscription was
// torn down.
func (r *Registry) Unsubscribe(id, endpoint string) bool {
	r.mu.RLock()
	sub, exists := r.subscriptions[id]
	r.mu.RUnlock()

	if !exists {
		return false
	}
	if sub.Endpoint != endpoint {
		r.logger.Debug("ignoring unsubscribe from foreign endpoint", "id", id, "endpoint", endpoint)
		return false
	}
	return sub.teardown(ReasonUnsubscribed)
}

// Close tears down every subscription and rejects new ones.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	subs := make([]*Subscription, 0, len(r.subscriptions))
	for _, sub := range r.subscriptions {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		sub.teardown(ReasonShutdown)
	}
}

// Count returns the number of live subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscriptions)
}

// Get returns a live subscription by id.
func (r *Registry) Get(id string) (*Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subscriptions[id]
	return sub, ok
}

// newIDLocked returns a UUID not used by a live subscription.
func (r *Registry) newIDLocked() string {
	for {
		id := uuid.NewString()
		if _, taken := r.subscriptions[id]; !taken {
			return id
		}
	}
}

func (r *Registry) remove(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subscriptions[sub.ID] == sub {
		delete(r.subscriptions, sub.ID)
	}
}

func (r *Registry) releaseHandle(sub *Subscription, h adapter.Handle) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.UnsubscribeTimeout)
	defer cancel()
	if err := r.adapter.Unsubscribe(ctx, h); err != nil {
		r.logger.Warn("adapter unsubscribe failed", "id", sub.ID, "node", sub.Node, "error", err)
	}
}

func (r *Registry) observe(fn func(Observer)) {
	if r.config.Observer != nil {
		fn(r.config.Observer)
	}
}

func (r *Registry) logState(sub *Subscription, oldState, newState, reason string) {
	log.Emit(r.config.ProtocolLogger, log.Event{
		ClientID:       sub.Endpoint,
		Layer:          log.LayerSubscription,
		Category:       log.CategoryState,
		SubscriptionID: sub.ID,
		Node:           sub.Node,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntitySubscription,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (r *Registry) logError(sub *Subscription, err error, during string) {
	log.Emit(r.config.ProtocolLogger, log.Event{
		ClientID:       sub.Endpoint,
		Layer:          log.LayerSubscription,
		Category:       log.CategoryError,
		SubscriptionID: sub.ID,
		Node:           sub.Node,
		Error: &log.ErrorEventData{
			Layer:   log.LayerSubscription,
			Message: err.Error(),
			Context: during,
		},
	})
}
