package subscription

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	"github.com/gropc-project/gropc-go/pkg/log"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

// Subscription is a live subscription bound to one outbound stream.
type Subscription struct {
	// ID is the client-visible subscription id.
	ID string

	// Node is the primary node.
	Node string

	// Associated are the nodes read with every notification.
	Associated []string

	// Endpoint identifies the owning client.
	Endpoint string

	registry *Registry
	send     Sender
	queue    chan string
	done     chan struct{}

	mu       sync.Mutex
	handle   adapter.Handle
	attached bool
	closed   bool
	reason   string
}

// Done is closed when the subscription has been torn down.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Reason returns why the subscription ended, or "" while it is live.
func (s *Subscription) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Serve delivers notifications until the subscription is torn down or ctx
// ends. It must be called once, from the goroutine owning the stream. Every
// return path leaves the subscription torn down.
func (s *Subscription) Serve(ctx context.Context) error {
	for {
		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			s.teardown(ReasonClientGone)
			return nil
		case primary := <-s.queue:
			if err := s.deliver(ctx, primary); err != nil {
				s.registry.logger.Debug("subscription stream closed", "id", s.ID, "error", err)
				s.teardown(ReasonClientGone)
				return nil
			}
		}
	}
}

// deliver sends one notification. It returns an error only when the stream
// is gone; notifications that cannot be built are dropped.
func (s *Subscription) deliver(ctx context.Context, primary string) error {
	select {
	case <-s.done:
		return nil
	default:
	}

	r := s.registry
	values, err := s.readAssociated(ctx)
	if err != nil {
		r.logger.Warn("dropping notification: associated read failed", "id", s.ID, "node", s.Node, "error", err)
		r.logError(s, err, "read associated values")
		r.observe(func(o Observer) { o.NotificationDropped("read") })
		return nil
	}

	payload, err := wire.EncodePayload(primary, values)
	if err != nil {
		r.logger.Warn("dropping notification: payload not encodable", "id", s.ID, "node", s.Node, "error", err)
		r.logError(s, err, "encode payload")
		r.observe(func(o Observer) { o.NotificationDropped("encode") })
		return nil
	}

	if err := s.send(s.ID, payload); err != nil {
		r.observe(func(o Observer) { o.NotificationDropped("send") })
		return fmt.Errorf("%w: %v", ErrClientGone, err)
	}

	r.observe(func(o Observer) { o.NotificationSent() })
	log.Emit(r.config.ProtocolLogger, log.Event{
		ClientID:       s.Endpoint,
		Direction:      log.DirectionOut,
		Layer:          log.LayerSubscription,
		Category:       log.CategoryMessage,
		SubscriptionID: s.ID,
		Node:           s.Node,
		Message: &log.MessageEvent{
			Type:      log.MessageTypeNotification,
			Operation: log.OpSubscribe,
			Value:     payload,
		},
	})
	return nil
}

// readAssociated reads all associated nodes concurrently, preserving order.
func (s *Subscription) readAssociated(ctx context.Context) ([]string, error) {
	if len(s.Associated) == 0 {
		return nil, nil
	}

	values := make([]string, len(s.Associated))
	g, gctx := errgroup.WithContext(ctx)
	for i, node := range s.Associated {
		g.Go(func() error {
			dv, err := s.registry.adapter.Read(gctx, node)
			if err != nil {
				return fmt.Errorf("read %s: %w", node, err)
			}
			values[i] = dv.Value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// enqueue is the adapter change callback. It blocks while the queue is
// full, holding back the adapter until Serve catches up or the
// subscription is torn down.
func (s *Subscription) enqueue(value string) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.queue <- value:
	case <-s.done:
	}
}

// attach records the adapter handle. It fails if the subscription was torn
// down in the meantime.
func (s *Subscription) attach(h adapter.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.handle = h
	s.attached = true
	return true
}

// markClosed closes a subscription that never got an adapter handle.
func (s *Subscription) markClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
}

// teardown releases the adapter handle, stops Serve and removes the
// subscription from the registry. Only the first call has an effect.
func (s *Subscription) teardown(reason string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	s.reason = reason
	handle, attached := s.handle, s.attached
	close(s.done)
	s.mu.Unlock()

	r := s.registry
	r.remove(s)
	if !attached {
		r.logState(s, "", "CLOSED", reason)
		r.logger.Debug("subscription closed before it was opened", "id", s.ID, "node", s.Node, "reason", reason)
		return true
	}

	r.releaseHandle(s, handle)
	r.observe(func(o Observer) { o.SubscriptionClosed(reason) })
	r.logState(s, "ACTIVE", "CLOSED", reason)
	r.logger.Debug("subscription closed", "id", s.ID, "node", s.Node, "reason", reason)
	return true
}
