package interaction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gropc-project/gropc-go/pkg/connection"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

// Response is one change notification of a subscription.
type Response[T any] struct {
	// Value is the new value of the primary node.
	Value T

	// Associated maps each associated node to its value at notification time.
	Associated map[string]string
}

// Subscription follows one node on the gateway and keeps following it
// across broken streams. Configure it, register callbacks, then call
// Subscribe. Callbacks run on the subscription's goroutine, one at a time.
type Subscription[T any] struct {
	client *Client
	node   string

	mu         sync.Mutex
	machine    connection.Machine
	associated []string
	names      string
	err        error
	cancel     context.CancelFunc
	done       chan struct{}
	pending    []connection.Output

	onChange         func(Response[T])
	onConnected      func()
	onDisconnected   func()
	onConnectionLost func(attempt int)
	onError          func(error)
}

// NewSubscription creates an idle subscription to node using the default
// reconnection policy. T must be a type the value codec can decode.
func NewSubscription[T any](c *Client, node string) (*Subscription[T], error) {
	if err := wire.Supports[T](); err != nil {
		return nil, err
	}
	return &Subscription[T]{
		client:  c,
		node:    node,
		machine: connection.NewMachine(connection.DefaultPolicy()),
		done:    make(chan struct{}),
	}, nil
}

// Node returns the primary node.
func (s *Subscription[T]) Node() string {
	return s.node
}

// SetAssociated sets the nodes read with every notification. It fails with
// connection.ErrInvalidState once Subscribe was called and with
// *wire.ConfigError for names that cannot be sent.
func (s *Subscription[T]) SetAssociated(nodes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.machine.State != connection.StateIdle {
		return fmt.Errorf("%w: associated nodes are fixed once subscribed", connection.ErrInvalidState)
	}
	names, err := wire.JoinNames(nodes)
	if err != nil {
		return err
	}
	s.associated = append([]string(nil), nodes...)
	s.names = names
	return nil
}

// SetReconnectionPolicy replaces the reconnection policy. It fails with
// connection.ErrInvalidState once Subscribe was called.
func (s *Subscription[T]) SetReconnectionPolicy(p connection.ReconnectionPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.machine.WithPolicy(p)
	if err != nil {
		return err
	}
	s.machine = m
	return nil
}

// OnChange registers the change callback.
func (s *Subscription[T]) OnChange(fn func(Response[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// OnConnected registers the callback run after every accepted handshake.
func (s *Subscription[T]) OnConnected(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConnected = fn
}

// OnDisconnected registers the callback run when the subscription is ended
// locally.
func (s *Subscription[T]) OnDisconnected(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDisconnected = fn
}

// OnConnectionLost registers the callback run before each reconnection
// attempt.
func (s *Subscription[T]) OnConnectionLost(fn func(attempt int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConnectionLost = fn
}

// OnError registers the callback for terminal errors and for notifications
// that could not be decoded.
func (s *Subscription[T]) OnError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Subscribe starts the subscription. It returns immediately; the outcome is
// reported through the callbacks, Wait and Err. Cancelling ctx ends the
// subscription like Unsubscribe.
func (s *Subscription[T]) Subscribe(ctx context.Context) error {
	s.mu.Lock()
	if s.machine.State != connection.StateIdle {
		s.mu.Unlock()
		return fmt.Errorf("%w: already subscribed", connection.ErrInvalidState)
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	var outputs []connection.Output
	s.machine, outputs = s.machine.Step(connection.Start{})
	s.mu.Unlock()

	go s.run(runCtx, outputs)
	return nil
}

// Unsubscribe ends the subscription. The gateway is notified in the
// background; a failure to reach it is ignored. OnDisconnected runs on the
// subscription's goroutine after any callback in progress and before Done
// is closed.
func (s *Subscription[T]) Unsubscribe() {
	s.mu.Lock()
	var outputs, now []connection.Output
	s.machine, outputs = s.machine.Step(connection.Unsubscribe{})
	for _, out := range outputs {
		switch out.(type) {
		case connection.EmitDisconnected:
			s.pending = append(s.pending, out)
		default:
			now = append(now, out)
		}
	}
	s.mu.Unlock()
	s.perform(now)
}

// Mute suppresses change callbacks without closing the stream.
func (s *Subscription[T]) Mute() {
	s.step(connection.Mute{})
}

// Unmute resumes change callbacks.
func (s *Subscription[T]) Unmute() {
	s.step(connection.Unmute{})
}

// State returns the current lifecycle state.
func (s *Subscription[T]) State() connection.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State
}

// Muted reports whether change callbacks are suppressed.
func (s *Subscription[T]) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Muted
}

// ID returns the gateway's id of the current stream, or "" while not
// subscribed.
func (s *Subscription[T]) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.SubscriptionID
}

// Err returns the terminal error, or nil.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed when the subscription has stopped.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the subscription stops and returns its terminal error.
// An unsubscribed subscription returns nil.
func (s *Subscription[T]) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run carries out the machine's control outputs until it reaches a
// terminal state.
func (s *Subscription[T]) run(ctx context.Context, outputs []connection.Output) {
	defer close(s.done)
	defer s.cancelRun()
	defer s.performPending()

	for {
		var in connection.Input
		switch ctrl := s.perform(outputs).(type) {
		case connection.OpenStream:
			in = s.stream(ctx)
		case connection.Wait:
			in = s.wait(ctx, ctrl.Delay)
		default:
			return
		}
		if in == nil {
			return
		}
		var terminal bool
		outputs, terminal = s.step(in)
		if terminal {
			s.perform(outputs)
			return
		}
	}
}

// stream opens one subscribe stream and feeds its messages to the machine.
// It returns the input that ended the stream, or nil when the machine
// reached a terminal state while streaming.
func (s *Subscription[T]) stream(ctx context.Context) connection.Input {
	s.mu.Lock()
	names := s.names
	s.mu.Unlock()

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := s.client.openStream(streamCtx, s.node, names)
	if err != nil {
		return s.lost(ctx, err)
	}

	first := true
	for {
		msg, err := st.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return s.lost(ctx, err)
		}

		var in connection.Input
		switch {
		case first && msg.GetSubscriptionId() == wire.InvalidSubscriptionID:
			in = connection.HandshakeRejected{Node: msg.GetResponse()}
		case first:
			in = connection.Handshake{ID: msg.GetSubscriptionId()}
		default:
			in = connection.Notification{Payload: msg.GetResponse()}
		}
		first = false

		outputs, terminal := s.step(in)
		s.perform(outputs)
		if terminal {
			return nil
		}
	}
}

// lost turns a stream error into the next input. A cancelled run context
// means the subscription is being ended, not that the stream broke.
func (s *Subscription[T]) lost(ctx context.Context, err error) connection.Input {
	if ctx.Err() != nil {
		return connection.Unsubscribe{}
	}
	s.client.logger.Debug("subscription stream lost", "node", s.node, "error", err)
	return connection.StreamLost{Err: err}
}

func (s *Subscription[T]) wait(ctx context.Context, d time.Duration) connection.Input {
	select {
	case <-s.client.config.Clock.After(d):
		return connection.RetryElapsed{}
	case <-ctx.Done():
		return connection.Unsubscribe{}
	}
}

func (s *Subscription[T]) step(in connection.Input) ([]connection.Output, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var outputs []connection.Output
	s.machine, outputs = s.machine.Step(in)
	return outputs, s.machine.State.Terminal()
}

// perform raises the events among outputs and returns the last control
// output (OpenStream or Wait), if any.
func (s *Subscription[T]) perform(outputs []connection.Output) connection.Output {
	var ctrl connection.Output
	for _, out := range outputs {
		switch o := out.(type) {
		case connection.OpenStream, connection.Wait:
			ctrl = o
		case connection.NotifyServer:
			go s.notifyServer(o.ID)
		case connection.CancelStream:
			s.cancelRun()
		case connection.EmitConnected:
			if fn := s.callbacks().onConnected; fn != nil {
				fn()
			}
		case connection.EmitChanged:
			s.emitChanged(o.Payload)
		case connection.EmitConnectionLost:
			if fn := s.callbacks().onConnectionLost; fn != nil {
				fn(o.Attempt)
			}
		case connection.EmitDisconnected:
			if fn := s.callbacks().onDisconnected; fn != nil {
				fn()
			}
		case connection.EmitFailed:
			s.mu.Lock()
			s.err = o.Err
			s.mu.Unlock()
			s.client.logger.Warn("subscription failed", "node", s.node, "error", o.Err)
			if fn := s.callbacks().onError; fn != nil {
				fn(o.Err)
			}
		}
	}
	return ctrl
}

// performPending raises the events Unsubscribe left for the run goroutine.
func (s *Subscription[T]) performPending() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	s.perform(pending)
}

func (s *Subscription[T]) emitChanged(payload string) {
	cb := s.callbacks()
	v, assoc, err := wire.DecodePayload[T](payload, s.associatedNames())
	if err != nil {
		if cb.onError != nil {
			cb.onError(fmt.Errorf("decode notification of %s: %w", s.node, err))
		}
		return
	}
	if cb.onChange != nil {
		cb.onChange(Response[T]{Value: v, Associated: assoc})
	}
}

func (s *Subscription[T]) notifyServer(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.client.config.UnsubscribeTimeout)
	defer cancel()
	if err := s.client.Unsubscribe(ctx, id); err != nil {
		s.client.logger.Debug("unsubscribe notification failed", "id", id, "error", err)
	}
}

func (s *Subscription[T]) cancelRun() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

type callbackSet[T any] struct {
	onChange         func(Response[T])
	onConnected      func()
	onDisconnected   func()
	onConnectionLost func(int)
	onError          func(error)
}

func (s *Subscription[T]) callbacks() callbackSet[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return callbackSet[T]{
		onChange:         s.onChange,
		onConnected:      s.onConnected,
		onDisconnected:   s.onDisconnected,
		onConnectionLost: s.onConnectionLost,
		onError:          s.onError,
	}
}

func (s *Subscription[T]) associatedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.associated
}
