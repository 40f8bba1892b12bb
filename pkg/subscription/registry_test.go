package subscription

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	"github.com/gropc-project/gropc-go/pkg/adapter/mocks"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

type message struct {
	id       string
	response string
}

type recorder struct {
	ch   chan message
	fail atomic.Bool
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan message, 100)}
}

func (r *recorder) send(id, response string) error {
	if r.fail.Load() {
		return errors.New("stream closed")
	}
	r.ch <- message{id: id, response: response}
	return nil
}

func (r *recorder) next(t *testing.T) message {
	t.Helper()
	select {
	case m := <-r.ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for message")
		return message{}
	}
}

func (r *recorder) none(t *testing.T) {
	t.Helper()
	select {
	case m := <-r.ch:
		t.Fatalf("unexpected message %+v", m)
	case <-time.After(50 * time.Millisecond):
	}
}

type countingObserver struct {
	mu      sync.Mutex
	opened  int
	closed  map[string]int
	sent    int
	dropped map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{closed: map[string]int{}, dropped: map[string]int{}}
}

func (o *countingObserver) SubscriptionOpened() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened++
}

func (o *countingObserver) SubscriptionClosed(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed[reason]++
}

func (o *countingObserver) NotificationSent() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent++
}

func (o *countingObserver) NotificationDropped(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dropped[reason]++
}

func newMemory(t *testing.T) *adapter.Memory {
	t.Helper()
	m := adapter.NewMemory()
	require.NoError(t, m.Connect(context.Background()))
	m.Define("A", adapter.DataTypeInt32, "1")
	m.Define("B", adapter.DataTypeDouble, "20")
	m.Define("C", adapter.DataTypeString, "thirty")
	return m
}

func serve(t *testing.T, ctx context.Context, sub *Subscription) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, sub.Serve(ctx))
	}()
	return done
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for Serve to return")
	}
}

func TestSubscribeHandshakeAndNotifications(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())
	rec := newRecorder()
	ctx := context.Background()

	sub, err := reg.Subscribe(ctx, Request{Node: "A", Associated: []string{"B", "C"}, Endpoint: "client-1"}, rec.send)
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)
	assert.Equal(t, 1, reg.Count())

	// The handshake is written before any notification.
	hs := rec.next(t)
	assert.Equal(t, message{id: sub.ID, response: ""}, hs)

	done := serve(t, ctx, sub)

	// Initial value delivered by the adapter on subscribe.
	first := rec.next(t)
	assert.Equal(t, sub.ID, first.id)
	v, assoc, err := wire.DecodePayload[int](first.response, []string{"B", "C"})
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, map[string]string{"B": "20", "C": "thirty"}, assoc)

	// Associated values are read fresh on every change.
	mem.Define("B", adapter.DataTypeDouble, "21.5")
	require.NoError(t, mem.Set("A", "2"))
	second := rec.next(t)
	assert.Equal(t, "2"+wire.Separator+"21.5"+wire.Separator+"thirty", second.response)

	assert.True(t, reg.Unsubscribe(sub.ID, "client-1"))
	waitClosed(t, done)
	assert.Equal(t, 0, mem.SubscriptionCount())
	assert.Equal(t, ReasonUnsubscribed, sub.Reason())
}

func TestSubscribeOrdering(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())
	rec := newRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := reg.Subscribe(ctx, Request{Node: "A", Endpoint: "c"}, rec.send)
	require.NoError(t, err)
	rec.next(t) // handshake
	done := serve(t, ctx, sub)
	assert.Equal(t, "1", rec.next(t).response)

	for _, v := range []string{"10", "11", "12", "13", "14"} {
		require.NoError(t, mem.Set("A", v))
	}
	for _, want := range []string{"10", "11", "12", "13", "14"} {
		assert.Equal(t, want, rec.next(t).response)
	}

	cancel()
	waitClosed(t, done)
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, ReasonClientGone, sub.Reason())
}

func TestSubscribeUnknownAssociatedNode(t *testing.T) {
	a := mocks.NewMockAdapter(t)
	a.EXPECT().IsValidNode(mock.Anything, "A").Return(true, nil).Once()
	a.EXPECT().IsValidNode(mock.Anything, "Z").Return(false, nil).Once()

	reg := NewRegistry(a, DefaultConfig())
	rec := newRecorder()

	_, err := reg.Subscribe(context.Background(), Request{Node: "A", Associated: []string{"Z", "B"}, Endpoint: "c"}, rec.send)

	var nodeErr *NodeNameError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "Z", nodeErr.Node)
	assert.Equal(t, 0, reg.Count())
	rec.none(t)
}

func TestSubscribeUnknownPrimaryNode(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())

	_, err := reg.Subscribe(context.Background(), Request{Node: "missing"}, newRecorder().send)

	var nodeErr *NodeNameError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "missing", nodeErr.Node)
	assert.Equal(t, 0, mem.SubscriptionCount())
}

func TestSubscribeWhileDisconnected(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())
	mem.SetConnected(false)

	_, err := reg.Subscribe(context.Background(), Request{Node: "A", Endpoint: "c"}, newRecorder().send)

	var nodeErr *NodeNameError
	assert.False(t, errors.As(err, &nodeErr))
	assert.ErrorIs(t, err, adapter.ErrDisconnected)
	assert.Equal(t, 0, reg.Count())

	mem.SetConnected(true)
	rec := newRecorder()
	sub, err := reg.Subscribe(context.Background(), Request{Node: "A", Endpoint: "c"}, rec.send)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, rec.next(t).id)
}

func TestSubscribeAdapterFailure(t *testing.T) {
	a := mocks.NewMockAdapter(t)
	a.EXPECT().IsValidNode(mock.Anything, "A").Return(true, nil)
	a.EXPECT().Subscribe(mock.Anything, "A", mock.Anything).Return(adapter.Handle(0), adapter.ErrDisconnected).Once()

	reg := NewRegistry(a, DefaultConfig())
	_, err := reg.Subscribe(context.Background(), Request{Node: "A"}, newRecorder().send)

	assert.ErrorIs(t, err, adapter.ErrDisconnected)
	assert.Equal(t, 0, reg.Count())
}

func TestHandshakeSendFailure(t *testing.T) {
	a := mocks.NewMockAdapter(t)
	a.EXPECT().IsValidNode(mock.Anything, "A").Return(true, nil)
	a.EXPECT().Subscribe(mock.Anything, "A", mock.Anything).Return(adapter.Handle(7), nil).Once()
	a.EXPECT().Unsubscribe(mock.Anything, adapter.Handle(7)).Return(nil).Once()

	reg := NewRegistry(a, DefaultConfig())
	rec := newRecorder()
	rec.fail.Store(true)

	_, err := reg.Subscribe(context.Background(), Request{Node: "A"}, rec.send)
	assert.ErrorIs(t, err, ErrClientGone)
	assert.Equal(t, 0, reg.Count())
}

func TestCloseDuringAdapterSubscribe(t *testing.T) {
	a := mocks.NewMockAdapter(t)
	obs := newCountingObserver()
	cfg := DefaultConfig()
	cfg.Observer = obs
	reg := NewRegistry(a, cfg)

	a.EXPECT().IsValidNode(mock.Anything, "A").Return(true, nil)
	a.EXPECT().Subscribe(mock.Anything, "A", mock.Anything).
		RunAndReturn(func(context.Context, string, adapter.ChangeFunc) (adapter.Handle, error) {
			reg.Close()
			return adapter.Handle(3), nil
		}).Once()
	a.EXPECT().Unsubscribe(mock.Anything, adapter.Handle(3)).Return(nil).Once()

	rec := newRecorder()
	_, err := reg.Subscribe(context.Background(), Request{Node: "A", Endpoint: "c"}, rec.send)
	assert.ErrorIs(t, err, ErrRegistryClosed)
	assert.Equal(t, 0, reg.Count())
	rec.none(t)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, 0, obs.opened)
	assert.Empty(t, obs.closed)
}

func TestFullQueueHoldsBackAdapter(t *testing.T) {
	mem := newMemory(t)
	obs := newCountingObserver()
	cfg := DefaultConfig()
	cfg.QueueSize = 1
	cfg.Observer = obs
	reg := NewRegistry(mem, cfg)
	rec := newRecorder()

	sub, err := reg.Subscribe(context.Background(), Request{Node: "A", Endpoint: "c"}, rec.send)
	require.NoError(t, err)
	rec.next(t)

	// The initial value fills the queue, so the next change waits for Serve.
	setDone := make(chan struct{})
	go func() {
		defer close(setDone)
		for _, v := range []string{"2", "3", "4"} {
			assert.NoError(t, mem.Set("A", v))
		}
	}()
	select {
	case <-setDone:
		t.Fatal("Set returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := serve(t, ctx, sub)
	for _, want := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, want, rec.next(t).response)
	}
	waitClosed(t, setDone)

	cancel()
	waitClosed(t, done)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Empty(t, obs.dropped)
	assert.Equal(t, 4, obs.sent)
}

func TestSendFailureTearsDown(t *testing.T) {
	mem := newMemory(t)
	obs := newCountingObserver()
	cfg := DefaultConfig()
	cfg.Observer = obs
	reg := NewRegistry(mem, cfg)
	rec := newRecorder()

	sub, err := reg.Subscribe(context.Background(), Request{Node: "A", Endpoint: "c"}, rec.send)
	require.NoError(t, err)
	rec.next(t)

	// The client is gone before the first notification is delivered.
	rec.fail.Store(true)
	done := serve(t, context.Background(), sub)
	waitClosed(t, done)

	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, 0, mem.SubscriptionCount())

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, 1, obs.opened)
	assert.Equal(t, 1, obs.closed[ReasonClientGone])
	assert.Equal(t, 1, obs.dropped["send"])

	// Later changes are dropped without blocking.
	require.NoError(t, mem.Set("A", "5"))
}

func TestUnsubscribeEndpointMismatch(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())
	rec := newRecorder()

	sub, err := reg.Subscribe(context.Background(), Request{Node: "A", Endpoint: "owner"}, rec.send)
	require.NoError(t, err)

	assert.False(t, reg.Unsubscribe(sub.ID, "intruder"))
	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, 1, mem.SubscriptionCount())

	assert.False(t, reg.Unsubscribe("no-such-id", "owner"))

	assert.True(t, reg.Unsubscribe(sub.ID, "owner"))
	assert.False(t, reg.Unsubscribe(sub.ID, "owner"), "second unsubscribe is a no-op")
	assert.Equal(t, 0, mem.SubscriptionCount())

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription not closed")
	}
}

func TestAssociatedReadFailureDropsNotification(t *testing.T) {
	mem := newMemory(t)
	obs := newCountingObserver()
	cfg := DefaultConfig()
	cfg.Observer = obs
	reg := NewRegistry(mem, cfg)
	rec := newRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := reg.Subscribe(ctx, Request{Node: "A", Associated: []string{"B"}, Endpoint: "c"}, rec.send)
	require.NoError(t, err)
	rec.next(t)
	done := serve(t, ctx, sub)
	rec.next(t) // initial value

	mem.SetConnected(false)
	require.NoError(t, mem.Set("A", "2"))
	rec.none(t)

	mem.SetConnected(true)
	require.NoError(t, mem.Set("A", "3"))
	assert.Equal(t, "3"+wire.Separator+"20", rec.next(t).response)

	cancel()
	waitClosed(t, done)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, 1, obs.dropped["read"])
	assert.Equal(t, 2, obs.sent)
}

func TestAmbiguousValueDropped(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())
	rec := newRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := reg.Subscribe(ctx, Request{Node: "C", Associated: []string{"B"}, Endpoint: "c"}, rec.send)
	require.NoError(t, err)
	rec.next(t)
	serve(t, ctx, sub)
	rec.next(t)

	require.NoError(t, mem.Set("C", "x"+wire.Separator+"y"))
	rec.none(t)

	require.NoError(t, mem.Set("C", "plain"))
	assert.Equal(t, "plain"+wire.Separator+"20", rec.next(t).response)
}

func TestCloseTearsDownAll(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())

	var dones []<-chan struct{}
	for i := 0; i < 3; i++ {
		sub, err := reg.Subscribe(context.Background(), Request{Node: "A", Endpoint: "c"}, newRecorder().send)
		require.NoError(t, err)
		dones = append(dones, serve(t, context.Background(), sub))
	}
	assert.Equal(t, 3, reg.Count())

	reg.Close()
	for _, d := range dones {
		waitClosed(t, d)
	}
	assert.Equal(t, 0, reg.Count())
	assert.Equal(t, 0, mem.SubscriptionCount())

	_, err := reg.Subscribe(context.Background(), Request{Node: "A"}, newRecorder().send)
	assert.ErrorIs(t, err, ErrRegistryClosed)
}

func TestMaxSubscriptions(t *testing.T) {
	mem := newMemory(t)
	cfg := DefaultConfig()
	cfg.MaxSubscriptions = 1
	reg := NewRegistry(mem, cfg)

	_, err := reg.Subscribe(context.Background(), Request{Node: "A"}, newRecorder().send)
	require.NoError(t, err)

	_, err = reg.Subscribe(context.Background(), Request{Node: "A"}, newRecorder().send)
	assert.ErrorIs(t, err, ErrResourceExhausted)
}

func TestUniqueIDs(t *testing.T) {
	mem := newMemory(t)
	reg := NewRegistry(mem, DefaultConfig())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sub, err := reg.Subscribe(context.Background(), Request{Node: "A"}, newRecorder().send)
		require.NoError(t, err)
		require.False(t, seen[sub.ID], "duplicate id %s", sub.ID)
		seen[sub.ID] = true

		got, ok := reg.Get(sub.ID)
		require.True(t, ok)
		assert.Same(t, sub, got)
	}
}
