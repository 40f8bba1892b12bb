package connection

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func step(t *testing.T, m Machine, in Input) (Machine, []Output) {
	t.Helper()
	return m.Step(in)
}

func TestStartAndHandshake(t *testing.T) {
	m := NewMachine(DefaultPolicy())

	m, out := step(t, m, Start{})
	if m.State != StateConnecting {
		t.Fatalf("state = %v, want CONNECTING", m.State)
	}
	if !reflect.DeepEqual(out, []Output{OpenStream{}}) {
		t.Errorf("outputs = %#v", out)
	}

	m, out = step(t, m, Handshake{ID: "sub-1"})
	if m.State != StateSubscribed {
		t.Fatalf("state = %v, want SUBSCRIBED", m.State)
	}
	if m.SubscriptionID != "sub-1" {
		t.Errorf("SubscriptionID = %q", m.SubscriptionID)
	}
	if !reflect.DeepEqual(out, []Output{EmitConnected{}}) {
		t.Errorf("outputs = %#v", out)
	}

	// A second Start is ignored.
	m2, out := step(t, m, Start{})
	if len(out) != 0 || m2 != m {
		t.Errorf("Start in SUBSCRIBED changed machine: %#v %#v", m2, out)
	}
}

func TestHandshakeRejected(t *testing.T) {
	m := NewMachine(DefaultPolicy())
	m, _ = step(t, m, Start{})

	m, out := step(t, m, HandshakeRejected{Node: "ns=2;s=Nope"})
	if m.State != StateFailed {
		t.Fatalf("state = %v, want FAILED", m.State)
	}
	if len(out) != 1 {
		t.Fatalf("outputs = %#v", out)
	}
	failed, ok := out[0].(EmitFailed)
	if !ok {
		t.Fatalf("output = %#v, want EmitFailed", out[0])
	}
	var unknown *UnknownNodeError
	if !errors.As(failed.Err, &unknown) || unknown.Node != "ns=2;s=Nope" {
		t.Errorf("err = %v", failed.Err)
	}

	// Terminal: stream loss does not trigger a retry.
	if _, out := step(t, m, StreamLost{}); len(out) != 0 {
		t.Errorf("StreamLost after failure produced %#v", out)
	}
}

func TestNotificationsAndMute(t *testing.T) {
	m := NewMachine(DefaultPolicy())

	// Notifications before the handshake are dropped.
	if _, out := step(t, m, Notification{Payload: "1"}); len(out) != 0 {
		t.Errorf("notification in IDLE produced %#v", out)
	}

	m, _ = step(t, m, Start{})
	m, _ = step(t, m, Handshake{ID: "id"})

	_, out := step(t, m, Notification{Payload: "1"})
	if !reflect.DeepEqual(out, []Output{EmitChanged{Payload: "1"}}) {
		t.Errorf("outputs = %#v", out)
	}

	m, _ = step(t, m, Mute{})
	m, _ = step(t, m, Mute{})
	if !m.Muted || m.State != StateSubscribed {
		t.Fatalf("mute: %#v", m)
	}
	if _, out := step(t, m, Notification{Payload: "2"}); len(out) != 0 {
		t.Errorf("muted notification produced %#v", out)
	}

	m, _ = step(t, m, Unmute{})
	m, _ = step(t, m, Unmute{})
	if _, out := step(t, m, Notification{Payload: "3"}); !reflect.DeepEqual(out, []Output{EmitChanged{Payload: "3"}}) {
		t.Errorf("outputs after unmute = %#v", out)
	}
}

func TestReconnectBounded(t *testing.T) {
	policy := ReconnectionPolicy{Timeout: 2 * time.Second, MaxAttempts: 3}
	m := NewMachine(policy)
	m, _ = step(t, m, Start{})
	m, _ = step(t, m, Handshake{ID: "id"})

	var waits []time.Duration
	var lost []int
	streamErr := errors.New("connection refused")

	for i := 0; i < 10 && !m.State.Terminal(); i++ {
		var out []Output
		m, out = step(t, m, StreamLost{Err: streamErr})
		for _, o := range out {
			switch o := o.(type) {
			case Wait:
				waits = append(waits, o.Delay)
			case EmitConnectionLost:
				lost = append(lost, o.Attempt)
			case EmitFailed:
				if !errors.Is(o.Err, ErrDisconnected) {
					t.Errorf("failure = %v, want ErrDisconnected", o.Err)
				}
				if !errors.Is(o.Err, streamErr) {
					t.Errorf("failure should wrap the stream error: %v", o.Err)
				}
			}
		}
		if m.State == StateReconnecting {
			m, out = step(t, m, RetryElapsed{})
			if !reflect.DeepEqual(out, []Output{OpenStream{}}) {
				t.Errorf("retry outputs = %#v", out)
			}
		}
	}

	if m.State != StateFailed {
		t.Fatalf("state = %v, want FAILED", m.State)
	}
	if len(waits) != 3 {
		t.Errorf("waits = %v, want 3", waits)
	}
	for _, w := range waits {
		if w < 2*time.Second {
			t.Errorf("wait %v shorter than timeout", w)
		}
	}
	if !reflect.DeepEqual(lost, []int{1, 2, 3}) {
		t.Errorf("connection lost attempts = %v", lost)
	}
}

func TestReconnectZeroAttempts(t *testing.T) {
	m := NewMachine(ReconnectionPolicy{Timeout: time.Second, MaxAttempts: 0})
	m, _ = step(t, m, Start{})
	m, out := step(t, m, StreamLost{})

	if m.State != StateFailed {
		t.Fatalf("state = %v, want FAILED", m.State)
	}
	if _, ok := out[0].(EmitFailed); !ok {
		t.Errorf("outputs = %#v", out)
	}
}

func TestReconnectUnbounded(t *testing.T) {
	m := NewMachine(DefaultPolicy())
	m, _ = step(t, m, Start{})

	for i := 0; i < 100; i++ {
		m, _ = step(t, m, StreamLost{})
		if m.State != StateReconnecting {
			t.Fatalf("attempt %d: state = %v", i, m.State)
		}
		m, _ = step(t, m, RetryElapsed{})
	}
	if m.Attempts != 100 {
		t.Errorf("Attempts = %d, want 100", m.Attempts)
	}

	// A successful handshake resets the counter.
	m, _ = step(t, m, Handshake{ID: "again"})
	if m.Attempts != 0 {
		t.Errorf("Attempts after handshake = %d", m.Attempts)
	}
}

func TestUnsubscribe(t *testing.T) {
	t.Run("Subscribed", func(t *testing.T) {
		m := NewMachine(DefaultPolicy())
		m, _ = step(t, m, Start{})
		m, _ = step(t, m, Handshake{ID: "abc"})

		m, out := step(t, m, Unsubscribe{})
		want := []Output{NotifyServer{ID: "abc"}, CancelStream{}, EmitDisconnected{}}
		if !reflect.DeepEqual(out, want) {
			t.Errorf("outputs = %#v", out)
		}
		if m.State != StateUnsubscribed {
			t.Errorf("state = %v", m.State)
		}

		// Idempotent.
		if _, out := step(t, m, Unsubscribe{}); len(out) != 0 {
			t.Errorf("second unsubscribe produced %#v", out)
		}
	})

	t.Run("Reconnecting", func(t *testing.T) {
		m := NewMachine(DefaultPolicy())
		m, _ = step(t, m, Start{})
		m, _ = step(t, m, StreamLost{})

		m, out := step(t, m, Unsubscribe{})
		if !reflect.DeepEqual(out, []Output{CancelStream{}, EmitDisconnected{}}) {
			t.Errorf("outputs = %#v", out)
		}
		if m.State != StateUnsubscribed {
			t.Errorf("state = %v", m.State)
		}
		if _, out := step(t, m, RetryElapsed{}); len(out) != 0 {
			t.Errorf("retry after unsubscribe produced %#v", out)
		}
	})

	t.Run("Idle", func(t *testing.T) {
		m := NewMachine(DefaultPolicy())
		m, out := step(t, m, Unsubscribe{})
		if len(out) != 0 || m.State != StateIdle {
			t.Errorf("unsubscribe in IDLE: %v %#v", m.State, out)
		}
	})
}

func TestWithPolicy(t *testing.T) {
	m := NewMachine(DefaultPolicy())

	m, err := m.WithPolicy(ReconnectionPolicy{Timeout: time.Second, MaxAttempts: 5})
	if err != nil {
		t.Fatalf("WithPolicy: %v", err)
	}
	if m.Policy.MaxAttempts != 5 {
		t.Errorf("policy not applied")
	}

	if _, err := m.WithPolicy(ReconnectionPolicy{}); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("zero timeout: err = %v", err)
	}

	m, _ = step(t, m, Start{})
	if _, err := m.WithPolicy(DefaultPolicy()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("after start: err = %v, want ErrInvalidState", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:         "IDLE",
		StateConnecting:   "CONNECTING",
		StateSubscribed:   "SUBSCRIBED",
		StateReconnecting: "RECONNECTING",
		StateFailed:       "FAILED",
		StateUnsubscribed: "UNSUBSCRIBED",
		State(99):         "UNKNOWN",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
