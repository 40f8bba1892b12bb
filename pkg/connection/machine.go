package connection

import (
	"errors"
	"fmt"
	"time"
)

// Subscription errors.
var (
	// ErrDisconnected is the terminal error of a subscription whose stream
	// could not be reopened within its ReconnectionPolicy.
	ErrDisconnected = errors.New("disconnected")

	// ErrInvalidState is returned when configuring a subscription that has
	// already been started.
	ErrInvalidState = errors.New("invalid state")
)

// UnknownNodeError is the terminal error of a subscription the gateway
// rejected because a node name is unknown. It is not retried.
type UnknownNodeError struct {
	Node string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node name (%s)", e.Node)
}

// DisconnectedError carries the last stream error of a failed subscription.
// It matches ErrDisconnected with errors.Is.
type DisconnectedError struct {
	Attempts int
	Err      error
}

func (e *DisconnectedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("disconnected after %d reconnection attempts", e.Attempts)
	}
	return fmt.Sprintf("disconnected after %d reconnection attempts: %v", e.Attempts, e.Err)
}

// Is reports whether target is ErrDisconnected.
func (e *DisconnectedError) Is(target error) bool {
	return target == ErrDisconnected
}

func (e *DisconnectedError) Unwrap() error {
	return e.Err
}

// State is the lifecycle state of a client subscription.
type State uint8

const (
	// StateIdle is a configured subscription that has not been started.
	StateIdle State = iota

	// StateConnecting waits for the gateway's handshake.
	StateConnecting

	// StateSubscribed receives notifications.
	StateSubscribed

	// StateReconnecting waits before reopening a lost stream.
	StateReconnecting

	// StateFailed is terminal: the node is unknown or retries ran out.
	StateFailed

	// StateUnsubscribed is terminal: the subscription was ended locally.
	StateUnsubscribed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateSubscribed:
		return "SUBSCRIBED"
	case StateReconnecting:
		return "RECONNECTING"
	case StateFailed:
		return "FAILED"
	case StateUnsubscribed:
		return "UNSUBSCRIBED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateUnsubscribed
}

// Input drives a Machine.
type Input interface{ input() }

// Inputs.
type (
	// Start begins the subscription.
	Start struct{}

	// Handshake is the first message of a stream. ID is the subscription id
	// assigned by the gateway.
	Handshake struct{ ID string }

	// HandshakeRejected is a handshake carrying the unknown-node sentinel.
	HandshakeRejected struct{ Node string }

	// Notification is a value change payload.
	Notification struct{ Payload string }

	// StreamLost reports that the stream ended or could not be opened.
	StreamLost struct{ Err error }

	// RetryElapsed reports that the reconnection delay is over.
	RetryElapsed struct{}

	// Unsubscribe ends the subscription.
	Unsubscribe struct{}

	// Mute suppresses change events without closing the stream.
	Mute struct{}

	// Unmute resumes change events.
	Unmute struct{}
)

func (Start) input()             {}
func (Handshake) input()         {}
func (HandshakeRejected) input() {}
func (Notification) input()      {}
func (StreamLost) input()        {}
func (RetryElapsed) input()      {}
func (Unsubscribe) input()       {}
func (Mute) input()              {}
func (Unmute) input()            {}

// Output is an effect requested by a transition.
type Output interface{ output() }

// Outputs.
type (
	// OpenStream opens a new subscription stream.
	OpenStream struct{}

	// Wait schedules RetryElapsed after Delay.
	Wait struct{ Delay time.Duration }

	// NotifyServer asks the gateway to drop subscription ID.
	NotifyServer struct{ ID string }

	// CancelStream closes the current stream or pending wait.
	CancelStream struct{}

	// EmitConnected raises the connected event.
	EmitConnected struct{}

	// EmitChanged raises a change event for Payload.
	EmitChanged struct{ Payload string }

	// EmitConnectionLost raises the connection lost event before the given
	// reconnection attempt.
	EmitConnectionLost struct{ Attempt int }

	// EmitDisconnected raises the disconnected event.
	EmitDisconnected struct{}

	// EmitFailed reports the terminal error.
	EmitFailed struct{ Err error }
)

func (OpenStream) output()         {}
func (Wait) output()               {}
func (NotifyServer) output()       {}
func (CancelStream) output()       {}
func (EmitConnected) output()      {}
func (EmitChanged) output()        {}
func (EmitConnectionLost) output() {}
func (EmitDisconnected) output()   {}
func (EmitFailed) output()         {}

// Machine is the state of one client subscription. The zero value is not
// usable; create machines with NewMachine.
type Machine struct {
	State          State
	Muted          bool
	Attempts       int
	SubscriptionID string
	Policy         ReconnectionPolicy
}

// NewMachine returns an idle machine using policy.
func NewMachine(policy ReconnectionPolicy) Machine {
	return Machine{State: StateIdle, Policy: policy}
}

// WithPolicy replaces the policy of an idle machine.
func (m Machine) WithPolicy(p ReconnectionPolicy) (Machine, error) {
	if m.State != StateIdle {
		return m, fmt.Errorf("%w: policy is fixed once subscribed (state %s)", ErrInvalidState, m.State)
	}
	if err := p.Validate(); err != nil {
		return m, err
	}
	m.Policy = p
	return m, nil
}

// Step applies one input. Inputs that do not apply in the current state
// leave the machine unchanged and produce no outputs.
func (m Machine) Step(in Input) (Machine, []Output) {
	switch in := in.(type) {
	case Start:
		if m.State != StateIdle {
			return m, nil
		}
		m.State = StateConnecting
		m.Attempts = 0
		m.Muted = false
		return m, []Output{OpenStream{}}

	case Handshake:
		if m.State != StateConnecting {
			return m, nil
		}
		m.State = StateSubscribed
		m.SubscriptionID = in.ID
		m.Attempts = 0
		m.Muted = false
		return m, []Output{EmitConnected{}}

	case HandshakeRejected:
		if m.State != StateConnecting {
			return m, nil
		}
		m.State = StateFailed
		return m, []Output{EmitFailed{Err: &UnknownNodeError{Node: in.Node}}}

	case Notification:
		if m.State != StateSubscribed || m.Muted {
			return m, nil
		}
		return m, []Output{EmitChanged{Payload: in.Payload}}

	case StreamLost:
		if m.State != StateConnecting && m.State != StateSubscribed {
			return m, nil
		}
		m.SubscriptionID = ""
		if !m.Policy.Allows(m.Attempts) {
			m.State = StateFailed
			return m, []Output{EmitFailed{Err: &DisconnectedError{Attempts: m.Attempts, Err: in.Err}}}
		}
		m.State = StateReconnecting
		return m, []Output{
			EmitConnectionLost{Attempt: m.Attempts + 1},
			Wait{Delay: m.Policy.Delay(m.Attempts)},
		}

	case RetryElapsed:
		if m.State != StateReconnecting {
			return m, nil
		}
		m.Attempts++
		m.State = StateConnecting
		return m, []Output{OpenStream{}}

	case Unsubscribe:
		switch m.State {
		case StateSubscribed:
			id := m.SubscriptionID
			m.State = StateUnsubscribed
			m.SubscriptionID = ""
			return m, []Output{NotifyServer{ID: id}, CancelStream{}, EmitDisconnected{}}
		case StateConnecting, StateReconnecting:
			m.State = StateUnsubscribed
			return m, []Output{CancelStream{}, EmitDisconnected{}}
		}
		return m, nil

	case Mute:
		m.Muted = true
		return m, nil

	case Unmute:
		m.Muted = false
		return m, nil
	}
	return m, nil
}
