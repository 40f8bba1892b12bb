package connection

import (
	"errors"
	"fmt"
	"time"
)

const (
	// Unbounded as MaxAttempts retries forever.
	Unbounded = -1

	// DefaultTimeout is the default delay between reconnection attempts.
	DefaultTimeout = 2200 * time.Millisecond

	// DefaultMaxTimeout caps a growing delay when MaxTimeout is not set.
	DefaultMaxTimeout = 60 * time.Second
)

// ErrInvalidPolicy is returned by ReconnectionPolicy.Validate.
var ErrInvalidPolicy = errors.New("invalid reconnection policy")

// ReconnectionPolicy controls how a lost subscription is reopened.
type ReconnectionPolicy struct {
	// Timeout is the delay before the first reconnection attempt.
	Timeout time.Duration

	// MaxAttempts bounds consecutive reconnection attempts. Unbounded (-1)
	// retries forever; zero fails on the first loss.
	MaxAttempts int

	// Multiplier grows the delay after every failed attempt. Values <= 1
	// keep the delay constant.
	Multiplier float64

	// MaxTimeout caps the grown delay. Zero uses DefaultMaxTimeout.
	MaxTimeout time.Duration
}

// DefaultPolicy returns a constant 2.2s delay with unbounded attempts.
func DefaultPolicy() ReconnectionPolicy {
	return ReconnectionPolicy{
		Timeout:     DefaultTimeout,
		MaxAttempts: Unbounded,
	}
}

// Validate checks the policy fields.
func (p ReconnectionPolicy) Validate() error {
	if p.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidPolicy, p.Timeout)
	}
	if p.MaxAttempts < Unbounded {
		return fmt.Errorf("%w: max attempts must be >= 0 or Unbounded, got %d", ErrInvalidPolicy, p.MaxAttempts)
	}
	if p.MaxTimeout < 0 {
		return fmt.Errorf("%w: max timeout must not be negative", ErrInvalidPolicy)
	}
	return nil
}

// Allows reports whether another attempt may follow the given number of
// attempts already made.
func (p ReconnectionPolicy) Allows(attempts int) bool {
	return p.MaxAttempts == Unbounded || attempts < p.MaxAttempts
}

// Delay returns the wait before the attempt following the given number of
// failed attempts.
func (p ReconnectionPolicy) Delay(attempts int) time.Duration {
	d := p.Timeout
	if p.Multiplier <= 1 {
		return d
	}
	limit := p.MaxTimeout
	if limit <= 0 {
		limit = DefaultMaxTimeout
	}
	for i := 0; i < attempts; i++ {
		next := float64(d) * p.Multiplier
		if next >= float64(limit) {
			return limit
		}
		d = time.Duration(next)
	}
	return d
}
