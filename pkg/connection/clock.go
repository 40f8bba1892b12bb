package connection

import "time"

// Clock provides the timers a subscription waits on between attempts.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// After implements Clock.
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
