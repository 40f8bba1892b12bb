package log

import "time"

// Logger receives protocol events. Log is called from request and
// subscription goroutines concurrently and must not block for long.
type Logger interface {
	Log(event Event)
}

// NoopLogger drops every event.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}

// Emit stamps the event with the current time if unset and passes it to l.
// A nil l drops the event.
func Emit(l Logger, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	l.Log(event)
}
