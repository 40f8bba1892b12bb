package log

// MultiLogger fans every event out to a fixed set of loggers, in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers. Nil and NoopLogger entries are skipped
// and nested MultiLoggers are flattened.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		switch l := l.(type) {
		case nil, NoopLogger:
		case *MultiLogger:
			m.loggers = append(m.loggers, l.loggers...)
		default:
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Len returns the number of combined loggers.
func (m *MultiLogger) Len() int {
	return len(m.loggers)
}

// Log implements Logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
