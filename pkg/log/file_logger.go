package log

import (
	"bufio"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends events to a capture file. Every event is flushed to
// the file before Log returns, so a capture survives a crashed gateway up
// to the last event. It is safe for concurrent use.
type FileLogger struct {
	path string

	mu      sync.Mutex
	file    *os.File
	buf     *bufio.Writer
	encoder *cbor.Encoder

	written atomic.Uint64
	failed  atomic.Uint64
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	return &FileLogger{
		path:    path,
		file:    f,
		buf:     buf,
		encoder: NewEncoder(buf),
	}, nil
}

// Path returns the capture file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Log appends event. Failures are counted, never returned, and events
// logged after Close are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		l.failed.Add(1)
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.failed.Add(1)
		return
	}
	if err := l.buf.Flush(); err != nil {
		l.failed.Add(1)
		return
	}
	l.written.Add(1)
}

// Written returns the number of events stored.
func (l *FileLogger) Written() uint64 {
	return l.written.Load()
}

// Failed returns the number of events that could not be stored.
func (l *FileLogger) Failed() uint64 {
	return l.failed.Load()
}

// Sync commits the file to stable storage.
func (l *FileLogger) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return os.ErrClosed
	}
	return l.file.Sync()
}

// Close closes the file. Further calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.buf.Flush()
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}

var _ Logger = (*FileLogger)(nil)
