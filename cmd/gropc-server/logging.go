package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// fanoutHandler passes every record to each handler that accepts its level.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, hh := range h {
		if hh.Enabled(ctx, r.Level) {
			errs = append(errs, hh.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithGroup(name)
	}
	return out
}

// logOutputs describes where operational logs go.
type logOutputs struct {
	Level     slog.Level
	Console   io.Writer
	File      string
	ErrorFile string
}

// newLogger builds the server logger: text to the console at the configured
// level, the same records to File, and errors only to ErrorFile. The
// returned closer closes the opened files.
func newLogger(out logOutputs) (*slog.Logger, func() error, error) {
	handlers := fanoutHandler{
		slog.NewTextHandler(out.Console, &slog.HandlerOptions{Level: out.Level}),
	}
	var files []*os.File

	closeAll := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}

	open := func(path string, level slog.Level) error {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		files = append(files, f)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		return nil
	}

	if out.File != "" {
		if err := open(out.File, out.Level); err != nil {
			return nil, nil, err
		}
	}
	if out.ErrorFile != "" {
		if err := open(out.ErrorFile, slog.LevelError); err != nil {
			_ = closeAll()
			return nil, nil, err
		}
	}

	return slog.New(handlers), closeAll, nil
}
