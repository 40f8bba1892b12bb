package log

import (
	"context"
	"log/slog"
)

// SlogAdapter renders protocol events as debug records of an slog.Logger,
// so a gateway run with -log-level debug shows the traffic inline.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log implements Logger.
func (a *SlogAdapter) Log(event Event) {
	ctx := context.Background()
	if !a.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := make([]slog.Attr, 0, 12)
	attrs = append(attrs,
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	)
	attrs = appendNonEmpty(attrs, "client_id", event.ClientID)
	attrs = appendNonEmpty(attrs, "subscription_id", event.SubscriptionID)
	attrs = appendNonEmpty(attrs, "node", event.Node)

	switch {
	case event.Message != nil:
		attrs = messageAttrs(attrs, event.Message)
	case event.StateChange != nil:
		sc := event.StateChange
		attrs = append(attrs,
			slog.String("entity", sc.Entity.String()),
			slog.String("old_state", sc.OldState),
			slog.String("new_state", sc.NewState),
		)
		attrs = appendNonEmpty(attrs, "reason", sc.Reason)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		attrs = appendNonEmpty(attrs, "error_context", event.Error.Context)
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "protocol", attrs...)
}

func messageAttrs(attrs []slog.Attr, m *MessageEvent) []slog.Attr {
	attrs = append(attrs,
		slog.String("msg_type", m.Type.String()),
		slog.String("operation", m.Operation.String()),
	)
	attrs = appendNonEmpty(attrs, "value", m.Value)
	attrs = appendNonEmpty(attrs, "declared_type", m.DeclaredType)
	attrs = appendNonEmpty(attrs, "status", m.Status)
	if m.ProcessingTime != nil {
		attrs = append(attrs, slog.Duration("processing_time", *m.ProcessingTime))
	}
	return attrs
}

func appendNonEmpty(attrs []slog.Attr, key, value string) []slog.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, slog.String(key, value))
}

var _ Logger = (*SlogAdapter)(nil)
