package xslog

import (
	"context"
	"log/slog"
)

type ctxLogger struct{}

// WithLogger scopes logger to ctx, typically one already carrying
// per-session attributes.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxLogger{}, logger)
}

// FromContext returns the logger scoped by WithLogger, or fallback.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(ctxLogger{}).(*slog.Logger); ok {
		return logger
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
