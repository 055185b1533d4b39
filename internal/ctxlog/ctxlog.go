// Package ctxlog carries a task-scoped slog.Logger through context.Context.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key int

const (
	loggerKey key = iota
	// baseKey holds the logger tasks derive their tagged loggers from.
	baseKey
)

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. Tasks always run with
// a logger installed by the app, so a missing one is a programming error.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}

// ForTask derives a logger tagged with the task name and stores it in the
// returned context. Nested tasks replace the tag of their parent rather than
// adding a second one.
func ForTask(ctx context.Context, task string) (context.Context, *slog.Logger) {
	base, ok := ctx.Value(baseKey).(*slog.Logger)
	if !ok {
		base = FromContext(ctx)
		ctx = context.WithValue(ctx, baseKey, base)
	}
	logger := base.With("task", task)
	return WithLogger(ctx, logger), logger
}
