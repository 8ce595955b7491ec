package slicedist

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/slicedist/engine"
)

// Logger wraps slog.Logger with slicedist-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSnapshot adds a snapshot name field to the logger.
func (l *Logger) WithSnapshot(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("snapshot", name),
	}
}

// WithCommand adds a command field to the logger.
func (l *Logger) WithCommand(command string) *Logger {
	return &Logger{
		Logger: l.Logger.With("command", command),
	}
}

// LogCompare logs the outcome of a comparison.
func (l *Logger) LogCompare(ctx context.Context, res engine.Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "compare failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "compare completed",
		"cost", res.Cost,
		"prior_groups", res.PriorGroups,
		"current_groups", res.CurrentGroups,
		"splits", res.Splits,
		"merges", res.Merges,
		"unknown_members", res.UnknownMembers,
		"elapsed", elapsed,
	)
}

// LogInspect logs the outcome of a snapshot inspection.
func (l *Logger) LogInspect(ctx context.Context, groups int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "inspect failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "inspect completed",
		"groups", groups,
		"elapsed", elapsed,
	)
}
