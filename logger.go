package indirectvec

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vector-specific helpers.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds a name field to the logger (useful when several vectors share a handler).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("vector", name),
	}
}

// LogFailure logs a rejected operation.
func (l *Logger) LogFailure(op string, length, capacity int, err error) {
	l.DebugContext(context.Background(), "operation rejected",
		"op", op,
		"len", length,
		"capacity", capacity,
		"error", err,
	)
}

// LogSort logs a completed sort or sortedness check.
func (l *Logger) LogSort(op string, n int, duration time.Duration) {
	l.DebugContext(context.Background(), "sort completed",
		"op", op,
		"count", n,
		"duration_ms", duration.Milliseconds(),
	)
}

// LogRelease logs the destruction of a vector's objects on Close.
func (l *Logger) LogRelease(destroyed int, external bool) {
	l.DebugContext(context.Background(), "vector released",
		"destroyed", destroyed,
		"external", external,
	)
}
