package chunkset

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with chunkset-specific context.
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
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// WithName adds a snapshot name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSave logs a snapshot save.
func (l *Logger) LogSave(ctx context.Context, name string, cardinality uint64, bytes int, codecName string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"cardinality", cardinality,
			"bytes", bytes,
			"codec", codecName,
		)
	}
}

// LogLoad logs a snapshot load.
func (l *Logger) LogLoad(ctx context.Context, name string, cardinality uint64, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot loaded",
			"name", name,
			"cardinality", cardinality,
			"bytes", bytes,
		)
	}
}

// LogRemove logs a snapshot removal.
func (l *Logger) LogRemove(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot remove failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot removed",
			"name", name,
		)
	}
}

// LogUnion logs a many-way union.
func (l *Logger) LogUnion(ctx context.Context, method string, inputs int, cardinality uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "union failed",
			"method", method,
			"inputs", inputs,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "union completed",
			"method", method,
			"inputs", inputs,
			"cardinality", cardinality,
		)
	}
}
