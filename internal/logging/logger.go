// SPDX-License-Identifier: MIT

// Package logging wraps log/slog with the field names used across the
// containers of this module.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with container-specific helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// A nil handler selects a text handler on stderr at Info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewText creates a Logger writing human-readable text to w at the given level.
func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSON creates a Logger writing JSON records to w at the given level.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop returns a Logger that discards everything.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	}))
}

// WithComponent tags every record with the container kind ("store", "binary", ...).
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With("component", name)}
}

// WithDims adds the dimension descriptor.
func (l *Logger) WithDims(dims []int) *Logger {
	return &Logger{Logger: l.Logger.With("dims", dims)}
}

// LogRowChange logs a structural change of axis 0.
func (l *Logger) LogRowChange(ctx context.Context, op string, row, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, op+" failed",
			"row", row,
			"rows", rows,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, op+" completed",
		"row", row,
		"rows", rows,
	)
}

// LogInconsistency reports a failed aggregate consistency check.
func (l *Logger) LogInconsistency(ctx context.Context, what string, err error) {
	l.ErrorContext(ctx, "aggregate consistency violated",
		"check", what,
		"error", err,
	)
}

// LogFanOut logs a parallel kernel dispatch.
func (l *Logger) LogFanOut(ctx context.Context, kernel string, rows, workers int, err error) {
	if err != nil {
		l.WarnContext(ctx, kernel+" aborted",
			"rows", rows,
			"workers", workers,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, kernel+" completed",
		"rows", rows,
		"workers", workers,
	)
}
