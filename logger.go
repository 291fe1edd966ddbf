// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package widehash

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the field names used by the batch engine.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithBackend adds the backend field to the logger.
func (l *Logger) WithBackend(b Backend) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", b.String()),
	}
}

// LogBatch logs the outcome of one batch call.
func (l *Logger) LogBatch(ctx context.Context, kind string, jobs, lanes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch failed",
			"kind", kind,
			"jobs", jobs,
			"lanes", lanes,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "batch completed",
		"kind", kind,
		"jobs", jobs,
		"lanes", lanes,
	)
}
