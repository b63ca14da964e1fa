// Package observability provides the console's structured logger.
//
// The TUI owns the terminal, so logs never go to stderr while the program
// is running; they are written to a log file (or discarded in tests).
package observability

import (
	"fmt"
	"io"
	"log/slog"
)

// CoreLogger wraps slog with a small convenience surface used throughout
// the console. Components receive it by injection; there is no package-level
// default logger.
type CoreLogger struct {
	logger *slog.Logger
}

// NewCoreLogger returns a CoreLogger writing text logs to w at the given level.
func NewCoreLogger(w io.Writer, level slog.Level) *CoreLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &CoreLogger{logger: slog.New(handler)}
}

// NewNoOpLogger returns a logger that discards everything.
//
// Intended for tests.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(io.Discard, slog.LevelError)
}

// Debug logs a message at debug level.
func (l *CoreLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs a message at info level.
func (l *CoreLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a message at warn level.
func (l *CoreLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs a message at error level.
func (l *CoreLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// CaptureError logs an error with optional context attributes.
//
// Failures routed here are expected to be non-fatal: persistence writes,
// collaborator callbacks, malformed stored preferences. The session
// continues with in-memory state.
func (l *CoreLogger) CaptureError(err error, args ...any) {
	if err == nil {
		return
	}
	l.logger.Error(fmt.Sprintf("error: %v", err), args...)
}
