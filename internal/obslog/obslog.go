// Package obslog provides the ambient structured-logging surface
// SPEC_FULL.md's §2 expansion calls for: one DEBUG-level line per
// dispatcher call (operation tag and outcome; the limb width is not
// logged), and nothing
// beneath it — the core arithmetic packages (bigint/field/ext/curve/
// pairing) stay log-free, matching spec.md §5's "no I/O" rule for the
// pure computational core.
//
// Adapted from the teacher's pkg/log (log.go/formatter.go): a thin
// wrapper over log/slog with per-component child loggers, renamed from
// "Module" (per-subsystem, e.g. "evm", "txpool") to "Component" since
// this module has a single dispatcher rather than many subsystems.
package obslog

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with one piece of engine-specific convenience:
// Component, a named child logger.
type Logger struct {
	inner *slog.Logger
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler,
// useful for tests that want to capture output instead of writing to
// stderr.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger { return defaultLogger }

// Component returns a child logger tagged with the given component name
// (e.g. "dispatch"), the one place in this module that logs at all.
func (l *Logger) Component(name string) *Logger {
	return &Logger{inner: l.inner.With("component", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
