// Package logger provides the application-wide structured logger used
// by services, middleware and repositories.
package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog with a fatal variant for startup failures.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing text records to stdout at the given
// minimum level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
