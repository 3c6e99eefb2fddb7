// Package fallback provides the process-wide, always-available console-only
// logger. The logging pipeline itself reports its own failures here — setup
// errors, sink write errors, drain timeouts — so a broken or stopped pipeline
// can never swallow its own diagnostics.
package fallback

import (
	"log/slog"
	"os"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Logger returns the fallback logger, creating it on first use. It writes
// human-readable lines to stderr and never touches the file sink or the
// dispatch queue.
func Logger() *slog.Logger {
	once.Do(func() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	})
	return logger
}

// Error logs an error through the fallback channel.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// Warn logs a warning through the fallback channel.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}
