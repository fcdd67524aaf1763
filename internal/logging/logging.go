package logging

import (
	"log/slog"
	"os"
)

// Logger is the application-wide structured logger instance.
var Logger *slog.Logger

// InitLogger initializes the global logger with the specified level and format.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "text" (defaults to "text")
func InitLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// WithStaff returns a logger with staff_id field.
func WithStaff(staffID string) *slog.Logger {
	return base().With("staff_id", staffID)
}

// WithSpin returns a logger with spin_id field.
func WithSpin(spinID string) *slog.Logger {
	return base().With("spin_id", spinID)
}

// base falls back to the process default so the helpers work in code paths
// that run before InitLogger, such as tests.
func base() *slog.Logger {
	if Logger != nil {
		return Logger
	}
	return slog.Default()
}
