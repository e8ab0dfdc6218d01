// Package log provides structured logging for the regdiag library.
//
// The package defines a minimal Logger interface with alternating key/value
// fields (slog style) and a LoggerProvider that hands out named loggers. The
// default provider is backed by github.com/rs/zerolog writing JSON to stderr,
// which keeps stdout free for the diagnostic report.
//
// Library code obtains loggers through the package-level helpers:
//
//	logger := log.GetLoggerWithName("linear").With(
//		log.ModelNameKey, "OLS",
//		log.ComponentKey, "linear",
//	)
//	logger.Info("Training started", log.SamplesKey, n)
package log

import (
	"context"
	"strings"
)

// Level is the logging verbosity threshold. Values match log/slog so the two
// scales stay interchangeable.
type Level int

const (
	// LevelDebug logs everything, including per-operation detail.
	LevelDebug Level = -4
	// LevelInfo logs lifecycle events (fit start/end, check outcomes).
	LevelInfo Level = 0
	// LevelWarn logs recoverable anomalies.
	LevelWarn Level = 4
	// LevelError logs failures.
	LevelError Level = 8
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch {
	case l <= LevelDebug:
		return "debug"
	case l <= LevelInfo:
		return "info"
	case l <= LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// ToLogLevel parses a level name ("debug", "info", "warn", "error").
// Unknown names fall back to LevelInfo.
func ToLogLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the structured logger used across the library. Fields are
// alternating key/value pairs; keys must be strings.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a child logger that always carries the given fields.
	With(fields ...any) Logger

	// Enabled reports whether records at the given level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// LoggerProvider hands out loggers and controls the shared level.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}

var defaultProvider LoggerProvider = NewZerologProvider(LevelInfo)

// SetProvider replaces the package-level provider. Intended for process
// startup; not synchronized against concurrent logging.
func SetProvider(p LoggerProvider) {
	if p != nil {
		defaultProvider = p
	}
}

// GetLogger returns the provider's unnamed logger.
func GetLogger() Logger {
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with the given component name.
func GetLoggerWithName(name string) Logger {
	return defaultProvider.GetLoggerWithName(name)
}

// SetLevel adjusts the package-level provider's verbosity.
func SetLevel(level Level) {
	defaultProvider.SetLevel(level)
}
