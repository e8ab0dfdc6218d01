package log

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ZerologProvider is a LoggerProvider backed by rs/zerolog. Records are
// emitted as JSON on stderr with RFC3339 timestamps.
type ZerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider creates a provider emitting at the given level.
func NewZerologProvider(level Level) *ZerologProvider {
	base := zerolog.New(os.Stderr).
		Level(toZerologLevel(level)).
		With().
		Timestamp().
		Logger()
	return &ZerologProvider{base: base}
}

// GetLogger returns the provider's unnamed logger.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{zl: p.base}
}

// GetLoggerWithName returns a logger carrying a "logger" field with the name.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{zl: p.base.With().Str("logger", name).Logger()}
}

// SetLevel adjusts the level for loggers created after the call.
func (p *ZerologProvider) SetLevel(level Level) {
	p.base = p.base.Level(toZerologLevel(level))
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	emit(l.zl.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

// emit applies alternating key/value fields to the event. An error value
// under the "error" key uses zerolog's error rendering; a trailing key with
// no value is recorded under the "!BADKEY" convention rather than dropped.
func emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	i := 0
	for ; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		if err, isErr := fields[i+1].(error); isErr && key == ErrAttrKey {
			ev = ev.AnErr(key, err)
			continue
		}
		ev = ev.Interface(key, fields[i+1])
	}
	if i < len(fields) {
		ev = ev.Interface("!BADKEY", fields[i])
	}
	ev.Msg(msg)
}
