// Package logging provides the structured logger used throughout the
// compiler, tick executor, and cmd/redpiler (§10.1). It is a direct
// adaptation of the teacher's pkg/reporting logger: same zerolog backend,
// same Level/Format/Output config shape, kept as an injected *Logger rather
// than a process-wide singleton so pkg/harness tests and concurrent
// CompileAsync runs never fight over global log state.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level is a logging verbosity level.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the log line encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger wraps a zerolog.Logger with the field-pair convenience API the rest
// of this module's packages call (Debug/Info/Warn/Error/Fatal).
type Logger struct {
	logger zerolog.Logger
}

// New builds a Logger from cfg. A nil Output defaults to os.Stdout.
func New(cfg Config) *Logger {
	return &Logger{logger: build(cfg)}
}

func build(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	var output io.Writer = cfg.Output
	if cfg.Format == FormatText {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: time.RFC3339,
			NoColor:    false,
		}
	}

	zlog := zerolog.New(output).With().Timestamp().Logger()
	return zlog.Level(levelOf(cfg.Level))
}

func levelOf(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs a debug message with key/value field pairs.
func (l *Logger) Debug(msg string, fields ...interface{}) { l.log(l.logger.Debug(), msg, fields...) }

// Info logs an info message with key/value field pairs.
func (l *Logger) Info(msg string, fields ...interface{}) { l.log(l.logger.Info(), msg, fields...) }

// Warn logs a warning message with key/value field pairs.
func (l *Logger) Warn(msg string, fields ...interface{}) { l.log(l.logger.Warn(), msg, fields...) }

// Error logs an error message with key/value field pairs.
func (l *Logger) Error(msg string, fields ...interface{}) { l.log(l.logger.Error(), msg, fields...) }

// Fatal logs a message at fatal level and exits the process.
func (l *Logger) Fatal(msg string, fields ...interface{}) { l.log(l.logger.Fatal(), msg, fields...) }

func (l *Logger) log(event *zerolog.Event, msg string, fields ...interface{}) {
	l.addFields(event, fields...)
	event.Msg(msg)
}

// WithField returns a child Logger with an additional field bound.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}

// WithFields returns a child Logger with additional fields bound.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{logger: ctx.Logger()}
}

func (l *Logger) addFields(event *zerolog.Event, fields ...interface{}) {
	if len(fields)%2 != 0 {
		event.Str("logging_error", "odd number of fields")
		return
	}
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			event.Str("logging_error", fmt.Sprintf("field key at index %d is not a string", i))
			continue
		}
		event.Interface(key, fields[i+1])
	}
}

// Zerolog returns the underlying zerolog.Logger, for components (like
// prometheus exporters) that want to log with zerolog directly.
func (l *Logger) Zerolog() zerolog.Logger { return l.logger }

// InitGlobal points the zerolog global logger (github.com/rs/zerolog/log) at
// cfg, for cmd/redpiler's main() to call once at startup so any library code
// that logs through the package-level log.Logger lands in the same sink.
func InitGlobal(cfg Config) {
	zlog := build(cfg)
	log.Logger = zlog
	zerolog.SetGlobalLevel(levelOf(cfg.Level))
}
