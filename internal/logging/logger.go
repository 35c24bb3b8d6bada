// Package logging wraps zerolog behind a small structured logger. The
// default output is stderr: stdout carries the MCP protocol stream and
// must stay clean.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ragstack/ragdb-mcp/internal/config"
)

// Logger provides structured logging
type Logger struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewLogger creates a logger from the logging configuration.
func NewLogger(cfg *config.LoggingConfig) *Logger {
	level := parseLevel(cfg.Level)
	output := resolveOutput(cfg)

	if cfg.Format == "json" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	} else {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return &Logger{
		logger: zerolog.New(output).With().Timestamp().Logger().Level(level),
		level:  level,
	}
}

// parseLevel maps a config level name to a zerolog level, defaulting
// to info for anything unrecognized.
func parseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// resolveOutput picks the log destination. Anything other than
// "stderr" is treated as a file path; stdout is never an option, it
// belongs to the protocol transport. Unopenable paths fall back to
// stderr rather than losing logs.
func resolveOutput(cfg *config.LoggingConfig) io.Writer {
	if cfg.Output == nil || *cfg.Output == "stderr" {
		return os.Stderr
	}

	file, err := os.OpenFile(*cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return os.Stderr
	}
	return file
}

// Debug logs a debug message
func (l *Logger) Debug(message string, metadata map[string]interface{}) {
	l.log(zerolog.DebugLevel, message, metadata)
}

// Info logs an info message
func (l *Logger) Info(message string, metadata map[string]interface{}) {
	l.log(zerolog.InfoLevel, message, metadata)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, metadata map[string]interface{}) {
	l.log(zerolog.WarnLevel, message, metadata)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, metadata map[string]interface{}) {
	event := l.logger.Error()
	if err != nil {
		event = event.Err(err)
	}
	if metadata != nil {
		event = event.Fields(metadata)
	}
	event.Msg(message)
}

func (l *Logger) log(level zerolog.Level, message string, metadata map[string]interface{}) {
	if level < l.level {
		return
	}

	event := l.logger.WithLevel(level)
	if metadata != nil {
		event = event.Fields(metadata)
	}
	event.Msg(message)
}

// Child creates a child logger with additional metadata
func (l *Logger) Child(metadata map[string]interface{}) *Logger {
	childLogger := l.logger.With().Fields(metadata).Logger()
	return &Logger{
		logger: childLogger,
		level:  l.level,
	}
}

// Component returns a child logger tagged with a component name. Every
// subsystem gets its own so log lines can be attributed.
func (l *Logger) Component(name string) *Logger {
	return l.Child(map[string]interface{}{"component": name})
}
