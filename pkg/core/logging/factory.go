// ============================================================================
// krama - Javanese speech-level analyzer
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating configured loggers
// Author:      LearnWithSuryaa
// Created:     2026-10-10
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	applog "github.com/LearnWithSuryaa/analyzer-app/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service or component name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: json)
	Format string

	// Output writer (default: stderr, so command output on stdout stays clean)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a foundation logger from cfg. Unknown levels and
// formats fall back to info and json.
func NewLogger(cfg LoggerConfig) *applog.Logger {
	level := parseLevel(cfg.Level)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := applog.ParseFormat(cfg.Format)
	if err != nil {
		format = applog.FormatJSON
	}

	return applog.NewWithConfig(applog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: level <= applog.LevelDebug,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *applog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

func parseLevel(level string) applog.Level {
	switch level {
	case "trace":
		return applog.LevelTrace
	case "debug":
		return applog.LevelDebug
	case "info":
		return applog.LevelInfo
	case "warn", "warning":
		return applog.LevelWarn
	case "error":
		return applog.LevelError
	case "audit":
		return applog.LevelAudit
	default:
		return applog.LevelInfo
	}
}

// Compatibility layer for code using key/value pairs

// Logger wraps the foundation logger with key/value logging methods
type Logger struct {
	*applog.Logger
	name string
}

// New creates a key/value logger with the default configuration
func New(name string) *Logger {
	return Wrap(NewSimpleLogger(name))
}

// Wrap adapts a foundation logger
func Wrap(l *applog.Logger) *Logger {
	if l == nil {
		l = applog.GetDefault()
	}
	return &Logger{Logger: l, name: l.Name()}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{Logger: applog.Discard()}
}

// Foundation returns the underlying foundation logger
func (l *Logger) Foundation() *applog.Logger {
	return l.Logger
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	appLevel := applog.LevelInfo
	switch level {
	case LevelDebug:
		appLevel = applog.LevelDebug
	case LevelInfo:
		appLevel = applog.LevelInfo
	case LevelWarn:
		appLevel = applog.LevelWarn
	case LevelError:
		appLevel = applog.LevelError
	}

	return &Logger{
		Logger: l.Logger.WithLevel(appLevel),
		name:   l.name,
	}
}

// With returns a logger that adds the key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.WithFields(toFields(keysAndValues...)),
		name:   l.name,
	}
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to log fields. Non-string keys are skipped.
func toFields(keysAndValues ...interface{}) applog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(applog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, ok := keysAndValues[i+1].(error); ok {
			fields[key] = err.Error()
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
