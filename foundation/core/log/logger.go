// File: logger.go
// Title: Structured Logger
// Description: Leveled logger with immutable context (WithField/WithFields/WithName
//              return clones), a pluggable formatter and integration with the
//              structured error type.
// Author: LearnWithSuryaa
// Version: v0.2.0
// Created: 2026-09-28
// Modified: 2026-10-12
//
// Change History:
// - 2026-09-28 v0.1.0: Initial implementation
// - 2026-10-12 v0.2.0: Request IDs, severity-aware LogError

package log

import (
	"errors"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
)

// Logger writes structured entries to an io.Writer.
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string
	requestID string
	fields    Fields

	enableCaller bool

	// guards writes to output; shared between clones
	writeMu *sync.Mutex
}

// Config configures a Logger.
type Config struct {
	Level        Level
	Format       Format
	Output       io.Writer
	Name         string
	EnableCaller bool
}

// New creates a JSON logger at the default level writing to stdout.
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatJSON})
}

// NewWithConfig creates a logger from config. A nil Output means stdout.
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}
	return &Logger{
		level:        config.Level,
		formatter:    GetFormatter(config.Format),
		output:       output,
		name:         config.Name,
		fields:       make(Fields),
		enableCaller: config.EnableCaller,
		writeMu:      &sync.Mutex{},
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelAudit + 1, Output: io.Discard})
}

// WithLevel returns a clone with a different minimum level.
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// WithOutput returns a clone writing to output.
func (l *Logger) WithOutput(output io.Writer) *Logger {
	c := l.clone()
	c.output = output
	c.writeMu = &sync.Mutex{}
	return c
}

// WithFormat returns a clone using the formatter for format.
func (l *Logger) WithFormat(format Format) *Logger {
	c := l.clone()
	c.formatter = GetFormatter(format)
	return c
}

// WithName returns a clone with a logger name.
func (l *Logger) WithName(name string) *Logger {
	c := l.clone()
	c.name = name
	return c
}

// WithRequestID returns a clone tagging entries with requestID.
func (l *Logger) WithRequestID(requestID string) *Logger {
	c := l.clone()
	c.requestID = requestID
	return c
}

// WithField returns a clone with one more persistent field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

// WithFields returns a clone with additional persistent fields.
func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	for k, v := range fields {
		c.fields[k] = v
	}
	return c
}

func (l *Logger) Trace(message string, fields ...Fields) { l.log(LevelTrace, message, nil, fields...) }
func (l *Logger) Debug(message string, fields ...Fields) { l.log(LevelDebug, message, nil, fields...) }
func (l *Logger) Info(message string, fields ...Fields)  { l.log(LevelInfo, message, nil, fields...) }
func (l *Logger) Warn(message string, fields ...Fields)  { l.log(LevelWarn, message, nil, fields...) }
func (l *Logger) Error(message string, fields ...Fields) { l.log(LevelError, message, nil, fields...) }
func (l *Logger) Audit(message string, fields ...Fields) { l.log(LevelAudit, message, nil, fields...) }

// ErrorWithErr logs at error level with err attached.
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs at warn level with err attached.
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs err at a level derived from its severity.
// Low severity errors (bad input) are logged at info.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     appErr.Code(),
		"error_severity": appErr.Severity().String(),
	}
	if op := appErr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range appErr.Details() {
		fields["error_"+k] = v
	}

	switch appErr.Severity() {
	case apperror.SeverityLow:
		l.log(LevelInfo, err.Error(), err, fields)
	case apperror.SeverityMedium:
		l.log(LevelWarn, err.Error(), err, fields)
	default:
		l.log(LevelError, err.Error(), err, fields)
	}
}

// StartTimer starts a Timer that logs on Stop.
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled reports whether entries at level would be written.
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// GetLevel returns the minimum level.
func (l *Logger) GetLevel() Level {
	return l.level
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.RequestID = l.requestID
	entry.Error = err
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}
	if l.enableCaller {
		if function, file, line, ok := caller(3); ok {
			entry.WithCaller(function, file, line)
		}
	}

	formatted, fErr := l.formatter.Format(entry)
	if fErr != nil {
		return
	}
	l.writeMu.Lock()
	_, _ = l.output.Write(formatted)
	l.writeMu.Unlock()
}

func caller(skip int) (function, file string, line int, ok bool) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", "", 0, false
	}
	function = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if idx := strings.LastIndex(function, "."); idx != -1 {
			function = function[idx+1:]
		}
	}
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	return function, file, line, true
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = make(Fields, len(l.fields))
	for k, v := range l.fields {
		c.fields[k] = v
	}
	return &c
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the process-wide default logger.
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}
