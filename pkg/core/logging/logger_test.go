package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	applog "github.com/LearnWithSuryaa/analyzer-app/foundation/core/log"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.name != "test-service" {
		t.Errorf("name = %v, want test-service", logger.name)
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger := New("test")
	result := logger.WithLevel(LevelDebug)

	if result.name != "test" {
		t.Errorf("name should be preserved: got %v", result.name)
	}
	if result.GetLevel() != applog.LevelDebug {
		t.Errorf("level = %v, want debug", result.GetLevel())
	}
}

func newBufferLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{ServiceName: "test", Level: level, Format: "json", Output: &buf})
	return Wrap(l), &buf
}

func TestLogger_KeyValues(t *testing.T) {
	logger, buf := newBufferLogger("info")

	logger.Info("analysis done", "sentence", "aku mangan", "violations", 0, "err", errors.New("boom"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if entry["message"] != "analysis done" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["sentence"] != "aku mangan" || entry["err"] != "boom" || entry["logger"] != "test" {
		t.Errorf("entry = %v", entry)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("warn")

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %s", buf.String())
	}

	logger.Warn("shown", "key", "value")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn entry, got %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	logger, buf := newBufferLogger("info")

	logger.With("request_id", "abc").Info("handled")
	if !strings.Contains(buf.String(), `"request_id":"abc"`) {
		t.Errorf("expected request_id field, got %s", buf.String())
	}
}

func TestLogger_OddKeyValues(t *testing.T) {
	logger, buf := newBufferLogger("info")

	// Should not panic with an odd number of key-values
	logger.Info("message", "key1", "value1", "orphan")
	if strings.Contains(buf.String(), "orphan") {
		t.Errorf("orphan key should be dropped: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected applog.Level
	}{
		{"trace", applog.LevelTrace},
		{"debug", applog.LevelDebug},
		{"info", applog.LevelInfo},
		{"warn", applog.LevelWarn},
		{"warning", applog.LevelWarn},
		{"error", applog.LevelError},
		{"invalid", applog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("my-service")

	if cfg.ServiceName != "my-service" {
		t.Errorf("ServiceName = %v, want my-service", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %v, want json", cfg.Format)
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName:       "test",
		Level:             "info",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("both")
	if !strings.Contains(primary.String(), "both") || !strings.Contains(extra.String(), "both") {
		t.Errorf("primary=%q extra=%q", primary.String(), extra.String())
	}
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	// Non-string key (should be skipped)
	if fields = toFields(123, "value"); len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func TestDiscard(t *testing.T) {
	// Should not panic
	Discard().Error("dropped", "key", "value")
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Wrap(applog.Discard())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
