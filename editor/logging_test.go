package editor

import (
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf strings.Builder
	l := NewLogger(LogLevelWarn, &buf)

	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error %d", 7)

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("low-level messages written: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "warn msg") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "error 7") {
		t.Errorf("formatted error missing: %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf strings.Builder
	l := NewLogger(LogLevelDebug, &buf).WithComponent("review").WithField("id", "r1")

	l.Info("added")

	out := buf.String()
	if !strings.Contains(out, "component=review") || !strings.Contains(out, "id=r1") {
		t.Errorf("fields missing: %q", out)
	}
}

func TestNullLoggerDiscards(t *testing.T) {
	// Must not panic with no output writer.
	NullLogger.Error("dropped")
	NullLogger.WithField("k", "v").Warn("dropped")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
