package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/getmockd/logtree/pkg/level"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		// Lowercase
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		// Uppercase
		{"DEBUG", LevelDebug},
		{"INFO", LevelInfo},
		{"WARN", LevelWarn},
		{"ERROR", LevelError},

		// Mixed case
		{"Debug", LevelDebug},
		{"Warning", LevelWarn},
		{"dEbUg", LevelDebug},

		// Empty and unrecognized default to Warn
		{"", LevelWarn},
		{"trace", LevelWarn},
		{"fatal", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"Json", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"yaml", FormatText}, // unrecognized defaults to text
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNew_RespectsLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"component":"logtree"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("Nop logger should not be enabled")
	}
}

func TestSlogMapping_PreservesOrder(t *testing.T) {
	all := level.All()
	for i := 1; i < len(all); i++ {
		if ToSlog(all[i]) <= ToSlog(all[i-1]) {
			t.Errorf("ToSlog(%s) should be above ToSlog(%s)", all[i], all[i-1])
		}
	}
	for _, l := range all {
		if got := FromSlog(ToSlog(l)); got != l {
			t.Errorf("FromSlog(ToSlog(%s)) = %s", l, got)
		}
	}
}

func TestFromSlog(t *testing.T) {
	tests := []struct {
		input    slog.Level
		expected level.Level
	}{
		{slog.LevelDebug - 4, level.Debug},
		{slog.LevelDebug, level.Debug},
		{slog.LevelInfo, level.Info},
		{slog.LevelInfo + 1, level.Info},
		{slog.LevelWarn, level.Warning},
		{slog.LevelError, level.Error},
		{slog.LevelError + 100, level.Emergency},
	}
	for _, tt := range tests {
		if got := FromSlog(tt.input); got != tt.expected {
			t.Errorf("FromSlog(%v) = %s, want %s", tt.input, got, tt.expected)
		}
	}
	if got := ToSlog(level.Level(99)); got != slog.LevelInfo {
		t.Errorf("ToSlog(invalid) = %v", got)
	}
}
