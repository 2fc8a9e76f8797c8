package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))
	logger = NewComponentLogger(logger, "schedule")

	logger.Info("parsed day groups", Int("days", 12), String("venue", "Metrograph"))

	line := buf.String()
	if !strings.Contains(line, "[schedule]") {
		t.Errorf("expected component tag in %q", line)
	}
	if !strings.Contains(line, "parsed day groups") {
		t.Errorf("expected message in %q", line)
	}
	if !strings.Contains(line, "days=12") {
		t.Errorf("expected attribute in %q", line)
	}
}

func TestConsoleHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Debug("should not appear")
	if buf.Len() != 0 {
		t.Errorf("debug record leaked through info level: %q", buf.String())
	}
}

func TestJSONHandlerFieldNames(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, lvl))

	logger.Warn("cache write failed", String("slot", "schedule"))

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if decoded["msg"] != "cache write failed" {
		t.Errorf("msg = %v", decoded["msg"])
	}
	if decoded["level"] != "warn" {
		t.Errorf("level = %v", decoded["level"])
	}
	if _, ok := decoded["ts"]; !ok {
		t.Error("missing ts field")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must report disabled at every level.
	logger.Error("discarded", Error(nil))
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("nop logger should be disabled")
	}
}
