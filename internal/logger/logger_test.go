package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerWithWriter("warn", &buf)
	log.Info("hidden")
	log.Warn("shown", "posts", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record leaked at warn level: %s", out)
	}

	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "posts=3") {
		t.Errorf("warn record missing or malformed: %s", out)
	}
}

func TestLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerWithWriter("error", &buf)
	child := log.With("component", "loader")

	log.SetLevel("debug")
	child.Debug("fetching")

	if !strings.Contains(buf.String(), "component=loader") {
		t.Errorf("child logger did not pick up level change: %q", buf.String())
	}
}

func TestLogger_LogAtLevel(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerWithWriter("info", &buf)
	log.Log(context.Background(), slog.LevelDebug, "skipped")
	log.Log(context.Background(), slog.LevelWarn, "kept", "status", 503)

	out := buf.String()
	if strings.Contains(out, "skipped") {
		t.Errorf("debug record leaked at info level: %s", out)
	}

	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status=503") {
		t.Errorf("warn record missing or malformed: %s", out)
	}
}
