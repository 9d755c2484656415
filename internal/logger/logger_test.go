package logger

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(slog.LevelInfo)
	defer SetOutput(os.Stderr)

	log := Get("pipeline")
	log.Info("regions extracted", "count", 3, "run", "abc")
	log.Debug("hidden at info level")

	got := buf.String()
	if !strings.HasPrefix(got, "[pipeline] INFO: regions extracted (count=3, run=abc) [") {
		t.Errorf("unexpected line: %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Error("debug record written at info level")
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", got)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(slog.LevelInfo)

	SetLevel(slog.LevelDebug)
	Get("ocr").Debug("visible")
	if !strings.Contains(buf.String(), "[ocr] DEBUG: visible") {
		t.Errorf("debug record missing: %q", buf.String())
	}

	buf.Reset()
	SetLevel(slog.LevelError)
	Get("ocr").Warn("suppressed")
	if buf.Len() != 0 {
		t.Errorf("warn record written at error level: %q", buf.String())
	}
}

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(slog.LevelInfo)
	defer SetOutput(os.Stderr)

	Get("server").With("tool", "schedule_parse").Warn("call failed", "error", "boom")

	want := "[server] WARNING: call failed (tool=schedule_parse, error=boom)"
	if !strings.HasPrefix(buf.String(), want) {
		t.Errorf("got %q, want prefix %q", buf.String(), want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"Error", slog.LevelError, true},
		{"", slog.LevelInfo, false},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q): got (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
