// Package logger provides the module-tagged slog loggers used across the
// server. Output goes to stderr because stdout carries the MCP protocol.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "SCHEDULE_MCP_LOG_LEVEL"

var (
	level      = new(slog.LevelVar)
	out        = &syncWriter{w: os.Stderr}
	rootLogger = slog.New(&textHandler{w: out, level: level})
)

func init() {
	if l, ok := ParseLevel(os.Getenv(EnvLevel)); ok {
		level.Set(l)
	}
}

// Get returns a logger tagged with module for easier filtering.
func Get(module string) *slog.Logger {
	return rootLogger.With("module", module)
}

// SetLevel changes the minimum level of every logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetOutput redirects every logger to w.
func SetOutput(w io.Writer) {
	out.mu.Lock()
	out.w = w
	out.mu.Unlock()
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a
// slog.Level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// textHandler writes one line per record:
//
//	[module] LEVEL: message (key=value, ...) [15:04:05]
type textHandler struct {
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
	group string
}

func (h *textHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *textHandler) Handle(_ context.Context, record slog.Record) error {
	var module string
	var args []string

	add := func(a slog.Attr) {
		if a.Key == "module" {
			module = a.Value.String()
			return
		}
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		args = append(args, fmt.Sprintf("%s=%v", key, a.Value))
	}
	for _, a := range h.attrs {
		add(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	var b strings.Builder
	if module != "" {
		fmt.Fprintf(&b, "[%s] ", module)
	}
	fmt.Fprintf(&b, "%s: %s", levelName(record.Level), record.Message)
	if len(args) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(args, ", "))
	}
	fmt.Fprintf(&b, " [%s]\n", record.Time.Format("15:04:05"))

	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &textHandler{w: h.w, level: h.level, attrs: newAttrs, group: h.group}
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	return &textHandler{w: h.w, level: h.level, attrs: h.attrs, group: name}
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
