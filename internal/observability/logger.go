package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewCLILogger builds a text logger on stderr for one-shot commands, whose
// stdout carries the command output. The service logs through
// sharedobs.NewLogger instead.
func NewCLILogger(level string) *slog.Logger {
	return newLogger(os.Stderr, level, "text")
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
