package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/storefront/internal/config"
)

// New creates a JSON slog.Logger at the configured level.
func New(cfg *config.Config) *slog.Logger {
	return NewWriter(os.Stdout, cfg.LogLevel)
}

// NewWriter creates a JSON slog.Logger writing to w.
func NewWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
