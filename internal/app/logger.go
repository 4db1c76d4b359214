package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/precast-backend/internal/config"
)

// NewLogger builds the process logger from cfg, writes it to stderr and
// installs it as the slog default.
//
// Format "text" adds source locations for local work; anything else logs
// JSON. Level accepts slog level names ("debug", "WARN", "info+2");
// unknown values fall back to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "text") {
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("app", "precast"))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
