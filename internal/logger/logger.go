package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"notes-client/internal/config"
)

// ParseLevel переводит строку уровня в slog.Level; неизвестные значения дают info
func ParseLevel(level string) slog.Level {
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

// New создает логгер по конфигурации и возвращает функцию закрытия файла.
// Если файл не задан, пишет в fallback.
func New(cfg *config.ConfigLogger, fallback io.Writer) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = &config.ConfigLogger{}
	}
	out := fallback
	closer := func() error { return nil }

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f.Close
	}
	if out == nil {
		out = io.Discard
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closer, nil
}
