// Package logging configures the process-wide slog logger from
// configuration. The derivation engine itself never logs; logging here
// covers the CLI surface, config loading, and the profile store.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/flowerpass/flowerpass/internal/config"
)

// Setup installs a slog default logger according to cfg, writing to w.
// A nil writer defaults to stderr so log output never mixes with
// derived passwords on stdout.
func Setup(cfg config.LoggingConfig, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format: %q", cfg.Format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// ParseLevel converts a config level string to a slog.Level.
// An empty string means info.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %q", level)
	}
}
