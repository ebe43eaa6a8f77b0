// Package logger configures the process-wide slog logger used by gatecount.
// Logs go to stderr so they never interleave with the report on stdout.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level  slog.Level
	Format string
	Output io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init installs a text or JSON handler as the slog default.
func Init(cfg Config) error {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(cfg.Output, opts)
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		return fmt.Errorf("logger: unknown format %q (want text or json)", cfg.Format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func ForComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
