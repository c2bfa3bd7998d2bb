package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Config describes a logger in terms of environment variables.
type Config struct {
	Service string `env:"APP_NAME" envDefault:"clientstate"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Level   string `env:"LOG_LEVEL" envDefault:""`
	Format  string `env:"LOG_FORMAT" envDefault:""`
}

// FromConfig builds a logger from cfg. Environment presets apply first;
// explicit Level and Format override them. Unknown levels are ignored.
func FromConfig(cfg Config, w io.Writer, opts ...Option) *slog.Logger {
	all := []Option{WithEnvironment(cfg.Env, cfg.Service), WithOutput(w)}

	if cfg.Level != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err == nil {
			all = append(all, WithLevel(lvl))
		}
	}
	if cfg.Format != "" {
		all = append(all, WithFormat(Format(strings.ToLower(cfg.Format))))
	}

	return New(append(all, opts...)...)
}
