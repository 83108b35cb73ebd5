// Package config loads command line settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/lmittmann/tint"
)

type Config struct {
	LogLevel      string `env:"WPSXLSX_LOG_LEVEL" env-default:"info"`
	CSVEncoding   string `env:"WPSXLSX_CSV_ENCODING" env-default:"utf-8"`
	ImagePrefix   string `env:"WPSXLSX_IMAGE_PREFIX" env-default:"@image:"`
	StringsToURLs bool   `env:"WPSXLSX_STRINGS_TO_URLS" env-default:"false"`
	NoColor       bool   `env:"NO_COLOR" env-default:"false"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read configuration: %w", err)
	}
	return cfg, nil
}

// Level parses LogLevel. Unknown values fall back to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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

// Logger returns a human readable logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   c.Level(),
		NoColor: c.NoColor,
	}))
}
