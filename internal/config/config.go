package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix namespaces every environment variable, e.g. PIECHART_SIZE.
const Prefix = "piechart"

type Config struct {
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info"`
	Size     int           `envconfig:"SIZE" default:"400"`
	Duration time.Duration `envconfig:"DURATION" default:"1s"`
	FPS      int           `envconfig:"FPS" default:"60"`
	Palette  []string      `envconfig:"PALETTE"`
	OutDir   string        `envconfig:"OUT_DIR" default:"."`
	Workers  int           `envconfig:"WORKERS" default:"4"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("fps must be in (0, 240], got %d", c.FPS)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", c.Duration)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
