package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"soloquest/internal/storage"
)

// Config is loaded from environment variables. The timezone fixes the
// server-side day boundary for streaks and daily quest generation.
type Config struct {
	DBPath   string `env:"SQ_DB_PATH"`
	Timezone string `env:"SQ_TIMEZONE" envDefault:"UTC"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}
	return &cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
