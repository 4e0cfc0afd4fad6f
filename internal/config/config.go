// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting read from the environment. Defaults target a
// local run against a SQLite file seeded on start.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Catalog store: "sqlite" (DBPath) or "postgres" (DatabaseURL).
	CatalogDriver string `env:"CATALOG_DRIVER" envDefault:"sqlite"`
	DBPath        string `env:"DB_PATH" envDefault:"data/app.db"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SeedPath      string `env:"SEED_PATH" envDefault:"data/seeds/catalog.json"`
	SeedOnStart   bool   `env:"SEED_ON_START" envDefault:"true"`

	// Package cache; an empty address disables caching.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"REDIS_PREFIX" envDefault:"tourpkg:"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"10m"`

	SearchMaxVisits int           `env:"SEARCH_MAX_VISITS" envDefault:"1000000"`
	SearchTimeout   time.Duration `env:"SEARCH_TIMEOUT" envDefault:"5s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file and parses the environment into Config.
// The returned bool reports whether a .env file was found.
func Load() (Config, bool, error) {
	found := godotenv.Load() == nil

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, found, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, found, err
	}
	return cfg, found, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.CatalogDriver {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("config: DB_PATH is required for the sqlite catalog")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres catalog")
		}
	default:
		return fmt.Errorf("config: unknown CATALOG_DRIVER %q", c.CatalogDriver)
	}
	if c.SearchMaxVisits < 0 {
		return fmt.Errorf("config: SEARCH_MAX_VISITS must be non-negative")
	}
	return nil
}
