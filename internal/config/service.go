package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServiceConfig configures the HTTP service and its snapshot source.
type ServiceConfig struct {
	Addr      string        `env:"PENSIONPROJ_ADDR" envDefault:":8080"`
	DBPath    string        `env:"PENSIONPROJ_DB_PATH" envDefault:"pensionproj.db"`
	RedisAddr string        `env:"PENSIONPROJ_REDIS_ADDR"`
	CacheTTL  time.Duration `env:"PENSIONPROJ_CACHE_TTL" envDefault:"5m"`
	Debug     bool          `env:"PENSIONPROJ_DEBUG"`
}

// LoadServiceConfig reads the service configuration from the environment.
func LoadServiceConfig() (ServiceConfig, error) {
	var cfg ServiceConfig
	if err := env.Parse(&cfg); err != nil {
		return ServiceConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ServiceConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration is usable.
func (c ServiceConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

// CacheEnabled reports whether a redis cache should front the store.
func (c ServiceConfig) CacheEnabled() bool {
	return c.RedisAddr != "" && c.CacheTTL > 0
}
