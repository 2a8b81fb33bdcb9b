package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv            string `env:"APP_ENV" envDefault:"production"`
	DuplicateTxPolicy string `env:"DUPLICATE_TX_POLICY" envDefault:"overwrite"`

	// DatabaseURL is optional. When set, the final snapshot is exported.
	DatabaseURL string `env:"DATABASE_URL"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"5"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"2"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ExportEnabled() bool {
	return c.DatabaseURL != ""
}
