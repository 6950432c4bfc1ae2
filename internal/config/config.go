package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Nestcare"`
		Port int    `envconfig:"PORT" default:"8080"`
		// DefaultTZOffsetMinutes is the operator's UTC offset, used when
		// a request does not carry one. Session generation composes
		// wall-clock windows against it.
		DefaultTZOffsetMinutes int `envconfig:"DEFAULT_TZ_OFFSET_MINUTES" default:"0"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"nestcare"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
		// AdminPassword is the single operator credential; this is a
		// one-person business, not a multi-tenant system.
		AdminPassword string        `envconfig:"ADMIN_PASSWORD"`
		TokenTTL      time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
