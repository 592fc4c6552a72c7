// Package config loads service configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	SwaggerHost string `envconfig:"SWAGGER_HOST" default:"localhost:8080"`

	// StoreDriver selects the click store: postgres, mongo or memory.
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`

	PostgresDSN             string        `envconfig:"POSTGRES_DSN"`
	PostgresMaxOpenConns    int           `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"20"`
	PostgresMaxIdleConns    int           `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"10"`
	PostgresConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"30m"`
	// AutoMigrate applies pending migrations at startup (postgres only).
	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"true"`

	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"clickstats"`

	// StatsTimezone is the IANA zone that defines days and hours for aggregation.
	StatsTimezone     string `envconfig:"STATS_TIMEZONE" default:"UTC"`
	SeriesDefaultDays int    `envconfig:"SERIES_DEFAULT_DAYS" default:"30"`
	SeriesMaxDays     int    `envconfig:"SERIES_MAX_DAYS" default:"365"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	// TrustForwardedFor records the first X-Forwarded-For hop as the click
	// source address. Informational only.
	TrustForwardedFor bool `envconfig:"TRUST_FORWARDED_FOR" default:"true"`

	location *time.Location
}

// Load reads .env when present (real environment wins), then parses and validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("config: POSTGRES_DSN must be set when STORE_DRIVER=postgres")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("config: MONGO_URI must be set when STORE_DRIVER=mongo")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unsupported STORE_DRIVER %q", c.StoreDriver)
	}

	loc, err := time.LoadLocation(c.StatsTimezone)
	if err != nil {
		return fmt.Errorf("config: invalid STATS_TIMEZONE %q: %w", c.StatsTimezone, err)
	}
	c.location = loc

	if c.SeriesDefaultDays <= 0 {
		return errors.New("config: SERIES_DEFAULT_DAYS must be positive")
	}
	if c.SeriesMaxDays < c.SeriesDefaultDays {
		return errors.New("config: SERIES_MAX_DAYS must not be below SERIES_DEFAULT_DAYS")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Location is the aggregation time zone; UTC until Load has validated the config.
func (c *Config) Location() *time.Location {
	if c == nil || c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
