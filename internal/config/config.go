package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is filled from the environment. CatalogDSN takes precedence over
// CatalogURL when both are set: the database seeds the session catalog
// instead of the HTTP feed.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	CatalogURL string `envconfig:"CATALOG_URL"`
	CatalogDSN string `envconfig:"CATALOG_DSN"`

	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	MetricsToken   string `envconfig:"METRICS_TOKEN"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	RateLimit       int           `envconfig:"RATE_LIMIT" default:"60"`
	RateWindow      time.Duration `envconfig:"RATE_WINDOW" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if c.CatalogURL == "" && c.CatalogDSN == "" {
		return Config{}, errors.New("CATALOG_URL or CATALOG_DSN is required")
	}
	return c, nil
}
