// Package app wires configuration, logging and the HTTP service together.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/esflavor/pkg/clientip"
	"github.com/dmitrymomot/esflavor/pkg/config"
	"github.com/dmitrymomot/esflavor/pkg/environment"
	"github.com/dmitrymomot/esflavor/pkg/httpserver"
	"github.com/dmitrymomot/esflavor/pkg/logger"
	"github.com/dmitrymomot/esflavor/pkg/redis"
	"github.com/dmitrymomot/esflavor/pkg/requestid"
)

// ServiceName is attached to every log record.
const ServiceName = "esflavor"

var ErrInvalidConfig = errors.New("app: invalid configuration")

// Config is the process configuration read from the environment.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	HTTP  httpserver.Config
	Redis redis.Config

	BatchWorkers  int `env:"BATCH_WORKERS" envDefault:"0"`
	MaxBatchItems int `env:"MAX_BATCH_ITEMS" envDefault:"1000"`

	// RateLimitBurst is the per-client request burst on /v1. Zero disables limiting.
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"0"`
	RateLimitRefill time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`

	// TrustedProxies lists IPs or CIDR prefixes whose forwarding headers are
	// believed. Empty means the socket peer is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// LoadConfig reads Config from the environment and checks it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	switch logger.Format(c.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("%w: LOG_FORMAT %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MaxBatchItems < 1 {
		return fmt.Errorf("%w: MAX_BATCH_ITEMS must be positive", ErrInvalidConfig)
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("%w: RATE_LIMIT_BURST must not be negative", ErrInvalidConfig)
	}
	if c.RateLimitBurst > 0 && c.RateLimitRefill <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_REFILL_INTERVAL must be positive", ErrInvalidConfig)
	}
	if c.BatchWorkers < 0 {
		return fmt.Errorf("%w: BATCH_WORKERS must not be negative", ErrInvalidConfig)
	}
	if _, err := clientip.NewResolver(c.TrustedProxies...); err != nil {
		return fmt.Errorf("%w: TRUSTED_PROXIES: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Environment returns the parsed APP_ENV.
func (c Config) Environment() environment.Environment {
	return environment.Parse(c.Env)
}

// NewLogger builds the process logger writing to w. Environment defaults
// apply first and LOG_LEVEL / LOG_FORMAT override them.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithOutput(w),
		logger.WithEnvironment(c.Environment(), ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if c.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(c.LogLevel)))
	}
	if c.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(c.LogFormat)))
	}
	return logger.New(opts...)
}
