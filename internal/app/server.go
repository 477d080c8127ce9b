package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/esflavor/internal/api"
	"github.com/dmitrymomot/esflavor/internal/batch"
	"github.com/dmitrymomot/esflavor/internal/metrics"
	"github.com/dmitrymomot/esflavor/pkg/clientip"
	"github.com/dmitrymomot/esflavor/pkg/httpserver"
	"github.com/dmitrymomot/esflavor/pkg/logger"
	"github.com/dmitrymomot/esflavor/pkg/ratelimiter"
	"github.com/dmitrymomot/esflavor/pkg/redis"
)

// rateLimitPrefix namespaces limiter keys in Redis.
const rateLimitPrefix = "esflavor:ratelimit:"

// NewHandler builds the API handler with its own metrics registry. When rdb
// is not nil, rate limits are shared through Redis and Redis becomes a
// readiness dependency.
func NewHandler(cfg Config, log *slog.Logger, rdb *goredis.Client) (*api.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	runner := batch.NewRunner(
		batch.WithWorkers(cfg.BatchWorkers),
		batch.WithMaxItems(cfg.MaxBatchItems),
		batch.WithMetrics(m),
		batch.WithLogger(log),
	)

	clients, err := clientip.NewResolver(cfg.TrustedProxies...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := []api.Option{
		api.WithLogger(log),
		api.WithClientIPResolver(clients),
		api.WithEnvironment(cfg.Environment()),
		api.WithMetrics(m, reg),
		api.WithBatchRunner(runner, cfg.MaxBatchItems),
	}
	if rdb != nil {
		opts = append(opts, api.WithReadinessChecks(redis.Healthcheck(rdb)))
	}

	if cfg.RateLimitBurst > 0 {
		limCfg := ratelimiter.Config{
			Capacity:       cfg.RateLimitBurst,
			RefillRate:     1,
			RefillInterval: cfg.RateLimitRefill,
		}

		var lim ratelimiter.Limiter
		if rdb != nil {
			lim, err = ratelimiter.NewRedis(rdb, limCfg, rateLimitPrefix)
		} else {
			lim, err = ratelimiter.New(limCfg)
		}
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		opts = append(opts, api.WithRateLimit(lim))
	}

	return api.New(opts...), nil
}

// Serve runs the HTTP service until ctx is done.
func Serve(ctx context.Context, cfg Config, log *slog.Logger, opts ...httpserver.Option) error {
	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		var err error
		rdb, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("redis close failed", logger.Error(err))
			}
		}()
	}

	h, err := NewHandler(cfg, log, rdb)
	if err != nil {
		return err
	}

	opts = append([]httpserver.Option{httpserver.WithLogger(log)}, opts...)
	return httpserver.New(cfg.HTTP, opts...).Run(ctx, h.Router())
}
