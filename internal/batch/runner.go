package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/esflavor/internal/metrics"
	"github.com/dmitrymomot/esflavor/pkg/esid"
	"github.com/dmitrymomot/esflavor/pkg/logger"
)

// Runner validates items with a bounded number of goroutines.
type Runner struct {
	workers  int
	maxItems int
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the concurrency limit. Values below one use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithMaxItems rejects batches larger than n. Zero disables the limit.
func WithMaxItems(n int) Option {
	return func(r *Runner) { r.maxItems = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{log: logger.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// Run validates items and returns one Result per item in input order.
// Invalid values are reported in the results, not as an error. An error is
// returned only when the batch is rejected or ctx is done before completion.
func (r *Runner) Run(ctx context.Context, items []Item) ([]Result, error) {
	if r.maxItems > 0 && len(items) > r.maxItems {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(items), r.maxItems)
	}

	start := time.Now()
	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Check(i, item)
			results[i] = res
			r.metrics.ObserveValidation(esid.Kind(res.Kind), resultErr(res))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	// The loop may stop early on cancellation without any goroutine failing.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	elapsed := time.Since(start)
	r.metrics.ObserveBatch(len(items), elapsed)
	r.log.DebugContext(ctx, "batch validated",
		logger.Count(len(items)),
		slog.Int("invalid", Invalid(results)),
		logger.Duration(elapsed),
	)
	return results, nil
}

func resultErr(res Result) error {
	if res.Valid {
		return nil
	}
	if res.Code == CodeUnknownKind {
		return esid.ErrUnknownKind
	}
	return &esid.Error{Kind: esid.Kind(res.Kind), Code: esid.Code(res.Code)}
}
