// Package api serves identifier validation over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/esflavor/internal/batch"
	"github.com/dmitrymomot/esflavor/internal/locales"
	"github.com/dmitrymomot/esflavor/internal/metrics"
	"github.com/dmitrymomot/esflavor/pkg/clientip"
	"github.com/dmitrymomot/esflavor/pkg/environment"
	"github.com/dmitrymomot/esflavor/pkg/httpserver"
	"github.com/dmitrymomot/esflavor/pkg/i18n"
	"github.com/dmitrymomot/esflavor/pkg/logger"
	"github.com/dmitrymomot/esflavor/pkg/ratelimiter"
	"github.com/dmitrymomot/esflavor/pkg/requestid"
)

// Handler holds the dependencies of the validation endpoints.
type Handler struct {
	log      *slog.Logger
	env      environment.Environment
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	runner   *batch.Runner
	tr       *i18n.Translator
	limiter  ratelimiter.Limiter
	clients  *clientip.Resolver
	maxItems int
	checks   []func(context.Context) error
}

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

func WithEnvironment(env environment.Environment) Option {
	return func(h *Handler) { h.env = env }
}

// WithMetrics records outcomes in m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.metrics = m
		h.gatherer = g
	}
}

// WithBatchRunner sets the runner used by the batch endpoint and the
// maximum number of items it accepts.
func WithBatchRunner(r *batch.Runner, maxItems int) Option {
	return func(h *Handler) {
		h.runner = r
		h.maxItems = maxItems
	}
}

// WithTranslator sets the catalogs used to localize failure messages.
func WithTranslator(tr *i18n.Translator) Option {
	return func(h *Handler) { h.tr = tr }
}

// WithRateLimit limits /v1 requests per client address.
func WithRateLimit(l ratelimiter.Limiter) Option {
	return func(h *Handler) { h.limiter = l }
}

// WithClientIPResolver sets how client addresses are derived for logging and
// rate limiting. Without it proxy headers are ignored.
func WithClientIPResolver(r *clientip.Resolver) Option {
	return func(h *Handler) { h.clients = r }
}

// WithReadinessChecks adds checks to the /health/ready probe.
func WithReadinessChecks(checks ...func(context.Context) error) Option {
	return func(h *Handler) { h.checks = append(h.checks, checks...) }
}

// New creates a Handler.
func New(opts ...Option) *Handler {
	h := &Handler{
		log:      logger.NewNop(),
		env:      environment.Development,
		maxItems: DefaultMaxBatchItems,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.tr == nil {
		h.tr = locales.MustNew()
	}
	if h.runner == nil {
		h.runner = batch.NewRunner(
			batch.WithMaxItems(h.maxItems),
			batch.WithMetrics(h.metrics),
			batch.WithLogger(h.log),
		)
	}
	return h
}

// Router returns the HTTP routes with the middleware stack applied.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(h.clients.Middleware)
	r.Use(environment.Middleware(h.env))
	r.Use(i18n.Middleware(h.tr))
	r.Use(requestLogger(h.log))

	r.Get("/health/live", httpserver.HealthCheckHandler(h.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(h.log, h.checks...))
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		if h.limiter != nil {
			r.Use(ratelimiter.Middleware(h.limiter, clientKey, rateLimited))
		}
		r.Get("/kinds", h.listKinds)
		r.Post("/validate", h.validateBatch)
		r.Post("/validate/{kind}", h.validateOne)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "The requested resource was not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	return r
}

func clientKey(r *http.Request) string {
	return clientip.FromContext(r.Context())
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusTooManyRequests, "rate_limited", "Too many requests", nil)
}
