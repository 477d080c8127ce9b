// Package metrics exposes Prometheus counters for identifier validation.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/esflavor/pkg/esid"
)

const (
	// OutcomeValid is the outcome label for accepted values.
	OutcomeValid = "valid"

	// KindUnknown replaces kind labels that are not a supported kind so
	// caller input never creates new series.
	KindUnknown = "unknown"
)

// Metrics records validation outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	// Validations counts results by kind and outcome (valid or an esid code).
	Validations *prometheus.CounterVec

	// BatchDuration tracks how long whole batches take.
	BatchDuration prometheus.Histogram

	// BatchSize tracks the number of items per batch.
	BatchSize prometheus.Histogram
}

// New registers the validation metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esflavor_validations_total",
			Help: "Total identifier validations by kind and outcome",
		}, []string{"kind", "outcome"}),

		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "esflavor_batch_duration_seconds",
			Help:    "Duration of batch validation runs",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "esflavor_batch_items",
			Help:    "Number of items per batch validation run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}
}

// ObserveValidation records one validation result for kind.
func (m *Metrics) ObserveValidation(kind esid.Kind, err error) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(kindLabel(kind), Outcome(err)).Inc()
}

func kindLabel(kind esid.Kind) string {
	if !kind.Valid() {
		return KindUnknown
	}
	return kind.String()
}

// ObserveBatch records the size and duration of a finished batch.
func (m *Metrics) ObserveBatch(items int, d time.Duration) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(items))
	m.BatchDuration.Observe(d.Seconds())
}

// Outcome maps a validator result to its label value.
func Outcome(err error) string {
	if err == nil {
		return OutcomeValid
	}
	if code, ok := esid.CodeOf(err); ok {
		return string(code)
	}
	if errors.Is(err, esid.ErrUnknownKind) {
		return "unknown_kind"
	}
	return "error"
}
