package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bumps"

// Metrics counts user actions on the board. The zero value is not usable;
// build one with New. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	golfersAdded       prometheus.Counter
	validationFailures *prometheus.CounterVec
	difficultyUpdates  prometheus.Counter
	tokensDropped      prometheus.Counter
	allocations        prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		golfersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "golfers_added_total",
			Help:      "Golfers added to the board.",
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected user input, by action.",
		}, []string{"action"}),
		difficultyUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "difficulty_updates_total",
			Help:      "Bulk hole difficulty updates applied.",
		}),
		tokensDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_dropped_total",
			Help:      "Difficulty tokens skipped because they did not parse.",
		}),
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Bump assignments computed.",
		}),
	}
	m.registry.MustRegister(
		m.golfersAdded,
		m.validationFailures,
		m.difficultyUpdates,
		m.tokensDropped,
		m.allocations,
	)
	return m
}

func (m *Metrics) GolferAdded(n int) {
	if m == nil {
		return
	}
	m.golfersAdded.Add(float64(n))
}

func (m *Metrics) ValidationFailed(action string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(action).Inc()
}

func (m *Metrics) DifficultiesUpdated(dropped int) {
	if m == nil {
		return
	}
	m.difficultyUpdates.Inc()
	m.tokensDropped.Add(float64(dropped))
}

func (m *Metrics) Allocated() {
	if m == nil {
		return
	}
	m.allocations.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
