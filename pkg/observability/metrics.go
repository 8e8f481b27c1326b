package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records validation outcomes in Prometheus.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates and registers the validation collectors. If registry is
// nil a fresh one is created.
func NewMetrics(namespace string, registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "paramspec"
	}

	m := &Metrics{
		registry: registry,
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of payload validations by schema, status and code",
			},
			[]string{"schema", "status", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of payload validations",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
			[]string{"schema"},
		),
	}
	registry.MustRegister(m.validations, m.duration)
	return m
}

// Hooks returns hooks that feed the collectors.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnValidated: func(ctx context.Context, e *ValidationEvent) {
			status := strconv.Itoa(e.Result.StatusCode())
			if e.Err != nil {
				status = "error"
			}
			m.validations.WithLabelValues(e.Schema, status, e.Label()).Inc()
			m.duration.WithLabelValues(e.Schema).Observe(e.Duration.Seconds())
		},
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
