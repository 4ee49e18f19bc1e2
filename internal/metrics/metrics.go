package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the allocator collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	allocations *prometheus.CounterVec
	collisions  *prometheus.CounterVec
	attempts    prometheus.Histogram
	redirects   *prometheus.CounterVec
}

// New registers the shorty collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shorty",
			Name:      "allocations_total",
			Help:      "Short code allocations by result kind.",
		}, []string{"result"}),
		collisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shorty",
			Name:      "code_collisions_total",
			Help:      "Rejected short code candidates by source.",
		}, []string{"source"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shorty",
			Name:      "allocation_attempts",
			Help:      "Insert attempts needed for a generated short code.",
			Buckets:   []float64{1, 2, 3, 4, 5, 8},
		}),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shorty",
			Name:      "redirects_total",
			Help:      "Short code resolutions by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.allocations,
		m.collisions,
		m.attempts,
		m.redirects,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Allocation counts one finished allocation.
func (m *Metrics) Allocation(result string) {
	if m == nil {
		return
	}
	m.allocations.WithLabelValues(result).Inc()
}

// Collision counts one rejected candidate. source is "generated", "custom" or "reserved".
func (m *Metrics) Collision(source string) {
	if m == nil {
		return
	}
	m.collisions.WithLabelValues(source).Inc()
}

// Attempts records how many inserts a generated allocation took.
func (m *Metrics) Attempts(n int) {
	if m == nil {
		return
	}
	m.attempts.Observe(float64(n))
}

// Redirect counts one resolution, outcome is "hit", "miss" or "error".
func (m *Metrics) Redirect(outcome string) {
	if m == nil {
		return
	}
	m.redirects.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
