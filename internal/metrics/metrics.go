package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry. All
// methods are safe on a nil receiver, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter     *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	ProblemsGenerated  *prometheus.CounterVec
	GeneratorFallbacks *prometheus.CounterVec
	HintsServed        *prometheus.CounterVec
	Solves             *prometheus.CounterVec
	Drills             *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		ProblemsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numbernexus_problems_generated_total",
				Help: "Problems generated by operation and difficulty",
			},
			[]string{"operation", "difficulty"},
		),
		GeneratorFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numbernexus_generator_fallbacks_total",
				Help: "Problems that fell back after exhausting retries",
			},
			[]string{"operation"},
		),
		HintsServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numbernexus_hints_served_total",
				Help: "Hints served by strategy type",
			},
			[]string{"type"},
		),
		Solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numbernexus_solves_total",
				Help: "Recorded answers by topic and correctness",
			},
			[]string{"topic", "correct"},
		),
		Drills: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "numbernexus_drills_total",
				Help: "Completed speed drills by topic",
			},
			[]string{"topic"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDuration,
		m.ProblemsGenerated,
		m.GeneratorFallbacks,
		m.HintsServed,
		m.Solves,
		m.Drills,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
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

// ObserveProblem counts a generated problem.
func (m *Metrics) ObserveProblem(operation, difficulty string, fallback bool) {
	if m == nil {
		return
	}
	m.ProblemsGenerated.WithLabelValues(operation, difficulty).Inc()
	if fallback {
		m.GeneratorFallbacks.WithLabelValues(operation).Inc()
	}
}

// ObserveHint counts a served hint.
func (m *Metrics) ObserveHint(strategy string) {
	if m == nil {
		return
	}
	m.HintsServed.WithLabelValues(strategy).Inc()
}

// ObserveSolve counts a recorded answer.
func (m *Metrics) ObserveSolve(topic string, correct bool) {
	if m == nil {
		return
	}
	m.Solves.WithLabelValues(topic, strconv.FormatBool(correct)).Inc()
}

// ObserveDrill counts a completed speed drill.
func (m *Metrics) ObserveDrill(topic string) {
	if m == nil {
		return
	}
	m.Drills.WithLabelValues(topic).Inc()
}
