package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the game service.
type Metrics struct {
	SimulationsTotal    *prometheus.CounterVec // labels: region, crop
	ResultsServed       *prometheus.CounterVec // labels: status={ready,awaiting_data}
	SustainabilityScore prometheus.Histogram
	SimulationDuration  prometheus.Histogram

	// Event publishing metrics.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error,skipped}
	EventsEnabled   prometheus.Gauge

	// Session store metrics.
	SessionsActive     prometheus.Gauge
	SessionStoreErrors *prometheus.CounterVec // labels: op={put,get}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SimulationsTotal,
		m.ResultsServed,
		m.SustainabilityScore,
		m.SimulationDuration,
		m.EventsPublished,
		m.EventsEnabled,
		m.SessionsActive,
		m.SessionStoreErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SimulationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agroverse",
			Name:      "simulations_total",
			Help:      "Simulation runs accepted, by region and crop.",
		}, []string{"region", "crop"}),
		ResultsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agroverse",
			Name:      "results_served_total",
			Help:      "Results view requests by outcome.",
		}, []string{"status"}),
		SustainabilityScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agroverse",
			Name:      "sustainability_score",
			Help:      "Sustainability score of accepted simulation runs.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agroverse",
			Name:      "simulation_duration_seconds",
			Help:      "Time to score, store, and publish a run, excluding the pacing delay.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agroverse",
			Name:      "events_published_total",
			Help:      "Simulation events by publish outcome.",
		}, []string{"outcome"}),
		EventsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agroverse",
			Name:      "events_enabled",
			Help:      "1 when simulation event publishing is enabled, 0 otherwise.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agroverse",
			Name:      "sessions_active",
			Help:      "Sessions held by the in-memory store.",
		}),
		SessionStoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agroverse",
			Name:      "session_store_errors_total",
			Help:      "Session store failures by operation.",
		}, []string{"op"}),
	}
}
