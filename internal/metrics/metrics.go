package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the converter's collectors on a private registry, so tests
// and multiple servers in one process do not collide. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	duration    prometheus.Histogram
	dfaStates   prometheus.Histogram
	cache       *prometheus.CounterVec
	matches     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retodfa_conversions_total",
				Help: "Conversions by outcome (ok or error kind)",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "retodfa_conversion_duration_seconds",
			Help:    "Time spent compiling an expression into a DFA",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		dfaStates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "retodfa_dfa_states",
			Help:    "Number of DFA states produced per conversion",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retodfa_cache_lookups_total",
				Help: "Document cache lookups by result",
			},
			[]string{"result"},
		),
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retodfa_matches_total",
				Help: "Inputs run through a DFA by verdict",
			},
			[]string{"accepted"},
		),
	}
	m.registry.MustRegister(
		m.conversions, m.duration, m.dfaStates, m.cache, m.matches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveConversion records one pipeline run. outcome is "ok" or an error
// kind; states is ignored for failed runs.
func (m *Metrics) ObserveConversion(outcome string, elapsed time.Duration, states int) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(outcome).Inc()
	if outcome != "ok" {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.dfaStates.Observe(float64(states))
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveMatch(accepted bool) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(strconv.FormatBool(accepted)).Inc()
}
