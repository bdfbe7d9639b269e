package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mukoko_weather"

// Metrics holds the Prometheus collectors for the resolution pipeline.
type Metrics struct {
	ResolveTotal     *prometheus.CounterVec   // labels: source={primary,secondary,fallback}, cached={true,false}
	StageErrors      *prometheus.CounterVec   // labels: stage, reason={unavailable,malformed,empty}
	CacheLookups     *prometheus.CounterVec   // labels: result={hit,miss}
	ProviderDuration *prometheus.HistogramVec // labels: provider
	FrostAlerts      *prometheus.CounterVec   // labels: risk={moderate,high,severe}
	RuleRefreshes    *prometheus.CounterVec   // labels: outcome={success,error}
}

// NewMetrics creates all pipeline metrics and registers them with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ResolveTotal,
		m.StageErrors,
		m.CacheLookups,
		m.ProviderDuration,
		m.FrostAlerts,
		m.RuleRefreshes,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ResolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_total",
			Help:      "Weather resolutions by producing source and cache state.",
		}, []string{"source", "cached"}),
		StageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline stage declines by stage and reason.",
		}, []string{"stage", "reason"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		FrostAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frost_alerts_total",
			Help:      "Frost advisories produced, by risk tier.",
		}, []string{"risk"}),
		RuleRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_refreshes_total",
			Help:      "Suitability rule store refreshes by outcome.",
		}, []string{"outcome"}),
	}
}
