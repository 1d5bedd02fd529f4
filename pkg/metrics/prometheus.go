// Package metrics provides Prometheus metrics for the rankings engines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the rankings engines.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Engine throughput - how often the pure engines run
	standingsComputed prometheus.Counter
	pairingsGenerated prometheus.Counter
	ingestionErrors   prometheus.Counter

	// Pairing quality - audit trail of search compromises
	rematchesUsed  prometheus.Counter
	downfloats     prometheus.Counter
	byesAssigned   prometheus.Counter
	budgetAborts   prometheus.Counter
	greedyFallback prometheus.Counter

	// Engine cost
	searchSteps    prometheus.Histogram
	tableSize      prometheus.Gauge
	activeEntrants prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankings",
		subsystem:        "engine",
		histogramBuckets: prometheus.ExponentialBuckets(1, 4, 8),
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.standingsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_computed_total",
		Help:      "Total number of standings computations",
	})
	m.pairingsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairings_generated_total",
		Help:      "Total number of pairing generations",
	})
	m.ingestionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingestion_errors_total",
		Help:      "Total number of outcome batches rejected at ingestion",
	})
	m.rematchesUsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rematches_used_total",
		Help:      "Total number of pairings that repeated a prior meeting",
	})
	m.downfloats = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "downfloats_total",
		Help:      "Total number of competitors floated to a lower score group",
	})
	m.byesAssigned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "byes_assigned_total",
		Help:      "Total number of byes handed out",
	})
	m.budgetAborts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_budget_aborts_total",
		Help:      "Total number of score groups whose search hit the step budget",
	})
	m.greedyFallback = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "greedy_fallback_pairs_total",
		Help:      "Total number of pairs produced by the greedy leftover pass",
	})
	m.searchSteps = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairing_search_steps",
		Help:      "Histogram of backtracking steps per pairing generation",
		Buckets:   m.histogramBuckets,
	})
	m.tableSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_size",
		Help:      "Number of competitors in the most recent standings table",
	})
	m.activeEntrants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_entrants",
		Help:      "Number of non-retired competitors in the most recent pairing pool",
	})
}

// Package-level recording helpers operating on the global manager.

// RecordStandingsComputed counts one standings computation over a table
// of the given size.
func RecordStandingsComputed(tableSize int) {
	if !globalManager.enabled {
		return
	}
	globalManager.standingsComputed.Inc()
	globalManager.tableSize.Set(float64(tableSize))
}

// RecordPairingsGenerated counts one pairing generation over the given
// active pool.
func RecordPairingsGenerated(activePool int) {
	if !globalManager.enabled {
		return
	}
	globalManager.pairingsGenerated.Inc()
	globalManager.activeEntrants.Set(float64(activePool))
}

// RecordIngestionError counts a rejected outcome batch.
func RecordIngestionError() {
	if globalManager.enabled {
		globalManager.ingestionErrors.Inc()
	}
}

// RecordRematches counts rematch pairings in one generation.
func RecordRematches(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.rematchesUsed.Add(float64(n))
	}
}

// RecordDownfloats counts downfloats in one generation.
func RecordDownfloats(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.downfloats.Add(float64(n))
	}
}

// RecordByeAssigned counts one bye.
func RecordByeAssigned() {
	if globalManager.enabled {
		globalManager.byesAssigned.Inc()
	}
}

// RecordBudgetAbort counts a score group that hit the step budget.
func RecordBudgetAbort() {
	if globalManager.enabled {
		globalManager.budgetAborts.Inc()
	}
}

// RecordGreedyFallback counts pairs produced by the leftover pass.
func RecordGreedyFallback(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.greedyFallback.Add(float64(n))
	}
}

// RecordSearchSteps observes the backtracking steps of one generation.
func RecordSearchSteps(steps int) {
	if globalManager.enabled {
		globalManager.searchSteps.Observe(float64(steps))
	}
}

// Registry returns the registry all engine metrics are registered on,
// for whatever exposure surface the embedding application chooses.
func Registry() *prometheus.Registry {
	return customRegistry
}
