package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option configures the metrics manager.
type Option func(*Manager)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		m.namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		m.subsystem = subsystem
	}
}

// WithHistogramBuckets sets custom histogram buckets for the search
// step histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		m.histogramBuckets = buckets
	}
}

// WithMetricsEnabled enables or disables metrics collection.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithPrometheusRegistry sets a custom Prometheus registry.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		m.registry = registry
	}
}
