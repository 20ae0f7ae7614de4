package queue

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/gopromise/pkg/metrics"
)

// NewWithMetrics creates an active queue with metrics enabled.
func NewWithMetrics[T any](qcount int, name string) *Queue[T] {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics[T](qcount, name, config)
}

// NewWithConfigAndMetrics creates a queue with custom metrics settings.
func NewWithConfigAndMetrics[T any](qcount int, name string, metricsConfig metrics.Config) *Queue[T] {
	q := New[T](qcount)

	if !metricsConfig.Enabled {
		return q
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		// Create custom registry if provided
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	q.metricsMu.Lock()
	q.metricsEnabled = true
	q.registry = registry
	q.metricsName = name
	q.metricsMu.Unlock()

	return q
}

// EnableMetrics enables metrics collection.
func (q *Queue[T]) EnableMetrics(config metrics.Config) error {
	depth := q.Len()

	q.metricsMu.Lock()
	q.metricsEnabled = config.Enabled
	if config.Registry != nil {
		q.registry = metrics.NewRegistry(config.Registry)
	}
	if q.registry == nil {
		q.registry = metrics.DefaultRegistry
	}
	q.metricsMu.Unlock()

	if config.Enabled {
		q.observeDepth(depth)
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (q *Queue[T]) DisableMetrics() {
	q.metricsMu.Lock()
	q.metricsEnabled = false
	q.metricsMu.Unlock()
}

// MetricsEnabled returns true if metrics are currently enabled.
func (q *Queue[T]) MetricsEnabled() bool {
	q.metricsMu.RLock()
	defer q.metricsMu.RUnlock()
	return q.metricsEnabled
}

// observePush records n pushed or dropped items and the new depth.
func (q *Queue[T]) observePush(accepted bool, n int, depth int) {
	q.metricsMu.RLock()
	defer q.metricsMu.RUnlock()
	if !q.metricsEnabled {
		return
	}

	if accepted {
		q.registry.QueuePushed.WithLabelValues(q.metricsName).Add(float64(n))
	} else {
		q.registry.QueueDropped.WithLabelValues(q.metricsName).Add(float64(n))
	}
	q.registry.QueueDepth.WithLabelValues(q.metricsName).Set(float64(depth))
}

// observePop records one consumed item and the new depth.
func (q *Queue[T]) observePop(depth int) {
	q.metricsMu.RLock()
	defer q.metricsMu.RUnlock()
	if !q.metricsEnabled {
		return
	}

	q.registry.QueuePopped.WithLabelValues(q.metricsName).Inc()
	q.registry.QueueDepth.WithLabelValues(q.metricsName).Set(float64(depth))
}

// observeDepth refreshes the depth gauge.
func (q *Queue[T]) observeDepth(depth int) {
	q.metricsMu.RLock()
	defer q.metricsMu.RUnlock()
	if !q.metricsEnabled {
		return
	}

	q.registry.QueueDepth.WithLabelValues(q.metricsName).Set(float64(depth))
}
