package invoker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/gopromise/pkg/metrics"
)

// NewWithMetrics creates a bounded invoker with metrics enabled.
func NewWithMetrics(workers int, name string) *Invoker {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{
		Workers:   workers,
		QueueSize: 0, // Unbuffered by default
	}, name, config)
}

// NewWithConfigAndMetrics creates an invoker with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) *Invoker {
	inv := NewWithConfig(config)

	if !metricsConfig.Enabled {
		return inv
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		// Create custom registry if provided
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	inv.metricsMu.Lock()
	inv.metricsEnabled = true
	inv.registry = registry
	inv.metricsName = name
	inv.metricsMu.Unlock()

	inv.updateMetrics()
	return inv
}

// EnableMetrics enables metrics collection.
func (inv *Invoker) EnableMetrics(config metrics.Config) error {
	inv.metricsMu.Lock()
	inv.metricsEnabled = config.Enabled
	if config.Registry != nil {
		inv.registry = metrics.NewRegistry(config.Registry)
	}
	if inv.registry == nil {
		inv.registry = metrics.DefaultRegistry
	}
	inv.metricsMu.Unlock()

	if config.Enabled {
		inv.updateMetrics()
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (inv *Invoker) DisableMetrics() {
	inv.metricsMu.Lock()
	inv.metricsEnabled = false
	inv.metricsMu.Unlock()
}

// MetricsEnabled returns true if metrics are currently enabled.
func (inv *Invoker) MetricsEnabled() bool {
	inv.metricsMu.RLock()
	defer inv.metricsMu.RUnlock()
	return inv.metricsEnabled
}

// updateMetrics refreshes the gauge families from current state.
func (inv *Invoker) updateMetrics() {
	inv.metricsMu.RLock()
	defer inv.metricsMu.RUnlock()
	if !inv.metricsEnabled {
		return
	}

	inv.registry.InvokerWorkers.WithLabelValues(inv.metricsName).Set(float64(inv.Workers()))
	inv.registry.InvokerInFlight.WithLabelValues(inv.metricsName).Set(float64(inv.InFlight()))
	inv.registry.InvokerQueued.WithLabelValues(inv.metricsName).Set(float64(inv.Len()))
}

// observeSubmitted records one accepted task and the future issued for it.
func (inv *Invoker) observeSubmitted() {
	inv.metricsMu.RLock()
	defer inv.metricsMu.RUnlock()
	if !inv.metricsEnabled {
		return
	}

	inv.registry.TasksSubmitted.WithLabelValues(inv.metricsName).Inc()
	inv.registry.FuturesIssued.WithLabelValues(inv.metricsName).Inc()
	inv.registry.InvokerQueued.WithLabelValues(inv.metricsName).Set(float64(inv.Len()))
}

// observeStart records a task moving from the queue into execution.
func (inv *Invoker) observeStart() {
	inv.metricsMu.RLock()
	defer inv.metricsMu.RUnlock()
	if !inv.metricsEnabled {
		return
	}

	inv.registry.InvokerInFlight.WithLabelValues(inv.metricsName).Set(float64(inv.InFlight()))
	inv.registry.InvokerQueued.WithLabelValues(inv.metricsName).Set(float64(inv.Len()))
}

// observeComplete records a finished task.
func (inv *Invoker) observeComplete(duration time.Duration, recovered interface{}) {
	inv.metricsMu.RLock()
	defer inv.metricsMu.RUnlock()
	if !inv.metricsEnabled {
		return
	}

	if recovered != nil {
		inv.registry.TasksPanicked.WithLabelValues(inv.metricsName).Inc()
	} else {
		inv.registry.TasksCompleted.WithLabelValues(inv.metricsName).Inc()
	}
	inv.registry.TaskDuration.WithLabelValues(inv.metricsName).Observe(duration.Seconds())
	inv.registry.InvokerInFlight.WithLabelValues(inv.metricsName).Set(float64(inv.InFlight()))
}

// observeDelivered records a future delivering, measured from submission.
func (inv *Invoker) observeDelivered(elapsed time.Duration) {
	inv.metricsMu.RLock()
	defer inv.metricsMu.RUnlock()
	if !inv.metricsEnabled {
		return
	}

	inv.registry.FuturesDelivered.WithLabelValues(inv.metricsName).Inc()
	inv.registry.DeliveryDuration.WithLabelValues(inv.metricsName).Observe(elapsed.Seconds())
}
