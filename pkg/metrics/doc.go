// Package metrics provides Prometheus instrumentation for gopromise components.
//
// This package enables monitoring and observability for gopromise's future
// delivery, async invocation, and queueing components through Prometheus metrics.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Future delivery (futures issued, delivered, delivery latency)
//   - Async invokers (submitted, completed, panicked tasks, execution times)
//   - Invoker capacity (worker count, in-flight tasks, queued tasks)
//   - Buffered queues (pushed, popped, dropped items, queue depth)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Invoker with metrics
//	inv := invoker.NewWithMetrics(4, "background")
//
//	// Queue with metrics
//	q := queue.NewWithMetrics[string](1, "events")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	inv := invoker.NewWithConfigAndMetrics(
//		invoker.Config{Workers: 4, QueueSize: 64},
//		"background",
//		config,
//	)
//
// # Available Metrics
//
// ## Future Metrics
//
//   - gopromise_future_issued_total: Total number of futures handed out
//   - gopromise_future_delivered_total: Total number of futures delivered
//   - gopromise_future_delivery_duration_seconds: Time from submission to delivery
//
// ## Invoker Metrics
//
//   - gopromise_invoker_tasks_submitted_total: Total number of tasks submitted
//   - gopromise_invoker_tasks_completed_total: Total number of tasks completed
//   - gopromise_invoker_tasks_panicked_total: Total number of tasks that panicked
//   - gopromise_invoker_task_duration_seconds: Time spent executing tasks
//   - gopromise_invoker_workers: Configured worker count
//   - gopromise_invoker_in_flight: Number of tasks currently executing
//   - gopromise_invoker_queued_tasks: Number of queued tasks
//
// ## Queue Metrics
//
//   - gopromise_queue_pushed_total: Total number of items pushed
//   - gopromise_queue_popped_total: Total number of items popped
//   - gopromise_queue_dropped_total: Total number of items dropped by inactive queues
//   - gopromise_queue_depth: Current number of buffered items
//
// # Labels
//
// Metrics include relevant labels for filtering and aggregation:
//
//   - source: Component that issued the future (e.g., "invoker", "task")
//   - invoker_name: User-provided name for the invoker instance
//   - queue_name: User-provided name for the queue instance
//
// # Configuration
//
// Metrics can be configured globally or per-component:
//
//	config := metrics.Config{
//		Enabled:   true,                           // Enable/disable metrics
//		Registry:  prometheus.DefaultRegisterer,   // Custom registry
//		Namespace: "myapp",                        // Override default "gopromise"
//		Labels:    prometheus.Labels{"version": "1.0"}, // Additional labels
//	}
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	inv := invoker.NewWithMetrics(4, "background")
//	inv.DisableMetrics()           // Stop collecting metrics
//	inv.EnableMetrics(config)      // Re-enable with new config
//	enabled := inv.MetricsEnabled() // Check current state
//
// # Performance
//
// Metrics collection is designed for minimal overhead:
//   - Metrics are updated only when operations occur
//   - No background goroutines or timers
//   - Efficient label handling with pre-computed label values
//   - Conditional metrics updates based on enabled state
//
// # Examples
//
// See the example tests for comprehensive usage patterns:
//   - Example_basicUsage: Accessing registry families directly
//   - Example_customRegistry: Using custom Prometheus registries
//   - Example_metricsServer: Setting up HTTP metrics endpoint
//   - Example_configuration: Default and custom configurations
package metrics
