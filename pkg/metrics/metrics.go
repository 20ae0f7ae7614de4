// Package metrics provides Prometheus instrumentation for gopromise components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gopromise components.
type Registry struct {
	// Future Metrics
	FuturesIssued    *prometheus.CounterVec
	FuturesDelivered *prometheus.CounterVec
	DeliveryDuration *prometheus.HistogramVec

	// Invoker Metrics
	TasksSubmitted  *prometheus.CounterVec
	TasksCompleted  *prometheus.CounterVec
	TasksPanicked   *prometheus.CounterVec
	TaskDuration    *prometheus.HistogramVec
	InvokerWorkers  *prometheus.GaugeVec
	InvokerInFlight *prometheus.GaugeVec
	InvokerQueued   *prometheus.GaugeVec

	// Queue Metrics
	QueuePushed  *prometheus.CounterVec
	QueuePopped  *prometheus.CounterVec
	QueueDropped *prometheus.CounterVec
	QueueDepth   *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by gopromise components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Future Metrics
		FuturesIssued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "future",
				Name:      "issued_total",
				Help:      "Total number of futures handed out",
			},
			[]string{"source"},
		),

		FuturesDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "future",
				Name:      "delivered_total",
				Help:      "Total number of futures delivered",
			},
			[]string{"source"},
		),

		DeliveryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gopromise",
				Subsystem: "future",
				Name:      "delivery_duration_seconds",
				Help:      "Time from submission to delivery of the result",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		// Invoker Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "invoker",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks submitted",
			},
			[]string{"invoker_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "invoker",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed",
			},
			[]string{"invoker_name"},
		),

		TasksPanicked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "invoker",
				Name:      "tasks_panicked_total",
				Help:      "Total number of tasks that panicked during execution",
			},
			[]string{"invoker_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gopromise",
				Subsystem: "invoker",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"invoker_name"},
		),

		InvokerWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gopromise",
				Subsystem: "invoker",
				Name:      "workers",
				Help:      "Configured worker count (0 means goroutine per call)",
			},
			[]string{"invoker_name"},
		),

		InvokerInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gopromise",
				Subsystem: "invoker",
				Name:      "in_flight",
				Help:      "Number of tasks currently executing",
			},
			[]string{"invoker_name"},
		),

		InvokerQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gopromise",
				Subsystem: "invoker",
				Name:      "queued_tasks",
				Help:      "Number of queued tasks",
			},
			[]string{"invoker_name"},
		),

		// Queue Metrics
		QueuePushed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "queue",
				Name:      "pushed_total",
				Help:      "Total number of items pushed",
			},
			[]string{"queue_name"},
		),

		QueuePopped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "queue",
				Name:      "popped_total",
				Help:      "Total number of items popped",
			},
			[]string{"queue_name"},
		),

		QueueDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopromise",
				Subsystem: "queue",
				Name:      "dropped_total",
				Help:      "Total number of items dropped by inactive queues",
			},
			[]string{"queue_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gopromise",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Current number of buffered items",
			},
			[]string{"queue_name"},
		),
	}
}
