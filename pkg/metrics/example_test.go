package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this test
	testRegistry := prometheus.NewRegistry()
	registry := NewRegistry(testRegistry)

	fmt.Printf("Registry created with %d future metrics\n", 3)
	fmt.Printf("Registry created with %d invoker metrics\n", 7)
	fmt.Printf("Registry created with %d queue metrics\n", 4)

	// Example of accessing metrics
	registry.TasksSubmitted.WithLabelValues("background").Add(10)
	registry.TasksCompleted.WithLabelValues("background").Add(8)
	registry.InvokerInFlight.WithLabelValues("background").Set(2)

	fmt.Println("Metrics updated successfully")

	// Output:
	// Registry created with 3 future metrics
	// Registry created with 7 invoker metrics
	// Registry created with 4 queue metrics
	// Metrics updated successfully
}

// Example_customRegistry demonstrates using a custom Prometheus registry.
func Example_customRegistry() {
	// Create a custom registry
	customRegistry := prometheus.NewRegistry()

	config := Config{
		Enabled:  true,
		Registry: customRegistry,
	}

	// Create metrics registry with custom config
	registry := NewRegistry(config.Registry)

	// Test the registry
	registry.FuturesIssued.WithLabelValues("invoker").Add(12)
	registry.FuturesDelivered.WithLabelValues("invoker").Add(10)
	registry.QueuePushed.WithLabelValues("events").Add(2)

	fmt.Printf("Custom registry enabled: %v\n", config.Enabled)
	fmt.Println("Custom registry configured with gopromise metrics")

	// Output:
	// Custom registry enabled: true
	// Custom registry configured with gopromise metrics
}

// Example_metricsServer demonstrates setting up a metrics HTTP server.
func Example_metricsServer() {
	// In a real application, you would start a metrics server:
	//
	// http.Handle("/metrics", promhttp.Handler())
	// log.Fatal(http.ListenAndServe(":8080", nil))
	//
	// Available metrics would include:
	// - gopromise_invoker_tasks_submitted_total{invoker_name="background"}
	// - gopromise_invoker_tasks_completed_total{invoker_name="background"}
	// - gopromise_invoker_in_flight{invoker_name="background"}
	// - gopromise_queue_pushed_total{queue_name="events"}
	// - gopromise_queue_popped_total{queue_name="events"}
	// - gopromise_queue_depth{queue_name="events"}
	// And many more...

	fmt.Println("Metrics available at /metrics endpoint")
	fmt.Println("See examples/metrics/main.go for a complete demonstration")

	// Output:
	// Metrics available at /metrics endpoint
	// See examples/metrics/main.go for a complete demonstration
}

// Example_configuration demonstrates different metrics configurations.
func Example_configuration() {
	// Default configuration
	defaultConfig := DefaultConfig()
	fmt.Printf("Default enabled: %v\n", defaultConfig.Enabled)
	fmt.Printf("Default namespace: %s\n", defaultConfig.Namespace)

	// Custom configuration
	customConfig := Config{
		Enabled:   false,
		Namespace: "myapp",
	}
	fmt.Printf("Custom enabled: %v\n", customConfig.Enabled)
	fmt.Printf("Custom namespace: %s\n", customConfig.Namespace)

	// Output:
	// Default enabled: true
	// Default namespace: gopromise
	// Custom enabled: false
	// Custom namespace: myapp
}
