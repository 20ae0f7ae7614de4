package distributed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	gperrors "github.com/vnykmshr/gopromise/pkg/common/errors"
)

// Example_deliverAndObserve demonstrates one instance delivering a value
// that another instance's future observes.
func Example_deliverAndObserve() {
	// Create a Redis client (in real usage, use your Redis connection)
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use a test database
	})
	defer func() { _ = rdb.Close() }()

	// Test Redis connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	config := DefaultConfig()
	config.Redis = rdb
	config.Key = "example:report"

	// The producer side, typically one process.
	producerConfig := config
	producerConfig.InstanceID = "producer_1"
	producer, err := NewPromise[string](producerConfig)
	if err != nil {
		log.Fatalf("Failed to create producer promise: %v", err)
	}
	defer func() { _ = producer.Close() }()

	// The consumer side, typically another process.
	consumerConfig := config
	consumerConfig.InstanceID = "consumer_1"
	consumer, err := NewPromise[string](consumerConfig)
	if err != nil {
		log.Fatalf("Failed to create consumer promise: %v", err)
	}
	defer func() { _ = consumer.Close() }()

	// The consumer starts waiting before the value exists.
	f, err := consumer.Future(ctx)
	if err != nil {
		log.Fatalf("Failed to create future: %v", err)
	}

	// The producer finishes its work and delivers once.
	if err := producer.Deliver(ctx, "s3://reports/2026-08.parquet"); err != nil {
		log.Fatalf("Failed to deliver: %v", err)
	}

	location, err := f.GetContext(ctx)
	if err != nil {
		log.Fatalf("Failed to observe delivery: %v", err)
	}
	fmt.Printf("Report available at %s\n", location)

	// Clean up
	_ = producer.Reset(ctx)
}

// Example_exactlyOnce demonstrates that only one of several competing
// deliverers wins.
func Example_exactlyOnce() {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	config := DefaultConfig()
	config.Redis = rdb
	config.Key = "example:leader"

	promise, err := NewPromise[string](config)
	if err != nil {
		log.Fatalf("Failed to create promise: %v", err)
	}
	defer func() { _ = promise.Close() }()

	// Two workers race to publish their own id as the outcome.
	for _, worker := range []string{"worker_a", "worker_b"} {
		err := promise.Deliver(ctx, worker)
		switch {
		case err == nil:
			fmt.Printf("%s delivered first\n", worker)
		case errors.Is(err, gperrors.ErrAlreadyDelivered):
			fmt.Printf("%s lost the race\n", worker)
		default:
			log.Fatalf("Failed to deliver: %v", err)
		}
	}

	// Every future agrees on the winner.
	f, err := promise.Future(ctx)
	if err != nil {
		log.Fatalf("Failed to create future: %v", err)
	}
	fmt.Printf("Agreed outcome: %s\n", f.Get())

	// Clean up
	_ = promise.Reset(ctx)
}

// Example_lateObserver demonstrates that futures created after the
// delivery read the stored value directly.
func Example_lateObserver() {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	type migration struct {
		Schema  int  `json:"schema"`
		Applied bool `json:"applied"`
	}

	config := DefaultConfig()
	config.Redis = rdb
	config.Key = "example:migration"

	promise, err := NewPromise[migration](config)
	if err != nil {
		log.Fatalf("Failed to create promise: %v", err)
	}
	defer func() { _ = promise.Close() }()

	if err := promise.Deliver(ctx, migration{Schema: 42, Applied: true}); err != nil {
		log.Fatalf("Failed to deliver: %v", err)
	}

	// A process starting up later still sees the result.
	f, err := promise.Future(ctx)
	if err != nil {
		log.Fatalf("Failed to create future: %v", err)
	}

	result := f.Get()
	fmt.Printf("Schema %d applied: %v\n", result.Schema, result.Applied)

	// Clean up
	_ = promise.Reset(ctx)
}
