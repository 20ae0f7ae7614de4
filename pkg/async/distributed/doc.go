// Package distributed provides cross-process promise delivery using Redis
// as the coordination backend.
//
// A distributed promise extends the single-process promise/future pair to
// multiple application instances: one process delivers a value, and futures
// obtained in any process configured with the same key observe that one
// delivery. This is useful when a result is computed once (a migration, a
// cache warm-up, an election outcome) and many services wait on it.
//
// # Overview
//
// The value is stored in Redis under the configured key prefix with SETNX,
// which makes delivery exactly-once across all processes: the first
// Deliver wins and every later attempt, from any instance, returns
// ErrAlreadyDelivered. Delivery also publishes the value on a notification
// channel, so futures resolve without polling. Futures created after the
// delivery read the stored value directly.
//
// # Quick Start
//
// The delivering side:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	config := distributed.DefaultConfig()
//	config.Redis = rdb
//	config.Key = "jobs:report:2026-08"
//
//	promise, err := distributed.NewPromise[string](config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer promise.Close()
//
//	if err := promise.Deliver(ctx, "s3://reports/2026-08.parquet"); err != nil {
//		log.Fatal(err)
//	}
//
// The observing side, in the same or another process:
//
//	f, err := promise.Future(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	location, err := f.GetContext(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Delivery Semantics
//
// Values are JSON-encoded, so the type parameter must marshal cleanly with
// encoding/json. The stored value lives for Config.KeyTTL (one hour by
// default); after it expires the key is free to deliver again, which is
// also what Reset does explicitly.
//
// Future subscribes to the notification channel before reading the stored
// value back, so there is no window in which a delivery can be missed: a
// value set before the read is returned immediately, and a value set after
// it arrives as a notification.
//
// # Watchers and Shutdown
//
// Each Future call that does not find the value already delivered starts
// one watcher goroutine. The watcher stops when the value arrives, when
// the ctx passed to Future is canceled, or when the promise is closed.
// A future whose watcher stopped before delivery stays deferred forever,
// so observers should use GetContext or WaitFor rather than Get to bound
// their wait. Close stops and joins all watchers and is idempotent.
//
// # Error Handling
//
// Configuration problems surface as validation errors or *ConfigError
// from NewPromise. Failed Redis operations are wrapped in *RedisError,
// which carries the operation name and unwraps to the underlying error.
// Duplicate deliveries return the ErrAlreadyDelivered sentinel from
// pkg/common/errors.
//
// # When Not to Use
//
// Inside a single process, pkg/async/future does the same job with no
// network round-trips and no serialization constraints. Reach for this
// package only when the deliverer and the observers live in different
// processes.
package distributed
