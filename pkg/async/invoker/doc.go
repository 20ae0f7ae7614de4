/*
Package invoker runs submitted callables asynchronously and hands back futures immediately.

Submission packages the callable as a one-shot task, obtains its future,
and routes the task onto a worker, all without waiting for execution. The
caller holds a future it can block on, poll, or attach continuations to,
while the work proceeds elsewhere.

Basic usage:

	inv := invoker.New(4, 100) // 4 workers, queue size 100
	defer inv.Close()

	f, err := invoker.Call(inv, func(ctx context.Context) int {
		return compute()
	})
	if err != nil {
		log.Printf("Failed to submit: %v", err)
	}

	result := f.Get() // blocks until the task ran

Execution Modes:

A positive worker count runs a bounded pool: a fixed set of goroutines
drains a task queue, so in-flight work never exceeds the worker count and
memory is bounded by the queue size.

	inv := invoker.New(8, 1000)

A worker count of zero selects spawn mode: every submission runs on its
own goroutine, tracked in a handle list. Each new submission prunes the
handles of finished goroutines, and Close joins whatever is left. Spawn
mode has no backpressure; it suits low-frequency, coarse-grained calls
and scales poorly under high submission rates.

	inv := invoker.New(0, 0)

Submission Methods:

	// Blocks while the queue is full
	f, err := invoker.Call(inv, fn)

	// Fails fast with ErrQueueFull instead of blocking
	f, err := invoker.TryCall(inv, fn)

	// Bounds the wait for queue space with a context
	f, err := invoker.CallContext(ctx, inv, fn)

	// Void work, returning a signal future
	done, err := invoker.Go(inv, func() { flush() })

Call, TryCall and CallContext are package functions rather than methods
because the result type is generic. All of them obtain the future before
handing the task over, so the caller's handle always observes the
delivery.

Results and Failures:

The future carries only the task's value. A task that can fail should
return its own result type:

	type fetchResult struct {
		body []byte
		err  error
	}

	f, _ := invoker.Call(inv, func(ctx context.Context) fetchResult {
		body, err := fetch(url)
		return fetchResult{body, err}
	})

	res := f.Get()
	if res.err != nil {
		// handle it
	}

A task that panics is recovered by the worker and reported to the
configured PanicHandler, but its future stays undelivered forever: there
is no value to deliver and no error channel to carry the panic. Waiters
that cannot trust a task body should use GetContext or WaitFor rather
than Get.

Submission failures are explicit errors: ErrClosed after Close,
ErrQueueFull from TryCall on a full queue, and the context's error from
CallContext when the wait for queue space is abandoned.

Cancellation:

There is none for in-flight work. The context passed to CallContext
bounds only the enqueue wait; tasks execute with a background context
and always run to completion. Close does not cancel anything either: it
stops intake and waits.

Configuration:

	config := invoker.Config{
		Workers:   8,
		QueueSize: 1000,
		PanicHandler: func(recovered interface{}) {
			log.Printf("task panicked: %v", recovered)
		},
		OnTaskComplete: func(d time.Duration, recovered interface{}) {
			log.Printf("task finished in %v", d)
		},
	}
	inv := invoker.NewWithConfig(config)

Invalid configurations panic: negative worker counts, negative queue
sizes, and a queue size in spawn mode are all caller bugs.

Shutdown:

Close stops intake, then blocks until the invoker is quiescent. A
bounded pool finishes every queued task before its workers exit; spawn
mode joins every outstanding goroutine. Close is idempotent and safe
for concurrent callers; all of them return only after the drain
completes. Tasks submitted after Close fail with ErrClosed.

	inv := invoker.New(4, 100)

	for i := 0; i < 10; i++ {
		invoker.Go(inv, work)
	}

	inv.Close() // returns once all 10 have run

Beware of submitting from inside a task on a bounded pool: if the queue
is full and every worker is blocked on such a submission, the pool
deadlocks. Spawn mode and TryCall are immune.

Monitoring:

	fmt.Printf("workers: %d\n", inv.Workers())
	fmt.Printf("queued: %d\n", inv.Len())
	fmt.Printf("in flight: %d\n", inv.InFlight())
	fmt.Printf("submitted: %d\n", inv.Submitted())
	fmt.Printf("completed: %d\n", inv.Completed())

Prometheus instrumentation is available through the metrics
constructors:

	inv := invoker.NewWithMetrics(4, "background")

	inv2 := invoker.NewWithConfigAndMetrics(
		invoker.Config{Workers: 4, QueueSize: 64},
		"pipeline",
		metrics.Config{Enabled: true, Registry: registry},
	)

Thread Safety:

All operations are safe for concurrent use from multiple goroutines.
*/
package invoker
