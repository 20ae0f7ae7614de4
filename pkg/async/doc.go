/*
Package async provides asynchronous result delivery and execution primitives for Go applications.

This package offers components for producing, awaiting, and routing asynchronous results:

  - future: Promise/future pairs with multicast delivery and continuations
  - spawn: Goroutine handles with joining and cooperative stop semantics
  - invoker: Task submission with immediate future results and drain-on-close
  - queue: Multi-lane buffered FIFO queues with blocking pops
  - scheduler: Time-based and cron-style job scheduling onto an invoker
  - distributed: Cross-process promise delivery backed by Redis

Futures:

Promise/future pairs deliver one value to any number of waiters:

	p := future.NewPromise[int]()
	f := p.Future()

	f.Then(func(v int) { fmt.Println("got", v) })

	p.Set(42)
	fmt.Println(f.Get())

Spawning:

Spawn wraps goroutines in handles that always join:

	h := spawn.GoWithStop(func(stop *spawn.Stop) {
		for !stop.Requested() {
			// Do work
		}
	})

	h.StopJoin()

Invoker:

The invoker runs submitted functions and hands back futures immediately:

	inv := invoker.New(4, 100) // 4 workers, queue size 100
	defer inv.Close()

	f, _ := invoker.Call(inv, func(ctx context.Context) int { return compute() })
	result := f.Get()

Scheduler:

The scheduler fires jobs on an invoker at deadlines, intervals, or cron expressions:

	s := scheduler.New()
	s.Start()
	defer func() { <-s.Stop() }()

	s.ScheduleAfter("warmup", job, time.Minute)
	s.ScheduleRepeating("sync", job, time.Hour)
	s.ScheduleCron("digest", "0 0 9 * * MON-FRI", job) // Weekdays at 9 AM

All async components are thread-safe and integrate with context
for cancellation and timeout handling.
*/
package async
