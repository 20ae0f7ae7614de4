/*
Package scheduler fires jobs at a time, after a delay, on an interval, or
on a cron expression, running each firing through an invoker.

Every firing is an asynchronous call: the job runs on the invoker's
workers and produces a signal future. The OnFire hook hands that future
to the application, which can block on it, attach continuations, or
ignore it.

Basic Usage:

	s := scheduler.New()
	s.Start()
	defer func() { <-s.Stop() }()

	job := func(ctx context.Context) {
		fmt.Println("report generated")
	}

	// Once, at a point in time
	s.Schedule("eod-report", job, time.Now().Add(time.Hour))

	// Once, after a delay
	s.ScheduleAfter("warmup", job, 5*time.Second)

	// Every interval, first firing immediate
	s.ScheduleRepeating("heartbeat", job, 30*time.Second)

	// Cron, with a seconds field
	s.ScheduleCron("weekday-digest", "0 0 9 * * MON-FRI", job)

Entry ids are unique: scheduling a second entry under a live id fails,
and Cancel frees the id. List returns the live entries sorted by next
run time.

Cron Expressions:

The parser accepts six fields (seconds first) plus the usual
descriptors:

	"*/10 * * * * *"    every 10 seconds
	"0 30 14 * * 1-5"   2:30 PM on weekdays
	"0 0 9 1 * *"       9:00 AM on the 1st of every month
	"@hourly"           every hour

Evaluation uses Config.Location, defaulting to the local timezone.

Observing Firings:

	var mu sync.Mutex
	inFlight := make(map[string]*future.SignalFuture)

	s := scheduler.NewWithConfig(scheduler.Config{
		OnFire: func(id string, f *future.SignalFuture) {
			mu.Lock()
			inFlight[id] = f
			mu.Unlock()
		},
	})

OnFire runs on the scheduler's tick goroutine, so it should only record
the future, not block on it.

Execution Model:

A ticker wakes the scheduler every TickInterval (default 50ms) to fire
due entries, so firing precision is tick-bounded. Firings are submitted
without blocking: if the invoker is saturated or closed, that firing is
dropped and the entry still reschedules. Repeating entries reschedule
relative to the firing tick; cron entries follow their expression;
one-time entries are removed when fired.

Lifecycle:

Start begins ticking; a second Start before Stop fails. Stop halts
firing and returns a channel that closes once the loop exited and, when
the scheduler owns its invoker, after in-flight firings drained. A
scheduler constructed with an injected invoker can be started again
after Stop; one that owns its invoker is finished.

	inv := invoker.New(8, 200)
	defer inv.Close()

	s := scheduler.NewWithConfig(scheduler.Config{
		Invoker:      inv,
		TickInterval: 20 * time.Millisecond,
	})

Thread Safety:

All operations are safe for concurrent use from multiple goroutines.
*/
package scheduler
