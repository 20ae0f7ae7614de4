/*
Package queue provides a thread-safe blocking FIFO with multiple sub-queues.

Unlike Go's built-in channels, the queue is unbounded, supports several
independent sub-queues behind one lock, can be drained with the residual
items returned, and uses deactivation rather than closing as its shutdown
signal. It suits dispatcher loops that multiplex work classes and need to
recover unprocessed items on shutdown.

Basic usage:

	q := queue.New[string](1)

	go func() {
		for {
			item, ok := q.Pop()
			if !ok {
				return // deactivated
			}
			process(item)
		}
	}()

	q.Push("job-1")
	q.Push("job-2")

	// Shutdown: release the consumer and recover whatever it never got to
	leftover := q.Drain()

Sub-Queues:

A queue starts with a fixed number of sub-queues and can grow with
AddQueue. Producers target a sub-queue with PushTo; consumers take from
one with PopFrom or from the first non-empty of several with PopAny.
PopAny scans in argument order, so listing one sub-queue before another
prioritizes it:

	q := queue.New[Task](2)

	const urgent, background = 0, 1

	q.PushTo(background, cleanupTask)
	q.PushTo(urgent, userRequest)

	// Urgent work wins whenever both classes have items
	task, ok := q.PopAny(urgent, background)

Sub-queue ids are small integers handed out by construction order and
AddQueue. An out-of-range id is a caller bug and panics.

Blocking and Deactivation:

Pop, PopFrom and PopAny block until an item is available or the queue is
deactivated. Deactivation takes priority: a deactivated queue returns
ok == false to every blocked and future pop, even while items remain.
Pushes to an inactive queue are silently dropped and counted. SetActive
makes deactivation reversible; Clear and Drain flush the items as well.

	items := q.Clear(true) // flush but stay active
	items = q.Drain()      // flush and deactivate

The residue is ordered by sub-queue id, each sub-queue first-in
first-out.

Monitoring:

Counters are available either as a snapshot or as Prometheus families:

	stats := q.Stats()
	fmt.Printf("pushed=%d popped=%d dropped=%d depth=%d\n",
		stats.Pushed, stats.Popped, stats.Dropped, stats.Depth)

	mq := queue.NewWithMetrics[string](1, "events")

Thread Safety:

All operations are safe for concurrent use from multiple goroutines.
*/
package queue
