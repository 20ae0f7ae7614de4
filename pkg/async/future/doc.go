/*
Package future provides promise/future pairs with multicast delivery and ordered continuations.

A promise is the write side of an asynchronous result: exactly one value is
delivered through it. Futures are the read side: any number of them may be
bound to one promise, and every one observes the same single delivery, whether
by blocking, polling with a deadline, or registering a continuation.

Basic usage:

	p := future.NewPromise[int]()
	f := p.Future()

	go func() {
		p.Set(compute())
	}()

	value := f.Get() // blocks until Set

Key Features:

The future package provides:
  - Exactly-once delivery from promise to futures
  - Multicast: any number of futures per promise, all observing one value
  - Continuations that run now or later, in registration order
  - Blocking, context-aware, and duration-bounded waits
  - A per-handle status cache (Idle, Deferred, Ready)
  - Signal-only futures for valueless completion
  - One-shot packaged tasks binding a callable to a promise
  - Combinators: All, Race, Transform

Delivery:

Set stores the value, wakes every blocked waiter, and runs the registered
continuations in registration order on the delivering goroutine:

	p := future.NewPromise[string]()
	f := p.Future()

	f.Then(func(s string) { fmt.Println("first:", s) })
	f.Then(func(s string) { fmt.Println("second:", s) })

	p.Set("done") // runs both continuations, in order, then returns

A promise delivers exactly once. Calling Set a second time panics: delivering
twice is a programming error, not a runtime condition to handle.

Continuations registered after delivery run immediately on the registering
goroutine with the already-delivered value, so no registration ever misses
the value:

	p.Set("done")
	f.Then(func(s string) { fmt.Println(s) }) // runs inline, prints "done"

Continuations run with the internal lock released. A continuation may safely
call Get, Then, or Ready on the same future; a slow continuation delays later
continuations and the Set caller, but never deadlocks them.

Waiting:

Several ways to await delivery:

	// Block indefinitely
	v := f.Get()

	// Block until delivery or context cancellation
	v, err := f.GetContext(ctx)
	if err != nil {
		// ctx.Err(); the value is not consumed, a later Get still works
	}

	// Block, discarding the value
	f.Wait()

	// Bounded wait: returns the status after at most 50ms
	if f.WaitFor(50*time.Millisecond) == future.Ready {
		v := f.Get() // will not block
	}

	// Non-blocking poll
	if f.Ready() {
		v := f.Get()
	}

There is no error channel in the payload. A callable that can fail should
deliver its own result type carrying the error:

	type result struct {
		value int
		err   error
	}
	p := future.NewPromise[result]()

Dropped promises are a documented hazard: if a promise is garbage collected
without Set having been called, its futures block forever. The producer owns
the obligation to deliver.

Status:

Each future handle caches its status:

	future.Idle     // unbound, or bound but never waited on
	future.Deferred // a wait was attempted before delivery
	future.Ready    // delivery observed; terminal

Ready is sticky: once a handle observes delivery, every later query
short-circuits without touching shared state.

Signals:

Valueless completion uses the Void payload:

	done := future.NewSignal()
	f := done.Future()

	go func() {
		work()
		done.Set(future.Void{})
	}()

	f.Wait()

Packaged Tasks:

A packaged task binds a callable to a promise, for handing work to another
goroutine:

	task := future.NewTask(func() int { return 21 * 2 })
	f := task.Future() // obtain the future BEFORE invoking

	go task.Invoke()

	fmt.Println(f.Get()) // 42

Invocation is one-shot: the task resets itself with a fresh promise, so a
future obtained after invocation observes the replacement promise, which is
never delivered. Always call Future before handing the task off.

Combinators:

	all := future.All(f1, f2, f3)     // delivered with []T once all are
	first := future.Race(f1, f2, f3)  // delivered with the first value
	doubled := future.Transform(f, func(v int) int { return v * 2 })

Thread Safety:

All operations on promises, futures, and packaged tasks are safe for
concurrent use. A single future handle may be shared across goroutines, and
distinct handles on one promise are fully independent.
*/
package future
