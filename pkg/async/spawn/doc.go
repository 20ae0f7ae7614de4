/*
Package spawn wraps goroutines in handles that are always joined.

A bare `go` statement detaches the goroutine from its creator: nothing
ties its lifetime to anything, and shutdown code cannot wait for it. A
Handle restores that tie. Whoever holds the handle joins it, and the
invoker pool in this module joins every handle it spawned before its
Close returns.

Basic usage:

	h := spawn.Go(func() {
		work()
	})

	// ... later
	h.Join() // blocks until work() returned

Cooperative stop:

Long-running functions take a stop token and poll it:

	h := spawn.GoWithStop(func(stop *spawn.Stop) {
		for !stop.Requested() {
			step()
		}
	})

	h.StopJoin() // request the stop, then wait for the return

The token is advisory. RequestStop flips a flag; it does not interrupt
anything, and a function that never polls it runs to completion anyway.

Liveness:

Active reports whether the goroutine is still running, without blocking:

	if !h.Active() {
		// finished; Join returns immediately
	}

The zero Handle is inert: Active is false, Join returns immediately,
RequestStop reports false. This makes handles safe to keep in slices and
structs before they are assigned.
*/
package spawn
