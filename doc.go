/*
Package gopromise provides a Go library for asynchronous computation with
futures, promises, packaged tasks, and a draining async invoker.

Futures and Promises (pkg/async):
  - future: Shared-state futures with multicast handles and ordered continuations
  - spawn: Joining goroutine handles with cooperative stop tokens
  - invoker: Submit callables, get futures back immediately, drain on close
  - queue: Multi-queue blocking FIFO for producer/consumer handoff
  - scheduler: Time, interval, and cron-based submission onto an invoker
  - distributed: Cross-process promise delivery backed by Redis

Shared helpers (pkg/common, pkg/metrics):
  - errors: Sentinel errors and validation error types
  - guard: Mutex-guarded value wrapper with scoped access
  - metrics: Prometheus instrumentation for all components

Example usage:

	import (
		"github.com/vnykmshr/gopromise/pkg/async/future"
		"github.com/vnykmshr/gopromise/pkg/async/invoker"
	)

	inv := invoker.New(4, 100) // 4 workers, queue 100
	defer inv.Close()

	f, _ := invoker.Call(inv, func(ctx context.Context) int {
		return 21 * 2
	})

	answer := f.Get() // blocks until delivered
*/
package gopromise
