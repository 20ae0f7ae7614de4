package invoker

import (
	"context"
	"fmt"

	"github.com/vnykmshr/gopromise/pkg/async/future"
)

// Call submits fn and returns the future of its result immediately.
// The future is obtained before handoff, so it observes the delivery
// even though invocation spends the underlying task. Call blocks while
// a bounded queue is full; it fails with ErrClosed after Close.
func Call[T any](inv *Invoker, fn func(ctx context.Context) T) (*future.Future[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("task function cannot be nil")
	}

	task := future.NewTaskContext(fn)
	f := task.Future()
	if err := inv.submit(context.Background(), task.InvokeContext, true); err != nil {
		return nil, err
	}
	return f, nil
}

// TryCall submits fn without blocking. A full queue fails with
// ErrQueueFull; spawn mode always accepts.
func TryCall[T any](inv *Invoker, fn func(ctx context.Context) T) (*future.Future[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("task function cannot be nil")
	}

	task := future.NewTaskContext(fn)
	f := task.Future()
	if err := inv.submit(context.Background(), task.InvokeContext, false); err != nil {
		return nil, err
	}
	return f, nil
}

// CallContext submits fn, bounding the wait for queue space with ctx.
// The context covers queueing only: once accepted, the task runs with a
// background context and is never canceled.
func CallContext[T any](ctx context.Context, inv *Invoker, fn func(ctx context.Context) T) (*future.Future[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("task function cannot be nil")
	}

	task := future.NewTaskContext(fn)
	f := task.Future()
	if err := inv.submit(ctx, task.InvokeContext, true); err != nil {
		return nil, err
	}
	return f, nil
}

// Go submits void work and returns its signal future.
func Go(inv *Invoker, fn func()) (*future.SignalFuture, error) {
	if fn == nil {
		return nil, fmt.Errorf("task function cannot be nil")
	}

	return Call(inv, func(context.Context) future.Void {
		fn()
		return future.Void{}
	})
}
