package future

import (
	"context"
	"sync"
)

// PackagedTask binds a callable to a promise. Invoking the task runs
// the callable once and delivers its result to futures obtained
// beforehand; the task is spent afterwards.
type PackagedTask[T any] struct {
	mu sync.Mutex
	fn func(context.Context) T
	p  *Promise[T]
}

// NewTask packages fn for one-shot invocation.
func NewTask[T any](fn func() T) *PackagedTask[T] {
	if fn == nil {
		panic("task callable must not be nil")
	}
	return &PackagedTask[T]{
		fn: func(context.Context) T { return fn() },
		p:  NewPromise[T](),
	}
}

// NewTaskContext packages a context-aware fn for one-shot invocation.
// The context passed to Invoke or InvokeContext flows into fn.
func NewTaskContext[T any](fn func(context.Context) T) *PackagedTask[T] {
	if fn == nil {
		panic("task callable must not be nil")
	}
	return &PackagedTask[T]{fn: fn, p: NewPromise[T]()}
}

// Valid reports whether the task still holds its callable. A spent
// task reports false.
func (t *PackagedTask[T]) Valid() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fn != nil
}

// Future returns a future bound to the task's current promise.
//
// Call it before invocation: invoking resets the task with a fresh
// promise, so a future obtained afterwards observes the replacement,
// which is never delivered.
func (t *PackagedTask[T]) Future() *Future[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.p.Future()
}

// Invoke runs the callable with a background context, delivers its
// result, and resets the task. Invoking a spent task panics.
func (t *PackagedTask[T]) Invoke() {
	t.InvokeContext(context.Background())
}

// InvokeContext runs the callable with ctx, delivers its result, and
// resets the task. The task is spent as soon as invocation begins, so
// a second concurrent invocation panics instead of delivering twice.
func (t *PackagedTask[T]) InvokeContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	t.mu.Lock()
	fn, p := t.fn, t.p
	if fn == nil {
		t.mu.Unlock()
		panic("task does not hold a callable")
	}
	t.fn = nil
	t.p = NewPromise[T]()
	t.mu.Unlock()

	p.Set(fn(ctx))
}
