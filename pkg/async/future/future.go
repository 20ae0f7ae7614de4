package future

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Status describes a future handle's view of its shared state.
type Status int32

const (
	// Idle means the handle is unbound, or bound but never waited on.
	Idle Status = iota

	// Deferred means at least one wait was attempted before delivery.
	Deferred

	// Ready means the delivered value has been observed. Terminal.
	Ready
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Deferred:
		return "deferred"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// block is the state shared between one promise and every future bound
// to it. The done channel is closed on delivery; value and delivered
// never change afterwards.
type block[T any] struct {
	mu        sync.Mutex
	value     T
	delivered bool
	draining  bool
	thens     []func(T)
	done      chan struct{}
}

func newBlock[T any]() *block[T] {
	return &block[T]{done: make(chan struct{})}
}

// deliver stores v exactly once, wakes all waiters, and runs registered
// continuations in registration order on the calling goroutine. Returns
// false if a value was already delivered.
func (b *block[T]) deliver(v T) bool {
	b.mu.Lock()
	if b.delivered {
		b.mu.Unlock()
		return false
	}
	b.value = v
	b.delivered = true
	b.draining = true
	close(b.done)
	b.mu.Unlock()

	// Continuations run with the lock released. Registrations racing
	// with delivery land on thens and are picked up by a later batch,
	// preserving registration order.
	for {
		b.mu.Lock()
		batch := b.thens
		b.thens = nil
		if len(batch) == 0 {
			b.draining = false
			b.mu.Unlock()
			return true
		}
		b.mu.Unlock()

		for _, fn := range batch {
			fn(v)
		}
	}
}

// then registers fn to run once with the delivered value. Before
// delivery it queues; while delivery is draining it joins the queue;
// after delivery it runs inline on the calling goroutine.
func (b *block[T]) then(fn func(T)) {
	b.mu.Lock()
	if !b.delivered || b.draining {
		b.thens = append(b.thens, fn)
		b.mu.Unlock()
		return
	}
	v := b.value
	b.mu.Unlock()

	fn(v)
}

func (b *block[T]) ready() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Future is a read handle on a promise's eventual value. Any number of
// futures may share one promise; each carries its own status cache.
// The zero value is an invalid handle: Get and Then panic on it, Wait
// returns immediately, and WaitFor reports Idle.
type Future[T any] struct {
	b      *block[T]
	status int32
}

func (f *Future[T]) mustBlock() *block[T] {
	if f.b == nil {
		panic("future is not bound to a promise")
	}
	return f.b
}

// markDeferred promotes the status cache from Idle to Deferred. It
// never demotes Ready.
func (f *Future[T]) markDeferred() {
	atomic.CompareAndSwapInt32(&f.status, int32(Idle), int32(Deferred))
}

func (f *Future[T]) markReady() {
	atomic.StoreInt32(&f.status, int32(Ready))
}

// Valid reports whether the handle is bound to a promise.
func (f *Future[T]) Valid() bool {
	return f.b != nil
}

// Status returns the cached status, observing delivery if it has
// happened. Ready is sticky; Idle means no wait was ever attempted.
func (f *Future[T]) Status() Status {
	if f.b == nil {
		return Idle
	}
	s := Status(atomic.LoadInt32(&f.status))
	if s != Ready && f.b.ready() {
		f.markReady()
		return Ready
	}
	return s
}

// Get blocks until the value is delivered and returns it. Safe to call
// from any number of goroutines and handles sharing the same promise.
// Get on an invalid handle panics.
func (f *Future[T]) Get() T {
	b := f.mustBlock()
	if !b.ready() {
		f.markDeferred()
		<-b.done
	}
	f.markReady()
	return b.value
}

// GetContext blocks until the value is delivered or ctx is done. An
// abandoned wait returns ctx.Err(); the value is not consumed, so a
// later Get still observes it.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	b := f.mustBlock()
	if b.ready() {
		f.markReady()
		return b.value, nil
	}
	f.markDeferred()
	select {
	case <-b.done:
		f.markReady()
		return b.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait blocks until the value is delivered, discarding it. Wait on an
// invalid handle returns immediately.
func (f *Future[T]) Wait() {
	if f.b == nil {
		return
	}
	f.Get()
}

// WaitContext blocks until delivery or ctx is done, returning ctx.Err()
// for an abandoned wait. WaitContext on an invalid handle returns nil.
func (f *Future[T]) WaitContext(ctx context.Context) error {
	if f.b == nil {
		return nil
	}
	_, err := f.GetContext(ctx)
	return err
}

// WaitFor waits up to d for delivery and returns the resulting status.
// The state is always checked at least once, so a zero or negative
// duration is a non-blocking poll. WaitFor on an invalid handle
// returns Idle.
func (f *Future[T]) WaitFor(d time.Duration) Status {
	if f.b == nil {
		return Idle
	}
	if Status(atomic.LoadInt32(&f.status)) == Ready {
		return Ready
	}
	f.markDeferred()
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-f.b.done:
		case <-timer.C:
		}
	}
	if f.b.ready() {
		f.markReady()
		return Ready
	}
	return Status(atomic.LoadInt32(&f.status))
}

// Ready reports whether the value has been delivered.
func (f *Future[T]) Ready() bool {
	return f.WaitFor(0) == Ready
}

// Busy reports whether the handle is bound and still awaiting delivery.
func (f *Future[T]) Busy() bool {
	return f.WaitFor(0) == Deferred
}

// Then registers fn to run exactly once with the delivered value.
// Continuations registered before delivery run in registration order on
// the delivering goroutine; a continuation registered after delivery
// runs immediately on the calling goroutine. Then on an invalid handle
// panics.
func (f *Future[T]) Then(fn func(T)) {
	b := f.mustBlock()
	if fn == nil {
		panic("continuation must not be nil")
	}
	b.then(fn)
}
