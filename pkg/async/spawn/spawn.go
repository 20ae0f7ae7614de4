package spawn

import (
	"sync/atomic"
)

// Stop is a cooperative stop token shared between a handle and the
// function it runs. The function polls Requested at its own pace;
// nothing interrupts it.
type Stop struct {
	requested int32
}

// Requested reports whether a stop has been requested.
func (s *Stop) Requested() bool {
	return atomic.LoadInt32(&s.requested) == 1
}

func (s *Stop) request() bool {
	return atomic.CompareAndSwapInt32(&s.requested, 0, 1)
}

// Handle tracks one spawned goroutine and guarantees it can always be
// joined; no goroutine started through this package is left detached.
// The zero value is inert: Active reports false and Join returns
// immediately.
type Handle struct {
	done chan struct{}
	stop *Stop
}

// Go runs fn on a new goroutine and returns a handle to join it.
func Go(fn func()) *Handle {
	if fn == nil {
		panic("spawn function must not be nil")
	}
	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		fn()
	}()
	return h
}

// GoWithStop runs fn on a new goroutine with a cooperative stop token.
// fn should poll stop.Requested at convenient points and return when it
// reports true.
func GoWithStop(fn func(stop *Stop)) *Handle {
	if fn == nil {
		panic("spawn function must not be nil")
	}
	h := &Handle{done: make(chan struct{}), stop: &Stop{}}
	go func() {
		defer close(h.done)
		fn(h.stop)
	}()
	return h
}

// Active reports whether the goroutine is still running.
func (h *Handle) Active() bool {
	if h.done == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// RequestStop sets the stop flag and reports whether this call made the
// request. It reports false when the handle carries no stop token or
// when a request was already made.
func (h *Handle) RequestStop() bool {
	if h.stop == nil {
		return false
	}
	return h.stop.request()
}

// Join blocks until the goroutine returns. Join is idempotent and safe
// for concurrent callers; joining an inert handle returns immediately.
func (h *Handle) Join() {
	if h.done == nil {
		return
	}
	<-h.done
}

// StopJoin requests a stop, then joins.
func (h *Handle) StopJoin() {
	h.RequestStop()
	h.Join()
}
