package future

import "sync"

// All returns a future delivered with every input's value, in input
// order, once the last input is delivered. All of no futures is
// delivered immediately with an empty result. Inputs must be valid
// handles.
func All[T any](futures ...*Future[T]) *Future[[]T] {
	p := NewPromise[[]T]()
	if len(futures) == 0 {
		p.Set(nil)
		return p.Future()
	}

	var (
		mu      sync.Mutex
		pending = len(futures)
		values  = make([]T, len(futures))
	)
	for i, f := range futures {
		f.Then(func(v T) {
			mu.Lock()
			values[i] = v
			pending--
			last := pending == 0
			mu.Unlock()
			if last {
				p.Set(values)
			}
		})
	}
	return p.Future()
}

// Race returns a future delivered with the value of whichever input is
// delivered first. Later deliveries are observed but discarded. Race
// of no futures is never delivered.
func Race[T any](futures ...*Future[T]) *Future[T] {
	p := NewPromise[T]()
	for _, f := range futures {
		f.Then(func(v T) {
			p.trySet(v)
		})
	}
	return p.Future()
}

// Transform returns a future delivered with fn applied to f's value.
// fn runs on the goroutine delivering f, or inline when f is already
// delivered.
func Transform[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	p := NewPromise[U]()
	f.Then(func(v T) {
		p.Set(fn(v))
	})
	return p.Future()
}
