package guard

import "sync"

// Guarded pairs a value with its own mutex and exposes scoped accessors.
// The zero value is usable and guards the zero value of T.
type Guarded[T any] struct {
	mu    sync.Mutex
	value T
}

// New creates a Guarded wrapping the given initial value.
func New[T any](value T) *Guarded[T] {
	return &Guarded[T]{value: value}
}

// Lock acquires the mutex and returns a pointer to the guarded value plus
// a release function. The pointer must not be retained after release.
//
//	v, release := g.Lock()
//	defer release()
//	*v = update(*v)
func (g *Guarded[T]) Lock() (*T, func()) {
	g.mu.Lock()
	return &g.value, g.mu.Unlock
}

// With runs fn with exclusive access to the guarded value.
func (g *Guarded[T]) With(fn func(*T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.value)
}

// Get returns a copy of the guarded value.
func (g *Guarded[T]) Get() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Set replaces the guarded value.
func (g *Guarded[T]) Set(value T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = value
}

// Swap replaces the guarded value and returns the previous one.
func (g *Guarded[T]) Swap(value T) T {
	g.mu.Lock()
	defer g.mu.Unlock()
	old := g.value
	g.value = value
	return old
}
