package future

// Promise is the write side of a future: it delivers one value to
// every future obtained from it. Use NewPromise; the zero value is not
// usable.
type Promise[T any] struct {
	b *block[T]
}

// NewPromise creates a promise with fresh, undelivered state.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{b: newBlock[T]()}
}

func (p *Promise[T]) block() *block[T] {
	if p.b == nil {
		panic("promise is not initialized")
	}
	return p.b
}

// Future returns a new future bound to this promise. It may be called
// any number of times; every returned future observes the same single
// delivery.
func (p *Promise[T]) Future() *Future[T] {
	return &Future[T]{b: p.block()}
}

// Set delivers v, waking all blocked waiters and running registered
// continuations in registration order on the calling goroutine. A
// promise delivers exactly once; calling Set again panics.
//
// Dropping an undelivered promise leaves its futures blocked forever;
// nothing resolves them on the producer's behalf.
func (p *Promise[T]) Set(v T) {
	if !p.block().deliver(v) {
		panic("promise already delivered")
	}
}

// trySet delivers v unless a value was already delivered, reporting
// whether this call delivered. Race relies on it.
func (p *Promise[T]) trySet(v T) bool {
	return p.block().deliver(v)
}
