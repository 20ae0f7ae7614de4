package future

// Void is the payload of a signal-only future: delivery carries no
// value, only the fact of completion.
type Void struct{}

// SignalPromise delivers a valueless completion signal.
type SignalPromise = Promise[Void]

// SignalFuture observes a valueless completion signal.
type SignalFuture = Future[Void]

// NewSignal creates a promise for signal-only delivery. Signal it with
// Set(Void{}).
func NewSignal() *SignalPromise {
	return NewPromise[Void]()
}
