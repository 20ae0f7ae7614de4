package queue

import (
	"sync"

	"github.com/vnykmshr/gopromise/pkg/metrics"
)

// Queue is a thread-safe FIFO with a blocking pop and one or more
// sub-queues. Producers push to a sub-queue and wake waiters; consumers
// block until an item arrives in a sub-queue they care about or the
// queue is deactivated. Deactivation is the shutdown signal: blocked
// consumers drain out with ok == false, and later pushes are dropped.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queues [][]T
	active bool

	pushed  int64
	popped  int64
	dropped int64

	// Metrics state, managed by metrics.go.
	metricsMu      sync.RWMutex
	metricsEnabled bool
	registry       *metrics.Registry
	metricsName    string
}

// Stats holds queue counters.
type Stats struct {
	// Pushed is the total number of accepted items.
	Pushed int64

	// Popped is the total number of consumed items.
	Popped int64

	// Dropped is the total number of items rejected while inactive.
	Dropped int64

	// Depth is the current number of queued items across all sub-queues.
	Depth int
}

// New creates an active queue with qcount sub-queues. Counts below one
// are raised to one.
func New[T any](qcount int) *Queue[T] {
	if qcount < 1 {
		qcount = 1
	}

	q := &Queue[T]{
		queues: make([][]T, qcount),
		active: true,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// AddQueue appends a fresh sub-queue and returns its id.
func (q *Queue[T]) AddQueue() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.queues = append(q.queues, nil)
	return len(q.queues) - 1
}

// Push appends v to sub-queue 0 and wakes waiters.
func (q *Queue[T]) Push(v T) {
	q.PushTo(0, v)
}

// PushTo appends v to the given sub-queue and wakes waiters. Pushes to
// an inactive queue are dropped.
func (q *Queue[T]) PushTo(qid int, v T) {
	q.mu.Lock()
	q.checkID(qid)
	if q.active {
		q.queues[qid] = append(q.queues[qid], v)
		q.pushed++
	} else {
		q.dropped++
	}
	depth := q.depthLocked()
	accepted := q.active
	q.mu.Unlock()

	q.observePush(accepted, 1, depth)
	q.cond.Broadcast()
}

// PushAll appends vs to the given sub-queue in order and wakes waiters
// once. Pushes to an inactive queue are dropped.
func (q *Queue[T]) PushAll(qid int, vs ...T) {
	q.mu.Lock()
	q.checkID(qid)
	if q.active {
		q.queues[qid] = append(q.queues[qid], vs...)
		q.pushed += int64(len(vs))
	} else {
		q.dropped += int64(len(vs))
	}
	depth := q.depthLocked()
	accepted := q.active
	q.mu.Unlock()

	q.observePush(accepted, len(vs), depth)
	q.cond.Broadcast()
}

// Pop removes the front item of sub-queue 0, blocking until one arrives
// or the queue is deactivated. Deactivation returns ok == false even if
// items remain.
func (q *Queue[T]) Pop() (T, bool) {
	return q.PopAny(0)
}

// PopFrom removes the front item of the given sub-queue, blocking like
// Pop.
func (q *Queue[T]) PopFrom(qid int) (T, bool) {
	return q.PopAny(qid)
}

// PopAny removes the front item of the first non-empty sub-queue among
// qids, blocking until one of them has an item or the queue is
// deactivated. No ids means sub-queue 0.
func (q *Queue[T]) PopAny(qids ...int) (T, bool) {
	var zero T
	if len(qids) == 0 {
		qids = []int{0}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, qid := range qids {
		q.checkID(qid)
	}

	for {
		if !q.active {
			return zero, false
		}
		for _, qid := range qids {
			if len(q.queues[qid]) > 0 {
				return q.popFrontLocked(qid), true
			}
		}
		q.cond.Wait()
	}
}

// TryPop removes the front item of the given sub-queue without
// blocking. An empty sub-queue or an inactive queue returns ok == false.
func (q *Queue[T]) TryPop(qid int) (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	q.checkID(qid)
	if !q.active || len(q.queues[qid]) == 0 {
		return zero, false
	}
	return q.popFrontLocked(qid), true
}

// Clear flushes every sub-queue, sets the active state, wakes waiters,
// and returns the residue in sub-queue order, each sub-queue FIFO.
func (q *Queue[T]) Clear(active bool) []T {
	q.mu.Lock()

	var residue []T
	for i, items := range q.queues {
		residue = append(residue, items...)
		q.queues[i] = nil
	}
	q.active = active
	q.mu.Unlock()

	q.observeDepth(0)
	q.cond.Broadcast()
	return residue
}

// Drain deactivates the queue and returns the residue. Blocked
// consumers wake with ok == false and later pushes are dropped.
func (q *Queue[T]) Drain() []T {
	return q.Clear(false)
}

// Empty reports whether every sub-queue is empty.
func (q *Queue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depthLocked() == 0
}

// Len returns the number of queued items across all sub-queues.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depthLocked()
}

// QueueCount returns the number of sub-queues.
func (q *Queue[T]) QueueCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queues)
}

// Active reports whether the queue accepts pushes and blocking pops.
func (q *Queue[T]) Active() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// SetActive sets the active state and wakes waiters. Deactivating
// releases every blocked consumer with ok == false.
func (q *Queue[T]) SetActive(active bool) {
	q.mu.Lock()
	q.active = active
	q.mu.Unlock()

	q.cond.Broadcast()
}

// Stats returns current queue counters.
func (q *Queue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	return Stats{
		Pushed:  q.pushed,
		Popped:  q.popped,
		Dropped: q.dropped,
		Depth:   q.depthLocked(),
	}
}

// popFrontLocked removes and returns the front item of qid. The caller
// holds the lock and guarantees the sub-queue is non-empty.
func (q *Queue[T]) popFrontLocked(qid int) T {
	items := q.queues[qid]
	v := items[0]
	var zero T
	items[0] = zero // release the reference
	q.queues[qid] = items[1:]
	q.popped++

	q.observePop(q.depthLocked())
	return v
}

// depthLocked counts queued items. The caller holds the lock.
func (q *Queue[T]) depthLocked() int {
	total := 0
	for _, items := range q.queues {
		total += len(items)
	}
	return total
}

// checkID panics on an out-of-range sub-queue id. The caller holds the
// lock.
func (q *Queue[T]) checkID(qid int) {
	if qid < 0 || qid >= len(q.queues) {
		panic("queue id out of range")
	}
}
