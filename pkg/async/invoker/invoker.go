package invoker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/gopromise/pkg/async/spawn"
	gperrors "github.com/vnykmshr/gopromise/pkg/common/errors"
	"github.com/vnykmshr/gopromise/pkg/common/guard"
	"github.com/vnykmshr/gopromise/pkg/metrics"
)

// Config holds configuration options for creating an invoker.
type Config struct {
	// Workers is the number of worker goroutines. Positive values run a
	// bounded pool. Zero selects spawn mode: every submission runs on
	// its own tracked goroutine, joined on Close.
	Workers int

	// QueueSize is the task buffer of a bounded pool. Zero means no
	// buffer: submissions hand tasks directly to an idle worker. Spawn
	// mode has no queue, so Workers == 0 requires QueueSize == 0.
	QueueSize int

	// PanicHandler is called with the recovered value when a task
	// panics. The task's future is left undelivered; waiters should use
	// GetContext or WaitFor if they cannot trust the task body.
	PanicHandler func(recovered interface{})

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func()

	// OnTaskComplete is called after a task finishes, with its execution
	// duration and the recovered panic value (nil on clean completion).
	OnTaskComplete func(duration time.Duration, recovered interface{})
}

// Invoker runs submitted callables and hands back futures immediately.
// Submission never waits for execution; Close stops intake and blocks
// until every accepted task has finished.
type Invoker struct {
	config Config

	// Bounded mode
	tasks    chan func(context.Context)
	workerWg sync.WaitGroup

	// Spawn mode: one tracked goroutine per submission, pruned on each
	// new submission.
	handles guard.Guarded[[]*spawn.Handle]

	mu     sync.RWMutex
	closed bool

	closeOnce sync.Once
	done      chan struct{}

	inFlight  int32
	submitted int64
	completed int64

	// Metrics state, managed by metrics.go.
	metricsMu      sync.RWMutex
	metricsEnabled bool
	registry       *metrics.Registry
	metricsName    string
}

// New creates an invoker with the given worker count and queue size.
// Workers == 0 selects spawn mode.
func New(workers, queueSize int) *Invoker {
	return NewWithConfig(Config{
		Workers:   workers,
		QueueSize: queueSize,
	})
}

// NewWithConfig creates an invoker with the specified configuration.
func NewWithConfig(config Config) *Invoker {
	if config.Workers < 0 {
		panic("worker count must be non-negative")
	}
	if config.QueueSize < 0 {
		panic("queue size must be non-negative")
	}
	if config.Workers == 0 && config.QueueSize > 0 {
		panic("queue size requires a bounded pool")
	}

	inv := &Invoker{
		config: config,
		done:   make(chan struct{}),
	}

	if config.Workers > 0 {
		inv.tasks = make(chan func(context.Context), config.QueueSize)
		inv.workerWg.Add(config.Workers)
		for i := 0; i < config.Workers; i++ {
			go inv.worker()
		}
	}

	return inv
}

// submit routes one unit of work into the pool or onto a fresh
// goroutine. The blocking flag decides whether a full queue waits or
// fails with ErrQueueFull; ctx bounds the wait.
func (inv *Invoker) submit(ctx context.Context, unit func(context.Context), blocking bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	accepted := time.Now()
	run := func(runCtx context.Context) {
		unit(runCtx)
		inv.observeDelivered(time.Since(accepted))
	}

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	if inv.closed {
		return gperrors.ErrClosed
	}

	if inv.config.Workers == 0 {
		inv.launch(run)
		atomic.AddInt64(&inv.submitted, 1)
		inv.observeSubmitted()
		return nil
	}

	if blocking {
		// Reject a pre-canceled context deterministically instead of
		// letting select pick between two ready cases.
		select {
		case <-ctx.Done():
			return fmt.Errorf("cannot submit: %w", ctx.Err())
		default:
		}

		select {
		case inv.tasks <- run:
		case <-ctx.Done():
			return fmt.Errorf("cannot submit: %w", ctx.Err())
		}
	} else {
		select {
		case inv.tasks <- run:
		default:
			return gperrors.ErrQueueFull
		}
	}

	atomic.AddInt64(&inv.submitted, 1)
	inv.observeSubmitted()
	return nil
}

// launch prunes finished handles, then runs unit on a fresh tracked
// goroutine. Callers hold the read lock, so launch never races Close's
// join pass.
func (inv *Invoker) launch(unit func(context.Context)) {
	inv.handles.With(func(list *[]*spawn.Handle) {
		kept := (*list)[:0]
		for _, h := range *list {
			if h.Active() {
				kept = append(kept, h)
			}
		}
		h := spawn.Go(func() {
			inv.execute(unit)
		})
		*list = append(kept, h)
	})
}

// worker is the main loop of a bounded-pool goroutine. It drains the
// task channel until Close closes it.
func (inv *Invoker) worker() {
	defer inv.workerWg.Done()
	for unit := range inv.tasks {
		inv.execute(unit)
	}
}

// execute runs one unit with panic isolation and accounting.
func (inv *Invoker) execute(unit func(context.Context)) {
	atomic.AddInt32(&inv.inFlight, 1)
	if inv.config.OnTaskStart != nil {
		inv.config.OnTaskStart()
	}
	inv.observeStart()

	start := time.Now()
	recovered := inv.run(unit)
	duration := time.Since(start)

	atomic.AddInt32(&inv.inFlight, -1)
	atomic.AddInt64(&inv.completed, 1)

	if recovered != nil && inv.config.PanicHandler != nil {
		inv.config.PanicHandler(recovered)
	}
	if inv.config.OnTaskComplete != nil {
		inv.config.OnTaskComplete(duration, recovered)
	}
	inv.observeComplete(duration, recovered)
}

// run executes unit with a background context, converting a panic into
// a returned value. In-flight work is never canceled, so tasks see a
// context that is never done.
func (inv *Invoker) run(unit func(context.Context)) (recovered interface{}) {
	defer func() {
		recovered = recover()
	}()
	unit(context.Background())
	return nil
}

// Close stops intake and blocks until the invoker is quiescent: a
// bounded pool finishes every queued task and joins its workers, spawn
// mode joins every tracked goroutine. Close is idempotent, and every
// caller blocks until the drain completes.
func (inv *Invoker) Close() {
	inv.closeOnce.Do(func() {
		inv.mu.Lock()
		inv.closed = true
		inv.mu.Unlock()

		if inv.config.Workers == 0 {
			var outstanding []*spawn.Handle
			inv.handles.With(func(list *[]*spawn.Handle) {
				outstanding = *list
				*list = nil
			})
			for _, h := range outstanding {
				h.Join()
			}
		} else {
			close(inv.tasks)
			inv.workerWg.Wait()
		}

		close(inv.done)
	})
	<-inv.done
}

// Workers returns the configured worker count; zero means spawn mode.
func (inv *Invoker) Workers() int {
	return inv.config.Workers
}

// Len returns the number of queued tasks waiting for a worker.
func (inv *Invoker) Len() int {
	if inv.tasks == nil {
		return 0
	}
	return len(inv.tasks)
}

// InFlight returns the number of tasks currently executing.
func (inv *Invoker) InFlight() int {
	return int(atomic.LoadInt32(&inv.inFlight))
}

// Submitted returns the total number of accepted tasks.
func (inv *Invoker) Submitted() int64 {
	return atomic.LoadInt64(&inv.submitted)
}

// Completed returns the total number of finished tasks, panics included.
func (inv *Invoker) Completed() int64 {
	return atomic.LoadInt64(&inv.completed)
}
