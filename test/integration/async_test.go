// Package integration contains integration tests that verify cross-package functionality.
// These tests ensure that different components work together correctly in realistic scenarios.
package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/gopromise/internal/testutil"
	"github.com/vnykmshr/gopromise/pkg/async/future"
	"github.com/vnykmshr/gopromise/pkg/async/invoker"
	"github.com/vnykmshr/gopromise/pkg/async/queue"
	"github.com/vnykmshr/gopromise/pkg/async/scheduler"
	"github.com/vnykmshr/gopromise/pkg/async/spawn"
	gperrors "github.com/vnykmshr/gopromise/pkg/common/errors"
)

// TestScheduledProducerFeedsQueue verifies that scheduler firings can feed
// a blocking queue consumed by a spawned goroutine, and that draining the
// queue releases the consumer cleanly.
func TestScheduledProducerFeedsQueue(t *testing.T) {
	q := queue.New[time.Time](1)

	sched := scheduler.NewWithConfig(scheduler.Config{
		TickInterval: 10 * time.Millisecond,
	})
	if err := sched.Start(); err != nil {
		t.Fatalf("failed to start scheduler: %v", err)
	}
	defer func() { <-sched.Stop() }()

	err := sched.ScheduleRepeating("producer", func(_ context.Context) {
		q.Push(time.Now())
	}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("failed to schedule producer: %v", err)
	}

	var consumed int32
	consumer := spawn.Go(func() {
		for {
			if _, ok := q.Pop(); !ok {
				return
			}
			atomic.AddInt32(&consumed, 1)
		}
	})

	// Let the producer and consumer run for a few firings.
	testutil.Eventually(t, func() bool {
		return atomic.LoadInt32(&consumed) >= 5
	}, 5*time.Second, 10*time.Millisecond)

	if !sched.Cancel("producer") {
		t.Error("expected to cancel the producer entry")
	}

	residue := q.Drain()
	consumer.Join()

	total := int(atomic.LoadInt32(&consumed)) + len(residue)
	if total < 5 {
		t.Errorf("total produced = %d, want at least 5", total)
	}

	t.Logf("Consumed %d items, drained %d unprocessed", atomic.LoadInt32(&consumed), len(residue))
}

// TestInvokerFanOutGather verifies that work fanned out to a bounded pool
// is gathered correctly by a combinator and actually bounded by the pool.
func TestInvokerFanOutGather(t *testing.T) {
	inv := invoker.New(4, 16)
	defer inv.Close()

	const tasks = 8
	const workDuration = 50 * time.Millisecond

	start := time.Now()

	futures := make([]*future.Future[int], tasks)
	for i := 0; i < tasks; i++ {
		id := i
		f, err := invoker.Call(inv, func(_ context.Context) int {
			time.Sleep(workDuration)
			return id + 1
		})
		if err != nil {
			t.Fatalf("failed to submit task %d: %v", id, err)
		}
		futures[i] = f
	}

	results := future.All(futures...).Get()
	elapsed := time.Since(start)

	sum := 0
	for _, r := range results {
		sum += r
	}
	if sum != 36 {
		t.Errorf("sum of results = %d, want 36", sum)
	}

	// 8 tasks of 50ms on 4 workers run in two waves:
	// - anything under ~100ms means the pool ran more than 4 at once
	// - generous upper bound for slow CI machines
	minExpected := 90 * time.Millisecond
	maxExpected := 2 * time.Second

	if elapsed < minExpected {
		t.Errorf("fan-out too fast: %v, pool may not be bounding concurrency", elapsed)
	}
	if elapsed > maxExpected {
		t.Errorf("fan-out too slow: %v, something may be wrong", elapsed)
	}

	t.Logf("Executed %d tasks in %v on %d workers", tasks, elapsed, inv.Workers())
}

// TestGracefulDrainUnderLoad verifies that closing the invoker while
// producers are still submitting delivers every accepted future and
// refuses the rest cleanly.
func TestGracefulDrainUnderLoad(t *testing.T) {
	inv := invoker.New(2, 32)

	const producers = 4
	const perProducer = 50

	var accepted, shed, refused int64
	futuresCh := make(chan *future.Future[int], producers*perProducer)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				f, err := invoker.TryCall(inv, func(_ context.Context) int {
					time.Sleep(time.Millisecond)
					return 1
				})
				switch {
				case err == nil:
					atomic.AddInt64(&accepted, 1)
					futuresCh <- f
				case errors.Is(err, gperrors.ErrQueueFull):
					atomic.AddInt64(&shed, 1)
				case errors.Is(err, gperrors.ErrClosed):
					atomic.AddInt64(&refused, 1)
				default:
					t.Errorf("unexpected submit error: %v", err)
				}
			}
		}()
	}

	// Close mid-stream so some submissions race the shutdown.
	time.Sleep(20 * time.Millisecond)
	inv.Close()
	wg.Wait()
	close(futuresCh)

	total := atomic.LoadInt64(&accepted) + atomic.LoadInt64(&shed) + atomic.LoadInt64(&refused)
	if total != producers*perProducer {
		t.Errorf("accounted submissions = %d, want %d", total, producers*perProducer)
	}
	if atomic.LoadInt64(&accepted) == 0 {
		t.Error("expected at least one accepted submission before close")
	}

	// Close drains the queue, so every accepted future must be delivered.
	for f := range futuresCh {
		if !f.Ready() {
			t.Error("accepted future left undelivered after Close")
		}
	}
	if inv.Completed() != atomic.LoadInt64(&accepted) {
		t.Errorf("completed = %d, want %d", inv.Completed(), atomic.LoadInt64(&accepted))
	}

	t.Logf("Drain under load: %d accepted, %d shed, %d refused after close",
		atomic.LoadInt64(&accepted), atomic.LoadInt64(&shed), atomic.LoadInt64(&refused))
}

// TestQueueBackedWorkersDeliverPromises verifies a worker crew popping jobs
// off a shared queue and delivering results through promises, with a
// cooperative stop once the backlog is gone.
func TestQueueBackedWorkersDeliverPromises(t *testing.T) {
	type job struct {
		value   int
		promise *future.Promise[int]
	}

	q := queue.New[job](1)

	workers := make([]*spawn.Handle, 3)
	for i := range workers {
		workers[i] = spawn.GoWithStop(func(stop *spawn.Stop) {
			for {
				if j, ok := q.TryPop(0); ok {
					j.promise.Set(j.value * j.value)
					continue
				}
				if stop.Requested() {
					return
				}
				time.Sleep(time.Millisecond)
			}
		})
	}

	const numJobs = 20
	futures := make([]*future.Future[int], numJobs)
	for i := 0; i < numJobs; i++ {
		p := future.NewPromise[int]()
		futures[i] = p.Future()
		q.Push(job{value: i, promise: p})
	}

	results := future.All(futures...).Get()
	for i, r := range results {
		if r != i*i {
			t.Errorf("result[%d] = %d, want %d", i, r, i*i)
		}
	}

	for _, w := range workers {
		w.StopJoin()
	}
	if !q.Empty() {
		t.Errorf("queue depth = %d after all promises delivered, want 0", q.Len())
	}

	t.Logf("%d workers delivered %d promised results", len(workers), numJobs)
}
