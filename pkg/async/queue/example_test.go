package queue_test

import (
	"fmt"
	"sync"

	"github.com/vnykmshr/gopromise/pkg/async/queue"
)

// Example demonstrates basic producer/consumer usage
func Example() {
	q := queue.New[string](1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2; i++ {
			item, ok := q.Pop()
			if !ok {
				return // deactivated
			}
			fmt.Println("processed", item)
		}
	}()

	q.Push("job-1")
	q.Push("job-2")
	wg.Wait()

	// Output:
	// processed job-1
	// processed job-2
}

// Example_priority demonstrates preferring one sub-queue over another
func Example_priority() {
	q := queue.New[string](2)

	const urgent, background = 0, 1

	q.PushTo(background, "reindex catalog")
	q.PushTo(urgent, "user checkout")

	// Listing urgent first makes PopAny serve it first
	for i := 0; i < 2; i++ {
		task, ok := q.PopAny(urgent, background)
		if ok {
			fmt.Println(task)
		}
	}

	// Output:
	// user checkout
	// reindex catalog
}

// Example_shutdownResidue demonstrates recovering unprocessed items
func Example_shutdownResidue() {
	q := queue.New[int](1)

	q.PushAll(0, 1, 2, 3)
	q.Pop()

	// Drain shuts the queue down and hands back what was never consumed
	residue := q.Drain()
	fmt.Println("unprocessed:", residue)

	// Later pushes are dropped
	q.Push(4)
	fmt.Println("dropped:", q.Stats().Dropped)

	// Output:
	// unprocessed: [2 3]
	// dropped: 1
}
