package main

import (
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/halvorboe/concurrentstack/internal/concurrency"
)

var (
	workers  = flag.Int("workers", 4, "Number of concurrent workers")
	duration = flag.Duration("duration", 10*time.Second, "Duration of the benchmark")
	capacity = flag.Int("capacity", 100000, "Stack capacity")
	mode     = flag.String("mode", "mixed", "Benchmark mode: 'mixed' (push+pop pairs) or 'burst' (fill then drain)")
)

func main() {
	flag.Parse()

	if *workers < 1 {
		log.Fatal("workers must be positive")
	}
	minCapacity := *workers
	if *mode == "burst" {
		minCapacity = *workers * burstBatch
	}
	if *capacity < minCapacity {
		log.Fatalf("capacity must be at least %d for this mode and worker count", minCapacity)
	}

	fmt.Printf("Starting stack benchmark:\n")
	fmt.Printf("  Mode:     %s\n", *mode)
	fmt.Printf("  Workers:  %d\n", *workers)
	fmt.Printf("  Duration: %s\n", *duration)
	fmt.Printf("  Capacity: %d\n", *capacity)

	stack := concurrency.NewBoundedStack[int](*capacity)

	var pushes, pops, empties atomic.Int64
	stop := make(chan struct{})

	start := time.Now()
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			switch *mode {
			case "burst":
				runBurst(stack, id, stop, &pushes, &pops, &empties)
			default:
				runMixed(stack, id, stop, &pushes, &pops, &empties)
			}
		}(i)
	}

	time.Sleep(*duration)
	close(stop)
	wg.Wait()

	// Drain whatever the last round left behind so the totals balance.
	for {
		if _, ok := stack.Pop(); !ok {
			break
		}
		pops.Add(1)
	}

	elapsed := time.Since(start)
	total := pushes.Load() + pops.Load()

	fmt.Printf("\nResults:\n")
	fmt.Printf("  Pushes:     %d\n", pushes.Load())
	fmt.Printf("  Pops:       %d\n", pops.Load())
	fmt.Printf("  Empty pops: %d\n", empties.Load())
	fmt.Printf("  Elapsed:    %s\n", elapsed)
	fmt.Printf("  Throughput: %.0f ops/sec\n", float64(total)/elapsed.Seconds())

	if pushes.Load() != pops.Load() {
		log.Fatalf("conservation violated: %d pushes vs %d pops", pushes.Load(), pops.Load())
	}
	fmt.Println("  Conservation: OK")
}

// runMixed alternates single push/pop pairs forever, keeping at most one
// in-flight value per worker, so capacity is never exceeded as long as
// capacity >= workers.
func runMixed(stack *concurrency.BoundedStack[int], id int, stop <-chan struct{}, pushes, pops, empties *atomic.Int64) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		stack.Push(id)
		pushes.Add(1)

		if _, ok := stack.Pop(); ok {
			pops.Add(1)
		} else {
			empties.Add(1)
		}
	}
}

// runBurst pushes a batch and then drains the same number of values,
// exercising deeper stacks and heavier pop contention.
const burstBatch = 64

func runBurst(stack *concurrency.BoundedStack[int], id int, stop <-chan struct{}, pushes, pops, empties *atomic.Int64) {
	const batch = burstBatch

	for {
		select {
		case <-stop:
			return
		default:
		}

		for i := 0; i < batch; i++ {
			stack.Push(id*batch + i)
			pushes.Add(1)
		}
		for i := 0; i < batch; i++ {
			if _, ok := stack.Pop(); ok {
				pops.Add(1)
			} else {
				empties.Add(1)
			}
		}
	}
}
