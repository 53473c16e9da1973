package cone

import (
	"runtime"
	"sync"
)

// parallelFor runs fn(i) for every i in [0, n) using a fixed pool of
// runtime.NumCPU() workers pulling indices off a channel, the same
// task/worker/WaitGroup shape the PCG family
// (leandro-ro-Threshold-BBS-Plus-PCG/pcg-utils.go's outerProductPoly)
// uses for its parallel regions. It backs sign classification and
// facet pairing in insertGenerator and simplex evaluation in
// evaluateTriangulation; triangulation extension and pyramid draining
// run sequentially.
//
// fn receives the worker's stripe index (0..workers-1) so callers
// that need a per-worker accumulator (e.g. FacetPool.NextIdent, or a
// thread-local candidate sub-list per spec.md 5 "Shared resources")
// can index into one without a shared mutable slot.
func parallelFor(n int, fn func(i, stripe int)) {
	if n <= 0 {
		return
	}
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	tasks := make(chan int, workers)
	var wg sync.WaitGroup

	worker := func(stripe int) {
		defer wg.Done()
		for i := range tasks {
			fn(i, stripe)
		}
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(w)
	}

	go func() {
		for i := 0; i < n; i++ {
			tasks <- i
		}
		close(tasks)
	}()

	wg.Wait()
}

// numWorkers reports the worker-pool width used to stripe per-thread
// resources such as FacetPool.identCounters.
func numWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
