package testutil

import "sync"

// Outcome summarises a RunConcurrent call.
type Outcome struct {
	Successes int
	// Errors holds every non-nil error, in goroutine index order.
	Errors []error
}

// RunConcurrent calls fn(0..n-1) from n goroutines and waits for all of them.
func RunConcurrent(n int, fn func(i int) error) Outcome {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			errs[i] = fn(i)
		})
	}
	wg.Wait()

	var out Outcome
	for _, err := range errs {
		if err != nil {
			out.Errors = append(out.Errors, err)
			continue
		}
		out.Successes++
	}
	return out
}
