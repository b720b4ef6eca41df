// Package parallel provides functions for expressing fan-out/fan-in
// parallelism.
//
// Map, StarMap, and StarMap3 apply a function to each item of a slice with a
// bounded pool of worker goroutines. StridedReduce splits an index range into
// interleaved strides and sums the partial results. Do runs a fixed set of
// thunks in parallel, and Go starts a single task and returns a handle to join
// it later.
package parallel

import (
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/exascience/parpatterns"
	"github.com/exascience/parpatterns/internal"
)

// Do receives zero or more thunks and executes them in parallel.
//
// Each thunk is invoked in its own goroutine, and Do returns only
// when all thunks have terminated, returning the left-most error
// value that is different from nil. A thunk that returns an error
// does not stop the other thunks.
//
// If one or more thunks panic, the corresponding goroutines recover
// the panics, and Do eventually panics with the left-most recovered
// panic value.
func Do(thunks ...func() error) error {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	}
	errs := make([]error, len(thunks))
	panics := make([]interface{}, len(thunks))
	var wg sync.WaitGroup
	wg.Add(len(thunks))
	for i, thunk := range thunks {
		go func() {
			defer func() {
				panics[i] = internal.WrapPanic(recover())
				wg.Done()
			}()
			errs[i] = thunk()
		}()
	}
	wg.Wait()
	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type indexed[R any] struct {
	index int
	value R
	err   error
	p     interface{}
}

// Map receives a worker count, a slice of work items, and a function
// f, and applies f to each item using a pool of worker goroutines,
// returning the results in the same order as the items.
//
// The pool consists of parpatterns.ComputeEffectiveWorkers(len(items),
// workers) goroutines. If workers is 0, a default is used that takes
// runtime.GOMAXPROCS(0) into account. Item indices are handed to the
// workers over a channel, and each worker hands its results back over
// a second channel, so result i always belongs to item i regardless of
// the order in which the workers finish.
//
// Map returns only when all workers have terminated. If any
// invocation of f returns an error, no further items are dispatched,
// and Map returns the error of the left-most failed item it has
// observed, together with a nil slice.
//
// Map panics if workers < 0.
//
// If one or more invocations of f panic, the corresponding workers
// recover the panics, and Map eventually panics with one of the
// recovered panic values after all workers have terminated.
func Map[T, R any](workers int, items []T, f func(T) (R, error)) ([]R, error) {
	workers = parpatterns.ComputeEffectiveWorkers(len(items), workers)
	if len(items) == 0 {
		return []R{}, nil
	}

	apply := func(i int) (r indexed[R]) {
		r.index = i
		defer func() {
			r.p = internal.WrapPanic(recover())
		}()
		r.value, r.err = f(items[i])
		return
	}

	jobs := make(chan int)
	results := make(chan indexed[R], workers)
	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results <- apply(i)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i := range items {
			select {
			case jobs <- i:
			case <-done:
				return
			}
		}
	}()

	out := make([]R, len(items))
	var p interface{}
	var err error
	errIndex := len(items)
	for r := range results {
		switch {
		case r.p != nil:
			if p == nil {
				p = r.p
			}
			stop()
		case r.err != nil:
			if r.index < errIndex {
				errIndex, err = r.index, r.err
			}
			stop()
		default:
			out[r.index] = r.value
		}
	}
	if p != nil {
		panic(p)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StarMap is like Map, except that each work item is a pair whose
// elements are passed to f as two separate arguments.
func StarMap[A, B, R any](
	workers int,
	items []parpatterns.Pair[A, B],
	f func(A, B) (R, error),
) ([]R, error) {
	return Map(workers, items, func(item parpatterns.Pair[A, B]) (R, error) {
		return f(item.First, item.Second)
	})
}

// StarMap3 is like Map, except that each work item is a triple whose
// elements are passed to f as three separate arguments.
func StarMap3[A, B, C, R any](
	workers int,
	items []parpatterns.Triple[A, B, C],
	f func(A, B, C) (R, error),
) ([]R, error) {
	return Map(workers, items, func(item parpatterns.Triple[A, B, C]) (R, error) {
		return f(item.First, item.Second, item.Third)
	})
}

// StridedReduce receives the size n of the index range from 0 to n, a
// worker count, and a partial reducer, and invokes the partial reducer
// once per rank in parallel. The results are combined by summation.
//
// The partial reducer for rank r is expected to cover the indices r,
// r+workers, r+2*workers, and so on below n, so that all ranks
// together cover the whole range exactly once. It receives its rank,
// the worker count, and n, and any scaling (for example, dividing by
// n) is up to the partial reducer.
//
// The ranks are dispatched to a pool of exactly workers goroutines,
// even if workers exceeds n. A rank at or above n still runs and is
// expected to contribute nothing. StridedReduce returns only when all
// partial reducers have terminated. It returns the error of the
// left-most failed rank, if any.
//
// StridedReduce panics if n < 0, or if workers <= 0.
func StridedReduce(
	n, workers int,
	partial func(rank, workers, n int) (float64, error),
) (float64, error) {
	internal.CheckStrides(n, workers)
	ranks := make([]parpatterns.Triple[int, int, int], workers)
	for rank := range ranks {
		ranks[rank] = parpatterns.MakeTriple(rank, workers, n)
	}
	partials, err := StarMap3(workers, ranks, partial)
	if err != nil {
		return 0, err
	}
	return floats.Sum(partials), nil
}
