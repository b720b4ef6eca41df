// Package sequential provides sequential implementations of the
// functions provided by the parallel package. This is useful for
// testing, and for measuring the sequential baseline that a parallel
// run is compared against.
package sequential

import (
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/parpatterns"
	"github.com/exascience/parpatterns/internal"
)

// Do receives zero or more thunks and executes them sequentially,
// returning the left-most error value that is different from nil.
// All thunks are executed, even after an error.
func Do(thunks ...func() error) (err error) {
	for _, thunk := range thunks {
		nerr := thunk()
		if err == nil {
			err = nerr
		}
	}
	return
}

// Map applies f to each item in order. The worker count is validated
// like in parallel.Map, but otherwise ignored.
//
// Map stops at the first error and returns it together with a nil
// slice.
func Map[T, R any](workers int, items []T, f func(T) (R, error)) ([]R, error) {
	parpatterns.ComputeEffectiveWorkers(len(items), workers)
	out := make([]R, len(items))
	for i, item := range items {
		r, err := f(item)
		if err != nil {
			return nil, err
		}
		out[i] = r
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

// StridedReduce invokes the partial reducer for each rank from 0 to
// workers sequentially, and sums the results.
//
// StridedReduce panics if n < 0, or if workers <= 0.
func StridedReduce(
	n, workers int,
	partial func(rank, workers, n int) (float64, error),
) (float64, error) {
	internal.CheckStrides(n, workers)
	partials := make([]float64, workers)
	for rank := range partials {
		p, err := partial(rank, workers, n)
		if err != nil {
			return 0, err
		}
		partials[rank] = p
	}
	return floats.Sum(partials), nil
}
