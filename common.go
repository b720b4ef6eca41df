package parpatterns

import (
	"fmt"
	"runtime"
)

type (
	// A Pair is a work item for functions that receive two arguments.
	Pair[A, B any] struct {
		First  A
		Second B
	}

	// A Triple is a work item for functions that receive three arguments.
	Triple[A, B, C any] struct {
		First  A
		Second B
		Third  C
	}
)

// MakePair returns a Pair of a and b.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{a, b}
}

// MakeTriple returns a Triple of a, b, and c.
func MakeTriple[A, B, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{a, b, c}
}

/*
ComputeEffectiveWorkers determines the number of goroutines that the
parallel.Map group of functions starts for a given number of work items.

It takes the number of work items, with size >= 0, as well as a
requested worker count.

A requested worker count of 0 uses the number of logical CPUs (as
determined by runtime.GOMAXPROCS(0)). A requested worker count above 0
is used as is. In both cases the result never exceeds size, because a
worker without a work item would only add scheduling overhead, but it
is at least 1 so that an empty input still has a well-defined pool.

ComputeEffectiveWorkers panics if size < 0 or workers < 0.
*/
func ComputeEffectiveWorkers(size, workers int) int {
	if size < 0 {
		panic(fmt.Sprintf("invalid number of work items: %v", size))
	}
	switch {
	case workers == 0:
		workers = runtime.GOMAXPROCS(0)
	case workers < 0:
		panic(fmt.Sprintf("invalid number of workers: %v", workers))
	}
	if workers > size {
		workers = size
	}
	if workers == 0 {
		workers = 1
	}
	return workers
}
