// Package pi estimates π by midpoint-rule quadrature of 4/(1+x²) over
// [0, 1].
//
// The parallel estimator splits the nSteps midpoints into interleaved
// strides, one per worker: worker r evaluates the midpoints r, r+p, r+2p,
// and so on, and the partial sums are added up at the end.
package pi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/exascience/parpatterns/parallel"
	"github.com/exascience/parpatterns/sequential"
)

// ErrInvalidSteps is returned for a non-positive number of steps.
var ErrInvalidSteps = errors.New("pi: number of steps must be positive")

// Partial returns the contribution of the given rank: the sum of
// 4/(1+x²) at the midpoints x = (i+0.5)/nSteps for i = rank, rank+workers,
// ... below nSteps, divided by nSteps.
func Partial(rank, workers, nSteps int) float64 {
	var partial float64
	for i := rank; i < nSteps; i += workers {
		x := (float64(i) + 0.5) / float64(nSteps)
		partial += 4.0 / (1.0 + x*x)
	}
	return partial / float64(nSteps)
}

func partial(rank, workers, nSteps int) (float64, error) {
	return Partial(rank, workers, nSteps), nil
}

// Parallel estimates π with nSteps midpoints spread over workers strides,
// each evaluated by its own goroutine.
func Parallel(nSteps, workers int) (float64, error) {
	if nSteps <= 0 {
		return 0, ErrInvalidSteps
	}
	if workers <= 0 {
		return 0, fmt.Errorf("pi: invalid number of workers: %d", workers)
	}
	return parallel.StridedReduce(nSteps, workers, partial)
}

// Serial estimates π with nSteps midpoints in a single loop.
func Serial(nSteps int) (float64, error) {
	if nSteps <= 0 {
		return 0, ErrInvalidSteps
	}
	return sequential.StridedReduce(nSteps, 1, partial)
}

// ParseSteps parses the number of steps given on the command line.
func ParseSteps(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("pi: invalid number of steps %q: %w", arg, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSteps, n)
	}
	return n, nil
}
