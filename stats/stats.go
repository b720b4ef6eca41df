// Package stats contains the small list computations used by the
// independent-tasks and pairwise-product programs.
package stats

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/exascience/parpatterns"
	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/parallel"
)

// ErrEmpty is returned by the list computations for an empty list.
var ErrEmpty = errors.New("stats: empty input")

// Mean returns the arithmetic mean of x.
func Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	return stat.Mean(x, nil), nil
}

// Product returns the product of all elements of x.
func Product(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	return floats.Prod(x), nil
}

// Pick returns a uniformly chosen element of x.
func Pick(x []float64, rng *rand.Rand) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	return x[rng.IntN(len(x))], nil
}

// Tasks returns three independent tasks over x that report the mean, the
// product, and a randomly picked element, in that order. Each task reports
// its own line. Only the third task uses rng.
func Tasks(x []float64, rng *rand.Rand, r *report.Reporter) []func() error {
	return []func() error{
		func() error {
			mean, err := Mean(x)
			if err != nil {
				return err
			}
			r.Line("The mean of x is %s", decimal(mean))
			return nil
		},
		func() error {
			product, err := Product(x)
			if err != nil {
				return err
			}
			r.Line("The product of x is %g", product)
			return nil
		},
		func() error {
			pick, err := Pick(x, rng)
			if err != nil {
				return err
			}
			r.Line("We selected %g from x.", pick)
			return nil
		},
	}
}

// decimal formats v in the shortest form that round-trips, keeping a
// fractional part so that a mean of 5 reads as 5.0.
func decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// RunAll runs tasks in parallel and invokes done once every task has
// terminated, whether or not some of them failed. It returns the
// left-most task error.
func RunAll(tasks []func() error, done func()) error {
	err := parallel.Do(tasks...)
	done()
	return err
}

// RunTasks runs the Tasks over x and reports "Done." after all of them
// have terminated.
func RunTasks(x []float64, rng *rand.Rand, r *report.Reporter) error {
	return RunAll(Tasks(x, rng, r), func() { r.Line("Done.") })
}

// Multiply returns a * b.
func Multiply(a, b int) (int, error) {
	return a * b, nil
}

// Products multiplies the elements of each pair in parallel.
func Products(workers int, pairs []parpatterns.Pair[int, int]) ([]int, error) {
	return parallel.StarMap(workers, pairs, Multiply)
}

// RunProducts computes the Products of pairs and reports one line per pair.
func RunProducts(workers int, pairs []parpatterns.Pair[int, int], r *report.Reporter) error {
	products, err := Products(workers, pairs)
	if err != nil {
		return err
	}
	for i, pair := range pairs {
		r.Line("%d * %d = %d.", pair.First, pair.Second, products[i])
	}
	return nil
}
