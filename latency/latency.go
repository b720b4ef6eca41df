// Package latency compares running latency-bound tasks one after the
// other with running them in one goroutine each.
//
// A task spends nearly all of its time blocked, either on a timer (Sleeper)
// or on the network (Fetcher), so the concurrent run takes roughly as long
// as the slowest single task instead of the sum of all of them.
package latency

import (
	"time"

	"github.com/exascience/parpatterns/internal/report"
	"github.com/exascience/parpatterns/parallel"
	"github.com/exascience/parpatterns/sequential"
)

// A Task performs one latency-bound unit of work, identified by its task
// number.
type Task func(taskNumber int) error

// Sleeper returns a task that simulates an I/O operation lasting d and
// then reports that it is done.
func Sleeper(d time.Duration, r *report.Reporter) Task {
	return func(taskNumber int) error {
		time.Sleep(d)
		r.Line("Task %d done.", taskNumber)
		return nil
	}
}

// RunSequential runs task for the task numbers 0 to k-1, one after the
// other, and returns the elapsed wall-clock time. It stops at the first
// error.
func RunSequential(k int, task Task) (time.Duration, error) {
	start := time.Now()
	_, err := sequential.Map(1, taskNumbers(k), func(n int) (struct{}, error) {
		return struct{}{}, task(n)
	})
	return time.Since(start), err
}

func taskNumbers(k int) []int {
	numbers := make([]int, max(k, 0))
	for i := range numbers {
		numbers[i] = i
	}
	return numbers
}

// RunConcurrent starts one goroutine per task number from 0 to k-1, joins
// each of them, and returns the elapsed wall-clock time together with the
// left-most task error. A failing task does not stop the others.
func RunConcurrent(k int, task Task) (time.Duration, error) {
	start := time.Now()
	numbers := taskNumbers(k)
	handles := make([]*parallel.Handle, 0, len(numbers))
	for _, n := range numbers {
		handles = append(handles, parallel.Go(func() error {
			return task(n)
		}))
	}
	err := parallel.JoinAll(handles)
	return time.Since(start), err
}
