// Package parpatterns provides small building blocks for fan-out/fan-in
// parallelism, together with a set of standalone programs that apply them to
// toy problems. The goal is to show how an otherwise sequential loop turns
// into a bounded pool of workers, and what that does and does not buy.
//
// Parpatterns provides the following subpackages:
//
// parpatterns/parallel provides functions for mapping a function over a slice
// with a bounded worker pool, for strided reductions over an index range, for
// running independent thunks in parallel, and for starting one goroutine per
// task with explicit join handles.
//
// parpatterns/sequential provides sequential implementations of all functions
// from parpatterns/parallel, for testing and for sequential baselines.
//
// parpatterns/temperature, parpatterns/stats, parpatterns/pi, and
// parpatterns/latency contain the worker functions, work generators, and
// drivers used by the programs under cmd/.
//
// Work is CPU-bound in the temperature, stats, and pi programs, where the
// worker count matters; in the latency program the tasks block on a timer or
// on the network, so one goroutine per task lets the total wall-clock time
// collapse to roughly the latency of a single task.
package parpatterns
