package parallel_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/exascience/parpatterns"
	"github.com/exascience/parpatterns/parallel"
	"github.com/exascience/parpatterns/sequential"
)

func ExampleStarMap() {
	multiply := func(a, b int) (int, error) { return a * b, nil }
	products, err := parallel.StarMap(4, []parpatterns.Pair[int, int]{
		parpatterns.MakePair(1, 3),
		parpatterns.MakePair(5, 9),
	}, multiply)
	if err != nil {
		panic(err)
	}
	fmt.Println(products)

	// Output:
	// [3 45]
}

func ExampleStridedReduce() {
	sumOfSquares := func(rank, workers, n int) (float64, error) {
		var sum float64
		for i := rank; i < n; i += workers {
			sum += float64(i * i)
		}
		return sum, nil
	}
	result, err := parallel.StridedReduce(10, 3, sumOfSquares)
	if err != nil {
		panic(err)
	}
	fmt.Println(result)

	// Output:
	// 285
}

func ExampleDo() {
	var mean, product float64
	x := []float64{1, 3, 5, 7, 9}
	err := parallel.Do(
		func() error {
			var sum float64
			for _, v := range x {
				sum += v
			}
			mean = sum / float64(len(x))
			return nil
		},
		func() error {
			product = 1
			for _, v := range x {
				product *= v
			}
			return nil
		},
	)
	fmt.Println(mean, product, err)

	// Output:
	// 5 945 <nil>
}

func TestMapMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	square := func(x int) (int, error) { return x * x, nil }
	for _, size := range []int{0, 1, 2, 7, 100, 1000} {
		items := make([]int, size)
		for i := range items {
			items[i] = rng.IntN(1000) - 500
		}
		want, _ := sequential.Map(1, items, square)
		for _, workers := range []int{0, 1, 2, 4, 8, size + 1} {
			got, err := parallel.Map(workers, items, square)
			if err != nil {
				t.Fatalf("size=%d workers=%d: unexpected error: %v", size, workers, err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("size=%d workers=%d: got %v, want %v", size, workers, got, want)
			}
		}
	}
}

func TestMapPreservesOrderUnderSkew(t *testing.T) {
	items := []int{50, 40, 30, 20, 10, 0}
	got, err := parallel.Map(len(items), items, func(ms int) (int, error) {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return ms, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("got %v, want %v", got, items)
	}
}

func TestMapBoundsWorkers(t *testing.T) {
	const workers = 3
	var active, peak atomic.Int32
	items := make([]int, 30)
	_, err := parallel.Map(workers, items, func(int) (struct{}, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		active.Add(-1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := peak.Load(); p > workers {
		t.Errorf("observed %d concurrent workers, limit is %d", p, workers)
	}
}

func TestMapError(t *testing.T) {
	errOdd := errors.New("odd")
	var calls atomic.Int32
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	got, err := parallel.Map(2, items, func(x int) (int, error) {
		calls.Add(1)
		if x == 5 {
			return 0, errOdd
		}
		time.Sleep(100 * time.Microsecond)
		return x, nil
	})
	if !errors.Is(err, errOdd) {
		t.Errorf("expected errOdd, got %v", err)
	}
	if got != nil {
		t.Errorf("expected a nil slice on error, got %d results", len(got))
	}
	if n := calls.Load(); n == int32(len(items)) {
		t.Errorf("dispatch did not stop after the error: %d calls", n)
	}
}

func TestMapErrorWaitsForInFlightItems(t *testing.T) {
	errFirst := errors.New("first")
	var finished atomic.Bool
	var running atomic.Int32
	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	_, err := parallel.Map(2, items, func(x int) (int, error) {
		running.Add(1)
		defer running.Add(-1)
		switch x {
		case 0:
			time.Sleep(5 * time.Millisecond)
			return 0, errFirst
		case 1:
			time.Sleep(50 * time.Millisecond)
			finished.Store(true)
		}
		return x, nil
	})
	if !errors.Is(err, errFirst) {
		t.Fatalf("expected errFirst, got %v", err)
	}
	if !finished.Load() {
		t.Error("Map returned before the in-flight item finished")
	}
	if r := running.Load(); r != 0 {
		t.Errorf("%d workers still running after Map returned", r)
	}
}

func TestMapPanic(t *testing.T) {
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected a panic")
		}
		if !strings.Contains(fmt.Sprint(p), "bad item") {
			t.Errorf("unexpected panic value %v", p)
		}
	}()
	_, _ = parallel.Map(4, []int{1, 2, 3, 4}, func(x int) (int, error) {
		if x == 3 {
			panic("bad item")
		}
		return x, nil
	})
}

func TestMapNegativeWorkers(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a negative worker count")
		}
	}()
	_, _ = parallel.Map(-1, []int{1}, func(x int) (int, error) { return x, nil })
}

func TestStarMap(t *testing.T) {
	pairs := []parpatterns.Pair[int, int]{
		{First: 1, Second: 3}, {First: 5, Second: 9}, {First: 2, Second: 3},
		{First: 4, Second: 5}, {First: 10, Second: 30}, {First: 5, Second: 7},
	}
	multiply := func(a, b int) (int, error) { return a * b, nil }
	got, err := parallel.StarMap(4, pairs, multiply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{3, 45, 6, 20, 300, 35}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStarMap3MatchesSequential(t *testing.T) {
	var items []parpatterns.Triple[int, string, float64]
	for i := range 20 {
		items = append(items, parpatterns.MakeTriple(i, strings.Repeat("x", i%4), float64(i)/2))
	}
	f := func(a int, s string, x float64) (string, error) {
		return fmt.Sprintf("%d:%s:%g", a, s, x), nil
	}
	want, _ := sequential.StarMap3(1, items, f)
	got, err := parallel.StarMap3(4, items, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStridedReduceCoversRange(t *testing.T) {
	const n = 1001
	for _, workers := range []int{1, 2, 4, 8, 2000} {
		var visits [n]atomic.Int32
		count := func(rank, workers, n int) (float64, error) {
			var c float64
			for i := rank; i < n; i += workers {
				visits[i].Add(1)
				c++
			}
			return c, nil
		}
		total, err := parallel.StridedReduce(n, workers, count)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if total != n {
			t.Errorf("workers=%d: covered %v indices, want %d", workers, total, n)
		}
		for i := range visits {
			if v := visits[i].Load(); v != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, v)
			}
		}
	}
}

func TestStridedReduceRunsEveryRank(t *testing.T) {
	const n, workers = 3, 8
	var calls atomic.Int32
	var seen [workers]atomic.Bool
	total, err := parallel.StridedReduce(n, workers, func(rank, p, n int) (float64, error) {
		calls.Add(1)
		seen[rank].Store(true)
		if rank >= n {
			return 0, nil
		}
		return 1, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c := calls.Load(); c != workers {
		t.Errorf("partial reducer called %d times, want %d", c, workers)
	}
	for rank := range seen {
		if !seen[rank].Load() {
			t.Errorf("rank %d never ran", rank)
		}
	}
	if total != n {
		t.Errorf("got %v, want %d", total, n)
	}
}

func TestStridedReduceMatchesSequential(t *testing.T) {
	const n = 50000
	harmonic := func(rank, workers, n int) (float64, error) {
		var sum float64
		for i := rank; i < n; i += workers {
			sum += 1 / float64(i+1)
		}
		return sum, nil
	}
	for _, workers := range []int{1, 2, 4, 8} {
		want, _ := sequential.StridedReduce(n, workers, harmonic)
		got, err := parallel.StridedReduce(n, workers, harmonic)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if got != want {
			t.Errorf("workers=%d: got %v, want %v", workers, got, want)
		}
	}
	one, _ := parallel.StridedReduce(n, 1, harmonic)
	eight, _ := parallel.StridedReduce(n, 8, harmonic)
	if math.Abs(one-eight) > 1e-9 {
		t.Errorf("result depends on the worker count: %v vs %v", one, eight)
	}
}

func TestStridedReduceError(t *testing.T) {
	errRank := errors.New("rank failed")
	_, err := parallel.StridedReduce(100, 4, func(rank, _, _ int) (float64, error) {
		if rank == 2 {
			return 0, errRank
		}
		return 1, nil
	})
	if !errors.Is(err, errRank) {
		t.Errorf("expected errRank, got %v", err)
	}
}

func TestStridedReduceInvalid(t *testing.T) {
	for _, tt := range []struct{ n, workers int }{{-1, 4}, {10, 0}, {10, -2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("n=%d workers=%d: expected a panic", tt.n, tt.workers)
				}
			}()
			_, _ = parallel.StridedReduce(tt.n, tt.workers, func(int, int, int) (float64, error) { return 0, nil })
		}()
	}
}

func TestDoWaitsForAll(t *testing.T) {
	var finished atomic.Int32
	thunk := func(d time.Duration) func() error {
		return func() error {
			time.Sleep(d)
			finished.Add(1)
			return nil
		}
	}
	err := parallel.Do(thunk(30*time.Millisecond), thunk(0), thunk(10*time.Millisecond), thunk(20*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := finished.Load(); n != 4 {
		t.Errorf("Do returned after %d of 4 thunks", n)
	}
}

func TestDoLeftMostError(t *testing.T) {
	err1, err2 := errors.New("first"), errors.New("second")
	var ran atomic.Int32
	err := parallel.Do(
		func() error { ran.Add(1); return nil },
		func() error { time.Sleep(10 * time.Millisecond); ran.Add(1); return err1 },
		func() error { ran.Add(1); return err2 },
	)
	if !errors.Is(err, err1) {
		t.Errorf("expected the left-most error, got %v", err)
	}
	if ran.Load() != 3 {
		t.Errorf("expected all thunks to run, got %d", ran.Load())
	}
	if parallel.Do() != nil {
		t.Error("Do with no thunks should return nil")
	}
}

func TestDoPanic(t *testing.T) {
	var finished atomic.Int32
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
		if finished.Load() != 1 {
			t.Error("Do panicked before the other thunk terminated")
		}
	}()
	_ = parallel.Do(
		func() error { panic("boom") },
		func() error {
			time.Sleep(10 * time.Millisecond)
			finished.Add(1)
			return nil
		},
	)
}

func TestHandleJoin(t *testing.T) {
	errTask := errors.New("task failed")
	h := parallel.Go(func() error {
		time.Sleep(5 * time.Millisecond)
		return errTask
	})
	select {
	case <-h.Done():
		t.Error("handle reported done before the task finished")
	default:
	}
	if err := h.Join(); !errors.Is(err, errTask) {
		t.Errorf("Join = %v, want errTask", err)
	}
	if err := h.Join(); !errors.Is(err, errTask) {
		t.Errorf("second Join = %v, want errTask", err)
	}
}

func TestJoinAll(t *testing.T) {
	var finished atomic.Int32
	errTask := errors.New("task failed")
	handles := []*parallel.Handle{
		parallel.Go(func() error { finished.Add(1); return nil }),
		parallel.Go(func() error { finished.Add(1); return errTask }),
		parallel.Go(func() error { panic("boom") }),
		parallel.Go(func() error {
			time.Sleep(10 * time.Millisecond)
			finished.Add(1)
			return nil
		}),
	}
	if err := parallel.JoinAll(handles); !errors.Is(err, errTask) {
		t.Errorf("JoinAll = %v, want errTask", err)
	}
	if finished.Load() != 3 {
		t.Errorf("JoinAll returned before all tasks finished: %d", finished.Load())
	}
	var perr *parallel.PanicError
	if err := handles[2].Join(); !errors.As(err, &perr) {
		t.Errorf("expected a *PanicError, got %v", err)
	}
}
