package parallel

import (
	"fmt"

	"github.com/exascience/parpatterns/internal"
)

// A PanicError reports a panic that was recovered in a task started by Go.
// Value holds the panic value together with the stack of the panicking
// goroutine.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// A Handle represents a task started by Go.
//
// The zero Handle is not valid.
type Handle struct {
	done chan struct{}
	err  error
}

// Go invokes f in its own goroutine and returns a handle for it.
//
// A panic in f is recovered and reported as a *PanicError by Join, so
// that a failing task never brings down tasks started next to it.
func Go(f func() error) *Handle {
	h := &Handle{done: make(chan struct{})}
	go func() {
		defer func() {
			if p := recover(); p != nil {
				h.err = &PanicError{Value: internal.WrapPanic(p)}
			}
			close(h.done)
		}()
		h.err = f()
	}()
	return h
}

// Join waits for the task to terminate and returns its error value.
// Join can be called any number of times, from any goroutine.
func (h *Handle) Join() error {
	<-h.done
	return h.err
}

// Done returns a channel that is closed when the task has terminated.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// JoinAll joins each of the handles in order and returns the left-most
// error value that is different from nil. It always joins all handles,
// even after an error.
func JoinAll(handles []*Handle) (err error) {
	for _, h := range handles {
		if herr := h.Join(); err == nil {
			err = herr
		}
	}
	return
}
