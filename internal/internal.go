package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// CheckStrides validates the index range size n and the stride count workers
// of a strided reduction, and returns workers unchanged.
func CheckStrides(n, workers int) int {
	if n < 0 {
		panic(fmt.Sprintf("invalid number of steps: %v", n))
	}
	if workers <= 0 {
		panic(fmt.Sprintf("invalid number of workers: %v", workers))
	}
	return workers
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
