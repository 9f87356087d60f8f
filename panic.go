package parcel

import (
	"fmt"
	"runtime"
)

// PanicError wraps a panic recovered from a chunk worker together with the
// goroutine stack trace captured at the point of the panic.
//
// Panics are never folded into an aggregate error: after every chunk in
// the invocation has been drained, the first captured *PanicError is
// re-raised — on the calling goroutine for synchronous policies, or by
// [Future.Wait] for asynchronous ones.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

// Error returns a human-readable representation of the panic,
// including the value and the full stack trace.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns nil. PanicError does not wrap another error.
func (e *PanicError) Unwrap() error { return nil }

func newPanicError(v any) *PanicError {
	// 8 KiB is enough for most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// asPanicError normalizes a recovered value: re-recovered *PanicError
// values keep their original stack instead of growing a new one.
func asPanicError(r any) *PanicError {
	if pe, ok := r.(*PanicError); ok {
		return pe
	}
	return newPanicError(r)
}
