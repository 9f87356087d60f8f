package parcel

import "sync/atomic"

// Future holds the outcome of a partitioned call. Under a synchronous
// policy the future returned by [Partition], [Scan], and friends is
// already resolved; under an asynchronous policy ([Policy.Async]) it is
// pending and the whole call graph runs inside one outer task.
//
// All methods are safe for concurrent use, and [Future.Wait] may be called
// any number of times; every call returns the same outcome.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
	pe   *PanicError
	set  atomic.Bool
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func resolvedFuture[T any](val T, err error) *Future[T] {
	f := newFuture[T]()
	f.complete(val, err, nil)
	return f
}

// complete publishes the outcome. Exactly one of the producing paths calls
// it; a second call is a bug in this package.
func (f *Future[T]) complete(val T, err error, pe *PanicError) {
	if !f.set.CompareAndSwap(false, true) {
		panic("parcel: future completed twice")
	}
	f.val = val
	f.err = err
	f.pe = pe
	close(f.done)
}

// Wait blocks until the computation completes and returns its value and
// error. If the computation panicked, Wait re-raises the captured
// [*PanicError] on the waiting goroutine.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	if f.pe != nil {
		panic(f.pe)
	}
	return f.val, f.err
}

// Done returns a channel that is closed when the computation completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the computation has completed. It never blocks.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err blocks until the computation completes and returns its error, if
// any. Like [Future.Wait], it re-raises a captured panic.
func (f *Future[T]) Err() error {
	<-f.done
	if f.pe != nil {
		panic(f.pe)
	}
	return f.err
}
