package parcel

import "runtime"

// Mode is the parallelism class of a [Policy].
type Mode int

const (
	// ModeSeq runs the whole range as one inline chunk on the calling
	// goroutine.
	ModeSeq Mode = iota

	// ModePar fans the range out over chunks submitted to the policy's
	// [Runtime].
	ModePar

	// ModeParUnseq is ModePar with no ordering or interleaving guarantees
	// inside a chunk. Its [ErrorMode] defaults to [Abort] because safe
	// unwinding cannot be guaranteed under unconstrained interleaving.
	ModeParUnseq
)

// ErrorMode determines how partitioned calls react to chunk failures.
type ErrorMode int

const (
	// Aggregate drains every chunk, wraps each failure in a [*ChunkError],
	// and reports all of them joined via [errors.Join].
	Aggregate ErrorMode = iota

	// Abort recovers nothing: an error or panic in any chunk escapes its
	// worker goroutine and terminates the process.
	Abort
)

// Policy describes how a partitioned call executes: its parallelism class,
// whether the call blocks or returns a pending [Future], how chunk failures
// are handled, and how the range is chunked. The zero value is the
// sequential synchronous policy; [Seq], [Par], and [ParUnseq] are the usual
// starting points.
//
// Policy is a value type. Builder methods return modified copies and never
// mutate the receiver, so policies can be stored in package variables and
// shared across goroutines.
type Policy struct {
	mode       Mode
	async      bool
	errMode    ErrorMode
	errModeSet bool
	chunkSize  int
	chunker    func(count, workers int) int
	nworkers   int
	rt         Runtime
	onEvent    func(ChunkEvent)
}

// Predefined synchronous policies. Combine with builder methods as needed.
var (
	// Seq executes sequentially on the calling goroutine.
	Seq = Policy{mode: ModeSeq}

	// Par executes in parallel chunks.
	Par = Policy{mode: ModePar}

	// ParUnseq executes in parallel chunks with no intra-chunk ordering;
	// chunk failures abort the process unless overridden with
	// [Policy.WithErrorMode].
	ParUnseq = Policy{mode: ModeParUnseq}
)

// Async returns a copy of the policy whose partitioned calls return
// immediately with a pending [Future]. All chunking, scheduling, and
// joining happens inside one outer task; the caller blocks only in
// [Future.Wait].
func (p Policy) Async() Policy {
	p.async = true
	return p
}

// Sync returns a copy of the policy whose partitioned calls block until
// the result is available. This is the default.
func (p Policy) Sync() Policy {
	p.async = false
	return p
}

// WithErrorMode returns a copy of the policy with the given [ErrorMode].
// It panics if m is not a known ErrorMode value.
func (p Policy) WithErrorMode(m ErrorMode) Policy {
	switch m {
	case Aggregate, Abort:
	default:
		panic("parcel: invalid error mode")
	}
	p.errMode = m
	p.errModeSet = true
	return p
}

// WithChunkSize returns a copy of the policy that splits ranges into
// chunks of exactly n elements (the final chunk may be shorter). A size of
// zero restores the default sizing. WithChunkSize panics if n is negative.
func (p Policy) WithChunkSize(n int) Policy {
	if n < 0 {
		panic("parcel: chunk size must be non-negative")
	}
	p.chunkSize = n
	p.chunker = nil
	return p
}

// WithChunker returns a copy of the policy that derives the chunk size by
// calling fn with the total element count and the resolved worker count.
// Results below 1 are clamped to 1. WithChunker panics if fn is nil.
func (p Policy) WithChunker(fn func(count, workers int) int) Policy {
	if fn == nil {
		panic("parcel: WithChunker requires non-nil fn")
	}
	p.chunker = fn
	p.chunkSize = 0
	return p
}

// WithWorkers returns a copy of the policy sized for n workers. Zero (the
// default) resolves to runtime.GOMAXPROCS(0). WithWorkers panics if n is
// negative.
func (p Policy) WithWorkers(n int) Policy {
	if n < 0 {
		panic("parcel: workers must be non-negative")
	}
	p.nworkers = n
	return p
}

// WithRuntime returns a copy of the policy that submits chunk tasks to rt
// instead of spawning one goroutine per chunk. WithRuntime panics if rt is
// nil.
func (p Policy) WithRuntime(rt Runtime) Policy {
	if rt == nil {
		panic("parcel: WithRuntime requires non-nil runtime")
	}
	p.rt = rt
	return p
}

// WithOnEvent returns a copy of the policy with a hook invoked for every
// chunk state change. The hook runs on worker goroutines and must be safe
// for concurrent use; it must not panic.
func (p Policy) WithOnEvent(fn func(ChunkEvent)) Policy {
	p.onEvent = fn
	return p
}

// Mode returns the policy's parallelism class.
func (p Policy) Mode() Mode { return p.mode }

// IsAsync reports whether partitioned calls under this policy return a
// pending [Future] instead of blocking.
func (p Policy) IsAsync() bool { return p.async }

// errorMode resolves the effective ErrorMode: explicit setting if any,
// otherwise Abort for ParUnseq and Aggregate for everything else.
func (p Policy) errorMode() ErrorMode {
	if p.errModeSet {
		return p.errMode
	}
	if p.mode == ModeParUnseq {
		return Abort
	}
	return Aggregate
}

// workers resolves the effective worker count.
func (p Policy) workers() int {
	if p.nworkers > 0 {
		return p.nworkers
	}
	return runtime.GOMAXPROCS(0)
}

// runtime resolves the effective chunk runtime.
func (p Policy) runtime() Runtime {
	if p.rt != nil {
		return p.rt
	}
	return defaultRuntime
}

func (p Policy) emit(e ChunkEvent) {
	if p.onEvent != nil {
		p.onEvent(e)
	}
}

func (p Policy) parallel() bool {
	return p.mode != ModeSeq
}
