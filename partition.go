// Partition is the generic "map over independent chunks, then merge"
// scheduler behind most of the algo package. One invocation plans its
// chunks once, submits one task per chunk to the policy's runtime, drains
// every task (success, error, or panic) through a collector, and invokes
// the reduce callable exactly once.
//
// The collector is this package's pending-work set and failure aggregator
// in one: per-chunk outcomes land in a slot indexed by chunk position, the
// join never raises, and only after the full drain is the aggregate
// outcome decided: first captured panic re-raised, else chunk errors
// joined, else reduce over the values.
package parcel

import (
	"errors"
	"sync"
	"time"
)

// dispatch applies the policy's blocking class to one partitioned call.
// Synchronous policies run inline on the calling goroutine and return an
// already-resolved future. Asynchronous policies wrap the whole call in
// one outer task and return a pending future; a panic inside the call is
// transported through the future and re-raised by [Future.Wait].
//
// The outer task always gets its own goroutine rather than a slot on the
// policy runtime: holding a bounded runtime's worker while waiting for
// chunk tasks that need that same worker would deadlock.
func dispatch[T any](p Policy, run func() (T, error)) *Future[T] {
	if !p.async {
		val, err := run()
		return resolvedFuture(val, err)
	}

	f := newFuture[T]()
	go func() {
		var (
			val T
			err error
		)
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.complete(zero, nil, asPanicError(r))
				return
			}
			f.complete(val, err, nil)
		}()
		val, err = run()
	}()
	return f
}

// outcome is the drained record of one chunk task. Exactly one of
// {ok, err, pe} is set once the task has completed.
type outcome[R any] struct {
	val R
	err error
	pe  *PanicError
	ok  bool
}

// collector tracks the in-flight chunk tasks of one invocation and their
// outcomes. Each task writes only its own slot (safe: unique index per
// goroutine), and the joining goroutine reads the slots only after wait,
// so no slot is ever accessed concurrently.
type collector[R any] struct {
	p        Policy
	phase    int
	wg       sync.WaitGroup
	outcomes []outcome[R]
}

func newCollector[R any](p Policy, phase, n int) *collector[R] {
	return &collector[R]{p: p, phase: phase, outcomes: make([]outcome[R], n)}
}

// submit schedules fn for one chunk. Submission order is chunk position
// order; completion order is unspecified.
func (c *collector[R]) submit(rt Runtime, info ChunkInfo, fn func(ChunkInfo) (R, error)) {
	c.wg.Add(1)
	c.p.emit(ChunkEvent{Kind: EventScheduled, Chunk: info, Phase: c.phase})
	rt.Go(func() { c.run(info, fn) })
}

// run executes one chunk callable under the policy's error mode. Under
// Aggregate, errors and panics are captured into the chunk's outcome slot.
// Under Abort nothing is recovered: the failure escapes the worker
// goroutine and terminates the process.
func (c *collector[R]) run(info ChunkInfo, fn func(ChunkInfo) (R, error)) {
	defer c.wg.Done()

	if c.p.errorMode() == Abort {
		start := time.Now()
		val, err := fn(info)
		if err != nil {
			// Panic with the typed error so crash handlers can still
			// inspect the chunk attribution and cause.
			panic(&ChunkError{Chunk: info, Err: err})
		}
		c.outcomes[info.Index] = outcome[R]{val: val, ok: true}
		c.p.emit(ChunkEvent{Kind: EventDone, Chunk: info, Phase: c.phase, Duration: time.Since(start)})
		return
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			pe := asPanicError(r)
			c.outcomes[info.Index] = outcome[R]{pe: pe}
			c.p.emit(ChunkEvent{Kind: EventPanicked, Chunk: info, Phase: c.phase, Err: pe, Duration: time.Since(start)})
		}
	}()

	val, err := fn(info)
	if err != nil {
		ce := &ChunkError{Chunk: info, Err: err}
		c.outcomes[info.Index] = outcome[R]{err: ce}
		c.p.emit(ChunkEvent{Kind: EventErrored, Chunk: info, Phase: c.phase, Err: ce, Duration: time.Since(start)})
		return
	}
	c.outcomes[info.Index] = outcome[R]{val: val, ok: true}
	c.p.emit(ChunkEvent{Kind: EventDone, Chunk: info, Phase: c.phase, Duration: time.Since(start)})
}

// submitSignal is submit with a per-chunk completion signal, used by the
// streaming scan's sequencer. The returned channel closes after the
// chunk's outcome slot has been written.
func (c *collector[R]) submitSignal(rt Runtime, info ChunkInfo, fn func(ChunkInfo) (R, error)) <-chan struct{} {
	done := make(chan struct{})
	c.wg.Add(1)
	c.p.emit(ChunkEvent{Kind: EventScheduled, Chunk: info, Phase: c.phase})
	rt.Go(func() {
		defer close(done)
		c.run(info, fn)
	})
	return done
}

// wait blocks until every submitted chunk has completed. It never raises.
func (c *collector[R]) wait() { c.wg.Wait() }

// drain waits for every submitted chunk, then re-raises the first captured
// panic or returns the joined chunk errors.
func (c *collector[R]) drain() error {
	c.wait()
	if pe := c.firstPanic(); pe != nil {
		panic(pe)
	}
	return c.joined()
}

// firstPanic returns the captured panic of the lowest-positioned panicking
// chunk, or nil.
func (c *collector[R]) firstPanic() *PanicError {
	for i := range c.outcomes {
		if c.outcomes[i].pe != nil {
			return c.outcomes[i].pe
		}
	}
	return nil
}

// joined returns the chunk errors joined in position order, or nil if no
// chunk errored.
func (c *collector[R]) joined() error {
	var errs []error
	for i := range c.outcomes {
		if c.outcomes[i].err != nil {
			errs = append(errs, c.outcomes[i].err)
		}
	}
	return errors.Join(errs...)
}

// values returns the chunk results in position order. Only meaningful
// after wait, when no chunk failed.
func (c *collector[R]) values() []R {
	vals := make([]R, len(c.outcomes))
	for i := range c.outcomes {
		vals[i] = c.outcomes[i].val
	}
	return vals
}

// cleanupSucceeded applies fn to every successful chunk's result, in
// position order. Called when another chunk failed, so surviving partial
// state is released consistently with the failed chunks (which are
// assumed to have cleaned up their own state before failing).
func (c *collector[R]) cleanupSucceeded(fn func(R)) {
	for i := range c.outcomes {
		if c.outcomes[i].ok {
			fn(c.outcomes[i].val)
		}
	}
}

// inlineRuntime runs tasks synchronously on the submitting goroutine,
// used for sequential policies and single-chunk plans.
type inlineRuntime struct{}

func (inlineRuntime) Go(fn func()) { fn() }

// runPartition is the synchronous body shared by the Partition variants.
func runPartition[R any](
	p Policy,
	first, count int,
	fn func(ChunkInfo) (R, error),
	reduce func([]R) (R, error),
	cleanup func(R),
) (R, error) {
	chunks := plan(p, first, count)
	if len(chunks) == 0 {
		// Empty range: no chunk runs, but reduce still does, so every
		// algorithm returns its identity without special-casing.
		return reduce(nil)
	}

	rt := p.runtime()
	if !p.parallel() || len(chunks) == 1 {
		// One chunk never pays for a task submission.
		rt = inlineRuntime{}
	}

	col := newCollector[R](p, 0, len(chunks))
	for _, info := range chunks {
		col.submit(rt, info, fn)
	}
	col.wait()

	return settle(col, reduce, cleanup)
}

// settle turns a fully-drained collector into the invocation's outcome:
// panic precedence first, then the aggregate error, then reduce.
func settle[R any](col *collector[R], reduce func([]R) (R, error), cleanup func(R)) (R, error) {
	if pe := col.firstPanic(); pe != nil {
		if cleanup != nil {
			col.cleanupSucceeded(cleanup)
		}
		panic(pe)
	}
	if err := col.joined(); err != nil {
		if cleanup != nil {
			col.cleanupSucceeded(cleanup)
		}
		var zero R
		return zero, err
	}
	return reduce(col.values())
}

// Partition splits [first, first+count) into chunks, runs chunk once per
// chunk, and after every chunk has completed runs reduce exactly once over
// the chunk results in position order.
//
// Under [Seq] the single chunk runs inline on the calling goroutine. Under
// a parallel policy each chunk is submitted as an independent task in
// position order; completion order is unspecified, so reduce must not
// depend on it. A count of zero invokes reduce(nil) without running any
// chunk.
//
// The returned future is already resolved for synchronous policies. Under
// [Policy.Async] the call returns immediately and the entire sequence
// above runs inside one outer task; see [Future.Wait] for the blocking
// point. On chunk failure reduce is not invoked and the future carries the
// aggregate error (or re-raises the first captured panic).
//
// Partition panics if chunk or reduce is nil or count is negative.
func Partition[R any](
	p Policy,
	first, count int,
	chunk func(start, n int) (R, error),
	reduce func(parts []R) (R, error),
) *Future[R] {
	if chunk == nil || reduce == nil {
		panic("parcel: Partition requires non-nil callables")
	}
	return dispatch(p, func() (R, error) {
		return runPartition(p, first, count, func(c ChunkInfo) (R, error) {
			return chunk(c.Start, c.Len)
		}, reduce, nil)
	})
}

// PartitionIndexed is [Partition] for position-reporting algorithms: the
// chunk callable additionally receives base, the 0-based logical index of
// the chunk's first element relative to first.
func PartitionIndexed[R any](
	p Policy,
	first, count int,
	chunk func(start, n, base int) (R, error),
	reduce func(parts []R) (R, error),
) *Future[R] {
	if chunk == nil || reduce == nil {
		panic("parcel: PartitionIndexed requires non-nil callables")
	}
	return dispatch(p, func() (R, error) {
		return runPartition(p, first, count, func(c ChunkInfo) (R, error) {
			return chunk(c.Start, c.Len, c.Start-first)
		}, reduce, nil)
	})
}

// PartitionWithCleanup is [Partition] for chunk callables whose results
// hold resources. If any chunk fails, cleanup is applied to every
// successful chunk's result before the failure is surfaced, so nothing
// leaks from the chunks that worked. On success cleanup is never called
// and ownership of the results passes to reduce.
func PartitionWithCleanup[R any](
	p Policy,
	first, count int,
	chunk func(start, n int) (R, error),
	cleanup func(R),
	reduce func(parts []R) (R, error),
) *Future[R] {
	if chunk == nil || cleanup == nil || reduce == nil {
		panic("parcel: PartitionWithCleanup requires non-nil callables")
	}
	return dispatch(p, func() (R, error) {
		return runPartition(p, first, count, func(c ChunkInfo) (R, error) {
			return chunk(c.Start, c.Len)
		}, reduce, cleanup)
	})
}
