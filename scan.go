package parcel

import "errors"

// Scan is the three-phase partitioner for prefix-scan algorithms, where
// each chunk's output depends on the running total of every chunk strictly
// before it.
//
// The phases:
//
//   - phase1(start, n) computes one chunk's local reduction, independent
//     of all other chunks; these run fully in parallel.
//   - combine(a, b) associatively combines two adjacent partial
//     reductions; commutativity is not assumed.
//   - phase3(start, n, carry) produces the chunk's actual output, where
//     carry is the combination of init with the partials of every chunk
//     before this one.
//   - finalize(carries, results) runs once after everything has joined and
//     turns the carry and output collections into the declared result.
//
// Scan uses the static strategy: all phase-1 tasks run in parallel, a
// barrier, one sequential left fold building every carry, then all phase-3
// tasks run in parallel. [ScanStreaming] is the pipelined alternative;
// both produce identical results.
//
// A single-chunk plan short-circuits: init alone is the whole running
// total, so phase1 and combine are never called. A count of zero invokes
// finalize with carries == []T{init} and nil results, without running any
// phase. Failures follow the same discipline as [Partition]: every started
// task is drained before the first captured panic is re-raised or the
// chunk errors are joined; an error from combine is attributed to the
// chunk whose partial was being folded.
func Scan[T, F, R any](
	p Policy,
	first, count int,
	init T,
	phase1 func(start, n int) (T, error),
	combine func(a, b T) (T, error),
	phase3 func(start, n int, carry T) (F, error),
	finalize func(carries []T, results []F) (R, error),
) *Future[R] {
	if phase1 == nil || combine == nil || phase3 == nil || finalize == nil {
		panic("parcel: Scan requires non-nil callables")
	}
	return dispatch(p, func() (R, error) {
		return runScanStatic(p, first, count, init, phase1, combine, phase3, finalize)
	})
}

// ScanStreaming is [Scan] with the dependency-chained strategy: as each
// chunk's partial lands, a sequencer issues that chunk's phase-3 task and
// folds the partial into the running carry, so chunk 0's output can start
// while the last chunks are still reducing. A chunk's phase 3 never
// overlaps its own phase 1, which keeps in-place use (phase 3 writing the
// range phase 1 reads) safe. The price is per-chunk dependency tracking;
// the results are identical to [Scan] for any associative combine.
//
// On failure the sequencer stops issuing phase-3 tasks, so no task is
// ever left waiting on a carry that will never arrive; everything already
// issued is still drained before the failure surfaces.
func ScanStreaming[T, F, R any](
	p Policy,
	first, count int,
	init T,
	phase1 func(start, n int) (T, error),
	combine func(a, b T) (T, error),
	phase3 func(start, n int, carry T) (F, error),
	finalize func(carries []T, results []F) (R, error),
) *Future[R] {
	if phase1 == nil || combine == nil || phase3 == nil || finalize == nil {
		panic("parcel: ScanStreaming requires non-nil callables")
	}
	return dispatch(p, func() (R, error) {
		return runScanStreaming(p, first, count, init, phase1, combine, phase3, finalize)
	})
}

// runScanOne handles the single-chunk plans shared by both strategies:
// the chunk runs inline with init as its carry.
func runScanOne[T, F, R any](
	p Policy,
	info ChunkInfo,
	init T,
	phase3 func(start, n int, carry T) (F, error),
	finalize func(carries []T, results []F) (R, error),
) (R, error) {
	col := newCollector[F](p, 3, 1)
	col.submit(inlineRuntime{}, info, func(c ChunkInfo) (F, error) {
		return phase3(c.Start, c.Len, init)
	})
	if err := col.drain(); err != nil {
		var zero R
		return zero, err
	}
	return finalize([]T{init}, col.values())
}

func runScanStatic[T, F, R any](
	p Policy,
	first, count int,
	init T,
	phase1 func(start, n int) (T, error),
	combine func(a, b T) (T, error),
	phase3 func(start, n int, carry T) (F, error),
	finalize func(carries []T, results []F) (R, error),
) (R, error) {
	chunks := plan(p, first, count)
	n := len(chunks)
	if n == 0 {
		return finalize([]T{init}, nil)
	}
	if !p.parallel() || n == 1 {
		return runScanOne(p, chunks[0], init, phase3, finalize)
	}
	rt := p.runtime()

	// Phase 1: local reductions in parallel. The final chunk's partial is
	// never consumed by the carry chain, so it is not computed.
	p1 := newCollector[T](p, 1, n-1)
	for _, info := range chunks[:n-1] {
		p1.submit(rt, info, func(c ChunkInfo) (T, error) {
			return phase1(c.Start, c.Len)
		})
	}
	if err := p1.drain(); err != nil {
		var zero R
		return zero, err
	}

	// Phase 2: one sequential left fold of the partials into the carries.
	// carries[i] combines init with the partials of chunks 0..i-1; the
	// strict fold order is what lets combine be merely associative.
	partials := p1.values()
	carries := make([]T, n)
	carries[0] = init
	for i := 1; i < n; i++ {
		acc, err := combine(carries[i-1], partials[i-1])
		if err != nil {
			var zero R
			return zero, &ChunkError{Chunk: chunks[i-1], Err: err}
		}
		carries[i] = acc
	}

	// Phase 3: chunk outputs in parallel, each seeded with its carry.
	p3 := newCollector[F](p, 3, n)
	for _, info := range chunks {
		p3.submit(rt, info, func(c ChunkInfo) (F, error) {
			return phase3(c.Start, c.Len, carries[c.Index])
		})
	}
	if err := p3.drain(); err != nil {
		var zero R
		return zero, err
	}
	return finalize(carries, p3.values())
}

func runScanStreaming[T, F, R any](
	p Policy,
	first, count int,
	init T,
	phase1 func(start, n int) (T, error),
	combine func(a, b T) (T, error),
	phase3 func(start, n int, carry T) (F, error),
	finalize func(carries []T, results []F) (R, error),
) (R, error) {
	chunks := plan(p, first, count)
	n := len(chunks)
	if n == 0 {
		return finalize([]T{init}, nil)
	}
	if !p.parallel() || n == 1 {
		return runScanOne(p, chunks[0], init, phase3, finalize)
	}
	rt := p.runtime()

	// Phase 1 as in the static strategy, but each task additionally
	// signals its completion so the sequencer can fold partials the
	// moment they land.
	p1 := newCollector[T](p, 1, n-1)
	ready := make([]<-chan struct{}, n-1)
	for i, info := range chunks[:n-1] {
		ready[i] = p1.submitSignal(rt, info, func(c ChunkInfo) (T, error) {
			return phase1(c.Start, c.Len)
		})
	}

	p3 := newCollector[F](p, 3, n)
	carries := make([]T, n)
	carries[0] = init

	issue := func(i int) {
		p3.submit(rt, chunks[i], func(c ChunkInfo) (F, error) {
			return phase3(c.Start, c.Len, carries[c.Index])
		})
	}

	// The sequencer: as each partial lands, issue that chunk's output
	// phase and fold the partial into the running carry. A chunk's output
	// phase is gated on its own phase 1 joining, never just its carry:
	// phase 3 may write the very sub-range phase 1 reads (in-place
	// scans), so the two must not overlap on one chunk. On any failure
	// stop issuing; an unissued phase-3 task can never be left blocked.
	var combineErr error
	failed := false
	for i := 0; i < n-1; i++ {
		<-ready[i]
		if p1.outcomes[i].pe != nil || p1.outcomes[i].err != nil {
			failed = true
			break
		}
		issue(i)
		acc, err := combine(carries[i], p1.outcomes[i].val)
		if err != nil {
			combineErr = &ChunkError{Chunk: chunks[i], Err: err}
			failed = true
			break
		}
		carries[i+1] = acc
	}
	if !failed {
		// The final chunk has no phase 1; its carry exists after the
		// last fold.
		issue(n - 1)
	}

	// Full drain of both phases before any failure surfaces; the panic
	// precedence check must span both handle sets.
	p1.wait()
	p3.wait()
	if pe := p1.firstPanic(); pe != nil {
		panic(pe)
	}
	if pe := p3.firstPanic(); pe != nil {
		panic(pe)
	}
	if err := errors.Join(p1.joined(), combineErr, p3.joined()); err != nil {
		var zero R
		return zero, err
	}
	return finalize(carries, p3.values())
}
