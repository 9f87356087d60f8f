package parcel

import "sync/atomic"

// Token is a concurrency-safe "best known answer so far" register used to
// implement early-exit search semantics under parallel execution.
//
// A token is created once per algorithm invocation with a sentinel index
// meaning "no match yet" (conventionally the element count) and shared by
// every chunk worker. Workers publish candidate positions with [Token.CancelAt];
// the token keeps the minimum, so [Token.BestIndex] after all workers have
// joined is the lexically first match regardless of which chunk finished
// first. For boolean algorithms where no ordering between matches matters,
// [Token.Cancel] sets a plain flag instead.
//
// Workers should poll [Token.Cancelled] periodically to abandon chunks that
// can no longer improve the answer. Polling frequency affects only wasted
// work, never correctness: the final answer depends solely on the value
// observed after the full join.
type Token struct {
	sentinel int64
	best     atomic.Int64
	stop     atomic.Bool
}

// NewToken creates a token whose best index starts at sentinel, meaning
// "no match yet". NewToken panics if sentinel is negative.
func NewToken(sentinel int) *Token {
	if sentinel < 0 {
		panic("parcel: NewToken requires non-negative sentinel")
	}
	t := &Token{sentinel: int64(sentinel)}
	t.best.Store(int64(sentinel))
	return t
}

// CancelAt publishes index as a candidate answer. The stored best index
// only ever decreases: CancelAt is a compare-and-swap retry loop taking
// min(current, index). It never blocks and is safe under arbitrary
// concurrent callers.
func (t *Token) CancelAt(index int) {
	idx := int64(index)
	for {
		cur := t.best.Load()
		if idx >= cur {
			return
		}
		if t.best.CompareAndSwap(cur, idx) {
			return
		}
	}
}

// Cancel signals cancellation without an index, for algorithms whose
// answer is a boolean rather than a position.
func (t *Token) Cancel() {
	t.stop.Store(true)
}

// Cancelled reports whether any index below the sentinel has been
// published or [Token.Cancel] has been called.
func (t *Token) Cancelled() bool {
	return t.stop.Load() || t.best.Load() < t.sentinel
}

// BestIndex returns the smallest index published so far, or the sentinel
// if none. The value is final once every chunk worker has joined.
func (t *Token) BestIndex() int {
	return int(t.best.Load())
}
