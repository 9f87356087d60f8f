package algo

import "github.com/baxromumarov/parcel"

// Find returns the index of the first element equal to target, or len(s)
// if there is none.
func Find[T comparable](p parcel.Policy, s []T, target T) (int, error) {
	return findIf(p, s, func(v T) bool { return v == target }).Wait()
}

// FindAsync is [Find] returning a [parcel.Future] immediately.
func FindAsync[T comparable](p parcel.Policy, s []T, target T) *parcel.Future[int] {
	return findIf(p.Async(), s, func(v T) bool { return v == target })
}

// FindIf returns the index of the first element satisfying pred, or
// len(s) if there is none.
func FindIf[T any](p parcel.Policy, s []T, pred func(T) bool) (int, error) {
	return findIf(p, s, pred).Wait()
}

// FindIfAsync is [FindIf] returning a [parcel.Future] immediately.
func FindIfAsync[T any](p parcel.Policy, s []T, pred func(T) bool) *parcel.Future[int] {
	return findIf(p.Async(), s, pred)
}

// FindIfNot returns the index of the first element not satisfying pred,
// or len(s) if there is none.
func FindIfNot[T any](p parcel.Policy, s []T, pred func(T) bool) (int, error) {
	return findIf(p, s, func(v T) bool { return !pred(v) }).Wait()
}

// findIf is the shared early-exit search. Each chunk scans left to right
// and publishes its first hit; since chunks complete out of order, the
// token's min semantics pick the lexically first hit. A chunk whose base
// is at or past the best known index can no longer improve the answer and
// bails.
func findIf[T any](p parcel.Policy, s []T, pred func(T) bool) *parcel.Future[int] {
	n := len(s)
	tok := parcel.NewToken(n)
	return parcel.PartitionIndexed(p, 0, n,
		func(start, cnt, base int) (int, error) {
			for i := 0; i < cnt; i++ {
				if tok.BestIndex() <= base {
					return n, nil
				}
				if pred(s[start+i]) {
					tok.CancelAt(base + i)
					return base + i, nil
				}
			}
			return n, nil
		},
		func([]int) (int, error) {
			return tok.BestIndex(), nil
		},
	)
}

// AnyOf reports whether any element satisfies pred.
func AnyOf[T any](p parcel.Policy, s []T, pred func(T) bool) (bool, error) {
	tok := parcel.NewToken(len(s))
	_, err := parcel.Partition(p, 0, len(s),
		func(start, cnt int) (struct{}, error) {
			for _, v := range s[start : start+cnt] {
				// A hit anywhere settles the answer; index order is
				// irrelevant, so the boolean cancel is enough.
				if tok.Cancelled() {
					break
				}
				if pred(v) {
					tok.Cancel()
					break
				}
			}
			return struct{}{}, nil
		},
		func([]struct{}) (struct{}, error) { return struct{}{}, nil },
	).Wait()
	if err != nil {
		return false, err
	}
	return tok.Cancelled(), nil
}

// AllOf reports whether every element satisfies pred.
// An empty slice satisfies AllOf.
func AllOf[T any](p parcel.Policy, s []T, pred func(T) bool) (bool, error) {
	any, err := AnyOf(p, s, func(v T) bool { return !pred(v) })
	return !any, err
}

// NoneOf reports whether no element satisfies pred.
func NoneOf[T any](p parcel.Policy, s []T, pred func(T) bool) (bool, error) {
	any, err := AnyOf(p, s, pred)
	return !any, err
}

// AdjacentFind returns the index i of the first pair of equal neighbours
// (s[i] == s[i+1]), or len(s) if there is none.
func AdjacentFind[T comparable](p parcel.Policy, s []T) (int, error) {
	return AdjacentFindFunc(p, s, func(a, b T) bool { return a == b })
}

// AdjacentFindFunc is [AdjacentFind] with a caller-supplied equivalence.
//
// The range of candidate pair positions is [0, len(s)-1); a chunk covering
// positions [base, base+cnt) reads one element past its sub-range, which
// is always in bounds.
func AdjacentFindFunc[T any](p parcel.Policy, s []T, eq func(a, b T) bool) (int, error) {
	pairs := len(s) - 1
	if pairs < 1 {
		return len(s), nil
	}
	tok := parcel.NewToken(pairs)
	_, err := parcel.PartitionIndexed(p, 0, pairs,
		func(start, cnt, base int) (int, error) {
			for i := 0; i < cnt; i++ {
				if tok.BestIndex() <= base {
					return pairs, nil
				}
				if eq(s[start+i], s[start+i+1]) {
					tok.CancelAt(base + i)
					return base + i, nil
				}
			}
			return pairs, nil
		},
		func([]int) (int, error) { return tok.BestIndex(), nil },
	).Wait()
	if err != nil {
		return 0, err
	}
	if best := tok.BestIndex(); best < pairs {
		return best, nil
	}
	return len(s), nil
}
