package algo

import "github.com/baxromumarov/parcel"

// partState is one chunk's classification for IsPartitioned: the global
// position of the chunk's first failing element (or the range length if
// none) and of its last satisfying element (or -1 if none).
type partState struct {
	firstFalse int
	lastTrue   int
}

// IsPartitioned reports whether every element satisfying pred precedes
// every element that does not. Empty and single-element slices are
// partitioned.
//
// Each chunk records where pred first fails and last holds within it; the
// range is partitioned iff the global last-true position precedes the
// global first-false position. A chunk that sees a violation locally
// settles the answer and cancels the rest.
func IsPartitioned[T any](p parcel.Policy, s []T, pred func(T) bool) (bool, error) {
	n := len(s)
	tok := parcel.NewToken(n)
	fut := parcel.PartitionIndexed(p, 0, n,
		func(start, cnt, base int) (partState, error) {
			st := partState{firstFalse: n, lastTrue: -1}
			for i := 0; i < cnt; i++ {
				if tok.Cancelled() {
					return st, nil
				}
				if pred(s[start+i]) {
					st.lastTrue = base + i
					if st.firstFalse < n {
						// true after false inside one chunk: the whole
						// range cannot be partitioned.
						tok.Cancel()
						return st, nil
					}
				} else if st.firstFalse == n {
					st.firstFalse = base + i
				}
			}
			return st, nil
		},
		func(parts []partState) (partState, error) {
			agg := partState{firstFalse: n, lastTrue: -1}
			for _, st := range parts {
				if st.firstFalse < agg.firstFalse {
					agg.firstFalse = st.firstFalse
				}
				if st.lastTrue > agg.lastTrue {
					agg.lastTrue = st.lastTrue
				}
			}
			return agg, nil
		},
	)
	agg, err := fut.Wait()
	if err != nil {
		return false, err
	}
	if tok.Cancelled() {
		return false, nil
	}
	return agg.lastTrue < agg.firstFalse, nil
}

// Equal reports whether a and b have the same length and equal elements
// at every position.
func Equal[T comparable](p parcel.Policy, a, b []T) (bool, error) {
	return EqualFunc(p, a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is [Equal] with a caller-supplied equivalence.
func EqualFunc[T any](p parcel.Policy, a, b []T, eq func(x, y T) bool) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	tok := parcel.NewToken(len(a))
	_, err := parcel.Partition(p, 0, len(a),
		func(start, cnt int) (struct{}, error) {
			for i := start; i < start+cnt; i++ {
				if tok.Cancelled() {
					break
				}
				if !eq(a[i], b[i]) {
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
	return !tok.Cancelled(), nil
}

// EndsWith reports whether s ends with suffix. Every slice ends with the
// empty suffix.
func EndsWith[T comparable](p parcel.Policy, s, suffix []T) (bool, error) {
	if len(suffix) > len(s) {
		return false, nil
	}
	return Equal(p, s[len(s)-len(suffix):], suffix)
}
