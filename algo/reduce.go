package algo

import "github.com/baxromumarov/parcel"

// Reduce folds s with op, seeded with init. op must be associative (it
// need not be commutative): chunking regroups applications but preserves
// their left-to-right order, so the result equals the sequential left
// fold for any associative op.
func Reduce[T any](p parcel.Policy, s []T, init T, op func(a, b T) T) (T, error) {
	return reduce(p, s, init, op).Wait()
}

// ReduceAsync is [Reduce] returning a [parcel.Future] immediately.
func ReduceAsync[T any](p parcel.Policy, s []T, init T, op func(a, b T) T) *parcel.Future[T] {
	return reduce(p.Async(), s, init, op)
}

func reduce[T any](p parcel.Policy, s []T, init T, op func(a, b T) T) *parcel.Future[T] {
	return parcel.Partition(p, 0, len(s),
		func(start, cnt int) (T, error) {
			acc := s[start]
			for _, v := range s[start+1 : start+cnt] {
				acc = op(acc, v)
			}
			return acc, nil
		},
		func(parts []T) (T, error) {
			acc := init
			for _, part := range parts {
				acc = op(acc, part)
			}
			return acc, nil
		},
	)
}

// Count returns the number of elements equal to target.
func Count[T comparable](p parcel.Policy, s []T, target T) (int, error) {
	return CountIf(p, s, func(v T) bool { return v == target })
}

// CountIf returns the number of elements satisfying pred.
func CountIf[T any](p parcel.Policy, s []T, pred func(T) bool) (int, error) {
	return countIf(p, s, pred).Wait()
}

// CountIfAsync is [CountIf] returning a [parcel.Future] immediately.
func CountIfAsync[T any](p parcel.Policy, s []T, pred func(T) bool) *parcel.Future[int] {
	return countIf(p.Async(), s, pred)
}

func countIf[T any](p parcel.Policy, s []T, pred func(T) bool) *parcel.Future[int] {
	return parcel.Partition(p, 0, len(s),
		func(start, cnt int) (int, error) {
			count := 0
			for _, v := range s[start : start+cnt] {
				if pred(v) {
					count++
				}
			}
			return count, nil
		},
		func(parts []int) (int, error) {
			total := 0
			for _, part := range parts {
				total += part
			}
			return total, nil
		},
	)
}
