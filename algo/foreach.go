package algo

import "github.com/baxromumarov/parcel"

// ForEach applies fn to every element. An error from fn skips the rest of
// that chunk; errors from different chunks are aggregated per the
// policy's error mode. fn must be safe to call concurrently with itself
// under a parallel policy.
func ForEach[T any](p parcel.Policy, s []T, fn func(v T) error) error {
	_, err := parcel.Partition(p, 0, len(s),
		func(start, cnt int) (struct{}, error) {
			for _, v := range s[start : start+cnt] {
				if err := fn(v); err != nil {
					return struct{}{}, err
				}
			}
			return struct{}{}, nil
		},
		func([]struct{}) (struct{}, error) { return struct{}{}, nil },
	).Wait()
	return err
}

// Transform applies fn to every element of src and stores the results in
// the corresponding positions of dst, returning the number of elements
// written. Each chunk writes a disjoint sub-range of dst, so no
// synchronization is needed on the output.
//
// Transform panics if dst is shorter than src. dst and src may be the
// same slice for in-place transformation.
func Transform[T, R any](p parcel.Policy, dst []R, src []T, fn func(T) (R, error)) (int, error) {
	return transform(p, dst, src, fn).Wait()
}

// TransformAsync is [Transform] returning a [parcel.Future] immediately.
func TransformAsync[T, R any](p parcel.Policy, dst []R, src []T, fn func(T) (R, error)) *parcel.Future[int] {
	return transform(p.Async(), dst, src, fn)
}

func transform[T, R any](p parcel.Policy, dst []R, src []T, fn func(T) (R, error)) *parcel.Future[int] {
	if len(dst) < len(src) {
		panic("algo: Transform destination shorter than source")
	}
	return parcel.Partition(p, 0, len(src),
		func(start, cnt int) (int, error) {
			for i := start; i < start+cnt; i++ {
				r, err := fn(src[i])
				if err != nil {
					return 0, err
				}
				dst[i] = r
			}
			return cnt, nil
		},
		func(parts []int) (int, error) {
			written := 0
			for _, part := range parts {
				written += part
			}
			return written, nil
		},
	)
}

// Copy copies src into dst chunk by chunk and returns the number of
// elements copied. Panics if dst is shorter than src.
func Copy[T any](p parcel.Policy, dst, src []T) (int, error) {
	if len(dst) < len(src) {
		panic("algo: Copy destination shorter than source")
	}
	_, err := parcel.Partition(p, 0, len(src),
		func(start, cnt int) (struct{}, error) {
			copy(dst[start:start+cnt], src[start:start+cnt])
			return struct{}{}, nil
		},
		func([]struct{}) (struct{}, error) { return struct{}{}, nil },
	).Wait()
	if err != nil {
		return 0, err
	}
	return len(src), nil
}
