package algo

import "github.com/baxromumarov/parcel"

// ExclusiveScan writes the exclusive prefix scan of src into dst:
// dst[k] = op(init, src[0], ..., src[k-1]), so dst[0] == init and src[k]
// itself is excluded from dst[k]. It returns the number of elements
// written. op must be associative; it need not be commutative.
//
// ExclusiveScan panics if dst is shorter than src. dst and src may be the
// same slice.
func ExclusiveScan[T any](p parcel.Policy, dst, src []T, init T, op func(a, b T) T) (int, error) {
	return prefixScan(p, dst, src, init, op, true, false).Wait()
}

// ExclusiveScanAsync is [ExclusiveScan] returning a [parcel.Future]
// immediately.
func ExclusiveScanAsync[T any](p parcel.Policy, dst, src []T, init T, op func(a, b T) T) *parcel.Future[int] {
	return prefixScan(p.Async(), dst, src, init, op, true, false)
}

// ExclusiveScanStreaming is [ExclusiveScan] scheduled with the
// dependency-chained strategy ([parcel.ScanStreaming]); the output is
// identical.
func ExclusiveScanStreaming[T any](p parcel.Policy, dst, src []T, init T, op func(a, b T) T) (int, error) {
	return prefixScan(p, dst, src, init, op, true, true).Wait()
}

// InclusiveScan writes the inclusive prefix scan of src into dst:
// dst[k] = op(init, src[0], ..., src[k]). Pass the operation's identity
// (0 for addition, 1 for multiplication) as init for the conventional
// inclusive scan. It returns the number of elements written.
//
// InclusiveScan panics if dst is shorter than src. dst and src may be the
// same slice.
func InclusiveScan[T any](p parcel.Policy, dst, src []T, init T, op func(a, b T) T) (int, error) {
	return prefixScan(p, dst, src, init, op, false, false).Wait()
}

// InclusiveScanAsync is [InclusiveScan] returning a [parcel.Future]
// immediately.
func InclusiveScanAsync[T any](p parcel.Policy, dst, src []T, init T, op func(a, b T) T) *parcel.Future[int] {
	return prefixScan(p.Async(), dst, src, init, op, false, false)
}

// InclusiveScanStreaming is [InclusiveScan] scheduled with the
// dependency-chained strategy.
func InclusiveScanStreaming[T any](p parcel.Policy, dst, src []T, init T, op func(a, b T) T) (int, error) {
	return prefixScan(p, dst, src, init, op, false, true).Wait()
}

// prefixScan wires both scan kinds into the core's three-phase
// partitioner. Phase 1 folds a chunk's elements without the carry, the
// carry chain threads init left to right, and phase 3 rewrites the chunk
// with its carry applied. The exclusive variant writes the accumulator
// before folding in the element; the inclusive variant after.
func prefixScan[T any](
	p parcel.Policy,
	dst, src []T,
	init T,
	op func(a, b T) T,
	exclusive, streaming bool,
) *parcel.Future[int] {
	if len(dst) < len(src) {
		panic("algo: scan destination shorter than source")
	}

	phase1 := func(start, cnt int) (T, error) {
		acc := src[start]
		for _, v := range src[start+1 : start+cnt] {
			acc = op(acc, v)
		}
		return acc, nil
	}
	combine := func(a, b T) (T, error) {
		return op(a, b), nil
	}
	phase3 := func(start, cnt int, carry T) (struct{}, error) {
		acc := carry
		for i := start; i < start+cnt; i++ {
			// Read before write so dst may alias src.
			v := src[i]
			if exclusive {
				dst[i] = acc
				acc = op(acc, v)
			} else {
				acc = op(acc, v)
				dst[i] = acc
			}
		}
		return struct{}{}, nil
	}
	finalize := func([]T, []struct{}) (int, error) {
		return len(src), nil
	}

	if streaming {
		return parcel.ScanStreaming(p, 0, len(src), init, phase1, combine, phase3, finalize)
	}
	return parcel.Scan(p, 0, len(src), init, phase1, combine, phase3, finalize)
}
