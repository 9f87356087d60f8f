package parcel

import (
	"errors"
	"fmt"
)

// ChunkError wraps an error together with the [ChunkInfo] of the chunk
// whose callable produced it. Partitioned calls wrap every chunk failure
// in a ChunkError so callers can attribute errors to the exact sub-range
// that failed; the failures from one invocation are reported joined via
// [errors.Join], one entry per failing chunk.
type ChunkError struct {
	Chunk ChunkInfo
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d [%d:%d) failed: %v",
		e.Chunk.Index, e.Chunk.Start, e.Chunk.Start+e.Chunk.Len, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// IsChunkError reports whether err (or any error in its chain) is a [*ChunkError].
func IsChunkError(err error) bool {
	if err == nil {
		return false
	}
	var ce *ChunkError
	return errors.As(err, &ce)
}

// ChunkOf extracts the [ChunkInfo] from the first [*ChunkError] in err's
// chain. Returns false if no ChunkError is found.
func ChunkOf(err error) (ChunkInfo, bool) {
	if err == nil {
		return ChunkInfo{}, false
	}

	var ce *ChunkError
	if errors.As(err, &ce) {
		return ce.Chunk, true
	}
	return ChunkInfo{}, false
}

// CauseOf unwraps the first [*ChunkError] in err's chain and returns its
// underlying cause. If err is not a ChunkError, it is returned as-is.
// Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var ce *ChunkError
	if errors.As(err, &ce) {
		return ce.Err
	}

	return err
}

// AllChunkErrors recursively collects every [*ChunkError] from err's chain,
// including errors wrapped via [errors.Join]. Returns nil if none are found.
func AllChunkErrors(err error) []*ChunkError {
	if err == nil {
		return nil
	}

	var out []*ChunkError
	collectChunkErrors(err, &out)
	return out
}

func collectChunkErrors(err error, out *[]*ChunkError) {
	switch e := err.(type) {
	case *ChunkError:
		*out = append(*out, e)

	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collectChunkErrors(sub, out)
		}

	case interface{ Unwrap() error }:
		collectChunkErrors(e.Unwrap(), out)
	}
}
