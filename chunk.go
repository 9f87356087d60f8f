package parcel

// ChunkInfo describes one unit of scheduled work: a contiguous sub-range
// of the input. Chunks are numbered from zero in position order, cover the
// whole range exactly once each, and are immutable once planned.
type ChunkInfo struct {
	// Index is the chunk's position among the invocation's chunks.
	Index int

	// Start is the absolute start position of the sub-range.
	Start int

	// Len is the number of elements in the sub-range. Always > 0.
	Len int
}

// plan splits [first, first+count) into chunks according to the policy's
// hints. The plan is computed once, before any task is submitted.
//
// Sizing falls back through: explicit chunk size, chunker function, then
// ceil(count / 2*workers) — twice as many chunks as workers smooths out
// uneven per-element cost without drowning the runtime in tiny tasks.
// plan panics if count is negative; a count of zero yields no chunks.
func plan(p Policy, first, count int) []ChunkInfo {
	if count < 0 {
		panic("parcel: negative range count")
	}
	if count == 0 {
		return nil
	}
	if !p.parallel() {
		return []ChunkInfo{{Index: 0, Start: first, Len: count}}
	}

	size := p.chunkSize
	if size == 0 && p.chunker != nil {
		size = p.chunker(count, p.workers())
	}
	if size == 0 {
		batches := 2 * p.workers()
		size = (count + batches - 1) / batches
	}
	if size < 1 {
		size = 1
	}

	n := (count + size - 1) / size
	chunks := make([]ChunkInfo, 0, n)
	for start := 0; start < count; start += size {
		length := size
		if rem := count - start; rem < length {
			length = rem
		}
		chunks = append(chunks, ChunkInfo{
			Index: len(chunks),
			Start: first + start,
			Len:   length,
		})
	}
	return chunks
}
