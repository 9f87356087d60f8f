package parcel

import (
	"math/rand"
	"testing"
)

// verifyCover checks the chunk-plan invariant: contiguous chunks covering
// [first, first+count) exactly once each, indexed in position order.
func verifyCover(t *testing.T, chunks []ChunkInfo, first, count int) {
	t.Helper()

	if count == 0 {
		if len(chunks) != 0 {
			t.Fatalf("expected no chunks for empty range, got %d", len(chunks))
		}
		return
	}

	next := first
	total := 0
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d has Index %d", i, c.Index)
		}
		if c.Start != next {
			t.Fatalf("chunk %d starts at %d, want %d (gap or overlap)", i, c.Start, next)
		}
		if c.Len <= 0 {
			t.Fatalf("chunk %d has non-positive length %d", i, c.Len)
		}
		next = c.Start + c.Len
		total += c.Len
	}
	if total != count {
		t.Fatalf("chunks cover %d elements, want %d", total, count)
	}
	if next != first+count {
		t.Fatalf("last chunk ends at %d, want %d", next, first+count)
	}
}

func TestPlanCoversRangeExactly(t *testing.T) {
	policies := map[string]Policy{
		"seq":          Seq,
		"par":          Par,
		"par_unseq":    ParUnseq,
		"chunk_1":      Par.WithChunkSize(1),
		"chunk_3":      Par.WithChunkSize(3),
		"chunk_1000":   Par.WithChunkSize(1000),
		"workers_1":    Par.WithWorkers(1),
		"workers_16":   Par.WithWorkers(16),
		"chunker_frac": Par.WithChunker(func(count, workers int) int { return count / (3*workers + 1) }),
	}
	counts := []int{0, 1, 2, 3, 7, 64, 100, 1000, 10007}
	firsts := []int{0, 5, 1000}

	for _, p := range policies {
		for _, count := range counts {
			for _, first := range firsts {
				chunks := plan(p, first, count)
				verifyCover(t, chunks, first, count)
			}
		}
	}
}

func TestPlanRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		count := rng.Intn(5000)
		first := rng.Intn(100)
		p := Par.WithWorkers(1 + rng.Intn(32))
		switch rng.Intn(3) {
		case 0:
			p = p.WithChunkSize(1 + rng.Intn(500))
		case 1:
			div := 1 + rng.Intn(64)
			p = p.WithChunker(func(count, workers int) int { return count / div })
		}
		verifyCover(t, plan(p, first, count), first, count)
	}
}

func TestPlanSequentialSingleChunk(t *testing.T) {
	chunks := plan(Seq, 10, 5000)
	if len(chunks) != 1 {
		t.Fatalf("sequential plan produced %d chunks, want 1", len(chunks))
	}
	if chunks[0].Start != 10 || chunks[0].Len != 5000 {
		t.Fatalf("unexpected chunk %+v", chunks[0])
	}
}

func TestPlanChunkerClampedToOne(t *testing.T) {
	// A chunker returning zero or negative must not produce an infinite
	// or empty plan.
	p := Par.WithChunker(func(count, workers int) int { return -5 })
	verifyCover(t, plan(p, 0, 10), 0, 10)
	if got := len(plan(p, 0, 10)); got != 10 {
		t.Fatalf("expected 10 single-element chunks, got %d", got)
	}
}

func TestPlanNegativeCountPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative count")
		}
	}()
	plan(Par, 0, -1)
}
