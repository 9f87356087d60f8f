package parcel_test

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/baxromumarov/parcel"
	conciter "github.com/sourcegraph/conc/iter"
	concpool "github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
)

// ─────────────────────────────────────────────────────────────────────────────
// Chunked sum: Partition against hand-rolled chunking on errgroup and conc
// ─────────────────────────────────────────────────────────────────────────────

const compareSize = 1_000_000

func compareData() []int {
	data := make([]int, compareSize)
	for i := range data {
		data[i] = i & 1023
	}
	return data
}

func chunkBounds(n, chunks, i int) (int, int) {
	lo := n * i / chunks
	hi := n * (i + 1) / chunks
	return lo, hi
}

func BenchmarkChunkedSum_Parcel(b *testing.B) {
	data := compareData()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := parcel.Partition(parcel.Par, 0, len(data), chunkSum(data), sumOfParts).Wait()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkChunkedSum_Errgroup(b *testing.B) {
	data := compareData()
	chunks := 2 * runtime.GOMAXPROCS(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		parts := make([]int, chunks)
		var g errgroup.Group
		for c := 0; c < chunks; c++ {
			c := c
			g.Go(func() error {
				lo, hi := chunkBounds(len(data), chunks, c)
				total := 0
				for _, v := range data[lo:hi] {
					total += v
				}
				parts[c] = total
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			b.Fatal(err)
		}
		total := 0
		for _, p := range parts {
			total += p
		}
		_ = total
	}
}

func BenchmarkChunkedSum_ConcPool(b *testing.B) {
	data := compareData()
	chunks := 2 * runtime.GOMAXPROCS(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var total atomic.Int64
		p := concpool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))
		for c := 0; c < chunks; c++ {
			c := c
			p.Go(func() {
				lo, hi := chunkBounds(len(data), chunks, c)
				sum := 0
				for _, v := range data[lo:hi] {
					sum += v
				}
				total.Add(int64(sum))
			})
		}
		p.Wait()
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Per-element map: algo-style Transform against conc/iter
// ─────────────────────────────────────────────────────────────────────────────

func BenchmarkElementMap_Parcel(b *testing.B) {
	data := compareData()
	dst := make([]int, len(data))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := parcel.Partition(parcel.Par, 0, len(data),
			func(start, n int) (struct{}, error) {
				for j := start; j < start+n; j++ {
					dst[j] = data[j] * 2
				}
				return struct{}{}, nil
			},
			func([]struct{}) (struct{}, error) { return struct{}{}, nil },
		).Wait()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkElementMap_ConcIter(b *testing.B) {
	data := compareData()
	dst := make([]int, len(data))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		conciter.ForEachIdx(data, func(j int, v *int) {
			dst[j] = *v * 2
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Fan-out overhead: N tiny chunks
// ─────────────────────────────────────────────────────────────────────────────

func BenchmarkFanOut_Parcel(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			p := parcel.Par.WithChunkSize(1)
			for i := 0; i < b.N; i++ {
				_, err := parcel.Partition(p, 0, n,
					func(start, cnt int) (int, error) { return cnt, nil },
					sumOfParts,
				).Wait()
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFanOut_Errgroup(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				var g errgroup.Group
				for j := 0; j < n; j++ {
					g.Go(func() error { return nil })
				}
				_ = g.Wait()
			}
		})
	}
}
