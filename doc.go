// Package parcel provides the chunk-parallel dispatch core for slice
// algorithms in Go.
//
// Parallel algorithms in the style of the C++ standard library share one
// hard problem that has nothing to do with any individual algorithm: given
// an execution policy, a range, and a couple of callables, decide whether
// to run inline, fan out over chunks, or hand back a future; split the
// range into chunks sized for the available workers; run each chunk on a
// task runtime; and fold per-chunk outcomes (values, errors, panics,
// early-exit signals, scan carries) into one well-defined result. parcel
// implements exactly that machinery. The algorithm bodies built on top of
// it live in the [github.com/baxromumarov/parcel/algo] subpackage.
//
// # Policies
//
// Every entry point takes a [Policy] value describing how to execute:
//
//	pos, err := algo.Find(parcel.Par, data, 42)
//
// The package values [Seq], [Par], and [ParUnseq] are the starting points.
// Policies are values; the builder methods ([Policy.Async],
// [Policy.WithChunkSize], [Policy.WithWorkers], [Policy.WithRuntime],
// [Policy.WithErrorMode], [Policy.WithOnEvent]) return modified copies, so
// a configured policy can be stored once and shared freely:
//
//	p := parcel.Par.WithWorkers(8).WithChunkSize(4096)
//
// Parallelism and blocking are orthogonal: any policy can be made
// asynchronous with [Policy.Async], in which case partitioned calls return
// immediately and all waiting happens on the returned [Future].
//
// # Partitioners
//
// [Partition] is the general "map over independent chunks, then merge"
// scheduler: it computes a chunk plan once up front, submits one task per
// chunk, waits for every task, and invokes the reduce callable exactly once
// over the chunk results in position order. [PartitionIndexed] additionally
// hands each chunk its logical base offset, for algorithms that report
// positions. [PartitionWithCleanup] releases the successful chunks'
// results when some other chunk failed.
//
// [Scan] and [ScanStreaming] are the three-phase partitioners for prefix
// scans, where each chunk's output depends on the running total carried
// from every chunk strictly before it. Scan runs all local reductions,
// barriers, folds the carries sequentially, then runs all output phases.
// ScanStreaming issues each output phase as soon as its carry is known,
// pipelining the tail of the scan behind the head. Both produce identical
// results for any associative combine operation.
//
// # Early Exit
//
// Search-style algorithms stop chunks early through a shared [Token]: a
// lock-free "best known index" register. Workers publish candidate
// positions with [Token.CancelAt], which takes the minimum of the current
// best and the candidate, so the final [Token.BestIndex] is the
// lexicographically first match no matter which chunk found its match
// first. Cancellation is cooperative; correctness depends only on the
// value observed after all chunks have joined.
//
// # Failure Handling
//
// Errors returned by chunk callables are wrapped in [*ChunkError] for
// attribution and joined via [errors.Join] once every chunk has been
// drained: an invocation never abandons an in-flight chunk, and the
// aggregate error carries one entry per failing chunk. Use [IsChunkError],
// [ChunkOf], [CauseOf], and [AllChunkErrors] to inspect them.
//
// Panics are not errors: a panic in a chunk is captured with its stack as
// a [*PanicError], all remaining chunks are drained, and the panic is then
// re-raised on the calling goroutine (or re-raised by [Future.Wait] under
// an asynchronous policy). A panic always takes precedence over an
// aggregate error from the same invocation.
//
// Policies carry an [ErrorMode]. Under [Aggregate] (the default) failures
// are collected as above. Under [Abort], the default for [ParUnseq] since
// its unordered interleaving makes safe unwinding impossible to guarantee,
// nothing is recovered and any chunk failure terminates the process.
//
// # Runtimes
//
// Chunk tasks are scheduled through the [Runtime] interface. The default
// runtime spawns one goroutine per chunk. [Pool] is a fixed-size worker
// pool with a bounded queue and [PoolStats] counters; [Limiter] wraps any
// runtime and bounds the number of in-flight tasks. Attach either with
// [Policy.WithRuntime].
//
// # Observability
//
// The library does not log. [Policy.WithOnEvent] registers a hook that
// receives a [ChunkEvent] for every chunk state change (scheduled, done,
// errored, panicked), and [Pool.Stats] exposes counters, so callers can
// wire scheduling activity into whatever telemetry they use.
package parcel
