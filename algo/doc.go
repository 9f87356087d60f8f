// Package algo provides policy-driven slice algorithms built on the
// parcel partitioning core.
//
// Every function takes a [parcel.Policy] as its first argument and yields
// the same result under every policy:
//
//	pos, err := algo.Find(parcel.Par, data, 42)
//	sum, err := algo.Reduce(parcel.Seq, data, 0, func(a, b int) int { return a + b })
//
// The sequential logic of each algorithm is the direct textbook recipe;
// what this package adds is the wiring into [parcel.Partition],
// [parcel.PartitionIndexed], [parcel.Scan], and [parcel.Token], so that
// chunked execution, early exit, failure aggregation, and the
// synchronous-versus-deferred duality all come from the core.
//
// Search-style functions ([Find], [AnyOf], [AdjacentFind], [Equal],
// [IsPartitioned]) share a [parcel.Token] across chunks: a chunk that can
// no longer improve the answer abandons its remaining elements, and the
// minimum published index reproduces sequential semantics exactly.
//
// Reduction and scan functions require their operation to be associative;
// it need not be commutative. Chunking changes the grouping of
// applications, never their order, so non-associative operations (notably
// floating-point addition, to the last bit) may differ between policies.
//
// Representative entry points have Async forms ([FindAsync],
// [ReduceAsync], [ExclusiveScanAsync], ...) returning a [parcel.Future]
// immediately; X(p, ...) and XAsync(p, ...).Wait() are interchangeable.
package algo
