// SPDX-License-Identifier: MIT

// Package store implements the sparse backing store: a recursive, per-axis
// tree that keeps only non-default scalars and maintains the aggregate sum of
// every level incrementally.
//
// Layout (rank 3, dims [R, C, D]):
//
//	root ── row r ── column c ── {d: value, ...}
//	 sum      sum       sum
//
// Absence of a key at any level means every cell below it holds the zero value.
// A stored scalar is never zero: writing zero removes the leaf and every
// ancestor level left empty, so "occupied" and "non-zero" are the same question.
// Every write moves each ancestor aggregate by exactly the write's delta; sums
// are never recomputed during a write.
//
// Two scalar variants share the implementation: ByteStore (small integers, used
// by the binary matrix) and FloatStore. Aggregates are kept as float64 for both
// so a long row of bytes cannot overflow its own sum.
//
// Concurrency:
//   - Writers to different rows (axis-0 keys) proceed in parallel; each row is
//     guarded by one of 64 striped locks, held for the value write and all of its
//     aggregate deltas.
//   - The outer map and the total sum sit behind a short internal lock.
//   - Structural operations (AppendRow, SetRow, RemoveRow, Fill) are exclusive.
//   - Callbacks passed to Walk/WalkRow run under read locks and must not call
//     back into the same Store.
//
// Slices returned by Row and DimensionData are independent copies.
package store
