// SPDX-License-Identifier: MIT

// Package sparse provides the sparse matrix containers built on the shape and
// store packages:
//
//   - Matrix[T]: a generic sparse matrix over a flat map keyed by flat index.
//     Unset cells read as a configurable default; writing the default deletes.
//   - Binary: a {0,1} matrix backed by a store.ByteStore. It maintains a per-row
//     population count (true count) and offers the overlap kernel
//     RightVecSumAtNZ, plus union, containment and intersection over the
//     occupied-index sets (roaring bitmaps).
//   - Object[T]: a single-level ordered map of arbitrary values keyed by flat
//     index; no aggregates, no value restriction.
//
// Ordering of SparseIndices:
//   - Matrix and Binary enumerate occupied flat indices in ascending order.
//   - Object enumerates them in descending order.
//
// Concurrency:
//   - Every container is safe for concurrent use.
//   - Binary serializes writes per row (a striped lock held for the cell write
//     and the true-count delta), so writers to different rows run in parallel
//     and the true count never disagrees with the stored bits.
//   - The overlap kernels only read the matrix; results buffers belong to the
//     caller, one buffer per concurrent call.
//
// Slices (Slice, Row, Column) are independent copies.
package sparse
