// Package sparsity is an in-memory engine for multi-dimensional sparse arrays:
// connection matrices, permanence tables and similar structures where almost
// every cell holds the default value.
//
// 🚀 What is in the box?
//
//	A thread-safe library built from four layers:
//		• shape  : dimension descriptor, flat-index ↔ coordinate arithmetic
//		• store  : recursive sparse tree with per-level running sums
//		• sparse : generic, binary and object matrices; overlap kernels
//		• dense  : dense reference matrix and a nested-slice adapter
//
// ✨ Guarantees
//
//   - Sparsity: a cell reads as the default if and only if it is not stored.
//   - Aggregates: every level's running sum equals a full traversal, always.
//   - True counts: a binary row's population count never disagrees with its bits,
//     even under concurrent writers to the same row.
//   - Copies: every slice, row or column handed out is independently owned.
//
// Layout:
//
//	shape/            : Shape, Order, ComputeIndex, ComputeCoordinates, Indexes
//	store/            : Store[T], ByteStore, FloatStore, DimensionData
//	sparse/           : Matrix[T], Binary, Object[T], RightVecSumAtNZ*
//	dense/            : Dense, MatVec, DimensionData over [][]T / [][][]T
//	internal/logging/ : slog wrapper shared by the containers
//
// Quick start:
//
//	b, _ := sparse.NewBinary([]int{5, 10})
//	_ = b.Set(1, 0, 0)
//	_ = b.Set(1, 0, 5)
//	results := make([]int, 5)
//	_ = b.RightVecSumAtNZ(input, results) // overlap of each row with input
//
// Errors are package sentinels wrapped with call-site context; match them with
// errors.Is. Nothing panics on user input; option constructors panic on
// nonsensical values.
package sparsity
