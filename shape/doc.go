// SPDX-License-Identifier: MIT

// Package shape implements the coordinate/index model shared by every
// container in this module.
//
// A Shape is an ordered list of axis sizes plus a major ordering. From it the
// package derives the dimension multiples, the per-axis strides that turn an
// N-dimensional coordinate vector into a single flat index:
//
//	flat = Σ coords[i] * multiples[i]
//
// Under RowMajor (the default) the last axis varies fastest; under ColumnMajor
// the first axis does. Both orderings yield a bijection between the Cartesian
// product of the axis ranges and [0, Volume()).
//
// Shape holds no data and never allocates on the hot path except where a new
// coordinate slice is returned. All methods are safe for concurrent use: a Shape
// is immutable after New.
//
// Bounds policy:
//   - ComputeIndex checks the rank, rejects negative coordinates, and checks the
//     upper bound of every axis except the last one. Callers own the last-axis
//     bound (it is normally implied by their own loop).
//   - Validate checks every axis and is what containers call before a write.
//   - ComputeIndexNoCheck skips all checks for hot loops.
package shape
