// SPDX-License-Identifier: MIT

// Package shape - dimension descriptor, multiples and index arithmetic.
//
// Purpose:
//   - Convert coordinate vectors to flat indices and back in O(rank).
//   - Keep the dimension descriptor immutable; growth of axis 0 yields a new Shape.
//
// Complexity quicksheet:
//   - New: O(rank); ComputeIndex/ComputeCoordinates: O(rank); Indexes: O(Volume*rank).

package shape

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxComputeIndex       = "ComputeIndex"
	ctxComputeCoordinates = "ComputeCoordinates"
	ctxValidate           = "Validate"
	ctxNew                = "New"
	ctxWithRows           = "WithRows"
	ctxInner              = "InnerShape"
)

// Shape is an immutable dimension descriptor with its derived multiples.
//   - dims[i] is the size of axis i; dims[0] may be 0 (a matrix that grows by rows).
//   - multiples[i] is the flat-index stride of axis i under order.
type Shape struct {
	dims      []int // axis sizes, owned
	multiples []int // per-axis strides, owned
	order     Order // major ordering
}

// New builds a Shape from dims.
//
// Errors:
//   - ErrInvalidDimensions when dims is empty, dims[0] < 0, or dims[i] <= 0 for i > 0.
//
// Complexity: O(rank).
func New(dims []int, opts ...Option) (Shape, error) {
	if len(dims) == 0 {
		return Shape{}, coordErrorf(ctxNew, nil, dims, ErrInvalidDimensions)
	}
	if dims[0] < 0 {
		return Shape{}, coordErrorf(ctxNew, nil, dims, ErrInvalidDimensions)
	}
	for i := 1; i < len(dims); i++ {
		if dims[i] <= 0 {
			return Shape{}, coordErrorf(ctxNew, nil, dims, ErrInvalidDimensions)
		}
	}
	o := gatherOptions(opts...)

	d := make([]int, len(dims))
	copy(d, dims) // detach from caller memory

	return Shape{dims: d, multiples: multiplesOf(d, o.order), order: o.order}, nil
}

// multiplesOf derives the stride of every axis.
// Row-major: multiples[last] = 1, multiples[i] = multiples[i+1]*dims[i+1].
// Column-major: multiples[0] = 1, multiples[i] = multiples[i-1]*dims[i-1].
func multiplesOf(dims []int, order Order) []int {
	n := len(dims)
	m := make([]int, n)
	if order == ColumnMajor {
		m[0] = 1
		for i := 1; i < n; i++ {
			m[i] = m[i-1] * dims[i-1]
		}

		return m
	}
	m[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		m[i] = m[i+1] * dims[i+1]
	}

	return m
}

// Rank returns the number of axes.
func (s Shape) Rank() int { return len(s.dims) }

// Order returns the major ordering.
func (s Shape) Order() Order { return s.order }

// Dims returns a copy of the axis sizes.
func (s Shape) Dims() []int { return append([]int(nil), s.dims...) }

// Dim returns the size of axis i; it panics if i is not a valid axis, like a slice index.
func (s Shape) Dim(i int) int { return s.dims[i] }

// Multiples returns a copy of the per-axis strides.
func (s Shape) Multiples() []int { return append([]int(nil), s.multiples...) }

// Volume returns the number of addressable cells (product of all axis sizes).
func (s Shape) Volume() int {
	v := 1
	for _, d := range s.dims {
		v *= d
	}

	return v
}

// IsZero reports whether s is the zero Shape (never built by New).
func (s Shape) IsZero() bool { return len(s.dims) == 0 }

// Equal reports whether s and o have the same dims and order.
func (s Shape) Equal(o Shape) bool {
	if s.order != o.order || len(s.dims) != len(o.dims) {
		return false
	}
	for i := range s.dims {
		if s.dims[i] != o.dims[i] {
			return false
		}
	}

	return true
}

// String renders e.g. "[5 10] row-major".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprint(s.dims))
	b.WriteByte(' ')
	b.WriteString(s.order.String())

	return b.String()
}

// ComputeIndex converts coords to a flat index.
//
// Checks (in order):
//   - len(coords) == Rank(), else ErrRankMismatch;
//   - coords[i] >= 0 on every axis, else ErrOutOfRange;
//   - coords[i] < dims[i] on every axis except the last, else ErrOutOfRange.
//
// The last axis is not upper-bounded here: callers guarantee it, normally
// through the loop that produced the coordinate. An unchecked last coordinate
// past its bound aliases a cell of the next row. Use Validate first when the
// coordinates come from outside.
//
// Complexity: O(rank).
func (s Shape) ComputeIndex(coords []int) (int, error) {
	if len(coords) != len(s.dims) {
		return 0, coordErrorf(ctxComputeIndex, coords, s.dims, ErrRankMismatch)
	}
	last := len(coords) - 1
	for i, c := range coords {
		if c < 0 || (i < last && c >= s.dims[i]) {
			return 0, coordErrorf(ctxComputeIndex, coords, s.dims, ErrOutOfRange)
		}
	}

	return s.ComputeIndexNoCheck(coords), nil
}

// ComputeIndexNoCheck converts coords to a flat index without any validation.
// Precondition: len(coords) == Rank() and every coordinate is in range.
func (s Shape) ComputeIndexNoCheck(coords []int) int {
	idx := 0
	for i, c := range coords {
		idx += c * s.multiples[i]
	}

	return idx
}

// Validate checks rank and the full bounds of every axis, last axis included.
func (s Shape) Validate(coords []int) error {
	if len(coords) != len(s.dims) {
		return coordErrorf(ctxValidate, coords, s.dims, ErrRankMismatch)
	}

	return s.ValidatePrefix(coords)
}

// ValidatePrefix checks that coords is a non-empty prefix (len <= Rank) whose
// every coordinate lies inside its axis.
func (s Shape) ValidatePrefix(coords []int) error {
	if len(coords) == 0 || len(coords) > len(s.dims) {
		return coordErrorf(ctxValidate, coords, s.dims, ErrRankMismatch)
	}
	for i, c := range coords {
		if c < 0 || c >= s.dims[i] {
			return coordErrorf(ctxValidate, coords, s.dims, ErrOutOfRange)
		}
	}

	return nil
}

// ComputeCoordinates converts a flat index back to coordinates.
// The index is not checked against Volume(): an index past the end yields an
// overflowing coordinate on the most significant axis. Negative indices fail
// with ErrOutOfRange.
//
// Complexity: O(rank).
func (s Shape) ComputeCoordinates(index int) ([]int, error) {
	if index < 0 {
		return nil, fmt.Errorf("shape.%s(%d) dims %v: %w", ctxComputeCoordinates, index, s.dims, ErrOutOfRange)
	}
	n := len(s.dims)
	coords := make([]int, n)
	rem := index
	visit := func(i int) {
		m := s.multiples[i]
		if m == 0 { // only possible under column-major with an empty axis 0
			return
		}
		coords[i] = rem / m
		rem %= m
	}
	if s.order == ColumnMajor {
		for i := n - 1; i >= 0; i-- { // most significant axis is the last one
			visit(i)
		}

		return coords, nil
	}
	for i := 0; i < n; i++ {
		visit(i)
	}

	return coords, nil
}

// CheckIndex validates a flat index against [0, Volume()).
func (s Shape) CheckIndex(index int) error {
	if index < 0 || index >= s.Volume() {
		return fmt.Errorf("shape.CheckIndex(%d) dims %v: %w", index, s.dims, ErrOutOfRange)
	}

	return nil
}

// WithRows returns a copy of s whose axis 0 has size rows.
// Multiples are recomputed, so under ColumnMajor every flat index changes.
func (s Shape) WithRows(rows int) (Shape, error) {
	if rows < 0 {
		return Shape{}, fmt.Errorf("shape.%s(%d): %w", ctxWithRows, rows, ErrInvalidDimensions)
	}
	d := s.Dims()
	d[0] = rows

	return Shape{dims: d, multiples: multiplesOf(d, s.order), order: s.order}, nil
}

// InnerShape drops axis 0 and keeps the ordering. Fails for rank-1 shapes.
func (s Shape) InnerShape() (Shape, error) {
	if len(s.dims) < 2 {
		return Shape{}, coordErrorf(ctxInner, nil, s.dims, ErrInvalidDimensions)
	}

	return New(CopyInnerArray(s.dims), WithOrder(s.order))
}

// Indexes enumerates every addressable flat index by a depth-first walk over
// all axes (axis 0 outermost). Under RowMajor the result is 0..Volume()-1; under
// ColumnMajor it is the matching permutation.
func (s Shape) Indexes() []int {
	vol := s.Volume()
	out := make([]int, 0, vol)
	if vol == 0 {
		return out
	}
	coords := make([]int, len(s.dims))
	var walk func(axis int)
	walk = func(axis int) {
		if axis == len(s.dims) {
			out = append(out, s.ComputeIndexNoCheck(coords))
			return
		}
		for c := 0; c < s.dims[axis]; c++ {
			coords[axis] = c
			walk(axis + 1)
		}
	}
	walk(0)

	return out
}
