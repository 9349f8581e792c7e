// SPDX-License-Identifier: MIT
// Package shape_test verifies index arithmetic and bounds policy of shape.Shape.
package shape_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/katalvlaran/sparsity/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustShape builds a Shape or fails the test.
func mustShape(t *testing.T, dims []int, opts ...shape.Option) shape.Shape {
	t.Helper()
	s, err := shape.New(dims, opts...)
	require.NoError(t, err)

	return s
}

// TestNewInvalidDimensions ensures New rejects empty, negative and zero inner dims.
func TestNewInvalidDimensions(t *testing.T) {
	for _, dims := range [][]int{nil, {}, {-1, 3}, {3, 0}, {2, 3, -4}} {
		_, err := shape.New(dims)
		require.ErrorIs(t, err, shape.ErrInvalidDimensions, "dims=%v", dims)
	}

	// axis 0 may be empty: the matrix grows by rows later
	s, err := shape.New([]int{0, 7})
	require.NoError(t, err)
	require.Equal(t, 0, s.Volume())
	require.Empty(t, s.Indexes())
}

// TestMultiples verifies the stride of every axis under both orderings.
func TestMultiples(t *testing.T) {
	rm := mustShape(t, []int{2, 3, 4})                // row-major by default
	require.Equal(t, []int{12, 4, 1}, rm.Multiples()) // last axis fastest

	cm := mustShape(t, []int{2, 3, 4}, shape.WithOrder(shape.ColumnMajor))
	require.Equal(t, []int{1, 2, 6}, cm.Multiples()) // first axis fastest
	require.Equal(t, shape.ColumnMajor, cm.Order())
}

// TestDimsAreCopied ensures a Shape shares no memory with its input or output slices.
func TestDimsAreCopied(t *testing.T) {
	dims := []int{4, 5}
	s := mustShape(t, dims)
	dims[0] = 99 // mutate the input
	require.Equal(t, []int{4, 5}, s.Dims())

	out := s.Dims()
	out[1] = 42 // mutate the output
	require.Equal(t, 5, s.Dim(1))
}

// TestBijection round-trips random coordinates for ranks 1..5 under both orderings.
func TestBijection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, order := range []shape.Order{shape.RowMajor, shape.ColumnMajor} {
		for rank := 1; rank <= 5; rank++ {
			t.Run(fmt.Sprintf("%s/rank=%d", order, rank), func(t *testing.T) {
				dims := make([]int, rank)
				for i := range dims {
					dims[i] = 1 + rng.Intn(5)
				}
				s := mustShape(t, dims, shape.WithOrder(order))

				seen := make(map[int]bool, s.Volume())
				for _, idx := range s.Indexes() {
					coords, err := s.ComputeCoordinates(idx)
					require.NoError(t, err)
					back, err := s.ComputeIndex(coords)
					require.NoError(t, err)
					require.Equal(t, idx, back)
					require.NoError(t, s.Validate(coords))
					require.False(t, seen[idx], "duplicate flat index %d", idx)
					seen[idx] = true
				}
				require.Len(t, seen, s.Volume())
			})
		}
	}
}

// TestIndexesOrder checks enumeration order, which visits coordinates lexicographically.
func TestIndexesOrder(t *testing.T) {
	rm := mustShape(t, []int{2, 3})
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, rm.Indexes())

	cm := mustShape(t, []int{2, 3}, shape.WithOrder(shape.ColumnMajor))
	got := cm.Indexes()
	require.Equal(t, []int{0, 2, 4, 1, 3, 5}, got)
	sort.Ints(got)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
}

// TestComputeIndexBounds pins the bounds policy of ComputeIndex against Validate.
func TestComputeIndexBounds(t *testing.T) {
	s := mustShape(t, []int{5, 10})

	_, err := s.ComputeIndex([]int{1}) // one coord on rank 2
	require.ErrorIs(t, err, shape.ErrRankMismatch)

	_, err = s.ComputeIndex([]int{5, 0}) // row 5 of 5
	require.ErrorIs(t, err, shape.ErrOutOfRange)
	require.Contains(t, err.Error(), "[5 0]")
	require.Contains(t, err.Error(), "[5 10]")

	_, err = s.ComputeIndex([]int{0, -1}) // negative coords are always rejected
	require.ErrorIs(t, err, shape.ErrOutOfRange)

	// the last axis is the caller's responsibility: (0,12) aliases (1,2)
	idx, err := s.ComputeIndex([]int{0, 12})
	require.NoError(t, err)
	require.Equal(t, 12, idx)

	// Validate closes that gap
	require.ErrorIs(t, s.Validate([]int{0, 12}), shape.ErrOutOfRange)
}

// TestComputeCoordinates decodes flat indices and checks CheckIndex.
func TestComputeCoordinates(t *testing.T) {
	s := mustShape(t, []int{5, 10})
	c, err := s.ComputeCoordinates(38) // 38 = 3*10 + 8
	require.NoError(t, err)
	require.Equal(t, []int{3, 8}, c)

	// past the volume: no validation, overflow lands on axis 0
	c, err = s.ComputeCoordinates(73)
	require.NoError(t, err)
	require.Equal(t, []int{7, 3}, c)

	_, err = s.ComputeCoordinates(-1)
	require.ErrorIs(t, err, shape.ErrOutOfRange)

	require.NoError(t, s.CheckIndex(49))                      // last cell
	require.ErrorIs(t, s.CheckIndex(50), shape.ErrOutOfRange) // volume
}

// TestWithRowsAndInner derives grown and inner shapes without touching the receiver.
func TestWithRowsAndInner(t *testing.T) {
	s := mustShape(t, []int{0, 4})
	g, err := s.WithRows(3)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, g.Dims())
	require.Equal(t, []int{0, 4}, s.Dims(), "receiver must stay unchanged")

	_, err = s.WithRows(-1) // negative row count
	require.ErrorIs(t, err, shape.ErrInvalidDimensions)

	in, err := mustShape(t, []int{2, 3, 4}).InnerShape()
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, in.Dims())

	_, err = mustShape(t, []int{4}).InnerShape() // rank 1 has no inner shape
	require.ErrorIs(t, err, shape.ErrInvalidDimensions)
}

// TestHelpers covers Reverse and CopyInnerArray.
func TestHelpers(t *testing.T) {
	in := []int{1, 2, 3}
	assert.Equal(t, []int{3, 2, 1}, shape.Reverse(in))
	assert.Equal(t, []int{1, 2, 3}, in) // input untouched
	assert.Equal(t, []int{2, 3}, shape.CopyInnerArray(in))
	assert.Equal(t, []int{}, shape.CopyInnerArray([]int{9}))
}

// TestEqualAndString compares shapes by dims and order.
func TestEqualAndString(t *testing.T) {
	a := mustShape(t, []int{2, 3})
	b := mustShape(t, []int{2, 3})
	c := mustShape(t, []int{2, 3}, shape.WithOrder(shape.ColumnMajor))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c)) // same dims, other order
	require.Equal(t, "[2 3] row-major", a.String())
	require.True(t, shape.Shape{}.IsZero())
}

// TestWithOrderPanicsOnUnknown ensures an unknown order panics with a fixed message.
func TestWithOrderPanicsOnUnknown(t *testing.T) {
	require.PanicsWithValue(t, "shape: WithOrder: unknown major order", func() {
		shape.WithOrder(shape.Order(9))
	})
}
