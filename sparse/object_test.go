// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/sparsity/sparse"
	"github.com/stretchr/testify/require"
)

type cell struct {
	label string
	perm  []float64
}

// TestObjectDescendingIndices checks that Object reports present indices high to low.
func TestObjectDescendingIndices(t *testing.T) {
	m, err := sparse.NewObject[*cell]([]int{3, 3})
	require.NoError(t, err)
	for _, i := range []int{4, 0, 8, 2} {
		require.NoError(t, m.SetIndex(&cell{label: "x"}, i))
	}
	require.Equal(t, []int{8, 4, 2, 0}, m.SparseIndices())
	require.Equal(t, 4, m.Len())
}

// TestObjectGetSetDelete covers presence, zero values, idempotent Delete and bounds.
func TestObjectGetSetDelete(t *testing.T) {
	m, err := sparse.NewObject[cell]([]int{2, 5})
	require.NoError(t, err)

	_, ok, err := m.Get(1, 4)
	require.NoError(t, err)
	require.False(t, ok) // absent cell

	require.NoError(t, m.Set(cell{label: "a", perm: []float64{0.5}}, 1, 4))
	v, ok, err := m.Get(1, 4)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a", v.label)

	v, ok, err = m.GetIndex(9) // flat 9 is (1,4)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{0.5}, v.perm)

	// a zero value is still present
	require.NoError(t, m.Set(cell{}, 0, 0))
	_, ok, err = m.Get(0, 0)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, m.Delete(1, 4)) // remove
	require.NoError(t, m.Delete(1, 4)) // second delete is a no-op
	require.Equal(t, []int{0}, m.SparseIndices())

	require.ErrorIs(t, m.Set(cell{}, 2, 0), sparse.ErrOutOfRange) // row 2 of 2
	_, _, err = m.GetIndex(10)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	require.ErrorIs(t, m.Delete(0), sparse.ErrRankMismatch) // one coord on rank 2
}

// TestObjectInterfaceNil ensures a stored nil interface reads back as present.
func TestObjectInterfaceNil(t *testing.T) {
	m, err := sparse.NewObject[any]([]int{2})
	require.NoError(t, err)
	require.NoError(t, m.Set(nil, 1)) // nil any
	v, ok, err := m.Get(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, v)
}
