// SPDX-License-Identifier: MIT
package dense_test

import (
	"testing"

	"github.com/katalvlaran/sparsity/dense"
	"github.com/stretchr/testify/require"
)

// TestDimensionDataRank2 slices a [][]int by row and by cell.
func TestDimensionDataRank2(t *testing.T) {
	src := [][]int{{1, 2, 3}, {4, 5, 6}}

	d, err := dense.DimensionData[int](src, 1)
	require.NoError(t, err)
	require.Equal(t, 1, d.Rank)
	require.Equal(t, []int{4, 5, 6}, d.Vector)
	d.Vector[0] = 0 // mutate the copy
	require.Equal(t, 4, src[1][0], "result must be a copy")

	d, err = dense.DimensionData[int](src, 0, 2) // full prefix: one cell
	require.NoError(t, err)
	require.Equal(t, 0, d.Rank)
	require.Equal(t, 3, d.Scalar)

	_, err = dense.DimensionData[int](src, 2) // row 2 of 2
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = dense.DimensionData[int](src, 0, 0, 0) // prefix longer than rank
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
	_, err = dense.DimensionData[int](src) // empty prefix
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

// TestDimensionDataRank3 slices a [][][]byte at every prefix length.
func TestDimensionDataRank3(t *testing.T) {
	src := [][][]byte{
		{{1, 0}, {0, 1}},
		{{1, 1}, {0, 0}},
	}
	d, err := dense.DimensionData[byte](src, 1) // one plane
	require.NoError(t, err)
	require.Equal(t, 2, d.Rank)
	require.Equal(t, [][]byte{{1, 1}, {0, 0}}, d.Matrix)
	d.Matrix[0][0] = 9 // mutate the copy
	require.Equal(t, byte(1), src[1][0][0])

	d, err = dense.DimensionData[byte](src, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 1}, d.Vector)

	d, err = dense.DimensionData[byte](src, 0, 1, 1)
	require.NoError(t, err)
	require.Equal(t, byte(1), d.Scalar)
}

// TestDimensionDataDenseAndUnsupported covers *Dense sources and rejected source types.
func TestDimensionDataDenseAndUnsupported(t *testing.T) {
	m, err := dense.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	d, err := dense.DimensionData[float64](m, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, d.Vector)

	_, err = dense.DimensionData[int](m, 1) // *Dense holds float64 only
	require.ErrorIs(t, err, dense.ErrUnsupported)

	_, err = dense.DimensionData[int]([]int{1, 2}, 0)
	require.ErrorIs(t, err, dense.ErrUnsupported, "rank-1 source")
	_, err = dense.DimensionData[int]([][][][]int{}, 0)
	require.ErrorIs(t, err, dense.ErrUnsupported, "rank-4 source")
	_, err = dense.DimensionData[float64]([][]int{{1}}, 0)
	require.ErrorIs(t, err, dense.ErrUnsupported, "element type mismatch")
}

// TestDimensionDataDenseCopies ensures the *Dense path copies rows and checks
// bounds through the matrix's own accessors.
func TestDimensionDataDenseCopies(t *testing.T) {
	m, err := dense.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	d, err := dense.DimensionData[float64](m, 0)
	require.NoError(t, err)
	d.Vector[1] = 99     // mutate the copy
	v, err := m.At(0, 1) // source untouched
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	d, err = dense.DimensionData[float64](m, 1, 1) // scalar
	require.NoError(t, err)
	require.Equal(t, 0, d.Rank)
	require.Equal(t, 4.0, d.Scalar)

	_, err = dense.DimensionData[float64](m, 2) // row 2 of 2
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = dense.DimensionData[float64](m, 0, 2) // column 2 of 2
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = dense.DimensionData[float64]((*dense.Dense)(nil), 0)
	require.ErrorIs(t, err, dense.ErrNilMatrix)
}
