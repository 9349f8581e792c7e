// SPDX-License-Identifier: MIT
package sparse_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/sparsity/dense"
	"github.com/katalvlaran/sparsity/sparse"
	"github.com/stretchr/testify/require"
)

// TestRightVecSumAtNZOverlap checks the overlap of a diagonal pair matrix with an alternating input.
func TestRightVecSumAtNZOverlap(t *testing.T) {
	b := diagonalPair(t)
	results := make([]int, 5)
	require.NoError(t, b.RightVecSumAtNZ([]int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0}, results))
	require.Equal(t, []int{1, 1, 1, 1, 1}, results) // one even column per row
}

// TestRightVecSumAtNZAccumulates ensures the kernel adds into a pre-filled
// buffer and leaves rows without any 1 untouched.
func TestRightVecSumAtNZAccumulates(t *testing.T) {
	b, err := sparse.NewBinary([]int{3, 4}) // 3x4, all zero
	require.NoError(t, err)
	require.NoError(t, b.Set(1, 1, 2)) // single bit at (1,2)

	results := []int{7, 7, 7}                                         // caller-owned running totals
	require.NoError(t, b.RightVecSumAtNZ([]int{1, 1, 1, 1}, results)) // add one overlap pass
	require.Equal(t, []int{7, 8, 7}, results)                         // only row 1 grows

	require.NoError(t, b.RightVecSumAtNZ([]int{0, 0, 5, 0}, results)) // second pass on the same buffer
	require.Equal(t, []int{7, 13, 7}, results)                        // totals keep accumulating
}

// TestRightVecSumAtNZSparseAccumulates covers the active-column kernel on a pre-filled buffer.
func TestRightVecSumAtNZSparseAccumulates(t *testing.T) {
	b := diagonalPair(t)
	results := []int{10, 20, 30, 40, 50}
	require.NoError(t, b.RightVecSumAtNZSparse([]int{0, 1, 1}, results)) // duplicate 1 counts once
	require.Equal(t, []int{11, 21, 30, 40, 50}, results)                 // rows 0 and 1 each hit one active column
}

// TestRightVecSumAtNZErrors verifies shape and rank validation of every kernel.
func TestRightVecSumAtNZErrors(t *testing.T) {
	b := diagonalPair(t)
	require.ErrorIs(t, b.RightVecSumAtNZ(make([]int, 9), make([]int, 5)), sparse.ErrDimensionMismatch)  // short input
	require.ErrorIs(t, b.RightVecSumAtNZ(make([]int, 10), make([]int, 4)), sparse.ErrDimensionMismatch) // short results
	require.ErrorIs(t, b.RightVecSumAtNZSparse([]int{10}, make([]int, 5)), sparse.ErrOutOfRange)        // active column past Cols()

	r3, err := sparse.NewBinary([]int{2, 2, 2}) // rank 3 has no row/column kernel
	require.NoError(t, err)
	require.ErrorIs(t, r3.RightVecSumAtNZ(make([]int, 2), make([]int, 2)), sparse.ErrUnsupported)
}

// TestRightVecSumAtNZThreshold checks that the threshold zeroes accumulated
// values of occupied rows only.
func TestRightVecSumAtNZThreshold(t *testing.T) {
	b := diagonalPair(t)
	require.NoError(t, b.Set(1, 2, 0)) // row 2 now holds columns 0, 2 and 7
	results := make([]int, 5)
	require.NoError(t, b.RightVecSumAtNZThreshold([]int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0}, results, 1.5))
	require.Equal(t, []int{0, 0, 2, 0, 0}, results) // only row 2 reaches 2

	// an empty row keeps its pre-filled value even below the threshold
	empty, err := sparse.NewBinary([]int{2, 3})
	require.NoError(t, err)
	require.NoError(t, empty.Set(1, 0, 0))
	pre := []int{1, 1}
	require.NoError(t, empty.RightVecSumAtNZThreshold([]int{1, 0, 0}, pre, 5))
	require.Equal(t, []int{0, 1}, pre) // row 0 accumulates to 2 and is zeroed
}

// randomBinary fills a rows×cols matrix with density p using rng.
func randomBinary(t testing.TB, rng *rand.Rand, rows, cols int, p float64) *sparse.Binary {
	t.Helper()
	b, err := sparse.NewBinary([]int{rows, cols})
	require.NoError(t, err)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < p {
				require.NoError(t, b.Set(1, r, c))
			}
		}
	}

	return b
}

// TestKernelMatchesDense compares every kernel with a dense double loop on
// random matrices and inputs.
func TestKernelMatchesDense(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		rows, cols := 1+rng.Intn(30), 1+rng.Intn(40)
		t.Run(fmt.Sprintf("%dx%d", rows, cols), func(t *testing.T) {
			b := randomBinary(t, rng, rows, cols, 0.2)
			input := make([]int, cols)
			var active []int
			for c := range input {
				input[c] = rng.Intn(5) - 1
				if rng.Intn(2) == 0 {
					active = append(active, c)
				}
			}
			d, err := b.ToDense()
			require.NoError(t, err)
			want, err := dense.MatVecInt(d, input) // dense reference
			require.NoError(t, err)

			got := make([]int, rows)
			require.NoError(t, b.RightVecSumAtNZ(input, got))
			require.Equal(t, want, got)

			// threshold on a fresh buffer: occupied rows below it drop to 0
			threshold := float64(rng.Intn(4))
			thr := make([]int, rows)
			require.NoError(t, b.RightVecSumAtNZThreshold(input, thr, threshold))
			counts := b.TrueCounts() // a row is occupied iff it holds a 1
			for r := range want {
				if counts[r] > 0 && float64(want[r]) < threshold {
					want[r] = 0
				}
			}
			require.Equal(t, want, thr)

			par := make([]int, rows)
			require.NoError(t, b.RightVecSumAtNZParallel(context.Background(), input, par, 3))
			require.Equal(t, got, par)

			onehot := make([]int, cols)
			for _, c := range active {
				onehot[c] = 1
			}
			wantSparse, err := dense.MatVecInt(d, onehot)
			require.NoError(t, err)
			gotSparse := make([]int, rows)
			require.NoError(t, b.RightVecSumAtNZSparse(active, gotSparse))
			require.Equal(t, wantSparse, gotSparse)
		})
	}
}

// TestRightVecSumAtNZParallelCancelled ensures a cancelled context surfaces as context.Canceled.
func TestRightVecSumAtNZParallelCancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := randomBinary(t, rng, 64, 16, 0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel before dispatch
	err := b.RightVecSumAtNZParallel(ctx, make([]int, 16), make([]int, 64), 0)
	require.ErrorIs(t, err, context.Canceled)
}

// TestRightVecSumAtNZParallelAccumulates checks that the parallel kernel adds
// into the buffer and leaves it alone on an empty matrix.
func TestRightVecSumAtNZParallelAccumulates(t *testing.T) {
	b, err := sparse.NewBinary([]int{4, 4}) // no stored bits
	require.NoError(t, err)
	results := []int{1, 2, 3, 4}
	require.NoError(t, b.RightVecSumAtNZParallel(context.Background(), make([]int, 4), results, 2))
	require.Equal(t, []int{1, 2, 3, 4}, results) // nothing occupied, nothing added

	require.NoError(t, b.Set(1, 3, 0))                                                                 // bit at (3,0)
	require.NoError(t, b.RightVecSumAtNZParallel(context.Background(), []int{6, 0, 0, 0}, results, 2)) // add 6 to row 3
	require.Equal(t, []int{1, 2, 3, 10}, results)
}
