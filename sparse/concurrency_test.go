// SPDX-License-Identifier: MIT
package sparse_test

import (
	"context"
	"sync"
	"testing"

	"github.com/katalvlaran/sparsity/sparse"
	"github.com/katalvlaran/sparsity/store"
	"github.com/stretchr/testify/require"
)

// TestBinaryConcurrentWriters has one goroutine per row toggle bits while
// others hammer shared rows; true counts must match stored bits afterwards.
func TestBinaryConcurrentWriters(t *testing.T) {
	const rows, cols, writers = 16, 64, 8
	b, err := sparse.NewBinary([]int{rows, cols})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, writers*2)
	for w := 0; w < writers; w++ {
		wg.Add(2)
		go func(w int) { // private rows w and w+writers
			defer wg.Done()
			for i := 0; i < 500; i++ {
				r := w + (i%2)*writers
				if err := b.Set(byte(i%3%2), r, i%cols); err != nil {
					errs <- err
					return
				}
			}
		}(w)
		go func(w int) { // every writer contends on row 0
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if err := b.Set(byte((i+w)%2), 0, (i*7+w)%cols); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait() // all writers done
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.NoError(t, b.CheckConsistency())
}

// TestBinaryReadersDuringAppend runs kernels and snapshots while rows are appended.
func TestBinaryReadersDuringAppend(t *testing.T) {
	const cols = 32
	b, err := sparse.NewBinary([]int{0, cols})
	require.NoError(t, err)
	ones, err := store.NewByte([]int{cols})
	require.NoError(t, err)
	require.NoError(t, ones.Fill(1))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = b.AppendRow(ones) // ones has the right inner dims
		}
	}()
	input := make([]int, cols)
	for c := range input {
		input[c] = 1
	}
	for i := 0; i < 50; i++ {
		rows := b.Rows()
		results := make([]int, rows)
		err := b.RightVecSumAtNZParallel(context.Background(), input, results, 4)
		if err != nil {
			// rows grew between Rows() and the call
			require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
			continue
		}
		for _, v := range results {
			require.Equal(t, cols, v)
		}
		_ = b.SparseIndices()
		_ = b.TrueCounts()
	}
	wg.Wait()
	require.Equal(t, 200, b.Rows())
	require.NoError(t, b.CheckConsistency())
}

// TestMatrixAndObjectConcurrent runs disjoint writers and readers on Matrix and Object.
func TestMatrixAndObjectConcurrent(t *testing.T) {
	m, err := sparse.NewMatrix[int]([]int{100})
	require.NoError(t, err)
	o, err := sparse.NewObject[int]([]int{100})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < 100; i += 4 {
				_ = m.Set(i+1, i) // non-zero, so always stored
				_ = o.Set(i, i)   // present even for i == 0
				_ = m.SparseIndices()
				_ = o.SparseIndices()
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, 100, m.Len())
	require.Equal(t, 100, o.Len())
}
