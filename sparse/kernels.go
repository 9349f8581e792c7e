// SPDX-License-Identifier: MIT

// Package sparse - overlap kernels of Binary.
//
// Every kernel computes, for each row r of a rank-2 Binary,
//
//	results[r] += Σ_c input[c] * bit(r, c)
//
// visiting only the rows present in the backing store's outer index set and,
// inside a row, only its stored 1s. Cost is O(occupied rows + stored bits),
// never O(rows*cols). Each overlap is added to results[r], so a caller can
// accumulate several inputs into one buffer; rows without any 1 are left as
// the caller gave them.
//
// The kernels only read the matrix. Concurrent calls are safe as long as each
// call owns its results buffer.

package sparse

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
)

const (
	ctxRightVecSum         = "RightVecSumAtNZ"
	ctxRightVecSumSparse   = "RightVecSumAtNZSparse"
	ctxRightVecSumParallel = "RightVecSumAtNZParallel"
)

// RightVecSumAtNZ adds the overlap of every occupied row with a dense input
// vector to results.
//
// Inputs:
//   - input: dense vector of length Cols().
//   - results: caller-owned buffer of length Rows(); read and written.
//
// Returns:
//   - nil on success, results[r] += Σ_c input[c]*bit(r, c) for occupied rows.
//
// Complexity:
//   - Time O(occupied rows + stored bits), Space O(1).
//
// Errors:
//   - ErrUnsupported for rank != 2.
//   - ErrDimensionMismatch for wrong input or results lengths.
func (b *Binary) RightVecSumAtNZ(input, results []int) error {
	if err := b.rightVecSum(input, results, nil); err != nil {
		return matrixErrorf(kindBinary, ctxRightVecSum, err)
	}

	return nil
}

// RightVecSumAtNZThreshold is RightVecSumAtNZ followed by zeroing the
// accumulated result of every occupied row that is below threshold. Rows
// without any 1 are not touched.
func (b *Binary) RightVecSumAtNZThreshold(input, results []int, threshold float64) error {
	if err := b.rightVecSum(input, results, &threshold); err != nil {
		return matrixErrorf(kindBinary, ctxRightVecSum, err)
	}

	return nil
}

func (b *Binary) rightVecSum(input, results []int, threshold *float64) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkKernelArgs(len(input), results); err != nil {
		return err
	}
	for _, r := range b.st.SparseIndices() {
		acc, err := b.overlapRow(r, func(c int) int { return input[c] })
		if err != nil {
			return err
		}
		results[r] = applyThreshold(results[r]+acc, threshold)
	}

	return nil
}

// RightVecSumAtNZSparse is the overlap kernel for a 0/1 input given as the
// list of its active columns: results[r] counts the 1s of row r that fall on
// an active column, added to results[r]. Duplicate active columns count once.
func (b *Binary) RightVecSumAtNZSparse(active, results []int) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkKernelArgs(-1, results); err != nil {
		return matrixErrorf(kindBinary, ctxRightVecSumSparse, err)
	}
	cols := b.sh.Dim(1)
	on := roaring.New()
	for _, c := range active {
		if c < 0 || c >= cols {
			return matrixErrorf(kindBinary, ctxRightVecSumSparse,
				fmt.Errorf("active column %d: %w", c, ErrOutOfRange))
		}
		on.Add(uint32(c))
	}
	for _, r := range b.st.SparseIndices() {
		acc, err := b.overlapRow(r, func(c int) int {
			if on.Contains(uint32(c)) {
				return 1
			}
			return 0
		})
		if err != nil {
			return matrixErrorf(kindBinary, ctxRightVecSumSparse, err)
		}
		results[r] += acc
	}

	return nil
}

// RightVecSumAtNZParallel is RightVecSumAtNZ with the occupied rows split into
// contiguous chunks scored by up to workers goroutines (DefaultWorkers when
// workers <= 0). Each goroutine writes only the results of its own rows.
// Cancelling ctx stops the remaining chunks and returns ctx's error; results
// then holds the additions of the rows scored so far.
func (b *Binary) RightVecSumAtNZParallel(ctx context.Context, input, results []int, workers int) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkKernelArgs(len(input), results); err != nil {
		return matrixErrorf(kindBinary, ctxRightVecSumParallel, err)
	}
	rows := b.st.SparseIndices()

	chunk := (len(rows) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(rows); lo += chunk {
		part := rows[lo:min(lo+chunk, len(rows))]
		g.Go(func() error {
			for _, r := range part {
				if err := gctx.Err(); err != nil {
					return err
				}
				acc, err := b.overlapRow(r, func(c int) int { return input[c] })
				if err != nil {
					return err
				}
				results[r] += acc // row r belongs to this chunk only
			}
			return nil
		})
	}
	err := g.Wait()
	b.log.LogFanOut(ctx, ctxRightVecSumParallel, len(rows), workers, err)
	if err != nil {
		return matrixErrorf(kindBinary, ctxRightVecSumParallel, err)
	}

	return nil
}

// checkKernelArgs validates rank and buffer lengths; inputLen < 0 skips the
// input check. Caller holds mu.
func (b *Binary) checkKernelArgs(inputLen int, results []int) error {
	if err := validateRank2(b.sh); err != nil {
		return err
	}
	if inputLen >= 0 {
		if err := validateVecLen("input", inputLen, b.sh.Dim(1)); err != nil {
			return err
		}
	}

	return validateVecLen("results", len(results), b.sh.Dim(0))
}

// overlapRow sums weight(c) over the stored 1s of row r.
func (b *Binary) overlapRow(r int, weight func(c int) int) (int, error) {
	acc := 0
	err := b.st.WalkRow(r, func(inner []int, v byte) bool {
		acc += weight(inner[0]) * int(v)
		return true
	})

	return acc, err
}

func applyThreshold(acc int, threshold *float64) int {
	if threshold != nil && float64(acc) < *threshold {
		return 0
	}

	return acc
}
