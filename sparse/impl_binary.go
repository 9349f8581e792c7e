// SPDX-License-Identifier: MIT

// Package sparse - Binary: {0,1} sparse matrix with per-row true counts.
//
// Purpose:
//   - Store connection bits in a store.ByteStore (only 1s are kept).
//   - Maintain trueCount[row] == number of 1s in row, updated inside the same
//     critical section as the bit write.
//   - Serve the overlap kernels (kernels.go) and the set algebra (set_ops.go).
//
// Locking (outermost first):
//   - mu: exclusive for structural changes (AppendRow, RemoveRow); shared otherwise.
//   - stripes[row&63]: held across one row's bit write and its trueCount delta.
//   - the backing store's own locks.
//
// Complexity quicksheet (k = stored bits):
//   - Set/Get: O(rank); TrueCount: O(1); Slice/Row: O(bits in the row).
//   - SparseIndices/Bitmap: O(k log k); CheckConsistency: O(k).

package sparse

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/katalvlaran/sparsity/dense"
	"github.com/katalvlaran/sparsity/internal/logging"
	"github.com/katalvlaran/sparsity/shape"
	"github.com/katalvlaran/sparsity/store"
)

// ---------- error context tags ----------

const (
	ctxSlice           = "Slice"
	ctxRow             = "Row"
	ctxColumn          = "Column"
	ctxTrueCount       = "TrueCount"
	ctxClearStatistics = "ClearStatistics"
	ctxAppendRow       = "AppendRow"
	ctxAppendDenseRow  = "AppendDenseRow"
	ctxSetRow          = "SetRow"
	ctxRemoveRow       = "RemoveRow"
	ctxToDense         = "ToDense"
	ctxEqualDense      = "EqualDense"
	ctxCheck           = "CheckConsistency"
)

const stripeCount = 64

// Binary is a sparse matrix restricted to {0,1}.
type Binary struct {
	mu sync.RWMutex
	st *store.ByteStore
	sh shape.Shape // current shape of st; replaced under mu.Lock

	stripes   [stripeCount]sync.Mutex
	trueCount []int // len == sh.Dim(0)

	log   *logging.Logger
	debug bool
}

// NewBinary creates an all-zero binary matrix. dims[0] may be 0; rows are then
// added with AppendRow. The volume must fit a 32-bit flat index.
//
// Inputs:
//   - dims: axis sizes; dims[0] >= 0, every other axis > 0.
//   - opts: WithOrder, WithLogger, WithDebugChecks.
//
// Returns:
//   - *Binary with no stored bits and every true count at 0.
//
// Errors:
//   - ErrInvalidDimensions for bad dims.
//   - ErrVolumeTooLarge when the volume exceeds 2^32.
//
// Complexity:
//   - Time O(rank + rows), Space O(rows).
func NewBinary(dims []int, opts ...Option) (*Binary, error) {
	o := gatherOptions(opts...)
	stOpts := []store.Option{store.WithOrder(o.order), store.WithLogger(o.logger)}
	if o.debug {
		stOpts = append(stOpts, store.WithDebugChecks())
	}
	st, err := store.NewByte(dims, stOpts...)
	if err != nil {
		return nil, matrixErrorf(kindBinary, ctxNew, err)
	}
	sh := st.Shape()
	if err = validateVolume(sh); err != nil {
		return nil, matrixErrorf(kindBinary, ctxNew, err)
	}

	return &Binary{
		st:        st,
		sh:        sh,
		trueCount: make([]int, sh.Dim(0)),
		log:       o.logger.WithComponent("binary").WithDims(sh.Dims()),
		debug:     o.debug,
	}, nil
}

func (b *Binary) stripe(row int) *sync.Mutex { return &b.stripes[row&(stripeCount-1)] }

func (b *Binary) lockAll() {
	for i := range b.stripes {
		b.stripes[i].Lock()
	}
}

func (b *Binary) unlockAll() {
	for i := len(b.stripes) - 1; i >= 0; i-- {
		b.stripes[i].Unlock()
	}
}

// Shape returns the current dimension descriptor.
func (b *Binary) Shape() shape.Shape {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.sh
}

// Dims returns a copy of the axis sizes.
func (b *Binary) Dims() []int { return b.Shape().Dims() }

// Rank returns the number of axes.
func (b *Binary) Rank() int { return b.Shape().Rank() }

// Rows returns the size of axis 0.
func (b *Binary) Rows() int { return b.Shape().Dim(0) }

// ---------- point access ----------

// Get returns the bit at coords.
func (b *Binary) Get(coords ...int) (byte, error) {
	v, err := b.st.Get(coords...)
	if err != nil {
		return 0, matrixErrorf(kindBinary, ctxGet, err)
	}

	return v, nil
}

// GetIndex returns the bit at a flat index.
func (b *Binary) GetIndex(index int) (byte, error) {
	b.mu.RLock()
	coords, err := b.coordsOf(index)
	b.mu.RUnlock()
	if err != nil {
		return 0, matrixErrorf(kindBinary, ctxGetIndex, err)
	}

	return b.Get(coords...)
}

// coordsOf validates a flat index and converts it. Caller holds mu.
func (b *Binary) coordsOf(index int) ([]int, error) {
	if err := b.sh.CheckIndex(index); err != nil {
		return nil, err
	}

	return b.sh.ComputeCoordinates(index)
}

// Set writes value (0 or 1) at coords and moves trueCount[coords[0]] by the
// resulting delta in the same critical section.
//
// A prefix shorter than the rank writes every cell below it (rank >= 2); the
// row's true count is then re-read from the store's maintained row sum.
//
// Inputs:
//   - value: 0 clears, 1 sets.
//   - coords: full coordinates, or a row prefix for a broadcast write.
//
// Errors:
//   - ErrNotBinary for value > 1.
//   - ErrRankMismatch / ErrOutOfRange for bad coordinates.
//   - ErrInconsistent when debug checks are on and the row disagrees.
//
// Complexity:
//   - Time O(rank) for a point write, O(cells below the prefix) for a broadcast.
func (b *Binary) Set(value byte, coords ...int) error {
	if err := validateBinary(value); err != nil {
		return matrixErrorf(kindBinary, ctxSet, err)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.sh.ValidatePrefix(coords); err != nil {
		return matrixErrorf(kindBinary, ctxSet, err)
	}
	if err := b.setLocked(value, coords); err != nil {
		return matrixErrorf(kindBinary, ctxSet, err)
	}

	return nil
}

// SetIndex is Set by flat index.
func (b *Binary) SetIndex(value byte, index int) error {
	if err := validateBinary(value); err != nil {
		return matrixErrorf(kindBinary, ctxSetIndex, err)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	coords, err := b.coordsOf(index)
	if err != nil {
		return matrixErrorf(kindBinary, ctxSetIndex, err)
	}
	if err = b.setLocked(value, coords); err != nil {
		return matrixErrorf(kindBinary, ctxSetIndex, err)
	}

	return nil
}

// setLocked applies one validated write. Caller holds mu (shared).
func (b *Binary) setLocked(value byte, coords []int) error {
	row := coords[0]
	st := b.stripe(row)
	st.Lock()
	defer st.Unlock()

	if len(coords) == b.sh.Rank() {
		old, err := b.st.Get(coords...)
		if err != nil {
			return err
		}
		if old == value {
			return nil
		}
		if err = b.st.Set(value, coords...); err != nil {
			return err
		}
		b.trueCount[row] += int(value) - int(old)
	} else {
		if err := b.st.Set(value, coords...); err != nil {
			return err
		}
		sum, err := b.st.RowSum(row)
		if err != nil {
			return err
		}
		b.trueCount[row] = int(sum)
	}
	if b.debug {
		return b.verifyRowLocked(row)
	}

	return nil
}

// rowBits counts the stored 1s of row by traversal and rejects any other value.
func (b *Binary) rowBits(row int) (int, error) {
	if b.sh.Rank() == 1 {
		v, err := b.st.Get(row)
		return int(v), err
	}
	n := 0
	var bad error
	err := b.st.WalkRow(row, func(inner []int, v byte) bool {
		if v != 1 {
			bad = fmt.Errorf("row %d at %v holds %d: %w", row, inner, v, ErrInconsistent)
			return false
		}
		n++
		return true
	})
	if err != nil {
		return 0, err
	}

	return n, bad
}

// verifyRowLocked compares trueCount[row] with the stored bits. Caller holds
// mu and the row's stripe.
func (b *Binary) verifyRowLocked(row int) error {
	n, err := b.rowBits(row)
	if err == nil && n != b.trueCount[row] {
		err = fmt.Errorf("row %d: true count %d, stored bits %d: %w", row, b.trueCount[row], n, ErrInconsistent)
	}
	if err != nil {
		b.log.LogInconsistency(context.Background(), "true count", err)
	}

	return err
}

// ---------- statistics ----------

// TrueCount returns the number of 1s in row. O(1).
func (b *Binary) TrueCount(row int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.sh.ValidatePrefix([]int{row}); err != nil {
		return 0, matrixErrorf(kindBinary, ctxTrueCount, err)
	}
	st := b.stripe(row)
	st.Lock()
	defer st.Unlock()

	return b.trueCount[row], nil
}

// TrueCounts returns a snapshot of every row's true count.
func (b *Binary) TrueCounts() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.lockAll()
	defer b.unlockAll()

	return slices.Clone(b.trueCount)
}

// ClearStatistics zeroes row: its true count and its stored bits together.
func (b *Binary) ClearStatistics(row int) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.sh.ValidatePrefix([]int{row}); err != nil {
		return matrixErrorf(kindBinary, ctxClearStatistics, err)
	}
	st := b.stripe(row)
	st.Lock()
	defer st.Unlock()
	if err := b.st.Set(0, row); err != nil {
		return matrixErrorf(kindBinary, ctxClearStatistics, err)
	}
	b.trueCount[row] = 0

	return nil
}

// CheckConsistency verifies every row's true count against its stored bits and
// the backing store's aggregates.
func (b *Binary) CheckConsistency() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.lockAll()
	defer b.unlockAll()
	for row := range b.trueCount {
		if err := b.verifyRowLocked(row); err != nil {
			return matrixErrorf(kindBinary, ctxCheck, err)
		}
	}
	if err := b.st.CheckAggregates(); err != nil {
		return matrixErrorf(kindBinary, ctxCheck, err)
	}

	return nil
}

// ---------- slices ----------

// Slice returns an independent copy of the sub-matrix below prefix.
// A full-rank prefix addresses a single cell and fails with ErrScalarSlice;
// results of rank above 2 fail with ErrUnsupported.
func (b *Binary) Slice(prefix ...int) (*store.ByteStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(prefix) == b.sh.Rank() {
		return nil, matrixErrorf(kindBinary, ctxSlice,
			fmt.Errorf("coords %v for rank %d: %w", prefix, b.sh.Rank(), ErrScalarSlice))
	}
	d, err := b.st.DimensionData(prefix...)
	if err != nil {
		return nil, matrixErrorf(kindBinary, ctxSlice, err)
	}

	return d.Sub, nil
}

// Row returns a copy of row as a rank-1 store. Rank 2.
func (b *Binary) Row(row int) (*store.ByteStore, error) {
	if err := validateRank2(b.Shape()); err != nil {
		return nil, matrixErrorf(kindBinary, ctxRow, err)
	}

	return b.Slice(row)
}

// Column returns a copy of column col as a rank-1 store of length Rows(). Rank 2.
// A matrix without rows yields an empty column.
func (b *Binary) Column(col int) (*store.ByteStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := validateRank2(b.sh); err != nil {
		return nil, matrixErrorf(kindBinary, ctxColumn, err)
	}
	if col < 0 || col >= b.sh.Dim(1) {
		return nil, matrixErrorf(kindBinary, ctxColumn, fmt.Errorf("col %d: %w", col, ErrOutOfRange))
	}
	out, err := store.NewByte([]int{b.sh.Dim(0)}) // zero rows give an empty column
	if err != nil {
		return nil, matrixErrorf(kindBinary, ctxColumn, err)
	}
	for _, r := range b.st.SparseIndices() {
		v, err := b.st.Get(r, col)
		if err != nil {
			return nil, matrixErrorf(kindBinary, ctxColumn, err)
		}
		if v == 1 {
			if err = out.Set(1, r); err != nil {
				return nil, matrixErrorf(kindBinary, ctxColumn, err)
			}
		}
	}

	return out, nil
}

// ---------- rows ----------

// AppendRow grows axis 0 by one and stores a copy of row (nil appends an
// all-zero row). row must hold only 0/1 and match the inner dims. Rank >= 2.
func (b *Binary) AppendRow(row *store.ByteStore) error {
	cp, count, err := binaryRowCopy(row)
	if err != nil {
		return matrixErrorf(kindBinary, ctxAppendRow, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	grown, err := b.sh.WithRows(b.sh.Dim(0) + 1)
	if err != nil {
		return matrixErrorf(kindBinary, ctxAppendRow, err)
	}
	if err = validateVolume(grown); err != nil {
		return matrixErrorf(kindBinary, ctxAppendRow, err)
	}
	if err = b.st.AppendRow(cp); err != nil {
		return matrixErrorf(kindBinary, ctxAppendRow, err)
	}
	b.sh = b.st.Shape()
	b.trueCount = append(b.trueCount, count)
	b.log.LogRowChange(context.Background(), ctxAppendRow, len(b.trueCount)-1, len(b.trueCount), nil)

	return nil
}

// AppendDenseRow appends a row given as one 0/1 byte per column. Rank 2.
func (b *Binary) AppendDenseRow(bits []byte) error {
	sh := b.Shape()
	if err := validateRank2(sh); err != nil {
		return matrixErrorf(kindBinary, ctxAppendDenseRow, err)
	}
	if err := validateVecLen("bits", len(bits), sh.Dim(1)); err != nil {
		return matrixErrorf(kindBinary, ctxAppendDenseRow, err)
	}
	row, err := store.NewByte([]int{len(bits)})
	if err != nil {
		return matrixErrorf(kindBinary, ctxAppendDenseRow, err)
	}
	for c, v := range bits {
		if err = validateBinary(v); err != nil {
			return matrixErrorf(kindBinary, ctxAppendDenseRow, fmt.Errorf("col %d: %w", c, err))
		}
		if v == 1 {
			if err = row.Set(1, c); err != nil {
				return matrixErrorf(kindBinary, ctxAppendDenseRow, err)
			}
		}
	}

	return b.AppendRow(row)
}

// SetRow replaces row with a copy of src (nil clears it). Rank >= 2.
func (b *Binary) SetRow(row int, src *store.ByteStore) error {
	cp, count, err := binaryRowCopy(src)
	if err != nil {
		return matrixErrorf(kindBinary, ctxSetRow, err)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err = b.sh.ValidatePrefix([]int{row}); err != nil {
		return matrixErrorf(kindBinary, ctxSetRow, err)
	}
	st := b.stripe(row)
	st.Lock()
	defer st.Unlock()
	if err = b.st.SetRow(row, cp); err != nil {
		return matrixErrorf(kindBinary, ctxSetRow, err)
	}
	b.trueCount[row] = count

	return nil
}

// RemoveRow deletes row; later rows shift down by one. Rank >= 2.
func (b *Binary) RemoveRow(row int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.st.RemoveRow(row); err != nil {
		return matrixErrorf(kindBinary, ctxRemoveRow, err)
	}
	b.sh = b.st.Shape()
	b.trueCount = slices.Delete(b.trueCount, row, row+1)
	b.log.LogRowChange(context.Background(), ctxRemoveRow, row, len(b.trueCount), nil)

	return nil
}

// binaryRowCopy clones row and checks that it holds only 1s. It returns the
// copy (nil for a nil row) and its bit count.
func binaryRowCopy(row *store.ByteStore) (*store.ByteStore, int, error) {
	if row == nil {
		return nil, 0, nil
	}
	cp := row.Clone()
	var bad error
	cp.Walk(func(coords []int, v byte) bool {
		if err := validateBinary(v); err != nil {
			bad = fmt.Errorf("row at %v: %w", coords, err)
			return false
		}
		return true
	})
	if bad != nil {
		return nil, 0, bad
	}

	return cp, int(cp.Sum()), nil
}

// ---------- snapshots ----------

// SparseIndices returns the flat index of every stored 1, ascending.
func (b *Binary) SparseIndices() []int {
	bm := b.Bitmap()
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out
}

// ToDense returns a dense float64 copy. Rank 2 with at least one row.
func (b *Binary) ToDense() (*dense.Dense, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := validateRank2(b.sh); err != nil {
		return nil, matrixErrorf(kindBinary, ctxToDense, err)
	}
	d, err := dense.NewDense(b.sh.Dim(0), b.sh.Dim(1))
	if err != nil {
		return nil, matrixErrorf(kindBinary, ctxToDense, err)
	}
	b.st.Walk(func(c []int, v byte) bool {
		err = d.Set(c[0], c[1], float64(v))
		return err == nil
	})
	if err != nil {
		return nil, matrixErrorf(kindBinary, ctxToDense, err)
	}

	return d, nil
}

// EqualDense reports whether d holds exactly the bits of b: the same dims,
// 1 wherever b stores a 1 and 0 elsewhere. Rank 2. A dims mismatch is a
// plain false, not an error.
//
// Complexity: O(rows*cols).
func (b *Binary) EqualDense(d *dense.Dense) (bool, error) {
	if d == nil {
		return false, matrixErrorf(kindBinary, ctxEqualDense, ErrNilMatrix)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := validateRank2(b.sh); err != nil {
		return false, matrixErrorf(kindBinary, ctxEqualDense, err)
	}
	if d.Rows() != b.sh.Dim(0) || d.Cols() != b.sh.Dim(1) {
		return false, nil
	}
	equal := true
	var err error
	d.Do(func(i, j int, v float64) bool {
		var bit byte
		if bit, err = b.st.Get(i, j); err != nil {
			return false
		}
		equal = float64(bit) == v
		return equal
	})
	if err != nil {
		return false, matrixErrorf(kindBinary, ctxEqualDense, err)
	}

	return equal, nil
}

// String renders a rank-2 matrix with rows one bracketed line each, the
// way dense.Dense does. Other ranks, and a matrix without rows, render as
// their shape.
func (b *Binary) String() string {
	d, err := b.ToDense()
	if err != nil {
		return fmt.Sprintf("Binary(%s)", b.Shape())
	}

	return d.String()
}
