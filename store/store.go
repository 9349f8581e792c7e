// SPDX-License-Identifier: MIT

// Package store - Store[T]: coordinate-addressed sparse tree with maintained sums.
//
// Complexity quicksheet (k = stored scalars, r = rank):
//   - Get/Set (point): O(r); Set (broadcast): O(cells filled).
//   - Sum/RowSum: O(1); AggregateSum/Count/CheckAggregates: O(k).
//   - Row/DimensionData/Clone: O(k below the prefix).

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/katalvlaran/sparsity/internal/logging"
	"github.com/katalvlaran/sparsity/shape"
)

// ---------- error context tags ----------

const (
	ctxNew           = "New"
	ctxGet           = "Get"
	ctxSet           = "Set"
	ctxRow           = "Row"
	ctxRowSum        = "RowSum"
	ctxAppendRow     = "AppendRow"
	ctxSetRow        = "SetRow"
	ctxRemoveRow     = "RemoveRow"
	ctxFill          = "Fill"
	ctxDimensionData = "DimensionData"
	ctxWalkRow       = "WalkRow"
	ctxCheck         = "CheckAggregates"
)

// stripeCount is the number of row locks; a power of two.
const stripeCount = 64

// Store is a sparse N-dimensional container of scalars.
type Store[T Scalar] struct {
	shapeMu sync.RWMutex // exclusive for structural changes; shared otherwise
	shape   shape.Shape
	dims    []int // cached shape.Dims(), replaced together with shape

	stripes [stripeCount]sync.RWMutex // row locks: value write + its aggregate deltas

	rootMu sync.RWMutex // guards root's own map and root.sum
	root   *level[T]

	log   *logging.Logger
	debug bool
}

// ByteStore is the small-integer variant.
type ByteStore = Store[byte]

// FloatStore is the floating-point variant.
type FloatStore = Store[float64]

// Data is the result of DimensionData: a scalar when the prefix had full rank,
// a freshly materialized sub-store otherwise.
type Data[T Scalar] struct {
	Scalar T
	Sub    *Store[T]
}

// IsScalar reports whether d carries a scalar rather than a sub-store.
func (d Data[T]) IsScalar() bool { return d.Sub == nil }

// New creates an empty Store with the given dims.
// dims[0] may be 0 (rows are appended later); other axes must be positive.
func New[T Scalar](dims []int, opts ...Option) (*Store[T], error) {
	o := gatherOptions(opts...)
	sh, err := shape.New(dims, shape.WithOrder(o.order))
	if err != nil {
		return nil, storeErrorf(ctxNew, err)
	}

	o.logger = o.logger.WithComponent("store").WithDims(sh.Dims())

	return newWithShape[T](sh, o), nil
}

// NewByte creates an empty ByteStore.
func NewByte(dims []int, opts ...Option) (*ByteStore, error) { return New[byte](dims, opts...) }

// NewFloat creates an empty FloatStore.
func NewFloat(dims []int, opts ...Option) (*FloatStore, error) { return New[float64](dims, opts...) }

func newWithShape[T Scalar](sh shape.Shape, o options) *Store[T] {
	return &Store[T]{
		shape: sh,
		dims:  sh.Dims(),
		root:  newLevel[T](sh.Rank() == 1),
		log:   o.logger,
		debug: o.debug,
	}
}

// ---------- locking helpers ----------

func (s *Store[T]) stripe(row int) *sync.RWMutex { return &s.stripes[row&(stripeCount-1)] }

// rlockAll takes a consistent read view of the whole tree.
func (s *Store[T]) rlockAll() {
	s.shapeMu.RLock()
	for i := range s.stripes {
		s.stripes[i].RLock()
	}
}

func (s *Store[T]) runlockAll() {
	for i := len(s.stripes) - 1; i >= 0; i-- {
		s.stripes[i].RUnlock()
	}
	s.shapeMu.RUnlock()
}

// rowNode returns the depth-1 node of row, or nil. Rank >= 2 only.
// The caller holds the row's stripe.
func (s *Store[T]) rowNode(row int) *level[T] {
	s.rootMu.RLock()
	n := s.root.children[row]
	s.rootMu.RUnlock()

	return n
}

// ---------- shape accessors ----------

// Shape returns the current dimension descriptor.
func (s *Store[T]) Shape() shape.Shape {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()

	return s.shape
}

// Dims returns a copy of the axis sizes.
func (s *Store[T]) Dims() []int {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()

	return slices.Clone(s.dims)
}

// Rank returns the number of axes.
func (s *Store[T]) Rank() int {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()

	return len(s.dims)
}

// Rows returns the size of axis 0.
func (s *Store[T]) Rows() int {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()

	return s.dims[0]
}

// ---------- point access ----------

// Get returns the scalar at coords, or zero when any level on the path is absent.
// coords must have full rank and lie inside every axis.
func (s *Store[T]) Get(coords ...int) (T, error) {
	var zero T
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	if err := s.shape.Validate(coords); err != nil {
		return zero, storeErrorf(ctxGet, err)
	}
	st := s.stripe(coords[0])
	st.RLock()
	defer st.RUnlock()

	return s.getLocked(coords), nil
}

func (s *Store[T]) getLocked(coords []int) T {
	if len(s.dims) == 1 {
		s.rootMu.RLock()
		defer s.rootMu.RUnlock()
		return s.root.values[coords[0]]
	}
	n := s.rowNode(coords[0])
	if n == nil {
		var zero T
		return zero
	}

	return n.get(coords[1:])
}

// Set writes value at coords.
//
// With full-rank coords this is a point write: zero removes the cell (and any
// ancestor left empty), non-zero creates missing levels. With a shorter prefix
// every cell below the prefix is set to value (broadcast fill), or the whole
// sub-row is cleared when value is zero. Every ancestor aggregate moves by the
// exact delta.
//
// Inputs:
//   - value: the value to store; zero means absent.
//   - coords: 1..Rank() coordinates, each validated.
//
// Errors:
//   - ErrRankMismatch for no coords or too many.
//   - ErrOutOfRange for a coordinate outside its axis.
//
// Complexity:
//   - Time O(rank) for a point write, O(cells below the prefix) for a broadcast.
//   - Only the stripe of coords[0] is locked, so writers to other rows proceed.
func (s *Store[T]) Set(value T, coords ...int) error {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	if err := s.shape.ValidatePrefix(coords); err != nil {
		return storeErrorf(ctxSet, err)
	}
	st := s.stripe(coords[0])
	st.Lock()
	defer st.Unlock()

	s.setLocked(value, coords)
	if s.debug {
		if err := s.verifyRowLocked(coords[0]); err != nil {
			s.log.LogInconsistency(context.Background(), "row aggregate", err)
			return storeErrorf(ctxSet, err)
		}
	}

	return nil
}

// setLocked applies a write; the caller holds the row's stripe exclusively.
func (s *Store[T]) setLocked(value T, coords []int) float64 {
	if len(s.dims) == 1 {
		s.rootMu.Lock()
		defer s.rootMu.Unlock()
		return s.root.set(s.dims, coords, value)
	}

	row := coords[0]
	n := s.rowNode(row)
	created := false
	if n == nil {
		if value == 0 {
			return 0
		}
		n = newLevel[T](len(s.dims) == 2)
		created = true
	}
	delta := n.set(s.dims[1:], coords[1:], value)

	s.rootMu.Lock()
	switch {
	case created && !n.empty():
		s.root.children[row] = n
	case !created && n.empty():
		delete(s.root.children, row)
	}
	s.root.sum += delta
	s.rootMu.Unlock()

	return delta
}

// verifyRowLocked checks the aggregates of one row (the whole tree for rank 1).
func (s *Store[T]) verifyRowLocked(row int) error {
	if len(s.dims) == 1 {
		s.rootMu.RLock()
		defer s.rootMu.RUnlock()
		_, err := s.root.verify(nil)
		return err
	}
	n := s.rowNode(row)
	if n == nil {
		return nil
	}
	_, err := n.verify([]int{row})

	return err
}

// ---------- aggregates ----------

// Sum returns the maintained total of every stored scalar. O(1).
func (s *Store[T]) Sum() float64 {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	s.rootMu.RLock()
	defer s.rootMu.RUnlock()

	return s.root.sum
}

// AggregateSum recomputes the total by traversal; it equals Sum unless the
// store is corrupted.
func (s *Store[T]) AggregateSum() float64 {
	s.rlockAll()
	defer s.runlockAll()

	return s.root.total()
}

// RowSum returns the maintained aggregate of one row. Rank >= 2.
func (s *Store[T]) RowSum(row int) (float64, error) {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	if len(s.dims) < 2 {
		return 0, storeErrorf(ctxRowSum, ErrUnsupported)
	}
	if err := s.shape.ValidatePrefix([]int{row}); err != nil {
		return 0, storeErrorf(ctxRowSum, err)
	}
	st := s.stripe(row)
	st.RLock()
	defer st.RUnlock()
	if n := s.rowNode(row); n != nil {
		return n.sum, nil
	}

	return 0, nil
}

// Count returns the number of stored (non-zero) scalars.
func (s *Store[T]) Count() int {
	s.rlockAll()
	defer s.runlockAll()

	return s.root.count()
}

// CheckAggregates verifies every maintained sum and the sparsity invariant.
func (s *Store[T]) CheckAggregates() error {
	s.rlockAll()
	defer s.runlockAll()
	if _, err := s.root.verify(nil); err != nil {
		s.log.LogInconsistency(context.Background(), "store aggregates", err)
		return storeErrorf(ctxCheck, err)
	}

	return nil
}

// ---------- enumeration ----------

// SparseIndices returns the occupied keys of the outermost level in ascending
// order: the occupied cells for rank 1, the occupied rows otherwise. Callers
// needing leaf-level indices use Walk or recurse through Row.
func (s *Store[T]) SparseIndices() []int {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	s.rootMu.RLock()
	defer s.rootMu.RUnlock()

	return s.root.keys()
}

// Walk calls fn for every stored scalar with its full coordinates. The coords
// slice is reused between calls; copy it to retain it. Order is unspecified.
// Returning false stops the walk.
func (s *Store[T]) Walk(fn func(coords []int, v T) bool) {
	s.rlockAll()
	defer s.runlockAll()
	coords := make([]int, len(s.dims))
	s.root.walk(coords, 0, fn)
}

// WalkRow calls fn for every stored scalar of row with the coordinates inside
// the row (axis 0 dropped). Rank >= 2. Same reuse and order rules as Walk.
func (s *Store[T]) WalkRow(row int, fn func(inner []int, v T) bool) error {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	if len(s.dims) < 2 {
		return storeErrorf(ctxWalkRow, ErrUnsupported)
	}
	if err := s.shape.ValidatePrefix([]int{row}); err != nil {
		return storeErrorf(ctxWalkRow, err)
	}
	st := s.stripe(row)
	st.RLock()
	defer st.RUnlock()
	n := s.rowNode(row)
	if n == nil {
		return nil
	}
	inner := make([]int, len(s.dims)-1)
	n.walk(inner, 0, fn)

	return nil
}

// ---------- slicing ----------

// Row returns an independent rank-1-lower copy of row. ok is false when the
// row holds no data. Rank >= 2.
func (s *Store[T]) Row(row int) (sub *Store[T], ok bool, err error) {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	if len(s.dims) < 2 {
		return nil, false, storeErrorf(ctxRow, ErrUnsupported)
	}
	if err = s.shape.ValidatePrefix([]int{row}); err != nil {
		return nil, false, storeErrorf(ctxRow, err)
	}
	st := s.stripe(row)
	st.RLock()
	defer st.RUnlock()
	n := s.rowNode(row)
	if n == nil {
		return nil, false, nil
	}

	return s.subStore(n, 1), true, nil
}

// subStore wraps a copy of n as a store of the axes below depth.
func (s *Store[T]) subStore(n *level[T], depth int) *Store[T] {
	sh, _ := shape.New(s.dims[depth:], shape.WithOrder(s.shape.Order())) // inner dims are all positive
	sub := newWithShape[T](sh, options{logger: s.log, debug: s.debug})
	if n != nil {
		sub.root = n.clone()
	}

	return sub
}

// DimensionData returns the scalar at prefix when len(prefix) == Rank(), or a
// fresh sub-store holding only the entries under prefix. Only result ranks 1
// and 2 are supported; deeper results fail with ErrUnsupported.
//
// Returns:
//   - Data with Scalar set (IsScalar) or Sub set to an independent copy.
//
// Complexity:
//   - Time O(len(prefix) + entries under prefix).
func (s *Store[T]) DimensionData(prefix ...int) (Data[T], error) {
	s.shapeMu.RLock()
	defer s.shapeMu.RUnlock()
	if err := s.shape.ValidatePrefix(prefix); err != nil {
		return Data[T]{}, storeErrorf(ctxDimensionData, err)
	}
	st := s.stripe(prefix[0])
	st.RLock()
	defer st.RUnlock()

	rest := len(s.dims) - len(prefix)
	switch {
	case rest == 0:
		return Data[T]{Scalar: s.getLocked(prefix)}, nil
	case rest > 2:
		return Data[T]{}, storeErrorf(ctxDimensionData,
			fmt.Errorf("result rank %d: %w", rest, ErrUnsupported))
	}
	n := s.rowNode(prefix[0]) // rest > 0 implies rank >= 2
	if n != nil {
		n = n.node(prefix[1:])
	}

	return Data[T]{Sub: s.subStore(n, len(prefix))}, nil
}

// Clone returns a deep, independent copy.
func (s *Store[T]) Clone() *Store[T] {
	s.rlockAll()
	defer s.runlockAll()
	cp := newWithShape[T](s.shape, options{logger: s.log, debug: s.debug})
	cp.root = s.root.clone()

	return cp
}

// ---------- structural changes ----------

// Fill sets every cell of a rank-1 store to value (or clears it for zero).
// Higher ranks fail with ErrUnsupported.
func (s *Store[T]) Fill(value T) error {
	s.shapeMu.Lock()
	defer s.shapeMu.Unlock()
	if len(s.dims) != 1 {
		return storeErrorf(ctxFill, fmt.Errorf("rank %d: %w", len(s.dims), ErrUnsupported))
	}
	s.root.sum += s.root.fill(s.dims, value)

	return nil
}

// checkRow validates that rowDims (nil for an empty row) match one row of s.
func (s *Store[T]) checkRow(rowDims []int) error {
	if len(s.dims) < 2 {
		return ErrUnsupported
	}
	if rowDims == nil {
		return nil
	}
	if !slices.Equal(rowDims, s.dims[1:]) {
		return fmt.Errorf("row dims %v, want %v: %w", rowDims, s.dims[1:], ErrDimensionMismatch)
	}

	return nil
}

// detach returns the dims of row and a private copy of its root (nil for an
// empty row). It must run before s locks itself: row may be s.
func detach[T Scalar](row *Store[T]) ([]int, *level[T]) {
	if row == nil {
		return nil, nil
	}
	cp := row.Clone()
	if cp.root.empty() {
		return cp.dims, nil
	}

	return cp.dims, cp.root
}

// AppendRow grows axis 0 by one and stores a copy of row at the new index.
// row must have the store's inner dims; nil appends an empty row. Rank >= 2.
func (s *Store[T]) AppendRow(row *Store[T]) error {
	rowDims, n := detach(row)
	s.shapeMu.Lock()
	defer s.shapeMu.Unlock()
	if err := s.checkRow(rowDims); err != nil {
		return storeErrorf(ctxAppendRow, err)
	}
	idx := s.dims[0]
	sh, err := s.shape.WithRows(idx + 1)
	if err != nil {
		return storeErrorf(ctxAppendRow, err)
	}
	if n != nil {
		s.root.children[idx] = n
		s.root.sum += n.sum
	}
	s.shape, s.dims = sh, sh.Dims()
	s.log.LogRowChange(context.Background(), ctxAppendRow, idx, s.dims[0], nil)

	return nil
}

// SetRow replaces row wholesale with a copy of src (nil clears it). Rank >= 2.
func (s *Store[T]) SetRow(row int, src *Store[T]) error {
	srcDims, n := detach(src)
	s.shapeMu.Lock()
	defer s.shapeMu.Unlock()
	if err := s.checkRow(srcDims); err != nil {
		return storeErrorf(ctxSetRow, err)
	}
	if err := s.shape.ValidatePrefix([]int{row}); err != nil {
		return storeErrorf(ctxSetRow, err)
	}
	if old := s.root.children[row]; old != nil {
		s.root.sum -= old.sum
		delete(s.root.children, row)
	}
	if n != nil {
		s.root.children[row] = n
		s.root.sum += n.sum
	}

	return nil
}

// RemoveRow deletes row, shifts every later row down by one and shrinks axis 0.
// Rank >= 2.
func (s *Store[T]) RemoveRow(row int) error {
	s.shapeMu.Lock()
	defer s.shapeMu.Unlock()
	if len(s.dims) < 2 {
		return storeErrorf(ctxRemoveRow, ErrUnsupported)
	}
	if err := s.shape.ValidatePrefix([]int{row}); err != nil {
		return storeErrorf(ctxRemoveRow, err)
	}
	if old := s.root.children[row]; old != nil {
		s.root.sum -= old.sum
		delete(s.root.children, row)
	}
	for _, k := range s.root.keys() { // ascending, so targets are always free
		if k > row {
			s.root.children[k-1] = s.root.children[k]
			delete(s.root.children, k)
		}
	}
	sh, err := s.shape.WithRows(s.dims[0] - 1)
	if err != nil {
		return storeErrorf(ctxRemoveRow, err)
	}
	s.shape, s.dims = sh, sh.Dims()
	s.log.LogRowChange(context.Background(), ctxRemoveRow, row, s.dims[0], nil)

	return nil
}
