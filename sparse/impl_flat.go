// SPDX-License-Identifier: MIT

// Package sparse - Matrix[T]: flat-map sparse matrix keyed by flat index.
//
// Complexity quicksheet (k = occupied cells):
//   - Get/Set: O(rank); SparseIndices: O(k log k); AsDense/Indexes: O(Volume*rank).

package sparse

import (
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/katalvlaran/sparsity/internal/logging"
	"github.com/katalvlaran/sparsity/shape"
)

const (
	kindMatrix = "Matrix"
	kindBinary = "Binary"
	kindObject = "Object"
)

// ---------- error context tags ----------

const (
	ctxNew      = "New"
	ctxGet      = "Get"
	ctxGetIndex = "GetIndex"
	ctxSet      = "Set"
	ctxSetIndex = "SetIndex"
	ctxDelete   = "Delete"
)

// Matrix is a sparse matrix of comparable values. Cells never written, or
// last written with the default, read as the default and are not stored.
type Matrix[T comparable] struct {
	mu    sync.RWMutex
	shape shape.Shape
	def   T
	data  map[int]T // flat index → non-default value
	log   *logging.Logger
}

// NewMatrix creates a Matrix whose default is T's zero value.
func NewMatrix[T comparable](dims []int, opts ...Option) (*Matrix[T], error) {
	var zero T

	return NewMatrixWithDefault(dims, zero, opts...)
}

// NewMatrixWithDefault creates a Matrix whose unset cells read as def.
func NewMatrixWithDefault[T comparable](dims []int, def T, opts ...Option) (*Matrix[T], error) {
	o := gatherOptions(opts...)
	sh, err := shape.New(dims, shape.WithOrder(o.order))
	if err != nil {
		return nil, matrixErrorf(kindMatrix, ctxNew, err)
	}

	return &Matrix[T]{
		shape: sh,
		def:   def,
		data:  make(map[int]T),
		log:   o.logger.WithComponent("matrix").WithDims(sh.Dims()),
	}, nil
}

// Shape returns the dimension descriptor.
func (m *Matrix[T]) Shape() shape.Shape { return m.shape }

// Default returns the value of unset cells.
func (m *Matrix[T]) Default() T { return m.def }

// Get returns the value at coords.
func (m *Matrix[T]) Get(coords ...int) (T, error) {
	if err := m.shape.Validate(coords); err != nil {
		return m.def, matrixErrorf(kindMatrix, ctxGet, err)
	}

	return m.load(m.shape.ComputeIndexNoCheck(coords)), nil
}

// GetIndex returns the value at a flat index.
func (m *Matrix[T]) GetIndex(index int) (T, error) {
	if err := m.shape.CheckIndex(index); err != nil {
		return m.def, matrixErrorf(kindMatrix, ctxGetIndex, err)
	}

	return m.load(index), nil
}

func (m *Matrix[T]) load(index int) T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[index]; ok {
		return v
	}

	return m.def
}

// Set writes v at coords; writing the default removes the cell.
func (m *Matrix[T]) Set(v T, coords ...int) error {
	if err := m.shape.Validate(coords); err != nil {
		return matrixErrorf(kindMatrix, ctxSet, err)
	}
	m.store(m.shape.ComputeIndexNoCheck(coords), v)

	return nil
}

// SetIndex writes v at a flat index.
func (m *Matrix[T]) SetIndex(v T, index int) error {
	if err := m.shape.CheckIndex(index); err != nil {
		return matrixErrorf(kindMatrix, ctxSetIndex, err)
	}
	m.store(index, v)

	return nil
}

func (m *Matrix[T]) store(index int, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v == m.def {
		if _, ok := m.data[index]; ok {
			delete(m.data, index)
			m.log.Debug("cell cleared", "index", index)
		}
		return
	}
	m.data[index] = v
}

// Len returns the number of occupied cells.
func (m *Matrix[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

// SparseIndices returns every occupied flat index in ascending order.
func (m *Matrix[T]) SparseIndices() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.data))
}

// Indexes enumerates every addressable flat index, occupied or not.
func (m *Matrix[T]) Indexes() []int { return m.shape.Indexes() }

// AsDense materializes the matrix as nested slices of depth Rank():
// []T for rank 1, [][]T for rank 2, and so on. Unoccupied cells take
// fill(coords) when fill is non-nil, the default otherwise. The coords slice
// passed to fill is reused between calls.
//
// Intended for debugging and interop; cost is O(Volume).
func (m *Matrix[T]) AsDense(fill func(coords []int) T) any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dims := m.shape.Dims()
	types := make([]reflect.Type, len(dims)+1) // types[i] is the slice type at depth len(dims)-i
	types[0] = reflect.TypeFor[T]()
	for i := 1; i < len(types); i++ {
		types[i] = reflect.SliceOf(types[i-1])
	}

	coords := make([]int, len(dims))
	var build func(axis int) reflect.Value
	build = func(axis int) reflect.Value {
		out := reflect.MakeSlice(types[len(dims)-axis], dims[axis], dims[axis])
		for c := 0; c < dims[axis]; c++ {
			coords[axis] = c
			if axis < len(dims)-1 {
				out.Index(c).Set(build(axis + 1))
				continue
			}
			v, ok := m.data[m.shape.ComputeIndexNoCheck(coords)]
			if !ok {
				v = m.def
				if fill != nil {
					v = fill(coords)
				}
			}
			out.Index(c).Set(reflect.ValueOf(&v).Elem())
		}

		return out
	}

	return build(0).Interface()
}
