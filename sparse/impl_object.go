// SPDX-License-Identifier: MIT

package sparse

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/katalvlaran/sparsity/internal/logging"
	"github.com/katalvlaran/sparsity/shape"
)

// Object is a sparse matrix of arbitrary values over an ordered map keyed by
// flat index. It keeps no aggregates and places no restriction on values; a
// cell is either present (set) or absent (Delete).
type Object[T any] struct {
	mu    sync.RWMutex
	shape shape.Shape
	tree  *treemap.Map // int → T
	log   *logging.Logger
}

// NewObject creates an empty Object matrix.
func NewObject[T any](dims []int, opts ...Option) (*Object[T], error) {
	o := gatherOptions(opts...)
	sh, err := shape.New(dims, shape.WithOrder(o.order))
	if err != nil {
		return nil, matrixErrorf(kindObject, ctxNew, err)
	}

	return &Object[T]{
		shape: sh,
		tree:  treemap.NewWith(utils.IntComparator),
		log:   o.logger.WithComponent("object").WithDims(sh.Dims()),
	}, nil
}

// Shape returns the dimension descriptor.
func (m *Object[T]) Shape() shape.Shape { return m.shape }

// Set stores v at coords.
func (m *Object[T]) Set(v T, coords ...int) error {
	if err := m.shape.Validate(coords); err != nil {
		return matrixErrorf(kindObject, ctxSet, err)
	}
	m.put(m.shape.ComputeIndexNoCheck(coords), v)

	return nil
}

// SetIndex stores v at a flat index.
func (m *Object[T]) SetIndex(v T, index int) error {
	if err := m.shape.CheckIndex(index); err != nil {
		return matrixErrorf(kindObject, ctxSetIndex, err)
	}
	m.put(index, v)

	return nil
}

func (m *Object[T]) put(index int, v T) {
	m.mu.Lock()
	m.tree.Put(index, v)
	m.mu.Unlock()
}

// Get returns the value at coords; ok is false for an absent cell, in which
// case the zero T is returned.
func (m *Object[T]) Get(coords ...int) (v T, ok bool, err error) {
	if err = m.shape.Validate(coords); err != nil {
		return v, false, matrixErrorf(kindObject, ctxGet, err)
	}
	v, ok = m.lookup(m.shape.ComputeIndexNoCheck(coords))

	return v, ok, nil
}

// GetIndex is Get by flat index.
func (m *Object[T]) GetIndex(index int) (v T, ok bool, err error) {
	if err = m.shape.CheckIndex(index); err != nil {
		return v, false, matrixErrorf(kindObject, ctxGetIndex, err)
	}
	v, ok = m.lookup(index)

	return v, ok, nil
}

func (m *Object[T]) lookup(index int) (T, bool) {
	var zero T
	m.mu.RLock()
	raw, found := m.tree.Get(index)
	m.mu.RUnlock()
	if !found {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok { // a nil interface stored for an interface T
		return zero, true
	}

	return v, true
}

// Delete removes the cell at coords. Deleting an absent cell is a no-op.
func (m *Object[T]) Delete(coords ...int) error {
	if err := m.shape.Validate(coords); err != nil {
		return matrixErrorf(kindObject, ctxDelete, err)
	}
	index := m.shape.ComputeIndexNoCheck(coords)
	m.mu.Lock()
	_, found := m.tree.Get(index)
	m.tree.Remove(index)
	m.mu.Unlock()
	if found {
		m.log.Debug("cell deleted", "index", index)
	}

	return nil
}

// Len returns the number of present cells.
func (m *Object[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree.Size()
}

// SparseIndices returns the present flat indices in descending order.
func (m *Object[T]) SparseIndices() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]int, 0, m.tree.Size())
	it := m.tree.Iterator()
	for it.End(); it.Prev(); {
		out = append(out, it.Key().(int))
	}

	return out
}
