// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Scalar is the set of element types a Store can hold.
type Scalar interface {
	~uint8 | ~uint16 | ~uint32 | ~int8 | ~int16 | ~int32 | ~int64 | ~int | ~float32 | ~float64
}

// sumTol is the relative tolerance used when comparing a maintained float
// aggregate with a traversal. Integer stores compare exactly.
const sumTol = 1e-9

// level is one node of the tree. Exactly one of children/values is non-nil:
// values on the final axis, children above it.
type level[T Scalar] struct {
	children map[int]*level[T]
	values   map[int]T
	sum      float64 // aggregate of every scalar below this node
}

func newLevel[T Scalar](leaf bool) *level[T] {
	if leaf {
		return &level[T]{values: make(map[int]T)}
	}

	return &level[T]{children: make(map[int]*level[T])}
}

func (l *level[T]) leaf() bool { return l.values != nil }

func (l *level[T]) empty() bool { return len(l.children) == 0 && len(l.values) == 0 }

// get reads the scalar at coords (full rank relative to l). A missing path
// yields zero without touching the tree.
func (l *level[T]) get(coords []int) T {
	var zero T
	n := l
	last := len(coords) - 1
	for i := 0; i < last; i++ {
		n = n.children[coords[i]]
		if n == nil {
			return zero
		}
	}

	return n.values[coords[last]]
}

// node returns the level reached by following prefix, or nil.
func (l *level[T]) node(prefix []int) *level[T] {
	n := l
	for _, c := range prefix {
		if n.leaf() {
			return nil
		}
		n = n.children[c]
		if n == nil {
			return nil
		}
	}

	return n
}

// set writes v at coords below l and returns the change of l.sum.
// dims holds the sizes of l's axis and every axis below it; len(coords) may be
// shorter than len(dims), in which case the whole sub-row is filled with v.
// Emptied children are removed on the way back up.
func (l *level[T]) set(dims, coords []int, v T) float64 {
	var delta float64
	switch {
	case len(coords) == 0:
		delta = l.fill(dims, v)
	case l.leaf():
		c := coords[0]
		old, ok := l.values[c]
		if v == 0 {
			if !ok {
				return 0
			}
			delete(l.values, c)
			delta = -float64(old)
		} else {
			l.values[c] = v
			delta = float64(v) - float64(old)
		}
	default:
		c := coords[0]
		child := l.children[c]
		if child == nil {
			if v == 0 {
				return 0 // nothing stored below; zero write is a no-op
			}
			child = newLevel[T](len(dims) == 2)
			l.children[c] = child
		}
		delta = child.set(dims[1:], coords[1:], v)
		if child.empty() {
			delete(l.children, c) // cascade
		}
	}
	l.sum += delta

	return delta
}

// fill broadcasts v over every cell below l and returns the change of l.sum.
// The caller applies the delta to l.sum.
func (l *level[T]) fill(dims []int, v T) float64 {
	if v == 0 {
		delta := -l.sum
		clear(l.children)
		clear(l.values)

		return delta
	}
	var delta float64
	if l.leaf() {
		for c := 0; c < dims[0]; c++ {
			delta += float64(v) - float64(l.values[c])
			l.values[c] = v
		}

		return delta
	}
	for c := 0; c < dims[0]; c++ {
		child := l.children[c]
		if child == nil {
			child = newLevel[T](len(dims) == 2)
			l.children[c] = child
		}
		delta += child.set(dims[1:], nil, v)
	}

	return delta
}

func (l *level[T]) clone() *level[T] {
	cp := &level[T]{sum: l.sum}
	if l.leaf() {
		cp.values = maps.Clone(l.values)
		return cp
	}
	cp.children = make(map[int]*level[T], len(l.children))
	for k, c := range l.children {
		cp.children[k] = c.clone()
	}

	return cp
}

// total recomputes the aggregate by traversal.
func (l *level[T]) total() float64 {
	var s float64
	if l.leaf() {
		for _, v := range l.values {
			s += float64(v)
		}
		return s
	}
	for _, c := range l.children {
		s += c.total()
	}

	return s
}

// count returns the number of stored scalars.
func (l *level[T]) count() int {
	if l.leaf() {
		return len(l.values)
	}
	n := 0
	for _, c := range l.children {
		n += c.count()
	}

	return n
}

// verify checks every maintained sum below (and at) l against a traversal and
// the sparsity invariant (no stored zero, no empty inner level).
func (l *level[T]) verify(path []int) (float64, error) {
	var s float64
	if l.leaf() {
		for k, v := range l.values {
			if v == 0 {
				return 0, fmt.Errorf("zero stored at %v: %w", append(slices.Clone(path), k), ErrInconsistent)
			}
			s += float64(v)
		}
	} else {
		for k, c := range l.children {
			p := append(slices.Clone(path), k)
			if c.empty() {
				return 0, fmt.Errorf("empty level kept at %v: %w", p, ErrInconsistent)
			}
			cs, err := c.verify(p)
			if err != nil {
				return 0, err
			}
			s += cs
		}
	}
	if !sumsEqual(l.sum, s) {
		return 0, fmt.Errorf("sum at %v is %g, traversal gives %g: %w", path, l.sum, s, ErrInconsistent)
	}

	return s, nil
}

// walk visits every stored scalar below l; coords[depth:] is filled in place.
// Visit order follows map iteration and is unspecified.
func (l *level[T]) walk(coords []int, depth int, fn func([]int, T) bool) bool {
	if l.leaf() {
		for k, v := range l.values {
			coords[depth] = k
			if !fn(coords, v) {
				return false
			}
		}
		return true
	}
	for k, c := range l.children {
		coords[depth] = k
		if !c.walk(coords, depth+1, fn) {
			return false
		}
	}

	return true
}

// keys returns the occupied keys of l in ascending order.
func (l *level[T]) keys() []int {
	if l.leaf() {
		return slices.Sorted(maps.Keys(l.values))
	}

	return slices.Sorted(maps.Keys(l.children))
}

func sumsEqual(a, b float64) bool {
	if a == b {
		return true
	}

	return math.Abs(a-b) <= sumTol*math.Max(1, math.Abs(b))
}
