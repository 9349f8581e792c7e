// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"slices"
)

// Data is the result of DimensionData. Rank tells which field is set:
// 0 → Scalar, 1 → Vector, 2 → Matrix.
type Data[T any] struct {
	Rank   int
	Scalar T
	Vector []T
	Matrix [][]T
}

// DimensionData slices an ordinary nested slice by a coordinate prefix.
//
// Supported sources:
//   - [][]T: prefix of length 1 yields a row copy, length 2 the scalar.
//   - [][][]T: prefix of length 1 yields a [][]T copy, 2 a row copy, 3 the scalar.
//   - *Dense (T must be float64): as [][]float64.
//
// Any other source type, or a T that does not match the element type, fails
// with ErrUnsupported. Empty or over-long prefixes fail with ErrDimensionMismatch,
// coordinates outside the (possibly ragged) source with ErrOutOfRange.
func DimensionData[T any](src any, prefix ...int) (Data[T], error) {
	var out Data[T]
	switch s := src.(type) {
	case [][]T:
		if err := checkPrefix(len(prefix), 2); err != nil {
			return out, err
		}
		return sliceRank2(s, prefix)
	case [][][]T:
		if err := checkPrefix(len(prefix), 3); err != nil {
			return out, err
		}
		if err := inRange(prefix[0], len(s), prefix); err != nil {
			return out, err
		}
		plane := s[prefix[0]]
		if len(prefix) == 1 {
			out.Rank = 2
			out.Matrix = make([][]T, len(plane))
			for i, row := range plane {
				out.Matrix[i] = slices.Clone(row)
			}
			return out, nil
		}
		return sliceRank2(plane, prefix[1:])
	case *Dense:
		if _, ok := any(out.Scalar).(float64); !ok {
			return out, fmt.Errorf("%s: *Dense into %T: %w", ctxAdapter, out.Scalar, ErrUnsupported)
		}
		if s == nil {
			return out, fmt.Errorf("%s: %w", ctxAdapter, ErrNilMatrix)
		}
		if err := checkPrefix(len(prefix), 2); err != nil {
			return out, err
		}
		return denseData[T](s, prefix)
	default:
		return out, fmt.Errorf("%s: source %T: %w", ctxAdapter, src, ErrUnsupported)
	}
}

func sliceRank2[T any](s [][]T, prefix []int) (Data[T], error) {
	var out Data[T]
	if err := inRange(prefix[0], len(s), prefix); err != nil {
		return out, err
	}
	row := s[prefix[0]]
	if len(prefix) == 1 {
		out.Rank = 1
		out.Vector = slices.Clone(row)
		return out, nil
	}
	if err := inRange(prefix[1], len(row), prefix); err != nil {
		return out, err
	}
	out.Scalar = row[prefix[1]]

	return out, nil
}

func checkPrefix(n, rank int) error {
	if n == 0 || n > rank {
		return fmt.Errorf("%s: prefix length %d for source rank %d: %w", ctxAdapter, n, rank, ErrDimensionMismatch)
	}

	return nil
}

func inRange(c, n int, prefix []int) error {
	if c < 0 || c >= n {
		return fmt.Errorf("%s(%v): %w", ctxAdapter, prefix, ErrOutOfRange)
	}

	return nil
}

// denseData resolves a prefix against m through its own accessors, so the
// result never aliases m's buffer. T is float64, checked by the caller.
func denseData[T any](m *Dense, prefix []int) (Data[T], error) {
	var out Data[T]
	if len(prefix) == 1 {
		row, err := m.Row(prefix[0]) // copy
		if err != nil {
			return out, fmt.Errorf("%s(%v): %w", ctxAdapter, prefix, err)
		}
		out.Rank = 1
		out.Vector = any(row).([]T)
		return out, nil
	}
	v, err := m.At(prefix[0], prefix[1])
	if err != nil {
		return out, fmt.Errorf("%s(%v): %w", ctxAdapter, prefix, err)
	}
	out.Scalar = any(v).(T)

	return out, nil
}
