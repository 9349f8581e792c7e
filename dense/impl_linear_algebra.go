// SPDX-License-Identifier: MIT

package dense

import "fmt"

// MatVec computes y = m·x.
// MAIN DESCRIPTION:
//   - Reference dot-product per row over the flat row-major buffer.
//
// Errors:
//   - ErrNilMatrix for a nil m; ErrDimensionMismatch when len(x) != m.Cols().
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %w", ctxMatVec, ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, fmt.Errorf("%s: len(x)=%d, cols=%d: %w", ctxMatVec, len(x), m.c, ErrDimensionMismatch)
	}
	y := make([]float64, m.r)
	var i, j, base int
	var acc, xv float64
	for i = 0; i < m.r; i++ {
		acc = 0
		base = i * m.c
		for j = 0; j < m.c; j++ {
			xv = x[j]
			if xv != 0 { // skip zero multiplications
				acc += m.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}

// MatVecInt is MatVec over integer vectors, truncating each product sum
// towards zero. It is the dense counterpart of the binary overlap kernel.
func MatVecInt(m *Dense, x []int) ([]int, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %w", ctxBinary, ErrNilMatrix)
	}
	xf := make([]float64, len(x))
	for i, v := range x {
		xf[i] = float64(v)
	}
	yf, err := MatVec(m, xf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBinary, err)
	}
	y := make([]int, len(yf))
	for i, v := range yf {
		y[i] = int(v)
	}

	return y, nil
}
