// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// Every message is prefixed with "dense: ". Callers match with errors.Is.

package dense

import "errors"

var (
	// ErrInvalidDimensions indicates non-positive rows or columns.
	ErrInvalidDimensions = errors.New("dense: dimensions must be > 0")

	// ErrOutOfRange indicates a row, column or prefix coordinate outside its axis.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates a vector whose length does not match the matrix,
	// or a ragged nested slice.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value rejected by the numeric policy.
	ErrNaNInf = errors.New("dense: NaN or Inf encountered")

	// ErrUnsupported marks a source type the slice adapter does not handle.
	ErrUnsupported = errors.New("dense: unsupported source")

	// ErrNilMatrix indicates a nil *Dense argument.
	ErrNilMatrix = errors.New("dense: nil matrix")
)
