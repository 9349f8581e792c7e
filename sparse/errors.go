// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// Shape, bounds and rank sentinels are shared with the store and shape
// packages so one errors.Is check works across layers.

package sparse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparsity/store"
)

var (
	// ErrNotBinary indicates a value outside {0,1} written to a Binary.
	ErrNotBinary = errors.New("sparse: value is not binary")

	// ErrScalarSlice indicates a slice request with a full-rank coordinate
	// vector; use Get for a single cell.
	ErrScalarSlice = errors.New("sparse: slice of a single cell")

	// ErrVolumeTooLarge indicates a Binary whose flat index space exceeds 32 bits.
	ErrVolumeTooLarge = errors.New("sparse: volume exceeds 32-bit index space")

	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("sparse: nil matrix")
)

// Shared sentinels.
var (
	ErrOutOfRange        = store.ErrOutOfRange
	ErrRankMismatch      = store.ErrRankMismatch
	ErrInvalidDimensions = store.ErrInvalidDimensions
	ErrDimensionMismatch = store.ErrDimensionMismatch
	ErrUnsupported       = store.ErrUnsupported
	ErrInconsistent      = store.ErrInconsistent
)

// matrixErrorf tags err with the container kind and method.
func matrixErrorf(kind, method string, err error) error {
	return fmt.Errorf("%s.%s: %w", kind, method, err)
}
