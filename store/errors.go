// SPDX-License-Identifier: MIT
// Package store: sentinel error set.
// Shape and bounds failures surface the shape package sentinels; they are
// re-exported here so callers can match them without importing shape.

package store

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparsity/shape"
)

var (
	// ErrUnsupported marks a request outside the supported ranks
	// (Fill above rank 1, DimensionData results above rank 2, rows of a rank-1 store).
	ErrUnsupported = errors.New("store: unsupported operation")

	// ErrDimensionMismatch indicates a row whose dims differ from the store's inner dims.
	ErrDimensionMismatch = errors.New("store: dimension mismatch")

	// ErrInconsistent is reported by debug checks when a maintained sum
	// disagrees with a traversal.
	ErrInconsistent = errors.New("store: aggregate inconsistent")

	// ErrNilStore indicates a nil *Store argument.
	ErrNilStore = errors.New("store: nil store")
)

// Re-exported shape sentinels.
var (
	ErrOutOfRange        = shape.ErrOutOfRange
	ErrRankMismatch      = shape.ErrRankMismatch
	ErrInvalidDimensions = shape.ErrInvalidDimensions
)

// storeErrorf tags err with the calling method.
func storeErrorf(method string, err error) error {
	return fmt.Errorf("Store.%s: %w", method, err)
}
