// SPDX-License-Identifier: MIT
// Package shape: sentinel error set.
// All functions return these sentinels wrapped with call-site context;
// callers match them with errors.Is.

package shape

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a dimension descriptor is empty,
	// axis 0 is negative, or any inner axis is not strictly positive.
	ErrInvalidDimensions = errors.New("shape: invalid dimensions")

	// ErrRankMismatch indicates a coordinate vector whose length differs from the rank.
	ErrRankMismatch = errors.New("shape: coordinate rank mismatch")

	// ErrOutOfRange indicates a coordinate (or flat index) outside the axis bounds.
	ErrOutOfRange = errors.New("shape: index out of range")
)

// coordErrorf attaches the offending coordinates and the configured dimensions.
func coordErrorf(method string, coords, dims []int, err error) error {
	return fmt.Errorf("shape.%s(%v) dims %v: %w", method, coords, dims, err)
}
