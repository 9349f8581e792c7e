// SPDX-License-Identifier: MIT
// Package sparse: argument validators shared by the containers and kernels.
// Each returns a bare sentinel wrapped with a short detail; callers add the
// container and method tag.

package sparse

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sparsity/shape"
)

// maxBinaryVolume is the size of the roaring bitmap universe.
const maxBinaryVolume = uint64(math.MaxUint32) + 1

// validateBinary rejects values outside {0,1}.
func validateBinary(v byte) error {
	if v > 1 {
		return fmt.Errorf("value %d: %w", v, ErrNotBinary)
	}

	return nil
}

// validateVolume checks that every flat index of sh fits in a uint32.
func validateVolume(sh shape.Shape) error {
	vol := uint64(1)
	for _, d := range sh.Dims() {
		if d == 0 {
			return nil
		}
		if vol > maxBinaryVolume/uint64(d) {
			return fmt.Errorf("dims %v: %w", sh.Dims(), ErrVolumeTooLarge)
		}
		vol *= uint64(d)
	}

	return nil
}

// validateRank2 restricts an operation to matrices of rank 2.
func validateRank2(sh shape.Shape) error {
	if sh.Rank() != 2 {
		return fmt.Errorf("rank %d, want 2: %w", sh.Rank(), ErrUnsupported)
	}

	return nil
}

// validateVecLen checks a vector against the axis it indexes.
func validateVecLen(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("len(%s)=%d, want %d: %w", name, got, want, ErrDimensionMismatch)
	}

	return nil
}

// validateSameShape requires identical dims and ordering, so flat indices
// of a and b address the same cells.
func validateSameShape(a, b shape.Shape) error {
	if !a.Equal(b) {
		return fmt.Errorf("shape %v vs %v: %w", a, b, ErrDimensionMismatch)
	}

	return nil
}
