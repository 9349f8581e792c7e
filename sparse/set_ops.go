// SPDX-License-Identifier: MIT

package sparse

import (
	"github.com/RoaringBitmap/roaring/v2"
)

const (
	ctxOr        = "Or"
	ctxOrIndices = "OrIndices"
	ctxAll       = "All"
	ctxAny       = "Any"
)

// Bitmap returns the flat indices of every stored 1 as a fresh roaring bitmap.
func (b *Binary) Bitmap() *roaring.Bitmap {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.bitmapLocked()
}

func (b *Binary) bitmapLocked() *roaring.Bitmap {
	bm := roaring.New()
	b.st.Walk(func(coords []int, _ byte) bool {
		bm.Add(uint32(b.sh.ComputeIndexNoCheck(coords))) // volume fits uint32
		return true
	})

	return bm
}

// Or sets to 1 every cell that is 1 in other. Existing 1s are untouched, so
// repeating the call changes nothing. Shapes must match.
func (b *Binary) Or(other *Binary) error {
	if other == nil {
		return matrixErrorf(kindBinary, ctxOr, ErrNilMatrix)
	}
	if other == b {
		return nil
	}
	if err := validateSameShape(b.Shape(), other.Shape()); err != nil {
		return matrixErrorf(kindBinary, ctxOr, err)
	}
	bm := other.Bitmap()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.orLocked(bm); err != nil {
		return matrixErrorf(kindBinary, ctxOr, err)
	}

	return nil
}

// OrIndices sets to 1 every flat index in idx. All indices are validated
// before any write.
func (b *Binary) OrIndices(idx []int) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bm := roaring.New()
	for _, i := range idx {
		if err := b.sh.CheckIndex(i); err != nil {
			return matrixErrorf(kindBinary, ctxOrIndices, err)
		}
		bm.Add(uint32(i))
	}
	if err := b.orLocked(bm); err != nil {
		return matrixErrorf(kindBinary, ctxOrIndices, err)
	}

	return nil
}

// orLocked writes 1 at every index of bm. Caller holds mu and has validated bm.
func (b *Binary) orLocked(bm *roaring.Bitmap) error {
	it := bm.Iterator()
	for it.HasNext() {
		coords, err := b.sh.ComputeCoordinates(int(it.Next()))
		if err != nil {
			return err
		}
		if err = b.setLocked(1, coords); err != nil {
			return err
		}
	}

	return nil
}

// All reports whether every 1 of other is also a 1 of b (containment, not
// equality). Shapes must match.
//
// Returns:
//   - true when other's bits minus b's bits is empty; an all-zero other is
//     always contained.
//
// Complexity:
//   - Time O(k log k) to snapshot both bitmaps (k = stored bits), then one
//     roaring AndNot.
func (b *Binary) All(other *Binary) (bool, error) {
	mine, theirs, err := b.bitmapsWith(other)
	if err != nil {
		return false, matrixErrorf(kindBinary, ctxAll, err)
	}

	return roaring.AndNot(theirs, mine).IsEmpty(), nil
}

// Any reports whether b and other share at least one 1. Shapes must match.
//
// Complexity:
//   - Time O(k log k) to snapshot both bitmaps, then a roaring Intersects
//     that stops at the first shared bit.
func (b *Binary) Any(other *Binary) (bool, error) {
	mine, theirs, err := b.bitmapsWith(other)
	if err != nil {
		return false, matrixErrorf(kindBinary, ctxAny, err)
	}

	return mine.Intersects(theirs), nil
}

func (b *Binary) bitmapsWith(other *Binary) (mine, theirs *roaring.Bitmap, err error) {
	if other == nil {
		return nil, nil, ErrNilMatrix
	}
	if err = validateSameShape(b.Shape(), other.Shape()); err != nil {
		return nil, nil, err
	}

	return b.Bitmap(), other.Bitmap(), nil
}

// AllIndices reports whether every flat index in idx holds a 1. Indices
// outside the matrix hold nothing. An empty idx yields true.
func (b *Binary) AllIndices(idx []int) bool {
	mine := b.Bitmap()
	for _, i := range idx {
		if i < 0 || uint64(i) >= maxBinaryVolume || !mine.Contains(uint32(i)) {
			return false
		}
	}

	return true
}

// AnyIndices reports whether at least one flat index in idx holds a 1.
func (b *Binary) AnyIndices(idx []int) bool {
	mine := b.Bitmap()
	for _, i := range idx {
		if i >= 0 && uint64(i) < maxBinaryVolume && mine.Contains(uint32(i)) {
			return true
		}
	}

	return false
}
