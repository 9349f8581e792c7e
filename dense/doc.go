// SPDX-License-Identifier: MIT

// Package dense holds the dense side of the module:
//
//   - Dense, a row-major float64 matrix used as the reference implementation for
//     the sparse overlap kernels and as the snapshot type of sparse.Binary.ToDense.
//   - DimensionData, the adapter that slices plain nested Go slices ([][]T and
//     [][][]T) by a coordinate prefix, mirroring store.Store.DimensionData for
//     data that was never made sparse.
//
// Every result returned by this package is a copy; nothing aliases the source.
//
// Complexity quicksheet:
//   - NewDense: O(r*c); At/Set: O(1); Row: O(c); Do/String: O(r*c); MatVec: O(r*c).
//   - DimensionData: O(size of the returned slice).
package dense
