// SPDX-License-Identifier: MIT
package sparse_test

import (
	"fmt"

	"github.com/katalvlaran/sparsity/sparse"
)

// ExampleBinary_RightVecSumAtNZ scores how many active input bits each row is
// connected to.
func ExampleBinary_RightVecSumAtNZ() {
	b, _ := sparse.NewBinary([]int{3, 6})
	_ = b.OrIndices([]int{0, 1, 8, 9, 10, 17})

	input := []int{1, 1, 0, 0, 1, 1}
	results := make([]int, 3)
	_ = b.RightVecSumAtNZ(input, results)

	fmt.Println("indices:", b.SparseIndices())
	fmt.Println("true counts:", b.TrueCounts())
	fmt.Println("overlap:", results)
	// Output:
	// indices: [0 1 8 9 10 17]
	// true counts: [2 3 1]
	// overlap: [2 1 1]
}

// ExampleBinary_Slice copies one row and shows the single-cell rejection.
func ExampleBinary_Slice() {
	b, _ := sparse.NewBinary([]int{2, 4})
	_ = b.Set(1, 1, 2)

	row, _ := b.Slice(1)
	fmt.Println(row.Dims(), row.SparseIndices())

	_, err := b.Slice(1, 2)
	fmt.Println(err)
	// Output:
	// [4] [2]
	// Binary.Slice: coords [1 2] for rank 2: sparse: slice of a single cell
}

// ExampleObject_SparseIndices lists present cells from the highest flat index down.
func ExampleObject_SparseIndices() {
	o, _ := sparse.NewObject[string]([]int{2, 2})
	_ = o.Set("a", 0, 0)
	_ = o.Set("b", 1, 1)
	_ = o.Set("c", 0, 1)
	fmt.Println(o.SparseIndices())
	// Output:
	// [3 1 0]
}

// ExampleMatrix_AsDense renders a matrix with a custom default as nested slices.
func ExampleMatrix_AsDense() {
	m, _ := sparse.NewMatrixWithDefault([]int{2, 3}, -1)
	_ = m.Set(7, 0, 1)
	fmt.Println(m.AsDense(nil))
	// Output:
	// [[-1 7 -1] [-1 -1 -1]]
}
