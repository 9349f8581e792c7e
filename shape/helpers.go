// SPDX-License-Identifier: MIT

package shape

// Reverse returns a reversed copy of a. The input is not modified.
func Reverse(a []int) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[len(a)-1-i] = v
	}

	return out
}

// CopyInnerArray returns a copy of a without its first element.
// An empty or single-element input yields an empty slice.
func CopyInnerArray(a []int) []int {
	if len(a) <= 1 {
		return []int{}
	}

	return append([]int(nil), a[1:]...)
}
