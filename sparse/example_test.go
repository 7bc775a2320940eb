package sparse_test

import (
	"fmt"

	"github.com/katalvlaran/lincanon/sparse"
)

// ExampleTriplets demonstrates accumulation-style construction and CSC export.
func ExampleTriplets() {
	tb := sparse.NewTriplets(2, 3)
	tb.Add(0, 0, 1)
	tb.Add(1, 2, 2)
	tb.Add(0, 0, 1) // summed with the first entry

	m, err := tb.Matrix()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	colPtr, rowIdx, vals := m.CSC()
	fmt.Println(colPtr, rowIdx, vals)

	// Output:
	// [0 1 1 2] [0 1] [2 2]
}
