package canon_test

import (
	"fmt"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
)

// ExampleCompile canonicalizes I·x + [3; 4] for a 2-element variable x.
func ExampleCompile() {
	eye, _ := matrix.FromRows([][]float64{{1, 0}, {0, 1}})
	b0, _ := matrix.FromRows([][]float64{{3}, {4}})
	x := linop.NewVariable(0, 2, 1)
	root := linop.NewSum(linop.NewMul(eye, x), linop.NewConstant(b0))

	cm, err := canon.Compile(root)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := canon.Assemble(cm, []canon.VarOffset{{ID: 0, Offset: 0, Size: 2}})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	colPtr, rowIdx, vals := res.A.CSC()
	fmt.Println(colPtr, rowIdx, vals)
	fmt.Println(res.B)

	// Output:
	// [0 1 2] [0 1] [1 1]
	// [3 4]
}

// ExampleBuild stacks two constraint roots over one variable ordering.
func ExampleBuild() {
	x := linop.NewVariable(0, 3, 1)
	k, _ := matrix.FromRows([][]float64{{1}, {2}})
	roots := []*linop.Node{
		linop.NewConv(linop.NewConstant(k), x),
		linop.NewSumEntries(x),
	}

	pd, err := canon.Build(roots, []canon.VarOffset{{ID: 0, Offset: 0, Size: 3}})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(pd.RowOffsets)
	fmt.Println(pd.A.Rows(), pd.A.Cols(), pd.A.NNZ())

	// Output:
	// [0 4 5]
	// 5 3 9
}
