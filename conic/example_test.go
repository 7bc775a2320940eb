// SPDX-License-Identifier: MIT
package conic_test

import (
	"fmt"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/conic"
	"github.com/katalvlaran/lincanon/linop"
)

// ExampleFormat formats minimize t subject to ‖x‖ ≤ t, x ≥ 1.
func ExampleFormat() {
	x := linop.NewVariable(0, 2, 1)
	t := linop.NewVariable(1, 1, 1)
	one, _ := linop.NewScalarConstant(1)

	d, err := conic.Format(&conic.Problem{
		Objective: t,
		Constraints: []conic.Constraint{
			{Kind: conic.SOC, Args: []*linop.Node{t, x}},
			{Kind: conic.LEQ, Args: []*linop.Node{linop.NewSum(linop.NewPromote(one, 2, 1), linop.NewNeg(x))}},
		},
		Order: []canon.VarOffset{{ID: 0, Offset: 0, Size: 2}, {ID: 1, Offset: 2, Size: 1}},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d.C, d.Dims.L, d.Dims.Q, d.H)
	fmt.Println(d.Solution(0, 1.4142).Status)
	// Output:
	// [0 0 1] 2 [3] [-1 -1 0 0 0]
	// OPTIMAL
}
