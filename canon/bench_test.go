// SPDX-License-Identifier: MIT
package canon_test

import (
	"testing"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
)

// chain builds depth nested NEG(SUM(prev, x)) layers over an n-vector.
func chain(n, depth int) *linop.Node {
	x := linop.NewVariable(0, n, 1)
	node := x
	for i := 0; i < depth; i++ {
		node = linop.NewNeg(linop.NewSum(node, x))
	}

	return node
}

func BenchmarkCompile_Chain(b *testing.B) {
	root := chain(1000, 200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := canon.Compile(root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompile_Conv(b *testing.B) {
	taps := make([]float64, 64)
	for i := range taps {
		taps[i] = float64(i%7) - 3
	}
	k, err := matrix.NewDenseFrom(len(taps), 1, taps)
	if err != nil {
		b.Fatal(err)
	}
	root := linop.NewConv(linop.NewConstant(k), linop.NewVariable(0, 5000, 1))
	order := []canon.VarOffset{{ID: 0, Size: 5000}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := canon.Build([]*linop.Node{root}, order); err != nil {
			b.Fatal(err)
		}
	}
}
