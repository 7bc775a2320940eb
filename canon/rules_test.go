// SPDX-License-Identifier: MIT
package canon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/sparse"
)

// TestRoundTripPerKind checks A·x + b == eval(graph, x) for every kind.
func TestRoundTripPerKind(t *testing.T) {
	x23 := linop.NewVariable(0, 2, 3)
	y23 := linop.NewVariable(1, 2, 3)
	x32 := linop.NewVariable(2, 3, 2)
	sq := linop.NewVariable(3, 3, 3)
	v3 := linop.NewVariable(4, 3, 1)
	v4 := linop.NewVariable(5, 4, 1)
	v2 := linop.NewVariable(6, 2, 1)
	s := linop.NewVariable(7, 1, 1)
	y22 := linop.NewVariable(8, 2, 2)
	r12 := linop.NewVariable(9, 1, 2)

	c22 := mustDense(t, [][]float64{{1, -2}, {3, 4}})
	c23 := mustDense(t, [][]float64{{1, 2, 3}, {-4, 5, 6}})
	c24 := mustDense(t, [][]float64{{1, 0, 2, 0}, {0, 3, 0, -1}})
	sc := mustDense(t, [][]float64{{2.5}})

	spc, err := sparse.FromColumnMajor(2, 3, []float64{0, 1, 0, 0, 2, 7})
	require.NoError(t, err)

	cases := []struct {
		name string
		root *linop.Node
	}{
		{"variable", x23},
		{"sum with constants", linop.NewSum(linop.NewMul(c22, x23), y23, constant(t, [][]float64{{1, 2, 3}, {4, 5, 6}}))},
		{"sparse constant", linop.NewSum(x23, linop.NewSparseConstant(spc))},
		{"scalar constant", linop.NewSum(s, linop.NewConstant(sc))},
		{"neg", linop.NewNeg(linop.NewSum(x23, y23))},
		{"mul", linop.NewMul(c22, x23)},
		{"mul sparse", linop.NewMulSparse(spc, x32)},
		{"mul by scalar", linop.NewMul(sc, x23)},
		{"mul of scalar", linop.NewMul(c23, s)},
		{"rmul", linop.NewRMul(x32, c24)},
		{"rmul by scalar", linop.NewRMul(x32, sc)},
		{"rmul of scalar", linop.NewRMul(s, c24)},
		{"mul elem", linop.NewMulElem(c23, x23)},
		{"mul elem broadcast", linop.NewMulElem(sc, x23)},
		{"div", linop.NewDiv(x23, c23)},
		{"div broadcast", linop.NewDiv(x23, sc)},
		{"sum entries", linop.NewSumEntries(x23)},
		{"trace", linop.NewTrace(sq)},
		{"index", linop.NewIndex(x32, []int{2, 0, 2}, []int{1})},
		{"transpose", linop.NewTranspose(x23)},
		{"reshape", linop.NewReshape(x23, 3, 2)},
		{"no op", linop.NewNoOp(x23)},
		{"promote", linop.NewPromote(s, 2, 2)},
		{"diag vec", linop.NewDiagVec(v3)},
		{"diag mat", linop.NewDiagMat(sq)},
		{"upper tri", linop.NewUpperTri(sq)},
		{"hstack", linop.NewHStack(v2, y22, v2)},
		{"vstack", linop.NewVStack(r12, y22, constant(t, [][]float64{{1, 1}}))},
		{"conv", linop.NewConv(constant(t, [][]float64{{1}, {-1}, {2}}), v4)},
		{"conv swapped", linop.NewConv(v4, constant(t, [][]float64{{3}, {1}}))},
		{"kron left", linop.NewKron(linop.NewConstant(c22), v2)},
		{"kron right", linop.NewKron(x32, constant(t, [][]float64{{1, -1, 2}}))},
		{"kron constant", linop.NewKron(linop.NewConstant(c22), linop.NewConstant(sc))},
		{"nested", linop.NewSumEntries(linop.NewMulElem(c23, linop.NewTranspose(linop.NewRMul(x32, c22))))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireRoundTrip(t, tc.root)
		})
	}
}

func TestScenarioMulPlusConstant(t *testing.T) {
	x := linop.NewVariable(0, 2, 1)
	root := linop.NewSum(
		linop.NewMul(mustDense(t, [][]float64{{1, 0}, {0, 1}}), x),
		constant(t, [][]float64{{3}, {4}}),
	)
	res := requireRoundTrip(t, root)
	require.Equal(t, [][]float64{{1, 0}, {0, 1}}, denseRows(res.A))
	require.Equal(t, []float64{3, 4}, res.B)
}

func TestScenarioIndexRow(t *testing.T) {
	x := linop.NewVariable(0, 3, 1)
	res := requireRoundTrip(t, linop.NewIndex(x, []int{1}, []int{0}))
	require.Equal(t, [][]float64{{0, 1, 0}}, denseRows(res.A))
	require.Equal(t, []float64{0}, res.B)
}

func TestScenarioConvToeplitz(t *testing.T) {
	x := linop.NewVariable(0, 3, 1)
	res := requireRoundTrip(t, linop.NewConv(constant(t, [][]float64{{1}, {2}}), x))
	require.Equal(t, [][]float64{
		{1, 0, 0},
		{2, 1, 0},
		{0, 2, 1},
		{0, 0, 2},
	}, denseRows(res.A))
	require.Equal(t, []float64{0, 0, 0, 0}, res.B)
}

func TestTransposeIsPermutation(t *testing.T) {
	x := linop.NewVariable(0, 2, 3)
	res := requireRoundTrip(t, linop.NewTranspose(x))
	// xᵀ flattened is x00 x01 x02 x10 x11 x12, i.e. positions 0 2 4 1 3 5 of vec(x).
	want := [][]float64{
		{1, 0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 1, 0},
		{0, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 1},
	}
	require.Equal(t, want, denseRows(res.A))
}

func TestStackZeroFillsAbsentVariables(t *testing.T) {
	x := linop.NewVariable(0, 1, 1)
	y := linop.NewVariable(1, 1, 1)
	res := requireRoundTrip(t, linop.NewVStack(x, constant(t, [][]float64{{5}}), y))
	require.Equal(t, [][]float64{{1, 0}, {0, 0}, {0, 1}}, denseRows(res.A))
	require.Equal(t, []float64{0, 5, 0}, res.B)
}
