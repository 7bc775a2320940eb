// SPDX-License-Identifier: MIT
package conic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/conic"
	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
	"github.com/katalvlaran/lincanon/sparse"
)

func constant(t testing.TB, rows [][]float64) *linop.Node {
	t.Helper()
	d, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return linop.NewConstant(d)
}

func denseRows(m *sparse.Matrix) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
	}
	m.Each(func(i, j int, v float64) { out[i][j] = v })

	return out
}

// lp is: minimize x0 + x1 + 5 s.t. x0 − x1 = 0, 1 − x ≤ 0.
func lp(t *testing.T, sense conic.Sense) *conic.Problem {
	t.Helper()
	x := linop.NewVariable(0, 2, 1)
	five, err := linop.NewScalarConstant(5)
	require.NoError(t, err)
	row, err := matrix.FromRows([][]float64{{1, -1}})
	require.NoError(t, err)

	return &conic.Problem{
		Sense:     sense,
		Objective: linop.NewSum(linop.NewSumEntries(x), five),
		Constraints: []conic.Constraint{
			{Kind: conic.EQ, Args: []*linop.Node{linop.NewMul(row, x)}},
			{Kind: conic.LEQ, Args: []*linop.Node{linop.NewSum(constant(t, [][]float64{{1}, {1}}), linop.NewNeg(x))}},
		},
		Order: []canon.VarOffset{{ID: 0, Offset: 0, Size: 2}},
	}
}

func TestFormatLP(t *testing.T) {
	d, err := conic.Format(lp(t, conic.Minimize))
	require.NoError(t, err)

	assert.Equal(t, 2, d.N)
	assert.Equal(t, []float64{1, 1}, d.C)
	assert.Equal(t, 5.0, d.Offset)
	assert.Equal(t, [][]float64{{1, -1}}, denseRows(d.A))
	assert.Equal(t, []float64{0}, d.B)
	assert.Equal(t, [][]float64{{-1, 0}, {0, -1}}, denseRows(d.G))
	assert.Equal(t, []float64{-1, -1}, d.H)
	assert.Equal(t, 2, d.Dims.L)
	assert.Empty(t, d.Dims.Q)
	assert.Equal(t, 0, d.Dims.E)
	assert.Equal(t, 1, d.P())
	assert.Equal(t, 2, d.M())
	assert.Equal(t, d.M(), d.Dims.Rows())

	// x = (1, 1) is optimal with cᵀx = 2.
	sol := d.Solution(0, 2)
	assert.Equal(t, conic.Optimal, sol.Status)
	assert.Equal(t, 7.0, sol.Value)
}

func TestFormatMaximizeNegatesObjective(t *testing.T) {
	d, err := conic.Format(lp(t, conic.Maximize))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1}, d.C)
	assert.Equal(t, -5.0, d.Offset)

	// The solver minimizes −x0 − x1; at x = (1.5, 1.5) its cost is −3.
	sol := d.Solution(0, -3)
	assert.Equal(t, 8.0, sol.Value)
	assert.True(t, math.IsInf(d.Solution(1, 0).Value, -1))
	assert.True(t, math.IsInf(d.Solution(2, 0).Value, 1))
}

func TestFormatSOC(t *testing.T) {
	x := linop.NewVariable(0, 2, 1)
	tt := linop.NewVariable(1, 1, 1)
	d, err := conic.Format(&conic.Problem{
		Objective:   tt,
		Constraints: []conic.Constraint{{Kind: conic.SOC, Args: []*linop.Node{tt, x}}},
		Order:       []canon.VarOffset{{ID: 0, Offset: 0, Size: 2}, {ID: 1, Offset: 2, Size: 1}},
		NumVars:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 1}, d.C)
	assert.Equal(t, 0, d.A.Rows())
	assert.Equal(t, 3, d.A.Cols())
	assert.Equal(t, [][]float64{
		{0, 0, -1},
		{-1, 0, 0},
		{0, -1, 0},
	}, denseRows(d.G))
	assert.Equal(t, []float64{0, 0, 0}, d.H)
	assert.Equal(t, []int{3}, d.Dims.Q)
}

func TestFormatExpInterleaves(t *testing.T) {
	x := linop.NewVariable(0, 2, 1)
	y := linop.NewVariable(1, 2, 1)
	z := linop.NewVariable(2, 2, 1)
	d, err := conic.Format(&conic.Problem{
		Objective:   linop.NewSumEntries(z),
		Constraints: []conic.Constraint{{Kind: conic.EXP, Args: []*linop.Node{x, y, z}}},
		Order: []canon.VarOffset{
			{ID: 0, Offset: 0, Size: 2},
			{ID: 1, Offset: 2, Size: 2},
			{ID: 2, Offset: 4, Size: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, d.Dims.E)
	assert.Equal(t, [][]float64{
		{-1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, -1, 0},
		{0, 0, -1, 0, 0, 0},
		{0, -1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, -1},
		{0, 0, 0, -1, 0, 0},
	}, denseRows(d.G))
	assert.Equal(t, make([]float64, 6), d.H)
}

func TestFormatConeOrder(t *testing.T) {
	x := linop.NewVariable(0, 1, 1)
	y := linop.NewVariable(1, 1, 1)
	z := linop.NewVariable(2, 1, 1)
	tt := linop.NewVariable(3, 1, 1)
	d, err := conic.Format(&conic.Problem{
		Objective: tt,
		Constraints: []conic.Constraint{
			{Kind: conic.EXP, Args: []*linop.Node{x, y, z}},
			{Kind: conic.SOC, Args: []*linop.Node{tt, x}},
			{Kind: conic.LEQ, Args: []*linop.Node{tt}},
		},
		Order: []canon.VarOffset{
			{ID: 0, Offset: 0, Size: 1},
			{ID: 1, Offset: 1, Size: 1},
			{ID: 2, Offset: 2, Size: 1},
			{ID: 3, Offset: 3, Size: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, conic.Dims{L: 1, Q: []int{2}, E: 1}, d.Dims)
	assert.Equal(t, [][]float64{
		{0, 0, 0, 1},
		{0, 0, 0, -1},
		{-1, 0, 0, 0},
		{-1, 0, 0, 0},
		{0, 0, -1, 0},
		{0, -1, 0, 0},
	}, denseRows(d.G))
	assert.Equal(t, d.Dims.Rows(), d.M())
}

func TestFormatSharesCompilation(t *testing.T) {
	x := linop.NewVariable(0, 3, 1)
	s := linop.NewSumEntries(x)
	var fired int
	_, err := conic.Format(&conic.Problem{
		Objective: s,
		Constraints: []conic.Constraint{
			{Kind: conic.LEQ, Args: []*linop.Node{s}},
			{Kind: conic.EQ, Args: []*linop.Node{s}},
		},
		Order: []canon.VarOffset{{ID: 0, Size: 3}},
	}, canon.WithOnCompile(func(*linop.Node) { fired++ }))
	require.NoError(t, err)
	assert.Equal(t, 2, fired)
}

func TestFormatErrors(t *testing.T) {
	x := linop.NewVariable(0, 2, 1)
	y := linop.NewVariable(1, 1, 1)
	order := []canon.VarOffset{{ID: 0, Size: 2}}
	obj := linop.NewSumEntries(x)

	cases := []struct {
		name   string
		p      *conic.Problem
		target error
	}{
		{"nil problem", nil, conic.ErrNoObjective},
		{"nil objective", &conic.Problem{Order: order}, conic.ErrNoObjective},
		{"vector objective", &conic.Problem{Objective: x, Order: order}, conic.ErrObjectiveShape},
		{"num vars", &conic.Problem{Objective: obj, Order: order, NumVars: 3}, conic.ErrNumVars},
		{"eq arity", &conic.Problem{Objective: obj, Order: order, Constraints: []conic.Constraint{
			{Kind: conic.EQ, Args: []*linop.Node{x, x}},
		}}, conic.ErrBadConstraint},
		{"nil arg", &conic.Problem{Objective: obj, Order: order, Constraints: []conic.Constraint{
			{Kind: conic.LEQ, Args: []*linop.Node{nil}},
		}}, conic.ErrBadConstraint},
		{"empty soc", &conic.Problem{Objective: obj, Order: order, Constraints: []conic.Constraint{
			{Kind: conic.SOC},
		}}, conic.ErrBadConstraint},
		{"exp arity", &conic.Problem{Objective: obj, Order: order, Constraints: []conic.Constraint{
			{Kind: conic.EXP, Args: []*linop.Node{x, x}},
		}}, conic.ErrBadConstraint},
		{"exp sizes", &conic.Problem{Objective: obj, Order: order, Constraints: []conic.Constraint{
			{Kind: conic.EXP, Args: []*linop.Node{x, x, y}},
		}}, conic.ErrBadConstraint},
		{"unknown kind", &conic.Problem{Objective: obj, Order: order, Constraints: []conic.Constraint{
			{Kind: conic.ConstraintKind(9), Args: []*linop.Node{x}},
		}}, conic.ErrBadConstraint},
		{"missing variable", &conic.Problem{Objective: obj, Order: order, Constraints: []conic.Constraint{
			{Kind: conic.LEQ, Args: []*linop.Node{y}},
		}}, canon.ErrMissingVariable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := conic.Format(tc.p)
			require.ErrorIs(t, err, tc.target)
		})
	}
}

func TestConstraintErrorNamesPosition(t *testing.T) {
	x := linop.NewVariable(0, 2, 1)
	_, err := conic.Format(&conic.Problem{
		Objective:   linop.NewSumEntries(x),
		Order:       []canon.VarOffset{{ID: 0, Size: 2}},
		Constraints: []conic.Constraint{{Kind: conic.LEQ, Args: []*linop.Node{x}}, {Kind: conic.EXP, Args: []*linop.Node{x}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint 1 (EXP)")
}

func TestCanonicalizeStatus(t *testing.T) {
	cases := []struct {
		code   int
		want   conic.Status
		name   string
		solved bool
	}{
		{0, conic.Optimal, "OPTIMAL", true},
		{1, conic.Infeasible, "INFEASIBLE", false},
		{2, conic.Unbounded, "UNBOUNDED", false},
		{10, conic.OptimalInaccurate, "OPTIMAL_INACCURATE", true},
		{11, conic.InfeasibleInaccurate, "INFEASIBLE_INACCURATE", false},
		{12, conic.UnboundedInaccurate, "UNBOUNDED_INACCURATE", false},
		{-7, conic.SolverError, "SOLVER_ERROR", false},
		{3, conic.SolverError, "SOLVER_ERROR", false},
	}
	for _, tc := range cases {
		got := conic.CanonicalizeStatus(tc.code)
		assert.Equal(t, tc.want, got, "code %d", tc.code)
		assert.Equal(t, tc.name, got.String())
		assert.Equal(t, tc.solved, got.Solved())
	}
	assert.Equal(t, "SOLVER_ERROR", conic.Status(42).String())
}

func TestSolutionMinimize(t *testing.T) {
	d := &conic.Data{Offset: 1.5}
	assert.Equal(t, 4.5, d.Solution(10, 3).Value)
	assert.True(t, math.IsInf(d.Solution(11, 0).Value, 1))
	assert.True(t, math.IsInf(d.Solution(12, 0).Value, -1))
	assert.True(t, math.IsNaN(d.Solution(-1, 0).Value))
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "SOC", conic.SOC.String())
	assert.Equal(t, "ConstraintKind(9)", conic.ConstraintKind(9).String())
	assert.Equal(t, "maximize", conic.Maximize.String())
}
