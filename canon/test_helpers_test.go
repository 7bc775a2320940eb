// SPDX-License-Identifier: MIT
// Package canon_test contains shared fixtures.
//
// Purpose:
//   - Build constants from row literals.
//   - Compare CSC outputs structurally, with a side-by-side diff on failure.
//   - Check A·x + b against the reference evaluator for a fixed assignment.

package canon_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/eval"
	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
	"github.com/katalvlaran/lincanon/sparse"
)

func mustDense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return d
}

func constant(t testing.TB, rows [][]float64) *linop.Node {
	t.Helper()

	return linop.NewConstant(mustDense(t, rows))
}

// denseRows renders m as row literals.
func denseRows(m *sparse.Matrix) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
	}
	m.Each(func(i, j int, v float64) { out[i][j] = v })

	return out
}

// cscView is the solver-facing form of a matrix.
type cscView struct {
	Rows, Cols int
	ColPtr     []int
	RowIdx     []int
	Vals       []float64
}

func viewOf(m *sparse.Matrix) cscView {
	colPtr, rowIdx, vals := m.CSC()

	return cscView{Rows: m.Rows(), Cols: m.Cols(), ColPtr: colPtr, RowIdx: rowIdx, Vals: vals}
}

// requireSameCSC fails unless want and got store identical arrays.
func requireSameCSC(t *testing.T, want, got *sparse.Matrix) {
	t.Helper()
	w, g := viewOf(want), viewOf(got)
	if !reflect.DeepEqual(w, g) {
		deepequal.SideBySide(t, "csc", w, g)
		t.FailNow()
	}
}

// sequentialOrder lays out every variable of root back to back by ID.
func sequentialOrder(t testing.TB, root *linop.Node) []canon.VarOffset {
	t.Helper()
	vars, err := linop.Variables(root)
	require.NoError(t, err)
	order := make([]canon.VarOffset, 0, len(vars))
	off := 0
	for _, v := range vars {
		order = append(order, canon.VarOffset{ID: v.ID, Offset: off, Size: v.Shape.Size()})
		off += v.Shape.Size()
	}

	return order
}

// requireRoundTrip compiles root, assembles it, and checks A·x + b against
// direct evaluation for a fixed pseudo-random assignment.
func requireRoundTrip(t *testing.T, root *linop.Node) *canon.Result {
	t.Helper()
	order := sequentialOrder(t, root)
	cm, err := canon.Compile(root)
	require.NoError(t, err)
	res, err := canon.Assemble(cm, order)
	require.NoError(t, err)
	require.Equal(t, root.Shape().Size(), res.A.Rows())

	rng := rand.New(rand.NewSource(7))
	values := eval.Values{}
	var x []float64
	for _, v := range order {
		vals := make([]float64, v.Size)
		for k := range vals {
			vals[k] = float64(rng.Intn(19) - 9)
		}
		values[v.ID] = vals
		x = append(x, vals...)
	}
	require.Equal(t, res.A.Cols(), len(x))

	got, err := res.Apply(x)
	require.NoError(t, err)
	want, err := eval.Evaluate(root, values)
	require.NoError(t, err)
	require.InDeltaSlice(t, eval.ColumnMajor(want), got, 1e-9)

	return res
}
