// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers.
//
// Purpose:
//   - Build small deterministic fixtures from row literals.
//   - Compare sparse results against dense expectations.

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/matrix"
	"github.com/katalvlaran/lincanon/sparse"
)

// mustRows builds a sparse matrix from row literals or fails the test.
func mustRows(t testing.TB, rows [][]float64) *sparse.Matrix {
	t.Helper()
	d, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return sparse.FromDense(d)
}

// denseRows renders m as row literals for readable assertions.
func denseRows(m *sparse.Matrix) [][]float64 {
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
	}
	m.Each(func(i, j int, v float64) { out[i][j] = v })

	return out
}
