// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/sparse"
)

// TestTriplets_SumsDuplicates checks accumulation semantics and canonical order.
func TestTriplets_SumsDuplicates(t *testing.T) {
	tb := sparse.NewTriplets(3, 2)
	tb.Add(2, 1, 1)
	tb.Add(0, 1, 4)
	tb.Add(2, 1, 2)
	tb.Add(1, 0, 5)
	tb.Add(0, 0, 0) // ignored

	m, err := tb.Matrix()
	require.NoError(t, err)

	colPtr, rowIdx, vals := m.CSC()
	assert.Equal(t, []int{0, 1, 3}, colPtr)
	assert.Equal(t, []int{1, 0, 2}, rowIdx)
	assert.Equal(t, []float64{5, 4, 3}, vals)
}

// TestTriplets_CancellationDropped verifies that entries summing to zero vanish.
func TestTriplets_CancellationDropped(t *testing.T) {
	tb := sparse.NewTriplets(2, 2)
	tb.Add(1, 1, 2.5)
	tb.Add(1, 1, -2.5)

	m, err := tb.Matrix()
	require.NoError(t, err)
	assert.Equal(t, 0, m.NNZ())
}

// TestTriplets_OutOfRange reports the first offending entry at compression.
func TestTriplets_OutOfRange(t *testing.T) {
	tb := sparse.NewTriplets(2, 2)
	tb.Add(0, 0, 1)
	tb.Add(2, 0, 1)
	tb.Add(0, 5, 1)

	_, err := tb.Matrix()
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	assert.Contains(t, err.Error(), "(2,0)")

	_, err = sparse.NewTriplets(-1, 2).Matrix()
	require.ErrorIs(t, err, sparse.ErrBadShape)
}
