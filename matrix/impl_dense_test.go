// Package matrix_test contains unit tests for the column-major Dense payload.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
}

// TestNewDenseFrom_ColumnMajor checks that the flat input is read column by column.
func TestNewDenseFrom_ColumnMajor(t *testing.T) {
	// [[1,3,5],[2,4,6]] flattened column-major.
	m, err := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
	v, err = m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())
	require.Equal(t, "[1, 3, 5]\n[2, 4, 6]\n", m.String())
}

// TestNewDenseFrom_Errors covers length mismatch and the NaN/Inf policy.
func TestNewDenseFrom_Errors(t *testing.T) {
	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err := matrix.NewDenseFrom(1, 2, []float64{1, math.Inf(1)}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.Error(t, matrix.ValidateFinite(m))
}

// TestFromRows verifies row literals and ragged-row rejection.
func TestFromRows(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3, 2, 4}, m.Data())

	_, err = matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrRaggedRows)

	_, err = matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{1, 0}, {0, 2}})
	require.NoError(t, err)

	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0))

	orig, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, orig)
}

// TestReshape keeps the flat buffer and rejects size changes.
func TestReshape(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	r, err := m.Reshape(3, 2)
	require.NoError(t, err)
	require.Equal(t, m.Data(), r.Data())
	v, err := r.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	_, err = m.Reshape(4, 2)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestEach_Order asserts the column-major visit order.
func TestEach_Order(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	var got []float64
	m.Each(func(_, _ int, v float64) { got = append(got, v) })
	require.Equal(t, []float64{1, 3, 2, 4}, got)
}
