// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/matrix"
)

func TestValidateFinite(t *testing.T) {
	a, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(a))
	require.ErrorIs(t, matrix.ValidateFinite(nil), matrix.ErrNilMatrix)

	b, err := matrix.FromRows([][]float64{{1, math.Inf(-1)}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	err = matrix.ValidateFinite(b)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.Contains(t, err.Error(), "ValidateFinite")
}
