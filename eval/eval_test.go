package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lincanon/eval"
	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return d
}

func TestEvaluateMulAndSum(t *testing.T) {
	x := linop.NewVariable(0, 2, 1)
	c := mustDense(t, [][]float64{{1, 2}, {3, 4}})
	b0 := linop.NewConstant(mustDense(t, [][]float64{{10}, {20}}))
	root := linop.NewSum(linop.NewMul(c, x), b0)

	got, err := eval.Evaluate(root, eval.Values{0: {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{13, 27}, eval.ColumnMajor(got))
}

func TestEvaluateColumnMajorVariables(t *testing.T) {
	x := linop.NewVariable(0, 2, 2)
	got, err := eval.Evaluate(linop.NewTranspose(x), eval.Values{0: {1, 2, 3, 4}})
	require.NoError(t, err)
	// x = [[1,3],[2,4]], xᵀ = [[1,2],[3,4]].
	assert.Equal(t, 2.0, got.At(0, 1))
	assert.Equal(t, []float64{1, 3, 2, 4}, eval.ColumnMajor(got))
}

func TestEvaluateConv(t *testing.T) {
	k := linop.NewConstant(mustDense(t, [][]float64{{1}, {2}}))
	x := linop.NewVariable(0, 3, 1)
	got, err := eval.Evaluate(linop.NewConv(k, x), eval.Values{0: {1, 10, 100}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 12, 120, 200}, eval.ColumnMajor(got))
}

func TestEvaluateKron(t *testing.T) {
	l := linop.NewConstant(mustDense(t, [][]float64{{1, 2}}))
	x := linop.NewVariable(0, 2, 1)
	got, err := eval.Evaluate(linop.NewKron(l, x), eval.Values{0: {3, 4}})
	require.NoError(t, err)
	r, c := got.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{3, 4, 6, 8}, eval.ColumnMajor(got))
}

func TestEvaluateUpperTri(t *testing.T) {
	x := linop.NewVariable(0, 3, 3)
	got, err := eval.Evaluate(linop.NewUpperTri(x), eval.Values{0: {0, 1, 2, 3, 4, 5, 6, 7, 8}})
	require.NoError(t, err)
	// Row-major strictly upper entries: (0,1)=3, (0,2)=6, (1,2)=7.
	assert.Equal(t, []float64{3, 6, 7}, eval.ColumnMajor(got))
}

func TestEvaluateErrors(t *testing.T) {
	x := linop.NewVariable(0, 2, 1)
	_, err := eval.Evaluate(linop.NewNeg(x), eval.Values{})
	require.ErrorIs(t, err, eval.ErrMissingValue)

	_, err = eval.Evaluate(x, eval.Values{0: {1}})
	require.ErrorIs(t, err, eval.ErrShape)

	_, err = eval.Evaluate(linop.New(linop.Kind(77), linop.Shape{Rows: 1, Cols: 1}, nil), nil)
	require.ErrorIs(t, err, eval.ErrUnsupported)

	_, err = eval.Evaluate(linop.NewVariable(0, 0, 1), eval.Values{0: nil})
	require.ErrorIs(t, err, eval.ErrEmpty)
}
