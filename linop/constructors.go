// SPDX-License-Identifier: MIT
// Package linop - convenience constructors.
//
// Each constructor computes the declared output shape from its operands the
// way the graph-building front-end does and then delegates to New. Operand
// shapes are NOT checked here: a constructor never fails on shape, and the
// compiler reports inconsistencies against the offending node.

package linop

import (
	"fmt"

	"github.com/katalvlaran/lincanon/matrix"
	"github.com/katalvlaran/lincanon/sparse"
)

// shapeOf returns the declared shape of n, or the zero shape for nil.
func shapeOf(n *Node) Shape {
	if n == nil {
		return Shape{}
	}

	return n.shape
}

// NewVariable returns a rows×cols VARIABLE leaf for variable id.
// Leaves sharing an id denote the same variable.
func NewVariable(id, rows, cols int) *Node {
	return New(Variable, Shape{Rows: rows, Cols: cols}, nil, WithVarID(id))
}

// NewConstant returns a DENSE_CONST leaf holding d, or a SCALAR_CONST leaf
// when d is 1×1.
func NewConstant(d *matrix.Dense) *Node {
	kind := DenseConst
	if d.IsScalar() {
		kind = ScalarConst
	}

	return New(kind, Shape{Rows: d.Rows(), Cols: d.Cols()}, nil, WithDense(d))
}

// NewScalarConstant returns a SCALAR_CONST leaf with value v.
// Errors: matrix.ErrNaNInf when v is not finite.
func NewScalarConstant(v float64) (*Node, error) {
	d, err := matrix.NewScalar(v)
	if err != nil {
		return nil, err
	}

	return NewConstant(d), nil
}

// NewSparseConstant returns a SPARSE_CONST leaf holding m.
func NewSparseConstant(m *sparse.Matrix) *Node {
	return New(SparseConst, Shape{Rows: m.Rows(), Cols: m.Cols()}, nil, WithSparse(m))
}

// NewSum returns SUM(args...), shaped like the first operand.
func NewSum(args ...*Node) *Node {
	var s Shape
	if len(args) > 0 {
		s = shapeOf(args[0])
	}

	return New(Sum, s, args)
}

// NewNeg returns -x.
func NewNeg(x *Node) *Node { return New(Neg, shapeOf(x), []*Node{x}) }

// mulShape applies the broadcasting rule shared by MUL and RMUL: a scalar
// operand takes the other's shape, otherwise the usual (m×k)·(k×n) = m×n.
func mulShape(left, right Shape) Shape {
	switch {
	case left.IsScalar():
		return right
	case right.IsScalar():
		return left
	default:
		return Shape{Rows: left.Rows, Cols: right.Cols}
	}
}

// NewMul returns the left product c·x by a dense constant.
func NewMul(c *matrix.Dense, x *Node) *Node {
	cs := Shape{Rows: c.Rows(), Cols: c.Cols()}

	return New(Mul, mulShape(cs, shapeOf(x)), []*Node{x}, WithDense(c))
}

// NewMulSparse returns the left product c·x by a sparse constant.
func NewMulSparse(c *sparse.Matrix, x *Node) *Node {
	cs := Shape{Rows: c.Rows(), Cols: c.Cols()}

	return New(Mul, mulShape(cs, shapeOf(x)), []*Node{x}, WithSparse(c))
}

// NewRMul returns the right product x·c by a dense constant.
func NewRMul(x *Node, c *matrix.Dense) *Node {
	cs := Shape{Rows: c.Rows(), Cols: c.Cols()}

	return New(RMul, mulShape(shapeOf(x), cs), []*Node{x}, WithDense(c))
}

// NewMulElem returns the element-wise product c∘x. A 1×1 c broadcasts.
func NewMulElem(c *matrix.Dense, x *Node) *Node {
	return New(MulElem, shapeOf(x), []*Node{x}, WithDense(c))
}

// NewDiv returns the element-wise quotient x/c. A 1×1 c broadcasts.
func NewDiv(x *Node, c *matrix.Dense) *Node {
	return New(Div, shapeOf(x), []*Node{x}, WithDense(c))
}

// NewSumEntries returns the 1×1 sum of all entries of x.
func NewSumEntries(x *Node) *Node {
	return New(SumEntries, Shape{Rows: 1, Cols: 1}, []*Node{x})
}

// NewTrace returns the 1×1 trace of a square x.
func NewTrace(x *Node) *Node {
	return New(Trace, Shape{Rows: 1, Cols: 1}, []*Node{x})
}

// NewIndex returns x[rows, cols]: the len(rows)×len(cols) value whose entry
// (a, b) is x[rows[a], cols[b]]. Indices may repeat and need not be sorted.
func NewIndex(x *Node, rows, cols []int) *Node {
	return New(Index, Shape{Rows: len(rows), Cols: len(cols)}, []*Node{x}, WithIndex(rows, cols))
}

// Slice describes start:stop:step along one axis.
type Slice struct {
	Start int
	Stop  int
	Step  int
}

// All returns the slice covering a whole axis of length n.
func All(n int) Slice { return Slice{Start: 0, Stop: n, Step: 1} }

// Indices expands s against an axis of length n. Bounds are clamped into the
// axis, so an empty result is possible; a zero Step is ErrBadSlice.
func (s Slice) Indices(n int) ([]int, error) {
	if s.Step == 0 {
		return nil, fmt.Errorf("linop: slice %d:%d:%d: %w", s.Start, s.Stop, s.Step, ErrBadSlice)
	}
	var out []int
	if s.Step > 0 {
		start, stop := max(s.Start, 0), min(s.Stop, n)
		for i := start; i < stop; i += s.Step {
			out = append(out, i)
		}

		return out, nil
	}
	start, stop := min(s.Start, n-1), max(s.Stop, -1)
	for i := start; i > stop; i += s.Step {
		out = append(out, i)
	}

	return out, nil
}

// NewIndexSlice is NewIndex with per-axis slices instead of explicit lists.
func NewIndexSlice(x *Node, rows, cols Slice) (*Node, error) {
	xs := shapeOf(x)
	ri, err := rows.Indices(xs.Rows)
	if err != nil {
		return nil, err
	}
	ci, err := cols.Indices(xs.Cols)
	if err != nil {
		return nil, err
	}

	return NewIndex(x, ri, ci), nil
}

// NewTranspose returns xᵀ.
func NewTranspose(x *Node) *Node {
	s := shapeOf(x)

	return New(Transpose, Shape{Rows: s.Cols, Cols: s.Rows}, []*Node{x})
}

// NewReshape reinterprets x as rows×cols in column-major order.
func NewReshape(x *Node, rows, cols int) *Node {
	return New(Reshape, Shape{Rows: rows, Cols: cols}, []*Node{x})
}

// NewPromote broadcasts a scalar x to rows×cols.
func NewPromote(x *Node, rows, cols int) *Node {
	return New(Promote, Shape{Rows: rows, Cols: cols}, []*Node{x})
}

// NewDiagVec returns the n×n diagonal matrix with the n entries of x.
func NewDiagVec(x *Node) *Node {
	n := shapeOf(x).Size()

	return New(DiagVec, Shape{Rows: n, Cols: n}, []*Node{x})
}

// NewDiagMat returns the n×1 diagonal of a square n×n x.
func NewDiagMat(x *Node) *Node {
	return New(DiagMat, Shape{Rows: shapeOf(x).Rows, Cols: 1}, []*Node{x})
}

// NewUpperTri returns the strictly upper triangular entries of a square x,
// row by row, as an n(n-1)/2 column.
func NewUpperTri(x *Node) *Node {
	n := shapeOf(x).Rows

	return New(UpperTri, Shape{Rows: n * (n - 1) / 2, Cols: 1}, []*Node{x})
}

// NewHStack concatenates args left to right.
func NewHStack(args ...*Node) *Node {
	var s Shape
	for k, a := range args {
		as := shapeOf(a)
		if k == 0 {
			s.Rows = as.Rows
		}
		s.Cols += as.Cols
	}

	return New(HStack, s, args)
}

// NewVStack concatenates args top to bottom.
func NewVStack(args ...*Node) *Node {
	var s Shape
	for k, a := range args {
		as := shapeOf(a)
		if k == 0 {
			s.Cols = as.Cols
		}
		s.Rows += as.Rows
	}

	return New(VStack, s, args)
}

// NewConv returns the full 1-D convolution of kernel and signal, a
// (len(kernel)+len(signal)-1)×1 column.
func NewConv(kernel, signal *Node) *Node {
	n := shapeOf(kernel).Size() + shapeOf(signal).Size() - 1

	return New(Conv, Shape{Rows: n, Cols: 1}, []*Node{kernel, signal})
}

// NewKron returns the Kronecker product left ⊗ right.
func NewKron(left, right *Node) *Node {
	ls, rs := shapeOf(left), shapeOf(right)

	return New(Kron, Shape{Rows: ls.Rows * rs.Rows, Cols: ls.Cols * rs.Cols}, []*Node{left, right})
}

// NewNoOp wraps x without changing its value.
func NewNoOp(x *Node) *Node { return New(NoOp, shapeOf(x), []*Node{x}) }
