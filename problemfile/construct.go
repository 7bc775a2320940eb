// SPDX-License-Identifier: MIT

package problemfile

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
	"github.com/katalvlaran/lincanon/sparse"
)

// argRange returns the allowed argument count of k; max < 0 is unbounded.
func argRange(k linop.Kind) (lo, hi int) {
	switch {
	case k.IsLeaf():
		return 0, 0
	case k == linop.Sum:
		return 1, -1
	case k == linop.HStack || k == linop.VStack:
		return 2, -1
	case k == linop.Conv || k == linop.Kron:
		return 2, 2
	default:
		return 1, 1
	}
}

func arityText(lo, hi int) string {
	switch {
	case hi < 0:
		return fmt.Sprintf("at least %d", lo)
	case lo == hi:
		return fmt.Sprint(lo)
	default:
		return fmt.Sprintf("%d to %d", lo, hi)
	}
}

// construct builds one node from its spec and already-built arguments.
func construct(s *NodeSpec, k linop.Kind, args []*linop.Node, vars map[int]linop.Shape) (*linop.Node, error) {
	lo, hi := argRange(k)
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return nil, badNode(s.Name, "%s takes %s arguments, got %d", k, arityText(lo, hi), len(args))
	}

	var n *linop.Node
	switch k {
	case linop.Variable:
		if s.Var == nil {
			return nil, badNode(s.Name, "missing var")
		}
		sh, ok := vars[*s.Var]
		if !ok {
			return nil, nodeErrorf(s.Name, fmt.Errorf("variable %d: %w", *s.Var, ErrDanglingRef))
		}
		n = linop.NewVariable(*s.Var, sh.Rows, sh.Cols)
	case linop.ScalarConst:
		v, err := s.scalar()
		if err != nil {
			return nil, err
		}
		if n, err = linop.NewScalarConstant(v); err != nil {
			return nil, badNode(s.Name, "%v", err)
		}
	case linop.DenseConst:
		d, err := s.dense()
		if err != nil {
			return nil, err
		}
		n = linop.NewConstant(d)
	case linop.SparseConst:
		m, err := s.sparse()
		if err != nil {
			return nil, err
		}
		n = linop.NewSparseConstant(m)
	case linop.Sum:
		n = linop.NewSum(args...)
	case linop.Neg:
		n = linop.NewNeg(args[0])
	case linop.Mul:
		if s.Sparse != nil {
			m, err := s.sparse()
			if err != nil {
				return nil, err
			}
			n = linop.NewMulSparse(m, args[0])
			break
		}
		d, err := s.dense()
		if err != nil {
			return nil, err
		}
		n = linop.NewMul(d, args[0])
	case linop.RMul, linop.MulElem, linop.Div:
		d, err := s.dense()
		if err != nil {
			return nil, err
		}
		switch k {
		case linop.RMul:
			n = linop.NewRMul(args[0], d)
		case linop.MulElem:
			n = linop.NewMulElem(d, args[0])
		default:
			n = linop.NewDiv(args[0], d)
		}
	case linop.SumEntries:
		n = linop.NewSumEntries(args[0])
	case linop.Trace:
		n = linop.NewTrace(args[0])
	case linop.Index:
		if s.Index == nil {
			return nil, badNode(s.Name, "missing index")
		}
		n = linop.NewIndex(args[0], s.Index.Rows, s.Index.Cols)
	case linop.Transpose:
		n = linop.NewTranspose(args[0])
	case linop.Reshape, linop.Promote:
		sh, err := s.shape()
		if err != nil {
			return nil, err
		}
		if k == linop.Reshape {
			n = linop.NewReshape(args[0], sh.Rows, sh.Cols)
		} else {
			n = linop.NewPromote(args[0], sh.Rows, sh.Cols)
		}
	case linop.DiagVec:
		n = linop.NewDiagVec(args[0])
	case linop.DiagMat:
		n = linop.NewDiagMat(args[0])
	case linop.UpperTri:
		n = linop.NewUpperTri(args[0])
	case linop.HStack:
		n = linop.NewHStack(args...)
	case linop.VStack:
		n = linop.NewVStack(args...)
	case linop.Conv:
		n = linop.NewConv(args[0], args[1])
	case linop.Kron:
		n = linop.NewKron(args[0], args[1])
	case linop.NoOp:
		n = linop.NewNoOp(args[0])
	default:
		return nil, badNode(s.Name, "kind %s", k)
	}

	// A declared shape is a check on everything but RESHAPE and PROMOTE,
	// where it is the parameter.
	if len(s.Shape) > 0 && k != linop.Reshape && k != linop.Promote {
		want, err := s.shape()
		if err != nil {
			return nil, err
		}
		if want != n.Shape() {
			return nil, badNode(s.Name, "declared shape %s, built %s", want, n.Shape())
		}
	}

	return n, nil
}

func (s *NodeSpec) shape() (linop.Shape, error) {
	if len(s.Shape) == 0 {
		return linop.Shape{}, badNode(s.Name, "missing shape")
	}
	sh, err := parseShape(s.Shape)
	if err != nil {
		return sh, badNode(s.Name, "%v", err)
	}

	return sh, nil
}

func (s *NodeSpec) scalar() (float64, error) {
	switch {
	case s.Value != nil:
		return *s.Value, nil
	case len(s.Data) == 1 && len(s.Data[0]) == 1:
		return s.Data[0][0], nil
	default:
		return math.NaN(), badNode(s.Name, "scalar needs value or 1x1 data")
	}
}

func (s *NodeSpec) dense() (*matrix.Dense, error) {
	if len(s.Data) == 0 {
		if s.Value != nil {
			return matrix.NewScalar(*s.Value)
		}
		return nil, badNode(s.Name, "missing data")
	}
	d, err := matrix.FromRows(s.Data)
	if err != nil {
		return nil, badNode(s.Name, "data: %v", err)
	}

	return d, nil
}

// sparse assembles the coordinate list. The matrix shape comes from the
// payload, falling back to the node's declared shape.
func (s *NodeSpec) sparse() (*sparse.Matrix, error) {
	p := s.Sparse
	if p == nil {
		return nil, badNode(s.Name, "missing sparse payload")
	}
	dims := p.Shape
	if len(dims) == 0 {
		dims = s.Shape
	}
	sh, err := parseShape(dims)
	if err != nil {
		return nil, badNode(s.Name, "sparse: %v", err)
	}
	if len(p.Rows) != len(p.Vals) || len(p.Cols) != len(p.Vals) {
		return nil, badNode(s.Name, "sparse: %d rows, %d cols, %d vals", len(p.Rows), len(p.Cols), len(p.Vals))
	}
	t := sparse.NewTriplets(sh.Rows, sh.Cols)
	t.Grow(len(p.Vals))
	for i, v := range p.Vals {
		t.Add(p.Rows[i], p.Cols[i], v)
	}
	m, err := t.Matrix()
	if err != nil {
		return nil, badNode(s.Name, "sparse: %v", err)
	}

	return m, nil
}
