// Package eval computes the numeric value of a LinOp graph directly, with
// gonum dense algebra, for a concrete assignment of every variable.
//
// It is the reference the compiled (A, b) form is checked against:
// for any graph g and assignment x, Evaluate(g, x) must equal A·x + b.
// Nothing here is tuned for size; it is meant for tests and debugging.
package eval

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lincanon/linop"
)

var (
	// ErrMissingValue indicates a variable with no assigned value.
	ErrMissingValue = errors.New("eval: missing variable value")

	// ErrShape indicates operands whose shapes do not fit the operation.
	ErrShape = errors.New("eval: shape mismatch")

	// ErrEmpty indicates a zero-sized value, which dense evaluation cannot hold.
	ErrEmpty = errors.New("eval: empty value")

	// ErrUnsupported indicates an unknown kind or a missing constant operand.
	ErrUnsupported = errors.New("eval: unsupported node")
)

// Values assigns each variable ID its column-major flattened value.
type Values map[int][]float64

// Evaluate returns the value of root under values.
// Errors: ErrMissingValue, ErrShape, ErrEmpty, ErrUnsupported, wrapped with
// the offending node; linop.ErrNilNode / linop.ErrCycle from the walk.
func Evaluate(root *linop.Node, values Values) (*mat.Dense, error) {
	memo := make(map[*linop.Node]*mat.Dense)
	err := linop.Walk(root, func(n *linop.Node) error {
		s := n.Shape()
		if s.Rows <= 0 || s.Cols <= 0 {
			return fmt.Errorf("eval: %s: %w", n, ErrEmpty)
		}
		args := make([]*mat.Dense, n.NumArgs())
		for i := range args {
			args[i] = memo[n.Arg(i)]
		}
		v, err := node(n, args, values)
		if err != nil {
			return fmt.Errorf("eval: %s: %w", n, err)
		}
		if r, c := v.Dims(); r != s.Rows || c != s.Cols {
			return fmt.Errorf("eval: %s: got %dx%d: %w", n, r, c, ErrShape)
		}
		memo[n] = v

		return nil
	})
	if err != nil {
		return nil, err
	}

	return memo[root], nil
}

// ColumnMajor flattens m column by column.
func ColumnMajor(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			out = append(out, m.At(i, j))
		}
	}

	return out
}

// fromColumnMajor builds an r×c matrix from a column-major slice.
func fromColumnMajor(r, c int, data []float64) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			m.Set(i, j, data[i+j*r])
		}
	}

	return m
}

// constant returns the operand or payload of n as a dense matrix.
func constant(n *linop.Node) (*mat.Dense, error) {
	if !n.HasData() {
		return nil, ErrUnsupported
	}
	s := n.DataShape()
	if s.Rows <= 0 || s.Cols <= 0 {
		return nil, ErrEmpty
	}

	return fromColumnMajor(s.Rows, s.Cols, n.Data().ColumnMajor()), nil
}

func isScalar(m mat.Matrix) bool {
	r, c := m.Dims()

	return r == 1 && c == 1
}

func scaled(alpha float64, m mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Scale(alpha, m)

	return &out
}

func sameDims(a, b mat.Matrix) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()

	return ar == br && ac == bc
}

// node evaluates one node from its children's values.
func node(n *linop.Node, args []*mat.Dense, values Values) (*mat.Dense, error) {
	s := n.Shape()
	k := n.Kind()
	if (!k.IsLeaf() && len(args) == 0) || ((k == linop.Conv || k == linop.Kron) && len(args) != 2) {
		return nil, fmt.Errorf("%s with %d args: %w", k, len(args), ErrUnsupported)
	}
	switch k {
	case linop.Variable:
		v, ok := values[n.VarID()]
		if !ok {
			return nil, fmt.Errorf("variable %d: %w", n.VarID(), ErrMissingValue)
		}
		if len(v) != s.Size() {
			return nil, fmt.Errorf("variable %d has %d values, want %d: %w", n.VarID(), len(v), s.Size(), ErrShape)
		}

		return fromColumnMajor(s.Rows, s.Cols, v), nil

	case linop.ScalarConst, linop.DenseConst, linop.SparseConst:
		return constant(n)

	case linop.Sum:
		out := mat.DenseCopyOf(args[0])
		for _, a := range args[1:] {
			if !sameDims(out, a) {
				return nil, ErrShape
			}
			out.Add(out, a)
		}

		return out, nil

	case linop.Neg:
		return scaled(-1, args[0]), nil

	case linop.Mul, linop.RMul:
		c, err := constant(n)
		if err != nil {
			return nil, err
		}
		x := args[0]
		switch {
		case isScalar(c):
			return scaled(c.At(0, 0), x), nil
		case isScalar(x):
			return scaled(x.At(0, 0), c), nil
		}
		l, r := mat.Matrix(c), mat.Matrix(x)
		if n.Kind() == linop.RMul {
			l, r = x, c
		}
		_, lc := l.Dims()
		if rr, _ := r.Dims(); lc != rr {
			return nil, ErrShape
		}
		var out mat.Dense
		out.Mul(l, r)

		return &out, nil

	case linop.MulElem, linop.Div:
		c, err := constant(n)
		if err != nil {
			return nil, err
		}
		x := args[0]
		xr, xc := x.Dims()
		if isScalar(c) {
			c = fromColumnMajor(xr, xc, repeat(c.At(0, 0), xr*xc))
		}
		cr, cc := c.Dims()
		if cr*cc != xr*xc {
			return nil, ErrShape
		}
		c = fromColumnMajor(xr, xc, ColumnMajor(c))
		var out mat.Dense
		if n.Kind() == linop.MulElem {
			out.MulElem(c, x)
		} else {
			out.DivElem(x, c)
		}

		return &out, nil

	case linop.SumEntries:
		return mat.NewDense(1, 1, []float64{mat.Sum(args[0])}), nil

	case linop.Trace:
		if r, c := args[0].Dims(); r != c {
			return nil, ErrShape
		}

		return mat.NewDense(1, 1, []float64{mat.Trace(args[0])}), nil

	case linop.Index:
		rows, cols := n.Index()
		xr, xc := args[0].Dims()
		out := mat.NewDense(len(rows), len(cols), nil)
		for b, j := range cols {
			for a, i := range rows {
				if i < 0 || i >= xr || j < 0 || j >= xc {
					return nil, ErrShape
				}
				out.Set(a, b, args[0].At(i, j))
			}
		}

		return out, nil

	case linop.Transpose:
		return mat.DenseCopyOf(args[0].T()), nil

	case linop.Reshape, linop.NoOp:
		flat := ColumnMajor(args[0])
		if len(flat) != s.Size() {
			return nil, ErrShape
		}

		return fromColumnMajor(s.Rows, s.Cols, flat), nil

	case linop.Promote:
		if !isScalar(args[0]) {
			return nil, ErrShape
		}

		return fromColumnMajor(s.Rows, s.Cols, repeat(args[0].At(0, 0), s.Size())), nil

	case linop.DiagVec:
		flat := ColumnMajor(args[0])
		out := mat.NewDense(len(flat), len(flat), nil)
		for i, v := range flat {
			out.Set(i, i, v)
		}

		return out, nil

	case linop.DiagMat:
		r, c := args[0].Dims()
		if r != c {
			return nil, ErrShape
		}
		out := mat.NewDense(r, 1, nil)
		for i := 0; i < r; i++ {
			out.Set(i, 0, args[0].At(i, i))
		}

		return out, nil

	case linop.UpperTri:
		r, c := args[0].Dims()
		if r != c || r < 2 {
			return nil, ErrShape
		}
		var vals []float64
		for i := 0; i < r; i++ {
			for j := i + 1; j < r; j++ {
				vals = append(vals, args[0].At(i, j))
			}
		}

		return mat.NewDense(len(vals), 1, vals), nil

	case linop.HStack, linop.VStack:
		out := mat.DenseCopyOf(args[0])
		for _, a := range args[1:] {
			outR, outC := out.Dims()
			ar, ac := a.Dims()
			var next mat.Dense
			if n.Kind() == linop.HStack {
				if outR != ar {
					return nil, ErrShape
				}
				next.Augment(out, a)
			} else {
				if outC != ac {
					return nil, ErrShape
				}
				next.Stack(out, a)
			}
			out = &next
		}

		return out, nil

	case linop.Conv:
		k, x := ColumnMajor(args[0]), ColumnMajor(args[1])
		y := make([]float64, len(k)+len(x)-1)
		for i, kv := range k {
			for j, xv := range x {
				y[i+j] += kv * xv
			}
		}

		return mat.NewDense(len(y), 1, y), nil

	case linop.Kron:
		var out mat.Dense
		out.Kronecker(args[0], args[1])

		return &out, nil
	}

	return nil, fmt.Errorf("kind %s: %w", n.Kind(), ErrUnsupported)
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}
