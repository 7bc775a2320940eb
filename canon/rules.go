// SPDX-License-Identifier: MIT
// Package canon - per-kind coefficient rules.
//
// A rule receives the node and the already compiled maps of its children,
// in argument order, and returns a fresh map for the node. Rules treat child
// maps as read-only. Arity is checked by the compiler before dispatch; the
// row count of the returned map is checked after.

package canon

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
	"github.com/katalvlaran/lincanon/sparse"
)

// rule compiles one node from its children's maps.
type rule func(n *linop.Node, args []*CoeffMap, cfg *resolved) (*CoeffMap, error)

// arity bounds the child count of a kind; max < 0 means unbounded.
type arity struct{ min, max int }

// ruleEntry pairs a kind's arity with its rule.
type ruleEntry struct {
	arity arity
	fn    rule
}

var (
	leaf   = arity{0, 0}
	unary  = arity{1, 1}
	binary = arity{2, 2}
)

// rules is the dispatch table, indexed by kind.
var rules = [linop.NumKinds]ruleEntry{
	linop.Variable:    {leaf, ruleVariable},
	linop.ScalarConst: {leaf, ruleConstant},
	linop.DenseConst:  {leaf, ruleConstant},
	linop.SparseConst: {leaf, ruleConstant},
	linop.Sum:         {arity{1, -1}, ruleSum},
	linop.Neg:         {unary, ruleNeg},
	linop.Mul:         {unary, ruleMul},
	linop.RMul:        {unary, ruleRMul},
	linop.MulElem:     {unary, ruleMulElem},
	linop.Div:         {unary, ruleDiv},
	linop.SumEntries:  {unary, ruleSumEntries},
	linop.Trace:       {unary, ruleTrace},
	linop.Index:       {unary, ruleIndex},
	linop.Transpose:   {unary, ruleTranspose},
	linop.Reshape:     {unary, rulePassThrough},
	linop.Promote:     {unary, rulePromote},
	linop.DiagVec:     {unary, ruleDiagVec},
	linop.DiagMat:     {unary, ruleDiagMat},
	linop.UpperTri:    {unary, ruleUpperTri},
	linop.HStack:      {arity{2, -1}, ruleHStack},
	linop.VStack:      {arity{2, -1}, ruleVStack},
	linop.Conv:        {binary, ruleConv},
	linop.Kron:        {binary, ruleKron},
	linop.NoOp:        {unary, rulePassThrough},
}

// lookup returns the table entry for k.
func lookup(k linop.Kind) (ruleEntry, error) {
	if !k.Valid() || rules[k].fn == nil {
		return ruleEntry{}, malformed("unknown kind %s", k)
	}

	return rules[k], nil
}

// check validates the child count against the entry's arity.
func (e ruleEntry) check(got int) error {
	if got < e.arity.min || (e.arity.max >= 0 && got > e.arity.max) {
		if e.arity.max < 0 {
			return malformed("arity %d, want at least %d", got, e.arity.min)
		}

		return malformed("arity %d, want %d", got, e.arity.min)
	}

	return nil
}

// checkFinite rejects non-finite constant data when the policy asks for it.
// Dense payloads are scanned in place; sparse ones only over stored entries.
func checkFinite(n *linop.Node, data *sparse.Matrix, cfg *resolved) error {
	if !cfg.num.ValidateNaNInf() {
		return nil
	}
	if d := n.Dense(); d != nil {
		if err := matrix.ValidateFinite(d); err != nil {
			return fmt.Errorf("%v: %w", err, ErrNonFinite)
		}
		return nil
	}
	var bad error
	data.Each(func(i, j int, v float64) {
		if bad == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			bad = fmt.Errorf("entry (%d,%d) = %v: %w", i, j, v, ErrNonFinite)
		}
	})

	return bad
}

// operand returns the constant operand carried by n, validated.
func operand(n *linop.Node, cfg *resolved) (*sparse.Matrix, error) {
	if !n.HasData() {
		return nil, malformed("%s without constant operand", n.Kind())
	}
	c := n.Data()
	if err := checkFinite(n, c, cfg); err != nil {
		return nil, err
	}

	return c, nil
}

func ruleVariable(n *linop.Node, _ []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	return variableMap(n)
}

func ruleConstant(n *linop.Node, _ []*CoeffMap, cfg *resolved) (*CoeffMap, error) {
	c, err := operand(n, cfg)
	if err != nil {
		return nil, err
	}
	if ds := n.DataShape(); ds != n.Shape() {
		return nil, malformed("payload %s, declared %s", ds, n.Shape())
	}

	return constantMap(n.Shape().Size(), c), nil
}

func ruleSum(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	return sum(n.Shape().Size(), args...)
}

func ruleNeg(_ *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	return scale(-1, args[0]), nil
}

func rulePassThrough(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	if args[0].Rows() != n.Shape().Size() {
		return nil, malformed("%s of %d entries into %s", n.Kind(), args[0].Rows(), n.Shape())
	}

	return args[0], nil
}

// scalarOf returns the value of a 1×1 operand.
func scalarOf(c *sparse.Matrix) float64 {
	v, _ := c.At(0, 0)

	return v
}

func ruleMul(n *linop.Node, args []*CoeffMap, cfg *resolved) (*CoeffMap, error) {
	c, err := operand(n, cfg)
	if err != nil {
		return nil, err
	}
	xs := n.Arg(0).Shape()
	switch {
	case c.Rows() == 1 && c.Cols() == 1:
		return scale(scalarOf(c), args[0]), nil
	case xs.IsScalar():
		return apply(sparse.Vec(c), args[0])
	case c.Cols() != xs.Rows:
		return nil, malformed("MUL %dx%d by %s", c.Rows(), c.Cols(), xs)
	}
	op, err := mulOp(c, xs.Cols)
	if err != nil {
		return nil, malformed("MUL: %v", err)
	}

	return apply(op, args[0])
}

func ruleRMul(n *linop.Node, args []*CoeffMap, cfg *resolved) (*CoeffMap, error) {
	c, err := operand(n, cfg)
	if err != nil {
		return nil, err
	}
	xs := n.Arg(0).Shape()
	switch {
	case c.Rows() == 1 && c.Cols() == 1:
		return scale(scalarOf(c), args[0]), nil
	case xs.IsScalar():
		return apply(sparse.Vec(c), args[0])
	case xs.Cols != c.Rows():
		return nil, malformed("RMUL %s by %dx%d", xs, c.Rows(), c.Cols())
	}
	op, err := rmulOp(c, xs.Rows)
	if err != nil {
		return nil, malformed("RMUL: %v", err)
	}

	return apply(op, args[0])
}

func ruleMulElem(n *linop.Node, args []*CoeffMap, cfg *resolved) (*CoeffMap, error) {
	c, err := operand(n, cfg)
	if err != nil {
		return nil, err
	}
	if c.Rows() == 1 && c.Cols() == 1 {
		return scale(scalarOf(c), args[0]), nil
	}
	if c.Rows()*c.Cols() != args[0].Rows() {
		return nil, malformed("MUL_ELEM %dx%d by %d entries", c.Rows(), c.Cols(), args[0].Rows())
	}

	return apply(sparse.Diag(c.ColumnMajor()), args[0])
}

func ruleDiv(n *linop.Node, args []*CoeffMap, cfg *resolved) (*CoeffMap, error) {
	c, err := operand(n, cfg)
	if err != nil {
		return nil, err
	}
	d := n.Dense()
	if d == nil {
		if d, err = c.Dense(matrix.WithNoValidateNaNInf()); err != nil {
			return nil, malformed("DIV divisor: %v", err)
		}
	}
	if k := matrix.FirstZero(d, cfg.num); k >= 0 {
		return nil, fmt.Errorf("divisor entry %d: %w", k, ErrDivisionByZero)
	}
	vals := d.Data()
	if len(vals) == 1 {
		return scale(1/vals[0], args[0]), nil
	}
	if len(vals) != args[0].Rows() {
		return nil, malformed("DIV %d entries by %dx%d", args[0].Rows(), c.Rows(), c.Cols())
	}
	for k := range vals {
		vals[k] = 1 / vals[k]
	}

	return apply(sparse.Diag(vals), args[0])
}

func ruleSumEntries(_ *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	op, err := sparse.Ones(1, args[0].Rows())
	if err != nil {
		return nil, malformed("SUM_ENTRIES: %v", err)
	}

	return apply(op, args[0])
}

// square returns n for an n×n child, failing otherwise.
func square(n *linop.Node) (int, error) {
	s := n.Arg(0).Shape()
	if s.Rows != s.Cols {
		return 0, malformed("%s of non-square %s", n.Kind(), s)
	}

	return s.Rows, nil
}

func ruleTrace(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	k, err := square(n)
	if err != nil {
		return nil, err
	}
	op, err := traceOp(k)
	if err != nil {
		return nil, malformed("TRACE: %v", err)
	}

	return apply(op, args[0])
}

func ruleIndex(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	s := n.Arg(0).Shape()
	rows, cols := n.Index()
	op, err := indexOp(s.Rows, s.Cols, rows, cols)
	if err != nil {
		return nil, err
	}

	return apply(op, args[0])
}

func ruleTranspose(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	s := n.Arg(0).Shape()
	op, err := transposeOp(s.Rows, s.Cols)
	if err != nil {
		return nil, malformed("TRANSPOSE: %v", err)
	}

	return apply(op, args[0])
}

func rulePromote(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	if args[0].Rows() != 1 {
		return nil, malformed("PROMOTE of %d entries", args[0].Rows())
	}
	op, err := sparse.Ones(n.Shape().Size(), 1)
	if err != nil {
		return nil, malformed("PROMOTE: %v", err)
	}

	return apply(op, args[0])
}

func ruleDiagVec(_ *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	op, err := diagVecOp(args[0].Rows())
	if err != nil {
		return nil, malformed("DIAG_VEC: %v", err)
	}

	return apply(op, args[0])
}

func ruleDiagMat(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	k, err := square(n)
	if err != nil {
		return nil, err
	}
	op, err := diagMatOp(k)
	if err != nil {
		return nil, malformed("DIAG_MAT: %v", err)
	}

	return apply(op, args[0])
}

func ruleUpperTri(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	k, err := square(n)
	if err != nil {
		return nil, err
	}
	op, err := upperTriOp(k)
	if err != nil {
		return nil, malformed("UPPER_TRI: %v", err)
	}

	return apply(op, args[0])
}

// stack applies one placement operator per child and sums the results in
// child order. Variables missing from a child simply receive nothing from it.
func stack(n *linop.Node, args []*CoeffMap, place func(k int) (*sparse.Matrix, error)) (*CoeffMap, error) {
	parts := make([]*CoeffMap, len(args))
	for k, a := range args {
		op, err := place(k)
		if err != nil {
			return nil, err
		}
		if parts[k], err = apply(op, a); err != nil {
			return nil, err
		}
	}

	return sum(n.Shape().Size(), parts...)
}

func ruleHStack(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	out := n.Shape()
	off := 0
	cm, err := stack(n, args, func(k int) (*sparse.Matrix, error) {
		s := n.Arg(k).Shape()
		if s.Rows != out.Rows {
			return nil, malformed("HSTACK arg %d has %d rows, want %d", k, s.Rows, out.Rows)
		}
		if off+s.Cols > out.Cols {
			return nil, malformed("HSTACK args exceed %d columns", out.Cols)
		}
		op, err := hstackOp(out.Size(), s.Rows, s.Cols, off)
		if err != nil {
			return nil, malformed("HSTACK: %v", err)
		}
		off += s.Cols

		return op, nil
	})
	if err != nil {
		return nil, err
	}
	if off != out.Cols {
		return nil, malformed("HSTACK args span %d columns, want %d", off, out.Cols)
	}

	return cm, nil
}

func ruleVStack(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	out := n.Shape()
	off := 0
	cm, err := stack(n, args, func(k int) (*sparse.Matrix, error) {
		s := n.Arg(k).Shape()
		if s.Cols != out.Cols {
			return nil, malformed("VSTACK arg %d has %d cols, want %d", k, s.Cols, out.Cols)
		}
		if off+s.Rows > out.Rows {
			return nil, malformed("VSTACK args exceed %d rows", out.Rows)
		}
		op, err := vstackOp(out.Rows, s.Rows, s.Cols, off)
		if err != nil {
			return nil, malformed("VSTACK: %v", err)
		}
		off += s.Rows

		return op, nil
	})
	if err != nil {
		return nil, err
	}
	if off != out.Rows {
		return nil, malformed("VSTACK args span %d rows, want %d", off, out.Rows)
	}

	return cm, nil
}

func ruleConv(_ *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	kernel, signal := args[0], args[1]
	if !kernel.IsConstant() {
		if !signal.IsConstant() {
			return nil, fmt.Errorf("CONV of two non-constant operands: %w", ErrUnsupportedOperand)
		}
		// Convolution commutes.
		kernel, signal = signal, kernel
	}
	op, err := toeplitzOp(kernel.Constant().ColumnMajor(), signal.Rows())
	if err != nil {
		return nil, err
	}

	return apply(op, signal)
}

func ruleKron(n *linop.Node, args []*CoeffMap, _ *resolved) (*CoeffMap, error) {
	ls, rs := n.Arg(0).Shape(), n.Arg(1).Shape()
	left, right := args[0], args[1]
	switch {
	case left.IsConstant():
		l, err := sparse.Reshape(left.Constant(), ls.Rows, ls.Cols)
		if err != nil {
			return nil, malformed("KRON left %s: %v", ls, err)
		}
		op, err := kronLeftOp(l, rs.Rows, rs.Cols)
		if err != nil {
			return nil, malformed("KRON: %v", err)
		}

		return apply(op, right)
	case right.IsConstant():
		r, err := sparse.Reshape(right.Constant(), rs.Rows, rs.Cols)
		if err != nil {
			return nil, malformed("KRON right %s: %v", rs, err)
		}
		op, err := kronRightOp(r, ls.Rows, ls.Cols)
		if err != nil {
			return nil, malformed("KRON: %v", err)
		}

		return apply(op, left)
	default:
		return nil, fmt.Errorf("KRON of two non-constant operands: %w", ErrUnsupportedOperand)
	}
}
