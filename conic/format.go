// SPDX-License-Identifier: MIT

package conic

import (
	"fmt"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/sparse"
)

// expSpacing is the row stride of interleaved exponential cones.
const expSpacing = 3

// Format canonicalizes p into solver data.
// MAIN DESCRIPTION:
//   - The objective, the equalities and the inequalities are compiled by one
//     canon.Compiler, so sub-expressions shared across them are lowered once.
//   - c is the objective's single coefficient row and Offset its constant.
//     Maximize negates both so the solver always minimizes.
//   - Equality rows follow constraint order; inequality rows are all LEQ
//     rows, then every SOC, then every EXP, each group in constraint order.
//   - b and h are the negated constants: arg = A·x + k = 0 gives A·x = −k.
//
// Errors:
//   - ErrNoObjective, ErrObjectiveShape, ErrNumVars, ErrBadConstraint.
//   - *canon.NodeError from compilation or assembly.
//
// Complexity:
//   - Time O(distinct nodes + nnz) as in canon.Build.
func Format(p *Problem, opts ...canon.Option) (*Data, error) {
	if p == nil || p.Objective == nil {
		return nil, ErrNoObjective
	}
	if s := p.Objective.Shape(); s.Size() != 1 {
		return nil, fmt.Errorf("objective is %s: %w", s, ErrObjectiveShape)
	}
	n := 0
	for _, v := range p.Order {
		n += v.Size
	}
	if p.NumVars != 0 && p.NumVars != n {
		return nil, fmt.Errorf("NumVars %d, ordering covers %d: %w", p.NumVars, n, ErrNumVars)
	}

	// Stage 1: route constraints into the equality and cone groups.
	var (
		eq, leq, soc, exp []*linop.Node
		dims              Dims
	)
	for i, c := range p.Constraints {
		for _, a := range c.Args {
			if a == nil {
				return nil, constraintErrorf(i, c.Kind, "nil argument")
			}
		}
		switch c.Kind {
		case EQ, LEQ:
			if len(c.Args) != 1 {
				return nil, constraintErrorf(i, c.Kind, "want 1 argument, got %d", len(c.Args))
			}
			if c.Kind == EQ {
				eq = append(eq, c.Args[0])
			} else {
				leq = append(leq, c.Args[0])
				dims.L += c.Args[0].Shape().Size()
			}
		case SOC:
			if len(c.Args) == 0 {
				return nil, constraintErrorf(i, c.Kind, "no arguments")
			}
			size := 0
			for _, a := range c.Args {
				soc = append(soc, linop.NewNeg(a))
				size += a.Shape().Size()
			}
			dims.Q = append(dims.Q, size)
		case EXP:
			root, cones, err := formatExp(c.Args)
			if err != nil {
				return nil, constraintErrorf(i, c.Kind, "%v", err)
			}
			exp = append(exp, root)
			dims.E += cones
		default:
			return nil, constraintErrorf(i, c.Kind, "unknown kind")
		}
	}

	// Stage 2: compile and assemble the three blocks with one cache.
	comp := canon.NewCompiler(opts...)
	obj, err := comp.Build([]*linop.Node{p.Objective}, p.Order)
	if err != nil {
		return nil, err
	}
	eqData, err := comp.Build(eq, p.Order)
	if err != nil {
		return nil, err
	}
	ineq := make([]*linop.Node, 0, len(leq)+len(soc)+len(exp))
	ineq = append(append(append(ineq, leq...), soc...), exp...)
	ineqData, err := comp.Build(ineq, p.Order)
	if err != nil {
		return nil, err
	}

	// Stage 3: objective row, sense and constant signs.
	d := &Data{
		Sense:  p.Sense,
		N:      n,
		C:      make([]float64, n),
		Offset: obj.B[0],
		A:      eqData.A,
		B:      negated(eqData.B),
		G:      ineqData.A,
		H:      negated(ineqData.B),
		Dims:   dims,
	}
	obj.A.Each(func(_, j int, v float64) { d.C[j] = v })
	if p.Sense == Maximize {
		d.C = negated(d.C)
		d.Offset = 0 - d.Offset
	}

	return d, nil
}

// formatExp interleaves the three arguments of an exponential constraint
// so that rows 3k, 3k+1 and 3k+2 hold −x_k, −z_k and −y_k: cone k is
// (x_k, y_k, z_k) in the solver's ordering.
func formatExp(args []*linop.Node) (*linop.Node, int, error) {
	if len(args) != expSpacing {
		return nil, 0, fmt.Errorf("want %d arguments, got %d", expSpacing, len(args))
	}
	size := args[0].Shape().Size()
	for _, a := range args[1:] {
		if a.Shape().Size() != size {
			return nil, 0, fmt.Errorf("argument sizes %d and %d differ", size, a.Shape().Size())
		}
	}
	slots := [expSpacing]*linop.Node{args[0], args[2], args[1]}
	terms := make([]*linop.Node, 0, expSpacing)
	for offset, a := range slots {
		s, err := spacingMatrix(size, offset)
		if err != nil {
			return nil, 0, err
		}
		terms = append(terms, linop.NewMulSparse(s, linop.NewReshape(a, size, 1)))
	}

	return linop.NewNeg(linop.NewSum(terms...)), size, nil
}

// spacingMatrix places entry k of an n-vector at row expSpacing·k + offset.
func spacingMatrix(n, offset int) (*sparse.Matrix, error) {
	t := sparse.NewTriplets(expSpacing*n, n)
	t.Grow(n)
	for k := 0; k < n; k++ {
		t.Add(expSpacing*k+offset, k, 1)
	}

	return t.Matrix()
}

// negated returns −v with zeros kept as +0.
func negated(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = 0 - x
	}

	return out
}
