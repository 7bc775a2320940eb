// SPDX-License-Identifier: MIT

package conic

import (
	"fmt"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/sparse"
)

// Sense is the optimization direction of the objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}

	return "minimize"
}

// ConstraintKind selects the cone a constraint lives in.
type ConstraintKind int

const (
	EQ ConstraintKind = iota
	LEQ
	SOC
	EXP
)

var constraintNames = [...]string{EQ: "EQ", LEQ: "LEQ", SOC: "SOC", EXP: "EXP"}

func (k ConstraintKind) String() string {
	if k < 0 || int(k) >= len(constraintNames) {
		return fmt.Sprintf("ConstraintKind(%d)", int(k))
	}

	return constraintNames[k]
}

// Constraint is one cone membership over affine arguments.
// EQ and LEQ take exactly one argument, EXP exactly three of equal size,
// SOC one or more.
type Constraint struct {
	Kind ConstraintKind
	Args []*linop.Node
}

// Problem is a conic program over the variables listed in Order.
type Problem struct {
	Sense       Sense
	Objective   *linop.Node // 1×1
	Constraints []Constraint
	Order       []canon.VarOffset
	// NumVars, when non-zero, must equal the total size of Order.
	NumVars int
}

// Dims are the cone dimensions of the inequality block.
type Dims struct {
	L int   // nonnegative orthant rows
	Q []int // one entry per second-order cone
	E int   // exponential cones, three rows each
}

// Rows is the number of inequality rows the dimensions account for.
func (d Dims) Rows() int {
	n := d.L + 3*d.E
	for _, q := range d.Q {
		n += q
	}

	return n
}

// Data is the formatted program. A and G have one column per variable entry.
type Data struct {
	Sense  Sense
	N      int // variables
	C      []float64
	// Offset is the objective constant in the minimized sign. For Maximize
	// it is negated together with C, so the program's optimum is
	// -(pcost + Offset), not pcost + Offset. Solution applies the sign.
	Offset float64
	A      *sparse.Matrix // p×N
	B      []float64
	G      *sparse.Matrix // Dims.Rows()×N
	H      []float64
	Dims   Dims
}

// P is the number of equality rows.
func (d *Data) P() int { return len(d.B) }

// M is the number of inequality rows.
func (d *Data) M() int { return len(d.H) }
