// Package conic turns an objective and a list of cone constraints over linop
// graphs into the data an interior-point conic solver consumes:
//
//	minimize    cᵀx + offset
//	subject to  A·x = b
//	            G·x + s = h,  s ∈ K
//
// K is the product of a nonnegative orthant of dimension L, second-order
// cones of dimensions Q[0], Q[1], ... and E exponential cones, stacked in
// that order.
//
// Constraint arguments are affine expressions and are read as:
//
//	EQ   arg = 0
//	LEQ  arg ≤ 0
//	SOC  ‖args[1:]‖ ≤ args[0], every argument flattened and concatenated
//	EXP  (x, y, z) = args, elementwise y·exp(x/y) ≤ z
//
// The solver's exit code is mapped back by CanonicalizeStatus and
// Data.Solution.
package conic
