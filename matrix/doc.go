// Package matrix offers the dense numeric payloads carried by constant LinOp
// leaves and constant operands.
//
// The matrix package provides:
//
//   - Dense, a column-major float64 block whose flat layout equals the
//     canonical flattening used throughout lincanon (vec(M) stacks columns).
//   - A numeric policy (epsilon, NaN/Inf rejection) configured through
//     functional options and shared with the canonicalization engine.
//   - Central validators returning plain sentinel errors.
//
// Dense blocks are bounded by the size of individual constants; nothing in
// this package scales with the size of a whole problem. Sparse coefficient
// blocks live in package sparse.
package matrix
