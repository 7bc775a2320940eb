// Package canon compiles LinOp graphs into sparse affine form.
//
// What:
//
//   - Compile / Compiler: post-order traversal of a linop graph that runs one
//     coefficient rule per distinct node and memoizes the result by node
//     identity, producing a CoeffMap (one sparse block per variable plus a
//     constant column) for the root.
//   - Assemble: lays the root's blocks out in the caller's column ordering,
//     yielding A (CSC) and b such that value = A·x + b.
//   - Build: compiles several roots with one cache and stacks them.
//
// Rules:
//
//	VARIABLE        identity block, zero constant
//	*_CONST         no blocks, constant = vec(data)
//	SUM / NEG       blockwise add / negate
//	MUL             C·X: I_n ⊗ C  (C scalar: scale; X scalar: vec(C))
//	RMUL            X·C: Cᵀ ⊗ I_m (same scalar shortcuts)
//	MUL_ELEM / DIV  diag(vec(C)) / diag(1/vec(C)), scalar C broadcasts
//	SUM_ENTRIES     1ᵀ
//	TRACE, INDEX, TRANSPOSE, DIAG_MAT, UPPER_TRI   row selections
//	DIAG_VEC        diagonal embedding
//	PROMOTE         1 ⊗ scalar
//	RESHAPE, NO_OP  pass-through
//	HSTACK / VSTACK placement per child, summed in child order
//	CONV            Toeplitz of the constant side applied to the other side
//	KRON            Kronecker operator of the constant side
//
// Errors:
//
//	Every failure is a *NodeError carrying the offending node's ID and kind
//	and unwrapping to ErrMalformedGraph, ErrUnsupportedOperand,
//	ErrDivisionByZero, ErrNonFinite, ErrMissingVariable or ErrBadVariableOrder.
//
// Concurrency:
//
//	A Compiler is single-goroutine. Distinct Compilers share nothing, and the
//	graphs they read are immutable, so independent problems may be compiled
//	in parallel.
package canon
