// Package sparse implements the compressed sparse column (CSC) blocks that
// carry every coefficient in lincanon.
//
// What:
//
//   - Matrix: an immutable r×c CSC matrix. Row indices inside each column are
//     strictly increasing and explicit zeros are never stored, so two equal
//     matrices always have identical arrays (Equal is a plain comparison).
//   - Triplets: an accumulation builder. Entries are appended as (i, j, v)
//     and summed on compression, in insertion order, which keeps results
//     bit-identical between runs.
//   - Algebra: Add, Scale, Neg, Mul (Gustavson), Transpose, Kron, HStack,
//     VStack, SelectRows, SelectCols, Reshape, MulVec.
//   - Operator constructors: Zeros, Identity, Diag, Ones, FromDense.
//
// Why:
//
//   - LinOp rules are linear maps applied to coefficient blocks; most of them
//     are "multiply by a fixed sparse operator", so a single well-tested Mul
//     carries the bulk of the engine.
//   - The CSC arrays are what conic solvers consume directly (CSC()).
//
// Complexity:
//
//   - Add: O(nnz(a)+nnz(b)); Mul: O(flops + nnz(out)·log) with an O(rows)
//     scatter workspace; Transpose/HStack/VStack/SelectCols: O(nnz + cols).
//   - No operation allocates dense storage proportional to the full problem.
//
// Errors:
//
//   - ErrBadShape          negative dimensions
//   - ErrOutOfRange        index outside the matrix
//   - ErrDimensionMismatch incompatible operands
//   - ErrMalformedCSC      inconsistent raw CSC arrays
package sparse
