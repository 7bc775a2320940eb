// Package lincanon lowers affine expression graphs into the sparse matrix
// form conic solvers consume.
//
// 🚀 What is lincanon?
//
//	An engine that takes a DAG of linear operators over matrix variables
//	and produces A (compressed sparse column) and b with value = A·x + b:
//		• Operator graph: 24 node kinds, shared sub-expressions, immutable nodes
//		• Canonicalization: one coefficient rule per kind, memoized per node
//		• Assembly: caller-chosen variable ordering, stacked multi-root output
//		• Conic formatting: c, (A, b), (G, h) and cone dimensions
//		• YAML interchange and a small CLI
//
// ✨ Why choose lincanon?
//
//   - Deterministic - identical graphs give byte-identical CSC arrays
//   - Deep graphs - compilation and walks run on explicit stacks
//   - Typed errors - every failure names the node that caused it
//
// Packages:
//
//	matrix/      column-major dense payloads with validation options
//	sparse/      CSC matrices, triplet builder, Kronecker and stacking
//	linop/       node kinds, shapes, constructors and graph walks
//	canon/       compiler, coefficient maps, assembly and Build
//	eval/        direct dense evaluation of a graph (gonum)
//	conic/       cone-program formatting and solver status mapping
//	problemfile/ YAML documents in, YAML results out
//	cmd/lincanon command-line front end
//
// Quick example: x ∈ ℝ², root = I·x + [3 4]ᵀ gives A = I, b = [3 4].
//
//	go get github.com/katalvlaran/lincanon
package lincanon
