// Package linop defines the immutable LinOp graph consumed by the
// canonicalization engine.
//
// What:
//
//   - Node: one primitive linear operation or leaf (variable / constant).
//     A Node records its Kind, its output Shape, its ordered children and an
//     optional payload (dense or sparse constant, variable id, index lists).
//   - Kind: the closed enumeration of operations (VARIABLE … NO_OP).
//   - Walk: a post-order traversal visiting each distinct node exactly once,
//     driven by an explicit stack so arbitrarily deep graphs are safe.
//
// Why:
//
//   - Nodes are created bottom-up and never mutated, so a graph is a DAG by
//     construction and the *Node pointer is a stable identity usable as a
//     cache key. Shared sub-expressions are simply nodes with several parents.
//   - Constructors compute the declared output shape but do not validate it;
//     the compiler checks arity and shapes eagerly when a rule first needs
//     them, and reports the offending node.
//
// Flattening:
//
//	Every value is flattened column-major: entry (i, j) of an r×c value sits
//	at position i + j·r. All row counts in the engine refer to this order.
package linop
