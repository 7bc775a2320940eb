// Package problemfile reads LinOp graphs from YAML documents and writes
// canonicalized results back as YAML.
//
// A document lists variables, then named nodes whose args refer to other
// nodes by name, then either affine roots or a conic problem:
//
//	variables:
//	  - {id: 0, shape: [2, 1]}
//	nodes:
//	  - {name: x, kind: variable, var: 0}
//	  - {name: c, kind: dense_const, data: [[3], [4]]}
//	  - {name: y, kind: mul, args: [x], data: [[1, 0], [0, 1]]}
//	  - {name: r, kind: sum, args: [y, c]}
//	roots: [r]
//
// Nodes may appear in any order. Build resolves names, rejects dangling
// references and cycles, and constructs the graph children first, so a
// node named twice as an argument becomes one shared *linop.Node.
package problemfile
