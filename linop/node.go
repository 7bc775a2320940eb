// SPDX-License-Identifier: MIT

package linop

import (
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/lincanon/matrix"
	"github.com/katalvlaran/lincanon/sparse"
)

// Shape is the declared output shape of a node.
type Shape struct {
	Rows int
	Cols int
}

// Size returns Rows*Cols, the length of the flattened value.
func (s Shape) Size() int { return s.Rows * s.Cols }

// IsScalar reports a 1×1 shape.
func (s Shape) IsScalar() bool { return s.Rows == 1 && s.Cols == 1 }

// String renders "RxC".
func (s Shape) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// nextID hands out process-unique node identifiers for diagnostics.
var nextID atomic.Uint64

// Node is one immutable vertex of a LinOp graph.
type Node struct {
	id    uint64
	kind  Kind
	shape Shape
	args  []*Node

	dense  *matrix.Dense  // dense constant payload or constant operand
	sp     *sparse.Matrix // sparse constant payload or constant operand
	varID  int            // VARIABLE only
	rowIdx []int          // INDEX only
	colIdx []int          // INDEX only
}

// NodeOption attaches a payload to a node under construction.
type NodeOption func(*Node)

// WithDense attaches a dense constant payload.
func WithDense(d *matrix.Dense) NodeOption {
	return func(n *Node) { n.dense = d }
}

// WithSparse attaches a sparse constant payload.
func WithSparse(m *sparse.Matrix) NodeOption {
	return func(n *Node) { n.sp = m }
}

// WithVarID sets the variable identity of a VARIABLE node.
func WithVarID(id int) NodeOption {
	return func(n *Node) { n.varID = id }
}

// WithIndex sets the per-axis index lists of an INDEX node. The lists are copied.
func WithIndex(rows, cols []int) NodeOption {
	return func(n *Node) {
		n.rowIdx = append([]int(nil), rows...)
		n.colIdx = append([]int(nil), cols...)
	}
}

// New is the general constructor: it records kind, declared shape, children
// and payload verbatim. Nothing is validated here; the compiler reports
// arity and shape violations against this node's ID.
func New(kind Kind, shape Shape, args []*Node, opts ...NodeOption) *Node {
	n := &Node{
		id:    nextID.Add(1),
		kind:  kind,
		shape: shape,
		args:  append([]*Node(nil), args...),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// ID returns the process-unique identifier of n.
func (n *Node) ID() uint64 { return n.id }

// Kind returns the operation kind.
func (n *Node) Kind() Kind { return n.kind }

// Shape returns the declared output shape.
func (n *Node) Shape() Shape { return n.shape }

// NumArgs returns the number of children.
func (n *Node) NumArgs() int { return len(n.args) }

// Arg returns the i-th child.
func (n *Node) Arg(i int) *Node { return n.args[i] }

// Args returns a copy of the children slice.
func (n *Node) Args() []*Node { return append([]*Node(nil), n.args...) }

// Dense returns the dense payload, or nil.
func (n *Node) Dense() *matrix.Dense { return n.dense }

// Sparse returns the sparse payload, or nil.
func (n *Node) Sparse() *sparse.Matrix { return n.sp }

// HasData reports whether a constant payload is attached.
func (n *Node) HasData() bool { return n.dense != nil || n.sp != nil }

// VarID returns the variable identity (VARIABLE nodes only).
func (n *Node) VarID() int { return n.varID }

// Index returns copies of the row and column index lists (INDEX nodes only).
func (n *Node) Index() (rows, cols []int) {
	return append([]int(nil), n.rowIdx...), append([]int(nil), n.colIdx...)
}

// Data returns the constant payload as a sparse matrix in its own shape,
// converting a dense payload when needed. It returns nil without payload.
func (n *Node) Data() *sparse.Matrix {
	switch {
	case n.sp != nil:
		return n.sp
	case n.dense != nil:
		return sparse.FromDense(n.dense)
	default:
		return nil
	}
}

// DataShape returns the shape of the attached payload.
func (n *Node) DataShape() Shape {
	switch {
	case n.sp != nil:
		return Shape{Rows: n.sp.Rows(), Cols: n.sp.Cols()}
	case n.dense != nil:
		return Shape{Rows: n.dense.Rows(), Cols: n.dense.Cols()}
	default:
		return Shape{}
	}
}

// String renders "KIND#id(RxC)".
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s#%d(%s)", n.kind, n.id, n.shape)
}
