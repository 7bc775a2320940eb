// SPDX-License-Identifier: MIT

package canon

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/sparse"
)

// CoeffMap is the compiled form of one node: for every variable the node
// depends on, a block of shape Rows×size(variable) giving that variable's
// linear contribution to the node's flattened value, plus a Rows×1 constant.
//
// A CoeffMap is read-only once built. Rules never modify their inputs; the
// compiler cache and any number of parents may share one map.
type CoeffMap struct {
	rows     int
	ids      []int // ascending
	blocks   map[int]*sparse.Matrix
	constant *sparse.Matrix
}

// Rows returns the flattened output size shared by every block.
func (m *CoeffMap) Rows() int { return m.rows }

// VarIDs returns the referenced variable identities in ascending order.
func (m *CoeffMap) VarIDs() []int { return append([]int(nil), m.ids...) }

// NumVars returns the number of referenced variables.
func (m *CoeffMap) NumVars() int { return len(m.ids) }

// Block returns the coefficient block of variable id.
func (m *CoeffMap) Block(id int) (*sparse.Matrix, bool) {
	b, ok := m.blocks[id]

	return b, ok
}

// Constant returns the Rows×1 offset column.
func (m *CoeffMap) Constant() *sparse.Matrix { return m.constant }

// IsConstant reports a map with no variable blocks.
func (m *CoeffMap) IsConstant() bool { return len(m.ids) == 0 }

// String summarises the map, e.g. "CoeffMap(rows=4, vars=[0 2], nnz=7)".
func (m *CoeffMap) String() string {
	nnz := m.constant.NNZ()
	for _, id := range m.ids {
		nnz += m.blocks[id].NNZ()
	}

	return fmt.Sprintf("CoeffMap(rows=%d, vars=%v, nnz=%d)", m.rows, m.ids, nnz)
}

// mapBuilder collects blocks for a map under construction.
type mapBuilder struct {
	m *CoeffMap
}

func newMapBuilder(rows int) *mapBuilder {
	c, _ := sparse.Zeros(rows, 1) // rows >= 0 is checked by the compiler

	return &mapBuilder{m: &CoeffMap{rows: rows, blocks: make(map[int]*sparse.Matrix), constant: c}}
}

// add accumulates blk into the block of id.
func (b *mapBuilder) add(id int, blk *sparse.Matrix) error {
	prev, ok := b.m.blocks[id]
	if !ok {
		b.m.blocks[id] = blk
		b.m.ids = append(b.m.ids, id)
		return nil
	}
	sum, err := sparse.Add(prev, blk)
	if err != nil {
		return malformed("variable %d: %v", id, err)
	}
	b.m.blocks[id] = sum

	return nil
}

// addConstant accumulates c into the constant column.
func (b *mapBuilder) addConstant(c *sparse.Matrix) error {
	sum, err := sparse.Add(b.m.constant, c)
	if err != nil {
		return malformed("constant: %v", err)
	}
	b.m.constant = sum

	return nil
}

// done seals the map.
func (b *mapBuilder) done() *CoeffMap {
	sort.Ints(b.m.ids)

	return b.m
}

// variableMap is the map of a VARIABLE leaf: identity block, zero constant.
func variableMap(n *linop.Node) (*CoeffMap, error) {
	size := n.Shape().Size()
	id, err := sparse.Identity(size)
	if err != nil {
		return nil, malformed("variable %d shape %s", n.VarID(), n.Shape())
	}
	b := newMapBuilder(size)
	_ = b.add(n.VarID(), id)

	return b.done(), nil
}

// constantMap is the map of a constant leaf: no blocks, vec(data) constant.
func constantMap(rows int, data *sparse.Matrix) *CoeffMap {
	b := newMapBuilder(rows)
	b.m.constant = sparse.Vec(data)

	return b.done()
}

// apply left-multiplies every block and the constant of m by op.
// op.Cols must equal m.Rows; the result has op.Rows rows.
func apply(op *sparse.Matrix, m *CoeffMap) (*CoeffMap, error) {
	if op.Cols() != m.rows {
		return nil, malformed("operator %dx%d against %d rows", op.Rows(), op.Cols(), m.rows)
	}
	b := newMapBuilder(op.Rows())
	for _, id := range m.ids {
		blk, err := sparse.Mul(op, m.blocks[id])
		if err != nil {
			return nil, malformed("variable %d: %v", id, err)
		}
		_ = b.add(id, blk)
	}
	c, err := sparse.Mul(op, m.constant)
	if err != nil {
		return nil, malformed("constant: %v", err)
	}
	b.m.constant = c

	return b.done(), nil
}

// scale multiplies every block and the constant of m by alpha.
func scale(alpha float64, m *CoeffMap) *CoeffMap {
	b := newMapBuilder(m.rows)
	for _, id := range m.ids {
		_ = b.add(id, sparse.Scale(alpha, m.blocks[id]))
	}
	b.m.constant = sparse.Scale(alpha, m.constant)

	return b.done()
}

// sum adds maps of equal row count, in argument order.
func sum(rows int, maps ...*CoeffMap) (*CoeffMap, error) {
	b := newMapBuilder(rows)
	for k, m := range maps {
		if m.rows != rows {
			return nil, malformed("term %d has %d rows, want %d", k, m.rows, rows)
		}
		for _, id := range m.ids {
			if err := b.add(id, m.blocks[id]); err != nil {
				return nil, err
			}
		}
		if err := b.addConstant(m.constant); err != nil {
			return nil, err
		}
	}

	return b.done(), nil
}
