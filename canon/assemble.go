// SPDX-License-Identifier: MIT

package canon

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/sirkon/rbtree"

	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/sparse"
)

// VarOffset places one variable in the global column space: columns
// [Offset, Offset+Size) of A belong to variable ID.
type VarOffset struct {
	ID     int
	Offset int
	Size   int
}

// Result is an assembled affine expression: value = A·x + B.
type Result struct {
	A *sparse.Matrix // rows × Σ sizes
	B []float64      // length rows
}

// Apply evaluates A·x + B for a flattened variable vector x.
func (r *Result) Apply(x []float64) ([]float64, error) {
	y, err := sparse.MulVec(r.A, x)
	if err != nil {
		return nil, err
	}
	for i, b := range r.B {
		y[i] += b
	}

	return y, nil
}

// span is the closed column interval of one variable, ordered in the
// tree as "disjoint by position": any overlap compares equal.
type span struct {
	start, end int
	id         int
}

func (s *span) Cmp(other *span) int {
	if s.end < other.start {
		return -1
	}
	if s.start > other.end {
		return 1
	}

	return 0
}

// layout is a validated variable ordering.
type layout struct {
	cols   int
	sorted []VarOffset // ascending Offset
	byID   map[int]VarOffset
}

// newLayout validates order as a partition of [0, Σ sizes).
// Overlaps are found by inserting every non-empty range into an interval
// tree; with no overlap, ranges that all end below Σ sizes tile it exactly.
func newLayout(order []VarOffset) (*layout, error) {
	l := &layout{byID: make(map[int]VarOffset, len(order))}
	tree := rbtree.New[*span]()
	for _, v := range order {
		if v.Size < 0 || v.Offset < 0 {
			return nil, fmt.Errorf("variable %d at %d size %d: %w", v.ID, v.Offset, v.Size, ErrBadVariableOrder)
		}
		if _, dup := l.byID[v.ID]; dup {
			return nil, fmt.Errorf("variable %d listed twice: %w", v.ID, ErrBadVariableOrder)
		}
		l.byID[v.ID] = v
		l.cols += v.Size
		if v.Size == 0 {
			continue
		}
		s := &span{start: v.Offset, end: v.Offset + v.Size - 1, id: v.ID}
		if got := tree.InsertReturn(s); got != s {
			return nil, fmt.Errorf("variables %d and %d overlap: %w", got.id, v.ID, ErrBadVariableOrder)
		}
	}
	for _, v := range order {
		if v.Offset+v.Size > l.cols {
			return nil, fmt.Errorf("variable %d ends at %d past %d columns: %w", v.ID, v.Offset+v.Size, l.cols, ErrBadVariableOrder)
		}
	}
	l.sorted = append([]VarOffset(nil), order...)
	sort.SliceStable(l.sorted, func(i, j int) bool { return l.sorted[i].Offset < l.sorted[j].Offset })

	return l, nil
}

// assemble concatenates the blocks of cm in column order.
func (l *layout) assemble(cm *CoeffMap) (*Result, error) {
	for _, id := range cm.ids {
		if _, ok := l.byID[id]; !ok {
			return nil, fmt.Errorf("variable %d: %w", id, ErrMissingVariable)
		}
	}
	blocks := make([]*sparse.Matrix, 0, len(l.sorted))
	for _, v := range l.sorted {
		blk, ok := cm.blocks[v.ID]
		if !ok {
			z, err := sparse.Zeros(cm.rows, v.Size)
			if err != nil {
				return nil, fmt.Errorf("variable %d: %w", v.ID, ErrBadVariableOrder)
			}
			blocks = append(blocks, z)
			continue
		}
		if blk.Cols() != v.Size {
			return nil, malformed("variable %d has %d columns, ordering says %d", v.ID, blk.Cols(), v.Size)
		}
		blocks = append(blocks, blk)
	}
	a, err := sparse.HStack(blocks...)
	if err != nil {
		return nil, malformed("assemble: %v", err)
	}
	if len(blocks) == 0 {
		a, _ = sparse.Zeros(cm.rows, 0)
	}

	return &Result{A: a, B: cm.constant.ColumnMajor()}, nil
}

// Assemble turns a root map into (A, b) under the caller's ordering.
// MAIN DESCRIPTION:
//   - Variables are placed by offset; a variable the expression does not
//     use gets an all-zero block of its declared width.
//
// Errors:
//   - *NodeError wrapping ErrBadVariableOrder for overlaps, gaps, repeats
//     or negative sizes in order.
//   - *NodeError wrapping ErrMissingVariable when cm uses a variable that
//     order does not list.
//   - *NodeError wrapping ErrMalformedGraph when a block's width differs
//     from the declared size.
//
// Complexity:
//   - Time O(nnz(cm) + k·log k) for k ordered variables.
func Assemble(cm *CoeffMap, order []VarOffset) (*Result, error) {
	l, err := newLayout(order)
	if err != nil {
		return nil, nodeError(opOrder, nil, err)
	}
	res, err := l.assemble(cm)
	if err != nil {
		return nil, nodeError(opAssemble, nil, err)
	}

	return res, nil
}

// ProblemData is the stacked result of several roots.
type ProblemData struct {
	Result
	// RowOffsets[k] is the first row of root k; RowOffsets[len(roots)] is the total.
	RowOffsets []int
}

// Build compiles every root with one shared Compiler, assembles each under
// order and stacks the results vertically in root order.
// Errors are the union of Compile and Assemble errors; assembly failures
// name the root that produced them.
func Build(roots []*linop.Node, order []VarOffset, opts ...Option) (*ProblemData, error) {
	return NewCompiler(opts...).Build(roots, order)
}

// Build is the package-level Build over this Compiler's cache, so
// sub-expressions shared with earlier Compile or Build calls are reused.
func (c *Compiler) Build(roots []*linop.Node, order []VarOffset) (*ProblemData, error) {
	l, err := newLayout(order)
	if err != nil {
		return nil, nodeError(opOrder, nil, err)
	}
	out := &ProblemData{RowOffsets: make([]int, 1, len(roots)+1)}
	parts := make([]*sparse.Matrix, 0, len(roots))
	for _, root := range roots {
		cm, err := c.Compile(root)
		if err != nil {
			return nil, err
		}
		res, err := l.assemble(cm)
		if err != nil {
			return nil, nodeError(opBuild, root, err)
		}
		parts = append(parts, res.A)
		out.B = append(out.B, res.B...)
		out.RowOffsets = append(out.RowOffsets, len(out.B))
	}
	if len(parts) == 0 {
		out.A, _ = sparse.Zeros(0, l.cols)
	} else if out.A, err = sparse.VStack(parts...); err != nil {
		return nil, nodeError(opBuild, nil, malformed("stack: %v", err))
	}
	st := c.Stats()
	c.cfg.logger.Debug("built problem",
		slog.Int("roots", len(roots)),
		slog.Int("rows", out.A.Rows()),
		slog.Int("cols", out.A.Cols()),
		slog.Int("nnz", out.A.NNZ()),
		slog.Int("compiled", st.Compiled),
		slog.Int("cache_hits", st.CacheHits),
	)

	return out, nil
}
