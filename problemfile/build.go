// SPDX-License-Identifier: MIT

package problemfile

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/conic"
	"github.com/katalvlaran/lincanon/linop"
)

// Visitation states of the reference walk.
const (
	White = iota // not yet visited
	Gray         // on the current path
	Black        // fully built
)

// Graph is a built Document.
type Graph struct {
	Nodes     map[string]*linop.Node
	RootNames []string
	Roots     []*linop.Node
	Order     []canon.VarOffset
	Problem   *conic.Problem // nil without a problem section
}

// Build resolves the document into linop nodes.
// MAIN DESCRIPTION:
//   - Stage 1: variables get shapes and column offsets, in listed order.
//   - Stage 2: node names are indexed and every reference is checked.
//   - Stage 3: a three-color DFS from each node, in listed order, yields a
//     children-first order and rejects back-edges.
//   - Stage 4: nodes are constructed in that order through the typed linop
//     constructors, so each name maps to exactly one node.
//   - Stage 5: roots and the optional problem are bound to built nodes.
//
// Errors:
//   - ErrDuplicate, ErrDanglingRef, ErrCycle, ErrBadNode, ErrBadVariable,
//     ErrBadProblem, ErrNoRoot; each names the offending node or variable.
//
// Complexity:
//   - Time O(V + E) plus constant payload sizes.
func (d *Document) Build() (*Graph, error) {
	// Stage 1: variables.
	shapes, order, err := d.variables()
	if err != nil {
		return nil, err
	}

	// Stage 2: names and references.
	specs := make(map[string]*NodeSpec, len(d.Nodes))
	kinds := make(map[string]linop.Kind, len(d.Nodes))
	for i := range d.Nodes {
		s := &d.Nodes[i]
		if s.Name == "" {
			return nil, badNode(fmt.Sprintf("#%d", i), "missing name")
		}
		if _, dup := specs[s.Name]; dup {
			return nil, nodeErrorf(s.Name, ErrDuplicate)
		}
		k, err := linop.ParseKind(s.Kind)
		if err != nil {
			return nil, badNode(s.Name, "%v", err)
		}
		specs[s.Name] = s
		kinds[s.Name] = k
	}
	for _, s := range d.Nodes {
		for _, a := range s.Args {
			if _, ok := specs[a]; !ok {
				return nil, nodeErrorf(s.Name, fmt.Errorf("arg %q: %w", a, ErrDanglingRef))
			}
		}
	}
	rootNames, err := d.rootNames(specs)
	if err != nil {
		return nil, err
	}

	// Stage 3: children-first order.
	topo, err := topoOrder(d.Nodes, specs)
	if err != nil {
		return nil, err
	}

	// Stage 4: construction.
	g := &Graph{Nodes: make(map[string]*linop.Node, len(topo)), Order: order, RootNames: rootNames}
	for _, name := range topo {
		s := specs[name]
		args := make([]*linop.Node, len(s.Args))
		for i, a := range s.Args {
			args[i] = g.Nodes[a]
		}
		n, err := construct(s, kinds[name], args, shapes)
		if err != nil {
			return nil, err
		}
		g.Nodes[name] = n
	}

	// Stage 5: roots and problem.
	for _, name := range rootNames {
		g.Roots = append(g.Roots, g.Nodes[name])
	}
	if d.Problem != nil {
		if g.Problem, err = d.Problem.bind(g.Nodes, order); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (d *Document) variables() (map[int]linop.Shape, []canon.VarOffset, error) {
	shapes := make(map[int]linop.Shape, len(d.Variables))
	order := make([]canon.VarOffset, 0, len(d.Variables))
	cursor := 0
	for _, v := range d.Variables {
		if _, dup := shapes[v.ID]; dup {
			return nil, nil, fmt.Errorf("variable %d: %w", v.ID, ErrDuplicate)
		}
		var sh linop.Shape
		switch {
		case len(v.Shape) > 0:
			var err error
			if sh, err = parseShape(v.Shape); err != nil {
				return nil, nil, fmt.Errorf("variable %d: %v: %w", v.ID, err, ErrBadVariable)
			}
		case v.Size > 0:
			sh = linop.Shape{Rows: v.Size, Cols: 1}
		default:
			return nil, nil, fmt.Errorf("variable %d: no shape or size: %w", v.ID, ErrBadVariable)
		}
		off := cursor
		if v.Offset != nil {
			off = *v.Offset
		}
		if off < 0 {
			return nil, nil, fmt.Errorf("variable %d: offset %d: %w", v.ID, off, ErrBadVariable)
		}
		shapes[v.ID] = sh
		order = append(order, canon.VarOffset{ID: v.ID, Offset: off, Size: sh.Size()})
		cursor = off + sh.Size()
	}

	return shapes, order, nil
}

func (d *Document) rootNames(specs map[string]*NodeSpec) ([]string, error) {
	var names []string
	if d.Root != "" {
		names = append(names, d.Root)
	}
	names = append(names, d.Roots...)
	for _, name := range names {
		if _, ok := specs[name]; !ok {
			return nil, fmt.Errorf("root %q: %w", name, ErrDanglingRef)
		}
	}
	if d.Problem != nil {
		refs := []string{d.Problem.Objective}
		for _, c := range d.Problem.Constraints {
			refs = append(refs, c.Args...)
		}
		for _, name := range refs {
			if _, ok := specs[name]; !ok {
				return nil, fmt.Errorf("problem reference %q: %w", name, ErrDanglingRef)
			}
		}
	}
	if len(names) == 0 && d.Problem == nil {
		return nil, ErrNoRoot
	}

	return names, nil
}

// topoSorter is the DFS state over node names.
type topoSorter struct {
	specs map[string]*NodeSpec
	state map[string]int
	order []string
}

// topoOrder returns every node name with arguments before their users.
func topoOrder(nodes []NodeSpec, specs map[string]*NodeSpec) ([]string, error) {
	t := &topoSorter{
		specs: specs,
		state: make(map[string]int, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}
	for _, s := range nodes {
		if t.state[s.Name] == White {
			if err := t.visit(s.Name); err != nil {
				return nil, err
			}
		}
	}

	return t.order, nil
}

func (t *topoSorter) visit(name string) error {
	switch t.state[name] {
	case Gray:
		return nodeErrorf(name, ErrCycle)
	case Black:
		return nil
	}
	t.state[name] = Gray
	for _, a := range t.specs[name].Args {
		if err := t.visit(a); err != nil {
			return err
		}
	}
	t.state[name] = Black
	t.order = append(t.order, name)

	return nil
}

// bind resolves the problem section against built nodes.
func (p *ProblemSpec) bind(nodes map[string]*linop.Node, order []canon.VarOffset) (*conic.Problem, error) {
	out := &conic.Problem{Objective: nodes[p.Objective], Order: order}
	switch strings.ToLower(strings.TrimSpace(p.Sense)) {
	case "", "min", "minimize":
		out.Sense = conic.Minimize
	case "max", "maximize":
		out.Sense = conic.Maximize
	default:
		return nil, fmt.Errorf("sense %q: %w", p.Sense, ErrBadProblem)
	}
	for i, c := range p.Constraints {
		k, ok := constraintKinds[strings.ToLower(strings.TrimSpace(c.Kind))]
		if !ok {
			return nil, fmt.Errorf("constraint %d: kind %q: %w", i, c.Kind, ErrBadProblem)
		}
		args := make([]*linop.Node, len(c.Args))
		for j, a := range c.Args {
			args[j] = nodes[a]
		}
		out.Constraints = append(out.Constraints, conic.Constraint{Kind: k, Args: args})
	}

	return out, nil
}

var constraintKinds = map[string]conic.ConstraintKind{
	"eq":  conic.EQ,
	"leq": conic.LEQ,
	"soc": conic.SOC,
	"exp": conic.EXP,
}

// parseShape accepts [rows, cols] or [n] for a column.
func parseShape(dims []int) (linop.Shape, error) {
	var sh linop.Shape
	switch len(dims) {
	case 1:
		sh = linop.Shape{Rows: dims[0], Cols: 1}
	case 2:
		sh = linop.Shape{Rows: dims[0], Cols: dims[1]}
	default:
		return sh, fmt.Errorf("shape %v has %d dimensions", dims, len(dims))
	}
	if sh.Rows < 0 || sh.Cols < 0 || sh.Rows > math.MaxInt32 || sh.Cols > math.MaxInt32 {
		return sh, fmt.Errorf("shape %v out of range", dims)
	}

	return sh, nil
}
