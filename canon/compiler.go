// SPDX-License-Identifier: MIT

package canon

import (
	"log/slog"

	"github.com/katalvlaran/lincanon/linop"
)

// Visitation states for the three-color traversal.
const (
	white = iota
	gray
	black
)

// frame is one entry of the explicit work stack.
type frame struct {
	node     *linop.Node
	expanded bool
}

// Stats counts the work a Compiler has done since creation or Reset.
type Stats struct {
	Compiled  int // rule invocations
	CacheHits int // child references answered from the cache
}

// Compiler turns LinOp graphs into coefficient maps.
//
// A Compiler owns a private cache keyed by node identity, so a sub-expression
// shared by several parents, or by several roots compiled with the same
// Compiler, runs its rule once. A Compiler is not safe for concurrent use;
// independent Compilers share nothing and may run in parallel.
type Compiler struct {
	cfg   resolved
	cache map[*linop.Node]*CoeffMap
	stats Stats
}

// NewCompiler returns a Compiler with an empty cache.
func NewCompiler(opts ...Option) *Compiler {
	return &Compiler{
		cfg:   resolve(opts),
		cache: make(map[*linop.Node]*CoeffMap),
	}
}

// Compile is the one-shot form of NewCompiler(opts...).Compile(root).
func Compile(root *linop.Node, opts ...Option) (*CoeffMap, error) {
	return NewCompiler(opts...).Compile(root)
}

// Stats returns the counters accumulated so far.
func (c *Compiler) Stats() Stats { return c.stats }

// Reset drops the cache and the counters.
func (c *Compiler) Reset() {
	c.cache = make(map[*linop.Node]*CoeffMap)
	c.stats = Stats{}
}

// Compile returns the coefficient map of root.
// MAIN DESCRIPTION:
//   - Post-order traversal over an explicit stack: a node's rule fires only
//     after every child has a cached map, and each distinct node fires once.
//
// Implementation:
//   - Stage 1: push root White.
//   - Stage 2: on first pop, mark Gray, re-push expanded, push uncached
//     children in reverse argument order. A Gray child is a back-edge.
//   - Stage 3: on the expanded pop, check arity, run the rule with the
//     children's maps in argument order, verify the row count against the
//     declared shape, cache, mark Black, fire the probe.
//
// Errors:
//   - *NodeError wrapping ErrMalformedGraph, ErrUnsupportedOperand,
//     ErrDivisionByZero or ErrNonFinite, naming the offending node.
//
// Complexity:
//   - Time O(V + E) traversal plus the sparse work of each rule; stack depth
//     is heap-allocated, so deep chains do not grow the goroutine stack.
func (c *Compiler) Compile(root *linop.Node) (*CoeffMap, error) {
	if root == nil {
		return nil, nodeError(opCompile, nil, malformed("nil root"))
	}
	if cm, ok := c.cache[root]; ok {
		c.stats.CacheHits++
		return cm, nil
	}

	state := make(map[*linop.Node]int)
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := top.node

		if top.expanded {
			if err := c.fire(n); err != nil {
				return nil, err
			}
			state[n] = black
			continue
		}
		if state[n] != white {
			continue
		}
		if _, ok := c.cache[n]; ok {
			continue
		}
		state[n] = gray
		stack = append(stack, frame{node: n, expanded: true})
		for i := n.NumArgs() - 1; i >= 0; i-- {
			ch := n.Arg(i)
			switch {
			case ch == nil:
				return nil, nodeError(opCompile, n, malformed("arg %d is nil", i))
			case state[ch] == gray:
				return nil, nodeError(opCompile, n, malformed("cycle through %s", ch))
			}
			if _, ok := c.cache[ch]; ok {
				c.stats.CacheHits++
				continue
			}
			if state[ch] == white {
				stack = append(stack, frame{node: ch})
			}
		}
	}

	return c.cache[root], nil
}

// fire runs the rule of n, whose children are all cached.
func (c *Compiler) fire(n *linop.Node) error {
	entry, err := lookup(n.Kind())
	if err != nil {
		return nodeError(opCompile, n, err)
	}
	if err = entry.check(n.NumArgs()); err != nil {
		return nodeError(opCompile, n, err)
	}
	shape := n.Shape()
	if shape.Rows < 0 || shape.Cols < 0 {
		return nodeError(opCompile, n, malformed("negative shape %s", shape))
	}
	args := make([]*CoeffMap, n.NumArgs())
	for i := range args {
		args[i] = c.cache[n.Arg(i)]
	}

	cm, err := entry.fn(n, args, &c.cfg)
	if err != nil {
		return nodeError(opCompile, n, err)
	}
	if cm.Rows() != shape.Size() {
		return nodeError(opCompile, n, malformed("rule produced %d rows, declared %s", cm.Rows(), shape))
	}

	c.cache[n] = cm
	c.stats.Compiled++
	if c.cfg.onCompile != nil {
		c.cfg.onCompile(n)
	}
	c.cfg.logger.Debug("compiled node",
		slog.Uint64("id", n.ID()),
		slog.String("kind", n.Kind().String()),
		slog.Int("rows", cm.Rows()),
		slog.Int("vars", cm.NumVars()),
	)

	return nil
}
