// SPDX-License-Identifier: MIT

package linop

import (
	"fmt"
	"sort"
)

// Visitation states for the three-color walk.
const (
	white = iota // not yet seen
	gray         // on the stack, children pending
	black        // finished
)

// frame is one entry of the explicit walk stack.
type frame struct {
	node     *Node
	expanded bool
}

// Walk visits every distinct node reachable from root in post-order
// (children before parents, children in argument order), calling fn once per
// node. An error from fn stops the walk and is returned unchanged.
//
// Implementation:
//   - Stage 1: push root White.
//   - Stage 2: on first pop mark Gray and re-push it expanded, followed by its
//     children in reverse so the first child is processed first.
//   - Stage 3: on the expanded pop mark Black and call fn.
//
// Errors:
//   - ErrNilNode for a nil root or child.
//   - ErrCycle when a child is still Gray.
//
// Complexity:
//   - Time O(V + E), Space O(V) for state and stack; no call recursion.
func Walk(root *Node, fn func(*Node) error) error {
	if root == nil {
		return ErrNilNode
	}
	state := make(map[*Node]int)
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := top.node

		if top.expanded {
			state[n] = black
			if err := fn(n); err != nil {
				return err
			}
			continue
		}
		if state[n] != white {
			// Reached again through another parent before or after finishing.
			continue
		}
		state[n] = gray
		stack = append(stack, frame{node: n, expanded: true})
		for i := len(n.args) - 1; i >= 0; i-- {
			c := n.args[i]
			if c == nil {
				return fmt.Errorf("linop: %s arg %d: %w", n, i, ErrNilNode)
			}
			if state[c] == gray {
				return fmt.Errorf("linop: %s -> %s: %w", n, c, ErrCycle)
			}
			if state[c] == white {
				stack = append(stack, frame{node: c})
			}
		}
	}

	return nil
}

// PostOrder returns the distinct nodes reachable from root in Walk order.
func PostOrder(root *Node) ([]*Node, error) {
	var out []*Node
	err := Walk(root, func(n *Node) error {
		out = append(out, n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Count returns the number of distinct nodes reachable from root.
func Count(root *Node) (int, error) {
	order, err := PostOrder(root)

	return len(order), err
}

// VarInfo describes one variable referenced by a graph.
type VarInfo struct {
	ID    int
	Shape Shape
}

// Variables lists the distinct variables reachable from root, sorted by ID.
// The shape is taken from the first leaf met for each ID.
func Variables(root *Node) ([]VarInfo, error) {
	seen := make(map[int]Shape)
	err := Walk(root, func(n *Node) error {
		if n.kind != Variable {
			return nil
		}
		if _, ok := seen[n.varID]; !ok {
			seen[n.varID] = n.shape
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]VarInfo, 0, len(seen))
	for id, s := range seen {
		out = append(out, VarInfo{ID: id, Shape: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
