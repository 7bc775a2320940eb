// SPDX-License-Identifier: MIT
// Package canon: error taxonomy.
// Every fatal error leaving this package is a *NodeError naming the node the
// violated invariant belongs to; it unwraps to exactly one of the sentinels
// below, so callers dispatch with errors.Is and inspect with errors.As.

package canon

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lincanon/linop"
)

var (
	// ErrMalformedGraph covers cycles, arity violations, unknown kinds and
	// shape mismatches between a node and what its children produce.
	ErrMalformedGraph = errors.New("canon: malformed graph")

	// ErrUnsupportedOperand indicates CONV or KRON over two non-constant operands.
	ErrUnsupportedOperand = errors.New("canon: unsupported operand")

	// ErrDivisionByZero indicates a DIV whose divisor has a zero entry.
	ErrDivisionByZero = errors.New("canon: division by zero")

	// ErrNonFinite indicates NaN or ±Inf in constant data while validation is on.
	ErrNonFinite = errors.New("canon: non-finite constant")

	// ErrMissingVariable indicates a variable used by the expression but
	// absent from the caller's ordering.
	ErrMissingVariable = errors.New("canon: variable missing from ordering")

	// ErrBadVariableOrder indicates an ordering whose column ranges overlap,
	// leave gaps, repeat an identity or have negative sizes.
	ErrBadVariableOrder = errors.New("canon: invalid variable ordering")
)

// Operation tags carried by NodeError.Op.
const (
	opCompile  = "compile"
	opAssemble = "assemble"
	opOrder    = "order"
	opBuild    = "build"
)

// NodeError reports a failure together with the identity of the offending node.
type NodeError struct {
	NodeID uint64     // linop.Node.ID of the offending node, 0 when not tied to one
	Kind   linop.Kind // its operation kind
	Op     string     // stage that failed: compile, assemble, order, build
	Err    error      // wrapped cause; unwraps to one of the package sentinels
}

// Error implements error.
func (e *NodeError) Error() string {
	if e.NodeID == 0 {
		return fmt.Sprintf("canon.%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("canon.%s: %s#%d: %v", e.Op, e.Kind, e.NodeID, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *NodeError) Unwrap() error { return e.Err }

// nodeError wraps err for node n. An err that already is a *NodeError is
// returned unchanged so the innermost node wins.
func nodeError(op string, n *linop.Node, err error) error {
	var ne *NodeError
	if errors.As(err, &ne) {
		return err
	}
	out := &NodeError{Op: op, Err: err}
	if n != nil {
		out.NodeID, out.Kind = n.ID(), n.Kind()
	}

	return out
}

// malformed formats a cause wrapping ErrMalformedGraph.
func malformed(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrMalformedGraph)...)
}
