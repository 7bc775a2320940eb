// SPDX-License-Identifier: MIT

package problemfile

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode indicates YAML that does not parse into a Document.
	ErrDecode = errors.New("problemfile: decode failed")

	// ErrDuplicate indicates a repeated node name or variable id.
	ErrDuplicate = errors.New("problemfile: duplicate definition")

	// ErrDanglingRef indicates a reference to an undefined node or variable.
	ErrDanglingRef = errors.New("problemfile: undefined reference")

	// ErrCycle indicates a node that is its own ancestor.
	ErrCycle = errors.New("problemfile: cycle detected")

	// ErrBadNode indicates a node whose fields do not fit its kind.
	ErrBadNode = errors.New("problemfile: invalid node")

	// ErrBadVariable indicates a variable without a usable shape or offset.
	ErrBadVariable = errors.New("problemfile: invalid variable")

	// ErrBadProblem indicates an unknown sense or constraint kind.
	ErrBadProblem = errors.New("problemfile: invalid problem")

	// ErrNoRoot indicates a document with neither roots nor a problem.
	ErrNoRoot = errors.New("problemfile: nothing to canonicalize")
)

// nodeErrorf tags err with the node name.
func nodeErrorf(name string, err error) error {
	return fmt.Errorf("node %q: %w", name, err)
}

// badNode builds an ErrBadNode for the named node.
func badNode(name, format string, args ...any) error {
	return nodeErrorf(name, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBadNode))
}
