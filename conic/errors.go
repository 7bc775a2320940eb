// SPDX-License-Identifier: MIT

package conic

import (
	"errors"
	"fmt"
)

var (
	// ErrNoObjective indicates a nil Problem or a nil objective.
	ErrNoObjective = errors.New("conic: missing objective")

	// ErrObjectiveShape indicates an objective that is not 1×1.
	ErrObjectiveShape = errors.New("conic: objective must be scalar")

	// ErrBadConstraint indicates a constraint with the wrong argument count,
	// a nil argument, mismatched EXP argument sizes or an unknown kind.
	ErrBadConstraint = errors.New("conic: malformed constraint")

	// ErrNumVars indicates a NumVars that disagrees with the ordering.
	ErrNumVars = errors.New("conic: variable count mismatch")
)

// constraintErrorf tags err with the position and kind of constraint i.
func constraintErrorf(i int, kind ConstraintKind, format string, args ...any) error {
	return fmt.Errorf("constraint %d (%s): %s: %w", i, kind, fmt.Sprintf(format, args...), ErrBadConstraint)
}
