// SPDX-License-Identifier: MIT
// Package linop: sentinel error set.
// Constructors never fail on shape; these sentinels cover name parsing,
// slice expansion and graph walks. Check them with errors.Is.

package linop

import "errors"

var (
	// ErrUnknownKind indicates a kind name or value outside the enumeration.
	ErrUnknownKind = errors.New("linop: unknown operation kind")

	// ErrNilNode indicates a nil root or child reference.
	ErrNilNode = errors.New("linop: nil node")

	// ErrBadSlice indicates a slice with zero step.
	ErrBadSlice = errors.New("linop: invalid slice")

	// ErrCycle indicates a back-edge found while walking a graph.
	ErrCycle = errors.New("linop: cycle detected")
)
