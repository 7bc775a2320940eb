// SPDX-License-Identifier: MIT
// Package matrix: sentinel errors for dense payloads.
// Constructors and accessors return these wrapped with the operation name
// ("FromRows: ...", "At(2,1): ..."); match them with errors.Is. Only option
// constructors panic, and only on nonsensical arguments.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates a zero or negative row or column count.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates an index outside the matrix; At and Set return it.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// or a flat data slice whose length differs from rows*cols.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrRaggedRows signals that a row-literal input has rows of unequal length.
	ErrRaggedRows = errors.New("matrix: ragged rows")

	// ErrNaNInf indicates NaN or ±Inf under a policy that requires finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates a nil *Dense argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
