// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All functions return these sentinels (optionally wrapped with an operation
// tag via sparseErrorf) and tests check them via errors.Is.

package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when requested shape is invalid (rows<0 or cols<0).
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrMalformedCSC indicates raw CSC arrays that violate the format
	// (pointer monotonicity, lengths, unsorted or duplicate row indices).
	ErrMalformedCSC = errors.New("sparse: malformed CSC arrays")
)

// Operation name constants for unified error wrapping.
const (
	opAdd        = "Add"
	opMul        = "Mul"
	opMulVec     = "MulVec"
	opHStack     = "HStack"
	opVStack     = "VStack"
	opSelectRows = "SelectRows"
	opSelectCols = "SelectCols"
	opReshape    = "Reshape"
	opNewCSC     = "NewCSC"
	opColMajor   = "FromColumnMajor"
	opTriplets   = "Triplets"
	opAt         = "At"
)

// sparseErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with err != nil.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("sparse.%s: %w", tag, err)
}
