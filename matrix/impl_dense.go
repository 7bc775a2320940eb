// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (column-major) & safe accessors.
//
// Purpose:
//   - Provide a flat column-major buffer with the explicit index formula i + j*rows,
//     which is exactly the canonical flattening vec(M) used by the LinOp engine.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Each: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"       // method tag used in error wrappers
	ctxSet     = "Set"      // method tag used in error wrappers
	ctxFrom    = "NewDenseFrom"
	ctxRows    = "FromRows"
	ctxScalar  = "NewScalar"
	ctxReshape = "Reshape"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete column-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in column-major order (offset = i + j*r).
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous column-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using column-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation and numeric policy.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and resolve policy from opts.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := NewOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom builds an r×c matrix over a copy of colMajor, whose entry
// (i, j) sits at colMajor[i + j*rows].
// MAIN DESCRIPTION:
//   - Ingest a flattened constant exactly as the engine flattens values.
//
// Implementation:
//   - Stage 1: validate shape and len(colMajor) == rows*cols.
//   - Stage 2: under the numeric policy, reject NaN/±Inf entries.
//   - Stage 3: copy the data so the caller keeps ownership of its slice.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf (wrapped with
//     coordinates).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, colMajor []float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(colMajor) != rows*cols {
		return nil, fmt.Errorf("%s: len %d for %dx%d: %w", ctxFrom, len(colMajor), rows, cols, ErrDimensionMismatch)
	}
	if m.validateNaNInf {
		for k, v := range colMajor {
			if isNonFinite(v) {
				return nil, denseErrorf(ctxFrom, k%rows, k/rows, ErrNaNInf)
			}
		}
	}
	copy(m.data, colMajor)

	return m, nil
}

// FromRows builds a matrix from row literals, the natural way to spell a
// constant in tests and interchange files.
// Errors: ErrInvalidDimensions for empty input, ErrRaggedRows, ErrNaNInf.
// Complexity: O(r*c).
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxRows, ErrInvalidDimensions)
	}
	r, c := len(rows), len(rows[0])
	m, err := NewDense(r, c, opts...)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d entries, want %d: %w", ctxRows, i, len(rows[i]), c, ErrRaggedRows)
		}
		for j = 0; j < c; j++ {
			if err = m.Set(i, j, rows[i][j]); err != nil {
				return nil, fmt.Errorf("%s: %w", ctxRows, err)
			}
		}
	}

	return m, nil
}

// NewScalar returns the 1×1 matrix [v].
func NewScalar(v float64, opts ...Option) (*Dense, error) {
	m, err := NewDenseFrom(1, 1, []float64{v}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxScalar, err)
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Len returns rows*cols, the length of the flattened value.
func (m *Dense) Len() int { return len(m.data) }

// IsScalar reports a 1×1 shape.
func (m *Dense) IsScalar() bool { return m.r == 1 && m.c == 1 }

// indexOf computes the column-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Column-major offset: i + j*r.
	return row + col*m.r, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns a wrapped sentinel.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
// MAIN DESCRIPTION:
//   - Safe element write with optional finite-only policy.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// Data returns a copy of the column-major buffer, i.e. vec(M).
func (m *Dense) Data() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// Each visits every entry in column-major order (j outer, i inner).
// The fixed order keeps every consumer deterministic.
func (m *Dense) Each(fn func(i, j int, v float64)) {
	var i, j int
	for j = 0; j < m.c; j++ {
		col := m.data[j*m.r : (j+1)*m.r]
		for i = 0; i < m.r; i++ {
			fn(i, j, col[i])
		}
	}
}

// Reshape returns a copy viewed as rows×cols. Column-major flattening is
// invariant under reshape, so the buffer is copied unchanged.
// Errors: ErrInvalidDimensions, ErrDimensionMismatch when sizes differ.
func (m *Dense) Reshape(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxReshape, ErrInvalidDimensions)
	}
	if rows*cols != len(m.data) {
		return nil, fmt.Errorf("%s: %dx%d -> %dx%d: %w", ctxReshape, m.r, m.c, rows, cols, ErrDimensionMismatch)
	}
	out := m.Clone()
	out.r, out.c = rows, cols

	return out, nil
}

// String renders rows as lines with comma-separated values (diagnostics only).
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			sb.WriteString(fmt.Sprintf("%g", m.data[i+j*m.r]))
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
