// SPDX-License-Identifier: MIT

// Package sparse - CSC storage, accessors and basic constructors.
//
// Purpose:
//   - Hold one coefficient block in canonical CSC form: colPtr (len c+1),
//     rowIdx and vals (len nnz), rows strictly increasing within a column,
//     no stored zeros.
//   - Keep values immutable: every operation returns a fresh Matrix, so a
//     block cached by the compiler can be shared by any number of parents.

package sparse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lincanon/matrix"
)

// Matrix is an immutable r×c sparse matrix in compressed sparse column form.
type Matrix struct {
	r, c   int
	colPtr []int     // len c+1; column j occupies [colPtr[j], colPtr[j+1])
	rowIdx []int     // row index per stored entry
	vals   []float64 // value per stored entry, never 0
}

// Zeros returns the all-zero r×c matrix (no stored entries).
func Zeros(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrBadShape
	}

	return &Matrix{r: rows, c: cols, colPtr: make([]int, cols+1)}, nil
}

// zeros is the internal variant for shapes already known to be valid.
func zeros(rows, cols int) *Matrix {
	return &Matrix{r: rows, c: cols, colPtr: make([]int, cols+1)}
}

// Identity returns the n×n identity.
func Identity(n int) (*Matrix, error) {
	if n < 0 {
		return nil, ErrBadShape
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 1
	}

	return diag(vals), nil
}

// Diag returns the square matrix with vals on its diagonal.
func Diag(vals []float64) *Matrix {
	return diag(vals)
}

func diag(vals []float64) *Matrix {
	n := len(vals)
	m := &Matrix{r: n, c: n, colPtr: make([]int, n+1)}
	for j, v := range vals {
		if v != 0 {
			m.rowIdx = append(m.rowIdx, j)
			m.vals = append(m.vals, v)
		}
		m.colPtr[j+1] = len(m.vals)
	}

	return m
}

// Ones returns the r×c matrix filled with ones.
func Ones(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrBadShape
	}
	m := &Matrix{
		r:      rows,
		c:      cols,
		colPtr: make([]int, cols+1),
		rowIdx: make([]int, 0, rows*cols),
		vals:   make([]float64, 0, rows*cols),
	}
	var i, j int
	for j = 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			m.rowIdx = append(m.rowIdx, i)
			m.vals = append(m.vals, 1)
		}
		m.colPtr[j+1] = len(m.vals)
	}

	return m, nil
}

// FromDense converts a dense payload, skipping zero entries.
func FromDense(d *matrix.Dense) *Matrix {
	m := &Matrix{r: d.Rows(), c: d.Cols(), colPtr: make([]int, d.Cols()+1)}
	d.Each(func(i, j int, v float64) {
		if v != 0 {
			m.rowIdx = append(m.rowIdx, i)
			m.vals = append(m.vals, v)
		}
		m.colPtr[j+1] = len(m.vals)
	})

	return m
}

// FromColumnMajor builds a matrix from a flattened column-major slice.
func FromColumnMajor(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(opColMajor, ErrBadShape)
	}
	if len(data) != rows*cols {
		return nil, sparseErrorf(opColMajor, ErrDimensionMismatch)
	}
	m := zeros(rows, cols)
	var i, j int
	for j = 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			if v := data[i+j*rows]; v != 0 {
				m.rowIdx = append(m.rowIdx, i)
				m.vals = append(m.vals, v)
			}
		}
		m.colPtr[j+1] = len(m.vals)
	}

	return m, nil
}

// NewCSC validates raw CSC arrays and returns a Matrix over copies of them.
// Stored zeros are dropped so the result is canonical.
// Errors: ErrBadShape, ErrMalformedCSC.
func NewCSC(rows, cols int, colPtr, rowIdx []int, vals []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(opNewCSC, ErrBadShape)
	}
	if len(colPtr) != cols+1 || colPtr[0] != 0 || len(rowIdx) != len(vals) || colPtr[cols] != len(rowIdx) {
		return nil, sparseErrorf(opNewCSC, ErrMalformedCSC)
	}
	m := zeros(rows, cols)
	var j, p int
	for j = 0; j < cols; j++ {
		if colPtr[j+1] < colPtr[j] {
			return nil, sparseErrorf(opNewCSC, ErrMalformedCSC)
		}
		last := -1
		for p = colPtr[j]; p < colPtr[j+1]; p++ {
			i := rowIdx[p]
			if i < 0 || i >= rows || i <= last {
				return nil, sparseErrorf(opNewCSC, fmt.Errorf("column %d row %d: %w", j, i, ErrMalformedCSC))
			}
			last = i
			if vals[p] != 0 {
				m.rowIdx = append(m.rowIdx, i)
				m.vals = append(m.vals, vals[p])
			}
		}
		m.colPtr[j+1] = len(m.vals)
	}

	return m, nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.c }

// Dims returns (rows, cols).
func (m *Matrix) Dims() (rows, cols int) { return m.r, m.c }

// NNZ returns the number of stored (non-zero) entries.
func (m *Matrix) NNZ() int { return len(m.vals) }

// At returns entry (i, j) by binary search within column j.
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, sparseErrorf(opAt, ErrOutOfRange)
	}
	lo, hi := m.colPtr[j], m.colPtr[j+1]
	k := lo + sort.SearchInts(m.rowIdx[lo:hi], i)
	if k < hi && m.rowIdx[k] == i {
		return m.vals[k], nil
	}

	return 0, nil
}

// Each visits stored entries in column-major order.
func (m *Matrix) Each(fn func(i, j int, v float64)) {
	var j, p int
	for j = 0; j < m.c; j++ {
		for p = m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			fn(m.rowIdx[p], j, m.vals[p])
		}
	}
}

// CSC returns copies of the column pointer, row index and value arrays.
func (m *Matrix) CSC() (colPtr, rowIdx []int, vals []float64) {
	colPtr = append([]int(nil), m.colPtr...)
	rowIdx = append(make([]int, 0, len(m.rowIdx)), m.rowIdx...)
	vals = append(make([]float64, 0, len(m.vals)), m.vals...)

	return colPtr, rowIdx, vals
}

// ColumnMajor materializes vec(M) densely. Intended for constant offset
// vectors and tests, never for whole coefficient matrices.
func (m *Matrix) ColumnMajor() []float64 {
	out := make([]float64, m.r*m.c)
	m.Each(func(i, j int, v float64) { out[i+j*m.r] = v })

	return out
}

// Dense converts to a dense payload (small constants only).
func (m *Matrix) Dense(opts ...matrix.Option) (*matrix.Dense, error) {
	return matrix.NewDenseFrom(m.r, m.c, m.ColumnMajor(), opts...)
}

// Equal reports identical shape and identical stored entries.
func Equal(a, b *Matrix) bool {
	if a.r != b.r || a.c != b.c || len(a.vals) != len(b.vals) {
		return false
	}
	for j := range a.colPtr {
		if a.colPtr[j] != b.colPtr[j] {
			return false
		}
	}
	for p := range a.vals {
		if a.rowIdx[p] != b.rowIdx[p] || a.vals[p] != b.vals[p] {
			return false
		}
	}

	return true
}

// String renders the stored entries as "(i,j)=v" lines for diagnostics.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%dx%d nnz=%d\n", m.r, m.c, len(m.vals)))
	m.Each(func(i, j int, v float64) {
		sb.WriteString(fmt.Sprintf("(%d,%d)=%g\n", i, j, v))
	})

	return sb.String()
}
