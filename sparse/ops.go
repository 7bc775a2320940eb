// SPDX-License-Identifier: MIT
// Package sparse - algebraic kernels over CSC blocks.
//
// All kernels allocate a fresh result and never mutate their operands.
// Loop orders are fixed (columns ascending, stored entries ascending), so the
// floating-point summation order, and therefore every bit of the output, is
// reproducible.

package sparse

import "sort"

// Add returns a + b. Shapes must match.
// MAIN DESCRIPTION:
//   - Column-wise merge of two sorted row lists; cancellations are dropped.
//
// Errors:
//   - ErrDimensionMismatch when shapes differ.
//
// Complexity:
//   - Time O(nnz(a) + nnz(b) + c), Space O(nnz(a) + nnz(b)).
func Add(a, b *Matrix) (*Matrix, error) {
	if a.r != b.r || a.c != b.c {
		return nil, sparseErrorf(opAdd, ErrDimensionMismatch)
	}
	if len(b.vals) == 0 {
		return a, nil
	}
	if len(a.vals) == 0 {
		return b, nil
	}
	out := &Matrix{
		r:      a.r,
		c:      a.c,
		colPtr: make([]int, a.c+1),
		rowIdx: make([]int, 0, len(a.vals)+len(b.vals)),
		vals:   make([]float64, 0, len(a.vals)+len(b.vals)),
	}
	for j := 0; j < a.c; j++ {
		p, pe := a.colPtr[j], a.colPtr[j+1]
		q, qe := b.colPtr[j], b.colPtr[j+1]
		for p < pe || q < qe {
			switch {
			case q >= qe || (p < pe && a.rowIdx[p] < b.rowIdx[q]):
				out.push(a.rowIdx[p], a.vals[p])
				p++
			case p >= pe || b.rowIdx[q] < a.rowIdx[p]:
				out.push(b.rowIdx[q], b.vals[q])
				q++
			default:
				out.push(a.rowIdx[p], a.vals[p]+b.vals[q])
				p++
				q++
			}
		}
		out.colPtr[j+1] = len(out.vals)
	}

	return out, nil
}

// push appends a non-zero entry to the column being built.
func (m *Matrix) push(i int, v float64) {
	if v != 0 {
		m.rowIdx = append(m.rowIdx, i)
		m.vals = append(m.vals, v)
	}
}

// Scale returns alpha * m.
func Scale(alpha float64, m *Matrix) *Matrix {
	if alpha == 0 {
		return zeros(m.r, m.c)
	}
	if alpha == 1 {
		return m
	}
	out := &Matrix{
		r:      m.r,
		c:      m.c,
		colPtr: append([]int(nil), m.colPtr...),
		rowIdx: make([]int, 0, len(m.vals)),
		vals:   make([]float64, 0, len(m.vals)),
	}
	for j := 0; j < m.c; j++ {
		for p := m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			out.push(m.rowIdx[p], alpha*m.vals[p])
		}
		out.colPtr[j+1] = len(out.vals)
	}

	return out
}

// Neg returns -m.
func Neg(m *Matrix) *Matrix { return Scale(-1, m) }

// Mul returns the product a·b.
// MAIN DESCRIPTION:
//   - Gustavson's column algorithm: column j of the result is the linear
//     combination of a's columns selected by column j of b.
//
// Implementation:
//   - Stage 1: validate a.Cols == b.Rows.
//   - Stage 2: per output column, scatter into an O(a.Rows) workspace with a
//     generation mark, recording touched rows.
//   - Stage 3: sort touched rows and gather non-zeros.
//
// Errors:
//   - ErrDimensionMismatch.
//
// Complexity:
//   - Time O(flops + Σ touched·log touched), Space O(a.Rows + nnz(out)).
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.c != b.r {
		return nil, sparseErrorf(opMul, ErrDimensionMismatch)
	}
	out := &Matrix{r: a.r, c: b.c, colPtr: make([]int, b.c+1)}
	if len(a.vals) == 0 || len(b.vals) == 0 {
		return out, nil
	}
	work := make([]float64, a.r)
	mark := make([]int, a.r) // mark[i] == j+1 when row i is live for column j
	touched := make([]int, 0, a.r)
	for j := 0; j < b.c; j++ {
		touched = touched[:0]
		for q := b.colPtr[j]; q < b.colPtr[j+1]; q++ {
			k, bv := b.rowIdx[q], b.vals[q]
			for p := a.colPtr[k]; p < a.colPtr[k+1]; p++ {
				i := a.rowIdx[p]
				if mark[i] != j+1 {
					mark[i] = j + 1
					work[i] = a.vals[p] * bv
					touched = append(touched, i)
				} else {
					work[i] += a.vals[p] * bv
				}
			}
		}
		sort.Ints(touched)
		for _, i := range touched {
			out.push(i, work[i])
		}
		out.colPtr[j+1] = len(out.vals)
	}

	return out, nil
}

// Transpose returns mᵀ.
// Complexity: O(nnz + r + c).
func Transpose(m *Matrix) *Matrix {
	out := &Matrix{
		r:      m.c,
		c:      m.r,
		colPtr: make([]int, m.r+1),
		rowIdx: make([]int, len(m.vals)),
		vals:   make([]float64, len(m.vals)),
	}
	for _, i := range m.rowIdx {
		out.colPtr[i+1]++
	}
	for i := 0; i < m.r; i++ {
		out.colPtr[i+1] += out.colPtr[i]
	}
	next := append([]int(nil), out.colPtr[:m.r]...)
	// Walking source columns in ascending order keeps output rows sorted.
	for j := 0; j < m.c; j++ {
		for p := m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			dst := next[m.rowIdx[p]]
			out.rowIdx[dst] = j
			out.vals[dst] = m.vals[p]
			next[m.rowIdx[p]]++
		}
	}

	return out
}

// Kron returns the Kronecker product a ⊗ b, of shape (a.r·b.r)×(a.c·b.c),
// with (a⊗b)[ia·b.r+ib, ja·b.c+jb] = a[ia,ja]·b[ib,jb].
// Complexity: O(nnz(a)·nnz(b) + a.c·b.c).
func Kron(a, b *Matrix) *Matrix {
	out := &Matrix{
		r:      a.r * b.r,
		c:      a.c * b.c,
		colPtr: make([]int, a.c*b.c+1),
		rowIdx: make([]int, 0, len(a.vals)*len(b.vals)),
		vals:   make([]float64, 0, len(a.vals)*len(b.vals)),
	}
	var ja, jb, p, q int
	for ja = 0; ja < a.c; ja++ {
		for jb = 0; jb < b.c; jb++ {
			// ia ascending, then ib ascending: rows come out sorted.
			for p = a.colPtr[ja]; p < a.colPtr[ja+1]; p++ {
				for q = b.colPtr[jb]; q < b.colPtr[jb+1]; q++ {
					out.push(a.rowIdx[p]*b.r+b.rowIdx[q], a.vals[p]*b.vals[q])
				}
			}
			out.colPtr[ja*b.c+jb+1] = len(out.vals)
		}
	}

	return out
}

// MulVec returns m·x for a dense x of length m.Cols.
func MulVec(m *Matrix, x []float64) ([]float64, error) {
	if len(x) != m.c {
		return nil, sparseErrorf(opMulVec, ErrDimensionMismatch)
	}
	y := make([]float64, m.r)
	for j := 0; j < m.c; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		for p := m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			y[m.rowIdx[p]] += m.vals[p] * xj
		}
	}

	return y, nil
}
