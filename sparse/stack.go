// SPDX-License-Identifier: MIT

package sparse

import "fmt"

// HStack concatenates blocks left to right. All blocks must share Rows.
// Complexity: O(Σnnz + Σcols).
func HStack(blocks ...*Matrix) (*Matrix, error) {
	if len(blocks) == 0 {
		return zeros(0, 0), nil
	}
	rows, cols, nnz := blocks[0].r, 0, 0
	for k, b := range blocks {
		if b.r != rows {
			return nil, sparseErrorf(opHStack, fmt.Errorf("block %d has %d rows, want %d: %w", k, b.r, rows, ErrDimensionMismatch))
		}
		cols += b.c
		nnz += len(b.vals)
	}
	out := &Matrix{
		r:      rows,
		c:      cols,
		colPtr: make([]int, 1, cols+1),
		rowIdx: make([]int, 0, nnz),
		vals:   make([]float64, 0, nnz),
	}
	for _, b := range blocks {
		base := len(out.vals)
		out.rowIdx = append(out.rowIdx, b.rowIdx...)
		out.vals = append(out.vals, b.vals...)
		for j := 1; j <= b.c; j++ {
			out.colPtr = append(out.colPtr, base+b.colPtr[j])
		}
	}

	return out, nil
}

// VStack concatenates blocks top to bottom. All blocks must share Cols.
// Complexity: O(Σnnz + len(blocks)·cols).
func VStack(blocks ...*Matrix) (*Matrix, error) {
	if len(blocks) == 0 {
		return zeros(0, 0), nil
	}
	rows, cols, nnz := 0, blocks[0].c, 0
	for k, b := range blocks {
		if b.c != cols {
			return nil, sparseErrorf(opVStack, fmt.Errorf("block %d has %d cols, want %d: %w", k, b.c, cols, ErrDimensionMismatch))
		}
		rows += b.r
		nnz += len(b.vals)
	}
	out := &Matrix{
		r:      rows,
		c:      cols,
		colPtr: make([]int, cols+1),
		rowIdx: make([]int, 0, nnz),
		vals:   make([]float64, 0, nnz),
	}
	for j := 0; j < cols; j++ {
		off := 0
		for _, b := range blocks {
			for p := b.colPtr[j]; p < b.colPtr[j+1]; p++ {
				out.rowIdx = append(out.rowIdx, off+b.rowIdx[p])
				out.vals = append(out.vals, b.vals[p])
			}
			off += b.r
		}
		out.colPtr[j+1] = len(out.vals)
	}

	return out, nil
}

// Selector returns the len(idx)×n selection operator S with S[k, idx[k]] = 1,
// so that S·M picks (and possibly repeats) rows of an n-row M.
func Selector(idx []int, n int) (*Matrix, error) {
	out := &Matrix{
		r:      len(idx),
		c:      n,
		colPtr: make([]int, n+1),
		rowIdx: make([]int, len(idx)),
		vals:   make([]float64, len(idx)),
	}
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, sparseErrorf(opSelectRows, fmt.Errorf("index %d of %d: %w", i, n, ErrOutOfRange))
		}
		out.colPtr[i+1]++
	}
	for j := 0; j < n; j++ {
		out.colPtr[j+1] += out.colPtr[j]
	}
	next := append([]int(nil), out.colPtr[:n]...)
	for k, i := range idx {
		out.rowIdx[next[i]] = k
		out.vals[next[i]] = 1
		next[i]++
	}

	return out, nil
}

// SelectRows returns the rows of m listed in idx, in that order. Indices may repeat.
func SelectRows(m *Matrix, idx []int) (*Matrix, error) {
	s, err := Selector(idx, m.r)
	if err != nil {
		return nil, err
	}

	return Mul(s, m)
}

// SelectCols returns the columns of m listed in idx, in that order. Indices may repeat.
func SelectCols(m *Matrix, idx []int) (*Matrix, error) {
	out := &Matrix{r: m.r, c: len(idx), colPtr: make([]int, len(idx)+1)}
	for k, j := range idx {
		if j < 0 || j >= m.c {
			return nil, sparseErrorf(opSelectCols, fmt.Errorf("index %d of %d: %w", j, m.c, ErrOutOfRange))
		}
		out.rowIdx = append(out.rowIdx, m.rowIdx[m.colPtr[j]:m.colPtr[j+1]]...)
		out.vals = append(out.vals, m.vals[m.colPtr[j]:m.colPtr[j+1]]...)
		out.colPtr[k+1] = len(out.vals)
	}

	return out, nil
}

// Reshape reinterprets m as rows×cols under column-major flattening:
// flat position i + j·m.Rows keeps its value. Sizes must agree.
func Reshape(m *Matrix, rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(opReshape, ErrBadShape)
	}
	if rows*cols != m.r*m.c {
		return nil, sparseErrorf(opReshape, ErrDimensionMismatch)
	}
	if rows == m.r && cols == m.c {
		return m, nil
	}
	out := &Matrix{
		r:      rows,
		c:      cols,
		colPtr: make([]int, cols+1),
		rowIdx: make([]int, 0, len(m.vals)),
		vals:   make([]float64, 0, len(m.vals)),
	}
	// Flat positions increase along the stored order, so the new columns
	// fill left to right with rows already sorted.
	m.Each(func(i, j int, v float64) {
		flat := i + j*m.r
		out.rowIdx = append(out.rowIdx, flat%rows)
		out.vals = append(out.vals, v)
		out.colPtr[flat/rows+1]++
	})
	for j := 0; j < cols; j++ {
		out.colPtr[j+1] += out.colPtr[j]
	}

	return out, nil
}

// Vec returns vec(m), the (r·c)×1 column of m's entries in column-major order.
func Vec(m *Matrix) *Matrix {
	out, _ := Reshape(m, m.r*m.c, 1) // sizes agree by construction

	return out
}
