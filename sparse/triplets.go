// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"sort"
)

// Triplets accumulates (row, col, value) entries for an r×c matrix.
// Duplicate coordinates are summed when the builder is compressed.
// The first out-of-range Add is remembered and reported by Matrix, so
// construction loops stay free of per-entry error plumbing.
type Triplets struct {
	r, c int
	is   []int
	js   []int
	vs   []float64
	err  error
}

// NewTriplets starts an empty builder. Negative dimensions are reported by Matrix.
func NewTriplets(rows, cols int) *Triplets {
	t := &Triplets{r: rows, c: cols}
	if rows < 0 || cols < 0 {
		t.err = ErrBadShape
	}

	return t
}

// Grow reserves room for n more entries.
func (t *Triplets) Grow(n int) {
	if n <= 0 {
		return
	}
	t.is = append(make([]int, 0, len(t.is)+n), t.is...)
	t.js = append(make([]int, 0, len(t.js)+n), t.js...)
	t.vs = append(make([]float64, 0, len(t.vs)+n), t.vs...)
}

// Add appends v at (i, j). Zero values are ignored.
func (t *Triplets) Add(i, j int, v float64) {
	if t.err != nil {
		return
	}
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		t.err = fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, t.r, t.c, ErrOutOfRange)
		return
	}
	if v == 0 {
		return
	}
	t.is = append(t.is, i)
	t.js = append(t.js, j)
	t.vs = append(t.vs, v)
}

// Len returns the number of accumulated (possibly duplicate) entries.
func (t *Triplets) Len() int { return len(t.vs) }

// Matrix compresses the entries into canonical CSC form.
// MAIN DESCRIPTION:
//   - Bucket entries by column (counting sort, stable), sort each bucket by
//     row (stable), then sum runs of equal rows in insertion order.
//
// Behavior highlights:
//   - Entries that cancel to exactly zero are dropped.
//   - Deterministic: the same Add sequence always yields identical arrays.
//
// Errors:
//   - ErrBadShape, ErrOutOfRange (first offending Add).
//
// Complexity:
//   - Time O(nnz·log(nnz/c) + c), Space O(nnz + c).
func (t *Triplets) Matrix() (*Matrix, error) {
	if t.err != nil {
		return nil, sparseErrorf(opTriplets, t.err)
	}
	n := len(t.vs)
	// Stage 1: counting sort by column, stable in insertion order.
	count := make([]int, t.c+1)
	for _, j := range t.js {
		count[j+1]++
	}
	for j := 0; j < t.c; j++ {
		count[j+1] += count[j]
	}
	next := append([]int(nil), count[:t.c]...)
	order := make([]int, n)
	for k, j := range t.js {
		order[next[j]] = k
		next[j]++
	}

	// Stage 2: per column, stable sort by row and merge duplicates.
	m := &Matrix{
		r:      t.r,
		c:      t.c,
		colPtr: make([]int, t.c+1),
		rowIdx: make([]int, 0, n),
		vals:   make([]float64, 0, n),
	}
	for j := 0; j < t.c; j++ {
		bucket := order[count[j]:count[j+1]]
		sort.SliceStable(bucket, func(a, b int) bool { return t.is[bucket[a]] < t.is[bucket[b]] })
		for p := 0; p < len(bucket); {
			row := t.is[bucket[p]]
			sum := 0.0
			for ; p < len(bucket) && t.is[bucket[p]] == row; p++ {
				sum += t.vs[bucket[p]]
			}
			if sum != 0 {
				m.rowIdx = append(m.rowIdx, row)
				m.vals = append(m.vals, sum)
			}
		}
		m.colPtr[j+1] = len(m.vals)
	}

	return m, nil
}
