// SPDX-License-Identifier: MIT
// Package canon - fixed sparse operators used by the rule table.
//
// Every operator maps a flattened (column-major) input of one shape to a
// flattened output of another. Sizes are bounded by the node being compiled,
// never by the whole problem.

package canon

import (
	"fmt"

	"github.com/katalvlaran/lincanon/sparse"
)

// traceOp is the 1×n² row picking the diagonal of an n×n value.
func traceOp(n int) (*sparse.Matrix, error) {
	t := sparse.NewTriplets(1, n*n)
	t.Grow(n)
	for i := 0; i < n; i++ {
		t.Add(0, i*n+i, 1)
	}

	return t.Matrix()
}

// indexOp selects entries (rows[a], cols[b]) of an r×c value, producing the
// len(rows)×len(cols) value in column-major order.
func indexOp(r, c int, rows, cols []int) (*sparse.Matrix, error) {
	for _, i := range rows {
		if i < 0 || i >= r {
			return nil, malformed("row index %d out of %d", i, r)
		}
	}
	for _, j := range cols {
		if j < 0 || j >= c {
			return nil, malformed("column index %d out of %d", j, c)
		}
	}
	flat := make([]int, 0, len(rows)*len(cols))
	for _, j := range cols {
		for _, i := range rows {
			flat = append(flat, i+j*r)
		}
	}

	return sparse.Selector(flat, r*c)
}

// transposeOp permutes an r×c value into its c×r transpose.
func transposeOp(r, c int) (*sparse.Matrix, error) {
	flat := make([]int, 0, r*c)
	// Output column i, row j holds input entry (i, j).
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			flat = append(flat, i+j*r)
		}
	}

	return sparse.Selector(flat, r*c)
}

// diagVecOp embeds an n-vector on the diagonal of an n×n value.
func diagVecOp(n int) (*sparse.Matrix, error) {
	t := sparse.NewTriplets(n*n, n)
	t.Grow(n)
	for i := 0; i < n; i++ {
		t.Add(i*n+i, i, 1)
	}

	return t.Matrix()
}

// diagMatOp extracts the diagonal of an n×n value as an n-vector.
func diagMatOp(n int) (*sparse.Matrix, error) {
	flat := make([]int, n)
	for i := range flat {
		flat[i] = i*n + i
	}

	return sparse.Selector(flat, n*n)
}

// upperTriOp extracts the strictly upper triangular entries of an n×n value,
// enumerated row by row.
func upperTriOp(n int) (*sparse.Matrix, error) {
	flat := make([]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			flat = append(flat, j*n+i)
		}
	}

	return sparse.Selector(flat, n*n)
}

// hstackOp places an r×ck child at column offset colOff of an r×C output.
// Column-major flattening makes this a contiguous row block.
func hstackOp(outSize, r, ck, colOff int) (*sparse.Matrix, error) {
	t := sparse.NewTriplets(outSize, r*ck)
	t.Grow(r * ck)
	base := colOff * r
	for p := 0; p < r*ck; p++ {
		t.Add(base+p, p, 1)
	}

	return t.Matrix()
}

// vstackOp places an rk×c child at row offset rowOff of an R×c output.
func vstackOp(outRows, rk, c, rowOff int) (*sparse.Matrix, error) {
	t := sparse.NewTriplets(outRows*c, rk*c)
	t.Grow(rk * c)
	for j := 0; j < c; j++ {
		for i := 0; i < rk; i++ {
			t.Add(rowOff+i+j*outRows, i+j*rk, 1)
		}
	}

	return t.Matrix()
}

// toeplitzOp is the (len(k)+n-1)×n full-convolution operator for kernel k:
// T[i+j, j] = k[i].
func toeplitzOp(k []float64, n int) (*sparse.Matrix, error) {
	if len(k) == 0 || n == 0 {
		return nil, malformed("convolution of %d-tap kernel with %d-entry signal", len(k), n)
	}
	t := sparse.NewTriplets(len(k)+n-1, n)
	t.Grow(len(k) * n)
	for j := 0; j < n; j++ {
		for i, v := range k {
			t.Add(i+j, j, v)
		}
	}

	return t.Matrix()
}

// kronLeftOp maps vec(X) to vec(L ⊗ X) for a constant p×q L and an m×n X.
func kronLeftOp(l *sparse.Matrix, m, n int) (*sparse.Matrix, error) {
	p, q := l.Dims()
	t := sparse.NewTriplets(p*m*q*n, m*n)
	t.Grow(l.NNZ() * m * n)
	l.Each(func(i, j int, v float64) {
		for c := 0; c < n; c++ {
			for r := 0; r < m; r++ {
				t.Add((i*m+r)+(j*n+c)*(p*m), r+c*m, v)
			}
		}
	})

	return t.Matrix()
}

// kronRightOp maps vec(X) to vec(X ⊗ R) for a p×q X and a constant m×n R.
func kronRightOp(rc *sparse.Matrix, p, q int) (*sparse.Matrix, error) {
	m, n := rc.Dims()
	t := sparse.NewTriplets(p*m*q*n, p*q)
	t.Grow(rc.NNZ() * p * q)
	rc.Each(func(k, l int, v float64) {
		for j := 0; j < q; j++ {
			for i := 0; i < p; i++ {
				t.Add((i*m+k)+(j*n+l)*(p*m), i+j*p, v)
			}
		}
	})

	return t.Matrix()
}

// mulOp is the operator of C·X for a constant C (a×b) and X (b×n):
// vec(C·X) = (I_n ⊗ C)·vec(X).
func mulOp(c *sparse.Matrix, n int) (*sparse.Matrix, error) {
	id, err := sparse.Identity(n)
	if err != nil {
		return nil, fmt.Errorf("identity %d: %w", n, err)
	}

	return sparse.Kron(id, c), nil
}

// rmulOp is the operator of X·C for X (m×a) and a constant C (a×b):
// vec(X·C) = (Cᵀ ⊗ I_m)·vec(X).
func rmulOp(c *sparse.Matrix, m int) (*sparse.Matrix, error) {
	id, err := sparse.Identity(m)
	if err != nil {
		return nil, fmt.Errorf("identity %d: %w", m, err)
	}

	return sparse.Kron(sparse.Transpose(c), id), nil
}
