// SPDX-License-Identifier: MIT

package problemfile

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/conic"
	"github.com/katalvlaran/lincanon/sparse"
)

// CSC is the wire form of a sparse matrix in compressed sparse column layout.
type CSC struct {
	Rows   int       `yaml:"rows"`
	Cols   int       `yaml:"cols"`
	ColPtr []int     `yaml:"col_ptr,flow"`
	RowIdx []int     `yaml:"row_idx,flow"`
	Vals   []float64 `yaml:"vals,flow"`
}

// NewCSC copies m into its wire form.
func NewCSC(m *sparse.Matrix) CSC {
	colPtr, rowIdx, vals := m.CSC()

	return CSC{Rows: m.Rows(), Cols: m.Cols(), ColPtr: colPtr, RowIdx: rowIdx, Vals: vals}
}

// AffineOutput is the written form of canon.ProblemData.
type AffineOutput struct {
	A          CSC       `yaml:"A"`
	B          []float64 `yaml:"b,flow"`
	RowOffsets []int     `yaml:"row_offsets,flow"`
	Roots      []string  `yaml:"roots,flow,omitempty"`
}

// ConicOutput is the written form of conic.Data.
type ConicOutput struct {
	Sense  string    `yaml:"sense"`
	C      []float64 `yaml:"c,flow"`
	Offset float64   `yaml:"offset"`
	A      CSC       `yaml:"A"`
	B      []float64 `yaml:"b,flow"`
	G      CSC       `yaml:"G"`
	H      []float64 `yaml:"h,flow"`
	Dims   struct {
		L int   `yaml:"l"`
		Q []int `yaml:"q,flow"`
		E int   `yaml:"e"`
	} `yaml:"dims"`
}

// NewConicOutput copies d into its wire form.
func NewConicOutput(d *conic.Data) ConicOutput {
	out := ConicOutput{
		Sense:  d.Sense.String(),
		C:      d.C,
		Offset: d.Offset,
		A:      NewCSC(d.A),
		B:      d.B,
		G:      NewCSC(d.G),
		H:      d.H,
	}
	out.Dims.L, out.Dims.Q, out.Dims.E = d.Dims.L, d.Dims.Q, d.Dims.E

	return out
}

// WriteAffine encodes pd, labelling the row blocks with roots when given.
func WriteAffine(w io.Writer, pd *canon.ProblemData, roots []string) error {
	return encode(w, AffineOutput{
		A:          NewCSC(pd.A),
		B:          pd.B,
		RowOffsets: pd.RowOffsets,
		Roots:      roots,
	})
}

// WriteConic encodes d.
func WriteConic(w io.Writer, d *conic.Data) error {
	return encode(w, NewConicOutput(d))
}

func encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
