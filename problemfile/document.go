// SPDX-License-Identifier: MIT

package problemfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a graph.
type Document struct {
	Variables []VariableSpec `yaml:"variables"`
	Nodes     []NodeSpec     `yaml:"nodes"`
	Root      string         `yaml:"root,omitempty"`
	Roots     []string       `yaml:"roots,omitempty"`
	Problem   *ProblemSpec   `yaml:"problem,omitempty"`
}

// VariableSpec declares one variable. Shape wins over Size; Size n means n×1.
// Without Offset the variable follows the previous one.
type VariableSpec struct {
	ID     int   `yaml:"id"`
	Shape  []int `yaml:"shape,omitempty"`
	Size   int   `yaml:"size,omitempty"`
	Offset *int  `yaml:"offset,omitempty"`
}

// NodeSpec is one named node. Which payload fields apply depends on Kind.
type NodeSpec struct {
	Name   string      `yaml:"name"`
	Kind   string      `yaml:"kind"`
	Shape  []int       `yaml:"shape,omitempty"`
	Args   []string    `yaml:"args,omitempty"`
	Data   [][]float64 `yaml:"data,omitempty"`
	Value  *float64    `yaml:"value,omitempty"`
	Sparse *SparseSpec `yaml:"sparse,omitempty"`
	Index  *IndexSpec  `yaml:"index,omitempty"`
	Var    *int        `yaml:"var,omitempty"`
}

// SparseSpec is a coordinate-list payload; duplicates are summed.
type SparseSpec struct {
	Shape []int     `yaml:"shape"`
	Rows  []int     `yaml:"rows"`
	Cols  []int     `yaml:"cols"`
	Vals  []float64 `yaml:"vals"`
}

// IndexSpec lists the kept rows and columns of an INDEX node.
type IndexSpec struct {
	Rows []int `yaml:"rows"`
	Cols []int `yaml:"cols"`
}

// ProblemSpec is a conic program over named nodes.
type ProblemSpec struct {
	Sense       string           `yaml:"sense,omitempty"`
	Objective   string           `yaml:"objective"`
	Constraints []ConstraintSpec `yaml:"constraints,omitempty"`
}

// ConstraintSpec is one cone constraint: eq, leq, soc or exp.
type ConstraintSpec struct {
	Kind string   `yaml:"kind"`
	Args []string `yaml:"args"`
}

// Decode reads one Document from r. Unknown fields are errors.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &doc, nil
}

// Load decodes and builds the document at path.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc.Build()
}
