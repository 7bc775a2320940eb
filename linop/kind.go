// SPDX-License-Identifier: MIT

package linop

import (
	"fmt"
	"strings"
)

// Kind is the closed enumeration of LinOp operations agreed with the
// graph-building front-end. The numeric values are part of that contract.
type Kind int

const (
	Variable Kind = iota
	ScalarConst
	DenseConst
	SparseConst
	Sum
	Neg
	Mul
	RMul
	MulElem
	Div
	SumEntries
	Trace
	Index
	Transpose
	Reshape
	Promote
	DiagVec
	DiagMat
	UpperTri
	HStack
	VStack
	Conv
	Kron
	NoOp

	// NumKinds is the number of valid kinds; any Kind >= NumKinds is unknown.
	NumKinds
)

var kindNames = [NumKinds]string{
	Variable:    "VARIABLE",
	ScalarConst: "SCALAR_CONST",
	DenseConst:  "DENSE_CONST",
	SparseConst: "SPARSE_CONST",
	Sum:         "SUM",
	Neg:         "NEG",
	Mul:         "MUL",
	RMul:        "RMUL",
	MulElem:     "MUL_ELEM",
	Div:         "DIV",
	SumEntries:  "SUM_ENTRIES",
	Trace:       "TRACE",
	Index:       "INDEX",
	Transpose:   "TRANSPOSE",
	Reshape:     "RESHAPE",
	Promote:     "PROMOTE",
	DiagVec:     "DIAG_VEC",
	DiagMat:     "DIAG_MAT",
	UpperTri:    "UPPER_TRI",
	HStack:      "HSTACK",
	VStack:      "VSTACK",
	Conv:        "CONV",
	Kron:        "KRON",
	NoOp:        "NO_OP",
}

// Valid reports whether k is a member of the enumeration.
func (k Kind) Valid() bool { return k >= 0 && k < NumKinds }

// String returns the upper-case wire name, or KIND(n) for unknown values.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("KIND(%d)", int(k))
	}

	return kindNames[k]
}

// IsConstant reports the constant leaf kinds.
func (k Kind) IsConstant() bool {
	return k == ScalarConst || k == DenseConst || k == SparseConst
}

// IsLeaf reports kinds with no children.
func (k Kind) IsLeaf() bool { return k == Variable || k.IsConstant() }

// ParseKind maps a wire name (case-insensitive) back to its Kind.
func ParseKind(s string) (Kind, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == up {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("linop: kind %q: %w", s, ErrUnknownKind)
}
