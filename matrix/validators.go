// SPDX-License-Identifier: MIT
// Package matrix: payload validation shared with the compiler.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateFinite scans m in column-major order and reports the first NaN/±Inf.
func ValidateFinite(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	for k, v := range m.data {
		if isNonFinite(v) {
			return validatorErrorf("ValidateFinite", denseErrorf(ctxAt, k%m.r, k/m.r, ErrNaNInf))
		}
	}

	return nil
}

// FirstZero returns the column-major offset of the first entry of m that is
// zero under policy o, or -1 when every entry is safely non-zero.
// Used to guard elementwise division.
func FirstZero(m *Dense, o Options) int {
	for k, v := range m.data {
		if o.IsZero(v) {
			return k
		}
	}

	return -1
}
