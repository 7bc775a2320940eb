// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy. This file
// defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - NewOptions, the resolver shared with the canon package.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the magnitude at or below which a value counts as zero
	// in numeric-domain checks (e.g. elementwise division). Zero means only an
	// exact 0.0 is rejected.
	DefaultEpsilon = 0.0

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; read them via getters.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
}

// WithEpsilon sets the zero tolerance used by numeric-domain checks.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
// The flag propagates only on creation; existing matrices are unaffected.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewOptions applies user-provided setters on top of the defaults.
// Setters run in order; last-writer-wins.
// Complexity: O(k) for k=len(user).
func NewOptions(user ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// Epsilon returns the resolved zero tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether non-finite values are rejected.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// IsZero reports whether |v| <= eps under this policy.
func (o Options) IsZero(v float64) bool { return math.Abs(v) <= o.eps }

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
