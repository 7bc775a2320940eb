// SPDX-License-Identifier: MIT

package conic

import "math"

// Status is a solver outcome in solver-independent terms.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	OptimalInaccurate
	InfeasibleInaccurate
	UnboundedInaccurate
	SolverError
)

var statusNames = [...]string{
	Optimal:              "OPTIMAL",
	Infeasible:           "INFEASIBLE",
	Unbounded:            "UNBOUNDED",
	OptimalInaccurate:    "OPTIMAL_INACCURATE",
	InfeasibleInaccurate: "INFEASIBLE_INACCURATE",
	UnboundedInaccurate:  "UNBOUNDED_INACCURATE",
	SolverError:          "SOLVER_ERROR",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return statusNames[SolverError]
	}

	return statusNames[s]
}

// Solved reports whether the status carries a primal value.
func (s Status) Solved() bool { return s == Optimal || s == OptimalInaccurate }

// Solver exit codes.
const (
	exitOptimal              = 0
	exitInfeasible           = 1
	exitUnbounded            = 2
	exitOptimalInaccurate    = 10
	exitInfeasibleInaccurate = 11
	exitUnboundedInaccurate  = 12
)

// CanonicalizeStatus maps a solver exit code to a Status. Unknown codes,
// including every negative one, are SolverError.
func CanonicalizeStatus(code int) Status {
	switch code {
	case exitOptimal:
		return Optimal
	case exitInfeasible:
		return Infeasible
	case exitUnbounded:
		return Unbounded
	case exitOptimalInaccurate:
		return OptimalInaccurate
	case exitInfeasibleInaccurate:
		return InfeasibleInaccurate
	case exitUnboundedInaccurate:
		return UnboundedInaccurate
	default:
		return SolverError
	}
}

// Solution is a solver outcome expressed against the original objective.
type Solution struct {
	Status Status
	// Value is the objective at the optimum, +Inf (minimize) or −Inf
	// (maximize) when infeasible, the opposite infinity when unbounded and
	// NaN after a solver error.
	Value float64
}

// Solution interprets the solver's exit code and primal cost cᵀx.
func (d *Data) Solution(code int, pcost float64) Solution {
	st := CanonicalizeStatus(code)
	sign := 1.0
	if d.Sense == Maximize {
		sign = -1
	}
	var v float64
	switch st {
	case Optimal, OptimalInaccurate:
		v = sign * (pcost + d.Offset)
	case Infeasible, InfeasibleInaccurate:
		v = math.Inf(int(sign))
	case Unbounded, UnboundedInaccurate:
		v = math.Inf(-int(sign))
	default:
		v = math.NaN()
	}

	return Solution{Status: st, Value: v}
}
