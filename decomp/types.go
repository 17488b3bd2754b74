// SPDX-License-Identifier: MIT
package decomp

import (
	"time"

	"github.com/go-logicsynth/dcewin/tt"
)

// Params bounds one Decompose call.
type Params struct {
	// NVarMax caps the support size any returned Candidate may carry,
	// including during intermediate cofactor recursion.
	NVarMax int

	// NDecMax caps the number of distinct candidates Decompose will try
	// to construct before settling on the best one seen.
	NDecMax int

	// PerCall bounds each individual SAT query, mirroring
	// interpolant.Budget.PerCall: gini exposes a wall-clock search
	// budget rather than a conflict counter.
	PerCall time.Duration
}

// Outcome classifies how a Decompose call ended.
type Outcome int

const (
	// Decomposed means Result.Best holds a usable replacement function.
	Decomposed Outcome = iota

	// NoCandidate means every attempt either exceeded NVarMax or ran out
	// of distinguishing divisors before reaching a constant or
	// single-variable base case.
	NoCandidate

	// Undecided means a SAT query exhausted its per-call budget before
	// any candidate could be completed.
	Undecided
)

// Candidate is one fully built decomposition: a truth table together with
// the divisor indices (into the window's Divisors slice) it is defined
// over. Support[i] names the divisor bound to Table's variable i.
type Candidate struct {
	Table   *tt.Table
	Support []int
}

// Result is the outcome of one Decompose call.
type Result struct {
	Outcome Outcome

	// Best is the candidate with the smallest support size among every
	// one successfully built, or nil if none were.
	Best *Candidate

	// Attempts counts completed top-level recursions, capped at
	// Params.NDecMax.
	Attempts int
}
