// SPDX-License-Identifier: MIT
package interpolant

import (
	"time"

	"github.com/go-logicsynth/dcewin/sop"
)

// Outcome classifies how a Compute call ended.
type Outcome int

const (
	// Found means Result.Onset is a complete admissible on-set: the
	// onset query went unsatisfiable, so every reachable divisor minterm
	// forcing the pivot true has already been folded into the cover.
	Found Outcome = iota

	// NoInterpolant means the offset query found an input agreeing with
	// the onset query on every divisor value yet driving the pivot
	// false: this divisor set cannot discriminate the pivot's function,
	// no matter how Result.Onset is filled in.
	NoInterpolant

	// Undecided means a per-call search budget was exhausted before
	// either terminal condition was reached.
	Undecided
)

// Result is the outcome of one Compute call.
type Result struct {
	// Onset is the accumulated union-of-products on-set over Divisors,
	// valid only when Outcome == Found.
	Onset sop.Cover

	// NVars is len(Divisors), the width Onset's cubes are packed over.
	NVars int

	Outcome Outcome

	// Iterations counts loop passes (each starts with an onset query),
	// including the final pass that ends the search, for diagnostics.
	Iterations int
}

// Budget bounds each individual SAT call Compute issues. gini exposes a
// wall-clock search budget (Gini.Try) rather than a conflict counter, so
// a per-call time slice stands in for the conflict-count limit.
type Budget struct {
	PerCall time.Duration
}
