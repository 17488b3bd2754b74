// SPDX-License-Identifier: MIT
package resynth

import (
	"github.com/rs/zerolog"

	"github.com/go-logicsynth/dcewin/decomp"
	"github.com/go-logicsynth/dcewin/matcher"
	"github.com/go-logicsynth/dcewin/window"
)

// Mode selects which of the driver's two loops Run executes.
type Mode int

const (
	// ModeArea walks every node once, accepting any smaller-area match.
	ModeArea Mode = iota
	// ModeDelay repeatedly targets the current critical-path
	// neighborhood, accepting matches that improve arrival time.
	ModeDelay
)

// Traversal selects the node visitation order ModeArea uses.
type Traversal int

const (
	// TraversalTopological visits every internal node once in
	// non-decreasing Level order, a single pass over the network as it
	// stood when Run began.
	TraversalTopological Traversal = iota
	// TraversalFrontier seeds a worklist from the node directly driving
	// each PO and, after a successful attempt, puts whatever now occupies
	// the visited node's former position (unless already queued earlier
	// in the pass) at the front of the worklist: a successful splice is
	// chased immediately rather than waiting for the next pass to reach
	// it, and an unsuccessful one falls through to queueing its fanins
	// at the back instead.
	TraversalFrontier
)

// Options configures one Run call, following the plain-struct shape
// already established by window.Bounds, decomp.Params and timing.Options
// rather than a functional-option constructor: every field here is a
// single scalar or a value already built by its own package's
// constructor, so there is nothing a builder pattern would add.
type Options struct {
	Mode      Mode
	Traversal Traversal

	Bounds  window.Bounds
	Decomp  decomp.Params
	Matcher matcher.Params

	// MoreEffort controls whether a failed plain decomposition attempt
	// is retried forcing each MFFC-input divisor as the first cofactor
	// variable in turn (window.Window.MFFCInputDivisors). When false,
	// only the plain attempt runs.
	MoreEffort bool

	// ZeroCost accepts a replacement whose area is no larger than the
	// MFFC it replaces, rather than requiring it be strictly smaller.
	ZeroCost bool

	// NNodesMax caps the number of structural changes Run will commit
	// before stopping early. Zero means unbounded.
	NNodesMax int

	// NTimeWin is the fraction (0 to 1) of the worst observed slack that
	// defines the delay-mode priority neighborhood; passed straight
	// through to timing.Facade.PriorityNodes.
	NTimeWin float64

	// DeltaCrit is the minimum arrival-time improvement, in the timing
	// façade's scaled picoseconds, a delay-mode candidate must deliver
	// to be accepted.
	DeltaCrit int

	// DelayAreaRatio, when nonzero, caps how much area a delay-mode
	// commit may add per unit of arrival-time improvement: an area
	// increase is only accepted if it does not exceed
	// delta * DelayAreaRatio. Zero disables the check (any area increase
	// is accepted as long as DeltaCrit is met).
	DelayAreaRatio float64

	// Logger receives end-of-run diagnostics. A nil Logger is silent,
	// matching the rest of the tree's "logging is optional" convention.
	Logger *zerolog.Logger
}

// Stats tallies one Run call's outcome across every pivot attempted.
type Stats struct {
	Tried   int
	Changed int

	Const0Spliced   int
	Const1Spliced   int
	BufferSpliced   int
	InverterSpliced int

	SkippedWindowBound     int
	SkippedUndecided       int
	SkippedNoCandidate     int
	SkippedNoMatch         int
	SkippedNotImproving    int
	SkippedBudgetExhausted int
}

// TimingBreakdown summarizes a delay-mode run's effect on network delay,
// populated only when a timing façade was supplied.
type TimingBreakdown struct {
	InitialNetworkDelay int
	FinalNetworkDelay   int
	InitialMinSlack     int
	FinalMinSlack       int
	NodesImproved       int
}
