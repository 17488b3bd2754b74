// SPDX-License-Identifier: MIT
package window

import "github.com/go-logicsynth/dcewin/netlist"

// Bounds configures window extraction.
type Bounds struct {
	TfiLevMax    int // nTfiLevMax
	TfoLevMax    int // nTfoLevMax
	FanoutMax    int // nFanoutMax
	MffcMin      int // nMffcMin
	MffcMax      int // nMffcMax
	WinSizeMax   int // nWinSizeMax
	GrowthLevel  int // nGrowthLevel
}

// DefaultBounds returns reasonable bounds for a small-to-medium window,
// in the range typical ABC-style don't-care resynthesis engines use.
func DefaultBounds() Bounds {
	return Bounds{
		TfiLevMax:   5,
		TfoLevMax:   5,
		FanoutMax:   20,
		MffcMin:     1,
		MffcMax:     50,
		WinSizeMax:  300,
		GrowthLevel: 2,
	}
}

// Window is one extracted don't-care window around a pivot node. All
// object slices are owned by the Window and must not be mutated by
// callers.
type Window struct {
	Pivot *netlist.Object

	// TFI holds the pivot's transitive fanin cone (excluding the pivot),
	// in an order safe for forward simulation (every object's fanins
	// precede it, or lie outside the window as PIs).
	TFI []*netlist.Object

	// MFFC holds the maximum fanout-free cone rooted at the pivot
	// (pivot included): nodes whose entire output fans out, transitively,
	// only into the pivot.
	MFFC map[*netlist.Object]bool

	// TFO holds the pivot's transitive fanout cone (excluding the
	// pivot), in BFS discovery order.
	TFO []*netlist.Object

	// Roots holds the TFO nodes (and POs) whose value is observable
	// outside the window: either they have a fanout escaping the window,
	// or they are themselves a PO.
	Roots []*netlist.Object

	// Divisors holds candidate replacement fanins: TFI nodes (other than
	// the pivot and its immediate fanins) plus sideways non-MFFC nodes
	// reachable from the TFI, in topological order.
	Divisors []*netlist.Object

	// VOrder is the full simulation order: TFI then MFFC-minus-TFI then
	// the pivot, each object preceded by all its fanins.
	VOrder []*netlist.Object

	// CareSet is a 64-bit mask over the window's 64 simulated random
	// patterns: bit i is set iff pattern i is "care" — flipping the
	// pivot's simulated value on pattern i changes some root's value.
	CareSet uint64
}
