// SPDX-License-Identifier: MIT
package window

import (
	"github.com/go-logicsynth/dcewin/netlist"
	"github.com/go-logicsynth/dcewin/sop"
)

// patternCount is the number of simulated random patterns packed into a
// single uint64, one pattern per bit.
const patternCount = 64

// Simulate computes w.CareSet: bit i is set iff toggling the pivot's
// value on simulated pattern i changes the value of some root. It seeds
// each PI reachable from w with a deterministic per-object pseudo-random
// pattern (so a given window always simulates the same way), evaluates
// every internal node's cached SOP cover bit-parallel across the packed
// word, then re-propagates from the pivot with its bit flipped through
// only the TFO to see which roots change.
func Simulate(w *Window) {
	sim := make(map[int]uint64, len(w.VOrder)+len(w.TFO))

	seedPI := func(o *netlist.Object) uint64 {
		return splitmix64(uint64(o.ID) + 1)
	}

	var evalNode func(o *netlist.Object) uint64
	evalNode = func(o *netlist.Object) uint64 {
		if v, ok := sim[o.ID]; ok {
			return v
		}
		var v uint64
		switch o.Kind {
		case netlist.KindPI:
			v = seedPI(o)
		case netlist.KindPO:
			v = evalNode(o.Fanins[0])
		default:
			faninVals := make([]uint64, len(o.Fanins))
			for i, fi := range o.Fanins {
				faninVals[i] = evalNode(fi)
			}
			nVars, cover, isOnset := nodeFunction(o)
			v = evalGateCover(nVars, cover, isOnset, faninVals)
		}
		sim[o.ID] = v
		return v
	}

	for _, o := range w.VOrder {
		evalNode(o)
	}
	pivotVal := evalNode(w.Pivot)

	affected := make(map[int]bool, len(w.TFO)+1)
	affected[w.Pivot.ID] = true
	for _, o := range w.TFO {
		affected[o.ID] = true
	}

	flip := make(map[int]uint64, len(w.TFO)+1)
	flip[w.Pivot.ID] = ^pivotVal

	var evalFlip func(o *netlist.Object) uint64
	evalFlip = func(o *netlist.Object) uint64 {
		if v, ok := flip[o.ID]; ok {
			return v
		}
		var v uint64
		switch o.Kind {
		case netlist.KindPO:
			v = evalFlip(o.Fanins[0])
		default:
			faninVals := make([]uint64, len(o.Fanins))
			for i, fi := range o.Fanins {
				if affected[fi.ID] {
					faninVals[i] = evalFlip(fi)
				} else {
					faninVals[i] = evalNode(fi)
				}
			}
			nVars, cover, isOnset := nodeFunction(o)
			v = evalGateCover(nVars, cover, isOnset, faninVals)
		}
		flip[o.ID] = v
		return v
	}

	var careSet uint64
	for _, r := range w.Roots {
		careSet |= evalFlip(r) ^ evalNode(r)
	}
	w.CareSet = careSet
}

// nodeFunction returns a node's function as (variable count, cover, is
// this cover the onset). Gate-bound nodes carry their function on the
// library Gate; a resynthesized-but-unmapped node carries it directly.
func nodeFunction(o *netlist.Object) (nVars int, cover sop.Cover, isOnset bool) {
	if o.Gate != nil {
		return o.Gate.NumInputs(), o.Gate.SOPCover, o.Gate.SOPOnset
	}
	return o.NumFanins(), o.SOPCover, o.SOPOnset
}

// evalGateCover evaluates a gate's cached SOP cover bit-parallel across
// patternCount simulated patterns packed one per bit of each fanin word.
// A cube contributes its minterms via an AND of (possibly complemented)
// fanin words; the cover's cubes OR together; onset covers are used
// directly, offset covers are complemented at the end.
func evalGateCover(nVars int, cover sop.Cover, isOnset bool, faninVals []uint64) uint64 {
	var acc uint64
	for _, cube := range cover {
		term := ^uint64(0)
		for v := 0; v < nVars; v++ {
			switch cube.Lit(v) {
			case sop.LitPos:
				term &= faninVals[v]
			case sop.LitNeg:
				term &= ^faninVals[v]
			}
		}
		acc |= term
	}
	if !isOnset {
		acc = ^acc
	}
	return acc
}

// splitmix64 produces a deterministic, well-mixed pseudo-random word from
// a small integer seed, so PI simulation patterns are reproducible
// without depending on global math/rand state.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}
