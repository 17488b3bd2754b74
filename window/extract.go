// SPDX-License-Identifier: MIT
package window

import "github.com/go-logicsynth/dcewin/netlist"

// Extract runs the window extraction pipeline of around pivot:
// TFI collection, MFFC marking, TFO collection, divisor computation, and
// ordering. The care set (step 6) is computed separately by Simulate,
// since it needs a source of random patterns the caller may want to
// control.
func Extract(net *netlist.Network, pivot *netlist.Object, b Bounds) (*Window, error) {
	if pivot == nil {
		return nil, ErrNilPivot
	}
	if pivot.Kind == netlist.KindPI {
		return nil, ErrPivotIsPI
	}

	tfi, err := collectTFI(pivot, b)
	if err != nil {
		return nil, err
	}

	mffc := computeMFFC(pivot)
	if len(mffc) < b.MffcMin || len(mffc) > b.MffcMax {
		return nil, ErrMFFCOutOfRange
	}

	nLevelMax := pivot.Level + b.TfoLevMax + b.GrowthLevel
	tfo, roots := collectTFO(pivot, nLevelMax, b.FanoutMax)

	divisors := computeDivisors(tfi, pivot, mffc, tfo, nLevelMax, b.WinSizeMax)

	vOrder := buildVOrder(tfi, mffc, pivot)

	return &Window{
		Pivot:    pivot,
		TFI:      tfi,
		MFFC:     mffc,
		TFO:      tfo,
		Roots:    roots,
		Divisors: divisors,
		VOrder:   vOrder,
	}, nil
}

// collectTFI performs step 1: a DFS from pivot that stops at PIs or at
// nodes below nLevelMin, returned in post-order (every fanin precedes
// its consumer).
func collectTFI(pivot *netlist.Object, b Bounds) ([]*netlist.Object, error) {
	nLevelMin := pivot.Level - b.TfiLevMax

	seen := make(map[int]bool)
	var order []*netlist.Object

	var visit func(o *netlist.Object) error
	visit = func(o *netlist.Object) error {
		if o.Kind == netlist.KindPI || o.Level < nLevelMin {
			return nil
		}
		if seen[o.ID] {
			return nil
		}
		seen[o.ID] = true
		if o != pivot {
			if len(order)+1 > b.WinSizeMax {
				return ErrWindowTooLarge
			}
		}
		for _, fi := range o.Fanins {
			if err := visit(fi); err != nil {
				return err
			}
		}
		if o != pivot {
			order = append(order, o)
		}
		return nil
	}
	if err := visit(pivot); err != nil {
		return nil, err
	}
	return order, nil
}

// computeMFFC performs step 2 via the recursive-deref technique: a node
// joins the MFFC the moment its simulated remaining-fanout count,
// decremented along every path from the pivot, reaches zero. The
// network's real Fanouts lists are never mutated; remaining counts live
// in a scratch map seeded from the true fanout count.
func computeMFFC(pivot *netlist.Object) map[*netlist.Object]bool {
	mffc := make(map[*netlist.Object]bool)
	remaining := make(map[int]int)

	remainingOf := func(o *netlist.Object) int {
		if v, ok := remaining[o.ID]; ok {
			return v
		}
		return len(o.Fanouts)
	}

	var deref func(o *netlist.Object)
	deref = func(o *netlist.Object) {
		mffc[o] = true
		for _, fi := range o.Fanins {
			if fi.Kind == netlist.KindPI {
				continue
			}
			r := remainingOf(fi) - 1
			remaining[fi.ID] = r
			if r == 0 {
				deref(fi)
			}
		}
	}
	deref(pivot)
	return mffc
}

// collectTFO performs step 3: a reverse (fanout-directed) BFS from pivot
// up to nLevelMax, stopping at POs and refusing to expand past nodes
// whose own fanout count exceeds fanoutMax (they are too widely shared
// to usefully include). vRoots are nodes with a fanout escaping the
// window, plus every PO encountered.
func collectTFO(pivot *netlist.Object, nLevelMax, fanoutMax int) (tfo []*netlist.Object, roots []*netlist.Object) {
	inWindow := map[int]bool{pivot.ID: true}
	queue := append([]*netlist.Object(nil), pivot.Fanouts...)
	var order []*netlist.Object

	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		if inWindow[o.ID] {
			continue
		}
		inWindow[o.ID] = true

		if o.Kind == netlist.KindPO {
			order = append(order, o)
			roots = append(roots, o)
			continue
		}
		if o.Level > nLevelMax {
			continue
		}
		order = append(order, o)
		if len(o.Fanouts) > fanoutMax {
			continue
		}
		queue = append(queue, o.Fanouts...)
	}

	for _, o := range order {
		if o.Kind == netlist.KindPO {
			continue
		}
		if isRoot(o, inWindow) {
			roots = append(roots, o)
		}
	}
	return order, roots
}

func isRoot(o *netlist.Object, inWindow map[int]bool) bool {
	if len(o.Fanouts) == 0 {
		return true
	}
	for _, fo := range o.Fanouts {
		if !inWindow[fo.ID] {
			return true
		}
	}
	return false
}

// computeDivisors performs step 4: TFI nodes other than the pivot and
// its immediate fanins, plus non-MFFC, non-TFO nodes reachable sideways
// from the TFI within the remaining level budget, capped at sizeMax. A
// sideways node is only admitted once every one of its own fanins is
// itself a PI or already resolvable within the window — otherwise its
// SAT variable could not be tied to the window's leaves at all, since
// some part of its support would lie outside the encoded region.
func computeDivisors(tfi []*netlist.Object, pivot *netlist.Object, mffc map[*netlist.Object]bool, tfo []*netlist.Object, nLevelMax, sizeMax int) []*netlist.Object {
	immediateFanin := make(map[int]bool, pivot.NumFanins())
	for _, fi := range pivot.Fanins {
		immediateFanin[fi.ID] = true
	}

	inTFO := make(map[int]bool, len(tfo))
	for _, o := range tfo {
		inTFO[o.ID] = true
	}

	resolved := make(map[int]bool, len(tfi)+1)
	resolved[pivot.ID] = true
	for _, o := range tfi {
		resolved[o.ID] = true
	}

	var divisors []*netlist.Object
	present := make(map[int]bool)
	for _, o := range tfi {
		if o == pivot || immediateFanin[o.ID] {
			continue
		}
		divisors = append(divisors, o)
		present[o.ID] = true
	}

	supportResolved := func(fo *netlist.Object) bool {
		for _, fi := range fo.Fanins {
			if fi.Kind != netlist.KindPI && !resolved[fi.ID] {
				return false
			}
		}
		return true
	}

	// Sideways reachability originates at every TFI node's fanouts, even
	// ones excluded from the divisor list itself (the pivot's immediate
	// fanins), since a sibling consumer of an immediate fanin is still a
	// legitimate divisor candidate.
	queue := append([]*netlist.Object(nil), tfi...)
	for len(queue) > 0 && len(divisors) < sizeMax {
		o := queue[0]
		queue = queue[1:]
		for _, fo := range o.Fanouts {
			if fo.Kind == netlist.KindPO || present[fo.ID] || mffc[fo] || inTFO[fo.ID] {
				continue
			}
			if fo.Level > nLevelMax {
				continue
			}
			if !supportResolved(fo) {
				continue
			}
			present[fo.ID] = true
			resolved[fo.ID] = true
			divisors = append(divisors, fo)
			queue = append(queue, fo)
			if len(divisors) >= sizeMax {
				break
			}
		}
	}
	return divisors
}

// buildVOrder concatenates the TFI (already topologically safe), any
// MFFC node not already counted, and the pivot last, giving a single
// order safe to drive forward simulation.
func buildVOrder(tfi []*netlist.Object, mffc map[*netlist.Object]bool, pivot *netlist.Object) []*netlist.Object {
	present := make(map[int]bool, len(tfi)+len(mffc)+1)
	var order []*netlist.Object
	for _, o := range tfi {
		order = append(order, o)
		present[o.ID] = true
	}
	for o := range mffc {
		if o == pivot || present[o.ID] {
			continue
		}
		order = append(order, o)
		present[o.ID] = true
	}
	order = append(order, pivot)
	return order
}

// MFFCInputDivisors returns, in w.Divisors order, the indices of every
// divisor that is itself a fanin of some MFFC node: the pool a
// decomposition's more-effort retry draws its forced first cofactor
// variable from, since those divisors sit closest to the replacement
// site.
func (w *Window) MFFCInputDivisors() []int {
	var out []int
	for i, d := range w.Divisors {
		for _, fo := range d.Fanouts {
			if w.MFFC[fo] {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
