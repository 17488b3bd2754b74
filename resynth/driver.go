// SPDX-License-Identifier: MIT
package resynth

import (
	"sort"

	"github.com/go-logicsynth/dcewin/decomp"
	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/matcher"
	"github.com/go-logicsynth/dcewin/netlist"
	"github.com/go-logicsynth/dcewin/satenc"
	"github.com/go-logicsynth/dcewin/timing"
	"github.com/go-logicsynth/dcewin/window"
)

// Driver owns the shared SAT solver and orchestrates the resynthesis
// loop over one network.
type Driver struct {
	Net     *netlist.Network
	Lib     *library.Library
	Matcher *matcher.Matcher
	Timing  timing.Facade // nil in area mode unless the caller wants diagnostics

	enc  *satenc.Encoder
	opts Options
}

// NewDriver builds a Driver. facade may be nil for ModeArea; it is
// required for ModeDelay.
func NewDriver(net *netlist.Network, lib *library.Library, m *matcher.Matcher, facade timing.Facade, opts Options) (*Driver, error) {
	if opts.Mode == ModeDelay && (facade == nil || opts.Matcher.Mode != matcher.DelayMode) {
		return nil, ErrModeMismatch
	}
	if opts.Mode == ModeArea && opts.Matcher.Mode != matcher.AreaMode {
		return nil, ErrModeMismatch
	}
	return &Driver{
		Net:     net,
		Lib:     lib,
		Matcher: m,
		Timing:  facade,
		enc:     satenc.NewEncoder(),
		opts:    opts,
	}, nil
}

// Run executes the configured loop once and returns its statistics.
func (d *Driver) Run() (*Stats, *TimingBreakdown, error) {
	stats := &Stats{}
	var tb *TimingBreakdown
	if d.Timing != nil {
		tb = &TimingBreakdown{
			InitialNetworkDelay: d.Timing.NetworkDelay(),
			InitialMinSlack:     d.Timing.MinSlack(),
		}
	}

	var err error
	switch d.opts.Mode {
	case ModeArea:
		err = d.runArea(stats)
	case ModeDelay:
		err = d.runDelay(stats, tb)
	}

	if tb != nil {
		tb.FinalNetworkDelay = d.Timing.NetworkDelay()
		tb.FinalMinSlack = d.Timing.MinSlack()
	}

	if d.opts.Logger != nil {
		d.opts.Logger.Info().
			Int("tried", stats.Tried).
			Int("changed", stats.Changed).
			Int("skipped_window_bound", stats.SkippedWindowBound).
			Int("skipped_no_candidate", stats.SkippedNoCandidate).
			Int("skipped_no_match", stats.SkippedNoMatch).
			Int("skipped_not_improving", stats.SkippedNotImproving).
			Msg("resynth run complete")
	}

	return stats, tb, err
}

// runArea dispatches to the configured traversal order.
func (d *Driver) runArea(stats *Stats) error {
	if d.opts.Traversal == TraversalFrontier {
		return d.runAreaFrontier(stats)
	}
	return d.runAreaTopological(stats)
}

// runAreaTopological walks every internal node once in topological
// (non-decreasing level) order, splicing in the first improving match
// found at each.
func (d *Driver) runAreaTopological(stats *Stats) error {
	for _, pivot := range d.topoNodes() {
		if d.opts.NNodesMax > 0 && stats.Changed >= d.opts.NNodesMax {
			stats.SkippedBudgetExhausted++
			return ErrNodeChangeBudgetExceeded
		}
		d.tryAreaPivot(pivot, stats)
	}
	return nil
}

// runAreaFrontier visits nodes in a worklist order seeded from each PO's
// driving node, rather than a single fixed topological pass: after a
// successful attempt, whatever now occupies the visited node's position
// goes to the front of the queue, so a chain of back-to-back improving
// splices along one path is chased to exhaustion before the traversal
// moves on to the nodes already queued. A failed attempt at a node falls
// through to queueing its fanins at the back instead.
func (d *Driver) runAreaFrontier(stats *Stats) error {
	visited := make(map[int]bool)
	var queue []*netlist.Object
	push := func(o *netlist.Object) {
		if o == nil || o.Kind != netlist.KindNode || visited[o.ID] {
			return
		}
		visited[o.ID] = true
		queue = append(queue, o)
	}

	for _, po := range d.Net.POs() {
		if len(po.Fanins) == 1 {
			push(po.Fanins[0])
		}
	}

	for len(queue) > 0 {
		pivot := queue[0]
		queue = queue[1:]

		if _, err := d.Net.Object(pivot.ID); err != nil {
			// pivot was retired as a side effect of an earlier splice
			// elsewhere in this pass; nothing left to visit here.
			continue
		}
		if d.opts.NNodesMax > 0 && stats.Changed >= d.opts.NNodesMax {
			stats.SkippedBudgetExhausted++
			return ErrNodeChangeBudgetExceeded
		}

		ok, replaced := d.tryAreaPivotChase(pivot, stats)
		if ok {
			rest := queue
			queue = nil
			for _, r := range replaced {
				push(r)
			}
			queue = append(queue, rest...)
			continue
		}
		for _, fi := range pivot.Fanins {
			push(fi)
		}
	}
	return nil
}

// runDelay repeatedly asks the timing façade for the current
// critical-path neighborhood and commits the first improving match among
// its candidates, refreshing the façade before asking again. It stops
// when the façade reports no more negative-slack work, when a full pass
// over a neighborhood commits nothing, or when NNodesMax is reached.
func (d *Driver) runDelay(stats *Stats, tb *TimingBreakdown) error {
	for {
		if d.opts.NNodesMax > 0 && stats.Changed >= d.opts.NNodesMax {
			stats.SkippedBudgetExhausted++
			return ErrNodeChangeBudgetExceeded
		}

		var cands []*netlist.Object
		if !d.Timing.PriorityNodes(&cands, d.opts.NTimeWin) {
			return nil
		}

		progressed := false
		for _, pivot := range cands {
			stats.Tried++
			if d.tryDelayPivot(pivot, stats) {
				progressed = true
				if tb != nil {
					tb.NodesImproved++
				}
				break
			}
		}
		if !progressed {
			return nil
		}
	}
}

// topoNodes returns every internal (KindNode) object reachable from the
// network's PIs, sorted by non-decreasing Level.
func (d *Driver) topoNodes() []*netlist.Object {
	seen := make(map[int]bool)
	queue := append([]*netlist.Object(nil), d.Net.PIs()...)
	for _, o := range queue {
		seen[o.ID] = true
	}
	var nodes []*netlist.Object
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		for _, fo := range o.Fanouts {
			if seen[fo.ID] {
				continue
			}
			seen[fo.ID] = true
			queue = append(queue, fo)
			if fo.Kind == netlist.KindNode {
				nodes = append(nodes, fo)
			}
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Level < nodes[j].Level })
	return nodes
}

// decomposeResult is what tryAreaPivot/tryDelayPivot both need out of
// window extraction, SAT compilation, and decomposition, kept together so
// neither caller repeats that sequence.
type decomposeResult struct {
	win    *window.Window
	fanins []*netlist.Object
	cand   *decomp.Candidate
}

// extractAndDecompose runs window extraction through decomposition for
// pivot, returning nil (and bumping the appropriate skip counter) if no
// usable candidate resulted.
func (d *Driver) extractAndDecompose(pivot *netlist.Object, stats *Stats) *decomposeResult {
	win, err := window.Extract(d.Net, pivot, d.opts.Bounds)
	if err != nil {
		stats.SkippedWindowBound++
		return nil
	}
	window.Simulate(win)

	inst, err := d.enc.Compile(win)
	if err != nil {
		stats.SkippedWindowBound++
		return nil
	}

	var mffcInputs []int
	if d.opts.MoreEffort {
		mffcInputs = win.MFFCInputDivisors()
	}

	res := decomp.Decompose(d.enc.Solver(), inst, mffcInputs, d.opts.Decomp)
	switch res.Outcome {
	case decomp.Undecided:
		stats.SkippedUndecided++
		return nil
	case decomp.NoCandidate:
		stats.SkippedNoCandidate++
		return nil
	}

	fanins := make([]*netlist.Object, len(res.Best.Support))
	for i, idx := range res.Best.Support {
		fanins[i] = win.Divisors[idx]
	}
	return &decomposeResult{win: win, fanins: fanins, cand: res.Best}
}

// tryAreaPivot attempts one area-mode replacement at pivot, splicing it
// in and returning true if it strictly (or, under ZeroCost, non-
// strictly) reduces area relative to pivot's current MFFC. See
// tryAreaPivotChase for a variant that also reports what now occupies
// pivot's former position.
func (d *Driver) tryAreaPivot(pivot *netlist.Object, stats *Stats) bool {
	ok, _ := d.tryAreaPivotChase(pivot, stats)
	return ok
}

// tryAreaPivotChase is tryAreaPivot plus the replacement node(s) now
// standing in pivot's former position, for a frontier traversal
// (runAreaFrontier) that wants to immediately chase further optimization
// there rather than wait for a later sweep.
func (d *Driver) tryAreaPivotChase(pivot *netlist.Object, stats *Stats) (bool, []*netlist.Object) {
	stats.Tried++

	dr := d.extractAndDecompose(pivot, stats)
	if dr == nil {
		return false, nil
	}

	if len(dr.cand.Support) == 0 {
		return d.commitConstant(dr, stats), nil
	}

	rec, err := d.Matcher.AreaLookup(dr.cand.Table)
	if err != nil {
		stats.SkippedNoMatch++
		return false, nil
	}

	oldArea := mffcArea(dr.win.MFFC)
	improving := rec.Area < oldArea
	if d.opts.ZeroCost {
		improving = rec.Area <= oldArea
	}
	if !improving {
		stats.SkippedNotImproving++
		return false, nil
	}

	newNodes, err := d.commit(dr.win, dr.fanins, rec)
	if err != nil {
		stats.SkippedNotImproving++
		return false, nil
	}
	stats.Changed++
	if rec.BotCell == d.Lib.BufferGate && rec.TopCell == nil {
		stats.BufferSpliced++
	} else if rec.BotCell == d.Lib.InverterGate && rec.TopCell == nil {
		stats.InverterSpliced++
	}
	return true, newNodes
}

// tryDelayPivot attempts one delay-mode replacement at pivot, committing
// the first candidate on the delay frontier whose predicted arrival beats
// pivot's current arrival by at least DeltaCrit and (if DelayAreaRatio is
// set) stays within its area-for-delay trade-off budget.
func (d *Driver) tryDelayPivot(pivot *netlist.Object, stats *Stats) bool {
	dr := d.extractAndDecompose(pivot, stats)
	if dr == nil {
		return false
	}
	if len(dr.cand.Support) == 0 {
		return d.commitConstant(dr, stats)
	}

	recs, err := d.Matcher.DelayLookup(dr.cand.Table)
	if err != nil || len(recs) == 0 {
		stats.SkippedNoMatch++
		return false
	}

	oldArrival := d.Timing.Arrival(pivot)
	oldArea := mffcArea(dr.win.MFFC)

	for _, rec := range recs {
		predicted, err := d.Timing.EvalRemapping(pivot, dr.fanins, rec)
		if err != nil {
			continue
		}
		delta := oldArrival - predicted
		if delta < d.opts.DeltaCrit {
			continue
		}
		if d.opts.DelayAreaRatio > 0 {
			areaDelta := rec.Area - oldArea
			if areaDelta > 0 && areaDelta > float64(delta)*d.opts.DelayAreaRatio {
				continue
			}
		}

		if _, err := d.commit(dr.win, dr.fanins, rec); err != nil {
			continue
		}
		stats.Changed++
		if rec.BotCell == d.Lib.BufferGate && rec.TopCell == nil {
			stats.BufferSpliced++
		} else if rec.BotCell == d.Lib.InverterGate && rec.TopCell == nil {
			stats.InverterSpliced++
		}
		return true
	}
	stats.SkippedNotImproving++
	return false
}

// commitConstant splices in the library's constant-0 or constant-1 gate
// for a decomposition result with an empty support: the matcher never
// indexes zero-input cells (matcher.Prepare skips them), so a constant
// result is spliced directly rather than looked up.
func (d *Driver) commitConstant(dr *decomposeResult, stats *Stats) bool {
	gate := d.Lib.Const0Gate
	if dr.cand.Table.IsConst1() {
		gate = d.Lib.Const1Gate
	}
	if gate == nil {
		stats.SkippedNoMatch++
		return false
	}

	rec := &matcher.Record{BotCell: gate, Area: gate.Area}
	if _, err := d.commit(dr.win, nil, rec); err != nil {
		stats.SkippedNotImproving++
		return false
	}
	stats.Changed++
	if gate == d.Lib.Const0Gate {
		stats.Const0Spliced++
	} else {
		stats.Const1Spliced++
	}
	return true
}

// mffcArea sums the area of every gate-mapped node in mffc; a
// resynthesized-but-unmapped node (no Gate, an SOP cover instead)
// contributes nothing, since it has no area to reclaim.
func mffcArea(mffc map[*netlist.Object]bool) float64 {
	var total float64
	for o := range mffc {
		if o.Gate != nil {
			total += o.Gate.Area
		}
	}
	return total
}

func mffcSlice(mffc map[*netlist.Object]bool) []*netlist.Object {
	out := make([]*netlist.Object, 0, len(mffc))
	for o := range mffc {
		out = append(out, o)
	}
	return out
}
