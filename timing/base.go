// SPDX-License-Identifier: MIT
package timing

import (
	"math"
	"sort"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/matcher"
	"github.com/go-logicsynth/dcewin/netlist"
)

// base implements every Facade method that does not depend on whether
// load is tracked; PureDelay and LoadAware each embed one, supplying
// their own loadOf so the same propagation code picks up a real fanout
// load term only when one is actually being tracked.
type base struct {
	net      *netlist.Network
	opts     Options
	arrival  map[*netlist.Object]int
	required map[*netlist.Object]int
	loadOf   func(*netlist.Object) float64
}

func newBase(net *netlist.Network, opts Options, loadOf func(*netlist.Object) float64) *base {
	b := &base{
		net:      net,
		opts:     opts,
		arrival:  make(map[*netlist.Object]int),
		required: make(map[*netlist.Object]int),
		loadOf:   loadOf,
	}
	b.recomputeArrival(collectForward(net.PIs()))
	b.recomputeRequired(collectForward(net.PIs()))
	return b
}

// pinDelayPs returns p's propagation delay in scaled picoseconds given
// the capacitive load on the output p feeds into: the worse of its rise
// and fall block delays, plus the worse of its rise and fall per-unit-
// load slopes scaled by load.
func pinDelayPs(p library.Pin, load float64) int {
	block := math.Max(p.DelayBlockRise, p.DelayBlockFall)
	fanout := math.Max(p.DelayFanoutRise, p.DelayFanoutFall)
	return int(math.Round((block + fanout*load) * scalePs))
}

// collectForward returns every object reachable from seeds by following
// Fanouts edges, including the seeds themselves, in no particular order.
func collectForward(seeds []*netlist.Object) []*netlist.Object {
	visited := make(map[*netlist.Object]bool, len(seeds))
	queue := append([]*netlist.Object(nil), seeds...)
	for _, o := range queue {
		visited[o] = true
	}
	all := append([]*netlist.Object(nil), queue...)
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		for _, fo := range o.Fanouts {
			if !visited[fo] {
				visited[fo] = true
				all = append(all, fo)
				queue = append(queue, fo)
			}
		}
	}
	return all
}

// faninIndex returns the position of fanin within o's Fanins list.
func faninIndex(o, fanin *netlist.Object) int {
	for i, fi := range o.Fanins {
		if fi == fanin {
			return i
		}
	}
	return -1
}

// recomputeArrival propagates arrival times forward across affected
// (sorted into non-decreasing Level order so every fanin is processed
// before its consumers) without touching nodes outside that set.
func (b *base) recomputeArrival(affected []*netlist.Object) {
	sort.Slice(affected, func(i, j int) bool { return affected[i].Level < affected[j].Level })
	for _, o := range affected {
		if o.Kind == netlist.KindPI {
			b.arrival[o] = 0
			continue
		}
		if o.Kind == netlist.KindPO {
			b.arrival[o] = b.arrival[o.Fanins[0]]
			continue
		}
		best := 0
		for i, fi := range o.Fanins {
			cand := b.arrival[fi] + pinDelayPs(o.Gate.Pins[i], b.loadOf(o))
			if cand > best {
				best = cand
			}
		}
		b.arrival[o] = best
	}
}

// recomputeRequired propagates required times backward across affected,
// processed in non-increasing Level order so every fanout is resolved
// before the nodes that feed it.
func (b *base) recomputeRequired(affected []*netlist.Object) {
	sort.Slice(affected, func(i, j int) bool { return affected[i].Level > affected[j].Level })
	target := b.opts.TargetDelay
	if target == 0 {
		target = b.NetworkDelay()
	}
	for _, o := range affected {
		if o.Kind == netlist.KindPO {
			b.required[o] = target
			continue
		}
		if len(o.Fanouts) == 0 {
			b.required[o] = target
			continue
		}
		req := math.MaxInt
		for _, fo := range o.Fanouts {
			idx := faninIndex(fo, o)
			var d int
			if fo.Kind == netlist.KindPO || idx < 0 {
				d = 0
			} else {
				d = pinDelayPs(fo.Gate.Pins[idx], b.loadOf(fo))
			}
			cand := b.required[fo] - d
			if cand < req {
				req = cand
			}
		}
		b.required[o] = req
	}
}

// updateTiming recomputes arrival times forward from changed and, since
// the "as fast as possible" required-time target (opts.TargetDelay == 0)
// depends on the network's global worst arrival, rebuilds required times
// across the whole network rather than just changed's backward closure.
// A targeted backward-only update would be cheaper but would risk a
// stale target whenever changed shifted the critical path.
func (b *base) updateTiming(changed []*netlist.Object) {
	b.recomputeArrival(collectForward(changed))
	live := collectForward(b.net.PIs())
	b.recomputeRequired(live)
	// drop objects no longer reachable from a PI (retired by a splice)
	keep := make(map[*netlist.Object]bool, len(live))
	for _, o := range live {
		keep[o] = true
	}
	for o := range b.required {
		if !keep[o] {
			delete(b.required, o)
			delete(b.arrival, o)
		}
	}
}

func (b *base) Arrival(n *netlist.Object) int { return b.arrival[n] }

func (b *base) Required(n *netlist.Object) int { return b.required[n] }

func (b *base) Slack(n *netlist.Object) int { return b.required[n] - b.arrival[n] }

func (b *base) NetworkDelay() int {
	worst := 0
	for _, po := range b.net.POs() {
		if a := b.arrival[po]; a > worst {
			worst = a
		}
	}
	return worst
}

func (b *base) MinSlack() int {
	worst := math.MaxInt
	for n, req := range b.required {
		if s := req - b.arrival[n]; s < worst {
			worst = s
		}
	}
	if worst == math.MaxInt {
		return 0
	}
	return worst
}

func (b *base) SortByArrival(nodes []*netlist.Object, pivot *netlist.Object) int {
	sort.SliceStable(nodes, func(i, j int) bool { return b.arrival[nodes[i]] > b.arrival[nodes[j]] })
	pivotArrival := b.arrival[pivot]
	for i, n := range nodes {
		if b.arrival[n] <= pivotArrival {
			return i
		}
	}
	return len(nodes)
}

// IsNonCritical reports whether node's own slack leaves it no way to
// land on pivot's critical path: node must both have positive slack and
// already arrive no later than pivot, since a node already later than
// pivot trivially sits on (or beyond) its path.
func (b *base) IsNonCritical(pivot, node *netlist.Object) bool {
	return b.Slack(node) > 0 && b.arrival[node] <= b.arrival[pivot]
}

// PriorityNodes appends, to *outCands, every node with negative slack
// whose slack is within windowPct of the network's worst (most negative)
// slack, most critical first. It returns false when no node has negative
// slack.
func (b *base) PriorityNodes(outCands *[]*netlist.Object, windowPct float64) bool {
	var candidates []*netlist.Object
	worst := 0
	for n, req := range b.required {
		if n.Kind == netlist.KindPI {
			continue
		}
		s := req - b.arrival[n]
		if s < 0 {
			candidates = append(candidates, n)
			if s < worst {
				worst = s
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	sort.Slice(candidates, func(i, j int) bool { return b.Slack(candidates[i]) < b.Slack(candidates[j]) })
	threshold := float64(worst) * (1 - windowPct)
	for _, n := range candidates {
		if float64(b.Slack(n)) <= threshold {
			*outCands = append(*outCands, n)
		}
	}
	return true
}

func (b *base) EvalRemapping(pivot *netlist.Object, fanins []*netlist.Object, rec *matcher.Record) (int, error) {
	if len(fanins) != len(rec.Fanins) {
		return 0, ErrFaninCountMismatch
	}

	finalLoad := b.loadOf(pivot)

	botLoad := finalLoad
	if rec.TopCell != nil {
		botLoad = topFaninLoad(rec)
	}
	botArrival := 0
	for i, src := range rec.Fanins {
		if src.Slot != matcher.SlotBot {
			continue
		}
		cand := b.arrival[fanins[i]] + pinDelayPs(rec.BotCell.Pins[src.Pin], botLoad)
		if cand > botArrival {
			botArrival = cand
		}
	}
	if rec.TopCell == nil {
		return botArrival, nil
	}

	topArrival := botArrival + pinDelayPs(rec.TopCell.Pins[rec.TopFaninPos], finalLoad)
	for i, src := range rec.Fanins {
		if src.Slot != matcher.SlotTop {
			continue
		}
		cand := b.arrival[fanins[i]] + pinDelayPs(rec.TopCell.Pins[src.Pin], finalLoad)
		if cand > topArrival {
			topArrival = cand
		}
	}
	return topArrival, nil
}

// topFaninLoad returns the load the bottom cell's output sees when it
// feeds a top cell: the single wire into the top cell's TopFaninPos pin.
func topFaninLoad(rec *matcher.Record) float64 {
	return rec.TopCell.Pins[rec.TopFaninPos].InputLoad
}
