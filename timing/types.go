// SPDX-License-Identifier: MIT
package timing

import (
	"github.com/go-logicsynth/dcewin/matcher"
	"github.com/go-logicsynth/dcewin/netlist"
)

// scalePs is the fixed-point scale applied to a library's floating-point
// delay units when converting to the façade's integer "scaled
// picoseconds" return type, avoiding float drift across repeated
// incremental updates.
const scalePs = 1000

// Options configures a Facade implementation at construction.
type Options struct {
	// TargetDelay bounds required-time propagation: every PO's required
	// time starts at TargetDelay (scaled picoseconds) and propagates
	// backward from there. Zero means "as fast as possible": every PO's
	// required time is the network's current worst PO arrival
	// (NetworkDelay), computed at construction and again on every
	// UpdateTiming.
	TargetDelay int
}

// Facade is the timing query surface the driver (resynth) and the
// library matcher's delay-mode lookups are built against. All returns
// are deterministic functions of the network and the current mapping;
// callers must call UpdateTiming after any structural change before
// querying timing again, and UpdateLoad/TransferLoad after any change
// that alters which node drives which fanins (load-aware implementations
// only — PureDelay accepts these calls as no-ops).
type Facade interface {
	// Arrival returns n's arrival time in scaled picoseconds.
	Arrival(n *netlist.Object) int
	// Required returns n's required time in scaled picoseconds.
	Required(n *netlist.Object) int
	// Slack returns Required(n) - Arrival(n).
	Slack(n *netlist.Object) int
	// NetworkDelay returns the worst arrival time across every PO.
	NetworkDelay() int
	// MinSlack returns the smallest slack across every timed node.
	MinSlack() int

	// SortByArrival stably reorders nodes by descending arrival time and
	// returns the index of the first entry whose arrival time is no
	// greater than pivot's: the split between candidates more critical
	// than pivot and those at or below its criticality.
	SortByArrival(nodes []*netlist.Object, pivot *netlist.Object) int
	// IsNonCritical reports whether node's arrival time leaves enough
	// slack relative to pivot that node cannot be on pivot's critical
	// path.
	IsNonCritical(pivot, node *netlist.Object) bool
	// PriorityNodes appends, to *outCands, the nodes within windowPct of
	// the network's worst slack, in descending criticality order. It
	// returns false when the network has no more critical work (every
	// node's slack is non-negative).
	PriorityNodes(outCands *[]*netlist.Object, windowPct float64) bool

	// EvalRemapping predicts the output arrival time a candidate
	// replacement (rec, a matcher.Record) would produce if it took over
	// pivot's position in the network, with its ordered support bound to
	// fanins, without committing anything. pivot supplies the output
	// load the replacement would drive (its existing fanouts);
	// len(fanins) must equal len(rec.Fanins).
	EvalRemapping(pivot *netlist.Object, fanins []*netlist.Object, rec *matcher.Record) (int, error)

	// UpdateTiming recomputes arrival/required times for changedNodes
	// and everything downstream of them, after a structural change has
	// already been committed to the network.
	UpdateTiming(changedNodes []*netlist.Object)
	// UpdateLoad adjusts the load this façade attributes to each of
	// nodes' fanins by +1/-1 unit of nodes' own input capacitance,
	// depending on addOrSub. A no-op for PureDelay.
	UpdateLoad(nodes []*netlist.Object, addOrSub int)
	// TransferLoad moves the load this façade has accumulated on old's
	// output onto newNode's output and drops old's entry, used when
	// newNode replaces old in the network. A no-op for PureDelay.
	TransferLoad(newNode, old *netlist.Object)
}
