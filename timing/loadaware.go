// SPDX-License-Identifier: MIT
package timing

import "github.com/go-logicsynth/dcewin/netlist"

// LoadAware is a Facade that scales each pin's delay by the capacitive
// load its driving node's output actually sees, maintained incrementally
// rather than rescanned on every query, mirroring the window package's
// running-count technique for MFFC membership rather than a full
// recompute per call.
type LoadAware struct {
	*base
	load map[*netlist.Object]float64
}

// NewLoadAware builds a LoadAware façade over net's current mapping,
// seeding the load cache from the network's existing fanin/fanout
// wiring.
func NewLoadAware(net *netlist.Network, opts Options) *LoadAware {
	lw := &LoadAware{load: make(map[*netlist.Object]float64)}
	lw.seedLoad(collectForward(net.PIs()))
	lw.base = newBase(net, opts, lw.loadOf)
	return lw
}

func (lw *LoadAware) loadOf(n *netlist.Object) float64 { return lw.load[n] }

func (lw *LoadAware) seedLoad(nodes []*netlist.Object) {
	for _, o := range nodes {
		if o.Kind == netlist.KindPI {
			continue
		}
		for i, fi := range o.Fanins {
			lw.load[fi] += faninLoadOf(o, i)
		}
	}
}

// faninLoadOf returns the input capacitance o's pin i presents, or 0 for
// a PO (a PO has no gate and presents no capacitance of its own).
func faninLoadOf(o *netlist.Object, i int) float64 {
	if o.Kind == netlist.KindPO {
		return 0
	}
	return o.Gate.Pins[i].InputLoad
}

func (lw *LoadAware) UpdateTiming(changed []*netlist.Object) { lw.updateTiming(changed) }

// UpdateLoad adds (addOrSub=+1) or removes (addOrSub=-1) each node in
// nodes' own contribution to its fanins' tracked load, used when nodes
// are spliced into or out of the network.
func (lw *LoadAware) UpdateLoad(nodes []*netlist.Object, addOrSub int) {
	for _, o := range nodes {
		if o.Kind == netlist.KindPI {
			continue
		}
		for i, fi := range o.Fanins {
			lw.load[fi] += float64(addOrSub) * faninLoadOf(o, i)
		}
	}
}

// TransferLoad moves the load accumulated against old's output onto
// newNode, for when newNode is about to take over as the driver every
// one of old's fanouts reads from.
func (lw *LoadAware) TransferLoad(newNode, old *netlist.Object) {
	lw.load[newNode] = lw.load[old]
	delete(lw.load, old)
}
