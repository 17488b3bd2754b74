// SPDX-License-Identifier: MIT
package timing

import "github.com/go-logicsynth/dcewin/netlist"

// PureDelay is a Facade that ignores fanout loading: every pin's delay
// is its intrinsic block delay alone. The one exception is EvalRemapping
// of a two-cell candidate, where the bottom cell's delay includes the
// top cell's input-pin load.
type PureDelay struct {
	*base
}

// NewPureDelay builds a PureDelay façade over net's current mapping.
func NewPureDelay(net *netlist.Network, opts Options) *PureDelay {
	zeroLoad := func(*netlist.Object) float64 { return 0 }
	return &PureDelay{base: newBase(net, opts, zeroLoad)}
}

func (p *PureDelay) UpdateTiming(changed []*netlist.Object) { p.updateTiming(changed) }

// UpdateLoad is a no-op: PureDelay never tracks fanout load.
func (p *PureDelay) UpdateLoad(nodes []*netlist.Object, addOrSub int) {}

// TransferLoad is a no-op: PureDelay never tracks fanout load.
func (p *PureDelay) TransferLoad(newNode, old *netlist.Object) {}
