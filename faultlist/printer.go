// SPDX-License-Identifier: MIT
package faultlist

import (
	"fmt"
	"io"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/netlist"
)

// WriteFaultList prints one record per line for every node in nodes, in
// the order given, numbering records sequentially from 1 regardless of
// how many records a given node contributes. Only KindNode objects carry
// faults; a PI or PO in nodes is silently skipped, since neither is ever
// a fault-injection site in the source format.
func WriteFaultList(w io.Writer, lib *library.Library, nodes []*netlist.Object, name Namer, mode Mode) error {
	seq := 0
	for _, n := range nodes {
		if n.Kind != netlist.KindNode {
			continue
		}
		nm := name(n)
		for _, k := range []string{SA0, SA1, Negate} {
			seq++
			if _, err := fmt.Fprintf(w, "%d %s %s\n", seq, nm, k); err != nil {
				return err
			}
		}
		if mode != CellAlternativeMode {
			continue
		}
		if n.Gate == nil {
			continue
		}
		for _, alt := range lib.Gates() {
			if alt == n.Gate || alt.NumInputs() != n.Gate.NumInputs() {
				continue
			}
			seq++
			if _, err := fmt.Fprintf(w, "%d %s %s\n", seq, nm, alt.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
