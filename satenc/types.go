// SPDX-License-Identifier: MIT
package satenc

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/go-logicsynth/dcewin/netlist"
)

// Instance is one window's compiled SAT encoding, sharing the Encoder's
// underlying solver with every other window compiled so far.
type Instance struct {
	// Pivot is the original-cone literal for the window's pivot.
	Pivot z.Lit

	// Divisors holds the original-cone literal for each of the window's
	// divisor candidates, in window.Window.Divisors order.
	Divisors []z.Lit

	// Roots holds one entry per window root, carrying that root's XOR
	// gadget literal.
	Roots []RootLit

	// TopAssumption must be included in every Assume call made against
	// this instance: it is the activation literal gating this window's
	// "some root differs" clause, so windows compiled earlier (or later)
	// into the same solver do not interfere.
	TopAssumption z.Lit
}

// RootLit pairs a window root with its XOR gadget variable x_i, which
// can be true only when the root's original-cone and duplicated-cone
// values differ.
type RootLit struct {
	Object *netlist.Object
	XorVar z.Lit
}

// Encoder owns one gini instance reused across many compiled windows.
type Encoder struct {
	g *gini.Gini
}

// NewEncoder creates an Encoder with a fresh solver.
func NewEncoder() *Encoder {
	return &Encoder{g: gini.New()}
}

// Solver exposes the underlying gini instance for the interpolant and
// decomp packages' Assume/Try/Why calls.
func (e *Encoder) Solver() *gini.Gini { return e.g }
