// SPDX-License-Identifier: MIT
package library

import (
	"github.com/go-logicsynth/dcewin/cnf"
	"github.com/go-logicsynth/dcewin/expr"
	"github.com/go-logicsynth/dcewin/sop"
	"github.com/go-logicsynth/dcewin/tt"
)

// materialize computes and caches g's truth table, SOP cover, CNF clause
// stream, and maximum block delay from its already-parsed expression.
// g.Expr must already be set.
func materialize(g *Gate) {
	fanins := make([]*tt.Table, len(g.Pins))
	for i := range g.Pins {
		fanins[i] = tt.ElementaryVar(len(g.Pins), i)
	}
	g.Truth = expr.Eval(g.Expr, fanins)
	g.SOPCover, g.SOPOnset = sop.Smaller(g.Truth)
	g.CNF = cnf.DeriveCNF(g.Truth)

	for _, p := range g.Pins {
		if p.DelayBlockMax > g.DelayMax {
			g.DelayMax = p.DelayBlockMax
		}
	}
}

// resolveDistinguishedGates scans lib in load order to fill in the
// distinguished constant/buffer/inverter/2-input entries required by the
// library invariants. The first matching gate at each arity wins,
// keeping resolution deterministic under the library's load order.
func resolveDistinguishedGates(lib *Library) error {
	and2 := tt.ElementaryVar(2, 0).And(tt.ElementaryVar(2, 1))
	or2 := tt.ElementaryVar(2, 0).Or(tt.ElementaryVar(2, 1))

	for _, g := range lib.Gates() {
		switch g.NumInputs() {
		case 0:
			if g.Truth.IsConst0() && lib.Const0Gate == nil {
				lib.Const0Gate = g
			}
			if g.Truth.IsConst1() && lib.Const1Gate == nil {
				lib.Const1Gate = g
			}
		case 1:
			ident := tt.ElementaryVar(1, 0)
			if g.Truth.Equals(ident) && lib.BufferGate == nil {
				lib.BufferGate = g
			}
			if g.Truth.Equals(ident.Not()) && lib.InverterGate == nil {
				lib.InverterGate = g
			}
		case 2:
			switch {
			case g.Truth.Equals(and2) && lib.And2Gate == nil:
				lib.And2Gate = g
			case g.Truth.Equals(and2.Not()) && lib.Nand2Gate == nil:
				lib.Nand2Gate = g
			case g.Truth.Equals(or2) && lib.Or2Gate == nil:
				lib.Or2Gate = g
			case g.Truth.Equals(or2.Not()) && lib.Nor2Gate == nil:
				lib.Nor2Gate = g
			}
		}
	}

	if lib.Const0Gate == nil || lib.Const1Gate == nil {
		return ErrNoConstantGate
	}
	return nil
}
