// SPDX-License-Identifier: MIT
package expr

import "github.com/go-logicsynth/dcewin/tt"

// Eval evaluates e, substituting fanins[i] for primary variable i, and
// returns the resulting truth table. All fanins must share the same
// variable width; that width becomes the width of the returned table.
func Eval(e *Expr, fanins []*tt.Table) *tt.Table {
	if len(fanins) != e.NVars {
		panic("expr: Eval: fanin count does not match NVars")
	}
	width := 0
	if len(fanins) > 0 {
		width = fanins[0].NVars()
	}

	scratch := make([]*tt.Table, len(e.Nodes))
	for i, n := range e.Nodes {
		a := resolveChild(n.A, e.NVars, fanins, scratch, width)
		b := resolveChild(n.B, e.NVars, fanins, scratch, width)
		scratch[i] = a.And(b)
	}
	return resolveChild(e.Root, e.NVars, fanins, scratch, width)
}

func resolveChild(l Lit, nVars int, fanins []*tt.Table, scratch []*tt.Table, width int) *tt.Table {
	switch {
	case l == ConstFalse:
		return tt.Const0(width)
	case l == ConstTrue:
		return tt.Const1(width)
	case l.IsNode(nVars):
		base := scratch[l.NodeIndex(nVars)]
		if l.Compl() {
			return base.Not()
		}
		return base
	default:
		base := fanins[l.Var(nVars)]
		if l.Compl() {
			return base.Not()
		}
		return base
	}
}
