// SPDX-License-Identifier: MIT
package satenc

import (
	"github.com/irifrance/gini/z"

	"github.com/go-logicsynth/dcewin/cnf"
	"github.com/go-logicsynth/dcewin/netlist"
	"github.com/go-logicsynth/dcewin/sop"
	"github.com/go-logicsynth/dcewin/window"
)

// Compile streams w into the Encoder's solver and returns the resulting
// Instance. Each call adds a fresh set of clauses and a fresh activation
// literal; nothing from a previous Compile call is removed, matching
// gini's append-only clause database.
func (e *Encoder) Compile(w *window.Window) (*Instance, error) {
	orig := make(map[int]z.Lit)
	dup := make(map[int]z.Lit)

	leaf := func(o *netlist.Object) z.Lit {
		if l, ok := orig[o.ID]; ok {
			return l
		}
		l := e.g.Lit()
		orig[o.ID] = l
		return l
	}

	// Original cone: every TFI/MFFC node, the pivot, and every TFO node,
	// each streamed exactly once through its gate's cached CNF so the
	// roots carry the network's real (unflipped) value.
	original := append(append([]*netlist.Object(nil), w.VOrder...), w.TFO...)
	for _, o := range original {
		if o.Kind == netlist.KindPO {
			// A PO has no function of its own; its value is an alias of
			// its fanin's, set up lazily by whichever side references it.
			continue
		}
		out := leaf(o)
		e.streamGate(o, out, func(fi *netlist.Object) z.Lit { return leaf(fi) })
	}

	// Divisors may include sideways nodes outside both VOrder and TFO
	// (window.computeDivisors guarantees their own fanins are already
	// resolvable — PIs or earlier-listed nodes — so streaming them here,
	// in order, always has every fanin literal already available).
	for _, d := range w.Divisors {
		if _, ok := orig[d.ID]; ok {
			continue
		}
		out := leaf(d)
		e.streamGate(d, out, func(fi *netlist.Object) z.Lit { return leaf(fi) })
	}

	origLit := func(o *netlist.Object) z.Lit {
		if o.Kind == netlist.KindPO {
			return leaf(o.Fanins[0])
		}
		return leaf(o)
	}

	// Duplicated cone: the TFO nodes only, streamed a second time with
	// their own fresh variables. A fanin inside vTfo maps to its
	// duplicate variable (continuing the duplicated propagation); any
	// other fanin maps to its original-cone variable, except the pivot,
	// which maps to the original-cone pivot variable negated.
	dupOf := func(o *netlist.Object) z.Lit {
		if l, ok := dup[o.ID]; ok {
			return l
		}
		l := e.g.Lit()
		dup[o.ID] = l
		return l
	}
	pivotLit := origLit(w.Pivot)

	dupLit := func(o *netlist.Object) z.Lit {
		if o == w.Pivot {
			return pivotLit.Not()
		}
		if l, ok := dup[o.ID]; ok {
			return l
		}
		return origLit(o)
	}

	for _, o := range w.TFO {
		if o.Kind == netlist.KindPO {
			continue
		}
		out := dupOf(o)
		e.streamGate(o, out, dupLit)
	}

	rootDupLit := func(o *netlist.Object) z.Lit {
		if o.Kind == netlist.KindPO {
			return dupLit(o.Fanins[0])
		}
		return dupLit(o)
	}

	roots := make([]RootLit, 0, len(w.Roots))
	for _, r := range w.Roots {
		a := origLit(r)
		b := rootDupLit(r)
		x := e.xorGadget(a, b)
		roots = append(roots, RootLit{Object: r, XorVar: x})
	}

	top := e.g.Lit()
	clause := make([]z.Lit, 0, len(roots)+1)
	clause = append(clause, top.Not())
	for _, r := range roots {
		clause = append(clause, r.XorVar)
	}
	e.addClause(clause...)

	divisors := make([]z.Lit, len(w.Divisors))
	for i, d := range w.Divisors {
		divisors[i] = origLit(d)
	}

	return &Instance{
		Pivot:         pivotLit,
		Divisors:      divisors,
		Roots:         roots,
		TopAssumption: top,
	}, nil
}

// streamGate renames o's cached gate CNF through faninLit and adds the
// resulting clauses to the solver, with output variable out. faninLit
// may return a negated literal (the duplicated cone's pivot occurrence);
// cnf.ClauseStream.Translate's flip table composes that negation with
// each clause's own local polarity directly, so no separate sign-fixup
// pass is needed here.
func (e *Encoder) streamGate(o *netlist.Object, out z.Lit, faninLit func(*netlist.Object) z.Lit) {
	nVars, stream := nodeCNF(o)
	varMap := make([]int, nVars+1)
	flip := make([]bool, nVars+1)
	for i, fi := range o.Fanins {
		l := faninLit(fi)
		varMap[i] = int(l.Var())
		flip[i] = !l.IsPos()
	}
	varMap[nVars] = int(out.Var()) // out is always a fresh, positive literal

	for _, clause := range stream.Translate(varMap, flip) {
		lits := make([]z.Lit, len(clause))
		for i, gl := range clause {
			l := z.Var(gl.Var()).Pos()
			if gl.Negated() {
				l = l.Not()
			}
			lits[i] = l
		}
		e.addClause(lits...)
	}
}

// nodeCNF returns a node's input count and cached CNF clause stream:
// from its library gate when mapped, or freshly derived from its SOP
// cover when it carries a resynthesized-but-unmapped function.
func nodeCNF(o *netlist.Object) (int, cnf.ClauseStream) {
	if o.Gate != nil {
		return o.Gate.NumInputs(), o.Gate.CNF
	}
	n := o.NumFanins()
	f := sop.ToTruthTable(o.SOPCover, o.SOPOnset, n)
	return n, cnf.DeriveCNF(f)
}

// xorGadget introduces a fresh variable x that can be true only when a
// and b differ (x => a != b, the sound, positive-polarity half of a full
// XOR equivalence):
// since x only ever occurs positively in the top "some root differs"
// clause, the completeness direction (a != b => x already settable
// true) is unnecessary — a solver is always free to set x true when
// nothing forbids it, so the OR assertion remains satisfiable exactly
// when some root genuinely differs.
func (e *Encoder) xorGadget(a, b z.Lit) z.Lit {
	x := e.g.Lit()
	e.addClause(x.Not(), a, b)
	e.addClause(x.Not(), a.Not(), b.Not())
	return x
}

func (e *Encoder) addClause(lits ...z.Lit) {
	for _, l := range lits {
		e.g.Add(l)
	}
	e.g.Add(0)
}
