// SPDX-License-Identifier: MIT
package decomp

import (
	"sort"
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/go-logicsynth/dcewin/satenc"
	"github.com/go-logicsynth/dcewin/tt"
)

// impliedVal records which pivot value, if any, a single SAT query proved
// a divisor's fixed value forces.
type impliedVal int

const (
	notImplied impliedVal = iota
	impliesZero
	impliesOne
)

// sample is one SAT model gini returned, projected onto the window's
// divisors and pivot: the raw material the pivot-selection heuristic
// scores candidates against.
type sample struct {
	vals []bool
	p    bool
}

// impliedLit pairs a divisor index with the directional literal (the
// divisor fixed to whichever value implied the target pivot polarity).
type impliedLit struct {
	idx int
	lit z.Lit
}

// ctx carries the state of one Decompose call across its recursion.
type ctx struct {
	g          *gini.Gini
	inst       *satenc.Instance
	nDiv       int
	budget     time.Duration
	nVarMax    int
	mffcInputs []int
	samples    []sample
}

// Decompose searches for a small function of inst's divisors that
// reproduces the pivot under the window's care set, issuing every SAT
// query on g (the same solver inst was compiled into). mffcInputs lists
// divisor indices that feed directly into the window's MFFC, in the order
// they should be tried as a forced first cofactor variable once the plain
// attempt is exhausted, mirroring a more-effort retry.
func Decompose(g *gini.Gini, inst *satenc.Instance, mffcInputs []int, p Params) *Result {
	c := &ctx{
		g:          g,
		inst:       inst,
		nDiv:       len(inst.Divisors),
		budget:     p.PerCall,
		nVarMax:    p.NVarMax,
		mffcInputs: mffcInputs,
	}

	res := &Result{Outcome: NoCandidate}
	tries := []int{-1}
	tries = append(tries, mffcInputs...)

	for _, forced := range tries {
		if res.Attempts >= p.NDecMax {
			break
		}
		res.Attempts++

		table, support, outcome := c.attempt(forced)
		switch outcome {
		case Undecided:
			if res.Best == nil {
				res.Outcome = Undecided
			}
			continue
		case NoCandidate:
			continue
		}
		if res.Best == nil || len(support) < len(res.Best.Support) {
			res.Best = &Candidate{Table: table, Support: support}
			res.Outcome = Decomposed
		}
	}

	return res
}

func (c *ctx) attempt(forcedPivot int) (*tt.Table, []int, Outcome) {
	used := map[int]bool{}
	return c.recurse(nil, used, forcedPivot)
}

// tryWith issues one SAT query under the window's top assumption, the
// current cofactor prefix, and extra, recording any resulting model for
// the pivot-selection heuristic.
func (c *ctx) tryWith(assump []z.Lit, extra ...z.Lit) int {
	full := make([]z.Lit, 0, len(assump)+len(extra)+1)
	full = append(full, c.inst.TopAssumption)
	full = append(full, assump...)
	full = append(full, extra...)
	c.g.Assume(full...)
	r := c.g.Try(c.budget)
	if r == 1 {
		c.recordSample()
	}
	return r
}

func (c *ctx) recordSample() {
	vals := make([]bool, c.nDiv)
	for i, d := range c.inst.Divisors {
		vals[i] = c.g.Value(d)
	}
	c.samples = append(c.samples, sample{vals: vals, p: c.g.Value(c.inst.Pivot)})
}

func (c *ctx) divisorLit(i int, v bool) z.Lit {
	if v {
		return c.inst.Divisors[i]
	}
	return c.inst.Divisors[i].Not()
}

func (c *ctx) pivotLit(v bool) z.Lit {
	if v {
		return c.inst.Pivot
	}
	return c.inst.Pivot.Not()
}

// recurse implements one cofactor level: trivial checks, unit
// implications, the multi-literal AND/OR shortcut, and (failing all of
// those) a Shannon cofactor branch. used marks divisors already fixed
// along the current assumption path. forcedPivot, honored only when >=0,
// skips pivot selection and branches on that divisor directly; every
// recursive call below this level passes -1.
func (c *ctx) recurse(assump []z.Lit, used map[int]bool, forcedPivot int) (*tt.Table, []int, Outcome) {
	switch c.tryWith(assump, c.pivotLit(false)) {
	case -1:
		return tt.Const1(0), nil, Decomposed
	case 0:
		return nil, nil, Undecided
	}
	switch c.tryWith(assump, c.pivotLit(true)) {
	case -1:
		return tt.Const0(0), nil, Decomposed
	case 0:
		return nil, nil, Undecided
	}

	var impliesTrue, impliesFalse []impliedLit
	for i := 0; i < c.nDiv; i++ {
		if used[i] {
			continue
		}
		v0, undec0 := c.implicationOf(assump, i, false)
		if undec0 {
			return nil, nil, Undecided
		}
		v1, undec1 := c.implicationOf(assump, i, true)
		if undec1 {
			return nil, nil, Undecided
		}
		switch {
		case v0 == impliesOne && v1 == impliesZero:
			return tt.ElementaryVar(1, 0).Not(), []int{i}, Decomposed
		case v0 == impliesZero && v1 == impliesOne:
			return tt.ElementaryVar(1, 0), []int{i}, Decomposed
		}
		if v0 == impliesOne {
			impliesTrue = append(impliesTrue, impliedLit{i, c.divisorLit(i, false)})
		}
		if v1 == impliesOne {
			impliesTrue = append(impliesTrue, impliedLit{i, c.divisorLit(i, true)})
		}
		if v0 == impliesZero {
			impliesFalse = append(impliesFalse, impliedLit{i, c.divisorLit(i, false)})
		}
		if v1 == impliesZero {
			impliesFalse = append(impliesFalse, impliedLit{i, c.divisorLit(i, true)})
		}
	}

	if table, support, ok := c.andOrShortcut(assump, impliesTrue, true); ok {
		return table, support, Decomposed
	}
	if table, support, ok := c.andOrShortcut(assump, impliesFalse, false); ok {
		return table, support, Decomposed
	}

	piv := forcedPivot
	if piv < 0 || used[piv] {
		var ok bool
		piv, ok = c.selectPivot(used)
		if !ok {
			return nil, nil, NoCandidate
		}
	}
	if len(assump)+1 > c.nVarMax {
		return nil, nil, NoCandidate
	}

	used[piv] = true
	defer delete(used, piv)

	assump0 := append(append([]z.Lit{}, assump...), c.divisorLit(piv, false))
	t0, sup0, out0 := c.recurse(assump0, used, -1)
	if out0 != Decomposed {
		return nil, nil, out0
	}

	assump1 := append(append([]z.Lit{}, assump...), c.divisorLit(piv, true))
	t1, sup1, out1 := c.recurse(assump1, used, -1)
	if out1 != Decomposed {
		return nil, nil, out1
	}

	support := unionSorted(sup0, sup1, piv)
	if len(support) > c.nVarMax {
		return nil, nil, NoCandidate
	}

	sel := tt.ElementaryVar(len(support), indexOf(support, piv))
	onFalse := remapTable(t0, sup0, support)
	onTrue := remapTable(t1, sup1, support)
	return tt.Mux(sel, onTrue, onFalse), support, Decomposed
}

// implicationOf checks both directions for divisor i fixed to v: whether
// {assump, d_i=v} alone rules out p=0, or alone rules out p=1.
func (c *ctx) implicationOf(assump []z.Lit, i int, v bool) (impliedVal, bool) {
	dLit := c.divisorLit(i, v)
	switch c.tryWith(assump, dLit, c.pivotLit(false)) {
	case -1:
		return impliesOne, false
	case 0:
		return notImplied, true
	}
	switch c.tryWith(assump, dLit, c.pivotLit(true)) {
	case -1:
		return impliesZero, false
	case 0:
		return notImplied, true
	}
	return notImplied, false
}

// andOrShortcut tests whether every divisor direction in lits, each of
// which alone implies the pivot equals targetTrue, together characterize
// the pivot exactly, not merely imply it one way. Sufficiency (AND(lits)
// forces the pivot) is checked by assuming the opposite pivot value
// together with every literal in lits: UNSAT proves the implication, and
// the UNSAT core trims lits down to what the implication actually needs.
// Necessity (the pivot forces every literal in lits true) is then checked
// literal by literal; only when both directions hold is the pivot
// provably equivalent to the AND (or, dually, the OR of complements) over
// lits, and safe to return as an exact replacement.
func (c *ctx) andOrShortcut(assump []z.Lit, lits []impliedLit, targetTrue bool) (*tt.Table, []int, bool) {
	if len(lits) == 0 {
		return nil, nil, false
	}
	extra := make([]z.Lit, 0, len(lits)+1)
	extra = append(extra, c.pivotLit(!targetTrue))
	for _, l := range lits {
		extra = append(extra, l.lit)
	}
	if c.tryWith(assump, extra...) != -1 {
		return nil, nil, false
	}

	core := map[z.Lit]bool{}
	for _, lit := range c.g.Why(nil) {
		core[lit] = true
	}
	minimal := make([]impliedLit, 0, len(lits))
	for _, l := range lits {
		if core[l.lit] {
			minimal = append(minimal, l)
		}
	}
	if len(minimal) == 0 {
		minimal = lits
	}

	for _, l := range minimal {
		if c.tryWith(assump, c.pivotLit(targetTrue), l.lit.Not()) != -1 {
			return nil, nil, false
		}
	}

	support := make([]int, 0, len(minimal))
	seen := map[int]bool{}
	for _, l := range minimal {
		if !seen[l.idx] {
			seen[l.idx] = true
			support = append(support, l.idx)
		}
	}
	sort.Ints(support)

	return buildAndOr(minimal, support, targetTrue), support, true
}

// buildAndOr renders minimal as an AND gate (targetTrue) or, dually, the
// OR of each literal's complement (!targetTrue) over support's ordering.
func buildAndOr(lits []impliedLit, support []int, targetTrue bool) *tt.Table {
	n := len(support)
	pos := make(map[int]int, n)
	for i, idx := range support {
		pos[idx] = i
	}

	result := tt.Const1(n)
	for _, l := range lits {
		v := tt.ElementaryVar(n, pos[l.idx])
		if !l.lit.IsPos() {
			v = v.Not()
		}
		result = result.And(v)
	}
	if !targetTrue {
		result = result.Not()
	}
	return result
}

// selectPivot scores every not-yet-fixed divisor by the sampled on/off
// pattern counts at each polarity, preferring the divisor that minimizes
// min(C_on0,C_on1)+min(C_off0,C_off1); it falls back to the next unused
// MFFC-input divisor when no divisor has discriminating samples yet.
func (c *ctx) selectPivot(used map[int]bool) (int, bool) {
	best, bestScore := -1, -1
	for i := 0; i < c.nDiv; i++ {
		if used[i] {
			continue
		}
		var con0, con1, coff0, coff1 int
		for _, s := range c.samples {
			v := s.vals[i]
			switch {
			case s.p && v:
				con1++
			case s.p && !v:
				con0++
			case !s.p && v:
				coff1++
			default:
				coff0++
			}
		}
		if con0+con1 == 0 || coff0+coff1 == 0 {
			continue
		}
		score := min(con0, con1) + min(coff0, coff1)
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return best, true
	}
	for _, i := range c.mffcInputs {
		if !used[i] {
			return i, true
		}
	}
	return -1, false
}

func unionSorted(a, b []int, extra int) []int {
	seen := map[int]bool{extra: true}
	out := []int{extra}
	for _, s := range [2][]int{a, b} {
		for _, v := range s {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Ints(out)
	return out
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	panic("decomp: value not found in support")
}

// remapTable re-expresses t, defined over oldSupport's variable ordering,
// as an equivalent table over newSupport (a superset): positions present
// only in newSupport are don't-cares t never depended on.
func remapTable(t *tt.Table, oldSupport, newSupport []int) *tt.Table {
	newPos := make(map[int]int, len(newSupport))
	for i, idx := range newSupport {
		newPos[idx] = i
	}
	oldShift := make([]int, len(oldSupport))
	for i, idx := range oldSupport {
		oldShift[i] = newPos[idx]
	}

	newWidth := len(newSupport)
	words := make([]uint64, tt.NumWords(newWidth))
	total := 1 << uint(newWidth)
	src := t.Words()
	for m := 0; m < total; m++ {
		oldM := 0
		for i, shift := range oldShift {
			if m&(1<<uint(shift)) != 0 {
				oldM |= 1 << uint(i)
			}
		}
		if src[oldM/64]&(1<<uint(oldM%64)) != 0 {
			words[m/64] |= 1 << uint(m%64)
		}
	}
	return tt.FromWords(newWidth, words)
}
