// SPDX-License-Identifier: MIT
package interpolant

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/go-logicsynth/dcewin/satenc"
	"github.com/go-logicsynth/dcewin/sop"
)

// Compute runs the onset/offset query loop against inst, issued on g (the
// same solver inst was compiled into), and returns the resulting
// admissible on-set or the reason none was reached.
func Compute(g *gini.Gini, inst *satenc.Instance, b Budget) *Result {
	nVars := len(inst.Divisors)
	res := &Result{NVars: nVars}

	divisorVar := make(map[int]int, nVars)
	for i, d := range inst.Divisors {
		divisorVar[int(d.Var())] = i
	}

	for {
		res.Iterations++

		g.Assume(inst.TopAssumption, inst.Pivot)
		switch g.Try(b.PerCall) {
		case -1:
			res.Outcome = Found
			return res
		case 0:
			res.Outcome = Undecided
			return res
		}

		vals := make([]bool, nVars)
		offAssume := make([]z.Lit, 0, nVars+2)
		offAssume = append(offAssume, inst.TopAssumption, inst.Pivot.Not())
		for i, d := range inst.Divisors {
			vals[i] = g.Value(d)
			if vals[i] {
				offAssume = append(offAssume, d)
			} else {
				offAssume = append(offAssume, d.Not())
			}
		}

		g.Assume(offAssume...)
		switch g.Try(b.PerCall) {
		case 1:
			res.Outcome = NoInterpolant
			return res
		case 0:
			res.Outcome = Undecided
			return res
		}

		cube := sop.Universe
		for _, lit := range g.Why(nil) {
			idx, ok := divisorVar[int(lit.Var())]
			if !ok {
				continue
			}
			if vals[idx] {
				cube = cube.WithLit(idx, sop.LitPos)
			} else {
				cube = cube.WithLit(idx, sop.LitNeg)
			}
		}
		res.Onset = res.Onset.Push(cube, nVars)

		blockClause(g, inst.Divisors, cube, nVars)
	}
}

// blockClause adds the negation of cube (a disjunction over its fixed
// literals, each flipped) so the offset query's minterm can never recur.
func blockClause(g *gini.Gini, divisors []z.Lit, cube sop.Cube, nVars int) {
	for i := 0; i < nVars; i++ {
		switch cube.Lit(i) {
		case sop.LitPos:
			g.Add(divisors[i].Not())
		case sop.LitNeg:
			g.Add(divisors[i])
		}
	}
	g.Add(0)
}
