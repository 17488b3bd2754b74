// SPDX-License-Identifier: MIT
package sop

import "github.com/go-logicsynth/dcewin/tt"

// FromTruthTable derives an irredundant sum-of-products cover of f's
// onset by recursive Shannon cofactoring: at each variable, the part of
// the onset shared by both cofactors is covered once with the variable
// left absent, and the parts exclusive to one cofactor are covered with
// that variable's literal fixed — the truth-table-native form of a
// recursive expression→SOP pass. The two exclusive/shared pieces are
// SCC-merged into the returned Cover, which is irredundant under SCC
// though not guaranteed globally minimal.
func FromTruthTable(f *tt.Table) Cover {
	if f.NVars() > MaxVars {
		panic("sop: truth table exceeds MaxVars for cube encoding")
	}
	return isopRec(f, f.NVars()-1, Universe, f.NVars())
}

func isopRec(f *tt.Table, nextVar int, cube Cube, nVars int) Cover {
	if f.IsConst0() {
		return nil
	}
	if nextVar < 0 {
		return Cover{cube}
	}

	f1 := f.Cofactor(nextVar, 1)
	f0 := f.Cofactor(nextVar, 0)
	if f1.Equals(f0) {
		return isopRec(f1, nextVar-1, cube, nVars)
	}

	shared := f1.And(f0)
	only1 := f1.And(f0.Not())
	only0 := f0.And(f1.Not())

	var out Cover
	for _, c := range isopRec(shared, nextVar-1, cube, nVars) {
		out = out.Push(c, nVars)
	}
	for _, c := range isopRec(only1, nextVar-1, cube.WithLit(nextVar, LitPos), nVars) {
		out = out.Push(c, nVars)
	}
	for _, c := range isopRec(only0, nextVar-1, cube.WithLit(nextVar, LitNeg), nVars) {
		out = out.Push(c, nVars)
	}
	return out
}

// DeriveBoth returns the onset and offset covers of f, both fully
// expanded (used by the CNF deriver, which needs one clause per cube of
// each polarity).
func DeriveBoth(f *tt.Table) (onset, offset Cover) {
	return FromTruthTable(f), FromTruthTable(f.Not())
}

// Smaller returns whichever of f's onset/offset cover has fewer cubes,
// together with a flag reporting which polarity was chosen — the form
// materialized as a Gate's cached SOP.
func Smaller(f *tt.Table) (cov Cover, isOnset bool) {
	onset, offset := DeriveBoth(f)
	if len(offset) < len(onset) {
		return offset, false
	}
	return onset, true
}

// Eval evaluates a cover (interpreted as an onset if isOnset, else as an
// offset whose cubes mark the function's zeros) over the given minterm
// index, for verification and round-trip testing.
func Eval(cov Cover, isOnset bool, nVars int, minterm int) bool {
	match := false
	for _, c := range cov {
		ok := true
		for v := 0; v < nVars && ok; v++ {
			bit := (minterm >> uint(v)) & 1
			switch c.Lit(v) {
			case LitPos:
				ok = bit == 1
			case LitNeg:
				ok = bit == 0
			case LitContra:
				ok = false
			}
		}
		if ok {
			match = true
			break
		}
	}
	if isOnset {
		return match
	}
	return !match
}

// ToTruthTable reconstructs the truth table a cover represents, for
// round-trip testing.
func ToTruthTable(cov Cover, isOnset bool, nVars int) *tt.Table {
	out := tt.New(nVars)
	for m := 0; m < (1 << uint(nVars)); m++ {
		if Eval(cov, isOnset, nVars, m) {
			out = out.Or(minTermTable(nVars, m))
		}
	}
	return out
}

func minTermTable(nVars, minterm int) *tt.Table {
	result := tt.Const1(nVars)
	for v := 0; v < nVars; v++ {
		bit := (minterm >> uint(v)) & 1
		lit := tt.ElementaryVar(nVars, v)
		if bit == 0 {
			lit = lit.Not()
		}
		result = result.And(lit)
	}
	return result
}
