// SPDX-License-Identifier: MIT
package sop

import "fmt"

// MaxVars bounds the number of variables a single Cube can encode: 16
// variables at 2 bits each fill a 32-bit word exactly.
const MaxVars = 16

// Literal values a cube packs per variable, 2 bits each.
const (
	LitAbsent   = 0 // variable does not appear in the cube
	LitPos      = 1 // variable appears positively
	LitNeg      = 2 // variable appears negatively
	LitContra   = 3 // contradiction: the cube covers no minterm
	bitsPerVar  = 2
	varBitsMask = 0x3
)

// Cube is a 32-bit packed product term over up to MaxVars variables.
// The zero Cube is the universe (matches every minterm).
type Cube uint32

// Universe is the single cube with no literals fixed, matching every
// minterm.
const Universe Cube = 0

// Lit returns the 2-bit literal code cube carries for variable v.
func (c Cube) Lit(v int) int {
	if v < 0 || v >= MaxVars {
		panic(fmt.Sprintf("sop: variable index %d out of range", v))
	}
	return int((c >> uint(v*bitsPerVar)) & varBitsMask)
}

// WithLit returns a copy of c with variable v's literal set to lit.
func (c Cube) WithLit(v, lit int) Cube {
	if v < 0 || v >= MaxVars {
		panic(fmt.Sprintf("sop: variable index %d out of range", v))
	}
	shift := uint(v * bitsPerVar)
	mask := Cube(varBitsMask) << shift
	return (c &^ mask) | (Cube(lit) << shift)
}

// IsContradiction reports whether any variable of c carries the
// contradiction code (the cube is semantically empty).
func (c Cube) IsContradiction(nVars int) bool {
	for v := 0; v < nVars; v++ {
		if c.Lit(v) == LitContra {
			return true
		}
	}
	return false
}

// Intersect returns the cube AND of a and b (per-variable literal AND):
// identical or absent-vs-fixed literals combine cleanly; conflicting
// literals produce a contradiction. ok is false iff the intersection is
// empty (at least one variable contradicts).
func Intersect(a, b Cube, nVars int) (result Cube, ok bool) {
	ok = true
	for v := 0; v < nVars; v++ {
		la, lb := a.Lit(v), b.Lit(v)
		var out int
		switch {
		case la == LitAbsent:
			out = lb
		case lb == LitAbsent:
			out = la
		case la == lb:
			out = la
		default:
			out = LitContra
			ok = false
		}
		result = result.WithLit(v, out)
	}
	return result, ok
}

// Contains reports whether cube a's minterm set is a superset of cube b's
// (every literal a fixes, b fixes identically; a may leave variables
// absent that b fixes).
func Contains(a, b Cube, nVars int) bool {
	for v := 0; v < nVars; v++ {
		la := a.Lit(v)
		if la == LitAbsent {
			continue
		}
		if la != b.Lit(v) {
			return false
		}
	}
	return true
}

// String renders c in the SOP character form: nVars characters in
// {0,1,-}, most significant variable first.
func (c Cube) String(nVars int) string {
	buf := make([]byte, nVars)
	for v := 0; v < nVars; v++ {
		idx := nVars - 1 - v
		switch c.Lit(v) {
		case LitPos:
			buf[idx] = '1'
		case LitNeg:
			buf[idx] = '0'
		default:
			buf[idx] = '-'
		}
	}
	return string(buf)
}
