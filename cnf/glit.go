// SPDX-License-Identifier: MIT
package cnf

// GLit is a global-numbering literal produced by Translate: bit 0 is the
// negation flag, the remaining bits hold the global variable index — the
// same var<<1|sign convention github.com/irifrance/gini's z.Lit uses,
// which keeps a GLit close in shape to the solver's own literal type even
// though satenc decomposes and recomposes it explicitly rather than
// reinterpreting the bits directly.
type GLit int32

// MakeGLit builds the literal naming global variable v with the given
// negation flag.
func MakeGLit(v int, negated bool) GLit {
	l := GLit(v) << 1
	if negated {
		l |= 1
	}
	return l
}

// Var returns the global variable index l names.
func (l GLit) Var() int { return int(l >> 1) }

// Negated reports l's polarity.
func (l GLit) Negated() bool { return l&1 == 1 }
