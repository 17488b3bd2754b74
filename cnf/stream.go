// SPDX-License-Identifier: MIT
package cnf

import (
	"fmt"

	"github.com/go-logicsynth/dcewin/sop"
	"github.com/go-logicsynth/dcewin/tt"
)

// clauseEnd is the per-clause sentinel byte value.
const clauseEnd int8 = -1

// ClauseStream is the wire form: literal bytes terminated by -1
// per clause, in local variable numbering (inputs 0..nVars-1, output at
// index nVars).
type ClauseStream []int8

func localLitByte(localVar int, negated bool) int8 {
	v := localVar << 1
	if negated {
		v |= 1
	}
	if v < 0 || v > 127 {
		panic(fmt.Sprintf("cnf: local literal byte overflow for var %d", localVar))
	}
	return int8(v)
}

// DeriveCNF derives f's CNF clause stream over nVars inputs plus one
// output variable: an onset clause per ISOP cube of f
// (blocking the cube's negation, forcing the output true when the cube
// holds) and an offset clause per ISOP cube of f's complement (forcing
// the output false). A constant function naturally emits a single
// unit clause, since its ISOP is the universal cube with no variable
// literals to block.
func DeriveCNF(f *tt.Table) ClauseStream {
	nVars := f.NVars()
	outputVar := nVars
	onset, offset := sop.DeriveBoth(f)

	var stream ClauseStream
	for _, c := range onset {
		stream = appendClause(stream, c, nVars, outputVar, false)
	}
	for _, c := range offset {
		stream = appendClause(stream, c, nVars, outputVar, true)
	}
	return stream
}

func appendClause(stream ClauseStream, c sop.Cube, nVars, outputVar int, negateOutput bool) ClauseStream {
	for v := 0; v < nVars; v++ {
		switch c.Lit(v) {
		case sop.LitPos:
			stream = append(stream, localLitByte(v, true)) // cube requires var=1: block with NOT var
		case sop.LitNeg:
			stream = append(stream, localLitByte(v, false)) // cube requires var=0: block with var
		}
	}
	stream = append(stream, localLitByte(outputVar, negateOutput))
	stream = append(stream, clauseEnd)
	return stream
}

// LocalLiteral is a decoded element of a ClauseStream, for inspection and
// round-trip testing.
type LocalLiteral struct {
	Var     int
	Negated bool
}

// Decode splits a ClauseStream back into clauses of LocalLiteral.
func (cs ClauseStream) Decode() [][]LocalLiteral {
	var clauses [][]LocalLiteral
	var cur []LocalLiteral
	for _, b := range cs {
		if b == clauseEnd {
			clauses = append(clauses, cur)
			cur = nil
			continue
		}
		cur = append(cur, LocalLiteral{Var: int(b) >> 1, Negated: int(b)&1 == 1})
	}
	return clauses
}

// Translate renames a ClauseStream's local variables through varMap
// (local var i -> global var varMap[i]) into global literals, optionally
// flipping the polarity of every occurrence of variables marked true in
// flip.
// flip may be nil, meaning no flips.
func (cs ClauseStream) Translate(varMap []int, flip []bool) [][]GLit {
	var clauses [][]GLit
	var cur []GLit
	for _, b := range cs {
		if b == clauseEnd {
			clauses = append(clauses, cur)
			cur = nil
			continue
		}
		localVar := int(b) >> 1
		negated := int(b)&1 == 1
		if flip != nil && localVar < len(flip) && flip[localVar] {
			negated = !negated
		}
		cur = append(cur, MakeGLit(varMap[localVar], negated))
	}
	return clauses
}
