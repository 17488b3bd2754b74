package library

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-logicsynth/dcewin/cnf"
	"github.com/go-logicsynth/dcewin/sop"
	"github.com/go-logicsynth/dcewin/tt"
)

// truthFromCover reconstructs the truth table a Gate's cached SOP cover
// represents, for cross-checking against the cached truth table.
func truthFromCover(g *Gate) *tt.Table {
	return sop.ToTruthTable(g.SOPCover, g.SOPOnset, g.NumInputs())
}

// cnfTruthTable reconstructs the truth table a Gate's cached CNF clause
// stream implies, by brute-force enumeration: for each input assignment,
// the output variable's value is whichever polarity satisfies every
// clause (the CNF is constructed to pin exactly one such polarity).
func cnfTruthTable(t *testing.T, g *Gate) *tt.Table {
	t.Helper()
	n := g.NumInputs()
	clauses := g.CNF.Decode()
	out := tt.New(n)
	words := append([]uint64(nil), out.Words()...)

	for m := 0; m < (1 << uint(n)); m++ {
		assign := make([]bool, n+1)
		for v := 0; v < n; v++ {
			assign[v] = (m>>uint(v))&1 == 1
		}

		var sat0, sat1 bool
		assign[n] = false
		sat0 = evalCNF(clauses, assign)
		assign[n] = true
		sat1 = evalCNF(clauses, assign)

		require.NotEqualf(t, sat0, sat1, "gate %s: CNF does not pin a unique output at minterm %d", g.Name, m)
		if sat1 {
			words[m/64] |= uint64(1) << uint(m%64)
		}
	}
	return tt.FromWords(n, words)
}

func evalCNF(clauses [][]cnf.LocalLiteral, assign []bool) bool {
	for _, clause := range clauses {
		sat := false
		for _, lit := range clause {
			if assign[lit.Var] != lit.Negated {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}
