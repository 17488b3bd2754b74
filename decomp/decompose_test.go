package decomp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/netlist"
	"github.com/go-logicsynth/dcewin/satenc"
	"github.com/go-logicsynth/dcewin/window"
)

const miniGenlib = `
GATE CONST0 0.0 Z=CONST0;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE CONST1 0.0 Z=CONST1;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE BUF1 1.0 Y=a;
  PIN a NONINV 1 99 0.1 0.1 0.1 0.1
GATE AND2 2.0 O=a*b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
`

func testParams() Params {
	return Params{NVarMax: 6, NDecMax: 1, PerCall: 2 * time.Second}
}

// TestDecomposeFindsConstantZero builds a pivot wired from a CONST0 gate:
// AND2(a, CONST0()) is tautologically 0 regardless of the window's care
// set or any divisor's value, so the trivial check at the very first
// recursion level must already find {p=1} globally UNSAT.
func TestDecomposeFindsConstantZero(t *testing.T) {
	lib, errs := library.Load(strings.NewReader(miniGenlib))
	require.Empty(t, errs)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)
	const0, err := lib.ByName("CONST0")
	require.NoError(t, err)

	n := netlist.New()
	a := n.AddPI()
	z, err := n.AddNode(const0, nil)
	require.NoError(t, err)
	pivot, err := n.AddNode(and2, []*netlist.Object{a, z})
	require.NoError(t, err)
	_, err = n.AddPO(pivot)
	require.NoError(t, err)

	w, err := window.Extract(n, pivot, window.DefaultBounds())
	require.NoError(t, err)

	enc := satenc.NewEncoder()
	inst, err := enc.Compile(w)
	require.NoError(t, err)

	res := Decompose(enc.Solver(), inst, nil, testParams())
	require.Equal(t, Decomposed, res.Outcome)
	require.NotNil(t, res.Best)
	require.Empty(t, res.Best.Support)
	require.True(t, res.Best.Table.IsConst0())
}

// TestDecomposeRejectsUnrelatedDivisor mirrors the interpolant package's
// uncorrelated-divisor network: n3 = n1 AND d shares only n1 with the
// pivot (n1 AND c) and is otherwise independent of it. By the same
// argument used there, no single value forced onto n3 can ever pin the
// pivot to a constant, so every unit-implication probe on it must come
// back "not implied" and the recursion must fall through to branching,
// which exceeds NVarMax=0 immediately and reports NoCandidate.
func TestDecomposeRejectsUnrelatedDivisor(t *testing.T) {
	lib, errs := library.Load(strings.NewReader(miniGenlib))
	require.Empty(t, errs)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)

	n := netlist.New()
	a := n.AddPI()
	b := n.AddPI()
	c := n.AddPI()
	d := n.AddPI()

	n1, err := n.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	n3, err := n.AddNode(and2, []*netlist.Object{n1, d})
	require.NoError(t, err)
	pivot, err := n.AddNode(and2, []*netlist.Object{n1, c})
	require.NoError(t, err)
	_, err = n.AddPO(pivot)
	require.NoError(t, err)
	_, err = n.AddPO(n3)
	require.NoError(t, err)

	w, err := window.Extract(n, pivot, window.DefaultBounds())
	require.NoError(t, err)
	require.Len(t, w.Divisors, 1)

	enc := satenc.NewEncoder()
	inst, err := enc.Compile(w)
	require.NoError(t, err)

	p := testParams()
	p.NVarMax = 0
	res := Decompose(enc.Solver(), inst, nil, p)
	require.Equal(t, NoCandidate, res.Outcome)
	require.Nil(t, res.Best)
}
