package satenc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/netlist"
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

func testLib(t *testing.T) *library.Library {
	t.Helper()
	lib, errs := library.Load(strings.NewReader(miniGenlib))
	require.Empty(t, errs)
	return lib
}

// buildNetwork mirrors the window package's test network:
//
//	a,b,c,d : PI
//	n1 = AND2(a,b)
//	n3 = AND2(n1,d)  -- sideways divisor candidate, kept alive by po2
//	pivot = AND2(n1,c)
//	po1 = PO(pivot)
//	po2 = PO(n3)
func buildNetwork(t *testing.T) (n *netlist.Network, pivot *netlist.Object) {
	t.Helper()
	lib := testLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)

	n = netlist.New()
	a := n.AddPI()
	b := n.AddPI()
	c := n.AddPI()
	d := n.AddPI()

	n1, err := n.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	n3, err := n.AddNode(and2, []*netlist.Object{n1, d})
	require.NoError(t, err)
	pivot, err = n.AddNode(and2, []*netlist.Object{n1, c})
	require.NoError(t, err)
	_, err = n.AddPO(pivot)
	require.NoError(t, err)
	_, err = n.AddPO(n3)
	require.NoError(t, err)
	return n, pivot
}

func TestCompileProducesConsistentInstance(t *testing.T) {
	n, pivot := buildNetwork(t)

	w, err := window.Extract(n, pivot, window.DefaultBounds())
	require.NoError(t, err)

	enc := NewEncoder()
	inst, err := enc.Compile(w)
	require.NoError(t, err)

	require.Len(t, inst.Roots, len(w.Roots))
	require.Len(t, inst.Divisors, len(w.Divisors))

	for _, r := range inst.Roots {
		require.NotEqual(t, inst.Pivot, r.XorVar)
	}

	seen := map[int32]bool{}
	seen[int32(inst.Pivot)] = true
	for _, d := range inst.Divisors {
		require.False(t, seen[int32(d)], "each divisor must get a distinct SAT variable")
		seen[int32(d)] = true
	}
	for _, r := range inst.Roots {
		require.False(t, seen[int32(r.XorVar)], "each root XOR gadget must get a distinct SAT variable")
		seen[int32(r.XorVar)] = true
	}
}

func TestCompileTwiceSharesSolverButAddsFreshVariables(t *testing.T) {
	n, pivot := buildNetwork(t)
	w, err := window.Extract(n, pivot, window.DefaultBounds())
	require.NoError(t, err)

	enc := NewEncoder()
	first, err := enc.Compile(w)
	require.NoError(t, err)
	second, err := enc.Compile(w)
	require.NoError(t, err)

	require.NotEqual(t, first.TopAssumption, second.TopAssumption)
}
