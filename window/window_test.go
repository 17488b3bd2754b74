package window

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/netlist"
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

// buildNetwork constructs:
//
//	a,b,c,d : PI
//	n1 = AND2(a,b)           -- shared, feeds both n2 and n3
//	n3 = AND2(n1,d)          -- sideways consumer of n1, kept alive by po2
//	n2 = AND2(n1,c)          -- pivot
//	po1 = PO(n2)
//	po2 = PO(n3)
func buildNetwork(t *testing.T) (n *netlist.Network, pivot, n1, n3 *netlist.Object, po1, po2 *netlist.Object) {
	t.Helper()
	lib := testLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)

	n = netlist.New()
	a := n.AddPI()
	b := n.AddPI()
	c := n.AddPI()
	d := n.AddPI()

	n1, err = n.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	n3, err = n.AddNode(and2, []*netlist.Object{n1, d})
	require.NoError(t, err)
	pivot, err = n.AddNode(and2, []*netlist.Object{n1, c})
	require.NoError(t, err)
	po1, err = n.AddPO(pivot)
	require.NoError(t, err)
	po2, err = n.AddPO(n3)
	require.NoError(t, err)

	return n, pivot, n1, n3, po1, po2
}

func TestExtractRejectsNilAndPIPivot(t *testing.T) {
	n, _, n1, _, _, _ := buildNetwork(t)
	_, err := Extract(n, nil, DefaultBounds())
	require.ErrorIs(t, err, ErrNilPivot)

	a := n.PIs()[0]
	_, err = Extract(n, a, DefaultBounds())
	require.ErrorIs(t, err, ErrPivotIsPI)
	_ = n1
}

func TestExtractTFIAndMFFC(t *testing.T) {
	n, pivot, n1, _, _, _ := buildNetwork(t)

	w, err := Extract(n, pivot, DefaultBounds())
	require.NoError(t, err)

	require.Equal(t, []*netlist.Object{n1}, w.TFI)
	require.True(t, w.MFFC[pivot])
	require.False(t, w.MFFC[n1], "n1 is shared with n3 and must not be exclusively owned by the pivot")
}

func TestExtractTFOAndRoots(t *testing.T) {
	n, pivot, _, _, po1, _ := buildNetwork(t)

	w, err := Extract(n, pivot, DefaultBounds())
	require.NoError(t, err)

	require.Equal(t, []*netlist.Object{po1}, w.TFO)
	require.Equal(t, []*netlist.Object{po1}, w.Roots)
}

func TestExtractDivisorsIncludeSidewaysSibling(t *testing.T) {
	n, pivot, _, n3, _, _ := buildNetwork(t)

	w, err := Extract(n, pivot, DefaultBounds())
	require.NoError(t, err)

	require.Contains(t, w.Divisors, n3)
}

// TestMFFCInputDivisors builds:
//
//	a,b,c,e : PI
//	n0 = AND2(a,b)   -- shared between n1 and n5, stays out of the MFFC
//	n1 = AND2(n0,c)  -- pivot's only non-PI immediate fanin, exclusively used
//	                    by the pivot, so it joins the MFFC
//	pivot = AND2(n1,e)
//	n5 = AND2(n0,e)  -- keeps n0 alive and shared
//	po1 = PO(pivot)
//	po2 = PO(n5)
//
// n0 is excluded from the MFFC (it feeds both n1 and n5) but is a
// divisor (a TFI node that is not the pivot's immediate fanin) feeding
// directly into n1, which is in the MFFC.
func TestMFFCInputDivisors(t *testing.T) {
	lib := testLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)

	n := netlist.New()
	a := n.AddPI()
	b := n.AddPI()
	c := n.AddPI()
	e := n.AddPI()

	n0, err := n.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	n1, err := n.AddNode(and2, []*netlist.Object{n0, c})
	require.NoError(t, err)
	pivot, err := n.AddNode(and2, []*netlist.Object{n1, e})
	require.NoError(t, err)
	n5, err := n.AddNode(and2, []*netlist.Object{n0, e})
	require.NoError(t, err)
	_, err = n.AddPO(pivot)
	require.NoError(t, err)
	_, err = n.AddPO(n5)
	require.NoError(t, err)

	w, err := Extract(n, pivot, DefaultBounds())
	require.NoError(t, err)
	require.True(t, w.MFFC[n1])
	require.False(t, w.MFFC[n0], "n0 is shared with n5 and must not join the MFFC")

	n0Idx := -1
	for i, d := range w.Divisors {
		if d == n0 {
			n0Idx = i
		}
	}
	require.GreaterOrEqual(t, n0Idx, 0, "n0 must be a divisor")
	require.Contains(t, w.MFFCInputDivisors(), n0Idx)
}

func TestExtractMFFCOutOfRangeRejected(t *testing.T) {
	n, pivot, _, _, _, _ := buildNetwork(t)

	b := DefaultBounds()
	b.MffcMax = 0
	_, err := Extract(n, pivot, b)
	require.ErrorIs(t, err, ErrMFFCOutOfRange)
}

func TestSimulateCareSetAllOnesThroughPassthroughRoot(t *testing.T) {
	n, pivot, _, _, _, _ := buildNetwork(t)

	w, err := Extract(n, pivot, DefaultBounds())
	require.NoError(t, err)

	Simulate(w)

	// po1 is a pure passthrough of the pivot, so flipping the pivot must
	// flip every one of the 64 simulated patterns at that root.
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), w.CareSet)
}

func TestSplitmix64Deterministic(t *testing.T) {
	require.Equal(t, splitmix64(7), splitmix64(7))
	require.NotEqual(t, splitmix64(7), splitmix64(8))
}
