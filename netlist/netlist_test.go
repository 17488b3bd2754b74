package netlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-logicsynth/dcewin/library"
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

func TestAddNodeComputesLevel(t *testing.T) {
	lib := testLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)

	n := New()
	a := n.AddPI()
	b := n.AddPI()
	g, err := n.AddNode(and2, []*Object{a, b})
	require.NoError(t, err)
	require.Equal(t, 1, g.Level)

	h, err := n.AddNode(and2, []*Object{g, a})
	require.NoError(t, err)
	require.Equal(t, 2, h.Level)

	po, err := n.AddPO(h)
	require.NoError(t, err)
	require.Contains(t, h.Fanouts, po)
}

func TestAddNodeRejectsFaninCountMismatch(t *testing.T) {
	lib := testLib(t)
	and2, _ := lib.ByName("AND2")
	n := New()
	a := n.AddPI()
	_, err := n.AddNode(and2, []*Object{a})
	require.ErrorIs(t, err, ErrFaninCountMismatch)
}

func TestRemoveNodeRequiresNoFanouts(t *testing.T) {
	lib := testLib(t)
	buf, _ := lib.ByName("BUF1")
	n := New()
	a := n.AddPI()
	g, err := n.AddNode(buf, []*Object{a})
	require.NoError(t, err)
	_, err = n.AddPO(g)
	require.NoError(t, err)

	require.ErrorIs(t, n.RemoveNode(g), ErrHasFanouts)
}

func TestReplaceRewiresFanoutsAndCascadesDeadTFI(t *testing.T) {
	lib := testLib(t)
	buf, _ := lib.ByName("BUF1")
	and2, _ := lib.ByName("AND2")

	n := New()
	a := n.AddPI()
	b := n.AddPI()
	mffcLeaf, err := n.AddNode(buf, []*Object{a})
	require.NoError(t, err)
	pivot, err := n.AddNode(and2, []*Object{mffcLeaf, b})
	require.NoError(t, err)
	po, err := n.AddPO(pivot)
	require.NoError(t, err)

	substitute, err := n.AddNode(buf, []*Object{b})
	require.NoError(t, err)

	require.NoError(t, n.Replace(pivot, substitute))

	require.Equal(t, []*Object{substitute}, po.Fanins)
	require.Contains(t, substitute.Fanouts, po)

	_, err = n.Object(pivot.ID)
	require.ErrorIs(t, err, ErrObjectNotFound)
	// mffcLeaf fed only the pivot, so it must have cascaded away too.
	_, err = n.Object(mffcLeaf.ID)
	require.ErrorIs(t, err, ErrObjectNotFound)

	require.Equal(t, substitute.Level+1, po.Level)
}

func TestReplaceKeepsSharedFaninAlive(t *testing.T) {
	lib := testLib(t)
	buf, _ := lib.ByName("BUF1")
	and2, _ := lib.ByName("AND2")

	n := New()
	a := n.AddPI()
	b := n.AddPI()
	shared, err := n.AddNode(buf, []*Object{a})
	require.NoError(t, err)
	pivot, err := n.AddNode(and2, []*Object{shared, b})
	require.NoError(t, err)
	_, err = n.AddPO(shared)
	require.NoError(t, err)

	substitute, err := n.AddNode(buf, []*Object{b})
	require.NoError(t, err)
	require.NoError(t, n.Replace(pivot, substitute))

	// shared still feeds a PO directly, so Replace must not have deleted it.
	_, err = n.Object(shared.ID)
	require.NoError(t, err)
}

func TestRecomputeReverseLevels(t *testing.T) {
	lib := testLib(t)
	buf, _ := lib.ByName("BUF1")

	n := New()
	a := n.AddPI()
	mid, err := n.AddNode(buf, []*Object{a})
	require.NoError(t, err)
	_, err = n.AddPO(mid)
	require.NoError(t, err)

	n.RecomputeReverseLevels()
	require.Equal(t, 1, mid.ReverseLevel)
	require.Equal(t, 2, a.ReverseLevel)
}

func TestTravelIDMarksIndependently(t *testing.T) {
	n := New()
	a := n.AddPI()

	id1 := n.NewTravelID(ColourTFI)
	require.False(t, a.Visited(ColourTFI, id1))
	a.MarkVisited(ColourTFI, id1)
	require.True(t, a.Visited(ColourTFI, id1))
	require.False(t, a.Visited(ColourTFO, id1))

	id2 := n.NewTravelID(ColourTFI)
	require.NotEqual(t, id1, id2)
	require.False(t, a.Visited(ColourTFI, id2))
}
