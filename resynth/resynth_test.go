package resynth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-logicsynth/dcewin/decomp"
	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/matcher"
	"github.com/go-logicsynth/dcewin/netlist"
	"github.com/go-logicsynth/dcewin/timing"
	"github.com/go-logicsynth/dcewin/window"
)

const resynthGenlib = `
GATE CONST0 0.0 Z=CONST0;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE CONST1 0.0 Z=CONST1;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE BUF1 1.0 Y=a;
  PIN a NONINV 1 99 0.1 0.1 0.1 0.1
GATE INV1 1.0 Y=!a;
  PIN a INV 1 99 0.1 0.1 0.1 0.1
GATE AND2 2.0 O=a*b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
GATE OR2 2.0 O=a+b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
GATE ANDN2 2.0 O=!a*b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
`

func loadResynthLib(t *testing.T) *library.Library {
	t.Helper()
	lib, errs := library.Load(strings.NewReader(resynthGenlib))
	require.Empty(t, errs)
	return lib
}

func decompParams() decomp.Params {
	return decomp.Params{NVarMax: 6, NDecMax: 1, PerCall: 2 * time.Second}
}

// buildAbsorbableNetwork wires a pivot whose function is an exact
// identity of a pre-existing, externally-visible node m, by way of an
// MFFC that also folds in an unrelated divisor h (with its own external
// fanout) and its inverter: pivot = OR2(AND2(m, h), AND2(m, INV1(h))) =
// m AND (h OR NOT h) = m. Neither of the MFFC-interior nodes is itself
// reducible to a single divisor, so only pivot yields a replacement.
func buildAbsorbableNetwork(t *testing.T) (net *netlist.Network, m, po *netlist.Object) {
	t.Helper()
	lib := loadResynthLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)
	or2, err := lib.ByName("OR2")
	require.NoError(t, err)
	inv1, err := lib.ByName("INV1")
	require.NoError(t, err)

	net = netlist.New()
	a := net.AddPI()
	b := net.AddPI()
	c := net.AddPI()
	d := net.AddPI()

	m, err = net.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	h, err := net.AddNode(and2, []*netlist.Object{c, d})
	require.NoError(t, err)
	_, err = net.AddPO(m)
	require.NoError(t, err)
	_, err = net.AddPO(h)
	require.NoError(t, err)

	p1, err := net.AddNode(and2, []*netlist.Object{m, h})
	require.NoError(t, err)
	ih, err := net.AddNode(inv1, []*netlist.Object{h})
	require.NoError(t, err)
	p2, err := net.AddNode(and2, []*netlist.Object{m, ih})
	require.NoError(t, err)
	pivot, err := net.AddNode(or2, []*netlist.Object{p1, p2})
	require.NoError(t, err)
	po, err = net.AddPO(pivot)
	require.NoError(t, err)

	return net, m, po
}

func TestDriverAreaModeAbsorbsRedundantMFFCIntoDivisor(t *testing.T) {
	net, m, po := buildAbsorbableNetwork(t)
	lib := loadResynthLib(t)

	mat, err := matcher.Prepare(lib, matcher.Params{NVarMax: 6, Mode: matcher.AreaMode})
	require.NoError(t, err)

	opts := Options{
		Mode:    ModeArea,
		Bounds:  window.DefaultBounds(),
		Decomp:  decompParams(),
		Matcher: matcher.Params{NVarMax: 6, Mode: matcher.AreaMode},
	}
	d, err := NewDriver(net, lib, mat, nil, opts)
	require.NoError(t, err)

	stats, tb, err := d.Run()
	require.NoError(t, err)
	require.Nil(t, tb)

	require.Equal(t, 1, stats.Changed)
	require.Equal(t, 1, stats.BufferSpliced)

	require.Len(t, po.Fanins, 1)
	require.Same(t, m, po.Fanins[0])

	require.Contains(t, m.Fanouts, po)
}

func TestDriverDelayModeFixesNegativeSlackViaSameAbsorption(t *testing.T) {
	net, m, po := buildAbsorbableNetwork(t)
	lib := loadResynthLib(t)

	mat, err := matcher.Prepare(lib, matcher.Params{NVarMax: 6, Mode: matcher.DelayMode})
	require.NoError(t, err)

	facade := timing.NewLoadAware(net, timing.Options{TargetDelay: 1200})
	initialDelay := facade.NetworkDelay()
	require.Equal(t, 1400, initialDelay)

	opts := Options{
		Mode:    ModeDelay,
		Bounds:  window.DefaultBounds(),
		Decomp:  decompParams(),
		Matcher: matcher.Params{NVarMax: 6, Mode: matcher.DelayMode},
		NTimeWin: 0,
	}
	d, err := NewDriver(net, lib, mat, facade, opts)
	require.NoError(t, err)

	stats, tb, err := d.Run()
	require.NoError(t, err)
	require.NotNil(t, tb)

	require.Equal(t, 1, stats.Changed)
	require.Equal(t, 1400, tb.InitialNetworkDelay)
	require.Equal(t, 600, tb.FinalNetworkDelay)
	require.Equal(t, 1, tb.NodesImproved)

	require.Len(t, po.Fanins, 1)
	require.Same(t, m, po.Fanins[0])
	require.GreaterOrEqual(t, facade.MinSlack(), 0)
}

// TestDriverAreaModeFrontierTraversalReachesSamePivot confirms
// TraversalFrontier, seeded from the POs rather than a single
// level-ordered pass, still finds and commits the same absorption as the
// default topological traversal.
func TestDriverAreaModeFrontierTraversalReachesSamePivot(t *testing.T) {
	net, m, po := buildAbsorbableNetwork(t)
	lib := loadResynthLib(t)

	mat, err := matcher.Prepare(lib, matcher.Params{NVarMax: 6, Mode: matcher.AreaMode})
	require.NoError(t, err)

	opts := Options{
		Mode:      ModeArea,
		Traversal: TraversalFrontier,
		Bounds:    window.DefaultBounds(),
		Decomp:    decompParams(),
		Matcher:   matcher.Params{NVarMax: 6, Mode: matcher.AreaMode},
	}
	d, err := NewDriver(net, lib, mat, nil, opts)
	require.NoError(t, err)

	stats, _, err := d.Run()
	require.NoError(t, err)

	require.Equal(t, 1, stats.Changed)
	require.Equal(t, 1, stats.BufferSpliced)
	require.Len(t, po.Fanins, 1)
	require.Same(t, m, po.Fanins[0])
}

// TestSpliceInverterShortcutReprogramsFanoutRatherThanMaterializingInverter
// exercises spliceInverterShortcut directly against a hand-built Window,
// bypassing decomposition: divisor m feeds a stand-in pivot node wired
// as INV1(m), with one downstream consumer q = AND2(pivot, x). Since the
// library carries ANDN2 (= NOT(a) AND b), every fanout of pivot has a
// complement alternative, so the shortcut must retire pivot (and q)
// without ever touching AND2 or INV1 again.
func TestSpliceInverterShortcutReprogramsFanoutRatherThanMaterializingInverter(t *testing.T) {
	lib := loadResynthLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)
	inv1, err := lib.ByName("INV1")
	require.NoError(t, err)
	andn2, err := lib.ByName("ANDN2")
	require.NoError(t, err)

	net := netlist.New()
	a := net.AddPI()
	b := net.AddPI()
	x := net.AddPI()

	m, err := net.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	pivotNode, err := net.AddNode(inv1, []*netlist.Object{m})
	require.NoError(t, err)
	q, err := net.AddNode(and2, []*netlist.Object{pivotNode, x})
	require.NoError(t, err)
	qo, err := net.AddPO(q)
	require.NoError(t, err)

	d := &Driver{Net: net, Lib: lib}
	win := &window.Window{Pivot: pivotNode, MFFC: map[*netlist.Object]bool{pivotNode: true}}

	ok, _, err := d.spliceInverterShortcut(win, m)
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, qo.Fanins, 1)
	newNode := qo.Fanins[0]
	require.Same(t, andn2, newNode.Gate)
	require.Equal(t, []*netlist.Object{m, x}, newNode.Fanins)

	_, err = net.Object(pivotNode.ID)
	require.Error(t, err)
	_, err = net.Object(q.ID)
	require.Error(t, err)

	require.Len(t, m.Fanouts, 1)
	require.Same(t, newNode, m.Fanouts[0])
}

// TestSpliceInverterShortcutFallsBackWhenFanoutIsAPO confirms the
// shortcut refuses to fire (and makes no change) when the pivot's sole
// fanout is a primary output, which has no function to reprogram.
func TestSpliceInverterShortcutFallsBackWhenFanoutIsAPO(t *testing.T) {
	lib := loadResynthLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)
	inv1, err := lib.ByName("INV1")
	require.NoError(t, err)

	net := netlist.New()
	a := net.AddPI()
	b := net.AddPI()

	m, err := net.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	pivotNode, err := net.AddNode(inv1, []*netlist.Object{m})
	require.NoError(t, err)
	_, err = net.AddPO(pivotNode)
	require.NoError(t, err)

	d := &Driver{Net: net, Lib: lib}
	win := &window.Window{Pivot: pivotNode, MFFC: map[*netlist.Object]bool{pivotNode: true}}

	ok, _, err := d.spliceInverterShortcut(win, m)
	require.NoError(t, err)
	require.False(t, ok)

	// unchanged: pivotNode is still live and still drives po.
	_, err = net.Object(pivotNode.ID)
	require.NoError(t, err)
}

// expensiveComplementGenlib carries a complement-input alternative
// (ANDN2) priced far above both AND2 and INV1, so flipInvGain must judge
// reprogramming every fanout onto it a net loss versus just materializing
// the one-area INV1 pivot would have cost.
const expensiveComplementGenlib = `
GATE CONST0 0.0 Z=CONST0;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE CONST1 0.0 Z=CONST1;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE BUF1 1.0 Y=a;
  PIN a NONINV 1 99 0.1 0.1 0.1 0.1
GATE INV1 1.0 Y=!a;
  PIN a INV 1 99 0.1 0.1 0.1 0.1
GATE AND2 2.0 O=a*b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
GATE OR2 2.0 O=a+b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
GATE ANDN2 10.0 O=!a*b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
`

// TestSpliceInverterShortcutRejectsUnprofitableReprogramming confirms
// flipInvGain's verdict, not mere structural availability of a
// complement alternative, gates the shortcut: every fanout of pivot does
// have one (ANDN2), but it costs far more area than the inverter it
// would let the driver skip, so the shortcut must decline and leave the
// network untouched for commit to fall back to materializing INV1.
func TestSpliceInverterShortcutRejectsUnprofitableReprogramming(t *testing.T) {
	lib, errs := library.Load(strings.NewReader(expensiveComplementGenlib))
	require.Empty(t, errs)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)
	inv1, err := lib.ByName("INV1")
	require.NoError(t, err)

	net := netlist.New()
	a := net.AddPI()
	b := net.AddPI()
	x := net.AddPI()

	m, err := net.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	pivotNode, err := net.AddNode(inv1, []*netlist.Object{m})
	require.NoError(t, err)
	q, err := net.AddNode(and2, []*netlist.Object{pivotNode, x})
	require.NoError(t, err)
	_, err = net.AddPO(q)
	require.NoError(t, err)

	d := &Driver{Net: net, Lib: lib}
	win := &window.Window{Pivot: pivotNode, MFFC: map[*netlist.Object]bool{pivotNode: true}}

	ok, _, err := d.spliceInverterShortcut(win, m)
	require.NoError(t, err)
	require.False(t, ok)

	// unchanged: pivotNode and q are both still live.
	_, err = net.Object(pivotNode.ID)
	require.NoError(t, err)
	_, err = net.Object(q.ID)
	require.NoError(t, err)
}

// TestFlipInvGainChargesARealInverterOnceWhenAnyFanoutCannotReprogram
// exercises flipInvGain directly against a pivot with two fanouts: one
// reprogrammable onto a same-cost alternative (net gain 0 from that
// edge), and one PO, which forces a real inverter. The PO forcing
// needsRealInverter means the reprogrammable edge's gain is still
// counted, but AreaInv is subtracted once at the end.
func TestFlipInvGainChargesARealInverterOnceWhenAnyFanoutCannotReprogram(t *testing.T) {
	lib := loadResynthLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)
	inv1, err := lib.ByName("INV1")
	require.NoError(t, err)

	net := netlist.New()
	a := net.AddPI()
	b := net.AddPI()
	x := net.AddPI()

	m, err := net.AddNode(and2, []*netlist.Object{a, b})
	require.NoError(t, err)
	pivotNode, err := net.AddNode(inv1, []*netlist.Object{m})
	require.NoError(t, err)
	_, err = net.AddNode(and2, []*netlist.Object{pivotNode, x})
	require.NoError(t, err)
	_, err = net.AddPO(pivotNode)
	require.NoError(t, err)

	gain, needsRealInverter, actions := flipInvGain(lib, pivotNode)
	require.True(t, needsRealInverter)
	require.Len(t, actions, 1)
	// AND2(pivot, x) reprograms onto ANDN2, both area 2.0 (gain 0 from
	// that edge), minus the one real inverter AreaInv=1.0 the PO forces.
	require.InDelta(t, -1.0, gain, 1e-9)
}

func TestNewDriverRejectsModeMismatch(t *testing.T) {
	lib := loadResynthLib(t)
	net := netlist.New()

	areaMatcher, err := matcher.Prepare(lib, matcher.Params{NVarMax: 6, Mode: matcher.AreaMode})
	require.NoError(t, err)

	_, err = NewDriver(net, lib, areaMatcher, nil, Options{Mode: ModeDelay, Matcher: matcher.Params{Mode: matcher.AreaMode}})
	require.ErrorIs(t, err, ErrModeMismatch)

	_, err = NewDriver(net, lib, areaMatcher, nil, Options{Mode: ModeArea, Matcher: matcher.Params{Mode: matcher.DelayMode}})
	require.ErrorIs(t, err, ErrModeMismatch)
}
