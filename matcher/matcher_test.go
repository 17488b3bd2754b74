package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/tt"
)

const matcherGenlib = `
GATE CONST0 0.0 Z=CONST0;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE CONST1 0.0 Z=CONST1;
  PIN * UNKNOWN 0 0 0 0 0 0
GATE BUF1 1.0 Y=a;
  PIN a NONINV 1 99 0.1 0.1 0.1 0.1
GATE AND2 2.0 O=a*b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
GATE AND2B 1.0 O=a*b;
  PIN * NONINV 1 99 0.3 0.3 0.3 0.3
GATE OR2 2.0 O=a+b;
  PIN * NONINV 1 99 0.2 0.2 0.2 0.2
`

func testLib(t *testing.T) *library.Library {
	t.Helper()
	lib, errs := library.Load(strings.NewReader(matcherGenlib))
	require.Empty(t, errs)
	return lib
}

func TestPrepareRejectsBadNVarMax(t *testing.T) {
	lib := testLib(t)
	_, err := Prepare(lib, Params{NVarMax: 0, Mode: AreaMode})
	require.ErrorIs(t, err, ErrNVarMaxOutOfRange)

	_, err = Prepare(lib, Params{NVarMax: MaxSupportedVars + 1, Mode: AreaMode})
	require.ErrorIs(t, err, ErrNVarMaxOutOfRange)
}

func TestAreaLookupFindsDirectCellMatch(t *testing.T) {
	lib := testLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)

	m, err := Prepare(lib, Params{NVarMax: 4, Mode: AreaMode})
	require.NoError(t, err)

	rec, err := m.AreaLookup(and2.Truth)
	require.NoError(t, err)
	require.Equal(t, "AND2B", rec.BotCell.Name, "AND2B has the same function at lower area and must win")
	require.Nil(t, rec.TopCell)
}

func TestAreaLookupNoMatch(t *testing.T) {
	lib := testLib(t)
	m, err := Prepare(lib, Params{NVarMax: 4, Mode: AreaMode})
	require.NoError(t, err)

	xorTable := tt.ElementaryVar(2, 0).Xor(tt.ElementaryVar(2, 1))
	_, err = m.AreaLookup(xorTable)
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestAreaLookupQueryTooWide(t *testing.T) {
	lib := testLib(t)
	m, err := Prepare(lib, Params{NVarMax: 2, Mode: AreaMode})
	require.NoError(t, err)

	wide := tt.New(3)
	_, err = m.AreaLookup(wide)
	require.ErrorIs(t, err, ErrQueryTooWide)
}

// TestAreaLookupComposesSuperGateForWiderFunction checks that a 3-input
// AND function, which no single library cell expresses, is found via the
// AND2-into-AND2 super-gate composition.
func TestAreaLookupComposesSuperGateForWiderFunction(t *testing.T) {
	lib := testLib(t)
	and2b, err := lib.ByName("AND2B")
	require.NoError(t, err)

	m, err := Prepare(lib, Params{NVarMax: 3, Mode: AreaMode})
	require.NoError(t, err)

	and3 := tt.ElementaryVar(3, 0).And(tt.ElementaryVar(3, 1)).And(tt.ElementaryVar(3, 2))
	rec, err := m.AreaLookup(and3)
	require.NoError(t, err)
	require.NotNil(t, rec.TopCell)
	require.InDelta(t, and2b.Area*2, rec.Area, 1e-9)
	require.Len(t, rec.Fanins, 3)
	require.Len(t, rec.Delay, 3)
}

func TestAreaLookupPanicsOnDelayModeMatcher(t *testing.T) {
	lib := testLib(t)
	m, err := Prepare(lib, Params{NVarMax: 2, Mode: DelayMode})
	require.NoError(t, err)

	and2, err := lib.ByName("AND2")
	require.NoError(t, err)
	require.Panics(t, func() { _, _ = m.AreaLookup(and2.Truth) })
}

// TestDelayLookupKeepsBothAreaAndDelayTradeoffs verifies the frontier
// retains AND2 (lower delay, higher area) and AND2B (higher delay, lower
// area) for the same function, since neither dominates the other.
func TestDelayLookupKeepsBothAreaAndDelayTradeoffs(t *testing.T) {
	lib := testLib(t)
	and2, err := lib.ByName("AND2")
	require.NoError(t, err)

	m, err := Prepare(lib, Params{NVarMax: 4, Mode: DelayMode})
	require.NoError(t, err)

	recs, err := m.DelayLookup(and2.Truth)
	require.NoError(t, err)

	var sawAND2, sawAND2B bool
	for _, r := range recs {
		switch r.BotCell.Name {
		case "AND2":
			sawAND2 = true
		case "AND2B":
			sawAND2B = true
		}
	}
	require.True(t, sawAND2, "higher-area lower-delay cell must survive the frontier")
	require.True(t, sawAND2B, "lower-area higher-delay cell must survive the frontier")
}

func TestDominatesRequiresNoWorseAxis(t *testing.T) {
	a := &Record{Area: 1, Delay: []float64{0.1, 0.1}}
	b := &Record{Area: 1, Delay: []float64{0.2, 0.1}}
	require.True(t, dominates(a, b))
	require.False(t, dominates(b, a))

	c := &Record{Area: 2, Delay: []float64{0.05, 0.05}}
	require.False(t, dominates(a, c), "a is cheaper-area but slower on axis 0, c is pricier but faster: neither dominates")
	require.False(t, dominates(c, a))
}
