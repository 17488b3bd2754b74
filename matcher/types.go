// SPDX-License-Identifier: MIT
package matcher

import "github.com/go-logicsynth/dcewin/library"

// MaxSupportedVars bounds the fanin count of any record this package will
// ever build or look up: the widest single library cell it will enumerate,
// and the widest super-gate composition it will attempt.
const MaxSupportedVars = 7

// Mode selects which bookkeeping Prepare performs per hash bucket: the
// single lowest-area record (AreaMode) or a Pareto frontier over
// (area, per-input delay) (DelayMode).
type Mode int

const (
	AreaMode Mode = iota
	DelayMode
)

// Params configures one Prepare call.
type Params struct {
	// NVarMax caps the support size of any record Prepare will build,
	// including composed super-gates. Must be in (0, MaxSupportedVars].
	NVarMax int

	Mode Mode
}

// CellSlot names which half of a (possibly composed) record's physical
// cells an input feeds.
type CellSlot int

const (
	// SlotBot is the only slot populated for a single-cell record, and
	// names the bottom cell's own pins for a composed one.
	SlotBot CellSlot = iota
	// SlotTop names one of the top cell's pins other than the one the
	// bottom cell's output drives, valid only on a composed record.
	SlotTop
)

// InputSource names the physical pin a record's table variable at some
// position is bound to.
type InputSource struct {
	Slot CellSlot
	Pin  int
}

// Record is one function record: a candidate replacement's physical
// makeup, the pin each of its inputs is bound to (parallel to the table
// variable order it was inserted under), its area, and a per-input block
// delay vector parallel to Fanins.
type Record struct {
	BotCell *library.Gate

	// TopCell is nil for a single-cell record. When set, the record is a
	// super-gate: BotCell's output feeds TopCell's pin at index
	// TopFaninPos, and every other TopCell pin is a free input named in
	// Fanins via SlotTop.
	TopCell     *library.Gate
	TopFaninPos int

	Fanins []InputSource
	Area   float64
	Delay  []float64
}

// bucket is the per-table-key bookkeeping state, shaped by the matcher's
// Mode: best is populated in AreaMode, frontier in DelayMode.
type bucket struct {
	best     *Record
	frontier []*Record
}

// Matcher is a prepared lookup structure for one (library, Params) pair.
type Matcher struct {
	mode    Mode
	nVarMax int
	table   map[string]*bucket
}
