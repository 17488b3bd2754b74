// SPDX-License-Identifier: MIT
package faultlist

import "github.com/go-logicsynth/dcewin/netlist"

// The three core fault kinds. Any other Kind value names a library cell:
// "replace this node's gate with the named cell."
const (
	SA0    = "SA0"
	SA1    = "SA1"
	Negate = "NEG"
)

// Fault is one parsed or to-be-printed record.
type Fault struct {
	Seq      int
	NodeName string
	Kind     string
}

// IsCore reports whether f names one of the three core faults rather than
// a cell-alternative fault.
func (f Fault) IsCore() bool {
	return f.Kind == SA0 || f.Kind == SA1 || f.Kind == Negate
}

// Mode selects which faults WriteFaultList emits per node.
type Mode int

const (
	// StuckAtMode emits only the three core faults per node.
	StuckAtMode Mode = iota
	// CellAlternativeMode emits the three core faults plus, for every
	// mapped node, one fault per same-input-count library cell other
	// than the node's own.
	CellAlternativeMode
)

// Namer assigns a stable textual name to a network node, used when
// printing a fault list. The zero value (a nil Namer) is never valid to
// pass to WriteFaultList.
type Namer func(*netlist.Object) string

// Resolver maps a fault record's node name back to a live node's ID,
// used when parsing a fault list. It returns ErrUnknownNodeName (or a
// caller-defined equivalent) for a name it does not recognize.
type Resolver func(name string) (int, error)

// Resolved is one successfully parsed and resolved fault record.
type Resolved struct {
	Seq    int
	NodeID int
	Kind   string
}
