// SPDX-License-Identifier: MIT
package library

import (
	"github.com/go-logicsynth/dcewin/cnf"
	"github.com/go-logicsynth/dcewin/expr"
	"github.com/go-logicsynth/dcewin/sop"
	"github.com/go-logicsynth/dcewin/tt"
)

// Phase is a pin's stated phase relationship to the gate's output.
type Phase int

const (
	// PhaseUnknown means the library did not declare a monotone phase
	// relationship for this pin.
	PhaseUnknown Phase = iota
	// PhaseInverting means the pin is inverting with respect to the
	// output.
	PhaseInverting
	// PhaseNonInverting means the pin is non-inverting with respect to
	// the output.
	PhaseNonInverting
)

// Pin is one input of a library gate.
type Pin struct {
	Name      string
	Phase     Phase
	InputLoad float64
	MaxLoad   float64

	DelayBlockRise   float64
	DelayFanoutRise  float64
	DelayBlockFall   float64
	DelayFanoutFall  float64
	// DelayBlockMax is derived as max(DelayBlockRise, DelayBlockFall).
	DelayBlockMax float64
}

// Gate is one technology-library cell.
type Gate struct {
	Name          string
	Pins          []Pin
	Area          float64
	Formula       string
	OutputPinName string
	CellID        int // library-global index, assigned at ingest

	// Twin is the companion output of a two-output physical cell (e.g. a
	// full-adder's SUM and CARRY, declared as two consecutive GATE
	// records sharing Name but differing OutputPinName): a fully
	// materialized Gate over the same pin list, with its own Formula,
	// Truth, and Area. Twin is nil for a single-output cell. A twin is
	// never itself one of Library.Gates()'s entries — it is reachable
	// only from its primary via this field or via
	// Library.ByNameAndOutput.
	Twin *Gate

	// Derived and cached at ingest; never recomputed on demand.
	Expr     *expr.Expr
	Truth    *tt.Table
	SOPCover sop.Cover
	SOPOnset bool
	CNF      cnf.ClauseStream
	DelayMax float64
}

// NumInputs returns the gate's pin (fanin) count.
func (g *Gate) NumInputs() int { return len(g.Pins) }

// IsConstant reports whether g is a zero-pin constant gate.
func (g *Gate) IsConstant() bool { return len(g.Pins) == 0 }

// Library is an ordered list of gates. Gates are addressed both
// by name and by a dense CellID assigned in load order.
type Library struct {
	gates   []*Gate
	byName  map[string]*Gate

	// Distinguished entries, resolved by Load through truth-table match:
	// constant-0, constant-1, buffer, inverter, and NAND2/AND2/NOR2/OR2.
	// Load reports ErrNoConstantGate when either constant is missing; a
	// missing buffer, inverter or 2-input gate leaves its field nil.
	Const0Gate  *Gate
	Const1Gate  *Gate
	BufferGate  *Gate
	InverterGate *Gate
	And2Gate    *Gate
	Or2Gate     *Gate
	Nand2Gate   *Gate
	Nor2Gate    *Gate
}

// New returns an empty library.
func New() *Library {
	return &Library{byName: make(map[string]*Gate)}
}

// Gates returns the library's gates in load (CellID) order. The returned
// slice is owned by the library and must not be mutated by the caller.
func (l *Library) Gates() []*Gate { return l.gates }

// ByName looks up a gate by its declared name.
func (l *Library) ByName(name string) (*Gate, error) {
	g, ok := l.byName[name]
	if !ok {
		return nil, ErrGateNotFound
	}
	return g, nil
}

// ByNameAndOutput looks up a gate by name and the specific output pin it
// must drive: it returns g itself if g.OutputPinName matches, or g.Twin
// if the twin's OutputPinName matches instead, mirroring a two-output
// cell's two addressable outputs sharing one physical instance.
func (l *Library) ByNameAndOutput(name, outputPinName string) (*Gate, error) {
	g, ok := l.byName[name]
	if !ok {
		return nil, ErrGateNotFound
	}
	if g.OutputPinName == outputPinName {
		return g, nil
	}
	if g.Twin != nil && g.Twin.OutputPinName == outputPinName {
		return g.Twin, nil
	}
	return nil, ErrGateNotFound
}

// ByCellID returns the gate with the given CellID.
func (l *Library) ByCellID(id int) *Gate {
	return l.gates[id]
}

// Len returns the number of gates in the library.
func (l *Library) Len() int { return len(l.gates) }

// add appends g to the library, assigning its CellID, after checking for
// a duplicate name.
func (l *Library) add(g *Gate) error {
	if _, exists := l.byName[g.Name]; exists {
		return ErrDuplicateGateName
	}
	g.CellID = len(l.gates)
	l.gates = append(l.gates, g)
	l.byName[g.Name] = g
	return nil
}
