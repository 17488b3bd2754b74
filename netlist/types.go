// SPDX-License-Identifier: MIT
package netlist

import (
	"sync"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/sop"
)

// Kind is a network object's role.
type Kind int

const (
	// KindPI is a primary input.
	KindPI Kind = iota
	// KindPO is a primary output.
	KindPO
	// KindNode is an internal, gate-bound (or transiently unmapped) node.
	KindNode
)

// String renders k for diagnostics and tests.
func (k Kind) String() string {
	switch k {
	case KindPI:
		return "PI"
	case KindPO:
		return "PO"
	case KindNode:
		return "NODE"
	default:
		return "UNKNOWN"
	}
}

// Object is one network object: a PI, a PO, or an internal node. Fanins
// are ordered and semantically significant (they match the gate's pin
// order); fanouts are unordered.
type Object struct {
	ID      int
	Kind    Kind
	Fanins  []*Object
	Fanouts []*Object

	Level        int
	ReverseLevel int

	// Gate is set for a mapped NODE. A PI/PO never carries a gate.
	Gate *library.Gate

	// SOPCover/SOPOnset hold a node's function when it has been
	// resynthesized but not yet remapped to a library cell.
	// HasSOP distinguishes "deliberately unmapped" from "zero-value".
	SOPCover sop.Cover
	SOPOnset bool
	HasSOP   bool

	// travelID holds the two independent two-coloured-DFS stamps:
	// travelID[i] == Network.travelCounter[i] means this object is
	// "marked" under colour i for the traversal currently in progress.
	travelID [2]uint64

	// UserValue is free scratch for driver-level bookkeeping (statistics,
	// simulation patterns, arrival/required time caches owned by other
	// packages).
	UserValue int64

	// ITemp is scratch reused within a single window extraction pass; no
	// code outside one extraction may rely on its value surviving.
	ITemp int
}

// NumFanins returns the number of ordered fanins (the object's support
// size for a NODE).
func (o *Object) NumFanins() int { return len(o.Fanins) }

// Network is a mutable technology-mapped combinational netlist.
type Network struct {
	mu sync.RWMutex

	objects map[int]*Object
	nextID  int

	pis []*Object
	pos []*Object

	travelCounter [2]uint64
}

// New returns an empty network.
func New() *Network {
	return &Network{objects: make(map[int]*Object)}
}

func (n *Network) allocID() int {
	id := n.nextID
	n.nextID++
	return id
}

// PIs returns the network's primary inputs in creation order. The
// returned slice is owned by the network and must not be mutated.
func (n *Network) PIs() []*Object {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.pis
}

// POs returns the network's primary outputs in creation order. The
// returned slice is owned by the network and must not be mutated.
func (n *Network) POs() []*Object {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.pos
}

// Len returns the number of live objects (PIs, POs, and nodes) in the
// network.
func (n *Network) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.objects)
}

// Object looks up a live object by ID.
func (n *Network) Object(id int) (*Object, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	o, ok := n.objects[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return o, nil
}
