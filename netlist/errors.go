// SPDX-License-Identifier: MIT
package netlist

import "errors"

var (
	// ErrNilGate is returned by AddNode when gate is nil.
	ErrNilGate = errors.New("netlist: nil gate")

	// ErrFaninCountMismatch is returned by AddNode when len(fanins) does
	// not equal the gate's pin count.
	ErrFaninCountMismatch = errors.New("netlist: fanin count does not match gate pin count")

	// ErrNilFanin is returned when a fanin slice contains a nil object.
	ErrNilFanin = errors.New("netlist: nil fanin object")

	// ErrObjectNotFound is returned when an operation references an
	// object absent from the network (e.g. already removed).
	ErrObjectNotFound = errors.New("netlist: object not found")

	// ErrHasFanouts is returned by RemoveNode when the object still has
	// live fanouts — only dangling (fanout-free) objects may be removed
	// directly; Replace handles the cascading case.
	ErrHasFanouts = errors.New("netlist: object still has fanouts")

	// ErrPOFaninCount is returned when a PO is constructed without
	// exactly one fanin.
	ErrPOFaninCount = errors.New("netlist: PO requires exactly one fanin")

	// ErrKindMismatch is returned when an operation is attempted on an
	// object of the wrong Kind (e.g. removing a PI via RemoveNode).
	ErrKindMismatch = errors.New("netlist: object kind mismatch")

	// ErrSelfReplace is returned by Replace when v and w are the same
	// object.
	ErrSelfReplace = errors.New("netlist: cannot replace an object with itself")
)
