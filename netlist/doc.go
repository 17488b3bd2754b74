// Package netlist models a technology-mapped combinational network:
// primary inputs, primary outputs, and gate-bound internal nodes, linked
// by ordered fanin / unordered fanout lists, with per-object level,
// reverse level, and two independent travel-ID counters for two-coloured
// depth-first marking during window extraction.
//
// Network is safe for concurrent read access and serializes mutation
// internally, mirroring the locking discipline of a thread-safe graph
// library: one RWMutex guards the object table and every object's
// fanin/fanout lists, since structural edits (add/remove/replace) always
// touch both together.
package netlist
