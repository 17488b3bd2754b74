// SPDX-License-Identifier: MIT
package netlist

// Two independent travel colours support the two simultaneously-active
// DFS passes window extraction runs: ColourTFI marks the transitive
// fanin cone, ColourTFO marks the transitive fanout cone, and the two
// never need to be cleared of each other mid-pass.
const (
	ColourTFI = 0
	ColourTFO = 1
)

// NewTravelID returns a fresh travel stamp for colour, monotonically
// increasing per network per colour. Comparing an object's stored stamp
// against the value returned here is how a traversal pass tests and
// marks "visited" without a separate O(n) reset between passes.
func (n *Network) NewTravelID(colour int) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.travelCounter[colour]++
	return n.travelCounter[colour]
}

// Visited reports whether o carries travelID under colour.
func (o *Object) Visited(colour int, travelID uint64) bool {
	return o.travelID[colour] == travelID
}

// MarkVisited stamps o with travelID under colour.
func (o *Object) MarkVisited(colour int, travelID uint64) {
	o.travelID[colour] = travelID
}
