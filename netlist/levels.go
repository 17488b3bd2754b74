// SPDX-License-Identifier: MIT
package netlist

// UpdateLevelsFrom recomputes start's level from its current fanins and
// propagates the change forward through its transitive fanouts,
// stopping at any node whose level turns out unchanged.
func (n *Network) UpdateLevelsFrom(start *Object) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updateLevelsFromLocked(start)
}

func (n *Network) updateLevelsFromLocked(start *Object) {
	queue := []*Object{start}
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		if o.Kind == KindPI {
			continue
		}
		newLevel := 0
		for _, fi := range o.Fanins {
			if fi.Level+1 > newLevel {
				newLevel = fi.Level + 1
			}
		}
		if newLevel == o.Level && o != start {
			continue
		}
		o.Level = newLevel
		queue = append(queue, o.Fanouts...)
	}
}

// RecomputeReverseLevels performs a full backward sweep from every PO,
// setting each object's ReverseLevel to its shortest distance (in edges)
// to a primary output — the bound window extraction uses to cap TFO
// exploration depth. Objects not reachable from any PO (a disconnected
// fragment) keep the sentinel value -1.
func (n *Network) RecomputeReverseLevels() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, o := range n.objects {
		o.ReverseLevel = -1
	}
	var queue []*Object
	for _, po := range n.pos {
		po.ReverseLevel = 0
		queue = append(queue, po)
	}
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		for _, fi := range o.Fanins {
			cand := o.ReverseLevel + 1
			if fi.ReverseLevel == -1 || cand < fi.ReverseLevel {
				fi.ReverseLevel = cand
				queue = append(queue, fi)
			}
		}
	}
}
