// SPDX-License-Identifier: MIT
package netlist

import "github.com/go-logicsynth/dcewin/library"

// AddPI allocates a new primary input.
func (n *Network) AddPI() *Object {
	n.mu.Lock()
	defer n.mu.Unlock()

	o := &Object{ID: n.allocID(), Kind: KindPI}
	n.objects[o.ID] = o
	n.pis = append(n.pis, o)
	return o
}

// AddPO allocates a new primary output fed by fanin: a PO has exactly
// one fanin.
func (n *Network) AddPO(fanin *Object) (*Object, error) {
	if fanin == nil {
		return nil, ErrNilFanin
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.objects[fanin.ID]; !ok {
		return nil, ErrObjectNotFound
	}

	o := &Object{ID: n.allocID(), Kind: KindPO, Fanins: []*Object{fanin}, Level: fanin.Level + 1}
	n.objects[o.ID] = o
	n.pos = append(n.pos, o)
	fanin.Fanouts = append(fanin.Fanouts, o)
	return o, nil
}

// AddNode allocates a new gate-bound node, appending it to the fanout
// list of each fanin and computing its level.
func (n *Network) AddNode(gate *library.Gate, fanins []*Object) (*Object, error) {
	if gate == nil {
		return nil, ErrNilGate
	}
	if len(fanins) != gate.NumInputs() {
		return nil, ErrFaninCountMismatch
	}
	for _, f := range fanins {
		if f == nil {
			return nil, ErrNilFanin
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, f := range fanins {
		if _, ok := n.objects[f.ID]; !ok {
			return nil, ErrObjectNotFound
		}
	}

	level := 0
	for _, f := range fanins {
		if f.Level+1 > level {
			level = f.Level + 1
		}
	}

	o := &Object{
		ID:     n.allocID(),
		Kind:   KindNode,
		Gate:   gate,
		Fanins: append([]*Object(nil), fanins...),
		Level:  level,
	}
	n.objects[o.ID] = o
	for _, f := range fanins {
		f.Fanouts = append(f.Fanouts, o)
	}
	return o, nil
}

// RemoveNode deletes v, which must currently have no fanouts, detaching
// it from each of its fanins' fanout lists.
func (n *Network) RemoveNode(v *Object) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.removeLocked(v)
}

func (n *Network) removeLocked(v *Object) error {
	if _, ok := n.objects[v.ID]; !ok {
		return ErrObjectNotFound
	}
	if len(v.Fanouts) != 0 {
		return ErrHasFanouts
	}
	for _, u := range v.Fanins {
		u.Fanouts = removeObject(u.Fanouts, v)
	}
	delete(n.objects, v.ID)
	switch v.Kind {
	case KindPI:
		n.pis = removeObject(n.pis, v)
	case KindPO:
		n.pos = removeObject(n.pos, v)
	}
	return nil
}

// Replace attaches every fanout of v to w in v's place, then deletes v
// and recursively deletes any of v's former fanins left with no fanouts
// (cascading MFFC deletion), finally re-propagating levels forward from
// w.
func (n *Network) Replace(v, w *Object) error {
	if v == w {
		return ErrSelfReplace
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.objects[v.ID]; !ok {
		return ErrObjectNotFound
	}
	if _, ok := n.objects[w.ID]; !ok {
		return ErrObjectNotFound
	}

	fanouts := append([]*Object(nil), v.Fanouts...)
	for _, fo := range fanouts {
		for i, fi := range fo.Fanins {
			if fi == v {
				fo.Fanins[i] = w
			}
		}
		w.Fanouts = append(w.Fanouts, fo)
	}
	v.Fanouts = nil

	if err := n.cascadeRemove(v); err != nil {
		return err
	}

	n.updateLevelsFromLocked(w)
	return nil
}

// cascadeRemove removes v, which must already be fanout-free, then
// recursively removes any former fanin left fanout-free, restricted to
// internal nodes: a fanout-free PI is simply an unused input, not dead
// logic, and is never auto-deleted.
func (n *Network) cascadeRemove(v *Object) error {
	fanins := append([]*Object(nil), v.Fanins...)
	if err := n.removeLocked(v); err != nil {
		return err
	}
	for _, u := range fanins {
		if u.Kind == KindNode && len(u.Fanouts) == 0 {
			if err := n.cascadeRemove(u); err != nil {
				return err
			}
		}
	}
	return nil
}

func removeObject(list []*Object, target *Object) []*Object {
	out := list[:0:0]
	for _, o := range list {
		if o != target {
			out = append(out, o)
		}
	}
	return out
}
