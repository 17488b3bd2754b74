// SPDX-License-Identifier: MIT
package expr

// Node is one internal 2-input AND node: its two children are literals in
// the unified address space.
type Node struct {
	A, B Lit
}

// Expr is a Boolean expression over NVars primary variables: a post-order
// array of AND nodes plus a root literal.
//
// Invariants (no function in this package checks them; the builders in
// this package always produce valid expressions):
//   - every node's children reference only primary variables or nodes
//     with a strictly smaller index (no cycles, no forward references);
//   - Root addresses a primary variable, a node, or a constant.
type Expr struct {
	NVars int
	Nodes []Node
	Root  Lit
}

// Const0 returns the constant-0 expression over nVars variables.
func Const0(nVars int) *Expr { return &Expr{NVars: nVars, Root: ConstFalse} }

// Const1 returns the constant-1 expression over nVars variables.
func Const1(nVars int) *Expr { return &Expr{NVars: nVars, Root: ConstTrue} }

// Var returns the trivial expression naming primary variable idx.
func Var(nVars, idx int) *Expr {
	return &Expr{NVars: nVars, Root: MakeVarLit(idx, false)}
}

// Not returns the logical complement of e. It never allocates a node: the
// returned expression shares e's Nodes slice and only flips the root
// literal.
func Not(e *Expr) *Expr {
	return &Expr{NVars: e.NVars, Nodes: e.Nodes, Root: e.Root.Negate()}
}

// merge relabels e0's internal node references to sit above e1's nodes
// and returns the concatenated node array together with e0's relabeled
// root literal and e1's (unchanged) root literal.
func merge(e0, e1 *Expr) (nodes []Node, root0, root1 Lit) {
	offset := len(e1.Nodes)
	nodes = make([]Node, 0, len(e1.Nodes)+len(e0.Nodes))
	nodes = append(nodes, e1.Nodes...)
	for _, n := range e0.Nodes {
		nodes = append(nodes, Node{
			A: relabelLit(n.A, e0.NVars, offset),
			B: relabelLit(n.B, e0.NVars, offset),
		})
	}
	root0 = relabelLit(e0.Root, e0.NVars, offset)
	root1 = e1.Root
	return nodes, root0, root1
}

// andLit builds a raw AND-node literal (child0 with polarity c0) AND
// (child1 with polarity c1) within the given node array, appending the new
// node and returning its literal. Constant-operand shortcuts are folded
// here so builders never emit dead AND nodes.
func andLit(nodes *[]Node, nVars int, a Lit, c0 bool, b Lit, c1 bool) Lit {
	aLit := applyPolarity(a, c0)
	bLit := applyPolarity(b, c1)

	if aLit == ConstFalse || bLit == ConstFalse {
		return ConstFalse
	}
	if aLit == ConstTrue {
		return bLit
	}
	if bLit == ConstTrue {
		return aLit
	}
	if aLit == bLit {
		return aLit
	}
	if aLit == bLit.Negate() {
		return ConstFalse
	}
	idx := len(*nodes)
	*nodes = append(*nodes, Node{A: aLit, B: bLit})
	return makeNodeLit(nVars, idx, false)
}

// applyPolarity returns l complemented iff compl is true: the natural
// meaning of "take child a with requested sign c0" during AND-node
// construction.
func applyPolarity(l Lit, compl bool) Lit {
	if compl {
		return l.Negate()
	}
	return l
}

// And returns (e0 with polarity c0) AND (e1 with polarity c1) as a new
// expression, the primitive every other binary builder composes from.
func And(e0, e1 *Expr, c0, c1 bool) *Expr {
	if e0.NVars != e1.NVars {
		panic("expr: And operands have different variable counts")
	}
	nodes, root0, root1 := merge(e0, e1)
	root := andLit(&nodes, e0.NVars, root0, c0, root1, c1)
	return &Expr{NVars: e0.NVars, Nodes: nodes, Root: root}
}

// Or returns e0 OR e1, synthesized as NOT(AND(NOT e0, NOT e1)) (De
// Morgan's law), since Node only ever represents a 2-input AND.
func Or(e0, e1 *Expr) *Expr {
	return Not(And(e0, e1, true, true))
}

// Xor returns e0 XOR e1 using the canonical 3-AND expansion:
// (e0 OR e1) AND NOT(e0 AND e1).
func Xor(e0, e1 *Expr) *Expr {
	orE := Or(e0, e1)
	andE := And(e0, e1, false, false)
	return And(orE, Not(andE), false, false)
}

// Reverse reverses e's node order in place and remaps every literal that
// referenced a node index accordingly. The reversed array is no longer
// in post-order (nodes reference higher indices), so Eval cannot be
// applied to it; a second Reverse restores the original order.
func (e *Expr) Reverse() {
	n := len(e.Nodes)
	if n == 0 {
		return
	}
	remap := func(l Lit) Lit {
		if l.IsConst() || !l.IsNode(e.NVars) {
			return l
		}
		idx := l.NodeIndex(e.NVars)
		return makeNodeLit(e.NVars, n-1-idx, l.Compl())
	}
	newNodes := make([]Node, n)
	for i, nd := range e.Nodes {
		newNodes[n-1-i] = Node{A: remap(nd.A), B: remap(nd.B)}
	}
	e.Nodes = newNodes
	e.Root = remap(e.Root)
}

// Size returns the number of internal AND nodes.
func (e *Expr) Size() int { return len(e.Nodes) }
