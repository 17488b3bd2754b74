// SPDX-License-Identifier: MIT
package sop

// Cover is a sequence of cubes maintained under single-cube-containment
// (SCC): no cube in a Cover ever contains another. The empty
// cover (nil) is the constant-0 function; a Cover holding only Universe
// is the constant-1 function.
type Cover []Cube

// Push inserts c into the cover under the SCC discipline: c is dropped if
// some existing cube already contains it; any existing cube c contains is
// dropped in its place; otherwise c is appended.
func (cov Cover) Push(c Cube, nVars int) Cover {
	for _, existing := range cov {
		if Contains(existing, c, nVars) {
			return cov
		}
	}
	out := cov[:0:0]
	for _, existing := range cov {
		if !Contains(c, existing, nVars) {
			out = append(out, existing)
		}
	}
	return append(out, c)
}

// And returns the pairwise-cube-AND of two covers, dropping empty
// (contradictory) products and inserting survivors via SCC.
func And(a, b Cover, nVars int) Cover {
	var out Cover
	for _, ca := range a {
		for _, cb := range b {
			c, ok := Intersect(ca, cb, nVars)
			if !ok {
				continue
			}
			out = out.Push(c, nVars)
		}
	}
	return out
}

// Or returns the SCC-merged union of two covers.
func Or(a, b Cover, nVars int) Cover {
	out := make(Cover, 0, len(a)+len(b))
	for _, c := range a {
		out = out.Push(c, nVars)
	}
	for _, c := range b {
		out = out.Push(c, nVars)
	}
	return out
}
