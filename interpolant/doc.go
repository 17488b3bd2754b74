// Package interpolant computes, for a compiled SAT instance (package
// satenc), an admissible on-set for the window's pivot over its ordered
// divisor set: a SOP cover such that forcing the divisors to any minterm
// of the cover is consistent only with the pivot's real on-set, under
// the window's observability care set.
//
// The search alternates two queries against the shared solver: an onset
// query (assume the pivot true) that samples a candidate minterm from
// the divisors, and an offset query (assume the pivot false at that same
// minterm) that either rules the minterm out as infeasible — in which
// case the offending sub-cube is extracted from the final conflict set,
// added to the accumulated cover, and permanently blocked — or proves no
// interpolant exists on this divisor set at all. The loop terminates
// when the onset query itself goes unsatisfiable (every reachable
// minterm has been accounted for) or either query exceeds its
// per-call search budget.
package interpolant
