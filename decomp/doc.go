// Package decomp attempts to express a window's pivot as a small function
// of a handful of its divisors by interrogating the shared SAT solver with
// counterexample-guided cofactor queries, rather than asking the library
// matcher (package matcher) to search over the full divisor set at once.
//
// The search at each recursion level tries progressively more expensive
// shortcuts before falling back to branching: a trivial check (is the
// pivot constant under the current assumption prefix?), per-divisor unit
// implications (does fixing one divisor alone pin the pivot?), a
// multi-literal AND/OR shortcut over every divisor that individually
// implies the same pivot polarity, and finally a Shannon cofactor split on
// the most discriminating divisor, recursing on each half and remapping
// the two returned supports into a sorted union.
package decomp
