// Package cnf implements the expression/truth-table → CNF pipeline of
// and the wire format of ("CNF clause stream"): a
// signed-byte sequence of literals (variable_index<<1|polarity) terminated
// per clause by the sentinel -1.
//
// Each gate's CNF is derived once, in local variable numbering (inputs
// 0..nVars-1, the gate's output at index nVars), from the onset/offset
// ISOP covers of its truth table (package sop). Translate then renames a
// derived clause stream through a caller-supplied global variable map —
// the per-instantiation step and §4.8 describe, used by the
// window-to-CNF compiler (package satenc) to stamp one gate's CNF into
// many different places in a SAT instance, optionally flipping the
// pivot's polarity where it occurs in the duplicated TFO cone.
package cnf
