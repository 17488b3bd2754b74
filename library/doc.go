// Package library models a technology-mapping cell library: its genlib
// text format, its formula grammar, and the derived forms materialized
// from each gate's formula.
//
// A Library is an ordered list of Gates; each Gate carries its pin list,
// area, and textual formula as read from the genlib record, plus the
// derived forms — parsed expression, truth table, SOP, and CNF clause
// stream — materialized once at ingest time and cached for the rest of
// the session.
//
// The outer genlib record splitter (GATE/PIN line framing) is a thin,
// line-oriented reader. The formula grammar — the recursive-descent parser
// over pin-name operands and the AND/OR/XOR/NOT operator set — lives in
// this package in full.
package library
