// SPDX-License-Identifier: MIT
// Package matcher builds, once per loaded library, a truth-table-keyed
// lookup structure for technology-mapped replacement candidates.
//
// Preparation enumerates every library cell with a small enough fanin
// count, computes its truth table under every permutation of its inputs,
// and inserts a function record keyed by that table into a hash table.
// It then composes two-cell "super-gates" — every (bottom, top) cell
// pair, with the bottom cell's output fed into one of the top cell's
// input positions — and inserts those the same way, extending coverage
// to replacements one fanin-collapse deeper than any single library cell
// reaches.
//
// In area mode the hash bucket keeps the single lowest-area record seen
// for each table. In delay mode it keeps a Pareto frontier over
// (area, per-input delay vector): a new record is dropped if an existing
// one dominates it on both axes, and any existing record the new one
// dominates is purged.
//
// Lookup then answers, for a query truth table over an ordered set of
// window divisors, either the lowest-area match or the full delay
// frontier.
package matcher
