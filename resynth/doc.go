// SPDX-License-Identifier: MIT
// Package resynth drives the per-node don't-care resynthesis loop: for
// each candidate pivot, extract a window (package window), compile it to
// a SAT instance (package satenc), search for a smaller function of its
// divisors (package decomp), look the result up against the technology
// library (package matcher), and splice any improving replacement into
// the network (package netlist).
//
// Two loops are offered over the same per-pivot machinery. Area mode
// walks every node once in topological order, accepting any replacement
// with strictly smaller area (or no larger, under ZeroCost). Delay mode
// repeatedly asks a timing façade (package timing) for the current
// critical-path neighborhood, attempts matches from the delay-mode
// Pareto frontier, and commits the first one that beats the pivot's
// arrival time by at least DeltaCrit, refreshing the façade's load and
// timing bookkeeping after every commit before asking for the next
// neighborhood.
package resynth
