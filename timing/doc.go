// SPDX-License-Identifier: MIT
// Package timing exposes a small façade over a netlist's static timing:
// arrival and required times, slack, and the handful of queries the
// delay-mode driver needs to rank and accept candidate replacements
// without owning the timing model itself.
//
// Two implementations satisfy the same Facade interface. PureDelay
// ignores interconnect and fanout loading: every pin's delay is its
// library-declared block delay, except that EvalRemapping charges a
// two-cell candidate's bottom cell with the top cell's input-pin load.
// LoadAware additionally scales each
// pin's delay by the capacitive load actually driven at that node,
// recomputed as nodes are spliced in and out, and is the only
// implementation that does anything with UpdateLoad/TransferLoad.
//
// Arrival times propagate forward from the primary inputs (arrival 0) in
// topological (Level) order; required times propagate backward from the
// primary outputs under the network's declared delay target.
package timing
