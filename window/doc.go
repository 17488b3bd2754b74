// Package window implements the don't-care window extractor: given a pivot node, it collects the pivot's transitive fanin cone
// down to a level bound, its maximum fanout-free cone (MFFC), its
// transitive fanout cone up to another level bound, a pool of candidate
// replacement fanins (divisors), and the window's observability care
// set, simulated on 64 random input patterns.
//
// A Window is a short-lived, read-only view over a netlist.Network: it
// never mutates the network, only walks it and records object pointers.
package window
