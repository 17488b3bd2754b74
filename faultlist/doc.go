// SPDX-License-Identifier: MIT

// Package faultlist reads and writes the line-oriented fault-list format
// used to drive downstream fault simulation against a mapped network:
// one record per line, "<seq> <node-name> <fault-kind>", where fault-kind
// is one of the three core faults (SA0, SA1, NEG) or the name of a
// library cell denoting "replace this node's gate with that cell".
//
// The network itself carries no node names (netlist.Object is identified
// only by its integer ID), so both directions take a caller-supplied
// Namer/Resolver pair rather than reaching into netlist for naming —
// naming a node is the host shell's concern, out of scope here just as
// the genlib lexer and the overall CLI are.
package faultlist
