// Package satenc compiles a window (package window) into a live SAT
// instance: the window's transitive fanin cone and MFFC
// are streamed once as the "original cone", the transitive fanout cone
// is streamed a second time as a "duplicated cone" with the pivot's
// literal negated at every occurrence, and a root-wise XOR gadget plus a
// top assertion ties the two cones together so that any satisfying
// assignment witnesses an input pattern on which the pivot is
// observable.
//
// One Encoder owns one long-lived gini instance, reused window after
// window via a fresh activation literal per compile; SPICE-grade incremental clause
// deletion is not available in gini, so a per-window activation literal
// is used instead to gate each window's top assertion independently of
// previously compiled windows.
package satenc
