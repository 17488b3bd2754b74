// Package tt implements fixed-width bit-sliced truth tables for Boolean
// functions of up to a general number of variables.
//
// Three width classes back one logical Table type:
//
//	Word1 — up to 6 variables, a single 64-bit word (bit i = f on minterm i)
//	Word2 — up to 8 variables, four 64-bit words
//	WordN — any variable count, ceil(2^n/64) words
//
// All mutating operations are word-wise so a Table never needs to know
// which class backs it to combine with another Table of the same size.
// Functions that only make sense on a specific class (Swap, Cofactor) work
// uniformly by iterating the backing slice.
package tt
