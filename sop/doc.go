// Package sop implements the cube-based sum-of-products cover engine:
// 32-bit packed cubes (two bits per variable, up to 16 variables),
// single-cube-containment (SCC) covers, cover AND/OR, and derivation of
// an irredundant SOP directly from a truth table via recursive Shannon
// cofactoring, since every function reaching this package already has a
// fully evaluated truth table rather than a parsed expression tree.
package sop
