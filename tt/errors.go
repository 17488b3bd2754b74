// SPDX-License-Identifier: MIT
// Package: dcewin/tt
//
// errors.go — sentinel errors for the tt package.
//
// Error policy:
//   • Only sentinel variables are exposed at package level.
//   • No function in this package returns or wraps them; the ones in
//     use are panic values.
//   • Programmer errors (negative variable counts, mismatched widths fed
//     to a binary op) panic instead of returning an error: they indicate a
//     bug in the caller, not a data-dependent failure.

package tt

import "errors"

var (
	// ErrTooManyVars names a variable count above MaxVars. No function in
	// this package uses it: a constructor asked for too many variables
	// panics with a formatted message instead.
	ErrTooManyVars = errors.New("tt: variable count exceeds MaxVars")

	// ErrVarCountMismatch is the panic value when two tables of different
	// variable counts are combined by a binary operator.
	ErrVarCountMismatch = errors.New("tt: operand variable counts differ")

	// ErrVarIndexOutOfRange is the panic value of Cofactor and
	// SwapAdjacent when the requested variable index is not within
	// [0, nVars).
	ErrVarIndexOutOfRange = errors.New("tt: variable index out of range")
)
