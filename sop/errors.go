// SPDX-License-Identifier: MIT
// Package: dcewin/sop
//
// errors.go — sentinel errors for the sop package. Most sop operations
// are pure and total (they never fail on well-formed input); malformed
// variable counts are programmer errors and panic rather than returning
// one of these sentinels. ErrTooManyVars names the one data-dependent
// failure (a library gate or local function with more inputs than the
// cube encoding supports); no function in this module returns it.

package sop

import "errors"

// ErrTooManyVars names a variable count above the cube encoding limit.
// No function in this module returns it; FromTruthTable panics on such
// a count instead.
var ErrTooManyVars = errors.New("sop: variable count exceeds cube encoding limit")
