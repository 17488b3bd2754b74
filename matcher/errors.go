// SPDX-License-Identifier: MIT
package matcher

import "errors"

var (
	// ErrNoConstantGates is returned by Prepare when the library passed in
	// lacks the distinguished constant gates (Const0Gate/Const1Gate) that
	// library.Load resolves; Prepare assumes those invariants already hold.
	ErrNoConstantGates = errors.New("matcher: library missing distinguished constant gates")

	// ErrNVarMaxOutOfRange is returned by Prepare for an NVarMax outside
	// (0, tt.MaxVars] or above the seven-input ceiling this package's
	// table-key encoding supports.
	ErrNVarMaxOutOfRange = errors.New("matcher: NVarMax out of supported range")

	// ErrQueryTooWide is returned by AreaLookup/DelayLookup when the query
	// table carries more variables than the matcher was prepared for.
	ErrQueryTooWide = errors.New("matcher: query table wider than NVarMax")

	// ErrNoMatch is returned by AreaLookup when no record's table equals
	// the query.
	ErrNoMatch = errors.New("matcher: no record matches query table")
)
