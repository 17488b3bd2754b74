// SPDX-License-Identifier: MIT
package window

import "errors"

var (
	// ErrWindowTooLarge is returned when the transitive fanin collection
	// exceeds Bounds.WinSizeMax.
	ErrWindowTooLarge = errors.New("window: exceeded nWinSizeMax during TFI collection")

	// ErrMFFCOutOfRange is returned when the pivot's MFFC size falls
	// outside [Bounds.MffcMin, Bounds.MffcMax].
	ErrMFFCOutOfRange = errors.New("window: pivot MFFC size out of bounds")

	// ErrNilPivot is returned by Extract when pivot is nil.
	ErrNilPivot = errors.New("window: nil pivot")

	// ErrPivotIsPI is returned by Extract when pivot has no fanins to
	// window around (a PI cannot be resynthesized).
	ErrPivotIsPI = errors.New("window: pivot is a primary input")
)
