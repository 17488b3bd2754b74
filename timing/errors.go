// SPDX-License-Identifier: MIT
package timing

import "errors"

var (
	// ErrNodeNotTimed names a query on an object this façade has never
	// seen (not reachable from any PI in the network it was built over).
	// No Facade method returns it: such a query reads as zero.
	ErrNodeNotTimed = errors.New("timing: node has no recorded timing")

	// ErrFaninCountMismatch is returned by EvalRemapping when the
	// supplied fanins slice and the candidate record's Fanins slice
	// disagree in length.
	ErrFaninCountMismatch = errors.New("timing: fanins length does not match candidate record's support")
)
