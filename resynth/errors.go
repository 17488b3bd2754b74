// SPDX-License-Identifier: MIT
package resynth

import "errors"

var (
	// ErrModeMismatch is returned by NewDriver when opts.Mode and the
	// matcher's own prepared Mode disagree, or when ModeDelay is
	// requested without a timing façade.
	ErrModeMismatch = errors.New("resynth: driver mode does not match matcher/timing configuration")

	// ErrNodeChangeBudgetExceeded is returned by Run when NNodesMax
	// structural changes have already been committed and the loop has
	// more candidate work remaining; the Stats returned alongside it
	// still reflect every change committed so far.
	ErrNodeChangeBudgetExceeded = errors.New("resynth: node-change budget exhausted")
)
