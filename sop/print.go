// SPDX-License-Identifier: MIT
package sop

import "strings"

// Text renders a cover in the SOP text format: one cube per line
// as nVars characters of {0,1,-}, a space, then '0' (offset) or '1'
// (onset), then a newline. An empty cover under the onset marker renders
// the constant-0 line (" 0\n"); Universe under the onset marker
// renders the constant-1 line (" 1\n"). Under the offset marker the
// polarity flips: an empty cover renders " 1\n" and Universe " 0\n".
func Text(cov Cover, isOnset bool, nVars int) string {
	marker := byte('0')
	if isOnset {
		marker = '1'
	}
	if len(cov) == 0 {
		// an empty onset is constant 0; an empty offset is constant 1
		if isOnset {
			return " 0\n"
		}
		return " 1\n"
	}
	if len(cov) == 1 && cov[0] == Universe {
		return " " + string(marker) + "\n"
	}
	var b strings.Builder
	for _, c := range cov {
		b.WriteString(c.String(nVars))
		b.WriteByte(' ')
		b.WriteByte(marker)
		b.WriteByte('\n')
	}
	return b.String()
}
