// SPDX-License-Identifier: MIT
package faultlist

import "errors"

var (
	// ErrUnknownNodeName is returned by a Resolver when a record's node
	// name does not name any live node.
	ErrUnknownNodeName = errors.New("faultlist: unknown node name")

	// ErrNoAlternatives names the unmapped-node case (a nil gate has no
	// fanin count to match against). No function in this package returns
	// it: WriteFaultList skips such nodes in cell-alternative mode.
	ErrNoAlternatives = errors.New("faultlist: node has no mapped gate")
)
