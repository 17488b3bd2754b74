// Package expr implements the Boolean-expression-tree form used to
// describe a gate's or a node's local function.
//
// An Expr is a post-order array of 2-input AND nodes plus a trailing root
// literal: every non-leaf node is an AND; OR and XOR are synthesized from
// AND and NOT; NOT never allocates a node, it only flips the root
// literal's complement bit.
package expr
