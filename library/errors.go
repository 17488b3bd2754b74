// SPDX-License-Identifier: MIT
// Package: dcewin/library
//
// errors.go — sentinel errors for the library package.
//
// Error policy: only sentinel variables are exported; callers branch with
// errors.Is. genlib ingestion errors are *input-malformed*: reported,
// the offending record is skipped, and ingestion continues —
// callers that want fail-fast behavior check the returned []error list
// themselves rather than relying on Load to abort.

package library

import "errors"

var (
	// ErrUnmatchedParen is returned by the formula parser when a closing
	// or opening parenthesis has no matching counterpart.
	ErrUnmatchedParen = errors.New("library: unmatched parenthesis in formula")

	// ErrMissingOperand is returned when an operator is applied without
	// enough operands on the parser's value stack.
	ErrMissingOperand = errors.New("library: operator with missing operand")

	// ErrUnknownIdentifier is returned when a formula references a name
	// that does not match any pin of the gate being parsed, under the
	// parser's longest-prefix identifier matching rule.
	ErrUnknownIdentifier = errors.New("library: unknown identifier in formula")

	// ErrPinSetMismatch is returned by the post-parse verifier when some
	// pin of the gate's declared pin set does not appear in the formula.
	ErrPinSetMismatch = errors.New("library: formula does not match gate's declared pin set")

	// ErrDuplicateGateName is returned when a genlib record names a gate
	// that already exists in the library.
	ErrDuplicateGateName = errors.New("library: duplicate gate name")

	// ErrMalformedRecord is returned for a GATE/PIN line that cannot be
	// tokenized according to the genlib grammar.
	ErrMalformedRecord = errors.New("library: malformed genlib record")

	// ErrTooManyInputs is returned when a gate's pin count exceeds what
	// the truth-table/CNF pipeline supports (tt.MaxVars).
	ErrTooManyInputs = errors.New("library: gate has more inputs than supported")

	// ErrGateNotFound is returned by Library.ByName for an unknown gate.
	ErrGateNotFound = errors.New("library: gate not found")

	// ErrNoConstantGate is returned when a library lacks a required
	// distinguished constant-0 or constant-1 gate.
	ErrNoConstantGate = errors.New("library: missing constant-0/constant-1 gate")

	// ErrTooManyTwins is returned when a third GATE record repeats a name
	// already carrying a twin: a physical cell has at most two outputs.
	ErrTooManyTwins = errors.New("library: gate already has a twin output")
)
