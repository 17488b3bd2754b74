// SPDX-License-Identifier: MIT
package matcher

import "github.com/go-logicsynth/dcewin/tt"

// AreaLookup returns the lowest-area record whose table equals query.
// Panics if the matcher was prepared in DelayMode, mirroring the
// library package's invariant-violation panics: callers own mode
// consistency between Prepare and lookup.
func (m *Matcher) AreaLookup(query *tt.Table) (*Record, error) {
	if m.mode != AreaMode {
		panic("matcher: AreaLookup called on a delay-mode matcher")
	}
	if query.NVars() > m.nVarMax {
		return nil, ErrQueryTooWide
	}
	b := m.table[tableKey(query)]
	if b == nil || b.best == nil {
		return nil, ErrNoMatch
	}
	return b.best, nil
}

// DelayLookup returns every record on query's Pareto frontier, or nil if
// none were prepared for this table. An empty result is not an error:
// callers scan a range of candidate queries and skip the ones with no
// frontier.
func (m *Matcher) DelayLookup(query *tt.Table) ([]*Record, error) {
	if m.mode != DelayMode {
		panic("matcher: DelayLookup called on an area-mode matcher")
	}
	if query.NVars() > m.nVarMax {
		return nil, ErrQueryTooWide
	}
	b := m.table[tableKey(query)]
	if b == nil {
		return nil, nil
	}
	return append([]*Record(nil), b.frontier...), nil
}
