// SPDX-License-Identifier: MIT
package matcher

import (
	"encoding/binary"

	"github.com/go-logicsynth/dcewin/library"
	"github.com/go-logicsynth/dcewin/tt"
)

// Prepare builds a lookup structure over lib's gates: every cell with a
// small enough fanin count under every permutation of its inputs, plus
// every two-cell super-gate composition whose combined support still
// fits p.NVarMax. True DSD/AND-OR decomposability classification of a
// cell's function is not checked; in practice every cell a genlib record
// can express at this fanin count is some combination of these gate
// types, so the cell's fanin count alone gates eligibility.
func Prepare(lib *library.Library, p Params) (*Matcher, error) {
	if p.NVarMax <= 0 || p.NVarMax > MaxSupportedVars {
		return nil, ErrNVarMaxOutOfRange
	}
	if lib.Const0Gate == nil || lib.Const1Gate == nil {
		return nil, ErrNoConstantGates
	}

	m := &Matcher{mode: p.Mode, nVarMax: p.NVarMax, table: make(map[string]*bucket)}

	var eligible []*library.Gate
	for _, g := range lib.Gates() {
		n := g.NumInputs()
		if n == 0 || n > p.NVarMax {
			continue
		}
		eligible = append(eligible, g)
		m.insertCellPermutations(g)
	}

	for _, bot := range eligible {
		for _, top := range eligible {
			total := bot.NumInputs() + top.NumInputs() - 1
			if total < 1 || total > p.NVarMax {
				continue
			}
			for f := 0; f < top.NumInputs(); f++ {
				m.insertSuperGatePermutations(bot, top, f)
			}
		}
	}

	return m, nil
}

// insertCellPermutations inserts g's truth table under every permutation
// of its own pins.
func (m *Matcher) insertCellPermutations(g *library.Gate) {
	n := g.NumInputs()
	sources := make([]InputSource, n)
	for i := range sources {
		sources[i] = InputSource{Slot: SlotBot, Pin: i}
	}
	enumerate(n, g.Truth, sources, func(t *tt.Table, order []InputSource) {
		delay := make([]float64, n)
		for i, src := range order {
			delay[i] = g.Pins[src.Pin].DelayBlockMax
		}
		m.insert(t, &Record{
			BotCell: g,
			Fanins:  append([]InputSource(nil), order...),
			Area:    g.Area,
			Delay:   delay,
		})
	})
}

// insertSuperGatePermutations composes bot's output into top's pin f,
// then inserts the composite under every permutation of the combined
// remaining inputs.
func (m *Matcher) insertSuperGatePermutations(bot, top *library.Gate, f int) {
	base, sources := composeSuperGate(bot, top, f)
	total := len(sources)
	enumerate(total, base, sources, func(t *tt.Table, order []InputSource) {
		delay := make([]float64, total)
		for i, src := range order {
			if src.Slot == SlotBot {
				delay[i] = bot.Pins[src.Pin].DelayBlockMax
			} else {
				delay[i] = top.Pins[src.Pin].DelayBlockMax
			}
		}
		m.insert(t, &Record{
			BotCell:     bot,
			TopCell:     top,
			TopFaninPos: f,
			Fanins:      append([]InputSource(nil), order...),
			Area:        bot.Area + top.Area,
			Delay:       delay,
		})
	})
}

// composeSuperGate builds the truth table of top with pin f driven by
// bot's output, over the support (bot's own inputs, followed by top's
// remaining inputs in pin order), and the InputSource list naming that
// order.
func composeSuperGate(bot, top *library.Gate, f int) (*tt.Table, []InputSource) {
	nBot := bot.NumInputs()
	nTop := top.NumInputs()

	var otherPos []int
	for j := 0; j < nTop; j++ {
		if j != f {
			otherPos = append(otherPos, j)
		}
	}
	total := nBot + len(otherPos)

	sources := make([]InputSource, 0, total)
	for i := 0; i < nBot; i++ {
		sources = append(sources, InputSource{Slot: SlotBot, Pin: i})
	}
	for _, j := range otherPos {
		sources = append(sources, InputSource{Slot: SlotTop, Pin: j})
	}

	botWords := bot.Truth.Words()
	topWords := top.Truth.Words()
	botMask := (1 << uint(nBot)) - 1

	words := make([]uint64, tt.NumWords(total))
	for minterm := 0; minterm < (1 << uint(total)); minterm++ {
		botOut := bitAt(botWords, minterm&botMask)

		topIdx := 0
		if botOut {
			topIdx |= 1 << uint(f)
		}
		for k, j := range otherPos {
			if minterm&(1<<uint(nBot+k)) != 0 {
				topIdx |= 1 << uint(j)
			}
		}

		if bitAt(topWords, topIdx) {
			words[minterm/64] |= 1 << uint(minterm%64)
		}
	}

	return tt.FromWords(total, words), sources
}

// enumerate calls insert once per permutation of the n-element sources
// slice, visited via PermSchedule's adjacent-transposition order, running
// base's table through the same swap sequence so insert always sees a
// table and an input-source order that agree on which variable is which.
func enumerate(n int, base *tt.Table, sources []InputSource, insert func(*tt.Table, []InputSource)) {
	table := base
	order := append([]InputSource(nil), sources...)
	insert(table, order)

	for _, step := range tt.PermSchedule(n) {
		table = table.SwapAdjacent(step.Index)
		order = append([]InputSource(nil), order...)
		order[step.Index], order[step.Index+1] = order[step.Index+1], order[step.Index]
		insert(table, order)
	}
}

// insert records rec under t's key, applying the matcher's bookkeeping
// discipline for its mode.
func (m *Matcher) insert(t *tt.Table, rec *Record) {
	key := tableKey(t)
	b := m.table[key]
	if b == nil {
		b = &bucket{}
		m.table[key] = b
	}
	switch m.mode {
	case AreaMode:
		if b.best == nil || rec.Area < b.best.Area {
			b.best = rec
		}
	case DelayMode:
		b.frontier = paretoInsert(b.frontier, rec)
	}
}

// paretoInsert adds rec to frontier, dropping it if some existing entry
// dominates it and purging any existing entry rec itself dominates.
func paretoInsert(frontier []*Record, rec *Record) []*Record {
	for _, e := range frontier {
		if dominates(e, rec) {
			return frontier
		}
	}
	kept := frontier[:0:0]
	for _, e := range frontier {
		if !dominates(rec, e) {
			kept = append(kept, e)
		}
	}
	return append(kept, rec)
}

// dominates reports whether a is at least as good as b on every axis
// (area, and every per-input delay entry) and strictly better on at
// least one.
func dominates(a, b *Record) bool {
	if a.Area > b.Area {
		return false
	}
	strict := a.Area < b.Area
	for i := range a.Delay {
		if a.Delay[i] > b.Delay[i] {
			return false
		}
		if a.Delay[i] < b.Delay[i] {
			strict = true
		}
	}
	return strict
}

func bitAt(words []uint64, idx int) bool {
	return words[idx/64]&(1<<uint(idx%64)) != 0
}

// tableKey encodes a table's variable count and backing words into a
// single byte string suitable as a map key; the variable count is
// included because two tables of different width can otherwise carry
// identical word patterns once the narrower one's tail bits are masked.
func tableKey(t *tt.Table) string {
	words := t.Words()
	buf := make([]byte, 1+8*len(words))
	buf[0] = byte(t.NVars())
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[1+8*i:], w)
	}
	return string(buf)
}
