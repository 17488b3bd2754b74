// SPDX-License-Identifier: MIT
package library

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-logicsynth/dcewin/tt"
)

// pinTemplate holds a PIN record's electrical/timing fields, shared by
// both a single named pin and a "*" wildcard expansion.
type pinTemplate struct {
	phase                                                        Phase
	inputLoad, maxLoad                                           float64
	delayBlockRise, delayFanoutRise, delayBlockFall, delayFanoutFall float64
}

func parsePhase(s string) Phase {
	switch strings.ToUpper(s) {
	case "INV":
		return PhaseInverting
	case "NONINV":
		return PhaseNonInverting
	default:
		return PhaseUnknown
	}
}

// Load reads a genlib text stream and returns the resulting
// library plus a list of non-fatal record-level errors: each malformed
// or pin-mismatched record is skipped and ingestion continues.
func Load(r io.Reader) (*Library, []error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return New(), []error{fmt.Errorf("library: reading genlib stream: %w", err)}
	}

	var errs []error
	lib := New()

	for _, stmt := range splitStatements(string(data)) {
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "GATE":
			g, perr := parseGateLine(fields)
			if perr != nil {
				errs = append(errs, perr)
				continue
			}
			if err := ingestGate(lib, g); err != nil {
				errs = append(errs, err)
			}
		case "PIN":
			errs = append(errs, fmt.Errorf("library: PIN record outside any GATE: %w", ErrMalformedRecord))
		default:
			errs = append(errs, fmt.Errorf("library: unrecognized record %q: %w", fields[0], ErrMalformedRecord))
		}
	}

	if err := resolveDistinguishedGates(lib); err != nil {
		errs = append(errs, err)
	}
	return lib, errs
}

// splitStatements re-joins a genlib GATE declaration together with the
// PIN lines that follow it, up to the next GATE, and returns one
// statement string per gate (fields prefixed with "PIN ..." stay
// appended in order). Trailing ';' terminators, wherever present, are
// treated as plain whitespace: they carry no semantic weight beyond
// separating one clause from the next within a statement.
func splitStatements(text string) []string {
	text = strings.ReplaceAll(text, ";", " ")
	var statements []string
	var cur strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "GATE") && cur.Len() > 0 {
			statements = append(statements, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		statements = append(statements, cur.String())
	}
	return statements
}

// rawGate is the pre-ingestion parse of one GATE statement: the GATE
// line's fields plus every PIN line's fields, in source order.
type rawGate struct {
	name          string
	area          float64
	outputPinName string
	formula       string
	pinLines      [][]string
}

func parseGateLine(allFields []string) (*rawGate, error) {
	lines := splitByPin(allFields)
	if len(lines[0]) < 4 {
		return nil, fmt.Errorf("library: GATE record has too few fields: %w", ErrMalformedRecord)
	}
	gateFields := lines[0]
	area, err := strconv.ParseFloat(gateFields[2], 64)
	if err != nil {
		return nil, fmt.Errorf("library: GATE %q: area %q: %w", gateFields[1], gateFields[2], ErrMalformedRecord)
	}
	assignment := strings.Join(gateFields[3:], "")
	eq := strings.Index(assignment, "=")
	if eq < 0 {
		return nil, fmt.Errorf("library: GATE %q: missing output=formula assignment: %w", gateFields[1], ErrMalformedRecord)
	}
	rg := &rawGate{
		name:          gateFields[1],
		area:          area,
		outputPinName: assignment[:eq],
		formula:       assignment[eq+1:],
	}
	rg.pinLines = lines[1:]
	return rg, nil
}

// splitByPin partitions a statement's field list into one slice starting
// at "GATE" and one per "PIN" token found within it.
func splitByPin(fields []string) [][]string {
	var groups [][]string
	var cur []string
	for _, f := range fields {
		if strings.EqualFold(f, "PIN") && len(cur) > 0 {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, f)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

func parsePinLine(fields []string) (name string, tmpl pinTemplate, err error) {
	if len(fields) != 9 {
		return "", pinTemplate{}, fmt.Errorf("library: PIN record has %d fields, want 9: %w", len(fields), ErrMalformedRecord)
	}
	name = fields[1]
	tmpl.phase = parsePhase(fields[2])
	nums := make([]float64, 6)
	for i := 0; i < 6; i++ {
		v, perr := strconv.ParseFloat(fields[3+i], 64)
		if perr != nil {
			return "", pinTemplate{}, fmt.Errorf("library: PIN %q: field %d %q: %w", name, i, fields[3+i], ErrMalformedRecord)
		}
		nums[i] = v
	}
	tmpl.inputLoad, tmpl.maxLoad = nums[0], nums[1]
	tmpl.delayBlockRise, tmpl.delayFanoutRise = nums[2], nums[3]
	tmpl.delayBlockFall, tmpl.delayFanoutFall = nums[4], nums[5]
	return name, tmpl, nil
}

// extractFormulaIdentifiers returns the distinct operand names referenced
// by a formula, in first-appearance order, by splitting on the formula
// operator alphabet — used only to expand a "*" PIN record, before the
// gate's final pin list (and hence ParseFormula's longest-match
// alphabet) exists.
func extractFormulaIdentifiers(formula string) []string {
	isOperator := func(r rune) bool {
		switch r {
		case '!', '\'', '*', '&', '^', '+', '|', '(', ')', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	}
	var names []string
	seen := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(formula, isOperator) {
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		names = append(names, tok)
	}
	return names
}

// ingestGate expands a raw GATE statement's pin list (resolving a "*"
// wildcard if present), parses its formula, and materializes and adds
// the finished Gate to lib.
func ingestGate(lib *Library, rg *rawGate) error {
	var named []Pin
	var wildcard *pinTemplate
	namedSet := make(map[string]bool)

	for _, pl := range rg.pinLines {
		name, tmpl, err := parsePinLine(pl)
		if err != nil {
			return err
		}
		if name == "*" {
			t := tmpl
			wildcard = &t
			continue
		}
		named = append(named, pinFromTemplate(name, tmpl))
		namedSet[name] = true
	}

	pins := named
	formula := strings.TrimSpace(rg.formula)
	isConstantFormula := strings.EqualFold(formula, "CONST0") || strings.EqualFold(formula, "CONST1")
	if wildcard != nil && !isConstantFormula {
		for _, id := range extractFormulaIdentifiers(formula) {
			if !namedSet[id] {
				pins = append(pins, pinFromTemplate(id, *wildcard))
			}
		}
	}

	g := &Gate{
		Name:          rg.name,
		Pins:          pins,
		Area:          rg.area,
		Formula:       formula,
		OutputPinName: rg.outputPinName,
	}

	if len(g.Pins) > tt.MaxVars {
		return fmt.Errorf("library: gate %q: %w", g.Name, ErrTooManyInputs)
	}

	pinNames := make([]string, len(g.Pins))
	for i, p := range g.Pins {
		pinNames[i] = p.Name
	}
	e, err := ParseFormula(formula, pinNames)
	if err != nil {
		return fmt.Errorf("library: gate %q: %w", g.Name, err)
	}
	g.Expr = e

	materialize(g)

	if primary, ok := lib.byName[g.Name]; ok {
		if err := attachTwin(primary, g); err != nil {
			return fmt.Errorf("library: gate %q: %w", g.Name, err)
		}
		return nil
	}

	if err := lib.add(g); err != nil {
		return fmt.Errorf("library: gate %q: %w", g.Name, err)
	}
	return nil
}

// attachTwin links g, a second GATE record repeating primary's name, as
// primary's second output: a two-output physical cell declared as two
// consecutive records sharing Name but differing OutputPinName. g is
// never added to the library's own gate list — it is reachable only via
// primary.Twin or Library.ByNameAndOutput.
func attachTwin(primary, g *Gate) error {
	if g.OutputPinName == primary.OutputPinName {
		return ErrDuplicateGateName
	}
	if primary.Twin != nil {
		return ErrTooManyTwins
	}
	g.CellID = -1
	primary.Twin = g
	g.Twin = primary
	return nil
}

func pinFromTemplate(name string, t pinTemplate) Pin {
	return Pin{
		Name:             name,
		Phase:            t.phase,
		InputLoad:        t.inputLoad,
		MaxLoad:          t.maxLoad,
		DelayBlockRise:   t.delayBlockRise,
		DelayFanoutRise:  t.delayFanoutRise,
		DelayBlockFall:   t.delayBlockFall,
		DelayFanoutFall:  t.delayFanoutFall,
		DelayBlockMax:    maxFloat(t.delayBlockRise, t.delayBlockFall),
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
