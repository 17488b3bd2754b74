// SPDX-License-Identifier: MIT
package library

import (
	"fmt"
	"strings"

	"github.com/go-logicsynth/dcewin/expr"
)

// ParseFormula parses a gate's output formula over the given
// ordered pin names, returning the corresponding expression with variable
// index i bound to pinNames[i]. Precedence, highest to lowest: postfix '
// and prefix ! (NOT), */& (AND, also implied by bare juxtaposition),
// ^ (XOR), +/| (OR); parentheses override. A zero-pin gate (a constant
// cell) takes the formula CONST0 or CONST1 (case-insensitive) in place of
// an expression.
func ParseFormula(formula string, pinNames []string) (*expr.Expr, error) {
	if len(pinNames) == 0 {
		switch strings.ToUpper(strings.TrimSpace(formula)) {
		case "CONST0":
			return expr.Const0(0), nil
		case "CONST1":
			return expr.Const1(0), nil
		default:
			return nil, fmt.Errorf("library: constant gate formula %q: %w", formula, ErrMalformedRecord)
		}
	}

	tokens, err := lexFormula(formula, pinNames)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("library: empty formula: %w", ErrMissingOperand)
	}

	pinIndex := make(map[string]int, len(pinNames))
	for i, name := range pinNames {
		pinIndex[name] = i
	}
	p := &formulaParser{
		tokens:   tokens,
		nVars:    len(pinNames),
		pinIndex: pinIndex,
		used:     make(map[string]bool, len(pinNames)),
		formula:  formula,
	}

	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("library: formula %q: trailing tokens: %w", formula, ErrMalformedRecord)
	}
	if err := verifyPinSet(p.used, pinNames); err != nil {
		return nil, fmt.Errorf("library: formula %q: %w", formula, err)
	}
	return e, nil
}

// formulaParser is a recursive-descent precedence parser: at each
// precedence level it realizes the same binary-left-associative grouping
// a textbook shunting-yard run over the same operator table would, by
// climbing from the lowest-precedence OR level down to primaries.
type formulaParser struct {
	tokens   []token
	pos      int
	nVars    int
	pinIndex map[string]int
	used     map[string]bool
	formula  string
}

func (p *formulaParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *formulaParser) advance() token {
	tk := p.tokens[p.pos]
	p.pos++
	return tk
}

func (p *formulaParser) parseOr() (*expr.Expr, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for {
		tk, ok := p.peek()
		if !ok || tk.kind != tokOr {
			return left, nil
		}
		p.advance()
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = expr.Or(left, right)
	}
}

func (p *formulaParser) parseXor() (*expr.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tk, ok := p.peek()
		if !ok || tk.kind != tokXor {
			return left, nil
		}
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = expr.Xor(left, right)
	}
}

func (p *formulaParser) parseAnd() (*expr.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tk, ok := p.peek()
		if !ok || tk.kind != tokAnd {
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = expr.And(left, right, false, false)
	}
}

func (p *formulaParser) parseUnary() (*expr.Expr, error) {
	tk, ok := p.peek()
	if ok && tk.kind == tokNot {
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Not(e), nil
	}
	return p.parsePostfix()
}

func (p *formulaParser) parsePostfix() (*expr.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tk, ok := p.peek()
		if !ok || tk.kind != tokPostNot {
			return e, nil
		}
		p.advance()
		e = expr.Not(e)
	}
}

func (p *formulaParser) parsePrimary() (*expr.Expr, error) {
	tk, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("library: formula %q: %w", p.formula, ErrMissingOperand)
	}
	switch tk.kind {
	case tokLParen:
		p.advance()
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		close, ok := p.peek()
		if !ok || close.kind != tokRParen {
			return nil, fmt.Errorf("library: formula %q: %w", p.formula, ErrUnmatchedParen)
		}
		p.advance()
		return e, nil
	case tokIdent:
		p.advance()
		idx, ok := p.pinIndex[tk.text]
		if !ok {
			return nil, fmt.Errorf("library: formula %q: identifier %q: %w", p.formula, tk.text, ErrUnknownIdentifier)
		}
		p.used[tk.text] = true
		return expr.Var(p.nVars, idx), nil
	case tokRParen:
		return nil, fmt.Errorf("library: formula %q: %w", p.formula, ErrUnmatchedParen)
	default:
		return nil, fmt.Errorf("library: formula %q: %w", p.formula, ErrMissingOperand)
	}
}

// verifyPinSet checks that every declared pin name was referenced at
// least once by the formula.
func verifyPinSet(used map[string]bool, pinNames []string) error {
	for _, name := range pinNames {
		if !used[name] {
			return ErrPinSetMismatch
		}
	}
	return nil
}
