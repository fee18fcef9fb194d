// Package parser turns TDFOL formula text into the ast data model.
//
// The grammar accepts the Unicode operators ∀ ∃ ∧ ∨ → ↔ ¬ □ ◊ together with
// ASCII fallbacks (forall, exists, &, |, ->, <->, ~, !, [], <>). The single
// letters O P F X U S G W R are reserved modal keywords: a user identifier
// must not begin with any of them. Predicate names start with an uppercase
// letter; terms (variables, constants, functions) start with a lowercase
// letter. Operator precedence, tightest to loosest:
//
//	NOT > UNTIL/SINCE > AND > OR > IMPLIES > IFF
//
// A quantifier's scope extends to the end of the enclosing formula or
// matching parenthesis.
package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// Parse converts formula text into a Formula, or returns a *SyntaxError.
func Parse(text string) (ast.Formula, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	f, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, &SyntaxError{Pos: p.peek().pos, Msg: fmt.Sprintf("unexpected trailing input %q", p.peek().text)}
	}
	return f, nil
}

// ParseSafe is Parse for call sites that must not propagate errors; the
// second return value reports whether parsing succeeded.
func ParseSafe(text string) (ast.Formula, bool) {
	f, err := Parse(text)
	if err != nil {
		return nil, false
	}
	return f, true
}

// MustParse parses or panics. Intended for tests and static rule tables.
func MustParse(text string) ast.Formula {
	f, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	toks  []token
	i     int
	bound []string // quantifier binding stack, innermost last
}

func (p *parser) isBound(name string) bool {
	for _, b := range p.bound {
		if b == name {
			return true
		}
	}
	return false
}

func (p *parser) peek() token    { return p.toks[p.i] }
func (p *parser) peekAt(k int) token {
	if p.i+k >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+k]
}
func (p *parser) next() token { t := p.toks[p.i]; p.i++; return t }

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return t, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %q", what, t.text)}
	}
	return p.next(), nil
}

// parseFormula parses at the loosest precedence level (IFF).
func (p *parser) parseFormula() (ast.Formula, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokIff {
		p.next()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.Iff, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseImplies() (ast.Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokImplies {
		p.next()
		// Implication is right-associative.
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: ast.Implies, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseOr() (ast.Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.Or, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Formula, error) {
	left, err := p.parseTemporalInfix()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseTemporalInfix()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.And, Left: left, Right: right}
	}
	return left, nil
}

// parseTemporalInfix handles the infix temporal keywords U, S, W, R.
// W and R desugar onto the until fragment:
//
//	l W r  ≡  (l U r) ∨ □l
//	l R r  ≡  ¬(¬l U ¬r)
func (p *parser) parseTemporalInfix() (ast.Formula, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokReserved && isInfixTemporal(p.peek().text) {
		op := p.next().text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		switch op {
		case "U":
			left = &ast.BinaryTemporal{Op: ast.Until, Left: left, Right: right}
		case "S":
			left = &ast.BinaryTemporal{Op: ast.Since, Left: left, Right: right}
		case "W":
			left = &ast.Binary{
				Op:    ast.Or,
				Left:  &ast.BinaryTemporal{Op: ast.Until, Left: left, Right: right},
				Right: &ast.Temporal{Op: ast.Always, Operand: left},
			}
		case "R":
			left = ast.Not(&ast.BinaryTemporal{
				Op:    ast.Until,
				Left:  ast.Not(left),
				Right: ast.Not(right),
			})
		}
	}
	return left, nil
}

func isInfixTemporal(text string) bool {
	return text == "U" || text == "S" || text == "W" || text == "R"
}

func (p *parser) parseUnary() (ast.Formula, error) {
	t := p.peek()
	switch t.kind {
	case tokNot:
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Not(inner), nil
	case tokBox:
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Temporal{Op: ast.Always, Operand: inner}, nil
	case tokDiamond:
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Temporal{Op: ast.Eventually, Operand: inner}, nil
	case tokForall, tokExists:
		return p.parseQuantified()
	case tokLParen:
		p.next()
		inner, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		return p.parseAtom()
	case tokReserved:
		return p.parseReserved()
	}
	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected formula, found %q", t.text)}
}

func (p *parser) parseQuantified() (ast.Formula, error) {
	q := ast.Forall
	if p.next().kind == tokExists {
		q = ast.Exists
	}
	name, err := p.expect(tokIdent, "bound variable")
	if err != nil {
		return nil, err
	}
	if !startsLower(name.text) {
		return nil, &SyntaxError{Pos: name.pos, Msg: fmt.Sprintf("bound variable %q must start with a lowercase letter", name.text)}
	}
	v := &ast.Variable{Name: name.text}
	if p.peek().kind == tokColon {
		p.next()
		sort, err := p.expect(tokIdent, "sort name")
		if err != nil {
			return nil, err
		}
		v.Sort = sort.text
	}
	// Quantifier scope runs to the end of the enclosing formula.
	p.bound = append(p.bound, v.Name)
	body, err := p.parseFormula()
	p.bound = p.bound[:len(p.bound)-1]
	if err != nil {
		return nil, err
	}
	return &ast.Quantified{Quantifier: q, Variable: v, Body: body}, nil
}

// parseReserved resolves a standalone modal keyword letter by position:
// O/P/F followed by a parenthesized formula are deontic operators, X and G
// followed by a formula are temporal prefixes, and anything else is an
// atomic predicate spelled with the bare letter.
func (p *parser) parseReserved() (ast.Formula, error) {
	t := p.next()
	switch t.text {
	case "O", "P", "F":
		if p.peek().kind == tokLParen && p.startsFormula(p.peekAt(1)) {
			p.next()
			inner, err := p.parseFormula()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen, "')'"); err != nil {
				return nil, err
			}
			return &ast.Deontic{Op: deonticOp(t.text), Operand: inner}, nil
		}
		return p.parseAtomNamed(t)
	case "X", "G":
		if p.startsFormula(p.peek()) {
			inner, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			op := ast.Next
			if t.text == "G" {
				op = ast.Always
			}
			return &ast.Temporal{Op: op, Operand: inner}, nil
		}
		return p.parseAtomNamed(t)
	}
	// U, S, W, and R only bind infix; in formula position the bare letter
	// is an atomic predicate, like any other single uppercase name.
	return p.parseAtomNamed(t)
}

// startsFormula reports whether a token can begin a formula. Lowercase
// identifiers cannot: they begin terms, which is what disambiguates the
// predicate P(a) from the permission P(Q(a)).
func (p *parser) startsFormula(t token) bool {
	switch t.kind {
	case tokNot, tokBox, tokDiamond, tokForall, tokExists, tokLParen, tokReserved:
		return true
	case tokIdent:
		return !startsLower(t.text)
	}
	return false
}

func (p *parser) parseAtom() (ast.Formula, error) {
	name := p.next()
	if startsLower(name.text) {
		return nil, &SyntaxError{Pos: name.pos, Msg: fmt.Sprintf("predicate name %q must start with an uppercase letter", name.text)}
	}
	return p.parseAtomNamed(name)
}

func (p *parser) parseAtomNamed(name token) (ast.Formula, error) {
	if p.peek().kind != tokLParen {
		return &ast.Predicate{Name: name.text}, nil
	}
	p.next()
	var args []ast.Term
	for {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return &ast.Predicate{Name: name.text, Args: args}, nil
}

func (p *parser) parseTerm() (ast.Term, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected term, found %q", t.text)}
	}
	if !startsLower(t.text) {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("term %q must start with a lowercase letter", t.text)}
	}
	p.next()
	if p.peek().kind == tokLParen {
		p.next()
		var args []ast.Term
		for {
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			break
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return &ast.FunctionApplication{Name: t.text, Args: args}, nil
	}
	if p.peek().kind == tokColon {
		p.next()
		sort, err := p.expect(tokIdent, "sort name")
		if err != nil {
			return nil, err
		}
		return &ast.Variable{Name: t.text, Sort: sort.text}, nil
	}
	// Names bound by an enclosing quantifier are variables. Outside any
	// binding, the tail-of-alphabet single letters read as variables and
	// everything else as constants, matching the usual FOL text convention.
	if p.isBound(t.text) {
		return &ast.Variable{Name: t.text}, nil
	}
	if utf8.RuneCountInString(t.text) == 1 && isConventionalVariable(t.text) {
		return &ast.Variable{Name: t.text}, nil
	}
	return &ast.Constant{Name: t.text}, nil
}

// isConventionalVariable treats the tail-of-alphabet letters as variables.
func isConventionalVariable(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r >= 'u' && r <= 'z'
}

func deonticOp(letter string) ast.DeonticOp {
	switch letter {
	case "P":
		return ast.Permission
	case "F":
		return ast.Prohibition
	}
	return ast.Obligation
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
