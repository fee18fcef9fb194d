// Package dcec bridges the DCEC S-expression syntax onto the TDFOL formula
// AST. Importing it for side effects registers the bridge:
//
//	import _ "github.com/cognicore/tdfol/pkg/tdfol/parser/dcec"
package dcec

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

func init() {
	parser.RegisterDCEC(Parse)
}

// Parse reads one DCEC S-expression and produces a Formula.
//
// Connective heads: and, or, implies, iff, not, forall, exists, obligation,
// permission, prohibition, always, eventually, next, until, since. Any
// other head is a predicate; lowercase leaf symbols are terms.
func Parse(text string) (ast.Formula, error) {
	node, rest, err := readSexp(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("dcec: trailing input after expression")
	}
	return toFormula(node, nil)
}

// sexp is either an atom (Sym != "") or a list.
type sexp struct {
	Sym  string
	List []sexp
}

func readSexp(s string) (sexp, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sexp{}, "", fmt.Errorf("dcec: unexpected end of input")
	}
	if s[0] == '(' {
		rest := s[1:]
		var items []sexp
		for {
			rest = strings.TrimSpace(rest)
			if rest == "" {
				return sexp{}, "", fmt.Errorf("dcec: missing ')'")
			}
			if rest[0] == ')' {
				return sexp{List: items}, rest[1:], nil
			}
			item, r, err := readSexp(rest)
			if err != nil {
				return sexp{}, "", err
			}
			items = append(items, item)
			rest = r
		}
	}
	if s[0] == ')' {
		return sexp{}, "", fmt.Errorf("dcec: unexpected ')'")
	}
	end := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')'
	})
	if end == -1 {
		end = len(s)
	}
	return sexp{Sym: s[:end]}, s[end:], nil
}

func toFormula(node sexp, bound []string) (ast.Formula, error) {
	if node.Sym != "" {
		return &ast.Predicate{Name: capitalize(node.Sym)}, nil
	}
	if len(node.List) == 0 {
		return nil, fmt.Errorf("dcec: empty expression")
	}
	head := node.List[0]
	if head.Sym == "" {
		return nil, fmt.Errorf("dcec: expression head must be a symbol")
	}
	args := node.List[1:]

	switch strings.ToLower(head.Sym) {
	case "and", "or", "implies", "if", "iff":
		if len(args) != 2 {
			return nil, fmt.Errorf("dcec: %s expects 2 arguments, got %d", head.Sym, len(args))
		}
		left, err := toFormula(args[0], bound)
		if err != nil {
			return nil, err
		}
		right, err := toFormula(args[1], bound)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: binaryOp(head.Sym), Left: left, Right: right}, nil
	case "not":
		return unaryArg(head.Sym, args, bound, ast.Not)
	case "forall", "exists":
		if len(args) != 2 || args[0].Sym == "" {
			return nil, fmt.Errorf("dcec: %s expects a variable and a body", head.Sym)
		}
		name := args[0].Sym
		body, err := toFormula(args[1], append(bound, name))
		if err != nil {
			return nil, err
		}
		q := ast.Forall
		if strings.EqualFold(head.Sym, "exists") {
			q = ast.Exists
		}
		return &ast.Quantified{Quantifier: q, Variable: &ast.Variable{Name: name}, Body: body}, nil
	case "obligation", "permission", "prohibition":
		return unaryArg(head.Sym, args, bound, func(f ast.Formula) ast.Formula {
			return &ast.Deontic{Op: deonticOp(head.Sym), Operand: f}
		})
	case "always", "eventually", "next":
		return unaryArg(head.Sym, args, bound, func(f ast.Formula) ast.Formula {
			return &ast.Temporal{Op: temporalOp(head.Sym), Operand: f}
		})
	case "until", "since":
		if len(args) != 2 {
			return nil, fmt.Errorf("dcec: %s expects 2 arguments, got %d", head.Sym, len(args))
		}
		left, err := toFormula(args[0], bound)
		if err != nil {
			return nil, err
		}
		right, err := toFormula(args[1], bound)
		if err != nil {
			return nil, err
		}
		op := ast.Until
		if strings.EqualFold(head.Sym, "since") {
			op = ast.Since
		}
		return &ast.BinaryTemporal{Op: op, Left: left, Right: right}, nil
	}

	// Predicate application: (Likes alice bob).
	terms := make([]ast.Term, len(args))
	for i, a := range args {
		if a.Sym == "" {
			return nil, fmt.Errorf("dcec: predicate argument must be a symbol")
		}
		terms[i] = toTerm(a.Sym, bound)
	}
	return &ast.Predicate{Name: capitalize(head.Sym), Args: terms}, nil
}

func unaryArg(name string, args []sexp, bound []string, wrap func(ast.Formula) ast.Formula) (ast.Formula, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("dcec: %s expects 1 argument, got %d", name, len(args))
	}
	inner, err := toFormula(args[0], bound)
	if err != nil {
		return nil, err
	}
	return wrap(inner), nil
}

func toTerm(sym string, bound []string) ast.Term {
	for _, b := range bound {
		if b == sym {
			return &ast.Variable{Name: sym}
		}
	}
	return &ast.Constant{Name: strings.ToLower(sym)}
}

func binaryOp(head string) ast.BinaryOp {
	switch strings.ToLower(head) {
	case "and":
		return ast.And
	case "or":
		return ast.Or
	case "iff":
		return ast.Iff
	}
	return ast.Implies
}

func deonticOp(head string) ast.DeonticOp {
	switch strings.ToLower(head) {
	case "permission":
		return ast.Permission
	case "prohibition":
		return ast.Prohibition
	}
	return ast.Obligation
}

func temporalOp(head string) ast.TemporalOp {
	switch strings.ToLower(head) {
	case "eventually":
		return ast.Eventually
	case "next":
		return ast.Next
	}
	return ast.Always
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
