package convert

import (
	"fmt"
	"strings"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// ToPrologClauses renders a formula as Prolog clauses. Only the Horn
// fragment is accepted: facts (atomic predicates), rules (implications
// whose antecedent is a conjunction of atoms and whose consequent is one
// atom), and universally quantified versions of either. Anything else
// yields ErrNotHorn.
func ToPrologClauses(f ast.Formula) ([]string, error) {
	// Quantifier prefixes only bind variables; Prolog variables are
	// implicitly universal.
	for {
		q, ok := f.(*ast.Quantified)
		if !ok {
			break
		}
		if q.Quantifier != ast.Forall {
			return nil, ErrNotHorn
		}
		f = q.Body
	}

	switch n := f.(type) {
	case *ast.Predicate:
		atom, err := prologAtom(n)
		if err != nil {
			return nil, err
		}
		return []string{atom + "."}, nil
	case *ast.Binary:
		switch n.Op {
		case ast.Implies:
			head, ok := innerAtom(n.Right)
			if !ok {
				return nil, ErrNotHorn
			}
			body, err := prologBody(n.Left)
			if err != nil {
				return nil, err
			}
			headAtom, err := prologAtom(head)
			if err != nil {
				return nil, err
			}
			return []string{fmt.Sprintf("%s :- %s.", headAtom, strings.Join(body, ", "))}, nil
		case ast.And:
			left, err := ToPrologClauses(n.Left)
			if err != nil {
				return nil, err
			}
			right, err := ToPrologClauses(n.Right)
			if err != nil {
				return nil, err
			}
			return append(left, right...), nil
		}
	}
	return nil, ErrNotHorn
}

func innerAtom(f ast.Formula) (*ast.Predicate, bool) {
	for {
		q, ok := f.(*ast.Quantified)
		if !ok || q.Quantifier != ast.Forall {
			break
		}
		f = q.Body
	}
	p, ok := f.(*ast.Predicate)
	return p, ok
}

func prologBody(f ast.Formula) ([]string, error) {
	if b, ok := f.(*ast.Binary); ok && b.Op == ast.And {
		left, err := prologBody(b.Left)
		if err != nil {
			return nil, err
		}
		right, err := prologBody(b.Right)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	}
	p, ok := f.(*ast.Predicate)
	if !ok {
		return nil, ErrNotHorn
	}
	atom, err := prologAtom(p)
	if err != nil {
		return nil, err
	}
	return []string{atom}, nil
}

func prologAtom(p *ast.Predicate) (string, error) {
	name := tptpLower(p.Name)
	if len(p.Args) == 0 {
		return name, nil
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		s, err := prologTerm(a)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")), nil
}

func prologTerm(t ast.Term) (string, error) {
	switch x := t.(type) {
	case *ast.Variable:
		return tptpUpper(x.Name), nil
	case *ast.Constant:
		return tptpLower(x.Name), nil
	case *ast.FunctionApplication:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			s, err := prologTerm(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("%s(%s)", tptpLower(x.Name), strings.Join(args, ", ")), nil
	}
	return "", ErrNotHorn
}
