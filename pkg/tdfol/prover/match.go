package prover

import "github.com/cognicore/tdfol/pkg/tdfol/ast"

// stripUniversals removes leading universal quantifiers, returning the
// matrix and the bound variable names.
func stripUniversals(f ast.Formula) (ast.Formula, map[string]struct{}) {
	vars := make(map[string]struct{})
	for {
		q, ok := f.(*ast.Quantified)
		if !ok || q.Quantifier != ast.Forall {
			return f, vars
		}
		vars[q.Variable.Name] = struct{}{}
		f = q.Body
	}
}

// matchFormula matches a pattern (whose listed variables are free to bind)
// against a concrete target, extending bind on success. One-way matching
// only: target variables are treated as constants.
func matchFormula(pattern, target ast.Formula, vars map[string]struct{}, bind map[string]ast.Term) bool {
	switch p := pattern.(type) {
	case *ast.Predicate:
		t, ok := target.(*ast.Predicate)
		if !ok || t.Name != p.Name || len(t.Args) != len(p.Args) {
			return false
		}
		for i := range p.Args {
			if !matchTerm(p.Args[i], t.Args[i], vars, bind) {
				return false
			}
		}
		return true
	case *ast.Unary:
		t, ok := target.(*ast.Unary)
		return ok && matchFormula(p.Operand, t.Operand, vars, bind)
	case *ast.Binary:
		t, ok := target.(*ast.Binary)
		return ok && t.Op == p.Op &&
			matchFormula(p.Left, t.Left, vars, bind) &&
			matchFormula(p.Right, t.Right, vars, bind)
	case *ast.Deontic:
		t, ok := target.(*ast.Deontic)
		return ok && t.Op == p.Op && matchFormula(p.Operand, t.Operand, vars, bind)
	case *ast.Temporal:
		t, ok := target.(*ast.Temporal)
		return ok && t.Op == p.Op && matchFormula(p.Operand, t.Operand, vars, bind)
	case *ast.BinaryTemporal:
		t, ok := target.(*ast.BinaryTemporal)
		return ok && t.Op == p.Op &&
			matchFormula(p.Left, t.Left, vars, bind) &&
			matchFormula(p.Right, t.Right, vars, bind)
	case *ast.Quantified:
		t, ok := target.(*ast.Quantified)
		return ok && t.Quantifier == p.Quantifier &&
			t.Variable.Name == p.Variable.Name &&
			matchFormula(p.Body, t.Body, vars, bind)
	}
	return false
}

func matchTerm(pattern, target ast.Term, vars map[string]struct{}, bind map[string]ast.Term) bool {
	switch p := pattern.(type) {
	case *ast.Variable:
		if _, free := vars[p.Name]; free {
			if bound, ok := bind[p.Name]; ok {
				return bound.String() == target.String()
			}
			bind[p.Name] = target
			return true
		}
		t, ok := target.(*ast.Variable)
		return ok && t.Name == p.Name
	case *ast.Constant:
		t, ok := target.(*ast.Constant)
		return ok && t.Name == p.Name
	case *ast.FunctionApplication:
		t, ok := target.(*ast.FunctionApplication)
		if !ok || t.Name != p.Name || len(t.Args) != len(p.Args) {
			return false
		}
		for i := range p.Args {
			if !matchTerm(p.Args[i], t.Args[i], vars, bind) {
				return false
			}
		}
		return true
	}
	return false
}

// applyBindings substitutes every bound variable into f.
func applyBindings(f ast.Formula, bind map[string]ast.Term) ast.Formula {
	for name, term := range bind {
		f = ast.Substitute(f, name, term)
	}
	return f
}
