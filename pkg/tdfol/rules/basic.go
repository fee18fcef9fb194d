package rules

import (
	"strconv"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// ModusPonens: from p → q and p, derive q.
var ModusPonens = Rule{
	Name:        "modus_ponens",
	Description: "From p → q and p, derive q",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		imp, ok := binary(args[0], ast.Implies)
		return ok && ast.Equal(imp.Left, args[1])
	},
	apply: func(args []ast.Formula) ast.Formula {
		imp, _ := binary(args[0], ast.Implies)
		return imp.Right
	},
}

// ModusTollens: from p → q and ¬q, derive ¬p.
var ModusTollens = Rule{
	Name:        "modus_tollens",
	Description: "From p → q and ¬q, derive ¬p",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		imp, ok := binary(args[0], ast.Implies)
		if !ok {
			return false
		}
		inner, ok := negated(args[1])
		return ok && ast.Equal(imp.Right, inner)
	},
	apply: func(args []ast.Formula) ast.Formula {
		imp, _ := binary(args[0], ast.Implies)
		return ast.Not(imp.Left)
	},
}

// ConjunctionIntroduction: from p and q, derive p ∧ q.
var ConjunctionIntroduction = Rule{
	Name:        "conjunction_introduction",
	Description: "From p and q, derive p ∧ q",
	Arity:       2,
	canApply:    func([]ast.Formula) bool { return true },
	apply: func(args []ast.Formula) ast.Formula {
		return and(args[0], args[1])
	},
}

// ConjunctionEliminationLeft: from p ∧ q, derive p.
var ConjunctionEliminationLeft = Rule{
	Name:        "conjunction_elimination_left",
	Description: "From p ∧ q, derive p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := binary(args[0], ast.And)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		b, _ := binary(args[0], ast.And)
		return b.Left
	},
}

// ConjunctionEliminationRight: from p ∧ q, derive q.
var ConjunctionEliminationRight = Rule{
	Name:        "conjunction_elimination_right",
	Description: "From p ∧ q, derive q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := binary(args[0], ast.And)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		b, _ := binary(args[0], ast.And)
		return b.Right
	},
}

// DisjunctionIntroduction: from p, derive p ∨ q for any q.
var DisjunctionIntroduction = Rule{
	Name:        "disjunction_introduction",
	Description: "From p, derive p ∨ q for any q",
	Arity:       2,
	canApply:    func([]ast.Formula) bool { return true },
	apply: func(args []ast.Formula) ast.Formula {
		return or(args[0], args[1])
	},
}

// DisjunctiveSyllogism: from p ∨ q and ¬p, derive q.
var DisjunctiveSyllogism = Rule{
	Name:        "disjunctive_syllogism",
	Description: "From p ∨ q and ¬p, derive q",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		dis, ok := binary(args[0], ast.Or)
		if !ok {
			return false
		}
		inner, ok := negated(args[1])
		return ok && ast.Equal(dis.Left, inner)
	},
	apply: func(args []ast.Formula) ast.Formula {
		dis, _ := binary(args[0], ast.Or)
		return dis.Right
	},
}

// HypotheticalSyllogism: from p → q and q → r, derive p → r.
var HypotheticalSyllogism = Rule{
	Name:        "hypothetical_syllogism",
	Description: "From p → q and q → r, derive p → r",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		first, ok := binary(args[0], ast.Implies)
		if !ok {
			return false
		}
		second, ok := binary(args[1], ast.Implies)
		return ok && ast.Equal(first.Right, second.Left)
	},
	apply: func(args []ast.Formula) ast.Formula {
		first, _ := binary(args[0], ast.Implies)
		second, _ := binary(args[1], ast.Implies)
		return implies(first.Left, second.Right)
	},
}

// Contraposition: from p → q, derive ¬q → ¬p.
var Contraposition = Rule{
	Name:        "contraposition",
	Description: "From p → q, derive ¬q → ¬p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := binary(args[0], ast.Implies)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		imp, _ := binary(args[0], ast.Implies)
		return implies(ast.Not(imp.Right), ast.Not(imp.Left))
	},
}

// DoubleNegationIntroduction: from p, derive ¬¬p.
var DoubleNegationIntroduction = Rule{
	Name:        "double_negation_introduction",
	Description: "From p, derive ¬¬p",
	Arity:       1,
	canApply:    func([]ast.Formula) bool { return true },
	apply: func(args []ast.Formula) ast.Formula {
		return ast.Not(ast.Not(args[0]))
	},
}

// DoubleNegationElimination: from ¬¬p, derive p.
var DoubleNegationElimination = Rule{
	Name:        "double_negation_elimination",
	Description: "From ¬¬p, derive p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		_, ok = negated(inner)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		core, _ := negated(inner)
		return core
	},
}

// DeMorganAnd: from ¬(p ∧ q), derive ¬p ∨ ¬q.
var DeMorganAnd = Rule{
	Name:        "de_morgan_and",
	Description: "From ¬(p ∧ q), derive ¬p ∨ ¬q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		_, ok = binary(inner, ast.And)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		b, _ := binary(inner, ast.And)
		return or(ast.Not(b.Left), ast.Not(b.Right))
	},
}

// DeMorganOr: from ¬(p ∨ q), derive ¬p ∧ ¬q.
var DeMorganOr = Rule{
	Name:        "de_morgan_or",
	Description: "From ¬(p ∨ q), derive ¬p ∧ ¬q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		_, ok = binary(inner, ast.Or)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		b, _ := binary(inner, ast.Or)
		return and(ast.Not(b.Left), ast.Not(b.Right))
	},
}

// UniversalInstantiation: from ∀x φ and a formula mentioning a constant c,
// derive φ[x:=c]. The witness premise supplies the instantiation constant;
// its first constant in sorted order is used, which keeps the rule
// deterministic.
var UniversalInstantiation = Rule{
	Name:        "universal_instantiation",
	Description: "From ∀x φ and a witness mentioning constant c, derive φ[x:=c]",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		_, ok := universal(args[0])
		return ok && len(ast.Constants(args[1])) > 0
	},
	apply: func(args []ast.Formula) ast.Formula {
		q, _ := universal(args[0])
		name := ast.Constants(args[1])[0]
		return ast.Substitute(q.Body, q.Variable.Name, &ast.Constant{Name: name})
	},
}

// ExistentialGeneralization: from φ mentioning a constant c, derive
// ∃x φ[c:=x].
var ExistentialGeneralization = Rule{
	Name:        "existential_generalization",
	Description: "From φ mentioning constant c, derive ∃x φ[c:=x]",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		return len(ast.Constants(args[0])) > 0
	},
	apply: func(args []ast.Formula) ast.Formula {
		name := ast.Constants(args[0])[0]
		v := freshVariable(args[0])
		body := ast.ReplaceConstant(args[0], name, v)
		return &ast.Quantified{Quantifier: ast.Exists, Variable: v, Body: body}
	},
}

// freshVariable picks a variable name not free in f.
func freshVariable(f ast.Formula) *ast.Variable {
	used := make(map[string]struct{})
	for _, name := range ast.FreeVars(f) {
		used[name] = struct{}{}
	}
	for _, candidate := range []string{"x", "y", "z"} {
		if _, taken := used[candidate]; !taken {
			return &ast.Variable{Name: candidate}
		}
	}
	for i := 1; ; i++ {
		candidate := "x" + strconv.Itoa(i)
		if _, taken := used[candidate]; !taken {
			return &ast.Variable{Name: candidate}
		}
	}
}

// Basic returns the 15 basic propositional and first-order rules.
func Basic() []Rule {
	return []Rule{
		ModusPonens,
		ModusTollens,
		ConjunctionIntroduction,
		ConjunctionEliminationLeft,
		ConjunctionEliminationRight,
		DisjunctionIntroduction,
		DisjunctiveSyllogism,
		HypotheticalSyllogism,
		Contraposition,
		DoubleNegationIntroduction,
		DoubleNegationElimination,
		DeMorganAnd,
		DeMorganOr,
		UniversalInstantiation,
		ExistentialGeneralization,
	}
}
