package rules

import "github.com/cognicore/tdfol/pkg/tdfol/ast"

// DeonticD: from O(p), derive P(p). Seriality: what is obligatory is
// permitted.
var DeonticD = Rule{
	Name:        "deontic_d_axiom",
	Description: "From O(p), derive P(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := deontic(args[0], ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ob, _ := deontic(args[0], ast.Obligation)
		return permission(ob.Operand)
	},
}

// DeonticK: from O(p → q) and O(p), derive O(q).
var DeonticK = Rule{
	Name:        "deontic_k_axiom",
	Description: "From O(p → q) and O(p), derive O(q)",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		obImp, ok := deontic(args[0], ast.Obligation)
		if !ok {
			return false
		}
		imp, ok := binary(obImp.Operand, ast.Implies)
		if !ok {
			return false
		}
		obP, ok := deontic(args[1], ast.Obligation)
		return ok && ast.Equal(imp.Left, obP.Operand)
	},
	apply: func(args []ast.Formula) ast.Formula {
		obImp, _ := deontic(args[0], ast.Obligation)
		imp, _ := binary(obImp.Operand, ast.Implies)
		return obligation(imp.Right)
	},
}

// DeonticNecessitation: from theorem p, derive O(p).
var DeonticNecessitation = Rule{
	Name:        "deontic_necessitation",
	Description: "From theorem p, derive O(p)",
	Arity:       1,
	canApply:    func([]ast.Formula) bool { return true },
	apply: func(args []ast.Formula) ast.Formula {
		return obligation(args[0])
	},
}

// DeonticDetachment: from O(p → q) and p, derive O(q). Factual detachment.
var DeonticDetachment = Rule{
	Name:        "deontic_detachment",
	Description: "From O(p → q) and p, derive O(q)",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		obImp, ok := deontic(args[0], ast.Obligation)
		if !ok {
			return false
		}
		imp, ok := binary(obImp.Operand, ast.Implies)
		return ok && ast.Equal(imp.Left, args[1])
	},
	apply: func(args []ast.Formula) ast.Formula {
		obImp, _ := deontic(args[0], ast.Obligation)
		imp, _ := binary(obImp.Operand, ast.Implies)
		return obligation(imp.Right)
	},
}

// PermissionIntroduction: from ¬O(¬p), derive P(p). Permission as the dual
// of obligation.
var PermissionIntroduction = Rule{
	Name:        "permission_introduction",
	Description: "From ¬O(¬p), derive P(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		ob, ok := deontic(inner, ast.Obligation)
		if !ok {
			return false
		}
		_, ok = negated(ob.Operand)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		ob, _ := deontic(inner, ast.Obligation)
		core, _ := negated(ob.Operand)
		return permission(core)
	},
}

// PermissionStrengthening: from P(p ∧ q), derive P(p).
var PermissionStrengthening = Rule{
	Name:        "permission_strengthening",
	Description: "From P(p ∧ q), derive P(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		perm, ok := deontic(args[0], ast.Permission)
		if !ok {
			return false
		}
		_, ok = binary(perm.Operand, ast.And)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		perm, _ := deontic(args[0], ast.Permission)
		conj, _ := binary(perm.Operand, ast.And)
		return permission(conj.Left)
	},
}

// PermissionNegation: from ¬P(p), derive O(¬p).
var PermissionNegation = Rule{
	Name:        "permission_negation",
	Description: "From ¬P(p), derive O(¬p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		_, ok = deontic(inner, ast.Permission)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		perm, _ := deontic(inner, ast.Permission)
		return obligation(ast.Not(perm.Operand))
	},
}

// PermissionTemporalWeakening: from P(□p), derive P(p).
var PermissionTemporalWeakening = Rule{
	Name:        "permission_temporal_weakening",
	Description: "From P(□p), derive P(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		perm, ok := deontic(args[0], ast.Permission)
		if !ok {
			return false
		}
		_, ok = temporal(perm.Operand, ast.Always)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		perm, _ := deontic(args[0], ast.Permission)
		box, _ := temporal(perm.Operand, ast.Always)
		return permission(box.Operand)
	},
}

// PermissionDistribution: from P(p ∨ q), derive P(p) ∨ P(q).
var PermissionDistribution = Rule{
	Name:        "permission_distribution",
	Description: "From P(p ∨ q), derive P(p) ∨ P(q)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		perm, ok := deontic(args[0], ast.Permission)
		if !ok {
			return false
		}
		_, ok = binary(perm.Operand, ast.Or)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		perm, _ := deontic(args[0], ast.Permission)
		dis, _ := binary(perm.Operand, ast.Or)
		return or(permission(dis.Left), permission(dis.Right))
	},
}

// ProhibitionFromObligation: from O(¬p), derive F(p).
var ProhibitionFromObligation = Rule{
	Name:        "prohibition_from_obligation",
	Description: "From O(¬p), derive F(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		ob, ok := deontic(args[0], ast.Obligation)
		if !ok {
			return false
		}
		_, ok = negated(ob.Operand)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ob, _ := deontic(args[0], ast.Obligation)
		core, _ := negated(ob.Operand)
		return prohibition(core)
	},
}

// ProhibitionEquivalence: from F(p), derive ¬P(p).
var ProhibitionEquivalence = Rule{
	Name:        "prohibition_equivalence",
	Description: "From F(p), derive ¬P(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := deontic(args[0], ast.Prohibition)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		pro, _ := deontic(args[0], ast.Prohibition)
		return ast.Not(permission(pro.Operand))
	},
}

// ProhibitionWeakening: from F(p ∨ q), derive F(p). If the disjunction is
// forbidden, each disjunct is.
var ProhibitionWeakening = Rule{
	Name:        "prohibition_weakening",
	Description: "From F(p ∨ q), derive F(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		pro, ok := deontic(args[0], ast.Prohibition)
		if !ok {
			return false
		}
		_, ok = binary(pro.Operand, ast.Or)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		pro, _ := deontic(args[0], ast.Prohibition)
		dis, _ := binary(pro.Operand, ast.Or)
		return prohibition(dis.Left)
	},
}

// ObligationWeakening: from O(p ∧ q), derive O(p).
var ObligationWeakening = Rule{
	Name:        "obligation_weakening",
	Description: "From O(p ∧ q), derive O(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		ob, ok := deontic(args[0], ast.Obligation)
		if !ok {
			return false
		}
		_, ok = binary(ob.Operand, ast.And)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ob, _ := deontic(args[0], ast.Obligation)
		conj, _ := binary(ob.Operand, ast.And)
		return obligation(conj.Left)
	},
}

// ObligationConjunction: from O(p) and O(q), derive O(p ∧ q).
var ObligationConjunction = Rule{
	Name:        "obligation_conjunction",
	Description: "From O(p) and O(q), derive O(p ∧ q)",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		if _, ok := deontic(args[0], ast.Obligation); !ok {
			return false
		}
		_, ok := deontic(args[1], ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		obP, _ := deontic(args[0], ast.Obligation)
		obQ, _ := deontic(args[1], ast.Obligation)
		return obligation(and(obP.Operand, obQ.Operand))
	},
}

// ObligationConsistency: from O(p), derive ¬O(¬p).
var ObligationConsistency = Rule{
	Name:        "obligation_consistency",
	Description: "From O(p), derive ¬O(¬p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := deontic(args[0], ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ob, _ := deontic(args[0], ast.Obligation)
		return ast.Not(obligation(ast.Not(ob.Operand)))
	},
}

// ObligationEventually: from O(p), derive O(◊p). An obligation implies the
// obligation of its eventual fulfilment.
var ObligationEventually = Rule{
	Name:        "obligation_eventually",
	Description: "From O(p), derive O(◊p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := deontic(args[0], ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ob, _ := deontic(args[0], ast.Obligation)
		return obligation(eventually(ob.Operand))
	},
}

// Deontic returns the 16 deontic rules.
func Deontic() []Rule {
	return []Rule{
		DeonticD,
		DeonticK,
		DeonticNecessitation,
		DeonticDetachment,
		PermissionIntroduction,
		PermissionStrengthening,
		PermissionNegation,
		PermissionTemporalWeakening,
		PermissionDistribution,
		ProhibitionFromObligation,
		ProhibitionEquivalence,
		ProhibitionWeakening,
		ObligationWeakening,
		ObligationConjunction,
		ObligationConsistency,
		ObligationEventually,
	}
}
