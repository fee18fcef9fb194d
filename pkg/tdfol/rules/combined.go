package rules

import "github.com/cognicore/tdfol/pkg/tdfol/ast"

// AlwaysObligationDistribution: from □O(p → q) and □O(p), derive □O(q).
var AlwaysObligationDistribution = Rule{
	Name:        "always_obligation_distribution",
	Description: "From □O(p → q) and □O(p), derive □O(q)",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		boxImp, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		obImp, ok := deontic(boxImp.Operand, ast.Obligation)
		if !ok {
			return false
		}
		imp, ok := binary(obImp.Operand, ast.Implies)
		if !ok {
			return false
		}
		boxP, ok := temporal(args[1], ast.Always)
		if !ok {
			return false
		}
		obP, ok := deontic(boxP.Operand, ast.Obligation)
		return ok && ast.Equal(imp.Left, obP.Operand)
	},
	apply: func(args []ast.Formula) ast.Formula {
		boxImp, _ := temporal(args[0], ast.Always)
		obImp, _ := deontic(boxImp.Operand, ast.Obligation)
		imp, _ := binary(obImp.Operand, ast.Implies)
		return always(obligation(imp.Right))
	},
}

// AlwaysPermission: from □P(p), derive P(p). A permanent permission holds
// now.
var AlwaysPermission = Rule{
	Name:        "always_permission",
	Description: "From □P(p), derive P(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		_, ok = deontic(box.Operand, ast.Permission)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		return box.Operand
	},
}

// ContraryToDuty: from O(p), ¬p, and ¬p → O(q), derive O(q). The violation
// of a primary obligation activates its repair obligation.
var ContraryToDuty = Rule{
	Name:        "contrary_to_duty",
	Description: "From O(p), ¬p, and ¬p → O(q), derive O(q)",
	Arity:       3,
	canApply: func(args []ast.Formula) bool {
		ob, ok := deontic(args[0], ast.Obligation)
		if !ok {
			return false
		}
		violated, ok := negated(args[1])
		if !ok || !ast.Equal(violated, ob.Operand) {
			return false
		}
		imp, ok := binary(args[2], ast.Implies)
		if !ok || !ast.Equal(imp.Left, args[1]) {
			return false
		}
		_, ok = deontic(imp.Right, ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		imp, _ := binary(args[2], ast.Implies)
		return imp.Right
	},
}

// DeonticTemporalIntroduction: from O(p), derive □O(p). Reads obligations
// as standing norms.
var DeonticTemporalIntroduction = Rule{
	Name:        "deontic_temporal_introduction",
	Description: "From O(p), derive □O(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := deontic(args[0], ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		return always(args[0])
	},
}

// TemporalObligationPersistence: from □O(p), derive XO(p).
var TemporalObligationPersistence = Rule{
	Name:        "temporal_obligation_persistence",
	Description: "From □O(p), derive XO(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		_, ok = deontic(box.Operand, ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		return next(box.Operand)
	},
}

// FutureTemporalObligationPersistence: from □O(p), derive O(Xp). A standing
// obligation obliges the next-state outcome as well.
var FutureTemporalObligationPersistence = Rule{
	Name:        "future_temporal_obligation_persistence",
	Description: "From □O(p), derive O(Xp)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		_, ok = deontic(box.Operand, ast.Obligation)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		ob, _ := deontic(box.Operand, ast.Obligation)
		return obligation(next(ob.Operand))
	},
}

// UntilObligation: from O(p U q), derive O(q ∨ (p ∧ X(p U q))). Pushes one
// unfolding step under the obligation.
var UntilObligation = Rule{
	Name:        "until_obligation",
	Description: "From O(p U q), derive O(q ∨ (p ∧ X(p U q)))",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		ob, ok := deontic(args[0], ast.Obligation)
		if !ok {
			return false
		}
		_, ok = binaryTemporal(ob.Operand, ast.Until)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ob, _ := deontic(args[0], ast.Obligation)
		u, _ := binaryTemporal(ob.Operand, ast.Until)
		return obligation(or(u.Right, and(u.Left, next(ob.Operand))))
	},
}

// EventuallyObligationCommute: from O(◊p), derive ◊O(p).
var EventuallyObligationCommute = Rule{
	Name:        "eventually_obligation_commute",
	Description: "From O(◊p), derive ◊O(p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		ob, ok := deontic(args[0], ast.Obligation)
		if !ok {
			return false
		}
		_, ok = temporal(ob.Operand, ast.Eventually)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ob, _ := deontic(args[0], ast.Obligation)
		ev, _ := temporal(ob.Operand, ast.Eventually)
		return eventually(obligation(ev.Operand))
	},
}

// AlwaysProhibition: from □F(p), derive F(◊p). What is permanently
// forbidden may never eventually happen.
var AlwaysProhibition = Rule{
	Name:        "always_prohibition",
	Description: "From □F(p), derive F(◊p)",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		_, ok = deontic(box.Operand, ast.Prohibition)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		pro, _ := deontic(box.Operand, ast.Prohibition)
		return prohibition(eventually(pro.Operand))
	},
}

// Combined returns the 9 combined temporal-deontic rules.
func Combined() []Rule {
	return []Rule{
		AlwaysObligationDistribution,
		AlwaysPermission,
		ContraryToDuty,
		DeonticTemporalIntroduction,
		TemporalObligationPersistence,
		FutureTemporalObligationPersistence,
		UntilObligation,
		EventuallyObligationCommute,
		AlwaysProhibition,
	}
}
