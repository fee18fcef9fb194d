package rules

import "github.com/cognicore/tdfol/pkg/tdfol/ast"

// TemporalK: from □(p → q) and □p, derive □q. The K distribution axiom.
var TemporalK = Rule{
	Name:        "temporal_k_axiom",
	Description: "From □(p → q) and □p, derive □q",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		imp, ok := binary(box.Operand, ast.Implies)
		if !ok {
			return false
		}
		boxP, ok := temporal(args[1], ast.Always)
		return ok && ast.Equal(imp.Left, boxP.Operand)
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		imp, _ := binary(box.Operand, ast.Implies)
		return always(imp.Right)
	},
}

// TemporalT: from □p, derive p. Reflexivity.
var TemporalT = Rule{
	Name:        "temporal_t_axiom",
	Description: "From □p, derive p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := temporal(args[0], ast.Always)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		return box.Operand
	},
}

// TemporalS4: from □p, derive □□p. Transitivity.
var TemporalS4 = Rule{
	Name:        "temporal_s4_axiom",
	Description: "From □p, derive □□p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := temporal(args[0], ast.Always)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		return always(args[0])
	},
}

// TemporalS5: from ◊p, derive □◊p. Euclidean accessibility.
var TemporalS5 = Rule{
	Name:        "temporal_s5_axiom",
	Description: "From ◊p, derive □◊p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := temporal(args[0], ast.Eventually)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		return always(args[0])
	},
}

// AlwaysNecessitation: from a theorem p, derive □p. Only sound when the
// premise is itself derived, not merely contingent.
var AlwaysNecessitation = Rule{
	Name:        "always_necessitation",
	Description: "From theorem p, derive □p",
	Arity:       1,
	canApply:    func([]ast.Formula) bool { return true },
	apply: func(args []ast.Formula) ast.Formula {
		return always(args[0])
	},
}

// AlwaysDistribution: from □(p ∧ q), derive □p ∧ □q.
var AlwaysDistribution = Rule{
	Name:        "always_distribution",
	Description: "From □(p ∧ q), derive □p ∧ □q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		_, ok = binary(box.Operand, ast.And)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		conj, _ := binary(box.Operand, ast.And)
		return and(always(conj.Left), always(conj.Right))
	},
}

// AlwaysImplicationDistribution: from □(p → q), derive □p → □q.
var AlwaysImplicationDistribution = Rule{
	Name:        "always_implication_distribution",
	Description: "From □(p → q), derive □p → □q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[0], ast.Always)
		if !ok {
			return false
		}
		_, ok = binary(box.Operand, ast.Implies)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		box, _ := temporal(args[0], ast.Always)
		imp, _ := binary(box.Operand, ast.Implies)
		return implies(always(imp.Left), always(imp.Right))
	},
}

// EventuallyIntroduction: from p, derive ◊p.
var EventuallyIntroduction = Rule{
	Name:        "eventually_introduction",
	Description: "From p, derive ◊p",
	Arity:       1,
	canApply:    func([]ast.Formula) bool { return true },
	apply: func(args []ast.Formula) ast.Formula {
		return eventually(args[0])
	},
}

// EventuallyExpansion: from ◊p, derive p ∨ X◊p. One step of the fixpoint
// characterization.
var EventuallyExpansion = Rule{
	Name:        "eventually_expansion",
	Description: "From ◊p, derive p ∨ X◊p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := temporal(args[0], ast.Eventually)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ev, _ := temporal(args[0], ast.Eventually)
		return or(ev.Operand, next(args[0]))
	},
}

// EventuallyAggregation: from ◊(p ∨ q), derive ◊p ∨ ◊q.
var EventuallyAggregation = Rule{
	Name:        "eventually_aggregation",
	Description: "From ◊(p ∨ q), derive ◊p ∨ ◊q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		ev, ok := temporal(args[0], ast.Eventually)
		if !ok {
			return false
		}
		_, ok = binary(ev.Operand, ast.Or)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		ev, _ := temporal(args[0], ast.Eventually)
		dis, _ := binary(ev.Operand, ast.Or)
		return or(eventually(dis.Left), eventually(dis.Right))
	},
}

// AlwaysEventuallyContraction: from ¬◊p, derive □¬p. Modal duality.
var AlwaysEventuallyContraction = Rule{
	Name:        "always_eventually_contraction",
	Description: "From ¬◊p, derive □¬p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		_, ok = temporal(inner, ast.Eventually)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		ev, _ := temporal(inner, ast.Eventually)
		return always(ast.Not(ev.Operand))
	},
}

// AlwaysEventuallyExpansion: from ¬□p, derive ◊¬p. Modal duality.
var AlwaysEventuallyExpansion = Rule{
	Name:        "always_eventually_expansion",
	Description: "From ¬□p, derive ◊¬p",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		_, ok = temporal(inner, ast.Always)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		box, _ := temporal(inner, ast.Always)
		return eventually(ast.Not(box.Operand))
	},
}

// NextDistribution: from X(p → q), derive Xp → Xq.
var NextDistribution = Rule{
	Name:        "next_distribution",
	Description: "From X(p → q), derive Xp → Xq",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		nx, ok := temporal(args[0], ast.Next)
		if !ok {
			return false
		}
		_, ok = binary(nx.Operand, ast.Implies)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		nx, _ := temporal(args[0], ast.Next)
		imp, _ := binary(nx.Operand, ast.Implies)
		return implies(next(imp.Left), next(imp.Right))
	},
}

// UntilUnfolding: from p U q, derive q ∨ (p ∧ X(p U q)). Unfolding is
// bounded by the caller's depth budget; unbounded recursion through this
// rule trades completeness for termination.
var UntilUnfolding = Rule{
	Name:        "until_unfolding",
	Description: "From p U q, derive q ∨ (p ∧ X(p U q))",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		_, ok := binaryTemporal(args[0], ast.Until)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		u, _ := binaryTemporal(args[0], ast.Until)
		return or(u.Right, and(u.Left, next(args[0])))
	},
}

// UntilInduction: from q ∨ (p ∧ X(p U q)), derive p U q. The converse of
// unfolding.
var UntilInduction = Rule{
	Name:        "until_induction",
	Description: "From q ∨ (p ∧ X(p U q)), derive p U q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		dis, ok := binary(args[0], ast.Or)
		if !ok {
			return false
		}
		conj, ok := binary(dis.Right, ast.And)
		if !ok {
			return false
		}
		nx, ok := temporal(conj.Right, ast.Next)
		if !ok {
			return false
		}
		u, ok := binaryTemporal(nx.Operand, ast.Until)
		return ok && ast.Equal(u.Left, conj.Left) && ast.Equal(u.Right, dis.Left)
	},
	apply: func(args []ast.Formula) ast.Formula {
		dis, _ := binary(args[0], ast.Or)
		conj, _ := binary(dis.Right, ast.And)
		nx, _ := temporal(conj.Right, ast.Next)
		return nx.Operand
	},
}

// UntilInductionStep: from p and X(p U q), derive p U q.
var UntilInductionStep = Rule{
	Name:        "until_induction_step",
	Description: "From p and X(p U q), derive p U q",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		nx, ok := temporal(args[1], ast.Next)
		if !ok {
			return false
		}
		u, ok := binaryTemporal(nx.Operand, ast.Until)
		return ok && ast.Equal(u.Left, args[0])
	},
	apply: func(args []ast.Formula) ast.Formula {
		nx, _ := temporal(args[1], ast.Next)
		return nx.Operand
	},
}

// UntilReleaseDuality: from ¬(p U q), derive (¬q U (¬p ∧ ¬q)) ∨ □¬q.
var UntilReleaseDuality = Rule{
	Name:        "until_release_duality",
	Description: "From ¬(p U q), derive (¬q U (¬p ∧ ¬q)) ∨ □¬q",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		_, ok = binaryTemporal(inner, ast.Until)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		u, _ := binaryTemporal(inner, ast.Until)
		notP, notQ := ast.Not(u.Left), ast.Not(u.Right)
		return or(until(notQ, and(notP, notQ)), always(notQ))
	},
}

// WeakUntilExpansion: from the weak-until encoding (p U q) ∨ □p, derive
// q ∨ (p ∧ X((p U q) ∨ □p)).
var WeakUntilExpansion = Rule{
	Name:        "weak_until_expansion",
	Description: "From (p U q) ∨ □p, derive q ∨ (p ∧ X((p U q) ∨ □p))",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		dis, ok := binary(args[0], ast.Or)
		if !ok {
			return false
		}
		u, ok := binaryTemporal(dis.Left, ast.Until)
		if !ok {
			return false
		}
		box, ok := temporal(dis.Right, ast.Always)
		return ok && ast.Equal(u.Left, box.Operand)
	},
	apply: func(args []ast.Formula) ast.Formula {
		dis, _ := binary(args[0], ast.Or)
		u, _ := binaryTemporal(dis.Left, ast.Until)
		return or(u.Right, and(u.Left, next(args[0])))
	},
}

// ReleaseCoInduction: from the release encoding ¬(¬p U ¬q), derive
// q ∧ (p ∨ X¬(¬p U ¬q)).
var ReleaseCoInduction = Rule{
	Name:        "release_co_induction",
	Description: "From ¬(¬p U ¬q), derive q ∧ (p ∨ X¬(¬p U ¬q))",
	Arity:       1,
	canApply: func(args []ast.Formula) bool {
		inner, ok := negated(args[0])
		if !ok {
			return false
		}
		u, ok := binaryTemporal(inner, ast.Until)
		if !ok {
			return false
		}
		if _, ok := negated(u.Left); !ok {
			return false
		}
		_, ok = negated(u.Right)
		return ok
	},
	apply: func(args []ast.Formula) ast.Formula {
		inner, _ := negated(args[0])
		u, _ := binaryTemporal(inner, ast.Until)
		p, _ := negated(u.Left)
		q, _ := negated(u.Right)
		return and(q, or(p, next(args[0])))
	},
}

// TemporalInduction: from p and □(p → Xp), derive □p.
var TemporalInduction = Rule{
	Name:        "temporal_induction",
	Description: "From p and □(p → Xp), derive □p",
	Arity:       2,
	canApply: func(args []ast.Formula) bool {
		box, ok := temporal(args[1], ast.Always)
		if !ok {
			return false
		}
		imp, ok := binary(box.Operand, ast.Implies)
		if !ok {
			return false
		}
		nx, ok := temporal(imp.Right, ast.Next)
		return ok && ast.Equal(imp.Left, args[0]) && ast.Equal(nx.Operand, args[0])
	},
	apply: func(args []ast.Formula) ast.Formula {
		return always(args[0])
	},
}

// Temporal returns the 20 temporal rules.
func Temporal() []Rule {
	return []Rule{
		TemporalK,
		TemporalT,
		TemporalS4,
		TemporalS5,
		AlwaysNecessitation,
		AlwaysDistribution,
		AlwaysImplicationDistribution,
		EventuallyIntroduction,
		EventuallyExpansion,
		EventuallyAggregation,
		AlwaysEventuallyContraction,
		AlwaysEventuallyExpansion,
		NextDistribution,
		UntilUnfolding,
		UntilInduction,
		UntilInductionStep,
		UntilReleaseDuality,
		WeakUntilExpansion,
		ReleaseCoInduction,
		TemporalInduction,
	}
}
