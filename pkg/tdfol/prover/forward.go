package prover

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/rules"
)

// ForwardChaining saturates the axiom set under the rule library until the
// goal is derived, a fixpoint is reached, or the budget expires.
//
// Directly contradictory axioms do not make every goal derivable: there is
// no ex-falso rule in the library, so forward chaining over an
// inconsistent axiom set still answers UNKNOWN for unrelated goals. The
// tableau strategy behaves differently (every branch closes), which is the
// documented trade-off between the two.
type ForwardChaining struct{}

// MethodForward identifies results produced by this strategy.
const MethodForward = "forward_chaining"

// maxDerivedFormulas caps saturation; beyond it the attempt reports
// UNKNOWN rather than thrash.
const maxDerivedFormulas = 2048

func (ForwardChaining) Name() string  { return MethodForward }
func (ForwardChaining) Priority() int { return 2 }

func (ForwardChaining) EstimateCost(goal ast.Formula, _ *ast.KnowledgeBase) float64 {
	// Saturation tolerates quantifiers well but pays a flat premium over
	// the tableau on propositional goals.
	return baseCost(goal) * 1.25
}

// derivation records how a known formula was obtained.
type derivation struct {
	step  ast.ProofStep
	order int
}

func (ForwardChaining) Prove(ctx context.Context, goal ast.Formula, kb *ast.KnowledgeBase, opts Options) ast.ProofResult {
	opts = opts.withDefaults()
	result := ast.NewProofResult(goal, MethodForward)
	start := time.Now()
	deadline := start.Add(opts.Timeout)

	known := make([]ast.Formula, 0, 16)
	seen := make(map[string]struct{})
	derived := make(map[string]derivation)

	add := func(f ast.Formula) bool {
		key := f.String()
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		known = append(known, f)
		return true
	}
	if kb != nil {
		for _, ax := range kb.Axioms() {
			add(ax)
		}
		for _, th := range kb.Theorems() {
			add(th)
		}
	}

	goalKey := goal.String()
	if _, ok := seen[goalKey]; ok {
		result.Status = ast.StatusProved
		result.Steps = []ast.ProofStep{{
			Formula:       goal,
			Justification: "goal is present in the knowledge base",
			RuleName:      "known_formula",
		}}
		result.Elapsed = time.Since(start)
		return result
	}

	// Derived formulas larger than this are discarded; the cap keeps
	// introduction rules from inflating the working set unboundedly.
	sizeCap := growthCap(goal, known)

	ruleSet := rules.All()
	expired := func() bool {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return true
			default:
			}
		}
		return time.Now().After(deadline)
	}

	for pass := 0; pass < opts.MaxDepth; pass++ {
		if expired() {
			result.Status = ast.StatusTimeout
			result.Diagnostic = "timeout budget exhausted during forward chaining"
			result.Elapsed = time.Since(start)
			return result
		}

		frontier := len(known)
		progressed := false
		for _, rule := range ruleSet {
			if expired() {
				result.Status = ast.StatusTimeout
				result.Diagnostic = "timeout budget exhausted during forward chaining"
				result.Elapsed = time.Since(start)
				return result
			}
			goalFound := false
			limitHit := false
			apply := func(premises ...ast.Formula) bool {
				if !rule.CanApply(premises...) {
					return true
				}
				conclusion, err := rule.Apply(premises...)
				if err != nil {
					return true
				}
				if ast.Size(conclusion) > sizeCap {
					return true
				}
				if !add(conclusion) {
					return true
				}
				progressed = true
				derived[conclusion.String()] = derivation{
					order: len(derived),
					step: ast.ProofStep{
						Formula:       conclusion,
						Justification: rule.Description,
						RuleName:      rule.Name,
						Premises:      premises,
					},
				}
				if ast.Equal(conclusion, goal) {
					goalFound = true
					return false
				}
				if len(known) > maxDerivedFormulas {
					limitHit = true
					return false
				}
				return true
			}
			forEachPremises(rule, known[:frontier], apply)
			if goalFound {
				result.Status = ast.StatusProved
				result.Steps = pruneToGoal(goal, derived)
				result.Elapsed = time.Since(start)
				return result
			}
			if limitHit {
				result.Status = ast.StatusUnknown
				result.Diagnostic = "derivation limit reached before the goal"
				result.Elapsed = time.Since(start)
				return result
			}
		}
		if !progressed {
			result.Status = ast.StatusUnknown
			result.Diagnostic = "fixpoint reached without deriving the goal"
			result.Elapsed = time.Since(start)
			return result
		}
	}

	result.Status = ast.StatusUnknown
	result.Diagnostic = "depth budget exhausted during forward chaining"
	result.Elapsed = time.Since(start)
	return result
}

// forEachPremises walks ordered premise tuples for a rule over the current
// working set, stopping when the visitor returns false. Ternary tuples are
// gated on the first premise's shape to keep the triple loop tractable;
// the only ternary rule in the library starts from an obligation.
func forEachPremises(rule rules.Rule, known []ast.Formula, visit func(premises ...ast.Formula) bool) {
	switch rule.Arity {
	case 1:
		for _, f := range known {
			if !visit(f) {
				return
			}
		}
	case 2:
		for _, a := range known {
			for _, b := range known {
				if !visit(a, b) {
					return
				}
			}
		}
	case 3:
		for _, a := range known {
			if d, ok := a.(*ast.Deontic); !ok || d.Op != ast.Obligation {
				continue
			}
			for _, b := range known {
				if _, ok := b.(*ast.Unary); !ok {
					continue
				}
				for _, c := range known {
					if !visit(a, b, c) {
						return
					}
				}
			}
		}
	}
}

// growthCap bounds the size of derived formulas relative to the problem.
func growthCap(goal ast.Formula, known []ast.Formula) int {
	max := ast.Size(goal)
	for _, f := range known {
		if s := ast.Size(f); s > max {
			max = s
		}
	}
	return 2*max + 8
}

// pruneToGoal extracts the ancestor chain of the goal's derivation from
// the full derivation record, in derivation order.
func pruneToGoal(goal ast.Formula, derived map[string]derivation) []ast.ProofStep {
	var orders []int
	collected := make(map[string]struct{})
	var collect func(key string)
	collect = func(key string) {
		if _, done := collected[key]; done {
			return
		}
		d, ok := derived[key]
		if !ok {
			// An axiom or theorem; not a recorded step.
			return
		}
		collected[key] = struct{}{}
		for _, p := range d.step.Premises {
			collect(p.String())
		}
		orders = append(orders, d.order)
	}
	collect(goal.String())

	sort.Ints(orders)
	byOrder := make(map[int]ast.ProofStep, len(derived))
	for _, d := range derived {
		byOrder[d.order] = d.step
	}
	steps := make([]ast.ProofStep, 0, len(orders))
	for _, o := range orders {
		steps = append(steps, byOrder[o])
	}
	if len(steps) == 0 {
		steps = append(steps, ast.ProofStep{
			Formula:       goal,
			Justification: fmt.Sprintf("goal %s derived directly", goal),
			RuleName:      "known_formula",
		})
	}
	return steps
}
