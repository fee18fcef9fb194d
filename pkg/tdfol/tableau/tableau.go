package tableau

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// MethodName identifies results produced by this strategy.
const MethodName = "modal_tableaux"

// maxRecordedSteps caps the number of expansion steps copied into a
// ProofResult; beyond it the proof is summarized.
const maxRecordedSteps = 200

// branch is one open tableau branch. Expansion works through an explicit
// worklist of branches rather than call recursion, so depth and timeout are
// checked at every pop.
type branch struct {
	queue []Signed
	next  int
	pos   map[string]struct{}
	neg   map[string]struct{}
	depth int
}

func newBranch(seed []Signed) *branch {
	b := &branch{
		pos: make(map[string]struct{}),
		neg: make(map[string]struct{}),
	}
	b.queue = append(b.queue, seed...)
	return b
}

func (b *branch) clone() *branch {
	c := &branch{
		queue: append([]Signed(nil), b.queue...),
		next:  b.next,
		pos:   make(map[string]struct{}, len(b.pos)),
		neg:   make(map[string]struct{}, len(b.neg)),
		depth: b.depth,
	}
	for k := range b.pos {
		c.pos[k] = struct{}{}
	}
	for k := range b.neg {
		c.neg[k] = struct{}{}
	}
	return c
}

// observe records a signed formula on the branch and reports whether the
// branch closes (the complement is already present).
func (b *branch) observe(s Signed) bool {
	key := s.Key()
	if s.Negated {
		b.neg[key] = struct{}{}
		_, contradiction := b.pos[key]
		return contradiction
	}
	b.pos[key] = struct{}{}
	_, contradiction := b.neg[key]
	return contradiction
}

// Prove attempts to refute the axioms together with the negated goal. All
// branches closing means the goal is entailed. An open, fully expanded
// branch is a countermodel candidate; because quantified and modal leaves
// are not fully decomposed, the strategy then reports UNKNOWN rather than
// DISPROVED, unless a second refutation of the negated goal closes.
func Prove(ctx context.Context, goal ast.Formula, kb *ast.KnowledgeBase, timeout time.Duration, maxDepth int) ast.ProofResult {
	result := ast.NewProofResult(goal, MethodName)
	start := time.Now()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxDepth <= 0 {
		maxDepth = 100
	}
	deadline := start.Add(timeout)

	// Verbatim-goal shortcut: a goal already present in the knowledge base
	// is proved in one recorded step.
	if kb != nil && kb.Contains(goal) {
		result.Status = ast.StatusProved
		result.Steps = []ast.ProofStep{{
			Formula:       goal,
			Justification: "goal is present in the knowledge base",
			RuleName:      "known_formula",
		}}
		result.Elapsed = time.Since(start)
		return result
	}

	logic := selectRunLogic(goal, kb)

	outcome, steps := refute(ctx, goal, true, kb, logic, deadline, maxDepth)
	switch outcome {
	case refuteClosed:
		result.Status = ast.StatusProved
		result.Steps = steps
	case refuteTimeout:
		result.Status = ast.StatusTimeout
		result.Diagnostic = "timeout budget exhausted during tableau expansion"
	case refuteDepth:
		result.Status = ast.StatusUnknown
		result.Diagnostic = "depth budget exhausted during tableau expansion"
	case refuteOpen:
		// Try to refute the goal itself; if that closes, the axioms entail
		// the negation.
		counter, csteps := refute(ctx, goal, false, kb, logic, deadline, maxDepth)
		if counter == refuteClosed {
			result.Status = ast.StatusDisproved
			result.Steps = csteps
			result.Diagnostic = "negation of the goal is entailed"
		} else {
			result.Status = ast.StatusUnknown
			result.Diagnostic = "open tableau branch: countermodel candidate"
		}
	}
	result.Elapsed = time.Since(start)
	return result
}

func selectRunLogic(goal ast.Formula, kb *ast.KnowledgeBase) Logic {
	formulas := []ast.Formula{goal}
	if kb != nil {
		formulas = append(formulas, kb.Axioms()...)
		formulas = append(formulas, kb.Theorems()...)
	}
	return SelectLogic(formulas...)
}

type refuteOutcome int

const (
	refuteClosed refuteOutcome = iota
	refuteOpen
	refuteTimeout
	refuteDepth
)

// refute runs one tableau: the axioms signed positive plus the goal with
// the given sign. goalNegated true refutes ¬goal (proves the goal).
func refute(ctx context.Context, goal ast.Formula, goalNegated bool, kb *ast.KnowledgeBase, logic Logic, deadline time.Time, maxDepth int) (refuteOutcome, []ast.ProofStep) {
	var seed []Signed
	if kb != nil {
		for _, ax := range kb.Axioms() {
			seed = append(seed, Signed{Formula: ax})
		}
		for _, th := range kb.Theorems() {
			seed = append(seed, Signed{Formula: th})
		}
	}
	seed = append(seed, Signed{Formula: goal, Negated: goalNegated})

	var steps []ast.ProofStep
	record := func(step ast.ProofStep) {
		if len(steps) < maxRecordedSteps {
			steps = append(steps, step)
		}
	}
	record(ast.ProofStep{
		Formula:       goal,
		Justification: fmt.Sprintf("seed tableau with %d signed formulas under %s", len(seed), logic.Name),
		RuleName:      "tableau_seed",
	})

	worklist := []*branch{newBranch(seed)}
	closed := 0

	for len(worklist) > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return refuteTimeout, nil
		}
		if ctx != nil {
			select {
			case <-ctx.Done():
				return refuteTimeout, nil
			default:
			}
		}

		b := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if b.depth > maxDepth {
			return refuteDepth, nil
		}

		branchClosed, fullyExpanded := false, true
		for b.next < len(b.queue) {
			s := b.queue[b.next]
			b.next++
			if b.observe(s) {
				branchClosed = true
				record(ast.ProofStep{
					Formula:       s.Formula,
					Justification: "branch closed on contradiction",
					RuleName:      "closure",
					Premises:      []ast.Formula{s.Formula},
				})
				break
			}
			for _, proj := range modalProjections(s, logic) {
				b.queue = append(b.queue, proj)
			}
			exp, ok := ExpansionFor(s)
			if !ok {
				// Atomic or modal leaf.
				continue
			}
			b.depth++
			if b.depth > maxDepth {
				return refuteDepth, nil
			}
			record(expansionStep(s, exp))
			if !exp.Branching() {
				b.queue = append(b.queue, exp.Linear...)
				continue
			}
			// Fork: push one clone per alternative and stop working on
			// this branch object.
			for _, alt := range exp.Branches {
				forked := b.clone()
				forked.queue = append(forked.queue, alt...)
				worklist = append(worklist, forked)
			}
			fullyExpanded = false
			break
		}

		if branchClosed {
			closed++
			continue
		}
		if fullyExpanded && b.next >= len(b.queue) {
			// Open branch survives complete expansion.
			return refuteOpen, nil
		}
	}

	record(ast.ProofStep{
		Formula:       goal,
		Justification: fmt.Sprintf("all %d branches closed", closed),
		RuleName:      "refutation_complete",
	})
	return refuteClosed, steps
}

func expansionStep(s Signed, exp Expansion) ast.ProofStep {
	kind := "linear"
	if exp.Branching() {
		kind = fmt.Sprintf("branching(%d)", len(exp.Branches))
	}
	sign := "T"
	if s.Negated {
		sign = "F"
	}
	return ast.ProofStep{
		Formula:       s.Formula,
		Justification: fmt.Sprintf("%s expansion of %s-signed formula", kind, sign),
		RuleName:      "tableau_expansion",
		Premises:      []ast.Formula{s.Formula},
	}
}

// modalProjections adds the consequences the selected logic licenses for a
// signed modal leaf: reflexive logics project □p to p (and ¬◊p to ¬p),
// serial logics project O(p) to P(p) and link F(p) with ¬P(p).
func modalProjections(s Signed, logic Logic) []Signed {
	switch f := s.Formula.(type) {
	case *ast.Temporal:
		if !logic.Reflexive {
			return nil
		}
		if f.Op == ast.Always && !s.Negated {
			return []Signed{{f.Operand, false}}
		}
		if f.Op == ast.Eventually && s.Negated {
			return []Signed{{f.Operand, true}}
		}
	case *ast.Deontic:
		if !logic.Serial {
			return nil
		}
		if f.Op == ast.Obligation && !s.Negated {
			return []Signed{{&ast.Deontic{Op: ast.Permission, Operand: f.Operand}, false}}
		}
		if f.Op == ast.Prohibition && !s.Negated {
			return []Signed{{&ast.Deontic{Op: ast.Permission, Operand: f.Operand}, true}}
		}
	}
	return nil
}
