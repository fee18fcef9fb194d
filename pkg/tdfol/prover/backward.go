package prover

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// BackwardChaining searches goal-directed: it decomposes the goal by
// connective and back-chains through implications in the knowledge base,
// unifying their conclusions with the current subgoal. Cyclic subgoals are
// detected on the search path and rejected.
type BackwardChaining struct{}

// MethodBackward identifies results produced by this strategy.
const MethodBackward = "backward_chaining"

func (BackwardChaining) Name() string  { return MethodBackward }
func (BackwardChaining) Priority() int { return 1 }

func (BackwardChaining) EstimateCost(goal ast.Formula, _ *ast.KnowledgeBase) float64 {
	return baseCost(goal) * 1.5
}

type backwardSearch struct {
	kb       *ast.KnowledgeBase
	deadline time.Time
	ctx      context.Context
	steps    []ast.ProofStep
	timedOut bool
}

func (BackwardChaining) Prove(ctx context.Context, goal ast.Formula, kb *ast.KnowledgeBase, opts Options) ast.ProofResult {
	opts = opts.withDefaults()
	result := ast.NewProofResult(goal, MethodBackward)
	start := time.Now()

	search := &backwardSearch{
		kb:       kb,
		deadline: start.Add(opts.Timeout),
		ctx:      ctx,
	}
	proved := search.prove(goal, nil, nil, opts.MaxDepth)
	switch {
	case search.timedOut:
		result.Status = ast.StatusTimeout
		result.Diagnostic = "timeout budget exhausted during backward chaining"
	case proved:
		result.Status = ast.StatusProved
		result.Steps = search.steps
	default:
		result.Status = ast.StatusUnknown
		result.Diagnostic = "no derivation found for the goal"
	}
	result.Elapsed = time.Since(start)
	return result
}

func (s *backwardSearch) expired() bool {
	if s.timedOut {
		return true
	}
	if s.ctx != nil {
		select {
		case <-s.ctx.Done():
			s.timedOut = true
			return true
		default:
		}
	}
	if time.Now().After(s.deadline) {
		s.timedOut = true
		return true
	}
	return false
}

func (s *backwardSearch) record(goal ast.Formula, rule, justification string, premises ...ast.Formula) {
	s.steps = append(s.steps, ast.ProofStep{
		Formula:       goal,
		Justification: justification,
		RuleName:      rule,
		Premises:      premises,
	})
}

// known reports whether the goal is an axiom, theorem, or local assumption.
func (s *backwardSearch) known(goal ast.Formula, assumptions []ast.Formula) bool {
	if s.kb != nil && s.kb.Contains(goal) {
		return true
	}
	for _, a := range assumptions {
		if ast.Equal(a, goal) {
			return true
		}
	}
	return false
}

// prove attempts the goal. path holds the canonical forms of the open
// subgoals above this one; re-encountering one is a cycle and fails that
// branch without failing the whole search.
func (s *backwardSearch) prove(goal ast.Formula, assumptions []ast.Formula, path []string, depth int) bool {
	if s.expired() || depth <= 0 {
		return false
	}
	key := goal.String()
	for _, open := range path {
		if open == key {
			return false
		}
	}
	path = append(path, key)

	if s.known(goal, assumptions) {
		s.record(goal, "known_formula", "goal is an axiom, theorem, or assumption")
		return true
	}

	switch g := goal.(type) {
	case *ast.Binary:
		switch g.Op {
		case ast.And:
			if s.prove(g.Left, assumptions, path, depth-1) && s.prove(g.Right, assumptions, path, depth-1) {
				s.record(goal, "conjunction_introduction", "both conjuncts proved", g.Left, g.Right)
				return true
			}
		case ast.Or:
			if s.prove(g.Left, assumptions, path, depth-1) {
				s.record(goal, "disjunction_introduction", "left disjunct proved", g.Left)
				return true
			}
			if s.prove(g.Right, assumptions, path, depth-1) {
				s.record(goal, "disjunction_introduction", "right disjunct proved", g.Right)
				return true
			}
		case ast.Implies:
			// Conditional proof: assume the antecedent.
			if s.prove(g.Right, append(assumptions, g.Left), path, depth-1) {
				s.record(goal, "conditional_proof", "consequent proved under the antecedent", g.Right)
				return true
			}
		case ast.Iff:
			fwd := &ast.Binary{Op: ast.Implies, Left: g.Left, Right: g.Right}
			back := &ast.Binary{Op: ast.Implies, Left: g.Right, Right: g.Left}
			if s.prove(fwd, assumptions, path, depth-1) && s.prove(back, assumptions, path, depth-1) {
				s.record(goal, "biconditional_introduction", "both directions proved", fwd, back)
				return true
			}
		}
	case *ast.Unary:
		if inner, ok := g.Operand.(*ast.Unary); ok {
			if s.prove(inner.Operand, assumptions, path, depth-1) {
				s.record(goal, "double_negation_introduction", "inner formula proved", inner.Operand)
				return true
			}
		}
	case *ast.Temporal:
		switch g.Op {
		case ast.Always:
			if s.prove(g.Operand, assumptions, path, depth-1) {
				s.record(goal, "always_necessitation", "operand proved as a theorem", g.Operand)
				return true
			}
		case ast.Eventually:
			if s.prove(g.Operand, assumptions, path, depth-1) {
				s.record(goal, "eventually_introduction", "operand holds now", g.Operand)
				return true
			}
		}
	case *ast.Deontic:
		switch g.Op {
		case ast.Obligation:
			if s.prove(g.Operand, assumptions, path, depth-1) {
				s.record(goal, "deontic_necessitation", "operand proved as a theorem", g.Operand)
				return true
			}
		case ast.Permission:
			ob := &ast.Deontic{Op: ast.Obligation, Operand: g.Operand}
			if s.prove(ob, assumptions, path, depth-1) {
				s.record(goal, "deontic_d_axiom", "obligation implies permission", ob)
				return true
			}
		}
	case *ast.Quantified:
		if g.Quantifier == ast.Exists {
			// Try each constant mentioned in the knowledge base.
			for _, name := range s.kbConstants() {
				witness := ast.Substitute(g.Body, g.Variable.Name, &ast.Constant{Name: name})
				if s.prove(witness, assumptions, path, depth-1) {
					s.record(goal, "existential_generalization",
						fmt.Sprintf("witness constant %s", name), witness)
					return true
				}
			}
		}
	}

	return s.backchain(goal, assumptions, path, depth)
}

// backchain matches the goal against the conclusions of implications in
// the knowledge base, including universally quantified ones, and recurses
// on the instantiated antecedent.
func (s *backwardSearch) backchain(goal ast.Formula, assumptions []ast.Formula, path []string, depth int) bool {
	if s.kb == nil {
		return false
	}
	candidates := append(s.kb.Axioms(), s.kb.Theorems()...)
	candidates = append(candidates, assumptions...)
	for _, candidate := range candidates {
		if s.expired() {
			return false
		}
		matrix, vars := stripUniversals(candidate)
		imp, ok := matrix.(*ast.Binary)
		if !ok || imp.Op != ast.Implies {
			continue
		}
		bind := make(map[string]ast.Term)
		if !matchFormula(imp.Right, goal, vars, bind) {
			continue
		}
		subgoal := applyBindings(imp.Left, bind)
		if s.prove(subgoal, assumptions, path, depth-1) {
			rule := "modus_ponens"
			justification := "antecedent proved, detach consequent"
			if len(vars) > 0 {
				justification = "instantiated implication, antecedent proved"
			}
			s.record(goal, rule, justification, candidate, subgoal)
			return true
		}
	}
	return false
}

func (s *backwardSearch) kbConstants() []string {
	set := make(map[string]struct{})
	if s.kb == nil {
		return nil
	}
	out := []string{}
	for _, f := range append(s.kb.Axioms(), s.kb.Theorems()...) {
		for _, name := range ast.Constants(f) {
			if _, dup := set[name]; !dup {
				set[name] = struct{}{}
				out = append(out, name)
			}
		}
	}
	return out
}
