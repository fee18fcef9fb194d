package prover

import (
	"context"
	"testing"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

func forwardProve(t *testing.T, goal string, axioms ...string) ast.ProofResult {
	t.Helper()
	kb := ast.NewKnowledgeBase()
	for _, ax := range axioms {
		kb.AddAxiom(parser.MustParse(ax))
	}
	return ForwardChaining{}.Prove(context.Background(), parser.MustParse(goal), kb,
		Options{Timeout: 5 * time.Second, MaxDepth: 12})
}

func TestForwardModusPonensChain(t *testing.T) {
	// Quantified implication plus a ground fact derive the ground goal in
	// exactly two steps: instantiation, then modus ponens.
	result := forwardProve(t, "Q(a)", "∀x (P(x) → Q(x))", "P(a)")

	if result.Status != ast.StatusProved {
		t.Fatalf("status = %v (%s)", result.Status, result.Diagnostic)
	}
	if len(result.Steps) != 2 {
		for _, s := range result.Steps {
			t.Logf("step: %s %s", s.RuleName, s.Formula)
		}
		t.Fatalf("expected 2 steps, got %d", len(result.Steps))
	}
	if result.Steps[0].RuleName != "universal_instantiation" {
		t.Errorf("first step = %s", result.Steps[0].RuleName)
	}
	if result.Steps[1].RuleName != "modus_ponens" {
		t.Errorf("second step = %s", result.Steps[1].RuleName)
	}
	if !ast.Equal(result.Steps[1].Formula, parser.MustParse("Q(a)")) {
		t.Errorf("final step formula = %s", result.Steps[1].Formula)
	}
}

func TestForwardNoPathIsUnknown(t *testing.T) {
	// A quantified goal unreachable from the axioms must stay UNKNOWN,
	// never become a false PROVED or DISPROVED.
	result := forwardProve(t, "∀x Q(x)", "P")
	if result.Status != ast.StatusUnknown {
		t.Fatalf("status = %v, want UNKNOWN", result.Status)
	}
	if result.Diagnostic == "" {
		t.Error("expected a diagnostic explaining the failure")
	}
}

func TestForwardGoalInKnowledgeBase(t *testing.T) {
	result := forwardProve(t, "O(Pay(agent1))", "O(Pay(agent1))")
	if result.Status != ast.StatusProved {
		t.Fatalf("status = %v", result.Status)
	}
	if len(result.Steps) != 1 || result.Steps[0].RuleName != "known_formula" {
		t.Errorf("expected single known_formula step, got %v", result.Steps)
	}
}

func TestForwardContradictoryAxiomsStayUnknown(t *testing.T) {
	// No ex-falso rule: an inconsistent axiom set does not derive an
	// unrelated goal.
	result := forwardProve(t, "R", "P", "~P")
	if result.Status != ast.StatusUnknown {
		t.Fatalf("status = %v, want UNKNOWN", result.Status)
	}
}

func TestForwardDeonticDerivation(t *testing.T) {
	// O(P → Q) and O(P) derive O(Q) via the deontic K axiom.
	result := forwardProve(t, "O(Q)", "O(P -> Q)", "O(P)")
	if result.Status != ast.StatusProved {
		t.Fatalf("status = %v (%s)", result.Status, result.Diagnostic)
	}
}

func TestForwardTimeout(t *testing.T) {
	kb := ast.NewKnowledgeBase()
	kb.AddAxiom(parser.MustParse("P"))
	result := ForwardChaining{}.Prove(context.Background(), parser.MustParse("Q"), kb,
		Options{Timeout: time.Nanosecond, MaxDepth: 50})
	if result.Status != ast.StatusTimeout {
		t.Fatalf("status = %v, want TIMEOUT", result.Status)
	}
}

func TestForwardCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	kb := ast.NewKnowledgeBase()
	kb.AddAxiom(parser.MustParse("P"))
	result := ForwardChaining{}.Prove(ctx, parser.MustParse("Q"), kb,
		Options{Timeout: time.Minute, MaxDepth: 50})
	if result.Status != ast.StatusTimeout {
		t.Fatalf("status = %v, want TIMEOUT", result.Status)
	}
}
