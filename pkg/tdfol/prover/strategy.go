// Package prover hosts the proof-search strategies (forward chaining,
// backward chaining, and an adapter over the modal tableau) together with
// the orchestrator that selects between them, enforces budgets, and
// consults the proof cache.
package prover

import (
	"context"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/tableau"
)

// Options bound a single proof attempt. Elapsed time and search depth are
// checked at every chaining iteration or tableau pop, never mid-step.
type Options struct {
	Timeout  time.Duration
	MaxDepth int
}

// DefaultTimeout and DefaultMaxDepth apply when an option is zero.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultMaxDepth = 50
)

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Strategy is one proof-search procedure. Implementations are stateless
// between calls; independent Prove calls may run concurrently as long as
// the knowledge base is not mutated.
type Strategy interface {
	Name() string
	// Priority breaks cost ties during AUTO selection; higher wins.
	Priority() int
	// EstimateCost scores how expensive this strategy expects the goal to
	// be under the given knowledge base; AUTO picks the lowest.
	EstimateCost(goal ast.Formula, kb *ast.KnowledgeBase) float64
	Prove(ctx context.Context, goal ast.Formula, kb *ast.KnowledgeBase, opts Options) ast.ProofResult
}

// baseCost is the shared cost model: base 2.0, doubled for nested temporal
// operators, times 1.5 when deontic and temporal operators are both
// present.
func baseCost(goal ast.Formula) float64 {
	cost := 2.0
	if tableau.HasNestedTemporal(goal) {
		cost *= 2.0
	}
	if tableau.HasDeontic(goal) && tableau.HasTemporal(goal) {
		cost *= 1.5
	}
	return cost
}

func hasQuantifier(f ast.Formula) bool {
	switch n := f.(type) {
	case *ast.Quantified:
		return true
	case *ast.Unary:
		return hasQuantifier(n.Operand)
	case *ast.Binary:
		return hasQuantifier(n.Left) || hasQuantifier(n.Right)
	case *ast.Deontic:
		return hasQuantifier(n.Operand)
	case *ast.Temporal:
		return hasQuantifier(n.Operand)
	case *ast.BinaryTemporal:
		return hasQuantifier(n.Left) || hasQuantifier(n.Right)
	}
	return false
}

// TableauStrategy adapts the tableau package to the Strategy interface.
type TableauStrategy struct{}

func (TableauStrategy) Name() string  { return tableau.MethodName }
func (TableauStrategy) Priority() int { return 3 }

// EstimateCost penalizes quantifiers anywhere in the problem: the tableau
// treats quantified formulas as leaves, so chaining handles them better.
func (TableauStrategy) EstimateCost(goal ast.Formula, kb *ast.KnowledgeBase) float64 {
	cost := baseCost(goal)
	if hasQuantifier(goal) || kbHasQuantifier(kb) {
		cost *= 2.0
	}
	return cost
}

func kbHasQuantifier(kb *ast.KnowledgeBase) bool {
	if kb == nil {
		return false
	}
	for _, f := range kb.Axioms() {
		if hasQuantifier(f) {
			return true
		}
	}
	for _, f := range kb.Theorems() {
		if hasQuantifier(f) {
			return true
		}
	}
	return false
}

func (TableauStrategy) Prove(ctx context.Context, goal ast.Formula, kb *ast.KnowledgeBase, opts Options) ast.ProofResult {
	opts = opts.withDefaults()
	return tableau.Prove(ctx, goal, kb, opts.Timeout, opts.MaxDepth)
}
