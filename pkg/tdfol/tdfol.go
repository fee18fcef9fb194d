// Package tdfol is the engine facade: parsing, knowledge-base management,
// proving, dependency graphs, and optional persistence behind one type.
package tdfol

import (
	"context"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/cache"
	"github.com/cognicore/tdfol/pkg/tdfol/graph"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
	"github.com/cognicore/tdfol/pkg/tdfol/prover"
	"github.com/cognicore/tdfol/pkg/tdfol/store"
)

// Options configures an Engine instance. Every field is optional: the
// zero value gives an in-memory engine with default budgets and the
// shared proof cache.
type Options struct {
	Store    store.Store
	Cache    *cache.Cache
	Strategy prover.StrategyKind
	Timeout  time.Duration
	MaxDepth int
}

// Engine is the main reasoning facade.
type Engine struct {
	prover   *prover.Prover
	store    store.Store
	strategy prover.StrategyKind
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	return &Engine{
		prover: prover.New(prover.Settings{
			Cache:    opts.Cache,
			Timeout:  opts.Timeout,
			MaxDepth: opts.MaxDepth,
		}),
		store:    opts.Store,
		strategy: opts.Strategy,
	}
}

// Close cleanly shuts down the engine and its store, if any.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Parse parses formula text into the structural form.
func (e *Engine) Parse(text string) (ast.Formula, error) {
	return parser.Parse(text)
}

// AddAxiom parses and installs an axiom. Returns false without error when
// the axiom was already present.
func (e *Engine) AddAxiom(text string) (bool, error) {
	return e.prover.AddAxiom(text)
}

// AddAxiomFormula installs an already-built axiom.
func (e *Engine) AddAxiomFormula(f ast.Formula) bool {
	return e.prover.AddAxiomFormula(f)
}

// KnowledgeBase exposes the engine's knowledge base. It must not be
// mutated while a Prove call is in flight.
func (e *Engine) KnowledgeBase() *ast.KnowledgeBase {
	return e.prover.KnowledgeBase()
}

// Prove attempts goal text under the engine's configured strategy.
func (e *Engine) Prove(ctx context.Context, goal string) (ast.ProofResult, error) {
	return e.prover.ProveText(ctx, goal, prover.Request{Strategy: e.strategy})
}

// ProveWith attempts goal text under an explicit request.
func (e *Engine) ProveWith(ctx context.Context, goal string, req prover.Request) (ast.ProofResult, error) {
	return e.prover.ProveText(ctx, goal, req)
}

// ProveFormula attempts an already-parsed goal.
func (e *Engine) ProveFormula(ctx context.Context, goal ast.Formula, req prover.Request) ast.ProofResult {
	return e.prover.Prove(ctx, goal, req)
}

// DependencyGraph builds the formula dependency graph of a proof.
func (e *Engine) DependencyGraph(result ast.ProofResult) *graph.Graph {
	return graph.FromProof(result)
}

// CacheStats snapshots the proof cache counters.
func (e *Engine) CacheStats() cache.Stats {
	return e.prover.Cache().Stats()
}

// SaveResult persists a proof result under the content key of its goal
// and the current axiom set. No-op error when no store is configured.
func (e *Engine) SaveResult(ctx context.Context, result ast.ProofResult) error {
	if e.store == nil {
		return nil
	}
	key := cache.Key(result.Formula, e.prover.KnowledgeBase())
	return e.store.SaveResult(ctx, key, result)
}

// SaveKnowledgeBase persists the current knowledge base under a name.
func (e *Engine) SaveKnowledgeBase(ctx context.Context, name string) error {
	if e.store == nil {
		return nil
	}
	return e.store.SaveKnowledgeBase(ctx, name, e.prover.KnowledgeBase())
}

// LoadKnowledgeBase replaces the current knowledge base with a stored one.
func (e *Engine) LoadKnowledgeBase(ctx context.Context, name string) error {
	if e.store == nil {
		return nil
	}
	kb, err := e.store.LoadKnowledgeBase(ctx, name)
	if err != nil {
		return err
	}
	fresh := e.prover.KnowledgeBase()
	*fresh = *kb
	return nil
}
