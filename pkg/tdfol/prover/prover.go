package prover

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/cache"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

// StrategyKind names a proof-search strategy, or a selection policy over
// the strategies.
type StrategyKind string

const (
	// StrategyAuto picks the cheapest strategy by estimated cost.
	StrategyAuto StrategyKind = "auto"
	// StrategyHybrid runs every strategy and keeps the most definite answer.
	StrategyHybrid   StrategyKind = "hybrid"
	StrategyForward  StrategyKind = StrategyKind(MethodForward)
	StrategyBackward StrategyKind = StrategyKind(MethodBackward)
	StrategyTableau  StrategyKind = "modal_tableaux"
)

// Settings configure a Prover. The zero value uses the default budgets and
// the shared process-wide cache.
type Settings struct {
	Cache    *cache.Cache
	Timeout  time.Duration
	MaxDepth int
}

// Request tunes a single proof attempt. Zero fields inherit the Prover's
// settings.
type Request struct {
	Strategy     StrategyKind
	Timeout      time.Duration
	MaxDepth     int
	DisableCache bool
}

// Prover owns a knowledge base and dispatches proof attempts to the
// strategies. The knowledge base must not be mutated while a Prove call is
// in flight; concurrent Prove calls are otherwise safe.
type Prover struct {
	kb       *ast.KnowledgeBase
	cache    *cache.Cache
	timeout  time.Duration
	maxDepth int
}

// New builds a Prover over an empty knowledge base.
func New(settings Settings) *Prover {
	c := settings.Cache
	if c == nil {
		c = cache.Default()
	}
	opts := Options{Timeout: settings.Timeout, MaxDepth: settings.MaxDepth}.withDefaults()
	return &Prover{
		kb:       ast.NewKnowledgeBase(),
		cache:    c,
		timeout:  opts.Timeout,
		maxDepth: opts.MaxDepth,
	}
}

// KnowledgeBase exposes the prover's knowledge base.
func (p *Prover) KnowledgeBase() *ast.KnowledgeBase { return p.kb }

// AddAxiom parses and installs an axiom. Returns false without error when
// the formula was already present.
func (p *Prover) AddAxiom(text string) (bool, error) {
	f, err := parser.Parse(text)
	if err != nil {
		return false, fmt.Errorf("parse axiom: %w", err)
	}
	return p.kb.AddAxiom(f), nil
}

// AddAxiomFormula installs an already-built axiom.
func (p *Prover) AddAxiomFormula(f ast.Formula) bool {
	return p.kb.AddAxiom(f)
}

// Cache exposes the prover's result cache.
func (p *Prover) Cache() *cache.Cache { return p.cache }

// strategies returns the registered strategies in priority order.
func strategies() []Strategy {
	return []Strategy{TableauStrategy{}, ForwardChaining{}, BackwardChaining{}}
}

// ProveText parses the goal and proves it. Parse errors surface directly.
func (p *Prover) ProveText(ctx context.Context, goal string, req Request) (ast.ProofResult, error) {
	f, err := parser.Parse(goal)
	if err != nil {
		return ast.ProofResult{}, fmt.Errorf("parse goal: %w", err)
	}
	return p.Prove(ctx, f, req), nil
}

// Prove attempts the goal under the request's strategy and budgets,
// consulting the cache first unless disabled. Timeout results are never
// cached; a later attempt with a larger budget may still succeed.
func (p *Prover) Prove(ctx context.Context, goal ast.Formula, req Request) ast.ProofResult {
	opts := Options{Timeout: req.Timeout, MaxDepth: req.MaxDepth}
	if opts.Timeout <= 0 {
		opts.Timeout = p.timeout
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = p.maxDepth
	}

	var key string
	if !req.DisableCache && p.cache != nil {
		key = cache.Key(goal, p.kb)
		if hit, ok := p.cache.Get(key); ok {
			hit.FromCache = true
			return hit
		}
	}

	result := p.dispatch(ctx, goal, req.Strategy, opts)

	if key != "" && result.Status != ast.StatusTimeout {
		p.cache.Set(key, result)
	}
	return result
}

func (p *Prover) dispatch(ctx context.Context, goal ast.Formula, kind StrategyKind, opts Options) ast.ProofResult {
	switch kind {
	case "", StrategyAuto:
		return p.runOne(ctx, goal, selectByCost(goal, p.kb), opts)
	case StrategyHybrid:
		return p.runHybrid(ctx, goal, opts)
	default:
		for _, s := range strategies() {
			if StrategyKind(s.Name()) == kind {
				return p.runOne(ctx, goal, s, opts)
			}
		}
		result := ast.NewProofResult(goal, string(kind))
		result.Status = ast.StatusUnknown
		result.Diagnostic = fmt.Sprintf("unknown strategy %q", kind)
		return result
	}
}

// selectByCost picks the strategy with the lowest estimated cost; ties go
// to the higher priority.
func selectByCost(goal ast.Formula, kb *ast.KnowledgeBase) Strategy {
	all := strategies()
	best := all[0]
	bestCost := best.EstimateCost(goal, kb)
	for _, s := range all[1:] {
		c := s.EstimateCost(goal, kb)
		if c < bestCost || (c == bestCost && s.Priority() > best.Priority()) {
			best, bestCost = s, c
		}
	}
	return best
}

// runOne runs a single strategy with panic containment: a panicking
// strategy yields UNKNOWN with a diagnostic instead of taking the caller
// down.
func (p *Prover) runOne(ctx context.Context, goal ast.Formula, s Strategy, opts Options) (result ast.ProofResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ast.NewProofResult(goal, s.Name())
			result.Status = ast.StatusUnknown
			result.Diagnostic = fmt.Sprintf("strategy panic: %v", r)
		}
	}()
	return s.Prove(ctx, goal, p.kb, opts)
}

// runHybrid tries every strategy and keeps the most definite verdict:
// PROVED or DISPROVED ends the sweep immediately, otherwise TIMEOUT
// outranks UNKNOWN.
func (p *Prover) runHybrid(ctx context.Context, goal ast.Formula, opts Options) ast.ProofResult {
	ordered := strategies()
	// Cheapest first so easy goals pay for one strategy only.
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].EstimateCost(goal, p.kb) < ordered[i].EstimateCost(goal, p.kb) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	var fallback ast.ProofResult
	haveFallback := false
	for _, s := range ordered {
		res := p.runOne(ctx, goal, s, opts)
		switch res.Status {
		case ast.StatusProved, ast.StatusDisproved:
			return res
		case ast.StatusTimeout:
			if !haveFallback || fallback.Status != ast.StatusTimeout {
				fallback, haveFallback = res, true
			}
		default:
			if !haveFallback {
				fallback, haveFallback = res, true
			}
		}
	}
	if !haveFallback {
		fallback = ast.NewProofResult(goal, string(StrategyHybrid))
		fallback.Status = ast.StatusUnknown
	}
	fallback.Method = string(StrategyHybrid)
	return fallback
}
