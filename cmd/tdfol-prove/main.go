package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol"
	"github.com/cognicore/tdfol/pkg/tdfol/cache"
	"github.com/cognicore/tdfol/pkg/tdfol/config"
	"github.com/cognicore/tdfol/pkg/tdfol/graph"
	"github.com/cognicore/tdfol/pkg/tdfol/prover"
	"github.com/cognicore/tdfol/pkg/tdfol/store/sqlite"
)

func main() {
	var (
		goal       = flag.String("goal", "", "Goal formula to prove (required)")
		axiomsCfg  = flag.String("axioms", "", "Optional: YAML axiom set file")
		proverCfg  = flag.String("config", "", "Optional: YAML prover config file")
		strategy   = flag.String("strategy", "auto", "Strategy: auto, hybrid, forward_chaining, backward_chaining, modal_tableaux")
		timeout    = flag.Duration("timeout", 5*time.Second, "Per-attempt timeout")
		maxDepth   = flag.Int("max-depth", 50, "Search depth budget")
		dbPath     = flag.String("db", "", "Optional: SQLite path to persist the result")
		printGraph = flag.Bool("graph", false, "Print the dependency graph in dot notation")
		noCache    = flag.Bool("no-cache", false, "Bypass the proof cache")
	)
	flag.Parse()

	if *goal == "" {
		log.Fatal("--goal required")
	}

	ctx := context.Background()

	kind := prover.StrategyKind(*strategy)
	budgetTimeout := *timeout
	budgetDepth := *maxDepth
	disableCache := *noCache

	if *proverCfg != "" {
		cfg, err := config.LoadProverConfig(*proverCfg)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		if cfg.Strategy != "" {
			kind = prover.StrategyKind(cfg.Strategy)
		}
		if cfg.Timeout > 0 {
			budgetTimeout = cfg.Timeout
		}
		if cfg.MaxDepth > 0 {
			budgetDepth = cfg.MaxDepth
		}
		if cfg.DisableCache {
			disableCache = true
		}
	}

	opts := tdfol.Options{
		Cache:    cache.New(0, 0),
		Strategy: kind,
		Timeout:  budgetTimeout,
		MaxDepth: budgetDepth,
	}
	if *dbPath != "" {
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		opts.Store = st
	}

	engine := tdfol.New(opts)
	defer engine.Close()

	if *axiomsCfg != "" {
		name, kb, err := config.LoadAxiomSet(*axiomsCfg)
		if err != nil {
			log.Fatalf("load axioms: %v", err)
		}
		for _, ax := range kb.Axioms() {
			engine.AddAxiomFormula(ax)
		}
		log.Printf("loaded axiom set %q with %d formulas", name, kb.Len())
	}
	for _, text := range flag.Args() {
		if _, err := engine.AddAxiom(text); err != nil {
			log.Fatalf("add axiom %q: %v", text, err)
		}
	}

	result, err := engine.ProveWith(ctx, *goal, prover.Request{
		Strategy:     kind,
		Timeout:      budgetTimeout,
		MaxDepth:     budgetDepth,
		DisableCache: disableCache,
	})
	if err != nil {
		log.Fatalf("prove: %v", err)
	}

	fmt.Printf("status:  %s\n", result.Status)
	fmt.Printf("method:  %s\n", result.Method)
	fmt.Printf("elapsed: %s\n", result.Elapsed)
	if result.FromCache {
		fmt.Println("cache:   hit")
	}
	if result.Diagnostic != "" {
		fmt.Printf("detail:  %s\n", result.Diagnostic)
	}
	for i, step := range result.Steps {
		fmt.Printf("%3d. %-28s %s\n", i+1, step.RuleName, step.Formula)
	}

	if *printGraph {
		fmt.Println(graph.FromProof(result).DOT())
	}

	if *dbPath != "" {
		if err := engine.SaveResult(ctx, result); err != nil {
			log.Fatalf("save result: %v", err)
		}
	}
}
