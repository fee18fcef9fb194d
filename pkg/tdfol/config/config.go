// Package config loads prover settings and axiom sets from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

// ProverConfig holds prover settings loaded from YAML.
type ProverConfig struct {
	Strategy     string        `yaml:"strategy"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxDepth     int           `yaml:"max_depth"`
	CacheSize    int           `yaml:"cache_size"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	DisableCache bool          `yaml:"disable_cache"`
}

// LoadProverConfig loads prover settings from a YAML file.
func LoadProverConfig(path string) (*ProverConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ProverConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if cfg.Timeout < 0 || cfg.MaxDepth < 0 || cfg.CacheSize < 0 {
		return nil, fmt.Errorf("%w: negative budget", internalerr.ErrInvalidConfig)
	}
	return &cfg, nil
}

// AxiomSet represents a named axiom set configuration.
type AxiomSet struct {
	Name     string   `yaml:"name"`
	Axioms   []string `yaml:"axioms"`
	Theorems []string `yaml:"theorems"`
}

// LoadAxiomSet loads a named axiom set from a YAML file and parses every
// formula. A malformed formula fails the whole load with its position.
func LoadAxiomSet(path string) (string, *ast.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var set AxiomSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return "", nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	kb := ast.NewKnowledgeBase()
	for i, text := range set.Axioms {
		f, err := parser.Parse(text)
		if err != nil {
			return "", nil, fmt.Errorf("axiom %d: %w", i, err)
		}
		kb.AddAxiom(f)
	}
	for i, text := range set.Theorems {
		f, err := parser.Parse(text)
		if err != nil {
			return "", nil, fmt.Errorf("theorem %d: %w", i, err)
		}
		kb.AddTheorem(f)
	}
	return set.Name, kb, nil
}
