// Package store defines the persistence interface for proof results and
// named knowledge bases. The core engine is purely in-memory; persistence
// is an optional collaborator wired in by the caller.
package store

import (
	"context"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// ResultSummary is one stored proof result, without its step chain.
type ResultSummary struct {
	Key       string
	Status    ast.Status
	Formula   string
	Method    string
	CreatedAt time.Time
}

// Store persists proof results and named axiom sets.
type Store interface {
	Close() error

	// Proof results, addressed by the content key of (goal, axioms).
	SaveResult(ctx context.Context, key string, result ast.ProofResult) error
	GetResult(ctx context.Context, key string) (ast.ProofResult, error)
	ListResults(ctx context.Context) ([]ResultSummary, error)

	// Named knowledge bases, stored as formula text.
	SaveKnowledgeBase(ctx context.Context, name string, kb *ast.KnowledgeBase) error
	LoadKnowledgeBase(ctx context.Context, name string) (*ast.KnowledgeBase, error)
}
