// Package sqlite persists proof results and knowledge bases in a SQLite
// database. Formulas are stored in their canonical text form and reparsed
// on load, so the schema survives AST changes.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
	"github.com/cognicore/tdfol/pkg/tdfol/store"
)

// sqliteStore implements the Store interface using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and the schema
// initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// WAL for better concurrency.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// schemaVersion is stamped into the database's user_version pragma.
const schemaVersion = 1

func initSchema(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version > schemaVersion {
		return fmt.Errorf("%w: database schema version %d is newer than supported version %d",
			internalerr.ErrStoreUnavailable, version, schemaVersion)
	}
	schema := `
CREATE TABLE IF NOT EXISTS proof_results (
	key TEXT PRIMARY KEY,
	id TEXT NOT NULL,
	status TEXT NOT NULL,
	formula TEXT NOT NULL,
	method TEXT NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	diagnostic TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS proof_steps (
	key TEXT NOT NULL,
	seq INTEGER NOT NULL,
	formula TEXT NOT NULL,
	rule_name TEXT NOT NULL,
	justification TEXT,
	PRIMARY KEY(key, seq),
	FOREIGN KEY(key) REFERENCES proof_results(key) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS kb_formulas (
	kb_name TEXT NOT NULL,
	seq INTEGER NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('axiom', 'theorem')),
	formula TEXT NOT NULL,
	PRIMARY KEY(kb_name, seq)
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// SaveResult stores a proof result under its content key, replacing any
// previous result for the same key.
func (s *sqliteStore) SaveResult(ctx context.Context, key string, result ast.ProofResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM proof_results WHERE key = ?`, key); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO proof_results (key, id, status, formula, method, elapsed_ns, diagnostic, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key, result.ID, result.Status.String(), result.Formula.String(),
		result.Method, result.Elapsed.Nanoseconds(), result.Diagnostic,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	for i, step := range result.Steps {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO proof_steps (key, seq, formula, rule_name, justification)
			VALUES (?, ?, ?, ?, ?)`,
			key, i, step.Formula.String(), step.RuleName, step.Justification,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetResult loads the proof result stored under key. Premise lists are not
// persisted; reloaded steps carry formula, rule, and justification only.
func (s *sqliteStore) GetResult(ctx context.Context, key string) (ast.ProofResult, error) {
	var (
		result     ast.ProofResult
		statusText string
		goalText   string
		elapsedNS  int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, status, formula, method, elapsed_ns, diagnostic
		FROM proof_results WHERE key = ?`, key,
	).Scan(&result.ID, &statusText, &goalText, &result.Method, &elapsedNS, &result.Diagnostic)
	if errors.Is(err, sql.ErrNoRows) {
		return ast.ProofResult{}, fmt.Errorf("%w: result %s", internalerr.ErrNotFound, key)
	}
	if err != nil {
		return ast.ProofResult{}, err
	}
	result.Status = parseStatus(statusText)
	result.Elapsed = time.Duration(elapsedNS)
	if result.Formula, err = parser.Parse(goalText); err != nil {
		return ast.ProofResult{}, fmt.Errorf("reparse stored goal: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT formula, rule_name, justification
		FROM proof_steps WHERE key = ? ORDER BY seq`, key)
	if err != nil {
		return ast.ProofResult{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var text, rule, justification string
		if err := rows.Scan(&text, &rule, &justification); err != nil {
			return ast.ProofResult{}, err
		}
		f, err := parser.Parse(text)
		if err != nil {
			return ast.ProofResult{}, fmt.Errorf("reparse stored step: %w", err)
		}
		result.Steps = append(result.Steps, ast.ProofStep{
			Formula:       f,
			RuleName:      rule,
			Justification: justification,
		})
	}
	return result, rows.Err()
}

// ListResults returns a summary row per stored result, newest first.
func (s *sqliteStore) ListResults(ctx context.Context) ([]store.ResultSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, status, formula, method, created_at
		FROM proof_results ORDER BY created_at DESC, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.ResultSummary
	for rows.Next() {
		var summary store.ResultSummary
		var statusText, createdText string
		if err := rows.Scan(&summary.Key, &statusText, &summary.Formula, &summary.Method, &createdText); err != nil {
			return nil, err
		}
		summary.Status = parseStatus(statusText)
		if summary.CreatedAt, err = time.Parse(time.RFC3339, createdText); err != nil {
			return nil, fmt.Errorf("parse stored timestamp: %w", err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// SaveKnowledgeBase stores a named knowledge base, replacing any previous
// contents under the same name.
func (s *sqliteStore) SaveKnowledgeBase(ctx context.Context, name string, kb *ast.KnowledgeBase) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM kb_formulas WHERE kb_name = ?`, name); err != nil {
		return err
	}
	seq := 0
	insert := func(kind string, formulas []ast.Formula) error {
		for _, f := range formulas {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO kb_formulas (kb_name, seq, kind, formula) VALUES (?, ?, ?, ?)`,
				name, seq, kind, f.String())
			if err != nil {
				return err
			}
			seq++
		}
		return nil
	}
	if kb != nil {
		if err := insert("axiom", kb.Axioms()); err != nil {
			return err
		}
		if err := insert("theorem", kb.Theorems()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadKnowledgeBase loads the named knowledge base.
func (s *sqliteStore) LoadKnowledgeBase(ctx context.Context, name string) (*ast.KnowledgeBase, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, formula FROM kb_formulas WHERE kb_name = ? ORDER BY seq`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	kb := ast.NewKnowledgeBase()
	found := false
	for rows.Next() {
		found = true
		var kind, text string
		if err := rows.Scan(&kind, &text); err != nil {
			return nil, err
		}
		f, err := parser.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("reparse stored formula: %w", err)
		}
		if kind == "theorem" {
			kb.AddTheorem(f)
		} else {
			kb.AddAxiom(f)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: knowledge base %q", internalerr.ErrNotFound, name)
	}
	return kb, nil
}

func parseStatus(text string) ast.Status {
	switch text {
	case ast.StatusProved.String():
		return ast.StatusProved
	case ast.StatusDisproved.String():
		return ast.StatusDisproved
	case ast.StatusTimeout.String():
		return ast.StatusTimeout
	}
	return ast.StatusUnknown
}
