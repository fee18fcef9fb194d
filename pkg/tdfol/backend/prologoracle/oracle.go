// Package prologoracle answers Horn-fragment queries through an embedded
// Prolog interpreter. Importing the package registers the oracle under the
// name "prolog".
package prologoracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ichiban/prolog"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/backend"
	"github.com/cognicore/tdfol/pkg/tdfol/convert"
)

func init() {
	backend.Register(Oracle{})
}

// Oracle proves Horn-fragment goals by compiling the knowledge base to
// Prolog clauses and running the goal as a query. Axioms outside the Horn
// fragment are skipped, so a true verdict is sound but an unknown verdict
// proves nothing.
type Oracle struct{}

func (Oracle) Name() string { return "prolog" }

func (Oracle) Prove(ctx context.Context, goal ast.Formula, kb *ast.KnowledgeBase) (backend.Verdict, error) {
	goalClauses, err := convert.ToPrologClauses(goal)
	if err != nil || len(goalClauses) != 1 || strings.Contains(goalClauses[0], ":-") {
		// Only atomic (fact-shaped) goals can be queried.
		return backend.VerdictUnknown, nil
	}
	query := goalClauses[0]

	var program strings.Builder
	if kb != nil {
		for _, ax := range append(kb.Axioms(), kb.Theorems()...) {
			clauses, err := convert.ToPrologClauses(ax)
			if errors.Is(err, convert.ErrNotHorn) {
				continue
			}
			if err != nil {
				return backend.VerdictUnknown, err
			}
			for _, c := range clauses {
				program.WriteString(c)
				program.WriteByte('\n')
			}
		}
	}

	interp := prolog.New(nil, nil)
	if err := interp.ExecContext(ctx, program.String()); err != nil {
		return backend.VerdictUnknown, fmt.Errorf("load prolog program: %w", err)
	}

	sols, err := interp.QueryContext(ctx, query)
	if err != nil {
		return backend.VerdictUnknown, fmt.Errorf("run prolog query: %w", err)
	}
	defer sols.Close()

	if sols.Next() {
		return backend.VerdictTrue, nil
	}
	if err := sols.Err(); err != nil {
		return backend.VerdictUnknown, fmt.Errorf("prolog solutions: %w", err)
	}
	// Negation as failure is not a disproof under the open-world reading.
	return backend.VerdictUnknown, nil
}
