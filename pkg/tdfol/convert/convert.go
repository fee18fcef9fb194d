// Package convert projects formulas onto external formats: a first-order
// subset, TPTP text for external ATP provers, Prolog clause form, and a
// structured JSON form that round-trips.
package convert

import (
	"fmt"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
)

// ToFOL strips temporal and deontic wrappers, leaving the first-order
// skeleton. The projection is lossy: □φ, ◊φ, Xφ, O(φ), P(φ) all collapse
// to φ, F(φ) to ¬φ, and φ U ψ / φ S ψ to ψ (the condition that eventually
// holds). Use it only for collaborators that cannot interpret modalities.
func ToFOL(f ast.Formula) ast.Formula {
	switch n := f.(type) {
	case *ast.Predicate:
		return n
	case *ast.Unary:
		return &ast.Unary{Operand: ToFOL(n.Operand)}
	case *ast.Binary:
		return &ast.Binary{Op: n.Op, Left: ToFOL(n.Left), Right: ToFOL(n.Right)}
	case *ast.Quantified:
		return &ast.Quantified{Quantifier: n.Quantifier, Variable: n.Variable, Body: ToFOL(n.Body)}
	case *ast.Deontic:
		inner := ToFOL(n.Operand)
		if n.Op == ast.Prohibition {
			return &ast.Unary{Operand: inner}
		}
		return inner
	case *ast.Temporal:
		return ToFOL(n.Operand)
	case *ast.BinaryTemporal:
		return ToFOL(n.Right)
	}
	return f
}

// ErrNotHorn reports a formula outside the Horn-clause fragment that
// Prolog conversion accepts.
var ErrNotHorn = fmt.Errorf("%w: formula is not a Horn clause", internalerr.ErrInvalidInput)
