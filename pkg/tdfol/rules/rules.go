// Package rules implements the TDFOL inference rule library: 15 basic, 20
// temporal, 16 deontic, and 9 combined rules.
//
// Every rule exposes a side-effect-free structural CanApply check and an
// Apply that derives a new formula. Apply assumes CanApply holds; calling
// it on non-matching premises is a programming error and returns a
// *RuleApplicationError rather than an unjustified derivation.
package rules

import (
	"fmt"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// RuleApplicationError reports an Apply call whose premises do not match
// the rule schema.
type RuleApplicationError struct {
	Rule string
	Msg  string
}

func (e *RuleApplicationError) Error() string {
	return fmt.Sprintf("rule %s: %s", e.Rule, e.Msg)
}

// Rule is one inference rule. Arity is the number of premises.
type Rule struct {
	Name        string
	Description string
	Arity       int
	canApply    func(args []ast.Formula) bool
	apply       func(args []ast.Formula) ast.Formula
}

// CanApply reports whether the rule matches the given premises. It is a
// fast structural check with no side effects.
func (r Rule) CanApply(args ...ast.Formula) bool {
	if len(args) != r.Arity {
		return false
	}
	for _, a := range args {
		if a == nil {
			return false
		}
	}
	return r.canApply(args)
}

// Apply derives the rule's conclusion from the premises. The premises must
// already have passed CanApply.
func (r Rule) Apply(args ...ast.Formula) (ast.Formula, error) {
	if !r.CanApply(args...) {
		return nil, &RuleApplicationError{Rule: r.Name, Msg: "premises do not match rule schema"}
	}
	return r.apply(args), nil
}

// Shape helpers shared by the rule tables.

func binary(f ast.Formula, op ast.BinaryOp) (*ast.Binary, bool) {
	b, ok := f.(*ast.Binary)
	if !ok || b.Op != op {
		return nil, false
	}
	return b, true
}

func negated(f ast.Formula) (ast.Formula, bool) {
	u, ok := f.(*ast.Unary)
	if !ok {
		return nil, false
	}
	return u.Operand, true
}

func deontic(f ast.Formula, op ast.DeonticOp) (*ast.Deontic, bool) {
	d, ok := f.(*ast.Deontic)
	if !ok || d.Op != op {
		return nil, false
	}
	return d, true
}

func temporal(f ast.Formula, op ast.TemporalOp) (*ast.Temporal, bool) {
	t, ok := f.(*ast.Temporal)
	if !ok || t.Op != op {
		return nil, false
	}
	return t, true
}

func binaryTemporal(f ast.Formula, op ast.BinaryTemporalOp) (*ast.BinaryTemporal, bool) {
	bt, ok := f.(*ast.BinaryTemporal)
	if !ok || bt.Op != op {
		return nil, false
	}
	return bt, true
}

func universal(f ast.Formula) (*ast.Quantified, bool) {
	q, ok := f.(*ast.Quantified)
	if !ok || q.Quantifier != ast.Forall {
		return nil, false
	}
	return q, true
}

func and(l, r ast.Formula) ast.Formula     { return &ast.Binary{Op: ast.And, Left: l, Right: r} }
func or(l, r ast.Formula) ast.Formula      { return &ast.Binary{Op: ast.Or, Left: l, Right: r} }
func implies(l, r ast.Formula) ast.Formula { return &ast.Binary{Op: ast.Implies, Left: l, Right: r} }
func always(f ast.Formula) ast.Formula     { return &ast.Temporal{Op: ast.Always, Operand: f} }
func eventually(f ast.Formula) ast.Formula { return &ast.Temporal{Op: ast.Eventually, Operand: f} }
func next(f ast.Formula) ast.Formula       { return &ast.Temporal{Op: ast.Next, Operand: f} }
func until(l, r ast.Formula) ast.Formula {
	return &ast.BinaryTemporal{Op: ast.Until, Left: l, Right: r}
}
func obligation(f ast.Formula) ast.Formula {
	return &ast.Deontic{Op: ast.Obligation, Operand: f}
}
func permission(f ast.Formula) ast.Formula {
	return &ast.Deontic{Op: ast.Permission, Operand: f}
}
func prohibition(f ast.Formula) ast.Formula {
	return &ast.Deontic{Op: ast.Prohibition, Operand: f}
}
