// Package tableau implements the shared signed-formula expansion rules for
// the five propositional connectives and a modal tableau proof strategy
// built on them.
package tableau

import "github.com/cognicore/tdfol/pkg/tdfol/ast"

// Signed is a formula with a sign. Negated true means the branch asserts
// the formula is false.
type Signed struct {
	Formula ast.Formula
	Negated bool
}

// Key returns the closure key of the signed formula.
func (s Signed) Key() string {
	return s.Formula.String()
}

// Expansion is the result of expanding one signed formula. A linear
// expansion extends the current branch; a branching expansion forks it.
// Refutation requires every branch to close, model search requires any
// branch to stay open.
type Expansion struct {
	Linear   []Signed
	Branches [][]Signed
}

// Branching reports whether the expansion forks the branch.
func (e Expansion) Branching() bool { return len(e.Branches) > 0 }

type expansionKey struct {
	op      ast.BinaryOp
	negated bool
}

// binaryExpansions is the (connective, sign) dispatch table.
var binaryExpansions = map[expansionKey]func(l, r ast.Formula) Expansion{
	{ast.And, false}: func(l, r ast.Formula) Expansion {
		return Expansion{Linear: []Signed{{l, false}, {r, false}}}
	},
	{ast.And, true}: func(l, r ast.Formula) Expansion {
		return Expansion{Branches: [][]Signed{{{l, true}}, {{r, true}}}}
	},
	{ast.Or, false}: func(l, r ast.Formula) Expansion {
		return Expansion{Branches: [][]Signed{{{l, false}}, {{r, false}}}}
	},
	{ast.Or, true}: func(l, r ast.Formula) Expansion {
		return Expansion{Linear: []Signed{{l, true}, {r, true}}}
	},
	{ast.Implies, false}: func(l, r ast.Formula) Expansion {
		return Expansion{Branches: [][]Signed{{{l, true}}, {{r, false}}}}
	},
	{ast.Implies, true}: func(l, r ast.Formula) Expansion {
		return Expansion{Linear: []Signed{{l, false}, {r, true}}}
	},
	{ast.Iff, false}: func(l, r ast.Formula) Expansion {
		return Expansion{Branches: [][]Signed{
			{{l, false}, {r, false}},
			{{l, true}, {r, true}},
		}}
	},
	{ast.Iff, true}: func(l, r ast.Formula) Expansion {
		return Expansion{Branches: [][]Signed{
			{{l, false}, {r, true}},
			{{l, true}, {r, false}},
		}}
	},
}

// ExpansionFor maps a signed formula to its expansion. Atomic predicates
// and modal leaves have none; they are tableau leaves and the second
// return value is false.
func ExpansionFor(s Signed) (Expansion, bool) {
	switch f := s.Formula.(type) {
	case *ast.Unary:
		// NOT flips the sign of its operand.
		return Expansion{Linear: []Signed{{f.Operand, !s.Negated}}}, true
	case *ast.Binary:
		expand, ok := binaryExpansions[expansionKey{f.Op, s.Negated}]
		if !ok {
			return Expansion{}, false
		}
		return expand(f.Left, f.Right), true
	}
	return Expansion{}, false
}
