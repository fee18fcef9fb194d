// Package ast defines the term and formula data model for temporal-deontic
// first-order logic (TDFOL), along with the knowledge base and proof record
// types shared by the parser, rule library, and proof strategies.
//
// Formulas are immutable value types: rule application and parsing always
// produce new nodes, and two formulas are structurally equal exactly when
// their canonical string forms coincide.
package ast

import "strings"

// BinaryOp enumerates the binary propositional connectives.
type BinaryOp int

const (
	And BinaryOp = iota
	Or
	Implies
	Iff
)

func (op BinaryOp) String() string {
	switch op {
	case And:
		return "∧"
	case Or:
		return "∨"
	case Implies:
		return "→"
	case Iff:
		return "↔"
	}
	return "?"
}

// Quantifier enumerates the first-order quantifiers.
type Quantifier int

const (
	Forall Quantifier = iota
	Exists
)

func (q Quantifier) String() string {
	if q == Exists {
		return "∃"
	}
	return "∀"
}

// DeonticOp enumerates the deontic modalities.
type DeonticOp int

const (
	Obligation DeonticOp = iota
	Permission
	Prohibition
)

func (op DeonticOp) String() string {
	switch op {
	case Permission:
		return "P"
	case Prohibition:
		return "F"
	}
	return "O"
}

// TemporalOp enumerates the unary temporal modalities.
type TemporalOp int

const (
	Always TemporalOp = iota
	Eventually
	Next
)

func (op TemporalOp) String() string {
	switch op {
	case Eventually:
		return "◊"
	case Next:
		return "X "
	}
	return "□"
}

// BinaryTemporalOp enumerates the binary temporal modalities.
type BinaryTemporalOp int

const (
	Until BinaryTemporalOp = iota
	Since
)

func (op BinaryTemporalOp) String() string {
	if op == Since {
		return "S"
	}
	return "U"
}

// Formula is a node in the TDFOL formula tree.
//
// The canonical String form fully parenthesizes binary connectives, so
// parsing a formatted formula always reproduces the same structure.
type Formula interface {
	String() string
	collectFreeVars(set map[string]struct{})
	isFormula()
}

// Predicate is an atomic formula: a named predicate over terms.
// A predicate with no arguments is a propositional atom.
type Predicate struct {
	Name string
	Args []Term
}

func (p *Predicate) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return p.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (p *Predicate) collectFreeVars(set map[string]struct{}) {
	for _, a := range p.Args {
		a.collectFreeVars(set)
	}
}

func (p *Predicate) isFormula() {}

// Unary is a negated formula.
type Unary struct {
	Operand Formula
}

func (u *Unary) String() string { return "¬" + u.Operand.String() }

func (u *Unary) collectFreeVars(set map[string]struct{}) {
	u.Operand.collectFreeVars(set)
}

func (u *Unary) isFormula() {}

// Binary joins two formulas with a propositional connective.
type Binary struct {
	Op    BinaryOp
	Left  Formula
	Right Formula
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (b *Binary) collectFreeVars(set map[string]struct{}) {
	b.Left.collectFreeVars(set)
	b.Right.collectFreeVars(set)
}

func (b *Binary) isFormula() {}

// Quantified binds a variable over a body formula. The bound variable is
// excluded from the free-variable set of the whole formula.
type Quantified struct {
	Quantifier Quantifier
	Variable   *Variable
	Body       Formula
}

func (q *Quantified) String() string {
	return q.Quantifier.String() + q.Variable.String() + " " + q.Body.String()
}

func (q *Quantified) collectFreeVars(set map[string]struct{}) {
	inner := make(map[string]struct{})
	q.Body.collectFreeVars(inner)
	delete(inner, q.Variable.Name)
	for name := range inner {
		set[name] = struct{}{}
	}
}

func (q *Quantified) isFormula() {}

// Deontic wraps a formula in a deontic modality.
type Deontic struct {
	Op      DeonticOp
	Operand Formula
}

func (d *Deontic) String() string {
	return d.Op.String() + "(" + d.Operand.String() + ")"
}

func (d *Deontic) collectFreeVars(set map[string]struct{}) {
	d.Operand.collectFreeVars(set)
}

func (d *Deontic) isFormula() {}

// Temporal wraps a formula in a unary temporal modality.
type Temporal struct {
	Op      TemporalOp
	Operand Formula
}

func (t *Temporal) String() string { return t.Op.String() + t.Operand.String() }

func (t *Temporal) collectFreeVars(set map[string]struct{}) {
	t.Operand.collectFreeVars(set)
}

func (t *Temporal) isFormula() {}

// BinaryTemporal joins two formulas with until or since.
type BinaryTemporal struct {
	Op    BinaryTemporalOp
	Left  Formula
	Right Formula
}

func (b *BinaryTemporal) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (b *BinaryTemporal) collectFreeVars(set map[string]struct{}) {
	b.Left.collectFreeVars(set)
	b.Right.collectFreeVars(set)
}

func (b *BinaryTemporal) isFormula() {}

// FreeVars returns the sorted free variable names of a formula.
func FreeVars(f Formula) []string {
	set := make(map[string]struct{})
	f.collectFreeVars(set)
	return sortedNames(set)
}

// Not negates a formula.
func Not(f Formula) Formula { return &Unary{Operand: f} }

// NewBinary builds a binary connective node.
func NewBinary(op BinaryOp, left, right Formula) Formula {
	return &Binary{Op: op, Left: left, Right: right}
}

// Atom builds a propositional atom.
func Atom(name string) Formula { return &Predicate{Name: name} }
