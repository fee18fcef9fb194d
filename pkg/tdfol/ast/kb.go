package ast

// KnowledgeBase holds the axioms and theorems available to a proof attempt.
// Both sequences are ordered and duplicate-free; entries can only be added,
// never removed. A knowledge base must not be mutated while a proof against
// it is in flight.
type KnowledgeBase struct {
	axioms   []Formula
	theorems []Formula
	index    map[string]struct{}
}

// NewKnowledgeBase creates an empty knowledge base.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{index: make(map[string]struct{})}
}

// AddAxiom appends an axiom unless a structurally equal formula is already
// present. Reports whether the axiom was added.
func (kb *KnowledgeBase) AddAxiom(f Formula) bool {
	key := f.String()
	if _, dup := kb.index[key]; dup {
		return false
	}
	kb.index[key] = struct{}{}
	kb.axioms = append(kb.axioms, f)
	return true
}

// AddTheorem appends a proved theorem unless already present.
// Reports whether the theorem was added.
func (kb *KnowledgeBase) AddTheorem(f Formula) bool {
	key := f.String()
	if _, dup := kb.index[key]; dup {
		return false
	}
	kb.index[key] = struct{}{}
	kb.theorems = append(kb.theorems, f)
	return true
}

// Axioms returns a copy of the ordered axiom list.
func (kb *KnowledgeBase) Axioms() []Formula {
	out := make([]Formula, len(kb.axioms))
	copy(out, kb.axioms)
	return out
}

// Theorems returns a copy of the ordered theorem list.
func (kb *KnowledgeBase) Theorems() []Formula {
	out := make([]Formula, len(kb.theorems))
	copy(out, kb.theorems)
	return out
}

// Contains reports whether a structurally equal formula exists among the
// axioms or theorems.
func (kb *KnowledgeBase) Contains(f Formula) bool {
	_, ok := kb.index[f.String()]
	return ok
}

// Len returns the total number of axioms and theorems.
func (kb *KnowledgeBase) Len() int {
	return len(kb.axioms) + len(kb.theorems)
}
