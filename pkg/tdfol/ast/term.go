package ast

import (
	"sort"
	"strings"
)

// Term is a first-order term: a variable, a constant, or a function
// application over other terms.
type Term interface {
	String() string
	collectFreeVars(set map[string]struct{})
	isTerm()
}

// Variable is a named variable, optionally annotated with a sort.
type Variable struct {
	Name string
	Sort string // empty when unsorted
}

func (v *Variable) String() string {
	if v.Sort != "" {
		return v.Name + ":" + v.Sort
	}
	return v.Name
}

func (v *Variable) collectFreeVars(set map[string]struct{}) {
	set[v.Name] = struct{}{}
}

func (v *Variable) isTerm() {}

// Constant is a named constant symbol.
type Constant struct {
	Name string
}

func (c *Constant) String() string { return c.Name }

func (c *Constant) collectFreeVars(map[string]struct{}) {}

func (c *Constant) isTerm() {}

// FunctionApplication applies a named function to argument terms.
type FunctionApplication struct {
	Name string
	Args []Term
}

func (f *FunctionApplication) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *FunctionApplication) collectFreeVars(set map[string]struct{}) {
	for _, a := range f.Args {
		a.collectFreeVars(set)
	}
}

func (f *FunctionApplication) isTerm() {}

// TermFreeVars returns the sorted free variable names of a term.
func TermFreeVars(t Term) []string {
	set := make(map[string]struct{})
	t.collectFreeVars(set)
	return sortedNames(set)
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
