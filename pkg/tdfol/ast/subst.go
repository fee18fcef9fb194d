package ast

import "strconv"

// Substitute replaces every free occurrence of the named variable in f with
// the given term. Bound variables that would capture a variable of the
// replacement term are renamed first.
func Substitute(f Formula, name string, replacement Term) Formula {
	replVars := make(map[string]struct{})
	replacement.collectFreeVars(replVars)
	return substFormula(f, name, replacement, replVars)
}

func substFormula(f Formula, name string, repl Term, replVars map[string]struct{}) Formula {
	switch n := f.(type) {
	case *Predicate:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = substTerm(a, name, repl)
		}
		return &Predicate{Name: n.Name, Args: args}
	case *Unary:
		return &Unary{Operand: substFormula(n.Operand, name, repl, replVars)}
	case *Binary:
		return &Binary{
			Op:    n.Op,
			Left:  substFormula(n.Left, name, repl, replVars),
			Right: substFormula(n.Right, name, repl, replVars),
		}
	case *Quantified:
		if n.Variable.Name == name {
			// The substituted variable is shadowed here.
			return n
		}
		bound := n.Variable
		body := n.Body
		if _, captures := replVars[bound.Name]; captures {
			fresh := freshName(bound.Name, body, replVars)
			renamed := &Variable{Name: fresh, Sort: bound.Sort}
			body = substFormula(body, bound.Name, renamed, map[string]struct{}{fresh: {}})
			bound = renamed
		}
		return &Quantified{
			Quantifier: n.Quantifier,
			Variable:   bound,
			Body:       substFormula(body, name, repl, replVars),
		}
	case *Deontic:
		return &Deontic{Op: n.Op, Operand: substFormula(n.Operand, name, repl, replVars)}
	case *Temporal:
		return &Temporal{Op: n.Op, Operand: substFormula(n.Operand, name, repl, replVars)}
	case *BinaryTemporal:
		return &BinaryTemporal{
			Op:    n.Op,
			Left:  substFormula(n.Left, name, repl, replVars),
			Right: substFormula(n.Right, name, repl, replVars),
		}
	}
	return f
}

func substTerm(t Term, name string, repl Term) Term {
	switch n := t.(type) {
	case *Variable:
		if n.Name == name {
			return repl
		}
		return n
	case *FunctionApplication:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = substTerm(a, name, repl)
		}
		return &FunctionApplication{Name: n.Name, Args: args}
	}
	return t
}

func freshName(base string, body Formula, avoid map[string]struct{}) string {
	used := make(map[string]struct{})
	body.collectFreeVars(used)
	for name := range avoid {
		used[name] = struct{}{}
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}

// Constants returns the sorted constant names occurring in a formula.
func Constants(f Formula) []string {
	set := make(map[string]struct{})
	collectConstants(f, set)
	return sortedNames(set)
}

func collectConstants(f Formula, set map[string]struct{}) {
	switch n := f.(type) {
	case *Predicate:
		for _, a := range n.Args {
			collectTermConstants(a, set)
		}
	case *Unary:
		collectConstants(n.Operand, set)
	case *Binary:
		collectConstants(n.Left, set)
		collectConstants(n.Right, set)
	case *Quantified:
		collectConstants(n.Body, set)
	case *Deontic:
		collectConstants(n.Operand, set)
	case *Temporal:
		collectConstants(n.Operand, set)
	case *BinaryTemporal:
		collectConstants(n.Left, set)
		collectConstants(n.Right, set)
	}
}

func collectTermConstants(t Term, set map[string]struct{}) {
	switch n := t.(type) {
	case *Constant:
		set[n.Name] = struct{}{}
	case *FunctionApplication:
		for _, a := range n.Args {
			collectTermConstants(a, set)
		}
	}
}

// ReplaceConstant replaces every occurrence of the named constant in f with
// the given term. Used by existential generalization.
func ReplaceConstant(f Formula, name string, replacement Term) Formula {
	switch n := f.(type) {
	case *Predicate:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = replaceConstTerm(a, name, replacement)
		}
		return &Predicate{Name: n.Name, Args: args}
	case *Unary:
		return &Unary{Operand: ReplaceConstant(n.Operand, name, replacement)}
	case *Binary:
		return &Binary{Op: n.Op, Left: ReplaceConstant(n.Left, name, replacement), Right: ReplaceConstant(n.Right, name, replacement)}
	case *Quantified:
		return &Quantified{Quantifier: n.Quantifier, Variable: n.Variable, Body: ReplaceConstant(n.Body, name, replacement)}
	case *Deontic:
		return &Deontic{Op: n.Op, Operand: ReplaceConstant(n.Operand, name, replacement)}
	case *Temporal:
		return &Temporal{Op: n.Op, Operand: ReplaceConstant(n.Operand, name, replacement)}
	case *BinaryTemporal:
		return &BinaryTemporal{Op: n.Op, Left: ReplaceConstant(n.Left, name, replacement), Right: ReplaceConstant(n.Right, name, replacement)}
	}
	return f
}

func replaceConstTerm(t Term, name string, repl Term) Term {
	switch n := t.(type) {
	case *Constant:
		if n.Name == name {
			return repl
		}
		return n
	case *FunctionApplication:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = replaceConstTerm(a, name, repl)
		}
		return &FunctionApplication{Name: n.Name, Args: args}
	}
	return t
}

// Size returns the number of term and formula nodes in f. Strategies use it
// to bound the growth of derived formulas.
func Size(f Formula) int {
	switch n := f.(type) {
	case *Predicate:
		size := 1
		for _, a := range n.Args {
			size += termSize(a)
		}
		return size
	case *Unary:
		return 1 + Size(n.Operand)
	case *Binary:
		return 1 + Size(n.Left) + Size(n.Right)
	case *Quantified:
		return 2 + Size(n.Body)
	case *Deontic:
		return 1 + Size(n.Operand)
	case *Temporal:
		return 1 + Size(n.Operand)
	case *BinaryTemporal:
		return 1 + Size(n.Left) + Size(n.Right)
	}
	return 1
}

func termSize(t Term) int {
	if fa, ok := t.(*FunctionApplication); ok {
		size := 1
		for _, a := range fa.Args {
			size += termSize(a)
		}
		return size
	}
	return 1
}
