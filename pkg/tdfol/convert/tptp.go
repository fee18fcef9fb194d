package convert

import (
	"fmt"
	"strings"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// ToTPTP renders the first-order projection of a formula as a TPTP fof
// annotated formula. role is typically "axiom" or "conjecture". Modal
// operators are stripped via ToFOL first; TPTP has no syntax for them.
func ToTPTP(name, role string, f ast.Formula) string {
	return fmt.Sprintf("fof(%s, %s, %s).", name, role, tptpFormula(ToFOL(f)))
}

func tptpFormula(f ast.Formula) string {
	switch n := f.(type) {
	case *ast.Predicate:
		if len(n.Args) == 0 {
			return tptpLower(n.Name)
		}
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = tptpTerm(a)
		}
		return fmt.Sprintf("%s(%s)", tptpLower(n.Name), strings.Join(args, ","))
	case *ast.Unary:
		return "~ " + tptpFormula(n.Operand)
	case *ast.Binary:
		op := map[ast.BinaryOp]string{
			ast.And:     "&",
			ast.Or:      "|",
			ast.Implies: "=>",
			ast.Iff:     "<=>",
		}[n.Op]
		return fmt.Sprintf("(%s %s %s)", tptpFormula(n.Left), op, tptpFormula(n.Right))
	case *ast.Quantified:
		q := "!"
		if n.Quantifier == ast.Exists {
			q = "?"
		}
		return fmt.Sprintf("%s [%s] : %s", q, tptpUpper(n.Variable.Name), tptpFormula(n.Body))
	}
	// ToFOL leaves no modal nodes; anything else is a formula we cannot
	// name, rendered as a fresh proposition.
	return "unsupported"
}

func tptpTerm(t ast.Term) string {
	switch x := t.(type) {
	case *ast.Variable:
		return tptpUpper(x.Name)
	case *ast.Constant:
		return tptpLower(x.Name)
	case *ast.FunctionApplication:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = tptpTerm(a)
		}
		return fmt.Sprintf("%s(%s)", tptpLower(x.Name), strings.Join(args, ","))
	}
	return "unsupported"
}

// tptpUpper forces the TPTP variable convention (leading uppercase).
func tptpUpper(name string) string {
	if name == "" {
		return "X"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// tptpLower forces the TPTP functor convention (leading lowercase).
func tptpLower(name string) string {
	if name == "" {
		return "p"
	}
	return strings.ToLower(name[:1]) + name[1:]
}
