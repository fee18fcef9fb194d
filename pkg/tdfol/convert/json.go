package convert

import (
	"encoding/json"
	"fmt"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
)

// jsonFormula is the structured wire form. Kind selects which fields are
// populated; operators travel as stable lowercase names rather than the
// Unicode glyphs of the canonical text form.
type jsonFormula struct {
	Kind     string       `json:"kind"`
	Name     string       `json:"name,omitempty"`
	Op       string       `json:"op,omitempty"`
	Args     []jsonTerm   `json:"args,omitempty"`
	Operand  *jsonFormula `json:"operand,omitempty"`
	Left     *jsonFormula `json:"left,omitempty"`
	Right    *jsonFormula `json:"right,omitempty"`
	Variable *jsonTerm    `json:"variable,omitempty"`
	Body     *jsonFormula `json:"body,omitempty"`
}

type jsonTerm struct {
	Kind string     `json:"kind"`
	Name string     `json:"name"`
	Sort string     `json:"sort,omitempty"`
	Args []jsonTerm `json:"args,omitempty"`
}

var (
	binaryOpNames = map[ast.BinaryOp]string{
		ast.And: "and", ast.Or: "or", ast.Implies: "implies", ast.Iff: "iff",
	}
	quantifierNames = map[ast.Quantifier]string{
		ast.Forall: "forall", ast.Exists: "exists",
	}
	deonticOpNames = map[ast.DeonticOp]string{
		ast.Obligation: "obligation", ast.Permission: "permission", ast.Prohibition: "prohibition",
	}
	temporalOpNames = map[ast.TemporalOp]string{
		ast.Always: "always", ast.Eventually: "eventually", ast.Next: "next",
	}
	binaryTemporalOpNames = map[ast.BinaryTemporalOp]string{
		ast.Until: "until", ast.Since: "since",
	}
)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

var (
	binaryOpByName         = invert(binaryOpNames)
	quantifierByName       = invert(quantifierNames)
	deonticOpByName        = invert(deonticOpNames)
	temporalOpByName       = invert(temporalOpNames)
	binaryTemporalOpByName = invert(binaryTemporalOpNames)
)

// ToJSON serializes a formula in the structured wire form.
func ToJSON(f ast.Formula) ([]byte, error) {
	node, err := encodeFormula(f)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(node, "", "  ")
}

// FromJSON reconstructs a formula from the structured wire form.
func FromJSON(data []byte) (ast.Formula, error) {
	var node jsonFormula
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
	}
	return decodeFormula(&node)
}

func encodeFormula(f ast.Formula) (*jsonFormula, error) {
	switch n := f.(type) {
	case *ast.Predicate:
		args := make([]jsonTerm, len(n.Args))
		for i, a := range n.Args {
			args[i] = encodeTerm(a)
		}
		return &jsonFormula{Kind: "predicate", Name: n.Name, Args: args}, nil
	case *ast.Unary:
		inner, err := encodeFormula(n.Operand)
		if err != nil {
			return nil, err
		}
		return &jsonFormula{Kind: "not", Operand: inner}, nil
	case *ast.Binary:
		left, err := encodeFormula(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeFormula(n.Right)
		if err != nil {
			return nil, err
		}
		return &jsonFormula{Kind: "binary", Op: binaryOpNames[n.Op], Left: left, Right: right}, nil
	case *ast.Quantified:
		body, err := encodeFormula(n.Body)
		if err != nil {
			return nil, err
		}
		v := encodeTerm(n.Variable)
		return &jsonFormula{Kind: "quantified", Op: quantifierNames[n.Quantifier], Variable: &v, Body: body}, nil
	case *ast.Deontic:
		inner, err := encodeFormula(n.Operand)
		if err != nil {
			return nil, err
		}
		return &jsonFormula{Kind: "deontic", Op: deonticOpNames[n.Op], Operand: inner}, nil
	case *ast.Temporal:
		inner, err := encodeFormula(n.Operand)
		if err != nil {
			return nil, err
		}
		return &jsonFormula{Kind: "temporal", Op: temporalOpNames[n.Op], Operand: inner}, nil
	case *ast.BinaryTemporal:
		left, err := encodeFormula(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeFormula(n.Right)
		if err != nil {
			return nil, err
		}
		return &jsonFormula{Kind: "binary_temporal", Op: binaryTemporalOpNames[n.Op], Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("%w: unknown formula node %T", internalerr.ErrInvalidInput, f)
}

func encodeTerm(t ast.Term) jsonTerm {
	switch x := t.(type) {
	case *ast.Variable:
		return jsonTerm{Kind: "variable", Name: x.Name, Sort: x.Sort}
	case *ast.Constant:
		return jsonTerm{Kind: "constant", Name: x.Name}
	case *ast.FunctionApplication:
		args := make([]jsonTerm, len(x.Args))
		for i, a := range x.Args {
			args[i] = encodeTerm(a)
		}
		return jsonTerm{Kind: "function", Name: x.Name, Args: args}
	}
	return jsonTerm{}
}

func decodeFormula(node *jsonFormula) (ast.Formula, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: missing formula node", internalerr.ErrInvalidInput)
	}
	switch node.Kind {
	case "predicate":
		args := make([]ast.Term, len(node.Args))
		for i := range node.Args {
			t, err := decodeTerm(&node.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &ast.Predicate{Name: node.Name, Args: args}, nil
	case "not":
		inner, err := decodeFormula(node.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operand: inner}, nil
	case "binary":
		op, ok := binaryOpByName[node.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unknown binary op %q", internalerr.ErrInvalidInput, node.Op)
		}
		left, err := decodeFormula(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeFormula(node.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: op, Left: left, Right: right}, nil
	case "quantified":
		q, ok := quantifierByName[node.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unknown quantifier %q", internalerr.ErrInvalidInput, node.Op)
		}
		if node.Variable == nil || node.Variable.Kind != "variable" {
			return nil, fmt.Errorf("%w: quantifier without variable", internalerr.ErrInvalidInput)
		}
		body, err := decodeFormula(node.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Quantified{
			Quantifier: q,
			Variable:   &ast.Variable{Name: node.Variable.Name, Sort: node.Variable.Sort},
			Body:       body,
		}, nil
	case "deontic":
		op, ok := deonticOpByName[node.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unknown deontic op %q", internalerr.ErrInvalidInput, node.Op)
		}
		inner, err := decodeFormula(node.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Deontic{Op: op, Operand: inner}, nil
	case "temporal":
		op, ok := temporalOpByName[node.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unknown temporal op %q", internalerr.ErrInvalidInput, node.Op)
		}
		inner, err := decodeFormula(node.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Temporal{Op: op, Operand: inner}, nil
	case "binary_temporal":
		op, ok := binaryTemporalOpByName[node.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unknown binary temporal op %q", internalerr.ErrInvalidInput, node.Op)
		}
		left, err := decodeFormula(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeFormula(node.Right)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryTemporal{Op: op, Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("%w: unknown formula kind %q", internalerr.ErrInvalidInput, node.Kind)
}

func decodeTerm(node *jsonTerm) (ast.Term, error) {
	switch node.Kind {
	case "variable":
		return &ast.Variable{Name: node.Name, Sort: node.Sort}, nil
	case "constant":
		return &ast.Constant{Name: node.Name}, nil
	case "function":
		args := make([]ast.Term, len(node.Args))
		for i := range node.Args {
			t, err := decodeTerm(&node.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &ast.FunctionApplication{Name: node.Name, Args: args}, nil
	}
	return nil, fmt.Errorf("%w: unknown term kind %q", internalerr.ErrInvalidInput, node.Kind)
}
