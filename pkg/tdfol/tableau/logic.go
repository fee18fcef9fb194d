package tableau

import "github.com/cognicore/tdfol/pkg/tdfol/ast"

// Logic captures the accessibility constraints a tableau run works under.
type Logic struct {
	Name       string
	Serial     bool // D: obligations imply permissions
	Reflexive  bool // T: what always holds, holds now
	Transitive bool // 4: always is idempotent
}

// SelectLogic picks the weakest logic that covers the modal operators in
// the given formulas. A deontic operator anywhere adds D constraints; any
// temporal operator (nested or single-level) adds S4 constraints; with no
// modal operators at all, minimal K applies.
func SelectLogic(formulas ...ast.Formula) Logic {
	var deontic, temporal bool
	for _, f := range formulas {
		if f == nil {
			continue
		}
		d, t := scanModal(f)
		deontic = deontic || d
		temporal = temporal || t
	}
	logic := Logic{Name: "K"}
	if temporal {
		logic = Logic{Name: "S4", Reflexive: true, Transitive: true}
	}
	if deontic {
		logic.Serial = true
		if temporal {
			logic.Name = "D+S4"
		} else {
			logic.Name = "D"
		}
	}
	return logic
}

// HasNestedTemporal reports whether a temporal operator occurs directly
// inside another temporal operator.
func HasNestedTemporal(f ast.Formula) bool {
	switch n := f.(type) {
	case *ast.Temporal:
		if isTemporal(n.Operand) {
			return true
		}
		return HasNestedTemporal(n.Operand)
	case *ast.BinaryTemporal:
		if isTemporal(n.Left) || isTemporal(n.Right) {
			return true
		}
		return HasNestedTemporal(n.Left) || HasNestedTemporal(n.Right)
	case *ast.Unary:
		return HasNestedTemporal(n.Operand)
	case *ast.Binary:
		return HasNestedTemporal(n.Left) || HasNestedTemporal(n.Right)
	case *ast.Quantified:
		return HasNestedTemporal(n.Body)
	case *ast.Deontic:
		return HasNestedTemporal(n.Operand)
	}
	return false
}

// HasDeontic reports whether any deontic operator occurs in f.
func HasDeontic(f ast.Formula) bool {
	d, _ := scanModal(f)
	return d
}

// HasTemporal reports whether any temporal operator occurs in f.
func HasTemporal(f ast.Formula) bool {
	_, t := scanModal(f)
	return t
}

func isTemporal(f ast.Formula) bool {
	switch f.(type) {
	case *ast.Temporal, *ast.BinaryTemporal:
		return true
	}
	return false
}

func scanModal(f ast.Formula) (deontic, temporal bool) {
	switch n := f.(type) {
	case *ast.Deontic:
		_, t := scanModal(n.Operand)
		return true, t
	case *ast.Temporal:
		d, _ := scanModal(n.Operand)
		return d, true
	case *ast.BinaryTemporal:
		dl, _ := scanModal(n.Left)
		dr, _ := scanModal(n.Right)
		return dl || dr, true
	case *ast.Unary:
		return scanModal(n.Operand)
	case *ast.Binary:
		dl, tl := scanModal(n.Left)
		dr, tr := scanModal(n.Right)
		return dl || dr, tl || tr
	case *ast.Quantified:
		return scanModal(n.Body)
	}
	return false, false
}
