package ast

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Equal reports structural equality of two formulas. The canonical string
// form is injective over formula structure, so comparing it is equivalent
// to a node-by-node walk.
func Equal(a, b Formula) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// Hash returns a deterministic content hash of a formula. The hash depends
// only on formula structure, so it is stable across processes.
func Hash(f Formula) uint64 {
	return xxhash.Sum64String(f.String())
}

// ContentKey returns a deterministic key over a goal formula and an ordered
// axiom list, suitable for content-addressed caching.
func ContentKey(goal Formula, axioms []Formula) string {
	d := xxhash.New()
	d.WriteString(goal.String())
	for _, ax := range axioms {
		d.Write([]byte{0})
		d.WriteString(ax.String())
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
