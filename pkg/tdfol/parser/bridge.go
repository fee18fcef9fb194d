package parser

import (
	"errors"
	"sync"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// ErrDCECUnavailable is returned by ParseDCEC when no bridge is registered.
// Absence of the bridge is a normal, checked state.
var ErrDCECUnavailable = errors.New("parser: no DCEC bridge registered")

// DCECBridge converts DCEC S-expression text into the shared Formula AST.
type DCECBridge func(text string) (ast.Formula, error)

var (
	dcecMu     sync.RWMutex
	dcecBridge DCECBridge
)

// RegisterDCEC installs a DCEC bridge. Importing the dcec subpackage for
// side effects registers the default one, in the same way a database/sql
// driver registers itself.
func RegisterDCEC(bridge DCECBridge) {
	dcecMu.Lock()
	defer dcecMu.Unlock()
	dcecBridge = bridge
}

// DCECAvailable reports whether a DCEC bridge is registered.
func DCECAvailable() bool {
	dcecMu.RLock()
	defer dcecMu.RUnlock()
	return dcecBridge != nil
}

// ParseDCEC parses DCEC S-expression text through the registered bridge.
func ParseDCEC(text string) (ast.Formula, error) {
	dcecMu.RLock()
	bridge := dcecBridge
	dcecMu.RUnlock()
	if bridge == nil {
		return nil, ErrDCECUnavailable
	}
	return bridge(text)
}
