// Package backend defines the capability-registration interface for
// external proof oracles. Each oracle registers itself at startup (usually
// from an init function); absence of a backend is a checked, normal state,
// not an error condition.
package backend

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
)

// Verdict is an oracle's answer. Oracles are consulted as stateless
// advisors; VerdictUnknown means the oracle could not decide, not that the
// goal is false.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictTrue
	VerdictFalse
)

func (v Verdict) String() string {
	switch v {
	case VerdictTrue:
		return "true"
	case VerdictFalse:
		return "false"
	}
	return "unknown"
}

// Oracle proves goals against a knowledge base using an external engine.
type Oracle interface {
	Name() string
	Prove(ctx context.Context, goal ast.Formula, kb *ast.KnowledgeBase) (Verdict, error)
}

var (
	mu      sync.RWMutex
	oracles = make(map[string]Oracle)
)

// Register installs an oracle under its name. Registering two oracles
// with the same name panics, matching the database/sql driver convention.
func Register(o Oracle) {
	mu.Lock()
	defer mu.Unlock()
	name := o.Name()
	if _, dup := oracles[name]; dup {
		panic(fmt.Sprintf("backend: Register called twice for oracle %q", name))
	}
	oracles[name] = o
}

// Lookup returns the oracle registered under name.
func Lookup(name string) (Oracle, error) {
	mu.RLock()
	defer mu.RUnlock()
	o, ok := oracles[name]
	if !ok {
		return nil, fmt.Errorf("%w: oracle %q not registered", internalerr.ErrBackendUnavailable, name)
	}
	return o, nil
}

// Names lists the registered oracles in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(oracles))
	for name := range oracles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
