// Package graph builds dependency graphs over formulas: which derived
// formulas rest on which axioms and intermediate results. Graphs come from
// a proof's step chain or from a whole knowledge base, and support
// reachability queries, cycle detection, topological ordering, and export.
package graph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// NodeType distinguishes axioms from derived formulas.
type NodeType int

const (
	Axiom NodeType = iota
	Derived
)

func (t NodeType) String() string {
	if t == Axiom {
		return "axiom"
	}
	return "derived"
}

// Node is one formula in the graph. The key is the formula's canonical
// string form, so structurally equal formulas share a node.
type Node struct {
	Key           string
	Formula       ast.Formula
	Type          NodeType
	RuleName      string
	Justification string
}

// CircularDependencyError reports a cycle found where none is permitted.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency through %v", e.Cycle)
}

// Graph is a formula dependency graph. Edges run from a dependency to the
// formula derived from it. Safe for concurrent use.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	// out[k] holds the keys derived from k; in[k] holds k's dependencies.
	out map[string]map[string]struct{}
	in  map[string]map[string]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		out:   make(map[string]map[string]struct{}),
		in:    make(map[string]map[string]struct{}),
	}
}

// AddFormula registers a formula with edges from each dependency to it.
// Dependencies not yet present are added as axiom nodes. Re-adding an
// existing formula merges edges and upgrades an axiom to derived when a
// rule name is supplied.
func (g *Graph) AddFormula(f ast.Formula, deps []ast.Formula, ruleName, justification string, typ NodeType) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := g.ensure(f, typ, ruleName, justification)
	for _, d := range deps {
		dk := g.ensure(d, Axiom, "", "")
		g.out[dk][key] = struct{}{}
		g.in[key][dk] = struct{}{}
	}
}

func (g *Graph) ensure(f ast.Formula, typ NodeType, rule, justification string) string {
	key := f.String()
	if n, ok := g.nodes[key]; ok {
		if typ == Derived && n.Type == Axiom {
			n.Type = Derived
			n.RuleName = rule
			n.Justification = justification
		}
		return key
	}
	g.nodes[key] = &Node{
		Key:           key,
		Formula:       f,
		Type:          typ,
		RuleName:      rule,
		Justification: justification,
	}
	g.out[key] = make(map[string]struct{})
	g.in[key] = make(map[string]struct{})
	return key
}

// FromProof builds a graph from a proof's step chain. Steps with premises
// become derived nodes; premises that are not themselves steps become
// axiom nodes.
func FromProof(result ast.ProofResult) *Graph {
	g := New()
	for _, step := range result.Steps {
		typ := Derived
		if len(step.Premises) == 0 {
			typ = Axiom
		}
		g.AddFormula(step.Formula, step.Premises, step.RuleName, step.Justification, typ)
	}
	return g
}

// FromKnowledgeBase builds a graph whose axiom nodes are the knowledge
// base's axioms and whose derived nodes are its theorems, without edges.
func FromKnowledgeBase(kb *ast.KnowledgeBase) *Graph {
	g := New()
	if kb == nil {
		return g
	}
	for _, ax := range kb.Axioms() {
		g.AddFormula(ax, nil, "", "", Axiom)
	}
	for _, th := range kb.Theorems() {
		g.AddFormula(th, nil, "", "", Derived)
	}
	return g
}

// Node returns the node for a formula, if present.
func (g *Graph) Node(f ast.Formula) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[f.String()]
	return n, ok
}

// Len reports the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Keys returns all node keys in sorted order.
func (g *Graph) Keys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sortedKeysLocked()
}

func (g *Graph) sortedKeysLocked() []string {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dependencies returns the direct dependencies of a formula, sorted.
func (g *Graph) Dependencies(f ast.Formula) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedSet(g.in[f.String()])
}

// AllDependencies returns the transitive dependency closure of a formula,
// sorted, excluding the formula itself.
func (g *Graph) AllDependencies(f ast.Formula) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	start := f.String()
	seen := make(map[string]struct{})
	stack := []string{start}
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dep := range g.in[k] {
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}
	delete(seen, start)
	return sortedSet(seen)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
