package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DOT renders the graph in Graphviz dot notation. Axiom nodes are boxes,
// derived nodes are ellipses; edges are labeled with the deriving rule.
func (g *Graph) DOT() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, k := range g.sortedKeysLocked() {
		n := g.nodes[k]
		shape := "ellipse"
		if n.Type == Axiom {
			shape = "box"
		}
		fmt.Fprintf(&b, "  %q [shape=%s];\n", k, shape)
	}
	for _, k := range g.sortedKeysLocked() {
		for _, next := range sortedSet(g.out[k]) {
			label := g.nodes[next].RuleName
			if label == "" {
				fmt.Fprintf(&b, "  %q -> %q;\n", k, next)
			} else {
				fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", k, next, label)
			}
		}
	}
	b.WriteString("}\n")
	return b.String()
}

type jsonNode struct {
	Key           string `json:"key"`
	Type          string `json:"type"`
	RuleName      string `json:"rule_name,omitempty"`
	Justification string `json:"justification,omitempty"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

// JSON serializes the graph as a structured node/edge document.
func (g *Graph) JSON() ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc := jsonGraph{}
	for _, k := range g.sortedKeysLocked() {
		n := g.nodes[k]
		doc.Nodes = append(doc.Nodes, jsonNode{
			Key:           n.Key,
			Type:          n.Type.String(),
			RuleName:      n.RuleName,
			Justification: n.Justification,
		})
	}
	for _, k := range g.sortedKeysLocked() {
		for _, next := range sortedSet(g.out[k]) {
			doc.Edges = append(doc.Edges, jsonEdge{From: k, To: next})
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// AdjacencyMatrix returns the node keys in sorted order together with the
// matrix m where m[i][j] == 1 when an edge runs from keys[i] to keys[j].
func (g *Graph) AdjacencyMatrix() ([]string, [][]int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := g.sortedKeysLocked()
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	matrix := make([][]int, len(keys))
	for i := range matrix {
		matrix[i] = make([]int, len(keys))
	}
	for k, targets := range g.out {
		for next := range targets {
			matrix[index[k]][index[next]] = 1
		}
	}
	return keys, matrix
}
