package graph

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

// chainGraph builds Axiom1 -> Lemma1 -> Theorem1 with a disconnected
// Axiom2 on the side.
func chainGraph() *Graph {
	g := New()
	axiom1 := parser.MustParse("Axiom1")
	axiom2 := parser.MustParse("Axiom2")
	lemma := parser.MustParse("Lemma1")
	theorem := parser.MustParse("Theorem1")

	g.AddFormula(axiom1, nil, "", "", Axiom)
	g.AddFormula(axiom2, nil, "", "", Axiom)
	g.AddFormula(lemma, []ast.Formula{axiom1}, "modus_ponens", "from Axiom1", Derived)
	g.AddFormula(theorem, []ast.Formula{lemma}, "modus_ponens", "from Lemma1", Derived)
	return g
}

func TestAddFormulaAndNode(t *testing.T) {
	g := chainGraph()
	require.Equal(t, 4, g.Len())

	n, ok := g.Node(parser.MustParse("Lemma1"))
	require.True(t, ok)
	require.Equal(t, Derived, n.Type)
	require.Equal(t, "modus_ponens", n.RuleName)

	n, ok = g.Node(parser.MustParse("Axiom1"))
	require.True(t, ok)
	require.Equal(t, Axiom, n.Type)

	_, ok = g.Node(parser.MustParse("Missing"))
	require.False(t, ok)
}

func TestAxiomUpgradedToDerived(t *testing.T) {
	g := New()
	f := parser.MustParse("Lemma1")
	dep := parser.MustParse("Axiom1")

	// First seen as a bare dependency, later derived.
	g.AddFormula(parser.MustParse("Theorem1"), []ast.Formula{f}, "r", "", Derived)
	g.AddFormula(f, []ast.Formula{dep}, "modus_ponens", "", Derived)

	n, ok := g.Node(f)
	require.True(t, ok)
	require.Equal(t, Derived, n.Type)
	require.Equal(t, "modus_ponens", n.RuleName)
}

func TestDependencies(t *testing.T) {
	g := chainGraph()
	require.Equal(t, []string{"Lemma1"}, g.Dependencies(parser.MustParse("Theorem1")))
	require.Empty(t, g.Dependencies(parser.MustParse("Axiom1")))
	require.Equal(t, []string{"Axiom1", "Lemma1"}, g.AllDependencies(parser.MustParse("Theorem1")))
}

func TestCriticalPath(t *testing.T) {
	g := chainGraph()
	require.Equal(t, []string{"Axiom1", "Lemma1", "Theorem1"}, g.CriticalPath("Axiom1", "Theorem1"))
	require.Equal(t, []string{"Axiom1"}, g.CriticalPath("Axiom1", "Axiom1"))
	require.Nil(t, g.CriticalPath("Axiom2", "Theorem1"))
	require.Nil(t, g.CriticalPath("Missing", "Theorem1"))
}

func TestCriticalPathPrefersShortest(t *testing.T) {
	g := chainGraph()
	// Add a direct shortcut edge Axiom1 -> Theorem1.
	g.AddFormula(parser.MustParse("Theorem1"), []ast.Formula{parser.MustParse("Axiom1")}, "modus_ponens", "", Derived)
	require.Equal(t, []string{"Axiom1", "Theorem1"}, g.CriticalPath("Axiom1", "Theorem1"))
}

func TestAllPaths(t *testing.T) {
	g := chainGraph()
	g.AddFormula(parser.MustParse("Theorem1"), []ast.Formula{parser.MustParse("Axiom1")}, "modus_ponens", "", Derived)

	paths := g.AllPaths("Axiom1", "Theorem1", 0)
	require.Len(t, paths, 2)
	require.Contains(t, paths, []string{"Axiom1", "Theorem1"})
	require.Contains(t, paths, []string{"Axiom1", "Lemma1", "Theorem1"})

	// A length cap of 2 keeps only the direct path.
	paths = g.AllPaths("Axiom1", "Theorem1", 2)
	require.Equal(t, [][]string{{"Axiom1", "Theorem1"}}, paths)
}

func TestTopologicalSort(t *testing.T) {
	g := chainGraph()
	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[string]int)
	for i, k := range order {
		pos[k] = i
	}
	require.Less(t, pos["Axiom1"], pos["Lemma1"])
	require.Less(t, pos["Lemma1"], pos["Theorem1"])
}

func TestTopologicalSortCycle(t *testing.T) {
	g := New()
	p := parser.MustParse("P")
	q := parser.MustParse("Q")
	g.AddFormula(p, []ast.Formula{q}, "r", "", Derived)
	g.AddFormula(q, []ast.Formula{p}, "r", "", Derived)

	_, err := g.TopologicalSort()
	var cdErr *CircularDependencyError
	require.ErrorAs(t, err, &cdErr)
	require.ElementsMatch(t, []string{"P", "Q"}, cdErr.Cycle)
}

func TestDetectCycles(t *testing.T) {
	g := chainGraph()
	require.Empty(t, g.DetectCycles())

	p := parser.MustParse("P")
	q := parser.MustParse("Q")
	g.AddFormula(p, []ast.Formula{q}, "r", "", Derived)
	g.AddFormula(q, []ast.Formula{p}, "r", "", Derived)

	cycles := g.DetectCycles()
	require.Len(t, cycles, 1)
	cycle := cycles[0]
	require.Equal(t, cycle[0], cycle[len(cycle)-1])
	require.Len(t, cycle, 3)
}

func TestUnusedAxioms(t *testing.T) {
	g := chainGraph()
	require.Equal(t, []string{"Axiom2"}, g.UnusedAxioms())
}

func TestRedundantFormulas(t *testing.T) {
	g := chainGraph()
	// Lemma2 rests on the same closure as Lemma1 plus more, making Lemma1's
	// closure covered by Lemma2's.
	g.AddFormula(parser.MustParse("Lemma2"),
		[]ast.Formula{parser.MustParse("Axiom1"), parser.MustParse("Lemma1")}, "r", "", Derived)

	pairs := g.RedundantFormulas()
	require.Contains(t, pairs, [2]string{"Lemma1", "Lemma2"})
}

func TestFromProof(t *testing.T) {
	axiom := parser.MustParse("P(a)")
	derived := parser.MustParse("Q(a)")
	result := ast.ProofResult{
		Status: ast.StatusProved,
		Steps: []ast.ProofStep{
			{Formula: axiom, RuleName: "known_formula"},
			{Formula: derived, RuleName: "modus_ponens", Premises: []ast.Formula{axiom}},
		},
	}

	g := FromProof(result)
	require.Equal(t, 2, g.Len())

	n, ok := g.Node(axiom)
	require.True(t, ok)
	require.Equal(t, Axiom, n.Type)

	n, ok = g.Node(derived)
	require.True(t, ok)
	require.Equal(t, Derived, n.Type)
	require.Equal(t, []string{"P(a)"}, g.Dependencies(derived))
}

func TestFromKnowledgeBase(t *testing.T) {
	kb := ast.NewKnowledgeBase()
	kb.AddAxiom(parser.MustParse("P"))
	kb.AddTheorem(parser.MustParse("Q"))

	g := FromKnowledgeBase(kb)
	require.Equal(t, 2, g.Len())
	n, _ := g.Node(parser.MustParse("P"))
	require.Equal(t, Axiom, n.Type)
	n, _ = g.Node(parser.MustParse("Q"))
	require.Equal(t, Derived, n.Type)
}

func TestDOT(t *testing.T) {
	g := chainGraph()
	dot := g.DOT()
	require.True(t, strings.HasPrefix(dot, "digraph dependencies {"))
	require.Contains(t, dot, `"Axiom1" [shape=box];`)
	require.Contains(t, dot, `"Lemma1" [shape=ellipse];`)
	require.Contains(t, dot, `"Axiom1" -> "Lemma1" [label="modus_ponens"];`)
}

func TestJSONExport(t *testing.T) {
	g := chainGraph()
	data, err := g.JSON()
	require.NoError(t, err)

	var doc struct {
		Nodes []struct {
			Key  string `json:"key"`
			Type string `json:"type"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Nodes, 4)
	require.Len(t, doc.Edges, 2)
}

func TestAdjacencyMatrix(t *testing.T) {
	g := chainGraph()
	keys, matrix := g.AdjacencyMatrix()
	require.Len(t, keys, 4)
	require.Len(t, matrix, 4)

	index := make(map[string]int)
	for i, k := range keys {
		index[k] = i
	}
	require.Equal(t, 1, matrix[index["Axiom1"]][index["Lemma1"]])
	require.Equal(t, 1, matrix[index["Lemma1"]][index["Theorem1"]])
	require.Equal(t, 0, matrix[index["Axiom2"]][index["Lemma1"]])
}

func TestCircularDependencyErrorMessage(t *testing.T) {
	err := &CircularDependencyError{Cycle: []string{"P", "Q"}}
	require.Contains(t, err.Error(), "circular dependency")
	require.True(t, errors.As(error(err), new(*CircularDependencyError)))
}
