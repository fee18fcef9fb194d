package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
	"github.com/cognicore/tdfol/pkg/tdfol/store"
)

func openStore(t *testing.T) store.Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "proofs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveGetResult(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	saved := ast.ProofResult{
		ID:      "01J0000000000000000000TEST",
		Status:  ast.StatusProved,
		Formula: parser.MustParse("Q(a)"),
		Method:  "forward_chaining",
		Elapsed: 42 * time.Millisecond,
		Steps: []ast.ProofStep{
			{Formula: parser.MustParse("(P(a) → Q(a))"), RuleName: "universal_instantiation", Justification: "from axiom 0"},
			{Formula: parser.MustParse("Q(a)"), RuleName: "modus_ponens", Justification: "from previous"},
		},
	}
	if err := s.SaveResult(ctx, "key-1", saved); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetResult(ctx, "key-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != saved.ID || got.Status != saved.Status || got.Method != saved.Method {
		t.Errorf("got %+v", got)
	}
	if got.Elapsed != saved.Elapsed {
		t.Errorf("elapsed = %v", got.Elapsed)
	}
	if !ast.Equal(got.Formula, saved.Formula) {
		t.Errorf("formula = %s", got.Formula)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("steps = %d", len(got.Steps))
	}
	if got.Steps[0].RuleName != "universal_instantiation" || got.Steps[1].RuleName != "modus_ponens" {
		t.Errorf("step order wrong: %v", got.Steps)
	}
	if !ast.Equal(got.Steps[1].Formula, saved.Steps[1].Formula) {
		t.Errorf("step formula = %s", got.Steps[1].Formula)
	}
}

func TestSaveResultReplaces(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	goal := parser.MustParse("P")

	first := ast.ProofResult{ID: "id-1", Status: ast.StatusUnknown, Formula: goal, Method: "backward_chaining"}
	second := ast.ProofResult{ID: "id-2", Status: ast.StatusProved, Formula: goal, Method: "modal_tableaux",
		Steps: []ast.ProofStep{{Formula: goal, RuleName: "known_formula"}}}

	if err := s.SaveResult(ctx, "key-1", first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveResult(ctx, "key-1", second); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetResult(ctx, "key-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "id-2" || got.Status != ast.StatusProved || len(got.Steps) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestGetResultNotFound(t *testing.T) {
	s := openStore(t)
	if _, err := s.GetResult(context.Background(), "absent"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestKnowledgeBaseRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	kb := ast.NewKnowledgeBase()
	kb.AddAxiom(parser.MustParse("∀x (Signed(x) → Binding(x))"))
	kb.AddAxiom(parser.MustParse("Signed(contract1)"))
	kb.AddTheorem(parser.MustParse("Binding(contract1)"))

	if err := s.SaveKnowledgeBase(ctx, "contracts", kb); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadKnowledgeBase(ctx, "contracts")
	if err != nil {
		t.Fatal(err)
	}

	if n := len(loaded.Axioms()); n != 2 {
		t.Errorf("axioms = %d, want 2", n)
	}
	if n := len(loaded.Theorems()); n != 1 {
		t.Errorf("theorems = %d, want 1", n)
	}
	if !ast.Equal(loaded.Axioms()[0], kb.Axioms()[0]) {
		t.Errorf("axiom 0 = %s", loaded.Axioms()[0])
	}
}

func TestSaveKnowledgeBaseReplaces(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	kb1 := ast.NewKnowledgeBase()
	kb1.AddAxiom(parser.MustParse("P"))
	kb1.AddAxiom(parser.MustParse("Q"))
	kb2 := ast.NewKnowledgeBase()
	kb2.AddAxiom(parser.MustParse("M"))

	if err := s.SaveKnowledgeBase(ctx, "kb", kb1); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveKnowledgeBase(ctx, "kb", kb2); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadKnowledgeBase(ctx, "kb")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(loaded.Axioms()); n != 1 {
		t.Errorf("axioms = %d, want 1", n)
	}
}

func TestLoadKnowledgeBaseNotFound(t *testing.T) {
	s := openStore(t)
	if _, err := s.LoadKnowledgeBase(context.Background(), "absent"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListResults(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if out, err := s.ListResults(ctx); err != nil || len(out) != 0 {
		t.Fatalf("empty store: out=%v err=%v", out, err)
	}

	goal := parser.MustParse("P")
	for _, key := range []string{"k1", "k2"} {
		res := ast.ProofResult{ID: key, Status: ast.StatusProved, Formula: goal, Method: "modal_tableaux"}
		if err := s.SaveResult(ctx, key, res); err != nil {
			t.Fatal(err)
		}
	}

	out, err := s.ListResults(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("results = %d, want 2", len(out))
	}
	for _, summary := range out {
		if summary.Status != ast.StatusProved || summary.Formula != "P" || summary.Method != "modal_tableaux" {
			t.Errorf("summary = %+v", summary)
		}
		if summary.CreatedAt.IsZero() {
			t.Errorf("summary %s has no timestamp", summary.Key)
		}
	}
}

func TestDistinctKeysCoexist(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	goal := parser.MustParse("P")

	for _, key := range []string{"k1", "k2"} {
		res := ast.ProofResult{ID: key, Status: ast.StatusProved, Formula: goal, Method: "modal_tableaux"}
		if err := s.SaveResult(ctx, key, res); err != nil {
			t.Fatal(err)
		}
	}
	for _, key := range []string{"k1", "k2"} {
		got, err := s.GetResult(ctx, key)
		if err != nil {
			t.Fatal(err)
		}
		if got.ID != key {
			t.Errorf("key %s returned id %s", key, got.ID)
		}
	}
}
