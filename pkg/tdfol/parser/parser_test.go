package parser

import (
	"errors"
	"testing"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

func TestParseRoundTrip(t *testing.T) {
	// parse(format(f)) must be structurally equal to f.
	inputs := []string{
		"P",
		"¬P",
		"(P ∧ Q)",
		"(P ∨ Q)",
		"(P → Q)",
		"(P ↔ Q)",
		"∀x P(x)",
		"∃x P(x)",
		"∀x (P(x) → Q(x))",
		"O(P)",
		"P(Q)",
		"F(P)",
		"□P",
		"◊P",
		"X P",
		"(P U Q)",
		"(P S Q)",
		"O(□P(a))",
		"□O(Pay(agent1))",
		"∀x:Agent Moves(x)",
		"Loves(alice, bob)",
		"P(f(a, b))",
		"¬¬P",
		"((P ∧ Q) → ◊R)",
	}
	for _, text := range inputs {
		f, err := Parse(text)
		if err != nil {
			t.Errorf("Parse(%q): %v", text, err)
			continue
		}
		again, err := Parse(f.String())
		if err != nil {
			t.Errorf("reparse of %q (from %q): %v", f.String(), text, err)
			continue
		}
		if !ast.Equal(f, again) {
			t.Errorf("round trip of %q: %q != %q", text, f.String(), again.String())
		}
	}
}

func TestParseASCIIFallbacks(t *testing.T) {
	cases := map[string]string{
		"P & Q":           "(P ∧ Q)",
		"P | Q":           "(P ∨ Q)",
		"P -> Q":          "(P → Q)",
		"P <-> Q":         "(P ↔ Q)",
		"~P":              "¬P",
		"!P":              "¬P",
		"[]P":             "□P",
		"<>P":             "◊P",
		"forall x P(x)":   "∀x P(x)",
		"exists x P(x)":   "∃x P(x)",
		"G P":             "□P",
	}
	for input, want := range cases {
		f, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q): %v", input, err)
			continue
		}
		if f.String() != want {
			t.Errorf("Parse(%q) = %q, want %q", input, f.String(), want)
		}
	}
}

func TestParsePrecedence(t *testing.T) {
	cases := map[string]string{
		// NOT binds tighter than AND.
		"~P & Q": "(¬P ∧ Q)",
		// AND binds tighter than OR.
		"P | Q & R": "(P ∨ (Q ∧ R))",
		// OR binds tighter than IMPLIES.
		"P | Q -> R": "((P ∨ Q) → R)",
		// IMPLIES is right-associative.
		"P -> Q -> R": "(P → (Q → R))",
		// IMPLIES binds tighter than IFF.
		"P <-> Q -> R": "(P ↔ (Q → R))",
		// UNTIL binds tighter than AND.
		"P U Q & R": "((P U Q) ∧ R)",
	}
	for input, want := range cases {
		f, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q): %v", input, err)
			continue
		}
		if f.String() != want {
			t.Errorf("Parse(%q) = %q, want %q", input, f.String(), want)
		}
	}
}

func TestQuantifierScope(t *testing.T) {
	// The quantifier scopes to the end of the formula: both occurrences of
	// x in the body are the bound variable.
	f, err := Parse("∀x P(x) → Q(x)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	q, ok := f.(*ast.Quantified)
	if !ok {
		t.Fatalf("expected quantifier at top level, got %T", f)
	}
	if len(ast.FreeVars(q)) != 0 {
		t.Errorf("expected no free variables, got %v", ast.FreeVars(q))
	}
}

func TestDeonticVersusPredicate(t *testing.T) {
	// P over a term is a predicate; P over a formula is a permission.
	pred, err := Parse("P(a)")
	if err != nil {
		t.Fatalf("Parse(P(a)): %v", err)
	}
	if _, ok := pred.(*ast.Predicate); !ok {
		t.Errorf("P(a) should parse as a predicate, got %T", pred)
	}

	perm, err := Parse("P(Q(a))")
	if err != nil {
		t.Fatalf("Parse(P(Q(a))): %v", err)
	}
	d, ok := perm.(*ast.Deontic)
	if !ok || d.Op != ast.Permission {
		t.Errorf("P(Q(a)) should parse as a permission, got %T", perm)
	}
}

func TestWeakUntilAndReleaseDesugar(t *testing.T) {
	w, err := Parse("P W Q")
	if err != nil {
		t.Fatalf("Parse(P W Q): %v", err)
	}
	if w.String() != "((P U Q) ∨ □P)" {
		t.Errorf("weak until desugared to %q", w)
	}

	r, err := Parse("P R Q")
	if err != nil {
		t.Fatalf("Parse(P R Q): %v", err)
	}
	if r.String() != "¬(¬P U ¬Q)" {
		t.Errorf("release desugared to %q", r)
	}
}

func TestBoundVariablesBecomeVariables(t *testing.T) {
	// A binder makes any name a variable, even outside the u-z convention.
	f, err := Parse("∀agent Pays(agent)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	q := f.(*ast.Quantified)
	pred := q.Body.(*ast.Predicate)
	if _, ok := pred.Args[0].(*ast.Variable); !ok {
		t.Errorf("bound name should parse as a variable, got %T", pred.Args[0])
	}

	// The same name unbound is a constant.
	g, err := Parse("Pays(agent)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := g.(*ast.Predicate).Args[0].(*ast.Constant); !ok {
		t.Errorf("unbound multi-letter name should parse as a constant")
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"(P",
		"P &",
		"∀ P(x)",
		"p(a)",      // lowercase predicate
		"Q(A)",      // uppercase name in term position
		"P Q",       // trailing input
		"Oblige(x)", // identifier beginning with reserved letter O
	}
	for _, text := range bad {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q) should fail", text)
		} else {
			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Errorf("Parse(%q) returned %T, want *SyntaxError", text, err)
			}
		}
	}
}

func TestParseSafeAndMustParse(t *testing.T) {
	if _, ok := ParseSafe("(P"); ok {
		t.Error("ParseSafe should report failure on malformed input")
	}
	if f, ok := ParseSafe("P"); !ok || f.String() != "P" {
		t.Error("ParseSafe should succeed on valid input")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on malformed input")
		}
	}()
	MustParse("(P")
}
