package convert

import (
	"errors"
	"testing"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

func TestToFOL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"P(a)", "P(a)"},
		{"□P(a)", "P(a)"},
		{"◊P(a)", "P(a)"},
		{"X P(a)", "P(a)"},
		{"O(Pay(x))", "Pay(x)"},
		{"P(Pay(x))", "Pay(x)"},
		{"F(Steal(x))", "¬Steal(x)"},
		{"P U Q", "Q"},
		{"P S Q", "Q"},
		{"□(P → ◊Q)", "(P → Q)"},
		{"∀x O(Pay(x))", "∀x Pay(x)"},
		{"~□P", "¬P"},
	}
	for _, c := range cases {
		got := ToFOL(parser.MustParse(c.in))
		if got.String() != c.want {
			t.Errorf("ToFOL(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToTPTP(t *testing.T) {
	cases := []struct {
		name string
		role string
		in   string
		want string
	}{
		{"a1", "axiom", "P(a)", "fof(a1, axiom, p(a))."},
		{"a2", "axiom", "∀x (Signed(x) → Binding(x))", "fof(a2, axiom, ! [X] : (signed(X) => binding(X)))."},
		{"c1", "conjecture", "P & Q", "fof(c1, conjecture, (p & q))."},
		{"c2", "conjecture", "~P", "fof(c2, conjecture, ~ p)."},
		{"c3", "conjecture", "∃x P(x)", "fof(c3, conjecture, ? [X] : p(X))."},
		{"m1", "axiom", "□O(Pay(agent1))", "fof(m1, axiom, pay(agent1))."},
	}
	for _, c := range cases {
		got := ToTPTP(c.name, c.role, parser.MustParse(c.in))
		if got != c.want {
			t.Errorf("ToTPTP(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToPrologClauses(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"P(a)", []string{"p(a)."}},
		{"Mortal(socrates)", []string{"mortal(socrates)."}},
		{"∀x (Man(x) → Mortal(x))", []string{"mortal(X) :- man(X)."}},
		{"∀x ((P(x) ∧ Q(x)) → R(x))", []string{"r(X) :- p(X), q(X)."}},
		{"P(a) & Q(b)", []string{"p(a).", "q(b)."}},
	}
	for _, c := range cases {
		got, err := ToPrologClauses(parser.MustParse(c.in))
		if err != nil {
			t.Errorf("ToPrologClauses(%s): %v", c.in, err)
			continue
		}
		if len(got) != len(c.want) {
			t.Errorf("ToPrologClauses(%s) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("ToPrologClauses(%s)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestToPrologClausesRejectsNonHorn(t *testing.T) {
	for _, in := range []string{
		"P | Q",
		"~P",
		"∃x P(x)",
		"P -> (Q | R)",
		"O(Pay(x))",
		"□P",
	} {
		_, err := ToPrologClauses(parser.MustParse(in))
		if !errors.Is(err, ErrNotHorn) {
			t.Errorf("ToPrologClauses(%s): err = %v, want ErrNotHorn", in, err)
		}
		if !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("ErrNotHorn should wrap ErrInvalidInput, got %v", err)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	for _, in := range []string{
		"P(a)",
		"¬P",
		"(P ∧ Q)",
		"(P → (Q ∨ R))",
		"∀x:Agent (Signed(x) → Binding(x))",
		"∃y P(y)",
		"O(Pay(agent1))",
		"F(Steal(agent1))",
		"□◊P",
		"X Q(a)",
		"(P U Q)",
		"(P S Q)",
		"P(f(a, b))",
		"□O((Pay(x) ∧ Report(x)))",
	} {
		f := parser.MustParse(in)
		data, err := ToJSON(f)
		if err != nil {
			t.Errorf("ToJSON(%s): %v", in, err)
			continue
		}
		back, err := FromJSON(data)
		if err != nil {
			t.Errorf("FromJSON(%s): %v", in, err)
			continue
		}
		if !ast.Equal(f, back) {
			t.Errorf("round trip of %s gave %s", f, back)
		}
	}
}

func TestFromJSONErrors(t *testing.T) {
	cases := []string{
		`not json`,
		`{"kind":"mystery"}`,
		`{"kind":"binary","op":"xor","left":{"kind":"predicate","name":"P"},"right":{"kind":"predicate","name":"Q"}}`,
		`{"kind":"quantified","op":"forall","body":{"kind":"predicate","name":"P"}}`,
		`{"kind":"not"}`,
	}
	for _, in := range cases {
		if _, err := FromJSON([]byte(in)); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("FromJSON(%q): err = %v, want ErrInvalidInput", in, err)
		}
	}
}
