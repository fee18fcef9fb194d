package rules

import (
	"testing"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

func TestLibraryCounts(t *testing.T) {
	if n := len(Basic()); n != 15 {
		t.Errorf("Basic() has %d rules, want 15", n)
	}
	if n := len(Temporal()); n != 20 {
		t.Errorf("Temporal() has %d rules, want 20", n)
	}
	if n := len(Deontic()); n != 16 {
		t.Errorf("Deontic() has %d rules, want 16", n)
	}
	if n := len(Combined()); n != 9 {
		t.Errorf("Combined() has %d rules, want 9", n)
	}
	if n := len(All()); n != 60 {
		t.Errorf("All() has %d rules, want 60", n)
	}
}

func TestUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range All() {
		if seen[r.Name] {
			t.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
		if r.Description == "" {
			t.Errorf("rule %q has no description", r.Name)
		}
		if r.Arity < 1 || r.Arity > 3 {
			t.Errorf("rule %q has arity %d", r.Name, r.Arity)
		}
	}
}

// applyRule looks a rule up and applies it to parsed premises.
func applyRule(t *testing.T, name string, premises ...string) ast.Formula {
	t.Helper()
	rule, ok := ByName(name)
	if !ok {
		t.Fatalf("rule %q not registered", name)
	}
	args := make([]ast.Formula, len(premises))
	for i, text := range premises {
		args[i] = parser.MustParse(text)
	}
	if !rule.CanApply(args...) {
		t.Fatalf("rule %q should apply to %v", name, premises)
	}
	conclusion, err := rule.Apply(args...)
	if err != nil {
		t.Fatalf("rule %q: %v", name, err)
	}
	return conclusion
}

func TestBasicRules(t *testing.T) {
	cases := []struct {
		rule     string
		premises []string
		want     string
	}{
		{"modus_ponens", []string{"P -> Q", "P"}, "Q"},
		{"modus_tollens", []string{"P -> Q", "~Q"}, "¬P"},
		{"conjunction_introduction", []string{"P", "Q"}, "(P ∧ Q)"},
		{"conjunction_elimination_left", []string{"P & Q"}, "P"},
		{"conjunction_elimination_right", []string{"P & Q"}, "Q"},
		{"disjunction_introduction", []string{"P", "Q"}, "(P ∨ Q)"},
		{"disjunctive_syllogism", []string{"P | Q", "~P"}, "Q"},
		{"hypothetical_syllogism", []string{"P -> Q", "Q -> R"}, "(P → R)"},
		{"contraposition", []string{"P -> Q"}, "(¬Q → ¬P)"},
		{"double_negation_introduction", []string{"P"}, "¬¬P"},
		{"double_negation_elimination", []string{"~~P"}, "P"},
		{"de_morgan_and", []string{"~(P & Q)"}, "(¬P ∨ ¬Q)"},
		{"de_morgan_or", []string{"~(P | Q)"}, "(¬P ∧ ¬Q)"},
	}
	for _, c := range cases {
		got := applyRule(t, c.rule, c.premises...)
		if got.String() != c.want {
			t.Errorf("%s%v = %q, want %q", c.rule, c.premises, got, c.want)
		}
	}
}

func TestUniversalInstantiation(t *testing.T) {
	got := applyRule(t, "universal_instantiation", "∀x (P(x) → Q(x))", "P(a)")
	if got.String() != "(P(a) → Q(a))" {
		t.Errorf("instantiation = %q", got)
	}
}

func TestExistentialGeneralization(t *testing.T) {
	got := applyRule(t, "existential_generalization", "P(a)")
	q, ok := got.(*ast.Quantified)
	if !ok || q.Quantifier != ast.Exists {
		t.Fatalf("generalization = %q", got)
	}
	if len(ast.Constants(got)) != 0 {
		t.Errorf("constant should be replaced by the bound variable: %q", got)
	}
}

func TestTemporalRules(t *testing.T) {
	cases := []struct {
		rule     string
		premises []string
		want     string
	}{
		{"temporal_k_axiom", []string{"□(P → Q)", "□P"}, "□Q"},
		{"temporal_t_axiom", []string{"□P"}, "P"},
		{"temporal_s4_axiom", []string{"□P"}, "□□P"},
		{"temporal_s5_axiom", []string{"◊P"}, "□◊P"},
		{"always_necessitation", []string{"□P"}, "□□P"},
		{"eventually_introduction", []string{"P"}, "◊P"},
		{"eventually_expansion", []string{"◊P"}, "(P ∨ X ◊P)"},
		{"always_eventually_contraction", []string{"¬◊P"}, "□¬P"},
		{"always_eventually_expansion", []string{"¬□P"}, "◊¬P"},
		{"until_unfolding", []string{"P U Q"}, "(Q ∨ (P ∧ X (P U Q)))"},
	}
	for _, c := range cases {
		got := applyRule(t, c.rule, c.premises...)
		if got.String() != c.want {
			t.Errorf("%s%v = %q, want %q", c.rule, c.premises, got, c.want)
		}
	}
}

func TestDeonticRules(t *testing.T) {
	cases := []struct {
		rule     string
		premises []string
		want     string
	}{
		{"deontic_d_axiom", []string{"O(P)"}, "P(P)"},
		{"deontic_k_axiom", []string{"O(P → Q)", "O(P)"}, "O(Q)"},
		{"permission_introduction", []string{"¬O(¬P)"}, "P(P)"},
		{"prohibition_from_obligation", []string{"O(¬P)"}, "F(P)"},
		{"prohibition_equivalence", []string{"F(P)"}, "¬P(P)"},
		{"obligation_weakening", []string{"O(P ∧ Q)"}, "O(P)"},
		{"obligation_conjunction", []string{"O(P)", "O(Q)"}, "O((P ∧ Q))"},
	}
	for _, c := range cases {
		got := applyRule(t, c.rule, c.premises...)
		if got.String() != c.want {
			t.Errorf("%s%v = %q, want %q", c.rule, c.premises, got, c.want)
		}
	}
}

func TestCombinedRules(t *testing.T) {
	cases := []struct {
		rule     string
		premises []string
		want     string
	}{
		{"always_obligation_distribution", []string{"□O(P → Q)", "□O(P)"}, "□O(Q)"},
		{"temporal_obligation_persistence", []string{"□O(P)"}, "X O(P)"},
		{"future_temporal_obligation_persistence", []string{"□O(P)"}, "O(X P)"},
		{"contrary_to_duty", []string{"O(P)", "¬P", "¬P → O(Q)"}, "O(Q)"},
	}
	for _, c := range cases {
		got := applyRule(t, c.rule, c.premises...)
		if got.String() != c.want {
			t.Errorf("%s%v = %q, want %q", c.rule, c.premises, got, c.want)
		}
	}
}

func TestApplyWithoutCanApply(t *testing.T) {
	rule, _ := ByName("modus_ponens")
	// Wrong shapes: the second premise is not the antecedent.
	_, err := rule.Apply(parser.MustParse("P -> Q"), parser.MustParse("R"))
	if err == nil {
		t.Fatal("Apply on non-matching premises should fail")
	}
	if _, ok := err.(*RuleApplicationError); !ok {
		t.Errorf("error should be *RuleApplicationError, got %T", err)
	}
}

func TestCanApplyArityMismatch(t *testing.T) {
	rule, _ := ByName("modus_ponens")
	if rule.CanApply(parser.MustParse("P -> Q")) {
		t.Error("CanApply with wrong arity should report false")
	}
	if rule.CanApply(nil, nil) {
		t.Error("CanApply with nil premises should report false")
	}
}
