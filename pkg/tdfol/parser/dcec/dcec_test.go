package dcec

import (
	"testing"

	"github.com/cognicore/tdfol/pkg/tdfol/parser"
)

func TestParseConnectives(t *testing.T) {
	cases := map[string]string{
		"(implies (p) (q))":                  "(P → Q)",
		"(and (p) (q))":                      "(P ∧ Q)",
		"(or (p) (q))":                       "(P ∨ Q)",
		"(iff (p) (q))":                      "(P ↔ Q)",
		"(not (p))":                          "¬P",
		"(obligation (pay agent1))":          "O(Pay(agent1))",
		"(permission (move robot))":          "P(Move(robot))",
		"(prohibition (enter zone1))":        "F(Enter(zone1))",
		"(always (safe system))":             "□Safe(system)",
		"(eventually (done task))":           "◊Done(task)",
		"(next (active sensor))":             "X Active(sensor)",
		"(until (waiting x) (granted x))":    "(Waiting(x) U Granted(x))",
		"(since (alarm x) (breach x))":       "(Alarm(x) S Breach(x))",
		"(forall x (implies (p x) (q x)))":   "∀x (P(x) → Q(x))",
		"(exists x (p x))":                   "∃x P(x)",
		"(likes alice bob)":                  "Likes(alice, bob)",
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

func TestBoundVariables(t *testing.T) {
	// Inside a binder the symbol is a variable; outside it is a constant.
	f, err := Parse("(forall agent (pays agent))")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.String() != "∀agent Pays(agent)" {
		t.Errorf("got %q", f)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"(and (p))",
		"(implies (p) (q)) extra",
		"(forall (p) (q))",
		"((p) q)",
		"(and (p) (q)",
	}
	for _, input := range bad {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestBridgeRegistration(t *testing.T) {
	// Importing this package registers the bridge with the parser.
	if !parser.DCECAvailable() {
		t.Fatal("bridge should be registered by init")
	}
	f, err := parser.ParseDCEC("(obligation (pay agent1))")
	if err != nil {
		t.Fatalf("ParseDCEC: %v", err)
	}
	if f.String() != "O(Pay(agent1))" {
		t.Errorf("got %q", f)
	}
}
