package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
	"github.com/cognicore/tdfol/pkg/tdfol/internalerr"
)

type fakeOracle struct{ name string }

func (f fakeOracle) Name() string { return f.name }

func (f fakeOracle) Prove(context.Context, ast.Formula, *ast.KnowledgeBase) (Verdict, error) {
	return VerdictTrue, nil
}

func TestRegisterAndLookup(t *testing.T) {
	Register(fakeOracle{name: "fake-a"})
	Register(fakeOracle{name: "fake-b"})

	o, err := Lookup("fake-a")
	if err != nil {
		t.Fatal(err)
	}
	if o.Name() != "fake-a" {
		t.Errorf("name = %s", o.Name())
	}

	names := Names()
	found := 0
	for _, n := range names {
		if n == "fake-a" || n == "fake-b" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Names() = %v", names)
	}
}

func TestLookupUnregistered(t *testing.T) {
	_, err := Lookup("absent")
	if !errors.Is(err, internalerr.ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(fakeOracle{name: "fake-dup"})
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register(fakeOracle{name: "fake-dup"})
}

func TestVerdictStrings(t *testing.T) {
	cases := map[Verdict]string{
		VerdictUnknown: "unknown",
		VerdictTrue:    "true",
		VerdictFalse:   "false",
	}
	for v, want := range cases {
		if v.String() != want {
			t.Errorf("%d.String() = %q, want %q", v, v.String(), want)
		}
	}
}
