package interp

import (
	"bytes"
	"strings"
	"testing"
)

func TestSessionStatePersists(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)

	for _, input := range []string{
		`let mut n = 40;`,
		`n = n + 2;`,
		`fn double(x: int) -> int { return x * 2; }`,
		`println(n);`,
		`double(n);`,
	} {
		if err := s.Eval(input); err != nil {
			t.Fatalf("%s: %v", input, err)
		}
	}
	if out.String() != "42\n84\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestSessionBareExpressionPrints(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	if err := s.Eval(`1 + 2 * 3;`); err != nil {
		t.Fatal(err)
	}
	if out.String() != "7\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestSessionUnitResultIsSilent(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)
	if err := s.Eval(`println("x");`); err != nil {
		t.Fatal(err)
	}
	if out.String() != "x\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestSessionErrors(t *testing.T) {
	s := NewSession(&bytes.Buffer{})
	err := s.Eval(`break;`)
	if err == nil || !strings.Contains(err.Error(), "control flow escapes the top level") {
		t.Fatalf("got %v", err)
	}
	err = s.Eval(`ghost;`)
	if err == nil || !strings.Contains(err.Error(), "undefined variable 'ghost'") {
		t.Fatalf("got %v", err)
	}
}

func TestSessionDump(t *testing.T) {
	s := NewSession(&bytes.Buffer{})
	out, err := s.Dump(`let x = 1 + 2;`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "let x = (1 + 2)\n" {
		t.Fatalf("got %q", out)
	}
}
