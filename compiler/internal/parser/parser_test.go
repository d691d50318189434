package parser

import (
	"strings"
	"testing"

	"github.com/astral-lang/astral/compiler/internal/ast"
)

func parseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := New("test.astral", src).ParseFile()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f
}

// letValue parses `let v = <expr>;` inside main and returns the initializer.
func letValue(t *testing.T, expr string) ast.Expr {
	t.Helper()
	f := parseFile(t, "fn main() { let v = "+expr+"; }")
	fn := f.Stmts[0].(*ast.FuncDecl)
	return fn.Body.Stmts[0].(*ast.LetStmt).Value
}

func TestPrecedence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"10 - 4 - 3", "((10 - 4) - 3)"},
		{"1 + 2 * 3 == 7 && true || false", "((((1 + (2 * 3)) == 7) && true) || false)"},
		{"-x + 1", "(-x + 1)"},
		{"!a && b", "(!a && b)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a % 2 == 0", "((a % 2) == 0)"},
	}
	for _, tc := range cases {
		got := ast.ExprString(letValue(t, tc.in))
		if got != tc.want {
			t.Errorf("%s: got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestPostfixChains(t *testing.T) {
	cases := []struct{ in, want string }{
		{"p.name", "p.name"},
		{"p.name.len()", "p.name.len()"},
		{"xs[0] + xs[i + 1]", "(xs[0] + xs[(i + 1)])"},
		{"f(1, g(2), &s)", "f(1, g(2), &s)"},
		{"Option::Some(5)", "Option::Some(5)"},
		{"Option::None", "Option::None"},
		{"Point { x: 1, y: 2 }", "Point { x: 1, y: 2 }"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"0..n + 1", "0..(n + 1)"},
		{"&owner", "&owner"},
	}
	for _, tc := range cases {
		got := ast.ExprString(letValue(t, tc.in))
		if got != tc.want {
			t.Errorf("%s: got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestAssignmentLookahead(t *testing.T) {
	f := parseFile(t, `
fn main() {
    x = 1;
    xs[0] = 2;
    xs[1];
    tick();
}
`)
	body := f.Stmts[0].(*ast.FuncDecl).Body.Stmts
	if _, ok := body[0].(*ast.AssignStmt); !ok {
		t.Errorf("stmt 0: got %T, want *ast.AssignStmt", body[0])
	}
	if _, ok := body[1].(*ast.IndexAssignStmt); !ok {
		t.Errorf("stmt 1: got %T, want *ast.IndexAssignStmt", body[1])
	}
	if _, ok := body[2].(*ast.ExprStmt); !ok {
		t.Errorf("stmt 2: got %T, want *ast.ExprStmt", body[2])
	}
	if _, ok := body[3].(*ast.ExprStmt); !ok {
		t.Errorf("stmt 3: got %T, want *ast.ExprStmt", body[3])
	}
}

func TestHeaderBraceIsBody(t *testing.T) {
	// `ready {` in a control-flow header must not parse as a struct literal.
	f := parseFile(t, `
fn main() {
    while ready {
        tick();
    }
    if done {
        stop();
    }
}
`)
	body := f.Stmts[0].(*ast.FuncDecl).Body.Stmts
	w := body[0].(*ast.WhileStmt)
	if _, ok := w.Cond.(*ast.Ident); !ok {
		t.Fatalf("while cond: got %T, want *ast.Ident", w.Cond)
	}
}

func TestRefParams(t *testing.T) {
	f := parseFile(t, "fn show(&label: string, &mut buf: string, n: int) { }")
	params := f.Stmts[0].(*ast.FuncDecl).Params
	want := []ast.Param{
		{Ref: true, Mut: false, Name: "label", Type: "string"},
		{Ref: true, Mut: true, Name: "buf", Type: "string"},
		{Ref: false, Mut: false, Name: "n", Type: "int"},
	}
	if len(params) != len(want) {
		t.Fatalf("got %d params, want %d", len(params), len(want))
	}
	for i := range want {
		got := params[i]
		if got.Ref != want[i].Ref || got.Mut != want[i].Mut || got.Name != want[i].Name || got.Type != want[i].Type {
			t.Errorf("param %d: got %+v want %+v", i, got, want[i])
		}
	}
}

func TestArrayType(t *testing.T) {
	f := parseFile(t, "fn main() { let xs: [int; 3] = [1, 2, 3]; }")
	let := f.Stmts[0].(*ast.FuncDecl).Body.Stmts[0].(*ast.LetStmt)
	if let.Type != "[int; 3]" {
		t.Fatalf("got type %q", let.Type)
	}
}

func TestMatchArms(t *testing.T) {
	f := parseFile(t, `
fn main() {
    match shape {
        Shape::Circle(r) => { println(r); },
        Shape::Dot => println("dot"),
        0 => println("zero"),
        other => println("?"),
    }
}
`)
	m := f.Stmts[0].(*ast.FuncDecl).Body.Stmts[0].(*ast.MatchStmt)
	if len(m.Arms) != 4 {
		t.Fatalf("got %d arms, want 4", len(m.Arms))
	}
	ep := m.Arms[0].Pat.(*ast.EnumPattern)
	if ep.Enum != "Shape" || ep.Variant != "Circle" || ep.Binding != "r" {
		t.Errorf("arm 0: got %+v", ep)
	}
	if ep2 := m.Arms[1].Pat.(*ast.EnumPattern); ep2.Binding != "" {
		t.Errorf("arm 1: unexpected binding %q", ep2.Binding)
	}
	if _, ok := m.Arms[2].Pat.(*ast.LitPattern); !ok {
		t.Errorf("arm 2: got %T, want *ast.LitPattern", m.Arms[2].Pat)
	}
	if bp := m.Arms[3].Pat.(*ast.BindPattern); bp.Name != "other" {
		t.Errorf("arm 3: got %+v", bp)
	}
}

func TestDumpWholeProgram(t *testing.T) {
	f := parseFile(t, `
struct Point {
    x: int;
    y: int;
}

enum Shape {
    Circle(int),
    Dot,
}

fn classify(n: int) -> string {
    if n == 0 {
        return "zero";
    } else if n < 0 {
        return "negative";
    } else {
        return "positive";
    }
}

fn main() {
    let mut total = 0;
    for i in 0..10 {
        if i % 2 == 0 {
            continue;
        }
        total = total + i;
    }
    while total > 5 {
        total = total - 1;
    }
    println(classify(total));
}
`)
	want := `struct Point
  x: int
  y: int
enum Shape
  Circle(int)
  Dot
fn classify(n: int) -> string
  if (n == 0)
    return "zero"
  else
    if (n < 0)
      return "negative"
    else
      return "positive"
fn main()
  let mut total = 0
  for i in 0..10
    if ((i % 2) == 0)
      continue
    total = (total + i)
  while (total > 5)
    total = (total - 1)
  println(classify(total))
`
	got := ast.DumpFile(f)
	if got != want {
		t.Fatalf("dump mismatch:\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct{ src, frag string }{
		{"fn main() { let = 1; }", "expected variable name"},
		{"fn main() { let x = 1 }", "expected ';'"},
		{"fn main() { let x = ; }", "expected expression"},
		{"fn 42() { }", "expected function name"},
		{"fn main() { match x { => 1, } }", "expected pattern"},
		{"struct P { x int; }", "expected ':'"},
	}
	for _, tc := range cases {
		_, err := New("test.astral", tc.src).ParseFile()
		if err == nil {
			t.Errorf("%s: expected error containing %q, got nil", tc.src, tc.frag)
			continue
		}
		if !strings.Contains(err.Error(), tc.frag) {
			t.Errorf("%s: got %v, want fragment %q", tc.src, err, tc.frag)
		}
	}
}

func TestLexErrorSurfaces(t *testing.T) {
	_, err := New("test.astral", "fn main() { let s = \"oops\n; }").ParseFile()
	if err == nil || !strings.Contains(err.Error(), "unterminated string literal") {
		t.Fatalf("got %v", err)
	}
}
