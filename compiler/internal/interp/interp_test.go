package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/astral-lang/astral/compiler/internal/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	f, err := parser.New("test.astral", src).ParseFile()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	err = Run("test.astral", f, &out)
	return out.String(), err
}

func runOK(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return out
}

func TestHello(t *testing.T) {
	out := runOK(t, `
fn main() {
    println("hello, astral");
}
`)
	if out != "hello, astral\n" {
		t.Fatalf("got %q", out)
	}
}

func TestArithmeticAndLocals(t *testing.T) {
	out := runOK(t, `
fn main() {
    let mut total = 0;
    let mut i = 1;
    while i <= 5 {
        total = total + i * i;
        i = i + 1;
    }
    println(total);
}
`)
	if out != "55\n" {
		t.Fatalf("got %q", out)
	}
}

func TestForRangeWithContinueAndBreak(t *testing.T) {
	out := runOK(t, `
fn main() {
    for i in 0..10 {
        if i % 2 == 0 {
            continue;
        }
        if i > 6 {
            break;
        }
        print(i);
    }
    println("");
}
`)
	if out != "135\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFunctionsAndReturn(t *testing.T) {
	out := runOK(t, `
fn fib(n: int) -> int {
    if n < 2 {
        return n;
    }
    return fib(n - 1) + fib(n - 2);
}

fn main() {
    println(fib(10));
}
`)
	if out != "55\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStringConcatAndLen(t *testing.T) {
	out := runOK(t, `
fn main() {
    let a = "foo";
    let b = a + "bar";
    println(b);
    println(len(b));
    println(b.len());
}
`)
	if out != "foobar\n6\n6\n" {
		t.Fatalf("got %q", out)
	}
}

func TestArrays(t *testing.T) {
	out := runOK(t, `
fn main() {
    let mut xs = [1, 2, 3];
    xs[0] = 9;
    xs.push(4);
    println(xs);
    println(xs.len());
    let last = xs.pop();
    println(last);
    for x in xs {
        print(x);
    }
    println("");
}
`)
	if out != "[9, 2, 3, 4]\n4\n4\n923\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStructsAndMembers(t *testing.T) {
	out := runOK(t, `
struct Point {
    x: int;
    y: int;
}

fn main() {
    let p = Point { x: 3, y: 4 };
    println(p.x * p.x + p.y * p.y);
}
`)
	if out != "25\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEnumsAndMatch(t *testing.T) {
	out := runOK(t, `
enum Shape {
    Circle(int),
    Dot,
}

fn describe(s: Shape) {
    match s {
        Shape::Circle(r) => println("circle " + str(r * r)),
        Shape::Dot => println("dot"),
    }
}

fn main() {
    describe(Shape::Circle(3));
    describe(Shape::Dot);
}
`)
	if out != "circle 9\ndot\n" {
		t.Fatalf("got %q", out)
	}
}

func TestMatchReturnsThroughBlockArm(t *testing.T) {
	out := runOK(t, `
fn name(n: int) -> string {
    match n {
        0 => { return "zero"; },
        1 => { return "one"; },
        other => { return "many"; },
    }
    return "?";
}

fn main() {
    println(name(0));
    println(name(1));
    println(name(7));
}
`)
	if out != "zero\none\nmany\n" {
		t.Fatalf("got %q", out)
	}
}

func TestShortCircuit(t *testing.T) {
	// boom() would divide by zero; && must not evaluate it
	out := runOK(t, `
fn boom() -> bool {
    let x = 1 / 0;
    return true;
}

fn main() {
    if false && boom() {
        println("no");
    }
    if true || boom() {
        println("yes");
    }
}
`)
	if out != "yes\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStringIterationAndIndex(t *testing.T) {
	out := runOK(t, `
fn main() {
    let s = "abc";
    println(s[1]);
    for c in "xy" {
        print(c);
    }
    println("");
}
`)
	if out != "b\nxy\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct{ src, frag string }{
		{`fn main() { let x = 1 / 0; }`, "division by zero"},
		{`fn main() { let xs = [1]; println(xs[5]); }`, "index 5 out of bounds (len 1)"},
		{`fn main() { nope(); }`, "cannot find function 'nope'"},
		{`fn f(a: int) { } fn main() { f(1, 2); }`, "expects 1 arguments, got 2"},
		{`fn main() { if 1 { } }`, "if condition must be a bool"},
		{`println("top");`, "no 'main' function"},
	}
	for _, tc := range cases {
		_, err := run(t, tc.src)
		if err == nil {
			t.Errorf("%s: expected error containing %q", tc.src, tc.frag)
			continue
		}
		if !strings.Contains(err.Error(), tc.frag) {
			t.Errorf("%s: got %v, want fragment %q", tc.src, err, tc.frag)
		}
	}
}

func TestTopLevelStatementsRunBeforeMain(t *testing.T) {
	out := runOK(t, `
let greeting = "hi";

fn main() {
    println(greeting);
}
`)
	if out != "hi\n" {
		t.Fatalf("got %q", out)
	}
}
