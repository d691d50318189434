package check

import (
	"strings"
	"testing"

	"github.com/astral-lang/astral/compiler/internal/parser"
)

func checkSrc(t *testing.T, src string) error {
	t.Helper()
	f, err := parser.New("test.astral", src).ParseFile()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return File("test.astral", f)
}

func wantErr(t *testing.T, src, frag string) {
	t.Helper()
	err := checkSrc(t, src)
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", frag)
	}
	if !strings.Contains(err.Error(), frag) {
		t.Fatalf("expected error containing %q, got:\n%s", frag, err)
	}
}

func wantOK(t *testing.T, src string) {
	t.Helper()
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("expected no error, got:\n%s", err)
	}
}

func TestMoveThenUse(t *testing.T) {
	wantErr(t, `
fn main() {
    let s = "hello";
    let t = s;
    println(s);
}
`, "use of moved value 's'")
}

func TestMoveNoteAndHelp(t *testing.T) {
	err := checkSrc(t, `
fn main() {
    let s = "hello";
    let t = s;
    println(s);
}
`)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	// the note points at the declaration of the moved variable
	if !strings.Contains(msg, "note: value moved at line 3") {
		t.Errorf("missing move note:\n%s", msg)
	}
	if !strings.Contains(msg, "help: consider borrowing") {
		t.Errorf("missing borrow help:\n%s", msg)
	}
}

func TestCopyTypesDuplicate(t *testing.T) {
	wantOK(t, `
fn main() {
    let n = 41;
    let m = n;
    let ok = true;
    let also = ok;
    let c = 'x';
    let d = c;
    println(n + m);
}
`)
}

func TestAssignToImmutable(t *testing.T) {
	wantErr(t, `
fn main() {
    let x = 1;
    x = 2;
}
`, "cannot assign to immutable variable 'x'")
}

func TestAssignToMutable(t *testing.T) {
	wantOK(t, `
fn main() {
    let mut x = 1;
    x = 2;
    x = x + 1;
}
`)
}

func TestAssignWhileBorrowed(t *testing.T) {
	wantErr(t, `
fn main() {
    let mut s = "a";
    let r = &s;
    s = "b";
}
`, "cannot assign to 's' while it is borrowed")
}

func TestMoveWhileBorrowed(t *testing.T) {
	wantErr(t, `
fn main() {
    let s = "a";
    let r = &s;
    let t = s;
}
`, "cannot move 's' while borrowed")
}

func TestBorrowDoesNotMove(t *testing.T) {
	wantOK(t, `
fn main() {
    let s = "a";
    let r = &s;
    let r2 = &s;
}
`)
}

func TestBorrowOfMovedValue(t *testing.T) {
	wantErr(t, `
fn main() {
    let s = "a";
    let t = s;
    let r = &s;
}
`, "use of moved value 's'")
}

func TestUndefinedVariable(t *testing.T) {
	wantErr(t, `
fn main() {
    println(nope);
}
`, "cannot find value 'nope' in this scope")
}

func TestBreakOutsideLoop(t *testing.T) {
	wantErr(t, `
fn main() {
    break;
}
`, "'break' outside of loop")
}

func TestContinueOutsideLoop(t *testing.T) {
	wantErr(t, `
fn main() {
    if true {
        continue;
    }
}
`, "'continue' outside of loop")
}

func TestBreakInsideLoops(t *testing.T) {
	wantOK(t, `
fn main() {
    while true {
        if true {
            break;
        }
        continue;
    }
    for i in 0..10 {
        break;
    }
}
`)
}

func TestLoopVariableIsImmutable(t *testing.T) {
	wantErr(t, `
fn main() {
    for i in 0..3 {
        i = 1;
    }
}
`, "cannot assign to immutable variable 'i'")
}

func TestShadowingInInnerBlock(t *testing.T) {
	wantOK(t, `
fn main() {
    let s = "outer";
    {
        let s = "inner";
        let t = s;
    }
    let u = s;
}
`)
}

func TestLetInitializerReadsOuterBinding(t *testing.T) {
	wantErr(t, `
fn main() {
    let s = "a";
    let t = s;
    let s = s;
}
`, "use of moved value 's'")
}

func TestBorrowOutlivesItsBlock(t *testing.T) {
	// Borrow counts only grow; leaving the borrower's block does not
	// release them.
	wantErr(t, `
fn main() {
    let mut x = "a";
    {
        let r = &x;
    }
    x = "b";
}
`, "cannot assign to 'x' while it is borrowed")
}

func TestBorrowAppliesToCopyTypes(t *testing.T) {
	wantErr(t, `
fn main() {
    let mut n = 1;
    let r = &n;
    n = 2;
}
`, "cannot assign to 'n' while it is borrowed")
}

func TestComparisonReadMoves(t *testing.T) {
	wantErr(t, `
fn main() {
    let s = "a";
    if s == "a" {
        println("eq");
    }
    let t = s;
}
`, "use of moved value 's'")
}

func TestConcatMovesOperands(t *testing.T) {
	wantErr(t, `
fn main() {
    let a = "x";
    let b = a + "y";
    let c = a;
}
`, "use of moved value 'a'")
}

func TestCallArgumentMoves(t *testing.T) {
	wantErr(t, `
fn eat(s: string) {
    println(s);
}

fn main() {
    let s = "meal";
    eat(s);
    eat(s);
}
`, "use of moved value 's'")
}

func TestBorrowedArgumentDoesNotMove(t *testing.T) {
	wantOK(t, `
fn show(&s: string) {
    println(s);
    println(s);
}

fn main() {
    let s = "meal";
    show(&s);
    show(&s);
}
`)
}

func TestMatchBindingMoves(t *testing.T) {
	wantErr(t, `
enum Option {
    Some(string),
    None,
}

fn main() {
    let o = Option::Some("x");
    match o {
        Option::Some(v) => {
            let a = v;
            let b = v;
        },
        Option::None => println("none"),
    }
}
`, "use of moved value 'v'")
}

func TestMatchBindingWithCopyPayload(t *testing.T) {
	wantOK(t, `
enum Shape {
    Circle(int),
    Dot,
}

fn main() {
    let s = Shape::Circle(2);
    match s {
        Shape::Circle(r) => println(3 * r * r),
        Shape::Dot => println("dot"),
    }
}
`)
}

func TestMatchScrutineeMoves(t *testing.T) {
	wantErr(t, `
fn main() {
    let s = "a";
    match s {
        "a" => println("a"),
        other => println("other"),
    }
    let t = s;
}
`, "use of moved value 's'")
}

func TestIndexAssignGuards(t *testing.T) {
	wantErr(t, `
fn main() {
    let xs = [1, 2, 3];
    xs[0] = 9;
}
`, "cannot assign to immutable variable 'xs'")

	wantOK(t, `
fn main() {
    let mut xs = [1, 2, 3];
    xs[0] = 9;
}
`)
}

func TestFunctionScopesAreIndependent(t *testing.T) {
	wantErr(t, `
fn helper() {
    println(s);
}

fn main() {
    let s = "a";
    println(&s);
}
`, "cannot find value 's' in this scope")
}

func TestStructFieldInitMoves(t *testing.T) {
	wantErr(t, `
struct Person {
    name: string;
}

fn main() {
    let n = "ada";
    let p = Person { name: n };
    let t = n;
}
`, "use of moved value 'n'")
}

func TestFirstErrorWins(t *testing.T) {
	err := checkSrc(t, `
fn main() {
    let s = "a";
    let t = s;
    let u = s;
    let v = s;
}
`)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "test.astral:5:13") {
		t.Fatalf("expected first violation at 5:13, got:\n%s", err)
	}
}
