package llvm

import (
	"strings"
	"testing"

	"github.com/astral-lang/astral/compiler/internal/parser"
)

func emit(t *testing.T, src string) (string, error) {
	t.Helper()
	f, err := parser.New("test.astral", src).ParseFile()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Emit("test.astral", f)
}

func emitOK(t *testing.T, src string) string {
	t.Helper()
	ir, err := emit(t, src)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return ir
}

func mustContain(t *testing.T, ir string, frags ...string) {
	t.Helper()
	for _, frag := range frags {
		if !strings.Contains(ir, frag) {
			t.Errorf("missing %q in:\n%s", frag, ir)
		}
	}
}

func TestEmitHello(t *testing.T) {
	ir := emitOK(t, `
fn main() {
    println("hello");
}
`)
	mustContain(t, ir,
		"declare i32 @printf(i8*, ...)",
		`c"hello\00"`,
		`c"%s\0A\00"`,
		"define void @main()",
		"call i32 (i8*, ...) @printf(i8*",
		"ret void",
	)
}

func TestEmitArithmeticAndCall(t *testing.T) {
	ir := emitOK(t, `
fn square(n: int) -> int {
    return n * n;
}

fn main() {
    println(square(7));
}
`)
	mustContain(t, ir,
		"define i64 @square(i64 %arg.n)",
		"%n.addr = alloca i64",
		"store i64 %arg.n, i64* %n.addr",
		"mul i64",
		"ret i64",
		"call i64 @square(i64 7)",
		`c"%ld\0A\00"`,
	)
}

func TestEmitIfElse(t *testing.T) {
	ir := emitOK(t, `
fn sign(n: int) -> int {
    if n < 0 {
        return -1;
    } else {
        return 1;
    }
}

fn main() {
    println(sign(-5));
}
`)
	mustContain(t, ir,
		"icmp slt i64",
		"br i1",
		"if.then1:",
		"if.else",
		"sub i64 0, 1",
	)
}

func TestEmitWhileLoop(t *testing.T) {
	ir := emitOK(t, `
fn main() {
    let mut i = 0;
    while i < 3 {
        println(i);
        i = i + 1;
    }
}
`)
	mustContain(t, ir,
		"while.cond1:",
		"while.body2:",
		"while.end3:",
		"add i64",
		"store i64",
	)
}

func TestEmitForRange(t *testing.T) {
	ir := emitOK(t, `
fn main() {
    for i in 0..5 {
        println(i);
    }
}
`)
	mustContain(t, ir,
		"for.cond1:",
		"for.body2:",
		"for.step3:",
		"for.end4:",
		"icmp slt i64",
		"add i64",
	)
}

func TestEmitBlockScopedLets(t *testing.T) {
	ir := emitOK(t, `
fn main() {
    let x = 1;
    {
        let x = 2;
        println(x);
    }
    {
        let x = 3;
        println(x);
    }
    println(x);
}
`)
	// sibling blocks each get their own slot register
	if n := strings.Count(ir, "%x.addr = alloca i64"); n != 1 {
		t.Fatalf("expected one bare slot for x, got %d:\n%s", n, ir)
	}
	mustContain(t, ir,
		"%x.addr.1 = alloca i64",
		"%x.addr.2 = alloca i64",
	)
	// the trailing println reads the outer binding again
	if !strings.Contains(ir[strings.LastIndex(ir, "alloca"):], "load i64, i64* %x.addr\n") {
		t.Fatalf("outer x not restored after the blocks:\n%s", ir)
	}
}

func TestEmitStringInterning(t *testing.T) {
	ir := emitOK(t, `
fn main() {
    println("dup");
    println("dup");
}
`)
	if strings.Count(ir, `c"dup\00"`) != 1 {
		t.Fatalf("expected one interned copy of the literal:\n%s", ir)
	}
}

func TestEmitUnsupportedConstructs(t *testing.T) {
	cases := []struct{ src, frag string }{
		{`
struct P { x: int; }
fn main() { let p = P { x: 1 }; }
`, "has no lowering"},
		{`
fn main() {
    let xs = [1, 2];
    println(xs[0]);
}
`, "has no lowering"},
		{`
fn take(&s: string) { }
fn main() { }
`, "reference parameters have no lowering"},
		{`fn helper() { }`, "no 'main' function to emit"},
	}
	for _, tc := range cases {
		_, err := emit(t, tc.src)
		if err == nil {
			t.Errorf("%s: expected error containing %q", tc.src, tc.frag)
			continue
		}
		if !strings.Contains(err.Error(), tc.frag) {
			t.Errorf("%s: got %v, want fragment %q", tc.src, err, tc.frag)
		}
	}
}

func TestEmitDeadCodeAfterReturnDropped(t *testing.T) {
	ir := emitOK(t, `
fn f() -> int {
    return 1;
    return 2;
}

fn main() {
    println(f());
}
`)
	if strings.Contains(ir, "ret i64 2") {
		t.Fatalf("unreachable return was emitted:\n%s", ir)
	}
}
