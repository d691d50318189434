package llvm

import (
	"fmt"
	"strings"

	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/diag"
	"github.com/astral-lang/astral/compiler/internal/term"
)

// Emit lowers a checked file to textual LLVM IR. The backend covers the
// scalar core of the language: int/bool/string-literal values, arithmetic,
// comparisons, if/while/for-over-range, user functions and println/print.
// Aggregates (structs, enums, arrays) and match are interpreter-only for
// now and report an emit error.
func Emit(file string, f *ast.File) (string, error) {
	em := &emitter{
		file: file,
		strs: map[string]string{},
		fns:  map[string]*ast.FuncDecl{},
	}
	for _, s := range f.Stmts {
		if fd, ok := s.(*ast.FuncDecl); ok {
			em.fns[fd.Name] = fd
		}
	}
	if _, ok := em.fns["main"]; !ok {
		return "", em.errf("no 'main' function to emit")
	}

	var body strings.Builder
	for _, s := range f.Stmts {
		fd, ok := s.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if err := em.fn(&body, fd); err != nil {
			return "", err
		}
	}

	var out strings.Builder
	term.Bprintf(&out, "; module %s\n\n", file)
	out.WriteString("declare i32 @printf(i8*, ...)\n\n")
	for _, g := range em.strOrder {
		out.WriteString(g)
		out.WriteString("\n")
	}
	if len(em.strOrder) > 0 {
		out.WriteString("\n")
	}
	out.WriteString(body.String())
	return out.String(), nil
}

type local struct {
	slot string // register holding the alloca
	typ  string // "i64", "i1" or "i8*"
}

type emitter struct {
	file string
	fns  map[string]*ast.FuncDecl

	strs     map[string]string // literal -> @global name
	strOrder []string          // global definitions in first-use order
	nstr     int

	tmp        int
	label      int
	slots      map[string]int // per-name alloca counter for the current function
	locals     map[string]local
	retType    string
	loop       *breakTarget // innermost loop's break/continue labels
	terminated bool         // current block already ended with ret or br
}

func (em *emitter) errf(format string, a ...any) error {
	return diag.Errorf(em.file, diag.Pos{}, format, a...)
}

func (em *emitter) newTmp() string {
	em.tmp++
	return fmt.Sprintf("%%t%d", em.tmp)
}

func (em *emitter) newLabel(base string) string {
	em.label++
	return fmt.Sprintf("%s%d", base, em.label)
}

// newSlot reserves a stack-slot register for name. Registers are unique for
// the whole function, so a name redeclared in sibling blocks gets a fresh
// slot each time. The first slot for a name keeps the bare form.
func (em *emitter) newSlot(name string) string {
	n := em.slots[name]
	em.slots[name] = n + 1
	if n == 0 {
		return fmt.Sprintf("%%%s.addr", name)
	}
	return fmt.Sprintf("%%%s.addr.%d", name, n)
}

// scoped runs body with a copy of the local table, so bindings made inside
// a lexical block stop resolving once the block ends.
func (em *emitter) scoped(body func() error) error {
	saved := em.locals
	inner := make(map[string]local, len(saved))
	for k, v := range saved {
		inner[k] = v
	}
	em.locals = inner
	err := body()
	em.locals = saved
	return err
}

// intern returns a pointer-typed constant expression for a C string global,
// creating the global on first use.
func (em *emitter) intern(s string) string {
	g, ok := em.strs[s]
	n := len(s) + 1
	if !ok {
		em.nstr++
		g = fmt.Sprintf("@.str%d", em.nstr)
		em.strs[s] = g
		em.strOrder = append(em.strOrder,
			fmt.Sprintf("%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"",
				g, n, escapeC(s)))
	}
	return fmt.Sprintf("getelementptr inbounds ([%d x i8], [%d x i8]* %s, i64 0, i64 0)", n, n, g)
}

func escapeC(s string) string {
	var b strings.Builder
	for _, c := range []byte(s) {
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			b.WriteByte(c)
			continue
		}
		term.Bprintf(&b, "\\%02X", c)
	}
	return b.String()
}

func irType(typ string) (string, error) {
	switch typ {
	case "int", "":
		return "i64", nil
	case "bool":
		return "i1", nil
	case "string":
		return "i8*", nil
	}
	return "", fmt.Errorf("type '%s' has no lowering", typ)
}

func (em *emitter) fn(b *strings.Builder, fd *ast.FuncDecl) error {
	em.tmp = 0
	em.label = 0
	em.slots = map[string]int{}
	em.locals = map[string]local{}
	em.loop = nil
	em.terminated = false

	ret := "void"
	if fd.Ret != "" {
		var err error
		ret, err = irType(fd.Ret)
		if err != nil {
			return em.errf("function '%s': %v", fd.Name, err)
		}
	}
	em.retType = ret

	var params []string
	for _, p := range fd.Params {
		if p.Ref {
			return em.errf("function '%s': reference parameters have no lowering", fd.Name)
		}
		pt, err := irType(p.Type)
		if err != nil {
			return em.errf("function '%s': %v", fd.Name, err)
		}
		params = append(params, fmt.Sprintf("%s %%arg.%s", pt, p.Name))
	}
	term.Bprintf(b, "define %s @%s(%s) {\nentry:\n", ret, fd.Name, strings.Join(params, ", "))

	// spill params into stack slots so assignment works uniformly
	for _, p := range fd.Params {
		pt, _ := irType(p.Type)
		slot := em.newSlot(p.Name)
		term.Bprintf(b, "  %s = alloca %s\n", slot, pt)
		term.Bprintf(b, "  store %s %%arg.%s, %s* %s\n", pt, p.Name, pt, slot)
		em.locals[p.Name] = local{slot: slot, typ: pt}
	}

	if err := em.stmts(b, fd.Body.Stmts); err != nil {
		return err
	}
	if !em.terminated {
		if ret == "void" {
			b.WriteString("  ret void\n")
		} else {
			term.Bprintf(b, "  ret %s 0\n", ret)
		}
	}
	b.WriteString("}\n\n")
	return nil
}

func (em *emitter) startBlock(b *strings.Builder, label string) {
	term.Bprintf(b, "%s:\n", label)
	em.terminated = false
}

func (em *emitter) br(b *strings.Builder, label string) {
	if em.terminated {
		return
	}
	term.Bprintf(b, "  br label %%%s\n", label)
	em.terminated = true
}

func (em *emitter) condBr(b *strings.Builder, cond, yes, no string) {
	term.Bprintf(b, "  br i1 %s, label %%%s, label %%%s\n", cond, yes, no)
	em.terminated = true
}

func (em *emitter) stmts(b *strings.Builder, list []ast.Stmt) error {
	for _, s := range list {
		if em.terminated {
			// unreachable trailing code is dropped
			return nil
		}
		if err := em.stmt(b, s); err != nil {
			return err
		}
	}
	return nil
}

type breakTarget struct {
	brk, cont string
}

func (em *emitter) stmt(b *strings.Builder, s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.LetStmt:
		val, typ, err := em.expr(b, st.Value)
		if err != nil {
			return err
		}
		slot := em.newSlot(st.Name)
		term.Bprintf(b, "  %s = alloca %s\n", slot, typ)
		term.Bprintf(b, "  store %s %s, %s* %s\n", typ, val, typ, slot)
		em.locals[st.Name] = local{slot: slot, typ: typ}
		return nil
	case *ast.AssignStmt:
		lc, ok := em.locals[st.Name]
		if !ok {
			return em.errf("assignment to unknown local '%s'", st.Name)
		}
		val, typ, err := em.expr(b, st.Value)
		if err != nil {
			return err
		}
		if typ != lc.typ {
			return em.errf("cannot store %s into %s '%s'", typ, lc.typ, st.Name)
		}
		term.Bprintf(b, "  store %s %s, %s* %s\n", typ, val, typ, lc.slot)
		return nil
	case *ast.Block:
		return em.scoped(func() error { return em.stmts(b, st.Stmts) })
	case *ast.IfStmt:
		return em.ifStmt(b, st)
	case *ast.WhileStmt:
		return em.whileStmt(b, st)
	case *ast.ForStmt:
		return em.forStmt(b, st)
	case *ast.ReturnStmt:
		if st.Value == nil {
			if em.retType != "void" {
				return em.errf("missing return value")
			}
			b.WriteString("  ret void\n")
			em.terminated = true
			return nil
		}
		val, typ, err := em.expr(b, st.Value)
		if err != nil {
			return err
		}
		term.Bprintf(b, "  ret %s %s\n", typ, val)
		em.terminated = true
		return nil
	case *ast.BreakStmt:
		if em.loop == nil {
			return em.errf("'break' outside of loop")
		}
		em.br(b, em.loop.brk)
		return nil
	case *ast.ContinueStmt:
		if em.loop == nil {
			return em.errf("'continue' outside of loop")
		}
		em.br(b, em.loop.cont)
		return nil
	case *ast.ExprStmt:
		_, _, err := em.expr(b, st.X)
		return err
	}
	return em.errf("statement %T has no lowering", s)
}

func (em *emitter) ifStmt(b *strings.Builder, st *ast.IfStmt) error {
	cond, typ, err := em.expr(b, st.Cond)
	if err != nil {
		return err
	}
	if typ != "i1" {
		return em.errf("if condition must lower to i1, got %s", typ)
	}
	then := em.newLabel("if.then")
	end := em.newLabel("if.end")
	els := end
	if st.Else != nil {
		els = em.newLabel("if.else")
	}
	em.condBr(b, cond, then, els)

	em.startBlock(b, then)
	if err := em.scoped(func() error { return em.stmts(b, st.Then.Stmts) }); err != nil {
		return err
	}
	em.br(b, end)

	if st.Else != nil {
		em.startBlock(b, els)
		if err := em.stmt(b, st.Else); err != nil {
			return err
		}
		em.br(b, end)
	}
	em.startBlock(b, end)
	return nil
}

func (em *emitter) whileStmt(b *strings.Builder, st *ast.WhileStmt) error {
	cond := em.newLabel("while.cond")
	body := em.newLabel("while.body")
	end := em.newLabel("while.end")

	em.br(b, cond)
	em.startBlock(b, cond)
	c, typ, err := em.expr(b, st.Cond)
	if err != nil {
		return err
	}
	if typ != "i1" {
		return em.errf("while condition must lower to i1, got %s", typ)
	}
	em.condBr(b, c, body, end)

	saved := em.loop
	em.loop = &breakTarget{brk: end, cont: cond}
	em.startBlock(b, body)
	err = em.scoped(func() error { return em.stmts(b, st.Body.Stmts) })
	em.loop = saved
	if err != nil {
		return err
	}
	em.br(b, cond)
	em.startBlock(b, end)
	return nil
}

func (em *emitter) forStmt(b *strings.Builder, st *ast.ForStmt) error {
	rng, ok := st.Iter.(*ast.RangeExpr)
	if !ok {
		return em.errf("only range iteration has a lowering")
	}
	lo, lt, err := em.expr(b, rng.Lo)
	if err != nil {
		return err
	}
	hi, ht, err := em.expr(b, rng.Hi)
	if err != nil {
		return err
	}
	if lt != "i64" || ht != "i64" {
		return em.errf("range bounds must lower to i64")
	}

	slot := em.newSlot(st.Var)
	term.Bprintf(b, "  %s = alloca i64\n", slot)
	term.Bprintf(b, "  store i64 %s, i64* %s\n", lo, slot)

	cond := em.newLabel("for.cond")
	body := em.newLabel("for.body")
	step := em.newLabel("for.step")
	end := em.newLabel("for.end")

	em.br(b, cond)
	em.startBlock(b, cond)
	cur := em.newTmp()
	term.Bprintf(b, "  %s = load i64, i64* %s\n", cur, slot)
	cmp := em.newTmp()
	term.Bprintf(b, "  %s = icmp slt i64 %s, %s\n", cmp, cur, hi)
	em.condBr(b, cmp, body, end)

	saved := em.loop
	em.loop = &breakTarget{brk: end, cont: step}
	em.startBlock(b, body)
	err = em.scoped(func() error {
		em.locals[st.Var] = local{slot: slot, typ: "i64"}
		return em.stmts(b, st.Body.Stmts)
	})
	em.loop = saved
	if err != nil {
		return err
	}
	em.br(b, step)

	em.startBlock(b, step)
	cur2 := em.newTmp()
	term.Bprintf(b, "  %s = load i64, i64* %s\n", cur2, slot)
	next := em.newTmp()
	term.Bprintf(b, "  %s = add i64 %s, 1\n", next, cur2)
	term.Bprintf(b, "  store i64 %s, i64* %s\n", next, slot)
	em.br(b, cond)

	em.startBlock(b, end)
	return nil
}

/* ---------- expressions ---------- */

// expr emits code for e and returns (operand, ir type). The operand is a
// register name or an immediate constant.
func (em *emitter) expr(b *strings.Builder, e ast.Expr) (string, string, error) {
	switch v := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", v.Value), "i64", nil
	case *ast.BoolLit:
		if v.Value {
			return "true", "i1", nil
		}
		return "false", "i1", nil
	case *ast.StrLit:
		return em.intern(v.Value), "i8*", nil
	case *ast.Ident:
		lc, ok := em.locals[v.Name]
		if !ok {
			return "", "", em.errf("unknown local '%s'", v.Name)
		}
		r := em.newTmp()
		term.Bprintf(b, "  %s = load %s, %s* %s\n", r, lc.typ, lc.typ, lc.slot)
		return r, lc.typ, nil
	case *ast.UnaryExpr:
		return em.unary(b, v)
	case *ast.BinaryExpr:
		return em.binary(b, v)
	case *ast.CallExpr:
		return em.call(b, v)
	case *ast.RefExpr:
		return "", "", em.errf("borrows have no lowering")
	}
	return "", "", em.errf("expression %T has no lowering", e)
}

func (em *emitter) unary(b *strings.Builder, v *ast.UnaryExpr) (string, string, error) {
	x, typ, err := em.expr(b, v.X)
	if err != nil {
		return "", "", err
	}
	r := em.newTmp()
	switch v.Op {
	case "-":
		if typ != "i64" {
			return "", "", em.errf("negation needs i64, got %s", typ)
		}
		term.Bprintf(b, "  %s = sub i64 0, %s\n", r, x)
		return r, "i64", nil
	case "!":
		if typ != "i1" {
			return "", "", em.errf("'!' needs i1, got %s", typ)
		}
		term.Bprintf(b, "  %s = xor i1 %s, true\n", r, x)
		return r, "i1", nil
	}
	return "", "", em.errf("unary operator '%s' has no lowering", v.Op)
}

var icmpOps = map[string]string{
	"==": "eq", "!=": "ne", "<": "slt", "<=": "sle", ">": "sgt", ">=": "sge",
}

var arithOps = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "sdiv", "%": "srem",
}

func (em *emitter) binary(b *strings.Builder, v *ast.BinaryExpr) (string, string, error) {
	l, lt, err := em.expr(b, v.Left)
	if err != nil {
		return "", "", err
	}
	r, rt, err := em.expr(b, v.Right)
	if err != nil {
		return "", "", err
	}
	if lt != rt {
		return "", "", em.errf("operator '%s' on mixed types %s and %s", v.Op, lt, rt)
	}
	out := em.newTmp()
	if op, ok := arithOps[v.Op]; ok {
		if lt != "i64" {
			return "", "", em.errf("operator '%s' needs i64 operands, got %s", v.Op, lt)
		}
		term.Bprintf(b, "  %s = %s i64 %s, %s\n", out, op, l, r)
		return out, "i64", nil
	}
	if op, ok := icmpOps[v.Op]; ok {
		if lt != "i64" && lt != "i1" {
			return "", "", em.errf("comparison '%s' has no lowering for %s", v.Op, lt)
		}
		term.Bprintf(b, "  %s = icmp %s %s %s, %s\n", out, op, lt, l, r)
		return out, "i1", nil
	}
	switch v.Op {
	case "&&":
		term.Bprintf(b, "  %s = and i1 %s, %s\n", out, l, r)
		return out, "i1", nil
	case "||":
		term.Bprintf(b, "  %s = or i1 %s, %s\n", out, l, r)
		return out, "i1", nil
	}
	return "", "", em.errf("operator '%s' has no lowering", v.Op)
}

func (em *emitter) call(b *strings.Builder, v *ast.CallExpr) (string, string, error) {
	switch v.Name {
	case "println":
		return em.emitPrint(b, v.Args, true)
	case "print":
		return em.emitPrint(b, v.Args, false)
	}
	fd, ok := em.fns[v.Name]
	if !ok {
		return "", "", em.errf("cannot find function '%s'", v.Name)
	}
	if len(v.Args) != len(fd.Params) {
		return "", "", em.errf("function '%s' expects %d arguments, got %d",
			v.Name, len(fd.Params), len(v.Args))
	}
	var ops []string
	for _, a := range v.Args {
		val, typ, err := em.expr(b, a)
		if err != nil {
			return "", "", err
		}
		ops = append(ops, typ+" "+val)
	}
	if fd.Ret == "" {
		term.Bprintf(b, "  call void @%s(%s)\n", v.Name, strings.Join(ops, ", "))
		return "", "void", nil
	}
	rt, err := irType(fd.Ret)
	if err != nil {
		return "", "", em.errf("function '%s': %v", v.Name, err)
	}
	out := em.newTmp()
	term.Bprintf(b, "  %s = call %s @%s(%s)\n", out, rt, v.Name, strings.Join(ops, ", "))
	return out, rt, nil
}

func (em *emitter) emitPrint(b *strings.Builder, args []ast.Expr, newline bool) (string, string, error) {
	if len(args) != 1 {
		return "", "", em.errf("println lowering takes exactly 1 argument, got %d", len(args))
	}
	val, typ, err := em.expr(b, args[0])
	if err != nil {
		return "", "", err
	}
	var format string
	switch typ {
	case "i64":
		format = "%ld"
	case "i8*":
		format = "%s"
	default:
		return "", "", em.errf("println has no lowering for %s", typ)
	}
	if newline {
		format += "\n"
	}
	fmtPtr := em.intern(format)
	out := em.newTmp()
	term.Bprintf(b, "  %s = call i32 (i8*, ...) @printf(i8* %s, %s %s)\n", out, fmtPtr, typ, val)
	return "", "void", nil
}
