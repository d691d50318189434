package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/diag"
)

// Interp is a tree-walking evaluator. It assumes the file already passed the
// ownership check; runtime errors cover what the static pass cannot see
// (bad indices, division by zero, arity mismatches).
type Interp struct {
	file string
	fns  map[string]*ast.FuncDecl
	out  io.Writer
	env  *env
}

type env struct {
	frames []map[string]Value
}

func (e *env) push() { e.frames = append(e.frames, map[string]Value{}) }
func (e *env) pop()  { e.frames = e.frames[:len(e.frames)-1] }

func (e *env) declare(name string, v Value) { e.frames[len(e.frames)-1][name] = v }

func (e *env) lookup(name string) (Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *env) set(name string, v Value) bool {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			e.frames[i][name] = v
			return true
		}
	}
	return false
}

type ctrl int

const (
	ctrlNone ctrl = iota
	ctrlBreak
	ctrlContinue
	ctrlReturn
)

// Run executes a checked file: top-level statements run first in file order,
// then main() is called. Output of println/print goes to out.
func Run(file string, f *ast.File, out io.Writer) error {
	it := &Interp{
		file: file,
		fns:  map[string]*ast.FuncDecl{},
		out:  out,
		env:  &env{frames: []map[string]Value{{}}},
	}
	for _, s := range f.Stmts {
		if fd, ok := s.(*ast.FuncDecl); ok {
			it.fns[fd.Name] = fd
		}
	}
	for _, s := range f.Stmts {
		switch s.(type) {
		case *ast.FuncDecl, *ast.StructDecl, *ast.EnumDecl:
			continue
		}
		if _, _, err := it.exec(s); err != nil {
			return err
		}
	}
	main, ok := it.fns["main"]
	if !ok {
		return it.errf("no 'main' function")
	}
	_, err := it.call(main, nil)
	return err
}

func (it *Interp) errf(format string, a ...any) error {
	return diag.Errorf(it.file, diag.Pos{}, format, a...)
}

func (it *Interp) errAt(pos diag.Pos, format string, a ...any) error {
	return diag.Errorf(it.file, pos, format, a...)
}

// call runs a function in a fresh scope over the globals frame only. There
// are no closures: locals of the caller are not visible to the callee.
func (it *Interp) call(fd *ast.FuncDecl, args []Value) (Value, error) {
	if len(args) != len(fd.Params) {
		return nil, it.errf("function '%s' expects %d arguments, got %d",
			fd.Name, len(fd.Params), len(args))
	}
	saved := it.env.frames
	frame := map[string]Value{}
	for i, p := range fd.Params {
		frame[p.Name] = args[i]
	}
	it.env.frames = []map[string]Value{saved[0], frame}
	c, ret, err := it.execStmts(fd.Body.Stmts)
	it.env.frames = saved
	if err != nil {
		return nil, err
	}
	if c == ctrlReturn && ret != nil {
		return ret, nil
	}
	return UnitVal{}, nil
}

func (it *Interp) execStmts(list []ast.Stmt) (ctrl, Value, error) {
	for _, s := range list {
		c, ret, err := it.exec(s)
		if err != nil {
			return ctrlNone, nil, err
		}
		if c != ctrlNone {
			return c, ret, nil
		}
	}
	return ctrlNone, nil, nil
}

func (it *Interp) execBlock(b *ast.Block) (ctrl, Value, error) {
	it.env.push()
	defer it.env.pop()
	return it.execStmts(b.Stmts)
}

func (it *Interp) exec(s ast.Stmt) (ctrl, Value, error) {
	switch st := s.(type) {
	case *ast.FuncDecl, *ast.StructDecl, *ast.EnumDecl:
		return ctrlNone, nil, nil
	case *ast.LetStmt:
		v, err := it.eval(st.Value)
		if err != nil {
			return ctrlNone, nil, err
		}
		it.env.declare(st.Name, v)
		return ctrlNone, nil, nil
	case *ast.AssignStmt:
		v, err := it.eval(st.Value)
		if err != nil {
			return ctrlNone, nil, err
		}
		if !it.env.set(st.Name, v) {
			return ctrlNone, nil, it.errAt(st.Pos, "undefined variable '%s'", st.Name)
		}
		return ctrlNone, nil, nil
	case *ast.IndexAssignStmt:
		return ctrlNone, nil, it.indexAssign(st)
	case *ast.Block:
		return it.execBlock(st)
	case *ast.IfStmt:
		cond, err := it.evalBool(st.Cond, "if condition")
		if err != nil {
			return ctrlNone, nil, err
		}
		if cond {
			return it.execBlock(st.Then)
		}
		if st.Else != nil {
			return it.exec(st.Else)
		}
		return ctrlNone, nil, nil
	case *ast.WhileStmt:
		for {
			cond, err := it.evalBool(st.Cond, "while condition")
			if err != nil {
				return ctrlNone, nil, err
			}
			if !cond {
				return ctrlNone, nil, nil
			}
			c, ret, err := it.execBlock(st.Body)
			if err != nil {
				return ctrlNone, nil, err
			}
			if c == ctrlBreak {
				return ctrlNone, nil, nil
			}
			if c == ctrlReturn {
				return c, ret, nil
			}
		}
	case *ast.ForStmt:
		return it.execFor(st)
	case *ast.MatchStmt:
		return it.execMatch(st)
	case *ast.ReturnStmt:
		var v Value = UnitVal{}
		if st.Value != nil {
			var err error
			v, err = it.eval(st.Value)
			if err != nil {
				return ctrlNone, nil, err
			}
		}
		return ctrlReturn, v, nil
	case *ast.BreakStmt:
		return ctrlBreak, nil, nil
	case *ast.ContinueStmt:
		return ctrlContinue, nil, nil
	case *ast.ExprStmt:
		_, err := it.eval(st.X)
		return ctrlNone, nil, err
	}
	return ctrlNone, nil, nil
}

func (it *Interp) indexAssign(st *ast.IndexAssignStmt) error {
	cur, ok := it.env.lookup(st.Name)
	if !ok {
		return it.errAt(st.Pos, "undefined variable '%s'", st.Name)
	}
	arr, ok := cur.(*ArrayVal)
	if !ok {
		return it.errAt(st.Pos, "cannot index-assign into %s", typeName(cur))
	}
	idx, err := it.evalInt(st.Index, "index")
	if err != nil {
		return err
	}
	if idx < 0 || int(idx) >= len(arr.Elems) {
		return it.errAt(st.Pos, "index %d out of bounds (len %d)", idx, len(arr.Elems))
	}
	v, err := it.eval(st.Value)
	if err != nil {
		return err
	}
	arr.Elems[idx] = v
	return nil
}

func (it *Interp) execFor(st *ast.ForStmt) (ctrl, Value, error) {
	iter, err := it.eval(st.Iter)
	if err != nil {
		return ctrlNone, nil, err
	}
	var items []Value
	switch v := iter.(type) {
	case RangeVal:
		for i := v.Lo; i < v.Hi; i++ {
			items = append(items, IntVal(i))
		}
	case *ArrayVal:
		items = v.Elems
	case StrVal:
		for _, r := range string(v) {
			items = append(items, CharVal(r))
		}
	default:
		return ctrlNone, nil, it.errAt(st.Pos, "cannot iterate over %s", typeName(iter))
	}
	for _, item := range items {
		it.env.push()
		it.env.declare(st.Var, item)
		c, ret, err := it.execStmts(st.Body.Stmts)
		it.env.pop()
		if err != nil {
			return ctrlNone, nil, err
		}
		if c == ctrlBreak {
			return ctrlNone, nil, nil
		}
		if c == ctrlReturn {
			return c, ret, nil
		}
	}
	return ctrlNone, nil, nil
}

func (it *Interp) execMatch(st *ast.MatchStmt) (ctrl, Value, error) {
	v, err := it.eval(st.Value)
	if err != nil {
		return ctrlNone, nil, err
	}
	for _, arm := range st.Arms {
		bindName, bindVal, matched, err := it.matchPattern(arm.Pat, v)
		if err != nil {
			return ctrlNone, nil, err
		}
		if !matched {
			continue
		}
		it.env.push()
		if bindName != "" && bindName != "_" {
			it.env.declare(bindName, bindVal)
		}
		c, ret, err := it.exec(arm.Body)
		it.env.pop()
		return c, ret, err
	}
	return ctrlNone, nil, nil
}

func (it *Interp) matchPattern(p ast.Pattern, v Value) (string, Value, bool, error) {
	switch pat := p.(type) {
	case *ast.LitPattern:
		lit, err := it.eval(pat.Value)
		if err != nil {
			return "", nil, false, err
		}
		return "", nil, equal(lit, v), nil
	case *ast.EnumPattern:
		ev, ok := v.(*EnumVal)
		if !ok || ev.Enum != pat.Enum || ev.Variant != pat.Variant {
			return "", nil, false, nil
		}
		if pat.Binding != "" {
			payload := ev.Payload
			if payload == nil {
				payload = UnitVal{}
			}
			return pat.Binding, payload, true, nil
		}
		return "", nil, true, nil
	case *ast.BindPattern:
		return pat.Name, v, true, nil
	}
	return "", nil, false, nil
}

/* ---------- expressions ---------- */

func (it *Interp) eval(e ast.Expr) (Value, error) {
	switch v := e.(type) {
	case *ast.Ident:
		val, ok := it.env.lookup(v.Name)
		if !ok {
			return nil, it.errAt(v.Pos, "undefined variable '%s'", v.Name)
		}
		return val, nil
	case *ast.IntLit:
		return IntVal(v.Value), nil
	case *ast.BoolLit:
		return BoolVal(v.Value), nil
	case *ast.CharLit:
		return CharVal(v.Value), nil
	case *ast.StrLit:
		return StrVal(v.Value), nil
	case *ast.ArrayLit:
		arr := &ArrayVal{Elems: make([]Value, 0, len(v.Elems))}
		for _, el := range v.Elems {
			ev, err := it.eval(el)
			if err != nil {
				return nil, err
			}
			arr.Elems = append(arr.Elems, ev)
		}
		return arr, nil
	case *ast.IndexExpr:
		return it.evalIndex(v)
	case *ast.UnaryExpr:
		return it.evalUnary(v)
	case *ast.BinaryExpr:
		return it.evalBinary(v)
	case *ast.RangeExpr:
		lo, err := it.evalInt(v.Lo, "range bound")
		if err != nil {
			return nil, err
		}
		hi, err := it.evalInt(v.Hi, "range bound")
		if err != nil {
			return nil, err
		}
		return RangeVal{Lo: lo, Hi: hi}, nil
	case *ast.RefExpr:
		// borrows are erased at runtime
		return it.eval(v.X)
	case *ast.CallExpr:
		return it.evalCall(v)
	case *ast.MethodCallExpr:
		return it.evalMethod(v)
	case *ast.MemberExpr:
		obj, err := it.eval(v.X)
		if err != nil {
			return nil, err
		}
		sv, ok := obj.(*StructVal)
		if !ok {
			return nil, it.errf("no field '%s' on %s", v.Field, typeName(obj))
		}
		fv, ok := sv.Fields[v.Field]
		if !ok {
			return nil, it.errf("no field '%s' on struct '%s'", v.Field, sv.Name)
		}
		return fv, nil
	case *ast.StructLit:
		sv := &StructVal{Name: v.Name, Fields: map[string]Value{}}
		for _, f := range v.Fields {
			fv, err := it.eval(f.Value)
			if err != nil {
				return nil, err
			}
			sv.Fields[f.Name] = fv
		}
		return sv, nil
	case *ast.EnumLit:
		ev := &EnumVal{Enum: v.Enum, Variant: v.Variant}
		if v.Payload != nil {
			pv, err := it.eval(v.Payload)
			if err != nil {
				return nil, err
			}
			ev.Payload = pv
		}
		return ev, nil
	}
	return nil, it.errf("cannot evaluate expression")
}

func (it *Interp) evalBool(e ast.Expr, what string) (bool, error) {
	v, err := it.eval(e)
	if err != nil {
		return false, err
	}
	b, ok := v.(BoolVal)
	if !ok {
		return false, it.errf("%s must be a bool, got %s", what, typeName(v))
	}
	return bool(b), nil
}

func (it *Interp) evalInt(e ast.Expr, what string) (int64, error) {
	v, err := it.eval(e)
	if err != nil {
		return 0, err
	}
	n, ok := v.(IntVal)
	if !ok {
		return 0, it.errf("%s must be an int, got %s", what, typeName(v))
	}
	return int64(n), nil
}

func (it *Interp) evalIndex(e *ast.IndexExpr) (Value, error) {
	seq, err := it.eval(e.Seq)
	if err != nil {
		return nil, err
	}
	idx, err := it.evalInt(e.Index, "index")
	if err != nil {
		return nil, err
	}
	switch s := seq.(type) {
	case *ArrayVal:
		if idx < 0 || int(idx) >= len(s.Elems) {
			return nil, it.errf("index %d out of bounds (len %d)", idx, len(s.Elems))
		}
		return s.Elems[idx], nil
	case StrVal:
		runes := []rune(string(s))
		if idx < 0 || int(idx) >= len(runes) {
			return nil, it.errf("index %d out of bounds (len %d)", idx, len(runes))
		}
		return CharVal(runes[idx]), nil
	}
	return nil, it.errf("cannot index %s", typeName(seq))
}

func (it *Interp) evalUnary(e *ast.UnaryExpr) (Value, error) {
	switch e.Op {
	case "-":
		n, err := it.evalInt(e.X, "negation operand")
		if err != nil {
			return nil, err
		}
		return IntVal(-n), nil
	case "!":
		b, err := it.evalBool(e.X, "'!' operand")
		if err != nil {
			return nil, err
		}
		return BoolVal(!b), nil
	}
	return nil, it.errf("unknown unary operator '%s'", e.Op)
}

func (it *Interp) evalBinary(e *ast.BinaryExpr) (Value, error) {
	// && and || short-circuit
	switch e.Op {
	case "&&":
		l, err := it.evalBool(e.Left, "'&&' operand")
		if err != nil {
			return nil, err
		}
		if !l {
			return BoolVal(false), nil
		}
		r, err := it.evalBool(e.Right, "'&&' operand")
		if err != nil {
			return nil, err
		}
		return BoolVal(r), nil
	case "||":
		l, err := it.evalBool(e.Left, "'||' operand")
		if err != nil {
			return nil, err
		}
		if l {
			return BoolVal(true), nil
		}
		r, err := it.evalBool(e.Right, "'||' operand")
		if err != nil {
			return nil, err
		}
		return BoolVal(r), nil
	}

	l, err := it.eval(e.Left)
	if err != nil {
		return nil, err
	}
	r, err := it.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "==":
		return BoolVal(equal(l, r)), nil
	case "!=":
		return BoolVal(!equal(l, r)), nil
	}

	if ls, ok := l.(StrVal); ok {
		rs, ok := r.(StrVal)
		if !ok {
			return nil, it.errf("operator '%s' needs two strings, got %s and %s",
				e.Op, typeName(l), typeName(r))
		}
		switch e.Op {
		case "+":
			return ls + rs, nil
		case "<":
			return BoolVal(ls < rs), nil
		case "<=":
			return BoolVal(ls <= rs), nil
		case ">":
			return BoolVal(ls > rs), nil
		case ">=":
			return BoolVal(ls >= rs), nil
		}
		return nil, it.errf("operator '%s' not defined on strings", e.Op)
	}

	ln, lok := numeric(l)
	rn, rok := numeric(r)
	if !lok || !rok {
		return nil, it.errf("operator '%s' not defined on %s and %s",
			e.Op, typeName(l), typeName(r))
	}
	switch e.Op {
	case "+":
		return IntVal(ln + rn), nil
	case "-":
		return IntVal(ln - rn), nil
	case "*":
		return IntVal(ln * rn), nil
	case "/":
		if rn == 0 {
			return nil, it.errf("division by zero")
		}
		return IntVal(ln / rn), nil
	case "%":
		if rn == 0 {
			return nil, it.errf("division by zero")
		}
		return IntVal(ln % rn), nil
	case "<":
		return BoolVal(ln < rn), nil
	case "<=":
		return BoolVal(ln <= rn), nil
	case ">":
		return BoolVal(ln > rn), nil
	case ">=":
		return BoolVal(ln >= rn), nil
	}
	return nil, it.errf("unknown operator '%s'", e.Op)
}

// numeric widens int and char operands for arithmetic and ordering.
func numeric(v Value) (int64, bool) {
	switch n := v.(type) {
	case IntVal:
		return int64(n), true
	case CharVal:
		return int64(n), true
	}
	return 0, false
}

func (it *Interp) evalCall(e *ast.CallExpr) (Value, error) {
	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := it.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch e.Name {
	case "println":
		return it.printArgs(args, "\n")
	case "print":
		return it.printArgs(args, "")
	case "len":
		if len(args) != 1 {
			return nil, it.errAt(e.Pos, "len expects 1 argument, got %d", len(args))
		}
		return valueLen(args[0], it)
	case "str":
		if len(args) != 1 {
			return nil, it.errAt(e.Pos, "str expects 1 argument, got %d", len(args))
		}
		return StrVal(args[0].String()), nil
	}

	fd, ok := it.fns[e.Name]
	if !ok {
		return nil, it.errAt(e.Pos, "cannot find function '%s'", e.Name)
	}
	return it.call(fd, args)
}

func (it *Interp) printArgs(args []Value, sep string) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	if _, err := fmt.Fprint(it.out, strings.Join(parts, " ")+sep); err != nil {
		return nil, err
	}
	return UnitVal{}, nil
}

func valueLen(v Value, it *Interp) (Value, error) {
	switch s := v.(type) {
	case StrVal:
		return IntVal(len([]rune(string(s)))), nil
	case *ArrayVal:
		return IntVal(len(s.Elems)), nil
	}
	return nil, it.errf("len is not defined on %s", typeName(v))
}

func (it *Interp) evalMethod(e *ast.MethodCallExpr) (Value, error) {
	recv, err := it.eval(e.Recv)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := it.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch e.Method {
	case "len":
		if len(args) != 0 {
			return nil, it.errf("len takes no arguments")
		}
		return valueLen(recv, it)
	case "push":
		arr, ok := recv.(*ArrayVal)
		if !ok {
			return nil, it.errf("push is not defined on %s", typeName(recv))
		}
		if len(args) != 1 {
			return nil, it.errf("push expects 1 argument, got %d", len(args))
		}
		arr.Elems = append(arr.Elems, args[0])
		return UnitVal{}, nil
	case "pop":
		arr, ok := recv.(*ArrayVal)
		if !ok {
			return nil, it.errf("pop is not defined on %s", typeName(recv))
		}
		if len(arr.Elems) == 0 {
			return nil, it.errf("pop from empty array")
		}
		last := arr.Elems[len(arr.Elems)-1]
		arr.Elems = arr.Elems[:len(arr.Elems)-1]
		return last, nil
	}
	return nil, it.errf("unknown method '%s' on %s", e.Method, typeName(recv))
}

func typeName(v Value) string {
	switch v.(type) {
	case IntVal:
		return "int"
	case BoolVal:
		return "bool"
	case CharVal:
		return "char"
	case StrVal:
		return "string"
	case *ArrayVal:
		return "array"
	case *StructVal:
		return "struct"
	case *EnumVal:
		return "enum"
	case RangeVal:
		return "range"
	case UnitVal:
		return "unit"
	}
	return "value"
}
