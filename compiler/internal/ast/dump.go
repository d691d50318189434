package ast

import (
	"fmt"
	"strings"
)

/*** DUMP (pretty outline for CLI) ***/

// DumpFile renders a compact source-shaped outline of the tree, used by
// `astralc parse` and in parser tests.
func DumpFile(f *File) string {
	var b strings.Builder
	for _, s := range f.Stmts {
		writeStmt(&b, s, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func writeStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch st := s.(type) {
	case *FuncDecl:
		fmt.Fprintf(b, "fn %s(", st.Name)
		for i, p := range st.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if p.Ref {
				b.WriteString("&")
			}
			if p.Mut {
				b.WriteString("mut ")
			}
			fmt.Fprintf(b, "%s: %s", p.Name, p.Type)
		}
		b.WriteString(")")
		if st.Ret != "" {
			fmt.Fprintf(b, " -> %s", st.Ret)
		}
		b.WriteString("\n")
		for _, s2 := range st.Body.Stmts {
			writeStmt(b, s2, depth+1)
		}
	case *StructDecl:
		fmt.Fprintf(b, "struct %s\n", st.Name)
		for _, fd := range st.Fields {
			indent(b, depth+1)
			fmt.Fprintf(b, "%s: %s\n", fd.Name, fd.Type)
		}
	case *EnumDecl:
		fmt.Fprintf(b, "enum %s\n", st.Name)
		for _, v := range st.Variants {
			indent(b, depth+1)
			if v.Payload == "" {
				fmt.Fprintf(b, "%s\n", v.Name)
			} else {
				fmt.Fprintf(b, "%s(%s)\n", v.Name, v.Payload)
			}
		}
	case *LetStmt:
		if st.Mutable {
			b.WriteString("let mut ")
		} else {
			b.WriteString("let ")
		}
		b.WriteString(st.Name)
		if st.Type != "" {
			fmt.Fprintf(b, ": %s", st.Type)
		}
		fmt.Fprintf(b, " = %s\n", ExprString(st.Value))
	case *AssignStmt:
		fmt.Fprintf(b, "%s = %s\n", st.Name, ExprString(st.Value))
	case *IndexAssignStmt:
		fmt.Fprintf(b, "%s[%s] = %s\n", st.Name, ExprString(st.Index), ExprString(st.Value))
	case *Block:
		b.WriteString("block\n")
		for _, s2 := range st.Stmts {
			writeStmt(b, s2, depth+1)
		}
	case *IfStmt:
		fmt.Fprintf(b, "if %s\n", ExprString(st.Cond))
		for _, s2 := range st.Then.Stmts {
			writeStmt(b, s2, depth+1)
		}
		if st.Else != nil {
			indent(b, depth)
			b.WriteString("else\n")
			switch e := st.Else.(type) {
			case *Block:
				for _, s2 := range e.Stmts {
					writeStmt(b, s2, depth+1)
				}
			default:
				writeStmt(b, e, depth+1)
			}
		}
	case *WhileStmt:
		fmt.Fprintf(b, "while %s\n", ExprString(st.Cond))
		for _, s2 := range st.Body.Stmts {
			writeStmt(b, s2, depth+1)
		}
	case *ForStmt:
		fmt.Fprintf(b, "for %s in %s\n", st.Var, ExprString(st.Iter))
		for _, s2 := range st.Body.Stmts {
			writeStmt(b, s2, depth+1)
		}
	case *MatchStmt:
		fmt.Fprintf(b, "match %s\n", ExprString(st.Value))
		for _, arm := range st.Arms {
			indent(b, depth+1)
			fmt.Fprintf(b, "%s =>\n", patternString(arm.Pat))
			writeStmt(b, arm.Body, depth+2)
		}
	case *ReturnStmt:
		if st.Value == nil {
			b.WriteString("return\n")
		} else {
			fmt.Fprintf(b, "return %s\n", ExprString(st.Value))
		}
	case *BreakStmt:
		b.WriteString("break\n")
	case *ContinueStmt:
		b.WriteString("continue\n")
	case *ExprStmt:
		fmt.Fprintf(b, "%s\n", ExprString(st.X))
	default:
		b.WriteString("<stmt>\n")
	}
}

func patternString(p Pattern) string {
	switch pt := p.(type) {
	case *LitPattern:
		return ExprString(pt.Value)
	case *EnumPattern:
		if pt.Binding == "" {
			return pt.Enum + "::" + pt.Variant
		}
		return fmt.Sprintf("%s::%s(%s)", pt.Enum, pt.Variant, pt.Binding)
	case *BindPattern:
		return pt.Name
	default:
		return "<pattern>"
	}
}

// ExprString renders an expression in source-like form.
func ExprString(e Expr) string {
	switch v := e.(type) {
	case *Ident:
		return v.Name
	case *IntLit:
		return fmt.Sprintf("%d", v.Value)
	case *BoolLit:
		if v.Value {
			return "true"
		}
		return "false"
	case *CharLit:
		return "'" + string(v.Value) + "'"
	case *StrLit:
		return fmt.Sprintf("%q", v.Value)
	case *ArrayLit:
		parts := make([]string, len(v.Elems))
		for i, el := range v.Elems {
			parts[i] = ExprString(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *IndexExpr:
		return ExprString(v.Seq) + "[" + ExprString(v.Index) + "]"
	case *UnaryExpr:
		return v.Op + ExprString(v.X)
	case *BinaryExpr:
		return "(" + ExprString(v.Left) + " " + v.Op + " " + ExprString(v.Right) + ")"
	case *RangeExpr:
		return ExprString(v.Lo) + ".." + ExprString(v.Hi)
	case *RefExpr:
		return "&" + ExprString(v.X)
	case *CallExpr:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = ExprString(a)
		}
		return v.Name + "(" + strings.Join(parts, ", ") + ")"
	case *MethodCallExpr:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = ExprString(a)
		}
		return ExprString(v.Recv) + "." + v.Method + "(" + strings.Join(parts, ", ") + ")"
	case *MemberExpr:
		return ExprString(v.X) + "." + v.Field
	case *StructLit:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Name + ": " + ExprString(f.Value)
		}
		return v.Name + " { " + strings.Join(parts, ", ") + " }"
	case *EnumLit:
		if v.Payload == nil {
			return v.Enum + "::" + v.Variant
		}
		return v.Enum + "::" + v.Variant + "(" + ExprString(v.Payload) + ")"
	default:
		return "<expr>"
	}
}
