package check

import "github.com/astral-lang/astral/compiler/internal/ast"

// isCopy reports whether values of the given type duplicate on read instead
// of moving. Fixed-size scalars copy; strings and aggregates move. References
// copy: a borrow can be handed around without consuming the owner. An unknown
// type (empty string) conservatively moves.
func isCopy(typ string) bool {
	switch typ {
	case "int", "bool", "char":
		return true
	}
	if len(typ) > 0 && typ[0] == '&' {
		return true
	}
	return false
}

// inferType gives a best-effort textual type for an expression, used to
// classify let-bound variables when the declaration has no annotation.
func (c *checker) inferType(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.IntLit:
		return "int"
	case *ast.BoolLit:
		return "bool"
	case *ast.CharLit:
		return "char"
	case *ast.StrLit:
		return "string"
	case *ast.Ident:
		if st := c.scopes.lookup(v.Name); st != nil {
			return st.typ
		}
		return ""
	case *ast.RefExpr:
		return "&" + c.inferType(v.X)
	case *ast.UnaryExpr:
		if v.Op == "!" {
			return "bool"
		}
		return "int"
	case *ast.BinaryExpr:
		switch v.Op {
		case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			return "bool"
		case "+":
			if c.inferType(v.Left) == "string" || c.inferType(v.Right) == "string" {
				return "string"
			}
			return "int"
		default:
			return "int"
		}
	case *ast.StructLit:
		return v.Name
	case *ast.EnumLit:
		return v.Enum
	case *ast.ArrayLit:
		if len(v.Elems) > 0 {
			return "[" + c.inferType(v.Elems[0]) + "]"
		}
		return "[]"
	case *ast.IndexExpr:
		return "" // element type is not tracked
	default:
		return ""
	}
}
