package check

import "github.com/astral-lang/astral/compiler/internal/ast"

// expr walks an expression in read position. Reading an identifier of a
// non-copy type is itself the move: the ownership transfer happens at the
// read site, wherever the value ends up. `&x` is the one escape hatch, it
// borrows instead of moving.
func (c *checker) expr(e ast.Expr) error {
	switch v := e.(type) {
	case *ast.Ident:
		return c.readIdent(v)
	case *ast.IntLit, *ast.BoolLit, *ast.CharLit, *ast.StrLit:
		return nil
	case *ast.RefExpr:
		return c.borrow(v)
	case *ast.UnaryExpr:
		return c.expr(v.X)
	case *ast.BinaryExpr:
		if err := c.expr(v.Left); err != nil {
			return err
		}
		return c.expr(v.Right)
	case *ast.RangeExpr:
		if err := c.expr(v.Lo); err != nil {
			return err
		}
		return c.expr(v.Hi)
	case *ast.ArrayLit:
		return c.exprs(v.Elems)
	case *ast.IndexExpr:
		if err := c.expr(v.Seq); err != nil {
			return err
		}
		return c.expr(v.Index)
	case *ast.CallExpr:
		return c.exprs(v.Args)
	case *ast.MethodCallExpr:
		if err := c.expr(v.Recv); err != nil {
			return err
		}
		return c.exprs(v.Args)
	case *ast.MemberExpr:
		return c.expr(v.X)
	case *ast.StructLit:
		for _, f := range v.Fields {
			if err := c.expr(f.Value); err != nil {
				return err
			}
		}
		return nil
	case *ast.EnumLit:
		if v.Payload != nil {
			return c.expr(v.Payload)
		}
		return nil
	}
	return nil
}

func (c *checker) exprs(list []ast.Expr) error {
	for _, e := range list {
		if err := c.expr(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) readIdent(id *ast.Ident) error {
	v := c.scopes.lookup(id.Name)
	if v == nil {
		return c.undefined(id.Name, id.Pos)
	}
	if v.consumed {
		return c.useOfMoved(id.Name, id.Pos, v)
	}
	if isCopy(v.typ) {
		return nil
	}
	if v.borrows > 0 {
		return c.moveBorrowed(id.Name, id.Pos)
	}
	v.consumed = true
	return nil
}

// borrow handles `&x`. The operand must still own its value; the borrow
// count then grows and stays up for the rest of the variable's scope.
func (c *checker) borrow(r *ast.RefExpr) error {
	id, ok := r.X.(*ast.Ident)
	if !ok {
		return c.expr(r.X)
	}
	v := c.scopes.lookup(id.Name)
	if v == nil {
		return c.undefined(id.Name, id.Pos)
	}
	if v.consumed {
		return c.useOfMoved(id.Name, id.Pos, v)
	}
	v.borrows++
	return nil
}
