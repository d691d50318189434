package check

import (
	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/diag"
)

func (c *checker) stmt(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.FuncDecl:
		return c.funcDecl(st)
	case *ast.StructDecl, *ast.EnumDecl:
		return nil
	case *ast.LetStmt:
		return c.letStmt(st)
	case *ast.AssignStmt:
		return c.assignStmt(st)
	case *ast.IndexAssignStmt:
		return c.indexAssignStmt(st)
	case *ast.Block:
		c.scopes.push()
		defer c.scopes.pop()
		return c.stmts(st.Stmts)
	case *ast.IfStmt:
		return c.ifStmt(st)
	case *ast.WhileStmt:
		if err := c.expr(st.Cond); err != nil {
			return err
		}
		return c.loopBody(st.Body)
	case *ast.ForStmt:
		return c.forStmt(st)
	case *ast.MatchStmt:
		return c.matchStmt(st)
	case *ast.ReturnStmt:
		if st.Value != nil {
			return c.expr(st.Value)
		}
		return nil
	case *ast.BreakStmt:
		if !c.inLoop {
			return diag.Errorf(c.file, st.Pos, "'break' outside of loop")
		}
		return nil
	case *ast.ContinueStmt:
		if !c.inLoop {
			return diag.Errorf(c.file, st.Pos, "'continue' outside of loop")
		}
		return nil
	case *ast.ExprStmt:
		return c.expr(st.X)
	}
	return nil
}

func (c *checker) stmts(list []ast.Stmt) error {
	for _, s := range list {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) funcDecl(fd *ast.FuncDecl) error {
	c.scopes.push()
	defer c.scopes.pop()

	for _, p := range fd.Params {
		typ := p.Type
		if p.Ref {
			typ = "&" + typ
		}
		c.scopes.declare(p.Name, typ, p.Mut, p.Pos)
	}

	// break/continue cannot escape into an enclosing function's loop
	wasInLoop := c.inLoop
	c.inLoop = false
	defer func() { c.inLoop = wasInLoop }()

	return c.stmts(fd.Body.Stmts)
}

func (c *checker) letStmt(st *ast.LetStmt) error {
	typ := st.Type
	if typ == "" {
		typ = c.inferType(st.Value)
	}
	// the initializer runs before the name binds, so `let x = x;` reads
	// the outer x
	if err := c.expr(st.Value); err != nil {
		return err
	}
	c.scopes.declare(st.Name, typ, st.Mutable, st.Pos)
	return nil
}

// assignTarget runs the guards shared by plain and indexed assignment:
// the name must resolve, must not have been moved out, must be `let mut`,
// and must not be borrowed.
func (c *checker) assignTarget(name string, pos diag.Pos) error {
	v := c.scopes.lookup(name)
	if v == nil {
		return c.undefined(name, pos)
	}
	if v.consumed {
		return c.useOfMoved(name, pos, v)
	}
	if !v.mutable {
		return c.assignImmutable(name, pos)
	}
	if v.borrows > 0 {
		return c.mutateBorrowed(name, pos)
	}
	return nil
}

func (c *checker) assignStmt(st *ast.AssignStmt) error {
	if err := c.assignTarget(st.Name, st.Pos); err != nil {
		return err
	}
	return c.expr(st.Value)
}

func (c *checker) indexAssignStmt(st *ast.IndexAssignStmt) error {
	if err := c.assignTarget(st.Name, st.Pos); err != nil {
		return err
	}
	if err := c.expr(st.Index); err != nil {
		return err
	}
	return c.expr(st.Value)
}

func (c *checker) ifStmt(st *ast.IfStmt) error {
	if err := c.expr(st.Cond); err != nil {
		return err
	}
	c.scopes.push()
	err := c.stmts(st.Then.Stmts)
	c.scopes.pop()
	if err != nil {
		return err
	}
	if st.Else != nil {
		return c.stmt(st.Else)
	}
	return nil
}

func (c *checker) loopBody(body *ast.Block) error {
	wasInLoop := c.inLoop
	c.inLoop = true
	c.scopes.push()
	err := c.stmts(body.Stmts)
	c.scopes.pop()
	c.inLoop = wasInLoop
	return err
}

func (c *checker) forStmt(st *ast.ForStmt) error {
	if err := c.expr(st.Iter); err != nil {
		return err
	}
	wasInLoop := c.inLoop
	c.inLoop = true
	c.scopes.push()
	c.scopes.declare(st.Var, "int", false, st.Pos)
	err := c.stmts(st.Body.Stmts)
	c.scopes.pop()
	c.inLoop = wasInLoop
	return err
}

func (c *checker) matchStmt(st *ast.MatchStmt) error {
	scrutinee := c.inferType(st.Value)
	if err := c.expr(st.Value); err != nil {
		return err
	}
	for _, arm := range st.Arms {
		c.scopes.push()
		switch pat := arm.Pat.(type) {
		case *ast.EnumPattern:
			if pat.Binding != "" {
				c.scopes.declare(pat.Binding, c.enums[pat.Enum][pat.Variant], false, pat.Pos)
			}
		case *ast.BindPattern:
			if pat.Name != "_" {
				c.scopes.declare(pat.Name, scrutinee, false, pat.Pos)
			}
		}
		err := c.stmt(arm.Body)
		c.scopes.pop()
		if err != nil {
			return err
		}
	}
	return nil
}
