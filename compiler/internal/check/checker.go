package check

import (
	"fmt"

	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/diag"
)

// checker walks one file and enforces the ownership rules: a value moves at
// most once, only `let mut` variables are assignable, and a borrowed variable
// can be neither reassigned nor moved. The walk stops at the first violation.
type checker struct {
	file   string
	scopes *scopeStack
	enums  map[string]map[string]string // enum -> variant -> payload type
	inLoop bool
}

// File runs the ownership pass over a parsed file. It returns nil when the
// program is well-formed, or the first violation as a *diag.Diagnostic.
func File(filename string, f *ast.File) error {
	c := &checker{
		file:   filename,
		scopes: newScopeStack(),
		enums:  map[string]map[string]string{},
	}
	// enum declarations are visible file-wide, collect them up front so
	// match bindings classify their payloads correctly
	for _, s := range f.Stmts {
		ed, ok := s.(*ast.EnumDecl)
		if !ok {
			continue
		}
		variants := map[string]string{}
		for _, v := range ed.Variants {
			variants[v.Name] = v.Payload
		}
		c.enums[ed.Name] = variants
	}
	for _, s := range f.Stmts {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) undefined(name string, pos diag.Pos) error {
	return diag.Errorf(c.file, pos, "cannot find value '%s' in this scope", name)
}

func (c *checker) useOfMoved(name string, pos diag.Pos, v *varState) error {
	d := diag.Errorf(c.file, pos, "use of moved value '%s'", name)
	d.Note = fmt.Sprintf("value moved at line %d", v.declaredAt.Line)
	if ce, ok := diag.LookupCheck("use_of_moved_value"); ok {
		d.Help = ce.Help
	}
	return d
}

func (c *checker) assignImmutable(name string, pos diag.Pos) error {
	d := diag.Errorf(c.file, pos, "cannot assign to immutable variable '%s'", name)
	d.Help = fmt.Sprintf("consider declaring with 'let mut %s'", name)
	return d
}

func (c *checker) mutateBorrowed(name string, pos diag.Pos) error {
	return diag.Errorf(c.file, pos, "cannot assign to '%s' while it is borrowed", name)
}

func (c *checker) moveBorrowed(name string, pos diag.Pos) error {
	return diag.Errorf(c.file, pos, "cannot move '%s' while borrowed", name)
}
