package interp

import (
	"io"

	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/parser"
)

// Session is a persistent evaluator for the REPL. Definitions and globals
// accumulate across inputs; the ownership pass is not run, the REPL is for
// poking at runtime behavior.
type Session struct {
	it *Interp
}

func NewSession(out io.Writer) *Session {
	return &Session{it: &Interp{
		file: "repl",
		fns:  map[string]*ast.FuncDecl{},
		out:  out,
		env:  &env{frames: []map[string]Value{{}}},
	}}
}

// Eval parses one input as a sequence of statements and executes it. A bare
// expression prints its value unless it evaluates to unit.
func (s *Session) Eval(src string) error {
	f, err := parser.New("repl", src).ParseFile()
	if err != nil {
		return err
	}
	for _, st := range f.Stmts {
		switch v := st.(type) {
		case *ast.FuncDecl:
			s.it.fns[v.Name] = v
		case *ast.StructDecl, *ast.EnumDecl:
			// nothing to register, literals carry their own shape
		case *ast.ExprStmt:
			val, err := s.it.eval(v.X)
			if err != nil {
				return err
			}
			if _, unit := val.(UnitVal); !unit {
				if _, err := io.WriteString(s.it.out, val.String()+"\n"); err != nil {
					return err
				}
			}
		default:
			c, _, err := s.it.exec(st)
			if err != nil {
				return err
			}
			if c != ctrlNone {
				return s.it.errf("control flow escapes the top level")
			}
		}
	}
	return nil
}

// Dump parses the input and returns the tree outline without running it.
func (s *Session) Dump(src string) (string, error) {
	f, err := parser.New("repl", src).ParseFile()
	if err != nil {
		return "", err
	}
	return ast.DumpFile(f), nil
}
