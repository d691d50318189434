package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/check"
	"github.com/astral-lang/astral/compiler/internal/parser"
)

// Load reads one source file into memory.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return string(data), nil
}

// Parse runs lex+parse on a file and returns the tree.
func Parse(path string) (*ast.File, error) {
	src, err := Load(path)
	if err != nil {
		return nil, err
	}
	return parser.New(path, src).ParseFile()
}

// Front runs the full front end on a file: lex, parse, then the ownership
// check. The returned tree is safe to hand to the interpreter or backend.
func Front(path string) (*ast.File, error) {
	f, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if err := check.File(path, f); err != nil {
		return nil, err
	}
	return f, nil
}

// OutPath returns gen/out/<stem>.ll for a source path, creating the
// directory. A non-empty name overrides the stem taken from the source.
func OutPath(srcPath, name string) (string, error) {
	if name == "" {
		base := filepath.Base(srcPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	dir := filepath.Join("gen", "out")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return filepath.Join(dir, name+".ll"), nil
}
