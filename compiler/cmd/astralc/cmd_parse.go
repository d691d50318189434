package main

import (
	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/build"
	"github.com/astral-lang/astral/compiler/internal/term"
)

func cmdParse(args []string) int {
	if len(args) != 1 {
		term.Eprintln("astralc parse: expected one source file")
		return 2
	}
	f, err := build.Parse(args[0])
	if err != nil {
		term.Eprintln(err)
		return 1
	}
	term.Printf("%s", ast.DumpFile(f))
	return 0
}
