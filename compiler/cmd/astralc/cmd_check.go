package main

import (
	"github.com/astral-lang/astral/compiler/internal/build"
	"github.com/astral-lang/astral/compiler/internal/term"
)

func cmdCheck(args []string) int {
	if len(args) != 1 {
		term.Eprintln("astralc check: expected one source file")
		return 2
	}
	if _, err := build.Front(args[0]); err != nil {
		term.Eprintln(err)
		return 1
	}
	term.Println("ok")
	return 0
}
