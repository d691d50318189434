package main

import (
	"os"

	"github.com/astral-lang/astral/compiler/internal/build"
	"github.com/astral-lang/astral/compiler/internal/interp"
	"github.com/astral-lang/astral/compiler/internal/term"
)

func cmdRun(args []string) int {
	if len(args) != 1 {
		term.Eprintln("astralc run: expected one source file")
		return 2
	}
	f, err := build.Front(args[0])
	if err != nil {
		term.Eprintln(err)
		return 1
	}
	if err := interp.Run(args[0], f, os.Stdout); err != nil {
		term.Eprintln(err)
		return 1
	}
	return 0
}
