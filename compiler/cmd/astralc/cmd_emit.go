package main

import (
	"os"
	"strings"

	"github.com/astral-lang/astral/compiler/internal/build"
	"github.com/astral-lang/astral/compiler/internal/codegen/llvm"
	"github.com/astral-lang/astral/compiler/internal/term"
)

func cmdEmit(args []string) int {
	out := ""
	path := ""
	for _, a := range args {
		if strings.HasPrefix(a, "--out=") {
			out = strings.TrimPrefix(a, "--out=")
			continue
		}
		path = a
	}
	if path == "" {
		term.Eprintln("astralc emit: missing source file")
		return 2
	}

	f, err := build.Front(path)
	if err != nil {
		term.Eprintln(err)
		return 1
	}
	ir, err := llvm.Emit(path, f)
	if err != nil {
		term.Eprintln(err)
		return 1
	}
	dst, err := build.OutPath(path, out)
	if err != nil {
		term.Eprintln(err)
		return 1
	}
	if err := os.WriteFile(dst, []byte(ir), 0o644); err != nil {
		term.Eprintln(err)
		return 1
	}
	term.Println(dst)
	return 0
}
