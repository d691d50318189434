package main

import (
	"os"

	"github.com/astral-lang/astral/compiler/internal/term"
	"github.com/astral-lang/astral/compiler/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "version", "--version", "-v":
		term.Println(version.String())
	case "help", "--help", "-h":
		usage()
	case "lex":
		os.Exit(cmdLex(os.Args[2:]))
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "emit":
		os.Exit(cmdEmit(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	default:
		term.Eprintf("astralc: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}
