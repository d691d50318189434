package main

import "github.com/astral-lang/astral/compiler/internal/term"

func usage() {
	term.Printf(`usage: astralc <command> [arguments]

Commands:
  lex <file> [--format=plain|ndjson]  print the token stream
  parse <file>                        print the tree outline
  check <file>                        run the ownership check
  run <file>                          check the file, then interpret it
  emit <file> [--out=<name>]          lower to LLVM IR under gen/out/
  repl                                start an interactive session
  version                             print the toolchain version
  help                                print this text
`)
}
