package main

import (
	"encoding/json"
	"strings"

	"github.com/astral-lang/astral/compiler/internal/build"
	"github.com/astral-lang/astral/compiler/internal/lexer"
	"github.com/astral-lang/astral/compiler/internal/term"
)

type tokenRecord struct {
	Kind string `json:"kind"`
	Lex  string `json:"lex,omitempty"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

func cmdLex(args []string) int {
	format := "plain"
	path := ""
	for _, a := range args {
		if strings.HasPrefix(a, "--format=") {
			format = strings.TrimPrefix(a, "--format=")
			continue
		}
		path = a
	}
	if path == "" {
		term.Eprintln("astralc lex: missing source file")
		return 2
	}
	if format != "plain" && format != "ndjson" {
		term.Eprintf("astralc lex: unknown format %q\n", format)
		return 2
	}

	src, err := build.Load(path)
	if err != nil {
		term.Eprintln(err)
		return 1
	}

	lx := lexer.New(path, src)
	for {
		tok, err := lx.Next()
		if err != nil {
			term.Eprintln(err)
			return 1
		}
		if format == "ndjson" {
			rec := tokenRecord{Kind: tok.Kind.String(), Lex: tok.Lex, Line: tok.Line, Col: tok.Col}
			data, err := json.Marshal(rec)
			if err != nil {
				term.Eprintln(err)
				return 1
			}
			term.Printf("%s\n", data)
		} else {
			if tok.Lex != "" && tok.Lex != tok.Kind.String() {
				term.Printf("%d:%d\t%s\t%q\n", tok.Line, tok.Col, tok.Kind, tok.Lex)
			} else {
				term.Printf("%d:%d\t%s\n", tok.Line, tok.Col, tok.Kind)
			}
		}
		if tok.Kind == lexer.TokEOF {
			return 0
		}
	}
}
