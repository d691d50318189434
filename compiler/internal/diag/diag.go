package diag

import (
	"fmt"
	"strings"
)

// Pos marks a 1-based line/column location in a file.
type Pos struct{ Line, Col int }

// Diagnostic is a positioned compiler message. Note and Help are optional
// secondary lines: Note points at related context (e.g. where a value was
// moved), Help suggests a concrete fix.
type Diagnostic struct {
	File string
	Pos  Pos
	Msg  string
	Note string
	Help string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.Line == 0 {
		fmt.Fprintf(&b, "%s: error: %s", d.File, d.Msg)
	} else {
		fmt.Fprintf(&b, "%s:%d:%d: error: %s", d.File, d.Pos.Line, d.Pos.Col, d.Msg)
	}
	if d.Note != "" {
		fmt.Fprintf(&b, "\n  note: %s", d.Note)
	}
	if d.Help != "" {
		fmt.Fprintf(&b, "\n  help: %s", d.Help)
	}
	return b.String()
}

// Errorf builds a positioned diagnostic with a formatted message.
func Errorf(file string, pos Pos, format string, a ...any) *Diagnostic {
	return &Diagnostic{File: file, Pos: pos, Msg: fmt.Sprintf(format, a...)}
}
