package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/astral-lang/astral/compiler/internal/interp"
	"github.com/astral-lang/astral/compiler/internal/term"
	"github.com/astral-lang/astral/compiler/internal/version"
)

func historyPath() string {
	if p := os.Getenv("ASTRAL_HISTORY"); p != "" {
		return p
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".astral_history")
	}
	return filepath.Join(os.TempDir(), ".astral_history")
}

func cmdRepl(args []string) int {
	if len(args) != 0 {
		term.Eprintln("astralc repl: takes no arguments")
		return 2
	}

	rl := liner.NewLiner()
	defer rl.Close()
	rl.SetCtrlCAborts(true)

	hist := historyPath()
	if f, err := os.Open(hist); err == nil {
		_, _ = rl.ReadHistory(f)
		f.Close()
	}

	sess := interp.NewSession(os.Stdout)
	term.Println(version.String())
	term.Println("type :help for commands, :quit to leave")

loop:
	for {
		input, err := rl.Prompt("astral> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			term.Eprintln(err)
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		rl.AppendHistory(input)

		switch {
		case input == ":quit" || input == ":q":
			break loop
		case input == ":help":
			term.Printf(":help          this text\n:quit          leave the session\n:ast <stmt>    print the tree outline without running\n")
		case strings.HasPrefix(input, ":ast "):
			out, err := sess.Dump(strings.TrimPrefix(input, ":ast "))
			if err != nil {
				term.Eprintln(err)
				continue
			}
			term.Printf("%s", out)
		case strings.HasPrefix(input, ":"):
			term.Eprintf("unknown command %q, try :help\n", input)
		default:
			if err := sess.Eval(input); err != nil {
				term.Eprintln(err)
			}
		}
	}

	if f, err := os.Create(hist); err == nil {
		_, _ = rl.WriteHistory(f)
		f.Close()
	}
	return 0
}
