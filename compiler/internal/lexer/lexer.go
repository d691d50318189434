package lexer

import (
	"unicode"

	"github.com/astral-lang/astral/compiler/internal/diag"
)

// Lexer scans Astral source into a token stream. Whitespace and // comments
// are skipped; every token carries the 1-based line/column where it starts.
type Lexer struct {
	file string
	src  []rune
	i    int

	line int
	col  int
}

func New(file, src string) *Lexer {
	return &Lexer{file: file, src: []rune(src), line: 1, col: 1}
}

func (lx *Lexer) peek() rune {
	if lx.i >= len(lx.src) {
		return 0
	}
	return lx.src[lx.i]
}

func (lx *Lexer) peek2() rune {
	if lx.i+1 >= len(lx.src) {
		return 0
	}
	return lx.src[lx.i+1]
}

func (lx *Lexer) advance() rune {
	if lx.i >= len(lx.src) {
		return 0
	}
	ch := lx.src[lx.i]
	lx.i++
	if ch == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return ch
}

func (lx *Lexer) match(expect rune) bool {
	if lx.peek() == expect {
		lx.advance()
		return true
	}
	return false
}

func (lx *Lexer) atEOF() bool { return lx.i >= len(lx.src) }

func (lx *Lexer) skipSpaceAndComments() {
	for !lx.atEOF() {
		ch := lx.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			lx.advance()
		case ch == '/' && lx.peek2() == '/':
			for !lx.atEOF() && lx.peek() != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) errf(pos diag.Pos, format string, a ...any) error {
	return diag.Errorf(lx.file, pos, format, a...)
}

// Next returns the next token, or a positioned diagnostic on malformed input.
// After EOF it keeps returning EOF tokens.
func (lx *Lexer) Next() (Token, error) {
	lx.skipSpaceAndComments()

	pos := diag.Pos{Line: lx.line, Col: lx.col}
	mk := func(kind TokKind, lex string) Token {
		return Token{Kind: kind, Lex: lex, Line: pos.Line, Col: pos.Col}
	}

	if lx.atEOF() {
		return mk(TokEOF, ""), nil
	}

	ch := lx.peek()

	switch {
	case unicode.IsLetter(ch) || ch == '_':
		return lx.scanIdent(mk), nil
	case unicode.IsDigit(ch):
		return lx.scanInt(mk), nil
	case ch == '"':
		return lx.scanString(mk, pos)
	case ch == '\'':
		return lx.scanChar(mk, pos)
	}

	lx.advance()
	switch ch {
	case '+':
		return mk(TokPlus, ""), nil
	case '-':
		if lx.match('>') {
			return mk(TokArrow, ""), nil
		}
		return mk(TokMinus, ""), nil
	case '*':
		return mk(TokStar, ""), nil
	case '/':
		return mk(TokSlash, ""), nil
	case '%':
		return mk(TokPercent, ""), nil
	case '=':
		if lx.match('=') {
			return mk(TokEqEq, ""), nil
		}
		if lx.match('>') {
			return mk(TokFatArrow, ""), nil
		}
		return mk(TokAssign, ""), nil
	case '<':
		if lx.match('=') {
			return mk(TokLe, ""), nil
		}
		return mk(TokLt, ""), nil
	case '>':
		if lx.match('=') {
			return mk(TokGe, ""), nil
		}
		return mk(TokGt, ""), nil
	case '!':
		if lx.match('=') {
			return mk(TokNe, ""), nil
		}
		return mk(TokBang, ""), nil
	case '&':
		if lx.match('&') {
			return mk(TokAndAnd, ""), nil
		}
		return mk(TokAmp, ""), nil
	case '|':
		if lx.match('|') {
			return mk(TokOrOr, ""), nil
		}
		return Token{}, lx.errf(pos, "unexpected character '|'")
	case '(':
		return mk(TokLParen, ""), nil
	case ')':
		return mk(TokRParen, ""), nil
	case '{':
		return mk(TokLBrace, ""), nil
	case '}':
		return mk(TokRBrace, ""), nil
	case '[':
		return mk(TokLBrack, ""), nil
	case ']':
		return mk(TokRBrack, ""), nil
	case ';':
		return mk(TokSemi, ""), nil
	case ',':
		return mk(TokComma, ""), nil
	case '.':
		if lx.match('.') {
			return mk(TokDotDot, ""), nil
		}
		return mk(TokDot, ""), nil
	case ':':
		if lx.match(':') {
			return mk(TokColonCol, ""), nil
		}
		return mk(TokColon, ""), nil
	}
	return Token{}, lx.errf(pos, "unexpected character %q", string(ch))
}

func (lx *Lexer) scanIdent(mk func(TokKind, string) Token) Token {
	start := lx.i
	for !lx.atEOF() {
		ch := lx.peek()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			lx.advance()
			continue
		}
		break
	}
	word := string(lx.src[start:lx.i])
	if kw, ok := keywords[word]; ok {
		return mk(kw, word)
	}
	return mk(TokIdent, word)
}

func (lx *Lexer) scanInt(mk func(TokKind, string) Token) Token {
	start := lx.i
	for !lx.atEOF() && unicode.IsDigit(lx.peek()) {
		lx.advance()
	}
	return mk(TokInt, string(lx.src[start:lx.i]))
}

func (lx *Lexer) scanString(mk func(TokKind, string) Token, pos diag.Pos) (Token, error) {
	lx.advance() // opening quote
	var out []rune
	for {
		if lx.atEOF() || lx.peek() == '\n' {
			return Token{}, lx.errf(pos, "unterminated string literal")
		}
		ch := lx.advance()
		if ch == '"' {
			return mk(TokStr, string(out)), nil
		}
		if ch == '\\' {
			esc, err := lx.escape(pos)
			if err != nil {
				return Token{}, err
			}
			out = append(out, esc)
			continue
		}
		out = append(out, ch)
	}
}

func (lx *Lexer) scanChar(mk func(TokKind, string) Token, pos diag.Pos) (Token, error) {
	lx.advance() // opening quote
	if lx.atEOF() {
		return Token{}, lx.errf(pos, "unterminated character literal")
	}
	ch := lx.advance()
	if ch == '\\' {
		esc, err := lx.escape(pos)
		if err != nil {
			return Token{}, err
		}
		ch = esc
	}
	if !lx.match('\'') {
		return Token{}, lx.errf(pos, "unterminated character literal")
	}
	return mk(TokChar, string(ch)), nil
}

func (lx *Lexer) escape(pos diag.Pos) (rune, error) {
	if lx.atEOF() {
		return 0, lx.errf(pos, "unterminated escape sequence")
	}
	ch := lx.advance()
	switch ch {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\\', '\'', '"':
		return ch, nil
	}
	return 0, lx.errf(pos, "unknown escape '\\%s'", string(ch))
}
