package parser

import (
	"strconv"

	"github.com/astral-lang/astral/compiler/internal/ast"
	"github.com/astral-lang/astral/compiler/internal/diag"
	"github.com/astral-lang/astral/compiler/internal/lexer"
)

// Parser is a recursive-descent parser over the lexer's token stream with
// one token of lookahead (needed to tell assignments from expression
// statements and `Enum::Variant` from plain identifiers).
type Parser struct {
	file string
	lx   *lexer.Lexer

	tok    lexer.Token
	ahead  *lexer.Token
	lexErr error

	// Struct literals are not allowed in control-flow headers, so that
	// `while x { ... }` reads the brace as the loop body.
	noStructLit bool
}

func New(file, src string) *Parser {
	p := &Parser{file: file, lx: lexer.New(file, src)}
	p.next()
	return p
}

func (p *Parser) read() lexer.Token {
	t, err := p.lx.Next()
	if err != nil && p.lexErr == nil {
		p.lexErr = err
		return lexer.Token{Kind: lexer.TokEOF, Line: t.Line, Col: t.Col}
	}
	return t
}

func (p *Parser) next() {
	if p.ahead != nil {
		p.tok = *p.ahead
		p.ahead = nil
		return
	}
	p.tok = p.read()
}

func (p *Parser) peekAhead() lexer.Token {
	if p.ahead == nil {
		t := p.read()
		p.ahead = &t
	}
	return *p.ahead
}

func (p *Parser) at(k lexer.TokKind) bool { return p.tok.Kind == k }

func (p *Parser) accept(k lexer.TokKind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) pos() diag.Pos { return diag.Pos{Line: p.tok.Line, Col: p.tok.Col} }

func (p *Parser) errf(format string, a ...any) error {
	if p.lexErr != nil {
		return p.lexErr
	}
	return diag.Errorf(p.file, p.pos(), format, a...)
}

func (p *Parser) expect(k lexer.TokKind, what string) (lexer.Token, error) {
	if !p.at(k) {
		return p.tok, p.errf("expected %s, got '%s'", what, p.tok.Kind)
	}
	t := p.tok
	p.next()
	return t, nil
}

// ParseFile parses a whole source file.
func (p *Parser) ParseFile() (*ast.File, error) {
	f := &ast.File{Name: p.file}
	for !p.at(lexer.TokEOF) {
		s, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		f.Stmts = append(f.Stmts, s)
	}
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	return f, nil
}

func (p *Parser) parseTopLevel() (ast.Stmt, error) {
	switch {
	case p.at(lexer.TokFn):
		return p.parseFuncDecl()
	case p.at(lexer.TokStruct):
		return p.parseStructDecl()
	case p.at(lexer.TokEnum):
		return p.parseEnumDecl()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	p.next() // fn
	name, err := p.expect(lexer.TokIdent, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLParen, "'('"); err != nil {
		return nil, err
	}

	var params []ast.Param
	if !p.accept(lexer.TokRParen) {
		for {
			var prm ast.Param
			prm.Ref = p.accept(lexer.TokAmp)
			prm.Mut = p.accept(lexer.TokMut)
			id, err := p.expect(lexer.TokIdent, "parameter name")
			if err != nil {
				return nil, err
			}
			prm.Name = id.Lex
			prm.Pos = diag.Pos{Line: id.Line, Col: id.Col}
			if _, err := p.expect(lexer.TokColon, "':'"); err != nil {
				return nil, err
			}
			prm.Type, err = p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, prm)
			if p.accept(lexer.TokComma) {
				continue
			}
			if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
				return nil, err
			}
			break
		}
	}

	ret := ""
	if p.accept(lexer.TokArrow) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{Name: name.Lex, Params: params, Ret: ret, Body: body}, nil
}

func (p *Parser) parseStructDecl() (*ast.StructDecl, error) {
	p.next() // struct
	name, err := p.expect(lexer.TokIdent, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var fields []ast.Field
	for !p.at(lexer.TokRBrace) && !p.at(lexer.TokEOF) {
		id, err := p.expect(lexer.TokIdent, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokColon, "':'"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Name: id.Lex, Type: ty})
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.StructDecl{Name: name.Lex, Fields: fields}, nil
}

func (p *Parser) parseEnumDecl() (*ast.EnumDecl, error) {
	p.next() // enum
	name, err := p.expect(lexer.TokIdent, "enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var variants []ast.EnumVariant
	for !p.at(lexer.TokRBrace) && !p.at(lexer.TokEOF) {
		id, err := p.expect(lexer.TokIdent, "variant name")
		if err != nil {
			return nil, err
		}
		payload := ""
		if p.accept(lexer.TokLParen) {
			payload, err = p.parseType()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
				return nil, err
			}
		}
		variants = append(variants, ast.EnumVariant{Name: id.Lex, Payload: payload})
		p.accept(lexer.TokComma)
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.EnumDecl{Name: name.Lex, Variants: variants}, nil
}

func (p *Parser) parseType() (string, error) {
	switch p.tok.Kind {
	case lexer.TokIntType:
		p.next()
		return "int", nil
	case lexer.TokBoolType:
		p.next()
		return "bool", nil
	case lexer.TokStringType:
		p.next()
		return "string", nil
	case lexer.TokCharType:
		p.next()
		return "char", nil
	case lexer.TokIdent:
		t := p.tok
		p.next()
		return t.Lex, nil
	case lexer.TokLBrack:
		// [T; N]
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return "", err
		}
		size, err := p.expect(lexer.TokInt, "array size")
		if err != nil {
			return "", err
		}
		if _, err := p.expect(lexer.TokRBrack, "']'"); err != nil {
			return "", err
		}
		return "[" + elem + "; " + size.Lex + "]", nil
	}
	return "", p.errf("expected type, got '%s'", p.tok.Kind)
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(lexer.TokLBrace, "'{'"); err != nil {
		return nil, err
	}
	blk := &ast.Block{}
	for !p.at(lexer.TokRBrace) && !p.at(lexer.TokEOF) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, s)
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return blk, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	switch p.tok.Kind {
	case lexer.TokLet:
		return p.parseLet()
	case lexer.TokIf:
		return p.parseIf()
	case lexer.TokWhile:
		return p.parseWhile()
	case lexer.TokFor:
		return p.parseFor()
	case lexer.TokMatch:
		return p.parseMatch()
	case lexer.TokReturn:
		return p.parseReturn()
	case lexer.TokBreak:
		pos := p.pos()
		p.next()
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Pos: pos}, nil
	case lexer.TokContinue:
		pos := p.pos()
		p.next()
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Pos: pos}, nil
	case lexer.TokLBrace:
		return p.parseBlock()
	case lexer.TokIdent:
		switch p.peekAhead().Kind {
		case lexer.TokAssign:
			return p.parseAssign()
		case lexer.TokLBrack:
			return p.parseIndexAssignOrExpr()
		}
	}
	// generic expression statement
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	pos := p.pos()
	p.next() // let
	mutable := p.accept(lexer.TokMut)
	name, err := p.expect(lexer.TokIdent, "variable name")
	if err != nil {
		return nil, err
	}
	typ := ""
	if p.accept(lexer.TokColon) {
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokAssign, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.LetStmt{Mutable: mutable, Name: name.Lex, Type: typ, Value: value, Pos: pos}, nil
}

func (p *Parser) parseAssign() (ast.Stmt, error) {
	pos := p.pos()
	name := p.tok.Lex
	p.next() // ident
	p.next() // =
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Name: name, Value: value, Pos: pos}, nil
}

// parseIndexAssignOrExpr handles statements that begin with `name[`:
// either `name[i] = v;` or an expression statement.
func (p *Parser) parseIndexAssignOrExpr() (ast.Stmt, error) {
	pos := p.pos()
	nameTok := p.tok
	p.next() // ident
	p.next() // [
	index, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokRBrack, "']'"); err != nil {
		return nil, err
	}
	if p.accept(lexer.TokAssign) {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, err
		}
		return &ast.IndexAssignStmt{Name: nameTok.Lex, Index: index, Value: value, Pos: pos}, nil
	}
	// Re-assemble the index expression and keep parsing it as a postfix chain.
	var x ast.Expr = &ast.IndexExpr{
		Seq:   &ast.Ident{Name: nameTok.Lex, Pos: diag.Pos{Line: nameTok.Line, Col: nameTok.Col}},
		Index: index,
	}
	x, err = p.parsePostfix(x)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: x}, nil
}

func (p *Parser) parseHeaderExpr() (ast.Expr, error) {
	saved := p.noStructLit
	p.noStructLit = true
	x, err := p.parseExpr()
	p.noStructLit = saved
	return x, err
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	p.next() // if
	cond, err := p.parseHeaderExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.accept(lexer.TokElse) {
		if p.at(lexer.TokIf) {
			els, err = p.parseIf()
		} else {
			els, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	p.next() // while
	cond, err := p.parseHeaderExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	pos := p.pos()
	p.next() // for
	name, err := p.expect(lexer.TokIdent, "loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokIn, "'in'"); err != nil {
		return nil, err
	}
	iter, err := p.parseHeaderExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Var: name.Lex, Iter: iter, Body: body, Pos: pos}, nil
}

func (p *Parser) parseMatch() (ast.Stmt, error) {
	p.next() // match
	value, err := p.parseHeaderExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var arms []ast.MatchArm
	for !p.at(lexer.TokRBrace) && !p.at(lexer.TokEOF) {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokFatArrow, "'=>'"); err != nil {
			return nil, err
		}
		var body ast.Stmt
		if p.at(lexer.TokLBrace) {
			body, err = p.parseBlock()
		} else {
			var x ast.Expr
			x, err = p.parseExpr()
			body = &ast.ExprStmt{X: x}
		}
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArm{Pat: pat, Body: body})
		p.accept(lexer.TokComma)
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &ast.MatchStmt{Value: value, Arms: arms}, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	switch p.tok.Kind {
	case lexer.TokIdent:
		first := p.tok.Lex
		pos := p.pos()
		p.next()
		if p.accept(lexer.TokColonCol) {
			variant, err := p.expect(lexer.TokIdent, "variant name")
			if err != nil {
				return nil, err
			}
			binding := ""
			if p.accept(lexer.TokLParen) {
				b, err := p.expect(lexer.TokIdent, "binding name")
				if err != nil {
					return nil, err
				}
				binding = b.Lex
				pos = diag.Pos{Line: b.Line, Col: b.Col}
				if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
					return nil, err
				}
			}
			return &ast.EnumPattern{Enum: first, Variant: variant.Lex, Binding: binding, Pos: pos}, nil
		}
		return &ast.BindPattern{Name: first, Pos: pos}, nil
	case lexer.TokInt:
		n, _ := strconv.ParseInt(p.tok.Lex, 10, 64)
		p.next()
		return &ast.LitPattern{Value: &ast.IntLit{Value: n}}, nil
	case lexer.TokTrue:
		p.next()
		return &ast.LitPattern{Value: &ast.BoolLit{Value: true}}, nil
	case lexer.TokFalse:
		p.next()
		return &ast.LitPattern{Value: &ast.BoolLit{Value: false}}, nil
	case lexer.TokChar:
		r := []rune(p.tok.Lex)
		p.next()
		return &ast.LitPattern{Value: &ast.CharLit{Value: r[0]}}, nil
	case lexer.TokStr:
		s := p.tok.Lex
		p.next()
		return &ast.LitPattern{Value: &ast.StrLit{Value: s}}, nil
	}
	return nil, p.errf("expected pattern, got '%s'", p.tok.Kind)
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	p.next() // return
	if p.accept(lexer.TokSemi) {
		return &ast.ReturnStmt{}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value}, nil
}

/* ---------- expressions ---------- */

func (p *Parser) parseExpr() (ast.Expr, error) {
	if p.accept(lexer.TokAmp) {
		x, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return &ast.RefExpr{X: x}, nil
	}
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.accept(lexer.TokDotDot) {
		hi, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return &ast.RangeExpr{Lo: x, Hi: hi}, nil
	}
	return x, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(lexer.TokOrOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.accept(lexer.TokAndAnd) {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

var comparisonOps = map[lexer.TokKind]string{
	lexer.TokEqEq: "==",
	lexer.TokNe:   "!=",
	lexer.TokLt:   "<",
	lexer.TokLe:   "<=",
	lexer.TokGt:   ">",
	lexer.TokGe:   ">=",
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.tok.Kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokPlus) || p.at(lexer.TokMinus) {
		op := "+"
		if p.at(lexer.TokMinus) {
			op = "-"
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokStar) || p.at(lexer.TokSlash) || p.at(lexer.TokPercent) {
		var op string
		switch p.tok.Kind {
		case lexer.TokStar:
			op = "*"
		case lexer.TokSlash:
			op = "/"
		default:
			op = "%"
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.tok.Kind {
	case lexer.TokMinus:
		p.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: "-", X: x}, nil
	case lexer.TokBang:
		p.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: "!", X: x}, nil
	case lexer.TokInt:
		n, err := strconv.ParseInt(p.tok.Lex, 10, 64)
		if err != nil {
			return nil, p.errf("integer literal out of range")
		}
		p.next()
		return &ast.IntLit{Value: n}, nil
	case lexer.TokTrue:
		p.next()
		return &ast.BoolLit{Value: true}, nil
	case lexer.TokFalse:
		p.next()
		return &ast.BoolLit{Value: false}, nil
	case lexer.TokChar:
		r := []rune(p.tok.Lex)
		p.next()
		return &ast.CharLit{Value: r[0]}, nil
	case lexer.TokStr:
		s := p.tok.Lex
		p.next()
		return &ast.StrLit{Value: s}, nil
	case lexer.TokLBrack:
		p.next()
		lit := &ast.ArrayLit{}
		for !p.at(lexer.TokRBrack) && !p.at(lexer.TokEOF) {
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			lit.Elems = append(lit.Elems, el)
			if !p.accept(lexer.TokComma) {
				break
			}
		}
		if _, err := p.expect(lexer.TokRBrack, "']'"); err != nil {
			return nil, err
		}
		return lit, nil
	case lexer.TokLParen:
		p.next()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
			return nil, err
		}
		return p.parsePostfix(x)
	case lexer.TokIdent:
		id := &ast.Ident{Name: p.tok.Lex, Pos: p.pos()}
		p.next()
		return p.parsePostfix(id)
	}
	return nil, p.errf("expected expression, got '%s'", p.tok.Kind)
}

func (p *Parser) parsePostfix(left ast.Expr) (ast.Expr, error) {
	for {
		switch {
		case p.at(lexer.TokLParen):
			id, ok := left.(*ast.Ident)
			if !ok {
				return nil, p.errf("invalid function call")
			}
			p.next()
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			left = &ast.CallExpr{Name: id.Name, Args: args, Pos: id.Pos}
		case p.at(lexer.TokDot):
			p.next()
			field, err := p.expect(lexer.TokIdent, "field or method name")
			if err != nil {
				return nil, err
			}
			if p.at(lexer.TokLParen) {
				p.next()
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				left = &ast.MethodCallExpr{Recv: left, Method: field.Lex, Args: args}
			} else {
				left = &ast.MemberExpr{X: left, Field: field.Lex}
			}
		case p.at(lexer.TokLBrack):
			p.next()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokRBrack, "']'"); err != nil {
				return nil, err
			}
			left = &ast.IndexExpr{Seq: left, Index: index}
		case p.at(lexer.TokLBrace) && !p.noStructLit:
			id, ok := left.(*ast.Ident)
			if !ok {
				return left, nil
			}
			p.next()
			fields, err := p.parseFieldInits()
			if err != nil {
				return nil, err
			}
			left = &ast.StructLit{Name: id.Name, Fields: fields}
		case p.at(lexer.TokColonCol):
			id, ok := left.(*ast.Ident)
			if !ok {
				return left, nil
			}
			p.next()
			variant, err := p.expect(lexer.TokIdent, "variant name")
			if err != nil {
				return nil, err
			}
			var payload ast.Expr
			if p.accept(lexer.TokLParen) {
				payload, err = p.parseExpr()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
					return nil, err
				}
			}
			left = &ast.EnumLit{Enum: id.Name, Variant: variant.Lex, Payload: payload}
		default:
			return left, nil
		}
	}
}

// parseArguments parses a call argument list after '('. A leading '&' wraps
// the argument in a reference expression (a borrow, not a move).
func (p *Parser) parseArguments() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.accept(lexer.TokRParen) {
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(lexer.TokComma) {
			break
		}
	}
	if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseFieldInits() ([]ast.FieldInit, error) {
	var fields []ast.FieldInit
	if p.accept(lexer.TokRBrace) {
		return fields, nil
	}
	for {
		name, err := p.expect(lexer.TokIdent, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokColon, "':'"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.FieldInit{Name: name.Lex, Value: value})
		p.accept(lexer.TokComma)
		if p.at(lexer.TokRBrace) {
			break
		}
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return fields, nil
}
