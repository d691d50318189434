package lexer

// TokKind enumerates token kinds produced by the lexer.
type TokKind int

const (
	// Special
	TokEOF TokKind = iota

	// Literals/identifiers
	TokIdent
	TokInt
	TokStr
	TokChar

	// Keywords
	TokLet
	TokMut
	TokFn
	TokStruct
	TokEnum
	TokMatch
	TokIf
	TokElse
	TokWhile
	TokFor
	TokIn
	TokReturn
	TokBreak
	TokContinue
	TokTrue
	TokFalse

	// Type keywords
	TokIntType
	TokBoolType
	TokStringType
	TokCharType

	// Operators/punctuation
	TokPlus      // +
	TokMinus     // -
	TokStar      // *
	TokSlash     // /
	TokPercent   // %
	TokAssign    // =
	TokAmp       // &
	TokEqEq      // ==
	TokNe        // !=
	TokLt        // <
	TokLe        // <=
	TokGt        // >
	TokGe        // >=
	TokBang      // !
	TokAndAnd    // &&
	TokOrOr      // ||
	TokLParen    // (
	TokRParen    // )
	TokLBrace    // {
	TokRBrace    // }
	TokLBrack    // [
	TokRBrack    // ]
	TokSemi      // ;
	TokColon     // :
	TokComma     // ,
	TokDot       // .
	TokDotDot    // ..
	TokArrow     // ->
	TokFatArrow  // =>
	TokColonCol  // ::
)

var tokNames = map[TokKind]string{
	TokEOF:        "EOF",
	TokIdent:      "IDENT",
	TokInt:        "INT",
	TokStr:        "STR",
	TokChar:       "CHAR",
	TokLet:        "let",
	TokMut:        "mut",
	TokFn:         "fn",
	TokStruct:     "struct",
	TokEnum:       "enum",
	TokMatch:      "match",
	TokIf:         "if",
	TokElse:       "else",
	TokWhile:      "while",
	TokFor:        "for",
	TokIn:         "in",
	TokReturn:     "return",
	TokBreak:      "break",
	TokContinue:   "continue",
	TokTrue:       "true",
	TokFalse:      "false",
	TokIntType:    "int",
	TokBoolType:   "bool",
	TokStringType: "string",
	TokCharType:   "char",
	TokPlus:       "+",
	TokMinus:      "-",
	TokStar:       "*",
	TokSlash:      "/",
	TokPercent:    "%",
	TokAssign:     "=",
	TokAmp:        "&",
	TokEqEq:       "==",
	TokNe:         "!=",
	TokLt:         "<",
	TokLe:         "<=",
	TokGt:         ">",
	TokGe:         ">=",
	TokBang:       "!",
	TokAndAnd:     "&&",
	TokOrOr:       "||",
	TokLParen:     "(",
	TokRParen:     ")",
	TokLBrace:     "{",
	TokRBrace:     "}",
	TokLBrack:     "[",
	TokRBrack:     "]",
	TokSemi:       ";",
	TokColon:      ":",
	TokComma:      ",",
	TokDot:        ".",
	TokDotDot:     "..",
	TokArrow:      "->",
	TokFatArrow:   "=>",
	TokColonCol:   "::",
}

func (k TokKind) String() string {
	if s, ok := tokNames[k]; ok {
		return s
	}
	return "?"
}

var keywords = map[string]TokKind{
	"let":      TokLet,
	"mut":      TokMut,
	"fn":       TokFn,
	"struct":   TokStruct,
	"enum":     TokEnum,
	"match":    TokMatch,
	"if":       TokIf,
	"else":     TokElse,
	"while":    TokWhile,
	"for":      TokFor,
	"in":       TokIn,
	"return":   TokReturn,
	"break":    TokBreak,
	"continue": TokContinue,
	"true":     TokTrue,
	"false":    TokFalse,
	"int":      TokIntType,
	"bool":     TokBoolType,
	"string":   TokStringType,
	"char":     TokCharType,
}

// Token is a single lexeme with source position.
type Token struct {
	Kind TokKind
	Lex  string
	Line int
	Col  int
}
