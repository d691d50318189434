package ast

import "github.com/astral-lang/astral/compiler/internal/diag"

/*** NODES ***/

type Node interface{ node() }

// File is the root of one parsed source file.
type File struct {
	Name  string // source file name, threaded into diagnostics
	Stmts []Stmt // top-level statements, including fn/struct/enum declarations
}

func (*File) node() {}

/*** STATEMENTS ***/

type Stmt interface {
	Node
	stmt()
}

// Param is one function parameter. Ref marks &T / &mut T parameters, which
// do not take ownership of the argument.
type Param struct {
	Ref  bool
	Mut  bool
	Name string
	Type string
	Pos  diag.Pos
}

type FuncDecl struct {
	Name   string
	Params []Param
	Ret    string // textual type; empty means no return value
	Body   *Block
}

func (*FuncDecl) node() {}
func (*FuncDecl) stmt() {}

type Field struct {
	Name string
	Type string
}

type StructDecl struct {
	Name   string
	Fields []Field
}

func (*StructDecl) node() {}
func (*StructDecl) stmt() {}

type EnumVariant struct {
	Name    string
	Payload string // textual payload type; empty for unit variants
}

type EnumDecl struct {
	Name     string
	Variants []EnumVariant
}

func (*EnumDecl) node() {}
func (*EnumDecl) stmt() {}

type LetStmt struct {
	Mutable bool
	Name    string
	Type    string // optional annotation (textual)
	Value   Expr
	Pos     diag.Pos
}

func (*LetStmt) node() {}
func (*LetStmt) stmt() {}

type AssignStmt struct {
	Name  string
	Value Expr
	Pos   diag.Pos
}

func (*AssignStmt) node() {}
func (*AssignStmt) stmt() {}

// IndexAssignStmt is `name[index] = value`.
type IndexAssignStmt struct {
	Name  string
	Index Expr
	Value Expr
	Pos   diag.Pos
}

func (*IndexAssignStmt) node() {}
func (*IndexAssignStmt) stmt() {}

type Block struct {
	Stmts []Stmt
}

func (*Block) node() {}
func (*Block) stmt() {}

type IfStmt struct {
	Cond Expr
	Then *Block
	Else Stmt // nil, *Block, or *IfStmt for else-if chains
}

func (*IfStmt) node() {}
func (*IfStmt) stmt() {}

type WhileStmt struct {
	Cond Expr
	Body *Block
}

func (*WhileStmt) node() {}
func (*WhileStmt) stmt() {}

type ForStmt struct {
	Var  string
	Iter Expr
	Body *Block
	Pos  diag.Pos
}

func (*ForStmt) node() {}
func (*ForStmt) stmt() {}

type Pattern interface {
	Node
	pattern()
}

// LitPattern matches a literal value (int/bool/char/string).
type LitPattern struct {
	Value Expr
}

func (*LitPattern) node()    {}
func (*LitPattern) pattern() {}

// EnumPattern matches Enum::Variant, optionally binding the payload.
type EnumPattern struct {
	Enum    string
	Variant string
	Binding string // payload binding name; empty when absent
	Pos     diag.Pos
}

func (*EnumPattern) node()    {}
func (*EnumPattern) pattern() {}

// BindPattern binds the scrutinee to a fresh name (also covers `_`).
type BindPattern struct {
	Name string
	Pos  diag.Pos
}

func (*BindPattern) node()    {}
func (*BindPattern) pattern() {}

type MatchArm struct {
	Pat  Pattern
	Body Stmt // expression statement or block
}

type MatchStmt struct {
	Value Expr
	Arms  []MatchArm
}

func (*MatchStmt) node() {}
func (*MatchStmt) stmt() {}

type ReturnStmt struct {
	Value Expr // may be nil
}

func (*ReturnStmt) node() {}
func (*ReturnStmt) stmt() {}

type BreakStmt struct{ Pos diag.Pos }

func (*BreakStmt) node() {}
func (*BreakStmt) stmt() {}

type ContinueStmt struct{ Pos diag.Pos }

func (*ContinueStmt) node() {}
func (*ContinueStmt) stmt() {}

type ExprStmt struct {
	X Expr
}

func (*ExprStmt) node() {}
func (*ExprStmt) stmt() {}

/*** EXPRESSIONS ***/

type Expr interface {
	Node
	expr()
}

type Ident struct {
	Name string
	Pos  diag.Pos
}

func (*Ident) node() {}
func (*Ident) expr() {}

type IntLit struct{ Value int64 }

func (*IntLit) node() {}
func (*IntLit) expr() {}

type BoolLit struct{ Value bool }

func (*BoolLit) node() {}
func (*BoolLit) expr() {}

type CharLit struct{ Value rune }

func (*CharLit) node() {}
func (*CharLit) expr() {}

type StrLit struct{ Value string }

func (*StrLit) node() {}
func (*StrLit) expr() {}

type ArrayLit struct {
	Elems []Expr
}

func (*ArrayLit) node() {}
func (*ArrayLit) expr() {}

type IndexExpr struct {
	Seq   Expr
	Index Expr
}

func (*IndexExpr) node() {}
func (*IndexExpr) expr() {}

type UnaryExpr struct {
	Op string // "-" or "!"
	X  Expr
}

func (*UnaryExpr) node() {}
func (*UnaryExpr) expr() {}

type BinaryExpr struct {
	Op    string // + - * / % == != < <= > >= && ||
	Left  Expr
	Right Expr
}

func (*BinaryExpr) node() {}
func (*BinaryExpr) expr() {}

// RangeExpr is `lo .. hi`, the iterator form consumed by for-loops.
type RangeExpr struct {
	Lo Expr
	Hi Expr
}

func (*RangeExpr) node() {}
func (*RangeExpr) expr() {}

// RefExpr is `&x`: a non-owning borrow of the operand.
type RefExpr struct {
	X Expr
}

func (*RefExpr) node() {}
func (*RefExpr) expr() {}

type CallExpr struct {
	Name string
	Args []Expr
	Pos  diag.Pos
}

func (*CallExpr) node() {}
func (*CallExpr) expr() {}

type MethodCallExpr struct {
	Recv   Expr
	Method string
	Args   []Expr
}

func (*MethodCallExpr) node() {}
func (*MethodCallExpr) expr() {}

type MemberExpr struct {
	X     Expr
	Field string
}

func (*MemberExpr) node() {}
func (*MemberExpr) expr() {}

type FieldInit struct {
	Name  string
	Value Expr
}

type StructLit struct {
	Name   string
	Fields []FieldInit
}

func (*StructLit) node() {}
func (*StructLit) expr() {}

// EnumLit is `Enum::Variant` or `Enum::Variant(payload)`.
type EnumLit struct {
	Enum    string
	Variant string
	Payload Expr // nil for unit variants
}

func (*EnumLit) node() {}
func (*EnumLit) expr() {}
