package main

// ast.go - AST node types. Every node owns its children outright; there are
// no back-edges and no shared subtrees.

// Node is implemented by every AST node kind. The marker method keeps
// arbitrary values from satisfying the interface by accident.
type Node interface {
	astNode()
}

// Program is the root of every compilation: an ordered list of top-level
// declarations (functions, global variables, struct/typedef/enum decls).
type Program struct {
	Decls []Node
}

func (*Program) astNode() {}

// DeclFlags bundles the storage-class and qualifier keywords a declaration
// or function may carry.
type DeclFlags struct {
	Static   bool
	Extern   bool
	Volatile bool
	Const    bool
	Unsigned bool
	Register bool
	Inline   bool
	Packed   bool
}

// Declaration is a variable declaration, at global or local scope, or a
// function parameter (in which case Init is always nil).
type Declaration struct {
	Type         string
	Name         string
	PointerLevel int
	Init         Node // optional
	ArraySize    Node // optional; nil with HasBrackets set means empty brackets ("pointer parameter")
	HasBrackets  bool
	Flags        DeclFlags
	Line         int
}

func (*Declaration) astNode() {}

// Function carries a return type, name, parameters (each a *Declaration
// with no initializer), an optional body (nil means prototype), and flags.
type Function struct {
	ReturnType   string
	PointerLevel int
	Name         string
	Params       []*Declaration
	Body         *Block // nil for a prototype
	Flags        DeclFlags
	Line         int
}

func (*Function) astNode() {}

// Block is a brace-delimited statement sequence.
type Block struct {
	Stmts []Node
}

func (*Block) astNode() {}

// Return carries an optional value expression.
type Return struct {
	Value Node
	Line  int
}

func (*Return) astNode() {}

// Break and Continue are loop-control statements.
type Break struct{ Line int }
type Continue struct{ Line int }

func (*Break) astNode()    {}
func (*Continue) astNode() {}

// If carries a condition, a then-branch, and an optional else-branch.
type If struct {
	Cond Node
	Then Node
	Else Node // optional
}

func (*If) astNode() {}

// While carries a condition and a body.
type While struct {
	Cond Node
	Body Node
}

func (*While) astNode() {}

// For carries three optional clauses (Init may be a *Declaration or an
// expression statement) and a body.
type For struct {
	Init Node // optional
	Cond Node // optional
	Incr Node // optional
	Body Node
}

func (*For) astNode() {}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Expr Node
}

func (*ExprStmt) astNode() {}

// InlineAsm is the pass-through `asm [volatile] ("...");` statement.
type InlineAsm struct {
	Volatile bool
	Body     string
}

func (*InlineAsm) astNode() {}

// IntLiteral is an integer constant, always typed `int`.
type IntLiteral struct {
	Value int64
	// Hex preserves the original "0x..." spelling when the literal was
	// written in hex, per the decision recorded in DESIGN.md.
	Hex bool
}

func (*IntLiteral) astNode() {}

// StringLiteral is a string constant; Value is the raw body between quotes
// with escapes left uninterpreted, exactly as the lexer preserved it.
type StringLiteral struct {
	Value string
}

func (*StringLiteral) astNode() {}

// CharLiteral is a character constant; only the first body character is
// significant, after minimal `\n`/`\t`/`\0`/`\\`/`\'` escape resolution.
type CharLiteral struct {
	Value byte
}

func (*CharLiteral) astNode() {}

// Identifier references a variable, function, or (after enum resolution)
// a numeric constant.
type Identifier struct {
	Name string
	Line int
}

func (*Identifier) astNode() {}

// BinaryOp is a two-operand operator expression; Op is the lexeme ("+",
// "==", "&&", ...).
type BinaryOp struct {
	Op          string
	Left, Right Node
}

func (*BinaryOp) astNode() {}

// UnaryOp is a one-operand prefix operator; Postfix distinguishes `x++`
// from `++x` for `++`/`--`.
type UnaryOp struct {
	Op      string
	Operand Node
	Postfix bool
}

func (*UnaryOp) astNode() {}

// Assign is a plain or compound assignment; Op is "=", "+=", "-=", "*=",
// or "/=".
type Assign struct {
	Op          string
	Target      Node
	Value       Node
}

func (*Assign) astNode() {}

// Call is a function call with evaluated-in-order arguments.
type Call struct {
	Callee string
	Args   []Node
	Line   int
}

func (*Call) astNode() {}

// ArrayAccess is `Array[Index]`.
type ArrayAccess struct {
	Array Node
	Index Node
}

func (*ArrayAccess) astNode() {}

// MemberAccess is `Object.Member` (IsArrow false) or `Object->Member`
// (IsArrow true).
type MemberAccess struct {
	Object   Node
	Member   string
	IsArrow  bool
	Line     int
}

func (*MemberAccess) astNode() {}

// Cast reinterprets Expr's value as Type without emitting code, except
// that an integer-literal operand is re-emitted in hex.
type Cast struct {
	Type string
	Expr Node
}

func (*Cast) astNode() {}

// SizeofType computes the size of a named type (primitive or `struct X`).
type SizeofType struct {
	Type         string
	PointerLevel int
}

func (*SizeofType) astNode() {}

// SizeofExpr computes the size of an arbitrary expression's static type;
// per spec.md this always yields 4 in the present implementation.
type SizeofExpr struct {
	Expr Node
}

func (*SizeofExpr) astNode() {}

// Ternary is `Cond ? Then : Else`.
type Ternary struct {
	Cond, Then, Else Node
}

func (*Ternary) astNode() {}

// StructField is one member of a struct declaration, in source order.
type StructField struct {
	Type         string
	Name         string
	PointerLevel int
	ArraySize    Node // optional
	HasBrackets  bool
}

// StructDecl declares (and, for an anonymous struct inside a typedef,
// optionally names) a struct type.
type StructDecl struct {
	Name   string // empty for an anonymous struct used only via typedef
	Fields []StructField
	Line   int
}

func (*StructDecl) astNode() {}

// TypedefDecl registers Alias in the typedef table; Underlying is either a
// struct name (`"struct Foo"`) or a primitive/typedef spelling.
type TypedefDecl struct {
	Alias        string
	Underlying   string
	PointerLevel int
	Struct       *StructDecl // non-nil for `typedef struct { ... } Alias;`
	Line         int
}

func (*TypedefDecl) astNode() {}

// EnumMember is one `NAME` or `NAME = expr` entry of an enum declaration.
type EnumMember struct {
	Name  string
	Value Node // optional explicit initializer
}

// EnumDecl declares an enum type and auto-numbers its members (Design
// Note fix: the original left this unresolved).
type EnumDecl struct {
	Name    string // may be empty
	Members []EnumMember
	Line    int
}

func (*EnumDecl) astNode() {}
