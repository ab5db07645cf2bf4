package main

// parser.go - tokens to AST (spec.md §4.3).
//
// Grounded on original_source/.../Parser.c for the declaration/cast/
// typedef disambiguation lookahead rules, and on the teacher's parser.go
// for the overall recursive-descent shape (current/peek/advance/expect,
// a precedence-climbing expression ladder) generalized to the full C
// grammar named in spec.md. Two Design Note fixes from spec.md §9 are
// implemented here rather than left as the original's simplifications:
//   - the typedef table is a field on *Parser, not a package global;
//   - a typedef alias's recorded pointer level is added to the
//     declaration's own pointer-level count when the alias is used as a
//     type.

// Parser consumes a pre-lexed token slice (buffering the whole stream lets
// cast disambiguation rewind cleanly, which a lazily-pulled lexer cannot
// do without its own save/restore machinery).
type Parser struct {
	tokens   []Token
	pos      int
	typedefs *TypedefTable
	diag     *Diagnostics
}

// NewParser returns a Parser over tokens, with a fresh typedef table
// (spec.md §9: "reset at the start of each compilation").
func NewParser(tokens []Token, diag *Diagnostics) *Parser {
	return &Parser{tokens: tokens, typedefs: NewTypedefTable(), diag: diag}
}

func (p *Parser) cur() Token  { return p.tokens[p.pos] }
func (p *Parser) at(k TokenKind) bool { return p.cur().Kind == k }

func (p *Parser) peekAt(off int) Token {
	return p.tokAt(p.pos + off)
}

// tokAt safely indexes the token slice, returning the trailing TokenEOF
// for any index at or beyond the end (tryParseCast's and the top-level
// disambiguation's lookahead can probe past the last real token).
func (p *Parser) tokAt(i int) Token {
	if i < 0 || i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// expect consumes the current token if it has kind k, else reports a
// one-line diagnostic and aborts (spec.md §7).
func (p *Parser) expect(k TokenKind) Token {
	if !p.at(k) {
		p.errorf("expected %s, got %s at line %d", k, p.cur().Kind, p.cur().Line)
	}
	return p.advance()
}

func (p *Parser) errorf(format string, args ...any) {
	p.diag.Fatalf(format, args...)
}

// Parse builds and returns the whole program AST.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	for !p.at(TokenEOF) {
		prog.Decls = append(prog.Decls, p.parseTopLevel())
	}
	return prog
}

// --- Top level ---------------------------------------------------------

func (p *Parser) parseTopLevel() Node {
	switch p.cur().Kind {
	case TokenTypedef:
		return p.parseTypedef()
	case TokenStruct:
		if p.isStructDeclStart() {
			return p.parseStructDeclStatement()
		}
	case TokenEnum:
		return p.parseEnumDecl()
	}
	return p.parseFunctionOrDeclaration()
}

// isStructDeclStart distinguishes `struct Foo { ... };` (a struct
// declaration) from `struct Foo *p;` or `struct Foo x;` (a variable of
// struct type), by looking past the optional tag name for '{'.
func (p *Parser) isStructDeclStart() bool {
	off := 1
	if p.peekAt(off).Kind == TokenIdentifier {
		off++
	}
	return p.peekAt(off).Kind == TokenLBrace
}

func (p *Parser) parseStructDeclStatement() Node {
	decl := p.parseStructBody()
	p.expect(TokenSemi)
	return decl
}

// parseStructBody parses `struct [Name] { members... }` without consuming
// a trailing semicolon (used both as a top-level declaration and inside a
// typedef).
func (p *Parser) parseStructBody() *StructDecl {
	line := p.cur().Line
	p.expect(TokenStruct)
	name := ""
	if p.at(TokenIdentifier) {
		name = p.advance().Lexeme
	}
	decl := &StructDecl{Name: name, Line: line}
	p.expect(TokenLBrace)
	for !p.at(TokenRBrace) {
		decl.Fields = append(decl.Fields, p.parseStructField())
	}
	p.expect(TokenRBrace)
	return decl
}

func (p *Parser) parseStructField() StructField {
	typ := p.parseTypeName()
	ptr := p.parseStars()
	name := p.expect(TokenIdentifier).Lexeme
	f := StructField{Type: typ, Name: name, PointerLevel: ptr}
	if p.at(TokenLBracket) {
		p.advance()
		f.HasBrackets = true
		if !p.at(TokenRBracket) {
			f.ArraySize = p.parseExpression()
		}
		p.expect(TokenRBracket)
	}
	p.expect(TokenSemi)
	return f
}

// parseTypedef handles all three typedef forms named in spec.md §4.3.
func (p *Parser) parseTypedef() Node {
	line := p.cur().Line
	p.expect(TokenTypedef)
	if p.at(TokenStruct) && p.isStructDeclStart() {
		body := p.parseStructBody()
		alias := p.expect(TokenIdentifier).Lexeme
		p.expect(TokenSemi)
		if body.Name == "" {
			body.Name = alias
		}
		p.typedefs.Define(alias, "struct "+body.Name, 0)
		return &TypedefDecl{Alias: alias, Underlying: "struct " + body.Name, Struct: body, Line: line}
	}
	if p.at(TokenStruct) {
		// typedef struct Name Alias;
		p.expect(TokenStruct)
		tag := p.expect(TokenIdentifier).Lexeme
		alias := p.expect(TokenIdentifier).Lexeme
		p.expect(TokenSemi)
		p.typedefs.Define(alias, "struct "+tag, 0)
		return &TypedefDecl{Alias: alias, Underlying: "struct " + tag, Line: line}
	}
	// typedef primitive-sequence [pointers] Alias;
	underlying := p.parseTypeName()
	ptr := p.parseStars()
	alias := p.expect(TokenIdentifier).Lexeme
	p.expect(TokenSemi)
	p.typedefs.Define(alias, underlying, ptr)
	return &TypedefDecl{Alias: alias, Underlying: underlying, PointerLevel: ptr, Line: line}
}

func (p *Parser) parseEnumDecl() Node {
	line := p.cur().Line
	p.expect(TokenEnum)
	name := ""
	if p.at(TokenIdentifier) {
		name = p.advance().Lexeme
	}
	decl := &EnumDecl{Name: name, Line: line}
	p.expect(TokenLBrace)
	for !p.at(TokenRBrace) {
		memberName := p.expect(TokenIdentifier).Lexeme
		m := EnumMember{Name: memberName}
		if p.at(TokenAssign) {
			p.advance()
			m.Value = p.parseTernary()
		}
		decl.Members = append(decl.Members, m)
		if p.at(TokenComma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(TokenRBrace)
	p.expect(TokenSemi)
	return decl
}

// parseFunctionOrDeclaration disambiguates a top-level function
// definition/prototype from a variable declaration by lookahead: skip
// qualifiers and the type token, skip stars, then check whether the next
// two tokens are `identifier (` (spec.md §4.3).
func (p *Parser) parseFunctionOrDeclaration() Node {
	start := p.pos
	flags := p.peekQualifiers(start)
	off := start + flags.consumed
	_, typeConsumed := p.peekTypeName(off)
	off += typeConsumed
	for p.tokAt(off).Kind == TokenStar {
		off++
	}
	isFunc := p.tokAt(off).Kind == TokenIdentifier && p.tokAt(off+1).Kind == TokenLParen

	if isFunc {
		return p.parseFunction()
	}
	decl := p.parseDeclaration()
	p.expect(TokenSemi)
	return decl
}

type qualifierScan struct {
	flags    DeclFlags
	consumed int
}

// peekQualifiers scans leading storage-class/qualifier keywords starting
// at index from without consuming them, returning how many tokens were
// scanned.
func (p *Parser) peekQualifiers(from int) qualifierScan {
	var f DeclFlags
	i := from
	for {
		switch p.tokAt(i).Kind {
		case TokenStatic:
			f.Static = true
		case TokenExtern:
			f.Extern = true
		case TokenVolatile:
			f.Volatile = true
		case TokenConst:
			f.Const = true
		case TokenUnsigned:
			f.Unsigned = true
		case TokenSigned:
			// signed is the default; recorded as absence of Unsigned
		case TokenRegister:
			f.Register = true
		case TokenInline:
			f.Inline = true
		default:
			return qualifierScan{flags: f, consumed: i - from}
		}
		i++
	}
}

// peekTypeName scans a type name (struct Name, primitive keyword(s), or a
// typedef alias) starting at index from without consuming it, returning
// the normalized type string and how many tokens were scanned.
func (p *Parser) peekTypeName(from int) (string, int) {
	i := from
	if p.tokAt(i).Kind == TokenStruct {
		i++
		name := ""
		if p.tokAt(i).Kind == TokenIdentifier {
			name = p.tokAt(i).Lexeme
			i++
		}
		return "struct " + name, i - from
	}
	if primitiveKeyword(p.tokAt(i).Kind) {
		text := p.tokAt(i).Lexeme
		i++
		// "unsigned"/"long"/"short" may be followed by another primitive
		// keyword, e.g. "unsigned char", "unsigned long".
		for primitiveKeyword(p.tokAt(i).Kind) {
			text = text + " " + p.tokAt(i).Lexeme
			i++
		}
		return text, i - from
	}
	if p.tokAt(i).Kind == TokenIdentifier && p.typedefs.IsTypeName(p.tokAt(i).Lexeme) {
		return p.tokAt(i).Lexeme, 1
	}
	return "", 0
}

// consumeQualifiers advances past leading storage-class/qualifier
// keywords, collecting them into flags.
func (p *Parser) consumeQualifiers() DeclFlags {
	var f DeclFlags
	for {
		switch p.cur().Kind {
		case TokenStatic:
			f.Static = true
		case TokenExtern:
			f.Extern = true
		case TokenVolatile:
			f.Volatile = true
		case TokenConst:
			f.Const = true
		case TokenUnsigned:
			f.Unsigned = true
		case TokenSigned:
		case TokenRegister:
			f.Register = true
		case TokenInline:
			f.Inline = true
		default:
			return f
		}
		p.advance()
	}
}

// parseTypeName consumes and normalizes a type name: `struct Name`, a
// primitive keyword sequence, or a typedef alias (resolved to its
// underlying spelling; the alias's own pointer level is NOT applied here
// -- callers needing the combined pointer level use typedefPointerLevel).
func (p *Parser) parseTypeName() string {
	if p.at(TokenStruct) {
		p.advance()
		name := ""
		if p.at(TokenIdentifier) {
			name = p.advance().Lexeme
		}
		return "struct " + name
	}
	if primitiveKeyword(p.cur().Kind) {
		text := p.advance().Lexeme
		for primitiveKeyword(p.cur().Kind) {
			text = text + " " + p.advance().Lexeme
		}
		return text
	}
	if p.at(TokenIdentifier) && p.typedefs.IsTypeName(p.cur().Lexeme) {
		alias := p.advance().Lexeme
		entry, _ := p.typedefs.Lookup(alias)
		return entry.Underlying
	}
	p.errorf("expected a type name, got %s at line %d", p.cur().Kind, p.cur().Line)
	return ""
}

// typedefPointerLevel returns the pointer level recorded for name if it
// names a typedef alias, used by declaration parsing to implement the
// Design Note fix that propagates a typedef's own pointer level.
func (p *Parser) typedefPointerLevel(name string) int {
	if entry, ok := p.typedefs.Lookup(name); ok {
		return entry.PointerLevel
	}
	return 0
}

func (p *Parser) parseStars() int {
	n := 0
	for p.at(TokenStar) {
		p.advance()
		n++
	}
	return n
}

// --- Declarations and functions -----------------------------------------

func (p *Parser) parseDeclaration() *Declaration {
	line := p.cur().Line
	flags := p.consumeQualifiers()
	// Capture the alias name (if any) before parseTypeName resolves it,
	// so the typedef's own pointer level can be folded in.
	aliasName := ""
	if p.at(TokenIdentifier) && p.typedefs.IsTypeName(p.cur().Lexeme) {
		aliasName = p.cur().Lexeme
	}
	typ := p.parseTypeName()
	ptr := p.parseStars()
	if aliasName != "" {
		ptr += p.typedefPointerLevel(aliasName)
	}
	name := p.expect(TokenIdentifier).Lexeme
	decl := &Declaration{Type: typ, Name: name, PointerLevel: ptr, Flags: flags, Line: line}
	if p.at(TokenLBracket) {
		p.advance()
		decl.HasBrackets = true
		if !p.at(TokenRBracket) {
			decl.ArraySize = p.parseExpression()
		}
		p.expect(TokenRBracket)
	}
	if p.at(TokenAssign) {
		p.advance()
		decl.Init = p.parseAssignment()
	}
	return decl
}

func (p *Parser) parseFunction() *Function {
	line := p.cur().Line
	flags := p.consumeQualifiers()
	retType := p.parseTypeName()
	retPtr := p.parseStars()
	name := p.expect(TokenIdentifier).Lexeme
	p.expect(TokenLParen)
	var params []*Declaration
	if p.at(TokenVoid) && p.peekAt(1).Kind == TokenRParen {
		p.advance()
	} else if !p.at(TokenRParen) {
		for {
			params = append(params, p.parseParam())
			if p.at(TokenComma) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(TokenRParen)
	fn := &Function{ReturnType: retType, PointerLevel: retPtr, Name: name, Params: params, Flags: flags, Line: line}
	if p.at(TokenSemi) {
		p.advance() // prototype: no body
		return fn
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseParam() *Declaration {
	flags := p.consumeQualifiers()
	typ := p.parseTypeName()
	ptr := p.parseStars()
	name := ""
	if p.at(TokenIdentifier) {
		name = p.advance().Lexeme
	}
	d := &Declaration{Type: typ, Name: name, PointerLevel: ptr, Flags: flags}
	if p.at(TokenLBracket) {
		p.advance()
		d.HasBrackets = true
		d.PointerLevel++ // "pointer-as-parameter" (spec.md §4.3)
		if !p.at(TokenRBracket) {
			d.ArraySize = p.parseExpression()
		}
		p.expect(TokenRBracket)
	}
	return d
}

// --- Statements ----------------------------------------------------------

func (p *Parser) parseBlock() *Block {
	p.expect(TokenLBrace)
	b := &Block{}
	for !p.at(TokenRBrace) {
		b.Stmts = append(b.Stmts, p.parseStatement())
	}
	p.expect(TokenRBrace)
	return b
}

func (p *Parser) parseStatement() Node {
	switch p.cur().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenIf:
		return p.parseIf()
	case TokenWhile:
		return p.parseWhile()
	case TokenFor:
		return p.parseFor()
	case TokenReturn:
		return p.parseReturn()
	case TokenBreak:
		line := p.advance().Line
		p.expect(TokenSemi)
		return &Break{Line: line}
	case TokenContinue:
		line := p.advance().Line
		p.expect(TokenSemi)
		return &Continue{Line: line}
	case TokenAsm:
		return p.parseInlineAsm()
	case TokenStruct:
		if p.isStructDeclStart() {
			return p.parseStructDeclStatement()
		}
	case TokenTypedef:
		return p.parseTypedef()
	case TokenEnum:
		return p.parseEnumDecl()
	}
	if p.startsDeclaration() {
		d := p.parseDeclaration()
		p.expect(TokenSemi)
		return d
	}
	expr := p.parseExpression()
	p.expect(TokenSemi)
	return &ExprStmt{Expr: expr}
}

// startsDeclaration reports whether the current position begins a
// declaration (as opposed to an expression statement): a qualifier
// keyword, a primitive type keyword, or a typedef alias.
func (p *Parser) startsDeclaration() bool {
	switch p.cur().Kind {
	case TokenStatic, TokenExtern, TokenVolatile, TokenConst, TokenRegister, TokenInline:
		return true
	}
	if primitiveKeyword(p.cur().Kind) {
		return true
	}
	if p.at(TokenIdentifier) && p.typedefs.IsTypeName(p.cur().Lexeme) {
		return true
	}
	return false
}

func (p *Parser) parseIf() Node {
	p.expect(TokenIf)
	p.expect(TokenLParen)
	cond := p.parseExpression()
	p.expect(TokenRParen)
	then := p.parseStatement()
	var els Node
	if p.at(TokenElse) {
		p.advance()
		els = p.parseStatement()
	}
	return &If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() Node {
	p.expect(TokenWhile)
	p.expect(TokenLParen)
	cond := p.parseExpression()
	p.expect(TokenRParen)
	body := p.parseStatement()
	return &While{Cond: cond, Body: body}
}

func (p *Parser) parseFor() Node {
	p.expect(TokenFor)
	p.expect(TokenLParen)
	var init Node
	if !p.at(TokenSemi) {
		if p.startsDeclaration() {
			init = p.parseDeclaration()
		} else {
			init = &ExprStmt{Expr: p.parseExpression()}
		}
	}
	p.expect(TokenSemi)
	var cond Node
	if !p.at(TokenSemi) {
		cond = p.parseExpression()
	}
	p.expect(TokenSemi)
	var incr Node
	if !p.at(TokenRParen) {
		incr = p.parseExpression()
	}
	p.expect(TokenRParen)
	body := p.parseStatement()
	return &For{Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *Parser) parseReturn() Node {
	line := p.advance().Line
	if p.at(TokenSemi) {
		p.advance()
		return &Return{Line: line}
	}
	val := p.parseExpression()
	p.expect(TokenSemi)
	return &Return{Value: val, Line: line}
}

func (p *Parser) parseInlineAsm() Node {
	p.expect(TokenAsm)
	vol := false
	if p.at(TokenVolatile) {
		p.advance()
		vol = true
	}
	p.expect(TokenLParen)
	body := p.expect(TokenStringLiteral).Lexeme
	p.expect(TokenRParen)
	p.expect(TokenSemi)
	return &InlineAsm{Volatile: vol, Body: body}
}

// --- Expressions: precedence-climbing ladder, low to high ---------------

func (p *Parser) parseExpression() Node {
	return p.parseAssignment()
}

var assignOps = map[TokenKind]string{
	TokenAssign:      "=",
	TokenPlusAssign:  "+=",
	TokenMinusAssign: "-=",
	TokenStarAssign:  "*=",
	TokenSlashAssign: "/=",
}

func (p *Parser) parseAssignment() Node {
	left := p.parseTernary()
	if op, ok := assignOps[p.cur().Kind]; ok {
		p.advance()
		right := p.parseAssignment() // right-associative
		return &Assign{Op: op, Target: left, Value: right}
	}
	return left
}

func (p *Parser) parseTernary() Node {
	cond := p.parseLogicalOr()
	if p.at(TokenQuestion) {
		p.advance()
		then := p.parseAssignment()
		p.expect(TokenColon)
		els := p.parseAssignment() // right-associative
		return &Ternary{Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) parseLogicalOr() Node {
	left := p.parseLogicalAnd()
	for p.at(TokenOr) {
		p.advance()
		right := p.parseLogicalAnd()
		left = &BinaryOp{Op: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() Node {
	left := p.parseBitOr()
	for p.at(TokenAnd) {
		p.advance()
		right := p.parseBitOr()
		left = &BinaryOp{Op: "&&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitOr() Node {
	left := p.parseBitXor()
	for p.at(TokenPipe) {
		p.advance()
		right := p.parseBitXor()
		left = &BinaryOp{Op: "|", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitXor() Node {
	left := p.parseBitAnd()
	for p.at(TokenCaret) {
		p.advance()
		right := p.parseBitAnd()
		left = &BinaryOp{Op: "^", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitAnd() Node {
	left := p.parseEquality()
	for p.at(TokenAmpersand) {
		p.advance()
		right := p.parseEquality()
		left = &BinaryOp{Op: "&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() Node {
	left := p.parseRelational()
	for p.at(TokenEqual) || p.at(TokenNotEqual) {
		op := p.advance()
		right := p.parseRelational()
		left = &BinaryOp{Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() Node {
	left := p.parseShift()
	for p.at(TokenLess) || p.at(TokenLessEq) || p.at(TokenGreater) || p.at(TokenGreaterEq) {
		op := p.advance()
		right := p.parseShift()
		left = &BinaryOp{Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseShift() Node {
	left := p.parseAdditive()
	for p.at(TokenLShift) || p.at(TokenRShift) {
		op := p.advance()
		right := p.parseAdditive()
		left = &BinaryOp{Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() Node {
	left := p.parseMultiplicative()
	for p.at(TokenPlus) || p.at(TokenMinus) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &BinaryOp{Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() Node {
	left := p.parseUnary()
	for p.at(TokenStar) || p.at(TokenSlash) || p.at(TokenPercent) {
		op := p.advance()
		right := p.parseUnary()
		left = &BinaryOp{Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() Node {
	switch p.cur().Kind {
	case TokenPlusPlus, TokenMinusMinus:
		op := p.advance()
		operand := p.parseUnary()
		return &UnaryOp{Op: op.Lexeme, Operand: operand}
	case TokenAmpersand, TokenStar, TokenPlus, TokenMinus, TokenTilde, TokenExclaim:
		op := p.advance()
		operand := p.parseUnary()
		return &UnaryOp{Op: op.Lexeme, Operand: operand}
	case TokenSizeof:
		return p.parseSizeof()
	case TokenLParen:
		if cast, ok := p.tryParseCast(); ok {
			return cast
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parseSizeof() Node {
	p.expect(TokenSizeof)
	p.expect(TokenLParen)
	if typ, ptr, ok := p.tryPeekTypeNameHere(); ok {
		p.skipTypeName()
		p.skipStars()
		p.expect(TokenRParen)
		return &SizeofType{Type: typ, PointerLevel: ptr}
	}
	expr := p.parseExpression()
	p.expect(TokenRParen)
	return &SizeofExpr{Expr: expr}
}

// tryPeekTypeNameHere reports whether the tokens starting at the current
// position (expected to be just inside a '(') form a type name, without
// consuming anything.
func (p *Parser) tryPeekTypeNameHere() (string, int, bool) {
	typ, consumed := p.peekTypeName(p.pos)
	if consumed == 0 {
		return "", 0, false
	}
	ptrOff := p.pos + consumed
	ptr := 0
	for p.tokAt(ptrOff).Kind == TokenStar {
		ptr++
		ptrOff++
	}
	return typ, ptr, true
}

func (p *Parser) skipTypeName() {
	_, consumed := p.peekTypeName(p.pos)
	for i := 0; i < consumed; i++ {
		p.advance()
	}
}

func (p *Parser) skipStars() {
	for p.at(TokenStar) {
		p.advance()
	}
}

// tryParseCast implements the speculative lookahead spec.md §4.3 requires:
// after '(', if the following tokens form a type name optionally followed
// by stars and then ')', parse as a cast; otherwise rewind and let the
// caller fall through to a parenthesized expression.
func (p *Parser) tryParseCast() (Node, bool) {
	save := p.pos
	p.advance() // '('
	typ, ptr, ok := p.tryPeekTypeNameHere()
	if !ok {
		p.pos = save
		return nil, false
	}
	p.skipTypeName()
	p.skipStars()
	if !p.at(TokenRParen) {
		p.pos = save
		return nil, false
	}
	p.advance() // ')'
	operand := p.parseUnary()
	return &Cast{Type: typ + ptrSuffix(ptr), Expr: operand}, true
}

func ptrSuffix(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "*"
	}
	return s
}

func (p *Parser) parsePostfix() Node {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case TokenLParen:
			if id, ok := expr.(*Identifier); ok {
				expr = p.finishCall(id)
				continue
			}
			return expr
		case TokenLBracket:
			p.advance()
			idx := p.parseExpression()
			p.expect(TokenRBracket)
			expr = &ArrayAccess{Array: expr, Index: idx}
		case TokenDot:
			line := p.advance().Line
			member := p.expect(TokenIdentifier).Lexeme
			expr = &MemberAccess{Object: expr, Member: member, IsArrow: false, Line: line}
		case TokenArrow:
			line := p.advance().Line
			member := p.expect(TokenIdentifier).Lexeme
			expr = &MemberAccess{Object: expr, Member: member, IsArrow: true, Line: line}
		case TokenPlusPlus, TokenMinusMinus:
			op := p.advance()
			expr = &UnaryOp{Op: op.Lexeme, Operand: expr, Postfix: true}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(id *Identifier) Node {
	p.expect(TokenLParen)
	var args []Node
	if !p.at(TokenRParen) {
		for {
			args = append(args, p.parseAssignment())
			if p.at(TokenComma) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(TokenRParen)
	return &Call{Callee: id.Name, Args: args, Line: id.Line}
}

func (p *Parser) parsePrimary() Node {
	tok := p.cur()
	switch tok.Kind {
	case TokenIntLiteral:
		p.advance()
		isHex := len(tok.Lexeme) > 1 && tok.Lexeme[1] == 'x'
		return &IntLiteral{Value: parseIntLiteral(tok.Lexeme), Hex: isHex}
	case TokenStringLiteral:
		p.advance()
		return &StringLiteral{Value: tok.Lexeme}
	case TokenCharLiteral:
		p.advance()
		return &CharLiteral{Value: decodeCharLiteral(tok.Lexeme)}
	case TokenIdentifier:
		p.advance()
		return &Identifier{Name: tok.Lexeme, Line: tok.Line}
	case TokenLParen:
		p.advance()
		e := p.parseExpression()
		p.expect(TokenRParen)
		return e
	}
	p.errorf("expected expression, got %s at line %d", tok.Kind, tok.Line)
	return nil
}

// decodeCharLiteral resolves a char literal body ("c" or "\c") to its
// single byte value; only the first character is significant (spec.md
// §4.3's "char literal (first char only)").
func decodeCharLiteral(body string) byte {
	if len(body) == 0 {
		return 0
	}
	if body[0] == '\\' && len(body) > 1 {
		switch body[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case '0':
			return 0
		case '\\':
			return '\\'
		case '\'':
			return '\''
		case 'r':
			return '\r'
		default:
			return body[1]
		}
	}
	return body[0]
}
