package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) *Program {
	t.Helper()
	tokens := Tokenize(src)
	p := NewParser(tokens, NewDiagnostics())
	return p.Parse()
}

func TestParserSimpleFunction(t *testing.T) {
	prog := parseSource(t, "int main(){return 42;}")
	require.Len(t, prog.Decls, 1)
	fn, ok := prog.Decls[0].(*Function)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name)
	require.Equal(t, "int", fn.ReturnType)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*Return)
	require.True(t, ok)
	lit, ok := ret.Value.(*IntLiteral)
	require.True(t, ok)
	require.EqualValues(t, 42, lit.Value)
}

func TestParserFunctionPrototypeHasNoBody(t *testing.T) {
	prog := parseSource(t, "int f(int x);")
	fn := prog.Decls[0].(*Function)
	require.Nil(t, fn.Body)
	require.Len(t, fn.Params, 1)
}

func TestParserGlobalVariableDeclaration(t *testing.T) {
	prog := parseSource(t, "int counter = 0;")
	decl, ok := prog.Decls[0].(*Declaration)
	require.True(t, ok)
	require.Equal(t, "counter", decl.Name)
	require.NotNil(t, decl.Init)
}

func TestParserPointerDeclaration(t *testing.T) {
	prog := parseSource(t, "int *p;")
	decl := prog.Decls[0].(*Declaration)
	require.Equal(t, 1, decl.PointerLevel)
}

func TestParserTypedefPointerLevelPropagates(t *testing.T) {
	// Design Note fix: typedef's own pointer level folds into a
	// declaration naming the alias.
	prog := parseSource(t, "typedef int *intptr; intptr x;")
	decl, ok := prog.Decls[1].(*Declaration)
	require.True(t, ok)
	require.Equal(t, 1, decl.PointerLevel)
	require.Equal(t, "int", decl.Type)
}

func TestParserTypedefUnsignedChar(t *testing.T) {
	prog := parseSource(t, "typedef unsigned char u8;")
	td, ok := prog.Decls[0].(*TypedefDecl)
	require.True(t, ok)
	require.Equal(t, "u8", td.Alias)
	require.Equal(t, "unsigned char", td.Underlying)
}

func TestParserStructDeclarationAndUsage(t *testing.T) {
	prog := parseSource(t, "struct P { int x; int y; }; int g(struct P *p) { return p->y; }")
	sd, ok := prog.Decls[0].(*StructDecl)
	require.True(t, ok)
	require.Equal(t, "P", sd.Name)
	require.Len(t, sd.Fields, 2)

	fn := prog.Decls[1].(*Function)
	require.Equal(t, "struct P", fn.Params[0].Type)
	require.Equal(t, 1, fn.Params[0].PointerLevel)
	ret := fn.Body.Stmts[0].(*Return)
	member, ok := ret.Value.(*MemberAccess)
	require.True(t, ok)
	require.True(t, member.IsArrow)
	require.Equal(t, "y", member.Member)
}

func TestParserCastVsParenDisambiguation(t *testing.T) {
	prog := parseSource(t, "int main(){ return (int)1 + (1+2); }")
	fn := prog.Decls[0].(*Function)
	ret := fn.Body.Stmts[0].(*Return)
	bin, ok := ret.Value.(*BinaryOp)
	require.True(t, ok)
	cast, ok := bin.Left.(*Cast)
	require.True(t, ok)
	require.Equal(t, "int", cast.Type)
	_, ok = bin.Right.(*BinaryOp)
	require.True(t, ok)
}

func TestParserPostfixVsPrefixIncrement(t *testing.T) {
	prog := parseSource(t, "int main(){ int i; i++; ++i; return i; }")
	fn := prog.Decls[0].(*Function)
	postfix := fn.Body.Stmts[1].(*ExprStmt).Expr.(*UnaryOp)
	prefix := fn.Body.Stmts[2].(*ExprStmt).Expr.(*UnaryOp)
	require.True(t, postfix.Postfix)
	require.False(t, prefix.Postfix)
}

func TestParserForLoopAllClausesOptional(t *testing.T) {
	prog := parseSource(t, "int main(){ for(;;){} return 0; }")
	fn := prog.Decls[0].(*Function)
	forNode, ok := fn.Body.Stmts[0].(*For)
	require.True(t, ok)
	require.Nil(t, forNode.Init)
	require.Nil(t, forNode.Cond)
	require.Nil(t, forNode.Incr)
}

func TestParserPrecedenceClimbing(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3), not (1 + 2) * 3.
	prog := parseSource(t, "int main(){ return 1 + 2 * 3; }")
	fn := prog.Decls[0].(*Function)
	ret := fn.Body.Stmts[0].(*Return)
	top := ret.Value.(*BinaryOp)
	require.Equal(t, "+", top.Op)
	_, leftIsLit := top.Left.(*IntLiteral)
	require.True(t, leftIsLit)
	mul, ok := top.Right.(*BinaryOp)
	require.True(t, ok)
	require.Equal(t, "*", mul.Op)
}

func TestParserEnumDeclaration(t *testing.T) {
	prog := parseSource(t, "enum Color { RED, GREEN, BLUE };")
	decl, ok := prog.Decls[0].(*EnumDecl)
	require.True(t, ok)
	require.Len(t, decl.Members, 3)
}

func TestParserSizeofTypeAndExpr(t *testing.T) {
	prog := parseSource(t, "int main(){ return sizeof(int) + sizeof(1); }")
	fn := prog.Decls[0].(*Function)
	ret := fn.Body.Stmts[0].(*Return)
	bin := ret.Value.(*BinaryOp)
	_, ok := bin.Left.(*SizeofType)
	require.True(t, ok)
	_, ok = bin.Right.(*SizeofExpr)
	require.True(t, ok)
}

func TestParserInlineAsm(t *testing.T) {
	prog := parseSource(t, "void f(){ asm volatile(\"hlt\"); }")
	fn := prog.Decls[0].(*Function)
	a, ok := fn.Body.Stmts[0].(*InlineAsm)
	require.True(t, ok)
	require.True(t, a.Volatile)
	require.Equal(t, "hlt", a.Body)
}
