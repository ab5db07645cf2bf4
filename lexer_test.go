package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	toks := Tokenize("int foo_bar return if")
	require.Equal(t, TokenInt, toks[0].Kind)
	require.Equal(t, TokenIdentifier, toks[1].Kind)
	require.Equal(t, "foo_bar", toks[1].Lexeme)
	require.Equal(t, TokenReturn, toks[2].Kind)
	require.Equal(t, TokenIf, toks[3].Kind)
	require.Equal(t, TokenEOF, toks[len(toks)-1].Kind)
}

func TestLexerMultiCharOperators(t *testing.T) {
	cases := []struct {
		src  string
		kind TokenKind
	}{
		{"++", TokenPlusPlus},
		{"+=", TokenPlusAssign},
		{"+", TokenPlus},
		{"--", TokenMinusMinus},
		{"-=", TokenMinusAssign},
		{"->", TokenArrow},
		{"-", TokenMinus},
		{"<=", TokenLessEq},
		{"<<", TokenLShift},
		{"<", TokenLess},
		{">=", TokenGreaterEq},
		{">>", TokenRShift},
		{">", TokenGreater},
		{"==", TokenEqual},
		{"!=", TokenNotEqual},
		{"!", TokenExclaim},
		{"&&", TokenAnd},
		{"&", TokenAmpersand},
		{"||", TokenOr},
		{"|", TokenPipe},
	}
	for _, c := range cases {
		toks := Tokenize(c.src)
		require.Equalf(t, c.kind, toks[0].Kind, "lexing %q", c.src)
	}
}

func TestLexerHexLiteralPreservesSpelling(t *testing.T) {
	toks := Tokenize("0xFF")
	require.Equal(t, TokenIntLiteral, toks[0].Kind)
	require.Equal(t, "0xFF", toks[0].Lexeme)
	require.EqualValues(t, 255, parseIntLiteral(toks[0].Lexeme))
}

func TestLexerDecimalLiteral(t *testing.T) {
	toks := Tokenize("42")
	require.Equal(t, TokenIntLiteral, toks[0].Kind)
	require.EqualValues(t, 42, parseIntLiteral(toks[0].Lexeme))
}

func TestLexerStringAndCharLiterals(t *testing.T) {
	toks := Tokenize(`"hello\n" 'a' '\n'`)
	require.Equal(t, TokenStringLiteral, toks[0].Kind)
	require.Equal(t, `hello\n`, toks[0].Lexeme)
	require.Equal(t, TokenCharLiteral, toks[1].Kind)
	require.Equal(t, "a", toks[1].Lexeme)
	require.Equal(t, TokenCharLiteral, toks[2].Kind)
}

func TestLexerUnterminatedStringIsErrorToken(t *testing.T) {
	toks := Tokenize(`"unterminated`)
	require.Equal(t, TokenError, toks[0].Kind)
}

func TestLexerUnknownCharacterIsErrorToken(t *testing.T) {
	toks := Tokenize("$")
	require.Equal(t, TokenError, toks[0].Kind)
}

func TestLexerSkipsCommentsAndTracksLineColumn(t *testing.T) {
	toks := Tokenize("// comment\nint x; /* block */ int y;")
	require.Equal(t, TokenInt, toks[0].Kind)
	require.Equal(t, 2, toks[0].Line)
	require.Equal(t, TokenInt, toks[3].Kind)
}
