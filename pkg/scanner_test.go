package minlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minlang.dev/internal/test"
)

// tok is a position-less view of a token, enough for most scanner cases.
type tok struct {
	typ TokenType
	val string
}

func strip(tokens []Token) []tok {
	var out []tok
	for _, t := range tokens {
		out = append(out, tok{t.Typ, t.Value})
	}

	return out
}

func TestScanner(t *testing.T) {
	cases := []struct {
		data   string
		expect []tok
	}{
		{
			"int x, y; double z;",
			[]tok{
				{TokenInt, "int"},
				{TokenIdentifier, "x"},
				{TokenComma, ","},
				{TokenIdentifier, "y"},
				{TokenSemicolon, ";"},
				{TokenDouble, "double"},
				{TokenIdentifier, "z"},
				{TokenSemicolon, ";"},
			},
		},
		{
			"fun main() = 1;",
			[]tok{
				{TokenFun, "fun"},
				{TokenIdentifier, "main"},
				{TokenLParen, "("},
				{TokenRParen, ")"},
				{TokenAssign, "="},
				{TokenIntLit, "1"},
				{TokenSemicolon, ";"},
			},
		},
		{
			// Longest match: "+=" never scans as PLUS then ASSIGN.
			"+=",
			[]tok{{TokenPlusAssign, "+="}},
		},
		{
			"x += 1; y //= 2",
			[]tok{
				{TokenIdentifier, "x"},
				{TokenPlusAssign, "+="},
				{TokenIntLit, "1"},
				{TokenSemicolon, ";"},
				{TokenIdentifier, "y"},
				{TokenIntDiv, "//"},
				{TokenAssign, "="},
				{TokenIntLit, "2"},
			},
		},
		{
			"if a then b else c andalso orelse",
			[]tok{
				{TokenIf, "if"},
				{TokenIdentifier, "a"},
				{TokenThen, "then"},
				{TokenIdentifier, "b"},
				{TokenElse, "else"},
				{TokenIdentifier, "c"},
				{TokenAndalso, "andalso"},
				{TokenOrelse, "orelse"},
			},
		},
		{
			// Reserved keywords and operators scan but have no production.
			"while return ** % >= <= != ! : .",
			[]tok{
				{TokenWhile, "while"},
				{TokenReturn, "return"},
				{TokenPower, "**"},
				{TokenModulo, "%"},
				{TokenGreaterEqual, ">="},
				{TokenLessEqual, "<="},
				{TokenNotEquals, "!="},
				{TokenNot, "!"},
				{TokenColon, ":"},
				{TokenDot, "."},
			},
		},
		{
			"3.14 .5 0 42",
			[]tok{
				{TokenDoubleLit, "3.14"},
				{TokenDoubleLit, ".5"},
				{TokenIntLit, "0"},
				{TokenIntLit, "42"},
			},
		},
		{
			// A trailing bare dot is not part of the number.
			"1.",
			[]tok{
				{TokenIntLit, "1"},
				{TokenDot, "."},
			},
		},
		{
			"'c' \"z\"",
			[]tok{
				{TokenCharLit, "'c'"},
				{TokenCharLit, "\"z\""},
			},
		},
		{
			// Quoted content must be exactly one character.
			"''",
			[]tok{{TokenInvalid, "''"}},
		},
		{
			"'ab'",
			[]tok{{TokenInvalid, "'ab'"}},
		},
		{
			"\"unterminated",
			[]tok{{TokenInvalid, "\"unterminated"}},
		},
		{
			"(* skipped entirely *) 1",
			[]tok{{TokenIntLit, "1"}},
		},
		{
			"1 (* multi\nline *) 2",
			[]tok{
				{TokenIntLit, "1"},
				{TokenIntLit, "2"},
			},
		},
		{
			"(* never closes",
			[]tok{{TokenInvalid, "Unterminated comment"}},
		},
		{
			"@",
			[]tok{{TokenInvalid, "@"}},
		},
		{
			"_under_score1",
			[]tok{{TokenIdentifier, "_under_score1"}},
		},
		{
			"",
			nil,
		},
	}

	for _, c := range cases {
		got := Scan(c.data)

		require.NotEmpty(t, got, c.data)
		assert.Equal(t, TokenEOF, got[len(got)-1].Typ, c.data)
		assert.Equal(t, c.expect, strip(got[:len(got)-1]), c.data)
	}
}

func TestScannerPositions(t *testing.T) {
	toks := Scan("int x;\nx = 1;\n")

	expect := []Token{
		{TokenInt, "int", 1, 1},
		{TokenIdentifier, "x", 1, 5},
		{TokenSemicolon, ";", 1, 6},
		{TokenIdentifier, "x", 2, 1},
		{TokenAssign, "=", 2, 3},
		{TokenIntLit, "1", 2, 5},
		{TokenSemicolon, ";", 2, 6},
		{TokenEOF, "", 3, 1},
	}

	assert.Equal(t, expect, toks)
}

func TestScannerUnterminatedCommentAnchor(t *testing.T) {
	toks := Scan("x\n  (* never closes\nmore")

	require.Len(t, toks, 3)
	assert.Equal(t, Token{TokenIdentifier, "x", 1, 1}, toks[0])
	// Anchored at the comment's opening parenthesis, not at EOF.
	assert.Equal(t, Token{TokenInvalid, "Unterminated comment", 2, 3}, toks[1])
	assert.Equal(t, TokenEOF, toks[2].Typ)
}

func TestTokenPredicates(t *testing.T) {
	toks := Scan("fun + ; x")

	assert.True(t, toks[0].IsKeyword())
	assert.True(t, toks[1].IsOperator())
	assert.True(t, toks[2].IsDelimiter())
	assert.False(t, toks[3].IsKeyword() || toks[3].IsOperator() || toks[3].IsDelimiter())

	assert.Equal(t, "FUN 'fun' (line 1, column 1)", toks[0].String())
	assert.Equal(t, "PLUSASSIGN", TokenPlusAssign.String())
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkScanner(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		data := test.GetRandomTokens(size)
		b.StartTimer()

		benchResult = Scan(data)
	}
}

func BenchmarkScanner100(b *testing.B) {
	benchmarkScanner(100, b)
}

func BenchmarkScanner1000(b *testing.B) {
	benchmarkScanner(1000, b)
}

func BenchmarkScanner10000(b *testing.B) {
	benchmarkScanner(10000, b)
}

func BenchmarkScanner100000(b *testing.B) {
	benchmarkScanner(100000, b)
}
