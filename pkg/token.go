package minlang

import "fmt"

type TokenType uint64

const (
	TokenEOF TokenType = iota
	TokenInvalid

	TokenIdentifier
	TokenIntLit
	TokenDoubleLit
	TokenCharLit

	// Keywords accepted by the grammar
	TokenInt
	TokenDouble
	TokenLong
	TokenChar
	TokenBool
	TokenFun
	TokenIf
	TokenThen
	TokenElse
	TokenTrue
	TokenFalse
	TokenOrelse
	TokenAndalso

	// Reserved keywords, scanned but not part of any production
	TokenWhile
	TokenFor
	TokenDef
	TokenClass
	TokenReturn
	TokenImport
	TokenFrom
	TokenAs
	TokenTry
	TokenExcept
	TokenFinally
	TokenRaise

	// Operators accepted by the grammar
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenMultiplyAssign
	TokenDivideAssign
	TokenPlus
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenIntDiv
	TokenEquals
	TokenGreater
	TokenLess

	// Reserved operators
	TokenNot
	TokenNotEquals
	TokenGreaterEqual
	TokenLessEqual
	TokenModulo
	TokenPower

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenDot
	TokenColon
	TokenSemicolon
)

var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenInvalid: "INVALID",

	TokenIdentifier: "IDENTIFIER",
	TokenIntLit:     "INTLIT",
	TokenDoubleLit:  "DOUBLELIT",
	TokenCharLit:    "CHARLIT",

	TokenInt:     "INT",
	TokenDouble:  "DOUBLE",
	TokenLong:    "LONG",
	TokenChar:    "CHAR",
	TokenBool:    "BOOL",
	TokenFun:     "FUN",
	TokenIf:      "IF",
	TokenThen:    "THEN",
	TokenElse:    "ELSE",
	TokenTrue:    "TRUE",
	TokenFalse:   "FALSE",
	TokenOrelse:  "ORELSE",
	TokenAndalso: "ANDALSO",

	TokenWhile:   "WHILE",
	TokenFor:     "FOR",
	TokenDef:     "DEF",
	TokenClass:   "CLASS",
	TokenReturn:  "RETURN",
	TokenImport:  "IMPORT",
	TokenFrom:    "FROM",
	TokenAs:      "AS",
	TokenTry:     "TRY",
	TokenExcept:  "EXCEPT",
	TokenFinally: "FINALLY",
	TokenRaise:   "RAISE",

	TokenAssign:         "ASSIGN",
	TokenPlusAssign:     "PLUSASSIGN",
	TokenMinusAssign:    "MINUSASSIGN",
	TokenMultiplyAssign: "MULTIPLYASSIGN",
	TokenDivideAssign:   "DIVIDEASSIGN",
	TokenPlus:           "PLUS",
	TokenMinus:          "MINUS",
	TokenMultiply:       "MULTIPLY",
	TokenDivide:         "DIVIDE",
	TokenIntDiv:         "INTDIV",
	TokenEquals:         "EQUALS",
	TokenGreater:        "GREATER",
	TokenLess:           "LESS",

	TokenNot:          "NOT",
	TokenNotEquals:    "NOTEQUALS",
	TokenGreaterEqual: "GREATEREQUAL",
	TokenLessEqual:    "LESSEQUAL",
	TokenModulo:       "MODULO",
	TokenPower:        "POWER",

	TokenLParen:    "LPAREN",
	TokenRParen:    "RPAREN",
	TokenLBrace:    "LBRACE",
	TokenRBrace:    "RBRACE",
	TokenLBracket:  "LBRACKET",
	TokenRBracket:  "RBRACKET",
	TokenComma:     "COMMA",
	TokenDot:       "DOT",
	TokenColon:     "COLON",
	TokenSemicolon: "SEMICOLON",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var keywordTable = map[string]TokenType{
	"int":     TokenInt,
	"double":  TokenDouble,
	"long":    TokenLong,
	"char":    TokenChar,
	"bool":    TokenBool,
	"fun":     TokenFun,
	"if":      TokenIf,
	"then":    TokenThen,
	"else":    TokenElse,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"orelse":  TokenOrelse,
	"andalso": TokenAndalso,

	"while":   TokenWhile,
	"for":     TokenFor,
	"def":     TokenDef,
	"class":   TokenClass,
	"return":  TokenReturn,
	"import":  TokenImport,
	"from":    TokenFrom,
	"as":      TokenAs,
	"try":     TokenTry,
	"except":  TokenExcept,
	"finally": TokenFinally,
	"raise":   TokenRaise,
}

// Two-character operators are matched before any one-character prefix of
// them, so "+=" never scans as PLUS then ASSIGN.
var twoCharTokens = map[string]TokenType{
	"==": TokenEquals,
	"!=": TokenNotEquals,
	">=": TokenGreaterEqual,
	"<=": TokenLessEqual,
	"+=": TokenPlusAssign,
	"-=": TokenMinusAssign,
	"*=": TokenMultiplyAssign,
	"/=": TokenDivideAssign,
	"//": TokenIntDiv,
	"**": TokenPower,
}

var singleCharTokens = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	'.': TokenDot,
	';': TokenSemicolon,
	':': TokenColon,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMultiply,
	'/': TokenDivide,
	'%': TokenModulo,
	'=': TokenAssign,
	'>': TokenGreater,
	'<': TokenLess,
	'!': TokenNot,
}

// Token is an atomic lexical unit. Immutable once produced by the scanner.
type Token struct {
	Typ    TokenType
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s '%s' (line %d, column %d)", t.Typ, t.Value, t.Line, t.Column)
}

func (t Token) IsKeyword() bool {
	return t.Typ >= TokenInt && t.Typ <= TokenRaise
}

func (t Token) IsOperator() bool {
	return t.Typ >= TokenAssign && t.Typ <= TokenPower
}

func (t Token) IsDelimiter() bool {
	return t.Typ >= TokenLParen && t.Typ <= TokenSemicolon
}
