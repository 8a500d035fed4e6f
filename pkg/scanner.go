package minlang

type stateFunc func(s *Scanner) stateFunc

// Scanner turns min source text into a flat token sequence. It never fails:
// malformed lexical content is emitted as INVALID tokens and the final token
// is always EOF. Positions are 1-based line/column pairs anchored at the
// first character of each token.
type Scanner struct {
	source  string
	tokens  []Token
	start   int
	current int

	line, column           int
	startLine, startColumn int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Scan is the convenience form of NewScanner(source).Run().
func Scan(source string) []Token {
	return NewScanner(source).Run()
}

// Run drives the state machine to completion and returns the token sequence.
func (s *Scanner) Run() []Token {
	for state := defaultState; state != nil; {
		state = state(s)
	}

	return s.tokens
}

func defaultState(s *Scanner) stateFunc {
	for {
		if s.atEnd() {
			s.mark()
			s.emit(TokenEOF, "")
			return nil
		}

		s.mark()

		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\r':
			s.advance()
		case c == '\n':
			s.advance()
			s.newline()
		case c == '(' && s.peekNext() == '*':
			s.advance()
			s.advance()
			return commentState
		case c == '\'' || c == '"':
			return quotedState
		case isDigit(c):
			return numberState
		case c == '.' && isDigit(s.peekNext()):
			return numberState
		case isAlpha(c) || c == '_':
			return identifierState
		default:
			return operatorState
		}
	}
}

// commentState consumes an ML-style (* ... *) comment without emitting a
// token. Comments do not nest; an unterminated one becomes a single INVALID
// token anchored at the opening parenthesis.
func commentState(s *Scanner) stateFunc {
	for !s.atEnd() {
		if s.peek() == '\n' {
			s.advance()
			s.newline()
			continue
		}

		if s.peek() == '*' && s.peekNext() == ')' {
			s.advance()
			s.advance()
			return defaultState
		}

		s.advance()
	}

	s.emit(TokenInvalid, "Unterminated comment")
	return defaultState
}

// quotedState scans 'x' or "x". Exactly one interior character between
// matching quotes is a CHARLIT; empty, multi-character, or unterminated
// quoted content is INVALID.
func quotedState(s *Scanner) stateFunc {
	quote := s.advance()

	if s.peek() != quote && s.peekNext() == quote {
		s.advance() // the single interior character
		s.advance() // closing quote
		return s.emitLexeme(TokenCharLit)
	}

	for !s.atEnd() && s.peek() != quote && s.peek() != '\n' {
		s.advance()
	}

	if !s.atEnd() && s.peek() == quote {
		s.advance()
	}

	return s.emitLexeme(TokenInvalid)
}

// numberState scans INTLIT and DOUBLELIT. A dot only joins the literal when
// a digit follows it, so "1." scans as INTLIT then DOT while ".5" is a
// DOUBLELIT.
func numberState(s *Scanner) stateFunc {
	if s.peek() == '.' {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}

		return s.emitLexeme(TokenDoubleLit)
	}

	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}

		return s.emitLexeme(TokenDoubleLit)
	}

	return s.emitLexeme(TokenIntLit)
}

func identifierState(s *Scanner) stateFunc {
	for isAlnum(s.peek()) || s.peek() == '_' {
		s.advance()
	}

	if typ, ok := keywordTable[s.lexeme()]; ok {
		return s.emitLexeme(typ)
	}

	return s.emitLexeme(TokenIdentifier)
}

func operatorState(s *Scanner) stateFunc {
	c := s.advance()

	if typ, ok := twoCharTokens[string(c)+string(s.peek())]; ok {
		s.advance()
		return s.emitLexeme(typ)
	}

	if typ, ok := singleCharTokens[c]; ok {
		return s.emitLexeme(typ)
	}

	return s.emitLexeme(TokenInvalid)
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	s.column++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}

	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}

	return s.source[s.current+1]
}

func (s *Scanner) newline() {
	s.line++
	s.column = 1
}

// mark records the position of the token about to be scanned.
func (s *Scanner) mark() {
	s.start = s.current
	s.startLine = s.line
	s.startColumn = s.column
}

func (s *Scanner) lexeme() string {
	return s.source[s.start:s.current]
}

func (s *Scanner) emit(typ TokenType, value string) {
	s.tokens = append(s.tokens, Token{
		Typ:    typ,
		Value:  value,
		Line:   s.startLine,
		Column: s.startColumn,
	})
}

func (s *Scanner) emitLexeme(typ TokenType) stateFunc {
	s.emit(typ, s.lexeme())
	return defaultState
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
