package minlang

import (
	"errors"
	"fmt"
)

// Parser is a single-pass recursive-descent LL(1) parser. One left-to-right
// pass recognizes the grammar, maintains the scope stack, resolves names,
// and builds a fully type-annotated AST. It stops at the first fault; there
// is no recovery and no multi-error batching.
//
// Grammar:
//
//	Program      -> StmtList EOF
//	StmtList     -> Stmt StmtList | ε
//
//	Stmt         -> DeclareStmt | AssignStmt | FunctionDefStmt
//	              | FunctionCallStmt | Block
//
//	Block        -> '{' StmtList '}'
//
//	DeclareStmt  -> Type IdList ';'
//	Type         -> int | double | bool | char | long
//	IdList       -> IDENTIFIER (',' IDENTIFIER)*
//
//	AssignStmt   -> IDENTIFIER AssignOp Expression ';'
//	AssignOp     -> '=' | '+=' | '-=' | '*=' | '/='
//
//	FunctionDefStmt  -> fun IDENTIFIER '(' ParamList? ')' '=' Expression ';'
//	ParamList        -> Type IDENTIFIER (',' Type IDENTIFIER)*
//
//	FunctionCallStmt -> FunctionCall ';'
//	FunctionCall     -> IDENTIFIER '(' ArgList? ')'
//	ArgList          -> Expression (',' Expression)*
//
//	Expression   -> IfExpr | LogicOrExpr
//	IfExpr       -> if LogicOrExpr then Expression else Expression
//	LogicOrExpr  -> LogicAndExpr ('orelse' LogicAndExpr)*
//	LogicAndExpr -> RelExpr ('andalso' RelExpr)*
//	RelExpr      -> ArithExpr (CompOp ArithExpr)?
//	CompOp       -> '==' | '>' | '<'
//	ArithExpr    -> Term (('+' | '-') Term)*
//	Term         -> Value (('*' | '/' | '//') Factor)*
//	Value        -> Factor | '-' Factor
//	Factor       -> '(' Expression ')' | FunctionCall | IDENTIFIER
//	              | INTLIT | CHARLIT | DOUBLELIT | true | false
//
// The Term rule parses its right operand through Factor, one level below
// Value, so unary minus is skipped on the right side only. Tests depend on
// this asymmetry.
type Parser struct {
	tokens  []Token
	current int

	// Production trace, kept for diagnostic output.
	productions []string

	global *SymbolTable
	scope  *SymbolTable
	scopes []*SymbolTable
}

func NewParser(tokens []Token) *Parser {
	global := NewSymbolTable(nil, "global")

	return &Parser{
		tokens: tokens,
		global: global,
		scope:  global,
		scopes: []*SymbolTable{global},
	}
}

// Parse scans and parses a full source unit, returning the typed AST root
// and every scope created during the parse, in creation order with the
// global scope first.
func Parse(source string) (*Program, []*SymbolTable, error) {
	p := NewParser(Scan(source))

	program, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}

	return program, p.Scopes(), nil
}

// Parse consumes the whole token sequence and returns the Program root.
func (p *Parser) Parse() (*Program, error) {
	p.record("Program -> StmtList EOF")

	stmts, err := p.stmtList()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenEOF, "expected end of input"); err != nil {
		return nil, err
	}

	return &Program{Statements: stmts}, nil
}

// Scopes returns every scope pushed during the parse, including the ones
// already popped. They stay registered for diagnostic introspection.
func (p *Parser) Scopes() []*SymbolTable {
	return p.scopes
}

// Productions returns the trace of grammar rules applied during the parse.
func (p *Parser) Productions() []string {
	return p.productions
}

// ---------- Statements ----------

func (p *Parser) stmtList() ([]Stmt, error) {
	var stmts []Stmt
	for canStartStmt(p.peek().Typ) {
		p.record("StmtList -> Stmt StmtList")

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		// Declarations only touch the symbol table and produce no node.
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.record("StmtList -> ε")
	return stmts, nil
}

func canStartStmt(typ TokenType) bool {
	switch typ {
	case TokenInt, TokenDouble, TokenBool, TokenChar, TokenLong,
		TokenFun, TokenIdentifier, TokenLBrace:
		return true
	}

	return false
}

func (p *Parser) statement() (Stmt, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenLBrace:
		p.record("Stmt -> Block")
		return p.block()
	case TokenInt, TokenDouble, TokenBool, TokenChar, TokenLong:
		p.record("Stmt -> DeclareStmt")
		return nil, p.declareStmt()
	case TokenFun:
		p.record("Stmt -> FunctionDefStmt")
		return p.functionDefStmt()
	case TokenIdentifier:
		// One extra token of lookahead splits a call from an assignment.
		if p.peekNext().Typ == TokenLParen {
			p.record("Stmt -> FunctionCallStmt")
			return p.functionCallStmt()
		}

		p.record("Stmt -> AssignStmt")
		return p.assignStmt()
	default:
		return nil, p.failExpect(tok, "unexpected token at start of statement")
	}
}

func (p *Parser) block() (*Block, error) {
	p.record("Block -> '{' StmtList '}'")

	if _, err := p.consume(TokenLBrace, "expected '{' to start block"); err != nil {
		return nil, err
	}

	p.pushScope("block")

	stmts, err := p.stmtList()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenRBrace, "expected '}' to end block"); err != nil {
		return nil, err
	}

	p.popScope()
	return &Block{Statements: stmts}, nil
}

func (p *Parser) declareStmt() error {
	p.record("DeclareStmt -> Type IdList ';'")

	typ, err := p.typeKeyword()
	if err != nil {
		return err
	}

	names, err := p.idList()
	if err != nil {
		return err
	}

	for _, name := range names {
		if _, err := p.scope.Declare(name.Value, typ); err != nil {
			return positionAt(err, name)
		}
	}

	_, err = p.consume(TokenSemicolon, "expected ';' after declaration")
	return err
}

func (p *Parser) typeKeyword() (BasicType, error) {
	p.record("Type -> (int|double|bool|char|long)")

	switch {
	case p.match(TokenInt):
		return TypeInt, nil
	case p.match(TokenDouble):
		return TypeDouble, nil
	case p.match(TokenLong):
		return TypeLong, nil
	case p.match(TokenBool):
		return TypeBool, nil
	case p.match(TokenChar):
		return TypeChar, nil
	}

	return 0, p.failExpect(p.peek(), "expected type keyword (int, double, bool, char, long)")
}

func (p *Parser) idList() ([]Token, error) {
	p.record("IdList -> IDENTIFIER (',' IDENTIFIER)*")

	first, err := p.consume(TokenIdentifier, "expected identifier")
	if err != nil {
		return nil, err
	}

	names := []Token{first}
	for p.match(TokenComma) {
		next, err := p.consume(TokenIdentifier, "expected identifier after ','")
		if err != nil {
			return nil, err
		}

		names = append(names, next)
	}

	return names, nil
}

func (p *Parser) assignStmt() (*Assign, error) {
	p.record("AssignStmt -> IDENTIFIER AssignOp Expression ';'")

	nameTok, err := p.consume(TokenIdentifier, "expected identifier at start of assignment")
	if err != nil {
		return nil, err
	}

	sym := p.scope.Lookup(nameTok.Value)
	if sym == nil {
		return nil, &ReferenceError{Line: nameTok.Line, Column: nameTok.Column, Name: nameTok.Value}
	}

	opTok, err := p.assignOp()
	if err != nil {
		return nil, err
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	exprTyp, err := p.resolvedType(expr, nameTok)
	if err != nil {
		return nil, err
	}

	if !CanAssign(exprTyp, sym.Type) {
		return nil, p.typeErrorf(nameTok, "cannot assign %s to %s in assignment to '%s'",
			exprTyp, sym.Type, nameTok.Value)
	}

	if _, err := p.consume(TokenSemicolon, "expected ';' after assignment"); err != nil {
		return nil, err
	}

	return &Assign{Name: nameTok.Value, Op: opTok.Value, Expr: expr}, nil
}

func (p *Parser) assignOp() (Token, error) {
	if p.match(TokenAssign, TokenPlusAssign, TokenMinusAssign,
		TokenMultiplyAssign, TokenDivideAssign) {
		return p.previous(), nil
	}

	return Token{}, p.failExpect(p.peek(), "expected assignment operator (=, +=, -=, *=, /=)")
}

func (p *Parser) functionDefStmt() (*FunctionDef, error) {
	p.record("FunctionDefStmt -> fun IDENTIFIER '(' ParamList? ')' '=' Expression ';'")

	if _, err := p.consume(TokenFun, "expected 'fun'"); err != nil {
		return nil, err
	}

	nameTok, err := p.consume(TokenIdentifier, "expected function name after 'fun'")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenLParen, "expected '(' after function name"); err != nil {
		return nil, err
	}

	// Parameters and body share one fresh scope.
	p.pushScope("fun " + nameTok.Value)

	var (
		paramNames []string
		paramTypes []BasicType
	)

	if !p.check(TokenRParen) {
		for {
			typ, err := p.typeKeyword()
			if err != nil {
				return nil, err
			}

			paramTok, err := p.consume(TokenIdentifier, "expected parameter name")
			if err != nil {
				return nil, err
			}

			if _, err := p.scope.Declare(paramTok.Value, typ); err != nil {
				return nil, positionAt(err, paramTok)
			}

			paramNames = append(paramNames, paramTok.Value)
			paramTypes = append(paramTypes, typ)

			if !p.match(TokenComma) {
				break
			}
		}
	}

	if _, err := p.consume(TokenRParen, "expected ')' after parameter list"); err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenAssign, "expected '=' before function body"); err != nil {
		return nil, err
	}

	body, err := p.expression()
	if err != nil {
		return nil, err
	}

	bodyTyp, err := p.resolvedType(body, nameTok)
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "expected ';' after function definition"); err != nil {
		return nil, err
	}

	p.popScope()

	// The function becomes visible only now, in the global scope, with the
	// body's inferred type. A function can therefore never call itself.
	if _, err := p.global.Declare(nameTok.Value, bodyTyp); err != nil {
		return nil, positionAt(err, nameTok)
	}

	return &FunctionDef{
		Name:       nameTok.Value,
		ParamNames: paramNames,
		ParamTypes: paramTypes,
		Body:       body,
	}, nil
}

func (p *Parser) functionCallStmt() (*FunctionCallStmt, error) {
	p.record("FunctionCallStmt -> FunctionCall ';'")

	call, err := p.functionCall()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenSemicolon, "expected ';' after function call"); err != nil {
		return nil, err
	}

	return &FunctionCallStmt{Call: call}, nil
}

func (p *Parser) functionCall() (*FunctionCall, error) {
	p.record("FunctionCall -> IDENTIFIER '(' ArgList? ')'")

	nameTok, err := p.consume(TokenIdentifier, "expected function name in call")
	if err != nil {
		return nil, err
	}

	// Functions live in the global scope only.
	sym := p.global.Lookup(nameTok.Value)
	if sym == nil {
		return nil, &ReferenceError{Line: nameTok.Line, Column: nameTok.Column, Name: nameTok.Value, Call: true}
	}

	if _, err := p.consume(TokenLParen, "expected '(' after function name in call"); err != nil {
		return nil, err
	}

	var args []Expr
	if !p.check(TokenRParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
	}

	if _, err := p.consume(TokenRParen, "expected ')' after arguments"); err != nil {
		return nil, err
	}

	call := &FunctionCall{Name: nameTok.Value, Args: args}
	call.setType(sym.Type)
	return call, nil
}

// ---------- Expressions ----------

func (p *Parser) expression() (Expr, error) {
	if p.check(TokenIf) {
		p.record("Expression -> IfExpr")
		return p.ifExpr()
	}

	p.record("Expression -> LogicOrExpr")
	return p.logicOrExpr()
}

func (p *Parser) ifExpr() (Expr, error) {
	p.record("IfExpr -> if LogicOrExpr then Expression else Expression")

	ifTok, err := p.consume(TokenIf, "expected 'if'")
	if err != nil {
		return nil, err
	}

	cond, err := p.logicOrExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenThen, "expected 'then' after condition"); err != nil {
		return nil, err
	}

	thenBranch, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenElse, "expected 'else' in if-expression"); err != nil {
		return nil, err
	}

	elseBranch, err := p.expression()
	if err != nil {
		return nil, err
	}

	condTyp, err := p.resolvedType(cond, ifTok)
	if err != nil {
		return nil, err
	}

	if condTyp != TypeBool {
		return nil, p.typeErrorf(ifTok, "condition of if-expression must be bool, got %s", condTyp)
	}

	thenTyp, err := p.resolvedType(thenBranch, ifTok)
	if err != nil {
		return nil, err
	}

	elseTyp, err := p.resolvedType(elseBranch, ifTok)
	if err != nil {
		return nil, err
	}

	// The branches widen to a common result type; this is a type-producing
	// rule, not a mere agreement check.
	typ, ok := Widen(thenTyp, elseTyp)
	if !ok {
		return nil, p.typeErrorf(ifTok, "incompatible types in if-expression branches: %s vs %s",
			thenTyp, elseTyp)
	}

	node := &IfExpr{Cond: cond, Then: thenBranch, Else: elseBranch}
	node.setType(typ)
	return node, nil
}

func (p *Parser) logicOrExpr() (Expr, error) {
	left, err := p.logicAndExpr()
	if err != nil {
		return nil, err
	}

	for p.match(TokenOrelse) {
		opTok := p.previous()

		right, err := p.logicAndExpr()
		if err != nil {
			return nil, err
		}

		if err := p.requireBoolOperands(opTok, left, right); err != nil {
			return nil, err
		}

		node := &BinaryOp{Op: opTok.Value, Left: left, Right: right}
		node.setType(TypeBool)
		left = node
	}

	return left, nil
}

func (p *Parser) logicAndExpr() (Expr, error) {
	left, err := p.relExpr()
	if err != nil {
		return nil, err
	}

	for p.match(TokenAndalso) {
		opTok := p.previous()

		right, err := p.relExpr()
		if err != nil {
			return nil, err
		}

		if err := p.requireBoolOperands(opTok, left, right); err != nil {
			return nil, err
		}

		node := &BinaryOp{Op: opTok.Value, Left: left, Right: right}
		node.setType(TypeBool)
		left = node
	}

	return left, nil
}

func (p *Parser) requireBoolOperands(opTok Token, left, right Expr) error {
	leftTyp, err := p.resolvedType(left, opTok)
	if err != nil {
		return err
	}

	rightTyp, err := p.resolvedType(right, opTok)
	if err != nil {
		return err
	}

	if leftTyp != TypeBool || rightTyp != TypeBool {
		return p.typeErrorf(opTok, "operands of '%s' must both be bool", opTok.Value)
	}

	return nil
}

// relExpr allows at most one comparison: comparisons do not chain.
func (p *Parser) relExpr() (Expr, error) {
	left, err := p.arithExpr()
	if err != nil {
		return nil, err
	}

	if p.match(TokenEquals, TokenGreater, TokenLess) {
		opTok := p.previous()

		right, err := p.arithExpr()
		if err != nil {
			return nil, err
		}

		leftTyp, err := p.resolvedType(left, opTok)
		if err != nil {
			return nil, err
		}

		rightTyp, err := p.resolvedType(right, opTok)
		if err != nil {
			return nil, err
		}

		if leftTyp != rightTyp {
			return nil, p.typeErrorf(opTok, "comparison operands must have the same type, got %s and %s",
				leftTyp, rightTyp)
		}

		node := &BinaryOp{Op: opTok.Value, Left: left, Right: right}
		node.setType(TypeBool)
		return node, nil
	}

	return left, nil
}

func (p *Parser) arithExpr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.match(TokenPlus, TokenMinus) {
		opTok := p.previous()

		right, err := p.term()
		if err != nil {
			return nil, err
		}

		node, err := p.widenBinary(opTok, left, right)
		if err != nil {
			return nil, err
		}

		left = node
	}

	return left, nil
}

// term parses its left operand through value and its right operand through
// factor, deliberately skipping unary minus on the right.
func (p *Parser) term() (Expr, error) {
	p.record("Term -> Value (('*' | '/' | '//') Factor)*")

	left, err := p.value()
	if err != nil {
		return nil, err
	}

	for p.match(TokenMultiply, TokenDivide, TokenIntDiv) {
		opTok := p.previous()

		right, err := p.factor()
		if err != nil {
			return nil, err
		}

		node, err := p.widenBinary(opTok, left, right)
		if err != nil {
			return nil, err
		}

		left = node
	}

	return left, nil
}

func (p *Parser) widenBinary(opTok Token, left, right Expr) (Expr, error) {
	leftTyp, err := p.resolvedType(left, opTok)
	if err != nil {
		return nil, err
	}

	rightTyp, err := p.resolvedType(right, opTok)
	if err != nil {
		return nil, err
	}

	typ, ok := Widen(leftTyp, rightTyp)
	if !ok {
		return nil, p.typeErrorf(opTok, "incompatible types %s and %s for operator '%s'",
			leftTyp, rightTyp, opTok.Value)
	}

	node := &BinaryOp{Op: opTok.Value, Left: left, Right: right}
	node.setType(typ)
	return node, nil
}

func (p *Parser) value() (Expr, error) {
	if p.match(TokenMinus) {
		p.record("Value -> '-' Factor")
		opTok := p.previous()

		operand, err := p.factor()
		if err != nil {
			return nil, err
		}

		typ, err := p.resolvedType(operand, opTok)
		if err != nil {
			return nil, err
		}

		if !typ.isNumeric() {
			return nil, p.typeErrorf(opTok, "unary '-' expects a numeric operand, got %s", typ)
		}

		node := &UnaryOp{Op: "-", Operand: operand}
		node.setType(typ)
		return node, nil
	}

	p.record("Value -> Factor")
	return p.factor()
}

func (p *Parser) factor() (Expr, error) {
	if p.match(TokenLParen) {
		p.record("Factor -> '(' Expression ')'")

		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(TokenRParen, "expected ')' after expression"); err != nil {
			return nil, err
		}

		return expr, nil
	}

	if p.check(TokenIdentifier) {
		if p.peekNext().Typ == TokenLParen {
			p.record("Factor -> FunctionCall")
			return p.functionCall()
		}

		p.record("Factor -> IDENTIFIER")
		idTok := p.advance()

		sym := p.scope.Lookup(idTok.Value)
		if sym == nil {
			return nil, &ReferenceError{Line: idTok.Line, Column: idTok.Column, Name: idTok.Value}
		}

		node := &Identifier{Name: idTok.Value}
		node.setType(sym.Type)
		return node, nil
	}

	if p.match(TokenTrue, TokenFalse, TokenIntLit, TokenCharLit, TokenDoubleLit) {
		p.record("Factor -> literal")
		litTok := p.previous()

		node := &Literal{Value: litTok.Value}
		switch litTok.Typ {
		case TokenTrue, TokenFalse:
			node.setType(TypeBool)
		case TokenIntLit:
			node.setType(TypeInt)
		case TokenDoubleLit:
			node.setType(TypeDouble)
		case TokenCharLit:
			node.setType(TypeChar)
		}

		return node, nil
	}

	return nil, p.failExpect(p.peek(), "expected expression factor")
}

// ---------- Scope stack ----------

func (p *Parser) pushScope(name string) {
	scope := NewSymbolTable(p.scope, name)
	p.scope = scope
	p.scopes = append(p.scopes, scope)
}

// popScope restores the enclosing scope. The popped scope stays registered
// in p.scopes.
func (p *Parser) popScope() {
	p.scope = p.scope.Parent
}

// ---------- Low-level helpers ----------

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.current+1]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Typ == TokenEOF
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) match(types ...TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) consume(typ TokenType, expected string) (Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}

	return Token{}, p.failExpect(p.peek(), expected)
}

// failExpect builds the positioned error for an unexpected token. INVALID
// tokens get their own kind: the scanner defers malformed input here.
func (p *Parser) failExpect(tok Token, expected string) error {
	if tok.Typ == TokenInvalid {
		return &LexicalError{Line: tok.Line, Column: tok.Column, Expected: expected, Found: tok}
	}

	return &SyntaxError{Line: tok.Line, Column: tok.Column, Expected: expected, Found: tok}
}

func (p *Parser) typeErrorf(tok Token, format string, args ...interface{}) error {
	return &TypeError{Line: tok.Line, Column: tok.Column, Message: fmt.Sprintf(format, args...)}
}

// resolvedType reads an expression's type slot. An unresolved slot at this
// point is a bug in the parser itself, never a user error.
func (p *Parser) resolvedType(e Expr, at Token) (BasicType, error) {
	typ, ok := e.Type()
	if !ok {
		return 0, &InternalError{Line: at.Line, Column: at.Column, Message: "expression node has no resolved type"}
	}

	return typ, nil
}

func (p *Parser) record(production string) {
	p.productions = append(p.productions, production)
}

// positionAt anchors a symbol-table declaration error at the offending
// token.
func positionAt(err error, tok Token) error {
	var derr *DeclarationError
	if errors.As(err, &derr) {
		derr.Line = tok.Line
		derr.Column = tok.Column
	}

	return err
}
