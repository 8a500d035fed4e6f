package minlang

import "fmt"

// Parsing stops at the first fault. Each fault kind has its own error type
// so callers and tests can tell them apart; all of them carry the source
// position of the offending token.

// SyntaxError reports a token stream that does not match the grammar.
type SyntaxError struct {
	Line, Column int
	Expected     string
	Found        Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s (found '%s', kind=%s)",
		e.Line, e.Column, e.Expected, e.Found.Value, e.Found.Typ)
}

// LexicalError reports that the parser consumed an INVALID token while
// expecting something else. The scanner itself never fails; malformed
// lexical content only surfaces here.
type LexicalError struct {
	Line, Column int
	Expected     string
	Found        Token
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s (found invalid token '%s')",
		e.Line, e.Column, e.Expected, e.Found.Value)
}

// DeclarationError reports a duplicate name within a single scope.
type DeclarationError struct {
	Line, Column int
	Name         string
	Scope        string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("line %d, column %d: duplicate declaration of '%s' in scope '%s'",
		e.Line, e.Column, e.Name, e.Scope)
}

// ReferenceError reports use of an undeclared variable or a call to an
// undeclared function.
type ReferenceError struct {
	Line, Column int
	Name         string
	Call         bool
}

func (e *ReferenceError) Error() string {
	if e.Call {
		return fmt.Sprintf("line %d, column %d: call to undeclared function '%s'",
			e.Line, e.Column, e.Name)
	}

	return fmt.Sprintf("line %d, column %d: use of undeclared variable '%s'",
		e.Line, e.Column, e.Name)
}

// TypeError reports an operator, assignment, or if-branch type violation
// beyond what widening allows.
type TypeError struct {
	Line, Column int
	Message      string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// InternalError signals an implementation bug, such as an expression node
// reaching its parent without a resolved type. It is kept distinct from the
// user-facing error kinds.
type InternalError struct {
	Line, Column int
	Message      string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("line %d, column %d: internal error: %s", e.Line, e.Column, e.Message)
}
