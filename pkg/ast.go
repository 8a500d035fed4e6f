package minlang

import (
	"fmt"
	"strings"
)

// The AST is a closed set of node variants. Statement and expression
// interfaces are sealed with marker methods so that rendering and any later
// processing can switch exhaustively over the finite kinds.

type Node interface {
	node()
}

type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node. Every expression owns a type slot that the
// parser resolves exactly once, before the node reaches its parent.
type Expr interface {
	Node
	exprNode()

	// Type returns the resolved static type. The second result is false
	// only while the node is still under construction; a false reaching a
	// parent rule is an internal defect, not a user error.
	Type() (BasicType, bool)
}

// exprType is the write-once resolved-type slot embedded in every
// expression variant.
type exprType struct {
	typ      BasicType
	resolved bool
}

func (e *exprType) Type() (BasicType, bool) {
	return e.typ, e.resolved
}

func (e *exprType) setType(t BasicType) {
	e.typ = t
	e.resolved = true
}

type Program struct {
	Statements []Stmt
}

type Block struct {
	Statements []Stmt
}

type Assign struct {
	Name string
	Op   string // "=", "+=", "-=", "*=", "/="
	Expr Expr
}

type FunctionDef struct {
	Name       string
	ParamNames []string
	ParamTypes []BasicType
	Body       Expr
}

type FunctionCallStmt struct {
	Call *FunctionCall
}

type IfExpr struct {
	exprType
	Cond Expr
	Then Expr
	Else Expr
}

type BinaryOp struct {
	exprType
	Op    string
	Left  Expr
	Right Expr
}

type UnaryOp struct {
	exprType
	Op      string
	Operand Expr
}

type Identifier struct {
	exprType
	Name string
}

type Literal struct {
	exprType
	Value string
}

type FunctionCall struct {
	exprType
	Name string
	Args []Expr
}

func (*Program) node()          {}
func (*Block) node()            {}
func (*Assign) node()           {}
func (*FunctionDef) node()      {}
func (*FunctionCallStmt) node() {}
func (*IfExpr) node()           {}
func (*BinaryOp) node()         {}
func (*UnaryOp) node()          {}
func (*Identifier) node()       {}
func (*Literal) node()          {}
func (*FunctionCall) node()     {}

func (*Block) stmtNode()            {}
func (*Assign) stmtNode()           {}
func (*FunctionDef) stmtNode()      {}
func (*FunctionCallStmt) stmtNode() {}

func (*IfExpr) exprNode()       {}
func (*BinaryOp) exprNode()     {}
func (*UnaryOp) exprNode()      {}
func (*Identifier) exprNode()   {}
func (*Literal) exprNode()      {}
func (*FunctionCall) exprNode() {}

// Dump renders a node as an indented tree: one line per node with its kind
// and operator or name, children nested below, and the resolved type on
// identifier and literal leaves.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, depth int) {
	pad := strings.Repeat("  ", depth)

	switch e := n.(type) {
	case *Program:
		sb.WriteString(pad + "Program")
		for _, stmt := range e.Statements {
			sb.WriteByte('\n')
			dump(sb, stmt, depth+1)
		}
	case *Block:
		sb.WriteString(pad + "Block")
		for _, stmt := range e.Statements {
			sb.WriteByte('\n')
			dump(sb, stmt, depth+1)
		}
	case *Assign:
		fmt.Fprintf(sb, "%sAssign(%s %s)\n", pad, e.Name, e.Op)
		dump(sb, e.Expr, depth+1)
	case *FunctionDef:
		params := make([]string, len(e.ParamNames))
		for i, name := range e.ParamNames {
			params[i] = fmt.Sprintf("%s %s", e.ParamTypes[i], name)
		}
		fmt.Fprintf(sb, "%sFunctionDef %s(%s)\n", pad, e.Name, strings.Join(params, ", "))
		dump(sb, e.Body, depth+1)
	case *FunctionCallStmt:
		sb.WriteString(pad + "FunctionCallStmt\n")
		dump(sb, e.Call, depth+1)
	case *IfExpr:
		sb.WriteString(pad + "IfExpr\n")
		dump(sb, e.Cond, depth+1)
		sb.WriteByte('\n')
		dump(sb, e.Then, depth+1)
		sb.WriteByte('\n')
		dump(sb, e.Else, depth+1)
	case *BinaryOp:
		fmt.Fprintf(sb, "%sBinaryOp('%s')\n", pad, e.Op)
		dump(sb, e.Left, depth+1)
		sb.WriteByte('\n')
		dump(sb, e.Right, depth+1)
	case *UnaryOp:
		fmt.Fprintf(sb, "%sUnaryOp('%s')\n", pad, e.Op)
		dump(sb, e.Operand, depth+1)
	case *Identifier:
		fmt.Fprintf(sb, "%sIdentifier(%s%s)", pad, e.Name, typeSuffix(e))
	case *Literal:
		fmt.Fprintf(sb, "%sLiteral(%s%s)", pad, e.Value, typeSuffix(e))
	case *FunctionCall:
		fmt.Fprintf(sb, "%sCall %s", pad, e.Name)
		for _, arg := range e.Args {
			sb.WriteByte('\n')
			dump(sb, arg, depth+1)
		}
	}
}

func typeSuffix(e Expr) string {
	typ, ok := e.Type()
	if !ok {
		return ""
	}

	return ": " + typ.String()
}
