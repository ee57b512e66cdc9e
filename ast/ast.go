/*
File    : go-mix/ast/ast.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package ast defines the expression and statement node types produced by
// the parser, plus the S-expression Dump format golden tests compare
// against.
package ast

import (
	"fmt"
	"strings"

	"github.com/gomix-lang/gomix/diag"
	"github.com/gomix-lang/gomix/token"
)

// Node is implemented by every expression and statement variant. Nodes
// are immutable after parsing except for Identifier's Hops field, which
// the checker sets in a later pass.
type Node interface {
	Span() diag.Span
	Dump(indent int) string
}

// Expr is the marker interface for expression-family nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the marker interface for statement-family nodes.
type Stmt interface {
	Node
	stmtNode()
}

func indentStr(n int) string {
	return strings.Repeat("  ", n)
}

// --- Expressions ---

type StringLiteral struct {
	SpanVal diag.Span
	Value   string
}

func (n *StringLiteral) Span() diag.Span { return n.SpanVal }
func (n *StringLiteral) exprNode()       {}
func (n *StringLiteral) Dump(indent int) string {
	return indentStr(indent) + token.EscapeString(n.Value)
}

type NumberLiteral struct {
	SpanVal diag.Span
	Value   float64
}

func (n *NumberLiteral) Span() diag.Span { return n.SpanVal }
func (n *NumberLiteral) exprNode()       {}
func (n *NumberLiteral) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("%g", n.Value)
}

type BoolLiteral struct {
	SpanVal diag.Span
	Value   bool
}

func (n *BoolLiteral) Span() diag.Span { return n.SpanVal }
func (n *BoolLiteral) exprNode()       {}
func (n *BoolLiteral) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("%t", n.Value)
}

type NilLiteral struct {
	SpanVal diag.Span
}

func (n *NilLiteral) Span() diag.Span        { return n.SpanVal }
func (n *NilLiteral) exprNode()              {}
func (n *NilLiteral) Dump(indent int) string { return indentStr(indent) + "nil" }

// Identifier is the only node with a post-parse mutable field: Hops is
// nil until the checker resolves it, non-nil for a local binding at that
// many scope hops up, and stays nil for names resolved dynamically as
// globals.
type Identifier struct {
	SpanVal diag.Span
	Name    string
	Hops    *int
}

func (n *Identifier) Span() diag.Span        { return n.SpanVal }
func (n *Identifier) exprNode()              {}
func (n *Identifier) Dump(indent int) string { return indentStr(indent) + n.Name }

type UnaryOp string

const (
	UnaryMinus UnaryOp = "-"
	UnaryNot   UnaryOp = "!"
)

type UnaryExpr struct {
	SpanVal diag.Span
	Op      UnaryOp
	Expr    Expr
}

func (n *UnaryExpr) Span() diag.Span { return n.SpanVal }
func (n *UnaryExpr) exprNode()       {}
func (n *UnaryExpr) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(%s\n%s)", string(n.Op), n.Expr.Dump(indent+1))
}

type GroupExpr struct {
	SpanVal diag.Span
	Expr    Expr
}

func (n *GroupExpr) Span() diag.Span { return n.SpanVal }
func (n *GroupExpr) exprNode()       {}
func (n *GroupExpr) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(group\n%s)", n.Expr.Dump(indent+1))
}

type BinaryOp string

const (
	OpDivide         BinaryOp = "/"
	OpMultiply       BinaryOp = "*"
	OpModulo         BinaryOp = "%"
	OpAdd            BinaryOp = "+"
	OpSubtract       BinaryOp = "-"
	OpEqual          BinaryOp = "=="
	OpNotEqual       BinaryOp = "!="
	OpLess           BinaryOp = "<"
	OpLessOrEqual    BinaryOp = "<="
	OpGreater        BinaryOp = ">"
	OpGreaterOrEqual BinaryOp = ">="
)

type BinaryExpr struct {
	SpanVal diag.Span
	Op      BinaryOp
	Left    Expr
	Right   Expr
}

func (n *BinaryExpr) Span() diag.Span { return n.SpanVal }
func (n *BinaryExpr) exprNode()       {}
func (n *BinaryExpr) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(%s\n%s\n%s)", string(n.Op), n.Left.Dump(indent+1), n.Right.Dump(indent+1))
}

type LogicalOp string

const (
	OpAnd LogicalOp = "and"
	OpOr  LogicalOp = "or"
)

type LogicalExpr struct {
	SpanVal diag.Span
	Op      LogicalOp
	Left    Expr
	Right   Expr
}

func (n *LogicalExpr) Span() diag.Span { return n.SpanVal }
func (n *LogicalExpr) exprNode()       {}
func (n *LogicalExpr) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(%s\n%s\n%s)", string(n.Op), n.Left.Dump(indent+1), n.Right.Dump(indent+1))
}

type CallExpr struct {
	SpanVal diag.Span
	Callee  Expr
	Args    []Expr
}

func (n *CallExpr) Span() diag.Span { return n.SpanVal }
func (n *CallExpr) exprNode()       {}
func (n *CallExpr) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentStr(indent))
	b.WriteString("(call\n")
	b.WriteString(n.Callee.Dump(indent + 1))
	b.WriteString("\n")
	b.WriteString(indentStr(indent + 1))
	b.WriteString("(args")
	for _, a := range n.Args {
		b.WriteString("\n")
		b.WriteString(a.Dump(indent + 2))
	}
	b.WriteString("))")
	return b.String()
}

// FunctionExpr is the anonymous function literal node. A FunctionDeclaration
// holds one as its Fn field.
type FunctionExpr struct {
	SpanVal diag.Span
	Params  []*Identifier
	Body    *BlockStmt
}

func (n *FunctionExpr) Span() diag.Span { return n.SpanVal }
func (n *FunctionExpr) exprNode()       {}
func (n *FunctionExpr) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentStr(indent))
	b.WriteString("(fn\n")
	b.WriteString(indentStr(indent + 1))
	b.WriteString("(params")
	for _, p := range n.Params {
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	b.WriteString(")\n")
	b.WriteString(n.Body.Dump(indent + 1))
	b.WriteString(")")
	return b.String()
}

// --- Statements ---

type ExpressionStmt struct {
	SpanVal diag.Span
	Expr    Expr
}

func (n *ExpressionStmt) Span() diag.Span        { return n.SpanVal }
func (n *ExpressionStmt) stmtNode()              {}
func (n *ExpressionStmt) Dump(indent int) string { return n.Expr.Dump(indent) }

type AssertStmt struct {
	SpanVal diag.Span
	Expr    Expr
}

func (n *AssertStmt) Span() diag.Span { return n.SpanVal }
func (n *AssertStmt) stmtNode()       {}
func (n *AssertStmt) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(assert\n%s)", n.Expr.Dump(indent+1))
}

type VarStmt struct {
	SpanVal diag.Span
	Name    *Identifier
	Init    Expr // nil if no initializer
}

func (n *VarStmt) Span() diag.Span { return n.SpanVal }
func (n *VarStmt) stmtNode()       {}
func (n *VarStmt) Dump(indent int) string {
	if n.Init == nil {
		return indentStr(indent) + fmt.Sprintf("(var %s)", n.Name.Name)
	}
	return indentStr(indent) + fmt.Sprintf("(var %s\n%s)", n.Name.Name, n.Init.Dump(indent+1))
}

// AssignStmt models `<place> = <value>;`. Place is always an Identifier;
// the parser rejects any other assignment target (spec.md §4.2).
type AssignStmt struct {
	SpanVal diag.Span
	Place   *Identifier
	Value   Expr
}

func (n *AssignStmt) Span() diag.Span { return n.SpanVal }
func (n *AssignStmt) stmtNode()       {}
func (n *AssignStmt) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(=\n%s\n%s)", n.Place.Dump(indent+1), n.Value.Dump(indent+1))
}

type BlockStmt struct {
	SpanVal diag.Span
	Stmts   []Stmt
}

func (n *BlockStmt) Span() diag.Span { return n.SpanVal }
func (n *BlockStmt) stmtNode()       {}
func (n *BlockStmt) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentStr(indent))
	b.WriteString("(block")
	for _, s := range n.Stmts {
		b.WriteString("\n")
		b.WriteString(s.Dump(indent + 1))
	}
	b.WriteString(")")
	return b.String()
}

type IfStmt struct {
	SpanVal diag.Span
	Test    Expr
	Then    *BlockStmt
	Else    Node // *BlockStmt or *IfStmt, nil if absent
}

func (n *IfStmt) Span() diag.Span { return n.SpanVal }
func (n *IfStmt) stmtNode()       {}
func (n *IfStmt) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentStr(indent))
	b.WriteString("(if\n")
	b.WriteString(n.Test.Dump(indent + 1))
	b.WriteString("\n")
	b.WriteString(n.Then.Dump(indent + 1))
	if n.Else != nil {
		b.WriteString("\n")
		b.WriteString(n.Else.Dump(indent + 1))
	}
	b.WriteString(")")
	return b.String()
}

type WhileStmt struct {
	SpanVal diag.Span
	Test    Expr
	Body    *BlockStmt
}

func (n *WhileStmt) Span() diag.Span { return n.SpanVal }
func (n *WhileStmt) stmtNode()       {}
func (n *WhileStmt) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(while\n%s\n%s)", n.Test.Dump(indent+1), n.Body.Dump(indent+1))
}

type ForStmt struct {
	SpanVal  diag.Span
	Var      *Identifier
	Iterable Expr
	Body     *BlockStmt
}

func (n *ForStmt) Span() diag.Span { return n.SpanVal }
func (n *ForStmt) stmtNode()       {}
func (n *ForStmt) Dump(indent int) string {
	return indentStr(indent) + fmt.Sprintf("(for %s\n%s\n%s)", n.Var.Name, n.Iterable.Dump(indent+1), n.Body.Dump(indent+1))
}

type BreakStmt struct {
	SpanVal diag.Span
}

func (n *BreakStmt) Span() diag.Span        { return n.SpanVal }
func (n *BreakStmt) stmtNode()              {}
func (n *BreakStmt) Dump(indent int) string { return indentStr(indent) + "(break)" }

type ContinueStmt struct {
	SpanVal diag.Span
}

func (n *ContinueStmt) Span() diag.Span        { return n.SpanVal }
func (n *ContinueStmt) stmtNode()              {}
func (n *ContinueStmt) Dump(indent int) string { return indentStr(indent) + "(continue)" }

// FunctionDeclaration is sugar for `var NAME = fn(...) {...};` per
// spec.md §4.2, but kept as its own node so the dump format's distinct
// `(fndecl ...)` shape (spec.md §6.5) round-trips.
type FunctionDeclaration struct {
	SpanVal diag.Span
	Name    *Identifier
	Fn      *FunctionExpr
}

func (n *FunctionDeclaration) Span() diag.Span { return n.SpanVal }
func (n *FunctionDeclaration) stmtNode()       {}
func (n *FunctionDeclaration) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentStr(indent))
	b.WriteString(fmt.Sprintf("(fndecl %s\n", n.Name.Name))
	b.WriteString(indentStr(indent + 1))
	b.WriteString("(params")
	for _, p := range n.Fn.Params {
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	b.WriteString(")\n")
	b.WriteString(n.Fn.Body.Dump(indent + 1))
	b.WriteString(")")
	return b.String()
}

type ReturnStmt struct {
	SpanVal diag.Span
	Expr    Expr // nil if bare `return;`
}

func (n *ReturnStmt) Span() diag.Span { return n.SpanVal }
func (n *ReturnStmt) stmtNode()       {}
func (n *ReturnStmt) Dump(indent int) string {
	if n.Expr == nil {
		return indentStr(indent) + "(return)"
	}
	return indentStr(indent) + fmt.Sprintf("(return\n%s)", n.Expr.Dump(indent+1))
}

type Program struct {
	SpanVal diag.Span
	Stmts   []Stmt
}

func (n *Program) Span() diag.Span { return n.SpanVal }
func (n *Program) stmtNode()       {}
func (n *Program) Dump(indent int) string {
	var b strings.Builder
	b.WriteString(indentStr(indent))
	b.WriteString("(program")
	for _, s := range n.Stmts {
		b.WriteString("\n")
		b.WriteString(s.Dump(indent + 1))
	}
	b.WriteString(")")
	return b.String()
}
