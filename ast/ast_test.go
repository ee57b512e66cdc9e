/*
File    : go-mix/ast/ast_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ast

import (
	"testing"

	"github.com/gomix-lang/gomix/diag"
	"github.com/stretchr/testify/assert"
)

func TestDump_Literals(t *testing.T) {
	assert.Equal(t, `"hi"`, (&StringLiteral{Value: "hi"}).Dump(0))
	assert.Equal(t, "3.5", (&NumberLiteral{Value: 3.5}).Dump(0))
	assert.Equal(t, "true", (&BoolLiteral{Value: true}).Dump(0))
	assert.Equal(t, "nil", (&NilLiteral{}).Dump(0))
	assert.Equal(t, "x", (&Identifier{Name: "x"}).Dump(0))
}

func TestDump_BinaryExpr(t *testing.T) {
	n := &BinaryExpr{
		Op:    OpAdd,
		Left:  &NumberLiteral{Value: 1},
		Right: &NumberLiteral{Value: 2},
	}
	assert.Equal(t, "(+\n  1\n  2)", n.Dump(0))
}

func TestDump_Call(t *testing.T) {
	n := &CallExpr{
		Callee: &Identifier{Name: "print"},
		Args:   []Expr{&StringLiteral{Value: "hi"}},
	}
	assert.Equal(t, "(call\n  print\n  (args\n    \"hi\"))", n.Dump(0))
}

func TestDump_IfStmt(t *testing.T) {
	n := &IfStmt{
		Test: &BoolLiteral{Value: true},
		Then: &BlockStmt{Stmts: []Stmt{&BreakStmt{}}},
	}
	assert.Equal(t, "(if\n  true\n  (block\n    (break)))", n.Dump(0))
}

func TestDump_VarStmtNoInit(t *testing.T) {
	n := &VarStmt{Name: &Identifier{Name: "x"}}
	assert.Equal(t, "(var x)", n.Dump(0))
}

func TestDump_FunctionDeclaration(t *testing.T) {
	n := &FunctionDeclaration{
		Name: &Identifier{Name: "add"},
		Fn: &FunctionExpr{
			Params: []*Identifier{{Name: "a"}, {Name: "b"}},
			Body: &BlockStmt{Stmts: []Stmt{
				&ReturnStmt{Expr: &BinaryExpr{Op: OpAdd, Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}}},
			}},
		},
	}
	want := "(fndecl add\n" +
		"  (params a b)\n" +
		"  (block\n" +
		"    (return\n" +
		"      (+\n" +
		"        a\n" +
		"        b))))"
	assert.Equal(t, want, n.Dump(0))
}

func TestSpan(t *testing.T) {
	sp := diag.NewSpan(3, 7)
	n := &Identifier{SpanVal: sp, Name: "abcd"}
	assert.Equal(t, sp, n.Span())
}
