/*
File    : go-mix/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/gomix-lang/gomix/ast"
	"github.com/gomix-lang/gomix/lexer"
	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	lex := lexer.NewLexer(src)
	toks := lex.ConsumeTokens()
	if !assert.False(t, lex.HasErrors(), "unexpected lex errors") {
		t.FailNow()
	}
	prog, errs := Parse(toks, src)
	if !assert.Empty(t, errs, "unexpected parse errors") {
		t.FailNow()
	}
	return prog
}

func TestParse_VarDeclaration(t *testing.T) {
	prog := parse(t, `var x = 1 + 2;`)
	assert.Len(t, prog.Stmts, 1)
	v, ok := prog.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok)
	assert.Equal(t, "x", v.Name.Name)
	bin, ok := v.Init.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestParse_IfElse(t *testing.T) {
	prog := parse(t, `if x > 0 { y = 1; } else { y = 2; }`)
	ifStmt, ok := prog.Stmts[0].(*ast.IfStmt)
	assert.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParse_WhileAndFor(t *testing.T) {
	prog := parse(t, `while true { break; } for c in "ab" { continue; }`)
	assert.Len(t, prog.Stmts, 2)
	_, ok := prog.Stmts[0].(*ast.WhileStmt)
	assert.True(t, ok)
	forStmt, ok := prog.Stmts[1].(*ast.ForStmt)
	assert.True(t, ok)
	assert.Equal(t, "c", forStmt.Var.Name)
}

func TestParse_FunctionDeclarationAndCall(t *testing.T) {
	prog := parse(t, `fn add(a, b) { return a + b; } add(1, 2);`)
	assert.Len(t, prog.Stmts, 2)
	decl, ok := prog.Stmts[0].(*ast.FunctionDeclaration)
	assert.True(t, ok)
	assert.Equal(t, "add", decl.Name.Name)
	assert.Len(t, decl.Fn.Params, 2)

	exprStmt, ok := prog.Stmts[1].(*ast.ExpressionStmt)
	assert.True(t, ok)
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	assert.True(t, ok)
	assert.Len(t, call.Args, 2)
}

func TestParse_PrecedenceClimbing(t *testing.T) {
	prog := parse(t, `1 + 2 * 3;`)
	exprStmt := prog.Stmts[0].(*ast.ExpressionStmt)
	bin := exprStmt.Expr.(*ast.BinaryExpr)
	assert.Equal(t, ast.OpAdd, bin.Op)
	_, rightIsMul := bin.Right.(*ast.BinaryExpr)
	assert.True(t, rightIsMul, "multiplication should bind tighter than addition")
}

func TestParse_AnonymousFunctionExpr(t *testing.T) {
	prog := parse(t, `var f = fn(x) { return x; };`)
	v := prog.Stmts[0].(*ast.VarStmt)
	_, ok := v.Init.(*ast.FunctionExpr)
	assert.True(t, ok)
}

func TestParse_Assert(t *testing.T) {
	prog := parse(t, `assert 1 == 1;`)
	_, ok := prog.Stmts[0].(*ast.AssertStmt)
	assert.True(t, ok)
}

func TestParse_InvalidAssignmentTarget(t *testing.T) {
	lex := lexer.NewLexer(`1 + 1 = 2;`)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	_, errs := Parse(toks, `1 + 1 = 2;`)
	assert.NotEmpty(t, errs)
}

func TestParse_MissingSemicolon(t *testing.T) {
	lex := lexer.NewLexer(`var x = 1`)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	_, errs := Parse(toks, `var x = 1`)
	assert.NotEmpty(t, errs)
}
