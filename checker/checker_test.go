/*
File    : go-mix/checker/checker_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package checker

import (
	"testing"

	"github.com/gomix-lang/gomix/ast"
	"github.com/gomix-lang/gomix/lexer"
	"github.com/gomix-lang/gomix/parser"
	"github.com/stretchr/testify/assert"
)

func parseAndResolve(t *testing.T, src string) *ast.Program {
	t.Helper()
	lex := lexer.NewLexer(src)
	toks := lex.ConsumeTokens()
	assert.False(t, lex.HasErrors())
	prog, errs := parser.Parse(toks, src)
	assert.Empty(t, errs)
	Resolve(prog)
	return prog
}

func TestResolve_LocalHopsZero(t *testing.T) {
	prog := parseAndResolve(t, `{ var x = 1; x; }`)
	block := prog.Stmts[0].(*ast.BlockStmt)
	exprStmt := block.Stmts[1].(*ast.ExpressionStmt)
	id := exprStmt.Expr.(*ast.Identifier)
	if assert.NotNil(t, id.Hops) {
		assert.Equal(t, 0, *id.Hops)
	}
}

func TestResolve_OuterHopsOne(t *testing.T) {
	prog := parseAndResolve(t, `{ var x = 1; { x; } }`)
	outer := prog.Stmts[0].(*ast.BlockStmt)
	inner := outer.Stmts[1].(*ast.BlockStmt)
	exprStmt := inner.Stmts[0].(*ast.ExpressionStmt)
	id := exprStmt.Expr.(*ast.Identifier)
	if assert.NotNil(t, id.Hops) {
		assert.Equal(t, 1, *id.Hops)
	}
}

func TestResolve_UnresolvedGlobal(t *testing.T) {
	prog := parseAndResolve(t, `laterGlobal;`)
	exprStmt := prog.Stmts[0].(*ast.ExpressionStmt)
	id := exprStmt.Expr.(*ast.Identifier)
	assert.Nil(t, id.Hops)
}

func TestResolve_FunctionParamsAndRecursion(t *testing.T) {
	prog := parseAndResolve(t, `fn fact(n) { return fact(n - 1); }`)
	decl := prog.Stmts[0].(*ast.FunctionDeclaration)
	body := decl.Fn.Body
	ret := body.Stmts[0].(*ast.ReturnStmt)
	call := ret.Expr.(*ast.CallExpr)

	// fact is declared in the Program's own scope, one level outside the
	// function body's scope, so it resolves with hops 1 rather than
	// dynamically as an unresolved global.
	callee := call.Callee.(*ast.Identifier)
	if assert.NotNil(t, callee.Hops) {
		assert.Equal(t, 1, *callee.Hops)
	}

	nExpr := call.Args[0].(*ast.BinaryExpr)
	nIdent := nExpr.Left.(*ast.Identifier)
	if assert.NotNil(t, nIdent.Hops) {
		assert.Equal(t, 0, *nIdent.Hops)
	}
}

func TestResolve_VarInitializerSeesOuterBinding(t *testing.T) {
	prog := parseAndResolve(t, `var x = 1; { var x = x; }`)
	block := prog.Stmts[1].(*ast.BlockStmt)
	inner := block.Stmts[0].(*ast.VarStmt)
	id := inner.Init.(*ast.Identifier)
	// The initializer is checked before the inner x is declared, so it
	// must resolve to the outer x one scope up, not the binding being
	// created.
	if assert.NotNil(t, id.Hops) {
		assert.Equal(t, 1, *id.Hops)
	}
}
