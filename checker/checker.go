/*
File    : go-mix/checker/checker.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package checker implements the lexical resolution pass between parsing
// and evaluation. For every Identifier that refers to a local binding, it
// records the number of scope hops from the use site to its binding. The
// Program itself is one scope, so names declared earlier at the top level
// of the same Program also get a hop count. Names not declared in any
// enclosing scope are left unresolved (nil Hops) and looked up in the
// global scope at runtime, which lets a REPL fragment's function reference
// a global defined by a later fragment (spec.md §4.3).
package checker

import "github.com/gomix-lang/gomix/ast"

// scope is the set of names declared directly in one lexical scope.
type scope map[string]bool

// Checker walks a Program, annotating every Identifier's Hops field.
type Checker struct {
	scopes []scope
}

// Resolve runs the checker over prog. The checker reports no errors in
// this minimal specification (spec.md §4.3); unknown identifiers surface
// as runtime errors with exact source spans instead.
func Resolve(prog *ast.Program) {
	c := &Checker{}
	c.beginScope()
	for _, s := range prog.Stmts {
		c.stmt(s)
	}
	c.endScope()
}

func (c *Checker) beginScope() {
	c.scopes = append(c.scopes, scope{})
}

func (c *Checker) endScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) declare(name string) {
	if len(c.scopes) == 0 {
		return
	}
	c.scopes[len(c.scopes)-1][name] = true
}

// resolveIdentifier scans scopes innermost-out; if found at depth N (0 =
// innermost), it records N as the identifier's hop count. If not found
// anywhere, Hops stays nil and the name resolves dynamically as a global
// at runtime.
func (c *Checker) resolveIdentifier(id *ast.Identifier) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i][id.Name] {
			hops := len(c.scopes) - 1 - i
			id.Hops = &hops
			return
		}
	}
}

func (c *Checker) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		c.expr(n.Expr)
	case *ast.AssertStmt:
		c.expr(n.Expr)
	case *ast.VarStmt:
		// The initializer is checked before the name is declared, so
		// `var x = x;` refers to an outer x (spec.md §4.3).
		if n.Init != nil {
			c.expr(n.Init)
		}
		c.declare(n.Name.Name)
	case *ast.AssignStmt:
		c.expr(n.Value)
		c.resolveIdentifier(n.Place)
	case *ast.BlockStmt:
		c.beginScope()
		for _, st := range n.Stmts {
			c.stmt(st)
		}
		c.endScope()
	case *ast.IfStmt:
		c.expr(n.Test)
		c.stmt(n.Then)
		if n.Else != nil {
			c.stmt(n.Else.(ast.Stmt))
		}
	case *ast.WhileStmt:
		c.expr(n.Test)
		c.stmt(n.Body)
	case *ast.ForStmt:
		c.expr(n.Iterable)
		c.beginScope()
		c.declare(n.Var.Name)
		for _, st := range n.Body.Stmts {
			c.stmt(st)
		}
		c.endScope()
	case *ast.BreakStmt, *ast.ContinueStmt:
		// no identifiers to resolve
	case *ast.FunctionDeclaration:
		// the function's own name is declared first so recursive calls
		// to itself resolve as a local, then its body is checked in a
		// fresh scope seeded with its parameters.
		c.declare(n.Name.Name)
		c.functionExpr(n.Fn)
	case *ast.ReturnStmt:
		if n.Expr != nil {
			c.expr(n.Expr)
		}
	case *ast.Program:
		for _, st := range n.Stmts {
			c.stmt(st)
		}
	}
}

func (c *Checker) functionExpr(fn *ast.FunctionExpr) {
	c.beginScope()
	for _, p := range fn.Params {
		c.declare(p.Name)
	}
	for _, st := range fn.Body.Stmts {
		c.stmt(st)
	}
	c.endScope()
}

func (c *Checker) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.StringLiteral, *ast.NumberLiteral, *ast.BoolLiteral, *ast.NilLiteral:
		// no identifiers
	case *ast.Identifier:
		c.resolveIdentifier(n)
	case *ast.UnaryExpr:
		c.expr(n.Expr)
	case *ast.GroupExpr:
		c.expr(n.Expr)
	case *ast.BinaryExpr:
		c.expr(n.Left)
		c.expr(n.Right)
	case *ast.LogicalExpr:
		c.expr(n.Left)
		c.expr(n.Right)
	case *ast.CallExpr:
		c.expr(n.Callee)
		for _, a := range n.Args {
			c.expr(a)
		}
	case *ast.FunctionExpr:
		c.functionExpr(n)
	}
}
