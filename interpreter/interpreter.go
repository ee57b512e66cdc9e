/*
File    : go-mix/interpreter/interpreter.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package interpreter tree-walks a checked AST against a scope chain
// rooted at a persistent global scope. One Interpreter is long-lived;
// Interpret may be called repeatedly for REPL use, each call updating the
// current source so diagnostics attribute correctly across fragments.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/gomix-lang/gomix/ast"
	"github.com/gomix-lang/gomix/diag"
	"github.com/gomix-lang/gomix/object"
)

// Interrupted is a process-wide, signal-safe atomic flag (spec.md §5).
// A SIGINT handler installed by cmd/gomix sets it; only the interpreter
// goroutine reads and clears it, so no lock is needed.
var Interrupted int32

// RequestInterrupt sets the interrupt flag. Safe to call from a signal
// handler.
func RequestInterrupt() {
	atomic.StoreInt32(&Interrupted, 1)
}

func takeInterrupt() bool {
	return atomic.CompareAndSwapInt32(&Interrupted, 1, 0)
}

// Interpreter holds all state described in spec.md §3's "Interpreter
// state": the current and global scope, the most recent call's errors,
// the source string errors should attribute to, control-flow flags, a
// pending return value, and the REPL-echo mode flag.
type Interpreter struct {
	Globals *Scope
	current *Scope

	currentSource string

	breakFlag    bool
	continueFlag bool
	returning    bool
	returnValue  object.Object

	ReplMode bool

	Stdout io.Writer
	Stderr io.Writer
	Stdin  *bufio.Reader

	Errors []*diag.Error
}

// New builds an Interpreter with an empty global scope and the print/
// input builtins registered.
func New(stdout, stderr io.Writer, stdin io.Reader) *Interpreter {
	globals := NewScope(nil)
	interp := &Interpreter{
		Globals: globals,
		current: globals,
		Stdout:  stdout,
		Stderr:  stderr,
		Stdin:   bufio.NewReader(stdin),
	}
	registerBuiltins(interp)
	return interp
}

func (in *Interpreter) errorf(span diag.Span, format string, args ...interface{}) {
	in.Errors = append(in.Errors, &diag.Error{
		Message: fmt.Sprintf(format, args...),
		Source:  in.currentSource,
		Span:    span,
	})
}

// Interpret runs prog, whose source text is src, against the persistent
// global scope. Invariant 3 (spec.md §8): whatever happens — normal
// completion, error, or interrupt — the current scope is restored to
// Globals before Interpret returns.
func (in *Interpreter) Interpret(prog *ast.Program, src string) []*diag.Error {
	in.Errors = nil
	in.currentSource = src
	in.current = in.Globals
	in.breakFlag = false
	in.continueFlag = false
	in.returning = false
	in.returnValue = nil

	defer func() { in.current = in.Globals }()

	for _, stmt := range prog.Stmts {
		if takeInterrupt() {
			fmt.Fprint(in.Stderr, "interrupt\n")
			return in.Errors
		}
		if !in.execStmt(stmt) {
			return in.Errors
		}
	}
	return in.Errors
}

// --- Statement execution (spec.md §4.4.3) ---
// Each method returns true to keep executing the enclosing sequence, or
// false to stop — either because an error was reported or because a
// break/continue/return escape is unwinding.

func (in *Interpreter) execStmt(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		v := in.eval(n.Expr)
		if v == nil {
			return false
		}
		if in.ReplMode {
			fmt.Fprintln(in.Stdout, replEcho(v))
		}
		return true
	case *ast.AssertStmt:
		v := in.eval(n.Expr)
		if v == nil {
			return false
		}
		b, ok := object.Truthy(v)
		if !ok {
			in.errorf(n.Expr.Span(), "assert expects a Bool, got '%s'", v.Type())
			return false
		}
		if !b {
			in.errorf(n.SpanVal, "assertion failed")
			return false
		}
		return true
	case *ast.VarStmt:
		var v object.Object = &object.Nil{}
		if n.Init != nil {
			v = in.eval(n.Init)
			if v == nil {
				return false
			}
		}
		in.current.Define(n.Name.Name, v)
		return true
	case *ast.AssignStmt:
		v := in.eval(n.Value)
		if v == nil {
			return false
		}
		return in.assign(n.Place, v)
	case *ast.BlockStmt:
		return in.execBlock(n)
	case *ast.IfStmt:
		return in.execIf(n)
	case *ast.WhileStmt:
		return in.execWhile(n)
	case *ast.ForStmt:
		return in.execFor(n)
	case *ast.BreakStmt:
		in.breakFlag = true
		return false
	case *ast.ContinueStmt:
		in.continueFlag = true
		return false
	case *ast.ReturnStmt:
		var v object.Object = &object.Nil{}
		if n.Expr != nil {
			v = in.eval(n.Expr)
			if v == nil {
				return false
			}
		}
		in.returning = true
		in.returnValue = v
		return false
	case *ast.FunctionDeclaration:
		fn := &object.Function{Expr: n.Fn, Scope: in.current, Source: in.currentSource}
		in.current.Define(n.Name.Name, fn)
		return true
	default:
		return true
	}
}

func (in *Interpreter) assign(place *ast.Identifier, v object.Object) bool {
	if place.Hops != nil {
		if !in.current.SetResolved(place.Name, *place.Hops, v) {
			in.errorf(place.SpanVal, "identifier '%s' is not defined", place.Name)
			return false
		}
		return true
	}
	if !in.current.SetGlobal(place.Name, v) {
		in.errorf(place.SpanVal, "identifier '%s' is not defined", place.Name)
		return false
	}
	return true
}

func (in *Interpreter) execBlock(block *ast.BlockStmt) bool {
	outer := in.current
	in.current = NewScope(outer)
	defer func() { in.current = outer }()
	for _, s := range block.Stmts {
		if !in.execStmt(s) {
			return false
		}
	}
	return true
}

func (in *Interpreter) execIf(n *ast.IfStmt) bool {
	test := in.eval(n.Test)
	if test == nil {
		return false
	}
	b, ok := object.Truthy(test)
	if !ok {
		in.errorf(n.Test.Span(), "if condition must be Bool, got '%s'", test.Type())
		return false
	}
	if b {
		return in.execStmt(n.Then)
	}
	if n.Else != nil {
		return in.execStmt(n.Else.(ast.Stmt))
	}
	return true
}

func (in *Interpreter) execWhile(n *ast.WhileStmt) bool {
	for {
		if takeInterrupt() {
			fmt.Fprint(in.Stderr, "interrupt\n")
			return false
		}
		test := in.eval(n.Test)
		if test == nil {
			return false
		}
		b, ok := object.Truthy(test)
		if !ok {
			in.errorf(n.Test.Span(), "while condition must be Bool, got '%s'", test.Type())
			return false
		}
		if !b {
			return true
		}
		if !in.execStmt(n.Body) {
			if in.breakFlag {
				in.breakFlag = false
				return true
			}
			if in.continueFlag {
				in.continueFlag = false
				continue
			}
			return false
		}
	}
}

func (in *Interpreter) execFor(n *ast.ForStmt) bool {
	iterable := in.eval(n.Iterable)
	if iterable == nil {
		return false
	}
	it, ok := iterable.(object.Iterable)
	if !ok {
		in.errorf(n.Iterable.Span(), "value of type '%s' is not iterable", iterable.Type())
		return false
	}
	iter := it.Iterator()

	outer := in.current
	defer func() { in.current = outer }()

	for !iter.Done() {
		if takeInterrupt() {
			fmt.Fprint(in.Stderr, "interrupt\n")
			return false
		}
		elem := iter.Next()
		in.current = NewScope(outer)
		in.current.Define(n.Var.Name, elem)
		// The for-loop body executes directly against the scope the
		// loop variable was bound in, not through a nested block scope
		// (spec.md §4.4.3).
		stop := false
		for _, s := range n.Body.Stmts {
			if !in.execStmt(s) {
				stop = true
				break
			}
		}
		if stop {
			if in.breakFlag {
				in.breakFlag = false
				return true
			}
			if in.continueFlag {
				in.continueFlag = false
				continue
			}
			return false
		}
	}
	return true
}

// --- Expression evaluation (spec.md §4.4.2) ---
// Returns the resulting object, or nil if an error was reported.

func (in *Interpreter) eval(e ast.Expr) object.Object {
	switch n := e.(type) {
	case *ast.StringLiteral:
		return &object.String{Value: n.Value}
	case *ast.NumberLiteral:
		return &object.Number{Value: n.Value}
	case *ast.BoolLiteral:
		return &object.Bool{Value: n.Value}
	case *ast.NilLiteral:
		return &object.Nil{}
	case *ast.Identifier:
		return in.evalIdentifier(n)
	case *ast.UnaryExpr:
		return in.evalUnary(n)
	case *ast.GroupExpr:
		return in.eval(n.Expr)
	case *ast.BinaryExpr:
		return in.evalBinary(n)
	case *ast.LogicalExpr:
		return in.evalLogical(n)
	case *ast.CallExpr:
		return in.evalCall(n)
	case *ast.FunctionExpr:
		return &object.Function{Expr: n, Scope: in.current, Source: in.currentSource}
	default:
		in.errorf(e.Span(), "unsupported expression")
		return nil
	}
}

func (in *Interpreter) evalIdentifier(n *ast.Identifier) object.Object {
	var v object.Object
	var ok bool
	if n.Hops != nil {
		v, ok = in.current.GetResolved(n.Name, *n.Hops)
	} else {
		v, ok = in.current.GetUnresolved(n.Name)
	}
	if !ok {
		in.errorf(n.SpanVal, "identifier '%s' is not defined", n.Name)
		return nil
	}
	return v
}

func (in *Interpreter) evalUnary(n *ast.UnaryExpr) object.Object {
	v := in.eval(n.Expr)
	if v == nil {
		return nil
	}
	switch n.Op {
	case ast.UnaryMinus:
		num, ok := v.(*object.Number)
		if !ok {
			in.errorf(n.SpanVal, "cannot apply unary operator '-' to type '%s'", v.Type())
			return nil
		}
		return &object.Number{Value: -num.Value}
	case ast.UnaryNot:
		b, ok := object.Truthy(v)
		if !ok {
			in.errorf(n.SpanVal, "cannot apply unary operator '!' to type '%s'", v.Type())
			return nil
		}
		return &object.Bool{Value: !b}
	default:
		in.errorf(n.SpanVal, "unknown unary operator '%s'", n.Op)
		return nil
	}
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpr) object.Object {
	left := in.eval(n.Left)
	if left == nil {
		return nil
	}
	right := in.eval(n.Right)
	if right == nil {
		return nil
	}

	switch n.Op {
	case ast.OpAdd:
		if ln, ok := left.(*object.Number); ok {
			if rn, ok := right.(*object.Number); ok {
				return &object.Number{Value: ln.Value + rn.Value}
			}
			in.errorf(n.SpanVal, "cannot add '%s' to '%s'", left.Type(), right.Type())
			return nil
		}
		if ls, ok := left.(*object.String); ok {
			if rs, ok := right.(*object.String); ok {
				return &object.String{Value: ls.Value + rs.Value}
			}
			in.errorf(n.SpanVal, "cannot add '%s' to '%s'", left.Type(), right.Type())
			return nil
		}
		in.errorf(n.SpanVal, "cannot add '%s' to '%s'", left.Type(), right.Type())
		return nil
	case ast.OpSubtract, ast.OpMultiply, ast.OpDivide, ast.OpModulo:
		ln, lok := left.(*object.Number)
		rn, rok := right.(*object.Number)
		if !lok || !rok {
			in.errorf(n.SpanVal, "cannot apply binary operator '%s' to types '%s' and '%s'", n.Op, left.Type(), right.Type())
			return nil
		}
		switch n.Op {
		case ast.OpSubtract:
			return &object.Number{Value: ln.Value - rn.Value}
		case ast.OpMultiply:
			return &object.Number{Value: ln.Value * rn.Value}
		case ast.OpDivide:
			return &object.Number{Value: ln.Value / rn.Value} // IEEE-754: div by zero yields ±Inf/NaN, not an error
		case ast.OpModulo:
			return &object.Number{Value: math.Mod(ln.Value, rn.Value)} // C fmod semantics: result takes the dividend's sign
		}
		return nil
	case ast.OpEqual, ast.OpNotEqual:
		if !object.SameType(left, right) {
			in.errorf(n.SpanVal, "cannot compare '%s' to '%s'", left.Type(), right.Type())
			return nil
		}
		eq := left.(object.Equaler).Equal(right)
		if n.Op == ast.OpNotEqual {
			eq = !eq
		}
		return &object.Bool{Value: eq}
	case ast.OpLess, ast.OpLessOrEqual, ast.OpGreater, ast.OpGreaterOrEqual:
		return in.evalOrdered(n, left, right)
	default:
		in.errorf(n.SpanVal, "unknown binary operator '%s'", n.Op)
		return nil
	}
}

func (in *Interpreter) evalOrdered(n *ast.BinaryExpr, left, right object.Object) object.Object {
	if ln, ok := left.(*object.Number); ok {
		rn, ok := right.(*object.Number)
		if !ok {
			in.errorf(n.SpanVal, "cannot compare '%s' to '%s'", left.Type(), right.Type())
			return nil
		}
		return &object.Bool{Value: compareNumbers(n.Op, ln.Value, rn.Value)}
	}
	if ls, ok := left.(*object.String); ok {
		rs, ok := right.(*object.String)
		if !ok {
			in.errorf(n.SpanVal, "cannot compare '%s' to '%s'", left.Type(), right.Type())
			return nil
		}
		return &object.Bool{Value: compareStrings(n.Op, ls.Value, rs.Value)}
	}
	in.errorf(n.SpanVal, "cannot apply binary operator '%s' to types '%s' and '%s'", n.Op, left.Type(), right.Type())
	return nil
}

func compareNumbers(op ast.BinaryOp, l, r float64) bool {
	switch op {
	case ast.OpLess:
		return l < r
	case ast.OpLessOrEqual:
		return l <= r
	case ast.OpGreater:
		return l > r
	case ast.OpGreaterOrEqual:
		return l >= r
	}
	return false
}

func compareStrings(op ast.BinaryOp, l, r string) bool {
	switch op {
	case ast.OpLess:
		return l < r
	case ast.OpLessOrEqual:
		return l <= r
	case ast.OpGreater:
		return l > r
	case ast.OpGreaterOrEqual:
		return l >= r
	}
	return false
}

func (in *Interpreter) evalLogical(n *ast.LogicalExpr) object.Object {
	left := in.eval(n.Left)
	if left == nil {
		return nil
	}
	lb, ok := object.Truthy(left)
	if !ok {
		in.errorf(n.Left.Span(), "logical operand must be Bool, got '%s'", left.Type())
		return nil
	}
	if n.Op == ast.OpAnd && !lb {
		return &object.Bool{Value: false}
	}
	if n.Op == ast.OpOr && lb {
		return &object.Bool{Value: true}
	}
	right := in.eval(n.Right)
	if right == nil {
		return nil
	}
	rb, ok := object.Truthy(right)
	if !ok {
		in.errorf(n.Right.Span(), "logical operand must be Bool, got '%s'", right.Type())
		return nil
	}
	return &object.Bool{Value: rb}
}

func (in *Interpreter) evalCall(n *ast.CallExpr) object.Object {
	callee := in.eval(n.Callee)
	if callee == nil {
		return nil
	}

	args := make([]object.Object, 0, len(n.Args))
	for _, a := range n.Args {
		v := in.eval(a)
		if v == nil {
			return nil
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *object.Function:
		if fn.Arity() != len(args) {
			in.errorf(n.SpanVal, "expected %d arguments, got %d", fn.Arity(), len(args))
			return nil
		}
		return in.callFunction(fn, args, n.SpanVal)
	case *object.BuiltinFunction:
		if fn.Arity() != len(args) {
			in.errorf(n.SpanVal, "expected %d arguments, got %d", fn.Arity(), len(args))
			return nil
		}
		result, err := fn.Fn(args)
		if err != nil {
			in.errorf(n.SpanVal, "%s", err.Error())
			return nil
		}
		return result
	default:
		in.errorf(n.Callee.Span(), "value of type '%s' is not callable", callee.Type())
		return nil
	}
}

// callFunction dispatches a user-defined Function call per spec.md
// §4.4.4: the interpreter's current source is swapped to the function's
// defining source so errors inside the body attribute to the right REPL
// fragment, a new scope is opened whose parent is the function's
// captured scope (lexical, not the caller's scope), and parameters are
// bound there before the body executes.
func (in *Interpreter) callFunction(fn *object.Function, args []object.Object, callSpan diag.Span) object.Object {
	callerScope := in.current
	callerSource := in.currentSource
	defer func() {
		in.current = callerScope
		in.currentSource = callerSource
	}()

	fnScope, ok := fn.Scope.(*Scope)
	if !ok {
		in.errorf(callSpan, "internal error: invalid closure scope")
		return nil
	}
	in.current = NewScope(fnScope)
	in.currentSource = fn.Source

	for i, param := range fn.Expr.Params {
		in.current.Define(param.Name, args[i])
	}

	prevReturning, prevReturnValue := in.returning, in.returnValue
	prevBreak, prevContinue := in.breakFlag, in.continueFlag
	in.returning = false
	in.returnValue = nil
	in.breakFlag = false
	in.continueFlag = false
	defer func() {
		in.returning, in.returnValue = prevReturning, prevReturnValue
		in.breakFlag, in.continueFlag = prevBreak, prevContinue
	}()

	for _, s := range fn.Expr.Body.Stmts {
		if !in.execStmt(s) {
			if in.returning {
				return in.returnValue
			}
			// break/continue escaping a function body unwind silently
			// (spec.md §8 boundary behaviors); treat as falling off the
			// end with Nil, same as an error-free return at top level.
			if in.breakFlag || in.continueFlag {
				in.breakFlag = false
				in.continueFlag = false
				return &object.Nil{}
			}
			return nil
		}
	}
	return &object.Nil{}
}

// replEcho renders an expression-statement result for REPL echo mode
// (spec.md §4.4.3): strings are quoted/escaped, everything else uses its
// natural String() form.
func replEcho(v object.Object) string {
	if s, ok := v.(*object.String); ok {
		return escapeForEcho(s.Value)
	}
	return v.String()
}

func escapeForEcho(s string) string {
	var b []byte
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\t':
			b = append(b, '\\', 't')
		case '\r':
			b = append(b, '\\', 'r')
		case '\n':
			b = append(b, '\\', 'n')
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		default:
			b = append(b, c)
		}
	}
	b = append(b, '"')
	return string(b)
}
