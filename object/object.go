/*
File    : go-mix/object/object.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package object defines the runtime value types Go-Mix programs operate
// on. All values implement the Object interface; the concrete set is
// closed to String, Number, Bool, Nil, Function, and BuiltinFunction.
package object

import (
	"fmt"
	"strconv"

	"github.com/gomix-lang/gomix/ast"
)

// Type names a runtime value's kind. These strings appear verbatim in
// error messages (spec.md §6.2).
type Type string

const (
	StringType   Type = "String"
	NumberType   Type = "Number"
	BoolType     Type = "Bool"
	NilType      Type = "Nil"
	FunctionType Type = "Function"
	BuiltinType  Type = "BuiltinFunction"
)

// Object is implemented by every runtime value. Values are immutable
// after construction; assignment replaces the reference held in a scope
// slot, it never mutates an Object in place.
type Object interface {
	Type() Type
	// String renders the value's natural (unquoted, unescaped)
	// representation, the form `print` writes.
	String() string
}

// Equaler is implemented by types whose `==`/`!=` semantics are
// structural rather than reference identity.
type Equaler interface {
	Equal(other Object) bool
}

// Callable is implemented by values that can appear as a CallExpr callee.
type Callable interface {
	Arity() int
	// There is no Call method here: the interpreter dispatches calls by
	// switching on the concrete *Function and *BuiltinFunction types.
}

// Iterable is implemented by values that can appear as a ForStmt
// iterable. String is the only iterable type in the core language.
type Iterable interface {
	Iterator() Iterator
}

// Iterator exposes single-pass, non-restartable iteration.
type Iterator interface {
	Done() bool
	Next() Object
}

// --- String ---

type String struct {
	Value string
}

func (s *String) Type() Type     { return StringType }
func (s *String) String() string { return s.Value }
func (s *String) Equal(other Object) bool {
	o, ok := other.(*String)
	return ok && o.Value == s.Value
}

func (s *String) Iterator() Iterator {
	return &stringIterator{runes: []byte(s.Value)}
}

type stringIterator struct {
	runes []byte
	pos   int
}

func (it *stringIterator) Done() bool { return it.pos >= len(it.runes) }
func (it *stringIterator) Next() Object {
	if it.Done() {
		return &Nil{}
	}
	c := it.runes[it.pos]
	it.pos++
	return &String{Value: string(c)}
}

// --- Number ---

type Number struct {
	Value float64
}

func (n *Number) Type() Type     { return NumberType }
func (n *Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *Number) Equal(other Object) bool {
	o, ok := other.(*Number)
	return ok && o.Value == n.Value // NaN != NaN falls out of Go's float64 ==
}

// --- Bool ---

type Bool struct {
	Value bool
}

func (b *Bool) Type() Type     { return BoolType }
func (b *Bool) String() string { return fmt.Sprintf("%t", b.Value) }
func (b *Bool) Equal(other Object) bool {
	o, ok := other.(*Bool)
	return ok && o.Value == b.Value
}

// --- Nil ---

type Nil struct{}

func (n *Nil) Type() Type     { return NilType }
func (n *Nil) String() string { return "nil" }
func (n *Nil) Equal(other Object) bool {
	_, ok := other.(*Nil)
	return ok
}

// --- Function ---

// Scope is the minimal contract Function needs from the interpreter's
// scope chain, avoiding an import cycle between object and interpreter.
type Scope interface {
	Define(name string, value Object)
}

// Function is a user-defined closure: the FunctionExpr AST node it was
// built from, a direct reference to the scope live at its definition
// site, and the source text that scope's spans are relative to (so
// runtime errors inside the function attribute to the right REPL
// fragment, per spec.md §4.4.4).
type Function struct {
	Expr   *ast.FunctionExpr
	Scope  Scope
	Source string
}

func (f *Function) Type() Type { return FunctionType }
func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", funcLabel(f.Expr))
}
func (f *Function) Arity() int { return len(f.Expr.Params) }

func funcLabel(expr *ast.FunctionExpr) string {
	return fmt.Sprintf("(%d args)", len(expr.Params))
}

// --- BuiltinFunction ---

// BuiltinFunc is the native Go implementation of a built-in. Errors are
// returned as a *diag.Error-compatible error via the second return value;
// the interpreter attaches the call-site span.
type BuiltinFunc func(args []Object) (Object, error)

type BuiltinFunction struct {
	Name   string
	NArity int
	Fn     BuiltinFunc
}

func (b *BuiltinFunction) Type() Type     { return BuiltinType }
func (b *BuiltinFunction) String() string { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *BuiltinFunction) Arity() int     { return b.NArity }

// SameType reports whether a and b report the same Type() — used by the
// interpreter to enforce spec.md §4.4.2's "equality requires the same
// type" rule before attempting a structural comparison.
func SameType(a, b Object) bool {
	return a.Type() == b.Type()
}

// Truthy is used where the spec requires a Bool operand; it never
// coerces other types (spec.md never defines truthiness for non-Bool
// values — callers must type-check before calling this).
func Truthy(o Object) (bool, bool) {
	b, ok := o.(*Bool)
	if !ok {
		return false, false
	}
	return b.Value, true
}
