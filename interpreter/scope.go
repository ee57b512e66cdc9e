/*
File    : go-mix/interpreter/scope.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

package interpreter

import "github.com/gomix-lang/gomix/object"

// Scope is a mapping from variable name to a shared object reference,
// plus an optional parent. The root scope (Parent == nil) is the global
// scope. Blocks, function bodies, and for-loop iteration steps each push
// a fresh Scope whose parent is the enclosing scope at creation time
// (spec.md §3, §4.4.1).
type Scope struct {
	Variables map[string]object.Object
	Parent    *Scope
}

// NewScope creates a Scope nested under parent (nil for the global
// scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Variables: make(map[string]object.Object),
		Parent:    parent,
	}
}

// Define inserts or overwrites name in the current scope only. Satisfies
// object.Scope so a Function can hold its captured *Scope without object
// importing interpreter.
func (s *Scope) Define(name string, value object.Object) {
	s.Variables[name] = value
}

// ancestor walks n parents up from s. The checker guarantees the hop
// count never exceeds the real nesting depth, so this never runs off the
// root.
func (s *Scope) ancestor(hops int) *Scope {
	cur := s
	for i := 0; i < hops; i++ {
		cur = cur.Parent
	}
	return cur
}

// GetResolved reads name at exactly `hops` scopes up from s. The binding
// must exist there — the checker guarantees it (spec.md §4.4.1).
func (s *Scope) GetResolved(name string, hops int) (object.Object, bool) {
	v, ok := s.ancestor(hops).Variables[name]
	return v, ok
}

// SetResolved writes name at exactly `hops` scopes up from s.
func (s *Scope) SetResolved(name string, hops int, value object.Object) bool {
	target := s.ancestor(hops)
	if _, ok := target.Variables[name]; !ok {
		return false
	}
	target.Variables[name] = value
	return true
}

// global walks to the root of the scope chain.
func (s *Scope) global() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// GetUnresolved looks up name in the global scope only, for identifiers
// the checker left unresolved (spec.md §4.4.1).
func (s *Scope) GetUnresolved(name string) (object.Object, bool) {
	v, ok := s.global().Variables[name]
	return v, ok
}

// SetGlobal writes name in the global scope only; returns false if the
// name is absent there (caller reports "identifier not defined").
func (s *Scope) SetGlobal(name string, value object.Object) bool {
	g := s.global()
	if _, ok := g.Variables[name]; !ok {
		return false
	}
	g.Variables[name] = value
	return true
}
