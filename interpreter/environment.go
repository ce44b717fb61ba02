package interpreter

import "golox/token"

// environment is a singly-linked chain of name->value bindings. The global
// environment has a nil parent; every other environment has exactly one
// enclosing environment. Environments form a tree while control flow is
// purely lexical, but once a closure captures one it may be shared and
// outlive the block that created it: shared ownership, never exclusive.
type environment struct {
	parent *environment
	values map[string]loxObject
}

func newEnvironment(parent *environment) *environment {
	return &environment{parent: parent, values: make(map[string]loxObject)}
}

// define unconditionally sets name in the current frame; shadowing an outer
// binding of the same name is always allowed.
func (e *environment) define(name string, value loxObject) {
	e.values[name] = value
}

// get walks the chain outward looking for tok's lexeme.
func (e *environment) get(tok token.Token) loxObject {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[tok.Lexeme]; ok {
			return v
		}
	}
	panic(newRuntimeError(tok, "Undefined variable '%s'.", tok.Lexeme))
}

// assign mutates the nearest enclosing frame that already has tok's lexeme
// bound.
func (e *environment) assign(tok token.Token, value loxObject) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[tok.Lexeme]; ok {
			env.values[tok.Lexeme] = value
			return
		}
	}
	panic(newRuntimeError(tok, "Undefined variable '%s'.", tok.Lexeme))
}

// ancestor skips exactly distance enclosing links.
func (e *environment) ancestor(distance int) *environment {
	env := e
	for range distance {
		env = env.parent
	}
	return env
}

// getAt fetches tok's lexeme directly from the frame distance links up,
// bypassing the walk -- used for resolved local accesses.
func (e *environment) getAt(distance int, tok token.Token) loxObject {
	return e.ancestor(distance).values[tok.Lexeme]
}

// assignAt assigns tok's lexeme directly in the frame distance links up.
func (e *environment) assignAt(distance int, tok token.Token, value loxObject) {
	e.ancestor(distance).values[tok.Lexeme] = value
}

// getNamedAt fetches a binding by plain name (not a source token), used for
// "this" and "super" which aren't declared via a Variable/Assign node.
func (e *environment) getNamedAt(distance int, name string) loxObject {
	return e.ancestor(distance).values[name]
}
