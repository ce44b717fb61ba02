// Package resolver is a static pre-pass over the AST that builds a map
// from each variable-reference node to a lexical depth, and detects the
// static scope errors described by the language.
package resolver

import (
	"golox/ast"
	"golox/loxerr"
	"golox/token"
)

// Depths maps each Variable/Assign/This/Super expression node to the number
// of enclosing environments to skip, starting from the current one, to find
// its binding. A node absent from the map refers to a global.
//
// Nodes are keyed by their own pointer identity rather than by token value:
// the token type (kind, lexeme, literal, line) carries no column, so two
// distinct identifier occurrences on the same line (`a = a + 1;`)
// would otherwise collide. Every expression node is allocated once by the
// parser, so its pointer is a stable, unique key -- the Go realisation of
// the "arena index" identity scheme the design notes suggest.
type Depths map[ast.Expr]int

type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// identStatus tracks whether a name has been declared (reserved but not yet
// assigned) or defined (safe to read) within a scope.
type identStatus int

const (
	undeclared identStatus = iota
	declared
	defined
)

type scope map[string]identStatus

// Resolve runs the resolver over stmts and returns the depth side-table.
// err is non-nil iff at least one static scope error was found, joining
// every diagnostic raised (resolving, like parsing, doesn't stop at the
// first error).
func Resolve(stmts []ast.Stmt) (Depths, error) {
	r := &resolver{depths: Depths{}}
	r.resolveStmts(stmts)
	return r.depths, r.errs.Err()
}

type resolver struct {
	scopes      []scope
	depths      Depths
	currentFunc funcKind
	currentCls  classKind
	errs        loxerr.StaticList
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }
func (r *resolver) peekScope() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.peekScope()
	if _, ok := s[name.Lexeme]; ok {
		r.errs.Add(loxerr.NewStaticAt(name, "%s has already been declared in this scope", name.Lexeme))
	}
	s[name.Lexeme] = declared
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = defined
}

// resolveLocal walks the scope stack innermost-first looking for name. If
// found, it records the depth (0 = innermost/topmost scope) in the
// side-table keyed by node. A name found in no scope is left unresolved,
// meaning it refers to a global.
func (r *resolver) resolveLocal(node ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[node] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, funcFunction)
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.ReturnStmt:
		if r.currentFunc == funcNone {
			r.errs.Add(loxerr.NewStaticAt(s.Keyword, "can't return from top-level code"))
		}
		if s.Value != nil {
			if r.currentFunc == funcInitializer {
				r.errs.Add(loxerr.NewStaticAt(s.Keyword, "can't return a value from an initializer"))
			}
			r.resolveExpr(s.Value)
		}
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, kind funcKind) {
	enclosingFunc := r.currentFunc
	r.currentFunc = kind
	defer func() { r.currentFunc = enclosingFunc }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *resolver) resolveClass(c *ast.ClassStmt) {
	enclosingCls := r.currentCls
	r.currentCls = classClass
	defer func() { r.currentCls = enclosingCls }()

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.errs.Add(loxerr.NewStaticAt(c.Superclass.Name, "a class can't inherit from itself"))
		}
		r.currentCls = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		defer r.endScope()
		r.peekScope()["super"] = defined
	}

	r.beginScope()
	defer r.endScope()
	r.peekScope()["this"] = defined

	for _, m := range c.Methods {
		kind := funcMethod
		if m.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(m, kind)
	}
}

func (r *resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		// no identifiers to resolve
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if status, ok := r.peekScope()[e.Name.Lexeme]; ok && status == declared {
				r.errs.Add(loxerr.NewStaticAt(e.Name, "can't read local variable %s in its own initializer", e.Name.Lexeme))
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.currentCls == classNone {
			r.errs.Add(loxerr.NewStaticAt(e.Keyword, "can't use 'this' outside of a class"))
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch r.currentCls {
		case classNone:
			r.errs.Add(loxerr.NewStaticAt(e.Keyword, "can't use 'super' outside of a class"))
		case classClass:
			r.errs.Add(loxerr.NewStaticAt(e.Keyword, "can't use 'super' in a class with no superclass"))
		}
		r.resolveLocal(e, e.Keyword)
	default:
		panic("resolver: unhandled expression type")
	}
}
