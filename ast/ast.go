// Package ast declares the tagged-variant node types used to represent the
// abstract syntax tree of a Lox program.
package ast

import "golox/token"

// Node is implemented by every AST node.
type Node interface {
	// Line returns the source line the node starts on, for diagnostics.
	Line() int
}

// Expr is implemented by every expression node.
//
//sumtype:decl
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
//
//sumtype:decl
type Stmt interface {
	Node
	stmtNode()
}

type expr struct{}

func (expr) exprNode() {}

type stmt struct{}

func (stmt) stmtNode() {}

// Literal is a literal nil, boolean, number, or string value.
type Literal struct {
	Value    any // nil, bool, float64, or string
	LineHint int
	expr
}

func (l *Literal) Line() int { return l.LineHint }

// Grouping is a parenthesised expression.
type Grouping struct {
	Inner Expr
	expr
}

func (g *Grouping) Line() int { return g.Inner.Line() }

// Unary is a prefix unary operator applied to an expression.
type Unary struct {
	Op    token.Token
	Right Expr
	expr
}

func (u *Unary) Line() int { return u.Op.Line }

// Binary is an infix binary operator applied to two expressions.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (b *Binary) Line() int { return b.Op.Line }

// Logical is `and`/`or`, which short-circuit unlike Binary operators.
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (l *Logical) Line() int { return l.Op.Line }

// Variable is a reference to a named variable.
type Variable struct {
	Name token.Token
	expr
}

func (v *Variable) Line() int { return v.Name.Line }

// Assign assigns a value to a named variable.
type Assign struct {
	Name  token.Token
	Value Expr
	expr
}

func (a *Assign) Line() int { return a.Name.Line }

// Call invokes a callee with a list of arguments.
type Call struct {
	Callee    Expr
	Paren     token.Token // closing ')', used for error reporting
	Arguments []Expr
	expr
}

func (c *Call) Line() int { return c.Paren.Line }

// Get reads a property off an object.
type Get struct {
	Object Expr
	Name   token.Token
	expr
}

func (g *Get) Line() int { return g.Name.Line }

// Set writes a property on an object.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
	expr
}

func (s *Set) Line() int { return s.Name.Line }

// This is a reference to the current instance inside a method.
type This struct {
	Keyword token.Token
	expr
}

func (t *This) Line() int { return t.Keyword.Line }

// Super is a reference to a method on the enclosing class's superclass.
type Super struct {
	Keyword token.Token
	Method  token.Token
	expr
}

func (s *Super) Line() int { return s.Keyword.Line }

// ExprStmt evaluates an expression and discards the result.
type ExprStmt struct {
	Expr Expr
	stmt
}

func (e *ExprStmt) Line() int { return e.Expr.Line() }

// PrintStmt evaluates an expression and writes its stringification to stdout.
type PrintStmt struct {
	Keyword token.Token
	Expr    Expr
	stmt
}

func (p *PrintStmt) Line() int { return p.Keyword.Line }

// VarStmt declares a variable, optionally initialising it.
type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if absent
	stmt
}

func (v *VarStmt) Line() int { return v.Name.Line }

// BlockStmt is a sequence of statements executed in a new lexical scope.
type BlockStmt struct {
	LineHint int
	Stmts    []Stmt
	stmt
}

func (b *BlockStmt) Line() int { return b.LineHint }

// IfStmt conditionally executes one of two branches.
type IfStmt struct {
	Keyword   token.Token
	Cond      Expr
	Then      Stmt
	Else      Stmt // nil if absent
	stmt
}

func (i *IfStmt) Line() int { return i.Keyword.Line }

// WhileStmt repeats Body while Cond is truthy.
type WhileStmt struct {
	Keyword token.Token
	Cond    Expr
	Body    Stmt
	stmt
}

func (w *WhileStmt) Line() int { return w.Keyword.Line }

// FunctionStmt declares a named function (or method, when nested inside a
// ClassStmt's Methods).
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	stmt
}

func (f *FunctionStmt) Line() int { return f.Name.Line }

// ReturnStmt returns from the innermost enclosing function.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if absent
	stmt
}

func (r *ReturnStmt) Line() int { return r.Keyword.Line }

// ClassStmt declares a class, its optional superclass, and its methods.
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable // nil if absent
	Methods    []*FunctionStmt
	stmt
}

func (c *ClassStmt) Line() int { return c.Name.Line }
