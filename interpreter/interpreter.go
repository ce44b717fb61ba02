// Package interpreter is the tree-walking evaluator that drives
// environments and callables.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"golox/ast"
	"golox/loxerr"
	"golox/resolver"
	"golox/token"
)

// Interpreter holds the state that persists across calls to Interpret: the
// global environment and the builtins installed into it. Interpret can be
// called repeatedly (e.g. once per REPL line) with the state carried over,
// which is how a REPL session accumulates variables across lines.
type Interpreter struct {
	globals *environment
	depths  resolver.Depths
	Stdout  io.Writer
}

// New constructs an Interpreter with clock installed in its global scope.
// print statements write to os.Stdout by default; set Stdout to redirect
// them, e.g. to a buffer in tests.
func New() *Interpreter {
	globals := newEnvironment(nil)
	defineBuiltins(globals)
	return &Interpreter{globals: globals, depths: resolver.Depths{}, Stdout: os.Stdout}
}

// Interpret executes stmts using depths as the resolver's side-table for
// this unit. It recovers *loxerr.Runtime panics raised anywhere underneath
// and returns them as an ordinary error; any other panic is a bug in this
// implementation and is re-raised. The return-unwind mechanism (stmtResult)
// is a distinct, non-panic path that Interpret never observes at this
// boundary.
func (in *Interpreter) Interpret(stmts []ast.Stmt, depths resolver.Depths) (err error) {
	for node, depth := range depths {
		in.depths[node] = depth
	}
	defer func() {
		if r := recover(); r != nil {
			if rtErr, ok := r.(*loxerr.Runtime); ok {
				err = rtErr
				return
			}
			panic(r)
		}
	}()
	for _, stmt := range stmts {
		in.execStmt(in.globals, stmt)
	}
	return nil
}

func newRuntimeError(tok token.Token, format string, args ...any) error {
	return loxerr.NewRuntime(tok, format, args...)
}

// stmtResult is the out-of-band return-unwind mechanism: a Return statement
// carries a value up through any number of enclosing
// blocks/loops to the frame that began the current function invocation,
// restoring each block's environment along the way.
type stmtResult interface {
	stmtResult()
}

type stmtResultNone struct{}

func (stmtResultNone) stmtResult() {}

type stmtResultReturn struct {
	value loxObject
}

func (stmtResultReturn) stmtResult() {}

var none = stmtResultNone{}

func (in *Interpreter) execStmt(env *environment, s ast.Stmt) stmtResult {
	switch s := s.(type) {
	case *ast.VarStmt:
		value := loxObject(theNil)
		if s.Initializer != nil {
			value = in.evalExpr(env, s.Initializer)
		}
		env.define(s.Name.Lexeme, value)
		return none
	case *ast.FunctionStmt:
		env.define(s.Name.Lexeme, &LoxFunction{declaration: s, closure: env})
		return none
	case *ast.ClassStmt:
		in.execClassStmt(env, s)
		return none
	case *ast.ExprStmt:
		in.evalExpr(env, s.Expr)
		return none
	case *ast.PrintStmt:
		value := in.evalExpr(env, s.Expr)
		fmt.Fprintln(in.Stdout, value.String())
		return none
	case *ast.BlockStmt:
		return in.execBlock(s.Stmts, newEnvironment(env))
	case *ast.IfStmt:
		if isTruthy(in.evalExpr(env, s.Cond)) {
			return in.execStmt(env, s.Then)
		} else if s.Else != nil {
			return in.execStmt(env, s.Else)
		}
		return none
	case *ast.WhileStmt:
		for isTruthy(in.evalExpr(env, s.Cond)) {
			if r := in.execStmt(env, s.Body); r != none {
				return r
			}
		}
		return none
	case *ast.ReturnStmt:
		value := loxObject(theNil)
		if s.Value != nil {
			value = in.evalExpr(env, s.Value)
		}
		return stmtResultReturn{value: value}
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", s))
	}
}

// execBlock executes stmts in env, returning as soon as a non-None result
// propagates up (a Return from a nested statement). It is used both for
// plain block statements (given a fresh child environment) and for function
// call bodies (given the call's own fresh frame).
func (in *Interpreter) execBlock(stmts []ast.Stmt, env *environment) stmtResult {
	for _, stmt := range stmts {
		if r := in.execStmt(env, stmt); r != none {
			return r
		}
	}
	return none
}

func (in *Interpreter) execClassStmt(env *environment, s *ast.ClassStmt) {
	var superclass *LoxClass
	if s.Superclass != nil {
		superVal := in.evalExpr(env, s.Superclass)
		var ok bool
		superclass, ok = superVal.(*LoxClass)
		if !ok {
			panic(newRuntimeError(s.Superclass.Name, "Superclass must be a class."))
		}
	}

	env.define(s.Name.Lexeme, theNil)

	methodEnv := env
	if s.Superclass != nil {
		methodEnv = newEnvironment(env)
		methodEnv.define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &LoxFunction{
			declaration:   m,
			closure:       methodEnv,
			isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &LoxClass{name: s.Name.Lexeme, superclass: superclass, methods: methods}
	env.assign(s.Name, class)
}

func (in *Interpreter) evalExpr(env *environment, e ast.Expr) loxObject {
	switch e := e.(type) {
	case *ast.Literal:
		return literalObject(e.Value)
	case *ast.Grouping:
		return in.evalExpr(env, e.Inner)
	case *ast.Unary:
		return in.evalUnary(env, e)
	case *ast.Binary:
		return in.evalBinary(env, e)
	case *ast.Logical:
		left := in.evalExpr(env, e.Left)
		if e.Op.Kind == token.Or {
			if isTruthy(left) {
				return left
			}
		} else {
			if !isTruthy(left) {
				return left
			}
		}
		return in.evalExpr(env, e.Right)
	case *ast.Variable:
		return in.lookupVariable(env, e, e.Name)
	case *ast.Assign:
		value := in.evalExpr(env, e.Value)
		if depth, ok := in.depths[e]; ok {
			env.assignAt(depth, e.Name, value)
		} else {
			in.globals.assign(e.Name, value)
		}
		return value
	case *ast.Call:
		return in.evalCall(env, e)
	case *ast.Get:
		return in.evalGet(env, e)
	case *ast.Set:
		return in.evalSet(env, e)
	case *ast.This:
		return in.lookupVariable(env, e, e.Keyword)
	case *ast.Super:
		return in.evalSuper(env, e)
	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", e))
	}
}

func literalObject(v any) loxObject {
	switch v := v.(type) {
	case nil:
		return theNil
	case bool:
		return loxBool(v)
	case float64:
		return loxNumber(v)
	case string:
		return loxString(v)
	default:
		panic(fmt.Sprintf("interpreter: unhandled literal type %T", v))
	}
}

// lookupVariable fetches tok from env at the depth the resolver recorded
// for node, or from globals if node is absent from the side-table.
func (in *Interpreter) lookupVariable(env *environment, node ast.Expr, tok token.Token) loxObject {
	if depth, ok := in.depths[node]; ok {
		return env.getAt(depth, tok)
	}
	return in.globals.get(tok)
}

func (in *Interpreter) evalUnary(env *environment, e *ast.Unary) loxObject {
	right := in.evalExpr(env, e.Right)
	switch e.Op.Kind {
	case token.Bang:
		return loxBool(!isTruthy(right))
	case token.Minus:
		n, ok := right.(loxNumber)
		if !ok {
			panic(newRuntimeError(e.Op, "Operand must be a number."))
		}
		return -n
	default:
		panic(fmt.Sprintf("interpreter: unhandled unary operator %s", e.Op.Kind))
	}
}

func (in *Interpreter) evalBinary(env *environment, e *ast.Binary) loxObject {
	left := in.evalExpr(env, e.Left)
	right := in.evalExpr(env, e.Right)

	switch e.Op.Kind {
	case token.EqualEqual:
		return loxBool(equals(left, right))
	case token.BangEqual:
		return loxBool(!equals(left, right))
	case token.Plus:
		if ln, ok := left.(loxNumber); ok {
			if rn, ok := right.(loxNumber); ok {
				return ln + rn
			}
		}
		if ls, ok := left.(loxString); ok {
			if rs, ok := right.(loxString); ok {
				return ls + rs
			}
		}
		panic(newRuntimeError(e.Op, "Operands must be a two numbers or two strings."))
	case token.Minus, token.Star, token.Slash, token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		ln, lok := left.(loxNumber)
		rn, rok := right.(loxNumber)
		if !lok || !rok {
			panic(newRuntimeError(e.Op, "Operands must be numbers."))
		}
		switch e.Op.Kind {
		case token.Minus:
			return ln - rn
		case token.Star:
			return ln * rn
		case token.Slash:
			return ln / rn
		case token.Greater:
			return loxBool(ln > rn)
		case token.GreaterEqual:
			return loxBool(ln >= rn)
		case token.Less:
			return loxBool(ln < rn)
		default: // token.LessEqual
			return loxBool(ln <= rn)
		}
	default:
		panic(fmt.Sprintf("interpreter: unhandled binary operator %s", e.Op.Kind))
	}
}

func (in *Interpreter) evalCall(env *environment, e *ast.Call) loxObject {
	callee := in.evalExpr(env, e.Callee)
	args := make([]loxObject, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = in.evalExpr(env, a)
	}

	fn, ok := callee.(callable)
	if !ok {
		panic(newRuntimeError(e.Paren, "Can only call functions and classes."))
	}
	if len(args) != fn.arity() {
		panic(newRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.arity(), len(args)))
	}
	return fn.call(in, args)
}

func (in *Interpreter) evalGet(env *environment, e *ast.Get) loxObject {
	obj := in.evalExpr(env, e.Object)
	instance, ok := obj.(*loxInstance)
	if !ok {
		panic(newRuntimeError(e.Name, "Only instances have properties."))
	}
	value, ok := instance.get(e.Name.Lexeme)
	if !ok {
		panic(newRuntimeError(e.Name, "Undefined property '%s'.", e.Name.Lexeme))
	}
	return value
}

func (in *Interpreter) evalSet(env *environment, e *ast.Set) loxObject {
	obj := in.evalExpr(env, e.Object)
	instance, ok := obj.(*loxInstance)
	if !ok {
		panic(newRuntimeError(e.Name, "Only instances have fields."))
	}
	value := in.evalExpr(env, e.Value)
	instance.set(e.Name.Lexeme, value)
	return value
}

func (in *Interpreter) evalSuper(env *environment, e *ast.Super) loxObject {
	depth := in.depths[e]
	superclass := env.getNamedAt(depth, "super").(*LoxClass)
	instance := env.getNamedAt(depth-1, "this").(*loxInstance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		panic(newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.bind(instance)
}
