package interpreter

import (
	"fmt"

	"golox/ast"
)

// callable is implemented by every value that can appear as the callee of a
// Call expression: user-defined functions/methods, the native clock, and
// classes (instantiation).
type callable interface {
	loxObject
	arity() int
	call(in *Interpreter, args []loxObject) loxObject
}

// nativeFunction is a built-in such as clock.
type nativeFunction struct {
	name    string
	arityN  int
	fn      func(args []loxObject) loxObject
}

func (f *nativeFunction) String() string  { return "<native fn>" }
func (f *nativeFunction) typeName() string { return "function" }
func (f *nativeFunction) arity() int       { return f.arityN }
func (f *nativeFunction) call(_ *Interpreter, args []loxObject) loxObject {
	return f.fn(args)
}

// LoxFunction is a user-defined function or method: its declaration, the
// environment it closed over at definition time, and whether it's a class
// initializer.
type LoxFunction struct {
	declaration   *ast.FunctionStmt
	closure       *environment
	isInitializer bool
}

func (f *LoxFunction) String() string  { return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme) }
func (f *LoxFunction) typeName() string { return "function" }
func (f *LoxFunction) arity() int       { return len(f.declaration.Params) }

// bind returns a copy of f whose closure is a new environment, enclosed by
// f's own closure, with "this" bound to instance. This is how methods gain
// access to the instance they were looked up on.
func (f *LoxFunction) bind(instance *loxInstance) *LoxFunction {
	env := newEnvironment(f.closure)
	env.define("this", instance)
	return &LoxFunction{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

// call runs the function body in a fresh environment enclosed by the
// closure, params bound in order, body executed as a block, and the
// special-cased initializer return value.
func (f *LoxFunction) call(in *Interpreter, args []loxObject) (result loxObject) {
	env := newEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.define(param.Lexeme, args[i])
	}

	defer func() {
		if f.isInitializer {
			result = f.closure.getNamedAt(0, "this")
		}
	}()

	switch r := in.execBlock(f.declaration.Body, env).(type) {
	case stmtResultReturn:
		return r.value
	default:
		return theNil
	}
}

// LoxClass is a class: its name, optional superclass, and its own methods.
type LoxClass struct {
	name       string
	superclass *LoxClass
	methods    map[string]*LoxFunction
}

func (c *LoxClass) String() string  { return c.name }
func (c *LoxClass) typeName() string { return "class" }

// findMethod looks up name on c, then walks the superclass chain.
func (c *LoxClass) findMethod(name string) (*LoxFunction, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

// arity is the arity of init if the class defines one, else 0.
func (c *LoxClass) arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.arity()
	}
	return 0
}

// call constructs a new instance and, if the class has an initializer,
// binds and calls it with args. The result is always the instance.
func (c *LoxClass) call(in *Interpreter, args []loxObject) loxObject {
	instance := &loxInstance{class: c, fields: make(map[string]loxObject)}
	if init, ok := c.findMethod("init"); ok {
		init.bind(instance).call(in, args)
	}
	return instance
}

// loxInstance is an instance of a LoxClass: a reference to its class and a
// mutable field map.
type loxInstance struct {
	class  *LoxClass
	fields map[string]loxObject
}

func (i *loxInstance) String() string  { return fmt.Sprintf("%s instance", i.class.name) }
func (i *loxInstance) typeName() string { return "instance" }

// get looks up a field or method by name: a field, if set, shadows a method
// of the same name; otherwise the method is looked up and bound to the
// instance.
func (i *loxInstance) get(name string) (loxObject, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.bind(i), true
	}
	return nil, false
}

// set assigns a field; fields can always be created/overwritten.
func (i *loxInstance) set(name string, value loxObject) {
	i.fields[name] = value
}
