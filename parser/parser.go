// Package parser implements recursive-descent parsing with precedence
// climbing and panic-mode error recovery.
package parser

import (
	"golox/ast"
	"golox/loxerr"
	"golox/token"
)

const maxArgs = 255

// parseError unwinds the recursive-descent call stack back to the nearest
// declaration boundary, where synchronize resumes parsing. It is not a user-
// facing error itself; the diagnostic has already been recorded in p.errs by
// the time it's raised.
type parseError struct{}

// Parse parses tokens (as produced by the scanner, already EOF-terminated)
// into the program's statement list. It returns every statement it managed
// to parse; err is non-nil iff at least one diagnostic was raised, and joins
// every diagnostic raised during the whole parse (parsing recovers from an
// error and keeps going, so that multiple diagnostics can be surfaced from
// one pass).
func Parse(tokens []token.Token) ([]ast.Stmt, error) {
	p := &parser{tokens: tokens}
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.declarationRecovering(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, p.errs.Err()
}

type parser struct {
	tokens  []token.Token
	current int
	errs    loxerr.StaticList
}

func (p *parser) peek() token.Token { return p.tokens[p.current] }

func (p *parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the current token if it has the given kind,
// otherwise raises a parseError.
func (p *parser) consume(kind token.Kind, format string, args ...any) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), format, args...)
	panic(parseError{})
}

func (p *parser) errorAt(tok token.Token, format string, args ...any) {
	p.errs.Add(loxerr.NewStaticAt(tok, format, args...))
}

// declarationRecovering wraps declaration with the panic-mode recovery
// boundary: a parseError raised anywhere underneath is caught here,
// synchronize is called, and parsing resumes with the next declaration.
func (p *parser) declarationRecovering() (s ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	return p.declaration()
}

func (p *parser) synchronize() {
	for !p.atEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *parser) declaration() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	name := p.consume(token.Ident, "expected class name")
	var superclass *ast.Variable
	if p.match(token.Less) {
		superName := p.consume(token.Ident, "expected superclass name")
		superclass = &ast.Variable{Name: superName}
	}
	p.consume(token.LeftBrace, "expected %m before class body", token.LeftBrace)
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RightBrace, "expected %m after class body", token.RightBrace)
	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.Ident, "expected %s name", kind)
	p.consume(token.LeftParen, "expected %m after %s name", token.LeftParen, kind)
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "can't have more than %d parameters", maxArgs)
			}
			params = append(params, p.consume(token.Ident, "expected parameter name"))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "expected %m after parameters", token.RightParen)
	p.consume(token.LeftBrace, "expected %m before %s body", token.LeftBrace, kind)
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *parser) varDecl() ast.Stmt {
	name := p.consume(token.Ident, "expected variable name")
	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "expected %m after variable declaration", token.Semicolon)
	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.LeftBrace):
		lineHint := p.previous().Line
		return &ast.BlockStmt{LineHint: lineHint, Stmts: p.block()}
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Return):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) printStmt() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.Semicolon, "expected %m after value", token.Semicolon)
	return &ast.PrintStmt{Keyword: keyword, Expr: value}
}

func (p *parser) exprStmt() ast.Stmt {
	e := p.expression()
	p.consume(token.Semicolon, "expected %m after expression", token.Semicolon)
	return &ast.ExprStmt{Expr: e}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if s := p.declarationRecovering(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RightBrace, "expected %m after block", token.RightBrace)
	return stmts
}

func (p *parser) ifStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LeftParen, "expected %m after %s", token.LeftParen, "if")
	cond := p.expression()
	p.consume(token.RightParen, "expected %m after condition", token.RightParen)
	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Keyword: keyword, Cond: cond, Then: then, Else: elseBranch}
}

func (p *parser) whileStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LeftParen, "expected %m after %s", token.LeftParen, "while")
	cond := p.expression()
	p.consume(token.RightParen, "expected %m after condition", token.RightParen)
	body := p.statement()
	return &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body}
}

// forStmt desugars `for (init; cond; incr) body` into a block containing
// init followed by a while loop.
func (p *parser) forStmt() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LeftParen, "expected %m after %s", token.LeftParen, "for")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		init = nil
	case p.match(token.Var):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "expected %m after loop condition", token.Semicolon)

	var incr ast.Expr
	if !p.check(token.RightParen) {
		incr = p.expression()
	}
	p.consume(token.RightParen, "expected %m after for clauses", token.RightParen)

	body := p.statement()
	if incr != nil {
		body = &ast.BlockStmt{LineHint: keyword.Line, Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true, LineHint: keyword.Line}
	}
	body = &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body}
	if init != nil {
		body = &ast.BlockStmt{LineHint: keyword.Line, Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "expected %m after return value", token.Semicolon)
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

func (p *parser) assignment() ast.Expr {
	left := p.or()
	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()
		switch l := left.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: l.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: l.Object, Name: l.Name, Value: value}
		default:
			p.errorAt(equals, "invalid assignment target")
			return left
		}
	}
	return left
}

func (p *parser) or() ast.Expr {
	left := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		left = &ast.Logical{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) and() ast.Expr {
	left := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		left = &ast.Logical{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) equality() ast.Expr {
	left := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) comparison() ast.Expr {
	left := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) term() ast.Expr {
	left := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) factor() ast.Expr {
	left := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	e := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			e = p.finishCall(e)
		case p.match(token.Dot):
			name := p.consume(token.Ident, "expected property name after %m", token.Dot)
			e = &ast.Get{Object: e, Name: name}
		default:
			return e
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "can't have more than %d arguments", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "expected %m after arguments", token.RightParen)
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

func (p *parser) primary() ast.Expr {
	tok := p.peek()
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false, LineHint: tok.Line}
	case p.match(token.True):
		return &ast.Literal{Value: true, LineHint: tok.Line}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil, LineHint: tok.Line}
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: tok.Literal, LineHint: tok.Line}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "expected %m after %s", token.Dot, "super")
		method := p.consume(token.Ident, "expected superclass method name")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.This):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.Ident):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LeftParen):
		inner := p.expression()
		p.consume(token.RightParen, "expected %m after expression", token.RightParen)
		return &ast.Grouping{Inner: inner}
	default:
		p.errorAt(tok, "expected expression")
		panic(parseError{})
	}
}
