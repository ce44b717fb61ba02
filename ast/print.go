package ast

import (
	"fmt"
	"strings"
)

// Sprint formats stmts as an indented s-expression tree, for the `-p` debug
// flag of the golox CLI.
func Sprint(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		sprintStmt(&b, s, 0)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func sprintStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch s := s.(type) {
	case *ExprStmt:
		fmt.Fprintln(b, "(expr")
		sprintExpr(b, s.Expr, depth+1)
		closeParen(b, depth)
	case *PrintStmt:
		fmt.Fprintln(b, "(print")
		sprintExpr(b, s.Expr, depth+1)
		closeParen(b, depth)
	case *VarStmt:
		fmt.Fprintf(b, "(var %s\n", s.Name.Lexeme)
		if s.Initializer != nil {
			sprintExpr(b, s.Initializer, depth+1)
		}
		closeParen(b, depth)
	case *BlockStmt:
		fmt.Fprintln(b, "(block")
		for _, stmt := range s.Stmts {
			sprintStmt(b, stmt, depth+1)
		}
		closeParen(b, depth)
	case *IfStmt:
		fmt.Fprintln(b, "(if")
		sprintExpr(b, s.Cond, depth+1)
		sprintStmt(b, s.Then, depth+1)
		if s.Else != nil {
			sprintStmt(b, s.Else, depth+1)
		}
		closeParen(b, depth)
	case *WhileStmt:
		fmt.Fprintln(b, "(while")
		sprintExpr(b, s.Cond, depth+1)
		sprintStmt(b, s.Body, depth+1)
		closeParen(b, depth)
	case *FunctionStmt:
		fmt.Fprintf(b, "(fun %s\n", s.Name.Lexeme)
		for _, stmt := range s.Body {
			sprintStmt(b, stmt, depth+1)
		}
		closeParen(b, depth)
	case *ReturnStmt:
		fmt.Fprintln(b, "(return")
		if s.Value != nil {
			sprintExpr(b, s.Value, depth+1)
		}
		closeParen(b, depth)
	case *ClassStmt:
		fmt.Fprintf(b, "(class %s\n", s.Name.Lexeme)
		for _, m := range s.Methods {
			sprintStmt(b, m, depth+1)
		}
		closeParen(b, depth)
	default:
		fmt.Fprintf(b, "(unknown-stmt %T)\n", s)
	}
}

func sprintExpr(b *strings.Builder, e Expr, depth int) {
	indent(b, depth)
	switch e := e.(type) {
	case *Literal:
		fmt.Fprintf(b, "%v\n", e.Value)
	case *Grouping:
		fmt.Fprintln(b, "(group")
		sprintExpr(b, e.Inner, depth+1)
		closeParen(b, depth)
	case *Unary:
		fmt.Fprintf(b, "(%s\n", e.Op.Lexeme)
		sprintExpr(b, e.Right, depth+1)
		closeParen(b, depth)
	case *Binary:
		fmt.Fprintf(b, "(%s\n", e.Op.Lexeme)
		sprintExpr(b, e.Left, depth+1)
		sprintExpr(b, e.Right, depth+1)
		closeParen(b, depth)
	case *Logical:
		fmt.Fprintf(b, "(%s\n", e.Op.Lexeme)
		sprintExpr(b, e.Left, depth+1)
		sprintExpr(b, e.Right, depth+1)
		closeParen(b, depth)
	case *Variable:
		fmt.Fprintln(b, e.Name.Lexeme)
	case *Assign:
		fmt.Fprintf(b, "(= %s\n", e.Name.Lexeme)
		sprintExpr(b, e.Value, depth+1)
		closeParen(b, depth)
	case *Call:
		fmt.Fprintln(b, "(call")
		sprintExpr(b, e.Callee, depth+1)
		for _, arg := range e.Arguments {
			sprintExpr(b, arg, depth+1)
		}
		closeParen(b, depth)
	case *Get:
		fmt.Fprintln(b, "(get")
		sprintExpr(b, e.Object, depth+1)
		indent(b, depth+1)
		fmt.Fprintln(b, e.Name.Lexeme)
		closeParen(b, depth)
	case *Set:
		fmt.Fprintln(b, "(set")
		sprintExpr(b, e.Object, depth+1)
		indent(b, depth+1)
		fmt.Fprintln(b, e.Name.Lexeme)
		sprintExpr(b, e.Value, depth+1)
		closeParen(b, depth)
	case *This:
		fmt.Fprintln(b, "this")
	case *Super:
		fmt.Fprintf(b, "(super %s)\n", e.Method.Lexeme)
	default:
		fmt.Fprintf(b, "(unknown-expr %T)\n", e)
	}
}

func closeParen(b *strings.Builder, depth int) {
	indent(b, depth)
	fmt.Fprintln(b, ")")
}
