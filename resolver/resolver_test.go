package resolver_test

import (
	"strings"
	"testing"

	"golox/ast"
	"golox/parser"
	"golox/resolver"
	"golox/scanner"
)

func mustResolve(t *testing.T, src string) (resolver.Depths, []ast.Stmt) {
	t.Helper()
	tokens, _, scanErr := scanner.Scan([]byte(src), "")
	if scanErr != nil {
		t.Fatalf("Scan returned error: %v", scanErr)
	}
	stmts, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		t.Fatalf("Parse returned error: %v", parseErr)
	}
	depths, err := resolver.Resolve(stmts)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	return depths, stmts
}

func TestResolveLocalVariable(t *testing.T) {
	depths, stmts := mustResolve(t, `
var a = "global";
{
  var a = "local";
  print a;
}
`)
	block := stmts[1].(*ast.BlockStmt)
	printStmt := block.Stmts[1].(*ast.PrintStmt)
	ref := printStmt.Expr.(*ast.Variable)
	if depth, ok := depths[ref]; !ok || depth != 0 {
		t.Errorf("depth of inner `a` = %d, %v, want 0, true", depth, ok)
	}
}

func TestResolveGlobalIsAbsentFromDepths(t *testing.T) {
	depths, stmts := mustResolve(t, `
var a = 1;
print a;
`)
	printStmt := stmts[1].(*ast.PrintStmt)
	ref := printStmt.Expr.(*ast.Variable)
	if _, ok := depths[ref]; ok {
		t.Error("global variable reference unexpectedly present in depths side-table")
	}
}

func TestResolveSameLexemeDifferentNodesDontCollide(t *testing.T) {
	// Two separate occurrences of `a` on the same line must resolve
	// independently; keying by token value (which has no column) would
	// collide them.
	depths, stmts := mustResolve(t, `
{
  var a = 1;
  { var a = 2; print a; } print a;
}
`)
	outerBlock := stmts[0].(*ast.BlockStmt)
	innerBlock := outerBlock.Stmts[1].(*ast.BlockStmt)
	innerPrint := innerBlock.Stmts[1].(*ast.PrintStmt).Expr.(*ast.Variable)
	outerPrint := outerBlock.Stmts[2].(*ast.PrintStmt).Expr.(*ast.Variable)

	if depth := depths[innerPrint]; depth != 0 {
		t.Errorf("inner `a` depth = %d, want 0", depth)
	}
	if depth := depths[outerPrint]; depth != 0 {
		t.Errorf("outer `a` depth = %d, want 0", depth)
	}
	if innerPrint == ast.Expr(outerPrint) {
		t.Fatal("test setup bug: the two Variable nodes must be distinct")
	}
}

func TestResolveOwnInitializerError(t *testing.T) {
	tokens, _, _ := scanner.Scan([]byte("{ var a = a; }"), "")
	stmts, _ := parser.Parse(tokens)
	_, err := resolver.Resolve(stmts)
	if err == nil {
		t.Fatal("Resolve returned nil error for self-referential initializer")
	}
	if !strings.Contains(err.Error(), "own initializer") {
		t.Errorf("error = %q, want it to mention reading in its own initializer", err.Error())
	}
}

func TestResolveReturnOutsideFunction(t *testing.T) {
	tokens, _, _ := scanner.Scan([]byte("return 1;"), "")
	stmts, _ := parser.Parse(tokens)
	_, err := resolver.Resolve(stmts)
	if err == nil {
		t.Fatal("Resolve returned nil error for top-level return")
	}
	if !strings.Contains(err.Error(), "can't return from top-level code") {
		t.Errorf("error = %q, want the top-level-return message", err.Error())
	}
}

func TestResolveReturnValueFromInitializer(t *testing.T) {
	tokens, _, _ := scanner.Scan([]byte("class A { init() { return 1; } }"), "")
	stmts, _ := parser.Parse(tokens)
	_, err := resolver.Resolve(stmts)
	if err == nil {
		t.Fatal("Resolve returned nil error for a value returned from init")
	}
	if !strings.Contains(err.Error(), "can't return a value from an initializer") {
		t.Errorf("error = %q, want the initializer-return message", err.Error())
	}
}

func TestResolveThisOutsideClass(t *testing.T) {
	tokens, _, _ := scanner.Scan([]byte("print this;"), "")
	stmts, _ := parser.Parse(tokens)
	_, err := resolver.Resolve(stmts)
	if err == nil {
		t.Fatal("Resolve returned nil error for `this` outside a class")
	}
	if !strings.Contains(err.Error(), "can't use 'this' outside of a class") {
		t.Errorf("error = %q, want the this-outside-class message", err.Error())
	}
}

func TestResolveSuperWithoutSuperclass(t *testing.T) {
	tokens, _, _ := scanner.Scan([]byte("class A { f() { super.f(); } }"), "")
	stmts, _ := parser.Parse(tokens)
	_, err := resolver.Resolve(stmts)
	if err == nil {
		t.Fatal("Resolve returned nil error for `super` with no superclass")
	}
	if !strings.Contains(err.Error(), "can't use 'super' in a class with no superclass") {
		t.Errorf("error = %q, want the no-superclass message", err.Error())
	}
}

func TestResolveClassCantInheritFromItself(t *testing.T) {
	tokens, _, _ := scanner.Scan([]byte("class A < A {}"), "")
	stmts, _ := parser.Parse(tokens)
	_, err := resolver.Resolve(stmts)
	if err == nil {
		t.Fatal("Resolve returned nil error for a class inheriting from itself")
	}
	if !strings.Contains(err.Error(), "can't inherit from itself") {
		t.Errorf("error = %q, want the self-inheritance message", err.Error())
	}
}

func TestResolveDuplicateDeclarationInSameScope(t *testing.T) {
	tokens, _, _ := scanner.Scan([]byte("{ var a = 1; var a = 2; }"), "")
	stmts, _ := parser.Parse(tokens)
	_, err := resolver.Resolve(stmts)
	if err == nil {
		t.Fatal("Resolve returned nil error for a duplicate local declaration")
	}
	if !strings.Contains(err.Error(), "already been declared") {
		t.Errorf("error = %q, want the duplicate-declaration message", err.Error())
	}
}

func TestResolveRedeclarationAtTopLevelIsFine(t *testing.T) {
	// Globals aren't tracked in scopes, so redeclaring a global name is legal.
	_, err := func() (resolver.Depths, error) {
		tokens, _, _ := scanner.Scan([]byte("var a = 1; var a = 2;"), "")
		stmts, _ := parser.Parse(tokens)
		return resolver.Resolve(stmts)
	}()
	if err != nil {
		t.Errorf("Resolve returned error for top-level redeclaration: %v", err)
	}
}
