package token_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"golox/token"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want string
	}{
		{token.LeftParen, "("},
		{token.BangEqual, "!="},
		{token.Ident, "identifier"},
		{token.Class, "class"},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.want {
			t.Errorf("Kind(%d).String() = %q, want %q", test.kind, got, test.want)
		}
	}
}

func TestKindFormatM(t *testing.T) {
	got := fmt.Sprintf("expected %m", token.Semicolon)
	want := "expected ';'"
	if got != want {
		t.Errorf("Sprintf(%%m) = %q, want %q", got, want)
	}
}

func TestKeywords(t *testing.T) {
	kind, ok := token.Keywords["while"]
	if !ok || kind != token.While {
		t.Errorf(`Keywords["while"] = %v, %v, want %v, true`, kind, ok, token.While)
	}
	if _, ok := token.Keywords["notakeyword"]; ok {
		t.Error(`Keywords["notakeyword"] unexpectedly present`)
	}
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Kind: token.String, Lexeme: `"hi"`, Literal: "hi", Line: 3}
	want := `string "\"hi\"" hi`
	if got := tok.String(); got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}

func TestTokenIsZero(t *testing.T) {
	if !(token.Token{}).IsZero() {
		t.Error("zero Token.IsZero() = false, want true")
	}
	tok := token.Token{Kind: token.EOF, Line: 1}
	if tok.IsZero() {
		t.Error("non-zero Token.IsZero() = true, want false")
	}
}

func TestFileLine(t *testing.T) {
	f := token.NewFile("test.lox", []byte("var a = 1;\nprint a;\n"))

	tests := []struct {
		n        int
		wantLine string
		wantOK   bool
	}{
		{1, "var a = 1;", true},
		{2, "print a;", true},
		{3, "", true}, // trailing empty line after the final newline
		{0, "", false},
		{4, "", false},
	}
	for _, test := range tests {
		line, ok := f.Line(test.n)
		if ok != test.wantOK || (ok && line != test.wantLine) {
			t.Errorf("Line(%d) = %q, %v, want %q, %v", test.n, line, ok, test.wantLine, test.wantOK)
		}
	}
}

func TestFileLineNilFile(t *testing.T) {
	var f *token.File
	if _, ok := f.Line(1); ok {
		t.Error("nil *File.Line() ok = true, want false")
	}
}

func TestTokenComparable(t *testing.T) {
	a := token.Token{Kind: token.Ident, Lexeme: "x", Literal: "x", Line: 1}
	b := token.Token{Kind: token.Ident, Lexeme: "x", Literal: "x", Line: 1}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("equal tokens differ (-a +b):\n%s", diff)
	}
}
