// Package token declares the lexical token types shared by the scanner,
// parser, resolver, and interpreter.
package token

import "fmt"

// Kind is the kind of a lexical token.
type Kind int

// The closed set of token kinds.
const (
	Illegal Kind = iota
	EOF

	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	Ident
	String
	Number

	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
)

var kindNames = map[Kind]string{
	Illegal:      "illegal",
	EOF:          "EOF",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Ident:        "identifier",
	String:       "string",
	Number:       "number",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	Fun:          "fun",
	For:          "for",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
}

// Keywords maps the fixed keyword spellings to their token kind.
var Keywords = func() map[string]Kind {
	m := make(map[string]Kind)
	for _, k := range []Kind{
		And, Class, Else, False, Fun, For, If, Nil, Or,
		Print, Return, Super, This, True, Var, While,
	} {
		m[kindNames[k]] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Format implements fmt.Formatter. The 'm' verb renders the kind quoted, for
// use inside an error message (e.g. "expected %m" -> "expected ';'").
func (k Kind) Format(f fmt.State, verb rune) {
	switch verb {
	case 'm':
		fmt.Fprintf(f, "'%s'", k)
	default:
		fmt.Fprint(f, k.String())
	}
}

// Token is an immutable lexical token: its kind, the exact source text it
// was scanned from, an optional literal value (set only for Number, String,
// and Ident tokens), and the 1-based source line it started on.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any // float64 for Number, string for String and Ident; nil otherwise
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %v", t.Kind, t.Lexeme, t.Literal)
}

// IsZero reports whether t is the zero value.
func (t Token) IsZero() bool {
	return t == Token{}
}

// File holds a source file's text split into lines, so that diagnostics can
// quote the offending line. Lox tokens only carry a line number (no
// column), so File is keyed by line rather than byte offset.
type File struct {
	Name  string
	lines []string
}

// NewFile splits src into lines and associates them with name.
func NewFile(name string, src []byte) *File {
	return &File{Name: name, lines: splitLines(string(src))}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// Line returns the 1-based nth line of the file.
func (f *File) Line(n int) (string, bool) {
	if f == nil || n < 1 || n > len(f.lines) {
		return "", false
	}
	return f.lines[n-1], true
}
