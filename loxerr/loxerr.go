// Package loxerr implements the two error families described by the
// language: static errors (scanning, parsing, resolving) and runtime errors
// (raised while the tree is being evaluated).
package loxerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"golox/token"
)

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed)
)

// Static describes a single scan/parse/resolve diagnostic.
//
// It formats as `[line N] Error <where>: <message>`, matching the format
// mandated for static errors. `where` is either "at end" or "at '<lexeme>'".
type Static struct {
	Line    int
	Where   string
	Message string
}

// NewStaticAt builds a Static error attributed to tok, computing Where from
// whether tok is the EOF token.
func NewStaticAt(tok token.Token, format string, args ...any) *Static {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = "at end"
	}
	return &Static{Line: tok.Line, Where: where, Message: fmt.Sprintf(format, args...)}
}

// NewStaticLine builds a Static error attributed to a line directly, with no
// particular token (used by the scanner, which reports before any token
// exists).
func NewStaticLine(line int, format string, args ...any) *Static {
	return &Static{Line: line, Where: "", Message: fmt.Sprintf(format, args...)}
}

func (e *Static) Error() string {
	where := e.Where
	if where != "" {
		where = " " + where
	}
	return fmt.Sprintf("[line %d] %s%s: %s", e.Line, bold.Sprint(red.Sprint("Error")), where, e.Message)
}

// StaticList accumulates Static errors across a single scan/parse/resolve
// pass so that every diagnostic in a source unit can be reported, not just
// the first.
type StaticList struct {
	errs []*Static
}

// Add appends a Static error to the list.
func (l *StaticList) Add(err *Static) {
	l.errs = append(l.errs, err)
}

// Len reports how many errors have accumulated.
func (l *StaticList) Len() int {
	return len(l.errs)
}

// Err returns the accumulated errors joined with errors.Join, or nil if
// none were added.
func (l *StaticList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	errs := make([]error, len(l.errs))
	for i, e := range l.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Runtime describes an error raised while a program is being evaluated:
// mismatched operand types, undefined variables/properties, wrong arity, a
// bad callee, or a bad superclass.
//
// It formats as `<message>\n[line N]`, matching the format mandated for
// runtime errors.
type Runtime struct {
	Tok     token.Token
	Message string
}

// NewRuntime builds a Runtime error attributed to tok's line.
func NewRuntime(tok token.Token, format string, args ...any) *Runtime {
	return &Runtime{Tok: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *Runtime) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Tok.Line)
}

// Context renders a short, colourised caret diagnostic pointing at the
// offending token within its source line. It's informational only: Error()
// alone already produces the message format callers rely on; Context is a
// separate, optional rendering for a caller that holds the *token.File to
// pull source text from.
func Context(file *token.File, tok token.Token) string {
	if file == nil || tok.IsZero() {
		return ""
	}
	line, ok := file.Line(tok.Line)
	if !ok {
		return ""
	}
	col := strings.Index(line, tok.Lexeme)
	if col < 0 {
		col = 0
	}
	pad := runewidth.StringWidth(line[:col])
	caret := strings.Repeat("~", max(1, runewidth.StringWidth(tok.Lexeme)))
	return fmt.Sprintf("%s\n%s%s", line, strings.Repeat(" ", pad), red.Sprint(caret))
}
