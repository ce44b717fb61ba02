// Package scanner converts a source byte stream into a stream of tokens.
package scanner

import (
	"strconv"

	"golox/loxerr"
	"golox/token"
)

// Scan converts src into a token stream terminated by an EOF token.
// filename only names the returned *token.File; pass "" for REPL input.
// Scan always returns every token it managed to produce; err is
// non-nil iff at least one diagnostic was raised, joining every diagnostic
// from the whole source unit (scanning never stops at the first error).
func Scan(src []byte, filename string) ([]token.Token, *token.File, error) {
	s := &scanner{src: src, line: 1, file: token.NewFile(filename, src)}
	for {
		tok, ok := s.next()
		if ok {
			s.tokens = append(s.tokens, tok)
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return s.tokens, s.file, s.errs.Err()
}

type scanner struct {
	src     []byte
	start   int
	current int
	line    int
	file    *token.File
	tokens  []token.Token
	errs    loxerr.StaticList
}

func (s *scanner) atEnd() bool {
	return s.current >= len(s.src)
}

func (s *scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *scanner) lexeme() string {
	return string(s.src[s.start:s.current])
}

func (s *scanner) token(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: s.lexeme(), Line: s.line}
}

// next skips whitespace and comments, then scans and returns the next token,
// synthesising EOF at the end of input. ok is false when the scanned
// characters produced a diagnostic instead of a token (an unexpected
// character or an unterminated string); the caller appends nothing then.
func (s *scanner) next() (token.Token, bool) {
	s.skipWhitespaceAndComments()
	s.start = s.current
	if s.atEnd() {
		return token.Token{Kind: token.EOF, Lexeme: "", Line: s.line}, true
	}

	c := s.advance()
	switch c {
	case '(':
		return s.token(token.LeftParen), true
	case ')':
		return s.token(token.RightParen), true
	case '{':
		return s.token(token.LeftBrace), true
	case '}':
		return s.token(token.RightBrace), true
	case ',':
		return s.token(token.Comma), true
	case '.':
		return s.token(token.Dot), true
	case '-':
		return s.token(token.Minus), true
	case '+':
		return s.token(token.Plus), true
	case ';':
		return s.token(token.Semicolon), true
	case '*':
		return s.token(token.Star), true
	case '/':
		return s.token(token.Slash), true
	case '!':
		if s.match('=') {
			return s.token(token.BangEqual), true
		}
		return s.token(token.Bang), true
	case '=':
		if s.match('=') {
			return s.token(token.EqualEqual), true
		}
		return s.token(token.Equal), true
	case '<':
		if s.match('=') {
			return s.token(token.LessEqual), true
		}
		return s.token(token.Less), true
	case '>':
		if s.match('=') {
			return s.token(token.GreaterEqual), true
		}
		return s.token(token.Greater), true
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(c):
			return s.scanNumber(), true
		case isAlpha(c):
			return s.scanIdent(), true
		default:
			s.errs.Add(loxerr.NewStaticLine(s.line, "unexpected character: %s", string(c)))
			return token.Token{}, false
		}
	}
}

// skipWhitespaceAndComments advances past spaces, tabs, carriage returns,
// newlines (bumping the line counter), and `//` line comments.
func (s *scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *scanner) scanString() (token.Token, bool) {
	startLine := s.line
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.errs.Add(loxerr.NewStaticLine(startLine, "unterminated string"))
		return token.Token{}, false
	}
	s.advance() // closing quote
	value := string(s.src[s.start+1 : s.current-1])
	return token.Token{Kind: token.String, Lexeme: s.lexeme(), Literal: value, Line: startLine}, true
}

func (s *scanner) scanNumber() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := s.lexeme()
	value, _ := strconv.ParseFloat(lexeme, 64)
	return token.Token{Kind: token.Number, Lexeme: lexeme, Literal: value, Line: s.line}
}

func (s *scanner) scanIdent() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := s.lexeme()
	if kind, ok := token.Keywords[lexeme]; ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Line: s.line}
	}
	return token.Token{Kind: token.Ident, Lexeme: lexeme, Literal: lexeme, Line: s.line}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
