package tape

import (
	"strings"
	"unicode"
)

// TokenKind classifies a lexer token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline
	TokenWord
	TokenString
	TokenIllegal
)

// Token is one lexeme with the line it started on.
type Token struct {
	Kind    TokenKind
	Literal string
	Line    int
}

// Lexer splits a script into words, quoted strings and line breaks.
// Comments run from # to the end of the line.
type Lexer struct {
	src  []rune
	pos  int
	line int
}

// New returns a lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// Next returns the next token.
func (l *Lexer) Next() Token {
	for l.pos < len(l.src) {
		r := l.peek()
		if r == '\n' || !unicode.IsSpace(r) {
			break
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Line: l.line}
	}

	switch r := l.peek(); {
	case r == '\n':
		l.pos++
		l.line++
		return Token{Kind: TokenNewline, Line: l.line - 1}
	case r == '#':
		for l.pos < len(l.src) && l.peek() != '\n' {
			l.pos++
		}
		return l.Next()
	case r == '"':
		return l.readString()
	default:
		start := l.pos
		for l.pos < len(l.src) {
			r := l.peek()
			if unicode.IsSpace(r) || r == '#' || r == '"' {
				break
			}
			l.pos++
		}
		return Token{Kind: TokenWord, Literal: string(l.src[start:l.pos]), Line: l.line}
	}
}

func (l *Lexer) readString() Token {
	line := l.line
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case r == '"':
			l.pos++
			return Token{Kind: TokenString, Literal: sb.String(), Line: line}
		case r == '\n':
			return Token{Kind: TokenIllegal, Literal: "unterminated string", Line: line}
		case r == '\\' && l.pos+1 < len(l.src):
			l.pos++
			switch esc := l.peek(); esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(r)
		}
		l.pos++
	}
	return Token{Kind: TokenIllegal, Literal: "unterminated string", Line: line}
}
