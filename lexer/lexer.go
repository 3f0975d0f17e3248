package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/smalljs/token"
)

type Lexer struct {
	input   string
	pos     int // current position in input (points to current char)
	readPos int // current reading position (after current char)
	ch      rune
	line    int
	col     int
}

func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.readPos++
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.col++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) newline() {
	l.line++
	l.col = 0
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		if l.ch == '\n' {
			l.newline()
		}
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment reports false when the input ends inside the comment.
func (l *Lexer) skipBlockComment() bool {
	// skip past /*
	l.readChar()
	l.readChar()
	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '\n' {
			l.newline()
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
}

func (l *Lexer) skipWhitespaceAndComments() bool {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			if !l.skipBlockComment() {
				return false
			}
			continue
		}
		return true
	}
}

func (l *Lexer) NextToken() token.Token {
	line := l.line
	if !l.skipWhitespaceAndComments() {
		return token.Token{Type: token.Illegal, Literal: "unterminated comment", Line: line, Column: l.col}
	}

	line = l.line
	col := l.col

	tok := func(tt token.TokenType, lit string) token.Token {
		return token.Token{Type: tt, Literal: lit, Line: line, Column: col}
	}

	switch {
	case l.ch == 0:
		return tok(token.EOF, "")

	case l.ch == '(':
		l.readChar()
		return tok(token.LeftParen, "(")
	case l.ch == ')':
		l.readChar()
		return tok(token.RightParen, ")")
	case l.ch == '{':
		l.readChar()
		return tok(token.LeftBrace, "{")
	case l.ch == '}':
		l.readChar()
		return tok(token.RightBrace, "}")
	case l.ch == ';':
		l.readChar()
		return tok(token.Semicolon, ";")
	case l.ch == ':':
		l.readChar()
		return tok(token.Colon, ":")
	case l.ch == ',':
		l.readChar()
		return tok(token.Comma, ",")
	case l.ch == '.':
		l.readChar()
		return tok(token.Dot, ".")
	case l.ch == '+':
		l.readChar()
		return tok(token.Plus, "+")
	case l.ch == '-':
		l.readChar()
		return tok(token.Minus, "-")
	case l.ch == '*':
		l.readChar()
		return tok(token.Asterisk, "*")
	case l.ch == '/':
		l.readChar()
		return tok(token.Slash, "/")
	case l.ch == '%':
		l.readChar()
		return tok(token.Percent, "%")

	case l.ch == '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return tok(token.Equal, "==")
		}
		return tok(token.Assign, "=")

	case l.ch == '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return tok(token.NotEqual, "!=")
		}
		return tok(token.Illegal, "!")

	case l.ch == '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return tok(token.LessThanOrEqual, "<=")
		}
		return tok(token.LessThan, "<")

	case l.ch == '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return tok(token.GreaterThanOrEqual, ">=")
		}
		return tok(token.GreaterThan, ">")

	case l.ch == '"' || l.ch == '\'':
		return l.readString(line, col)

	case isDigit(l.ch):
		return l.readNumber(line, col)

	case isIdentStart(l.ch):
		return l.readIdentifier(line, col)

	default:
		ch := l.ch
		l.readChar()
		return tok(token.Illegal, string(ch))
	}
}

func (l *Lexer) readIdentifier(line, col int) token.Token {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.pos]
	return token.Token{Type: token.LookupIdentifier(literal), Literal: literal, Line: line, Column: col}
}

func (l *Lexer) readString(line, col int) token.Token {
	quote := l.ch
	l.readChar() // skip opening quote
	var buf strings.Builder

	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case '0':
				buf.WriteByte(0)
			case '\\', '\'', '"':
				buf.WriteRune(l.ch)
			case 0:
				return token.Token{Type: token.Illegal, Literal: "unterminated string", Line: line, Column: col}
			default:
				buf.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		buf.WriteRune(l.ch)
		l.readChar()
	}

	if l.ch != quote {
		return token.Token{Type: token.Illegal, Literal: "unterminated string", Line: line, Column: col}
	}
	l.readChar() // skip closing quote
	return token.Token{Type: token.String, Literal: buf.String(), Line: line, Column: col}
}

func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.pos
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if isIdentStart(l.ch) {
		for isIdentPart(l.ch) {
			l.readChar()
		}
		return token.Token{Type: token.Illegal, Literal: "invalid number " + l.input[start:l.pos], Line: line, Column: col}
	}
	return token.Token{Type: token.Number, Literal: l.input[start:l.pos], Line: line, Column: col}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}
