package geocalc

import (
	"strings"
	"unicode"
)

// TokenType represents a type of a token.
type TokenType int

// token types.
const (
	TokEOF      TokenType = iota // End of input
	TokNumber                    // Numeric literal
	TokIdent                     // Lower-cased identifier
	TokOperator                  // One of + - * / ^
	TokLParen                    // Left parenthesis
	TokRParen                    // Right parenthesis
	TokComma                     // Comma
	TokDot                       // Property access dot
)

// String returns the name of a token type.
func (tt TokenType) String() string {
	switch tt {
	case TokEOF:
		return "end of input"
	case TokNumber:
		return "number"
	case TokIdent:
		return "identifier"
	case TokOperator:
		return "operator"
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	case TokComma:
		return ","
	case TokDot:
		return "."
	default:
		return "token"
	}
}

// Token is a lexical token of an expression.
type Token struct {
	Lit   string    // Literal text (identifiers are lower-cased)
	Type  TokenType // Type of the token
	Pos   int       // Rune offset in the input
	Index int       // Ordinal of the token
}

// lexer splits an expression into tokens.
type lexer struct {
	src  []rune  // Input runes
	out  []Token // Emitted tokens
	pos  int     // Current rune offset
	last int     // Offset after the last rune
}

// Tokenize converts an expression into a token sequence terminated by TokEOF.
func Tokenize(text string) ([]Token, error) {
	src := []rune(text)
	l := &lexer{src: src, last: len(src)}
	if err := l.run(); err != nil {
		return nil, err
	}

	return l.out, nil
}

// run tokenizes the whole input.
func (l *lexer) run() error {
	for {
		l.skipWhitespace()
		if l.pos >= l.last {
			l.emit(TokEOF, "", l.pos)
			return nil
		}

		start := l.pos
		ch := l.src[l.pos]

		switch ch {
		case '+', '-', '*', '/', '^':
			l.pos++
			l.emit(TokOperator, string(ch), start)
			continue
		case '×':
			l.pos++
			l.emit(TokOperator, "*", start)
			continue
		case '÷':
			l.pos++
			l.emit(TokOperator, "/", start)
			continue
		case 'π':
			l.pos++
			l.emit(TokIdent, "pi", start)
			continue
		case '(':
			l.pos++
			l.emit(TokLParen, "(", start)
			continue
		case ')':
			l.pos++
			l.emit(TokRParen, ")", start)
			continue
		case ',':
			l.pos++
			l.emit(TokComma, ",", start)
			continue
		}

		// A dot starts a number only when a digit follows.
		if isDigit(ch) || (ch == '.' && isDigit(l.peek(1))) {
			l.emit(TokNumber, l.readNumber(), start)
			continue
		}

		if ch == '.' {
			l.pos++
			l.emit(TokDot, ".", start)
			continue
		}

		if unicode.IsLetter(ch) {
			l.emit(TokIdent, l.readIdent(), start)
			continue
		}

		return newError(KindUnknownCharacter, start, "unknown character '%c'", ch)
	}
}

// emit appends a token.
func (l *lexer) emit(tt TokenType, lit string, pos int) {
	l.out = append(l.out, Token{Type: tt, Lit: lit, Pos: pos, Index: len(l.out)})
}

// peek returns the rune at offset off from the current position, or 0.
func (l *lexer) peek(off int) rune {
	i := l.pos + off
	if i < 0 || i >= l.last {
		return 0
	}

	return l.src[i]
}

// skipWhitespace skips whitespace characters.
func (l *lexer) skipWhitespace() {
	for l.pos < l.last && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
}

// readNumber reads digits, one optional fraction and an optional exponent.
func (l *lexer) readNumber() string {
	start := l.pos
	for isDigit(l.peek(0)) {
		l.pos++
	}

	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.pos++
		for isDigit(l.peek(0)) {
			l.pos++
		}
	}

	// Exponent is taken only when at least one digit follows the marker.
	if e := l.peek(0); e == 'e' || e == 'E' {
		off := 1
		if s := l.peek(1); s == '+' || s == '-' {
			off = 2
		}
		if isDigit(l.peek(off)) {
			l.pos += off
			for isDigit(l.peek(0)) {
				l.pos++
			}
		}
	}

	return string(l.src[start:l.pos])
}

// readIdent reads a maximal run of letters, lower-cased. The constructor stem
// "vec" absorbs one directly following digit.
func (l *lexer) readIdent() string {
	start := l.pos
	for l.pos < l.last && unicode.IsLetter(l.src[l.pos]) {
		l.pos++
	}

	word := strings.ToLower(string(l.src[start:l.pos]))
	if word == "vec" && isDigit(l.peek(0)) {
		word += string(l.src[l.pos])
		l.pos++
	}

	return word
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
