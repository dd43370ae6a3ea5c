package reader

import (
	"fmt"
	"strconv"
	"unicode"
)

// TokenType identifies a lexical token.
type TokenType int

const (
	TokLParen TokenType = iota
	TokRParen
	TokNumber
	TokSymbol
	TokEOF
)

var tokenNames = map[TokenType]string{
	TokLParen: "'('",
	TokRParen: "')'",
	TokNumber: "number",
	TokSymbol: "function name",
	TokEOF:    "end of input",
}

func (t TokenType) String() string { return tokenNames[t] }

// Token is one lexeme with its 1-based source position.
type Token struct {
	Type   TokenType
	Text   string
	Number float64
	Line   int
	Col    int
}

// Lexer splits source text into tokens. Whitespace and ';' line comments are
// skipped.
type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

func NewLexer(src string) *Lexer {
	return &Lexer{input: []rune(src), line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.peek()
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.input) {
		c := l.peek()
		switch {
		case c == ';':
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		case unicode.IsSpace(c):
			l.advance()
		default:
			return
		}
	}
}

// Next returns the next token, or a *SyntaxError for an invalid lexeme.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	tok := Token{Line: l.line, Col: l.col}
	if l.pos >= len(l.input) {
		tok.Type = TokEOF
		return tok, nil
	}

	c := l.peek()
	switch {
	case c == '(':
		l.advance()
		tok.Type, tok.Text = TokLParen, "("
		return tok, nil
	case c == ')':
		l.advance()
		tok.Type, tok.Text = TokRParen, ")"
		return tok, nil
	case isDigit(c), (c == '+' || c == '-' || c == '.') && (isDigit(l.peekAt(1)) || l.peekAt(1) == '.'):
		return l.number(tok)
	case isSymbolStart(c):
		start := l.pos
		for l.pos < len(l.input) && isSymbolPart(l.peek()) {
			l.advance()
		}
		tok.Type, tok.Text = TokSymbol, string(l.input[start:l.pos])
		return tok, nil
	default:
		l.advance()
		return tok, &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf("unexpected character %q", c)}
	}
}

// number scans [+-]?digits[.digits][(e|E)[+-]digits].
func (l *Lexer) number(tok Token) (Token, error) {
	start := l.pos
	if c := l.peek(); c == '+' || c == '-' {
		l.advance()
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		l.advance()
		if c := l.peek(); c == '+' || c == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	clean := l.pos >= len(l.input) || isDelimiter(l.peek())
	for l.pos < len(l.input) && !isDelimiter(l.peek()) {
		l.advance()
	}
	text := string(l.input[start:l.pos])
	v, err := strconv.ParseFloat(text, 64)
	if !clean || err != nil {
		return tok, &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf("invalid number %q", text)}
	}
	tok.Type, tok.Text, tok.Number = TokNumber, text, v
	return tok, nil
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isSymbolStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSymbolPart(c rune) bool { return isSymbolStart(c) || isDigit(c) }

func isDelimiter(c rune) bool {
	return c == '(' || c == ')' || c == ';' || unicode.IsSpace(c)
}
