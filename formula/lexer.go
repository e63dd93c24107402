package formula

import (
	"errors"
	"fmt"
)

// TokenType represents the different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenCellRef
	TokenOperator
	TokenFunction
	TokenLeftParen
	TokenRightParen
	TokenComma
	TokenColon
)

// character classification constants. slightly easier to read.
const (
	charNull       = 0
	charTab        = '\t'
	charNewline    = '\n'
	charReturn     = '\r'
	charSpace      = ' '
	charQuote      = '"'
	charLParen     = '('
	charRParen     = ')'
	charAsterisk   = '*'
	charPlus       = '+'
	charComma      = ','
	charMinus      = '-'
	charPeriod     = '.'
	charSlash      = '/'
	charColon      = ':'
	charUnderscore = '_'
)

// Token represents a lexical token with position information
type Token struct {
	Type  TokenType
	Value string
	Pos   int // rune position in input
}

// Lexer tokenizes a formula body (the text after the leading '=',
// which the caller strips before tokenizing)
type Lexer struct {
	input string
	runes []rune // UTF-8 aware representation
	pos   int
}

// NewLexer creates a new lexer for the given formula body
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		runes: []rune(input),
		pos:   0,
	}
}

// Tokenize tokenizes the entire input. the returned sequence always
// terminates in exactly one EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		l.skipWhitespace()
		if l.pos >= len(l.runes) {
			break
		}
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	tokens = append(tokens, Token{Type: TokenEOF, Pos: l.pos})
	return tokens, nil
}

// nextToken scans the next token from the input. scanning rules apply in
// priority order, greedily maximal-munch.
func (l *Lexer) nextToken() (Token, error) {
	startPos := l.pos
	ch := l.current()

	// number literal: digits, or a leading '.' directly followed by a digit
	if l.isDigit(ch) || (ch == charPeriod && l.isDigit(l.peek(1))) {
		return l.scanNumber(), nil
	}

	// string literal
	if ch == charQuote {
		return l.scanString()
	}

	// identifiers: functions and cell references
	if l.isAlpha(ch) {
		return l.scanIdentifier()
	}

	// single-character tokens
	switch ch {
	case charLParen:
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: startPos}, nil
	case charRParen:
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: startPos}, nil
	case charComma:
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: startPos}, nil
	case charColon:
		l.pos++
		return Token{Type: TokenColon, Value: ":", Pos: startPos}, nil
	case charPlus, charMinus, charAsterisk, charSlash:
		l.pos++
		return Token{Type: TokenOperator, Value: string(ch), Pos: startPos}, nil
	}

	return Token{}, fmt.Errorf("无法识别的字符: %c", ch)
}

// helper methods for character navigation and classification

func (l *Lexer) substring(start, end int) string {
	if start < 0 || end > len(l.runes) || start > end {
		return ""
	}
	return string(l.runes[start:end])
}

func (l *Lexer) current() rune {
	if l.pos >= len(l.runes) {
		return charNull
	}
	return l.runes[l.pos]
}

func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos >= len(l.runes) || pos < 0 {
		return charNull
	}
	return l.runes[pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.runes) {
		ch := l.current()
		if ch == charSpace || ch == charTab || ch == charNewline || ch == charReturn {
			l.pos++
		} else {
			break
		}
	}
}

func (l *Lexer) isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func (l *Lexer) isAlphaNumeric(ch rune) bool {
	return l.isAlpha(ch) || l.isDigit(ch)
}

// scanNumber scans a number token: one or more digits with at most one
// decimal point
func (l *Lexer) scanNumber() Token {
	startPos := l.pos

	for l.pos < len(l.runes) && l.isDigit(l.current()) {
		l.pos++
	}

	if l.current() == charPeriod && l.isDigit(l.peek(1)) {
		l.pos++ // consume '.'
		for l.pos < len(l.runes) && l.isDigit(l.current()) {
			l.pos++
		}
	}

	return Token{Type: TokenNumber, Value: l.substring(startPos, l.pos), Pos: startPos}
}

// scanString scans a string literal. no escape sequences are recognized:
// the first '"' after the opening one closes the string.
func (l *Lexer) scanString() (Token, error) {
	startPos := l.pos
	l.pos++ // consume opening quote

	contentStart := l.pos
	for l.pos < len(l.runes) {
		if l.current() == charQuote {
			value := l.substring(contentStart, l.pos)
			l.pos++ // consume closing quote
			return Token{Type: TokenString, Value: value, Pos: startPos}, nil
		}
		l.pos++
	}

	return Token{}, errors.New("未结束的字符串")
}

// scanIdentifier scans one or more letters followed by letters, digits or
// underscores, then classifies the result: a following '(' makes it a
// function name; otherwise it must have the cell reference shape.
func (l *Lexer) scanIdentifier() (Token, error) {
	startPos := l.pos

	for l.pos < len(l.runes) && (l.isAlphaNumeric(l.current()) || l.current() == charUnderscore) {
		l.pos++
	}

	value := l.substring(startPos, l.pos)

	if l.current() == charLParen {
		return Token{Type: TokenFunction, Value: value, Pos: startPos}, nil
	}

	if isCellID(value) {
		return Token{Type: TokenCellRef, Value: value, Pos: startPos}, nil
	}

	return Token{}, fmt.Errorf("无效的标识符: %s", value)
}
