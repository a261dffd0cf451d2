// lexer.go — tokenizer for both Huckleberry surface syntaxes.
//
// One scanner feeds both grammars: parentheses open S-expressions, angle
// brackets open message sends, square brackets vectors, curly braces maps.
// Symbols may end in a colon, which lexes as a LABEL token (the keyword-label
// slot of a method name); a leading colon lexes a KEYWORD. `;` starts a line
// comment. Errors are *LexError with a 1-based line and 0-based column.
package huckleberry

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota

	LPAREN  // "("
	RPAREN  // ")"
	LANGLE  // "<"
	RANGLE  // ">"
	LSQUARE // "["
	RSQUARE // "]"
	LCURLY  // "{"
	RCURLY  // "}"
	AMP     // "&"

	STRING
	NUMBER
	SYMBOL
	LABEL   // "name:", Literal holds "name"
	KEYWORD // ":name", Literal holds ":name"
	BOOLEAN
	NIL
)

// Token is a lexical token with an optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Col     int
}

// LexError reports a scan failure. Line is 1-based, Col 0-based.
// Incomplete marks errors that more input could repair, such as an
// unterminated string; the REPL uses it to keep reading.
type LexError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("SyntaxError at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a Huckleberry source string into tokens.
type Lexer struct {
	src    string
	start  int
	cur    int
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Scan tokenizes the entire source and returns the tokens, EOF included.
func Scan(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isSymbolStart covers identifier letters plus the basic operators and
// _, !, ?, = so that `+`, `set!` and `number?` are ordinary symbols.
func isSymbolStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		b == '_' || b == '-' || b == '*' || b == '+' ||
		b == '!' || b == '?' || b == '/' || b == '='
}

func isSymbolChar(b byte) bool { return isSymbolStart(b) || isDigit(b) }

func (l *Lexer) skipBlanksAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
			l.start = l.cur
		case ';':
			for {
				b, ok := l.peek()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
			l.start = l.cur
		default:
			return
		}
	}
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipBlanksAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.advance()
	switch ch {
	case '(':
		return l.addToken(LPAREN, nil), nil
	case ')':
		return l.addToken(RPAREN, nil), nil
	case '<':
		return l.addToken(LANGLE, nil), nil
	case '>':
		return l.addToken(RANGLE, nil), nil
	case '[':
		return l.addToken(LSQUARE, nil), nil
	case ']':
		return l.addToken(RSQUARE, nil), nil
	case '{':
		return l.addToken(LCURLY, nil), nil
	case '}':
		return l.addToken(RCURLY, nil), nil
	case '&':
		return l.addToken(AMP, nil), nil
	case '"':
		return l.scanString()
	case ':':
		return l.scanKeyword()
	}

	if isDigit(ch) {
		return l.scanNumber()
	}
	if isSymbolStart(ch) {
		return l.scanSymbol()
	}
	return Token{}, l.err(fmt.Sprintf("unexpected character %q", ch))
}

// scanString reads a double-quoted string. Strings may span lines; there is
// no escape syntax in the language.
func (l *Lexer) scanString() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok {
			return Token{}, &LexError{
				Line: l.tokStartLine, Col: l.tokStartCol,
				Msg: "string was not terminated", Incomplete: true,
			}
		}
		l.advance()
		if b == '"' {
			return l.addToken(STRING, l.src[l.start+1:l.cur-1]), nil
		}
	}
}

// scanNumber reads digits with an optional fractional part.
func (l *Lexer) scanNumber() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); ok && b == '.' {
		if l.cur+1 < len(l.src) && isDigit(l.src[l.cur+1]) {
			l.advance() // '.'
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}
	lex := l.src[l.start:l.cur]
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return Token{}, l.err("invalid number " + lex)
	}
	return l.addToken(NUMBER, f), nil
}

// scanSymbol reads a symbol; a trailing colon turns it into a LABEL.
// `true`, `false` and `nil` are literal tokens, not symbols.
func (l *Lexer) scanSymbol() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok || !isSymbolChar(b) {
			break
		}
		l.advance()
	}
	name := l.src[l.start:l.cur]
	if b, ok := l.peek(); ok && b == ':' {
		l.advance()
		return l.addToken(LABEL, name), nil
	}
	switch name {
	case "true":
		return l.addToken(BOOLEAN, true), nil
	case "false":
		return l.addToken(BOOLEAN, false), nil
	case "nil":
		return l.addToken(NIL, nil), nil
	}
	return l.addToken(SYMBOL, name), nil
}

// scanKeyword reads ":name"; the literal keeps the colon.
func (l *Lexer) scanKeyword() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok || !isSymbolChar(b) {
			break
		}
		l.advance()
	}
	if l.cur-l.start < 2 {
		return Token{}, l.err("empty keyword")
	}
	return l.addToken(KEYWORD, l.src[l.start:l.cur]), nil
}
