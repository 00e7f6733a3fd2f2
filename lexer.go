// lexer.go: single forward pass over norem source, producing a token slice.
package norem

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LROUND    // "("
	RROUND    // ")"
	LSQUARE   // "["
	RSQUARE   // "]"
	LCURLY    // "{"
	RCURLY    // "}"
	COLON     // ":"
	COMMA     // ","
	SEMICOLON // ";"
	PIPE      // "|"
	ASSIGN    // "="
	FATARROW  // "=>"
	ARROW     // "->"

	// Literals & identifiers
	ID
	INTEGER
	INTRINSIC // "@name"
	DIRECTIVE // "#name"

	// Keywords
	BEGIN
	END
	IN
	EXTERN
	DATA
	FUNCTION
	CASE
	OF
	LET
)

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for INTEGER, name for INTRINSIC/DIRECTIVE
	Line    int         // 1-based
	Col     int         // 0-based
}

// keywords map
var keywords = map[string]TokenType{
	"begin":  BEGIN,
	"end":    END,
	"in":     IN,
	"extern": EXTERN,
	"data":   DATA,
	"fun":    FUNCTION,
	"case":   CASE,
	"of":     OF,
	"let":    LET,
}

// Lexer scans a norem source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

// Scan consumes the entire input and returns the token slice, terminated by
// an EOF token. The input is read exactly once, front to back.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		l.skipWhitespace()
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		if l.isAtEnd() {
			l.addToken(EOF, nil)
			return l.tokens, nil
		}
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
}

func (l *Lexer) scanToken() error {
	ch, _ := l.advance()
	switch ch {
	case '(':
		l.addToken(LROUND, nil)
	case ')':
		l.addToken(RROUND, nil)
	case '[':
		l.addToken(LSQUARE, nil)
	case ']':
		l.addToken(RSQUARE, nil)
	case '{':
		l.addToken(LCURLY, nil)
	case '}':
		l.addToken(RCURLY, nil)
	case ':':
		l.addToken(COLON, nil)
	case ',':
		l.addToken(COMMA, nil)
	case ';':
		l.addToken(SEMICOLON, nil)
	case '|':
		l.addToken(PIPE, nil)
	case '=':
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			l.addToken(FATARROW, nil)
		} else {
			l.addToken(ASSIGN, nil)
		}
	case '-':
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			l.addToken(ARROW, nil)
			return nil
		}
		return l.err("unexpected character '-' (did you mean '->'?)")
	case '@':
		name, err := l.scanMarkedName("intrinsic")
		if err != nil {
			return err
		}
		l.addToken(INTRINSIC, name)
	case '#':
		name, err := l.scanMarkedName("directive")
		if err != nil {
			return err
		}
		l.addToken(DIRECTIVE, name)
	default:
		switch {
		case isDigit(ch):
			return l.scanInteger()
		case isAlpha(ch):
			l.scanIdent()
		default:
			return l.err(fmt.Sprintf("unrecognized character %q", string(ch)))
		}
	}
	return nil
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
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// ----- errors -----

// LexError reports an unrecognized or malformed lexeme with its position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

// scanInteger parses a run of decimal digits into an int64 literal.
func (l *Lexer) scanInteger() error {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); ok && isAlpha(b) {
		return l.err("identifier may not start with a digit")
	}
	var n int64
	for i := l.start; i < l.cur; i++ {
		d := int64(l.src[i] - '0')
		if n > (1<<63-1-d)/10 {
			return l.err("integer literal overflows int64")
		}
		n = n*10 + d
	}
	l.addToken(INTEGER, n)
	return nil
}

// scanIdent consumes an identifier or keyword starting at l.start.
func (l *Lexer) scanIdent() {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	word := l.src[l.start:l.cur]
	if kw, ok := keywords[word]; ok {
		l.addToken(kw, nil)
		return
	}
	l.addToken(ID, word)
}

// scanMarkedName reads the identifier that must follow an '@' or '#' marker.
func (l *Lexer) scanMarkedName(kind string) (string, error) {
	b, ok := l.peek()
	if !ok || !isAlpha(b) {
		return "", l.err(fmt.Sprintf("expected %s name after %q", kind, l.src[l.start:l.cur]))
	}
	nameStart := l.cur
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[nameStart:l.cur], nil
}
