package transpiler

import (
	"fmt"
	"strings"
	"unicode"
)

// keywords is the reserved-word set. "true" and "false" are absent on
// purpose: they lex as BOOLEAN, not KEYWORD.
var keywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true,
	"const": true, "continue": true, "default": true, "do": true,
	"double": true, "else": true, "enum": true, "extern": true,
	"float": true, "for": true, "goto": true, "if": true,
	"int": true, "long": true, "register": true, "return": true,
	"short": true, "signed": true, "sizeof": true, "static": true,
	"struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"bool": true,
}

// typeKeywords is the subset that can open a declaration.
var typeKeywords = map[string]bool{
	"int": true, "float": true, "double": true, "char": true,
	"void": true, "long": true, "short": true, "unsigned": true,
	"signed": true, "bool": true,
}

// threeCharOps and twoCharOps are tried longest match first.
var threeCharOps = []string{"...", "<<=", ">>="}

var twoCharOps = []string{
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=",
	"&&", "||", "->", "++", "--", "<<", ">>", "&=", "|=", "^=",
	".*", "::",
}

const singleCharOps = "+-*/%=<>!&|^~?:."

const symbolChars = ";,(){}[]"

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src    []rune
	pos    int // index of the next rune to consume
	line   int // current 1-based source line
	col    int // current 1-based source column
	macros []MacroDefinition
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// peekAt returns the rune n positions ahead of the current position.
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// An unterminated comment simply runs out at EOF; the scan continues.
func (l *Lexer) skipBlockComment() {
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return
		}
		l.advance()
	}
}

// skipDirective consumes a preprocessor line starting after '#', honoring
// backslash-newline continuation, and captures #define directives.
func (l *Lexer) skipDirective() {
	line := l.line
	var text strings.Builder
	for l.pos < len(l.src) {
		r := l.peek()
		if r == '\\' && l.peek2() == '\n' {
			l.advance()
			l.advance()
			text.WriteByte(' ')
			continue
		}
		if r == '\n' {
			break
		}
		text.WriteRune(l.advance())
	}

	body := strings.TrimSpace(text.String())
	if after, ok := strings.CutPrefix(body, "define"); ok {
		if after == "" || after[0] == ' ' || after[0] == '\t' {
			l.macros = append(l.macros, parseDefine(after, line))
		}
	}
}

// scanIdent collects an identifier, keyword, or boolean literal.
func (l *Lexer) scanIdent() Token {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	text := string(l.src[start:l.pos])
	switch {
	case text == "true" || text == "false":
		return Token{Type: BOOLEAN, Text: text, Line: line, Column: col}
	case keywords[text]:
		return Token{Type: KEYWORD, Text: text, Line: line, Column: col}
	}
	return Token{Type: IDENTIFIER, Text: text, Line: line, Column: col}
}

// scanNumber collects an integer or float literal. A dot only extends the
// number when followed by a digit or a complete exponent marker; otherwise
// the integer scanned so far is returned and the dot is left for the next
// token. Likewise an exponent 'e'/'E' without digits is left unconsumed.
func (l *Lexer) scanNumber() Token {
	line, col := l.line, l.col
	start := l.pos
	isFloat := false

	for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' {
		next := l.peek2()
		if unicode.IsDigit(next) {
			l.advance() // .
			for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
				l.advance()
			}
			isFloat = true
		} else if next == 'e' || next == 'E' {
			// "1.e5" is a float only when the exponent is complete.
			off := 2
			if l.peekAt(off) == '+' || l.peekAt(off) == '-' {
				off++
			}
			if unicode.IsDigit(l.peekAt(off)) {
				l.advance() // .
				isFloat = true
			}
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		off := 1
		if l.peekAt(off) == '+' || l.peekAt(off) == '-' {
			off++
		}
		if unicode.IsDigit(l.peekAt(off)) {
			for off > 0 {
				l.advance()
				off--
			}
			for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
				l.advance()
			}
			isFloat = true
		}
	}

	tt := INTEGER
	if isFloat {
		tt = FLOAT
	}
	return Token{Type: tt, Text: string(l.src[start:l.pos]), Line: line, Column: col}
}

// decodeEscape maps an escape character to its decoded rune. Unrecognized
// escapes pass the character itself through.
func decodeEscape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case '0':
		return 0
	default:
		return r
	}
}

// scanString collects a string literal "...". The Text of the returned
// token holds the decoded value. An unterminated literal becomes an ERROR
// token preserving the partial text in the message.
func (l *Lexer) scanString() Token {
	line, col := l.line, l.col
	l.advance() // consume opening "
	var val []rune

	for l.pos < len(l.src) {
		r := l.peek()
		if r == '"' {
			l.advance()
			return Token{Type: STRING, Text: string(val), Line: line, Column: col}
		}
		if r == '\n' {
			break
		}
		if r == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				break
			}
			val = append(val, decodeEscape(l.advance()))
			continue
		}
		val = append(val, l.advance())
	}

	msg := fmt.Sprintf("unterminated string literal %q on line %d", string(val), line)
	return Token{Type: ERROR, Text: msg, Line: line, Column: col}
}

// scanChar collects a character literal '...'. An empty literal is an
// error; multi-character content is accepted as long as a closing quote
// appears before the end of line.
func (l *Lexer) scanChar() Token {
	line, col := l.line, l.col
	l.advance() // consume opening '

	if l.peek() == '\'' {
		l.advance()
		return Token{Type: ERROR, Text: fmt.Sprintf("empty character literal on line %d", line), Line: line, Column: col}
	}

	var val []rune
	for l.pos < len(l.src) {
		r := l.peek()
		if r == '\'' {
			l.advance()
			return Token{Type: CHAR, Text: string(val), Line: line, Column: col}
		}
		if r == '\n' {
			break
		}
		if r == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				break
			}
			val = append(val, decodeEscape(l.advance()))
			continue
		}
		val = append(val, l.advance())
	}

	msg := fmt.Sprintf("unterminated character literal on line %d", line)
	return Token{Type: ERROR, Text: msg, Line: line, Column: col}
}

// scanOperator matches the longest operator at the current position.
// The caller guarantees at least a single-character operator matches.
func (l *Lexer) scanOperator() Token {
	line, col := l.line, l.col

	if l.pos+2 < len(l.src) {
		three := string(l.src[l.pos : l.pos+3])
		for _, op := range threeCharOps {
			if three == op {
				l.advance()
				l.advance()
				l.advance()
				return Token{Type: OPERATOR, Text: op, Line: line, Column: col}
			}
		}
	}
	if l.pos+1 < len(l.src) {
		two := string(l.src[l.pos : l.pos+2])
		for _, op := range twoCharOps {
			if two == op {
				l.advance()
				l.advance()
				return Token{Type: OPERATOR, Text: op, Line: line, Column: col}
			}
		}
	}
	return Token{Type: OPERATOR, Text: string(l.advance()), Line: line, Column: col}
}

// nextToken skips whitespace, comments, and preprocessor lines, then
// returns the next Token. It never fails: unrecognized input becomes an
// ERROR token and the cursor moves past it.
func (l *Lexer) nextToken() Token {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return Token{Type: EOF, Text: "", Line: l.line, Column: l.col}
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			l.advance()
			l.advance()
			l.skipBlockComment()
			continue
		}
		if l.peek() == '#' {
			l.advance()
			l.skipDirective()
			continue
		}
		break
	}

	ch := l.peek()
	line, col := l.line, l.col

	switch {
	case unicode.IsLetter(ch) || ch == '_':
		return l.scanIdent()
	case unicode.IsDigit(ch):
		return l.scanNumber()
	case ch == '.' && unicode.IsDigit(l.peek2()):
		return l.scanNumber()
	case ch == '"':
		return l.scanString()
	case ch == '\'':
		return l.scanChar()
	case strings.ContainsRune(symbolChars, ch):
		l.advance()
		return Token{Type: SYMBOL, Text: string(ch), Line: line, Column: col}
	case strings.ContainsRune(singleCharOps, ch):
		return l.scanOperator()
	}

	l.advance()
	msg := fmt.Sprintf("unexpected character %q on line %d", ch, line)
	return Token{Type: ERROR, Text: msg, Line: line, Column: col}
}

// Lex tokenises src and returns all tokens, ending with exactly one EOF
// token, plus any #define directives captured along the way. Lexing is
// total: illegal input surfaces as ERROR tokens, never as a failure.
func Lex(src string) ([]Token, []MacroDefinition) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, l.macros
		}
	}
}
