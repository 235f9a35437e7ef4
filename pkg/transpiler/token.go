package transpiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	KEYWORD    // reserved word such as "int", "while", "return"
	IDENTIFIER // variable / function name
	INTEGER    // integer literal
	FLOAT      // floating-point literal
	STRING     // string literal "..." (Text holds the decoded value)
	CHAR       // character literal '...' (Text holds the decoded value)
	BOOLEAN    // "true" or "false"
	OPERATOR   // one of the operator lexemes, longest match first
	SYMBOL     // punctuation: ; , ( ) { } [ ]
	ERROR      // scan failure; Text holds the message, not source text
	UNKNOWN    // reserved for callers that need an out-of-band tag
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	KEYWORD:    "KEYWORD",
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	CHAR:       "CHAR",
	BOOLEAN:    "BOOLEAN",
	OPERATOR:   "OPERATOR",
	SYMBOL:     "SYMBOL",
	ERROR:      "ERROR",
	UNKNOWN:    "UNKNOWN",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer. Tokens are immutable
// once created; the parser indexes the finished slice and never mutates it.
type Token struct {
	Type   TokenType
	Text   string // the matched source text (decoded for STRING/CHAR)
	Line   int    // 1-based source line
	Column int    // 1-based source column of the first character
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-20q  line %d, col %d", t.Type, t.Text, t.Line, t.Column)
}
