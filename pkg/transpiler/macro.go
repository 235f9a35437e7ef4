package transpiler

import "strings"

// MacroDefinition records one #define directive captured during lexing.
// Malformed definitions are kept with Valid=false so the caller can report
// them instead of silently losing the line.
type MacroDefinition struct {
	Name           string
	IsFunctionLike bool
	Params         []string
	Body           string // raw replacement text, continuations collapsed
	Line           int    // 1-based line of the directive
	Valid          bool
}

// parseDefine splits the text after "#define" into a MacroDefinition.
// text has already had backslash-newline continuations collapsed to spaces.
func parseDefine(text string, line int) MacroDefinition {
	def := MacroDefinition{Line: line}

	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	start := i
	for i < len(text) && (isIdentByte(text[i]) || (i > start && isDigitByte(text[i]))) {
		i++
	}
	def.Name = text[start:i]
	if def.Name == "" {
		def.Body = strings.TrimSpace(text)
		return def
	}

	// A '(' immediately after the name (no space) makes the macro
	// function-like; otherwise the rest of the line is the body.
	if i < len(text) && text[i] == '(' {
		def.IsFunctionLike = true
		close := strings.IndexByte(text[i:], ')')
		if close < 0 {
			def.Body = strings.TrimSpace(text[i:])
			return def
		}
		paramText := text[i+1 : i+close]
		if strings.TrimSpace(paramText) != "" {
			for _, p := range strings.Split(paramText, ",") {
				p = strings.TrimSpace(p)
				if p == "" || !isIdentStart(p) {
					def.Body = strings.TrimSpace(text[i+close+1:])
					return def
				}
				def.Params = append(def.Params, p)
			}
		}
		i += close + 1
	}

	def.Body = strings.TrimSpace(text[i:])
	def.Valid = true
	return def
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(s string) bool {
	if s == "" || !isIdentByte(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentByte(s[i]) && !isDigitByte(s[i]) {
			return false
		}
	}
	return true
}
