package transpiler

// Result bundles everything one transpile invocation produced. Every field
// is always populated: the pipeline degrades instead of failing, so a
// caller can render tokens, tree, and output even for broken input.
type Result struct {
	Tokens      []Token
	Macros      []MacroDefinition
	Program     *Program
	Python      string
	Diagnostics []string
}

// Transpile runs the full pipeline over src: lex, parse, generate. Each
// call owns its token slice and tree exclusively; nothing is shared across
// invocations.
func Transpile(src string) Result {
	tokens, macros := Lex(src)
	prog, parseDiags := Parse(tokens)
	python, genDiags := Generate(prog, macros)

	diags := append(parseDiags, genDiags...)

	return Result{
		Tokens:      tokens,
		Macros:      macros,
		Program:     prog,
		Python:      python,
		Diagnostics: diags,
	}
}
