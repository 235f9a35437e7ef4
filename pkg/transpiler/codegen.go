package transpiler

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeGen walks an AST and emits Python source text. Indentation is passed
// explicitly to every rule; the struct itself only accumulates output and
// diagnostics, so each node renders the same regardless of visit order.
type CodeGen struct {
	out       strings.Builder
	diags     []string
	codeLines int // statements emitted so far; comments do not count
}

const indentUnit = "    "

func newCodeGen() *CodeGen {
	return &CodeGen{}
}

// line emits one indented statement line.
func (cg *CodeGen) line(indent int, format string, args ...any) {
	cg.out.WriteString(strings.Repeat(indentUnit, indent))
	fmt.Fprintf(&cg.out, format+"\n", args...)
	cg.codeLines++
}

// comment emits one indented comment line. Comment-only suites are not
// valid Python blocks, so comments deliberately do not count as emitted
// statements for the empty-body rule.
func (cg *CodeGen) comment(indent int, format string, args ...any) {
	cg.out.WriteString(strings.Repeat(indentUnit, indent))
	fmt.Fprintf(&cg.out, "# "+format+"\n", args...)
}

func (cg *CodeGen) warn(format string, args ...any) {
	cg.diags = append(cg.diags, fmt.Sprintf(format, args...))
}

// nodeKind names an AST node for diagnostics, e.g. "ForStmt".
func nodeKind(n any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*transpiler.")
}

// pyQuote re-escapes a decoded literal value for a double-quoted Python
// string. Source escaping is never passed through: the escape grammars of
// the two languages differ.
func pyQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

//  Expressions

// genExpr renders an expression to Python text.
func (cg *CodeGen) genExpr(e Expr) string {
	switch n := e.(type) {
	case *Identifier:
		return n.Name
	case *NumberLiteral:
		return n.Text
	case *StringLiteral:
		return pyQuote(n.Value)
	case *CharLiteral:
		return pyQuote(n.Value)
	case *BooleanLiteral:
		if n.Value {
			return "True"
		}
		return "False"
	case *BinaryExpr:
		op := n.Op
		switch op {
		case "&&":
			op = "and"
		case "||":
			op = "or"
		}
		return fmt.Sprintf("(%s %s %s)", cg.genExpr(n.Left), op, cg.genExpr(n.Right))
	case *UnaryExpr:
		return cg.genUnary(n)
	case *AssignExpr:
		// Assignment in expression position, e.g. if (x = 5).
		return fmt.Sprintf("(%s := %s)", cg.genExpr(n.Target), cg.genExpr(n.Value))
	case *FunctionCall:
		var args []string
		for _, a := range n.Args {
			args = append(args, cg.genExpr(a))
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
	case *ArraySubscript:
		return fmt.Sprintf("%s[%s]", cg.genExpr(n.Array), cg.genExpr(n.Index))
	case nil:
		return ""
	default:
		cg.warn("unsupported expression node %s", nodeKind(e))
		return "None"
	}
}

func (cg *CodeGen) genUnary(n *UnaryExpr) string {
	switch n.Op {
	case "!":
		return fmt.Sprintf("(not %s)", cg.genExpr(n.Operand))
	case "-":
		return fmt.Sprintf("(-%s)", cg.genExpr(n.Operand))
	case "&":
		// Address-of has no Python meaning outside scanf arguments.
		cg.warn("address-of operator dropped in expression context")
		return cg.genExpr(n.Operand)
	case "++", "--":
		// Only meaningful as a statement; Python has no increment
		// expression, so the operand value stands in.
		cg.warn("increment/decrement in expression context dropped")
		return cg.genExpr(n.Operand)
	default:
		cg.warn("unsupported unary operator %q", n.Op)
		return cg.genExpr(n.Operand)
	}
}

// genExprAsStmt emits an expression evaluated at statement level, folding
// assignments and increments into their Python statement forms.
func (cg *CodeGen) genExprAsStmt(e Expr, indent int) {
	switch n := e.(type) {
	case *AssignExpr:
		cg.line(indent, "%s = %s", cg.genExpr(n.Target), cg.genExpr(n.Value))
	case *UnaryExpr:
		if n.Op == "++" {
			cg.line(indent, "%s += 1", cg.genExpr(n.Operand))
			return
		}
		if n.Op == "--" {
			cg.line(indent, "%s -= 1", cg.genExpr(n.Operand))
			return
		}
		cg.line(indent, "%s", cg.genExpr(n))
	default:
		cg.line(indent, "%s", cg.genExpr(e))
	}
}

//  Statements

// genStmt renders one statement at the given indent.
func (cg *CodeGen) genStmt(s Stmt, indent int) {
	switch n := s.(type) {
	case *ExprStmt:
		cg.genExprAsStmt(n.Expr, indent)
	case *VariableDecl:
		cg.genVariableDecl(n, indent)
	case *ArrayDecl:
		cg.line(indent, "%s = [%s] * (%s)", n.Name, zeroValue(n.ElementType), cg.genExpr(n.Size))
	case *FunctionDecl:
		cg.genFunctionDecl(n, indent)
	case *BlockStmt:
		// Python has no bare block scope; the statements inline.
		for _, sub := range n.Stmts {
			cg.genStmt(sub, indent)
		}
	case *IfStmt:
		cg.genIf(n, indent)
	case *WhileStmt:
		cg.line(indent, "while %s:", cg.genCond(n.Condition))
		cg.genBody(n.Body, indent+1)
	case *ForStmt:
		cg.genFor(n, indent)
	case *ReturnStmt:
		if n.Expr == nil {
			cg.line(indent, "return")
		} else {
			cg.line(indent, "return %s", cg.genExpr(n.Expr))
		}
	case *BreakStmt:
		cg.line(indent, "break")
	case *ContinueStmt:
		cg.line(indent, "continue")
	case *PrintfStmt:
		cg.genPrintf(n, indent)
	case *ScanfStmt:
		cg.genScanf(n, indent)
	default:
		cg.warn("unsupported statement node %s", nodeKind(s))
		cg.comment(indent, "unsupported: %s", nodeKind(s))
	}
}

// genCond renders a condition, stripping one redundant layer of parens
// since the emitted keyword already delimits it.
func (cg *CodeGen) genCond(e Expr) string {
	text := cg.genExpr(e)
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		return text[1 : len(text)-1]
	}
	return text
}

// genBody renders a branch or loop body one level deeper, emitting "pass"
// when the body produced no statements so the suite stays valid Python.
func (cg *CodeGen) genBody(body Stmt, indent int) {
	before := cg.codeLines
	if body != nil {
		cg.genStmt(body, indent)
	}
	if cg.codeLines == before {
		cg.line(indent, "pass")
	}
}

func zeroValue(typeName string) string {
	switch typeName {
	case "float", "double":
		return "0.0"
	case "char":
		return `""`
	case "bool":
		return "False"
	default:
		return "0"
	}
}

func (cg *CodeGen) genVariableDecl(n *VariableDecl, indent int) {
	if n.Init != nil {
		cg.line(indent, "%s = %s", n.Name, cg.genExpr(n.Init))
		return
	}
	cg.line(indent, "%s = %s", n.Name, zeroValue(n.Type))
}

func (cg *CodeGen) genFunctionDecl(n *FunctionDecl, indent int) {
	if n.Body == nil {
		cg.comment(indent, "forward declaration of %s omitted", n.Name)
		return
	}
	var names []string
	for _, p := range n.Params {
		names = append(names, p.Name)
	}
	cg.line(indent, "def %s(%s):", n.Name, strings.Join(names, ", "))
	cg.genBody(n.Body, indent+1)
}

// genIf flattens an else-if chain into elif clauses by iterating the else
// links instead of recursing into nested else blocks.
func (cg *CodeGen) genIf(n *IfStmt, indent int) {
	cg.line(indent, "if %s:", cg.genCond(n.Condition))
	cg.genBody(n.Body, indent+1)

	cur := n.ElseBody
	for cur != nil {
		next, isIf := cur.(*IfStmt)
		if isIf {
			cg.line(indent, "elif %s:", cg.genCond(next.Condition))
			cg.genBody(next.Body, indent+1)
			cur = next.ElseBody
			continue
		}
		cg.line(indent, "else:")
		cg.genBody(cur, indent+1)
		return
	}
}

//  For loops

// countingLoop is a recognized canonical for-loop: one variable bound to a
// simple start, compared against a simple bound, stepped by a constant.
type countingLoop struct {
	varName string
	start   Expr
	cmpOp   string
	bound   Expr
	step    int
}

// simpleOperand reports whether e can safely appear in a range() argument:
// an integer literal, an identifier, or a negated integer literal.
func simpleOperand(e Expr) bool {
	switch n := e.(type) {
	case *NumberLiteral:
		return !n.IsFloat
	case *Identifier:
		return true
	case *UnaryExpr:
		if n.Op != "-" || n.Postfix {
			return false
		}
		num, ok := n.Operand.(*NumberLiteral)
		return ok && !num.IsFloat
	}
	return false
}

// matchCountingLoop checks all three clauses of a for-loop against the
// canonical counting shape for one shared variable. A partial match is a
// non-match: the caller must fall back to the while form rather than emit
// a range() that iterates differently.
func matchCountingLoop(f *ForStmt) (countingLoop, bool) {
	var loop countingLoop

	// Initializer: "int i = start" or "i = start".
	switch init := f.Init.(type) {
	case *VariableDecl:
		if init.Init == nil {
			return loop, false
		}
		loop.varName = init.Name
		loop.start = init.Init
	case *ExprStmt:
		assign, ok := init.Expr.(*AssignExpr)
		if !ok {
			return loop, false
		}
		target, ok := assign.Target.(*Identifier)
		if !ok {
			return loop, false
		}
		loop.varName = target.Name
		loop.start = assign.Value
	default:
		return loop, false
	}
	if !simpleOperand(loop.start) {
		return loop, false
	}

	// Condition: "i < bound" with < <= > >= and the same variable.
	cond, ok := f.Cond.(*BinaryExpr)
	if !ok {
		return loop, false
	}
	switch cond.Op {
	case "<", "<=", ">", ">=":
	default:
		return loop, false
	}
	left, ok := cond.Left.(*Identifier)
	if !ok || left.Name != loop.varName || !simpleOperand(cond.Right) {
		return loop, false
	}
	loop.cmpOp = cond.Op
	loop.bound = cond.Right

	// Step: "i++", "i--", "i = i + N", "i = i - N".
	step, ok := constantStep(f.Post, loop.varName)
	if !ok || step == 0 {
		return loop, false
	}
	loop.step = step

	// The comparison direction and the step sign must agree, otherwise
	// the C loop does not count toward the bound at all.
	ascending := loop.cmpOp == "<" || loop.cmpOp == "<="
	if ascending != (step > 0) {
		return loop, false
	}
	return loop, true
}

// constantStep extracts the per-iteration delta applied to varName by the
// post clause, if it is one of the constant-step forms.
func constantStep(post Expr, varName string) (int, bool) {
	switch n := post.(type) {
	case *UnaryExpr:
		ident, ok := n.Operand.(*Identifier)
		if !ok || ident.Name != varName {
			return 0, false
		}
		switch n.Op {
		case "++":
			return 1, true
		case "--":
			return -1, true
		}
		return 0, false
	case *AssignExpr:
		target, ok := n.Target.(*Identifier)
		if !ok || target.Name != varName {
			return 0, false
		}
		bin, ok := n.Value.(*BinaryExpr)
		if !ok || (bin.Op != "+" && bin.Op != "-") {
			return 0, false
		}
		left, ok := bin.Left.(*Identifier)
		if !ok || left.Name != varName {
			return 0, false
		}
		num, ok := bin.Right.(*NumberLiteral)
		if !ok || num.IsFloat {
			return 0, false
		}
		step, err := strconv.Atoi(num.Text)
		if err != nil {
			return 0, false
		}
		if bin.Op == "-" {
			step = -step
		}
		return step, true
	}
	return 0, false
}

// adjustBound renders the range() stop argument: the raw bound for the
// exclusive comparisons, the bound shifted by delta for the inclusive ones.
// Integer literals are folded; anything else shifts symbolically.
func (cg *CodeGen) adjustBound(bound Expr, delta int) string {
	if delta == 0 {
		return cg.genExpr(bound)
	}
	if num, ok := bound.(*NumberLiteral); ok && !num.IsFloat {
		if v, err := strconv.Atoi(num.Text); err == nil {
			return strconv.Itoa(v + delta)
		}
	}
	if delta > 0 {
		return fmt.Sprintf("(%s + %d)", cg.genExpr(bound), delta)
	}
	return fmt.Sprintf("(%s - %d)", cg.genExpr(bound), -delta)
}

// genFor emits a for-loop, as a native range loop when the canonical
// counting shape matches and as init + while + trailing step otherwise.
// Both forms iterate the same number of times with the same variable
// values; the range path is an idiom match, never a semantic change.
func (cg *CodeGen) genFor(f *ForStmt, indent int) {
	if loop, ok := matchCountingLoop(f); ok {
		delta := 0
		switch loop.cmpOp {
		case "<=":
			delta = 1
		case ">=":
			delta = -1
		}
		start := cg.genExpr(loop.start)
		stop := cg.adjustBound(loop.bound, delta)
		if loop.step == 1 {
			cg.line(indent, "for %s in range(%s, %s):", loop.varName, start, stop)
		} else {
			cg.line(indent, "for %s in range(%s, %s, %d):", loop.varName, start, stop, loop.step)
		}
		cg.genBody(f.Body, indent+1)
		return
	}

	if f.Init != nil {
		cg.genStmt(f.Init, indent)
	}
	if f.Cond != nil {
		cg.line(indent, "while %s:", cg.genCond(f.Cond))
	} else {
		cg.line(indent, "while True:")
	}
	before := cg.codeLines
	if f.Body != nil {
		cg.genStmt(f.Body, indent+1)
	}
	if f.Post != nil {
		cg.genExprAsStmt(f.Post, indent+1)
	}
	if cg.codeLines == before {
		cg.line(indent+1, "pass")
	}
}

//  printf / scanf

// formatSpec holds one %-conversion found while rescanning a printf/scanf
// format string.
type formatSpec struct {
	verb byte
}

// splitFormat walks a decoded format string and returns the literal runs
// interleaved with conversion specifiers: runs[0], spec[0], runs[1], ...
// Flags, width, and precision between '%' and the verb are accepted and
// discarded. A trailing bare '%' stays literal.
func splitFormat(format string) (runs []string, specs []formatSpec) {
	var run strings.Builder
	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			run.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			run.WriteByte('%')
			i += 2
			continue
		}
		j := i + 1
		for j < len(format) && (format[j] == '.' || format[j] == '-' ||
			format[j] == 'l' || format[j] == 'h' ||
			(format[j] >= '0' && format[j] <= '9')) {
			j++
		}
		if j >= len(format) {
			run.WriteByte('%')
			i++
			continue
		}
		verb := format[j]
		switch verb {
		case 'd', 'i', 'u', 'f', 'g', 'e', 's', 'c', 'x', 'X', 'o', 'p':
			runs = append(runs, run.String())
			run.Reset()
			specs = append(specs, formatSpec{verb: verb})
			i = j + 1
		default:
			run.WriteByte('%')
			i++
		}
	}
	runs = append(runs, run.String())
	return runs, specs
}

// escapeFString escapes a literal format-text run for use inside a Python
// f-string: normal string escapes plus doubled braces.
func escapeFString(s string) string {
	quoted := pyQuote(s)
	quoted = quoted[1 : len(quoted)-1] // strip surrounding quotes
	quoted = strings.ReplaceAll(quoted, "{", "{{")
	quoted = strings.ReplaceAll(quoted, "}", "}}")
	return quoted
}

// genPrintf translates printf into a print call. Conversion specifiers are
// matched positionally against the arguments; a specifier with no argument
// left degrades to a literal '%' plus its own text. A trailing newline in
// the format becomes print's own line ending.
func (cg *CodeGen) genPrintf(n *PrintfStmt, indent int) {
	runs, specs := splitFormat(n.Format.Value)

	// The newline check must see the decoded value: once escaped, a
	// literal backslash before an 'n' is indistinguishable from "\n".
	last := len(runs) - 1
	trailingNewline := strings.HasSuffix(runs[last], "\n")
	if trailingNewline {
		runs[last] = strings.TrimSuffix(runs[last], "\n")
	}

	var text strings.Builder
	interpolated := false
	for i, run := range runs {
		text.WriteString(escapeFString(run))
		if i < len(specs) {
			if i < len(n.Args) {
				text.WriteString("{")
				text.WriteString(cg.genExpr(n.Args[i]))
				text.WriteString("}")
				interpolated = true
			} else {
				cg.warn("printf specifier %%%c has no matching argument", specs[i].verb)
				text.WriteString("%")
				text.WriteByte(specs[i].verb)
			}
		}
	}
	if len(n.Args) > len(specs) {
		cg.warn("printf has %d argument(s) with no matching specifier", len(n.Args)-len(specs))
	}

	body := text.String()
	prefix := ""
	if interpolated {
		prefix = "f"
	}
	if trailingNewline {
		cg.line(indent, `print(%s"%s")`, prefix, body)
	} else {
		cg.line(indent, `print(%s"%s", end="")`, prefix, body)
	}
}

// scanfConvert wraps the raw input text in the conversion the specifier
// asks for. Without a specifier the text passes through as a string.
func scanfConvert(raw string, spec *formatSpec) string {
	if spec == nil {
		return raw
	}
	switch spec.verb {
	case 'd', 'i', 'u':
		return fmt.Sprintf("int(%s)", raw)
	case 'x', 'X':
		return fmt.Sprintf("int(%s, 16)", raw)
	case 'o':
		return fmt.Sprintf("int(%s, 8)", raw)
	case 'f', 'g', 'e':
		return fmt.Sprintf("float(%s)", raw)
	case 'c':
		return fmt.Sprintf("%s[0]", raw)
	default:
		return raw
	}
}

// genScanf translates scanf into input() reads. The &var arguments become
// assignment targets; several targets share one input line split on
// whitespace. Arguments that are not address-of lvalues degrade to a
// warning comment and a best-effort assignment to the expression as given.
func (cg *CodeGen) genScanf(n *ScanfStmt, indent int) {
	_, specs := splitFormat(n.Format.Value)

	type target struct {
		text string
		spec *formatSpec
	}
	var targets []target
	for i, arg := range n.Args {
		var spec *formatSpec
		if i < len(specs) {
			spec = &specs[i]
		}
		addr, ok := arg.(*UnaryExpr)
		if ok && addr.Op == "&" && !addr.Postfix {
			switch addr.Operand.(type) {
			case *Identifier, *ArraySubscript:
				targets = append(targets, target{text: cg.genExpr(addr.Operand), spec: spec})
				continue
			}
		}
		cg.warn("scanf argument %d is not an address-of lvalue", i+1)
		cg.comment(indent, "scanf argument %s is not a simple &variable", cg.genExpr(arg))
		targets = append(targets, target{text: cg.genExpr(arg), spec: spec})
	}

	switch len(targets) {
	case 0:
		cg.line(indent, "input()")
	case 1:
		cg.line(indent, "%s = %s", targets[0].text, scanfConvert("input()", targets[0].spec))
	default:
		cg.line(indent, "_fields = input().split()")
		for i, t := range targets {
			cg.line(indent, "%s = %s", t.text, scanfConvert(fmt.Sprintf("_fields[%d]", i), t.spec))
		}
	}
}

//  Macros

// genMacros turns captured #define directives into Python constants and
// helper functions. Each body is re-lexed and re-parsed by a fresh
// pipeline scoped to just that body, keeping the main token stream
// untouched.
func (cg *CodeGen) genMacros(macros []MacroDefinition) {
	for _, m := range macros {
		if !m.Valid {
			cg.warn("malformed #define on line %d skipped", m.Line)
			cg.comment(0, "malformed #define on line %d skipped", m.Line)
			continue
		}
		if m.Body == "" {
			if m.IsFunctionLike {
				cg.comment(0, "macro %s has an empty body; skipped", m.Name)
				continue
			}
			cg.line(0, "%s = None", m.Name)
			continue
		}

		tokens, nested := Lex(m.Body)
		if len(nested) > 0 {
			cg.warn("nested #define inside macro %s ignored", m.Name)
			cg.comment(0, "macro %s contains a nested #define; skipped", m.Name)
			continue
		}
		expr, ok := parseMacroExpr(tokens)
		if !ok {
			cg.warn("macro %s body %q does not translate to an expression", m.Name, m.Body)
			cg.comment(0, "macro %s body could not be translated: %s", m.Name, m.Body)
			continue
		}

		if m.IsFunctionLike {
			cg.line(0, "def %s(%s):", m.Name, strings.Join(m.Params, ", "))
			cg.line(1, "return %s", cg.genExpr(expr))
		} else {
			cg.line(0, "%s = %s", m.Name, cg.genExpr(expr))
		}
	}
}

// parseMacroExpr parses a macro body's token stream as one complete
// expression. Leftover tokens or embedded scan errors disqualify the body.
func parseMacroExpr(tokens []Token) (Expr, bool) {
	for _, tok := range tokens {
		if tok.Type == ERROR {
			return nil, false
		}
	}
	p := NewParser(tokens)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, false
	}
	if p.peek().Type != EOF {
		return nil, false
	}
	return expr, true
}

// Generate renders the whole program. Macro-derived declarations come
// first so the translated statements can refer to them. Generation is
// total: anything untranslatable becomes an inline comment or a
// best-effort substitute plus a diagnostic, never a failure.
func Generate(prog *Program, macros []MacroDefinition) (string, []string) {
	cg := newCodeGen()
	cg.genMacros(macros)
	for _, s := range prog.Stmts {
		cg.genStmt(s, 0)
	}
	return cg.out.String(), cg.diags
}
