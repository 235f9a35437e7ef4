package transpiler

import (
	"fmt"
	"unicode/utf8"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar (expressions by increasing precedence):
//
//	program    = statement* EOF
//	statement  = declaration | ifStmt | whileStmt | forStmt | returnStmt
//	           | breakStmt | continueStmt | block | printfStmt | scanfStmt
//	           | exprStmt
//	declaration = TYPE IDENTIFIER
//	              ( "[" expression "]" ";"
//	              | "(" params ")" (block | ";")
//	              | ("=" expression)? ";" )
//	expression = assignment
//	assignment = logicalOr ("=" assignment)?      (target: lvalue only)
//	logicalOr  = logicalAnd ("||" logicalAnd)*
//	logicalAnd = equality ("&&" equality)*
//	equality   = comparison (("==" | "!=") comparison)*
//	comparison = term (("<" | "<=" | ">" | ">=") term)*
//	term       = factor (("+" | "-") factor)*
//	factor     = unary (("*" | "/" | "%") unary)*
//	unary      = ("!" | "-" | "&" | "++" | "--") unary | postfix
//	postfix    = primary ("(" args ")" | "[" expression "]" | "++" | "--")*
//	primary    = BOOLEAN | INTEGER | FLOAT | STRING | CHAR | IDENTIFIER
//	           | "(" expression ")"
type Parser struct {
	tokens []Token
	pos    int
	diags  []string
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// fmtError wraps an error message with the offending token's position.
func (p *Parser) fmtError(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("line %d, col %d: %s\n  |> near %q", tok.Line, tok.Column, msg, tok.Text)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// peekNext returns the token immediately after the current one.
func (p *Parser) peekNext() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos+1]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// isOp reports whether the current token is an OPERATOR with any of the
// given spellings.
func (p *Parser) isOp(texts ...string) bool {
	tok := p.peek()
	if tok.Type != OPERATOR {
		return false
	}
	for _, t := range texts {
		if tok.Text == t {
			return true
		}
	}
	return false
}

// isSym reports whether the current token is the SYMBOL s.
func (p *Parser) isSym(s string) bool {
	tok := p.peek()
	return tok.Type == SYMBOL && tok.Text == s
}

// expectSym consumes the current token if it is the SYMBOL s.
func (p *Parser) expectSym(s string) (Token, error) {
	tok := p.advance()
	if tok.Type != SYMBOL || tok.Text != s {
		return tok, p.fmtError(tok, "expected %q, got %s (%q)", s, tok.Type, tok.Text)
	}
	return tok, nil
}

// expectOp consumes the current token if it is the OPERATOR s.
func (p *Parser) expectOp(s string) (Token, error) {
	tok := p.advance()
	if tok.Type != OPERATOR || tok.Text != s {
		return tok, p.fmtError(tok, "expected %q, got %s (%q)", s, tok.Type, tok.Text)
	}
	return tok, nil
}

// expectIdent consumes the current token if it is an IDENTIFIER.
func (p *Parser) expectIdent() (Token, error) {
	tok := p.advance()
	if tok.Type != IDENTIFIER {
		return tok, p.fmtError(tok, "expected identifier, got %s (%q)", tok.Type, tok.Text)
	}
	return tok, nil
}

// atTypeKeyword reports whether the current token opens a declaration.
func (p *Parser) atTypeKeyword() bool {
	tok := p.peek()
	return tok.Type == KEYWORD && typeKeywords[tok.Text]
}

// atIOCall reports whether the current token is a printf/scanf identifier
// followed by "(". The two are library calls recognized structurally, not
// reserved words.
func (p *Parser) atIOCall() bool {
	tok := p.peek()
	if tok.Type != IDENTIFIER || (tok.Text != "printf" && tok.Text != "scanf") {
		return false
	}
	next := p.peekNext()
	return next.Type == SYMBOL && next.Text == "("
}

// atStatementStart reports whether the current token plausibly begins a new
// statement; synchronize stops here after an error.
func (p *Parser) atStatementStart() bool {
	tok := p.peek()
	switch tok.Type {
	case KEYWORD:
		switch tok.Text {
		case "if", "while", "for", "return", "break", "continue":
			return true
		}
		return typeKeywords[tok.Text]
	case IDENTIFIER:
		return p.atIOCall()
	case SYMBOL:
		return tok.Text == "{" || tok.Text == "}"
	}
	return false
}

// synchronize discards tokens after a parse error until a plausible
// statement boundary: just past a ";", or just before a statement starter.
// It always consumes at least one token so the top-level loop makes
// progress on any input.
func (p *Parser) synchronize() {
	tok := p.advance()
	for p.peek().Type != EOF {
		if tok.Type == SYMBOL && tok.Text == ";" {
			return
		}
		if p.atStatementStart() {
			return
		}
		tok = p.advance()
	}
}

//  Expressions

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

// parseAssignment handles the right-associative "=" and enforces the
// lvalue restriction on its target.
func (p *Parser) parseAssignment() (Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.isOp("=") {
		eq := p.advance()
		switch expr.(type) {
		case *Identifier, *ArraySubscript:
		default:
			return nil, p.fmtError(eq, "invalid assignment target %s", expr)
		}
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Target: expr, Value: value}, nil
	}
	return expr, nil
}

// parseLogicalOr handles ||
func (p *Parser) parseLogicalOr() (Expr, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.isOp("||") {
		op := p.advance().Text
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseLogicalAnd handles &&
func (p *Parser) parseLogicalAnd() (Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.isOp("&&") {
		op := p.advance().Text
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseEquality handles == and !=
func (p *Parser) parseEquality() (Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.isOp("==", "!=") {
		op := p.advance().Text
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseComparison handles < <= > >=
func (p *Parser) parseComparison() (Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isOp("<", "<=", ">", ">=") {
		op := p.advance().Text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseTerm handles + and -
func (p *Parser) parseTerm() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.advance().Text
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseFactor handles * / %
func (p *Parser) parseFactor() (Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/", "%") {
		op := p.advance().Text
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseUnary handles prefix ! - & ++ --
func (p *Parser) parseUnary() (Expr, error) {
	if p.isOp("!", "-", "&", "++", "--") {
		op := p.advance().Text
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles calls, subscripts, and postfix ++/--. A call is only
// legal when the callee parsed so far is a bare identifier.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isSym("("):
			ident, ok := expr.(*Identifier)
			if !ok {
				return nil, p.fmtError(p.peek(), "cannot call non-identifier expression %s", expr)
			}
			p.advance() // (
			var args []Expr
			if !p.isSym(")") {
				for {
					arg, err := p.parseExpression()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.isSym(",") {
						break
					}
					p.advance()
				}
			}
			if _, err := p.expectSym(")"); err != nil {
				return nil, err
			}
			expr = &FunctionCall{Name: ident.Name, Args: args}
		case p.isSym("["):
			p.advance() // [
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSym("]"); err != nil {
				return nil, err
			}
			expr = &ArraySubscript{Array: expr, Index: index}
		case p.isOp("++", "--"):
			op := p.advance().Text
			expr = &UnaryExpr{Op: op, Operand: expr, Postfix: true}
		default:
			return expr, nil
		}
	}
}

// parsePrimary resolves literals, identifiers, and parenthesized
// sub-expressions.
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case BOOLEAN:
		p.advance()
		return &BooleanLiteral{Value: tok.Text == "true"}, nil
	case INTEGER:
		p.advance()
		return &NumberLiteral{Text: tok.Text}, nil
	case FLOAT:
		p.advance()
		return &NumberLiteral{Text: tok.Text, IsFloat: true}, nil
	case STRING:
		p.advance()
		return &StringLiteral{Value: tok.Text}, nil
	case CHAR:
		p.advance()
		if utf8.RuneCountInString(tok.Text) != 1 {
			return nil, p.fmtError(tok, "character literal must contain exactly one character")
		}
		return &CharLiteral{Value: tok.Text}, nil
	case IDENTIFIER:
		p.advance()
		return &Identifier{Name: tok.Text}, nil
	case SYMBOL:
		if tok.Text == "(" {
			p.advance()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSym(")"); err != nil {
				return nil, err
			}
			return expr, nil
		}
	}
	return nil, p.fmtError(tok, "expected expression, got %s (%q)", tok.Type, tok.Text)
}

//  Statements

// parseStatement dispatches on the current token.
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch {
	case p.atTypeKeyword():
		return p.parseDeclaration()
	case tok.Type == KEYWORD && tok.Text == "if":
		return p.parseIf()
	case tok.Type == KEYWORD && tok.Text == "while":
		return p.parseWhile()
	case tok.Type == KEYWORD && tok.Text == "for":
		return p.parseFor()
	case tok.Type == KEYWORD && tok.Text == "return":
		return p.parseReturn()
	case tok.Type == KEYWORD && tok.Text == "break":
		p.advance()
		if _, err := p.expectSym(";"); err != nil {
			return nil, err
		}
		return &BreakStmt{}, nil
	case tok.Type == KEYWORD && tok.Text == "continue":
		p.advance()
		if _, err := p.expectSym(";"); err != nil {
			return nil, err
		}
		return &ContinueStmt{}, nil
	case p.isSym("{"):
		return p.parseBlock()
	case p.isSym(";"):
		p.advance() // empty statement
		return &BlockStmt{}, nil
	case p.atIOCall():
		return p.parseIOCall()
	default:
		return p.parseExprStatement()
	}
}

// parseExprStatement parses  expression ";"
func (p *Parser) parseExprStatement() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

// parseBlock parses  "{" statement* "}"
func (p *Parser) parseBlock() (*BlockStmt, error) {
	if _, err := p.expectSym("{"); err != nil {
		return nil, err
	}
	block := &BlockStmt{}
	for !p.isSym("}") {
		if p.peek().Type == EOF {
			return nil, p.fmtError(p.peek(), "unexpected end of input inside block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	p.advance() // }
	return block, nil
}

// parseDeclaration consumes a type keyword and a name, then dispatches on
// the next token: "[" starts an array declaration, "(" a function
// declaration, anything else a scalar variable declaration.
func (p *Parser) parseDeclaration() (Stmt, error) {
	typeTok := p.advance()
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	switch {
	case p.isSym("["):
		return p.parseArrayDecl(typeTok.Text, nameTok.Text)
	case p.isSym("("):
		return p.parseFunctionDecl(typeTok.Text, nameTok.Text)
	}

	decl := &VariableDecl{Name: nameTok.Text, Type: typeTok.Text}
	if p.isOp("=") {
		p.advance()
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseArrayDecl parses the "[size]" suffix of an array declaration.
// C-style initializer lists are not supported: they are skipped through
// the terminating ";" with a diagnostic instead of failing the statement.
func (p *Parser) parseArrayDecl(elemType, name string) (Stmt, error) {
	p.advance() // [
	size, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSym("]"); err != nil {
		return nil, err
	}

	if p.isOp("=") {
		eq := p.peek()
		p.diags = append(p.diags, fmt.Sprintf(
			"line %d: array initializer list for %q is not supported; skipped", eq.Line, name))
		for !p.isSym(";") && p.peek().Type != EOF {
			p.advance()
		}
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}
	return &ArrayDecl{Name: name, ElementType: elemType, Size: size}, nil
}

// parseFunctionDecl parses "(params)" and then either a body block or a
// ";" marking a forward declaration.
func (p *Parser) parseFunctionDecl(returnType, name string) (Stmt, error) {
	p.advance() // (
	var params []Param
	if !p.isSym(")") {
		for {
			if !p.atTypeKeyword() {
				return nil, p.fmtError(p.peek(), "expected parameter type, got %s (%q)", p.peek().Type, p.peek().Text)
			}
			typeTok := p.advance()
			pname, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			param := Param{Name: pname.Text, Type: typeTok.Text}
			if p.isSym("[") {
				p.advance()
				if _, err := p.expectSym("]"); err != nil {
					return nil, err
				}
				param.IsArray = true
			}
			params = append(params, param)
			if !p.isSym(",") {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expectSym(")"); err != nil {
		return nil, err
	}

	decl := &FunctionDecl{Name: name, ReturnType: returnType, Params: params}
	if p.isSym(";") {
		p.advance() // prototype
		return decl, nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

// parseIf parses  if "(" cond ")" stmt ("else" stmt)?
func (p *Parser) parseIf() (Stmt, error) {
	p.advance() // if
	if _, err := p.expectSym("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSym(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Condition: cond, Body: body}
	if t := p.peek(); t.Type == KEYWORD && t.Text == "else" {
		p.advance()
		elseBody, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.ElseBody = elseBody
	}
	return stmt, nil
}

// parseWhile parses  while "(" cond ")" stmt
func (p *Parser) parseWhile() (Stmt, error) {
	p.advance() // while
	if _, err := p.expectSym("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSym(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: cond, Body: body}, nil
}

// parseFor parses  for "(" init? ";" cond? ";" post? ")" stmt
// with each clause independently optional.
func (p *Parser) parseFor() (Stmt, error) {
	p.advance() // for
	if _, err := p.expectSym("("); err != nil {
		return nil, err
	}

	stmt := &ForStmt{}
	switch {
	case p.isSym(";"):
		p.advance()
	case p.atTypeKeyword():
		init, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSym(";"); err != nil {
			return nil, err
		}
		stmt.Init = &ExprStmt{Expr: expr}
	}

	if !p.isSym(";") {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}

	if !p.isSym(")") {
		post, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Post = post
	}
	if _, err := p.expectSym(")"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

// parseReturn parses  return expr? ";"
func (p *Parser) parseReturn() (Stmt, error) {
	p.advance() // return
	stmt := &ReturnStmt{}
	if !p.isSym(";") {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseIOCall parses  printf/scanf "(" STRING ("," expr)* ")" ";"
// The first argument must be a string literal; that is a hard error, not a
// degradation, because the translation has nothing to work from otherwise.
func (p *Parser) parseIOCall() (Stmt, error) {
	nameTok := p.advance()
	p.advance() // (

	fmtTok := p.advance()
	if fmtTok.Type != STRING {
		return nil, p.fmtError(fmtTok, "%s requires a string literal format argument, got %s (%q)",
			nameTok.Text, fmtTok.Type, fmtTok.Text)
	}
	format := &StringLiteral{Value: fmtTok.Text}

	var args []Expr
	for p.isSym(",") {
		p.advance()
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expectSym(")"); err != nil {
		return nil, err
	}
	if _, err := p.expectSym(";"); err != nil {
		return nil, err
	}

	if nameTok.Text == "printf" {
		return &PrintfStmt{Format: format, Args: args}, nil
	}
	return &ScanfStmt{Format: format, Args: args}, nil
}

// Parse builds a Program from the token slice. It is total: a syntax error
// aborts only the statement it occurred in, is recorded as a diagnostic
// line, and parsing resumes at the next statement boundary.
func Parse(tokens []Token) (*Program, []string) {
	p := NewParser(tokens)
	prog := &Program{}
	for p.peek().Type != EOF {
		if p.peek().Type == ERROR {
			tok := p.advance()
			p.diags = append(p.diags, fmt.Sprintf("lex error: %s", tok.Text))
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			p.diags = append(p.diags, err.Error())
			p.synchronize()
			continue
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, p.diags
}
