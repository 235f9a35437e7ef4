package transpiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value. The set of
// implementations in this file is closed; the generator matches on it
// exhaustively.
type Expr interface {
	exprNode()
	String() string
}

// Identifier is a read of a named variable.
//
//	return x;
//	       ^  Identifier{Name: "x"}
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// NumberLiteral is an integer or floating-point constant. Text keeps the
// source spelling so the generator can pass it through unchanged.
type NumberLiteral struct {
	Text    string
	IsFloat bool
}

func (*NumberLiteral) exprNode()        {}
func (n *NumberLiteral) String() string { return n.Text }

// StringLiteral is a string constant "...". Value holds the decoded text.
type StringLiteral struct {
	Value string
}

func (*StringLiteral) exprNode()        {}
func (s *StringLiteral) String() string { return fmt.Sprintf("%q", s.Value) }

// CharLiteral is a character constant '...'. Value holds the decoded
// single character.
type CharLiteral struct {
	Value string
}

func (*CharLiteral) exprNode()        {}
func (c *CharLiteral) String() string { return fmt.Sprintf("'%s'", c.Value) }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
}

func (*BooleanLiteral) exprNode()        {}
func (b *BooleanLiteral) String() string { return fmt.Sprintf("%t", b.Value) }

// BinaryExpr represents Left Op Right.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryExpr represents a prefix (!x, -x, &x, ++x) or postfix (x++)
// application of Op to Operand.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Postfix bool
}

func (*UnaryExpr) exprNode() {}
func (u *UnaryExpr) String() string {
	if u.Postfix {
		return fmt.Sprintf("(%s %s)", u.Operand, u.Op)
	}
	return fmt.Sprintf("(%s %s)", u.Op, u.Operand)
}

// AssignExpr represents Target = Value. The parser guarantees Target is an
// Identifier or ArraySubscript.
type AssignExpr struct {
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}
func (a *AssignExpr) String() string {
	return fmt.Sprintf("Assign(%s = %s)", a.Target, a.Value)
}

// FunctionCall represents name(args). The callee is always a bare
// identifier; the grammar has no callable-expression concept.
type FunctionCall struct {
	Name string
	Args []Expr
}

func (*FunctionCall) exprNode() {}
func (c *FunctionCall) String() string {
	return fmt.Sprintf("Call(%s, args=%v)", c.Name, c.Args)
}

// ArraySubscript represents Array[Index], chaining for multi-dimensional use.
type ArraySubscript struct {
	Array Expr
	Index Expr
}

func (*ArraySubscript) exprNode() {}
func (a *ArraySubscript) String() string {
	return fmt.Sprintf("(%s[%s])", a.Array, a.Index)
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode()        {}
func (e *ExprStmt) String() string { return fmt.Sprintf("ExprStmt(%s)", e.Expr) }

// VariableDecl represents  type name [= expr];
type VariableDecl struct {
	Name string
	Type string
	Init Expr // may be nil
}

func (*VariableDecl) stmtNode() {}
func (d *VariableDecl) String() string {
	if d.Init != nil {
		return fmt.Sprintf("VariableDecl(%s %s = %s)", d.Type, d.Name, d.Init)
	}
	return fmt.Sprintf("VariableDecl(%s %s)", d.Type, d.Name)
}

// ArrayDecl represents  type name[size];
type ArrayDecl struct {
	Name        string
	ElementType string
	Size        Expr
}

func (*ArrayDecl) stmtNode() {}
func (d *ArrayDecl) String() string {
	return fmt.Sprintf("ArrayDecl(%s %s[%s])", d.ElementType, d.Name, d.Size)
}

// Param is one formal parameter of a function declaration.
type Param struct {
	Name    string
	Type    string
	IsArray bool
}

func (p Param) String() string {
	if p.IsArray {
		return fmt.Sprintf("%s %s[]", p.Type, p.Name)
	}
	return fmt.Sprintf("%s %s", p.Type, p.Name)
}

// FunctionDecl represents  type name(params) { body }. A nil Body means a
// forward declaration.
type FunctionDecl struct {
	Name       string
	ReturnType string
	Params     []Param
	Body       *BlockStmt
}

func (*FunctionDecl) stmtNode() {}
func (f *FunctionDecl) String() string {
	if f.Body == nil {
		return fmt.Sprintf("FunctionDecl(%s %s, params=%v, prototype)", f.ReturnType, f.Name, f.Params)
	}
	return fmt.Sprintf("FunctionDecl(%s %s, params=%v, body=%s)", f.ReturnType, f.Name, f.Params, f.Body)
}

// BlockStmt represents { statement; ... }
type BlockStmt struct {
	Stmts []Stmt
}

func (*BlockStmt) stmtNode()        {}
func (b *BlockStmt) String() string { return fmt.Sprintf("Block(len=%d)", len(b.Stmts)) }

// IfStmt represents if (cond) body [else elseBody]. ElseBody may itself be
// an *IfStmt, forming an else-if chain.
type IfStmt struct {
	Condition Expr
	Body      Stmt
	ElseBody  Stmt // may be nil
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if i.ElseBody != nil {
		return fmt.Sprintf("If(%s then %s else %s)", i.Condition, i.Body, i.ElseBody)
	}
	return fmt.Sprintf("If(%s then %s)", i.Condition, i.Body)
}

// WhileStmt represents while (cond) body
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("While(%s do %s)", w.Condition, w.Body)
}

// ForStmt represents for (init; cond; post) body. All three clauses are
// independently optional.
type ForStmt struct {
	Init Stmt // may be nil
	Cond Expr // may be nil
	Post Expr // may be nil
	Body Stmt
}

func (*ForStmt) stmtNode() {}
func (f *ForStmt) String() string {
	return fmt.Sprintf("For(init=%s, cond=%s, post=%s, body=%s)", f.Init, f.Cond, f.Post, f.Body)
}

// ReturnStmt represents  return [expr];
type ReturnStmt struct {
	Expr Expr // may be nil
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Expr == nil {
		return "Return()"
	}
	return fmt.Sprintf("Return(%s)", r.Expr)
}

// BreakStmt represents break;
type BreakStmt struct{}

func (*BreakStmt) stmtNode()        {}
func (*BreakStmt) String() string { return "Break" }

// ContinueStmt represents continue;
type ContinueStmt struct{}

func (*ContinueStmt) stmtNode()        {}
func (*ContinueStmt) String() string { return "Continue" }

// PrintfStmt represents printf(fmt, args...); recognized structurally as a
// library call with a mandatory string-literal format argument.
type PrintfStmt struct {
	Format *StringLiteral
	Args   []Expr
}

func (*PrintfStmt) stmtNode() {}
func (p *PrintfStmt) String() string {
	return fmt.Sprintf("Printf(%s, args=%v)", p.Format, p.Args)
}

// ScanfStmt represents scanf(fmt, args...);
type ScanfStmt struct {
	Format *StringLiteral
	Args   []Expr
}

func (*ScanfStmt) stmtNode() {}
func (s *ScanfStmt) String() string {
	return fmt.Sprintf("Scanf(%s, args=%v)", s.Format, s.Args)
}

// Program is the root of the tree: an ordered sequence of top-level
// statements, each owned exclusively by the Program.
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	var parts []string
	for _, s := range p.Stmts {
		parts = append(parts, s.String())
	}
	return "Program(" + strings.Join(parts, "; ") + ")"
}
