package transpiler

import (
	"fmt"
	"strings"
)

// astPrinter renders the tree as an indented outline keyed on node kind,
// for the ---AST--- section of the CLI and the GUI's tree pane.
type astPrinter struct {
	out strings.Builder
}

func (ap *astPrinter) line(indent int, format string, args ...any) {
	ap.out.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(&ap.out, format+"\n", args...)
}

func (ap *astPrinter) printExpr(e Expr, indent int) {
	switch n := e.(type) {
	case *Identifier:
		ap.line(indent, "Identifier(%s)", n.Name)
	case *NumberLiteral:
		ap.line(indent, "NumberLiteral(%s)", n.Text)
	case *StringLiteral:
		ap.line(indent, "StringLiteral(%q)", n.Value)
	case *CharLiteral:
		ap.line(indent, "CharLiteral(%q)", n.Value)
	case *BooleanLiteral:
		ap.line(indent, "BooleanLiteral(%t)", n.Value)
	case *BinaryExpr:
		ap.line(indent, "BinaryExpr(%s)", n.Op)
		ap.printExpr(n.Left, indent+1)
		ap.printExpr(n.Right, indent+1)
	case *UnaryExpr:
		if n.Postfix {
			ap.line(indent, "UnaryExpr(postfix %s)", n.Op)
		} else {
			ap.line(indent, "UnaryExpr(%s)", n.Op)
		}
		ap.printExpr(n.Operand, indent+1)
	case *AssignExpr:
		ap.line(indent, "Assignment")
		ap.printExpr(n.Target, indent+1)
		ap.printExpr(n.Value, indent+1)
	case *FunctionCall:
		ap.line(indent, "FunctionCall(%s)", n.Name)
		for _, a := range n.Args {
			ap.printExpr(a, indent+1)
		}
	case *ArraySubscript:
		ap.line(indent, "ArraySubscript")
		ap.printExpr(n.Array, indent+1)
		ap.printExpr(n.Index, indent+1)
	case nil:
		ap.line(indent, "<none>")
	default:
		ap.line(indent, "%s", nodeKind(e))
	}
}

func (ap *astPrinter) printStmt(s Stmt, indent int) {
	switch n := s.(type) {
	case *ExprStmt:
		ap.line(indent, "ExpressionStatement")
		ap.printExpr(n.Expr, indent+1)
	case *VariableDecl:
		ap.line(indent, "VariableDeclaration(%s %s)", n.Type, n.Name)
		if n.Init != nil {
			ap.line(indent+1, "Init:")
			ap.printExpr(n.Init, indent+2)
		}
	case *ArrayDecl:
		ap.line(indent, "ArrayDeclaration(%s %s)", n.ElementType, n.Name)
		ap.line(indent+1, "Size:")
		ap.printExpr(n.Size, indent+2)
	case *FunctionDecl:
		var params []string
		for _, p := range n.Params {
			params = append(params, p.String())
		}
		ap.line(indent, "FunctionDeclaration(%s %s(%s))", n.ReturnType, n.Name, strings.Join(params, ", "))
		if n.Body == nil {
			ap.line(indent+1, "<prototype>")
			return
		}
		ap.printStmt(n.Body, indent+1)
	case *BlockStmt:
		ap.line(indent, "Block")
		for _, sub := range n.Stmts {
			ap.printStmt(sub, indent+1)
		}
	case *IfStmt:
		ap.line(indent, "If")
		ap.line(indent+1, "Condition:")
		ap.printExpr(n.Condition, indent+2)
		ap.line(indent+1, "Then:")
		ap.printStmt(n.Body, indent+2)
		if n.ElseBody != nil {
			ap.line(indent+1, "Else:")
			ap.printStmt(n.ElseBody, indent+2)
		}
	case *WhileStmt:
		ap.line(indent, "While")
		ap.line(indent+1, "Condition:")
		ap.printExpr(n.Condition, indent+2)
		ap.line(indent+1, "Body:")
		ap.printStmt(n.Body, indent+2)
	case *ForStmt:
		ap.line(indent, "For")
		if n.Init != nil {
			ap.line(indent+1, "Init:")
			ap.printStmt(n.Init, indent+2)
		}
		if n.Cond != nil {
			ap.line(indent+1, "Condition:")
			ap.printExpr(n.Cond, indent+2)
		}
		if n.Post != nil {
			ap.line(indent+1, "Post:")
			ap.printExpr(n.Post, indent+2)
		}
		ap.line(indent+1, "Body:")
		ap.printStmt(n.Body, indent+2)
	case *ReturnStmt:
		ap.line(indent, "Return")
		if n.Expr != nil {
			ap.printExpr(n.Expr, indent+1)
		}
	case *BreakStmt:
		ap.line(indent, "Break")
	case *ContinueStmt:
		ap.line(indent, "Continue")
	case *PrintfStmt:
		ap.line(indent, "Printf(%q)", n.Format.Value)
		for _, a := range n.Args {
			ap.printExpr(a, indent+1)
		}
	case *ScanfStmt:
		ap.line(indent, "Scanf(%q)", n.Format.Value)
		for _, a := range n.Args {
			ap.printExpr(a, indent+1)
		}
	default:
		ap.line(indent, "%s", nodeKind(s))
	}
}

// FormatProgram renders the whole tree as an indented outline.
func FormatProgram(prog *Program) string {
	ap := &astPrinter{}
	ap.line(0, "Program(%d statements)", len(prog.Stmts))
	for _, s := range prog.Stmts {
		ap.printStmt(s, 1)
	}
	return ap.out.String()
}
