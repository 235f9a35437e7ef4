// Package transpiler provides a C-subset lexer, parser, and code generator
// that targets Python source text.
//
// Pipeline: C source → Lex → Parse → Generate → Python text
package transpiler
