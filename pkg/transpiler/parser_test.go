package transpiler

import (
	"reflect"
	"testing"
)

func parseSource(t *testing.T, input string) (*Program, []string) {
	t.Helper()
	tokens, _ := Lex(input)
	return Parse(tokens)
}

// TestParse verifies that Parse produces the correct AST for valid inputs.
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Stmt
	}{
		{
			name:  "Variable Declaration",
			input: "int x = 10;",
			expected: []Stmt{
				&VariableDecl{Name: "x", Type: "int", Init: &NumberLiteral{Text: "10"}},
			},
		},
		{
			name:  "Variable Declaration Without Initializer",
			input: "float f;",
			expected: []Stmt{
				&VariableDecl{Name: "f", Type: "float"},
			},
		},
		{
			name:  "Array Declaration",
			input: "int arr[10];",
			expected: []Stmt{
				&ArrayDecl{Name: "arr", ElementType: "int", Size: &NumberLiteral{Text: "10"}},
			},
		},
		{
			name:  "Assignment",
			input: "x = 20;",
			expected: []Stmt{
				&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "x"}, Value: &NumberLiteral{Text: "20"}}},
			},
		},
		{
			name:  "Subscript Assignment",
			input: "arr[i] = x;",
			expected: []Stmt{
				&ExprStmt{Expr: &AssignExpr{
					Target: &ArraySubscript{Array: &Identifier{Name: "arr"}, Index: &Identifier{Name: "i"}},
					Value:  &Identifier{Name: "x"},
				}},
			},
		},
		{
			name:  "Chained Subscripts",
			input: "m[i][j] = 0;",
			expected: []Stmt{
				&ExprStmt{Expr: &AssignExpr{
					Target: &ArraySubscript{
						Array: &ArraySubscript{Array: &Identifier{Name: "m"}, Index: &Identifier{Name: "i"}},
						Index: &Identifier{Name: "j"},
					},
					Value: &NumberLiteral{Text: "0"},
				}},
			},
		},
		{
			name:  "Function Call",
			input: "foo(1, x);",
			expected: []Stmt{
				&ExprStmt{Expr: &FunctionCall{
					Name: "foo",
					Args: []Expr{&NumberLiteral{Text: "1"}, &Identifier{Name: "x"}},
				}},
			},
		},
		{
			name:  "Precedence",
			input: "int r = a + b * c;",
			expected: []Stmt{
				&VariableDecl{Name: "r", Type: "int", Init: &BinaryExpr{
					Op:   "+",
					Left: &Identifier{Name: "a"},
					Right: &BinaryExpr{
						Op:    "*",
						Left:  &Identifier{Name: "b"},
						Right: &Identifier{Name: "c"},
					},
				}},
			},
		},
		{
			name:  "Logical Precedence",
			input: "x = a && b || c;",
			expected: []Stmt{
				&ExprStmt{Expr: &AssignExpr{
					Target: &Identifier{Name: "x"},
					Value: &BinaryExpr{
						Op: "||",
						Left: &BinaryExpr{
							Op:    "&&",
							Left:  &Identifier{Name: "a"},
							Right: &Identifier{Name: "b"},
						},
						Right: &Identifier{Name: "c"},
					},
				}},
			},
		},
		{
			name:  "Prefix Unary",
			input: "int z = -a + !b;",
			expected: []Stmt{
				&VariableDecl{Name: "z", Type: "int", Init: &BinaryExpr{
					Op:    "+",
					Left:  &UnaryExpr{Op: "-", Operand: &Identifier{Name: "a"}},
					Right: &UnaryExpr{Op: "!", Operand: &Identifier{Name: "b"}},
				}},
			},
		},
		{
			name:  "Postfix Increment",
			input: "i++;",
			expected: []Stmt{
				&ExprStmt{Expr: &UnaryExpr{Op: "++", Operand: &Identifier{Name: "i"}, Postfix: true}},
			},
		},
		{
			name:  "Literals",
			input: `x = "hi"; c = 'a'; b = true; f = 2.5;`,
			expected: []Stmt{
				&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "x"}, Value: &StringLiteral{Value: "hi"}}},
				&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "c"}, Value: &CharLiteral{Value: "a"}}},
				&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "b"}, Value: &BooleanLiteral{Value: true}}},
				&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "f"}, Value: &NumberLiteral{Text: "2.5", IsFloat: true}}},
			},
		},
		{
			name:  "If Statement",
			input: "if (x == 1) { x = 2; }",
			expected: []Stmt{
				&IfStmt{
					Condition: &BinaryExpr{Op: "==", Left: &Identifier{Name: "x"}, Right: &NumberLiteral{Text: "1"}},
					Body: &BlockStmt{Stmts: []Stmt{
						&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "x"}, Value: &NumberLiteral{Text: "2"}}},
					}},
				},
			},
		},
		{
			name:  "If Else Chain",
			input: "if (a) { x = 1; } else if (b) { x = 2; } else { x = 3; }",
			expected: []Stmt{
				&IfStmt{
					Condition: &Identifier{Name: "a"},
					Body: &BlockStmt{Stmts: []Stmt{
						&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "x"}, Value: &NumberLiteral{Text: "1"}}},
					}},
					ElseBody: &IfStmt{
						Condition: &Identifier{Name: "b"},
						Body: &BlockStmt{Stmts: []Stmt{
							&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "x"}, Value: &NumberLiteral{Text: "2"}}},
						}},
						ElseBody: &BlockStmt{Stmts: []Stmt{
							&ExprStmt{Expr: &AssignExpr{Target: &Identifier{Name: "x"}, Value: &NumberLiteral{Text: "3"}}},
						}},
					},
				},
			},
		},
		{
			name:  "While Loop",
			input: "while (x > 0) { x = x - 1; }",
			expected: []Stmt{
				&WhileStmt{
					Condition: &BinaryExpr{Op: ">", Left: &Identifier{Name: "x"}, Right: &NumberLiteral{Text: "0"}},
					Body: &BlockStmt{Stmts: []Stmt{
						&ExprStmt{Expr: &AssignExpr{
							Target: &Identifier{Name: "x"},
							Value:  &BinaryExpr{Op: "-", Left: &Identifier{Name: "x"}, Right: &NumberLiteral{Text: "1"}},
						}},
					}},
				},
			},
		},
		{
			name:  "Function Declaration",
			input: "int add(int a, int b) { return a + b; }",
			expected: []Stmt{
				&FunctionDecl{
					Name:       "add",
					ReturnType: "int",
					Params:     []Param{{Name: "a", Type: "int"}, {Name: "b", Type: "int"}},
					Body: &BlockStmt{Stmts: []Stmt{
						&ReturnStmt{Expr: &BinaryExpr{Op: "+", Left: &Identifier{Name: "a"}, Right: &Identifier{Name: "b"}}},
					}},
				},
			},
		},
		{
			name:  "Function Prototype",
			input: "void log_value(int v);",
			expected: []Stmt{
				&FunctionDecl{
					Name:       "log_value",
					ReturnType: "void",
					Params:     []Param{{Name: "v", Type: "int"}},
				},
			},
		},
		{
			name:  "Array Parameter",
			input: "int sum(int values[], int n) { return 0; }",
			expected: []Stmt{
				&FunctionDecl{
					Name:       "sum",
					ReturnType: "int",
					Params:     []Param{{Name: "values", Type: "int", IsArray: true}, {Name: "n", Type: "int"}},
					Body: &BlockStmt{Stmts: []Stmt{
						&ReturnStmt{Expr: &NumberLiteral{Text: "0"}},
					}},
				},
			},
		},
		{
			name:  "Printf",
			input: `printf("%d\n", x);`,
			expected: []Stmt{
				&PrintfStmt{
					Format: &StringLiteral{Value: "%d\n"},
					Args:   []Expr{&Identifier{Name: "x"}},
				},
			},
		},
		{
			name:  "Scanf",
			input: `scanf("%d", &x);`,
			expected: []Stmt{
				&ScanfStmt{
					Format: &StringLiteral{Value: "%d"},
					Args:   []Expr{&UnaryExpr{Op: "&", Operand: &Identifier{Name: "x"}}},
				},
			},
		},
		{
			name:  "Break And Continue",
			input: "while (x) { break; continue; }",
			expected: []Stmt{
				&WhileStmt{
					Condition: &Identifier{Name: "x"},
					Body:      &BlockStmt{Stmts: []Stmt{&BreakStmt{}, &ContinueStmt{}}},
				},
			},
		},
		{
			name:  "Return Without Value",
			input: "void stop(int unused) { return; }",
			expected: []Stmt{
				&FunctionDecl{
					Name:       "stop",
					ReturnType: "void",
					Params:     []Param{{Name: "unused", Type: "int"}},
					Body:       &BlockStmt{Stmts: []Stmt{&ReturnStmt{}}},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog, diags := parseSource(t, tc.input)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if !reflect.DeepEqual(prog.Stmts, tc.expected) {
				t.Errorf("Parse(%q)\n got: %v\nwant: %v", tc.input, prog.Stmts, tc.expected)
			}
		})
	}
}

// TestParseErrors verifies that grammar violations are reported and that
// the offending statement is dropped rather than aborting the parse.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStmts int
	}{
		{"Literal Assignment Target", "5 = x;", 0},
		{"Parenthesized Assignment Target", "(a + b) = x;", 0},
		{"Call On Subscript", "arr[0](x);", 0},
		{"Printf Without String Format", "printf(x);", 0},
		{"Scanf Without String Format", "scanf(x);", 0},
		{"Missing Semicolon Swallows Through Next Boundary", "int x = 1 int y = 2;", 0},
		{"Bad Statement Between Good Ones", "int a = 1; = ; int b = 2;", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog, diags := parseSource(t, tc.input)
			if len(diags) == 0 {
				t.Fatalf("Parse(%q) produced no diagnostics", tc.input)
			}
			if len(prog.Stmts) != tc.wantStmts {
				t.Errorf("Parse(%q) kept %d statements, want %d: %v",
					tc.input, len(prog.Stmts), tc.wantStmts, prog.Stmts)
			}
		})
	}
}

// TestParseArrayInitializerListSkipped verifies the unsupported C
// initializer list is flagged and skipped without losing the declaration.
func TestParseArrayInitializerListSkipped(t *testing.T) {
	prog, diags := parseSource(t, "int arr[3] = {1, 2, 3}; int y = 4;")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one initializer warning", diags)
	}
	expected := []Stmt{
		&ArrayDecl{Name: "arr", ElementType: "int", Size: &NumberLiteral{Text: "3"}},
		&VariableDecl{Name: "y", Type: "int", Init: &NumberLiteral{Text: "4"}},
	}
	if !reflect.DeepEqual(prog.Stmts, expected) {
		t.Errorf("got %v, want %v", prog.Stmts, expected)
	}
}
