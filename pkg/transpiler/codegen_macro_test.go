package transpiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestGenerateMacros verifies #define directives are rendered ahead of the
// translated statements.
func TestGenerateMacros(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		wantDiags int
	}{
		{
			name:     "Object Macro Becomes Constant",
			input:    "#define MAX 100\nint x = MAX;",
			expected: "MAX = 100\nx = MAX\n",
		},
		{
			name:     "Expression Body",
			input:    "#define AREA 3 * 4\nint x = AREA;",
			expected: "AREA = (3 * 4)\nx = AREA\n",
		},
		{
			name:     "Function Macro Becomes Def",
			input:    "#define SQR(x) ((x) * (x))\nint y = SQR(5);",
			expected: "def SQR(x):\n    return (x * x)\ny = SQR(5)\n",
		},
		{
			name:     "Two Parameters",
			input:    "#define SUM(a, b) a + b\nint y = SUM(1, 2);",
			expected: "def SUM(a, b):\n    return (a + b)\ny = SUM(1, 2)\n",
		},
		{
			name:     "Bare Flag Becomes None",
			input:    "#define FLAG\nint x = 1;",
			expected: "FLAG = None\nx = 1\n",
		},
		{
			name:     "Continuation Joins The Body",
			input:    "#define BIG 10 + \\\n    20\nint x = BIG;",
			expected: "BIG = (10 + 20)\nx = BIG\n",
		},
		{
			name:      "Malformed Name Is Skipped",
			input:     "#define 123 1\nint x = 1;",
			expected:  "# malformed #define on line 1 skipped\nx = 1\n",
			wantDiags: 1,
		},
		{
			name:      "Empty Function Macro Is Skipped",
			input:     "#define NOP()\nint x = 1;",
			expected:  "# macro NOP has an empty body; skipped\nx = 1\n",
			wantDiags: 0,
		},
		{
			name:      "Statement Body Is Skipped",
			input:     "#define BAD return 1;\nint x = 1;",
			expected:  "# macro BAD body could not be translated: return 1;\nx = 1\n",
			wantDiags: 1,
		},
		{
			name:      "Nested Define Is Skipped",
			input:     "#define A 1 + \\\n#define B 2\nint x = 1;",
			expected:  "# macro A contains a nested #define; skipped\nx = 1\n",
			wantDiags: 1,
		},
		{
			name:     "Include Directive Is Ignored",
			input:    "#include <stdio.h>\nint x = 1;",
			expected: "x = 1\n",
		},
		{
			name:     "Macros Keep Definition Order",
			input:    "#define A 1\n#define B 2\nint x = A;",
			expected: "A = 1\nB = 2\nx = A\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, diags := genSource(t, tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Generate(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
			if len(diags) != tc.wantDiags {
				t.Errorf("Generate(%q) diagnostics = %v, want %d", tc.input, diags, tc.wantDiags)
			}
		})
	}
}
