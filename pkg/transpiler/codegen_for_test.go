package transpiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestGenerateForRange verifies the canonical counting loops map to range
// calls that visit exactly the same integers as the source loop.
func TestGenerateForRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			// visits {0,1,...,9}
			name:     "Ascending Exclusive",
			input:    "for (int i = 0; i < 10; i++) { x = i; }",
			expected: "for i in range(0, 10):\n    x = i\n",
		},
		{
			// visits {0,1,...,10}
			name:     "Ascending Inclusive Adjusts Bound",
			input:    "for (int i = 0; i <= 10; i++) { x = i; }",
			expected: "for i in range(0, 11):\n    x = i\n",
		},
		{
			// visits {10,9,...,1}
			name:     "Descending Exclusive",
			input:    "for (int i = 10; i > 0; i--) { x = i; }",
			expected: "for i in range(10, 0, -1):\n    x = i\n",
		},
		{
			// visits {10,9,...,1}
			name:     "Descending Inclusive Adjusts Bound",
			input:    "for (int i = 10; i >= 1; i--) { x = i; }",
			expected: "for i in range(10, 0, -1):\n    x = i\n",
		},
		{
			name:     "Constant Step Assignment",
			input:    "for (int i = 0; i < 10; i = i + 2) { x = i; }",
			expected: "for i in range(0, 10, 2):\n    x = i\n",
		},
		{
			name:     "Negative Constant Step Assignment",
			input:    "for (int i = 9; i >= 0; i = i - 3) { x = i; }",
			expected: "for i in range(9, -1, -3):\n    x = i\n",
		},
		{
			name:     "Expression Initializer",
			input:    "for (i = 0; i < 5; i++) { x = i; }",
			expected: "for i in range(0, 5):\n    x = i\n",
		},
		{
			name:     "Identifier Bound",
			input:    "for (int i = 0; i <= n; i++) { x = i; }",
			expected: "for i in range(0, (n + 1)):\n    x = i\n",
		},
		{
			name:     "Empty Body Emits Pass",
			input:    "for (int i = 0; i < 3; i++) { }",
			expected: "for i in range(0, 3):\n    pass\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := genSource(t, tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Generate(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

// TestGenerateForFallback verifies loops outside the canonical shape are
// rewritten as init + while + trailing increment, preserving semantics.
func TestGenerateForFallback(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Multiplicative Step",
			input:    "for (int i = 1; i < 100; i = i * 2) { x = i; }",
			expected: "i = 1\nwhile i < 100:\n    x = i\n    i = (i * 2)\n",
		},
		{
			name:     "Unrelated Step Variable",
			input:    "for (int i = 0; i < 10; j++) { x = i; }",
			expected: "i = 0\nwhile i < 10:\n    x = i\n    j += 1\n",
		},
		{
			name:     "Compound Condition",
			input:    "for (int i = 0; i < 10 && ok; i++) { x = i; }",
			expected: "i = 0\nwhile (i < 10) and ok:\n    x = i\n    i += 1\n",
		},
		{
			name:     "Inequality Condition",
			input:    "for (int i = 0; i != 10; i++) { x = i; }",
			expected: "i = 0\nwhile i != 10:\n    x = i\n    i += 1\n",
		},
		{
			name:     "Direction Mismatch",
			input:    "for (int i = 0; i < 10; i--) { x = i; }",
			expected: "i = 0\nwhile i < 10:\n    x = i\n    i -= 1\n",
		},
		{
			name:     "Complex Initializer",
			input:    "for (int i = n * 2; i < 10; i++) { x = i; }",
			expected: "i = (n * 2)\nwhile i < 10:\n    x = i\n    i += 1\n",
		},
		{
			name:     "No Clauses",
			input:    "for (;;) { break; }",
			expected: "while True:\n    break\n",
		},
		{
			name:     "Condition Only",
			input:    "for (; x < 3;) { x = x + 1; }",
			expected: "while x < 3:\n    x = (x + 1)\n",
		},
		{
			name:     "Empty Fallback Body Emits Pass",
			input:    "for (;;) { }",
			expected: "while True:\n    pass\n",
		},
		{
			name:     "Float Bound Falls Back",
			input:    "for (int i = 0; i < 2.5; i++) { x = i; }",
			expected: "i = 0\nwhile i < 2.5:\n    x = i\n    i += 1\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := genSource(t, tc.input)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Generate(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}
