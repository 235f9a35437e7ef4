package transpiler

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestGeneratePrintf verifies format rescanning and positional argument
// interpolation for printf.
func TestGeneratePrintf(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		wantDiags int
	}{
		{
			name:     "Plain String With Newline",
			input:    `printf("Hello\n");`,
			expected: "print(\"Hello\")\n",
		},
		{
			name:     "No Trailing Newline Suppresses Line Ending",
			input:    `printf("hi");`,
			expected: "print(\"hi\", end=\"\")\n",
		},
		{
			name:     "Interior Newline Is Preserved",
			input:    `printf("a\nb");`,
			expected: "print(\"a\\nb\", end=\"\")\n",
		},
		{
			name:     "Single Integer Specifier",
			input:    `printf("%d\n", x);`,
			expected: "print(f\"{x}\")\n",
		},
		{
			name:     "Mixed Specifiers In Order",
			input:    `printf("x=%d y=%f\n", x, y);`,
			expected: "print(f\"x={x} y={y}\")\n",
		},
		{
			name:     "Width And Precision Are Discarded",
			input:    `printf("%5.2f\n", y);`,
			expected: "print(f\"{y}\")\n",
		},
		{
			name:     "Length Modifier Is Discarded",
			input:    `printf("%ld\n", n);`,
			expected: "print(f\"{n}\")\n",
		},
		{
			name:     "String Specifier",
			input:    `printf("%s\n", name);`,
			expected: "print(f\"{name}\")\n",
		},
		{
			name:     "Escaped Backslash Before N Is Not A Newline",
			input:    `printf("ab\\n");`,
			expected: "print(\"ab\\\\n\", end=\"\")\n",
		},
		{
			name:     "Escaped Backslash Then Real Newline",
			input:    `printf("ab\\n\n");`,
			expected: "print(\"ab\\\\n\")\n",
		},
		{
			name:     "Percent Escape Stays Literal",
			input:    `printf("100%%\n");`,
			expected: "print(\"100%\")\n",
		},
		{
			name:     "Braces Are Doubled",
			input:    `printf("set {%d}\n", x);`,
			expected: "print(f\"set {{{x}}}\")\n",
		},
		{
			name:     "Expression Argument",
			input:    `printf("%d\n", a + b);`,
			expected: "print(f\"{(a + b)}\")\n",
		},
		{
			name:      "Specifier Without Argument Stays Literal",
			input:     `printf("%d %d\n", x);`,
			expected:  "print(f\"{x} %d\")\n",
			wantDiags: 1,
		},
		{
			name:      "Argument Without Specifier Warns",
			input:     `printf("%d\n", x, y);`,
			expected:  "print(f\"{x}\")\n",
			wantDiags: 1,
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

// TestGenerateScanf verifies the input() rewrites for scanf targets.
func TestGenerateScanf(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Integer Target",
			input:    `scanf("%d", &x);`,
			expected: "x = int(input())\n",
		},
		{
			name:     "Float Target",
			input:    `scanf("%f", &y);`,
			expected: "y = float(input())\n",
		},
		{
			name:     "Char Target Takes First Character",
			input:    `scanf("%c", &c);`,
			expected: "c = input()[0]\n",
		},
		{
			name:     "String Target Passes Through",
			input:    `scanf("%s", &name);`,
			expected: "name = input()\n",
		},
		{
			name:     "Hex Target Converts Base Sixteen",
			input:    `scanf("%x", &mask);`,
			expected: "mask = int(input(), 16)\n",
		},
		{
			name:     "Octal Target Converts Base Eight",
			input:    `scanf("%o", &perm);`,
			expected: "perm = int(input(), 8)\n",
		},
		{
			name:     "Array Element Target",
			input:    `scanf("%d", &arr[2]);`,
			expected: "arr[2] = int(input())\n",
		},
		{
			name:     "Multiple Targets Share One Line",
			input:    `scanf("%d %f", &a, &b);`,
			expected: "_fields = input().split()\na = int(_fields[0])\nb = float(_fields[1])\n",
		},
		{
			name:     "Excess Target Gets No Conversion",
			input:    `scanf("%d", &a, &b);`,
			expected: "_fields = input().split()\na = int(_fields[0])\nb = _fields[1]\n",
		},
		{
			name:     "No Targets Still Consumes A Line",
			input:    `scanf("%d");`,
			expected: "input()\n",
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

func TestGenerateScanfNonLvalue(t *testing.T) {
	got, diags := genSource(t, `scanf("%d", x);`)

	expected := "# scanf argument x is not a simple &variable\nx = int(input())\n"
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "address-of") {
		t.Errorf("expected one address-of diagnostic, got %v", diags)
	}
}
