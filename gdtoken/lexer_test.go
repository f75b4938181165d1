package gdtoken

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func renderOrigin(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func Test_Tokenize_LosslessRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "CRLF script",
			input: "extends Node2D\r\nvar x = 1\r\n\r\nfunc f():\r\n\tpass\r\n",
		},
		{
			name:  "mixed line endings",
			input: "var a = 1\nvar b = 2\r\nvar c = 3\r",
		},
		{
			name:  "comment preserved",
			input: "var x = 1 # a comment\n",
		},
		{
			name:  "stray invalid character",
			input: "var x = 1 § 2\n",
		},
		{
			name:  "unterminated string",
			input: "var x = \"hello",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := Tokenize(tc.input)
			assert.Equal(t, tc.input, renderOrigin(toks))
		})
	}
}

func Test_Tokenize_CRLF_TokenCounts(t *testing.T) {
	input := "extends Node2D\r\nvar x = 1\r\n\r\nfunc f():\r\n\tpass\r\n"
	toks := Tokenize(input)

	crCount := 0
	for _, tk := range toks {
		if tk.Kind == CarriageReturn {
			crCount++
		}
	}
	assert.Equal(t, 5, crCount)
}

func Test_Tokenize_KeywordsVsIdentifiers(t *testing.T) {
	toks := Tokenize("func my_func(x):")
	assert.Equal(t, Keyword, toks[0].Kind)
	assert.Equal(t, "func", toks[0].SubKind)

	var identFound bool
	for _, tk := range toks {
		if tk.Kind == Identifier && tk.Text == "my_func" {
			identFound = true
		}
	}
	assert.True(t, identFound)
}

func Test_Tokenize_NumberClassification(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect Kind
	}{
		{"decimal int", "123", NumberInt},
		{"float with dot", "1.5", NumberFloat},
		{"float with exponent", "1e10", NumberFloat},
		{"hex", "0xFF", NumberHex},
		{"binary", "0b1010", NumberBinary},
		{"underscore separated", "1_000_000", NumberInt},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := Tokenize(tc.input)
			require := toks[0]
			assert.Equal(t, tc.expect, require.Kind)
			assert.Equal(t, tc.input, require.Text)
		})
	}
}

func Test_Tokenize_StringVariants(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect Kind
	}{
		{"single quoted", "'hello'", StringSingle},
		{"double quoted", "\"hello\"", StringDouble},
		{"string name", "&\"hello\"", StringName},
		{"node path", "^\"Path/To/Node\"", StringNodePath},
		{"triple quoted", "\"\"\"hello\nworld\"\"\"", StringMultiline},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := Tokenize(tc.input)
			assert.Equal(t, tc.expect, toks[0].Kind)
			assert.Equal(t, tc.input, toks[0].Text)
		})
	}
}

func Test_Tokenize_UnterminatedStringMarked(t *testing.T) {
	toks := Tokenize(`var x = "hello`)
	var str Token
	for _, tk := range toks {
		if tk.Kind == StringDouble {
			str = tk
		}
	}
	assert.Equal(t, "unterminated", str.SubKind)
}

func Test_Tokenize_InvalidCharacterPreserved(t *testing.T) {
	toks := Tokenize("var x = §\n")
	var found bool
	for _, tk := range toks {
		if tk.Kind == Invalid {
			found = true
			assert.Equal(t, "§", tk.Text)
		}
	}
	assert.True(t, found)
}

func Test_Tokenize_OperatorMaximalMunch(t *testing.T) {
	toks := Tokenize("x **= 2")
	var op Token
	for _, tk := range toks {
		if tk.Kind == Operator && tk.SubKind == "**=" {
			op = tk
		}
	}
	assert.Equal(t, "**=", op.Text)
}
