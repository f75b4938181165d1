package gdast

import (
	"testing"

	"github.com/dekarrin/gdlint/gdtoken"
	"github.com/dekarrin/gdlint/internal/gderrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDescendants(n Node) []Node {
	var out []Node
	var walk func(Node)
	walk = func(cur Node) {
		out = append(out, cur)
		for _, c := range cur.ChildNodes() {
			walk(c)
		}
	}
	walk(n)
	return out
}

func Test_ParseFile_RoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"CRLF script", "extends Node2D\r\nvar x = 1\r\n\r\nfunc f():\r\n\tpass\r\n"},
		{"if elif else", "func f(x):\n\tif x > 0:\n\t\tpass\n\telif x < 0:\n\t\tpass\n\telse:\n\t\tpass\n"},
		{"for loop", "func f():\n\tfor i in range(10):\n\t\tprint(i)\n"},
		{"match statement", "func f(x):\n\tmatch x:\n\t\t1:\n\t\t\tpass\n\t\t_:\n\t\t\tpass\n"},
		{"comment preserved", "var x = 1 # a comment\n"},
		{"stray invalid character", "var x = 1 § 2\n"},
		{"unterminated string", "var x = \"hello"},
		{"nested class", "class Inner:\n\tvar y = 2\n\nvar x = 1\n"},
		{"annotated export", "@export var health: int = 10\n"},
		{"lambda expression", "func f():\n\tvar g = func(x): return x + 1\n"},
		{"dictionary initializer", "var d = {\"a\": 1, \"b\": 2}\n"},
		{"ternary expression", "var x = 1 if true else 2\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := ParseFile(tc.input)
			assert.Equal(t, tc.input, RenderOrigin(tree.Root()))
		})
	}
}

func Test_ParseFile_CanonicalEquivalence(t *testing.T) {
	input := "extends Node2D\r\nvar x = 1\r\n\r\nfunc f():\r\n\tpass\r\n"
	tree := ParseFile(input)
	assert.Equal(t, strings_ReplaceCR(input), RenderCanonical(tree.Root()))
}

// strings_ReplaceCR mirrors S.replace("\r","") from the spec's property 2
// without importing strings just for one call site used by a single test.
func strings_ReplaceCR(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\r' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func Test_ParseFile_NoDropTokenPartition(t *testing.T) {
	input := "func f(x):\n\tx.attack()\n"
	tree := ParseFile(input)
	toks := tree.Root().AllTokens()

	var rebuilt string
	for _, tk := range toks {
		rebuilt += tk.Text()
	}
	assert.Equal(t, input, rebuilt)
}

func Test_ParseFile_ParentConsistency(t *testing.T) {
	input := "func f(x):\n\tif x is Node2D:\n\t\tx.get_position()\n"
	tree := ParseFile(input)

	for _, n := range allDescendants(tree.Root()) {
		parent, ok := n.Parent()
		if !ok {
			continue // root
		}
		found := false
		for _, c := range parent.ChildNodes() {
			if c.Equal(n) {
				found = true
				break
			}
		}
		assert.True(t, found, "parent.children must contain n")
	}
}

func Test_Tree_CloneIsolation(t *testing.T) {
	input := "var x = 1\nvar y = 2\n"
	tree := ParseFile(input)
	clone := tree.Clone()

	assert.Equal(t, RenderOrigin(tree.Root()), RenderOrigin(clone.Root()))

	root := clone.Root()
	require.Greater(t, root.ChildCount(), 0)
	err := root.RemoveChild(0)
	require.NoError(t, err)

	assert.Equal(t, input, RenderOrigin(tree.Root()))
	assert.NotEqual(t, RenderOrigin(tree.Root()), RenderOrigin(clone.Root()))
}

func Test_Tree_FreezeImmutability(t *testing.T) {
	input := "var x = 1\n"
	tree := ParseFile(input)
	tree.Freeze()

	root := tree.Root()
	require.Greater(t, root.ChildCount(), 0)
	before := RenderOrigin(root)

	err := root.RemoveChild(0)
	assert.ErrorIs(t, err, gderrors.ErrFrozenTree)
	assert.Equal(t, before, RenderOrigin(root))
}

func Test_Tree_FreezeConcurrentReadsConsistent(t *testing.T) {
	input := "func f():\n\tvar x = 1\n\treturn x\n"
	tree := ParseFile(input)
	tree.Freeze()

	want := len(tree.Root().AllTokens())

	results := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			results <- len(tree.Root().AllTokens())
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-results)
	}
}

func Test_ParseFile_CommentAndCRPreservation_Idempotent(t *testing.T) {
	input := "extends Node2D\r\nvar x = 1 # keep me\r\nfunc f():\r\n\tpass\r\n"
	first := RenderOrigin(ParseFile(input).Root())
	second := RenderOrigin(ParseFile(first).Root())
	assert.Equal(t, first, second)
}

func Test_ParseFile_InvalidTokenPreservation(t *testing.T) {
	input := "var x = §\nvar y = \"unterminated\n"
	tree := ParseFile(input)
	assert.Equal(t, input, RenderOrigin(tree.Root()))

	var foundInvalidText bool
	for _, tok := range tree.Root().AllTokens() {
		if tok.Kind() == gdtoken.Invalid {
			foundInvalidText = true
		}
	}
	assert.True(t, foundInvalidText)
}

func Test_E1_LosslessCRLFRoundTrip(t *testing.T) {
	input := "extends Node2D\r\nvar x = 1\r\n\r\nfunc f():\r\n\tpass\r\n"
	tree := ParseFile(input)

	assert.Equal(t, input, RenderOrigin(tree.Root()))
	assert.Equal(t, strings_ReplaceCR(input), RenderCanonical(tree.Root()))

	crCount := 0
	for _, tok := range tree.Root().AllTokens() {
		if tok.Kind() == gdtoken.CarriageReturn {
			crCount++
		}
	}
	assert.Equal(t, 5, crCount)
}

func Test_ParseExpression_RoundTrip(t *testing.T) {
	input := "x.attack() if x is Node2D else 0"
	tree := ParseExpression(input)
	assert.Equal(t, input, RenderOrigin(tree.Root()))
}
