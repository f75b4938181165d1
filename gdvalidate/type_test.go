package gdvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/config"
)

func findVariableDeclaration(tree *gdast.Tree) (gdast.Node, bool) {
	var found gdast.Node
	var ok bool
	walk(tree.Root(), func(n gdast.Node) {
		if !ok && n.Kind() == gdast.VariableDeclaration {
			found, ok = n, true
		}
	})
	return found, ok
}

func Test_Type_ComparisonWithNullIsAlwaysFalse(t *testing.T) {
	src := "func f(x: int) -> void:\n\tif x < null:\n\t\tpass\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.ComparisonWithNull)
}

func Test_Type_IncompatibleReturnType(t *testing.T) {
	src := "func f() -> int:\n\treturn \"hello\"\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.IncompatibleReturnType)
}

func Test_Type_InvalidOperandType(t *testing.T) {
	src := "func f() -> void:\n\tvar x = \"a\" - 1\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.InvalidOperandType)
}

func Test_Type_InvalidAssignment(t *testing.T) {
	src := "var x: int = \"hello\"\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.InvalidAssignment)
}

func Test_Type_AwaitOnLiteralNeverSuspends(t *testing.T) {
	src := "func f() -> void:\n\tawait 1\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.AwaitOnNonAwaitable)
}

func Test_DeclaredTypeOf_SkipsAnnotationColon(t *testing.T) {
	tree := gdast.ParseFile("var x: int = 1\n")
	decl, ok := findVariableDeclaration(tree)
	require.True(t, ok)
	assert.Equal(t, "int", declaredTypeOf(decl))
}

func Test_Type_CompatibleReturnTypeProducesNoFinding(t *testing.T) {
	src := "func f() -> int:\n\treturn 1\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.IncompatibleReturnType)
}
