package gdvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/config"
)

func Test_ArgumentType_WrongCountAgainstRuntimeMethod(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.get_node()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.WrongArgumentCount)
}

func Test_ArgumentType_MismatchAgainstRuntimeMethod(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.get_node(1)\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.ArgumentTypeMismatch)
}

func Test_ArgumentType_WrongCountAgainstLocalMethod(t *testing.T) {
	src := "func helper(a: int, b: int) -> void:\n\tpass\n" +
		"func f() -> void:\n\thelper(1)\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.WrongArgumentCount)
}

func Test_ArgumentType_CorrectArityProducesNoFinding(t *testing.T) {
	src := "func helper(a: int) -> void:\n\tpass\n" +
		"func f() -> void:\n\thelper(1)\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.WrongArgumentCount)
}
