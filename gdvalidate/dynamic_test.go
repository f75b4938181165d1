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

func Test_DynamicCall_UnknownMethodName(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.call(\"nonexistent_method\")\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.DynamicMethodNotFound)
}

func Test_DynamicCall_UnknownPropertyName(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.get(\"nonexistent_prop\")\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.DynamicPropertyNotFound)
}

func Test_DynamicCall_DictionaryGetIsSkipped(t *testing.T) {
	src := "func f(d: Dictionary) -> void:\n\td.get(\"anything\")\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.DynamicPropertyNotFound)
}

func Test_DynamicCall_KnownMethodProducesNoFinding(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.call(\"queue_free\")\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.DynamicMethodNotFound)
}
