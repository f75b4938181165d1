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

func Test_GenericType_UnknownArrayElementType(t *testing.T) {
	src := "var items: Array[NotARealType]\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.InvalidGenericArgument)
}

func Test_GenericType_DictionaryKeyNotHashable(t *testing.T) {
	src := "var lookup: Dictionary[Array, int]\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.DictionaryKeyNotHashable)
}

func Test_GenericType_KnownTypesProduceNoFinding(t *testing.T) {
	src := "var items: Array[int]\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.InvalidGenericArgument)
}
