package gdvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/config"
)

func Test_Annotation_WiderThanInferred(t *testing.T) {
	src := "var x: Variant = 1\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.AnnotationWiderThanInferred)
}

func Test_Annotation_RedundantAnnotation(t *testing.T) {
	src := "var x: int = 1\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.RedundantAnnotation)
}

func Test_Annotation_ContainerMissingSpecialization(t *testing.T) {
	src := "var items: Array = [1, 2, 3]\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.ContainerMissingSpecialization)
}

func Test_Annotation_UntypedContainerElementRead(t *testing.T) {
	src := "var items: Array = [1, 2, 3]\n" +
		"func f() -> void:\n\tvar v = items[0]\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.UntypedContainerElementRead)
}

func Test_Annotation_SpecializedArrayProducesNoFinding(t *testing.T) {
	src := "var items: Array[int] = [1, 2, 3]\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.ContainerMissingSpecialization)
}
