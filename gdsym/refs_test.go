package gdsym

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gdprovider"
)

func occurrenceKinds(occs []Occurrence) []OccurrenceKind {
	out := make([]OccurrenceKind, len(occs))
	for i, o := range occs {
		out[i] = o.Kind
	}
	return out
}

func Test_FindReferences_ClassifiesTypePositions(t *testing.T) {
	src := "extends Foo\n" +
		"var x: Foo = null\n" +
		"func f(p: Foo) -> void:\n" +
		"\tif x is Foo:\n" +
		"\t\tpass\n"
	project := gdprovider.NewReferenceProject(map[string]string{"a.gd": src}, nil)
	pm, err := NewProjectSemanticModel(project)
	require.NoError(t, err)

	occs := pm.FindReferences("Foo")
	kinds := occurrenceKinds(occs)

	assert.Contains(t, kinds, OccurrenceExtends)
	assert.Contains(t, kinds, OccurrenceTypeAnnotation)
	assert.Contains(t, kinds, OccurrenceTypeCheck)
	for _, o := range occs {
		assert.Equal(t, NameMatch, o.Confidence)
	}
}

func Test_FindReferences_ClassifiesCall(t *testing.T) {
	src := "func helper() -> void:\n\tpass\n\nfunc g() -> void:\n\thelper()\n"
	project := gdprovider.NewReferenceProject(map[string]string{"a.gd": src}, nil)
	pm, err := NewProjectSemanticModel(project)
	require.NoError(t, err)

	occs := pm.FindReferences("helper")
	kinds := occurrenceKinds(occs)

	assert.Contains(t, kinds, OccurrenceDeclaration)
	assert.Contains(t, kinds, OccurrenceCall)
}

func Test_FindReferences_DeclarationAndWriteAndRead(t *testing.T) {
	src := "var counter: int = 0\n" +
		"func bump() -> void:\n" +
		"\tcounter = counter + 1\n"
	project := gdprovider.NewReferenceProject(map[string]string{"a.gd": src}, nil)
	pm, err := NewProjectSemanticModel(project)
	require.NoError(t, err)

	occs := pm.FindReferences("counter")
	kinds := occurrenceKinds(occs)

	assert.Contains(t, kinds, OccurrenceDeclaration)
	assert.Contains(t, kinds, OccurrenceWrite)
	assert.Contains(t, kinds, OccurrenceRead)
}

func Test_FindReferences_ClassNameIsDeclaration(t *testing.T) {
	src := "class_name Player\nextends Node\n"
	project := gdprovider.NewReferenceProject(map[string]string{"a.gd": src}, nil)
	pm, err := NewProjectSemanticModel(project)
	require.NoError(t, err)

	occs := pm.FindReferences("Player")
	require.Len(t, occs, 1)
	assert.Equal(t, OccurrenceDeclaration, occs[0].Kind)
}
