package gdsem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdsym"
)

func Test_FindReferences_UpgradesExtendsAndTypeAnnotationToStrict(t *testing.T) {
	src := "extends Node\nvar target: Node = null\n"
	project := gdprovider.NewReferenceProject(map[string]string{"a.gd": src}, nil)
	pm, err := gdsym.NewProjectSemanticModel(project)
	require.NoError(t, err)

	occs := FindReferences(pm, gdprovider.NewReferenceRuntime(), "Node", "Node")
	require.NotEmpty(t, occs)
	for _, o := range occs {
		if o.Kind == gdsym.OccurrenceExtends || o.Kind == gdsym.OccurrenceTypeAnnotation {
			assert.Equal(t, gdsym.Strict, o.Confidence)
		}
	}
}

func Test_FindReferences_NoDeclaredTypeLeavesNameMatch(t *testing.T) {
	src := "var counter: int = 0\n"
	project := gdprovider.NewReferenceProject(map[string]string{"a.gd": src}, nil)
	pm, err := gdsym.NewProjectSemanticModel(project)
	require.NoError(t, err)

	occs := FindReferences(pm, nil, "counter", "")
	require.NotEmpty(t, occs)
	for _, o := range occs {
		assert.Equal(t, gdsym.NameMatch, o.Confidence)
	}
}
