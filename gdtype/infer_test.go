package gdtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gdast"
)

func firstExprOf(t *testing.T, src string) gdast.Node {
	t.Helper()
	tree := gdast.ParseFile(src)
	for _, member := range tree.Root().ChildNodes() {
		if member.Kind() != gdast.VariableDeclaration {
			continue
		}
		for _, c := range member.ChildNodes() {
			if c.Kind() != gdast.Block && c.Kind() != gdast.ParameterList {
				return c
			}
		}
	}
	require.Fail(t, "no variable initializer found in "+src)
	return gdast.Node{}
}

func Test_InferExpressionType_Literals(t *testing.T) {
	e := NewEngine(nil)

	assert.Equal(t, "int", e.InferExpressionType(firstExprOf(t, "var x = 1\n"), nil))
	assert.Equal(t, "float", e.InferExpressionType(firstExprOf(t, "var x = 1.5\n"), nil))
	assert.Equal(t, "String", e.InferExpressionType(firstExprOf(t, "var x = \"hi\"\n"), nil))
	assert.Equal(t, "bool", e.InferExpressionType(firstExprOf(t, "var x = true\n"), nil))
	assert.Equal(t, "null", e.InferExpressionType(firstExprOf(t, "var x = null\n"), nil))
	assert.Equal(t, "Array", e.InferExpressionType(firstExprOf(t, "var x = []\n"), nil))
	assert.Equal(t, "Dictionary", e.InferExpressionType(firstExprOf(t, "var x = {}\n"), nil))
}

func Test_InferExpressionType_NilExpr_ReturnsVariant(t *testing.T) {
	e := NewEngine(nil)
	assert.Equal(t, "Variant", e.InferExpressionType(gdast.Node{}, nil))
}
