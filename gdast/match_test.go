package gdast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchBranches(t *testing.T, tree *Tree) []Node {
	t.Helper()
	var match Node
	for _, n := range tree.Root().AllNodes() {
		if n.Kind() == MatchStatement {
			match = n
			break
		}
	}
	require.False(t, match.IsNil(), "no MatchStatement found")
	var branches []Node
	for _, c := range match.ChildNodes() {
		if c.Kind() == MatchBranch {
			branches = append(branches, c)
		}
	}
	return branches
}

func Test_ParseMatch_VariableBindingPattern_RoundTrips(t *testing.T) {
	src := "func f(x):\n\tmatch x:\n\t\tvar y:\n\t\t\tpass\n"
	tree := ParseFile(src)
	assert.Equal(t, src, RenderOrigin(tree.Root()))

	branches := matchBranches(t, tree)
	require.Len(t, branches, 1)
	pat := branches[0].ChildNodes()[0]
	require.Equal(t, MatchPattern, pat.Kind())
	toks := pat.ChildTokens()
	require.Len(t, toks, 3) // var, the separating space, y
	assert.Equal(t, "var", toks[0].Text())
	assert.Equal(t, "y", toks[2].Text())

	body := branches[0].ChildNodes()[len(branches[0].ChildNodes())-1]
	require.Equal(t, Block, body.Kind())
	require.Len(t, body.ChildNodes(), 1)
	assert.Equal(t, PassStatement, body.ChildNodes()[0].Kind())
}

func Test_ParseMatch_GuardClause_RoundTrips(t *testing.T) {
	src := "func f(x):\n\tmatch x:\n\t\tvar y when y > 0:\n\t\t\tpass\n"
	tree := ParseFile(src)
	assert.Equal(t, src, RenderOrigin(tree.Root()))

	branches := matchBranches(t, tree)
	require.Len(t, branches, 1)
	// pattern, then the guard expression, then the body block.
	children := branches[0].ChildNodes()
	require.Len(t, children, 3)
	assert.Equal(t, MatchPattern, children[0].Kind())
	assert.True(t, children[1].Kind().IsExpression())
	assert.Equal(t, Block, children[2].Kind())
}

func Test_ParseMatch_ArrayDestructuringPattern_RoundTrips(t *testing.T) {
	src := "func f(x):\n\tmatch x:\n\t\t[1, var y, ..]:\n\t\t\tpass\n"
	tree := ParseFile(src)
	assert.Equal(t, src, RenderOrigin(tree.Root()))

	branches := matchBranches(t, tree)
	require.Len(t, branches, 1)
	pat := branches[0].ChildNodes()[0]
	require.Equal(t, MatchPattern, pat.Kind())
	arr := pat.ChildNodes()[0]
	require.Equal(t, ArrayInitializer, arr.Kind())

	elems := arr.ChildNodes()
	require.Len(t, elems, 3)
	for _, el := range elems {
		assert.Equal(t, MatchPattern, el.Kind())
	}
	// middle element is the `var y` binding.
	midToks := elems[1].ChildTokens()
	require.Len(t, midToks, 4) // leading space, var, space, y
	assert.Equal(t, "var", midToks[1].Text())
}

func Test_ParseMatch_DictionaryDestructuringPattern_RoundTrips(t *testing.T) {
	src := "func f(x):\n\tmatch x:\n\t\t{\"a\": var y, ..}:\n\t\t\tpass\n"
	tree := ParseFile(src)
	assert.Equal(t, src, RenderOrigin(tree.Root()))

	branches := matchBranches(t, tree)
	require.Len(t, branches, 1)
	pat := branches[0].ChildNodes()[0]
	dict := pat.ChildNodes()[0]
	require.Equal(t, DictionaryInitializer, dict.Kind())

	children := dict.ChildNodes()
	require.Len(t, children, 2)
	assert.Equal(t, DictionaryEntry, children[0].Kind())
	assert.Equal(t, MatchPattern, children[1].Kind())
}

func Test_ParseMatch_MultiplePatternsCommaSeparated_RoundTrips(t *testing.T) {
	src := "func f(x):\n\tmatch x:\n\t\t1, 2, 3:\n\t\t\tpass\n"
	tree := ParseFile(src)
	assert.Equal(t, src, RenderOrigin(tree.Root()))

	branches := matchBranches(t, tree)
	require.Len(t, branches, 1)
	var patterns int
	for _, c := range branches[0].ChildNodes() {
		if c.Kind() == MatchPattern {
			patterns++
		}
	}
	assert.Equal(t, 3, patterns)
}
