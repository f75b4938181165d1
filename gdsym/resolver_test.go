package gdsym

import (
	"testing"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve_ClassMembers(t *testing.T) {
	src := "extends Node2D\nvar health: int = 10\nconst MAX_HEALTH = 100\nsignal died\n\nfunc heal(amount: int) -> void:\n\thealth += amount\n"
	fm := Resolve(gdast.ParseFile(src))

	healthSym, ok := fm.ClassScope.LookupLocal("health")
	require.True(t, ok)
	assert.Equal(t, KindVariable, healthSym.Kind)
	assert.Equal(t, "int", healthSym.DeclaredType)

	maxSym, ok := fm.ClassScope.LookupLocal("MAX_HEALTH")
	require.True(t, ok)
	assert.Equal(t, KindConstant, maxSym.Kind)

	_, ok = fm.ClassScope.LookupLocal("died")
	assert.True(t, ok)
}

func Test_Resolve_MethodParamsAndLocals(t *testing.T) {
	src := "func f(x: int):\n\tvar y = x + 1\n\treturn y\n"
	fm := Resolve(gdast.ParseFile(src))

	var method gdast.Node
	for _, m := range fm.Tree.Root().ChildNodes() {
		if m.Kind() == gdast.MethodDeclaration {
			method = m
		}
	}
	require.False(t, method.IsNil())

	methodScope := fm.ScopeAt(method)
	require.NotNil(t, methodScope)
	_, ok := methodScope.LookupLocal("x")
	assert.True(t, ok)
}

func Test_Scope_ShadowingInnermostWins(t *testing.T) {
	outer := newScope(ScopeClass, nil)
	outer.declare(&Symbol{Name: "x", Kind: KindVariable, DeclaredType: "int"})

	inner := newScope(ScopeMethod, outer)
	inner.declare(&Symbol{Name: "x", Kind: KindParameter, DeclaredType: "String"})

	sym, ok := inner.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "String", sym.DeclaredType)

	sym, ok = outer.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "int", sym.DeclaredType)
}

func Test_Resolve_InnerClass(t *testing.T) {
	src := "class Helper:\n\tvar value = 1\n\nvar outer_field = 2\n"
	fm := Resolve(gdast.ParseFile(src))

	_, ok := fm.ClassScope.LookupLocal("Helper")
	require.True(t, ok)
	_, ok = fm.ClassScope.LookupLocal("outer_field")
	require.True(t, ok)
}
