package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdtoken"
)

// genericTypeValidator checks Array[T] and Dictionary[K,V] annotations:
// every type parameter must be a known type (or Variant), and a
// Dictionary's key type must be hashable (spec §4.6 "Generic type
// validator").
type genericTypeValidator struct{}

func (genericTypeValidator) Name() string { return "generic_type" }

var neverHashable = map[string]bool{
	"Array": true, "Dictionary": true,
	"PackedByteArray": true, "PackedInt32Array": true, "PackedInt64Array": true,
	"PackedFloat32Array": true, "PackedFloat64Array": true,
	"PackedStringArray": true, "PackedVector2Array": true,
	"PackedVector3Array": true, "PackedColorArray": true,
}

func (v genericTypeValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		switch n.Kind() {
		case gdast.ArrayTypeNode:
			v.checkArrayType(ctx, n)
		case gdast.DictionaryTypeNode:
			v.checkDictionaryType(ctx, n)
		}
	})
}

func typeParamIdentifiers(n gdast.Node) []string {
	var out []string
	inBrackets := false
	for _, tok := range n.ChildTokens() {
		if tok.Kind() == gdtoken.Punctuation && tok.Text() == "[" {
			inBrackets = true
		}
		if inBrackets && tok.Kind() == gdtoken.Identifier {
			out = append(out, tok.Text())
		}
	}
	return out
}

func (v genericTypeValidator) checkArrayType(ctx *Context, n gdast.Node) {
	params := typeParamIdentifiers(n)
	if len(params) == 0 {
		return
	}
	v.checkKnownType(ctx, n, params[0])
}

func (v genericTypeValidator) checkDictionaryType(ctx *Context, n gdast.Node) {
	params := typeParamIdentifiers(n)
	if len(params) < 2 {
		return
	}
	key, val := params[0], params[1]
	v.checkKnownType(ctx, n, key)
	v.checkKnownType(ctx, n, val)
	if neverHashable[key] {
		ctx.emit(gddiag.DictionaryKeyNotHashable, n, key+" cannot be used as a Dictionary key type")
	}
}

func (v genericTypeValidator) checkKnownType(ctx *Context, n gdast.Node, name string) {
	if name == "" || name == "Variant" || ctx.Model.Runtime == nil {
		return
	}
	if !ctx.Model.Runtime.IsKnownType(name) {
		if _, ok := ctx.Model.FindSymbol(name); ok {
			return
		}
		ctx.emit(gddiag.InvalidGenericArgument, n, name+" is not a known type")
	}
}
