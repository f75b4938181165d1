package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

// indexerValidator enforces spec §4.6's "Indexer validator": integer
// keys for sequence-like containers, any key for Dictionary/Variant,
// and a hard rejection of indexing into a scalar.
type indexerValidator struct{}

func (indexerValidator) Name() string { return "indexer" }

var sequenceContainers = map[string]bool{
	"Array": true, "String": true, "StringName": true,
	"PackedByteArray": true, "PackedInt32Array": true, "PackedInt64Array": true,
	"PackedFloat32Array": true, "PackedFloat64Array": true,
	"PackedStringArray": true, "PackedVector2Array": true,
	"PackedVector3Array": true, "PackedColorArray": true,
}

var nonIndexable = map[string]bool{
	"int": true, "float": true, "bool": true, "void": true,
}

func (v indexerValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		if n.Kind() != gdast.IndexerExpression {
			return
		}
		children := n.ChildNodes()
		if len(children) != 2 {
			return
		}
		base, key := children[0], children[1]
		baseType := ctx.Model.GetExpressionType(base)
		if baseType == "" || baseType == "Variant" {
			v.checkUnguarded(ctx, n, base)
			return
		}
		if nonIndexable[baseType] {
			ctx.emit(gddiag.NotIndexable, n, baseType+" cannot be indexed")
			return
		}
		keyType := ctx.Model.GetExpressionType(key)
		if keyType == "" || keyType == "Variant" {
			return
		}
		if sequenceContainers[baseType] {
			if keyType != "int" {
				ctx.emit(gddiag.IndexerKeyTypeMismatch, key,
					baseType+" requires an int key, got "+keyType)
			}
			return
		}
		// Dictionary and any user/engine class with a custom operator[]
		// accept any key (spec "any key for Dictionary/Variant").
	})
}

// checkUnguarded flags indexing a value whose static type is unresolved
// (empty or Variant) with no duck-type evidence that it even supports
// operator[], the indexer-expression counterpart of memberAccessValidator's
// confNameMatch case.
func (v indexerValidator) checkUnguarded(ctx *Context, n, base gdast.Node) {
	if base.Kind() != gdast.IdentifierExpression {
		return
	}
	name := identName(base)
	if name == "" {
		return
	}
	if fv := ctx.Model.GetFlowVariableType(name, base); fv != nil && fv.Duck != nil {
		// Has at least some duck-type evidence narrowed onto it; treat
		// as the caller's responsibility rather than double-warning.
		return
	}
	ctx.emit(gddiag.UnguardedIndexerAccess, n,
		"indexing "+name+" of unconfirmed type; narrow with an 'is' check first")
}
