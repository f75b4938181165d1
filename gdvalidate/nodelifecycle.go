package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

// nodeLifecycleValidator implements spec §4.6's "Node lifecycle
// validator": GD7018, a class-level variable initializer that reaches
// for the scene tree before the engine guarantees one exists. `@onready`
// defers the initializer to `_ready()`, where the tree is available;
// without it the initializer runs during `_init()`.
type nodeLifecycleValidator struct{}

func (nodeLifecycleValidator) Name() string { return "node_lifecycle" }

func (v nodeLifecycleValidator) Run(ctx *Context) {
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		if n.Kind() != gdast.VariableDeclaration {
			return
		}
		if _, ok := enclosingMethodDecl(n); ok {
			return
		}
		if hasOnreadyAttribute(n) {
			return
		}
		init := initializerOf(n)
		if init.IsNil() {
			return
		}
		if ref, ok := findNodeAccess(init); ok {
			ctx.emit(gddiag.NodeAccessBeforeReady, ref,
				"node access in a class-level initializer requires @onready")
		}
	})
}

func hasOnreadyAttribute(decl gdast.Node) bool {
	for _, attr := range decl.AttributesBefore() {
		for _, tok := range attr.ChildTokens() {
			if tok.Text() == "@onready" {
				return true
			}
		}
	}
	return false
}

// nodeAccessCallNames are bare/self calls that reach into the scene
// tree and therefore require the node to already exist.
var nodeAccessCallNames = map[string]bool{
	"get_node": true, "get_node_or_null": true, "find_child": true,
	"get_parent": true, "get_tree": true,
}

func findNodeAccess(n gdast.Node) (gdast.Node, bool) {
	if n.Kind() == gdast.GetNodeExpression {
		return n, true
	}
	if n.Kind() == gdast.CallExpression {
		if info, ok := decomposeCall(n); ok && nodeAccessCallNames[info.Name] {
			return n, true
		}
	}
	for _, c := range n.ChildNodes() {
		if ref, ok := findNodeAccess(c); ok {
			return ref, true
		}
	}
	return gdast.Node{}, false
}
