package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

// sceneNodeValidator implements spec §4.6's "Scene node validator":
// checks `$Path`, `%UniqueName`, and a strict `get_node("…")` call
// against every scene known to use this file's script, warning only
// when the path is missing from every one of them. Degrades to silence
// when no scene provider is configured or this script is used by no
// known scene (spec §9's graceful-degradation rule for an absent
// semantic surface).
type sceneNodeValidator struct{}

func (sceneNodeValidator) Name() string { return "scene_node" }

func (v sceneNodeValidator) Run(ctx *Context) {
	if ctx.Model == nil || ctx.Model.Scenes == nil {
		return
	}
	scenes := ctx.Model.Scenes.GetScenesForScript(ctx.Model.ScriptPath)
	if len(scenes) == 0 {
		return
	}
	walk(ctx.Tree.Root(), func(n gdast.Node) {
		switch n.Kind() {
		case gdast.GetNodeExpression:
			v.checkNodeRef(ctx, n, scenes)
		case gdast.CallExpression:
			v.checkGetNodeCall(ctx, n, scenes)
		}
	})
}

func (v sceneNodeValidator) checkNodeRef(ctx *Context, n gdast.Node, scenes []string) {
	path := n.NodeRefPath()
	if path == "" {
		return
	}
	unique := n.IsUniqueNodeRef()
	for _, scene := range scenes {
		if unique {
			if _, ok := ctx.Model.Scenes.GetUniqueNodeType(scene, path); ok {
				return
			}
			continue
		}
		if _, ok := ctx.Model.Scenes.GetNodeType(scene, path); ok {
			return
		}
	}
	if unique {
		ctx.emit(gddiag.InvalidUniqueNode, n, "no scene using this script declares a unique node named %"+path)
		return
	}
	ctx.emit(gddiag.InvalidNodePath, n, "no scene using this script has a node at "+path)
}

func (v sceneNodeValidator) checkGetNodeCall(ctx *Context, n gdast.Node, scenes []string) {
	info, ok := decomposeCall(n)
	if !ok || info.Name != "get_node" {
		return
	}
	if !info.IsBare && !isSelfOrSuper(info.Receiver) {
		return
	}
	if len(info.Args) != 1 || info.Args[0].Kind() != gdast.StringExpression {
		return
	}
	path := stringLiteralValue(info.Args[0])
	if path == "" {
		return
	}
	for _, scene := range scenes {
		if _, ok := ctx.Model.Scenes.GetNodeType(scene, path); ok {
			return
		}
	}
	ctx.emit(gddiag.InvalidNodePath, n, "no scene using this script has a node at "+path)
}
