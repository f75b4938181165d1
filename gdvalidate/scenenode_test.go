package gdvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/config"
)

func newSceneModel(t *testing.T, tree *gdast.Tree, scriptPath string, scenePath string, nodes ...gdprovider.SceneNodeRef) *gdsem.Model {
	t.Helper()
	scenes := gdprovider.NewReferenceScene()
	scenes.AttachScript(scriptPath, scenePath)
	for _, n := range nodes {
		scenes.AddNode(scenePath, n)
	}
	model := gdsem.New(tree, nil)
	model.ScriptPath = scriptPath
	model.Scenes = scenes
	return model
}

func Test_SceneNode_InvalidNodePath(t *testing.T) {
	src := "func f() -> void:\n\tvar n = $Missing\n"
	tree := gdast.ParseFile(src)
	model := newSceneModel(t, tree, "res://player.gd", "res://player.tscn",
		gdprovider.SceneNodeRef{Path: "Sprite2D", Type: "Sprite2D"})
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "player.gd")
	assert.Contains(t, codes(diags), gddiag.InvalidNodePath)
}

func Test_SceneNode_ValidNodePathProducesNoFinding(t *testing.T) {
	src := "func f() -> void:\n\tvar n = $Sprite2D\n"
	tree := gdast.ParseFile(src)
	model := newSceneModel(t, tree, "res://player.gd", "res://player.tscn",
		gdprovider.SceneNodeRef{Path: "Sprite2D", Type: "Sprite2D"})
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "player.gd")
	assert.NotContains(t, codes(diags), gddiag.InvalidNodePath)
}

func Test_SceneNode_InvalidUniqueNode(t *testing.T) {
	src := "func f() -> void:\n\tvar n = %Missing\n"
	tree := gdast.ParseFile(src)
	model := newSceneModel(t, tree, "res://player.gd", "res://player.tscn",
		gdprovider.SceneNodeRef{Path: "HUD", Type: "Control", UniqueName: "HUD"})
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "player.gd")
	assert.Contains(t, codes(diags), gddiag.InvalidUniqueNode)
}

func Test_SceneNode_UnknownScriptDegradesToSilence(t *testing.T) {
	src := "func f() -> void:\n\tvar n = $Missing\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	model.ScriptPath = "res://not_attached.gd"
	model.Scenes = gdprovider.NewReferenceScene()
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "not_attached.gd")
	assert.NotContains(t, codes(diags), gddiag.InvalidNodePath)
}
