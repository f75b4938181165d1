package gdvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/config"
)

func codes(diags []gddiag.Diagnostic) []gddiag.Code {
	out := make([]gddiag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func Test_Run_RedundantNullCheck(t *testing.T) {
	src := "var x: int\n" +
		"func f() -> void:\n" +
		"\tif x == null:\n" +
		"\t\treturn\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.RedundantNullCheck)
}

func Test_Run_MissingReturnType(t *testing.T) {
	src := "func compute():\n\treturn 1\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.MissingReturnType)
}

func Test_Run_NodeAccessBeforeReady(t *testing.T) {
	src := "var label = $Label\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.NodeAccessBeforeReady)
}

func Test_Run_DisabledValidatorProducesNoFindings(t *testing.T) {
	src := "func compute():\n\treturn 1\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()
	cfg.Validators.ReturnConsistency = false

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.MissingReturnType)
}

func Test_Run_NotIndexable(t *testing.T) {
	src := "func f(n: int):\n\treturn n[0]\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.NotIndexable)
}
