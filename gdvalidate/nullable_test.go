package gdvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/config"
)

func Test_NullableAccess_NormalTierFlagsTypedParameter(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.queue_free()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.PotentiallyNullMethodCall)
}

func Test_NullableAccess_OffTierSuppressesEverything(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.queue_free()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()
	cfg.NullStrictness = config.NullOff

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.PotentiallyNullMethodCall)
}

func Test_NullableAccess_NormalTierSkipsUntypedParameter(t *testing.T) {
	src := "func f(n) -> void:\n\tn.queue_free()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.PotentiallyNullMethodCall)
}

func Test_NullableAccess_RelaxedTierOnlyFlagsExplicitNull(t *testing.T) {
	src := "var n = null\nfunc f() -> void:\n\tn.queue_free()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()
	cfg.NullStrictness = config.NullRelaxed

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.PotentiallyNullMethodCall)
}

func Test_NullableAccess_ErrorTierEmitsErrorSeverity(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.queue_free()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()
	cfg.NullStrictness = config.NullError

	diags := Run(tree, model, cfg, "a.gd")
	var found bool
	for _, d := range diags {
		if d.Code == gddiag.PotentiallyNullMethodCall {
			found = true
			assert.Equal(t, gddiag.Error, d.Severity)
		}
	}
	require.True(t, found, "expected a PotentiallyNullMethodCall diagnostic")
}

func Test_NullableAccess_LifecycleSuppressesOnreadyAccessInProcess(t *testing.T) {
	src := "@onready var label = $Label\n" +
		"func _process(delta: float) -> void:\n\tlabel.queue_free()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.PotentiallyNullMethodCall)
}

func Test_NullableAccess_CallerSafetySuppressesProvablyNonNullParameter(t *testing.T) {
	src := "func helper(n: Node) -> void:\n\tn.queue_free()\n" +
		"func f() -> void:\n\thelper(self)\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.PotentiallyNullMethodCall)
}
