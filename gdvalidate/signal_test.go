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

func Test_SemanticSignal_TypeMismatchAgainstLocalDeclaration(t *testing.T) {
	src := "signal hurt(amount: int)\n" +
		"func f() -> void:\n\temit_signal(\"hurt\", \"not a number\")\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.EmitSignalTypeMismatch)
}

func Test_SemanticSignal_UnguardedUnresolvedSignal(t *testing.T) {
	src := "func f() -> void:\n\temit_signal(\"not_a_real_signal\")\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.UnguardedSignalAccess)
}

func Test_SemanticSignal_HasSignalGuardSuppressesWarning(t *testing.T) {
	src := "func f() -> void:\n" +
		"\tif has_signal(\"not_a_real_signal\"):\n" +
		"\t\temit_signal(\"not_a_real_signal\")\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.UnguardedSignalAccess)
}

func Test_SemanticSignal_CompatibleArgsProduceNoFinding(t *testing.T) {
	src := "signal hurt(amount: int)\n" +
		"func f() -> void:\n\temit_signal(\"hurt\", 5)\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.EmitSignalTypeMismatch)
}
