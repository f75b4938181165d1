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

// Test_Scenario_UnguardedDuckCallWarning covers spec §8's E2: an
// unguarded call through a bare, untyped parameter is exactly one
// warning-level diagnostic.
func Test_Scenario_UnguardedDuckCallWarning(t *testing.T) {
	src := "func f(x):\n\tx.attack()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	var matches []gddiag.Diagnostic
	for _, d := range diags {
		if d.Code == gddiag.UnguardedMethodCall {
			matches = append(matches, d)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, gddiag.Warning, matches[0].Severity)
}

// Test_Scenario_InlineSuppressionFiltersUnguardedCall covers spec §8's
// E6: an inline `# gd:ignore = CODE` comment on the offending line
// removes the diagnostic the validator still computed.
func Test_Scenario_InlineSuppressionFiltersUnguardedCall(t *testing.T) {
	src := "func f(x):\n\tx.attack()  # gd:ignore = GD7001\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Empty(t, diags)
}

// Test_Scenario_SuppressionOnPrecedingLineAlsoApplies mirrors the same
// E6 directive placed on the line immediately above the call, per the
// suppression rule's "inline or preceding line" wording.
func Test_Scenario_SuppressionOnPrecedingLineAlsoApplies(t *testing.T) {
	src := "func f(x):\n\t# gd:ignore = GD7001\n\tx.attack()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.UnguardedMethodCall)
}
