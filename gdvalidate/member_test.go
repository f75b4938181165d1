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

func Test_MemberAccess_StrictMissingMethod(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.nonexistent_method()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.MethodNotFound)
}

func Test_MemberAccess_StrictMissingProperty(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tvar v = n.nonexistent_prop\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.PropertyNotFound)
}

func Test_MemberAccess_UnguardedCallOnUntypedReceiver(t *testing.T) {
	src := "func f(n):\n\tn.do_something()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.Contains(t, codes(diags), gddiag.UnguardedMethodCall)
}

func Test_MemberAccess_KnownMethodProducesNoFinding(t *testing.T) {
	src := "func f(n: Node) -> void:\n\tn.queue_free()\n"
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, gdprovider.NewReferenceRuntime())
	cfg := config.DefaultConfig()

	diags := Run(tree, model, cfg, "a.gd")
	assert.NotContains(t, codes(diags), gddiag.MethodNotFound)
	assert.NotContains(t, codes(diags), gddiag.UnguardedMethodCall)
}
