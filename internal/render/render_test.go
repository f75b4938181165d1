package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

func Test_Diagnostic_IncludesLocationAndSeverity(t *testing.T) {
	tree := gdast.ParseFile("var x = 1\n")
	d := gddiag.New(gddiag.PropertyNotFound, gddiag.Warning, "a.gd", tree.Root(), "x has no member y")

	out := Diagnostic(d, DefaultWidth)
	assert.Contains(t, out, "a.gd:")
	assert.Contains(t, out, "Warning")
	assert.Contains(t, out, "PropertyNotFound")
	assert.Contains(t, out, "x has no member y")
}

func Test_Diagnostic_WrapsLongMessages(t *testing.T) {
	tree := gdast.ParseFile("var x = 1\n")
	longMsg := "this is a very long diagnostic message that should certainly wrap across more than one line when rendered at a narrow width"
	d := gddiag.New(gddiag.PropertyNotFound, gddiag.Error, "a.gd", tree.Root(), longMsg)

	out := Diagnostic(d, 40)
	assert.Contains(t, out, "\n")
}

func Test_Diagnostics_JoinsOneLinePerEntry(t *testing.T) {
	tree := gdast.ParseFile("var x = 1\n")
	diags := []gddiag.Diagnostic{
		gddiag.New(gddiag.PropertyNotFound, gddiag.Warning, "a.gd", tree.Root(), "first"),
		gddiag.New(gddiag.MethodNotFound, gddiag.Error, "b.gd", tree.Root(), "second"),
	}

	out := Diagnostics(diags, DefaultWidth)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func Test_Summary_FormatsCounts(t *testing.T) {
	tree := gdast.ParseFile("var x = 1\n")
	diags := []gddiag.Diagnostic{
		gddiag.New(gddiag.PropertyNotFound, gddiag.Warning, "a.gd", tree.Root(), "first"),
	}

	out := Summary(1, diags, 312*time.Millisecond)
	assert.Contains(t, out, "1 diagnostic")
	assert.Contains(t, out, "1 file")
	assert.Contains(t, out, "312ms")
}

func Test_Severities_Breakdown(t *testing.T) {
	tree := gdast.ParseFile("var x = 1\n")
	diags := []gddiag.Diagnostic{
		gddiag.New(gddiag.PropertyNotFound, gddiag.Warning, "a.gd", tree.Root(), "w1"),
		gddiag.New(gddiag.MethodNotFound, gddiag.Error, "a.gd", tree.Root(), "e1"),
		gddiag.New(gddiag.MethodNotFound, gddiag.Error, "a.gd", tree.Root(), "e2"),
	}

	out := Severities(diags)
	assert.Contains(t, out, "2 errors")
	assert.Contains(t, out, "1 warning")
}

func Test_Severities_NoDiagnostics(t *testing.T) {
	assert.Equal(t, "no diagnostics", Severities(nil))
}

func Test_Tree_WrapsDump(t *testing.T) {
	tree := gdast.ParseFile("var x = 1\n")
	out := Tree(tree.Root(), DefaultWidth)
	assert.Contains(t, out, "VariableDeclaration")
}
