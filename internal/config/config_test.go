package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gddiag"
)

func Test_DefaultConfig_EnablesEverything(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Validators.Type)
	assert.True(t, cfg.Validators.NullableAccess)
	assert.True(t, cfg.Validators.AnnotationNarrowing)
	assert.Equal(t, NullNormal, cfg.NullStrictness)
	assert.True(t, cfg.EnableSuppression)
}

func Test_SeverityFor_UsesDefaultWhenNoOverride(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, gddiag.TypeMismatch.DefaultSeverity(), cfg.SeverityFor(gddiag.TypeMismatch))
}

func Test_SeverityFor_UsesOverrideWhenPresent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeverityOverrides[gddiag.RedundantNullCheck.String()] = "Error"
	assert.Equal(t, gddiag.Error, cfg.SeverityFor(gddiag.RedundantNullCheck))
}

func Test_Load_FillsDefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gdlint.toml")
	contents := "[validators]\ntype = false\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Validators.Type)
	assert.True(t, cfg.Validators.MemberAccess)
	assert.Equal(t, NullNormal, cfg.NullStrictness)
}

func Test_Load_MissingFile_ReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}
