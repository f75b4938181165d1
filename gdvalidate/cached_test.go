package gdvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/cache"
	"github.com/dekarrin/gdlint/internal/config"
)

func Test_RunCached_MissThenHit(t *testing.T) {
	src := "func compute():\n\treturn 1\n"
	content := []byte(src)
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()
	store := cache.NewStore()

	first, err := RunCached(tree, model, cfg, "a.gd", content, store)
	require.NoError(t, err)
	assert.Contains(t, codes(first), gddiag.MissingReturnType)
	assert.Equal(t, 1, store.Len())

	second, err := RunCached(tree, model, cfg, "a.gd", content, store)
	require.NoError(t, err)
	// a hit is decoded from the cache snapshot, which carries no Node
	want := make([]gddiag.Diagnostic, len(first))
	for i, d := range first {
		d.Node = gdast.Node{}
		want[i] = d
	}
	assert.Equal(t, want, second)
}

func Test_RunCached_InvalidateRunDropsStampedEntries(t *testing.T) {
	src := "func compute():\n\treturn 1\n"
	content := []byte(src)
	tree := gdast.ParseFile(src)
	model := gdsem.New(tree, nil)
	cfg := config.DefaultConfig()
	store := cache.NewStore()

	_, err := RunCached(tree, model, cfg, "a.gd", content, store)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	store.InvalidateRun(model.RunID)
	assert.Equal(t, 0, store.Len())
}
