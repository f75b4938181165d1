package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
)

func Test_Digest_StableAndContentSensitive(t *testing.T) {
	a, err := Digest([]byte("extends Node\n"))
	require.NoError(t, err)
	b, err := Digest([]byte("extends Node\n"))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Digest([]byte("extends Node2D\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func Test_Store_PutGetRoundTrips(t *testing.T) {
	s := NewStore()
	digest, err := Digest([]byte("var x = 1\n"))
	require.NoError(t, err)

	tree := gdast.ParseFile("var x = 1\n")
	diags := []gddiag.Diagnostic{
		gddiag.New(gddiag.PropertyNotFound, gddiag.Warning, "a.gd", tree.Root(), "x has no member y"),
	}
	runID := uuid.New()
	s.Put(digest, runID, diags)

	got, gotRunID, ok := s.Get(digest)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, gddiag.PropertyNotFound, got[0].Code)
	assert.Equal(t, gddiag.Warning, got[0].Severity)
	assert.Equal(t, "a.gd", got[0].File)
	assert.Equal(t, "x has no member y", got[0].Message)
	assert.Equal(t, runID, gotRunID)
}

func Test_Store_MissOnUnknownDigest(t *testing.T) {
	s := NewStore()
	_, _, ok := s.Get(12345)
	assert.False(t, ok)
}

func Test_Store_Invalidate(t *testing.T) {
	s := NewStore()
	digest, err := Digest([]byte("x"))
	require.NoError(t, err)
	s.Put(digest, uuid.New(), nil)
	assert.Equal(t, 1, s.Len())
	s.Invalidate(digest)
	assert.Equal(t, 0, s.Len())
	_, _, ok := s.Get(digest)
	assert.False(t, ok)
}

func Test_Store_InvalidateRun_DropsOnlyMatchingRunEntries(t *testing.T) {
	s := NewStore()
	runA, runB := uuid.New(), uuid.New()

	digestA, err := Digest([]byte("a"))
	require.NoError(t, err)
	digestB, err := Digest([]byte("b"))
	require.NoError(t, err)

	s.Put(digestA, runA, nil)
	s.Put(digestB, runB, nil)
	assert.Equal(t, 2, s.Len())

	s.InvalidateRun(runA)
	assert.Equal(t, 1, s.Len())

	_, _, ok := s.Get(digestA)
	assert.False(t, ok)
	_, gotRun, ok := s.Get(digestB)
	require.True(t, ok)
	assert.Equal(t, runB, gotRun)
}
