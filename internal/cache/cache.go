// Package cache implements the incremental-analysis cache (spec §5
// "Memory"): a content-hash keyed store of a file's last diagnostic
// snapshot, so a caller re-analyzing an unchanged file (a watch loop, a
// language server re-running on save) can skip straight to the stored
// result instead of re-parsing and re-validating.
//
// Keys are computed with highwayhash the way viant-linager's graph
// package hashes inspector nodes; snapshots are encoded with rezi the
// way the teacher's session/game state is encoded for storage
// (server/dao/sqlite).
package cache

import (
	"sync"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"github.com/minio/highwayhash"

	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/internal/gderrors"
)

// digestKey is a fixed, arbitrary 32-byte key; the cache only needs
// collision resistance between runs of this process, not a secret.
var digestKey = []byte("gdlint-incremental-cache-key-v01")

// Digest computes the content-hash key for a file's bytes.
func Digest(content []byte) (uint64, error) {
	h, err := highwayhash.New64(digestKey)
	if err != nil {
		return 0, gderrors.New("construct content hash", err)
	}
	if _, err := h.Write(content); err != nil {
		return 0, gderrors.New("hash file content", err)
	}
	return h.Sum64(), nil
}

// Store is a concurrency-safe, in-process map from content digest to
// the last analysis result at that digest. It holds no file identity:
// two files with identical bytes share a cache entry, which is correct
// for this store's purpose (skip redundant analysis of unchanged
// content) and incorrect if used to answer "what did file X report",
// which callers must track themselves keyed by path.
type Store struct {
	mu      sync.RWMutex
	entries map[uint64][]byte // digest -> rezi-encoded snapshot
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[uint64][]byte)}
}

// Get returns the diagnostics cached for digest, the RunID of the
// gdsem.Model whose pass produced them, and whether an entry existed
// and decoded successfully. A decode failure is treated as a miss
// rather than an error: the cache is a performance optimization, never
// a source of truth a caller must handle failing.
func (s *Store) Get(digest uint64) ([]gddiag.Diagnostic, uuid.UUID, bool) {
	s.mu.RLock()
	data, ok := s.entries[digest]
	s.mu.RUnlock()
	if !ok {
		return nil, uuid.UUID{}, false
	}
	var snap snapshot
	if _, err := rezi.DecBinary(data, &snap); err != nil {
		return nil, uuid.UUID{}, false
	}
	return snap.diagnostics, snap.runID, true
}

// Put stores diags as the result for digest, stamped with runID (the
// producing gdsem.Model's analysis-run identity), overwriting any
// prior entry.
func (s *Store) Put(digest uint64, runID uuid.UUID, diags []gddiag.Diagnostic) {
	snap := snapshot{runID: runID, diagnostics: diags}
	data := rezi.EncBinary(&snap)
	s.mu.Lock()
	s.entries[digest] = data
	s.mu.Unlock()
}

// Invalidate drops the entry for digest, if any.
func (s *Store) Invalidate(digest uint64) {
	s.mu.Lock()
	delete(s.entries, digest)
	s.mu.Unlock()
}

// InvalidateRun drops every entry stamped with runID, regardless of
// its content digest — the bulk-eviction path for "discard everything
// this analysis pass produced" (spec §5's "invalidated wholesale on
// reparse"), used when a caller replaces a Model without knowing in
// advance which digests its prior pass populated.
func (s *Store) InvalidateRun(runID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for digest, data := range s.entries {
		var snap snapshot
		if _, err := rezi.DecBinary(data, &snap); err != nil {
			continue
		}
		if snap.runID == runID {
			delete(s.entries, digest)
		}
	}
}

// Len reports how many distinct content digests are currently cached.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
