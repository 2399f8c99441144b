package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore is an in-memory implementation of driven.ManifestStore.
type ManifestStore struct {
	mu      sync.RWMutex
	entries map[string]domain.ManifestEntry
}

// NewManifestStore creates a new in-memory manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{
		entries: make(map[string]domain.ManifestEntry),
	}
}

func manifestKey(corpusID, path string) string {
	return corpusID + "\x00" + path
}

// Put stores or updates a manifest entry.
func (s *ManifestStore) Put(_ context.Context, entry domain.ManifestEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[manifestKey(entry.CorpusID, entry.Path)] = entry
	return nil
}

// Get retrieves the entry for a file. Returns nil without error when the
// file was never recorded.
func (s *ManifestStore) Get(_ context.Context, corpusID, path string) (*domain.ManifestEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[manifestKey(corpusID, path)]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// List returns every entry for a corpus, ordered by path.
func (s *ManifestStore) List(_ context.Context, corpusID string) ([]domain.ManifestEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.ManifestEntry
	for _, entry := range s.entries {
		if entry.CorpusID == corpusID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Delete removes the entry for a file.
func (s *ManifestStore) Delete(_ context.Context, corpusID, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, manifestKey(corpusID, path))
	return nil
}
