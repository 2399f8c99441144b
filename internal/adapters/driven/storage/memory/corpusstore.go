// Package memory provides in-memory implementations of the driven store
// ports for tests and ephemeral runs. Semantics mirror the sqlite package,
// including validation and atomic chunk replacement.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
type CorpusStore struct {
	mu      sync.RWMutex
	corpora map[string]domain.Corpus
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{
		corpora: make(map[string]domain.Corpus),
	}
}

// Save stores or updates a corpus.
func (s *CorpusStore) Save(_ context.Context, corpus domain.Corpus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpora[corpus.ID] = corpus
	return nil
}

// Get retrieves a corpus by ID.
func (s *CorpusStore) Get(_ context.Context, id string) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	corpus, ok := s.corpora[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &corpus, nil
}

// GetByName retrieves a corpus by its unique name.
func (s *CorpusStore) GetByName(_ context.Context, name string) (*domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, corpus := range s.corpora {
		if corpus.Name == name {
			return &corpus, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all configured corpora, ordered by name.
func (s *CorpusStore) List(_ context.Context) ([]domain.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	corpora := make([]domain.Corpus, 0, len(s.corpora))
	for _, corpus := range s.corpora {
		corpora = append(corpora, corpus)
	}
	sort.Slice(corpora, func(i, j int) bool { return corpora[i].Name < corpora[j].Name })
	return corpora, nil
}

// Delete removes a corpus configuration.
func (s *CorpusStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.corpora, id)
	return nil
}
