package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// When linked to a ChunkStore, deleting a document also drops its chunks,
// mirroring the sqlite cascade.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    *ChunkStore
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// LinkChunkStore wires the chunk store used for delete cascades.
func (s *DocumentStore) LinkChunkStore(chunks *ChunkStore) {
	s.chunks = chunks
}

// Save stores or updates a document.
func (s *DocumentStore) Save(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetByPath retrieves a document by corpus and source path.
func (s *DocumentStore) GetByPath(_ context.Context, corpusID, path string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.CorpusID == corpusID && doc.Path == path {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns documents for a corpus, ordered by path. An empty corpusID
// lists every document.
func (s *DocumentStore) List(_ context.Context, corpusID string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.Document
	for _, doc := range s.documents {
		if corpusID == "" || doc.CorpusID == corpusID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Delete removes a document and its chunks.
func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.documents, id)
	chunks := s.chunks
	s.mu.Unlock()

	if chunks != nil {
		chunks.Remove(id)
	}
	return nil
}
