package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore enforcing
// the same batch validation as the sqlite adapter.
type ChunkStore struct {
	mu         sync.RWMutex
	dimensions int
	chunks     map[string][]domain.Chunk
	corpusOf   map[string]string
}

// NewChunkStore creates a new in-memory chunk store enforcing the given
// embedding width. A non-positive width disables the dimension check.
func NewChunkStore(dimensions int) *ChunkStore {
	return &ChunkStore{
		dimensions: dimensions,
		chunks:     make(map[string][]domain.Chunk),
		corpusOf:   make(map[string]string),
	}
}

// SetCorpus records which corpus a document belongs to, enabling the
// corpus filter on AllChunks and CountChunks.
func (s *ChunkStore) SetCorpus(documentID, corpusID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corpusOf[documentID] = corpusID
}

// ReplaceChunks atomically swaps the entire chunk set for a document.
func (s *ChunkStore) ReplaceChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	if err := s.validate(documentID, chunks); err != nil {
		return err
	}

	replacement := make([]domain.Chunk, len(chunks))
	copy(replacement, chunks)
	sort.Slice(replacement, func(i, j int) bool { return replacement[i].Ordinal < replacement[j].Ordinal })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[documentID] = replacement
	return nil
}

// validate rejects a batch that violates the store invariants.
func (s *ChunkStore) validate(documentID string, chunks []domain.Chunk) error {
	seen := make(map[int]struct{}, len(chunks))
	for _, chunk := range chunks {
		if chunk.Text == "" {
			return fmt.Errorf("%w: chunk %d of document %s has empty text",
				domain.ErrValidation, chunk.Ordinal, documentID)
		}
		if s.dimensions > 0 && len(chunk.Embedding) != s.dimensions {
			return fmt.Errorf("%w: chunk %d of document %s has embedding width %d, want %d",
				domain.ErrValidation, chunk.Ordinal, documentID, len(chunk.Embedding), s.dimensions)
		}
		if _, dup := seen[chunk.Ordinal]; dup {
			return fmt.Errorf("%w: duplicate ordinal %d in document %s",
				domain.ErrValidation, chunk.Ordinal, documentID)
		}
		seen[chunk.Ordinal] = struct{}{}
	}
	return nil
}

// GetChunks returns a document's chunks ordered by ordinal.
func (s *ChunkStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks, ok := s.chunks[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	result := make([]domain.Chunk, len(chunks))
	copy(result, chunks)
	return result, nil
}

// AllChunks streams every committed chunk, ordered by document then ordinal.
func (s *ChunkStore) AllChunks(ctx context.Context, corpusID string) (<-chan domain.Chunk, <-chan error) {
	chunkCh := make(chan domain.Chunk)
	errCh := make(chan error, 1)

	// Snapshot under the read lock so the stream is unaffected by
	// concurrent replacements.
	s.mu.RLock()
	docIDs := make([]string, 0, len(s.chunks))
	for docID := range s.chunks {
		if corpusID != "" && s.corpusOf[docID] != corpusID {
			continue
		}
		docIDs = append(docIDs, docID)
	}
	sort.Strings(docIDs)

	snapshot := make([]domain.Chunk, 0)
	for _, docID := range docIDs {
		snapshot = append(snapshot, s.chunks[docID]...)
	}
	s.mu.RUnlock()

	go func() {
		defer close(chunkCh)
		defer close(errCh)

		for _, chunk := range snapshot {
			select {
			case chunkCh <- chunk:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()

	return chunkCh, errCh
}

// CountChunks returns the number of committed chunks.
func (s *ChunkStore) CountChunks(_ context.Context, corpusID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for docID, chunks := range s.chunks {
		if corpusID != "" && s.corpusOf[docID] != corpusID {
			continue
		}
		count += len(chunks)
	}
	return count, nil
}

// Remove drops a document's chunk set entirely, mirroring the sqlite
// delete cascade.
func (s *ChunkStore) Remove(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, documentID)
	delete(s.corpusOf, documentID)
}
