package driven

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// ChunkStore persists chunks with their embeddings.
//
// The store enforces the structural invariants of the embedding width D it
// was opened with: every vector has exactly D components, chunk text is
// never empty, and no two chunks of one document share an ordinal.
// Violations fail with domain.ErrValidation and nothing is written.
type ChunkStore interface {
	// ReplaceChunks atomically swaps the entire chunk set for a document.
	// Readers observe either the complete old set or the complete new set,
	// never a partial state. Passing no chunks clears the document's set.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetChunks returns a document's chunks ordered by ordinal.
	// Returns domain.ErrNotFound when the document is absent.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// AllChunks streams every committed chunk across all documents.
	// An empty corpusID spans the whole store. The stream reflects only
	// fully-committed documents and is safe to consume while other
	// documents are being replaced. Both channels close when the stream
	// ends or the context is cancelled.
	AllChunks(ctx context.Context, corpusID string) (<-chan domain.Chunk, <-chan error)

	// CountChunks returns the number of committed chunks.
	// An empty corpusID counts the whole store.
	CountChunks(ctx context.Context, corpusID string) (int, error)
}
