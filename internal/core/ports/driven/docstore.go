package driven

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// DocumentStore persists document metadata.
type DocumentStore interface {
	// Save stores or updates a document. Chunks are written separately
	// through the ChunkStore so the swap stays atomic.
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// GetByPath retrieves a document by corpus and source path.
	// Returns domain.ErrNotFound when absent.
	GetByPath(ctx context.Context, corpusID, path string) (*domain.Document, error)

	// List returns documents for a corpus, ordered by path.
	// An empty corpusID lists every document.
	List(ctx context.Context, corpusID string) ([]domain.Document, error)

	// Delete removes a document and its chunks.
	Delete(ctx context.Context, id string) error
}
