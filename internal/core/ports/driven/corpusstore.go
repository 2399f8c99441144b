package driven

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// CorpusStore persists corpus configurations.
type CorpusStore interface {
	// Save stores or updates a corpus.
	Save(ctx context.Context, corpus domain.Corpus) error

	// Get retrieves a corpus by ID.
	// Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Corpus, error)

	// GetByName retrieves a corpus by its unique name.
	// Returns domain.ErrNotFound when absent.
	GetByName(ctx context.Context, name string) (*domain.Corpus, error)

	// List returns all configured corpora, ordered by name.
	List(ctx context.Context) ([]domain.Corpus, error)

	// Delete removes a corpus configuration.
	Delete(ctx context.Context, id string) error
}
