package driving

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// CorpusService manages corpus configurations.
type CorpusService interface {
	// Add registers a new corpus for the given folder.
	// Fails with domain.ErrAlreadyExists when the name is taken.
	Add(ctx context.Context, corpus domain.Corpus) (*domain.Corpus, error)

	// Get retrieves a corpus by ID.
	Get(ctx context.Context, id string) (*domain.Corpus, error)

	// GetByName retrieves a corpus by its unique name.
	GetByName(ctx context.Context, name string) (*domain.Corpus, error)

	// List returns all configured corpora.
	List(ctx context.Context) ([]domain.Corpus, error)

	// Update modifies an existing corpus configuration.
	Update(ctx context.Context, corpus domain.Corpus) error

	// Remove deletes a corpus with its documents, chunks and manifest.
	Remove(ctx context.Context, id string) error
}
