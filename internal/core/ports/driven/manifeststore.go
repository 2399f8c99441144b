package driven

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// ManifestStore persists per-file fingerprints for refresh decisions.
// Entries are written only after the downstream pipeline has committed;
// the refresh gate reads them, retrieval never does.
type ManifestStore interface {
	// Put stores or updates a manifest entry.
	Put(ctx context.Context, entry domain.ManifestEntry) error

	// Get retrieves the entry for a file.
	// Returns nil without error when the file was never recorded.
	Get(ctx context.Context, corpusID, path string) (*domain.ManifestEntry, error)

	// List returns every entry for a corpus.
	List(ctx context.Context, corpusID string) ([]domain.ManifestEntry, error)

	// Delete removes the entry for a file.
	Delete(ctx context.Context, corpusID, path string) error
}
