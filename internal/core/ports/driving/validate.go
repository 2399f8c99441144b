package driving

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// ValidationService checks structural invariants of stored chunk sets.
type ValidationService interface {
	// Document validates one document's stored chunks: vector width,
	// non-empty text, unique ordinals, monotonic offsets, plus adjacent
	// chunk similarity statistics.
	Document(ctx context.Context, documentID string) (*domain.ValidationReport, error)

	// Corpus validates every document in a corpus.
	Corpus(ctx context.Context, corpusID string) ([]domain.ValidationReport, error)
}
