package driving

import "context"

// ExportService writes human-readable document exports for display and
// auditing: per-document metadata, the chunk list, and any LLM-derived
// summary, tags and classification.
type ExportService interface {
	// Document writes one document's export files into dir.
	// Returns the paths written.
	Document(ctx context.Context, documentID, dir string) ([]string, error)

	// Corpus exports every document of a corpus into dir.
	// Returns the paths written.
	Corpus(ctx context.Context, corpusID, dir string) ([]string, error)
}
