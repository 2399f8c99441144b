package driving

import (
	"context"
	"time"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// DocumentService manages processed documents within corpora.
type DocumentService interface {
	// ListByCorpus returns all documents for a corpus.
	// An empty corpusID lists every document.
	ListByCorpus(ctx context.Context, corpusID string) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the canonical text reassembled from stored chunks.
	GetContent(ctx context.Context, documentID string) (string, error)

	// GetDetails returns document metadata for display.
	GetDetails(ctx context.Context, documentID string) (*DocumentDetails, error)

	// Delete removes a document with its chunks and manifest entry.
	// The file is re-ingested as new on the next run if still present.
	Delete(ctx context.Context, documentID string) error

	// Open opens the source file in the default application.
	Open(ctx context.Context, documentID string) error
}

// DocumentDetails provides a standardised view of document metadata.
type DocumentDetails struct {
	// ID is the unique document identifier.
	ID string

	// CorpusID links to the owning corpus.
	CorpusID string

	// CorpusName is the human-readable corpus name.
	CorpusName string

	// Title is the document title.
	Title string

	// Path is the source location relative to the corpus root.
	Path string

	// Format is the detected MIME type.
	Format string

	// PageCount is the number of pages, zero for pageless formats.
	PageCount int

	// ChunkCount is the number of stored chunks.
	ChunkCount int

	// Summary is the LLM-derived abstract, when enrichment ran.
	Summary string

	// Tags are LLM-derived topic labels, when enrichment ran.
	Tags []string

	// Classification is the LLM-derived category, when enrichment ran.
	Classification string

	// ProcessedAt is when the document last completed the pipeline.
	ProcessedAt time.Time
}
