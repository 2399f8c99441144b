package domain

import "time"

// Document represents a processed source file with its extraction metadata.
// The canonical content is what the chunker saw; chunks are re-derivable
// from it with the same chunking configuration.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// CorpusID links to the Corpus that contains this document.
	CorpusID string

	// Path is the source file location, relative to the corpus root.
	// It is the document's identity within a corpus.
	Path string

	// Title is the human-readable title derived during extraction.
	Title string

	// Format is the detected MIME type of the source file.
	Format string

	// Fingerprint is the content hash of the source bytes at processing time.
	Fingerprint string

	// Content is the canonical text after extraction and normalisation.
	Content string

	// PageCount is the number of pages reported by the extractor.
	// Zero when the format has no page concept.
	PageCount int

	// Summary is an optional LLM-derived abstract of the document.
	Summary string

	// Tags are optional LLM-derived topic labels.
	Tags []string

	// Classification is an optional LLM-derived category label.
	Classification string

	// ProcessedAt is when the document last completed the full pipeline.
	ProcessedAt time.Time

	// CreatedAt is when the document was first processed.
	CreatedAt time.Time
}

// Chunk represents one retrievable segment of a document's canonical text.
// The sequence of chunks for a document is deterministic: identical text and
// chunking configuration always reproduce identical boundaries.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Ordinal is the zero-based position within the document.
	// No two chunks of one document share an ordinal.
	Ordinal int

	// StartOffset is the inclusive character offset into canonical text.
	StartOffset int

	// EndOffset is the exclusive character offset into canonical text.
	EndOffset int

	// Text is the verbatim segment of canonical text. Never empty.
	Text string

	// Embedding is the vector representation, fixed width per corpus store.
	Embedding []float32

	// Tags are optional labels carried through from enrichment.
	Tags []string
}

// Len returns the segment length in characters.
func (c Chunk) Len() int {
	return c.EndOffset - c.StartOffset
}
