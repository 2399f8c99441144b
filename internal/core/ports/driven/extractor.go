package driven

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// Extractor converts the raw bytes of one file format into plain text.
// Extraction engines are opaque collaborators: some parse in-process
// (plain text, DOCX), others delegate to external converters (PDF, OCR).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract converts a raw document into text.
	// Fails with domain.ErrExtraction when the converter cannot produce
	// text (corrupted file, OCR failure, missing external tool).
	Extract(ctx context.Context, raw *domain.RawDocument) (*Extraction, error)
}

// Extraction is the output of text extraction, before normalisation.
type Extraction struct {
	// Text is the raw extracted text. May contain page markers.
	Text string

	// Title is the document title when the format carries one;
	// otherwise derived from the file name.
	Title string

	// PageCount is the number of pages seen. Zero for pageless formats.
	PageCount int
}

// ExtractorRegistry selects the appropriate extractor for a document.
// It maintains a priority-ordered list and dispatches on MIME type.
type ExtractorRegistry interface {
	// Extract converts a raw document using the best matching extractor.
	// Fails with domain.ErrUnsupportedFormat when no extractor matches.
	Extract(ctx context.Context, raw *domain.RawDocument) (*Extraction, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
