package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text and text-like formats. It is the fallback
// for anything that is already readable as UTF-8.
type Extractor struct{}

// New creates a new plaintext extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/csv",
		"text/x-go",
		"text/x-python",
		"text/x-rust",
		"text/x-c",
		"text/x-shellscript",
		"text/yaml",
		"text/toml",
		"text/javascript",
		"text/css",
		"text/html",
		"application/json",
		"application/xml",
		"application/x-yaml",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract converts raw bytes to text as-is. Whitespace cleanup is left to
// the canonical post-processor.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (*driven.Extraction, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.Extraction{
		Text:  string(raw.Content),
		Title: extractTitle(raw.Path),
	}, nil
}

// extractTitle derives a title from the file path: base name with the
// extension stripped and separators replaced by spaces.
func extractTitle(path string) string {
	filename := filepath.Base(path)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
