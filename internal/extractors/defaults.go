package extractors

import (
	"github.com/quarrylabs/quarry-cli/internal/extractors/docx"
	"github.com/quarrylabs/quarry-cli/internal/extractors/html"
	"github.com/quarrylabs/quarry-cli/internal/extractors/markdown"
	"github.com/quarrylabs/quarry-cli/internal/extractors/ocr"
	"github.com/quarrylabs/quarry-cli/internal/extractors/pdf"
	"github.com/quarrylabs/quarry-cli/internal/extractors/plaintext"
)

// NewDefaultRegistry creates a registry with all built-in extractors.
// The PDF and OCR extractors depend on external tools; they register
// unconditionally and fail per document when the tool is missing, so one
// unreadable format never blocks the rest of a run.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(pdf.New())
	r.Register(ocr.New())
	return r
}
