// Package canonical normalises extracted text into its canonical form.
// Chunk offsets index into the canonical text, so this processor must be
// pure and deterministic: the same raw text always canonicalises to the
// same output.
package canonical

import (
	"context"
	"regexp"
	"strings"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

var (
	hyphenBreak    = regexp.MustCompile(`(\w)-\n(\w)`)
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
	trailingSpace  = regexp.MustCompile(`[ \t]+\n`)
	newlineRuns    = regexp.MustCompile(`\n{3,}`)
)

// Processor rewrites a document's content into canonical text.
// It implements the PostProcessor interface and passes chunks through
// untouched; it runs before the chunker.
type Processor struct{}

// New creates the canonical text processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "canonical"
}

// Process canonicalises doc.Content in place and returns chunks unchanged.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	doc.Content = Normalise(doc.Content)
	return chunks, nil
}

// Normalise applies the canonical text rules:
// carriage returns become line feeds, words split by a hyphenated line
// break are rejoined, runs of spaces and tabs collapse to one space,
// trailing whitespace is stripped per line, and runs of three or more
// newlines collapse to a blank line. Page markers injected during
// extraction are preserved.
func Normalise(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = hyphenBreak.ReplaceAllString(text, "$1$2")
	text = horizontalRuns.ReplaceAllString(text, " ")
	text = trailingSpace.ReplaceAllString(text, "\n")
	text = newlineRuns.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
