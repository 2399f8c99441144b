// Package chunker provides deterministic fixed-size text chunking with
// overlap. Identical text and configuration always yield identical chunk
// boundaries, which is what makes reprocessing idempotent.
package chunker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits canonical text into overlapping fixed-size chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker with the given options.
// The configuration must satisfy 0 <= overlap < size; anything else fails
// with domain.ErrInvalidArgument rather than being silently adjusted, since
// chunk boundaries are part of the store's reproducibility contract.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	cfg := domain.ChunkingSettings{Size: p.chunkSize, Overlap: p.overlap}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("chunker config size=%d overlap=%d: %w", p.chunkSize, p.overlap, err)
	}

	return p, nil
}

// FromSettings creates a chunker from an explicit configuration struct.
func FromSettings(cfg domain.ChunkingSettings) (*Processor, error) {
	return New(WithChunkSize(cfg.Size), WithOverlap(cfg.Overlap))
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Settings returns the immutable configuration this chunker was built with.
func (p *Processor) Settings() domain.ChunkingSettings {
	return domain.ChunkingSettings{Size: p.chunkSize, Overlap: p.overlap}
}

// Process splits the document's canonical text into chunks.
// Input chunks are ignored; this processor creates the sequence.
//
// The walk starts at offset 0 and advances by size-overlap, so consecutive
// chunks share exactly overlap characters and the last chunk may be shorter
// than size. Text no longer than size yields a single chunk equal to the
// whole text. Empty text yields zero chunks and a warning, not an error.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	content := doc.Content
	n := len(content)

	if n == 0 {
		logger.Warn("document %s has no text, producing no chunks", doc.Path)
		return nil, nil
	}

	cfg := domain.ChunkingSettings{Size: p.chunkSize, Overlap: p.overlap}
	chunks := make([]domain.Chunk, 0, cfg.ChunkCount(n))

	step := p.chunkSize - p.overlap
	ordinal := 0

	for start := 0; start < n; start += step {
		end := start + p.chunkSize
		if end > n {
			end = n
		}

		chunks = append(chunks, domain.Chunk{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			Ordinal:     ordinal,
			StartOffset: start,
			EndOffset:   end,
			Text:        content[start:end],
		})
		ordinal++

		// The final window reaches the end of the text; stepping again
		// would emit a sub-overlap fragment that the count formula and
		// reprocessing determinism both forbid.
		if end == n {
			break
		}
	}

	return chunks, nil
}
