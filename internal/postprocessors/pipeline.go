// Package postprocessors turns extracted documents into chunk sequences.
// A pipeline strings individual processors together, typically canonical
// text normalisation followed by the overlap chunker.
package postprocessors

import (
	"context"
	"errors"
	"fmt"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Pipeline runs a fixed sequence of PostProcessors over one document.
// It implements the PostProcessorPipeline port.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline assembles a pipeline. Processors run in argument order.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process feeds doc through every processor. The chunk slice starts nil,
// so the first chunk-producing stage creates it and later stages reshape it.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, errors.New("document is nil")
	}

	var chunks []domain.Chunk
	for _, proc := range p.processors {
		out, err := proc.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", proc.Name(), err)
		}
		chunks = out
	}

	return chunks, nil
}

// Add appends a processor to the end of the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len reports how many processors the pipeline runs.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
