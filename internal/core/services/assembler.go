package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// PromptAssembler builds grounded generation requests from retrieval
// results. It is the single component allowed to put factual context in
// front of the model: every block is verbatim chunk text tagged with its
// source, and an empty retrieval produces a request that is explicitly
// marked as having no context.
type PromptAssembler struct {
	docStore    driven.DocumentStore
	promptStore driven.PromptStore
}

// NewPromptAssembler creates a prompt assembler.
func NewPromptAssembler(docStore driven.DocumentStore, promptStore driven.PromptStore) *PromptAssembler {
	return &PromptAssembler{
		docStore:    docStore,
		promptStore: promptStore,
	}
}

// Assemble renders a retrieval result into a grounded request.
// Blocks appear in rank order, each tagged [doc <title-or-path> #<ordinal>]
// so answers can cite them. The methodology directive comes from the prompt
// store and instructs the model to answer strictly from the supplied
// context.
func (a *PromptAssembler) Assemble(
	ctx context.Context, question string, result domain.RetrievalResult,
) (*domain.GroundedRequest, error) {
	template, err := a.promptStore.Load(driven.PromptGrounded)
	if err != nil {
		return nil, fmt.Errorf("load grounded prompt: %w", err)
	}

	blocks := make([]domain.ContextBlock, 0, len(result.Chunks))
	titles := make(map[string]string)

	for _, hit := range result.Chunks {
		blocks = append(blocks, domain.ContextBlock{
			DocumentID:    hit.Chunk.DocumentID,
			DocumentTitle: a.documentLabel(ctx, titles, hit.Chunk.DocumentID),
			Ordinal:       hit.Chunk.Ordinal,
			Score:         hit.Score,
			Text:          hit.Chunk.Text,
		})
	}

	contextText := renderContext(blocks)
	prompt := fmt.Sprintf(template, contextText, question)

	return &domain.GroundedRequest{
		Question: question,
		Context:  blocks,
		Prompt:   prompt,
	}, nil
}

// documentLabel resolves the display label for a document, preferring the
// title and falling back to the source path. Labels are cached per call so
// a document cited by several chunks is fetched once.
func (a *PromptAssembler) documentLabel(ctx context.Context, cache map[string]string, documentID string) string {
	if label, ok := cache[documentID]; ok {
		return label
	}

	label := documentID
	doc, err := a.docStore.Get(ctx, documentID)
	switch {
	case err != nil:
		// A chunk can outlive its document for the duration of a
		// concurrent replacement; fall back to the raw id.
		logger.Debug("Document %s not resolvable for citation: %v", documentID, err)
	case doc.Title != "":
		label = doc.Title
	case doc.Path != "":
		label = doc.Path
	}

	cache[documentID] = label
	return label
}

// renderContext formats blocks into the context section of the prompt.
func renderContext(blocks []domain.ContextBlock) string {
	if len(blocks) == 0 {
		return domain.NoContextMarker
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[doc %s #%d]\n%s", block.DocumentTitle, block.Ordinal, block.Text)
	}
	return b.String()
}
