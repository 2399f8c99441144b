package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// AskService answers questions grounded in retrieved chunks.
type AskService struct {
	corpusStore driven.CorpusStore
	docStore    driven.DocumentStore
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	retriever   *Retriever
	assembler   *PromptAssembler
	retrieval   domain.RetrievalSettings
}

// NewAskService creates a new ask service.
// The llm may be nil; questions with no retrieved context are still answered
// with the canonical no-answer response.
func NewAskService(
	corpusStore driven.CorpusStore,
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	retriever *Retriever,
	assembler *PromptAssembler,
	retrieval domain.RetrievalSettings,
) *AskService {
	return &AskService{
		corpusStore: corpusStore,
		docStore:    docStore,
		embedder:    embedder,
		llm:         llm,
		retriever:   retriever,
		assembler:   assembler,
		retrieval:   retrieval,
	}
}

// Ask embeds the question, retrieves the most similar chunks, assembles a
// grounded request and generates an answer with citations.
func (s *AskService) Ask(ctx context.Context, question string, opts driving.AskOptions) (*domain.Answer, error) {
	result, err := s.Retrieve(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	if result.Empty() {
		// The canonical response needs no generation backend.
		logger.Info("No relevant context found, returning canonical no-answer response")
		return &domain.Answer{
			Text:     domain.NoAnswerText,
			Grounded: false,
		}, nil
	}

	if s.llm == nil {
		return nil, fmt.Errorf("%w: no LLM provider configured. Run 'quarry config' to set one up", domain.ErrLLMUnavailable)
	}

	request, err := s.assembler.Assemble(ctx, strings.TrimSpace(question), result)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Generate(ctx, request.Prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:      strings.TrimSpace(text),
		Citations: s.buildCitations(ctx, result),
		Grounded:  true,
	}, nil
}

// Retrieve exposes the raw ranked retrieval for a question.
func (s *AskService) Retrieve(
	ctx context.Context, question string, opts driving.AskOptions,
) (domain.RetrievalResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.RetrievalResult{}, fmt.Errorf("%w: question is empty", domain.ErrInvalidArgument)
	}
	if s.embedder == nil {
		return domain.RetrievalResult{}, fmt.Errorf(
			"%w: no embedding provider configured. Run 'quarry config' to set one up", domain.ErrEmbeddingUnavailable)
	}

	corpusID, err := s.resolveCorpus(ctx, opts.CorpusName)
	if err != nil {
		return domain.RetrievalResult{}, err
	}

	k := opts.TopK
	if k <= 0 {
		k = s.retrieval.TopK
	}
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = s.retrieval.MinScore
	}

	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("embed question: %w", err)
	}

	return s.retriever.TopK(ctx, vector, k, corpusID, minScore)
}

// resolveCorpus maps a corpus name to its ID. Empty means all corpora.
func (s *AskService) resolveCorpus(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	corpus, err := s.corpusStore.GetByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("corpus %q: %w", name, err)
	}
	return corpus.ID, nil
}

// buildCitations maps retrieved chunks to citation triples in rank order.
func (s *AskService) buildCitations(ctx context.Context, result domain.RetrievalResult) []domain.Citation {
	citations := make([]domain.Citation, 0, len(result.Chunks))
	docs := make(map[string]*domain.Document)

	for _, hit := range result.Chunks {
		doc, ok := docs[hit.Chunk.DocumentID]
		if !ok {
			var err error
			doc, err = s.docStore.Get(ctx, hit.Chunk.DocumentID)
			if err != nil {
				logger.Debug("Citation lookup failed for document %s: %v", hit.Chunk.DocumentID, err)
				doc = nil
			}
			docs[hit.Chunk.DocumentID] = doc
		}

		citation := domain.Citation{
			DocumentID: hit.Chunk.DocumentID,
			Ordinal:    hit.Chunk.Ordinal,
			Score:      hit.Score,
		}
		if doc != nil {
			citation.DocumentTitle = doc.Title
			citation.Path = doc.Path
			if citation.DocumentTitle == "" {
				citation.DocumentTitle = doc.Path
			}
		}
		citations = append(citations, citation)
	}

	return citations
}
