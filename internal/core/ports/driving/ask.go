package driving

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// AskService answers questions grounded in retrieved chunks.
type AskService interface {
	// Ask embeds the question, retrieves the most similar chunks, assembles
	// a grounded request and generates an answer with citations.
	// When retrieval returns nothing the canonical no-answer response comes
	// back without a generation call.
	Ask(ctx context.Context, question string, opts AskOptions) (*domain.Answer, error)

	// Retrieve exposes the raw ranked retrieval for a question.
	// Used by callers that present chunks directly instead of an answer.
	Retrieve(ctx context.Context, question string, opts AskOptions) (domain.RetrievalResult, error)
}

// AskOptions configures a grounded query.
type AskOptions struct {
	// CorpusName restricts retrieval to one corpus. Empty spans all corpora.
	CorpusName string

	// TopK overrides the configured retrieval depth when positive.
	TopK int

	// MinScore overrides the configured similarity floor when positive.
	MinScore float64
}
