package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// One vector width D is fixed per configuration; every vector this service
// returns must have exactly D components, and the chunk store re-checks
// that at write time.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//
// Failure taxonomy: domain.ErrServiceUnavailable for unreachable, throttled
// or timing-out backends (retryable); domain.ErrInvalidInput for text the
// provider rejects (not retryable).
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// More efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector width D (e.g. 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
