package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument indicates a caller violated an operation's contract,
	// such as requesting a non-positive number of results.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation indicates a structural invariant violation on a chunk or
	// vector: wrong embedding width, empty text, or a duplicate ordinal.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInput indicates malformed input to an external gateway,
	// such as empty text or text exceeding the provider's length limit.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates no extractor handles the file format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtraction indicates a converter could not produce text from a file,
	// for example a corrupted scan or an OCR failure.
	ErrExtraction = errors.New("extraction failed")

	// ErrServiceUnavailable indicates the embedding backend is unreachable,
	// rate-limited, or timing out. Retryable with backoff.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrGenerationUnavailable indicates the answer-generation backend failed.
	// Surfaced to the caller, never substituted with fabricated content.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// ErrEmbeddingUnavailable indicates no embedding provider is configured.
	// Ingest and retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates no LLM provider is configured.
	// Features requiring generation (ask, summaries) are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRunInProgress indicates an ingest run is already active for a corpus.
	ErrRunInProgress = errors.New("run in progress")

	// ErrCorpusNotEmpty indicates a corpus still holds documents.
	ErrCorpusNotEmpty = errors.New("corpus not empty")
)
