package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true for cloud providers.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true for providers served from the local machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions is the embedding vector width D. Every stored vector is
	// checked against it.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return e.Model != "" && e.Dimensions > 0
}

// LLMSettings holds generation provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return l.Model != ""
}

// ChunkingSettings is the immutable configuration passed to the chunker.
// It is carried explicitly through calls, never read from ambient state.
type ChunkingSettings struct {
	// Size is the chunk length in characters.
	Size int

	// Overlap is how many characters consecutive chunks share.
	Overlap int
}

// Validate enforces 0 <= overlap < size.
func (c ChunkingSettings) Validate() error {
	if c.Size <= 0 {
		return ErrInvalidArgument
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		return ErrInvalidArgument
	}
	return nil
}

// ChunkCount returns the number of chunks a text of the given length yields
// under this configuration: ceil((length-overlap)/(size-overlap)).
func (c ChunkingSettings) ChunkCount(length int) int {
	if length <= 0 {
		return 0
	}
	if length <= c.Size {
		return 1
	}
	step := c.Size - c.Overlap
	return (length - c.Overlap + step - 1) / step
}

// RetrievalSettings holds query-time behaviour.
type RetrievalSettings struct {
	// TopK is the number of chunks retrieved per query.
	TopK int

	// MinScore drops hits below this similarity. Zero disables the floor.
	MinScore float64
}

// RunSettings holds ingest run behaviour.
type RunSettings struct {
	// Workers bounds the per-document worker pool.
	Workers int

	// MaxRetries bounds embedding retry attempts per document.
	MaxRetries int

	// RetryBackoff is the initial retry delay; it doubles per attempt.
	RetryBackoff time.Duration

	// MaxBackoff caps the retry delay.
	MaxBackoff time.Duration

	// GatewayTimeout bounds each external gateway call.
	GatewayTimeout time.Duration

	// EmbedRate limits embedding calls per second. Zero disables the limiter.
	EmbedRate float64

	// Enrich enables LLM-derived summary, tags and classification after commit.
	Enrich bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds generation provider settings.
	LLM LLMSettings

	// Chunking holds the default chunking configuration.
	Chunking ChunkingSettings

	// Retrieval holds query-time settings.
	Retrieval RetrievalSettings

	// Run holds ingest run settings.
	Run RunSettings

	// ExportDir is where document exports are written.
	ExportDir string
}

// DefaultAppSettings returns settings with sensible defaults.
// AI providers are left unconfigured; users set them up explicitly.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{},
		LLM:       LLMSettings{},
		Chunking: ChunkingSettings{
			Size:    1000,
			Overlap: 200,
		},
		Retrieval: RetrievalSettings{
			TopK: 5,
		},
		Run: RunSettings{
			Workers:        4,
			MaxRetries:     3,
			RetryBackoff:   500 * time.Millisecond,
			MaxBackoff:     8 * time.Second,
			GatewayTimeout: 60 * time.Second,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector width for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
	}
}
