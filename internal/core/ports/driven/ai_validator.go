package driven

import "github.com/quarrylabs/quarry-cli/internal/core/domain"

// AIConfigValidator validates AI provider configurations.
// Implementations verify configurations by testing connectivity to the
// underlying services.
type AIConfigValidator interface {
	// ValidateEmbedding validates an embedding configuration by pinging the
	// provider. Returns nil if the configuration is valid or not configured.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if the configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
