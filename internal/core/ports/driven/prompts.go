package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fall back to built-in defaults.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptGrounded is the answer-generation methodology. It instructs the
	// model to answer strictly from the supplied context blocks, cite them,
	// and decline when the context does not contain the answer.
	// The template expects %s (context) and %s (question) placeholders.
	PromptGrounded = "grounded_answer"

	// PromptSummarise creates summaries of document content.
	// The template expects %d (max length) and %s (content) placeholders.
	PromptSummarise = "summarise"

	// PromptTags derives topic labels for a document.
	// The template expects a %s (content) placeholder.
	PromptTags = "tags"

	// PromptClassify assigns a document to a category.
	// The template expects a %s (content) placeholder.
	PromptClassify = "classify"
)

// PromptStoreAware is an optional interface for services that can use custom
// prompts. Services implementing it can have their templates customised by
// injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
