package domain

// NoContextMarker is the context text of a GroundedRequest whose retrieval
// returned nothing. It is always present so the generation step can see,
// structurally, that no grounding material exists.
const NoContextMarker = "[no relevant context found]"

// NoAnswerText is the canonical response when no grounded answer is possible.
const NoAnswerText = "Based on the provided context, there is no information available to answer this question."

// ContextBlock is one retrieved chunk rendered into a generation request.
// Text is always verbatim chunk text; the assembler never paraphrases.
type ContextBlock struct {
	// DocumentID links to the source document.
	DocumentID string

	// DocumentTitle is the display title used in the citation tag.
	DocumentTitle string

	// Ordinal is the chunk position within the document.
	Ordinal int

	// Score is the retrieval similarity for this block.
	Score float64

	// Text is the verbatim chunk text.
	Text string
}

// GroundedRequest is a generation request whose factual context is exactly
// the retrieved chunk set. The assembler is the single component allowed to
// build one.
type GroundedRequest struct {
	// Question is the user's query, verbatim.
	Question string

	// Context holds the retrieved blocks in rank order.
	// Empty when the retrieval found nothing.
	Context []ContextBlock

	// Prompt is the fully rendered generation prompt, combining the
	// methodology directive, the context blocks and the question.
	Prompt string
}

// HasContext reports whether the request carries any grounding material.
func (r GroundedRequest) HasContext() bool {
	return len(r.Context) > 0
}

// Citation identifies a chunk that supported an answer.
type Citation struct {
	// DocumentID links to the cited document.
	DocumentID string

	// DocumentTitle is the display title of the cited document.
	DocumentTitle string

	// Path is the cited document's source path.
	Path string

	// Ordinal is the cited chunk position.
	Ordinal int

	// Score is the retrieval similarity of the cited chunk.
	Score float64
}

// Answer is the outcome of a grounded query.
type Answer struct {
	// Text is the generated answer, or NoAnswerText when retrieval was empty.
	Text string

	// Citations lists the chunks the answer was grounded on, in rank order.
	Citations []Citation

	// Grounded is false when no context was available and the canonical
	// no-answer response was returned without calling the generation backend.
	Grounded bool
}
