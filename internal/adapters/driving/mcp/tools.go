package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask_corpus tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the stored documents"`
	Corpus   string `json:"corpus,omitempty" jsonschema:"restrict retrieval to one corpus by name"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of chunks to retrieve (default from settings)"`
}

// AskOutput is the output schema for the ask_corpus tool.
type AskOutput struct {
	Answer    string           `json:"answer"`
	Grounded  bool             `json:"grounded"`
	Citations []CitationOutput `json:"citations,omitempty"`
}

// CitationOutput identifies one chunk an answer drew on.
type CitationOutput struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title,omitempty"`
	Path       string  `json:"path,omitempty"`
	Chunk      int     `json:"chunk"`
	Score      float64 `json:"score"`
}

// SearchInput is the input schema for the search_chunks tool.
type SearchInput struct {
	Query    string  `json:"query" jsonschema:"the text to find similar chunks for"`
	Corpus   string  `json:"corpus,omitempty" jsonschema:"restrict retrieval to one corpus by name"`
	Limit    int     `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default from settings)"`
	MinScore float64 `json:"min_score,omitempty" jsonschema:"drop chunks scoring below this similarity"`
}

// SearchOutput is the output schema for the search_chunks tool.
type SearchOutput struct {
	Results []ChunkOutput `json:"results"`
	Count   int           `json:"count"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	DocumentID string  `json:"document_id"`
	Chunk      int     `json:"chunk"`
	Score      float64 `json:"score"`
	Text       string  `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_corpus",
		Description: "Answer a question grounded in the stored documents, with citations",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_chunks",
		Description: "Retrieve the stored chunks most similar to a query, without generating an answer",
	}, s.handleSearchChunks)
}

// handleAsk handles the ask_corpus tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	opts := driving.AskOptions{
		CorpusName: input.Corpus,
		TopK:       input.TopK,
	}

	answer, err := s.ports.Ask.Ask(ctx, input.Question, opts)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:    answer.Text,
		Grounded:  answer.Grounded,
		Citations: make([]CitationOutput, len(answer.Citations)),
	}
	for i, citation := range answer.Citations {
		output.Citations[i] = CitationOutput{
			DocumentID: citation.DocumentID,
			Title:      citation.DocumentTitle,
			Path:       citation.Path,
			Chunk:      citation.Ordinal,
			Score:      citation.Score,
		}
	}

	return nil, output, nil
}

// handleSearchChunks handles the search_chunks tool invocation.
func (s *Server) handleSearchChunks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := driving.AskOptions{
		CorpusName: input.Corpus,
		TopK:       input.Limit,
		MinScore:   input.MinScore,
	}

	result, err := s.ports.Ask.Retrieve(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]ChunkOutput, len(result.Chunks)),
		Count:   len(result.Chunks),
	}
	for i := range result.Chunks {
		hit := &result.Chunks[i]
		output.Results[i] = ChunkOutput{
			DocumentID: hit.Chunk.DocumentID,
			Chunk:      hit.Chunk.Ordinal,
			Score:      hit.Score,
			Text:       hit.Chunk.Text,
		}
	}

	return nil, output, nil
}
