package mcp

import (
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ask answers questions grounded in stored chunks.
	Ask driving.AskService

	// Document reads processed documents.
	Document driving.DocumentService

	// Corpus lists configured corpora.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Document and Corpus only back the browse resources.
	return nil
}
