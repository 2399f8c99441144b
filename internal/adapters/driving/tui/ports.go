// Package tui implements the interactive terminal interface: a menu,
// the grounded chat view, and the document browser, all driven through
// the core services.
package tui

import (
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// Ports bundles the driving services the TUI needs, giving callers one
// injection point.
type Ports struct {
	// Ask answers questions against the processed corpora.
	Ask driving.AskService

	// Document lists and inspects processed documents.
	Document driving.DocumentService

	// Corpus lists the configured corpora.
	Corpus driving.CorpusService

	// Actions provides clipboard and open actions on citations.
	// Optional: when nil those actions are unavailable in the chat view.
	Actions driving.CitationActionService
}

// NewPorts creates a Ports aggregate from the given services.
func NewPorts(
	ask driving.AskService,
	document driving.DocumentService,
	corpus driving.CorpusService,
	actions driving.CitationActionService,
) *Ports {
	return &Ports{
		Ask:      ask,
		Document: document,
		Corpus:   corpus,
		Actions:  actions,
	}
}

// Validate reports the first required service that is missing.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	return nil
}
