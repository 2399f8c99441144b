package tui

import "errors"

// Validation errors for the Ports aggregate. Each names the required
// service that was left nil.
var (
	ErrMissingAskService      = errors.New("tui: ask service is required")
	ErrMissingDocumentService = errors.New("tui: document service is required")
	ErrMissingCorpusService   = errors.New("tui: corpus service is required")
)
