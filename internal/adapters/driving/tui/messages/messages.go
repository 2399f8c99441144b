// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// QuestionChanged is sent when the question input changes.
type QuestionChanged struct {
	Question string
}

// AskCompleted carries the answer for a submitted question.
type AskCompleted struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// CitationSelected is sent when a citation is selected.
type CitationSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the question input and answer view.
	ViewChat
	// ViewDocuments lists processed documents.
	ViewDocuments
	// ViewDocContent shows document content.
	ViewDocContent
	// ViewDocDetails shows document metadata.
	ViewDocDetails
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewDocDetails:
		return "doc_details"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CorporaLoaded carries the list of configured corpora.
type CorporaLoaded struct {
	Corpora []domain.Corpus
	Err     error
}

// DocumentsLoaded carries the list of processed documents.
type DocumentsLoaded struct {
	CorpusID  string
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document was selected.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentContentLoaded carries the content of a document.
type DocumentContentLoaded struct {
	DocumentID string
	Content    string
	Err        error
}

// DocumentDetailsLoaded carries the metadata of a document.
type DocumentDetailsLoaded struct {
	DocumentID string
	Details    interface{} // *driving.DocumentDetails
	Err        error
}

// DocumentDeleted signals a document was removed from the store.
type DocumentDeleted struct {
	DocumentID string
	Err        error
}

// DocumentOpened signals a document was opened externally.
type DocumentOpened struct {
	DocumentID string
	Err        error
}

// ContentCopied signals document content was copied to the clipboard.
type ContentCopied struct {
	DocumentID string
	Err        error
}
