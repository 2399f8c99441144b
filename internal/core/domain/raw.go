package domain

import "time"

// RawDocument represents opaque bytes read by a connector.
// It is the scanner's output before extraction.
type RawDocument struct {
	// CorpusID links to the Corpus being scanned.
	CorpusID string

	// Path is the file location relative to the corpus root.
	Path string

	// AbsolutePath is the full filesystem location, used by extractors that
	// delegate to external converters operating on files.
	AbsolutePath string

	// MIMEType is the detected content type (e.g. "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// ModTime is the file modification time at read.
	ModTime time.Time
}

// ChangeType represents the kind of filesystem change seen in watch mode.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// RawDocumentChange represents a change event from a connector watch.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected document. For deletions only the path
	// fields are populated.
	Document RawDocument
}
