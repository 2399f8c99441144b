package driven

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// Connector reads raw documents from a corpus root.
// The filesystem connector is the only production implementation; the
// interface exists so ingest runs can be driven by fakes in tests.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// CorpusID returns the corpus this connector scans.
	CorpusID() string

	// Capabilities returns what this connector supports.
	Capabilities() ConnectorCapabilities

	// Validate checks the connector is ready to scan.
	// For the filesystem this verifies the root exists and is a directory.
	Validate(ctx context.Context) error

	// FullScan reads every file under the root.
	// Returns channels for documents and errors; both close when the scan
	// ends or the context is cancelled.
	FullScan(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch listens for file changes under the root.
	// Only available if SupportsWatch is true.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorCapabilities describes what a connector supports.
type ConnectorCapabilities struct {
	// SupportsWatch indicates the connector can push change events.
	SupportsWatch bool

	// SupportsHierarchy indicates the source has nested structure.
	SupportsHierarchy bool

	// SupportsBinary indicates the connector reads binary content.
	SupportsBinary bool
}

// ConnectorFactory builds a connector for a corpus.
// Ingest runs create one connector per run and close it when done.
type ConnectorFactory interface {
	// Create returns a Connector for the given corpus.
	Create(ctx context.Context, corpus domain.Corpus) (Connector, error)
}
