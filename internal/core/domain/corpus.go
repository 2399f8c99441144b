package domain

import "time"

// Corpus represents a named ingest root: a local folder whose documents are
// processed into one retrievable collection. Queries may target a single
// corpus or span all of them.
type Corpus struct {
	// ID is the unique identifier for the corpus.
	ID string

	// Name is the human-readable name, unique across corpora.
	Name string

	// RootPath is the absolute folder path scanned during a run.
	RootPath string

	// ChunkSize overrides the global chunk size when non-zero.
	ChunkSize int

	// ChunkOverlap overrides the global chunk overlap when ChunkSize is set.
	ChunkOverlap int

	// CreatedAt is when the corpus was registered.
	CreatedAt time.Time

	// UpdatedAt is when the corpus was last modified.
	UpdatedAt time.Time
}

// Chunking returns the corpus chunking configuration, falling back to the
// supplied defaults when the corpus carries no override.
func (c *Corpus) Chunking(defaults ChunkingSettings) ChunkingSettings {
	if c.ChunkSize > 0 {
		return ChunkingSettings{Size: c.ChunkSize, Overlap: c.ChunkOverlap}
	}
	return defaults
}
