package driving

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// RunCoordinator orchestrates ingest-or-refresh runs over corpora.
// A run scans a corpus root, decides per file whether to skip, process or
// reprocess, executes the pipeline for changed files, and reports the
// outcome. One corpus runs at most once concurrently.
type RunCoordinator interface {
	// Run executes the full cycle for one corpus and returns its report.
	// A single failing document never aborts the run; failures are rows in
	// the report. The error is non-nil only for run-level problems
	// (unknown corpus, unreadable root, run already active, cancellation).
	Run(ctx context.Context, corpusID string) (*domain.RunReport, error)

	// RunAll executes Run for every configured corpus, in name order.
	RunAll(ctx context.Context) ([]*domain.RunReport, error)

	// Watch keeps a corpus fresh by reacting to filesystem change events
	// until the context is cancelled.
	Watch(ctx context.Context, corpusID string) error

	// Status returns the live state of a corpus run.
	Status(ctx context.Context, corpusID string) (*RunStatus, error)
}

// RunStatus represents the current state of an ingest run.
type RunStatus struct {
	// CorpusID identifies the corpus.
	CorpusID string

	// Running indicates if a run is currently in progress.
	Running bool

	// Processed is the count of documents committed so far.
	Processed int

	// Skipped is the count of unchanged documents so far.
	Skipped int

	// Failed is the count of failed documents so far.
	Failed int
}
