package domain

import "time"

// DocumentStatus is the per-file outcome within a run report.
type DocumentStatus string

const (
	// StatusProcessed marks a file whose pipeline completed and committed.
	StatusProcessed DocumentStatus = "processed"

	// StatusSkipped marks a file left untouched: unchanged content or
	// empty extracted text.
	StatusSkipped DocumentStatus = "skipped"

	// StatusFailed marks a file whose pipeline failed; nothing was committed
	// for it and the run continued with the remaining files.
	StatusFailed DocumentStatus = "failed"

	// StatusDeleted marks a manifest entry whose source file disappeared;
	// its chunks and entry were removed.
	StatusDeleted DocumentStatus = "deleted"
)

// DocumentOutcome is one row of a run report.
type DocumentOutcome struct {
	// Path is the file location relative to the corpus root.
	Path string

	// Decision is the refresh gate decision for this file.
	Decision RefreshDecision

	// Status is the final outcome.
	Status DocumentStatus

	// Detail carries the failure reason or a skip explanation. Empty on success.
	Detail string

	// Chunks is the number of chunks committed for this file. Zero unless
	// Status is StatusProcessed.
	Chunks int

	// Duration is the wall time spent on this file.
	Duration time.Duration
}

// RunReport aggregates the outcome of one ingest run over a corpus.
type RunReport struct {
	// CorpusID identifies the corpus the run covered.
	CorpusID string

	// CorpusName is the display name of the corpus.
	CorpusName string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended, whether complete or cancelled.
	FinishedAt time.Time

	// Outcomes holds one row per scanned file, in scan order.
	Outcomes []DocumentOutcome
}

// Processed counts files whose pipeline committed.
func (r *RunReport) Processed() int { return r.count(StatusProcessed) }

// Skipped counts files left untouched.
func (r *RunReport) Skipped() int { return r.count(StatusSkipped) }

// Failed counts files whose pipeline failed.
func (r *RunReport) Failed() int { return r.count(StatusFailed) }

// Deleted counts vanished files whose derived data was removed.
func (r *RunReport) Deleted() int { return r.count(StatusDeleted) }

// Succeeded reports whether every file either processed, skipped or was
// cleaned up. A run with any failed document is not a success.
func (r *RunReport) Succeeded() bool {
	return r.Failed() == 0
}

func (r *RunReport) count(status DocumentStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
