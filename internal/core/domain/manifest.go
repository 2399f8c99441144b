package domain

import "time"

// RefreshDecision is the outcome of comparing a file's current fingerprint
// against its manifest entry.
type RefreshDecision int

const (
	// DecisionNew indicates the file has no manifest entry and must be processed.
	DecisionNew RefreshDecision = iota

	// DecisionSkip indicates the fingerprint matches a successful entry;
	// the file is not reprocessed.
	DecisionSkip

	// DecisionReprocess indicates the fingerprint changed or the previous
	// attempt failed; the full chunk set is replaced, never patched.
	DecisionReprocess
)

// String returns the decision name for logs and reports.
func (d RefreshDecision) String() string {
	switch d {
	case DecisionNew:
		return "new"
	case DecisionSkip:
		return "skip"
	case DecisionReprocess:
		return "reprocess"
	default:
		return "unknown"
	}
}

// ManifestStatus records how the last processing attempt ended.
type ManifestStatus string

const (
	// ManifestSuccess marks a file whose full pipeline completed and committed.
	ManifestSuccess ManifestStatus = "success"

	// ManifestFailed marks a file whose last attempt failed after commit of a
	// previous run. Failed entries are always reprocessed on the next run.
	ManifestFailed ManifestStatus = "failed"
)

// ManifestEntry maps a source file to its last-seen fingerprint and outcome.
// The manifest is consulted only by the refresh gate; retrieval never reads it.
// An entry is written only after the downstream pipeline has fully committed,
// so a partial failure leaves the file eligible for retry on the next run.
type ManifestEntry struct {
	// CorpusID links to the owning Corpus.
	CorpusID string

	// Path is the source file location relative to the corpus root.
	Path string

	// Fingerprint is the content hash recorded at the last attempt.
	Fingerprint string

	// Status is the outcome of the last attempt.
	Status ManifestStatus

	// ProcessedAt is when the entry was last written.
	ProcessedAt time.Time
}

// Decide compares a file's current fingerprint against its manifest entry.
// A nil entry means the file was never seen.
func Decide(entry *ManifestEntry, currentFingerprint string) RefreshDecision {
	if entry == nil {
		return DecisionNew
	}
	if entry.Status == ManifestSuccess && entry.Fingerprint == currentFingerprint {
		return DecisionSkip
	}
	return DecisionReprocess
}
