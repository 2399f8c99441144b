package domain

// ValidationIssue is one structural defect found in a stored chunk set.
type ValidationIssue struct {
	// Ordinal identifies the offending chunk. Negative for document-level issues.
	Ordinal int

	// Kind names the defect class.
	Kind ValidationIssueKind

	// Detail is a human-readable description.
	Detail string
}

// ValidationIssueKind enumerates structural defect classes.
type ValidationIssueKind string

const (
	// IssueDimensionMismatch flags a vector whose width differs from D.
	IssueDimensionMismatch ValidationIssueKind = "dimension_mismatch"

	// IssueEmptyText flags a chunk with no text.
	IssueEmptyText ValidationIssueKind = "empty_text"

	// IssueDuplicateOrdinal flags two chunks sharing an ordinal.
	IssueDuplicateOrdinal ValidationIssueKind = "duplicate_ordinal"

	// IssueOffsetOrder flags offsets that are not monotonically increasing
	// or a range with end <= start.
	IssueOffsetOrder ValidationIssueKind = "offset_order"

	// IssueStaleContent flags a document whose source file on disk no
	// longer matches the fingerprint it was processed under.
	IssueStaleContent ValidationIssueKind = "stale_content"
)

// ValidationReport is the structural report for one document's chunk set.
type ValidationReport struct {
	// DocumentID identifies the validated document.
	DocumentID string

	// Path is the document's source path.
	Path string

	// ChunkCount is the number of stored chunks.
	ChunkCount int

	// Issues lists every defect found. Empty means the set is sound.
	Issues []ValidationIssue

	// AdjacentSimilarityMin is the lowest cosine similarity between
	// consecutive chunks' vectors. Zero when fewer than two chunks.
	AdjacentSimilarityMin float64

	// AdjacentSimilarityMean is the mean cosine similarity between
	// consecutive chunks' vectors. Zero when fewer than two chunks.
	AdjacentSimilarityMean float64
}

// Valid reports whether the chunk set passed every structural check.
func (r ValidationReport) Valid() bool {
	return len(r.Issues) == 0
}
