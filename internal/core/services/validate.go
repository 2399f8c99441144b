package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// ValidationService checks structural invariants of stored chunk sets.
// The store refuses invalid writes up front; this service exists to audit
// data that entered the store under a different configuration, typically
// after the embedding model or width changed. It also flags documents
// whose source file drifted from the fingerprint they were processed under.
type ValidationService struct {
	docStore      driven.DocumentStore
	chunkStore    driven.ChunkStore
	corpusStore   driven.CorpusStore
	manifestStore driven.ManifestStore

	// dimensions is the expected vector width D. Zero means unknown;
	// the first chunk's width then serves as the reference.
	dimensions int
}

// NewValidationService creates a validation service expecting vectors of
// the given width. corpusStore and manifestStore may be nil, which
// disables the source freshness check.
func NewValidationService(
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	corpusStore driven.CorpusStore,
	manifestStore driven.ManifestStore,
	dimensions int,
) *ValidationService {
	return &ValidationService{
		docStore:      docStore,
		chunkStore:    chunkStore,
		corpusStore:   corpusStore,
		manifestStore: manifestStore,
		dimensions:    dimensions,
	}
}

// Document validates one document's stored chunks.
func (s *ValidationService) Document(ctx context.Context, documentID string) (*domain.ValidationReport, error) {
	doc, err := s.docStore.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	report := &domain.ValidationReport{
		DocumentID: doc.ID,
		Path:       doc.Path,
	}

	if issue := s.stalenessIssue(ctx, doc); issue != nil {
		report.Issues = append(report.Issues, *issue)
	}

	chunks, err := s.chunkStore.GetChunks(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return report, nil
		}
		return nil, fmt.Errorf("get chunks: %w", err)
	}

	report.ChunkCount = len(chunks)
	report.Issues = append(report.Issues, s.structuralIssues(chunks)...)
	report.AdjacentSimilarityMin, report.AdjacentSimilarityMean = adjacentSimilarity(chunks)

	return report, nil
}

// stalenessIssue compares the manifest fingerprint against the file now on
// disk. Nil when the check is disabled, the file was never recorded, or the
// content still matches.
func (s *ValidationService) stalenessIssue(ctx context.Context, doc *domain.Document) *domain.ValidationIssue {
	if s.corpusStore == nil || s.manifestStore == nil {
		return nil
	}

	entry, err := s.manifestStore.Get(ctx, doc.CorpusID, doc.Path)
	if err != nil || entry == nil {
		return nil
	}

	corpus, err := s.corpusStore.Get(ctx, doc.CorpusID)
	if err != nil {
		return nil
	}

	current, err := domain.FingerprintFile(filepath.Join(corpus.RootPath, doc.Path))
	if err != nil {
		return &domain.ValidationIssue{
			Ordinal: -1,
			Kind:    domain.IssueStaleContent,
			Detail:  fmt.Sprintf("source file unreadable: %v", err),
		}
	}
	if current != entry.Fingerprint {
		return &domain.ValidationIssue{
			Ordinal: -1,
			Kind:    domain.IssueStaleContent,
			Detail:  "content on disk changed since processing",
		}
	}
	return nil
}

// Corpus validates every document in a corpus.
func (s *ValidationService) Corpus(ctx context.Context, corpusID string) ([]domain.ValidationReport, error) {
	docs, err := s.docStore.List(ctx, corpusID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	reports := make([]domain.ValidationReport, 0, len(docs))
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.Document(ctx, docs[i].ID)
		if err != nil {
			return reports, fmt.Errorf("validate %s: %w", docs[i].Path, err)
		}
		reports = append(reports, *report)
	}

	return reports, nil
}

// structuralIssues runs every per-chunk check over a set ordered by ordinal.
func (s *ValidationService) structuralIssues(chunks []domain.Chunk) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	expected := s.dimensions
	if expected == 0 && len(chunks) > 0 {
		expected = len(chunks[0].Embedding)
	}

	seenOrdinals := make(map[int]bool, len(chunks))
	prevStart := -1

	for _, chunk := range chunks {
		if len(chunk.Embedding) != expected {
			issues = append(issues, domain.ValidationIssue{
				Ordinal: chunk.Ordinal,
				Kind:    domain.IssueDimensionMismatch,
				Detail:  fmt.Sprintf("vector width %d, expected %d", len(chunk.Embedding), expected),
			})
		}

		if chunk.Text == "" {
			issues = append(issues, domain.ValidationIssue{
				Ordinal: chunk.Ordinal,
				Kind:    domain.IssueEmptyText,
				Detail:  "chunk has no text",
			})
		}

		if seenOrdinals[chunk.Ordinal] {
			issues = append(issues, domain.ValidationIssue{
				Ordinal: chunk.Ordinal,
				Kind:    domain.IssueDuplicateOrdinal,
				Detail:  fmt.Sprintf("ordinal %d appears more than once", chunk.Ordinal),
			})
		}
		seenOrdinals[chunk.Ordinal] = true

		if chunk.EndOffset <= chunk.StartOffset {
			issues = append(issues, domain.ValidationIssue{
				Ordinal: chunk.Ordinal,
				Kind:    domain.IssueOffsetOrder,
				Detail:  fmt.Sprintf("range [%d, %d) is empty or inverted", chunk.StartOffset, chunk.EndOffset),
			})
		}
		if chunk.StartOffset <= prevStart {
			issues = append(issues, domain.ValidationIssue{
				Ordinal: chunk.Ordinal,
				Kind:    domain.IssueOffsetOrder,
				Detail:  fmt.Sprintf("start offset %d does not advance past %d", chunk.StartOffset, prevStart),
			})
		}
		prevStart = chunk.StartOffset
	}

	return issues
}

// adjacentSimilarity computes cosine similarity statistics between
// consecutive chunks' vectors. Both are zero when fewer than two chunks.
// Healthy chunk sets from one document score well above unrelated text
// because neighbouring chunks share overlap and topic.
func adjacentSimilarity(chunks []domain.Chunk) (min, mean float64) {
	if len(chunks) < 2 {
		return 0, 0
	}

	min = 1
	sum := 0.0
	pairs := 0

	for i := 1; i < len(chunks); i++ {
		score := cosineSimilarity(chunks[i-1].Embedding, chunks[i].Embedding)
		sum += score
		pairs++
		if score < min {
			min = score
		}
	}

	return min, sum / float64(pairs)
}
