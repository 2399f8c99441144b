package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService writes documents and their chunk sets to disk as JSON and
// Markdown. Vectors are omitted: exports are for reading and auditing, and
// embeddings are re-derivable from the text.
type ExportService struct {
	docStore    driven.DocumentStore
	chunkStore  driven.ChunkStore
	corpusStore driven.CorpusStore
}

// NewExportService creates an export service.
func NewExportService(
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	corpusStore driven.CorpusStore,
) *ExportService {
	return &ExportService{
		docStore:    docStore,
		chunkStore:  chunkStore,
		corpusStore: corpusStore,
	}
}

// documentExport is the JSON shape written per document.
type documentExport struct {
	ID             string        `json:"id"`
	Corpus         string        `json:"corpus"`
	Path           string        `json:"path"`
	Title          string        `json:"title,omitempty"`
	Format         string        `json:"format,omitempty"`
	Fingerprint    string        `json:"fingerprint"`
	PageCount      int           `json:"page_count,omitempty"`
	Summary        string        `json:"summary,omitempty"`
	Tags           []string      `json:"tags,omitempty"`
	Classification string        `json:"classification,omitempty"`
	ProcessedAt    time.Time     `json:"processed_at"`
	Chunks         []chunkExport `json:"chunks"`
}

// chunkExport is one chunk in the JSON export, without its vector.
type chunkExport struct {
	Ordinal     int    `json:"ordinal"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	Text        string `json:"text"`
}

// Document writes one document's export files into dir.
func (s *ExportService) Document(ctx context.Context, documentID, dir string) ([]string, error) {
	doc, err := s.docStore.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	corpusName := doc.CorpusID
	if corpus, err := s.corpusStore.Get(ctx, doc.CorpusID); err == nil {
		corpusName = corpus.Name
	}

	chunks, err := s.chunkStore.GetChunks(ctx, documentID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get chunks: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	slug := exportSlug(doc.Path)

	jsonPath := filepath.Join(dir, slug+".json")
	if err := writeJSONExport(jsonPath, doc, corpusName, chunks); err != nil {
		return nil, err
	}

	mdPath := filepath.Join(dir, slug+".md")
	if err := writeMarkdownExport(mdPath, doc, corpusName, chunks); err != nil {
		return nil, err
	}

	logger.Debug("Exported document %s to %s", doc.Path, dir)

	return []string{jsonPath, mdPath}, nil
}

// Corpus exports every document of a corpus into dir.
func (s *ExportService) Corpus(ctx context.Context, corpusID, dir string) ([]string, error) {
	docs, err := s.docStore.List(ctx, corpusID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var paths []string
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		written, err := s.Document(ctx, docs[i].ID, dir)
		if err != nil {
			return paths, fmt.Errorf("export %s: %w", docs[i].Path, err)
		}
		paths = append(paths, written...)
	}

	logger.Info("Exported %d documents to %s", len(docs), dir)

	return paths, nil
}

func writeJSONExport(path string, doc *domain.Document, corpusName string, chunks []domain.Chunk) error {
	export := documentExport{
		ID:             doc.ID,
		Corpus:         corpusName,
		Path:           doc.Path,
		Title:          doc.Title,
		Format:         doc.Format,
		Fingerprint:    doc.Fingerprint,
		PageCount:      doc.PageCount,
		Summary:        doc.Summary,
		Tags:           doc.Tags,
		Classification: doc.Classification,
		ProcessedAt:    doc.ProcessedAt,
		Chunks:         make([]chunkExport, 0, len(chunks)),
	}
	for _, chunk := range chunks {
		export.Chunks = append(export.Chunks, chunkExport{
			Ordinal:     chunk.Ordinal,
			StartOffset: chunk.StartOffset,
			EndOffset:   chunk.EndOffset,
			Text:        chunk.Text,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func writeMarkdownExport(path string, doc *domain.Document, corpusName string, chunks []domain.Chunk) error {
	var b strings.Builder

	title := doc.Title
	if title == "" {
		title = doc.Path
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "- Corpus: %s\n", corpusName)
	fmt.Fprintf(&b, "- Path: %s\n", doc.Path)
	if doc.Format != "" {
		fmt.Fprintf(&b, "- Format: %s\n", doc.Format)
	}
	if doc.PageCount > 0 {
		fmt.Fprintf(&b, "- Pages: %d\n", doc.PageCount)
	}
	if doc.Classification != "" {
		fmt.Fprintf(&b, "- Classification: %s\n", doc.Classification)
	}
	if len(doc.Tags) > 0 {
		fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(doc.Tags, ", "))
	}
	fmt.Fprintf(&b, "- Chunks: %d\n", len(chunks))
	fmt.Fprintf(&b, "- Processed: %s\n", doc.ProcessedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Fingerprint: %s\n\n", doc.Fingerprint)

	if doc.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(doc.Summary)
		b.WriteString("\n\n")
	}

	if len(chunks) > 0 {
		b.WriteString("## Chunks\n\n")
		for _, chunk := range chunks {
			fmt.Fprintf(&b, "### Chunk %d [%d, %d)\n\n", chunk.Ordinal, chunk.StartOffset, chunk.EndOffset)
			b.WriteString(chunk.Text)
			b.WriteString("\n\n")
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// exportSlug converts a document path into a flat, filesystem-safe name.
// Path is unique within a corpus, so the slug is collision-free as long as
// distinct paths do not sanitise to the same string.
func exportSlug(path string) string {
	slug := strings.TrimSuffix(path, filepath.Ext(path))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, slug)
	return strings.Trim(slug, "_.")
}
