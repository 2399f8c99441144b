package services

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages processed documents within corpora.
type DocumentService struct {
	docStore      driven.DocumentStore
	chunkStore    driven.ChunkStore
	corpusStore   driven.CorpusStore
	manifestStore driven.ManifestStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	corpusStore driven.CorpusStore,
	manifestStore driven.ManifestStore,
) *DocumentService {
	return &DocumentService{
		docStore:      docStore,
		chunkStore:    chunkStore,
		corpusStore:   corpusStore,
		manifestStore: manifestStore,
	}
}

// ListByCorpus returns all documents for a corpus.
// An empty corpusID lists every document.
func (s *DocumentService) ListByCorpus(ctx context.Context, corpusID string) ([]domain.Document, error) {
	return s.docStore.List(ctx, corpusID)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.Get(ctx, documentID)
}

// GetContent returns the canonical text reassembled from stored chunks.
// Consecutive chunks overlap, so each chunk past the first contributes only
// the suffix beyond the previous chunk's end offset.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if _, err := s.docStore.Get(ctx, documentID); err != nil {
		return "", err
	}

	chunks, err := s.chunkStore.GetChunks(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get chunks: %w", err)
	}

	var builder strings.Builder
	prevEnd := 0
	for _, chunk := range chunks {
		text := chunk.Text
		if overlap := prevEnd - chunk.StartOffset; overlap > 0 {
			if overlap >= len(text) {
				continue
			}
			text = text[overlap:]
		}
		builder.WriteString(text)
		if chunk.EndOffset > prevEnd {
			prevEnd = chunk.EndOffset
		}
	}

	return builder.String(), nil
}

// GetDetails returns document metadata for display.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.docStore.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var corpusName string
	if corpus, err := s.corpusStore.Get(ctx, doc.CorpusID); err == nil {
		corpusName = corpus.Name
	}

	chunkCount := 0
	if chunks, err := s.chunkStore.GetChunks(ctx, documentID); err == nil {
		chunkCount = len(chunks)
	}

	return &driving.DocumentDetails{
		ID:             doc.ID,
		CorpusID:       doc.CorpusID,
		CorpusName:     corpusName,
		Title:          doc.Title,
		Path:           doc.Path,
		Format:         doc.Format,
		PageCount:      doc.PageCount,
		ChunkCount:     chunkCount,
		Summary:        doc.Summary,
		Tags:           doc.Tags,
		Classification: doc.Classification,
		ProcessedAt:    doc.ProcessedAt,
	}, nil
}

// Delete removes a document with its chunks and manifest entry.
// The file is re-ingested as new on the next run if still present.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	doc, err := s.docStore.Get(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.docStore.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := s.manifestStore.Delete(ctx, doc.CorpusID, doc.Path); err != nil {
		return fmt.Errorf("delete manifest entry: %w", err)
	}
	return nil
}

// Open opens the source file in the default application.
func (s *DocumentService) Open(ctx context.Context, documentID string) error {
	doc, err := s.docStore.Get(ctx, documentID)
	if err != nil {
		return err
	}

	corpus, err := s.corpusStore.Get(ctx, doc.CorpusID)
	if err != nil {
		return fmt.Errorf("get corpus: %w", err)
	}

	return openPath(filepath.Join(corpus.RootPath, doc.Path))
}

// openPath opens a file using the system default handler.
func openPath(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", path)
	case osLinux:
		cmd = exec.Command("xdg-open", path)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
