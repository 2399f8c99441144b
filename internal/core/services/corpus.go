package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService manages corpus configurations.
type CorpusService struct {
	corpusStore   driven.CorpusStore
	docStore      driven.DocumentStore
	manifestStore driven.ManifestStore
}

// NewCorpusService creates a new corpus service.
func NewCorpusService(
	corpusStore driven.CorpusStore,
	docStore driven.DocumentStore,
	manifestStore driven.ManifestStore,
) *CorpusService {
	return &CorpusService{
		corpusStore:   corpusStore,
		docStore:      docStore,
		manifestStore: manifestStore,
	}
}

// Add registers a new corpus for a folder.
func (s *CorpusService) Add(ctx context.Context, corpus domain.Corpus) (*domain.Corpus, error) {
	corpus.Name = strings.TrimSpace(corpus.Name)
	if corpus.Name == "" {
		return nil, fmt.Errorf("%w: corpus name is required", domain.ErrInvalidArgument)
	}
	if corpus.RootPath == "" {
		return nil, fmt.Errorf("%w: corpus root path is required", domain.ErrInvalidArgument)
	}
	if !filepath.IsAbs(corpus.RootPath) {
		return nil, fmt.Errorf("%w: root path must be absolute: %s", domain.ErrInvalidArgument, corpus.RootPath)
	}
	if corpus.ChunkSize > 0 {
		cfg := domain.ChunkingSettings{Size: corpus.ChunkSize, Overlap: corpus.ChunkOverlap}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	// Names are unique across corpora
	existing, err := s.corpusStore.GetByName(ctx, corpus.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check corpus name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: corpus %q", domain.ErrAlreadyExists, corpus.Name)
	}

	now := time.Now()
	corpus.ID = uuid.New().String()
	corpus.CreatedAt = now
	corpus.UpdatedAt = now

	if err := s.corpusStore.Save(ctx, corpus); err != nil {
		return nil, fmt.Errorf("save corpus: %w", err)
	}

	logger.Info("Added corpus %q at %s", corpus.Name, corpus.RootPath)
	return &corpus, nil
}

// Get retrieves a corpus by ID.
func (s *CorpusService) Get(ctx context.Context, id string) (*domain.Corpus, error) {
	return s.corpusStore.Get(ctx, id)
}

// GetByName retrieves a corpus by its unique name.
func (s *CorpusService) GetByName(ctx context.Context, name string) (*domain.Corpus, error) {
	return s.corpusStore.GetByName(ctx, name)
}

// List returns all configured corpora.
func (s *CorpusService) List(ctx context.Context) ([]domain.Corpus, error) {
	return s.corpusStore.List(ctx)
}

// Update modifies an existing corpus configuration.
func (s *CorpusService) Update(ctx context.Context, corpus domain.Corpus) error {
	if corpus.ID == "" {
		return fmt.Errorf("%w: corpus id is required", domain.ErrInvalidArgument)
	}
	existing, err := s.corpusStore.Get(ctx, corpus.ID)
	if err != nil {
		return err
	}
	corpus.CreatedAt = existing.CreatedAt
	corpus.UpdatedAt = time.Now()
	return s.corpusStore.Save(ctx, corpus)
}

// Remove deletes a corpus with its documents, chunks and manifest.
func (s *CorpusService) Remove(ctx context.Context, id string) error {
	corpus, err := s.corpusStore.Get(ctx, id)
	if err != nil {
		return err
	}

	// Cleanup: delete documents and chunks, then manifest entries, then the corpus
	docs, err := s.docStore.List(ctx, id)
	if err == nil {
		for i := range docs {
			//nolint:errcheck // Intentionally ignore errors to continue cleanup
			_ = s.docStore.Delete(ctx, docs[i].ID)
		}
	}
	entries, err := s.manifestStore.List(ctx, id)
	if err == nil {
		for _, entry := range entries {
			//nolint:errcheck // Intentionally ignore errors to continue cleanup
			_ = s.manifestStore.Delete(ctx, id, entry.Path)
		}
	}

	logger.Info("Removing corpus %q", corpus.Name)
	return s.corpusStore.Delete(ctx, id)
}
