package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driven/storage/memory"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

func newCorpusService() (*CorpusService, *memory.CorpusStore, *memory.DocumentStore, *memory.ManifestStore) {
	corpusStore := memory.NewCorpusStore()
	docStore := memory.NewDocumentStore()
	manifestStore := memory.NewManifestStore()
	return NewCorpusService(corpusStore, docStore, manifestStore), corpusStore, docStore, manifestStore
}

func TestCorpusService_Add(t *testing.T) {
	svc, store, _, _ := newCorpusService()
	ctx := context.Background()

	corpus, err := svc.Add(ctx, domain.Corpus{Name: "notes", RootPath: "/home/me/notes"})
	require.NoError(t, err)

	assert.NotEmpty(t, corpus.ID)
	assert.Equal(t, "notes", corpus.Name)
	assert.Equal(t, "/home/me/notes", corpus.RootPath)
	assert.False(t, corpus.CreatedAt.IsZero())
	assert.Equal(t, corpus.CreatedAt, corpus.UpdatedAt)

	saved, err := store.Get(ctx, corpus.ID)
	require.NoError(t, err)
	assert.Equal(t, "notes", saved.Name)
}

func TestCorpusService_Add_TrimsName(t *testing.T) {
	svc, _, _, _ := newCorpusService()

	corpus, err := svc.Add(context.Background(), domain.Corpus{Name: "  notes  ", RootPath: "/home/me/notes"})
	require.NoError(t, err)
	assert.Equal(t, "notes", corpus.Name)
}

func TestCorpusService_Add_Validation(t *testing.T) {
	tests := []struct {
		name   string
		corpus domain.Corpus
	}{
		{name: "empty name", corpus: domain.Corpus{RootPath: "/home/me/notes"}},
		{name: "whitespace name", corpus: domain.Corpus{Name: "   ", RootPath: "/home/me/notes"}},
		{name: "empty root path", corpus: domain.Corpus{Name: "notes"}},
		{name: "relative root path", corpus: domain.Corpus{Name: "notes", RootPath: "notes"}},
		{name: "overlap equals size", corpus: domain.Corpus{
			Name: "notes", RootPath: "/home/me/notes", ChunkSize: 100, ChunkOverlap: 100,
		}},
		{name: "negative overlap", corpus: domain.Corpus{
			Name: "notes", RootPath: "/home/me/notes", ChunkSize: 100, ChunkOverlap: -1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newCorpusService()
			_, err := svc.Add(context.Background(), tt.corpus)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestCorpusService_Add_ChunkOverride(t *testing.T) {
	svc, _, _, _ := newCorpusService()

	corpus, err := svc.Add(context.Background(), domain.Corpus{
		Name: "notes", RootPath: "/home/me/notes", ChunkSize: 500, ChunkOverlap: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 500, corpus.ChunkSize)
	assert.Equal(t, 50, corpus.ChunkOverlap)
}

func TestCorpusService_Add_DuplicateName(t *testing.T) {
	svc, _, _, _ := newCorpusService()
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.Corpus{Name: "notes", RootPath: "/home/me/notes"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, domain.Corpus{Name: "notes", RootPath: "/somewhere/else"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCorpusService_GetByName(t *testing.T) {
	svc, _, _, _ := newCorpusService()
	ctx := context.Background()

	added, err := svc.Add(ctx, domain.Corpus{Name: "notes", RootPath: "/home/me/notes"})
	require.NoError(t, err)

	found, err := svc.GetByName(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, added.ID, found.ID)

	_, err = svc.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCorpusService_List(t *testing.T) {
	svc, _, _, _ := newCorpusService()
	ctx := context.Background()

	_, err := svc.Add(ctx, domain.Corpus{Name: "work", RootPath: "/srv/work"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, domain.Corpus{Name: "archive", RootPath: "/srv/archive"})
	require.NoError(t, err)

	corpora, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, corpora, 2)
	assert.Equal(t, "archive", corpora[0].Name)
	assert.Equal(t, "work", corpora[1].Name)
}

func TestCorpusService_Update(t *testing.T) {
	svc, store, _, _ := newCorpusService()
	ctx := context.Background()

	added, err := svc.Add(ctx, domain.Corpus{Name: "notes", RootPath: "/home/me/notes"})
	require.NoError(t, err)

	updated := *added
	updated.ChunkSize = 800
	updated.ChunkOverlap = 100
	updated.CreatedAt = time.Time{} // callers cannot rewrite history
	require.NoError(t, svc.Update(ctx, updated))

	saved, err := store.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 800, saved.ChunkSize)
	assert.Equal(t, added.CreatedAt, saved.CreatedAt)
	assert.True(t, saved.UpdatedAt.After(saved.CreatedAt) || saved.UpdatedAt.Equal(saved.CreatedAt))
}

func TestCorpusService_Update_RequiresID(t *testing.T) {
	svc, _, _, _ := newCorpusService()

	err := svc.Update(context.Background(), domain.Corpus{Name: "notes"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCorpusService_Update_UnknownCorpus(t *testing.T) {
	svc, _, _, _ := newCorpusService()

	err := svc.Update(context.Background(), domain.Corpus{ID: "ghost", Name: "notes"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCorpusService_Remove_CascadesDerivedData(t *testing.T) {
	svc, corpusStore, docStore, manifestStore := newCorpusService()
	chunkStore := memory.NewChunkStore(3)
	docStore.LinkChunkStore(chunkStore)
	ctx := context.Background()

	added, err := svc.Add(ctx, domain.Corpus{Name: "notes", RootPath: "/home/me/notes"})
	require.NoError(t, err)

	// Seed a document with chunks and a manifest entry.
	doc := &domain.Document{ID: "doc-1", CorpusID: added.ID, Path: "a.txt", Content: "alpha"}
	require.NoError(t, docStore.Save(ctx, doc))
	require.NoError(t, chunkStore.ReplaceChunks(ctx, "doc-1", []domain.Chunk{{
		ID: "doc-1-0", DocumentID: "doc-1", Ordinal: 0,
		StartOffset: 0, EndOffset: 5, Text: "alpha",
		Embedding: []float32{0.1, 0.2, 0.3},
	}}))
	require.NoError(t, manifestStore.Put(ctx, domain.ManifestEntry{
		CorpusID: added.ID, Path: "a.txt", Fingerprint: "fp", Status: domain.ManifestSuccess,
	}))

	require.NoError(t, svc.Remove(ctx, added.ID))

	_, err = corpusStore.Get(ctx, added.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	docs, err := docStore.List(ctx, added.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
	_, err = chunkStore.GetChunks(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	entries, err := manifestStore.List(ctx, added.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCorpusService_Remove_UnknownCorpus(t *testing.T) {
	svc, _, _, _ := newCorpusService()

	err := svc.Remove(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
