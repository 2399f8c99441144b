package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

func TestCorpusStore_SaveGetDelete(t *testing.T) {
	store := NewCorpusStore()
	ctx := context.Background()

	corpus := domain.Corpus{ID: "c1", Name: "notes", RootPath: "/notes"}
	require.NoError(t, store.Save(ctx, corpus))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "notes", got.Name)

	byName, err := store.GetByName(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "c1", byName.ID)

	require.NoError(t, store.Delete(ctx, "c1"))

	_, err = store.Get(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCorpusStore_ListSortedByName(t *testing.T) {
	store := NewCorpusStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Corpus{ID: "c1", Name: "zebra"}))
	require.NoError(t, store.Save(ctx, domain.Corpus{ID: "c2", Name: "apple"}))

	corpora, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, corpora, 2)
	assert.Equal(t, "apple", corpora[0].Name)
}

func TestCorpusStore_GetByNameNotFound(t *testing.T) {
	store := NewCorpusStore()

	_, err := store.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
