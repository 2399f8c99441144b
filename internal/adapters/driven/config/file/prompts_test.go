package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

func writePromptsFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts.toml"), []byte(content), 0600))
}

func TestNewPromptStore_Paths(t *testing.T) {
	t.Run("custom directory", func(t *testing.T) {
		dir := t.TempDir()

		store, err := NewPromptStore(dir)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "prompts.toml"), store.Path())
	})

	t.Run("defaults to home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("cannot determine home directory")
		}

		store, err := NewPromptStore("")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".quarry", "prompts.toml"), store.Path())
	})
}

func TestPromptStore_FirstLoadWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGrounded)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Context:")
	assert.Contains(t, prompt, "%s")

	// The lazily created file carries every known prompt name so users
	// can edit any of them.
	data, err := os.ReadFile(filepath.Join(dir, "prompts.toml"))
	require.NoError(t, err)
	for _, name := range []string{
		driven.PromptGrounded,
		driven.PromptSummarise,
		driven.PromptTags,
		driven.PromptClassify,
	} {
		assert.Contains(t, string(data), name)
	}
}

func TestPromptStore_UserFileWins(t *testing.T) {
	dir := t.TempDir()
	writePromptsFile(t, dir, "grounded_answer = \"My custom prompt: %s %s\"\n")

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGrounded)

	require.NoError(t, err)
	assert.Equal(t, "My custom prompt: %s %s", prompt)
}

func TestPromptStore_PartialFileFallsBackPerEntry(t *testing.T) {
	dir := t.TempDir()
	writePromptsFile(t, dir, "tags = \"custom tags prompt: %s\"\n")

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	tags, err := store.Load(driven.PromptTags)
	require.NoError(t, err)
	assert.Equal(t, "custom tags prompt: %s", tags)

	grounded, err := store.Load(driven.PromptGrounded)
	require.NoError(t, err)
	assert.Contains(t, grounded, "Context:")
}

func TestPromptStore_MissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptGrounded)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "prompts.toml")))
	store.Reload()

	prompt, err := store.Load(driven.PromptGrounded)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Context:")
}

func TestPromptStore_UnknownPromptName(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent_prompt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent_prompt")
}

func TestPromptStore_Caching(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptGrounded)
	require.NoError(t, err)

	writePromptsFile(t, dir, "grounded_answer = \"modified content: %s %s\"\n")

	// Disk edits are invisible until Reload clears the cache.
	cached, err := store.Load(driven.PromptGrounded)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load(driven.PromptGrounded)
	require.NoError(t, err)
	assert.Equal(t, "modified content: %s %s", fresh)
}

func TestPromptStore_ConcurrentLoads(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	const goroutines = 100

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []string
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptGrounded)
			assert.NoError(t, err)
			mu.Lock()
			results = append(results, prompt)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, results, goroutines)
	for _, prompt := range results {
		assert.Equal(t, results[0], prompt)
	}
}

func TestPromptStore_KeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	custom := "summarise = \"pre-existing custom prompt\"\n"
	writePromptsFile(t, dir, custom)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, _ = store.Load(driven.PromptSummarise)

	data, err := os.ReadFile(filepath.Join(dir, "prompts.toml"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestPromptStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	writePromptsFile(t, dir, "grounded_answer = \"\\n\\n  prompt content  \\n\\n\"\n")

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGrounded)
	require.NoError(t, err)

	assert.Equal(t, "prompt content", prompt)
}
