package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

// TestAskCmd_Use tests the command registration
func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
	assert.NotEmpty(t, askCmd.Short)
}

// TestAskCmd_RequiresQuestion tests argument validation
func TestAskCmd_RequiresQuestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

// TestAskCmd_Execute tests a grounded answer with citations
func TestAskCmd_Execute(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "how", "do", "I", "install"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	ask := askService.(*mockAskService)
	require.Len(t, ask.questions, 1)
	assert.Equal(t, "how do I install", ask.questions[0])

	output := buf.String()
	assert.Contains(t, output, "Run the installer first.")
	assert.Contains(t, output, "Sources:")
	assert.Contains(t, output, "[1] Setup Guide, chunk 0 (0.91)")
	assert.Contains(t, output, "guides/setup.md")
}

// TestAskCmd_Options tests that flags reach the service
func TestAskCmd_Options(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		askCorpus = ""
		askTopK = 0
		askMinScore = 0
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "--corpus", "notes", "--top-k", "3", "--min-score", "0.4", "question"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	ask := askService.(*mockAskService)
	assert.Equal(t, "notes", ask.lastOpts.CorpusName)
	assert.Equal(t, 3, ask.lastOpts.TopK)
	assert.InDelta(t, 0.4, ask.lastOpts.MinScore, 1e-9)
}

// TestAskCmd_JSON tests the JSON output mode
func TestAskCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { askJSON = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "--json", "question"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"Text": "Run the installer first."`)
	assert.Contains(t, output, `"Grounded": true`)
}

// TestAskCmd_NoAnswer tests the canonical response without citations
func TestAskCmd_NoAnswer(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = &mockAskService{answer: &domain.Answer{
		Text:     domain.NoAnswerText,
		Grounded: false,
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "unrelated question"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, domain.NoAnswerText)
	assert.NotContains(t, output, "Sources:")
}

// TestAskCmd_Sources tests raw retrieval output
func TestAskCmd_Sources(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { askSources = false }()

	askService = &mockAskService{result: domain.RetrievalResult{
		Chunks: []domain.ScoredChunk{
			{Chunk: domain.Chunk{DocumentID: "doc-1", Ordinal: 2, Text: "Install with the packaged script."}, Score: 0.87},
		},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "--sources", "install"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "[1] doc-1 chunk 2 (0.87)")
	assert.Contains(t, output, "Install with the packaged script.")
}

// TestAskCmd_SourcesEmpty tests retrieval with no hits
func TestAskCmd_SourcesEmpty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { askSources = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "--sources", "anything"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No matching chunks found.")
}

// TestAskCmd_ServiceError tests error propagation
func TestAskCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = &mockAskService{err: errors.New("embedding gateway unreachable")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "question"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ask failed")
	assert.Contains(t, err.Error(), "embedding gateway unreachable")
}

// TestAskCmd_NotConfigured tests the nil service guard
func TestAskCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "question"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

// TestSnippet tests whitespace collapsing and truncation
func TestSnippet(t *testing.T) {
	assert.Equal(t, "one two three", snippet("one\n  two\tthree", 50))
	assert.Equal(t, "abcde...", snippet("abcdefgh", 5))
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "", snippet("", 10))
}
