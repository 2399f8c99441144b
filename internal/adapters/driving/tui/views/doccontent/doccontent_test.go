package doccontent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/messages"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driving/tui/styles"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	GetContentFunc func(ctx context.Context, documentID string) (string, error)
}

func (m *MockDocumentService) ListByCorpus(ctx context.Context, corpusID string) ([]domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, documentID)
	}
	return "", nil
}

func (m *MockDocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	return nil, nil
}

func (m *MockDocumentService) Delete(ctx context.Context, documentID string) error {
	return nil
}

func (m *MockDocumentService) Open(ctx context.Context, documentID string) error {
	return nil
}

// MockActionService implements driving.CitationActionService for testing.
type MockActionService struct {
	CopyToClipboardFunc func(ctx context.Context, text string) error
}

func (m *MockActionService) CopyToClipboard(ctx context.Context, text string) error {
	if m.CopyToClipboardFunc != nil {
		return m.CopyToClipboardFunc(ctx, text)
	}
	return nil
}

func (m *MockActionService) OpenCited(ctx context.Context, citation domain.Citation) error {
	return nil
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	mock := &MockDocumentService{}

	view := NewView(s, mock, nil)

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Empty(t, view.content)
}

func TestNewView_NilParams(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.styles)
	assert.Nil(t, view.documentService)
}

func TestView_SetDocument(t *testing.T) {
	mock := &MockDocumentService{
		GetContentFunc: func(ctx context.Context, documentID string) (string, error) {
			assert.Equal(t, "doc-1", documentID)
			return "Test content", nil
		},
	}
	view := NewView(nil, mock, nil)

	doc := domain.Document{ID: "doc-1", Title: "Test Doc"}
	cmd := view.SetDocument(&doc)

	require.NotNil(t, cmd)
	assert.Equal(t, "doc-1", view.document.ID)
	assert.Equal(t, 0, view.scrollOffset)

	// Execute command
	result := cmd()
	loaded, ok := result.(messages.DocumentContentLoaded)
	require.True(t, ok)
	assert.Equal(t, "doc-1", loaded.DocumentID)
	assert.Equal(t, "Test content", loaded.Content)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, nil)

	cmd := view.Init()

	assert.Nil(t, cmd)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestView_Update_ContentLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 24
	view.document = &domain.Document{ID: "doc-1"}

	msg := messages.DocumentContentLoaded{
		DocumentID: "doc-1",
		Content:    "Line 1\nLine 2\nLine 3",
		Err:        nil,
	}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Equal(t, "Line 1\nLine 2\nLine 3", view.content)
	assert.False(t, view.loading)
	assert.NoError(t, view.err)
}

func TestView_Update_ContentLoaded_Error(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := messages.DocumentContentLoaded{Err: errors.New("failed to load")}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.Error(t, view.err)
}

func TestView_Update_KeyMsg_ScrollDown(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = generateMultilineContent(12)
	view.wrapContent()

	msg := tea.KeyMsg{Type: tea.KeyDown}
	view.Update(msg)
	assert.Equal(t, 1, view.scrollOffset)

	// Test j key
	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(msg)
	assert.Equal(t, 2, view.scrollOffset)
}

func TestView_Update_KeyMsg_ScrollUp(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.scrollOffset = 5

	msg := tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, 4, view.scrollOffset)

	// Test k key
	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(msg)
	assert.Equal(t, 3, view.scrollOffset)

	// Test boundary
	view.scrollOffset = 0
	msg = tea.KeyMsg{Type: tea.KeyUp}
	view.Update(msg)
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_Update_KeyMsg_PageDown(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = generateMultilineContent(20)
	view.wrapContent()
	view.scrollOffset = 0

	msg := tea.KeyMsg{Type: tea.KeyPgDown}
	view.Update(msg)
	assert.Greater(t, view.scrollOffset, 0)
}

func TestView_Update_KeyMsg_PageUp(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = generateMultilineContent(20)
	view.wrapContent()
	view.scrollOffset = 8

	msg := tea.KeyMsg{Type: tea.KeyPgUp}
	view.Update(msg)
	assert.Less(t, view.scrollOffset, 8)
}

func TestView_Update_KeyMsg_PageUp_AtZero(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = generateMultilineContent(20)
	view.wrapContent()
	view.scrollOffset = 0

	msg := tea.KeyMsg{Type: tea.KeyPgUp}
	view.Update(msg)

	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_Update_KeyMsg_PageDown_AtMax(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = generateMultilineContent(20)
	view.wrapContent()
	maxOffset := view.maxScrollOffset()
	view.scrollOffset = maxOffset

	msg := tea.KeyMsg{Type: tea.KeyPgDown}
	view.Update(msg)

	assert.Equal(t, maxOffset, view.scrollOffset)
}

func TestView_Update_KeyMsg_HomeAndEnd(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = generateMultilineContent(20)
	view.wrapContent()
	view.scrollOffset = 10

	view.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, view.scrollOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, view.maxScrollOffset(), view.scrollOffset)
}

func TestView_Update_KeyMsg_GKeys(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = generateMultilineContent(20)
	view.wrapContent()
	view.scrollOffset = 10

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, view.scrollOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, view.maxScrollOffset(), view.scrollOffset)
}

func TestView_Update_KeyMsg_Back(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	assert.True(t, ok)
	assert.Equal(t, messages.ViewDocuments, changed.View)
}

func TestView_Update_KeyMsg_Copy(t *testing.T) {
	copied := ""
	action := &MockActionService{
		CopyToClipboardFunc: func(ctx context.Context, text string) error {
			copied = text
			return nil
		},
	}
	view := NewView(nil, nil, action)
	view.width = 80
	view.height = 10
	view.document = &domain.Document{ID: "doc-1"}
	view.content = "Full document text"
	view.wrapContent()

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	copiedMsg, ok := result.(messages.ContentCopied)
	require.True(t, ok)
	assert.Equal(t, "doc-1", copiedMsg.DocumentID)
	assert.NoError(t, copiedMsg.Err)
	assert.Equal(t, "Full document text", copied)
}

func TestView_Update_KeyMsg_Copy_NoContent(t *testing.T) {
	view := NewView(nil, nil, &MockActionService{})
	view.width = 80
	view.height = 10

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}
	_, cmd := view.Update(msg)

	assert.Nil(t, cmd)
}

func TestView_Update_KeyMsg_Copy_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = "Some text"
	view.wrapContent()

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	copiedMsg, ok := result.(messages.ContentCopied)
	require.True(t, ok)
	assert.Error(t, copiedMsg.Err)
}

func TestView_Update_ContentCopied(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(messages.ContentCopied{DocumentID: "doc-1"})

	assert.Equal(t, "Copied to clipboard", view.notice)
}

func TestView_Update_ContentCopied_Error(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.Update(messages.ContentCopied{DocumentID: "doc-1", Err: errors.New("no clipboard")})

	assert.Contains(t, view.notice, "Copy failed")
}

func TestView_Update_KeyMsg_UnknownKey(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.height = 10
	view.content = "Test content"
	view.wrapContent()
	view.scrollOffset = 0

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}
	view.Update(msg)

	// Unknown key should not change state
	assert.Equal(t, 0, view.scrollOffset)
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := messages.ErrorOccurred{Err: errors.New("test error")}
	view.Update(msg)

	assert.Error(t, view.err)
}

func TestView_View_Loading(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.loading = true

	output := view.View()

	assert.Contains(t, output, "Loading")
}

func TestView_View_WithContent(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.document = &domain.Document{ID: "doc-1", Title: "Test Document", Path: "guides/setup.md"}
	view.content = "# Test Content\n\nThis is some test content."
	view.wrapContent()

	output := view.View()

	assert.Contains(t, output, "Test Content")
	assert.Contains(t, output, "guides/setup.md")
}

func TestView_View_Error(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.err = errors.New("failed to load content")

	output := view.View()

	assert.Contains(t, output, "Error")
}

func TestView_View_NoDocument(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.document = nil

	output := view.View()

	assert.Contains(t, output, "Document Content")
}

func TestView_View_DocumentWithEmptyTitle(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.document = &domain.Document{ID: "doc-123", Title: ""}

	output := view.View()

	assert.Contains(t, output, "doc-123")
}

func TestView_View_EmptyContentRendering(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.document = &domain.Document{ID: "doc-1", Title: "Test"}
	view.content = ""
	view.wrapContent()

	output := view.View()

	assert.Contains(t, output, "(No content)")
}

func TestView_View_WithScrollIndicator(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 10
	view.ready = true
	view.document = &domain.Document{ID: "doc-1", Title: "Test"}
	view.content = generateMultilineContent(30)
	view.wrapContent()
	view.scrollOffset = 5

	output := view.View()

	assert.Contains(t, output, "Line")
	assert.Contains(t, output, "%")
}

func TestView_View_ScrollIndicator_AtMaxOffset(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 10
	view.ready = true
	view.document = &domain.Document{ID: "doc-1", Title: "Test"}
	view.content = generateMultilineContent(30)
	view.wrapContent()
	view.scrollOffset = view.maxScrollOffset()

	output := view.View()

	assert.Contains(t, output, "100%")
}

func TestView_View_WithNotice(t *testing.T) {
	s := styles.DefaultStyles()
	view := NewView(s, nil, nil)
	view.width = 80
	view.height = 24
	view.ready = true
	view.document = &domain.Document{ID: "doc-1", Title: "Test"}
	view.content = "Some content"
	view.wrapContent()
	view.notice = "Copied to clipboard"

	output := view.View()

	assert.Contains(t, output, "Copied to clipboard")
}

func TestView_WrapContent(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 40
	view.content = "Short line\nThis is a much longer line that should be wrapped to fit within the width"
	view.wrapContent()

	assert.NotEmpty(t, view.lines)
	assert.Greater(t, len(view.lines), 2)
}

func TestView_WrapContent_EmptyContent(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.content = ""

	view.wrapContent()

	assert.Nil(t, view.lines)
}

func TestView_WrapContent_ExactWidthLine(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 30
	contentWidth := 26 // width - 4
	view.content = strings.Repeat("x", contentWidth)

	view.wrapContent()

	assert.Len(t, view.lines, 1)
}

func TestView_WrapContent_OneCharOverWidth(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 30
	contentWidth := 26 // width - 4
	view.content = strings.Repeat("x", contentWidth+1)

	view.wrapContent()

	assert.Greater(t, len(view.lines), 1)
}

func TestView_WrapContent_MultipleNewlines(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.width = 80
	view.content = "Line 1\n\n\nLine 2"

	view.wrapContent()

	assert.Len(t, view.lines, 4)
}

func TestView_LoadContent_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.document = &domain.Document{ID: "doc-1"}

	cmd := view.loadContent()
	result := cmd()

	loaded, ok := result.(messages.DocumentContentLoaded)
	assert.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_LoadContent_NoDocument(t *testing.T) {
	mock := &MockDocumentService{}
	view := NewView(nil, mock, nil)
	view.document = nil

	cmd := view.loadContent()
	result := cmd()

	loaded, ok := result.(messages.DocumentContentLoaded)
	assert.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.SetDimensions(100, 50)

	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_VisibleLines(t *testing.T) {
	view := NewView(nil, nil, nil)

	view.height = 24
	assert.Equal(t, 18, view.visibleLines())

	view.height = 3
	assert.Equal(t, 1, view.visibleLines())

	view.height = 0
	assert.Equal(t, 1, view.visibleLines())
}

func TestView_MaxScrollOffset(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.height = 24

	view.lines = []string{}
	assert.Equal(t, 0, view.maxScrollOffset())

	view.lines = []string{"Line 1", "Line 2", "Line 3"}
	assert.Equal(t, 0, view.maxScrollOffset())

	view.height = 10
	view.lines = make([]string, 30)
	assert.Equal(t, 30-view.visibleLines(), view.maxScrollOffset())
}

func TestView_Getters(t *testing.T) {
	view := NewView(nil, nil, nil)
	doc := &domain.Document{ID: "doc-1", Title: "Test Document"}
	view.document = doc
	view.content = "Test content here"
	testErr := errors.New("test error")
	view.err = testErr

	assert.Equal(t, doc, view.Document())
	assert.Equal(t, "Test content here", view.Content())
	assert.Equal(t, testErr, view.Err())
}

// Helper function to generate multiline content for testing
func generateMultilineContent(lines int) string {
	var content strings.Builder
	for i := 1; i <= lines; i++ {
		if i > 1 {
			content.WriteString("\n")
		}
		content.WriteString(fmt.Sprintf("This is line number %d with some content", i))
	}
	return content.String()
}
