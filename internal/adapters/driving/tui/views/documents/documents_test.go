package documents

import (
	"context"
	"errors"
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
	ListByCorpusFunc func(ctx context.Context, corpusID string) ([]domain.Document, error)
	GetFunc          func(ctx context.Context, documentID string) (*domain.Document, error)
	GetContentFunc   func(ctx context.Context, documentID string) (string, error)
	GetDetailsFunc   func(ctx context.Context, documentID string) (*driving.DocumentDetails, error)
	DeleteFunc       func(ctx context.Context, documentID string) error
	OpenFunc         func(ctx context.Context, documentID string) error
}

func (m *MockDocumentService) ListByCorpus(ctx context.Context, corpusID string) ([]domain.Document, error) {
	if m.ListByCorpusFunc != nil {
		return m.ListByCorpusFunc(ctx, corpusID)
	}
	return []domain.Document{}, nil
}

func (m *MockDocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, documentID)
	}
	return nil, nil
}

func (m *MockDocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, documentID)
	}
	return "", nil
}

func (m *MockDocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	if m.GetDetailsFunc != nil {
		return m.GetDetailsFunc(ctx, documentID)
	}
	return nil, nil
}

func (m *MockDocumentService) Delete(ctx context.Context, documentID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, documentID)
	}
	return nil
}

func (m *MockDocumentService) Open(ctx context.Context, documentID string) error {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, documentID)
	}
	return nil
}

// MockCorpusService implements driving.CorpusService for testing.
type MockCorpusService struct {
	ListFunc func(ctx context.Context) ([]domain.Corpus, error)
}

func (m *MockCorpusService) Add(ctx context.Context, corpus domain.Corpus) (*domain.Corpus, error) {
	return nil, nil
}

func (m *MockCorpusService) Get(ctx context.Context, id string) (*domain.Corpus, error) {
	return nil, nil
}

func (m *MockCorpusService) GetByName(ctx context.Context, name string) (*domain.Corpus, error) {
	return nil, nil
}

func (m *MockCorpusService) List(ctx context.Context) ([]domain.Corpus, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Corpus{}, nil
}

func (m *MockCorpusService) Update(ctx context.Context, corpus domain.Corpus) error {
	return nil
}

func (m *MockCorpusService) Remove(ctx context.Context, id string) error {
	return nil
}

func sampleDocuments() []domain.Document {
	return []domain.Document{
		{ID: "doc-1", CorpusID: "corp-1", Title: "Setup Guide", Path: "guides/setup.md"},
		{ID: "doc-2", CorpusID: "corp-1", Title: "Backup Notes", Path: "ops/backup.md"},
		{ID: "doc-3", CorpusID: "corp-2", Title: "Paper Draft", Path: "drafts/paper.tex"},
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	mock := &MockDocumentService{}

	view := NewView(s, mock, &MockCorpusService{})

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Empty(t, view.documents)
}

func TestNewView_NilParams(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.Nil(t, view.styles)
	assert.Nil(t, view.documentService)
}

func TestView_Load(t *testing.T) {
	mock := &MockDocumentService{
		ListByCorpusFunc: func(ctx context.Context, corpusID string) ([]domain.Document, error) {
			assert.Equal(t, "", corpusID)
			return sampleDocuments(), nil
		},
	}
	view := NewView(nil, mock, &MockCorpusService{})
	view.selected = 2
	view.showingMenu = true

	cmd := view.Load()

	require.NotNil(t, cmd)
	assert.Equal(t, 0, view.selected)
	assert.False(t, view.showingMenu)
	assert.True(t, view.loading)
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

func TestView_Update_DocumentsLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.loading = true

	msg := messages.DocumentsLoaded{Documents: sampleDocuments()}
	view.Update(msg)

	assert.False(t, view.loading)
	assert.Len(t, view.documents, 3)
	assert.NoError(t, view.Err())
}

func TestView_Update_DocumentsLoaded_Error(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.loading = true

	msg := messages.DocumentsLoaded{Err: errors.New("store closed")}
	view.Update(msg)

	assert.False(t, view.loading)
	assert.Error(t, view.Err())
}

func TestView_Update_CorporaLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := messages.CorporaLoaded{Corpora: []domain.Corpus{
		{ID: "corp-1", Name: "notes"},
		{ID: "corp-2", Name: "papers"},
	}}
	view.Update(msg)

	assert.Equal(t, "notes", view.corpusNames["corp-1"])
	assert.Equal(t, "papers", view.corpusNames["corp-2"])
}

func TestView_Update_DocumentDeleted_Reloads(t *testing.T) {
	listCalls := 0
	mock := &MockDocumentService{
		ListByCorpusFunc: func(ctx context.Context, corpusID string) ([]domain.Document, error) {
			listCalls++
			return []domain.Document{}, nil
		},
	}
	view := NewView(nil, mock, &MockCorpusService{})

	msg := messages.DocumentDeleted{DocumentID: "doc-1"}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 1, listCalls)
}

func TestView_Update_DocumentDeleted_Error(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := messages.DocumentDeleted{DocumentID: "doc-1", Err: errors.New("delete failed")}
	_, cmd := view.Update(msg)

	assert.Nil(t, cmd)
	assert.Error(t, view.Err())
}

func TestView_Update_DocumentOpened_Error(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := messages.DocumentOpened{DocumentID: "doc-1", Err: errors.New("no handler")}
	view.Update(msg)

	assert.Error(t, view.Err())
}

func TestView_Navigation(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(down)
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(down)
	assert.Equal(t, 2, view.SelectedIndex())

	// Boundary
	view.Update(down)
	assert.Equal(t, 2, view.SelectedIndex())

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(up)
	assert.Equal(t, 1, view.SelectedIndex())
}

func TestView_EnterOpensActionMenu(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	view.Update(msg)

	assert.True(t, view.IsShowingMenu())
	assert.Equal(t, ActionShowContent, view.menuSelected)
}

func TestView_EnterWithNoDocuments(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	view.Update(msg)

	assert.False(t, view.IsShowingMenu())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := tea.KeyMsg{Type: tea.KeyEsc}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_ReloadKey(t *testing.T) {
	listCalls := 0
	mock := &MockDocumentService{
		ListByCorpusFunc: func(ctx context.Context, corpusID string) ([]domain.Document, error) {
			listCalls++
			return sampleDocuments(), nil
		},
	}
	view := NewView(nil, mock, &MockCorpusService{})

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	_, cmd := view.Update(msg)

	require.NotNil(t, cmd)
	assert.True(t, view.loading)
	cmd()
	assert.Equal(t, 1, listCalls)
}

func TestView_ActionMenu_Navigation(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.IsShowingMenu())

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	view.Update(down)
	assert.Equal(t, ActionShowDetails, view.menuSelected)

	view.Update(down)
	assert.Equal(t, ActionOpenDocument, view.menuSelected)

	view.Update(down)
	assert.Equal(t, ActionRemove, view.menuSelected)

	view.Update(down)
	assert.Equal(t, ActionCancel, view.menuSelected)

	// Boundary
	view.Update(down)
	assert.Equal(t, ActionCancel, view.menuSelected)

	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	view.Update(up)
	assert.Equal(t, ActionRemove, view.menuSelected)
}

func TestView_ActionMenu_EscCloses(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.IsShowingMenu())

	view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, view.IsShowingMenu())
}

func TestView_ActionMenu_ShowContent(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, view.IsShowingMenu())
	require.NotNil(t, cmd)
	result := cmd()
	selected, ok := result.(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "doc-1", selected.Document.ID)
}

func TestView_ActionMenu_ShowDetails(t *testing.T) {
	mock := &MockDocumentService{
		GetDetailsFunc: func(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
			assert.Equal(t, "doc-1", documentID)
			return &driving.DocumentDetails{ID: "doc-1", Title: "Setup Guide", ChunkCount: 3}, nil
		},
	}
	view := NewView(nil, mock, &MockCorpusService{})
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	result := cmd()
	loaded, ok := result.(messages.DocumentDetailsLoaded)
	require.True(t, ok)
	assert.Equal(t, "doc-1", loaded.DocumentID)
	assert.NoError(t, loaded.Err)
}

func TestView_ActionMenu_OpenDocument(t *testing.T) {
	opened := ""
	mock := &MockDocumentService{
		OpenFunc: func(ctx context.Context, documentID string) error {
			opened = documentID
			return nil
		},
	}
	view := NewView(nil, mock, &MockCorpusService{})
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	result := cmd()
	openedMsg, ok := result.(messages.DocumentOpened)
	require.True(t, ok)
	assert.Equal(t, "doc-1", openedMsg.DocumentID)
	assert.Equal(t, "doc-1", opened)
}

func TestView_ActionMenu_Remove(t *testing.T) {
	deleted := ""
	mock := &MockDocumentService{
		DeleteFunc: func(ctx context.Context, documentID string) error {
			deleted = documentID
			return nil
		},
	}
	view := NewView(nil, mock, &MockCorpusService{})
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 3; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	result := cmd()
	deletedMsg, ok := result.(messages.DocumentDeleted)
	require.True(t, ok)
	assert.Equal(t, "doc-1", deletedMsg.DocumentID)
	assert.Equal(t, "doc-1", deleted)
}

func TestView_ActionMenu_Cancel(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 4; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, view.IsShowingMenu())
	assert.Nil(t, cmd)
}

func TestView_View_Loading(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil, nil)
	view.SetDimensions(80, 24)
	view.loading = true

	output := view.View()

	assert.Contains(t, output, "Loading documents")
}

func TestView_View_Error(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.ErrorOccurred{Err: errors.New("store closed")})

	output := view.View()

	assert.Contains(t, output, "store closed")
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil, nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "No documents processed yet")
}

func TestView_View_WithDocuments(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.CorporaLoaded{Corpora: []domain.Corpus{{ID: "corp-1", Name: "notes"}}})
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})

	output := view.View()

	assert.Contains(t, output, "Documents (3)")
	assert.Contains(t, output, "Setup Guide")
	assert.Contains(t, output, "notes:guides/setup.md")
	assert.Contains(t, output, ">")
}

func TestView_View_ActionMenu(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil, nil)
	view.SetDimensions(80, 24)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	output := view.View()

	assert.Contains(t, output, "Actions for: Setup Guide")
	assert.Contains(t, output, "Show Content")
	assert.Contains(t, output, "Show Details")
	assert.Contains(t, output, "Open Document")
	assert.Contains(t, output, "Remove")
	assert.Contains(t, output, "Cancel")
}

func TestView_SelectedDocument(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Update(messages.DocumentsLoaded{Documents: sampleDocuments()})

	doc := view.SelectedDocument()

	require.NotNil(t, doc)
	assert.Equal(t, "doc-1", doc.ID)
}

func TestView_SelectedDocument_Empty(t *testing.T) {
	view := NewView(nil, nil, nil)

	doc := view.SelectedDocument()

	assert.Nil(t, doc)
}

func TestView_Scrolling(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(80, 12) // pageSize = 4

	docs := make([]domain.Document, 10)
	for i := range docs {
		docs[i] = domain.Document{ID: string(rune('a' + i)), Title: "Doc", Path: "p"}
	}
	view.Update(messages.DocumentsLoaded{Documents: docs})

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for i := 0; i < 6; i++ {
		view.Update(down)
	}

	assert.Equal(t, 6, view.SelectedIndex())
	assert.Greater(t, view.scrollOffset, 0)
}
