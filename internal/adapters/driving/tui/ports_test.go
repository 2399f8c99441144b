package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// MockAskService implements driving.AskService for testing.
type MockAskService struct {
	AskFunc func(
		ctx context.Context, question string, opts driving.AskOptions,
	) (*domain.Answer, error)
	RetrieveFunc func(
		ctx context.Context, question string, opts driving.AskOptions,
	) (domain.RetrievalResult, error)
}

func (m *MockAskService) Ask(
	ctx context.Context, question string, opts driving.AskOptions,
) (*domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, opts)
	}
	return nil, nil
}

func (m *MockAskService) Retrieve(
	ctx context.Context, question string, opts driving.AskOptions,
) (domain.RetrievalResult, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, question, opts)
	}
	return domain.RetrievalResult{}, nil
}

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
	return nil, nil
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
	AddFunc       func(ctx context.Context, corpus domain.Corpus) (*domain.Corpus, error)
	GetFunc       func(ctx context.Context, id string) (*domain.Corpus, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.Corpus, error)
	ListFunc      func(ctx context.Context) ([]domain.Corpus, error)
	UpdateFunc    func(ctx context.Context, corpus domain.Corpus) error
	RemoveFunc    func(ctx context.Context, id string) error
}

func (m *MockCorpusService) Add(ctx context.Context, corpus domain.Corpus) (*domain.Corpus, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, corpus)
	}
	return nil, nil
}

func (m *MockCorpusService) Get(ctx context.Context, id string) (*domain.Corpus, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCorpusService) GetByName(ctx context.Context, name string) (*domain.Corpus, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockCorpusService) List(ctx context.Context) ([]domain.Corpus, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockCorpusService) Update(ctx context.Context, corpus domain.Corpus) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, corpus)
	}
	return nil
}

func (m *MockCorpusService) Remove(ctx context.Context, id string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	return nil
}

// MockActionService implements driving.CitationActionService for testing.
type MockActionService struct {
	CopyToClipboardFunc func(ctx context.Context, text string) error
	OpenCitedFunc       func(ctx context.Context, citation domain.Citation) error
}

func (m *MockActionService) CopyToClipboard(ctx context.Context, text string) error {
	if m.CopyToClipboardFunc != nil {
		return m.CopyToClipboardFunc(ctx, text)
	}
	return nil
}

func (m *MockActionService) OpenCited(ctx context.Context, citation domain.Citation) error {
	if m.OpenCitedFunc != nil {
		return m.OpenCitedFunc(ctx, citation)
	}
	return nil
}

func TestNewPorts(t *testing.T) {
	ask := &MockAskService{}
	document := &MockDocumentService{}
	corpus := &MockCorpusService{}
	actions := &MockActionService{}

	ports := NewPorts(ask, document, corpus, actions)

	require.NotNil(t, ports)
	assert.Equal(t, ask, ports.Ask)
	assert.Equal(t, document, ports.Document)
	assert.Equal(t, corpus, ports.Corpus)
	assert.Equal(t, actions, ports.Actions)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Ports)
		wantErr error
	}{
		{"all required set", func(p *Ports) {}, nil},
		{"actions optional", func(p *Ports) { p.Actions = nil }, nil},
		{"missing ask", func(p *Ports) { p.Ask = nil }, ErrMissingAskService},
		{"missing document", func(p *Ports) { p.Document = nil }, ErrMissingDocumentService},
		{"missing corpus", func(p *Ports) { p.Corpus = nil }, ErrMissingCorpusService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports := &Ports{
				Ask:      &MockAskService{},
				Document: &MockDocumentService{},
				Corpus:   &MockCorpusService{},
				Actions:  &MockActionService{},
			}
			tt.mutate(ports)

			err := ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPorts_Validate_ErrorsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, err := range []error{
		ErrMissingAskService,
		ErrMissingDocumentService,
		ErrMissingCorpusService,
	} {
		assert.False(t, seen[err.Error()], "duplicate message: %s", err.Error())
		seen[err.Error()] = true
	}
}
