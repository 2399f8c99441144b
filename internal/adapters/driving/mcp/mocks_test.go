package mcp

import (
	"context"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer   *domain.Answer
	result   domain.RetrievalResult
	err      error
	lastOpts driving.AskOptions
}

func (m *mockAskService) Ask(
	_ context.Context,
	_ string,
	opts driving.AskOptions,
) (*domain.Answer, error) {
	m.lastOpts = opts
	return m.answer, m.err
}

func (m *mockAskService) Retrieve(
	_ context.Context,
	_ string,
	opts driving.AskOptions,
) (domain.RetrievalResult, error) {
	m.lastOpts = opts
	return m.result, m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	corpora []domain.Corpus
	corpus  *domain.Corpus
	err     error
}

func (m *mockCorpusService) Add(_ context.Context, _ domain.Corpus) (*domain.Corpus, error) {
	return m.corpus, m.err
}

func (m *mockCorpusService) Get(_ context.Context, _ string) (*domain.Corpus, error) {
	return m.corpus, m.err
}

func (m *mockCorpusService) GetByName(_ context.Context, _ string) (*domain.Corpus, error) {
	return m.corpus, m.err
}

func (m *mockCorpusService) List(_ context.Context) ([]domain.Corpus, error) {
	return m.corpora, m.err
}

func (m *mockCorpusService) Update(_ context.Context, _ domain.Corpus) error {
	return m.err
}

func (m *mockCorpusService) Remove(_ context.Context, _ string) error {
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	details   *driving.DocumentDetails
	err       error
}

func (m *mockDocumentService) ListByCorpus(_ context.Context, _ string) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) GetDetails(_ context.Context, _ string) (*driving.DocumentDetails, error) {
	return m.details, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return m.err
}
