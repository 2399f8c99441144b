package cli

import (
	"context"
	"time"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

// setupTestServices installs mock services behind the command tree and
// returns a cleanup restoring the previous state.
func setupTestServices() func() {
	prevRun := runCoordinator
	prevAsk := askService
	prevCorpus := corpusService
	prevDocument := documentService
	prevValidation := validationService
	prevExport := exportService
	prevSettings := settingsService
	prevAction := actionService
	prevInitialized := servicesInitialized

	runCoordinator = &mockRunCoordinator{report: sampleReport()}
	askService = &mockAskService{answer: sampleAnswer()}
	corpusService = &mockCorpusService{corpora: []domain.Corpus{sampleCorpus()}}
	documentService = &mockDocumentService{docs: []domain.Document{sampleDocument()}}
	validationService = &mockValidationService{}
	exportService = &mockExportService{}
	settingsService = &mockSettingsService{settings: domain.DefaultAppSettings()}
	actionService = nil
	servicesInitialized = true

	return func() {
		runCoordinator = prevRun
		askService = prevAsk
		corpusService = prevCorpus
		documentService = prevDocument
		validationService = prevValidation
		exportService = prevExport
		settingsService = prevSettings
		actionService = prevAction
		servicesInitialized = prevInitialized
	}
}

func sampleCorpus() domain.Corpus {
	return domain.Corpus{
		ID:       "corp-1",
		Name:     "notes",
		RootPath: "/data/notes",
	}
}

func sampleDocument() domain.Document {
	return domain.Document{
		ID:       "doc-1",
		CorpusID: "corp-1",
		Path:     "guides/setup.md",
		Title:    "Setup Guide",
		Format:   "text/markdown",
	}
}

func sampleReport() *domain.RunReport {
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.RunReport{
		CorpusID:   "corp-1",
		CorpusName: "notes",
		StartedAt:  started,
		FinishedAt: started.Add(1200 * time.Millisecond),
		Outcomes: []domain.DocumentOutcome{
			{Path: "guides/setup.md", Decision: domain.DecisionNew, Status: domain.StatusProcessed, Chunks: 3},
			{Path: "readme.md", Decision: domain.DecisionSkip, Status: domain.StatusSkipped},
		},
	}
}

func sampleAnswer() *domain.Answer {
	return &domain.Answer{
		Text:     "Run the installer first.",
		Grounded: true,
		Citations: []domain.Citation{
			{DocumentID: "doc-1", DocumentTitle: "Setup Guide", Path: "guides/setup.md", Ordinal: 0, Score: 0.91},
		},
	}
}

// --- Run coordinator mock ---

type mockRunCoordinator struct {
	report      *domain.RunReport
	runErr      error
	runCalls    []string
	runAllCalls int
	watchCalls  []string
	watchErr    error
	status      *driving.RunStatus
}

func (m *mockRunCoordinator) Run(_ context.Context, corpusID string) (*domain.RunReport, error) {
	m.runCalls = append(m.runCalls, corpusID)
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.report, nil
}

func (m *mockRunCoordinator) RunAll(_ context.Context) ([]*domain.RunReport, error) {
	m.runAllCalls++
	if m.runErr != nil {
		return nil, m.runErr
	}
	return []*domain.RunReport{m.report}, nil
}

func (m *mockRunCoordinator) Watch(_ context.Context, corpusID string) error {
	m.watchCalls = append(m.watchCalls, corpusID)
	return m.watchErr
}

func (m *mockRunCoordinator) Status(_ context.Context, corpusID string) (*driving.RunStatus, error) {
	if m.status != nil {
		return m.status, nil
	}
	return &driving.RunStatus{CorpusID: corpusID}, nil
}

// --- Ask service mock ---

type mockAskService struct {
	answer    *domain.Answer
	result    domain.RetrievalResult
	err       error
	questions []string
	lastOpts  driving.AskOptions
}

func (m *mockAskService) Ask(_ context.Context, question string, opts driving.AskOptions) (*domain.Answer, error) {
	m.questions = append(m.questions, question)
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockAskService) Retrieve(_ context.Context, question string, opts driving.AskOptions) (domain.RetrievalResult, error) {
	m.questions = append(m.questions, question)
	m.lastOpts = opts
	if m.err != nil {
		return domain.RetrievalResult{}, m.err
	}
	return m.result, nil
}

// --- Corpus service mock ---

type mockCorpusService struct {
	corpora []domain.Corpus
	added   []domain.Corpus
	removed []string
	err     error
}

func (m *mockCorpusService) Add(_ context.Context, corpus domain.Corpus) (*domain.Corpus, error) {
	if m.err != nil {
		return nil, m.err
	}
	corpus.ID = "corp-new"
	m.added = append(m.added, corpus)
	return &corpus, nil
}

func (m *mockCorpusService) Get(_ context.Context, id string) (*domain.Corpus, error) {
	for _, corpus := range m.corpora {
		if corpus.ID == id {
			return &corpus, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCorpusService) GetByName(_ context.Context, name string) (*domain.Corpus, error) {
	for _, corpus := range m.corpora {
		if corpus.Name == name {
			return &corpus, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCorpusService) List(_ context.Context) ([]domain.Corpus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.corpora, nil
}

func (m *mockCorpusService) Update(_ context.Context, _ domain.Corpus) error {
	return m.err
}

func (m *mockCorpusService) Remove(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

// --- Document service mock ---

type mockDocumentService struct {
	docs    []domain.Document
	deleted []string
	opened  []string
	err     error
}

func (m *mockDocumentService) ListByCorpus(_ context.Context, corpusID string) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if corpusID == "" {
		return m.docs, nil
	}
	var filtered []domain.Document
	for _, doc := range m.docs {
		if doc.CorpusID == corpusID {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}

func (m *mockDocumentService) Get(_ context.Context, documentID string) (*domain.Document, error) {
	for _, doc := range m.docs {
		if doc.ID == documentID {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) GetContent(_ context.Context, documentID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "Full document text for " + documentID, nil
}

func (m *mockDocumentService) GetDetails(_ context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := m.Get(context.Background(), documentID)
	if err != nil {
		return nil, err
	}
	return &driving.DocumentDetails{
		ID:         doc.ID,
		CorpusID:   doc.CorpusID,
		CorpusName: "notes",
		Title:      doc.Title,
		Path:       doc.Path,
		Format:     doc.Format,
		ChunkCount: 3,
		Summary:    "How to set things up.",
		Tags:       []string{"setup", "guide"},
	}, nil
}

func (m *mockDocumentService) Delete(_ context.Context, documentID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, documentID)
	return nil
}

func (m *mockDocumentService) Open(_ context.Context, documentID string) error {
	if m.err != nil {
		return m.err
	}
	m.opened = append(m.opened, documentID)
	return nil
}

// --- Validation service mock ---

type mockValidationService struct {
	reports []domain.ValidationReport
	err     error
	docIDs  []string
}

func (m *mockValidationService) Document(_ context.Context, documentID string) (*domain.ValidationReport, error) {
	m.docIDs = append(m.docIDs, documentID)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.reports) > 0 {
		return &m.reports[0], nil
	}
	return &domain.ValidationReport{DocumentID: documentID, Path: "guides/setup.md", ChunkCount: 3}, nil
}

func (m *mockValidationService) Corpus(_ context.Context, _ string) ([]domain.ValidationReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.reports) > 0 {
		return m.reports, nil
	}
	return []domain.ValidationReport{{DocumentID: "doc-1", Path: "guides/setup.md", ChunkCount: 3}}, nil
}

// --- Export service mock ---

type mockExportService struct {
	dirs  []string
	paths []string
	err   error
}

func (m *mockExportService) Document(_ context.Context, documentID, dir string) ([]string, error) {
	m.dirs = append(m.dirs, dir)
	if m.err != nil {
		return nil, m.err
	}
	if m.paths != nil {
		return m.paths, nil
	}
	return []string{dir + "/" + documentID + ".json", dir + "/" + documentID + ".md"}, nil
}

func (m *mockExportService) Corpus(_ context.Context, _, dir string) ([]string, error) {
	m.dirs = append(m.dirs, dir)
	if m.err != nil {
		return nil, m.err
	}
	if m.paths != nil {
		return m.paths, nil
	}
	return []string{dir + "/doc-1.json", dir + "/doc-1.md"}, nil
}

// --- Settings service mock ---

type mockSettingsService struct {
	settings      domain.AppSettings
	saved         *domain.AppSettings
	embedProvider domain.AIProvider
	embedModel    string
	llmProvider   domain.AIProvider
	llmModel      string
	err           error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	copied := m.settings
	return &copied, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	if m.err != nil {
		return m.err
	}
	copied := *settings
	m.saved = &copied
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.embedProvider = provider
	m.embedModel = model
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.llmProvider = provider
	m.llmModel = model
	return nil
}

func (m *mockSettingsService) SetChunking(cfg domain.ChunkingSettings) error {
	m.settings.Chunking = cfg
	return m.err
}

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return m.err }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.err }
