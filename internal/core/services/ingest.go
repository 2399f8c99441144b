package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.RunCoordinator = (*IngestService)(nil)

// embedBatchSize is how many chunk texts go into one embedding call.
const embedBatchSize = 100

// enrichContentLimit caps how much document text is sent for enrichment.
const enrichContentLimit = 4000

// summaryMaxChars caps the requested summary length.
const summaryMaxChars = 500

// maxTags caps how many topic tags enrichment keeps per document.
const maxTags = 5

// PipelineFactory builds the post-processing pipeline for one chunking
// configuration. Production wiring uses postprocessors.NewDefaultPipeline;
// tests substitute fakes.
type PipelineFactory func(cfg domain.ChunkingSettings) (driven.PostProcessorPipeline, error)

// IngestService coordinates ingest-or-refresh runs over corpora.
// A run scans the corpus root, gates each file on its content fingerprint,
// pushes changed files through extract/chunk/embed/store, and reports one
// outcome row per file. One corpus runs at most once concurrently.
type IngestService struct {
	corpusStore   driven.CorpusStore
	docStore      driven.DocumentStore
	chunkStore    driven.ChunkStore
	manifestStore driven.ManifestStore
	factory       driven.ConnectorFactory
	extractors    driven.ExtractorRegistry
	pipeline      PipelineFactory
	embedder      driven.EmbeddingService
	llm           driven.LLMService
	promptStore   driven.PromptStore
	chunking      domain.ChunkingSettings
	run           domain.RunSettings

	// Run state tracking
	mu         sync.Mutex
	activeRuns map[string]*runProgress

	// Per-document locks serialize reprocessing of the same file.
	docLocks sync.Map
}

// runProgress tracks live counters for one active run.
type runProgress struct {
	processed int
	skipped   int
	failed    int
}

// NewIngestService creates a new ingest coordinator.
// The llm and promptStore are optional; without them enrichment is skipped.
func NewIngestService(
	corpusStore driven.CorpusStore,
	docStore driven.DocumentStore,
	chunkStore driven.ChunkStore,
	manifestStore driven.ManifestStore,
	factory driven.ConnectorFactory,
	extractors driven.ExtractorRegistry,
	pipeline PipelineFactory,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	promptStore driven.PromptStore,
	chunking domain.ChunkingSettings,
	run domain.RunSettings,
) *IngestService {
	return &IngestService{
		corpusStore:   corpusStore,
		docStore:      docStore,
		chunkStore:    chunkStore,
		manifestStore: manifestStore,
		factory:       factory,
		extractors:    extractors,
		pipeline:      pipeline,
		embedder:      embedder,
		llm:           llm,
		promptStore:   promptStore,
		chunking:      chunking,
		run:           run,
		activeRuns:    make(map[string]*runProgress),
	}
}

// Run executes the full cycle for one corpus and returns its report.
func (s *IngestService) Run(ctx context.Context, corpusID string) (*domain.RunReport, error) {
	corpus, err := s.corpusStore.Get(ctx, corpusID)
	if err != nil {
		return nil, fmt.Errorf("get corpus: %w", err)
	}
	if s.embedder == nil {
		return nil, fmt.Errorf(
			"%w: no embedding provider configured. Run 'quarry config' to set one up", domain.ErrEmbeddingUnavailable)
	}

	if err := s.beginRun(corpus.ID); err != nil {
		return nil, err
	}
	defer s.endRun(corpus.ID)

	report := &domain.RunReport{
		CorpusID:   corpus.ID,
		CorpusName: corpus.Name,
		StartedAt:  time.Now(),
	}

	connector, err := s.factory.Create(ctx, *corpus)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if err := connector.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate corpus root: %w", err)
	}

	pipeline, err := s.pipeline(corpus.Chunking(s.chunking))
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	logger.Info("Starting run for corpus %q (%s)", corpus.Name, corpus.RootPath)

	docsCh, errsCh := connector.FullScan(ctx)
	outcomes, seen, scanFailures := s.processAll(ctx, corpus, pipeline, docsCh, errsCh)
	report.Outcomes = outcomes

	if err := ctx.Err(); err != nil {
		report.FinishedAt = time.Now()
		return report, err
	}

	// A file missing from a complete scan is a deletion; a file missing
	// because the scan itself broke must not be.
	if scanFailures == 0 {
		report.Outcomes = append(report.Outcomes, s.propagateDeletions(ctx, corpus, seen)...)
	} else {
		logger.Warn("Skipping deletion propagation: %d scan errors", scanFailures)
	}

	report.FinishedAt = time.Now()
	logger.Info("Run complete for %q: %d processed, %d skipped, %d failed, %d deleted",
		corpus.Name, report.Processed(), report.Skipped(), report.Failed(), report.Deleted())

	return report, nil
}

// RunAll executes Run for every configured corpus, in name order.
func (s *IngestService) RunAll(ctx context.Context) ([]*domain.RunReport, error) {
	corpora, err := s.corpusStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}

	var reports []*domain.RunReport
	var errs []error
	for _, corpus := range corpora {
		report, err := s.Run(ctx, corpus.ID)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("run %s: %w", corpus.Name, err))
			if ctx.Err() != nil {
				break
			}
		}
	}

	if len(errs) > 0 {
		return reports, errors.Join(errs...)
	}
	return reports, nil
}

// Watch keeps a corpus fresh by reacting to filesystem change events until
// the context is cancelled. Events for unchanged content are absorbed by
// the fingerprint gate, so editor save bursts do not cause rework.
func (s *IngestService) Watch(ctx context.Context, corpusID string) error {
	corpus, err := s.corpusStore.Get(ctx, corpusID)
	if err != nil {
		return fmt.Errorf("get corpus: %w", err)
	}

	connector, err := s.factory.Create(ctx, *corpus)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if !connector.Capabilities().SupportsWatch {
		return fmt.Errorf("connector %q does not support watching", connector.Type())
	}

	pipeline, err := s.pipeline(corpus.Chunking(s.chunking))
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	changes, err := connector.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch corpus root: %w", err)
	}

	logger.Info("Watching corpus %q (%s)", corpus.Name, corpus.RootPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			s.applyChange(ctx, corpus, pipeline, change)
		}
	}
}

// applyChange processes one watch event.
func (s *IngestService) applyChange(
	ctx context.Context,
	corpus *domain.Corpus,
	pipeline driven.PostProcessorPipeline,
	change domain.RawDocumentChange,
) {
	path := change.Document.Path

	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		outcome, done := s.processFile(ctx, corpus, pipeline, &change.Document)
		if !done {
			return
		}
		switch outcome.Status {
		case domain.StatusProcessed:
			logger.Info("Refreshed %s (%d chunks)", path, outcome.Chunks)
		case domain.StatusFailed:
			logger.Warn("Refresh failed for %s: %s", path, outcome.Detail)
		default:
			logger.Debug("Change for %s: %s %s", path, outcome.Status, outcome.Detail)
		}

	case domain.ChangeDeleted:
		lock := s.docLock(corpus.ID, path)
		lock.Lock()
		defer lock.Unlock()
		if err := s.removeDocument(ctx, corpus.ID, path); err != nil {
			logger.Warn("Failed to remove %s: %v", path, err)
			return
		}
		logger.Info("Removed %s", path)
	}
}

// Status returns the live state of a corpus run.
func (s *IngestService) Status(_ context.Context, corpusID string) (*driving.RunStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if progress, ok := s.activeRuns[corpusID]; ok {
		return &driving.RunStatus{
			CorpusID:  corpusID,
			Running:   true,
			Processed: progress.processed,
			Skipped:   progress.skipped,
			Failed:    progress.failed,
		}, nil
	}

	return &driving.RunStatus{CorpusID: corpusID, Running: false}, nil
}

// fileJob is one scanned file awaiting processing, tagged with its scan
// position so report rows keep scan order under concurrency.
type fileJob struct {
	seq int
	raw domain.RawDocument
}

// fileResult pairs an outcome with its scan position.
type fileResult struct {
	seq     int
	outcome domain.DocumentOutcome
}

// processAll drains the scan through a bounded worker pool.
// It returns outcome rows in scan order, the set of paths the scan yielded,
// and how many scan-level errors occurred.
func (s *IngestService) processAll(
	ctx context.Context,
	corpus *domain.Corpus,
	pipeline driven.PostProcessorPipeline,
	docsCh <-chan domain.RawDocument,
	errsCh <-chan error,
) ([]domain.DocumentOutcome, map[string]bool, int) {
	workers := s.run.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan fileJob)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				outcome, done := s.processFile(ctx, corpus, pipeline, &job.raw)
				if !done {
					continue
				}
				s.trackOutcome(corpus.ID, outcome.Status)
				results <- fileResult{seq: job.seq, outcome: outcome}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	seen := make(map[string]bool)
	scanFailures := 0

	// The dispatcher owns seen and scanFailures until jobs is closed;
	// the caller reads them only after results drains.
	go func() {
		defer close(jobs)
		seq := 0
		for docsCh != nil || errsCh != nil {
			select {
			case <-ctx.Done():
				return

			case err, ok := <-errsCh:
				if !ok {
					errsCh = nil
					continue
				}
				if err != nil {
					scanFailures++
					logger.Warn("Scan error: %v", err)
				}

			case raw, ok := <-docsCh:
				if !ok {
					docsCh = nil
					continue
				}
				seen[raw.Path] = true
				jobs <- fileJob{seq: seq, raw: raw}
				seq++
			}
		}
	}()

	var collected []fileResult
	for res := range results {
		collected = append(collected, res)
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].seq < collected[j].seq })
	outcomes := make([]domain.DocumentOutcome, len(collected))
	for i, res := range collected {
		outcomes[i] = res.outcome
	}

	return outcomes, seen, scanFailures
}

// processFile gates one file on its fingerprint and runs the pipeline when
// the gate decides the content changed. The second return value is false
// when cancellation interrupted the file before any commit; such files get
// no report row and are retried by the next run.
func (s *IngestService) processFile(
	ctx context.Context,
	corpus *domain.Corpus,
	pipeline driven.PostProcessorPipeline,
	raw *domain.RawDocument,
) (domain.DocumentOutcome, bool) {
	if ctx.Err() != nil {
		return domain.DocumentOutcome{}, false
	}

	start := time.Now()
	fingerprint := domain.Fingerprint(raw.Content)

	entry, err := s.manifestStore.Get(ctx, corpus.ID, raw.Path)
	if err != nil {
		return domain.DocumentOutcome{
			Path:     raw.Path,
			Status:   domain.StatusFailed,
			Detail:   fmt.Sprintf("read manifest: %v", err),
			Duration: time.Since(start),
		}, true
	}

	decision := domain.Decide(entry, fingerprint)
	if decision == domain.DecisionSkip {
		logger.Debug("Skipping %s: unchanged", raw.Path)
		return domain.DocumentOutcome{
			Path:     raw.Path,
			Decision: decision,
			Status:   domain.StatusSkipped,
			Duration: time.Since(start),
		}, true
	}

	lock := s.docLock(corpus.ID, raw.Path)
	lock.Lock()
	defer lock.Unlock()

	logger.Debug("Processing %s (%s)", raw.Path, decision)
	outcome := s.processDocument(ctx, corpus, pipeline, raw, fingerprint)
	outcome.Decision = decision
	outcome.Duration = time.Since(start)

	if outcome.Status == domain.StatusFailed && ctx.Err() != nil {
		// Interrupted, not failed: nothing was committed for this file.
		return domain.DocumentOutcome{}, false
	}
	if outcome.Status == domain.StatusFailed {
		logger.Warn("Failed %s: %s", raw.Path, outcome.Detail)
		s.recordFailure(ctx, corpus.ID, raw.Path, fingerprint)
	}

	return outcome, true
}

// processDocument runs extract, chunk, embed and commit for one file.
func (s *IngestService) processDocument(
	ctx context.Context,
	corpus *domain.Corpus,
	pipeline driven.PostProcessorPipeline,
	raw *domain.RawDocument,
	fingerprint string,
) domain.DocumentOutcome {
	row := domain.DocumentOutcome{Path: raw.Path}

	extraction, err := s.extractors.Extract(ctx, raw)
	if errors.Is(err, domain.ErrUnsupportedFormat) {
		logger.Debug("Skipping %s: no extractor for %s", raw.Path, raw.MIMEType)
		row.Status = domain.StatusSkipped
		row.Detail = fmt.Sprintf("unsupported format %s", raw.MIMEType)
		return row
	}
	if err != nil {
		row.Status = domain.StatusFailed
		row.Detail = fmt.Sprintf("extract: %v", err)
		return row
	}

	now := time.Now()
	doc := domain.Document{
		CorpusID:    corpus.ID,
		Path:        raw.Path,
		Title:       extraction.Title,
		Format:      raw.MIMEType,
		Fingerprint: fingerprint,
		Content:     extraction.Text,
		PageCount:   extraction.PageCount,
		ProcessedAt: now,
		CreatedAt:   now,
	}

	// Reprocessing keeps the document identity so the chunk swap replaces
	// the old set instead of orphaning it.
	existing, err := s.docStore.GetByPath(ctx, corpus.ID, raw.Path)
	switch {
	case err == nil:
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	case errors.Is(err, domain.ErrNotFound):
		doc.ID = uuid.New().String()
	default:
		row.Status = domain.StatusFailed
		row.Detail = fmt.Sprintf("look up document: %v", err)
		return row
	}

	chunks, err := pipeline.Process(ctx, &doc)
	if err != nil {
		row.Status = domain.StatusFailed
		row.Detail = fmt.Sprintf("process: %v", err)
		return row
	}

	if strings.TrimSpace(doc.Content) == "" || len(chunks) == 0 {
		logger.Warn("Empty text after extraction: %s", raw.Path)
		// Commit the empty set so chunks from a previous version of the
		// file stop being retrievable.
		if err := s.commit(ctx, &doc, nil, fingerprint); err != nil {
			row.Status = domain.StatusFailed
			row.Detail = err.Error()
			return row
		}
		row.Status = domain.StatusSkipped
		row.Detail = "empty text"
		return row
	}

	if err := s.embedChunks(ctx, chunks); err != nil {
		row.Status = domain.StatusFailed
		row.Detail = fmt.Sprintf("embed: %v", err)
		return row
	}

	// Commit gate: a cancelled document leaves no store or manifest write.
	if ctx.Err() != nil {
		row.Status = domain.StatusFailed
		row.Detail = "cancelled"
		return row
	}

	if err := s.commit(ctx, &doc, chunks, fingerprint); err != nil {
		row.Status = domain.StatusFailed
		row.Detail = err.Error()
		return row
	}

	// Enrichment runs after commit and never affects the outcome.
	if s.llm != nil && s.run.Enrich {
		s.enrich(ctx, &doc)
	}

	row.Status = domain.StatusProcessed
	row.Chunks = len(chunks)
	return row
}

// embedChunks fills in chunk embeddings in batches.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	for offset := 0; offset < len(chunks); offset += embedBatchSize {
		end := offset + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-offset)
		for i := range texts {
			texts[i] = chunks[offset+i].Text
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("expected %d vectors, got %d", len(texts), len(vectors))
		}

		for i, vector := range vectors {
			chunks[offset+i].Embedding = vector
		}
	}
	return nil
}

// commit writes the document, swaps its chunk set atomically and records
// manifest success. The manifest entry always lands last: a failure earlier
// in the sequence leaves the file eligible for retry on the next run.
func (s *IngestService) commit(
	ctx context.Context, doc *domain.Document, chunks []domain.Chunk, fingerprint string,
) error {
	if err := s.docStore.Save(ctx, doc); err != nil {
		return fmt.Errorf("save document: %v", err)
	}
	if err := s.chunkStore.ReplaceChunks(ctx, doc.ID, chunks); err != nil {
		return fmt.Errorf("store chunks: %v", err)
	}
	if err := s.manifestStore.Put(ctx, domain.ManifestEntry{
		CorpusID:    doc.CorpusID,
		Path:        doc.Path,
		Fingerprint: fingerprint,
		Status:      domain.ManifestSuccess,
		ProcessedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("write manifest: %v", err)
	}
	return nil
}

// recordFailure marks a file failed in the manifest so the next run always
// reprocesses it, whatever its fingerprint. Best-effort.
func (s *IngestService) recordFailure(ctx context.Context, corpusID, path, fingerprint string) {
	err := s.manifestStore.Put(ctx, domain.ManifestEntry{
		CorpusID:    corpusID,
		Path:        path,
		Fingerprint: fingerprint,
		Status:      domain.ManifestFailed,
		ProcessedAt: time.Now(),
	})
	if err != nil {
		logger.Debug("Failed to record failure for %s: %v", path, err)
	}
}

// enrich derives summary, tags and classification via the LLM.
// Failures are logged and ignored; enrichment never fails a document.
func (s *IngestService) enrich(ctx context.Context, doc *domain.Document) {
	content := doc.Content
	if len(content) > enrichContentLimit {
		content = content[:enrichContentLimit]
	}

	changed := false

	summary, err := s.llm.Summarise(ctx, content, summaryMaxChars)
	if err != nil {
		logger.Warn("Summarise failed for %s: %v", doc.Path, err)
	} else if summary != "" {
		doc.Summary = strings.TrimSpace(summary)
		changed = true
	}

	if tags := s.generateTags(ctx, content, doc.Path); len(tags) > 0 {
		doc.Tags = tags
		changed = true
	}

	if class := s.classify(ctx, content, doc.Path); class != "" {
		doc.Classification = class
		changed = true
	}

	if !changed {
		return
	}
	if err := s.docStore.Save(ctx, doc); err != nil {
		logger.Warn("Failed to save enrichment for %s: %v", doc.Path, err)
	}
}

// generateTags asks the LLM for topic tags and parses the comma list.
func (s *IngestService) generateTags(ctx context.Context, content, path string) []string {
	template, err := s.loadPrompt(driven.PromptTags)
	if err != nil {
		logger.Debug("Tags prompt unavailable: %v", err)
		return nil
	}

	raw, err := s.llm.Generate(ctx, fmt.Sprintf(template, content), driven.GenerateOptions{MaxTokens: 100})
	if err != nil {
		logger.Warn("Tag generation failed for %s: %v", path, err)
		return nil
	}

	return parseTags(raw)
}

// classify asks the LLM for a single category label.
func (s *IngestService) classify(ctx context.Context, content, path string) string {
	template, err := s.loadPrompt(driven.PromptClassify)
	if err != nil {
		logger.Debug("Classify prompt unavailable: %v", err)
		return ""
	}

	raw, err := s.llm.Generate(ctx, fmt.Sprintf(template, content), driven.GenerateOptions{MaxTokens: 20})
	if err != nil {
		logger.Warn("Classification failed for %s: %v", path, err)
		return ""
	}

	return strings.ToLower(strings.TrimSpace(strings.Trim(raw, ".\"'")))
}

func (s *IngestService) loadPrompt(name string) (string, error) {
	if s.promptStore == nil {
		return "", fmt.Errorf("no prompt store configured")
	}
	return s.promptStore.Load(name)
}

// parseTags splits a model response into clean lowercase tags.
func parseTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	tags := make([]string, 0, len(fields))
	for _, field := range fields {
		tag := strings.ToLower(strings.TrimSpace(strings.Trim(field, ".\"'")))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

// propagateDeletions removes derived data for manifest entries whose source
// file vanished from the scan.
func (s *IngestService) propagateDeletions(
	ctx context.Context, corpus *domain.Corpus, seen map[string]bool,
) []domain.DocumentOutcome {
	entries, err := s.manifestStore.List(ctx, corpus.ID)
	if err != nil {
		logger.Warn("Cannot list manifest for deletion propagation: %v", err)
		return nil
	}

	var outcomes []domain.DocumentOutcome
	for _, entry := range entries {
		if seen[entry.Path] || ctx.Err() != nil {
			continue
		}

		start := time.Now()
		lock := s.docLock(corpus.ID, entry.Path)
		lock.Lock()
		err := s.removeDocument(ctx, corpus.ID, entry.Path)
		lock.Unlock()

		if err != nil {
			logger.Warn("Failed to remove deleted file %s: %v", entry.Path, err)
			outcomes = append(outcomes, domain.DocumentOutcome{
				Path:     entry.Path,
				Status:   domain.StatusFailed,
				Detail:   fmt.Sprintf("remove deleted file: %v", err),
				Duration: time.Since(start),
			})
			continue
		}

		logger.Info("Removed %s: source file deleted", entry.Path)
		outcomes = append(outcomes, domain.DocumentOutcome{
			Path:     entry.Path,
			Status:   domain.StatusDeleted,
			Detail:   "source file removed",
			Duration: time.Since(start),
		})
	}

	return outcomes
}

// removeDocument deletes a document, its chunks and its manifest entry.
func (s *IngestService) removeDocument(ctx context.Context, corpusID, path string) error {
	doc, err := s.docStore.GetByPath(ctx, corpusID, path)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Manifest entry without a document; just drop the entry.
	case err != nil:
		return fmt.Errorf("look up document: %w", err)
	default:
		if err := s.docStore.Delete(ctx, doc.ID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
	}

	if err := s.manifestStore.Delete(ctx, corpusID, path); err != nil {
		return fmt.Errorf("delete manifest entry: %w", err)
	}
	return nil
}

// beginRun registers an active run, enforcing one run per corpus.
func (s *IngestService) beginRun(corpusID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.activeRuns[corpusID]; active {
		return fmt.Errorf("%w: corpus %s", domain.ErrRunInProgress, corpusID)
	}
	s.activeRuns[corpusID] = &runProgress{}
	return nil
}

// endRun clears the active run marker.
func (s *IngestService) endRun(corpusID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeRuns, corpusID)
}

// trackOutcome updates the live counters for Status.
func (s *IngestService) trackOutcome(corpusID string, status domain.DocumentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, ok := s.activeRuns[corpusID]
	if !ok {
		return
	}
	switch status {
	case domain.StatusProcessed:
		progress.processed++
	case domain.StatusSkipped:
		progress.skipped++
	case domain.StatusFailed:
		progress.failed++
	}
}

// docLock returns the mutex serializing work on one file.
func (s *IngestService) docLock(corpusID, path string) *sync.Mutex {
	key := corpusID + "\x00" + path
	lock, _ := s.docLocks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
