// Package cli implements the quarry command line interface.
//
// Commands hold their dependencies in package-level service variables so
// tests can inject mocks and execute commands through the real cobra tree.
// Production wiring happens once in initServices, triggered lazily from the
// root PersistentPreRunE for commands that need it.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry-cli/internal/adapters/driven/ai"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driven/config/file"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driven/embedding/retry"
	"github.com/quarrylabs/quarry-cli/internal/adapters/driven/storage/sqlite"
	"github.com/quarrylabs/quarry-cli/internal/connectors/filesystem"
	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
	"github.com/quarrylabs/quarry-cli/internal/core/services"
	"github.com/quarrylabs/quarry-cli/internal/extractors"
	"github.com/quarrylabs/quarry-cli/internal/logger"
	"github.com/quarrylabs/quarry-cli/internal/postprocessors"
)

// Build information, set via -ldflags at release time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Services the commands run against. Nil until initServices runs or a test
// injects mocks.
var (
	runCoordinator    driving.RunCoordinator
	askService        driving.AskService
	corpusService     driving.CorpusService
	documentService   driving.DocumentService
	validationService driving.ValidationService
	exportService     driving.ExportService
	settingsService   driving.SettingsService
	actionService     driving.CitationActionService
)

var (
	servicesInitialized bool
	appStore            *sqlite.Store
	configFilePath      string
	databaseFilePath    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Ask questions against your own documents",
	Long: `Quarry ingests local folders of documents into a content-addressed
chunk store with embeddings, and answers questions grounded strictly in
the retrieved material.

Typical workflow:
  quarry config wizard          # configure AI providers
  quarry corpus add notes ~/n   # register a folder
  quarry run                    # ingest or refresh everything
  quarry ask "what did we decide about X?"`,
	PersistentPreRunE: preRun,
	SilenceUsage:      true,
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if !commandNeedsServices(cmd) {
		return nil
	}
	return initServices()
}

// commandNeedsServices reports whether a command requires the wired
// service graph. Version, help and completion run standalone.
func commandNeedsServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
		return false
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the CLI and releases resources afterwards.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// initServices builds the production service graph exactly once.
// AI gateways are optional: unconfigured providers leave their service nil
// and the operations needing them fail with a clear error instead.
func initServices() error {
	if servicesInitialized {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	stateDir := filepath.Join(home, ".quarry")

	configStore, err := file.NewConfigStore(stateDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configFilePath = configStore.Path()

	promptStore, err := file.NewPromptStore(stateDir)
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	settingsService = services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if runWorkers > 0 {
		settings.Run.Workers = runWorkers
	}

	store, err := sqlite.NewStore(stateDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	appStore = store
	databaseFilePath = store.Path()

	corpusStore := store.CorpusStore()
	docStore := store.DocumentStore()
	chunkStore := store.ChunkStore(settings.Embedding.Dimensions)
	manifestStore := store.ManifestStore()

	var embedder driven.EmbeddingService
	if settings.Embedding.IsConfigured() {
		inner, err := ai.CreateEmbeddingService(&settings.Embedding)
		if err != nil {
			return fmt.Errorf("creating embedding service: %w", err)
		}
		embedder = retry.Wrap(inner, retry.FromRunSettings(settings.Run))
	}

	var llm driven.LLMService
	if settings.LLM.IsConfigured() {
		llm, err = ai.CreateLLMService(&settings.LLM)
		if err != nil {
			return fmt.Errorf("creating LLM service: %w", err)
		}
	}

	pipelineFactory := func(cfg domain.ChunkingSettings) (driven.PostProcessorPipeline, error) {
		return postprocessors.NewDefaultPipeline(cfg)
	}

	runCoordinator = services.NewIngestService(
		corpusStore,
		docStore,
		chunkStore,
		manifestStore,
		filesystem.NewFactory(),
		extractors.NewDefaultRegistry(),
		pipelineFactory,
		embedder,
		llm,
		promptStore,
		settings.Chunking,
		settings.Run,
	)

	corpusService = services.NewCorpusService(corpusStore, docStore, manifestStore)
	documentService = services.NewDocumentService(docStore, chunkStore, corpusStore, manifestStore)
	validationService = services.NewValidationService(docStore, chunkStore, corpusStore, manifestStore, settings.Embedding.Dimensions)
	exportService = services.NewExportService(docStore, chunkStore, corpusStore)
	actionService = services.NewCitationActionService(docStore, corpusStore)

	askService = services.NewAskService(
		corpusStore,
		docStore,
		embedder,
		llm,
		services.NewRetriever(chunkStore),
		services.NewPromptAssembler(docStore, promptStore),
		settings.Retrieval,
	)

	servicesInitialized = true
	return nil
}

func closeServices() {
	if appStore != nil {
		_ = appStore.Close()
		appStore = nil
	}
}

// resolveCorpus turns a corpus name argument into the corpus record.
func resolveCorpus(cmd *cobra.Command, name string) (*domain.Corpus, error) {
	if corpusService == nil {
		return nil, fmt.Errorf("corpus service not configured")
	}
	corpus, err := corpusService.GetByName(cmd.Context(), name)
	if err != nil {
		return nil, fmt.Errorf("corpus %q: %w", name, err)
	}
	return corpus, nil
}
