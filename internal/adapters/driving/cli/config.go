package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and configure AI providers, chunking, retrieval and run settings.

Use 'config wizard' for guided setup or 'config set' for single keys.`,
	RunE: runConfigGet,
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current settings",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single settings key",
	Long: `Set one settings key. Available keys:

  embedding.provider    embedding.model     embedding.base_url
  embedding.dimensions  llm.provider        llm.model
  llm.base_url          chunk.size          chunk.overlap
  retrieval.top_k       retrieval.min_score export.dir
  run.workers           run.max_retries     run.retry_backoff
  run.max_backoff       run.gateway_timeout run.embed_rate
  run.enrich`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [embedding|llm]",
	Short: "Set a provider API key",
	Long: `Prompts for an API key without echoing it and stores it for the
embedding or LLM provider. Keys can also come from the environment
(QUARRY_OPENAI_API_KEY, QUARRY_ANTHROPIC_API_KEY).`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where settings and data are stored",
	RunE:  runConfigPath,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Configure the embedding and LLM providers step by step.`,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	printProviderSection(cmd, settings.Embedding.Provider, settings.Embedding.Model,
		settings.Embedding.BaseURL, settings.Embedding.APIKey, settings.Embedding.IsConfigured())
	if settings.Embedding.Dimensions > 0 {
		cmd.Printf("  Dimensions: %d\n", settings.Embedding.Dimensions)
	}
	cmd.Println()

	cmd.Println("[LLM]")
	printProviderSection(cmd, settings.LLM.Provider, settings.LLM.Model,
		settings.LLM.BaseURL, settings.LLM.APIKey, settings.LLM.IsConfigured())
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Size: %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Min score: %.2f\n", settings.Retrieval.MinScore)
	cmd.Println()

	cmd.Println("[Run]")
	cmd.Printf("  Workers: %d\n", settings.Run.Workers)
	cmd.Printf("  Max retries: %d\n", settings.Run.MaxRetries)
	cmd.Printf("  Retry backoff: %s (max %s)\n", settings.Run.RetryBackoff, settings.Run.MaxBackoff)
	cmd.Printf("  Gateway timeout: %s\n", settings.Run.GatewayTimeout)
	if settings.Run.EmbedRate > 0 {
		cmd.Printf("  Embed rate: %.1f/s\n", settings.Run.EmbedRate)
	}
	enrich := "no"
	if settings.Run.Enrich {
		enrich = "yes"
	}
	cmd.Printf("  Enrichment: %s\n", enrich)
	cmd.Println()

	if settings.ExportDir != "" {
		cmd.Println("[Export]")
		cmd.Printf("  Directory: %s\n", settings.ExportDir)
		cmd.Println()
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'quarry config wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func printProviderSection(cmd *cobra.Command, provider domain.AIProvider, model, baseURL, apiKey string, configured bool) {
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if provider.IsLocal() && baseURL != "" {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// applySetting maps a dot key to its settings field, parsing the value.
func applySetting(settings *domain.AppSettings, key, value string) error {
	switch key {
	case "embedding.provider":
		settings.Embedding.Provider = domain.AIProvider(strings.ToLower(value))
	case "embedding.model":
		settings.Embedding.Model = value
		if dims, ok := domain.EmbeddingDimensions()[value]; ok {
			settings.Embedding.Dimensions = dims
		}
	case "embedding.base_url":
		settings.Embedding.BaseURL = value
	case "embedding.dimensions":
		return setInt(&settings.Embedding.Dimensions, key, value)
	case "llm.provider":
		settings.LLM.Provider = domain.AIProvider(strings.ToLower(value))
	case "llm.model":
		settings.LLM.Model = value
	case "llm.base_url":
		settings.LLM.BaseURL = value
	case "chunk.size":
		return setInt(&settings.Chunking.Size, key, value)
	case "chunk.overlap":
		return setInt(&settings.Chunking.Overlap, key, value)
	case "retrieval.top_k":
		return setInt(&settings.Retrieval.TopK, key, value)
	case "retrieval.min_score":
		return setFloat(&settings.Retrieval.MinScore, key, value)
	case "export.dir":
		settings.ExportDir = value
	case "run.workers":
		return setInt(&settings.Run.Workers, key, value)
	case "run.max_retries":
		return setInt(&settings.Run.MaxRetries, key, value)
	case "run.retry_backoff":
		return setDuration(&settings.Run.RetryBackoff, key, value)
	case "run.max_backoff":
		return setDuration(&settings.Run.MaxBackoff, key, value)
	case "run.gateway_timeout":
		return setDuration(&settings.Run.GatewayTimeout, key, value)
	case "run.embed_rate":
		return setFloat(&settings.Run.EmbedRate, key, value)
	case "run.enrich":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false", key)
		}
		settings.Run.Enrich = enabled
	default:
		return fmt.Errorf("unknown settings key %q, see 'quarry config set --help'", key)
	}
	return nil
}

func setInt(target *int, key, value string) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s expects an integer", key)
	}
	*target = parsed
	return nil
}

func setFloat(target *float64, key, value string) error {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s expects a number", key)
	}
	*target = parsed
	return nil
}

func setDuration(target *time.Duration, key, value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s expects a duration such as 500ms or 8s", key)
	}
	*target = parsed
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	target := strings.ToLower(args[0])
	if target != "embedding" && target != "llm" {
		return errors.New("set-key expects 'embedding' or 'llm'")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Print("API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("no key entered")
	}

	if target == "embedding" {
		settings.Embedding.APIKey = key
	} else {
		settings.LLM.APIKey = key
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Stored %s API key (%s).\n", target, maskAPIKey(key))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	cmd.Printf("Config: %s\n", configFilePath)
	cmd.Printf("Database: %s\n", databaseFilePath)
	return nil
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Quarry Setup Wizard")
	cmd.Println("===================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	if err := configureEmbeddingProvider(cmd, reader); err != nil {
		return err
	}
	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}
	return nil
}

func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Step 1: Embedding Provider")
	cmd.Println("--------------------------")
	cmd.Println("Embeddings power retrieval; ingest needs a configured provider.")

	providers := domain.AllEmbeddingProviders()
	for i, provider := range providers {
		cmd.Printf("  %d. %s\n", i+1, provider.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	choice := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[choice-1]

	defaultModel := domain.DefaultEmbeddingModels()[provider]
	cmd.Printf("Model [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	apiKey := ""
	if provider.RequiresAPIKey() {
		cmd.Print("API key: ")
		apiKey = readPassword()
		cmd.Println()
	}

	if err := settingsService.SetEmbeddingProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to set embedding provider: %w", err)
	}
	cmd.Printf("Embedding: %s with model %s\n\n", provider.Description(), model)
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Step 2: LLM Provider")
	cmd.Println("--------------------")
	cmd.Println("The LLM generates grounded answers and optional enrichment.")

	providers := domain.AllLLMProviders()
	for i, provider := range providers {
		cmd.Printf("  %d. %s\n", i+1, provider.Description())
	}
	cmd.Println("  0. Skip for now")
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	if input == "0" {
		cmd.Println("LLM configuration skipped.")
		cmd.Println()
		return nil
	}
	choice := parseChoice(input, len(providers), 1)
	provider := providers[choice-1]

	defaultModel := domain.DefaultLLMModels()[provider]
	cmd.Printf("Model [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	apiKey := ""
	if provider.RequiresAPIKey() {
		cmd.Print("API key: ")
		apiKey = readPassword()
		cmd.Println()
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to set LLM provider: %w", err)
	}
	cmd.Printf("LLM: %s with model %s\n\n", provider.Description(), model)
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
