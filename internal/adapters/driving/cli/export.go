package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportDoc string
	exportDir string
)

var exportCmd = &cobra.Command{
	Use:   "export [corpus-name]",
	Short: "Write human-readable document exports",
	Long: `Writes per-document JSON and Markdown exports: metadata, the chunk
list with offsets and ordinals, and any LLM-derived summary, tags and
classification. Embeddings are never exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDoc, "doc", "", "export a single document by ID")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "target directory (default from settings)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	dir := exportDir
	if dir == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err == nil && settings.ExportDir != "" {
			dir = settings.ExportDir
		}
	}
	if dir == "" {
		dir = "."
	}

	var (
		paths []string
		err   error
	)
	switch {
	case exportDoc != "":
		paths, err = exportService.Document(cmd.Context(), exportDoc, dir)

	case len(args) > 0:
		corpus, resolveErr := resolveCorpus(cmd, args[0])
		if resolveErr != nil {
			return resolveErr
		}
		paths, err = exportService.Corpus(cmd.Context(), corpus.ID, dir)

	default:
		return errors.New("provide a corpus name or --doc")
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	for _, path := range paths {
		cmd.Printf("  %s\n", path)
	}
	cmd.Printf("Exported %d file(s) to %s\n", len(paths), dir)
	return nil
}
