package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

var (
	corpusChunkSize    int
	corpusChunkOverlap int
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage corpora",
	Long:  `Register, list or remove document folders.`,
}

var corpusAddCmd = &cobra.Command{
	Use:   "add [name] [path]",
	Short: "Register a folder as a corpus",
	Args:  cobra.ExactArgs(2),
	RunE:  runCorpusAdd,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured corpora",
	RunE:  runCorpusList,
}

var corpusRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a corpus and all its derived data",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusRemove,
}

func init() {
	corpusAddCmd.Flags().IntVar(&corpusChunkSize, "chunk-size", 0, "per-corpus chunk size override")
	corpusAddCmd.Flags().IntVar(&corpusChunkOverlap, "chunk-overlap", 0, "per-corpus chunk overlap override")

	corpusCmd.AddCommand(corpusAddCmd)
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusRemoveCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusAdd(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	name, root := args[0], args[1]
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	corpus, err := corpusService.Add(cmd.Context(), domain.Corpus{
		Name:         name,
		RootPath:     absRoot,
		ChunkSize:    corpusChunkSize,
		ChunkOverlap: corpusChunkOverlap,
	})
	if err != nil {
		return fmt.Errorf("failed to add corpus: %w", err)
	}

	cmd.Printf("Added corpus %s (%s)\n", corpus.Name, corpus.RootPath)
	cmd.Println("Run 'quarry run' to ingest it.")
	return nil
}

func runCorpusList(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	corpora, err := corpusService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list corpora: %w", err)
	}

	if len(corpora) == 0 {
		cmd.Println("No corpora configured. Add one with 'quarry corpus add [name] [path]'.")
		return nil
	}

	cmd.Println("Configured corpora:")
	cmd.Println()
	for i := range corpora {
		cmd.Printf("  %s\n", corpora[i].Name)
		cmd.Printf("    Path: %s\n", corpora[i].RootPath)
		if corpora[i].ChunkSize > 0 {
			cmd.Printf("    Chunking: %d/%d\n", corpora[i].ChunkSize, corpora[i].ChunkOverlap)
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d\n", len(corpora))
	return nil
}

func runCorpusRemove(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	corpus, err := resolveCorpus(cmd, args[0])
	if err != nil {
		return err
	}

	if err := corpusService.Remove(cmd.Context(), corpus.ID); err != nil {
		return fmt.Errorf("failed to remove corpus: %w", err)
	}

	cmd.Printf("Removed corpus %s with its documents and chunks.\n", corpus.Name)
	return nil
}
