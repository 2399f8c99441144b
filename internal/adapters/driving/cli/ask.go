package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

var (
	askCorpus   string
	askTopK     int
	askMinScore float64
	askJSON     bool
	askSources  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in your documents",
	Long: `Embeds the question, retrieves the most similar chunks across the
selected corpora and generates an answer grounded strictly in that
material. Every answer cites the chunks it drew on; when nothing
relevant is stored, the canonical no-answer response is returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCorpus, "corpus", "c", "", "restrict retrieval to one corpus")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "override the number of retrieved chunks")
	askCmd.Flags().Float64Var(&askMinScore, "min-score", 0, "override the similarity floor")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "show retrieved chunks instead of an answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	question := strings.Join(args, " ")
	opts := driving.AskOptions{
		CorpusName: askCorpus,
		TopK:       askTopK,
		MinScore:   askMinScore,
	}

	if askSources {
		return runAskSources(cmd, question, opts)
	}

	answer, err := askService.Ask(cmd.Context(), question, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return printJSON(cmd, answer)
	}

	cmd.Println(answer.Text)
	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, citation := range answer.Citations {
			title := citation.DocumentTitle
			if title == "" {
				title = citation.DocumentID
			}
			cmd.Printf("  [%d] %s, chunk %d (%.2f)\n", i+1, title, citation.Ordinal, citation.Score)
			if citation.Path != "" {
				cmd.Printf("      %s\n", citation.Path)
			}
		}
	}
	return nil
}

// runAskSources prints the raw ranked retrieval without generating.
func runAskSources(cmd *cobra.Command, question string, opts driving.AskOptions) error {
	result, err := askService.Retrieve(cmd.Context(), question, opts)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if askJSON {
		return printJSON(cmd, result)
	}

	if result.Empty() {
		cmd.Println("No matching chunks found.")
		return nil
	}

	for i, hit := range result.Chunks {
		cmd.Printf("[%d] %s chunk %d (%.2f)\n", i+1, hit.Chunk.DocumentID, hit.Chunk.Ordinal, hit.Score)
		cmd.Printf("    %s\n\n", snippet(hit.Chunk.Text, 200))
	}
	return nil
}

// snippet truncates text for single-line display.
func snippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
