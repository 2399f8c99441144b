package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
)

var (
	validateDoc  string
	validateJSON bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [corpus-name]",
	Short: "Check structural invariants of stored chunks",
	Long: `Validates stored chunk sets: embedding width, non-empty text, unique
ordinals and monotonic offsets, plus adjacent-chunk similarity
statistics. Documents whose source file changed on disk since they were
processed are flagged as stale. Exits non-zero when any document is
invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateDoc, "doc", "", "validate a single document by ID")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output reports as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	var reports []domain.ValidationReport
	switch {
	case validateDoc != "":
		report, err := validationService.Document(cmd.Context(), validateDoc)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		reports = append(reports, *report)

	case len(args) > 0:
		corpus, err := resolveCorpus(cmd, args[0])
		if err != nil {
			return err
		}
		reports, err = validationService.Corpus(cmd.Context(), corpus.ID)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

	default:
		return errors.New("provide a corpus name or --doc")
	}

	if validateJSON {
		if err := printJSON(cmd, reports); err != nil {
			return err
		}
	} else {
		printValidationReports(cmd, reports)
	}

	invalid := 0
	for i := range reports {
		if !reports[i].Valid() {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d document(s) invalid", invalid)
	}
	return nil
}

func printValidationReports(cmd *cobra.Command, reports []domain.ValidationReport) {
	if len(reports) == 0 {
		cmd.Println("Nothing to validate.")
		return
	}

	for i := range reports {
		report := &reports[i]
		state := "ok     "
		if !report.Valid() {
			state = "INVALID"
		}
		cmd.Printf("%s %s (%d chunks)\n", state, report.Path, report.ChunkCount)

		for _, issue := range report.Issues {
			if issue.Ordinal < 0 {
				cmd.Printf("    document: %s\n", issue.Detail)
				continue
			}
			cmd.Printf("    chunk %d: %s\n", issue.Ordinal, issue.Detail)
		}
		if verbose && report.ChunkCount > 1 {
			cmd.Printf("    adjacent similarity: min %.3f, mean %.3f\n",
				report.AdjacentSimilarityMin, report.AdjacentSimilarityMean)
		}
	}
}
