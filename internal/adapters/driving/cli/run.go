package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driving"
)

var (
	runWorkers    int
	runJSON       bool
	runReportPath string
)

var runCmd = &cobra.Command{
	Use:   "run [corpus-name]",
	Short: "Ingest or refresh corpora",
	Long: `Scans corpus folders and processes every new or changed file through
extraction, chunking and embedding. Unchanged files are skipped, files
that disappeared have their derived data removed.

With a corpus name only that corpus runs; otherwise all corpora run in
name order. The command exits non-zero when any document failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "override the worker pool size")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print reports as JSON")
	runCmd.Flags().StringVar(&runReportPath, "report", "", "also write the report to a file (.csv for CSV, JSON otherwise)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if runCoordinator == nil {
		return errors.New("run coordinator not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reports []*domain.RunReport
	if len(args) > 0 {
		corpus, err := resolveCorpus(cmd, args[0])
		if err != nil {
			return err
		}

		report, err := runWithProgress(ctx, cmd, corpus)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		reports = append(reports, report)
	} else {
		all, err := runCoordinator.RunAll(ctx)
		reports = all
		if err != nil {
			// Partial reports still describe the corpora that did run.
			printReports(cmd, reports)
			return fmt.Errorf("run failed: %w", err)
		}
	}

	if runJSON {
		if err := printJSON(cmd, reports); err != nil {
			return err
		}
	} else {
		printReports(cmd, reports)
	}

	if runReportPath != "" {
		if err := writeReportFile(runReportPath, reports); err != nil {
			return fmt.Errorf("writing report file: %w", err)
		}
		cmd.Printf("Report written to %s\n", runReportPath)
	}

	failed := 0
	for _, report := range reports {
		failed += report.Failed()
	}
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

// runWithProgress runs one corpus while polling live status.
func runWithProgress(ctx context.Context, cmd *cobra.Command, corpus *domain.Corpus) (*domain.RunReport, error) {
	cmd.Printf("Running corpus %s...\n", corpus.Name)

	type result struct {
		report *domain.RunReport
		err    error
	}
	resultCh := make(chan result, 1)
	go func() {
		report, err := runCoordinator.Run(ctx, corpus.ID)
		resultCh <- result{report, err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastSeen := 0
	for {
		select {
		case res := <-resultCh:
			return res.report, res.err
		case <-ticker.C:
			status, err := runCoordinator.Status(ctx, corpus.ID)
			if err != nil || status == nil {
				continue
			}
			done := status.Processed + status.Skipped + status.Failed
			if done > lastSeen {
				cmd.Printf("  %d processed, %d skipped, %d failed\n",
					status.Processed, status.Skipped, status.Failed)
				lastSeen = done
			}
		}
	}
}

func printReports(cmd *cobra.Command, reports []*domain.RunReport) {
	for _, report := range reports {
		printReport(cmd, report)
	}
}

func printReport(cmd *cobra.Command, report *domain.RunReport) {
	if report == nil {
		return
	}

	elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
	cmd.Printf("Corpus %s: %d processed, %d skipped, %d failed, %d deleted (%s)\n",
		report.CorpusName,
		report.Processed(), report.Skipped(), report.Failed(), report.Deleted(),
		elapsed)

	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case domain.StatusFailed:
			cmd.Printf("  FAILED  %s: %s\n", outcome.Path, outcome.Detail)
		case domain.StatusProcessed:
			if verbose {
				cmd.Printf("  ok      %s (%d chunks, %s)\n",
					outcome.Path, outcome.Chunks, outcome.Duration.Round(time.Millisecond))
			}
		case domain.StatusDeleted:
			cmd.Printf("  removed %s\n", outcome.Path)
		}
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func writeReportFile(path string, reports []*domain.RunReport) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeCSVReport(path, reports)
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// writeCSVReport writes one row per file outcome across all reports.
func writeCSVReport(path string, reports []*domain.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"file", "status", "detail"}); err != nil {
		return err
	}
	for _, report := range reports {
		for _, outcome := range report.Outcomes {
			row := []string{outcome.Path, string(outcome.Status), outcome.Detail}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

var statusCmd = &cobra.Command{
	Use:   "status [corpus-name]",
	Short: "Show live run state for a corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if runCoordinator == nil {
		return errors.New("run coordinator not configured")
	}

	corpus, err := resolveCorpus(cmd, args[0])
	if err != nil {
		return err
	}

	status, err := runCoordinator.Status(cmd.Context(), corpus.ID)
	if err != nil {
		return fmt.Errorf("getting status: %w", err)
	}

	printStatus(cmd, corpus.Name, status)
	return nil
}

func printStatus(cmd *cobra.Command, name string, status *driving.RunStatus) {
	state := "idle"
	if status.Running {
		state = "running"
	}
	cmd.Printf("Corpus %s: %s\n", name, state)
	if status.Running {
		cmd.Printf("  %d processed, %d skipped, %d failed\n",
			status.Processed, status.Skipped, status.Failed)
	}
}
