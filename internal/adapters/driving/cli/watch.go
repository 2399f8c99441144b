package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [corpus-name]",
	Short: "Keep a corpus fresh by watching its folder",
	Long: `Runs a full ingest cycle, then reacts to filesystem changes until
interrupted. Created and modified files are processed through the
pipeline; deleted files have their chunks and manifest entry removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if runCoordinator == nil {
		return errors.New("run coordinator not configured")
	}

	corpus, err := resolveCorpus(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runWithProgress(ctx, cmd, corpus)
	if err != nil {
		return fmt.Errorf("initial run failed: %w", err)
	}
	printReport(cmd, report)

	cmd.Printf("Watching %s for changes (Ctrl-C to stop)...\n", corpus.RootPath)
	err = runCoordinator.Watch(ctx, corpus.ID)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Watch stopped.")
	return nil
}
