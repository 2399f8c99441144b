package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var docsCorpus string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Inspect processed documents",
	Long:  `List, view, open or delete documents that went through the pipeline.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List processed documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

var docsContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print the canonical text rebuilt from stored chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsContent,
}

var docsOpenCmd = &cobra.Command{
	Use:   "open [doc-id]",
	Short: "Open the source file in the default application",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsOpen,
}

var docsRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Delete a document with its chunks and manifest entry",
	Long: `Deletes a document's stored chunks and manifest entry. If the source
file still exists it is ingested as new on the next run.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsRemove,
}

func init() {
	docsListCmd.Flags().StringVarP(&docsCorpus, "corpus", "c", "", "restrict to one corpus")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsContentCmd)
	docsCmd.AddCommand(docsOpenCmd)
	docsCmd.AddCommand(docsRemoveCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	corpusID := ""
	if docsCorpus != "" {
		corpus, err := resolveCorpus(cmd, docsCorpus)
		if err != nil {
			return err
		}
		corpusID = corpus.ID
	}

	docs, err := documentService.ListByCorpus(cmd.Context(), corpusID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents processed yet.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Path: %s\n", docs[i].Path)
		if docs[i].Title != "" && docs[i].Title != docs[i].Path {
			cmd.Printf("    Title: %s\n", docs[i].Title)
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	details, err := documentService.GetDetails(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document %s\n\n", details.ID)
	cmd.Printf("  Title:   %s\n", details.Title)
	cmd.Printf("  Corpus:  %s\n", details.CorpusName)
	cmd.Printf("  Path:    %s\n", details.Path)
	cmd.Printf("  Format:  %s\n", details.Format)
	if details.PageCount > 0 {
		cmd.Printf("  Pages:   %d\n", details.PageCount)
	}
	cmd.Printf("  Chunks:  %d\n", details.ChunkCount)
	if !details.ProcessedAt.IsZero() {
		cmd.Printf("  Processed: %s\n", details.ProcessedAt.Format("2006-01-02 15:04:05"))
	}

	if details.Summary != "" {
		cmd.Printf("\n  Summary: %s\n", details.Summary)
	}
	if len(details.Tags) > 0 {
		cmd.Printf("  Tags: %v\n", details.Tags)
	}
	if details.Classification != "" {
		cmd.Printf("  Class: %s\n", details.Classification)
	}
	return nil
}

func runDocsContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	content, err := documentService.GetContent(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocsOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Open(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Opened document %s.\n", args[0])
	return nil
}

func runDocsRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed document %s.\n", args[0])
	return nil
}
