package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/seo-analyzer/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract clean article text from a URL or file",
	Long:  "Fetch an article page or read an article file, extract its text, and write article.cleaned.txt and article.meta.json to the output directory.",
	RunE:  runIngest,
}

var (
	ingestURL   string
	ingestInput string
	ingestOut   string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the article from")
	ingestCmd.Flags().StringVarP(&ingestInput, "input", "i", "", "Path to article .html or .txt file")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Output directory (required)")
	addBrowserFlag(ingestCmd)

	ingestCmd.MarkFlagRequired("out")
	ingestCmd.MarkFlagsMutuallyExclusive("url", "input")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestURL == "" && ingestInput == "" {
		return fmt.Errorf("either --url or --input must be provided")
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	var article *ingestion.Article
	var metadata *ingestion.Metadata
	if ingestInput != "" {
		article, metadata, err = ingestion.IngestFromFile(ingestInput)
	} else {
		article, metadata, err = ingestion.FromURL(cmd.Context(), ingestURL, &ingestion.URLOptions{
			UseBrowser: e.cfg.UseBrowser,
			Logger:     e.logger,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to ingest article: %w", err)
	}

	if err := ingestion.WriteOutput(ingestOut, article, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ingested %q (%d characters, %s)\n", article.Title, len(article.Text), article.Extractor)
	fmt.Fprintf(out, "Cleaned text: %s/article.cleaned.txt\n", ingestOut)
	fmt.Fprintf(out, "Metadata: %s/article.meta.json\n", ingestOut)
	return nil
}
