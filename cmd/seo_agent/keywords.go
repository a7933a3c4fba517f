package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/seo-analyzer/internal/ingestion"
	"github.com/jonathan/seo-analyzer/internal/schemas"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract SEO keywords from an article with an LLM",
	Long: `Ask the configured LLM provider (Gemini or OpenAI) for primary, secondary and long-tail keywords
and write them as JSON. The output can be passed to analyze --keywords.`,
	RunE: runKeywords,
}

var (
	keywordsInput       string
	keywordsText        string
	keywordsOut         string
	keywordsMax         int
	keywordsSchemaCheck bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsInput, "input", "i", "", "Path to article .txt or .html file")
	keywordsCmd.Flags().StringVar(&keywordsText, "text", "", "Article text (mutually exclusive with --input)")
	keywordsCmd.Flags().StringVarP(&keywordsOut, "out", "o", "", "Output file (default stdout)")
	keywordsCmd.Flags().IntVar(&keywordsMax, "max", 0, "Keywords kept per group (default from config, 5)")
	keywordsCmd.Flags().BoolVar(&keywordsSchemaCheck, "schema-check", false, "Validate the keywords against schemas/keywords.schema.json before writing")
	addLLMFlags(keywordsCmd)

	keywordsCmd.MarkFlagsMutuallyExclusive("text", "input")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	if keywordsInput == "" && keywordsText == "" {
		return fmt.Errorf("either --input or --text must be provided")
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max") {
		if keywordsMax <= 0 {
			return fmt.Errorf("--max must be positive")
		}
		e.cfg.MaxKeywords = keywordsMax
	}

	text := keywordsText
	if keywordsInput != "" {
		article, _, err := ingestion.IngestFromFile(keywordsInput)
		if err != nil {
			return fmt.Errorf("failed to read article: %w", err)
		}
		text = article.Text
	}

	extractor, client, err := e.keywordExtractor(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close LLM client: %v\n", err)
		}
	}()

	result, err := extractor.Extract(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("keyword extraction failed: %w", err)
	}

	if keywordsSchemaCheck {
		if err := checkSchema(schemas.KeywordsSchema, result); err != nil {
			return err
		}
	}

	if e.cfg.Verbose {
		e.printer.PrintKeywords(result)
	}
	return writeJSON(cmd.OutOrStdout(), keywordsOut, result)
}
