package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/seo-analyzer/internal/fetch"
	"github.com/jonathan/seo-analyzer/internal/pipeline"
	"github.com/jonathan/seo-analyzer/internal/schemas"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: ingest, extract keywords, analyze and summarize",
	Long: `Ingest an article from a URL, file or inline text, obtain keywords, analyze it and write the
report together with the publishing dashboard.

Keywords come from --keyword, --keywords FILE, or, with --extract-keywords, the configured LLM provider.`,
	RunE: runPipelineCmd,
}

var (
	runURL         string
	runInput       string
	runText        string
	runKeywordPath string
	runKeywords    []string
	runExtract     bool
	runOut         string
	runSchemaCheck bool
)

func init() {
	runCommand.Flags().StringVarP(&runURL, "url", "u", "", "URL of the article")
	runCommand.Flags().StringVarP(&runInput, "input", "i", "", "Path to article .txt or .html file")
	runCommand.Flags().StringVar(&runText, "text", "", "Article text")
	runCommand.Flags().StringVarP(&runKeywordPath, "keywords", "k", "", "Path to keywords JSON file")
	runCommand.Flags().StringSliceVar(&runKeywords, "keyword", nil, "Keyword term; repeat for more")
	runCommand.Flags().BoolVar(&runExtract, "extract-keywords", false, "Extract keywords with the LLM provider when none are given")
	runCommand.Flags().StringVarP(&runOut, "out", "o", "", "Output file (default stdout)")
	runCommand.Flags().BoolVar(&runSchemaCheck, "schema-check", false, "Validate the report and dashboard against their schemas before writing")
	addLLMFlags(runCommand)
	addBrowserFlag(runCommand)

	runCommand.MarkFlagsMutuallyExclusive("url", "input", "text")
	runCommand.MarkFlagsMutuallyExclusive("keywords", "keyword")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	if runURL == "" && runInput == "" && runText == "" {
		return fmt.Errorf("one of --url, --input or --text must be provided")
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	deps := pipeline.Deps{
		Analyzer:   e.analyzer(),
		UseBrowser: e.cfg.UseBrowser,
		Logger:     e.logger,
		Fetcher: fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{
			CacheTTL: e.cfg.CacheTTL(),
		}),
	}
	if runExtract && len(runKeywords) == 0 && runKeywordPath == "" {
		extractor, client, err := e.keywordExtractor(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close LLM client: %v\n", err)
			}
		}()
		deps.Keywords = extractor
	}

	input := pipeline.Input{
		Text:         runText,
		InputPath:    runInput,
		URL:          runURL,
		Keywords:     keywordTerms(runKeywords),
		KeywordsPath: runKeywordPath,
	}
	if e.cfg.Verbose {
		input.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.Run(cmd.Context(), deps, input)
	if err != nil {
		return err
	}

	if runSchemaCheck {
		if err := checkSchema(schemas.QualityReportSchema, result.Report); err != nil {
			return err
		}
		if err := checkSchema(schemas.DashboardSchema, result.Dashboard); err != nil {
			return err
		}
	}

	e.printResult(result)
	return writeJSON(cmd.OutOrStdout(), runOut, result)
}
