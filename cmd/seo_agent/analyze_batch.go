package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/seo-analyzer/internal/fetch"
	"github.com/jonathan/seo-analyzer/internal/pipeline"
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch",
	Short: "Analyze a directory of article files or a list of URLs concurrently",
	Long: `Analyze each .txt, .md, .html and .htm file directly inside --dir, or each URL
listed one per line in --urls, and write the results as one JSON array. Files are
reported in file name order and URLs in list order.`,
	RunE:  runAnalyzeBatch,
}

var (
	batchDir         string
	batchURLFile     string
	batchKeywordPath string
	batchOut         string
	batchConcurrency int
)

func init() {
	analyzeBatchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of article files")
	analyzeBatchCmd.Flags().StringVar(&batchURLFile, "urls", "", "File listing one article URL per line")
	analyzeBatchCmd.Flags().StringVarP(&batchKeywordPath, "keywords", "k", "", "Keywords JSON file applied to every article")
	analyzeBatchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output file (default stdout)")
	analyzeBatchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Articles analyzed in parallel (default from config, 4)")

	analyzeBatchCmd.MarkFlagsOneRequired("dir", "urls")
	analyzeBatchCmd.MarkFlagsMutuallyExclusive("dir", "urls")

	rootCmd.AddCommand(analyzeBatchCmd)
}

func runAnalyzeBatch(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	concurrency := e.cfg.BatchConcurrency
	if cmd.Flags().Changed("concurrency") {
		if batchConcurrency <= 0 {
			return fmt.Errorf("--concurrency must be positive")
		}
		concurrency = batchConcurrency
	}

	deps := pipeline.Deps{Analyzer: e.analyzer(), Logger: e.logger}
	var inputs []pipeline.Input
	if batchURLFile != "" {
		inputs, err = pipeline.InputsFromURLFile(batchURLFile, batchKeywordPath)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no URLs found in %s", batchURLFile)
		}
		deps.UseBrowser = e.cfg.UseBrowser
		deps.Fetcher = fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{CacheTTL: e.cfg.CacheTTL()})
	} else {
		inputs, err = pipeline.InputsFromDir(batchDir, batchKeywordPath)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			return fmt.Errorf("no article files found in %s", batchDir)
		}
	}

	start := time.Now()
	results, err := pipeline.RunBatch(cmd.Context(), deps, inputs, concurrency)
	if err != nil {
		return err
	}
	e.logger.WithField("articles", len(results)).WithField("duration", time.Since(start).String()).Info("batch complete")

	if e.cfg.Verbose {
		for _, result := range results {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %.0f\n", result.Source, result.Report.OverallScore)
		}
	}
	return writeJSON(cmd.OutOrStdout(), batchOut, results)
}
