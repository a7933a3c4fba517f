package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/seo-analyzer/internal/pipeline"
	"github.com/jonathan/seo-analyzer/internal/schemas"
	"github.com/jonathan/seo-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score an article and list its issues and recommendations",
	Long: `Analyze an article given inline or as a .txt/.html file and write its quality report as JSON.

Keywords come from --keyword (repeatable, the first one is the primary keyword) or a keywords JSON
file; without either, SEO health is reported as neutral.`,
	RunE: runAnalyze,
}

var (
	analyzeText        string
	analyzeInput       string
	analyzeKeywordPath string
	analyzeKeywords    []string
	analyzeOut         string
	analyzeSchemaCheck bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Article text (mutually exclusive with --input)")
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to article .txt or .html file")
	analyzeCmd.Flags().StringVarP(&analyzeKeywordPath, "keywords", "k", "", "Path to keywords JSON file")
	analyzeCmd.Flags().StringSliceVar(&analyzeKeywords, "keyword", nil, "Keyword term; repeat for more")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output file for the report (default stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeSchemaCheck, "schema-check", false, "Validate the report against schemas/quality_report.schema.json before writing")

	analyzeCmd.MarkFlagsMutuallyExclusive("text", "input")
	analyzeCmd.MarkFlagsMutuallyExclusive("keywords", "keyword")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeText == "" && analyzeInput == "" {
		return fmt.Errorf("either --text or --input must be provided")
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.Deps{Analyzer: e.analyzer(), Logger: e.logger}, pipeline.Input{
		Text:         analyzeText,
		InputPath:    analyzeInput,
		Keywords:     keywordTerms(analyzeKeywords),
		KeywordsPath: analyzeKeywordPath,
	})
	if err != nil {
		return err
	}

	if analyzeSchemaCheck {
		if err := checkSchema(schemas.QualityReportSchema, result.Report); err != nil {
			return err
		}
	}

	e.printResult(result)
	return writeJSON(cmd.OutOrStdout(), analyzeOut, result.Report)
}

// keywordTerms turns --keyword values into keywords
func keywordTerms(terms []string) []types.Keyword {
	if len(terms) == 0 {
		return nil
	}
	result := make([]types.Keyword, len(terms))
	for i, term := range terms {
		result[i] = types.Keyword{Term: term}
	}
	return result
}
