package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/seo-analyzer/internal/config"
	"github.com/jonathan/seo-analyzer/internal/keywords"
	"github.com/jonathan/seo-analyzer/internal/llm"
	"github.com/jonathan/seo-analyzer/internal/logging"
	"github.com/jonathan/seo-analyzer/internal/observability"
	"github.com/jonathan/seo-analyzer/internal/pipeline"
	"github.com/jonathan/seo-analyzer/internal/quality"
	"github.com/jonathan/seo-analyzer/internal/schemas"
)

// newLLMClient is replaced in tests
var newLLMClient = llm.NewClient

// Flags shared by the commands that can call an LLM
var (
	provider   string
	model      string
	apiKey     string
	useBrowser bool
)

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider for keyword extraction (gemini or openai)")
	cmd.Flags().StringVar(&model, "model", "", "Model name overriding the provider default")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (defaults to GEMINI_API_KEY or OPENAI_API_KEY)")
}

func addBrowserFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Render JavaScript-heavy pages in headless Chrome when plain fetching finds too little text")
}

// env bundles what every command needs once flags are resolved
type env struct {
	cfg     config.Config
	logger  *logrus.Logger
	printer *observability.Printer
}

// loadEnv resolves settings in order: config file, then flags set on the
// command line, then environment variables, then defaults.
func loadEnv(cmd *cobra.Command) (*env, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("publisher-domain") {
		cfg.PublisherDomain = publisherDomain
	}
	if flags.Changed("provider") {
		cfg.Provider = provider
	}
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = useBrowser
	}

	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if cfg.Verbose && !flags.Changed("log-level") {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		logger.WithField("path", configPath).Debug("loaded config")
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		printer: observability.NewPrinter(cmd.ErrOrStderr()),
	}, nil
}

func (e *env) analyzer() *quality.Analyzer {
	return quality.New(quality.Options{PublisherDomain: e.cfg.PublisherDomain})
}

// keywordExtractor connects to the configured LLM provider. The returned client
// must be closed by the caller.
func (e *env) keywordExtractor(ctx context.Context) (*keywords.Extractor, llm.Client, error) {
	if e.cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("an API key is required for keyword extraction: set --api-key, api_key in the config file, %s or %s",
			config.EnvGeminiAPIKey, config.EnvOpenAIAPIKey)
	}

	llmConfig, err := llm.ConfigFor(llm.Provider(e.cfg.Provider), e.cfg.Model)
	if err != nil {
		return nil, nil, err
	}
	client, err := newLLMClient(ctx, llmConfig, e.cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor := keywords.NewExtractor(client, &keywords.Options{
		MaxKeywords: e.cfg.MaxKeywords,
		Logger:      e.logger,
	})
	return extractor, client, nil
}

// printResult writes the boxed summary of a pipeline result when verbose
func (e *env) printResult(result *pipeline.Result) {
	if !e.cfg.Verbose {
		return
	}
	if result.Keywords != nil {
		e.printer.PrintKeywords(result.Keywords)
	}
	e.printer.PrintQualityReport(result.Report)
	e.printer.PrintIssues(result.Report.Issues)
	e.printer.PrintRecommendations(result.Report.Recommendations)
	e.printer.PrintDashboard(&result.Dashboard)
}

// checkSchema validates value against a repository schema
func checkSchema(schemaPath string, value any) error {
	resolved := schemas.ResolveSchemaPath(schemaPath)
	if resolved == "" {
		return fmt.Errorf("schema not found: %s", schemaPath)
	}
	if err := schemas.ValidateValue(resolved, value); err != nil {
		return fmt.Errorf("output failed schema check: %w", err)
	}
	return nil
}

// writeJSON writes value as indented JSON to path, or to w when path is empty or "-"
func writeJSON(w io.Writer, path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
