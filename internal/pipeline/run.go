// Package pipeline provides the high-level orchestration around the quality
// engine: ingest an article, obtain its keywords, analyze it and summarize the
// result for publishing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/seo-analyzer/internal/fetch"
	"github.com/jonathan/seo-analyzer/internal/ingestion"
	"github.com/jonathan/seo-analyzer/internal/keywords"
	"github.com/jonathan/seo-analyzer/internal/logging"
	"github.com/jonathan/seo-analyzer/internal/quality"
	"github.com/jonathan/seo-analyzer/internal/types"
)

// DefaultConcurrency is the batch worker count used when none is configured
const DefaultConcurrency = 4

// Pipeline steps reported through ProgressCallback
const (
	StepIngest    = "ingest"
	StepKeywords  = "keywords"
	StepAnalyze   = "analyze"
	StepDashboard = "dashboard"
)

// ErrNoInput is returned when an Input names no article source
var ErrNoInput = errors.New("no article text, file or URL given")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Deps holds the collaborators shared by every run
type Deps struct {
	// Analyzer defaults to quality.New(quality.DefaultOptions())
	Analyzer *quality.Analyzer

	// Keywords extracts keywords when an input supplies none; nil analyzes without keywords
	Keywords keywords.Source

	// Fetcher caches URL fetches; nil fetches directly
	Fetcher *fetch.CachedFetcher

	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         logrus.FieldLogger
}

// Input names one article and, optionally, its keywords.
// Exactly one of Text, InputPath and URL is used, in that order of preference.
type Input struct {
	Text      string
	InputPath string
	URL       string

	// Keywords are used as given; otherwise KeywordsPath is loaded; otherwise
	// Deps.Keywords is asked.
	Keywords     []types.Keyword
	KeywordsPath string

	// Refresh drops any cached copy of URL before fetching it
	Refresh bool

	OnProgress ProgressCallback
}

// Result is the outcome of analyzing one article
type Result struct {
	ID        string               `json:"id"`
	Source    string               `json:"source"`
	Metadata  *ingestion.Metadata  `json:"metadata,omitempty"`
	Keywords  *types.KeywordResult `json:"keywords,omitempty"`
	Report    *types.QualityReport `json:"report"`
	Dashboard types.Dashboard      `json:"dashboard"`
}

func (d *Deps) withDefaults() Deps {
	deps := *d
	if deps.Analyzer == nil {
		deps.Analyzer = quality.New(quality.DefaultOptions())
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return deps
}

// emitProgress calls the progress callback if configured
func emitProgress(input *Input, runID, step, message string, content any) {
	if input.OnProgress != nil {
		input.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID,
			Content: content,
		})
	}
}

// Run ingests, keyword-tags and analyzes one article
func Run(ctx context.Context, deps Deps, input Input) (*Result, error) {
	deps = deps.withDefaults()
	runID := uuid.NewString()
	logger := deps.Logger.WithField("run_id", runID)

	article, metadata, source, err := ingest(ctx, deps, input, logger)
	if err != nil {
		return nil, err
	}
	logger = logger.WithField("source", source)
	emitProgress(&input, runID, StepIngest,
		fmt.Sprintf("Ingested %d characters from %s", len(article.Text), source), metadata)

	keywordResult, err := resolveKeywords(ctx, deps, input, article.Text)
	if err != nil {
		return nil, err
	}
	// only the primary group is scored; secondary and longtail terms are reported as extracted
	var primaryKeywords []types.Keyword
	if keywordResult != nil {
		primaryKeywords = keywordResult.Primary
		emitProgress(&input, runID, StepKeywords,
			fmt.Sprintf("Using %d primary keywords", len(primaryKeywords)), keywordResult)
	}

	var report *types.QualityReport
	if article.Headings != nil {
		report, err = deps.Analyzer.AnalyzeWithHeadings(article.Text, primaryKeywords, *article.Headings)
	} else {
		report, err = deps.Analyzer.Analyze(article.Text, primaryKeywords)
	}
	if err != nil {
		return nil, fmt.Errorf("analysis of %s failed: %w", source, err)
	}
	emitProgress(&input, runID, StepAnalyze,
		fmt.Sprintf("Overall score %.0f with %d issues", report.OverallScore, len(report.Issues)), report)

	dashboard := quality.BuildDashboard(report)
	emitProgress(&input, runID, StepDashboard,
		fmt.Sprintf("Ready for publish: %t", dashboard.ReadyForPublish), dashboard)

	logger.WithFields(logrus.Fields{
		"overall_score": report.OverallScore,
		"issues":        len(report.Issues),
		"ready":         dashboard.ReadyForPublish,
	}).Info("analyzed article")

	return &Result{
		ID:        runID,
		Source:    source,
		Metadata:  metadata,
		Keywords:  keywordResult,
		Report:    report,
		Dashboard: dashboard,
	}, nil
}

func ingest(ctx context.Context, deps Deps, input Input, logger logrus.FieldLogger) (*ingestion.Article, *ingestion.Metadata, string, error) {
	switch {
	case input.Text != "":
		// inline text is analyzed as given, so results match quality.Analyze on the same string
		text := input.Text
		article := &ingestion.Article{Text: text, Extractor: ingestion.ExtractorText}
		title, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
		article.Title = strings.TrimSpace(title)
		metadata := ingestion.NewMetadata(text, "")
		metadata.ApplyArticle(article)
		return article, metadata, "inline text", nil

	case input.InputPath != "":
		article, metadata, err := ingestion.IngestFromFile(input.InputPath)
		if err != nil {
			return nil, nil, "", fmt.Errorf("ingestion of %s failed: %w", input.InputPath, err)
		}
		return article, metadata, input.InputPath, nil

	case input.URL != "":
		if input.Refresh && deps.Fetcher != nil {
			deps.Fetcher.InvalidateCache(input.URL)
		}
		article, metadata, err := ingestion.FromURL(ctx, input.URL, &ingestion.URLOptions{
			UseBrowser:     deps.UseBrowser,
			BrowserTimeout: deps.BrowserTimeout,
			Fetcher:        deps.Fetcher,
			Logger:         logger,
		})
		if err != nil {
			return nil, nil, "", fmt.Errorf("ingestion of %s failed: %w", input.URL, err)
		}
		return article, metadata, input.URL, nil

	default:
		return nil, nil, "", ErrNoInput
	}
}

func resolveKeywords(ctx context.Context, deps Deps, input Input, text string) (*types.KeywordResult, error) {
	switch {
	case len(input.Keywords) > 0:
		return &types.KeywordResult{
			Primary:   input.Keywords,
			Secondary: []types.Keyword{},
			Longtail:  []types.Keyword{},
		}, nil
	case input.KeywordsPath != "":
		result, err := keywords.LoadFile(input.KeywordsPath)
		if err != nil {
			return nil, fmt.Errorf("loading keywords from %s failed: %w", input.KeywordsPath, err)
		}
		return result, nil
	case deps.Keywords != nil:
		result, err := deps.Keywords.Extract(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("keyword extraction failed: %w", err)
		}
		return result, nil
	default:
		return nil, nil
	}
}

// RunBatch analyzes inputs with at most concurrency runs in flight. Results are
// returned in input order. The first failure cancels the remaining runs and is
// returned.
func RunBatch(ctx context.Context, deps Deps, inputs []Input, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	deps = deps.withDefaults()

	results := make([]*Result, len(inputs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := Run(gCtx, deps, input)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// InputsFromURLFile returns one Input per URL listed in path, one per line.
// Blank lines and lines starting with # are skipped.
func InputsFromURLFile(path string, keywordsPath string) ([]Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}

	var inputs []Input
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, Input{URL: line, KeywordsPath: keywordsPath})
	}
	return inputs, nil
}

// InputsFromDir returns one Input per .txt, .md, .html or .htm file directly
// inside dir, sorted by file name, each sharing keywordsPath.
func InputsFromDir(dir string, keywordsPath string) ([]Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md", ".html", ".htm":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	inputs := make([]Input, len(names))
	for i, name := range names {
		inputs[i] = Input{
			InputPath:    filepath.Join(dir, name),
			KeywordsPath: keywordsPath,
		}
	}
	return inputs, nil
}
