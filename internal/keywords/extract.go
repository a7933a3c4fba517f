// Package keywords extracts SEO keywords for an article with an LLM and loads
// keyword files prepared offline.
package keywords

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/seo-analyzer/internal/llm"
	"github.com/jonathan/seo-analyzer/internal/logging"
	"github.com/jonathan/seo-analyzer/internal/prompts"
	"github.com/jonathan/seo-analyzer/internal/types"
	"github.com/sirupsen/logrus"
)

// DefaultMaxKeywords is the per-group limit used when none is configured
const DefaultMaxKeywords = 5

// classifySampleRunes is how much of the article the content-type prompt sees
const classifySampleRunes = 2000

// Content types returned by ClassifyContentType
const (
	ContentTypeNews     = "News Article"
	ContentTypeBusiness = "Business Article"
	ContentTypePress    = "Press Release"
	ContentTypeGeneral  = "General"
)

// Prompt templates are embedded, so a missing one is a build mistake and fails at startup
var (
	extractTemplate  = prompts.MustGet("keywords.json", "extract-keywords")
	classifyTemplate = prompts.MustGet("keywords.json", "classify-content-type")
)

// Source produces keywords for an article
type Source interface {
	Extract(ctx context.Context, articleText string) (*types.KeywordResult, error)
}

// Options configures an Extractor
type Options struct {
	// MaxKeywords caps each keyword group; <= 0 uses DefaultMaxKeywords
	MaxKeywords int
	// Tier selects the model; empty uses llm.TierStandard
	Tier   llm.ModelTier
	Logger logrus.FieldLogger
}

// Extractor asks an LLM for keywords and cleans up the answer
type Extractor struct {
	client      llm.Client
	maxKeywords int
	tier        llm.ModelTier
	logger      logrus.FieldLogger
}

var _ Source = (*Extractor)(nil)

// NewExtractor creates an Extractor. opts may be nil.
func NewExtractor(client llm.Client, opts *Options) *Extractor {
	if opts == nil {
		opts = &Options{}
	}
	e := &Extractor{
		client:      client,
		maxKeywords: opts.MaxKeywords,
		tier:        opts.Tier,
		logger:      opts.Logger,
	}
	if e.maxKeywords <= 0 {
		e.maxKeywords = DefaultMaxKeywords
	}
	if e.tier == "" {
		e.tier = llm.TierStandard
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}
	return e
}

// Extract returns validated, de-duplicated keywords for articleText
func Extract(ctx context.Context, client llm.Client, articleText string, maxKeywords int) (*types.KeywordResult, error) {
	return NewExtractor(client, &Options{MaxKeywords: maxKeywords}).Extract(ctx, articleText)
}

// Extract returns validated, de-duplicated keywords for articleText
func (e *Extractor) Extract(ctx context.Context, articleText string) (*types.KeywordResult, error) {
	if e.client == nil {
		return nil, &APICallError{Message: "no LLM client configured"}
	}
	if strings.TrimSpace(articleText) == "" {
		return nil, &ValidationError{Field: "text", Message: "article text is required"}
	}

	language := DetectLanguage(articleText)
	contentType := e.ClassifyContentType(ctx, articleText)
	logger := e.logger.WithFields(logrus.Fields{
		"language":     language,
		"content_type": contentType,
		"model":        e.client.GetModel(e.tier),
	})
	logger.Debug("extracting keywords")

	prompt, err := buildPrompt(articleText, language, contentType, e.maxKeywords)
	if err != nil {
		return nil, err
	}

	responseText, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate keywords", Cause: err}
	}

	result, err := ParseResponse(responseText)
	if err != nil {
		return nil, err
	}

	processed, err := PostProcess(result, e.maxKeywords)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"primary":   len(processed.Primary),
		"secondary": len(processed.Secondary),
		"longtail":  len(processed.Longtail),
	}).Debug("extracted keywords")

	return processed, nil
}

// ClassifyContentType asks the LLM what kind of article it is. Failures and
// unrecognized answers return ContentTypeGeneral.
func (e *Extractor) ClassifyContentType(ctx context.Context, articleText string) string {
	prompt := prompts.Format(classifyTemplate, map[string]string{
		"ArticleText": truncateRunes(articleText, classifySampleRunes),
	})

	answer, err := e.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		e.logger.WithError(err).Warn("content type detection failed")
		return ContentTypeGeneral
	}

	switch contentType := strings.TrimSpace(answer); contentType {
	case ContentTypeNews, ContentTypeBusiness, ContentTypePress, ContentTypeGeneral:
		return contentType
	default:
		return ContentTypeGeneral
	}
}

func buildPrompt(articleText string, language Language, contentType string, maxKeywords int) (string, error) {
	guidance, err := prompts.Get("keywords.json", string(language)+"-guidance")
	if err != nil {
		return "", err
	}

	return prompts.Format(extractTemplate, map[string]string{
		"ContentType":      contentType,
		"Language":         string(language),
		"LanguageGuidance": guidance,
		"MaxKeywords":      strconv.Itoa(maxKeywords),
		"ArticleText":      articleText,
	}), nil
}

// ParseResponse decodes an LLM keyword answer. Code fences and surrounding prose
// are removed first.
func ParseResponse(text string) (*types.KeywordResult, error) {
	cleaned := llm.CleanJSONBlock(text)
	if cleaned == "" {
		return nil, &ParseError{Message: "empty response"}
	}

	var result types.KeywordResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}
	return &result, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
