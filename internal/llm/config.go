// Package llm provides centralized LLM configuration and client abstractions.
// Keyword extraction talks to the Client interface; Gemini and OpenAI-compatible
// chat APIs implement it.
package llm

import (
	"fmt"
	"maps"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, language detection
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as keyword extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or ambiguous articles
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI Provider = "openai"
)

// DefaultTemperature keeps keyword answers close to deterministic
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature is sent with every request; zero means DefaultTemperature
	Temperature float32
}

func (c *Config) temperature() float32 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return c.Temperature
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
	}
}

// ConfigFor returns the default configuration for provider. A non-empty model
// replaces the model of every tier. An empty provider selects Gemini.
func ConfigFor(provider Provider, model string) (*Config, error) {
	var config *Config
	switch provider {
	case ProviderGemini, "":
		config = DefaultGeminiConfig()
	case ProviderOpenAI:
		config = DefaultOpenAIConfig()
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}

	if model != "" {
		for tier := range config.Models {
			config.Models[tier] = model
		}
	}
	return config, nil
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := maps.Clone(c.Models)
	if models == nil {
		models = make(map[ModelTier]string)
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models, Temperature: c.Temperature}
}
