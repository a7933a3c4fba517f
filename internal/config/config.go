// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Supported LLM providers for keyword extraction
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default values applied by Defaults
const (
	DefaultPublisherDomain  = "thedailystar.net"
	DefaultMaxKeywords      = 5
	DefaultBatchConcurrency = 4
	DefaultCacheTTLSeconds  = 3600
	DefaultPort             = 8080
)

// Environment variables read by ApplyEnv
const (
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvPublisherDomain = "SEO_PUBLISHER_DOMAIN"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Analysis
	PublisherDomain string `json:"publisher_domain,omitempty"` // Domain whose links count as internal

	// Keyword extraction
	Provider    string `json:"provider,omitempty"`     // gemini or openai
	APIKey      string `json:"api_key,omitempty"`      // API key for the provider
	Model       string `json:"model,omitempty"`        // Overrides the provider's default model
	MaxKeywords int    `json:"max_keywords,omitempty"` // Keywords kept per group

	// Behavior
	UseBrowser       bool   `json:"use_browser,omitempty"`       // Use headless browser for JS-rendered pages
	Verbose          bool   `json:"verbose,omitempty"`           // Print detailed debug information
	LogLevel         string `json:"log_level,omitempty"`         // logrus level name
	LogFormat        string `json:"log_format,omitempty"`        // text or json
	BatchConcurrency int    `json:"batch_concurrency,omitempty"` // Articles analyzed in parallel by analyze-batch
	CacheTTLSeconds  int    `json:"cache_ttl_seconds,omitempty"` // Lifetime of cached keyword results and pages

	// Server
	Port int `json:"port,omitempty"`
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		PublisherDomain:  DefaultPublisherDomain,
		Provider:         ProviderGemini,
		MaxKeywords:      DefaultMaxKeywords,
		LogLevel:         "info",
		LogFormat:        "text",
		BatchConcurrency: DefaultBatchConcurrency,
		CacheTTLSeconds:  DefaultCacheTTLSeconds,
		Port:             DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unknown provider %q (want %q or %q)", c.Provider, ProviderGemini, ProviderOpenAI)
	}

	// Validate numeric ranges
	if c.MaxKeywords < 0 {
		return fmt.Errorf("config error: 'max_keywords' must be non-negative")
	}
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("config error: 'cache_ttl_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PublisherDomain == "" {
		result.PublisherDomain = defaults.PublisherDomain
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.MaxKeywords == 0 {
		result.MaxKeywords = defaults.MaxKeywords
	}
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}
	if result.CacheTTLSeconds == 0 {
		result.CacheTTLSeconds = defaults.CacheTTLSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the API key and publisher domain from the environment when unset.
// The key variable read depends on the provider.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		if c.Provider == ProviderOpenAI {
			c.APIKey = os.Getenv(EnvOpenAIAPIKey)
		} else {
			c.APIKey = os.Getenv(EnvGeminiAPIKey)
		}
	}
	if c.PublisherDomain == "" {
		c.PublisherDomain = os.Getenv(EnvPublisherDomain)
	}
}

// CacheTTL returns CacheTTLSeconds as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
