package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // Route path; a trailing "/" matches by prefix
	Method string        // HTTP method
	Limit  int           // Requests allowed per Window
	Window time.Duration // Refill period for Limit
	Burst  int           // Bucket size (defaults to Limit if 0)
}

// LoadConfig reads the limiter settings from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(envInt("RATE_LIMIT_KEYWORDS_PER_MINUTE", 20)),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Keyword extraction calls
// a paid LLM API and gets its own budget; analysis is local and cheap.
func DefaultEndpointConfigs(keywordsPerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/keywords", Method: "POST", Limit: keywordsPerMinute, Window: time.Minute, Burst: min(keywordsPerMinute, 5)},
		{Path: "/analyze", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/analyze/stream", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// parseIPList parses a comma-separated list of client addresses
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
