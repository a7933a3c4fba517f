package keywords

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/seo-analyzer/internal/types"
)

// LoadFile reads a keywords JSON file. The file holds either a keyword result
// object ({"primary": [...], ...}) or a bare array of keywords, which is treated
// as the primary group. Every keyword is validated.
func LoadFile(path string) (*types.KeywordResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}
	return Decode(data)
}

// Decode parses keyword JSON in either form accepted by LoadFile
func Decode(data []byte) (*types.KeywordResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ParseError{Message: "keywords file is empty"}
	}

	var result types.KeywordResult
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &result.Primary); err != nil {
			return nil, &ParseError{Message: "failed to parse keyword array", Cause: err}
		}
	} else if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, &ParseError{Message: "failed to parse keyword result", Cause: err}
	}

	groups := []struct {
		name     string
		keywords []types.Keyword
	}{
		{"primary", result.Primary},
		{"secondary", result.Secondary},
		{"longtail", result.Longtail},
	}
	for _, group := range groups {
		for i := range group.keywords {
			if err := group.keywords[i].Validate(); err != nil {
				return nil, &ValidationError{
					Field:   fmt.Sprintf("%s[%d]", group.name, i),
					Message: err.Error(),
				}
			}
		}
	}

	return &result, nil
}
