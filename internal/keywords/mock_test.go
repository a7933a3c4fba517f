package keywords

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jonathan/seo-analyzer/internal/llm"
)

// mockLLM implements llm.Client with canned answers
type mockLLM struct {
	mu          sync.Mutex
	jsonAnswer  string
	jsonErr     error
	contentType string
	contentErr  error
	prompts     []string
	jsonCalls   int
}

var _ llm.Client = (*mockLLM)(nil)

func (m *mockLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.contentErr != nil {
		return "", m.contentErr
	}
	return m.contentType, nil
}

func (m *mockLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.jsonCalls++
	if m.jsonErr != nil {
		return "", m.jsonErr
	}
	return m.jsonAnswer, nil
}

func (m *mockLLM) GetModel(llm.ModelTier) string { return "mock-model" }

func (m *mockLLM) Close() error { return nil }

// lastPrompt returns the most recent prompt containing marker
func (m *mockLLM) lastPrompt(marker string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.prompts) - 1; i >= 0; i-- {
		if strings.Contains(m.prompts[i], marker) {
			return m.prompts[i]
		}
	}
	return ""
}

var errProvider = errors.New("provider unavailable")
