package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-analyzer/internal/config"
	"github.com/jonathan/seo-analyzer/internal/llm"
)

const testArticle = `Metro rail hours extended

Dhaka metro rail will run until midnight from next month, the operator said on Sunday.

"We want the metro to serve everyone," said the project director. Read more at https://example.com/metro.

Ridership grew 35% in the first year.`

// resetFlags restores every flag to its default so commands can run repeatedly in one process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if slice, ok := f.Value.(pflag.SliceValue); ok {
			_ = slice.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs seo_agent with args and returns what it wrote to stdout and stderr
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvGeminiAPIKey, "")
	t.Setenv(config.EnvOpenAIAPIKey, "")
	t.Setenv(config.EnvPublisherDomain, "")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// fakeLLM implements llm.Client with a fixed keyword answer
type fakeLLM struct {
	mu        sync.Mutex
	answer    string
	jsonCalls int
	closed    bool
}

func (f *fakeLLM) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "News Article", nil
}

func (f *fakeLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jsonCalls++
	return f.answer, nil
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

const fakeKeywordAnswer = "```json\n" + `{
  "primary": [{"term": "metro rail", "searchIntent": "informational"}, {"term": "dhaka metro"}],
  "secondary": [{"term": "metro hours"}, {"term": "midnight service"}],
  "longtail": [{"term": "dhaka metro rail new schedule"}]
}` + "\n```"

// stubLLM replaces the LLM client constructor and records the config it was given
func stubLLM(t *testing.T) (*fakeLLM, *llm.Config) {
	t.Helper()
	fake := &fakeLLM{answer: fakeKeywordAnswer}
	var got llm.Config

	original := newLLMClient
	newLLMClient = func(_ context.Context, cfg *llm.Config, _ string) (llm.Client, error) {
		got = *cfg
		return fake, nil
	}
	t.Cleanup(func() { newLLMClient = original })
	return fake, &got
}
