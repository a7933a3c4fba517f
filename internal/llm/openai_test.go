package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOpenAIClient(nil, "test-key", &OpenAIOptions{Endpoint: server.URL})
	require.NoError(t, err)
	return client
}

func TestOpenAIClient_GenerateJSON(t *testing.T) {
	var received chatRequest
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + "```json\\n{\\\"primary\\\":[]}\\n```" + `"}}]}`))
	})

	result, err := client.GenerateJSON(context.Background(), "extract keywords", TierStandard)
	require.NoError(t, err)

	assert.Equal(t, `{"primary":[]}`, result)
	assert.Equal(t, "gpt-4o-mini", received.Model)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "user", received.Messages[1].Role)
	assert.Equal(t, "extract keywords", received.Messages[1].Content)
	require.NotNil(t, received.ResponseFormat)
	assert.Equal(t, "json_object", received.ResponseFormat.Type)
	assert.InDelta(t, 0.1, received.Temperature, 1e-6)
}

func TestOpenAIClient_GenerateContent(t *testing.T) {
	var received chatRequest
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  News Article  "}}]}`))
	})

	result, err := client.GenerateContent(context.Background(), "classify", TierAdvanced)
	require.NoError(t, err)

	assert.Equal(t, "News Article", result)
	assert.Equal(t, "gpt-4o", received.Model)
	assert.Nil(t, received.ResponseFormat)
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"HTTP error", http.StatusUnauthorized, `{"error":"bad key"}`, "openai error 401"},
		{"No choices", http.StatusOK, `{"choices":[]}`, "no choices in response"},
		{"Empty content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, "no content in response"},
		{"Malformed body", http.StatusOK, `not json`, "decode chat response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GenerateContent(context.Background(), "prompt", TierStandard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestOpenAIClient_NoModel(t *testing.T) {
	client, err := NewOpenAIClient(&Config{Provider: ProviderOpenAI, Models: map[ModelTier]string{}}, "key", nil)
	require.NoError(t, err)

	_, err = client.GenerateJSON(context.Background(), "prompt", TierStandard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model configured")
}

func TestNewOpenAIClient_RequiresAPIKey(t *testing.T) {
	client, err := NewOpenAIClient(nil, "", nil)

	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestOpenAIClient_Defaults(t *testing.T) {
	client, err := NewOpenAIClient(nil, "key", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOpenAIEndpoint, client.endpoint)
	assert.Equal(t, "gpt-4o", client.GetModel(TierAdvanced))
	assert.NoError(t, client.Close())
}
