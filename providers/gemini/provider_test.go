package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/llm"
	"github.com/BaSui01/commuteflow/types"
)

func newTestProvider(baseURL string) *Provider {
	return New(Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
	}, zap.NewNop())
}

func TestProvider_Completion(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := geminiResponse{
			ResponseID: "resp-1",
			Candidates: []geminiCandidate{{
				Content: geminiContent{
					Role:  "model",
					Parts: []geminiPart{{Text: "Take the 8:05 train."}},
				},
				FinishReason: "STOP",
			}},
			UsageMetadata: &geminiUsageMetadata{
				PromptTokenCount:     12,
				CandidatesTokenCount: 7,
				TotalTokenCount:      19,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	resp, err := p.Completion(context.Background(), &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a commute assistant."},
			{Role: llm.RoleUser, Content: "When should I leave?"},
			{Role: llm.RoleAssistant, Content: "Checking."},
		},
		Temperature: 0.7,
		MaxTokens:   256,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	// System message travels as systemInstruction, assistant becomes model.
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Equal(t, "You are a commute assistant.", gotBody.SystemInstruction.Parts[0].Text)
	require.Len(t, gotBody.Contents, 2)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
	assert.Equal(t, "model", gotBody.Contents[1].Role)
	require.NotNil(t, gotBody.GenerationConfig)
	assert.Equal(t, 256, gotBody.GenerationConfig.MaxOutputTokens)

	assert.Equal(t, "resp-1", resp.ID)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, "Take the 8:05 train.", llm.FirstText(resp))
	assert.Equal(t, 19, resp.Usage.TotalTokens)
}

func TestProvider_CompletionRequestModelOverride(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Completion(context.Background(), &llm.ChatRequest{
		Model:    "gemini-2.5-pro",
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", gotPath)
}

func TestProvider_CompletionErrorMapping(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		wantCode  types.ErrorCode
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, types.ErrAuthentication, false},
		{"rate limited", http.StatusTooManyRequests, types.ErrRateLimited, true},
		{"bad request", http.StatusBadRequest, types.ErrInvalidRequest, false},
		{"gateway timeout", http.StatusGatewayTimeout, types.ErrUpstreamTimeout, true},
		{"server error", http.StatusInternalServerError, types.ErrUpstreamError, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": tc.status, "message": "boom", "status": "ERR"},
				})
			}))
			defer srv.Close()

			p := newTestProvider(srv.URL)
			_, err := p.Completion(context.Background(), &llm.ChatRequest{
				Messages: []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
			})
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, types.GetErrorCode(err))
			assert.Equal(t, tc.retryable, types.IsRetryable(err))
		})
	}
}

func TestProvider_HealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	status, err := p.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Greater(t, status.Latency.Nanoseconds(), int64(0))
}

func TestProvider_HealthCheckUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	status, err := p.HealthCheck(context.Background())
	require.Error(t, err)
	assert.False(t, status.Healthy)
}
