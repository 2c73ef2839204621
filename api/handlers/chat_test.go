package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/api"
	"github.com/BaSui01/commuteflow/assistant"
	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/llm"
	"github.com/BaSui01/commuteflow/sim"
	"github.com/BaSui01/commuteflow/types"
)

type fakeProvider struct {
	reply   string
	err     error
	lastReq *llm.ChatRequest
}

func (f *fakeProvider) Completion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{
		Provider: f.Name(),
		Model:    req.Model,
		Choices: []llm.ChatChoice{{
			Message: llm.Message{Role: llm.RoleAssistant, Content: f.reply},
		}},
	}, nil
}

func (f *fakeProvider) HealthCheck(ctx context.Context) (*llm.HealthStatus, error) {
	return &llm.HealthStatus{Healthy: true}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func newChatMux(t *testing.T, provider llm.Provider) *http.ServeMux {
	t.Helper()

	store := dataset.NewMemoryStore(simulationPopulation())
	a := assistant.New(store, assistant.NewMemoryStore(), provider,
		sim.Config{Capacity: 10, Cycles: 2, Seed: 1},
		assistant.Config{Model: "test-model", MaxTokens: 256},
		&assistant.TokenCounter{}, zap.NewNop())

	h := NewChatHandler(a, nil, zap.NewNop())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sessions", h.HandleStartSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}", h.HandleGetSession)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", h.HandleEndSession)
	mux.HandleFunc("POST /api/v1/sessions/{id}/profile", h.HandleSelectProfile)
	mux.HandleFunc("POST /api/v1/sessions/{id}/messages", h.HandleMessage)
	return mux
}

func startSession(t *testing.T, mux *http.ServeMux) string {
	t.Helper()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var session api.SessionResponse
	decodeData(t, rec, &session)
	require.NotEmpty(t, session.SessionID)
	return session.SessionID
}

func TestChat_SessionLifecycle(t *testing.T) {
	mux := newChatMux(t, &fakeProvider{reply: "hi"})
	sessionID := startSession(t, mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var session api.SessionResponse
	decodeData(t, rec, &session)
	assert.Equal(t, sessionID, session.SessionID)
	assert.Empty(t, session.CommuterID)
	assert.Zero(t, session.MessageCount)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+sessionID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChat_GetUnknownSession(t *testing.T) {
	mux := newChatMux(t, &fakeProvider{reply: "hi"})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(types.ErrSessionNotFound), resp.Error.Code)
}

func TestChat_SelectProfile(t *testing.T) {
	mux := newChatMux(t, &fakeProvider{reply: "hi"})
	sessionID := startSession(t, mux)

	body := strings.NewReader(`{"commuter_id": "101"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/profile", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var session api.SessionResponse
	decodeData(t, rec, &session)
	assert.Equal(t, "101", session.CommuterID)

	// Selecting a profile runs a simulation and stores its insights.
	require.NotNil(t, session.Insights)
	assert.Equal(t, 10, session.Insights.SimulatedPTCapacity)
	assert.Equal(t, 2, session.Insights.NumSimSteps)
}

func TestChat_SelectProfile_Unknown(t *testing.T) {
	mux := newChatMux(t, &fakeProvider{reply: "hi"})
	sessionID := startSession(t, mux)

	body := strings.NewReader(`{"commuter_id": "999"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/profile", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChat_Message(t *testing.T) {
	provider := &fakeProvider{reply: "the bus runs every ten minutes"}
	mux := newChatMux(t, provider)
	sessionID := startSession(t, mux)

	body := strings.NewReader(`{"message": "how often does the bus run?"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/messages", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var msg api.MessageResponse
	decodeData(t, rec, &msg)
	assert.Equal(t, sessionID, msg.SessionID)
	assert.Equal(t, "the bus runs every ten minutes", msg.Reply)

	require.NotNil(t, provider.lastReq)
	assert.Equal(t, "test-model", provider.lastReq.Model)
	assert.Equal(t, sessionID, provider.lastReq.TraceID)
}

func TestChat_RecommendationBypassesProvider(t *testing.T) {
	provider := &fakeProvider{reply: "should not be used"}
	mux := newChatMux(t, provider)
	sessionID := startSession(t, mux)

	body := strings.NewReader(`{"commuter_id": "101"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/profile", body))
	require.Equal(t, http.StatusOK, rec.Code)

	body = strings.NewReader(`{"message": "any advice for my commute?"}`)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/messages", body))
	require.Equal(t, http.StatusOK, rec.Code)

	var msg api.MessageResponse
	decodeData(t, rec, &msg)
	assert.Contains(t, msg.Reply, "average crowding")
	assert.Nil(t, provider.lastReq)
}

func TestChat_EmptyMessage(t *testing.T) {
	mux := newChatMux(t, &fakeProvider{reply: "hi"})
	sessionID := startSession(t, mux)

	body := strings.NewReader(`{"message": ""}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/messages", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_ProviderFailureSurfaces(t *testing.T) {
	provider := &fakeProvider{err: types.NewError(types.ErrUpstreamError, "backend down").WithRetryable(true)}
	mux := newChatMux(t, provider)
	sessionID := startSession(t, mux)

	body := strings.NewReader(`{"message": "hello"}`)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/messages", body))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(types.ErrUpstreamError), resp.Error.Code)
	assert.True(t, resp.Error.Retryable)
}
