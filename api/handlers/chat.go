package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/api"
	"github.com/BaSui01/commuteflow/assistant"
	"github.com/BaSui01/commuteflow/internal/metrics"
	"github.com/BaSui01/commuteflow/types"
)

// ChatHandler serves the chat session lifecycle and message endpoints
// on top of the assistant.
type ChatHandler struct {
	assistant *assistant.Assistant
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewChatHandler creates a ChatHandler. The collector may be nil.
func NewChatHandler(a *assistant.Assistant, collector *metrics.Collector, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: a,
		collector: collector,
		logger:    logger.With(zap.String("handler", "chat")),
	}
}

// HandleStartSession answers POST /api/v1/sessions.
func (h *ChatHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.assistant.StartSession(r.Context())
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}
	if h.collector != nil {
		h.collector.SessionStarted()
	}
	WriteSuccess(w, sessionResponse(session))
}

// HandleGetSession answers GET /api/v1/sessions/{id}.
func (h *ChatHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.assistant.Session(r.Context(), sessionID)
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}
	WriteSuccess(w, sessionResponse(session))
}

// HandleEndSession answers DELETE /api/v1/sessions/{id}.
func (h *ChatHandler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.assistant.EndSession(r.Context(), sessionID); err != nil {
		writeFailure(w, err, h.logger)
		return
	}
	if h.collector != nil {
		h.collector.SessionEnded()
	}
	WriteSuccess(w, map[string]string{"session_id": sessionID, "status": "ended"})
}

// HandleSelectProfile answers POST /api/v1/sessions/{id}/profile. It
// binds the commuter to the session and runs a fresh simulation so the
// conversation starts with current crowding insights.
func (h *ChatHandler) HandleSelectProfile(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req api.SelectProfileRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}
	if req.CommuterID == "" {
		WriteError(w, types.NewError(types.ErrInvalidRequest, "commuter_id is required"), h.logger)
		return
	}

	session, err := h.assistant.SelectProfile(r.Context(), sessionID, req.CommuterID)
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}
	WriteSuccess(w, sessionResponse(session))
}

// HandleMessage answers POST /api/v1/sessions/{id}/messages.
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req api.MessageRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}
	if req.Message == "" {
		WriteError(w, types.NewError(types.ErrInvalidRequest, "message is required"), h.logger)
		return
	}

	reply, err := h.assistant.HandleMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		writeFailure(w, err, h.logger)
		return
	}

	WriteSuccess(w, api.MessageResponse{
		SessionID: sessionID,
		Reply:     reply,
	})
}

func (h *ChatHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, types.NewError(types.ErrInvalidRequest, "session ID is required"), h.logger)
		return "", false
	}
	return id, true
}

func sessionResponse(s *assistant.Session) api.SessionResponse {
	return api.SessionResponse{
		SessionID:    s.ID,
		CommuterID:   s.CommuterID,
		MessageCount: len(s.Messages),
		Insights:     s.Insights,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
