package api

import (
	"time"

	"github.com/BaSui01/commuteflow/types"
)

// ProfileSummary is the list-view projection of a commuter record.
type ProfileSummary struct {
	CommuterID string     `json:"commuter_id"`
	UsualMode  types.Mode `json:"usual_commute_mode"`
}

// ProfileListResponse is the payload of GET /api/v1/profiles.
type ProfileListResponse struct {
	Profiles []ProfileSummary `json:"profiles"`
	Count    int              `json:"count"`
}

// SimulateRequest carries optional per-run overrides for the crowding
// simulation. Nil fields fall back to the configured defaults; an
// explicit zero is honored, so capacity 0 runs the degenerate
// zero-capacity case.
type SimulateRequest struct {
	Capacity *int   `json:"capacity,omitempty"`
	Cycles   *int   `json:"cycles,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
}

// SimulateResponse is the payload of POST /api/v1/simulate.
type SimulateResponse struct {
	Insights   types.SimulationInsights `json:"insights"`
	Population int                      `json:"population"`
	Duration   time.Duration            `json:"duration_ms"`
}

// RecommendRequest asks for recommendations for one commuter. The
// simulation overrides follow the same nil-versus-zero rule as
// SimulateRequest.
type RecommendRequest struct {
	CommuterID string `json:"commuter_id"`
	Capacity   *int   `json:"capacity,omitempty"`
	Cycles     *int   `json:"cycles,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
}

// RecommendResponse is the payload of POST /api/v1/recommendations.
type RecommendResponse struct {
	CommuterID      string                   `json:"commuter_id"`
	Recommendations []string                 `json:"recommendations"`
	Insights        types.SimulationInsights `json:"insights"`
}

// SessionResponse describes a chat session. Insights are present once
// a profile has been selected.
type SessionResponse struct {
	SessionID    string                    `json:"session_id"`
	CommuterID   string                    `json:"commuter_id,omitempty"`
	MessageCount int                       `json:"message_count"`
	Insights     *types.SimulationInsights `json:"insights,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// SelectProfileRequest binds a commuter profile to a session.
type SelectProfileRequest struct {
	CommuterID string `json:"commuter_id"`
}

// MessageRequest is one user chat turn.
type MessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse is the assistant's reply to one turn.
type MessageResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}
