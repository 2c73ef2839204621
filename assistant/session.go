package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BaSui01/commuteflow/llm"
	"github.com/BaSui01/commuteflow/types"
)

// Session is one conversation with the assistant. Profile and Insights
// are nil until the user selects a commuter.
type Session struct {
	ID         string                    `json:"id"`
	CommuterID string                    `json:"commuter_id,omitempty"`
	Profile    *types.CommuterRecord     `json:"profile,omitempty"`
	Insights   *types.SimulationInsights `json:"insights,omitempty"`
	Messages   []llm.Message             `json:"messages"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// NewSession creates an empty session with a fresh ID.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a message and bumps the update timestamp.
func (s *Session) Append(role llm.Role, content string) {
	s.Messages = append(s.Messages, llm.Message{Role: role, Content: content})
	s.UpdatedAt = time.Now().UTC()
}

// SessionStore persists sessions. Get reports ErrSessionNotFound for
// unknown or expired IDs.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
