package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/BaSui01/commuteflow/llm"
	"github.com/BaSui01/commuteflow/types"
)

// MemoryStore keeps sessions in process memory. It is the default for
// single-instance deployments and for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Save stores a copy of the session.
func (m *MemoryStore) Save(ctx context.Context, session *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *session
	cp.Messages = append([]llm.Message(nil), session.Messages...)
	m.sessions[session.ID] = &cp
	return nil
}

// Get returns a copy of the stored session.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.sessions[id]
	if !ok {
		return nil, types.NewError(types.ErrSessionNotFound,
			fmt.Sprintf("session %s not found", id))
	}

	cp := *stored
	cp.Messages = append(cp.Messages[:0:0], stored.Messages...)
	return &cp, nil
}

// Delete removes the session. Deleting an unknown ID is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
