package dataset

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/BaSui01/commuteflow/types"
)

// Store serves commuter records to the rest of the system. All returns
// the full population in a stable order; Profile resolves a single
// commuter and reports ErrProfileNotFound for unknown IDs.
type Store interface {
	All(ctx context.Context) ([]types.CommuterRecord, error)
	Profile(ctx context.Context, commuterID string) (types.CommuterRecord, error)
	Count(ctx context.Context) (int, error)
}

// MemoryStore keeps the dataset in memory. It is the default backing for
// CSV-only deployments and for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]types.CommuterRecord
}

// NewMemoryStore creates a MemoryStore seeded with the given records.
// Duplicate IDs keep the last occurrence.
func NewMemoryStore(records []types.CommuterRecord) *MemoryStore {
	m := &MemoryStore{records: make(map[string]types.CommuterRecord, len(records))}
	for _, rec := range records {
		m.records[rec.CommuterID] = rec
	}
	return m
}

// All returns every record sorted by commuter ID.
func (m *MemoryStore) All(ctx context.Context) ([]types.CommuterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.CommuterRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommuterID < out[j].CommuterID })
	return out, nil
}

// Profile returns the record for the given commuter ID.
func (m *MemoryStore) Profile(ctx context.Context, commuterID string) (types.CommuterRecord, error) {
	if err := ctx.Err(); err != nil {
		return types.CommuterRecord{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[commuterID]
	if !ok {
		return types.CommuterRecord{}, types.NewError(types.ErrProfileNotFound,
			fmt.Sprintf("commuter %s not found", commuterID))
	}
	return rec, nil
}

// Count returns the number of records in the store.
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}
