package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/commuteflow/types"
)

func sampleRecords() []types.CommuterRecord {
	return []types.CommuterRecord{
		{CommuterID: "103", UsualMode: types.ModePublicTransport},
		{CommuterID: "101", UsualMode: types.ModeCar},
		{CommuterID: "102", UsualMode: types.ModePublicTransport},
	}
}

func TestMemoryStore_AllIsSorted(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(sampleRecords())

	all, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "101", all[0].CommuterID)
	assert.Equal(t, "102", all[1].CommuterID)
	assert.Equal(t, "103", all[2].CommuterID)
}

func TestMemoryStore_Profile(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(sampleRecords())

	rec, err := store.Profile(context.Background(), "102")
	require.NoError(t, err)
	assert.Equal(t, types.ModePublicTransport, rec.UsualMode)

	_, err = store.Profile(context.Background(), "999")
	require.Error(t, err)
	assert.Equal(t, types.ErrProfileNotFound, types.GetErrorCode(err))
}

func TestMemoryStore_Count(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(sampleRecords())

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMemoryStore_DuplicateIDsKeepLast(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore([]types.CommuterRecord{
		{CommuterID: "101", UsualMode: types.ModeCar},
		{CommuterID: "101", UsualMode: types.ModeWalkCycle},
	})

	rec, err := store.Profile(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, types.ModeWalkCycle, rec.UsualMode)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
