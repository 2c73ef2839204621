package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/llm"
	"github.com/BaSui01/commuteflow/types"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreWithClient(client, time.Minute, zap.NewNop()), mr
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	session := NewSession()
	session.CommuterID = "101"
	session.Append(llm.RoleUser, "hello")
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, "101", loaded.CommuterID)
	require.Len(t, loaded.Messages, 1)
	assert.Equal(t, "hello", loaded.Messages[0].Content)
}

func TestRedisStore_GetUnknownSession(t *testing.T) {
	store, _ := setupRedisStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, types.ErrSessionNotFound, types.GetErrorCode(err))
}

func TestRedisStore_SessionsExpire(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	session := NewSession()
	require.NoError(t, store.Save(ctx, session))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, session.ID)
	require.Error(t, err)
	assert.Equal(t, types.ErrSessionNotFound, types.GetErrorCode(err))
}

func TestRedisStore_GetRefreshesTTL(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	session := NewSession()
	require.NoError(t, store.Save(ctx, session))

	// Touch the session half way through its TTL, then advance past the
	// original deadline. The refresh keeps it alive.
	mr.FastForward(30 * time.Second)
	_, err := store.Get(ctx, session.ID)
	require.NoError(t, err)

	mr.FastForward(45 * time.Second)
	_, err = store.Get(ctx, session.ID)
	require.NoError(t, err)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	session := NewSession()
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	require.Error(t, err)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, session.ID))
}

// Both stores implement SessionStore with the same observable behavior.
func TestSessionStores_Equivalence(t *testing.T) {
	redisStore, _ := setupRedisStore(t)
	stores := map[string]SessionStore{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			session := NewSession()
			session.Append(llm.RoleUser, "hi")
			require.NoError(t, store.Save(ctx, session))

			loaded, err := store.Get(ctx, session.ID)
			require.NoError(t, err)
			assert.Equal(t, session.ID, loaded.ID)
			require.Len(t, loaded.Messages, 1)

			// Mutating the loaded copy must not leak into the store.
			loaded.Append(llm.RoleAssistant, "reply")
			again, err := store.Get(ctx, session.ID)
			require.NoError(t, err)
			assert.Len(t, again.Messages, 1)

			require.NoError(t, store.Delete(ctx, session.ID))
			_, err = store.Get(ctx, session.ID)
			assert.Equal(t, types.ErrSessionNotFound, types.GetErrorCode(err))
		})
	}
}
