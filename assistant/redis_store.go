package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/types"
)

const sessionKeyPrefix = "commuteflow:session:"

// RedisStoreConfig configures the redis-backed session store.
type RedisStoreConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// DefaultRedisStoreConfig returns the default session store settings.
func DefaultRedisStoreConfig() RedisStoreConfig {
	return RedisStoreConfig{
		Addr: "localhost:6379",
		TTL:  30 * time.Minute,
	}
}

// RedisStore persists sessions as JSON values with a sliding TTL, so
// conversations survive restarts and expire when abandoned.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(cfg RedisStoreConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 30 * time.Minute
	}

	logger.Info("session store initialized", zap.String("addr", cfg.Addr), zap.Duration("ttl", ttl))

	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "session_store")),
	}, nil
}

// NewRedisStoreWithClient wraps an existing client, for tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "session_store")),
	}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

// Save stores the session and refreshes its TTL.
func (r *RedisStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session %s: %w", session.ID, err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("session save failed", zap.String("session_id", session.ID), zap.Error(err))
		return fmt.Errorf("saving session %s: %w", session.ID, err)
	}
	return nil
}

// Get loads a session and refreshes its TTL, so active conversations do
// not expire mid-exchange.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.NewError(types.ErrSessionNotFound,
			fmt.Sprintf("session %s not found", id))
	}
	if err != nil {
		r.logger.Error("session load failed", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshaling session %s: %w", id, err)
	}

	if err := r.client.Expire(ctx, sessionKey(id), r.ttl).Err(); err != nil {
		r.logger.Warn("session ttl refresh failed", zap.String("session_id", id), zap.Error(err))
	}

	return &session, nil
}

// Delete removes the session. Deleting an unknown ID is not an error.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

// Ping reports whether the redis connection is healthy.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
